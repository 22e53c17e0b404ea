package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/piresc/smartlocker/internal/pkg/middleware"
	"github.com/piresc/smartlocker/internal/pkg/models"
	nrpkg "github.com/piresc/smartlocker/internal/pkg/newrelic"
	"github.com/piresc/smartlocker/internal/utils"
)

// ListProducts returns the catalogue visible to the caller
func (h *TransactionHandler) ListProducts(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Products.List")

	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	products, err := h.transactionUC.ListProducts(c.Request().Context(), actor, models.ProductFilter{
		Limit:  queryInt(c, "limit"),
		Offset: queryInt(c, "offset"),
	})
	if err != nil {
		nrpkg.NoticeTransactionError(txn, err)
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "", products)
}

// GetProduct returns a single product
func (h *TransactionHandler) GetProduct(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Products.Get")

	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid product ID")
	}

	product, err := h.transactionUC.GetProduct(c.Request().Context(), actor, id)
	if err != nil {
		nrpkg.NoticeTransactionError(txn, err)
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "", product)
}
