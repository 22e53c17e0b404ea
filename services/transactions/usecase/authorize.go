package usecase

import (
	"github.com/piresc/smartlocker/internal/pkg/apperror"
	"github.com/piresc/smartlocker/internal/pkg/models"
	"github.com/piresc/smartlocker/services/transactions"
)

// authorize checks that actor holds capability over txn. It runs before any state check.
func authorize(actor models.Actor, txn *models.Transaction, capability transactions.Capability) error {
	switch capability {
	case transactions.CapabilityPurchase:
		if actor.Role == models.RoleBuyer {
			return nil
		}
		return apperror.Authorization("only buyers can purchase")
	case transactions.CapabilityBuyer:
		if txn != nil && txn.BuyerID == actor.UserID {
			return nil
		}
		return apperror.Authorization("only the buyer can perform this action")
	case transactions.CapabilitySeller:
		if txn != nil && txn.SellerID == actor.UserID {
			return nil
		}
		return apperror.Authorization("only the seller can perform this action")
	case transactions.CapabilityParticipant:
		if actor.Role == models.RoleAdmin {
			return nil
		}
		if txn != nil && (txn.BuyerID == actor.UserID || txn.SellerID == actor.UserID) {
			return nil
		}
		return apperror.Authorization("not a participant in this transaction")
	}
	return apperror.Authorization("unknown capability %q", capability)
}
