package gateway

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/piresc/smartlocker/internal/pkg/apperror"
	httpclient "github.com/piresc/smartlocker/internal/pkg/http"
	"github.com/piresc/smartlocker/internal/pkg/logger"
	"github.com/piresc/smartlocker/internal/pkg/models"
	"github.com/piresc/smartlocker/services/transactions"
)

const (
	LockerModeSimulate = "simulate"
	LockerModeHTTP     = "http"

	deviceUpdatePath = "/external/api/update"
)

// NewLockerGateway selects the locker hardware adapter for cfg.Mode
func NewLockerGateway(cfg models.LockerConfig, log *logger.ZapLogger) (transactions.LockerGW, error) {
	switch strings.ToLower(cfg.Mode) {
	case "", LockerModeSimulate:
		return NewSimulatedLockerGateway(log), nil
	case LockerModeHTTP:
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("LOCKER_BASE_URL is required in http mode")
		}
		client := httpclient.NewClient(httpclient.Config{
			Name:    "locker-hardware",
			BaseURL: cfg.BaseURL,
			Timeout: cfg.Timeout,
		}, log)
		return NewHTTPLockerGateway(client), nil
	default:
		return nil, fmt.Errorf("unknown locker mode %q", cfg.Mode)
	}
}

// HTTPLockerGateway opens lockers through the device cloud's virtual pin API
type HTTPLockerGateway struct {
	client *httpclient.Client
}

// NewHTTPLockerGateway creates a locker gateway over client
func NewHTTPLockerGateway(client *httpclient.Client) *HTTPLockerGateway {
	return &HTTPLockerGateway{client: client}
}

// Client exposes the underlying HTTP client for health reporting
func (g *HTTPLockerGateway) Client() *httpclient.Client {
	return g.client
}

// TriggerOpen drives the locker's control pin high
func (g *HTTPLockerGateway) TriggerOpen(ctx context.Context, locker *models.Locker) error {
	if locker.DeviceToken == "" || locker.ControlPin == "" {
		return apperror.Dependency(nil, "locker %s has no device binding", locker.Number)
	}

	query := url.Values{}
	query.Set("token", locker.DeviceToken)
	query.Set(locker.ControlPin, "1")

	if err := g.client.GetJSON(ctx, deviceUpdatePath, query, nil); err != nil {
		return apperror.Dependency(err, "locker hardware unavailable")
	}
	return nil
}

// SimulatedLockerGateway logs the open command instead of calling hardware
type SimulatedLockerGateway struct {
	logger *logger.ZapLogger
}

// NewSimulatedLockerGateway creates the local locker simulator
func NewSimulatedLockerGateway(log *logger.ZapLogger) *SimulatedLockerGateway {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &SimulatedLockerGateway{logger: log}
}

func (g *SimulatedLockerGateway) TriggerOpen(ctx context.Context, locker *models.Locker) error {
	g.logger.Info("Simulated locker open",
		logger.String("locker_number", locker.Number),
		logger.String("control_pin", locker.ControlPin))
	return nil
}
