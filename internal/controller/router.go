package controller

import (
	"bid-ledger-api/internal/service"
	"bid-ledger-api/pkg/clock"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

func SetupRoutesHandlers(handler *echo.Echo, services *service.Services, clk clock.Clock) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	api := handler.Group("/api")
	newDiagnosticRoutesHandler(api, services)
	newBidRoutesHandler(api, services, validate, clk)
	newProjectRoutesHandler(api, services, validate)
	newSettingsRoutesHandler(api, services)
}
