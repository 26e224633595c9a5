package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"

	"tender-adjudication-api/internal/service"
)

func SetupRoutesHandlers(handler *echo.Echo, services *service.Services) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	api := handler.Group("/api")
	newDiagnosticRoutesHandler(api, services)
	newTenderRoutesHandler(api, services, validate)
	newProposalRoutesHandler(api, services, validate)
	newContractRoutesHandler(api, services, validate)
}
