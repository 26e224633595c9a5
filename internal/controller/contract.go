package controller

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"

	"tender-adjudication-api/internal/entity"
	"tender-adjudication-api/internal/service"
)

type contractRoutesHandler struct {
	contractService service.Contract
	validate        *validator.Validate
}

func newContractRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *contractRoutesHandler {
	h := &contractRoutesHandler{contractService: services.Contract, validate: v}

	outer.GET("/contracts/my", h.GetPartyContracts)
	outer.PUT("/contracts/:contractId/accept", h.AcceptContract)
	outer.PUT("/contracts/:contractId/countersign", h.CountersignContract)

	return h
}

type contractPartyInput struct {
	UserId string `validate:"required,uuid"`
}

// /contracts/:contractId/accept
// Body-less PUT; the party identity is read from the query string directly.
func (h *contractRoutesHandler) AcceptContract(c echo.Context) error {
	input := contractPartyInput{UserId: c.QueryParam("user_id")}
	if err := h.validate.Struct(input); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)})
	}

	contract, err := h.contractService.AcceptContract(c.Request().Context(), c.Param("contractId"), input.UserId)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(http.StatusOK, contract)
}

// /contracts/:contractId/countersign
func (h *contractRoutesHandler) CountersignContract(c echo.Context) error {
	input := contractPartyInput{UserId: c.QueryParam("user_id")}
	if err := h.validate.Struct(input); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)})
	}

	contract, err := h.contractService.CountersignContract(c.Request().Context(), c.Param("contractId"), input.UserId)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(http.StatusOK, contract)
}

type partyContractsInput struct {
	Limit  int32  `query:"limit" validate:"gte=0,lte=50"`
	Offset int32  `query:"offset" validate:"gte=0"`
	UserId string `query:"user_id" validate:"required,uuid"`
}

// /contracts/my
func (h *contractRoutesHandler) GetPartyContracts(c echo.Context) error {
	input := partyContractsInput{Limit: defaultLimit, Offset: defaultOffset}
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"})
	}

	if err := h.validate.Struct(input); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)})
	}

	pg := entity.NewPaginationInput(int(input.Limit), int(input.Offset))
	contracts, err := h.contractService.GetPartyContracts(c.Request().Context(), input.UserId, pg)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(http.StatusOK, contracts)
}
