package controller

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"

	"tender-adjudication-api/internal/entity"
	"tender-adjudication-api/internal/service"
)

type tenderRoutesHandler struct {
	tenderService service.Tender
	validate      *validator.Validate
}

func newTenderRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *tenderRoutesHandler {
	h := &tenderRoutesHandler{tenderService: services.Tender, validate: v}

	outer.GET("/tenders", h.GetTenders)
	outer.POST("/tenders/new", h.PostTender)
	outer.GET("/tenders/my", h.GetBuyerTenders)
	outer.GET("/tenders/:tenderId/status", h.GetTenderStatus)
	outer.PUT("/tenders/:tenderId/publish", h.PublishTender)
	outer.PUT("/tenders/:tenderId/cancel", h.CancelTender)
	outer.POST("/tenders/close-expired", h.CloseExpiredTenders)
	outer.POST("/tenders/:tenderId/adjudicate", h.Adjudicate)

	return h
}

type getTendersInput struct {
	Limit      int32    `query:"limit" validate:"gte=0,lte=50"`
	Offset     int32    `query:"offset" validate:"gte=0"`
	Categories []string `query:"category" validate:"dive,oneof=cleaning maintenance security gardening elevators administration"`
}

// /tenders
func (h *tenderRoutesHandler) GetTenders(c echo.Context) error {
	input := getTendersInput{Limit: defaultLimit, Offset: defaultOffset, Categories: make([]string, 0)}
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"})
	}

	if err := h.validate.Struct(input); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)})
	}

	pg := entity.NewPaginationInput(int(input.Limit), int(input.Offset))
	tenders, err := h.tenderService.GetOpenTenders(c.Request().Context(), input.Categories, pg)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(http.StatusOK, tenders)
}

type postTenderInput struct {
	BuyerId        string   `json:"buyerId" validate:"required,uuid"`
	Title          string   `json:"title" validate:"required,max=200"`
	Description    string   `json:"description" validate:"max=2000"`
	Category       string   `json:"category" validate:"required,oneof=cleaning maintenance security gardening elevators administration"`
	BudgetMin      *float64 `json:"budgetMin" validate:"omitempty,gte=0"`
	BudgetMax      *float64 `json:"budgetMax" validate:"omitempty,gte=0"`
	ClosingDate    *string  `json:"closingDate" validate:"omitempty,datetime=2006-01-02"`
	DurationMonths int      `json:"durationMonths" validate:"gte=0,lte=120"`
}

// /tenders/new
func (h *tenderRoutesHandler) PostTender(c echo.Context) error {
	var input postTenderInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"})
	}

	if err := h.validate.Struct(input); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)})
	}

	model := &entity.CreateTenderInput{
		BuyerId: input.BuyerId, Title: input.Title, Description: input.Description,
		Category: input.Category, BudgetMin: input.BudgetMin, BudgetMax: input.BudgetMax,
		ClosingDate: input.ClosingDate, DurationMonths: input.DurationMonths,
	}

	tender, err := h.tenderService.CreateTender(c.Request().Context(), model)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(http.StatusOK, tender)
}

type buyerTendersInput struct {
	Limit   int32  `query:"limit" validate:"gte=0,lte=50"`
	Offset  int32  `query:"offset" validate:"gte=0"`
	BuyerId string `query:"user_id" validate:"required,uuid"`
}

// /tenders/my
func (h *tenderRoutesHandler) GetBuyerTenders(c echo.Context) error {
	input := buyerTendersInput{Limit: defaultLimit, Offset: defaultOffset}
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"})
	}

	if err := h.validate.Struct(input); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)})
	}

	pg := entity.NewPaginationInput(int(input.Limit), int(input.Offset))
	tenders, err := h.tenderService.GetBuyerTenders(c.Request().Context(), input.BuyerId, pg)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(http.StatusOK, tenders)
}

// /tenders/:tenderId/status
func (h *tenderRoutesHandler) GetTenderStatus(c echo.Context) error {
	status, err := h.tenderService.GetTenderStatusById(c.Request().Context(), c.Param("tenderId"))
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(http.StatusOK, status)
}

type ownerActionInput struct {
	BuyerId string `validate:"required,uuid"`
}

// /tenders/:tenderId/publish
// No request body; the caller identity rides the query string, so the input
// is read with QueryParam rather than bound.
func (h *tenderRoutesHandler) PublishTender(c echo.Context) error {
	input := ownerActionInput{BuyerId: c.QueryParam("user_id")}
	if err := h.validate.Struct(input); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)})
	}

	tender, err := h.tenderService.PublishTender(c.Request().Context(), c.Param("tenderId"), input.BuyerId)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(http.StatusOK, tender)
}

// /tenders/:tenderId/cancel
func (h *tenderRoutesHandler) CancelTender(c echo.Context) error {
	input := ownerActionInput{BuyerId: c.QueryParam("user_id")}
	if err := h.validate.Struct(input); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)})
	}

	tender, err := h.tenderService.CancelTender(c.Request().Context(), c.Param("tenderId"), input.BuyerId)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(http.StatusOK, tender)
}

// /tenders/close-expired
// Invoked by the external scheduler; safe to call repeatedly.
func (h *tenderRoutesHandler) CloseExpiredTenders(c echo.Context) error {
	result, err := h.tenderService.CloseExpiredTenders(c.Request().Context())
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

type adjudicateInput struct {
	BuyerId         string   `json:"buyerId" validate:"required,uuid"`
	ProposalId      string   `json:"proposalId" validate:"required,uuid"`
	StartDate       *string  `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	PaymentModality string   `json:"paymentModality" validate:"max=100"`
	PenaltyPercent  *float64 `json:"penaltyPercent" validate:"omitempty,gte=0,lte=100"`
	SpecialTerms    string   `json:"specialTerms" validate:"max=2000"`
	Notes           string   `json:"notes" validate:"max=2000"`
}

// /tenders/:tenderId/adjudicate
func (h *tenderRoutesHandler) Adjudicate(c echo.Context) error {
	var input adjudicateInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"})
	}

	if err := h.validate.Struct(input); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)})
	}

	model := &entity.AdjudicateInput{
		TenderId:   c.Param("tenderId"),
		BuyerId:    input.BuyerId,
		ProposalId: input.ProposalId,
		Terms: entity.ContractTerms{
			StartDate:       input.StartDate,
			PaymentModality: input.PaymentModality,
			PenaltyPercent:  input.PenaltyPercent,
			SpecialTerms:    input.SpecialTerms,
			Notes:           input.Notes,
		},
	}

	result, err := h.tenderService.Adjudicate(c.Request().Context(), model)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}
