package controller

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"

	"tender-adjudication-api/internal/entity"
	"tender-adjudication-api/internal/service"
)

type proposalRoutesHandler struct {
	proposalService service.Proposal
	validate        *validator.Validate
}

func newProposalRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *proposalRoutesHandler {
	h := &proposalRoutesHandler{proposalService: services.Proposal, validate: v}

	outer.POST("/tenders/:tenderId/proposals/new", h.SubmitProposal)
	outer.GET("/tenders/:tenderId/proposals", h.GetTenderProposals)
	outer.GET("/proposals/my", h.GetBidderProposals)

	return h
}

// The acceptance flags and the price are deliberately untagged: the
// submission guard checks them in its documented order, after the tender
// state and deadline checks.
type submitProposalInput struct {
	BidderId         string  `json:"bidderId" validate:"required,uuid"`
	AnnualPrice      float64 `json:"annualPrice"`
	Description      string  `json:"description" validate:"max=2000"`
	TechnicalText    string  `json:"technicalText" validate:"max=5000"`
	PaymentModality  string  `json:"paymentModality" validate:"max=100"`
	AcceptGeneral    bool    `json:"acceptGeneral"`
	AcceptInspection bool    `json:"acceptInspection"`
	AcceptPenalties  bool    `json:"acceptPenalties"`
}

// /tenders/:tenderId/proposals/new
func (h *proposalRoutesHandler) SubmitProposal(c echo.Context) error {
	var input submitProposalInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"})
	}

	if err := h.validate.Struct(input); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)})
	}

	model := &entity.SubmitProposalInput{
		TenderId:         c.Param("tenderId"),
		BidderId:         input.BidderId,
		AnnualPrice:      input.AnnualPrice,
		Description:      input.Description,
		TechnicalText:    input.TechnicalText,
		PaymentModality:  input.PaymentModality,
		AcceptGeneral:    input.AcceptGeneral,
		AcceptInspection: input.AcceptInspection,
		AcceptPenalties:  input.AcceptPenalties,
	}

	proposal, err := h.proposalService.SubmitProposal(c.Request().Context(), model)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(http.StatusOK, proposal)
}

type tenderProposalsInput struct {
	Limit   int32  `query:"limit" validate:"gte=0,lte=50"`
	Offset  int32  `query:"offset" validate:"gte=0"`
	BuyerId string `query:"user_id" validate:"required,uuid"`
}

// /tenders/:tenderId/proposals
func (h *proposalRoutesHandler) GetTenderProposals(c echo.Context) error {
	input := tenderProposalsInput{Limit: defaultLimit, Offset: defaultOffset}
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"})
	}

	if err := h.validate.Struct(input); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)})
	}

	pg := entity.NewPaginationInput(int(input.Limit), int(input.Offset))
	proposals, err := h.proposalService.GetTenderProposals(c.Request().Context(), c.Param("tenderId"), input.BuyerId, pg)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(http.StatusOK, proposals)
}

type bidderProposalsInput struct {
	Limit    int32  `query:"limit" validate:"gte=0,lte=50"`
	Offset   int32  `query:"offset" validate:"gte=0"`
	BidderId string `query:"user_id" validate:"required,uuid"`
}

// /proposals/my
func (h *proposalRoutesHandler) GetBidderProposals(c echo.Context) error {
	input := bidderProposalsInput{Limit: defaultLimit, Offset: defaultOffset}
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"})
	}

	if err := h.validate.Struct(input); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)})
	}

	pg := entity.NewPaginationInput(int(input.Limit), int(input.Offset))
	proposals, err := h.proposalService.GetBidderProposals(c.Request().Context(), input.BidderId, pg)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(http.StatusOK, proposals)
}
