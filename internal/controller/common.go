package controller

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"

	"tender-adjudication-api/internal/service"
)

const (
	defaultLimit  = 20
	defaultOffset = 0
)

type errorResponse struct {
	Reason string `json:"reason"`
}

// handleServiceError maps the service error taxonomy onto HTTP statuses:
// validation 400, authorization 403, not found 404, state conflict 409,
// anything else 500. Endpoints always answer with a definite status.
func handleServiceError(c echo.Context, err error) error {
	var status int
	switch {
	case errors.Is(err, service.ErrTermsNotAccepted),
		errors.Is(err, service.ErrInvalidPrice),
		errors.Is(err, service.ErrTenderIncomplete):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrNotTenderOwner),
		errors.Is(err, service.ErrNotContractParty):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrTenderNotFound),
		errors.Is(err, service.ErrProposalNotFound),
		errors.Is(err, service.ErrContractNotFound),
		errors.Is(err, service.ErrBuyerNotFound),
		errors.Is(err, service.ErrBidderNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrTenderNotOpen),
		errors.Is(err, service.ErrDeadlinePassed),
		errors.Is(err, service.ErrProposalAlreadySubmitted),
		errors.Is(err, service.ErrTenderAlreadyAwarded),
		errors.Is(err, service.ErrProposalNotSelectable),
		errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrContractNotAdvanceable):
		status = http.StatusConflict
	default:
		return c.JSON(http.StatusInternalServerError, errorResponse{"Internal error"})
	}

	return c.JSON(status, errorResponse{err.Error()})
}

func getAllErrorMessages(err error) string {
	var builder strings.Builder
	for _, fe := range err.(validator.ValidationErrors) {
		message := fmt.Sprintf("'%s': %s\n", fe.Field(), getMessage(fe))
		builder.WriteString(message)
	}

	return builder.String()
}

func getMessage(fe validator.FieldError) string {
	kind := fe.Type().Kind()
	if kind == reflect.String {
		return getMessageForString(fe)
	}

	if kind == reflect.Int || kind == reflect.Int32 || kind == reflect.Float64 {
		return getMessageForNumber(fe)
	}

	return "incorrect value passed"
}

func getMessageForNumber(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "lte", "max":
		return "should be less or equal than " + fe.Param()
	case "gte", "min":
		return "should be greater or equal than " + fe.Param()
	case "gt":
		return "should be greater than " + fe.Param()
	}

	return "incorrect value passed"
}

func getMessageForString(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "lte", "max":
		return "length should be less or equal than " + fe.Param()
	case "gte", "min":
		return "length should be greater or equal than " + fe.Param()
	case "oneof":
		return "should have value in: " + fe.Param()
	case "uuid":
		return "should be a valid uuid"
	case "datetime":
		return "should be a date formatted as " + fe.Param()
	}

	return "incorrect value passed"
}
