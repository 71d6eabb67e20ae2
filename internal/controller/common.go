package controller

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"bid-ledger-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

const (
	defaultLimit  = 5
	defaultOffset = 0
)

type errorResponse struct {
	Reason string `json:"reason"`
	Code   uint32 `json:"code,omitempty"`
}

// ledgerStatus maps a ledger error kind to an HTTP status.
func ledgerStatus(err *service.Error) int {
	switch err {
	case service.ErrNotAuthorized, service.ErrAuthorityNotVerified:
		return http.StatusForbidden
	case service.ErrInvalidProject, service.ErrProjectNotFound, service.ErrBidNotFound:
		return http.StatusNotFound
	case service.ErrBidAlreadyExists, service.ErrMaxBidsExceeded,
		service.ErrBiddingNotStarted, service.ErrBiddingClosed, service.ErrUpdateNotAllowed:
		return http.StatusConflict
	case service.ErrStakeTransferFailed:
		return http.StatusPaymentRequired
	}

	return http.StatusBadRequest
}

func respondError(c echo.Context, err error) error {
	var ledgerErr *service.Error
	if !errors.As(err, &ledgerErr) {
		if e := c.JSON(http.StatusInternalServerError, errorResponse{Reason: "Internal error"}); e != nil {
			return e
		}

		return err
	}

	if e := c.JSON(ledgerStatus(ledgerErr), errorResponse{Reason: ledgerErr.Message, Code: ledgerErr.Code}); e != nil {
		return e
	}

	return err
}

func getAllErrorMessages(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error()
	}

	var builder strings.Builder
	for _, fe := range validationErrors {
		message := fmt.Sprintf("'%s': %s\n", fe.Field(), getMessage(fe))
		builder.WriteString(message)
	}

	return builder.String()
}

func getMessage(fe validator.FieldError) string {
	s, i := "", int32(0)
	if fe.Type() == reflect.TypeOf(s) {
		return getMessageForString(fe)
	}

	if fe.Type() == reflect.TypeOf(i) {
		return getMessageForInt(fe)
	}

	if fe.Type() == reflect.TypeOf(0) {
		return getMessageForInt(fe)
	}

	return "incorrect value passed"
}

func getMessageForInt(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "lte", "max":
		return "should be less or equal than " + fe.Param()
	case "gte", "min":
		return "should be greater or equal than " + fe.Param()
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
	}

	return "incorrect value passed"
}
