package controller

import (
	"net/http"
	"strconv"

	"bid-ledger-api/internal/service"

	"github.com/labstack/echo"
)

type settingsRoutesHandler struct {
	bidService service.Bid
}

func newSettingsRoutesHandler(outer *echo.Group, services *service.Services) *settingsRoutesHandler {
	h := &settingsRoutesHandler{bidService: services.Bid}
	outer.GET("/settings/max_bids", h.GetMaxBids)
	outer.PUT("/settings/max_bids", h.UpdateMaxBids)

	return h
}

type maxBidsOutput struct {
	MaxBidsPerProject int `json:"maxBidsPerProject"`
}

// /settings/max_bids
func (h *settingsRoutesHandler) GetMaxBids(c echo.Context) error {
	if e := c.JSON(http.StatusOK, maxBidsOutput{h.bidService.MaxBidsPerProject()}); e != nil {
		return e
	}

	return nil
}

// /settings/max_bids?bidder=&value=
func (h *settingsRoutesHandler) UpdateMaxBids(c echo.Context) error {
	caller := c.QueryParam("bidder")
	if caller == "" {
		if e := c.JSON(http.StatusUnauthorized, errorResponse{Reason: "Please provide your bidder identity"}); e != nil {
			return e
		}

		return nil
	}

	value, err := strconv.Atoi(c.QueryParam("value"))
	if err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{Reason: "'value': should be an integer"}); e != nil {
			return e
		}

		return err
	}

	if err := h.bidService.SetMaxBidsPerProject(c.Request().Context(), caller, value); err != nil {
		return respondError(c, err)
	}

	if e := c.JSON(http.StatusOK, maxBidsOutput{h.bidService.MaxBidsPerProject()}); e != nil {
		return e
	}

	return nil
}
