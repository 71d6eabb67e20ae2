package controller

import (
	"net/http"
	"strconv"

	"bid-ledger-api/internal/entity"
	"bid-ledger-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

type projectRoutesHandler struct {
	bidService service.Bid
	validate   *validator.Validate
}

func newProjectRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *projectRoutesHandler {
	h := &projectRoutesHandler{bidService: services.Bid, validate: v}
	outer.GET("/projects/:projectId/bids", h.GetProjectBids)
	outer.GET("/projects/:projectId/bids/:bidder", h.GetProjectBidderBid)

	return h
}

func parseProjectId(c echo.Context) (int64, bool, error) {
	projectId, err := strconv.ParseInt(c.Param("projectId"), 10, 64)
	if err != nil {
		return 0, false, c.JSON(http.StatusBadRequest, errorResponse{Reason: "Project id must be an integer"})
	}

	return projectId, true, nil
}

type getProjectBidsInput struct {
	Limit  int32 `query:"limit" validate:"gte=0,lte=50"`
	Offset int32 `query:"offset" validate:"gte=0"`
}

func newGetProjectBidsInput() getProjectBidsInput {
	return getProjectBidsInput{Limit: defaultLimit, Offset: defaultOffset}
}

// /projects/:projectId/bids
func (h *projectRoutesHandler) GetProjectBids(c echo.Context) error {
	projectId, ok, err := parseProjectId(c)
	if !ok {
		return err
	}

	var input = newGetProjectBidsInput()
	if err := c.Bind(&input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{Reason: "Input data is not formed correctly"}); e != nil {
			return e
		}

		return err
	}

	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{Reason: getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	pg := entity.NewPaginationInput(int(input.Limit), int(input.Offset))
	bids, err := h.bidService.GetProjectBids(c.Request().Context(), projectId, pg)
	if err != nil {
		return respondError(c, err)
	}

	if e := c.JSON(http.StatusOK, bids); e != nil {
		return e
	}

	return nil
}

type projectBidderBidOutput struct {
	BidId string `json:"bidId"`
}

// /projects/:projectId/bids/:bidder
func (h *projectRoutesHandler) GetProjectBidderBid(c echo.Context) error {
	projectId, ok, err := parseProjectId(c)
	if !ok {
		return err
	}

	bidId, err := h.bidService.GetBidIdByProjectBidder(c.Request().Context(), projectId, c.Param("bidder"))
	if err != nil {
		return respondError(c, err)
	}

	if e := c.JSON(http.StatusOK, projectBidderBidOutput{BidId: strconv.FormatInt(bidId, 10)}); e != nil {
		return e
	}

	return nil
}
