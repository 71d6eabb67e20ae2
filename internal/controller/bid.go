package controller

import (
	"net/http"
	"strconv"

	"bid-ledger-api/internal/entity"
	"bid-ledger-api/internal/service"
	"bid-ledger-api/pkg/clock"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

type bidRoutesHandler struct {
	bidService service.Bid
	validate   *validator.Validate
	clock      clock.Clock
}

func newBidRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate, clk clock.Clock) *bidRoutesHandler {
	h := &bidRoutesHandler{bidService: services.Bid, validate: v, clock: clk}
	outer.POST("/bids/new", h.PostBid)
	outer.GET("/bids/:bidId", h.GetBid)
	outer.GET("/bids/:bidId/update", h.GetBidUpdate)
	outer.PATCH("/bids/:bidId/edit", h.EditBid)

	return h
}

type callerInput struct {
	Bidder string `query:"bidder" validate:"required,max=128"`
}

// caller reads the acting bidder. It writes the response itself when the
// identity is missing or malformed.
func (h *bidRoutesHandler) caller(c echo.Context) (string, bool, error) {
	input := callerInput{Bidder: c.QueryParam("bidder")}
	if input.Bidder == "" {
		return "", false, c.JSON(http.StatusUnauthorized, errorResponse{Reason: "Please provide your bidder identity"})
	}
	if err := h.validate.Struct(input); err != nil {
		return "", false, c.JSON(http.StatusBadRequest, errorResponse{Reason: getAllErrorMessages(err)})
	}

	return input.Bidder, true, nil
}

type postBidInput struct {
	ProjectId       int64  `json:"projectId"`
	BidHash         string `json:"bidHash"`
	Amount          int64  `json:"amount"`
	StakeAmount     int64  `json:"stakeAmount"`
	BidType         string `json:"bidType"`
	SupportDocsHash string `json:"supportDocsHash"`
	TeamSize        int    `json:"teamSize"`
	ExperienceLevel int    `json:"experienceLevel"`
	ReputationScore int    `json:"reputationScore"`
	BidDuration     int64  `json:"bidDuration"`
	PaymentTerms    string `json:"paymentTerms"`
}

// /bids/new
func (h *bidRoutesHandler) PostBid(c echo.Context) error {
	bidder, ok, err := h.caller(c)
	if !ok {
		return err
	}

	var input postBidInput
	if err := c.Bind(&input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{Reason: "Input data is not formed correctly"}); e != nil {
			return e
		}

		return err
	}

	model := &entity.SubmitBidInput{
		ProjectId:       input.ProjectId,
		BidHash:         input.BidHash,
		Amount:          input.Amount,
		StakeAmount:     input.StakeAmount,
		BidType:         input.BidType,
		SupportDocsHash: input.SupportDocsHash,
		TeamSize:        input.TeamSize,
		ExperienceLevel: input.ExperienceLevel,
		ReputationScore: input.ReputationScore,
		BidDuration:     input.BidDuration,
		PaymentTerms:    input.PaymentTerms,
		Caller:          bidder,
		CurrentTime:     h.clock.Now(),
	}

	ctx := c.Request().Context()
	bidId, err := h.bidService.SubmitBid(ctx, model)
	if err != nil {
		return respondError(c, err)
	}

	bid, err := h.bidService.GetBid(ctx, bidId)
	if err != nil {
		return respondError(c, err)
	}

	if e := c.JSON(http.StatusOK, bid); e != nil {
		return e
	}

	return nil
}

func parseBidId(c echo.Context) (int64, bool, error) {
	bidId, err := strconv.ParseInt(c.Param("bidId"), 10, 64)
	if err != nil || bidId < 0 {
		return 0, false, c.JSON(http.StatusBadRequest,
			errorResponse{Reason: service.ErrInvalidBidId.Message, Code: service.ErrInvalidBidId.Code})
	}

	return bidId, true, nil
}

// /bids/:bidId
func (h *bidRoutesHandler) GetBid(c echo.Context) error {
	bidId, ok, err := parseBidId(c)
	if !ok {
		return err
	}

	bid, err := h.bidService.GetBid(c.Request().Context(), bidId)
	if err != nil {
		return respondError(c, err)
	}

	if e := c.JSON(http.StatusOK, bid); e != nil {
		return e
	}

	return nil
}

// /bids/:bidId/update
func (h *bidRoutesHandler) GetBidUpdate(c echo.Context) error {
	bidId, ok, err := parseBidId(c)
	if !ok {
		return err
	}

	update, err := h.bidService.GetBidUpdate(c.Request().Context(), bidId)
	if err != nil {
		return respondError(c, err)
	}

	if e := c.JSON(http.StatusOK, update); e != nil {
		return e
	}

	return nil
}

type editBidInput struct {
	UpdateHash   string `json:"updateHash"`
	UpdateAmount int64  `json:"updateAmount"`
}

// /bids/:bidId/edit
func (h *bidRoutesHandler) EditBid(c echo.Context) error {
	bidId, ok, err := parseBidId(c)
	if !ok {
		return err
	}

	bidder, ok, err := h.caller(c)
	if !ok {
		return err
	}

	var input editBidInput
	if err := c.Bind(&input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{Reason: "Bid updates required, set updateHash and updateAmount"}); e != nil {
			return e
		}

		return err
	}

	ctx := c.Request().Context()
	err = h.bidService.UpdateBid(ctx, &entity.UpdateBidInput{
		BidId:        bidId,
		UpdateHash:   input.UpdateHash,
		UpdateAmount: input.UpdateAmount,
		Caller:       bidder,
		CurrentTime:  h.clock.Now(),
	})
	if err != nil {
		return respondError(c, err)
	}

	bid, err := h.bidService.GetBid(ctx, bidId)
	if err != nil {
		return respondError(c, err)
	}

	if e := c.JSON(http.StatusOK, bid); e != nil {
		return e
	}

	return nil
}
