package service

import (
	"strconv"

	"bid-ledger-api/internal/entity"
)

func mapBid(b *entity.Bid) *entity.BidOutputModel {
	return &entity.BidOutputModel{
		Id:              strconv.FormatInt(b.Id, 10),
		ProjectId:       strconv.FormatInt(b.ProjectId, 10),
		Bidder:          b.Bidder,
		BidHash:         b.BidHash,
		Amount:          b.Amount,
		Timestamp:       b.Timestamp,
		StakeAmount:     b.StakeAmount,
		BidType:         b.BidType,
		SupportDocsHash: b.SupportDocsHash,
		TeamSize:        b.TeamSize,
		ExperienceLevel: b.ExperienceLevel,
		ReputationScore: b.ReputationScore,
		BidDuration:     b.BidDuration,
		PaymentTerms:    b.PaymentTerms,
	}
}

func mapBids(b []entity.Bid) []entity.BidOutputModel {
	s := make([]entity.BidOutputModel, 0)
	for _, bid := range b {
		s = append(s, *mapBid(&bid))
	}

	return s
}

func mapBidUpdate(u *entity.BidUpdate) *entity.BidUpdateOutputModel {
	return &entity.BidUpdateOutputModel{
		BidId:           strconv.FormatInt(u.BidId, 10),
		UpdateHash:      u.UpdateHash,
		UpdateAmount:    u.UpdateAmount,
		UpdateTimestamp: u.UpdateTimestamp,
		Updater:         u.Updater,
	}
}
