package service

import (
	"regexp"
	"strconv"

	"bid-ledger-api/internal/common"
	"bid-ledger-api/internal/entity"

	"github.com/go-playground/validator/v10"
)

// The built-in hexadecimal tag also accepts a 0x prefix, so digests get their own tag.
var digestPattern = regexp.MustCompile(`^[0-9a-fA-F]{` + strconv.Itoa(common.DigestLength) + `}$`)

const (
	digestTag     = "digest"
	positiveTag   = "gt=0"
	bidTypeTag    = "oneof=" + common.Fixed + " " + common.Hourly + " " + common.Milestone
	teamSizeTag   = "min=1,max=100"
	experienceTag = "min=1,max=10"
	reputationTag = "min=0,max=100"
)

var paymentTermsTag = "required,max=" + strconv.Itoa(common.MaxPaymentTermsRunes)

type fieldRule struct {
	value any
	tag   string
	err   *Error
}

func newFieldValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation(digestTag, func(fl validator.FieldLevel) bool {
		return digestPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}

	return v
}

// firstViolation returns the error of the first rule that fails.
func firstViolation(v *validator.Validate, rules []fieldRule) error {
	for _, rule := range rules {
		if err := v.Var(rule.value, rule.tag); err != nil {
			return rule.err
		}
	}

	return nil
}

func submissionRules(input *entity.SubmitBidInput, project *entity.Project) []fieldRule {
	return []fieldRule{
		{input.BidHash, digestTag, ErrInvalidHash},
		{input.Amount, positiveTag, ErrInvalidAmount},
		{input.StakeAmount, "gte=" + strconv.FormatInt(project.MinimumStake, 10), ErrInsufficientStake},
		{input.BidType, bidTypeTag, ErrInvalidBidType},
		{input.SupportDocsHash, digestTag, ErrInvalidSupportDocs},
		{input.TeamSize, teamSizeTag, ErrInvalidTeamSize},
		{input.ExperienceLevel, experienceTag, ErrInvalidExperienceLevel},
		{input.ReputationScore, reputationTag, ErrInvalidReputationScore},
		{input.BidDuration, positiveTag, ErrInvalidBidDuration},
		{input.PaymentTerms, paymentTermsTag, ErrInvalidPaymentTerms},
	}
}

func updateRules(input *entity.UpdateBidInput) []fieldRule {
	return []fieldRule{
		{input.UpdateHash, digestTag, ErrInvalidUpdateHash},
		{input.UpdateAmount, positiveTag, ErrInvalidAmount},
	}
}
