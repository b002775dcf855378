package sourcing

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tradegate/backend/internal/domain/shared"
)

// DefaultPriceFloorRatio is the fraction of the target price below which a
// candidate bid is treated as suspicious. A heuristic anti-fraud floor, not a
// hard business rule, so it is configurable.
var DefaultPriceFloorRatio = decimal.NewFromFloat(0.10)

// IntegrityValidator screens candidate bids before admission.
// It is a pure predicate over caller-supplied snapshots: the candidate, the
// existing bids on the requirement, and the requirement itself.
type IntegrityValidator struct {
	priceFloorRatio decimal.Decimal
}

// NewIntegrityValidator creates a validator with the given suspicious-price
// floor ratio. Non-positive ratios fall back to the default.
func NewIntegrityValidator(priceFloorRatio decimal.Decimal) *IntegrityValidator {
	if priceFloorRatio.LessThanOrEqual(decimal.Zero) {
		priceFloorRatio = DefaultPriceFloorRatio
	}
	return &IntegrityValidator{priceFloorRatio: priceFloorRatio}
}

// Validate checks a candidate bid against the integrity rules, in order.
// The first failing rule wins. A nil return means the bid is admissible.
func (v *IntegrityValidator) Validate(candidate *Bid, existing []*Bid, requirement *Requirement) error {
	if err := v.checkDuplicateExporter(candidate, existing); err != nil {
		return err
	}
	return v.checkSuspiciousPrice(candidate, requirement)
}

// checkDuplicateExporter rejects the candidate when the same exporter already
// holds an active or accepted bid on the requirement. Withdrawn and rejected
// bids do not block resubmission.
func (v *IntegrityValidator) checkDuplicateExporter(candidate *Bid, existing []*Bid) error {
	for _, bid := range existing {
		if bid.ID == candidate.ID {
			continue
		}
		if bid.ExporterID == candidate.ExporterID && bid.Status.Blocks() {
			return shared.NewDomainError("DUPLICATE_BID",
				"Exporter already has an active or accepted bid on this requirement")
		}
	}
	return nil
}

// checkSuspiciousPrice rejects the candidate when its normalized price falls
// strictly below the floor ratio of the requirement's normalized target price.
// Requirements without a target price skip this rule.
func (v *IntegrityValidator) checkSuspiciousPrice(candidate *Bid, requirement *Requirement) error {
	targetBase := requirement.TargetPriceInBase()
	if targetBase == nil {
		return nil
	}

	floor := targetBase.Mul(v.priceFloorRatio)
	if candidate.NormalizedPrice().LessThan(floor) {
		return shared.NewDomainError("SUSPICIOUS_PRICE",
			fmt.Sprintf("Bid price is suspiciously low: below %s%% of the target price",
				v.priceFloorRatio.Mul(decimal.NewFromInt(100)).String()))
	}
	return nil
}
