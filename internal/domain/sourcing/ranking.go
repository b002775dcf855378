package sourcing

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RankedBid is a bid annotated with the values the ranking was computed from.
type RankedBid struct {
	Bid              *Bid
	Position         int
	NormalizedPrice  decimal.Decimal
	NormalizedDays   int
	ReliabilityScore float64
}

// HistoryProvider resolves an exporter's track record for reliability scoring.
type HistoryProvider func(exporterID uuid.UUID) ExporterHistory

// RankBids orders active bids for presentation: normalized price ascending,
// then normalized delivery days ascending, then reliability descending. The
// sort is stable, so bids tied on all three keys keep submission order.
// Non-active bids are excluded.
func RankBids(bids []*Bid, history HistoryProvider) []RankedBid {
	ranked := make([]RankedBid, 0, len(bids))
	for _, b := range bids {
		if !b.IsActive() {
			continue
		}
		var score float64
		if history != nil {
			score = ReliabilityScore(history(b.ExporterID))
		}
		ranked = append(ranked, RankedBid{
			Bid:              b,
			NormalizedPrice:  b.NormalizedPrice(),
			NormalizedDays:   b.NormalizedDeliveryDays(),
			ReliabilityScore: score,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if !ranked[i].NormalizedPrice.Equal(ranked[j].NormalizedPrice) {
			return ranked[i].NormalizedPrice.LessThan(ranked[j].NormalizedPrice)
		}
		if ranked[i].NormalizedDays != ranked[j].NormalizedDays {
			return ranked[i].NormalizedDays < ranked[j].NormalizedDays
		}
		return ranked[i].ReliabilityScore > ranked[j].ReliabilityScore
	})

	for i := range ranked {
		ranked[i].Position = i + 1
	}
	return ranked
}
