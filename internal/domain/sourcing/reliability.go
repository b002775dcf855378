package sourcing

// ExporterHistory is a snapshot of an exporter's track record used for
// reliability scoring. All fields are supplied by the caller so the score
// stays a pure function.
type ExporterHistory struct {
	AccountAgeDays  int
	CompletedOrders int
	OnTimeRate      float64
}

// ReliabilityScore computes a deterministic 0..10 score from an exporter's
// history. Account age contributes up to 5 points, one per 30 days. Delivery
// history contributes up to 5 points, scaled by the on-time rate and capped
// at 10 completed orders.
func ReliabilityScore(h ExporterHistory) float64 {
	ageScore := float64(h.AccountAgeDays) / 30.0
	if ageScore > 5 {
		ageScore = 5
	}
	if ageScore < 0 {
		ageScore = 0
	}

	completed := h.CompletedOrders
	if completed > 10 {
		completed = 10
	}
	if completed < 0 {
		completed = 0
	}
	rate := h.OnTimeRate
	if rate > 1 {
		rate = 1
	}
	if rate < 0 {
		rate = 0
	}
	historyScore := 5.0 * rate * float64(completed) / 10.0

	return ageScore + historyScore
}
