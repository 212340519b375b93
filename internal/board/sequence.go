package board

// Daily sequence suggestion for delivery orders. This is deliberately not
// an allocator: the operator may override the suggestion, two stations may
// settle on the same number, and nothing checks uniqueness at write time.
// Staff reuse numbers on purpose, so upgrading this to a strict counter
// would change observable behavior. Route orders never use this path; they
// take the atomic per-date counter instead.

const (
	minDailySeq = 1
	maxDailySeq = 100
)

// SuggestDailySeq returns max(daily seq among the date's delivery orders)+1,
// clamped to [1,100].
func SuggestDailySeq(orders []*Order, businessDate string) int {
	max := 0
	for _, o := range orders {
		if o.Kind != KindDelivery || o.BusinessDate != businessDate {
			continue
		}
		if o.DailySeq > max {
			max = o.DailySeq
		}
	}
	next := max + 1
	if next < minDailySeq {
		next = minDailySeq
	}
	if next > maxDailySeq {
		next = maxDailySeq
	}
	return next
}
