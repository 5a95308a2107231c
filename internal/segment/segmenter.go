// Package segment groups categorized transactions into discrete trips by
// date adjacency and location similarity.
package segment

import (
	"sort"
	"strings"
	"time"

	"github.com/triptally/triptally/internal/model"
)

// Params configures trip segmentation. Zero values fall back to defaults.
type Params struct {
	// MaxGapDays is the largest number of quiet days (days with no
	// transaction) allowed inside one trip before a new trip begins.
	MaxGapDays int
	// LocationWindowDays is how far outside a trip's date span a
	// differing-location transaction may fall and still be folded in.
	// Location is a hint, not a hard partition.
	LocationWindowDays int
}

// DefaultParams returns segmentation defaults tuned to avoid fragmenting a
// trip across a quiet day.
func DefaultParams() Params {
	return Params{MaxGapDays: 2, LocationWindowDays: 1}
}

func (p Params) normalized() Params {
	if p.MaxGapDays <= 0 {
		p.MaxGapDays = 2
	}
	if p.LocationWindowDays <= 0 {
		p.LocationWindowDays = 1
	}
	return p
}

// locationVote tracks the running primary-location election for a trip.
// Empty locations are excluded from the vote; ties go to first occurrence.
type locationVote struct {
	counts map[string]int
	order  []string
}

func newLocationVote() *locationVote {
	return &locationVote{counts: make(map[string]int)}
}

func (v *locationVote) add(location string) {
	key := strings.ToUpper(strings.TrimSpace(location))
	if key == "" {
		return
	}
	if _, seen := v.counts[key]; !seen {
		v.order = append(v.order, key)
	}
	v.counts[key]++
}

func (v *locationVote) winner() string {
	best := ""
	bestCount := 0
	for _, key := range v.order {
		if v.counts[key] > bestCount {
			best = key
			bestCount = v.counts[key]
		}
	}
	return best
}

// Segment partitions transactions into trips. Input need not be sorted; a
// stable sort by date (ties broken by input order) runs first, then a single
// forward pass assigns each transaction to the running trip or opens a new
// one. Every transaction lands in exactly one trip; an empty input yields an
// empty result. The pass is deterministic and idempotent for a fixed input.
func Segment(txns []model.CategorizedTransaction, params Params) []model.Trip {
	if len(txns) == 0 {
		return nil
	}
	params = params.normalized()

	sorted := make([]model.CategorizedTransaction, len(txns))
	copy(sorted, txns)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	var trips []model.Trip
	current := newBuilder(sorted[0])

	for _, txn := range sorted[1:] {
		if current.accepts(txn, params) {
			current.add(txn)
			continue
		}
		trips = append(trips, current.build())
		current = newBuilder(txn)
	}
	trips = append(trips, current.build())

	return trips
}

// builder accumulates one trip during the forward pass.
type builder struct {
	vote    *locationVote
	members []model.CategorizedTransaction
	start   time.Time
	end     time.Time
	total   float64
}

func newBuilder(first model.CategorizedTransaction) *builder {
	b := &builder{
		vote:  newLocationVote(),
		start: first.Date,
		end:   first.Date,
	}
	b.add(first)
	return b
}

// accepts decides whether txn belongs to the running trip. The date gap is
// counted in quiet days between the trip's end and the transaction, so a
// two-day maximum still folds in a charge three calendar days out.
func (b *builder) accepts(txn model.CategorizedTransaction, params Params) bool {
	gapDays := daysBetween(b.end, txn.Date)
	quietDays := gapDays - 1

	if quietDays > params.MaxGapDays {
		return false
	}

	// Same or unknown location always folds. A differing location only
	// folds within the location window of the trip's span.
	location := strings.ToUpper(strings.TrimSpace(txn.Location))
	primary := b.vote.winner()
	if location == "" || primary == "" || location == primary {
		return true
	}
	return gapDays <= params.LocationWindowDays
}

func (b *builder) add(txn model.CategorizedTransaction) {
	b.members = append(b.members, txn)
	b.total += txn.Amount
	b.vote.add(txn.Location)
	if txn.Date.Before(b.start) {
		b.start = txn.Date
	}
	if txn.Date.After(b.end) {
		b.end = txn.Date
	}
}

func (b *builder) build() model.Trip {
	return model.Trip{
		StartDate:       b.start,
		EndDate:         b.end,
		PrimaryLocation: b.vote.winner(),
		Transactions:    b.members,
		TotalAmount:     b.total,
	}
}

func daysBetween(earlier, later time.Time) int {
	e := time.Date(earlier.Year(), earlier.Month(), earlier.Day(), 0, 0, 0, 0, time.UTC)
	l := time.Date(later.Year(), later.Month(), later.Day(), 0, 0, 0, 0, time.UTC)
	return int(l.Sub(e).Hours() / 24)
}
