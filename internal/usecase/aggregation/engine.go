package aggregation

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/simaogato/salesdash-backend/internal/domain"
)

// ComputeAggregates builds both chart aggregates of a subset in one pass.
// The empty subset yields two empty (non-nil) sequences.
func ComputeAggregates(subset domain.Subset) domain.AggregateSet {
	// Key: item description, Value: position in items (first-seen order)
	itemIndex := make(map[string]int)
	items := make([]domain.ItemCount, 0)

	// Key: period, Value: running sum of line totals
	periodSums := make(map[domain.Period]decimal.Decimal)

	for i := 0; i < subset.Len(); i++ {
		r := subset.At(i)

		if idx, ok := itemIndex[r.Description]; ok {
			items[idx].Count++
		} else {
			itemIndex[r.Description] = len(items)
			items = append(items, domain.ItemCount{Item: r.Description, Count: 1})
		}

		sum, ok := periodSums[r.Period]
		if !ok {
			sum = decimal.Zero
		}
		periodSums[r.Period] = sum.Add(r.LineTotal)
	}

	return domain.AggregateSet{
		TopItems:     topItems(items, domain.TopItemsLimit),
		PeriodTotals: periodTotals(periodSums),
	}
}

// topItems sorts descending by count, keeping first-seen order on ties, then truncates
func topItems(items []domain.ItemCount, limit int) []domain.ItemCount {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Count > items[j].Count
	})
	if len(items) > limit {
		items = items[:limit]
	}
	out := make([]domain.ItemCount, len(items))
	copy(out, items)
	return out
}

// periodTotals orders the sums by period key ascending
func periodTotals(sums map[domain.Period]decimal.Decimal) []domain.PeriodTotal {
	periods := make([]domain.Period, 0, len(sums))
	for p := range sums {
		periods = append(periods, p)
	}
	sort.Slice(periods, func(i, j int) bool { return periods[i] < periods[j] })

	totals := make([]domain.PeriodTotal, 0, len(periods))
	for _, p := range periods {
		totals = append(totals, domain.PeriodTotal{Period: p, Total: sums[p]})
	}
	return totals
}
