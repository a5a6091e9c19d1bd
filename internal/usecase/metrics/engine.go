package metrics

import (
	"github.com/shopspring/decimal"
	"github.com/simaogato/salesdash-backend/internal/domain"
)

// ComputeMetrics calculates the headline metrics of a subset.
// Logic:
//   - TotalRevenue: sum of line totals
//   - AverageValue: TotalRevenue / number of line records (0 for an empty subset)
//   - OrderCount: number of distinct order identifiers
//
// The empty subset yields the zero snapshot, never an error.
func ComputeMetrics(subset domain.Subset) domain.MetricsSnapshot {
	n := subset.Len()
	if n == 0 {
		return domain.MetricsSnapshot{
			TotalRevenue: decimal.Zero,
			AverageValue: decimal.Zero,
		}
	}

	revenue := decimal.Zero
	var quantity int64
	orders := make(map[string]struct{})

	for i := 0; i < n; i++ {
		r := subset.At(i)
		revenue = revenue.Add(r.LineTotal)
		quantity += r.Quantity
		orders[r.OrderID] = struct{}{}
	}

	return domain.MetricsSnapshot{
		TotalRevenue:  revenue,
		AverageValue:  revenue.Div(decimal.NewFromInt(int64(n))),
		OrderCount:    len(orders),
		RecordCount:   n,
		TotalQuantity: quantity,
	}
}
