package aggregation

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/salesdash-backend/internal/domain"
	"github.com/simaogato/salesdash-backend/internal/usecase/metrics"
)

func record(item string, total string, period domain.Period) domain.Record {
	return domain.Record{
		RawRecord: domain.RawRecord{OrderID: "1", Description: item, Quantity: 1, UnitPrice: decimal.RequireFromString(total)},
		LineTotal: decimal.RequireFromString(total),
		Period:    period,
	}
}

func TestComputeAggregates_ThreeRecordScenario(t *testing.T) {
	table := domain.NewRecordTable([]domain.Record{
		record("A", "11.00", "2010-12"),
		record("B", "5.00", "2010-12"),
		record("A", "15.00", "2011-01"),
	})

	aggs := ComputeAggregates(table.All())

	assert.Equal(t, []domain.ItemCount{{Item: "A", Count: 2}, {Item: "B", Count: 1}}, aggs.TopItems)
	require.Len(t, aggs.PeriodTotals, 2)
	assert.Equal(t, domain.Period("2010-12"), aggs.PeriodTotals[0].Period)
	assert.True(t, aggs.PeriodTotals[0].Total.Equal(decimal.NewFromInt(16)))
	assert.Equal(t, domain.Period("2011-01"), aggs.PeriodTotals[1].Period)
	assert.True(t, aggs.PeriodTotals[1].Total.Equal(decimal.NewFromInt(15)))
}

func TestComputeAggregates_TopItemsLimit(t *testing.T) {
	// 12 distinct items, item i appears i+1 times
	var records []domain.Record
	for i := 0; i < 12; i++ {
		for j := 0; j <= i; j++ {
			records = append(records, record(fmt.Sprintf("ITEM %02d", i), "1", "2010-12"))
		}
	}

	aggs := ComputeAggregates(domain.NewRecordTable(records).All())

	require.Len(t, aggs.TopItems, domain.TopItemsLimit)
	assert.Equal(t, domain.ItemCount{Item: "ITEM 11", Count: 12}, aggs.TopItems[0])
	assert.Equal(t, domain.ItemCount{Item: "ITEM 02", Count: 3}, aggs.TopItems[9])
	for i := 1; i < len(aggs.TopItems); i++ {
		assert.GreaterOrEqual(t, aggs.TopItems[i-1].Count, aggs.TopItems[i].Count)
	}
}

func TestComputeAggregates_TiesKeepFirstSeenOrder(t *testing.T) {
	table := domain.NewRecordTable([]domain.Record{
		record("ZEBRA", "1", "2010-12"),
		record("APPLE", "1", "2010-12"),
		record("MANGO", "1", "2010-12"),
		record("APPLE", "1", "2010-12"),
		record("ZEBRA", "1", "2010-12"),
	})

	aggs := ComputeAggregates(table.All())

	assert.Equal(t, []domain.ItemCount{
		{Item: "ZEBRA", Count: 2},
		{Item: "APPLE", Count: 2},
		{Item: "MANGO", Count: 1},
	}, aggs.TopItems)
}

func TestComputeAggregates_PeriodsAscendingRegardlessOfTableOrder(t *testing.T) {
	table := domain.NewRecordTable([]domain.Record{
		record("A", "1", "2011-03"),
		record("A", "2", "2010-12"),
		record("A", "3", "2011-01"),
	})

	aggs := ComputeAggregates(table.Filter(domain.NewFilterSelection("2011-03", "2010-12", "2011-01")))

	periods := make([]domain.Period, 0, len(aggs.PeriodTotals))
	for _, pt := range aggs.PeriodTotals {
		periods = append(periods, pt.Period)
	}
	assert.Equal(t, []domain.Period{"2010-12", "2011-01", "2011-03"}, periods)
}

func TestComputeAggregates_PeriodTotalsSumToRevenue(t *testing.T) {
	table := domain.NewRecordTable([]domain.Record{
		record("A", "11.25", "2010-12"),
		record("B", "-3.10", "2010-12"),
		record("C", "0.05", "2011-01"),
		record("D", "1000.00", "2011-02"),
	})
	subset := table.All()

	aggs := ComputeAggregates(subset)
	snapshot := metrics.ComputeMetrics(subset)

	sum := decimal.Zero
	for _, pt := range aggs.PeriodTotals {
		sum = sum.Add(pt.Total)
	}
	assert.True(t, sum.Equal(snapshot.TotalRevenue), "sum of period totals %s should equal revenue %s", sum, snapshot.TotalRevenue)
}

func TestComputeAggregates_EmptySubset(t *testing.T) {
	aggs := ComputeAggregates(domain.Subset{})

	assert.NotNil(t, aggs.TopItems)
	assert.NotNil(t, aggs.PeriodTotals)
	assert.Empty(t, aggs.TopItems)
	assert.Empty(t, aggs.PeriodTotals)
}
