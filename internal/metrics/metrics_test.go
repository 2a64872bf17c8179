package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zabava/dashboard-go/internal/model"
)

func day(s string) time.Time {
	t, _ := time.Parse(time.DateOnly, s)
	return t
}

func sampleRecords() []model.SubmissionRecord {
	return []model.SubmissionRecord{
		{Email: "ana@example.com", Ticket: "family", NumPeople: 4, TotalPrice: 120, EstimatedPoints: 12, Visited: true, Used: true, CreatedAt: day("2026-08-01"), RedemptionCode: "ZB-AAA"},
		{Email: "bo@example.com", Ticket: "single", NumPeople: 1, TotalPrice: 35, EstimatedPoints: 3, Visited: true, CreatedAt: day("2026-08-01")},
		{Email: "cara@example.com", Ticket: "group", NumPeople: 10, TotalPrice: 280, EstimatedPoints: 28, CreatedAt: day("2026-08-03")},
	}
}

func TestAggregate(t *testing.T) {
	t.Run("sums the snapshot", func(t *testing.T) {
		totals := Aggregate(sampleRecords())

		assert.Equal(t, 3, totals.Submissions)
		assert.Equal(t, 15, totals.People)
		assert.InDelta(t, 435.0, totals.Revenue, 0.001)
		assert.Equal(t, 43, totals.EstimatedPoints)
		assert.Equal(t, 2, totals.Visited)
		assert.Equal(t, 1, totals.Redeemed)
	})

	t.Run("empty snapshot yields zero totals", func(t *testing.T) {
		assert.Equal(t, Totals{}, Aggregate(nil))
	})
}

func TestDailySeries(t *testing.T) {
	t.Run("buckets by day, oldest first", func(t *testing.T) {
		series := DailySeries(sampleRecords())

		require.Len(t, series, 2)
		assert.Equal(t, "2026-08-01", series[0].Date)
		assert.Equal(t, 2, series[0].Submissions)
		assert.Equal(t, 5, series[0].People)
		assert.InDelta(t, 155.0, series[0].Revenue, 0.001)
		assert.Equal(t, "2026-08-03", series[1].Date)
		assert.Equal(t, 1, series[1].Submissions)
	})

	t.Run("days without submissions are omitted", func(t *testing.T) {
		series := DailySeries(sampleRecords())
		for _, p := range series {
			assert.NotEqual(t, "2026-08-02", p.Date)
		}
	})
}

func TestSearch(t *testing.T) {
	records := sampleRecords()

	t.Run("matches email case-insensitively", func(t *testing.T) {
		out := Search(records, "ANA@")
		require.Len(t, out, 1)
		assert.Equal(t, "ana@example.com", out[0].Email)
	})

	t.Run("matches ticket and redemption code", func(t *testing.T) {
		assert.Len(t, Search(records, "group"), 1)
		assert.Len(t, Search(records, "zb-aaa"), 1)
	})

	t.Run("empty query returns everything", func(t *testing.T) {
		assert.Len(t, Search(records, "  "), 3)
	})

	t.Run("no match returns empty", func(t *testing.T) {
		assert.Empty(t, Search(records, "nobody"))
	})
}

func TestSortAndFilter(t *testing.T) {
	t.Run("newest first leaves the input untouched", func(t *testing.T) {
		records := sampleRecords()
		out := SortNewestFirst(records)

		require.Len(t, out, 3)
		assert.Equal(t, "cara@example.com", out[0].Email)
		assert.Equal(t, "ana@example.com", records[0].Email)
	})

	t.Run("pending keeps only unvisited submissions", func(t *testing.T) {
		out := Pending(sampleRecords())
		require.Len(t, out, 1)
		assert.Equal(t, "cara@example.com", out[0].Email)
	})
}
