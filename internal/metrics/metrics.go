// Package metrics derives dashboard figures from submission snapshots. The
// snapshots are eventually consistent; callers re-fetch after mutations rather
// than patching totals in place.
package metrics

import (
	"sort"
	"strings"
	"time"

	"github.com/zabava/dashboard-go/internal/model"
)

type Totals struct {
	Submissions     int     `json:"submissions"`
	People          int     `json:"people"`
	Revenue         float64 `json:"revenue"`
	EstimatedPoints int     `json:"estimatedPoints"`
	Visited         int     `json:"visited"`
	Redeemed        int     `json:"redeemed"`
}

type DailyPoint struct {
	Date        string  `json:"date"`
	Submissions int     `json:"submissions"`
	People      int     `json:"people"`
	Revenue     float64 `json:"revenue"`
}

// Aggregate computes the headline totals over a submission snapshot.
func Aggregate(records []model.SubmissionRecord) Totals {
	var t Totals
	for _, r := range records {
		t.Submissions++
		t.People += r.NumPeople
		t.Revenue += r.TotalPrice
		t.EstimatedPoints += r.EstimatedPoints
		if r.Visited {
			t.Visited++
		}
		if r.Used {
			t.Redeemed++
		}
	}
	return t
}

// DailySeries buckets submissions by creation date (UTC) for the charts,
// oldest day first. Days with no submissions are omitted.
func DailySeries(records []model.SubmissionRecord) []DailyPoint {
	byDay := make(map[string]*DailyPoint)
	for _, r := range records {
		day := r.CreatedAt.UTC().Format(time.DateOnly)
		point, ok := byDay[day]
		if !ok {
			point = &DailyPoint{Date: day}
			byDay[day] = point
		}
		point.Submissions++
		point.People += r.NumPeople
		point.Revenue += r.TotalPrice
	}

	out := make([]DailyPoint, 0, len(byDay))
	for _, point := range byDay {
		out = append(out, *point)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// Search filters submissions by a case-insensitive match on email, ticket or
// redemption code. An empty query returns the input unchanged.
func Search(records []model.SubmissionRecord, query string) []model.SubmissionRecord {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return records
	}

	out := make([]model.SubmissionRecord, 0, len(records))
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.Email), query) ||
			strings.Contains(strings.ToLower(r.Ticket), query) ||
			strings.Contains(strings.ToLower(r.RedemptionCode), query) {
			out = append(out, r)
		}
	}
	return out
}

// SortNewestFirst orders a copy of the snapshot by creation time descending,
// the dashboard's default table order.
func SortNewestFirst(records []model.SubmissionRecord) []model.SubmissionRecord {
	out := append([]model.SubmissionRecord(nil), records...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Pending returns the submissions not yet visited, used by the partner view's
// follow-up list.
func Pending(records []model.SubmissionRecord) []model.SubmissionRecord {
	out := make([]model.SubmissionRecord, 0, len(records))
	for _, r := range records {
		if !r.Visited {
			out = append(out, r)
		}
	}
	return out
}
