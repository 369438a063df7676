package handler

import (
	"time"

	"gatepass/internal/activity/models"
	attendeemodels "gatepass/internal/attendee/models"
)

// RecordResponse is the wire form of one activity record.
type RecordResponse struct {
	AttendeeID   string    `json:"attendee_id"`
	AttendeeCode string    `json:"attendee_code"`
	Action       string    `json:"action"`
	Day          int       `json:"day"`
	PerformedBy  string    `json:"performed_by"`
	PerformedAt  time.Time `json:"performed_at"`
}

// SummaryResponse is the wire form of the dashboard counts.
type SummaryResponse struct {
	Total        int            `json:"total"`
	ByCategory   map[string]int `json:"by_category"`
	Day1Entrance int            `json:"day1_entrance"`
	Day1Lunch    int            `json:"day1_lunch"`
	Day1Dinner   int            `json:"day1_dinner"`
	Day2Entrance int            `json:"day2_entrance"`
	Day2Lunch    int            `json:"day2_lunch"`
	KitsIssued   int            `json:"kits_issued"`
}

// FromRecords converts a feed page, never returning null for empty.
func FromRecords(records []models.Record) []RecordResponse {
	out := make([]RecordResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, RecordResponse{
			AttendeeID:   rec.AttendeeID.String(),
			AttendeeCode: rec.AttendeeCode,
			Action:       rec.Action.String(),
			Day:          int(rec.Day),
			PerformedBy:  rec.PerformedBy,
			PerformedAt:  rec.PerformedAt,
		})
	}
	return out
}

// FromSummary converts the dashboard counts to their wire form.
func FromSummary(sum *attendeemodels.Summary) *SummaryResponse {
	byCategory := make(map[string]int, len(sum.ByCategory))
	for category, n := range sum.ByCategory {
		byCategory[category.String()] = n
	}
	return &SummaryResponse{
		Total:        sum.Total,
		ByCategory:   byCategory,
		Day1Entrance: sum.Day1Entrance,
		Day1Lunch:    sum.Day1Lunch,
		Day1Dinner:   sum.Day1Dinner,
		Day2Entrance: sum.Day2Entrance,
		Day2Lunch:    sum.Day2Lunch,
		KitsIssued:   sum.KitsIssued,
	}
}
