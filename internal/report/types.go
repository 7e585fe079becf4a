// Package report turns raw conversion nodes into flat rows and derives the
// dashboard aggregates. Everything here is a pure function over its inputs.
package report

import "time"

// Conversion status vocabulary. Comparison is case-insensitive and unknown
// statuses pass through uncategorized.
const (
	StatusComplete  = "COMPLETE"
	StatusSettled   = "SETTLED"
	StatusPending   = "PENDING"
	StatusCancelled = "CANCELLED"
	StatusInvalid   = "INVALID"
)

// Row is one normalized line of the conversion report: one entry per
// (conversion, order, item) with the parent conversion's fields denormalized
// onto it. Conversion is the ordinal of the source node and is the row's only
// identity.
type Row struct {
	Conversion   int        `json:"conversion"`
	PurchaseTime time.Time  `json:"purchase_time"`
	CompleteTime *time.Time `json:"complete_time,omitempty"`
	Status       string     `json:"status"`
	Commission   float64    `json:"commission"`
	ItemName     string     `json:"item_name"`
	Qty          int64      `json:"qty"`
	ItemPrice    float64    `json:"item_price"`
}

// Summary holds the headline commission metrics for a date range.
type Summary struct {
	CompletedTotal float64 `json:"completed_total"`
	PendingTotal   float64 `json:"pending_total"`
	EstimatedTotal float64 `json:"estimated_total"`
	NetEstimate    float64 `json:"net_estimate"`
	Conversions    int     `json:"conversions"`
}

// StatusCommission is the commission total for one conversion status.
type StatusCommission struct {
	Status      string  `json:"status"`
	Commission  float64 `json:"commission"`
	Conversions int     `json:"conversions"`
}

// DailyCommission is the commission total for one civil day in the report
// zone.
type DailyCommission struct {
	Date        string  `json:"date"`
	Commission  float64 `json:"commission"`
	Conversions int     `json:"conversions"`
}

// ProductQty is the summed sold quantity for one product name.
type ProductQty struct {
	Product string `json:"product"`
	Qty     int64  `json:"qty_sold"`
}
