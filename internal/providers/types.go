// Package providers defines the provider-facing data types shared by the
// affiliate integration and the service layer.
package providers

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Amount is a monetary or rate value. The affiliate endpoint is inconsistent
// about numeric encoding, so decoding accepts a JSON number, a quoted decimal
// string, or null, and any unusable value becomes zero instead of failing the
// whole batch.
type Amount float64

// UnmarshalJSON implements tolerant decoding. It never returns an error.
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		*a = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*a = 0
		return nil
	}
	*a = Amount(v)
	return nil
}

// MarshalJSON renders the amount as a plain JSON number.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(a))
}

// Quantity is an item count with the same decoding tolerance as Amount.
type Quantity int64

// UnmarshalJSON implements tolerant decoding. It never returns an error.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	var a Amount
	_ = a.UnmarshalJSON(data)
	*q = Quantity(a)
	return nil
}

// MarshalJSON renders the quantity as a plain JSON number.
func (q Quantity) MarshalJSON() ([]byte, error) {
	return json.Marshal(int64(q))
}

// ConversionNode is one record of the conversion report.
type ConversionNode struct {
	PurchaseTime     int64   `json:"purchaseTime"`
	CompleteTime     int64   `json:"completeTime"`
	ConversionStatus string  `json:"conversionStatus"`
	TotalCommission  Amount  `json:"totalCommission"`
	Orders           []Order `json:"orders"`
}

// Order groups the purchased items of a conversion.
type Order struct {
	Items []Item `json:"items"`
}

// Item is one purchased line item.
type Item struct {
	ItemName  string   `json:"itemName"`
	ItemPrice Amount   `json:"itemPrice"`
	Qty       Quantity `json:"qty"`
}

// Offer is a product or brand offer available to the affiliate.
type Offer struct {
	Name           string `json:"name"`
	CommissionRate Amount `json:"commission_rate"`
	OfferLink      string `json:"offer_link"`
}
