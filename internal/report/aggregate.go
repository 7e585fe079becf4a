package report

import (
	"sort"
	"strings"
	"time"

	"github.com/painel-afiliado/service-affiliate/internal/domain/affiliate"
	"github.com/painel-afiliado/service-affiliate/internal/providers"
)

// netRate is the fixed 11% platform deduction applied to the gross estimate.
const netRate = 0.89

// defaultTopProducts caps the product ranking length.
const defaultTopProducts = 10

// Commission aggregates run over conversion nodes, not rows, so a
// conversion is counted exactly once no matter how many items it carries and
// conversions with no itemized orders still contribute their commission.
// Item aggregates (TopProducts) run over rows.

func isCompleted(status string) bool {
	switch strings.ToUpper(status) {
	case StatusComplete, StatusSettled:
		return true
	}
	return false
}

func isPending(status string) bool {
	return strings.ToUpper(status) == StatusPending
}

// Summarize derives the headline totals from the conversion nodes.
func Summarize(nodes []providers.ConversionNode) Summary {
	var completed, pending float64
	for _, node := range nodes {
		switch {
		case isCompleted(node.ConversionStatus):
			completed += float64(node.TotalCommission)
		case isPending(node.ConversionStatus):
			pending += float64(node.TotalCommission)
		}
	}

	estimated := completed + pending
	return Summary{
		CompletedTotal: completed,
		PendingTotal:   pending,
		EstimatedTotal: estimated,
		NetEstimate:    estimated * netRate,
		Conversions:    len(nodes),
	}
}

// CommissionByStatus groups commission per (uppercased) conversion status,
// sorted by status name for a stable chart order.
func CommissionByStatus(nodes []providers.ConversionNode) []StatusCommission {
	grouped := make(map[string]*StatusCommission)
	for _, node := range nodes {
		status := strings.ToUpper(node.ConversionStatus)
		entry, ok := grouped[status]
		if !ok {
			entry = &StatusCommission{Status: status}
			grouped[status] = entry
		}
		entry.Commission += float64(node.TotalCommission)
		entry.Conversions++
	}

	result := make([]StatusCommission, 0, len(grouped))
	for _, entry := range grouped {
		result = append(result, *entry)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Status < result[j].Status
	})
	return result
}

// CommissionByDay groups commission per civil day of the purchase time in the
// report zone, sorted by date.
func CommissionByDay(nodes []providers.ConversionNode) []DailyCommission {
	loc := affiliate.ReportLocation()
	grouped := make(map[string]*DailyCommission)
	for _, node := range nodes {
		date := time.Unix(node.PurchaseTime, 0).In(loc).Format("2006-01-02")
		entry, ok := grouped[date]
		if !ok {
			entry = &DailyCommission{Date: date}
			grouped[date] = entry
		}
		entry.Commission += float64(node.TotalCommission)
		entry.Conversions++
	}

	result := make([]DailyCommission, 0, len(grouped))
	for _, entry := range grouped {
		result = append(result, *entry)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date < result[j].Date
	})
	return result
}

// TopProducts sums sold quantity per product name over the rows and returns
// the top entries by descending quantity, truncated to limit (10 when limit
// is not positive). Ties keep first-appearance order.
func TopProducts(rows []Row, limit int) []ProductQty {
	if limit <= 0 {
		limit = defaultTopProducts
	}

	index := make(map[string]int)
	ranked := make([]ProductQty, 0)
	for _, row := range rows {
		i, ok := index[row.ItemName]
		if !ok {
			i = len(ranked)
			index[row.ItemName] = i
			ranked = append(ranked, ProductQty{Product: row.ItemName})
		}
		ranked[i].Qty += row.Qty
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Qty > ranked[j].Qty
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
