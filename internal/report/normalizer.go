package report

import (
	"time"

	"github.com/painel-afiliado/service-affiliate/internal/domain/affiliate"
	"github.com/painel-afiliado/service-affiliate/internal/providers"
)

// Flatten walks the nested node/order/item structure into flat rows: for
// every node, for every order, for every item, one Row. A node with no
// orders or no items contributes zero rows. Timestamps are localized to the
// report zone.
func Flatten(nodes []providers.ConversionNode) []Row {
	loc := affiliate.ReportLocation()
	rows := make([]Row, 0, len(nodes))

	for i, node := range nodes {
		var completeTime *time.Time
		if node.CompleteTime > 0 {
			t := time.Unix(node.CompleteTime, 0).In(loc)
			completeTime = &t
		}

		for _, order := range node.Orders {
			for _, item := range order.Items {
				rows = append(rows, Row{
					Conversion:   i,
					PurchaseTime: time.Unix(node.PurchaseTime, 0).In(loc),
					CompleteTime: completeTime,
					Status:       node.ConversionStatus,
					Commission:   float64(node.TotalCommission),
					ItemName:     item.ItemName,
					Qty:          int64(item.Qty),
					ItemPrice:    float64(item.ItemPrice),
				})
			}
		}
	}

	return rows
}
