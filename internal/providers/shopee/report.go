package shopee

import (
	"context"
	"encoding/json"

	"github.com/painel-afiliado/service-affiliate/internal/domain/affiliate"
	"github.com/painel-afiliado/service-affiliate/internal/providers"
)

type conversionReportData struct {
	ConversionReport struct {
		Nodes []providers.ConversionNode `json:"nodes"`
	} `json:"conversionReport"`
}

// GetConversionReport fetches the first page of conversion nodes for the
// given date range.
func (c *Client) GetConversionReport(ctx context.Context, dateRange affiliate.DateRange) ([]providers.ConversionNode, error) {
	query, err := BuildQuery(OpConversionReport, QueryParams{Range: dateRange})
	if err != nil {
		return nil, err
	}

	data, err := c.Execute(ctx, query)
	if err != nil {
		return nil, err
	}

	var out conversionReportData
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, affiliate.NewDataShapeError("conversion report envelope could not be decoded")
	}

	return out.ConversionReport.Nodes, nil
}

// GetRawConversionReport fetches the conversion report and returns the raw
// data envelope for ad hoc inspection.
func (c *Client) GetRawConversionReport(ctx context.Context, dateRange affiliate.DateRange) (json.RawMessage, error) {
	query, err := BuildQuery(OpConversionReport, QueryParams{Range: dateRange})
	if err != nil {
		return nil, err
	}
	return c.Execute(ctx, query)
}
