package shopee

import (
	"context"
	"encoding/json"

	"github.com/painel-afiliado/service-affiliate/internal/domain/affiliate"
	"github.com/painel-afiliado/service-affiliate/internal/providers"
)

type productOfferData struct {
	ProductOfferV2 struct {
		Nodes []struct {
			ProductName    string            `json:"productName"`
			CommissionRate providers.Amount  `json:"commissionRate"`
			OfferLink      string            `json:"offerLink"`
		} `json:"nodes"`
	} `json:"productOfferV2"`
}

type brandOfferData struct {
	BrandOffer struct {
		Nodes []struct {
			OfferName      string            `json:"offerName"`
			CommissionRate providers.Amount  `json:"commissionRate"`
			OfferLink      string            `json:"offerLink"`
		} `json:"nodes"`
	} `json:"brandOffer"`
}

// GetProductOffers fetches the current product offer listing.
func (c *Client) GetProductOffers(ctx context.Context) ([]providers.Offer, error) {
	query, err := BuildQuery(OpProductOffer, QueryParams{})
	if err != nil {
		return nil, err
	}

	data, err := c.Execute(ctx, query)
	if err != nil {
		return nil, err
	}

	var out productOfferData
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, affiliate.NewDataShapeError("product offer envelope could not be decoded")
	}

	offers := make([]providers.Offer, 0, len(out.ProductOfferV2.Nodes))
	for _, n := range out.ProductOfferV2.Nodes {
		offers = append(offers, providers.Offer{
			Name:           n.ProductName,
			CommissionRate: n.CommissionRate,
			OfferLink:      n.OfferLink,
		})
	}
	return offers, nil
}

// GetBrandOffers fetches the current brand offer listing.
func (c *Client) GetBrandOffers(ctx context.Context) ([]providers.Offer, error) {
	query, err := BuildQuery(OpBrandOffer, QueryParams{})
	if err != nil {
		return nil, err
	}

	data, err := c.Execute(ctx, query)
	if err != nil {
		return nil, err
	}

	var out brandOfferData
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, affiliate.NewDataShapeError("brand offer envelope could not be decoded")
	}

	offers := make([]providers.Offer, 0, len(out.BrandOffer.Nodes))
	for _, n := range out.BrandOffer.Nodes {
		offers = append(offers, providers.Offer{
			Name:           n.OfferName,
			CommissionRate: n.CommissionRate,
			OfferLink:      n.OfferLink,
		})
	}
	return offers, nil
}
