package shopee

import (
	"context"
	"encoding/json"

	"github.com/painel-afiliado/service-affiliate/internal/domain/affiliate"
)

type shortLinkData struct {
	GenerateShortLink struct {
		ShortLinkList []struct {
			ShortLink string `json:"shortLink"`
		} `json:"shortLinkList"`
	} `json:"generateShortLink"`
}

// GenerateShortLink wraps the given product URL in an affiliate short link.
// A pure request/response pair; nothing is retained.
func (c *Client) GenerateShortLink(ctx context.Context, originURL string) (string, error) {
	query, err := BuildQuery(OpGenerateShortLink, QueryParams{OriginURL: originURL})
	if err != nil {
		return "", err
	}

	data, err := c.Execute(ctx, query)
	if err != nil {
		return "", err
	}

	var out shortLinkData
	if err := json.Unmarshal(data, &out); err != nil {
		return "", affiliate.NewDataShapeError("short link envelope could not be decoded")
	}

	if len(out.GenerateShortLink.ShortLinkList) == 0 {
		return "", affiliate.NewDataShapeError("short link list came back empty")
	}

	return out.GenerateShortLink.ShortLinkList[0].ShortLink, nil
}
