package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/painel-afiliado/service-affiliate/internal/domain/affiliate"
	"github.com/painel-afiliado/service-affiliate/internal/providers"
)

type fakeProvider struct {
	nodes       []providers.ConversionNode
	reportCalls int
	reportErr   error

	shortLink string
	rawCalls  int
}

func (f *fakeProvider) GetConversionReport(ctx context.Context, dateRange affiliate.DateRange) ([]providers.ConversionNode, error) {
	f.reportCalls++
	if f.reportErr != nil {
		return nil, f.reportErr
	}
	return f.nodes, nil
}

func (f *fakeProvider) GetRawConversionReport(ctx context.Context, dateRange affiliate.DateRange) (json.RawMessage, error) {
	f.rawCalls++
	return json.RawMessage(`{"conversionReport":{"nodes":[]}}`), nil
}

func (f *fakeProvider) GetProductOffers(ctx context.Context) ([]providers.Offer, error) {
	return []providers.Offer{{Name: "Oferta", CommissionRate: 0.05}}, nil
}

func (f *fakeProvider) GetBrandOffers(ctx context.Context) ([]providers.Offer, error) {
	return nil, nil
}

func (f *fakeProvider) GenerateShortLink(ctx context.Context, originURL string) (string, error) {
	return f.shortLink, nil
}

func setupServiceTest(t *testing.T, provider AffiliateProvider) *ReportService {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	cache := NewReportCacheService(client, 10*time.Minute, zap.NewNop())
	return NewReportService(provider, cache, nil, zap.NewNop())
}

func TestGetReportServesSecondCallFromCache(t *testing.T) {
	provider := &fakeProvider{
		nodes: []providers.ConversionNode{
			{
				PurchaseTime:     1710050000,
				ConversionStatus: "COMPLETE",
				TotalCommission:  10,
				Orders: []providers.Order{
					{Items: []providers.Item{{ItemName: "Fone", ItemPrice: 5, Qty: 2}}},
				},
			},
		},
	}
	svc := setupServiceTest(t, provider)
	ctx := context.Background()
	dr := testDateRange(t)

	first, err := svc.GetReport(ctx, dr, false)
	require.NoError(t, err)
	assert.False(t, first.FromCache)
	require.Len(t, first.Rows, 1)
	assert.InDelta(t, 10, first.Summary.CompletedTotal, 1e-9)

	second, err := svc.GetReport(ctx, dr, false)
	require.NoError(t, err)
	assert.True(t, second.FromCache)
	assert.Equal(t, first.Rows, second.Rows)
	assert.Equal(t, 1, provider.reportCalls)
}

func TestGetReportForceRefreshBypassesCache(t *testing.T) {
	provider := &fakeProvider{}
	svc := setupServiceTest(t, provider)
	ctx := context.Background()
	dr := testDateRange(t)

	_, err := svc.GetReport(ctx, dr, false)
	require.NoError(t, err)

	result, err := svc.GetReport(ctx, dr, true)
	require.NoError(t, err)
	assert.False(t, result.FromCache)
	assert.Equal(t, 2, provider.reportCalls)
}

func TestGetReportPropagatesProviderError(t *testing.T) {
	provider := &fakeProvider{
		reportErr: affiliate.NewAPIError("Invalid Signature", 200),
	}
	svc := setupServiceTest(t, provider)

	_, err := svc.GetReport(context.Background(), testDateRange(t), false)
	require.Error(t, err)
	assert.ErrorIs(t, err, affiliate.ErrAPI)
	assert.Equal(t, 0, provider.rawCalls)
}

func TestGetReportWithoutCache(t *testing.T) {
	provider := &fakeProvider{}
	svc := NewReportService(provider, nil, nil, zap.NewNop())
	ctx := context.Background()
	dr := testDateRange(t)

	_, err := svc.GetReport(ctx, dr, false)
	require.NoError(t, err)
	_, err = svc.GetReport(ctx, dr, false)
	require.NoError(t, err)

	// Every call goes to the provider when no cache is wired.
	assert.Equal(t, 2, provider.reportCalls)
}

func TestGetRawReportAlwaysLive(t *testing.T) {
	provider := &fakeProvider{}
	svc := setupServiceTest(t, provider)
	ctx := context.Background()
	dr := testDateRange(t)

	_, err := svc.GetReport(ctx, dr, false)
	require.NoError(t, err)

	raw, err := svc.GetRawReport(ctx, dr)
	require.NoError(t, err)
	assert.JSONEq(t, `{"conversionReport":{"nodes":[]}}`, string(raw))

	_, err = svc.GetRawReport(ctx, dr)
	require.NoError(t, err)
	assert.Equal(t, 2, provider.rawCalls)
}

func TestGenerateShortLink(t *testing.T) {
	provider := &fakeProvider{shortLink: "https://s.shopee.com.br/abc123"}
	svc := NewReportService(provider, nil, nil, zap.NewNop())

	link, err := svc.GenerateShortLink(context.Background(), "https://shopee.com.br/produto")
	require.NoError(t, err)
	assert.Equal(t, "https://s.shopee.com.br/abc123", link)
}
