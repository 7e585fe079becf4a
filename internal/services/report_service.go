package services

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/painel-afiliado/service-affiliate/internal/domain/affiliate"
	"github.com/painel-afiliado/service-affiliate/internal/events"
	"github.com/painel-afiliado/service-affiliate/internal/providers"
	"github.com/painel-afiliado/service-affiliate/internal/report"
)

// AffiliateProvider is the provider surface the report service depends on.
type AffiliateProvider interface {
	GetConversionReport(ctx context.Context, dateRange affiliate.DateRange) ([]providers.ConversionNode, error)
	GetRawConversionReport(ctx context.Context, dateRange affiliate.DateRange) (json.RawMessage, error)
	GetProductOffers(ctx context.Context) ([]providers.Offer, error)
	GetBrandOffers(ctx context.Context) ([]providers.Offer, error)
	GenerateShortLink(ctx context.Context, originURL string) (string, error)
}

// ReportService orchestrates the fetch pipeline: memo cache, provider call,
// normalization and aggregation, plus optional event publication.
type ReportService struct {
	provider  AffiliateProvider
	cache     *ReportCacheService
	publisher *events.Publisher
	logger    *zap.Logger
}

// NewReportService creates a new report service. Cache and publisher may be
// nil; both degrade gracefully.
func NewReportService(provider AffiliateProvider, cache *ReportCacheService, publisher *events.Publisher, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		provider:  provider,
		cache:     cache,
		publisher: publisher,
		logger:    logger,
	}
}

// ReportResult is the fully derived report for a date range.
type ReportResult struct {
	Rows      []report.Row   `json:"rows"`
	Summary   report.Summary `json:"summary"`
	FromCache bool           `json:"from_cache"`
}

// GetReport returns the normalized report for the date range, serving from
// the memo cache when a fresh entry exists. forceRefresh bypasses the cache.
func (s *ReportService) GetReport(ctx context.Context, dateRange affiliate.DateRange, forceRefresh bool) (*ReportResult, error) {
	nodes, fromCache, err := s.getNodes(ctx, dateRange, forceRefresh)
	if err != nil {
		return nil, err
	}

	return &ReportResult{
		Rows:      report.Flatten(nodes),
		Summary:   report.Summarize(nodes),
		FromCache: fromCache,
	}, nil
}

// GetNodes returns the raw conversion nodes for the date range, cached the
// same way as GetReport.
func (s *ReportService) GetNodes(ctx context.Context, dateRange affiliate.DateRange, forceRefresh bool) ([]providers.ConversionNode, bool, error) {
	return s.getNodes(ctx, dateRange, forceRefresh)
}

func (s *ReportService) getNodes(ctx context.Context, dateRange affiliate.DateRange, forceRefresh bool) ([]providers.ConversionNode, bool, error) {
	if s.cache != nil && !forceRefresh {
		cached, _ := s.cache.Get(ctx, dateRange)
		if cached != nil {
			return cached.Nodes, true, nil
		}
	}

	nodes, err := s.provider.GetConversionReport(ctx, dateRange)
	if err != nil {
		return nil, false, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, dateRange, nodes); err != nil {
			s.logger.Warn("failed to cache report", zap.Error(err))
		}
	}

	s.publishRefreshed(dateRange, nodes)
	return nodes, false, nil
}

// GetRawReport fetches the raw data envelope for ad hoc inspection. Always a
// live call; the memo cache only covers the normalized pipeline.
func (s *ReportService) GetRawReport(ctx context.Context, dateRange affiliate.DateRange) (json.RawMessage, error) {
	return s.provider.GetRawConversionReport(ctx, dateRange)
}

// GetProductOffers returns the current product offer listing.
func (s *ReportService) GetProductOffers(ctx context.Context) ([]providers.Offer, error) {
	return s.provider.GetProductOffers(ctx)
}

// GetBrandOffers returns the current brand offer listing.
func (s *ReportService) GetBrandOffers(ctx context.Context) ([]providers.Offer, error) {
	return s.provider.GetBrandOffers(ctx)
}

// GenerateShortLink wraps a product URL in an affiliate short link.
func (s *ReportService) GenerateShortLink(ctx context.Context, originURL string) (string, error) {
	shortLink, err := s.provider.GenerateShortLink(ctx, originURL)
	if err != nil {
		return "", err
	}

	if s.publisher != nil {
		event := &events.ShortLinkCreatedEvent{
			OriginalLink: originURL,
			ShortLink:    shortLink,
			Timestamp:    time.Now(),
		}
		if err := s.publisher.PublishShortLinkCreated(event); err != nil {
			s.logger.Warn("failed to publish short link event", zap.Error(err))
		}
	}

	return shortLink, nil
}

func (s *ReportService) publishRefreshed(dateRange affiliate.DateRange, nodes []providers.ConversionNode) {
	if s.publisher == nil {
		return
	}

	summary := report.Summarize(nodes)
	event := &events.ReportRefreshedEvent{
		StartDate:      dateRange.StartKey(),
		EndDate:        dateRange.EndKey(),
		Conversions:    summary.Conversions,
		CompletedTotal: summary.CompletedTotal,
		EstimatedTotal: summary.EstimatedTotal,
		Timestamp:      time.Now(),
	}
	if err := s.publisher.PublishReportRefreshed(event); err != nil {
		s.logger.Warn("failed to publish report refreshed event", zap.Error(err))
	}
}
