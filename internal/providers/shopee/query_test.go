package shopee

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/painel-afiliado/service-affiliate/internal/domain/affiliate"
)

func mustRange(t *testing.T, start, end string) affiliate.DateRange {
	t.Helper()
	r, err := affiliate.ParseDateRange(start, end)
	if err != nil {
		t.Fatalf("ParseDateRange failed: %v", err)
	}
	return r
}

func TestBuildConversionReportQuery(t *testing.T) {
	r := mustRange(t, "2024-03-10", "2024-03-10")
	query, err := BuildQuery(OpConversionReport, QueryParams{Range: r})
	if err != nil {
		t.Fatalf("BuildQuery failed: %v", err)
	}

	if !strings.Contains(query, "purchaseTimeStart: 1710039600") {
		t.Errorf("query missing start boundary: %s", query)
	}
	if !strings.Contains(query, "purchaseTimeEnd: 1710125999") {
		t.Errorf("query missing end boundary: %s", query)
	}
	if !strings.Contains(query, "limit: 100") {
		t.Errorf("query missing node limit: %s", query)
	}
	for _, field := range []string{"purchaseTime", "completeTime", "conversionStatus", "totalCommission", "itemName", "itemPrice", "qty"} {
		if !strings.Contains(query, field) {
			t.Errorf("query missing field %s", field)
		}
	}
}

func TestBuildOfferQueries(t *testing.T) {
	query, err := BuildQuery(OpProductOffer, QueryParams{})
	if err != nil {
		t.Fatalf("BuildQuery failed: %v", err)
	}
	if query != `{productOfferV2(limit: 5) {nodes {productName commissionRate offerLink}}}` {
		t.Errorf("unexpected product offer query: %s", query)
	}

	query, err = BuildQuery(OpBrandOffer, QueryParams{})
	if err != nil {
		t.Fatalf("BuildQuery failed: %v", err)
	}
	if query != `{brandOffer(limit: 5) {nodes {offerName commissionRate offerLink}}}` {
		t.Errorf("unexpected brand offer query: %s", query)
	}
}

func TestBuildShortLinkMutationQuotesURL(t *testing.T) {
	url := "https://shopee.com.br/product/123"
	query, err := BuildQuery(OpGenerateShortLink, QueryParams{OriginURL: url})
	if err != nil {
		t.Fatalf("BuildQuery failed: %v", err)
	}

	// The URL must appear as a single quoted list element.
	if !strings.Contains(query, `originLinks: ["https://shopee.com.br/product/123"]`) {
		t.Errorf("URL not quoted as a list element: %s", query)
	}

	// Parsing the literal back must reproduce the original URL.
	literal := extractOriginLiteral(t, query)
	var parsed string
	if err := json.Unmarshal([]byte(literal), &parsed); err != nil {
		t.Fatalf("literal does not parse: %v", err)
	}
	if parsed != url {
		t.Errorf("round-trip mismatch: got %q, want %q", parsed, url)
	}
}

func TestBuildShortLinkMutationEscapesHostileInput(t *testing.T) {
	url := `https://x.test/"]}) { hacked }`
	query, err := BuildQuery(OpGenerateShortLink, QueryParams{OriginURL: url})
	if err != nil {
		t.Fatalf("BuildQuery failed: %v", err)
	}

	literal := extractOriginLiteral(t, query)
	var parsed string
	if err := json.Unmarshal([]byte(literal), &parsed); err != nil {
		t.Fatalf("literal does not parse: %v", err)
	}
	if parsed != url {
		t.Errorf("hostile input broke out of the literal: %s", query)
	}
	if strings.Count(query, "{ hacked }") != 0 {
		// The quote must be escaped so the injected selection stays inside
		// the string literal.
		if !strings.Contains(query, `\"`) {
			t.Errorf("quote was not escaped: %s", query)
		}
	}
}

func TestBuildQueryUnsupportedOperation(t *testing.T) {
	if _, err := BuildQuery(Operation("bogus"), QueryParams{}); err == nil {
		t.Error("expected error for unsupported operation")
	}
}

// extractOriginLiteral pulls the quoted list element out of the mutation.
func extractOriginLiteral(t *testing.T, query string) string {
	t.Helper()
	start := strings.Index(query, "originLinks: [")
	end := strings.Index(query, "]})")
	if start < 0 || end < 0 || end <= start {
		t.Fatalf("mutation shape unexpected: %s", query)
	}
	return query[start+len("originLinks: [") : end]
}

func TestBuildConversionReportIsPure(t *testing.T) {
	r := mustRange(t, "2024-03-01", "2024-03-10")

	first, err := BuildQuery(OpConversionReport, QueryParams{Range: r})
	if err != nil {
		t.Fatalf("BuildQuery failed: %v", err)
	}
	second, err := BuildQuery(OpConversionReport, QueryParams{Range: r})
	if err != nil {
		t.Fatalf("BuildQuery failed: %v", err)
	}
	if first != second {
		t.Error("same inputs produced different documents")
	}
}
