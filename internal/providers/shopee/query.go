package shopee

import (
	"encoding/json"
	"fmt"

	"github.com/painel-afiliado/service-affiliate/internal/domain/affiliate"
)

// Operation identifies one of the supported GraphQL operations.
type Operation string

const (
	OpConversionReport  Operation = "conversionReport"
	OpProductOffer      Operation = "productOfferV2"
	OpBrandOffer        Operation = "brandOffer"
	OpGenerateShortLink Operation = "generateShortLink"
)

// Fixed node limits. Pagination past the first page is not supported.
const (
	conversionReportLimit = 100
	offerListLimit        = 5
)

// QueryParams carries the per-operation inputs for BuildQuery.
type QueryParams struct {
	Range     affiliate.DateRange
	OriginURL string
}

// BuildQuery produces the exact GraphQL document for the given operation.
// It has no side effects.
func BuildQuery(op Operation, params QueryParams) (string, error) {
	switch op {
	case OpConversionReport:
		start, end := params.Range.Bounds()
		return fmt.Sprintf(
			`{conversionReport(purchaseTimeStart: %d, purchaseTimeEnd: %d, limit: %d) {nodes {purchaseTime completeTime conversionStatus totalCommission orders {items {itemName itemPrice qty}}}}}`,
			start, end, conversionReportLimit,
		), nil
	case OpProductOffer:
		return fmt.Sprintf(
			`{productOfferV2(limit: %d) {nodes {productName commissionRate offerLink}}}`,
			offerListLimit,
		), nil
	case OpBrandOffer:
		return fmt.Sprintf(
			`{brandOffer(limit: %d) {nodes {offerName commissionRate offerLink}}}`,
			offerListLimit,
		), nil
	case OpGenerateShortLink:
		return fmt.Sprintf(
			`mutation {generateShortLink(input: {originLinks: [%s]}) {shortLinkList {shortLink}}}`,
			quoteGraphQLString(params.OriginURL),
		), nil
	default:
		return "", fmt.Errorf("unsupported operation: %s", op)
	}
}

// quoteGraphQLString renders s as a quoted GraphQL string literal. GraphQL
// string escaping is a subset of JSON's, so marshaling yields a literal that
// cannot break out of its quotes regardless of the input.
func quoteGraphQLString(s string) string {
	quoted, err := json.Marshal(s)
	if err != nil {
		// json.Marshal of a string cannot fail
		return `""`
	}
	return string(quoted)
}
