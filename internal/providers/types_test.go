package providers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmountDecodesNumberStringAndNull(t *testing.T) {
	var item Item
	require.NoError(t, json.Unmarshal([]byte(`{"itemName":"a","itemPrice":"12.34","qty":2}`), &item))
	assert.Equal(t, Amount(12.34), item.ItemPrice)

	require.NoError(t, json.Unmarshal([]byte(`{"itemPrice":5.5}`), &item))
	assert.Equal(t, Amount(5.5), item.ItemPrice)

	require.NoError(t, json.Unmarshal([]byte(`{"itemPrice":null}`), &item))
	assert.Equal(t, Amount(0), item.ItemPrice)
}

func TestAmountDefaultsToZeroOnGarbage(t *testing.T) {
	var node ConversionNode
	raw := `{"conversionStatus":"PENDING","totalCommission":"not-a-number","orders":[]}`
	require.NoError(t, json.Unmarshal([]byte(raw), &node))

	assert.Equal(t, Amount(0), node.TotalCommission)
	assert.Equal(t, "PENDING", node.ConversionStatus)
}

func TestQuantityToleratesWrongTypes(t *testing.T) {
	var item Item
	require.NoError(t, json.Unmarshal([]byte(`{"qty":"3"}`), &item))
	assert.Equal(t, Quantity(3), item.Qty)

	require.NoError(t, json.Unmarshal([]byte(`{"qty":{}}`), &item))
	assert.Equal(t, Quantity(0), item.Qty)
}

func TestConversionNodeDecodesNestedShape(t *testing.T) {
	raw := `{
		"purchaseTime": 1700000000,
		"completeTime": null,
		"conversionStatus": "COMPLETE",
		"totalCommission": "10.00",
		"orders": [{"items": [{"itemName": "Fone", "itemPrice": "5.00", "qty": 2}]}]
	}`

	var node ConversionNode
	require.NoError(t, json.Unmarshal([]byte(raw), &node))

	assert.Equal(t, int64(1700000000), node.PurchaseTime)
	assert.Zero(t, node.CompleteTime)
	assert.Equal(t, Amount(10), node.TotalCommission)
	require.Len(t, node.Orders, 1)
	require.Len(t, node.Orders[0].Items, 1)
	assert.Equal(t, "Fone", node.Orders[0].Items[0].ItemName)
	assert.Equal(t, Quantity(2), node.Orders[0].Items[0].Qty)
}
