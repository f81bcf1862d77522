package rawdoc_test

import (
	"testing"

	"github.com/MichalMitros/listing-migrator/internal/platform/rawdoc"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitText(t *testing.T) {
	tests := map[string]struct {
		node     any
		wantText string
		wantOK   bool
	}{
		"string":          {node: "2", wantText: "2", wantOK: true},
		"number":          {node: float64(2), wantText: "2", wantOK: true},
		"bool":            {node: true, wantText: "true", wantOK: true},
		"lower value key": {node: map[string]any{"value": "8", "_attr": map[string]any{}}, wantText: "8", wantOK: true},
		"upper value key": {node: map[string]any{"Value": "8"}, wantText: "8", wantOK: true},
		"text key":        {node: map[string]any{"#text": "8"}, wantText: "8", wantOK: true},
		"nested value":    {node: map[string]any{"value": map[string]any{"#text": "3"}}, wantText: "3", wantOK: true},
		"list":            {node: []any{"a", "b"}, wantText: "a", wantOK: true},
		"object no value": {node: map[string]any{"unit": "lbs"}},
		"empty list":      {node: []any{}},
		"nil":             {},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			text, ok := rawdoc.Text(tt.node)

			assert.Equal(t, tt.wantOK, ok, "should report if text was found")
			assert.Equal(t, tt.wantText, text, "should return correct text")
		})
	}
}

func TestUnitPath(t *testing.T) {
	doc := map[string]any{
		"ShippingPackageDetails": []any{
			map[string]any{
				"weightMajor": map[string]any{"value": "2", "_attr": map[string]any{"unit": "lbs"}},
				"WeightMinor": "8",
			},
		},
		"SellingStatus": map[string]any{
			"CurrentPrice": map[string]any{"value": "9.99", "_attr": map[string]any{"currencyID": "USD"}},
		},
	}

	tests := map[string]struct {
		keys     []string
		wantText string
		wantOK   bool
	}{
		"list of objects and camel case": {
			keys:     []string{"ShippingPackageDetails", "WeightMajor"},
			wantText: "2",
			wantOK:   true,
		},
		"pascal case": {
			keys:     []string{"ShippingPackageDetails", "WeightMinor"},
			wantText: "8",
			wantOK:   true,
		},
		"object with attributes": {
			keys:     []string{"SellingStatus", "CurrentPrice"},
			wantText: "9.99",
			wantOK:   true,
		},
		"missing key": {
			keys: []string{"ShippingPackageDetails", "PackageDepth"},
		},
		"scalar in the middle": {
			keys: []string{"ShippingPackageDetails", "WeightMinor", "Value"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			text, ok := rawdoc.PathText(doc, tt.keys...)

			assert.Equal(t, tt.wantOK, ok, "should report if value was found")
			assert.Equal(t, tt.wantText, text, "should return correct value")
		})
	}
}

func TestUnitAttr(t *testing.T) {
	node := map[string]any{"value": "9.99", "_attr": map[string]any{"currencyID": "EUR"}}

	currency, ok := rawdoc.Attr(node, "currencyID")

	require.True(t, ok, "should find attribute")
	assert.Equal(t, "EUR", currency, "should return attribute value")

	_, ok = rawdoc.Attr("9.99", "currencyID")
	assert.False(t, ok, "shouldn't find attribute on scalar")
}

func TestUnitDecimal(t *testing.T) {
	val, ok := rawdoc.Decimal(map[string]any{"value": " 2.50 "})
	require.True(t, ok, "should parse decimal")
	assert.True(t, decimal.RequireFromString("2.5").Equal(val), "should return correct value")

	_, ok = rawdoc.Decimal("two")
	assert.False(t, ok, "shouldn't parse non-numeric value")
}

func TestUnitListAndObject(t *testing.T) {
	obj := map[string]any{"ShippingService": "USPSMedia"}

	assert.Equal(t, []any{obj}, rawdoc.List(obj), "should wrap single object")
	assert.Equal(t, []any{obj}, rawdoc.List([]any{obj}), "should keep list")
	assert.Empty(t, rawdoc.List(nil), "should return empty list for nil")

	got, ok := rawdoc.Object([]any{obj})
	require.True(t, ok, "should resolve first list element")
	assert.Equal(t, obj, got, "should return first object")

	_, ok = rawdoc.Object("text")
	assert.False(t, ok, "shouldn't resolve scalar")
}

func TestUnitBool(t *testing.T) {
	assert.True(t, rawdoc.Bool("true"))
	assert.True(t, rawdoc.Bool(map[string]any{"value": "True"}))
	assert.True(t, rawdoc.Bool(true))
	assert.False(t, rawdoc.Bool("1"))
	assert.False(t, rawdoc.Bool(nil))
	assert.False(t, rawdoc.Bool("false"))
}

func TestUnitClone(t *testing.T) {
	doc := map[string]any{
		"shippingOptions": []any{
			map[string]any{"costType": "CALCULATED"},
		},
		"name": "Standard",
	}

	cloned, ok := rawdoc.Clone(doc).(map[string]any)
	require.True(t, ok, "should clone object")
	assert.Equal(t, doc, cloned, "should copy all values")

	cloned["name"] = "Changed"
	options, _ := rawdoc.Object(cloned["shippingOptions"])
	options["costType"] = "FLAT_RATE"

	assert.Equal(t, "Standard", doc["name"], "shouldn't modify original object")
	original, _ := rawdoc.Object(doc["shippingOptions"])
	assert.Equal(t, "CALCULATED", original["costType"], "shouldn't modify nested objects")
}
