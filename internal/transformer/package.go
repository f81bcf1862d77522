package transformer

import (
	"strings"

	"github.com/MichalMitros/listing-migrator/internal/platform/rawdoc"
	"github.com/MichalMitros/listing-migrator/internal/sellapi"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

var ouncesInPound = decimal.NewFromInt(16)

// Package returns package weight and size inferred from raw source item.
// It returns nil when neither weight nor dimensions can be derived.
func (t *Transformer) Package(raw map[string]any) *sellapi.PackageWeightAndSize {
	node, ok := rawdoc.Field(raw, "ShippingPackageDetails")
	if !ok {
		return nil
	}
	details, ok := rawdoc.Object(node)
	if !ok {
		return nil
	}

	pkg := &sellapi.PackageWeightAndSize{
		PackageType: t.packageType(details),
		Weight:      weight(details),
		Dimensions:  dimensions(details),
	}

	if pkg.Weight != nil && pkg.Dimensions == nil {
		fallback := lo.Ternary(t.isMediaShipping(raw), t.rules.Package.MediaDimensions, t.rules.Package.DefaultDimensions)
		pkg.Dimensions = &sellapi.Dimensions{
			Height: fallback.Height,
			Length: fallback.Length,
			Width:  fallback.Width,
			Unit:   sellapi.UnitInch,
		}
	}

	if pkg.Weight == nil && pkg.Dimensions == nil {
		return nil
	}

	return pkg
}

func (t *Transformer) packageType(details map[string]any) string {
	name, _ := rawdoc.PathText(details, "ShippingPackage")
	if packageType, ok := t.rules.Package.Types[name]; ok {
		return packageType
	}
	return t.rules.Package.DefaultType
}

// isMediaShipping reports whether any shipping service of item is media rate service.
func (t *Transformer) isMediaShipping(raw map[string]any) bool {
	options, ok := rawdoc.Path(raw, "ShippingDetails", "ShippingServiceOptions")
	if !ok {
		return false
	}

	return lo.ContainsBy(rawdoc.List(options), func(option any) bool {
		obj, ok := rawdoc.Object(option)
		if !ok {
			return false
		}
		service, _ := rawdoc.PathText(obj, "ShippingService")
		return strings.Contains(service, t.rules.Package.MediaServiceMarker)
	})
}

// weight returns WeightMajor pounds plus WeightMinor ounces rounded to 2 decimal places.
func weight(details map[string]any) *sellapi.Weight {
	majorNode, ok := rawdoc.Field(details, "WeightMajor")
	if !ok {
		return nil
	}
	major, ok := rawdoc.Decimal(majorNode)
	if !ok {
		return nil
	}

	total := major
	if minorNode, ok := rawdoc.Field(details, "WeightMinor"); ok {
		if minor, ok := rawdoc.Decimal(minorNode); ok {
			total = total.Add(minor.Div(ouncesInPound))
		}
	}

	total = total.Round(2)
	if !total.IsPositive() {
		return nil
	}

	return &sellapi.Weight{
		Value: total.InexactFloat64(),
		Unit:  sellapi.UnitPound,
	}
}

// dimensions returns package dimensions if all of them are present and positive.
// Source package depth is target package height.
func dimensions(details map[string]any) *sellapi.Dimensions {
	values := make([]decimal.Decimal, 0, 3)
	for _, key := range []string{"PackageDepth", "PackageLength", "PackageWidth"} {
		node, ok := rawdoc.Field(details, key)
		if !ok {
			return nil
		}
		value, ok := rawdoc.Decimal(node)
		if !ok || !value.IsPositive() {
			return nil
		}
		values = append(values, value)
	}

	return &sellapi.Dimensions{
		Height: values[0].InexactFloat64(),
		Length: values[1].InexactFloat64(),
		Width:  values[2].InexactFloat64(),
		Unit:   sellapi.UnitInch,
	}
}
