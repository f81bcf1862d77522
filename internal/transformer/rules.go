package transformer

import (
	_ "embed"
	"fmt"
	"maps"

	"github.com/BurntSushi/toml"
)

//go:embed rules.toml
var defaultRules string

// Rules are data repair rules applied when listing is transformed.
type Rules struct {
	Conditions       map[string]string `toml:"conditions"`
	DefaultCondition string            `toml:"default_condition"`
	Aspects          AspectRules       `toml:"aspects"`
	Images           ImageRules        `toml:"images"`
	Package          PackageRules      `toml:"package"`
}

// AspectRules describe how aspect values are fitted into target category rules.
type AspectRules struct {
	Join      []string          `toml:"join"`
	JoinLimit int               `toml:"join_limit"`
	Truncate  []string          `toml:"truncate"`
	Title     map[string]string `toml:"title"`
}

// ImageRules describe hosted image URL rewrite.
type ImageRules struct {
	ThumbnailMarker string `toml:"thumbnail_marker"`
	FullSizeMarker  string `toml:"full_size_marker"`
}

// PackageRules describe shipping package inference.
type PackageRules struct {
	DefaultType        string            `toml:"default_type"`
	Types              map[string]string `toml:"types"`
	MediaServiceMarker string            `toml:"media_service_marker"`
	MediaDimensions    Dimensions        `toml:"media_dimensions"`
	DefaultDimensions  Dimensions        `toml:"default_dimensions"`
}

// Dimensions are package dimensions in inches.
type Dimensions struct {
	Length float64 `toml:"length"`
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// DefaultRules returns rules embedded in the binary.
// It panics if embedded rules are malformed.
func DefaultRules() Rules {
	var rules Rules
	if _, err := toml.Decode(defaultRules, &rules); err != nil {
		panic(fmt.Sprintf("can't decode embedded rules: %v", err))
	}
	return rules
}

// LoadRules returns default rules overridden with keys defined in file at path.
// Map entries are merged, other keys replace defaults. Empty path returns default rules.
func LoadRules(path string) (Rules, error) {
	rules := DefaultRules()
	if path == "" {
		return rules, nil
	}

	var raw Rules
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Rules{}, fmt.Errorf("can't load rules: %w", err)
	}

	if meta.IsDefined("conditions") {
		maps.Copy(rules.Conditions, raw.Conditions)
	}
	if meta.IsDefined("default_condition") {
		rules.DefaultCondition = raw.DefaultCondition
	}

	if meta.IsDefined("aspects", "join") {
		rules.Aspects.Join = raw.Aspects.Join
	}
	if meta.IsDefined("aspects", "join_limit") {
		rules.Aspects.JoinLimit = raw.Aspects.JoinLimit
	}
	if meta.IsDefined("aspects", "truncate") {
		rules.Aspects.Truncate = raw.Aspects.Truncate
	}
	if meta.IsDefined("aspects", "title") {
		maps.Copy(rules.Aspects.Title, raw.Aspects.Title)
	}

	if meta.IsDefined("images", "thumbnail_marker") {
		rules.Images.ThumbnailMarker = raw.Images.ThumbnailMarker
	}
	if meta.IsDefined("images", "full_size_marker") {
		rules.Images.FullSizeMarker = raw.Images.FullSizeMarker
	}

	if meta.IsDefined("package", "default_type") {
		rules.Package.DefaultType = raw.Package.DefaultType
	}
	if meta.IsDefined("package", "types") {
		maps.Copy(rules.Package.Types, raw.Package.Types)
	}
	if meta.IsDefined("package", "media_service_marker") {
		rules.Package.MediaServiceMarker = raw.Package.MediaServiceMarker
	}
	if meta.IsDefined("package", "media_dimensions") {
		rules.Package.MediaDimensions = raw.Package.MediaDimensions
	}
	if meta.IsDefined("package", "default_dimensions") {
		rules.Package.DefaultDimensions = raw.Package.DefaultDimensions
	}

	if rules.Aspects.JoinLimit <= 0 {
		return Rules{}, fmt.Errorf("can't load rules: join_limit must be positive, got %d", rules.Aspects.JoinLimit)
	}

	return rules, nil
}
