package transfer

import (
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
)

const (
	defaultExtension = "jpg"
	hostedImagesHost = "i.ebayimg.com"
)

var (
	sizeMarker       = regexp.MustCompile(`s-l\d+`)
	legacySizeMarker = regexp.MustCompile(`\$_\d+\.(JPG|jpg|PNG|png)`)
	legacySize       = regexp.MustCompile(`\$_\d+`)
)

// HighResURL rewrites hosted image URL to its largest size variant.
// URLs of other hosts are returned unchanged.
func HighResURL(imageURL string) string {
	if !strings.Contains(imageURL, hostedImagesHost) {
		return imageURL
	}

	switch {
	case sizeMarker.MatchString(imageURL):
		return sizeMarker.ReplaceAllString(imageURL, "s-l1600")
	case legacySizeMarker.MatchString(imageURL):
		return legacySize.ReplaceAllLiteralString(imageURL, "$_57")
	default:
		return imageURL
	}
}

// SafeSKU returns SKU without characters other than letters, digits, '-' and '_'.
func SafeSKU(sku string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			return r
		}
		return -1
	}, sku)
}

// Extension returns file extension of image URL, jpg if URL has none.
func Extension(imageURL string) string {
	parsed, err := url.Parse(imageURL)
	if err != nil {
		return defaultExtension
	}

	ext := strings.TrimPrefix(path.Ext(parsed.Path), ".")
	if ext == "" {
		return defaultExtension
	}

	return ext
}

// LocalPath returns path of cached image file.
func LocalPath(dir, sku string, rank int, imageURL string) string {
	return filepath.Join(dir, SafeSKU(sku), fmt.Sprintf("%d.%s", rank, Extension(imageURL)))
}
