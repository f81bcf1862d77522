package transfer_test

import (
	"path/filepath"
	"testing"

	"github.com/MichalMitros/listing-migrator/internal/transfer"
	"github.com/stretchr/testify/assert"
)

func TestUnitHighResURL(t *testing.T) {
	tests := map[string]struct {
		url      string
		expected string
	}{
		"modern": {
			url:      "https://i.ebayimg.com/images/g/abc/s-l500.jpg",
			expected: "https://i.ebayimg.com/images/g/abc/s-l1600.jpg",
		},
		"modern with query": {
			url:      "https://i.ebayimg.com/images/g/abc/s-l64.webp?set_id=1",
			expected: "https://i.ebayimg.com/images/g/abc/s-l1600.webp?set_id=1",
		},
		"legacy": {
			url:      "https://i.ebayimg.com/00/s/MTYwMA==/z/abc/$_1.JPG",
			expected: "https://i.ebayimg.com/00/s/MTYwMA==/z/abc/$_57.JPG",
		},
		"legacy png": {
			url:      "https://i.ebayimg.com/00/s/MTYwMA==/z/abc/$_12.png?rt=nc",
			expected: "https://i.ebayimg.com/00/s/MTYwMA==/z/abc/$_57.png?rt=nc",
		},
		"legacy unknown extension": {
			url:      "https://i.ebayimg.com/00/s/MTYwMA==/z/abc/$_1.gif",
			expected: "https://i.ebayimg.com/00/s/MTYwMA==/z/abc/$_1.gif",
		},
		"other host": {
			url:      "https://example.com/images/s-l500.jpg",
			expected: "https://example.com/images/s-l500.jpg",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.expected, transfer.HighResURL(tt.url), "should rewrite image URL")
		})
	}
}

func TestUnitSafeSKU(t *testing.T) {
	tests := map[string]struct {
		sku      string
		expected string
	}{
		"plain":         {sku: "BOOK-001_a", expected: "BOOK-001_a"},
		"path":          {sku: "../BOOK 1/2", expected: "BOOK12"},
		"special chars": {sku: "SKU#1:*?", expected: "SKU1"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.expected, transfer.SafeSKU(tt.sku), "should remove unsafe characters")
		})
	}
}

func TestUnitExtension(t *testing.T) {
	tests := map[string]struct {
		url      string
		expected string
	}{
		"jpg":          {url: "https://i.ebayimg.com/images/g/abc/s-l500.jpg", expected: "jpg"},
		"query":        {url: "https://i.ebayimg.com/00/s/abc/$_1.PNG?set_id=8800005007", expected: "PNG"},
		"no extension": {url: "https://example.com/image", expected: "jpg"},
		"invalid url":  {url: "://bad", expected: "jpg"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.expected, transfer.Extension(tt.url), "should return extension")
		})
	}
}

func TestUnitLocalPath(t *testing.T) {
	path := transfer.LocalPath("data/images", "BOOK 001", 3, "https://i.ebayimg.com/images/g/abc/s-l500.png")

	assert.Equal(t, filepath.Join("data", "images", "BOOK001", "3.png"), path, "should build cache path")
}
