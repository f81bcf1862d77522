// Package rawdoc reads loosely shaped source documents.
//
// Source item documents are trees of map[string]any, []any and string values. The same logical
// value may arrive as a plain scalar or as an object carrying it under one of several keys, a
// sub-document may be a single object or a list holding it, and keys may use PascalCase or
// camelCase. Helpers here resolve those variants in one place.
package rawdoc

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// AttrKey is key holding element attributes in decoded documents.
const AttrKey = "_attr"

// textKeys are keys which may hold scalar value of object node, in lookup order.
var textKeys = []string{"value", "Value", "#text"}

// Text returns scalar value of node as string.
// Node may be scalar or object holding value under "value", "Value" or "#text" key.
func Text(node any) (string, bool) {
	switch val := node.(type) {
	case nil:
		return "", false
	case string:
		return val, true
	case bool:
		return fmt.Sprint(val), true
	case float64, float32, int, int32, int64:
		return fmt.Sprint(val), true
	case map[string]any:
		for _, key := range textKeys {
			if inner, ok := val[key]; ok {
				return Text(inner)
			}
		}
		return "", false
	case []any:
		if len(val) == 0 {
			return "", false
		}
		return Text(val[0])
	default:
		return "", false
	}
}

// Field returns value of doc's key, falling back to camelCase variant of PascalCase key.
func Field(doc map[string]any, key string) (any, bool) {
	if doc == nil {
		return nil, false
	}

	if val, ok := doc[key]; ok && val != nil {
		return val, true
	}

	if alt := camelCase(key); alt != key {
		if val, ok := doc[alt]; ok && val != nil {
			return val, true
		}
	}

	return nil, false
}

// Object returns node as object. Lists resolve to their first element.
func Object(node any) (map[string]any, bool) {
	switch val := node.(type) {
	case map[string]any:
		return val, true
	case []any:
		if len(val) == 0 {
			return nil, false
		}
		return Object(val[0])
	default:
		return nil, false
	}
}

// List returns node as list. Single values become one-element lists, nil becomes empty list.
func List(node any) []any {
	switch val := node.(type) {
	case nil:
		return nil
	case []any:
		return val
	default:
		return []any{val}
	}
}

// Path walks doc through nested objects by keys and returns the last value found.
func Path(doc map[string]any, keys ...string) (any, bool) {
	var current any = doc

	for _, key := range keys {
		obj, ok := Object(current)
		if !ok {
			return nil, false
		}
		if current, ok = Field(obj, key); !ok {
			return nil, false
		}
	}

	return current, true
}

// PathText returns text of value found by Path.
func PathText(doc map[string]any, keys ...string) (string, bool) {
	node, ok := Path(doc, keys...)
	if !ok {
		return "", false
	}

	text, ok := Text(node)
	if !ok {
		return "", false
	}

	return strings.TrimSpace(text), true
}

// Decimal returns numeric value of node.
func Decimal(node any) (decimal.Decimal, bool) {
	text, ok := Text(node)
	if !ok {
		return decimal.Zero, false
	}

	val, err := decimal.NewFromString(strings.TrimSpace(text))
	if err != nil {
		return decimal.Zero, false
	}

	return val, true
}

// Attr returns attribute of node decoded from element with attributes.
func Attr(node any, name string) (string, bool) {
	obj, ok := node.(map[string]any)
	if !ok {
		return "", false
	}

	attrs, ok := obj[AttrKey].(map[string]any)
	if !ok {
		return "", false
	}

	return Text(attrs[name])
}

// Bool reports whether node is explicitly true.
func Bool(node any) bool {
	text, ok := Text(node)
	return ok && strings.EqualFold(strings.TrimSpace(text), "true")
}

func camelCase(key string) string {
	r, size := utf8.DecodeRuneInString(key)
	if r == utf8.RuneError || !unicode.IsUpper(r) {
		return key
	}

	return string(unicode.ToLower(r)) + key[size:]
}

// Clone returns deep copy of document node.
func Clone(node any) any {
	switch val := node.(type) {
	case map[string]any:
		cloned := make(map[string]any, len(val))
		for key, inner := range val {
			cloned[key] = Clone(inner)
		}
		return cloned
	case []any:
		cloned := make([]any, len(val))
		for ix, inner := range val {
			cloned[ix] = Clone(inner)
		}
		return cloned
	default:
		return val
	}
}
