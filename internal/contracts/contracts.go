// Package contracts resolves externally provisioned API-contract files
// (OpenAPI, AsyncAPI, Protobuf) from their on-disk category roots and decodes
// YAML documents into generic trees for JSON rendering.
package contracts

import (
	"errors"
	"strings"
)

// Category identifies one of the three contract roots.
type Category string

const (
	CategoryOpenAPI  Category = "openapi"
	CategoryAsyncAPI Category = "asyncapi"
	CategoryProtobuf Category = "protobuf"
)

// Categories lists every category in listing order.
var Categories = []Category{CategoryOpenAPI, CategoryAsyncAPI, CategoryProtobuf}

var (
	// ErrInvalidFileName is a sentinel for unsafe or malformed file names.
	ErrInvalidFileName = errors.New("invalid file name")
	// ErrNotFound is a sentinel for contracts missing on disk.
	ErrNotFound = errors.New("contract not found")
	// ErrParse is a sentinel for YAML documents that fail to decode.
	ErrParse = errors.New("contract parse failed")
)

// Extensions returns the file extensions allowed for the category.
func (c Category) Extensions() []string {
	if c == CategoryProtobuf {
		return []string{".proto"}
	}
	return []string{".yaml", ".yml"}
}

// Structured reports whether files in the category carry a YAML document
// tree. Protobuf files are always served as opaque text.
func (c Category) Structured() bool {
	return c != CategoryProtobuf
}

func (c Category) hasAllowedExtension(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range c.Extensions() {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// ValidateFileName enforces the allow-list rules for client-supplied file
// names. It must pass before any path is joined or touched: no
// parent-reference segments, no path separators, and the extension must match
// the category.
func ValidateFileName(category Category, name string) error {
	if name == "" {
		return ErrInvalidFileName
	}
	if strings.Contains(name, "..") {
		return ErrInvalidFileName
	}
	if strings.ContainsAny(name, `/\`) {
		return ErrInvalidFileName
	}
	if !category.hasAllowedExtension(name) {
		return ErrInvalidFileName
	}
	return nil
}
