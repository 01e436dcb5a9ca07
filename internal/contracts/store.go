package contracts

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Store projects the read-only contract file set onto the API. It holds no
// state beyond the configured paths; every read goes to disk.
type Store struct {
	roots        map[Category]string
	manifestPath string
}

type StoreConfig struct {
	OpenAPIRoot  string
	AsyncAPIRoot string
	ProtobufRoot string
	ManifestPath string
}

func NewStore(cfg StoreConfig) *Store {
	return &Store{
		roots: map[Category]string{
			CategoryOpenAPI:  cfg.OpenAPIRoot,
			CategoryAsyncAPI: cfg.AsyncAPIRoot,
			CategoryProtobuf: cfg.ProtobufRoot,
		},
		manifestPath: cfg.ManifestPath,
	}
}

// Read validates the name, then returns the raw bytes of the named contract.
// Missing or non-regular files map to ErrNotFound.
func (s *Store) Read(category Category, name string) ([]byte, error) {
	if err := ValidateFileName(category, name); err != nil {
		return nil, err
	}
	path := filepath.Join(s.roots[category], name)
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, category, name)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s/%s: %w", category, name, err)
	}
	return data, nil
}

// List enumerates the file names in the category root that carry the
// category's required extension, sorted by name.
func (s *Store) List(category Category) ([]string, error) {
	entries, err := os.ReadDir(s.roots[category])
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", category, err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if category.hasAllowedExtension(entry.Name()) {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Manifest reads and decodes the version manifest. The file is parsed on
// every call; the manifest is maintained externally.
func (s *Store) Manifest() (any, error) {
	data, err := os.ReadFile(s.manifestPath)
	if err != nil {
		return nil, fmt.Errorf("read version manifest: %w", err)
	}
	doc, err := DecodeDocument(data)
	if err != nil {
		return nil, fmt.Errorf("decode version manifest: %w", err)
	}
	return doc, nil
}

// DecodeDocument decodes YAML text into a generic tree of maps, sequences
// and scalars suitable for JSON rendering.
func DecodeDocument(data []byte) (any, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return doc, nil
}
