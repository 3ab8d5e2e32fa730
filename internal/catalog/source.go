package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/boyter/gocodewalker"
)

// SupportedVersions is the range of catalog document versions this build understands.
const SupportedVersions = "^1"

// Source loads a catalog from somewhere outside the process.
type Source interface {
	Load(ctx context.Context) (*Catalog, error)
}

// NewSource returns a DirSource when path is a directory and a FileSource otherwise.
// An empty path selects the catalog embedded in the binary.
func NewSource(path string) Source {
	if path == "" {
		return EmbeddedSource{}
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return DirSource{Dir: path}
	}
	return FileSource{Path: path}
}

// FileSource reads a single JSON catalog document.
type FileSource struct {
	Path string
}

func (s FileSource) Load(ctx context.Context) (*Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", s.Path, err)
	}
	cat, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Path, err)
	}
	return cat, nil
}

// DirSource merges every *.json catalog found under Dir. Files are read in
// lexical path order and their categories concatenated.
type DirSource struct {
	Dir string
}

func (s DirSource) Load(ctx context.Context) (*Catalog, error) {
	paths, err := catalogFiles(s.Dir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no .json files in %s", ErrMalformed, s.Dir)
	}

	merged := &Catalog{}
	seen := make(map[string]string)
	for _, p := range paths {
		cat, err := FileSource{Path: p}.Load(ctx)
		if err != nil {
			return nil, err
		}
		for _, c := range cat.Categories {
			if prev, ok := seen[c.ID]; ok {
				return nil, fmt.Errorf("%w: category %q defined in both %s and %s", ErrMalformed, c.ID, prev, p)
			}
			seen[c.ID] = p
		}
		merged.Categories = append(merged.Categories, cat.Categories...)
		if merged.Version == "" {
			merged.Version = cat.Version
		}
		if cat.LastUpdated > merged.LastUpdated {
			merged.LastUpdated = cat.LastUpdated
		}
	}
	return merged, nil
}

func catalogFiles(dir string) ([]string, error) {
	fileQueue := make(chan *gocodewalker.File, 64)
	walker := gocodewalker.NewFileWalker(dir, fileQueue)
	walker.AllowListExtensions = []string{"json"}

	errChan := make(chan error, 1)
	go func() {
		errChan <- walker.Start()
	}()

	var paths []string
	for f := range fileQueue {
		paths = append(paths, f.Location)
	}
	if err := <-errChan; err != nil {
		return nil, fmt.Errorf("failed to walk catalog directory: %w", err)
	}

	sort.Slice(paths, func(i, j int) bool {
		return filepath.ToSlash(paths[i]) < filepath.ToSlash(paths[j])
	})
	return paths, nil
}

// Decode parses and validates a catalog document.
func Decode(r io.Reader) (*Catalog, error) {
	var doc struct {
		Version     string      `json:"version"`
		LastUpdated string      `json:"lastUpdated"`
		Categories  *[]Category `json:"categories"`
	}
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if doc.Categories == nil {
		return nil, fmt.Errorf("%w: missing categories", ErrMalformed)
	}

	cat := &Catalog{
		Version:     doc.Version,
		LastUpdated: doc.LastUpdated,
		Categories:  *doc.Categories,
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return cat, nil
}

// Validate checks the invariants every loaded catalog must satisfy.
func (c *Catalog) Validate() error {
	if c.Version != "" {
		if err := checkVersion(c.Version); err != nil {
			return err
		}
	}

	ids := make(map[string]struct{}, len(c.Categories))
	for i, category := range c.Categories {
		if strings.TrimSpace(category.ID) == "" {
			return fmt.Errorf("%w: category %d has no id", ErrMalformed, i)
		}
		if _, dup := ids[category.ID]; dup {
			return fmt.Errorf("%w: duplicate category id %q", ErrMalformed, category.ID)
		}
		ids[category.ID] = struct{}{}

		if category.Items == nil {
			return fmt.Errorf("%w: category %q has no items array", ErrMalformed, category.ID)
		}
		for j, item := range category.Items {
			if item.Name == "" || item.URL == "" {
				return fmt.Errorf("%w: item %d in category %q needs a name and url", ErrMalformed, j, category.ID)
			}
		}
	}
	return nil
}

func checkVersion(v string) error {
	version, err := semver.NewVersion(v)
	if err != nil {
		return fmt.Errorf("%w: invalid version %q: %v", ErrMalformed, v, err)
	}
	constraint, err := semver.NewConstraint(SupportedVersions)
	if err != nil {
		return err
	}
	if !constraint.Check(version) {
		return fmt.Errorf("%w: unsupported catalog version %s (want %s)", ErrMalformed, v, SupportedVersions)
	}
	return nil
}
