package wordbank

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Format identifies the encoding of a word bank file.
type Format int

const (
	FormatCSV Format = iota
	FormatXLSX
)

func (f Format) String() string {
	switch f {
	case FormatXLSX:
		return "xlsx"
	default:
		return "csv"
	}
}

// ErrSourceNotFound is returned by a Source that has no word bank for a language.
var ErrSourceNotFound = errors.New("word source not found")

// Source provides raw two-column tabular data for a language.
type Source interface {
	Open(ctx context.Context, lang CatalogEntry) (io.ReadCloser, Format, error)
}

//go:embed data
var builtin embed.FS

type candidate struct {
	name   string
	format Format
}

// candidates lists the file names tried for a language, most specific first.
func candidates(lang CatalogEntry) []candidate {
	bases := []string{lang.BaseName()}
	if lang.ID != lang.BaseName() {
		bases = append(bases, lang.ID)
	}
	out := make([]candidate, 0, 2*len(bases))
	for _, b := range bases {
		out = append(out, candidate{b + ".csv", FormatCSV}, candidate{b + ".xlsx", FormatXLSX})
	}
	return out
}

// FSSource reads word banks from a file system.
type FSSource struct {
	fsys fs.FS
}

// NewDirSource reads word banks from a directory on disk.
func NewDirSource(dir string) *FSSource {
	return &FSSource{fsys: os.DirFS(dir)}
}

// NewEmbeddedSource reads the word banks compiled into the binary.
func NewEmbeddedSource() *FSSource {
	sub, err := fs.Sub(builtin, "data")
	if err != nil {
		panic(fmt.Sprintf("wordbank: embedded data: %v", err))
	}
	return &FSSource{fsys: sub}
}

func (s *FSSource) Open(_ context.Context, lang CatalogEntry) (io.ReadCloser, Format, error) {
	for _, c := range candidates(lang) {
		f, err := s.fsys.Open(c.name)
		if err == nil {
			return f, c.format, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, 0, fmt.Errorf("open %s: %w", c.name, err)
		}
	}
	return nil, 0, fmt.Errorf("%s: %w", lang.ID, ErrSourceNotFound)
}

// MultiSource tries each source in order and returns the first hit.
type MultiSource []Source

func (m MultiSource) Open(ctx context.Context, lang CatalogEntry) (io.ReadCloser, Format, error) {
	for _, s := range m {
		rc, format, err := s.Open(ctx, lang)
		if err == nil {
			return rc, format, nil
		}
		if !errors.Is(err, ErrSourceNotFound) {
			return nil, 0, err
		}
	}
	return nil, 0, fmt.Errorf("%s: %w", lang.ID, ErrSourceNotFound)
}

// BuiltinCatalog returns the catalog compiled into the binary.
func BuiltinCatalog() Catalog {
	f, err := builtin.Open("data/languages.yaml")
	if err != nil {
		panic(fmt.Sprintf("wordbank: embedded catalog: %v", err))
	}
	defer f.Close()
	c, err := ParseCatalog(f)
	if err != nil {
		panic(fmt.Sprintf("wordbank: embedded catalog: %v", err))
	}
	return c
}

// LoadCatalog returns the catalog from dir/languages.yaml when present,
// otherwise the built-in one.
func LoadCatalog(dir string) (Catalog, error) {
	if dir == "" {
		return BuiltinCatalog(), nil
	}
	f, err := os.Open(filepath.Join(dir, "languages.yaml"))
	if errors.Is(err, fs.ErrNotExist) {
		return BuiltinCatalog(), nil
	}
	if err != nil {
		return Catalog{}, err
	}
	defer f.Close()
	return ParseCatalog(f)
}
