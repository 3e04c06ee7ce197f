package wordbank

import (
	"bytes"
	"context"
	"errors"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestParseCSV(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string // "original=translation"
		wantErr error
	}{
		{
			name:  "basic",
			input: "Spanish,English\nhola,hello\ngato,cat\n",
			want:  []string{"hola=hello", "gato=cat"},
		},
		{
			name:  "rows missing a column are dropped and ids stay dense",
			input: "Spanish,English\nhola,hello\n,orphan\nperro,\nsolo\n  gato , cat \n",
			want:  []string{"hola=hello", "gato=cat"},
		},
		{
			name:  "extra columns are ignored",
			input: "a,b,c\nuno,one,1\n",
			want:  []string{"uno=one"},
		},
		{
			name:  "quoted fields",
			input: "a,b\n\"buenos días\",\"good morning, sir\"\n",
			want:  []string{"buenos días=good morning, sir"},
		},
		{
			name:  "blank lines skipped",
			input: "\n\na,b\n\nsí,yes\n\n",
			want:  []string{"sí=yes"},
		},
		{
			name:    "single column",
			input:   "words\nhola\n",
			wantErr: ErrTooFewColumns,
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			words, err := Parse(strings.NewReader(tt.input), FormatCSV)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Len(t, words, len(tt.want))
			for i, w := range words {
				assert.Equal(t, i+1, w.ID, "ids are 1-based among retained rows")
				assert.Equal(t, tt.want[i], w.Original+"="+w.Translation)
			}
		})
	}
}

func TestParseXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"German", "English"},
		{"Hund", "dog"},
		{"", "nothing"},
		{"Katze", "cat"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	words, err := Parse(bytes.NewReader(buf.Bytes()), FormatXLSX)
	require.NoError(t, err)
	require.Len(t, words, 2)
	assert.Equal(t, "Hund", words[0].Original)
	assert.Equal(t, "cat", words[1].Translation)
	assert.Equal(t, 2, words[1].ID)
}

func TestParseCatalog(t *testing.T) {
	c, err := ParseCatalog(strings.NewReader("languages:\n  - id: spanish\n    name: Spanish\n  - id: klingon\n    file: tlh\n"))
	require.NoError(t, err)
	require.Len(t, c.Languages, 2)
	assert.Equal(t, "Klingon", c.Languages[1].Name, "name defaults from id")
	assert.Equal(t, "tlh", c.Languages[1].BaseName())
	assert.Equal(t, "Spanish", c.Languages[0].BaseName())

	_, err = ParseCatalog(strings.NewReader("languages:\n  - id: a\n  - id: a\n"))
	assert.Error(t, err, "duplicate ids are rejected")

	_, err = ParseCatalog(strings.NewReader("languages:\n  - name: Nameless\n"))
	assert.Error(t, err, "missing id is rejected")
}

func TestBuiltinCatalog(t *testing.T) {
	c := BuiltinCatalog()
	ids := make([]string, 0, len(c.Languages))
	for _, e := range c.Languages {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{"spanish", "french", "german", "japanese", "korean", "arabic", "russian", "sanskrit"}, ids)
}

func TestEmbeddedLoadAll(t *testing.T) {
	l := NewLoader(NewEmbeddedSource(), BuiltinCatalog(), WithRand(rand.New(rand.NewPCG(1, 1))))
	langs := l.LoadAll(context.Background(), 5)

	var ids []string
	for _, lang := range langs {
		ids = append(ids, lang.ID)
		assert.NotEmpty(t, lang.Levels, "%s should have levels", lang.ID)
		for _, lv := range lang.Levels {
			assert.Len(t, lv.Words, 5)
		}
	}
	assert.Equal(t, []string{"spanish", "french", "japanese", "arabic"}, ids,
		"only languages with a word bank are selectable")
}

func TestLoaderMissingLanguage(t *testing.T) {
	l := NewLoader(NewEmbeddedSource(), BuiltinCatalog())
	assert.Empty(t, l.Words(context.Background(), "korean"), "no word bank")
	assert.Empty(t, l.Words(context.Background(), "elvish"), "not in catalog")

	_, ok := l.LoadLanguage(context.Background(), "korean", 5)
	assert.False(t, ok)
}

func TestDirSourceOverridesEmbedded(t *testing.T) {
	dir := t.TempDir()
	csv := "Korean,English\n안녕,hello\n고양이,cat\n개,dog\n집,house\n물,water\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "korean.csv"), []byte(csv), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Spanish.csv"), []byte("es,en\nuno,one\n"), 0o644))

	src := MultiSource{NewDirSource(dir), NewEmbeddedSource()}
	l := NewLoader(src, BuiltinCatalog())

	ko := l.Words(context.Background(), "korean")
	require.Len(t, ko, 5, "lowercase id file name is accepted")

	es := l.Words(context.Background(), "spanish")
	require.Len(t, es, 1, "directory wins over the built-in bank")

	fr := l.Words(context.Background(), "french")
	assert.NotEmpty(t, fr, "falls through to the built-in bank")
}

func TestLoaderTooFewColumns(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Spanish.csv"), []byte("only\nuno\ndos\n"), 0o644))
	l := NewLoader(NewDirSource(dir), BuiltinCatalog())
	assert.Empty(t, l.Words(context.Background(), "spanish"))
}

type failingSource struct{ err error }

func (f failingSource) Open(context.Context, CatalogEntry) (io.ReadCloser, Format, error) {
	return nil, 0, f.err
}

func TestMultiSourceStopsOnRealError(t *testing.T) {
	boom := errors.New("permission denied")
	src := MultiSource{failingSource{boom}, NewEmbeddedSource()}
	_, _, err := src.Open(context.Background(), CatalogEntry{ID: "spanish", Name: "Spanish"})
	assert.ErrorIs(t, err, boom)

	src = MultiSource{failingSource{ErrSourceNotFound}}
	_, _, err = src.Open(context.Background(), CatalogEntry{ID: "spanish", Name: "Spanish"})
	assert.ErrorIs(t, err, ErrSourceNotFound)
}

func TestLoadCatalogFromDir(t *testing.T) {
	dir := t.TempDir()
	c, err := LoadCatalog(dir)
	require.NoError(t, err)
	assert.Len(t, c.Languages, 8, "falls back to the built-in catalog")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "languages.yaml"), []byte("languages:\n  - id: latin\n    name: Latin\n"), 0o644))
	c, err = LoadCatalog(dir)
	require.NoError(t, err)
	require.Len(t, c.Languages, 1)
	assert.Equal(t, "latin", c.Languages[0].ID)
}
