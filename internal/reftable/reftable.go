// Package reftable reads the static model/engine/mode reference table. The table is a
// tab-separated file with the header "model engine mode pkg"; an empty pkg means the engine is
// provided by the package that defines the model.
package reftable

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	gocache "github.com/patrickmn/go-cache"
)

//go:embed models.tsv
var embedded []byte

const embeddedKey = "embedded:models.tsv"

var columns = []string{"model", "engine", "mode", "pkg"}

// ErrMalformed is returned for tables that cannot be parsed.
var ErrMalformed = errors.New("malformed reference table")

// tables caches parsed tables by path for the life of the process.
var tables = gocache.New(gocache.NoExpiration, 0)

// Row is one reference entry.
type Row struct {
	Model   string
	Engine  string
	Mode    string
	Package string
}

// Table is a parsed reference table.
type Table struct {
	rows    []Row
	byModel map[string][]Row
}

// Parse reads a reference table.
func Parse(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.Comment = '#'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: reading header: %v", ErrMalformed, err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, col := range columns[:3] {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrMalformed, col)
		}
	}

	t := &Table{byModel: make(map[string][]Row)}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}

		row := Row{
			Model:   field(record, index, "model"),
			Engine:  field(record, index, "engine"),
			Mode:    field(record, index, "mode"),
			Package: field(record, index, "pkg"),
		}
		if row.Model == "" || row.Engine == "" || row.Mode == "" {
			line, _ := reader.FieldPos(0)
			return nil, fmt.Errorf("%w: line %d: model, engine and mode are required", ErrMalformed, line)
		}

		t.rows = append(t.rows, row)
		t.byModel[row.Model] = append(t.byModel[row.Model], row)
	}

	return t, nil
}

func field(record []string, index map[string]int, name string) string {
	i, ok := index[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// Load parses the table at path. Each path is read once; later calls return the cached table.
func Load(path string) (*Table, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("reftable: resolve %s: %w", path, err)
	}
	if cached, ok := tables.Get(abs); ok {
		return cached.(*Table), nil
	}

	f, err := os.Open(abs)
	if err != nil {
		return nil, fmt.Errorf("reftable: failed to open %s: %w", path, err)
	}
	defer f.Close()

	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("reftable: %s: %w", path, err)
	}
	tables.Set(abs, t, gocache.NoExpiration)
	return t, nil
}

// Default returns the reference table bundled with the binary.
func Default() (*Table, error) {
	if cached, ok := tables.Get(embeddedKey); ok {
		return cached.(*Table), nil
	}

	t, err := Parse(bytes.NewReader(embedded))
	if err != nil {
		return nil, fmt.Errorf("reftable: embedded table: %w", err)
	}
	tables.Set(embeddedKey, t, gocache.NoExpiration)
	return t, nil
}

// ForModel returns the rows for model.
func (t *Table) ForModel(model string) []Row {
	return t.byModel[model]
}

// Rows returns every row in file order.
func (t *Table) Rows() []Row {
	return t.rows
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}
