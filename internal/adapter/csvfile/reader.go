// Package csvfile reads the survey sheet from a delimited text file.
package csvfile

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/couchcryptid/groundwater-study-map/internal/domain"
)

// ctxCheckEvery is how many rows are read between context checks.
const ctxCheckEvery = 256

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Reader loads a RawTable from a CSV file on disk.
type Reader struct {
	path      string
	delimiter rune
	logger    *slog.Logger
}

// NewReader creates a Reader for the file at path.
func NewReader(path string, delimiter rune, logger *slog.Logger) *Reader {
	return &Reader{path: path, delimiter: delimiter, logger: logger}
}

// ReadTable reads the whole file. An unopenable file is returned as a plain
// error; a file that cannot be parsed as CSV is a *domain.SchemaError.
func (r *Reader) ReadTable(ctx context.Context) (domain.RawTable, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return domain.RawTable{}, fmt.Errorf("read input: %w", err)
	}
	table, err := Parse(ctx, bytes.NewReader(data), r.delimiter)
	if err != nil {
		return domain.RawTable{}, err
	}
	r.logger.Debug("input table read", "path", r.path, "columns", len(table.Header), "rows", len(table.Rows))
	return table, nil
}

// Parse reads a header line followed by data rows. Short rows leave the
// trailing columns absent and long rows drop their extra fields. Where a
// header name repeats, the first column wins. An empty stream yields an empty
// table.
func Parse(ctx context.Context, src io.Reader, delimiter rune) (domain.RawTable, error) {
	cr := csv.NewReader(skipBOM(src))
	cr.Comma = delimiter
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return domain.RawTable{}, nil
	}
	if err != nil {
		return domain.RawTable{}, &domain.SchemaError{Cause: err}
	}

	table := domain.RawTable{Header: header}
	for n := 0; ; n++ {
		if n%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return domain.RawTable{}, err
			}
		}

		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return domain.RawTable{}, &domain.SchemaError{Cause: err}
		}
		table.Rows = append(table.Rows, toRow(header, fields))
	}
	return table, nil
}

func toRow(header, fields []string) domain.RawRow {
	row := make(domain.RawRow, len(header))
	for i, name := range header {
		if i >= len(fields) {
			break
		}
		if _, dup := row[name]; dup {
			continue
		}
		row[name] = fields[i]
	}
	return row
}

func skipBOM(src io.Reader) io.Reader {
	buf := make([]byte, len(utf8BOM))
	n, _ := io.ReadFull(src, buf)
	if n == len(utf8BOM) && bytes.Equal(buf, utf8BOM) {
		return src
	}
	return io.MultiReader(bytes.NewReader(buf[:n]), src)
}
