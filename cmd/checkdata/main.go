// Command checkdata audits the survey sheet without building the map. It
// reports missing columns, rows the completeness gate would drop, and
// category values that fall through to a dimension's default color.
//
// Usage:
//
//	go run ./cmd/checkdata -input Data/GW_Data_V2.csv [-palette palette.yaml] [-strict]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/couchcryptid/groundwater-study-map/internal/adapter/csvfile"
	"github.com/couchcryptid/groundwater-study-map/internal/config"
	"github.com/couchcryptid/groundwater-study-map/internal/domain"
)

// phase tracks pass/fail for a check phase. Notes are printed but never fail it.
type phase struct {
	name   string
	errors []string
	notes  []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) notef(format string, args ...any) {
	p.notes = append(p.notes, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

type options struct {
	input     string
	delimiter string
	palette   string
	strict    bool
}

func main() {
	var opts options
	flag.StringVar(&opts.input, "input", "Data/GW_Data_V2.csv", "path to the survey CSV")
	flag.StringVar(&opts.delimiter, "delimiter", ",", "CSV field delimiter")
	flag.StringVar(&opts.palette, "palette", "", "optional YAML palette file")
	flag.BoolVar(&opts.strict, "strict", false, "treat values outside the palette tables as failures")
	flag.Parse()

	os.Exit(run(context.Background(), opts, os.Stdout, os.Stderr))
}

func run(ctx context.Context, opts options, stdout, stderr io.Writer) int {
	delim := []rune(opts.delimiter)
	if len(delim) != 1 {
		fmt.Fprintf(stderr, "FATAL: delimiter must be a single character, got %q\n", opts.delimiter)
		return 1
	}

	palette, err := config.LoadPalette(opts.palette)
	if err != nil {
		fmt.Fprintf(stderr, "FATAL: %v\n", err)
		return 1
	}

	fmt.Fprintln(stdout, "=== Groundwater Survey Sheet Check ===")
	fmt.Fprintln(stdout)

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	table, err := csvfile.NewReader(opts.input, delim[0], logger).ReadTable(ctx)
	var schemaErr *domain.SchemaError
	if err != nil && !errors.As(err, &schemaErr) {
		fmt.Fprintf(stderr, "FATAL: %v\n", err)
		return 1
	}

	schema := &phase{name: "Schema (required columns)"}
	rows := &phase{name: "Row completeness"}
	coverage := &phase{name: "Palette coverage"}
	phases := []*phase{schema, rows, coverage}

	var loaded domain.LoadResult
	if err == nil {
		loaded, err = domain.LoadRecords(table)
	}
	if err != nil {
		schema.errorf("%v", err)
		rows.notef("skipped: schema check failed")
		coverage.notef("skipped: schema check failed")
	} else {
		checkRows(rows, loaded)
		checkCoverage(coverage, loaded.Records, palette, opts.strict)
	}

	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(stdout, "  %-42s %s\n", p.name, status)
	}

	fmt.Fprintln(stdout)
	fmt.Fprintf(stdout, "Rows: %d read, %d retained, %d rejected\n",
		len(table.Rows), len(loaded.Records), len(loaded.Rejected))

	for _, p := range phases {
		if p.passed() && len(p.notes) == 0 {
			continue
		}
		fmt.Fprintf(stdout, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(stdout, "  [%d] %s\n", i+1, e)
		}
		for _, n := range p.notes {
			fmt.Fprintf(stdout, "  note: %s\n", n)
		}
	}

	if allPassed {
		fmt.Fprintln(stdout, "\nAll checks passed.")
		return 0
	}
	fmt.Fprintln(stdout, "\nCheck FAILED.")
	return 1
}

func checkRows(p *phase, loaded domain.LoadResult) {
	for _, r := range loaded.Rejected {
		p.errorf("%v", r)
	}
}

// checkCoverage lists, per dimension, the distinct values that no category
// matches exactly, with how many records carry each.
func checkCoverage(p *phase, records []domain.StudyRecord, palette domain.Palette, strict bool) {
	for _, d := range palette.Dimensions {
		counts := make(map[string]int)
		for _, rec := range records {
			value, _ := rec.DimensionValue(d.Key)
			if !slices.ContainsFunc(d.Categories, func(c domain.Category) bool { return c.Match == value }) {
				counts[value]++
			}
		}

		values := make([]string, 0, len(counts))
		for v := range counts {
			values = append(values, v)
		}
		slices.Sort(values)

		for _, v := range values {
			msg := fmt.Sprintf("%s: %q (%d records) shown as %q", d.Layer, v, counts[v], d.Default.Label)
			if strict {
				p.errorf("%s", msg)
			} else {
				p.notef("%s", msg)
			}
		}
	}
}
