package domain

import (
	"fmt"
	"strings"
)

// SchemaError reports an input table that cannot be mapped onto the canonical
// column set. It is fatal: no row is processed.
type SchemaError struct {
	Missing []string // canonical names, in CanonicalColumns order
	Cause   error    // set when the table itself could not be parsed
}

func (e *SchemaError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("schema: malformed input: %v", e.Cause)
	}
	return "schema: missing required columns: " + strings.Join(e.Missing, ", ")
}

func (e *SchemaError) Unwrap() error { return e.Cause }

// Rejection reasons recorded on RowRejected.
const (
	ReasonMissing           = "missing"
	ReasonBlank             = "blank"
	ReasonNull              = "null"
	ReasonInvalidCoordinate = "invalid_coordinate"
	ReasonOutOfRange        = "out_of_range"
)

// RowRejected describes a data row excluded from the record set. It is not
// fatal; the loader accumulates these and keeps going.
type RowRejected struct {
	Row    int    `json:"row"` // 1-based, header excluded
	Column string `json:"column"`
	Reason string `json:"reason"`
}

func (r RowRejected) Error() string {
	return fmt.Sprintf("row %d rejected: column %q %s", r.Row, r.Column, r.Reason)
}

// RenderError reports a document that cannot be assembled consistently, such
// as a categorical layer without a legend. It is fatal: nothing is written.
type RenderError struct {
	Layer  string
	Reason string
}

func (e *RenderError) Error() string {
	if e.Layer == "" {
		return "render: " + e.Reason
	}
	return fmt.Sprintf("render: layer %q: %s", e.Layer, e.Reason)
}
