package domain

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// LoadResult holds the retained records and the rows that were dropped.
type LoadResult struct {
	Records  []StudyRecord
	Rejected []RowRejected
}

// NormalizeColumn strips whitespace, punctuation, and symbols from a header
// and upper-cases the rest, e.g. "Isotope-Method" -> "ISOTOPEMETHOD".
func NormalizeColumn(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsSymbol(r) {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

// LoadRecords validates a raw table and converts its complete rows into
// StudyRecords, preserving row order.
//
// A row is kept only when every header column has a value that is neither
// blank nor a null placeholder such as "N/A" or "None", and the
// coordinates parse as finite, in-range numbers. Anything else drops the
// whole row and is reported in LoadResult.Rejected. A table missing any
// canonical column fails with *SchemaError before any row is looked at.
func LoadRecords(table RawTable) (LoadResult, error) {
	columns, err := resolveColumns(table.Header)
	if err != nil {
		return LoadResult{}, err
	}

	result := LoadResult{Records: make([]StudyRecord, 0, len(table.Rows))}
	for i, row := range table.Rows {
		rec, rejected := parseRow(i+1, table.Header, columns, row)
		if rejected != nil {
			result.Rejected = append(result.Rejected, *rejected)
			continue
		}
		result.Records = append(result.Records, rec)
	}
	return result, nil
}

// resolveColumns maps each canonical column to the first source header that
// normalizes to it.
func resolveColumns(header []string) (map[string]string, error) {
	columns := make(map[string]string, len(CanonicalColumns))
	for _, h := range header {
		key := NormalizeColumn(h)
		if _, seen := columns[key]; !seen {
			columns[key] = h
		}
	}

	var missing []string
	for _, c := range CanonicalColumns {
		if _, ok := columns[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}
	return columns, nil
}

// nullTokens are the spreadsheet placeholders read as "no value". Matching is
// case-sensitive, so "none" or "Na" stay ordinary text.
var nullTokens = map[string]struct{}{
	"#N/A": {}, "#N/A N/A": {}, "#NA": {},
	"-1.#IND": {}, "-1.#QNAN": {}, "-NaN": {}, "-nan": {},
	"1.#IND": {}, "1.#QNAN": {}, "<NA>": {},
	"N/A": {}, "NA": {}, "NULL": {}, "NaN": {},
	"None": {}, "n/a": {}, "nan": {}, "null": {},
}

func parseRow(n int, header []string, columns map[string]string, row RawRow) (StudyRecord, *RowRejected) {
	for _, h := range header {
		v, ok := row[h]
		if !ok {
			return StudyRecord{}, &RowRejected{Row: n, Column: h, Reason: ReasonMissing}
		}
		v = strings.TrimSpace(v)
		if v == "" {
			return StudyRecord{}, &RowRejected{Row: n, Column: h, Reason: ReasonBlank}
		}
		if _, null := nullTokens[v]; null {
			return StudyRecord{}, &RowRejected{Row: n, Column: h, Reason: ReasonNull}
		}
	}

	get := func(col string) string { return row[columns[col]] }

	lat, reason := parseCoordinate(get(ColLatitude), 90)
	if reason != "" {
		return StudyRecord{}, &RowRejected{Row: n, Column: columns[ColLatitude], Reason: reason}
	}
	lon, reason := parseCoordinate(get(ColLongitude), 180)
	if reason != "" {
		return StudyRecord{}, &RowRejected{Row: n, Column: columns[ColLongitude], Reason: reason}
	}

	return StudyRecord{
		DOI:               get(ColDOI),
		Reviewer:          get(ColReviewer),
		DataAvailability:  get(ColDataAvailability),
		Tracers:           get(ColTracers),
		IsotopeMethod:     get(ColIsotopeMethod),
		Compartment:       get(ColCompartment),
		Country:           get(ColCountry),
		Catchment:         get(ColCatchment),
		Latitude:          lat,
		Longitude:         lon,
		Elevation:         get(ColElevation),
		GeologicalSystem:  get(ColGeologicalSystem),
		Model:             get(ColModel),
		StudyLength:       get(ColStudyLength),
		SamplingFrequency: get(ColSamplingFrequency),
		Objective:         get(ColObjective),
		Keywords:          get(ColKeywords),
	}, nil
}

// parseCoordinate parses a decimal degree value bounded by ±limit. It returns
// a rejection reason instead of an error so the caller can attach the column.
func parseCoordinate(s string, limit float64) (float64, string) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ReasonInvalidCoordinate
	}
	if v < -limit || v > limit {
		return 0, ReasonOutOfRange
	}
	return v, ""
}
