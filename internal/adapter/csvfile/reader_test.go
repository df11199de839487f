package csvfile

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/couchcryptid/groundwater-study-map/internal/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const surveyCSV = `DOI,Reviewer,Data Availability,Tracers,Isotope Method,Compartment,Country,Catchment,Latitude,Longitude,Elevation,Geological System,Model,Study Length,Sampling Frequency,Objective,Keywords
https://doi.org/10.1/a,MS,"Yes (e.g., in repository or paper)",Tritium,Isotope Ratio Mass Spectrometry,Springs,Austria,Lurbach,47.13,15.52,600,Karst,Mixing,2 years,Weekly,"Recharge, karst",karst
https://doi.org/10.1/b,MS,No,Tritium,Other,Springs,,Gurk,46.65,14.31,500,Alluvial,None,1 year,Monthly,Storage,alluvium
`

func TestParse_SurveySheet(t *testing.T) {
	table, err := Parse(context.Background(), strings.NewReader(surveyCSV), ',')
	require.NoError(t, err)

	require.Len(t, table.Header, 17)
	assert.Equal(t, "Data Availability", table.Header[2])
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Yes (e.g., in repository or paper)", table.Rows[0]["Data Availability"])
	assert.Equal(t, "Recharge, karst", table.Rows[0]["Objective"])
	assert.Equal(t, "", table.Rows[1]["Country"])
}

func TestParse_FeedsLoader(t *testing.T) {
	table, err := Parse(context.Background(), strings.NewReader(surveyCSV), ',')
	require.NoError(t, err)

	res, err := domain.LoadRecords(table)
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	assert.Equal(t, "Lurbach", res.Records[0].Catchment)
	assert.Equal(t, []domain.RowRejected{{Row: 2, Column: "Country", Reason: domain.ReasonBlank}}, res.Rejected)
}

func TestParse_BOMAndDelimiter(t *testing.T) {
	src := "\ufeffDOI;Country\nx;Austria\n"

	table, err := Parse(context.Background(), strings.NewReader(src), ';')
	require.NoError(t, err)

	assert.Equal(t, []string{"DOI", "Country"}, table.Header)
	assert.Equal(t, "Austria", table.Rows[0]["Country"])
}

func TestParse_RaggedRows(t *testing.T) {
	src := "A,B,C\n1,2\n1,2,3,4\n"

	table, err := Parse(context.Background(), strings.NewReader(src), ',')
	require.NoError(t, err)

	want := []domain.RawRow{
		{"A": "1", "B": "2"},
		{"A": "1", "B": "2", "C": "3"},
	}
	if diff := cmp.Diff(want, table.Rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_DuplicateHeaderFirstWins(t *testing.T) {
	table, err := Parse(context.Background(), strings.NewReader("DOI,DOI\nfirst,second\n"), ',')
	require.NoError(t, err)
	assert.Equal(t, "first", table.Rows[0]["DOI"])
}

func TestParse_Empty(t *testing.T) {
	table, err := Parse(context.Background(), strings.NewReader(""), ',')
	require.NoError(t, err)
	assert.Empty(t, table.Header)
	assert.Empty(t, table.Rows)

	_, err = domain.LoadRecords(table)
	var schemaErr *domain.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Len(t, schemaErr.Missing, len(domain.CanonicalColumns))
}

func TestParse_MalformedQuote(t *testing.T) {
	_, err := Parse(context.Background(), strings.NewReader("A,B\n\"open,1\nx\"y,2\n"), ',')

	var schemaErr *domain.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Error(t, schemaErr.Cause)
}

func TestParse_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Parse(ctx, strings.NewReader(surveyCSV), ',')
	require.ErrorIs(t, err, context.Canceled)
}

func TestReader_ReadTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "survey.csv")
	require.NoError(t, os.WriteFile(path, []byte(surveyCSV), 0o600))

	table, err := NewReader(path, ',', slog.Default()).ReadTable(context.Background())
	require.NoError(t, err)
	assert.Len(t, table.Rows, 2)
}

func TestReader_MissingFile(t *testing.T) {
	_, err := NewReader(filepath.Join(t.TempDir(), "nope.csv"), ',', slog.Default()).ReadTable(context.Background())
	require.ErrorIs(t, err, os.ErrNotExist)

	var schemaErr *domain.SchemaError
	assert.NotErrorAs(t, err, &schemaErr)
}
