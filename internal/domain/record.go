package domain

// Canonical column names, i.e. source headers after NormalizeColumn.
const (
	ColDOI               = "DOI"
	ColReviewer          = "REVIEWER"
	ColDataAvailability  = "DATAAVAILABILITY"
	ColTracers           = "TRACERS"
	ColIsotopeMethod     = "ISOTOPEMETHOD"
	ColCompartment       = "COMPARTMENT"
	ColCountry           = "COUNTRY"
	ColCatchment         = "CATCHMENT"
	ColLatitude          = "LATITUDE"
	ColLongitude         = "LONGITUDE"
	ColElevation         = "ELEVATION"
	ColGeologicalSystem  = "GEOLOGICALSYSTEM"
	ColModel             = "MODEL"
	ColStudyLength       = "STUDYLENGTH"
	ColSamplingFrequency = "SAMPLINGFREQUENCY"
	ColObjective         = "OBJECTIVE"
	ColKeywords          = "KEYWORDS"
)

// CanonicalColumns lists every required column in survey-sheet order.
var CanonicalColumns = []string{
	ColDOI, ColReviewer, ColDataAvailability, ColTracers, ColIsotopeMethod,
	ColCompartment, ColCountry, ColCatchment, ColLatitude, ColLongitude,
	ColElevation, ColGeologicalSystem, ColModel, ColStudyLength,
	ColSamplingFrequency, ColObjective, ColKeywords,
}

// RawRow is one data row keyed by the header name exactly as it appeared in
// the source file. A header with no value in the row is absent from the map.
type RawRow map[string]string

// RawTable is a header plus its data rows, in file order.
type RawTable struct {
	Header []string
	Rows   []RawRow
}

// StudyRecord is a validated groundwater-tracer study. Every string field is
// non-blank and kept exactly as read; coordinates are finite and in range.
type StudyRecord struct {
	DOI               string  `json:"doi"`
	Reviewer          string  `json:"reviewer"`
	DataAvailability  string  `json:"data_availability"`
	Tracers           string  `json:"tracers"`
	IsotopeMethod     string  `json:"isotope_method"`
	Compartment       string  `json:"compartment"`
	Country           string  `json:"country"`
	Catchment         string  `json:"catchment"`
	Latitude          float64 `json:"latitude"`
	Longitude         float64 `json:"longitude"`
	Elevation         string  `json:"elevation"`
	GeologicalSystem  string  `json:"geological_system"`
	Model             string  `json:"model"`
	StudyLength       string  `json:"study_length"`
	SamplingFrequency string  `json:"sampling_frequency"`
	Objective         string  `json:"objective"`
	Keywords          string  `json:"keywords"`
}

// DimensionValue returns the record's value for a category dimension.
// The second result is false for a key no record field backs.
func (r StudyRecord) DimensionValue(key DimensionKey) (string, bool) {
	switch key {
	case DimDataAvailability:
		return r.DataAvailability, true
	case DimTracers:
		return r.Tracers, true
	case DimIsotopeMethod:
		return r.IsotopeMethod, true
	case DimCompartment:
		return r.Compartment, true
	default:
		return "", false
	}
}
