// Package domain models the groundwater-tracer study survey and turns it into
// map features.
//
// # Data Source
//
// Studies come from a reviewer-maintained survey sheet exported as CSV, one
// row per study site. Header spelling drifts between exports ("DATA
// AVAILABILITY", "Isotope-Method", "study length"), so headers are matched
// after NormalizeColumn strips whitespace and punctuation and upper-cases:
//
//	"DATA AVAILABILITY"  →  DATAAVAILABILITY
//	"ISOTOPE-METHOD"     →  ISOTOPEMETHOD
//
// # Completeness
//
// The sheet has no partial-record semantics: a row with any blank cell, in
// any column, is dropped as a whole. Coordinates are WGS-84 decimal degrees
// and must be finite and within ±90 / ±180. Dropped rows are reported as
// RowRejected values, never silently discarded.
//
// # Categories
//
// Four survey columns are categorical and color-encoded on the map:
//
//	DATAAVAILABILITY  Yes / Partly / anything else ("No")
//	TRACERS           Stable water isotopes / Tritium / Electrical Conductivity / other ("Multiple")
//	ISOTOPEMETHOD     Laser Absorption Spectroscopy / Isotope Ratio Mass Spectrometry / other
//	COMPARTMENT       Springs / Deep Ground Water / Shallow Ground Water / other
//
// Matching is exact string equality against the survey's controlled
// vocabulary. The category tables live in a Palette, which is also the
// source for the legends; a value outside the vocabulary takes the
// dimension's default color rather than growing the legend.
//
// # Layers
//
// Each record yields one detail marker (layer "Study_Information") and one
// colored circle per dimension. ComposeLayers appends the "Europe" boundary
// overlay last; it wraps an external GeoJSON file that is passed through
// without being decoded.
package domain
