// Package audience implements the deterministic audience data pipeline:
// upload validation, geographic enrichment, hotspot clustering, heatmap
// projection, and creator-business match scoring. Every function here
// is a pure computation over explicit inputs so independent runs are
// safe to execute concurrently.
package audience

import "regexp"

// RawRow is one unvalidated row of an upload. Nil fields were absent
// from the source row.
type RawRow struct {
	Row         int
	Pincode     *string
	ViewerCount *string
}

// ViewerRecord is one validated row: a pincode and its viewer count
type ViewerRecord struct {
	Pincode     string `json:"pincode"`
	ViewerCount int64  `json:"viewer_count"`
}

// RejectReason is a machine-readable row rejection code
type RejectReason string

const (
	RejectMissingField       RejectReason = "missing_field"
	RejectInvalidPincode     RejectReason = "invalid_pincode"
	RejectInvalidViewerCount RejectReason = "invalid_viewer_count"
	RejectDuplicatePincode   RejectReason = "duplicate_pincode"
	RejectGeoResolution      RejectReason = "geo_resolution_failed"
)

// Reject is one rejected row with the first rule it failed
type Reject struct {
	Row     int          `json:"row"`
	Reason  RejectReason `json:"reason"`
	Pincode string       `json:"pincode,omitempty"`
}

// GeoPoint is resolved reference data for one pincode
type GeoPoint struct {
	State     string
	District  string
	Latitude  float64
	Longitude float64
}

// GeoResolver resolves a pincode against the geo reference table
type GeoResolver interface {
	Resolve(pincode string) (GeoPoint, bool)
}

// AggregatedRegion is one enriched, deduplicated pincode row
type AggregatedRegion struct {
	Pincode      string  `json:"pincode"`
	TotalViewers int64   `json:"total_viewers"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
}

var pincodePattern = regexp.MustCompile(`^[0-9]{6}$`)
