// Package models contains domain entities and business models for the matchmaking platform
package models

// GeoReference is one row of the static pincode lookup table. Leaf
// dependency for enrichment: every pincode resolves to exactly one row.
type GeoReference struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	Pincode   string  `gorm:"size:6;not null;uniqueIndex:uk_geo_references_pincode" json:"pincode"`
	State     string  `gorm:"size:50;not null;index:idx_geo_references_state" json:"state"`
	District  string  `gorm:"size:50;not null" json:"district"`
	Latitude  float64 `gorm:"not null" json:"latitude"`
	Longitude float64 `gorm:"not null" json:"longitude"`
}

func (GeoReference) TableName() string {
	return "geo_references"
}

// GeoReferenceFilter represents filter criteria for geo reference queries
type GeoReferenceFilter struct {
	ID       *uint
	Pincode  *string
	State    *string
	District *string
}
