// Package models contains domain entities and business models for the matchmaking platform
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ClusterResult is one geographic hotspot inside a summary. Cluster ids
// are stable only within one clustering run.
type ClusterResult struct {
	ClusterID       int             `json:"cluster_id"`
	CentroidPincode string          `json:"centroid_pincode"`
	CentroidLat     float64         `json:"centroid_lat"`
	CentroidLon     float64         `json:"centroid_lon"`
	TotalViewers    int64           `json:"total_viewers"`
	Members         []ClusterMember `json:"members"`
}

// ClusterMember is one pincode assigned to a hotspot
type ClusterMember struct {
	Pincode   string  `json:"pincode"`
	Viewers   int64   `json:"viewers"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ClusterResults is the JSONB column type holding the ordered hotspots
type ClusterResults []ClusterResult

// Value implements the driver.Valuer interface for ClusterResults
func (c ClusterResults) Value() (driver.Value, error) {
	return json.Marshal(c)
}

// Scan implements the sql.Scanner interface for ClusterResults
func (c *ClusterResults) Scan(value any) error {
	if value == nil {
		*c = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into ClusterResults", value)
	}

	return json.Unmarshal(bytes, c)
}

// TopPincode is one entry of the top-N pincodes by viewer count
type TopPincode struct {
	Pincode string `json:"pincode"`
	Viewers int64  `json:"viewers"`
}

// TopPincodes is the JSONB column type for the top-N list
type TopPincodes []TopPincode

// Value implements the driver.Valuer interface for TopPincodes
func (t TopPincodes) Value() (driver.Value, error) {
	return json.Marshal(t)
}

// Scan implements the sql.Scanner interface for TopPincodes
func (t *TopPincodes) Scan(value any) error {
	if value == nil {
		*t = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into TopPincodes", value)
	}

	return json.Unmarshal(bytes, t)
}

// ClusterSummary is the per-creator clustering snapshot. It is replaced
// wholesale on every re-clustering run, never partially updated, so a
// reader always sees one internally consistent run.
type ClusterSummary struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UUID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_cluster_summaries_uuid" json:"uuid"`
	CustomerID uint      `gorm:"not null;uniqueIndex:uk_cluster_summaries_customer_id" json:"customer_id"`
	Customer   *Customer `gorm:"foreignKey:CustomerID;references:ID" json:"customer,omitempty"`
	UploadID   *uint     `gorm:"index:idx_cluster_summaries_upload_id" json:"upload_id,omitempty"`

	Clusters     ClusterResults `gorm:"type:jsonb;not null" json:"clusters"`
	TotalViewers int64          `gorm:"not null" json:"total_viewers"`
	TopPincodes  TopPincodes    `gorm:"type:jsonb" json:"top_pincodes"`

	GeneratedAt time.Time `gorm:"not null;index:idx_cluster_summaries_generated_at" json:"generated_at"`
	CreatedAt   time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
}

func (ClusterSummary) TableName() string {
	return "cluster_summaries"
}

// MemberPincodes returns every member pincode across all clusters
func (s *ClusterSummary) MemberPincodes() []string {
	var out []string
	for _, cluster := range s.Clusters {
		for _, m := range cluster.Members {
			out = append(out, m.Pincode)
		}
	}
	return out
}

// ClusterSummaryFilter represents filter criteria for summary queries
type ClusterSummaryFilter struct {
	ID              *uint
	UUID            *uuid.UUID
	CustomerID      *uint
	GeneratedAfter  *time.Time
	GeneratedBefore *time.Time
}
