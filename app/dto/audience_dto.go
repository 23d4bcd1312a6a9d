package dto

import "time"

// SubmitUploadRequest represents an audience data upload submission
type SubmitUploadRequest struct {
	CustomerID uint   `json:"-"`
	Format     string `json:"format" validate:"required,oneof=csv xlsx json"`
	Data       []byte `json:"-"`
}

// SubmitUploadResponse acknowledges an accepted upload
type SubmitUploadResponse struct {
	Message   string `json:"message"`
	UUID      string `json:"uuid"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

// GetUploadRequest represents the request to fetch upload status
type GetUploadRequest struct {
	UUID       string `json:"-"`
	CustomerID uint   `json:"-"`
}

// RejectDTO describes a single rejected input row
type RejectDTO struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
	Value  string `json:"value,omitempty"`
}

// GetUploadResponse represents upload status and validation outcome
type GetUploadResponse struct {
	UUID            string      `json:"uuid"`
	Format          string      `json:"format"`
	Status          string      `json:"status"`
	ValidCount      int         `json:"valid_count"`
	RejectCount     int         `json:"reject_count"`
	UnresolvedCount int         `json:"unresolved_count"`
	Rejects         []RejectDTO `json:"rejects,omitempty"`
	FailureReason   *string     `json:"failure_reason,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	CompletedAt     *time.Time  `json:"completed_at,omitempty"`
}

// ClusterMemberDTO is one pincode inside a cluster
type ClusterMemberDTO struct {
	Pincode   string  `json:"pincode"`
	Viewers   int64   `json:"viewers"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ClusterDTO is one viewer hotspot in a summary
type ClusterDTO struct {
	ClusterID       int                `json:"cluster_id"`
	CentroidPincode string             `json:"centroid_pincode"`
	CentroidLat     float64            `json:"centroid_lat"`
	CentroidLon     float64            `json:"centroid_lon"`
	TotalViewers    int64              `json:"total_viewers"`
	Members         []ClusterMemberDTO `json:"members"`
}

// TopPincodeDTO is one entry of the top-viewer pincode list
type TopPincodeDTO struct {
	Pincode string `json:"pincode"`
	Viewers int64  `json:"viewers"`
}

// GetSummaryResponse represents a creator's latest cluster summary
type GetSummaryResponse struct {
	UploadID    *uint           `json:"upload_id,omitempty"`
	GeneratedAt time.Time       `json:"generated_at"`
	Clusters    []ClusterDTO    `json:"clusters"`
	TopPincodes []TopPincodeDTO `json:"top_pincodes"`
}

// HeatmapPointDTO is one pincode in the heatmap projection
type HeatmapPointDTO struct {
	Pincode   string  `json:"pincode"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Viewers   int64   `json:"viewers"`
	ClusterID int     `json:"cluster_id"`
	Intensity int     `json:"intensity"`
}

// GetHeatmapResponse represents the heatmap projection of a summary
type GetHeatmapResponse struct {
	GeneratedAt time.Time         `json:"generated_at"`
	Points      []HeatmapPointDTO `json:"points"`
}
