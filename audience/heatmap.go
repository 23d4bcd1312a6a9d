package audience

import (
	"sort"

	"github.com/rahulranj05/LocalLens---AWS-AI-for-Bharat-Hackathon-Team---PARA/models"
	"github.com/rahulranj05/LocalLens---AWS-AI-for-Bharat-Hackathon-Team---PARA/utils"
)

// HeatmapPoint is one presentation-ready pincode density entry
type HeatmapPoint struct {
	Pincode   string  `json:"pincode"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Viewers   int64   `json:"viewers"`
	ClusterID int     `json:"cluster_id"`
	Intensity int     `json:"intensity"`
}

// Heatmap projects a cluster summary into per-pincode density points
// with viewer counts bucketed into quantile-based intensity levels
// (1 to HeatmapBuckets). Stateless; no computation beyond bucketing.
func Heatmap(summary *models.ClusterSummary) []HeatmapPoint {
	if summary == nil {
		return []HeatmapPoint{}
	}

	var points []HeatmapPoint
	for _, cluster := range summary.Clusters {
		for _, m := range cluster.Members {
			points = append(points, HeatmapPoint{
				Pincode:   m.Pincode,
				Latitude:  m.Latitude,
				Longitude: m.Longitude,
				Viewers:   m.Viewers,
				ClusterID: cluster.ClusterID,
			})
		}
	}
	if len(points) == 0 {
		return []HeatmapPoint{}
	}

	// Quantile thresholds over the observed viewer counts. Equal
	// counts always land in the same bucket.
	counts := make([]int64, len(points))
	for i, p := range points {
		counts[i] = p.Viewers
	}
	sort.Slice(counts, func(i, j int) bool { return counts[i] < counts[j] })

	buckets := utils.HeatmapBuckets
	thresholds := make([]int64, buckets)
	for b := 0; b < buckets; b++ {
		idx := (b+1)*len(counts)/buckets - 1
		if idx < 0 {
			idx = 0
		}
		thresholds[b] = counts[idx]
	}

	for i := range points {
		intensity := buckets
		for b := 0; b < buckets; b++ {
			if points[i].Viewers <= thresholds[b] {
				intensity = b + 1
				break
			}
		}
		points[i].Intensity = intensity
	}

	sort.Slice(points, func(i, j int) bool { return points[i].Pincode < points[j].Pincode })
	return points
}
