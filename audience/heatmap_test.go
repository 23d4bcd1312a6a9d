package audience

import (
	"testing"

	"github.com/rahulranj05/LocalLens---AWS-AI-for-Bharat-Hackathon-Team---PARA/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeatmap(t *testing.T) {
	t.Run("NilAndEmptySummaries", func(t *testing.T) {
		assert.Empty(t, Heatmap(nil))
		assert.Empty(t, Heatmap(&models.ClusterSummary{}))
	})

	t.Run("QuantileIntensities", func(t *testing.T) {
		summary := &models.ClusterSummary{
			Clusters: models.ClusterResults{
				{
					ClusterID: 0,
					Members: []models.ClusterMember{
						{Pincode: "600001", Viewers: 100},
						{Pincode: "600002", Viewers: 200},
						{Pincode: "600003", Viewers: 300},
						{Pincode: "600004", Viewers: 400},
						{Pincode: "600005", Viewers: 500},
					},
				},
			},
		}

		points := Heatmap(summary)
		require.Len(t, points, 5)

		intensityByPincode := make(map[string]int)
		for _, p := range points {
			intensityByPincode[p.Pincode] = p.Intensity
			assert.Equal(t, 0, p.ClusterID)
			assert.GreaterOrEqual(t, p.Intensity, 1)
			assert.LessOrEqual(t, p.Intensity, 5)
		}
		assert.Equal(t, 1, intensityByPincode["600001"])
		assert.Equal(t, 5, intensityByPincode["600005"])
	})

	t.Run("EqualCountsShareABucket", func(t *testing.T) {
		summary := &models.ClusterSummary{
			Clusters: models.ClusterResults{
				{
					ClusterID: 0,
					Members: []models.ClusterMember{
						{Pincode: "600001", Viewers: 100},
						{Pincode: "600002", Viewers: 100},
						{Pincode: "600003", Viewers: 100},
					},
				},
			},
		}

		points := Heatmap(summary)
		require.Len(t, points, 3)
		for _, p := range points {
			assert.Equal(t, points[0].Intensity, p.Intensity)
		}
	})

	t.Run("CarriesOwningClusterID", func(t *testing.T) {
		summary := &models.ClusterSummary{
			Clusters: models.ClusterResults{
				{ClusterID: 0, Members: []models.ClusterMember{{Pincode: "600001", Viewers: 10}}},
				{ClusterID: 1, Members: []models.ClusterMember{{Pincode: "110001", Viewers: 20}}},
			},
		}

		points := Heatmap(summary)
		require.Len(t, points, 2)
		// Output is sorted by pincode
		assert.Equal(t, 1, points[0].ClusterID)
		assert.Equal(t, 0, points[1].ClusterID)
	})
}
