package audience

import (
	"testing"

	"github.com/rahulranj05/LocalLens---AWS-AI-for-Bharat-Hackathon-Team---PARA/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// summaryAround builds a one-cluster summary with the given viewer
// counts at small offsets from the target coordinates.
func summaryAround(lat, lon float64, viewers ...int64) *models.ClusterSummary {
	var members []models.ClusterMember
	var total int64
	for i, v := range viewers {
		members = append(members, models.ClusterMember{
			Pincode:   "60000" + string(rune('1'+i)),
			Viewers:   v,
			Latitude:  lat + float64(i)*0.01,
			Longitude: lon,
		})
		total += v
	}
	return &models.ClusterSummary{
		Clusters:     models.ClusterResults{{ClusterID: 0, TotalViewers: total, Members: members}},
		TotalViewers: total,
	}
}

func chennaiCriteria() MatchCriteria {
	return MatchCriteria{
		TargetPincode:     "600001",
		TargetLat:         13.08,
		TargetLon:         80.27,
		RadiusKm:          25,
		ContentCategories: []string{"food", "travel"},
		Languages:         []string{"tamil", "english"},
		MinViewers:        1000,
	}
}

func TestScore(t *testing.T) {
	t.Run("ScoreBounds", func(t *testing.T) {
		catalog := []CreatorCandidate{
			{
				CreatorID:  1,
				Categories: []string{"food", "travel"},
				Languages:  []string{"tamil", "english"},
				Summary:    summaryAround(13.08, 80.27, 900000, 100000),
			},
		}
		matches := Score(chennaiCriteria(), catalog)
		require.Len(t, matches, 1)
		assert.GreaterOrEqual(t, matches[0].MatchScore, 0.0)
		assert.LessOrEqual(t, matches[0].MatchScore, 100.0)
		assert.GreaterOrEqual(t, matches[0].OverlapPercentage, 0.0)
		assert.LessOrEqual(t, matches[0].OverlapPercentage, 100.0)
	})

	t.Run("MinViewersExcludesEntirely", func(t *testing.T) {
		catalog := []CreatorCandidate{
			{CreatorID: 1, Summary: summaryAround(13.08, 80.27, 500)},
		}
		matches := Score(chennaiCriteria(), catalog)
		assert.Empty(t, matches)
	})

	t.Run("DistantAudienceDoesNotCount", func(t *testing.T) {
		// Audience in Delhi, target in Chennai: nothing within radius.
		catalog := []CreatorCandidate{
			{CreatorID: 1, Summary: summaryAround(28.63, 77.22, 50000)},
		}
		matches := Score(chennaiCriteria(), catalog)
		assert.Empty(t, matches)
	})

	t.Run("OverlapPercentage", func(t *testing.T) {
		// Half the audience near the target, half in Delhi.
		summary := summaryAround(13.08, 80.27, 2000)
		summary.Clusters = append(summary.Clusters, models.ClusterResult{
			ClusterID:    1,
			TotalViewers: 2000,
			Members: []models.ClusterMember{
				{Pincode: "110001", Viewers: 2000, Latitude: 28.63, Longitude: 77.22},
			},
		})
		summary.TotalViewers = 4000

		catalog := []CreatorCandidate{{CreatorID: 1, Summary: summary}}
		matches := Score(chennaiCriteria(), catalog)
		require.Len(t, matches, 1)
		assert.InDelta(t, 50.0, matches[0].OverlapPercentage, 0.001)
		assert.Equal(t, int64(2000), matches[0].ViewersInTarget)
		assert.Equal(t, []string{"600001"}, matches[0].OverlappingPincodes)
	})

	t.Run("RankingOrder", func(t *testing.T) {
		criteria := chennaiCriteria()
		catalog := []CreatorCandidate{
			{CreatorID: 3, Summary: summaryAround(13.08, 80.27, 5000)},
			{
				CreatorID:  1,
				Categories: []string{"food", "travel"},
				Languages:  []string{"tamil", "english"},
				Summary:    summaryAround(13.08, 80.27, 5000),
			},
			{CreatorID: 2, Summary: summaryAround(13.08, 80.27, 5000)},
		}

		matches := Score(criteria, catalog)
		require.Len(t, matches, 3)
		// Creator 1 wins on category and language components; 2 and 3
		// tie on everything, so the lower creator id ranks first.
		assert.Equal(t, uint(1), matches[0].CreatorID)
		assert.Equal(t, uint(2), matches[1].CreatorID)
		assert.Equal(t, uint(3), matches[2].CreatorID)
	})

	t.Run("TieBreakByViewersInTarget", func(t *testing.T) {
		criteria := chennaiCriteria()
		criteria.MinViewers = 1

		// Same overlap percentage, different absolute volume.
		bigger := summaryAround(13.08, 80.27, 4000)
		smaller := summaryAround(13.08, 80.27, 2000)

		catalog := []CreatorCandidate{
			{CreatorID: 1, Summary: smaller},
			{CreatorID: 2, Summary: bigger},
		}
		matches := Score(criteria, catalog)
		require.Len(t, matches, 2)
		assert.Equal(t, uint(2), matches[0].CreatorID)
	})

	t.Run("ZeroViewerCreator", func(t *testing.T) {
		criteria := chennaiCriteria()
		criteria.MinViewers = 0

		summary := &models.ClusterSummary{Clusters: models.ClusterResults{}, TotalViewers: 0}
		catalog := []CreatorCandidate{{CreatorID: 1, Summary: summary}}

		// Defined as zero overlap, not a division error.
		matches := Score(criteria, catalog)
		require.Len(t, matches, 1)
		assert.Zero(t, matches[0].OverlapPercentage)
	})

	t.Run("EmptyCategorySetsScoreZero", func(t *testing.T) {
		criteria := chennaiCriteria()
		criteria.ContentCategories = nil
		criteria.Languages = nil

		catalog := []CreatorCandidate{
			{CreatorID: 1, Summary: summaryAround(13.08, 80.27, 5000)},
		}
		matches := Score(criteria, catalog)
		require.Len(t, matches, 1)
		// Only overlap (100 * 0.5) and volume components contribute.
		assert.Greater(t, matches[0].MatchScore, 50.0)
		assert.Less(t, matches[0].MatchScore, 60.0)
	})

	t.Run("Deterministic", func(t *testing.T) {
		criteria := chennaiCriteria()
		catalog := []CreatorCandidate{
			{CreatorID: 1, Categories: []string{"food"}, Summary: summaryAround(13.08, 80.27, 5000)},
			{CreatorID: 2, Languages: []string{"tamil"}, Summary: summaryAround(13.08, 80.27, 7000)},
		}
		assert.Equal(t, Score(criteria, catalog), Score(criteria, catalog))
	})
}

func TestHaversineKm(t *testing.T) {
	// Chennai to Bengaluru is roughly 290 km
	d := HaversineKm(13.0827, 80.2707, 12.9716, 77.5946)
	assert.InDelta(t, 290, d, 15)

	assert.Zero(t, HaversineKm(13.0, 80.0, 13.0, 80.0))
}
