package audience

import (
	"math"
	"sort"
	"strings"

	"github.com/rahulranj05/LocalLens---AWS-AI-for-Bharat-Hackathon-Team---PARA/models"
	"github.com/rahulranj05/LocalLens---AWS-AI-for-Bharat-Hackathon-Team---PARA/utils"
)

// MatchCriteria is a business's targeting input to the scorer
type MatchCriteria struct {
	TargetPincode     string
	TargetLat         float64
	TargetLon         float64
	RadiusKm          float64
	ContentCategories []string
	Languages         []string
	MinViewers        int64
}

// CreatorCandidate pairs one creator's declared profile attributes with
// their latest cluster summary.
type CreatorCandidate struct {
	CreatorID  uint
	Categories []string
	Languages  []string
	Summary    *models.ClusterSummary
}

// CreatorMatch is one ranked scoring result
type CreatorMatch struct {
	CreatorID           uint     `json:"creator_id"`
	MatchScore          float64  `json:"match_score"`
	OverlapPercentage   float64  `json:"overlap_percentage"`
	CategoryMatchPct    float64  `json:"category_match_pct"`
	LanguageMatchPct    float64  `json:"language_match_pct"`
	OverlappingPincodes []string `json:"overlapping_pincodes"`
	ViewersInTarget     int64    `json:"viewers_in_target"`
}

// HaversineKm returns the great-circle distance between two points in
// kilometers. Straight-line accuracy is sufficient for ranking.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	const degToRad = math.Pi / 180
	dLat := (lat2 - lat1) * degToRad
	dLon := (lon2 - lon1) * degToRad
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*degToRad)*math.Cos(lat2*degToRad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * utils.EarthRadiusKm * math.Asin(math.Sqrt(a))
}

func normalizeSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			set[v] = struct{}{}
		}
	}
	return set
}

// jaccard computes |intersection| / |union|; both sets empty yields 0
func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	inter := 0
	for v := range a {
		if _, ok := b[v]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// Score ranks candidates against the criteria. Candidates whose
// in-target viewers fall below MinViewers are excluded entirely, not
// scored at zero. Pure and deterministic for identical inputs.
func Score(criteria MatchCriteria, catalog []CreatorCandidate) []CreatorMatch {
	radius := criteria.RadiusKm
	if radius <= 0 {
		radius = utils.DefaultSearchRadiusKm
	}
	// MinViewers is taken as given; the request layer applies the
	// product default, so an explicit zero means no volume floor.
	minViewers := criteria.MinViewers

	wantCategories := normalizeSet(criteria.ContentCategories)
	wantLanguages := normalizeSet(criteria.Languages)

	matches := make([]CreatorMatch, 0, len(catalog))
	for _, cand := range catalog {
		if cand.Summary == nil {
			continue
		}

		var viewersInTarget int64
		var overlapping []string
		for _, cluster := range cand.Summary.Clusters {
			for _, m := range cluster.Members {
				if HaversineKm(criteria.TargetLat, criteria.TargetLon, m.Latitude, m.Longitude) <= radius {
					viewersInTarget += m.Viewers
					overlapping = append(overlapping, m.Pincode)
				}
			}
		}

		if viewersInTarget < minViewers {
			continue
		}

		// Geographic overlap: share of the creator's audience inside
		// the target radius. Zero total viewers is defined as 0.
		overlapPct := 0.0
		if cand.Summary.TotalViewers > 0 {
			overlapPct = float64(viewersInTarget) / float64(cand.Summary.TotalViewers) * 100
		}
		if overlapPct > 100 {
			overlapPct = 100
		}

		categoryScore := jaccard(wantCategories, normalizeSet(cand.Categories)) * 100

		matchingLangs := 0
		candLangs := normalizeSet(cand.Languages)
		for lang := range wantLanguages {
			if _, ok := candLangs[lang]; ok {
				matchingLangs++
			}
		}
		langDenom := len(wantLanguages)
		if langDenom < 1 {
			langDenom = 1
		}
		if matchingLangs > len(wantLanguages) {
			matchingLangs = len(wantLanguages)
		}
		languageScore := float64(matchingLangs) / float64(langDenom) * 100

		volumeScore := math.Log1p(float64(viewersInTarget)) / math.Log1p(float64(utils.ViewerVolumeCeiling)) * 100
		if volumeScore > 100 {
			volumeScore = 100
		}

		score := utils.WeightGeoOverlap*overlapPct +
			utils.WeightCategoryMatch*categoryScore +
			utils.WeightLanguageMatch*languageScore +
			utils.WeightViewerVolume*volumeScore
		if score < 0 {
			score = 0
		}
		if score > 100 {
			score = 100
		}

		sort.Strings(overlapping)
		matches = append(matches, CreatorMatch{
			CreatorID:           cand.CreatorID,
			MatchScore:          score,
			OverlapPercentage:   overlapPct,
			CategoryMatchPct:    categoryScore,
			LanguageMatchPct:    languageScore,
			OverlappingPincodes: overlapping,
			ViewersInTarget:     viewersInTarget,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].MatchScore != matches[j].MatchScore {
			return matches[i].MatchScore > matches[j].MatchScore
		}
		if matches[i].ViewersInTarget != matches[j].ViewersInTarget {
			return matches[i].ViewersInTarget > matches[j].ViewersInTarget
		}
		return matches[i].CreatorID < matches[j].CreatorID
	})

	return matches
}
