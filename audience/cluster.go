package audience

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"sort"

	"github.com/rahulranj05/LocalLens---AWS-AI-for-Bharat-Hackathon-Team---PARA/models"
	"github.com/rahulranj05/LocalLens---AWS-AI-for-Bharat-Hackathon-Team---PARA/utils"
)

// ErrClusteringTimeout is returned when a run exceeds its wall-clock
// budget. The run is reported failed rather than silently truncated; a
// retry restarts from scratch and is deterministic.
var ErrClusteringTimeout = errors.New("clustering run exceeded wall-clock budget")

// featurePoint is a region projected into the clustering feature space:
// min-max normalized latitude and longitude plus log-scaled viewers.
type featurePoint [3]float64

func (p featurePoint) distanceSq(q featurePoint) float64 {
	var sum float64
	for i := range p {
		d := p[i] - q[i]
		sum += d * d
	}
	return sum
}

// buildFeatures projects regions into feature space. Normalization is
// computed over the current input only; there is no cross-run state.
func buildFeatures(regions []AggregatedRegion) []featurePoint {
	minLat, maxLat := math.Inf(1), math.Inf(-1)
	minLon, maxLon := math.Inf(1), math.Inf(-1)
	for _, r := range regions {
		minLat = math.Min(minLat, r.Latitude)
		maxLat = math.Max(maxLat, r.Latitude)
		minLon = math.Min(minLon, r.Longitude)
		maxLon = math.Max(maxLon, r.Longitude)
	}

	norm := func(v, lo, hi float64) float64 {
		if hi <= lo {
			return 0
		}
		return (v - lo) / (hi - lo)
	}

	points := make([]featurePoint, len(regions))
	for i, r := range regions {
		points[i] = featurePoint{
			norm(r.Latitude, minLat, maxLat),
			norm(r.Longitude, minLon, maxLon),
			math.Log1p(float64(r.TotalViewers)),
		}
	}
	return points
}

// seedCentroids picks k initial centroids deterministically: the first
// is drawn from the seeded source, the rest by farthest-point
// selection with ties resolved to the lower index.
func seedCentroids(points []featurePoint, k int, seed int64) []featurePoint {
	rng := rand.New(rand.NewSource(seed))
	chosen := make([]int, 0, k)
	chosen = append(chosen, rng.Intn(len(points)))

	minDist := make([]float64, len(points))
	for i := range minDist {
		minDist[i] = points[i].distanceSq(points[chosen[0]])
	}

	for len(chosen) < k {
		best, bestDist := -1, -1.0
		for i, d := range minDist {
			if d > bestDist {
				best, bestDist = i, d
			}
		}
		chosen = append(chosen, best)
		for i := range minDist {
			if d := points[i].distanceSq(points[best]); d < minDist[i] {
				minDist[i] = d
			}
		}
	}

	centroids := make([]featurePoint, k)
	for i, idx := range chosen {
		centroids[i] = points[idx]
	}
	return centroids
}

// Cluster groups regions into at most k geographic hotspots using
// Lloyd iteration. It is a pure function of (regions, k, seed):
// identical input always yields identical output. Empty input returns
// an empty result, not an error. k is capped by the input size.
func Cluster(regions []AggregatedRegion, k int, seed int64) []models.ClusterResult {
	out, _ := clusterInner(context.Background(), regions, k, seed)
	return out
}

// ClusterWithBudget behaves like Cluster but honors the context
// deadline between iterations, failing with ErrClusteringTimeout when
// the wall-clock budget is exceeded.
func ClusterWithBudget(ctx context.Context, regions []AggregatedRegion, k int, seed int64) ([]models.ClusterResult, error) {
	return clusterInner(ctx, regions, k, seed)
}

func clusterInner(ctx context.Context, regions []AggregatedRegion, k int, seed int64) ([]models.ClusterResult, error) {
	n := len(regions)
	if n == 0 {
		return []models.ClusterResult{}, nil
	}
	if k <= 0 {
		k = utils.DefaultClusterCount
	}
	if k > n {
		k = n
	}

	points := buildFeatures(regions)
	centroids := seedCentroids(points, k, seed)
	assignment := make([]int, n)
	for i := range assignment {
		assignment[i] = -1
	}

	for iter := 0; iter < utils.MaxClusterIterations; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, ErrClusteringTimeout
		}

		// Assign each region to its nearest centroid; the lower
		// cluster index wins on equidistant points.
		changed := false
		for i, p := range points {
			best, bestDist := 0, p.distanceSq(centroids[0])
			for c := 1; c < k; c++ {
				if d := p.distanceSq(centroids[c]); d < bestDist {
					best, bestDist = c, d
				}
			}
			if assignment[i] != best {
				assignment[i] = best
				changed = true
			}
		}
		if !changed {
			break
		}

		// Recompute centroids as the mean of assigned points. A
		// cluster that lost all members keeps its previous centroid.
		sums := make([]featurePoint, k)
		counts := make([]int, k)
		for i, c := range assignment {
			for d := 0; d < 3; d++ {
				sums[c][d] += points[i][d]
			}
			counts[c]++
		}
		for c := 0; c < k; c++ {
			if counts[c] == 0 {
				continue
			}
			for d := 0; d < 3; d++ {
				centroids[c][d] = sums[c][d] / float64(counts[c])
			}
		}
	}

	return buildResults(regions, points, centroids, assignment, k), nil
}

// buildResults materializes cluster output: member lists, viewer
// totals, the member nearest each centroid, and presentation-stable
// renumbering by total viewers descending.
func buildResults(regions []AggregatedRegion, points []featurePoint, centroids []featurePoint, assignment []int, k int) []models.ClusterResult {
	results := make([]models.ClusterResult, 0, k)
	for c := 0; c < k; c++ {
		var members []models.ClusterMember
		var total int64
		var sumLat, sumLon float64
		nearest, nearestDist := -1, math.Inf(1)
		for i, a := range assignment {
			if a != c {
				continue
			}
			r := regions[i]
			members = append(members, models.ClusterMember{
				Pincode:   r.Pincode,
				Viewers:   r.TotalViewers,
				Latitude:  r.Latitude,
				Longitude: r.Longitude,
			})
			total += r.TotalViewers
			sumLat += r.Latitude
			sumLon += r.Longitude
			if d := points[i].distanceSq(centroids[c]); d < nearestDist {
				nearest, nearestDist = i, d
			}
		}
		if len(members) == 0 {
			continue
		}
		// Centroid coordinates are reported in geographic space as the
		// mean of member coordinates; the feature-space centroid only
		// drives assignment.
		results = append(results, models.ClusterResult{
			CentroidPincode: regions[nearest].Pincode,
			CentroidLat:     sumLat / float64(len(members)),
			CentroidLon:     sumLon / float64(len(members)),
			TotalViewers:    total,
			Members:         members,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].TotalViewers > results[j].TotalViewers
	})
	for i := range results {
		results[i].ClusterID = i
	}
	return results
}

// TopPincodes returns the top-N members across all clusters by viewer
// count, ties broken by pincode ascending for determinism.
func TopPincodes(clusters []models.ClusterResult, n int) []models.TopPincode {
	var all []models.TopPincode
	for _, c := range clusters {
		for _, m := range c.Members {
			all = append(all, models.TopPincode{Pincode: m.Pincode, Viewers: m.Viewers})
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Viewers != all[j].Viewers {
			return all[i].Viewers > all[j].Viewers
		}
		return all[i].Pincode < all[j].Pincode
	})
	if len(all) > n {
		all = all[:n]
	}
	return all
}
