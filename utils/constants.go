package utils

import "time"

// Context keys for request-scoped values
type ContextKey string

const (
	RequestIDKey  ContextKey = "request_id"
	UserAgentKey  ContextKey = "user_agent"
	IPAddressKey  ContextKey = "ip_address"
	EndpointKey   ContextKey = "endpoint"
	TimeoutKey    ContextKey = "timeout"
	CancelFuncKey ContextKey = "cancel_func"
)

// Audience pipeline constants
const (
	// PincodeLength is the fixed length of a valid Indian postal code
	PincodeLength = 6

	// DefaultClusterCount is the number of hotspots produced per clustering run
	DefaultClusterCount = 5

	// DefaultClusterSeed seeds centroid initialization so reruns are reproducible
	DefaultClusterSeed = 1

	// MaxClusterIterations caps Lloyd refinement per run
	MaxClusterIterations = 100

	// DefaultClusteringBudget is the wall-clock budget for one clustering run
	DefaultClusteringBudget = 30 * time.Second

	// TopPincodeCount is how many top pincodes are kept on a cluster summary
	TopPincodeCount = 10

	// HeatmapBuckets is the number of intensity levels in heatmap output
	HeatmapBuckets = 5
)

// Matchmaking constants
const (
	// DefaultMinViewers excludes candidates below this in-target viewer count
	DefaultMinViewers = 1000

	// DefaultSearchRadiusKm is the radius used when criteria omit one
	DefaultSearchRadiusKm = 50.0

	// ViewerVolumeCeiling is the reference ceiling for log-scaled volume scoring
	ViewerVolumeCeiling = 1_000_000

	// EarthRadiusKm is used by the haversine distance
	EarthRadiusKm = 6371.0

	// Score component weights
	WeightGeoOverlap    = 0.5
	WeightCategoryMatch = 0.3
	WeightLanguageMatch = 0.1
	WeightViewerVolume  = 0.1
)

// CORS and security constants
const (
	// CORSMaxAge is the maximum age for CORS preflight requests (24 hours)
	CORSMaxAge = 86400
)
