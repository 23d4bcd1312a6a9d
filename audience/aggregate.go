package audience

// Aggregate enriches validated records with geo reference data. The
// validator already guarantees pincode uniqueness, so this step is
// enrichment, not summation. Pincodes absent from the reference table
// are dropped and counted as resolution failures.
func Aggregate(records []ViewerRecord, resolver GeoResolver) ([]AggregatedRegion, int) {
	regions := make([]AggregatedRegion, 0, len(records))
	unresolved := 0

	for _, rec := range records {
		point, ok := resolver.Resolve(rec.Pincode)
		if !ok {
			unresolved++
			continue
		}
		regions = append(regions, AggregatedRegion{
			Pincode:      rec.Pincode,
			TotalViewers: rec.ViewerCount,
			Latitude:     point.Latitude,
			Longitude:    point.Longitude,
		})
	}

	return regions, unresolved
}
