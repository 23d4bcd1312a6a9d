package audience

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapResolver map[string]GeoPoint

func (m mapResolver) Resolve(pincode string) (GeoPoint, bool) {
	p, ok := m[pincode]
	return p, ok
}

func TestAggregate(t *testing.T) {
	resolver := mapResolver{
		"600001": {State: "Tamil Nadu", District: "Chennai", Latitude: 13.08, Longitude: 80.27},
		"110001": {State: "Delhi", District: "New Delhi", Latitude: 28.63, Longitude: 77.22},
	}

	t.Run("EnrichesResolvableRecords", func(t *testing.T) {
		records := []ViewerRecord{
			{Pincode: "600001", ViewerCount: 500},
			{Pincode: "110001", ViewerCount: 300},
		}

		regions, unresolved := Aggregate(records, resolver)
		require.Len(t, regions, 2)
		assert.Zero(t, unresolved)
		assert.Equal(t, AggregatedRegion{Pincode: "600001", TotalViewers: 500, Latitude: 13.08, Longitude: 80.27}, regions[0])
	})

	t.Run("DropsAndCountsUnresolved", func(t *testing.T) {
		records := []ViewerRecord{
			{Pincode: "600001", ViewerCount: 500},
			{Pincode: "999999", ViewerCount: 300},
		}

		regions, unresolved := Aggregate(records, resolver)
		require.Len(t, regions, 1)
		assert.Equal(t, 1, unresolved)
		assert.Equal(t, "600001", regions[0].Pincode)
	})

	t.Run("EmptyInput", func(t *testing.T) {
		regions, unresolved := Aggregate(nil, resolver)
		assert.Empty(t, regions)
		assert.Zero(t, unresolved)
	})
}
