package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCampaignStatusValid(t *testing.T) {
	valid := []CampaignStatus{
		CampaignStatusPending,
		CampaignStatusAccepted,
		CampaignStatusDeclined,
		CampaignStatusCancelled,
		CampaignStatusCompleted,
	}
	for _, s := range valid {
		assert.True(t, s.Valid(), "expected %s to be valid", s)
	}

	assert.False(t, CampaignStatus("").Valid())
	assert.False(t, CampaignStatus("archived").Valid())
}

func TestCampaignStatusIsTerminal(t *testing.T) {
	assert.False(t, CampaignStatusPending.IsTerminal())
	assert.False(t, CampaignStatusAccepted.IsTerminal())
	assert.True(t, CampaignStatusDeclined.IsTerminal())
	assert.True(t, CampaignStatusCancelled.IsTerminal())
	assert.True(t, CampaignStatusCompleted.IsTerminal())
}

func TestCampaignStatusCanTransitionTo(t *testing.T) {
	all := []CampaignStatus{
		CampaignStatusPending,
		CampaignStatusAccepted,
		CampaignStatusDeclined,
		CampaignStatusCancelled,
		CampaignStatusCompleted,
	}

	allowed := map[CampaignStatus]map[CampaignStatus]bool{
		CampaignStatusPending: {
			CampaignStatusAccepted:  true,
			CampaignStatusDeclined:  true,
			CampaignStatusCancelled: true,
		},
		CampaignStatusAccepted: {
			CampaignStatusCompleted: true,
			CampaignStatusCancelled: true,
		},
	}

	for _, from := range all {
		for _, to := range all {
			got := from.CanTransitionTo(to)
			want := allowed[from][to]
			assert.Equal(t, want, got, "transition %s -> %s", from, to)
		}
	}
}

func TestCampaignStatusSelfTransitionRejected(t *testing.T) {
	// A retried transition must surface as invalid, not as a silent success
	for _, s := range []CampaignStatus{
		CampaignStatusPending,
		CampaignStatusAccepted,
		CampaignStatusDeclined,
		CampaignStatusCancelled,
		CampaignStatusCompleted,
	} {
		assert.False(t, s.CanTransitionTo(s), "self transition on %s", s)
	}
}

func TestTerminalStatusesHaveNoExits(t *testing.T) {
	all := []CampaignStatus{
		CampaignStatusPending,
		CampaignStatusAccepted,
		CampaignStatusDeclined,
		CampaignStatusCancelled,
		CampaignStatusCompleted,
	}

	for _, from := range all {
		if !from.IsTerminal() {
			continue
		}
		for _, to := range all {
			assert.False(t, from.CanTransitionTo(to), "terminal %s must not reach %s", from, to)
		}
	}
}

func TestCampaignDetailsRoundTrip(t *testing.T) {
	title := "Festive launch"
	message := "Looking for a dedicated review video."
	budgetMin := uint64(5000)
	budgetMax := uint64(20000)

	details := CampaignDetails{
		Title:     &title,
		Message:   &message,
		BudgetMin: &budgetMin,
		BudgetMax: &budgetMax,
	}

	value, err := details.Value()
	require.NoError(t, err)

	var decoded CampaignDetails
	require.NoError(t, decoded.Scan(value))
	require.NotNil(t, decoded.Title)
	assert.Equal(t, title, *decoded.Title)
	require.NotNil(t, decoded.BudgetMax)
	assert.Equal(t, budgetMax, *decoded.BudgetMax)
}

func TestCampaignStatusScan(t *testing.T) {
	var s CampaignStatus
	require.NoError(t, s.Scan("accepted"))
	assert.Equal(t, CampaignStatusAccepted, s)

	require.NoError(t, s.Scan([]byte("pending")))
	assert.Equal(t, CampaignStatusPending, s)

	require.NoError(t, s.Scan(nil))
	assert.Equal(t, CampaignStatus(""), s)

	assert.Error(t, s.Scan(42))
}

func TestClusterResultsScan(t *testing.T) {
	clusters := ClusterResults{
		{
			ClusterID:       0,
			CentroidPincode: "110001",
			CentroidLat:     28.6139,
			CentroidLon:     77.2090,
			TotalViewers:    1200,
			Members: []ClusterMember{
				{Pincode: "110001", Viewers: 1200, Latitude: 28.6139, Longitude: 77.2090},
			},
		},
	}

	value, err := clusters.Value()
	require.NoError(t, err)

	payload, ok := value.([]byte)
	require.True(t, ok)
	assert.True(t, json.Valid(payload))

	var decoded ClusterResults
	require.NoError(t, decoded.Scan(payload))
	require.Len(t, decoded, 1)
	assert.Equal(t, "110001", decoded[0].CentroidPincode)
	assert.Equal(t, int64(1200), decoded[0].TotalViewers)
}
