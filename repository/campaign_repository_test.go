package repository_test

import (
	"testing"

	"github.com/rahulranj05/LocalLens---AWS-AI-for-Bharat-Hackathon-Team---PARA/models"
	"github.com/rahulranj05/LocalLens---AWS-AI-for-Bharat-Hackathon-Team---PARA/repository"
	testingutil "github.com/rahulranj05/LocalLens---AWS-AI-for-Bharat-Hackathon-Team---PARA/testing"
	"github.com/rahulranj05/LocalLens---AWS-AI-for-Bharat-Hackathon-Team---PARA/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateStatusCAS(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)
		repo := repository.NewCampaignRepository(testDB.DB)
		ctx := testingutil.CreateTestContext()

		business, err := fixtures.CreateTestCustomer(models.AccountTypeBusiness)
		require.NoError(t, err)
		creator, err := fixtures.CreateTestCustomer(models.AccountTypeCreator)
		require.NoError(t, err)

		t.Run("SwapSucceedsOnce", func(t *testing.T) {
			campaign, err := fixtures.CreateTestCampaign(business.ID, creator.ID, models.CampaignStatusPending)
			require.NoError(t, err)

			snapshot := campaign.UpdatedAt
			swapped, err := repo.UpdateStatusCAS(ctx, campaign.ID, models.CampaignStatusPending, models.CampaignStatusAccepted, snapshot, utils.ToPtr("deal"))
			require.NoError(t, err)
			assert.True(t, swapped)

			reloaded, err := repo.ByID(ctx, campaign.ID)
			require.NoError(t, err)
			require.NotNil(t, reloaded)
			assert.Equal(t, models.CampaignStatusAccepted, reloaded.Status)
			require.NotNil(t, reloaded.ResponseMessage)
			assert.Equal(t, "deal", *reloaded.ResponseMessage)

			// Same snapshot again is stale now
			swapped, err = repo.UpdateStatusCAS(ctx, campaign.ID, models.CampaignStatusPending, models.CampaignStatusDeclined, snapshot, nil)
			require.NoError(t, err)
			assert.False(t, swapped)
		})

		t.Run("WrongSourceStatus", func(t *testing.T) {
			campaign, err := fixtures.CreateTestCampaign(business.ID, creator.ID, models.CampaignStatusAccepted)
			require.NoError(t, err)

			swapped, err := repo.UpdateStatusCAS(ctx, campaign.ID, models.CampaignStatusPending, models.CampaignStatusDeclined, campaign.UpdatedAt, nil)
			require.NoError(t, err)
			assert.False(t, swapped)
		})

		return nil
	})
	require.NoError(t, err)
}
