package businessflow_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/rahulranj05/LocalLens---AWS-AI-for-Bharat-Hackathon-Team---PARA/app/dto"
	"github.com/rahulranj05/LocalLens---AWS-AI-for-Bharat-Hackathon-Team---PARA/app/services"
	businessflow "github.com/rahulranj05/LocalLens---AWS-AI-for-Bharat-Hackathon-Team---PARA/business_flow"
	"github.com/rahulranj05/LocalLens---AWS-AI-for-Bharat-Hackathon-Team---PARA/models"
	"github.com/rahulranj05/LocalLens---AWS-AI-for-Bharat-Hackathon-Team---PARA/repository"
	testingutil "github.com/rahulranj05/LocalLens---AWS-AI-for-Bharat-Hackathon-Team---PARA/testing"
	"github.com/rahulranj05/LocalLens---AWS-AI-for-Bharat-Hackathon-Team---PARA/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCampaignFlow(testDB *testingutil.TestDB) businessflow.CampaignFlow {
	return businessflow.NewCampaignFlow(
		repository.NewCampaignRepository(testDB.DB),
		repository.NewCustomerRepository(testDB.DB),
		repository.NewAuditLogRepository(testDB.DB),
		services.NewNotificationService(nil),
		testDB.DB,
	)
}

func TestCreateCampaign(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)
		flow := newCampaignFlow(testDB)
		ctx := testingutil.CreateTestContext()
		metadata := businessflow.NewClientMetadata("127.0.0.1", "test-agent")

		business, err := fixtures.CreateTestCustomer(models.AccountTypeBusiness)
		require.NoError(t, err)
		creator, err := fixtures.CreateTestCustomer(models.AccountTypeCreator)
		require.NoError(t, err)

		t.Run("Success", func(t *testing.T) {
			resp, err := flow.CreateCampaign(ctx, &dto.CreateCampaignRequest{
				CustomerID:  business.ID,
				CreatorUUID: creator.UUID.String(),
				Title:       "Product launch collaboration",
				Message:     "We want a review of our new phone stand.",
			}, metadata)
			require.NoError(t, err)
			assert.Equal(t, string(models.CampaignStatusPending), resp.Status)
			assert.NotEmpty(t, resp.UUID)
		})

		t.Run("CreatorCannotCreate", func(t *testing.T) {
			_, err := flow.CreateCampaign(ctx, &dto.CreateCampaignRequest{
				CustomerID:  creator.ID,
				CreatorUUID: creator.UUID.String(),
				Title:       "Should not work",
				Message:     "Creators do not create campaigns.",
			}, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsNotBusiness(err))
		})

		t.Run("UnknownCreator", func(t *testing.T) {
			_, err := flow.CreateCampaign(ctx, &dto.CreateCampaignRequest{
				CustomerID:  business.ID,
				CreatorUUID: uuid.New().String(),
				Title:       "Nobody home",
				Message:     "Target does not exist.",
			}, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsCreatorNotFound(err))
		})

		t.Run("BusinessAsTargetRejected", func(t *testing.T) {
			// A business account is not a valid campaign target
			other, err := fixtures.CreateTestCustomer(models.AccountTypeBusiness)
			require.NoError(t, err)

			_, err = flow.CreateCampaign(ctx, &dto.CreateCampaignRequest{
				CustomerID:  business.ID,
				CreatorUUID: other.UUID.String(),
				Title:       "Wrong target",
				Message:     "Businesses cannot be campaign targets.",
			}, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsCreatorNotFound(err))
		})

		t.Run("InvalidBudgetRange", func(t *testing.T) {
			_, err := flow.CreateCampaign(ctx, &dto.CreateCampaignRequest{
				CustomerID:  business.ID,
				CreatorUUID: creator.UUID.String(),
				Title:       "Bad budget",
				Message:     "Min above max.",
				BudgetMin:   utils.ToPtr(uint64(10000)),
				BudgetMax:   utils.ToPtr(uint64(500)),
			}, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsBudgetRangeInvalid(err))
		})

		return nil
	})
	require.NoError(t, err)
}

func TestCampaignTransitions(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)
		flow := newCampaignFlow(testDB)
		ctx := testingutil.CreateTestContext()
		metadata := businessflow.NewClientMetadata("127.0.0.1", "test-agent")

		business, err := fixtures.CreateTestCustomer(models.AccountTypeBusiness)
		require.NoError(t, err)
		creator, err := fixtures.CreateTestCustomer(models.AccountTypeCreator)
		require.NoError(t, err)

		t.Run("AcceptThenComplete", func(t *testing.T) {
			campaign, err := fixtures.CreateTestCampaign(business.ID, creator.ID, models.CampaignStatusPending)
			require.NoError(t, err)

			resp, err := flow.RespondCampaign(ctx, &dto.RespondCampaignRequest{
				UUID:            campaign.UUID.String(),
				CustomerID:      creator.ID,
				Action:          "accept",
				ResponseMessage: utils.ToPtr("Happy to collaborate"),
			}, metadata)
			require.NoError(t, err)
			assert.Equal(t, string(models.CampaignStatusAccepted), resp.Status)

			resp, err = flow.CompleteCampaign(ctx, &dto.CompleteCampaignRequest{
				UUID:       campaign.UUID.String(),
				CustomerID: business.ID,
			}, metadata)
			require.NoError(t, err)
			assert.Equal(t, string(models.CampaignStatusCompleted), resp.Status)
		})

		t.Run("Decline", func(t *testing.T) {
			campaign, err := fixtures.CreateTestCampaign(business.ID, creator.ID, models.CampaignStatusPending)
			require.NoError(t, err)

			resp, err := flow.RespondCampaign(ctx, &dto.RespondCampaignRequest{
				UUID:       campaign.UUID.String(),
				CustomerID: creator.ID,
				Action:     "decline",
			}, metadata)
			require.NoError(t, err)
			assert.Equal(t, string(models.CampaignStatusDeclined), resp.Status)
		})

		t.Run("RetriedResponseIsInvalid", func(t *testing.T) {
			campaign, err := fixtures.CreateTestCampaign(business.ID, creator.ID, models.CampaignStatusPending)
			require.NoError(t, err)

			_, err = flow.RespondCampaign(ctx, &dto.RespondCampaignRequest{
				UUID:       campaign.UUID.String(),
				CustomerID: creator.ID,
				Action:     "accept",
			}, metadata)
			require.NoError(t, err)

			// The retry must not silently succeed
			_, err = flow.RespondCampaign(ctx, &dto.RespondCampaignRequest{
				UUID:       campaign.UUID.String(),
				CustomerID: creator.ID,
				Action:     "accept",
			}, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsInvalidTransition(err))
		})

		t.Run("CompleteFromPendingRejected", func(t *testing.T) {
			campaign, err := fixtures.CreateTestCampaign(business.ID, creator.ID, models.CampaignStatusPending)
			require.NoError(t, err)

			_, err = flow.CompleteCampaign(ctx, &dto.CompleteCampaignRequest{
				UUID:       campaign.UUID.String(),
				CustomerID: business.ID,
			}, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsInvalidTransition(err))
		})

		t.Run("CancelAccepted", func(t *testing.T) {
			campaign, err := fixtures.CreateTestCampaign(business.ID, creator.ID, models.CampaignStatusAccepted)
			require.NoError(t, err)

			resp, err := flow.CancelCampaign(ctx, &dto.CancelCampaignRequest{
				UUID:       campaign.UUID.String(),
				CustomerID: business.ID,
			}, metadata)
			require.NoError(t, err)
			assert.Equal(t, string(models.CampaignStatusCancelled), resp.Status)
		})

		t.Run("CancelTerminalRejected", func(t *testing.T) {
			campaign, err := fixtures.CreateTestCampaign(business.ID, creator.ID, models.CampaignStatusDeclined)
			require.NoError(t, err)

			_, err = flow.CancelCampaign(ctx, &dto.CancelCampaignRequest{
				UUID:       campaign.UUID.String(),
				CustomerID: business.ID,
			}, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsInvalidTransition(err))
		})

		t.Run("BusinessCannotRespond", func(t *testing.T) {
			campaign, err := fixtures.CreateTestCampaign(business.ID, creator.ID, models.CampaignStatusPending)
			require.NoError(t, err)

			_, err = flow.RespondCampaign(ctx, &dto.RespondCampaignRequest{
				UUID:       campaign.UUID.String(),
				CustomerID: business.ID,
				Action:     "accept",
			}, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsCampaignAccessDenied(err))
		})

		t.Run("StrangerDenied", func(t *testing.T) {
			campaign, err := fixtures.CreateTestCampaign(business.ID, creator.ID, models.CampaignStatusPending)
			require.NoError(t, err)

			stranger, err := fixtures.CreateTestCustomer(models.AccountTypeBusiness)
			require.NoError(t, err)

			_, err = flow.GetCampaign(ctx, &dto.GetCampaignRequest{
				UUID:       campaign.UUID.String(),
				CustomerID: stranger.ID,
			}, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsCampaignAccessDenied(err))
		})

		return nil
	})
	require.NoError(t, err)
}

func TestListCampaigns(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)
		flow := newCampaignFlow(testDB)
		ctx := testingutil.CreateTestContext()
		metadata := businessflow.NewClientMetadata("127.0.0.1", "test-agent")

		business, err := fixtures.CreateTestCustomer(models.AccountTypeBusiness)
		require.NoError(t, err)
		creator, err := fixtures.CreateTestCustomer(models.AccountTypeCreator)
		require.NoError(t, err)
		otherCreator, err := fixtures.CreateTestCustomer(models.AccountTypeCreator)
		require.NoError(t, err)

		_, err = fixtures.CreateTestCampaign(business.ID, creator.ID, models.CampaignStatusPending)
		require.NoError(t, err)
		_, err = fixtures.CreateTestCampaign(business.ID, creator.ID, models.CampaignStatusAccepted)
		require.NoError(t, err)
		_, err = fixtures.CreateTestCampaign(business.ID, otherCreator.ID, models.CampaignStatusPending)
		require.NoError(t, err)

		t.Run("BusinessSeesAll", func(t *testing.T) {
			resp, err := flow.ListCampaigns(ctx, &dto.ListCampaignsRequest{
				CustomerID: business.ID,
			}, metadata)
			require.NoError(t, err)
			assert.Equal(t, int64(3), resp.Total)
			assert.Len(t, resp.Items, 3)
		})

		t.Run("CreatorSeesOwn", func(t *testing.T) {
			resp, err := flow.ListCampaigns(ctx, &dto.ListCampaignsRequest{
				CustomerID: creator.ID,
			}, metadata)
			require.NoError(t, err)
			assert.Equal(t, int64(2), resp.Total)
		})

		t.Run("StatusFilter", func(t *testing.T) {
			resp, err := flow.ListCampaigns(ctx, &dto.ListCampaignsRequest{
				CustomerID: business.ID,
				Status:     utils.ToPtr("accepted"),
			}, metadata)
			require.NoError(t, err)
			assert.Equal(t, int64(1), resp.Total)
			require.Len(t, resp.Items, 1)
			assert.Equal(t, string(models.CampaignStatusAccepted), resp.Items[0].Status)
		})

		t.Run("Pagination", func(t *testing.T) {
			resp, err := flow.ListCampaigns(ctx, &dto.ListCampaignsRequest{
				CustomerID: business.ID,
				Page:       2,
				PageSize:   2,
			}, metadata)
			require.NoError(t, err)
			assert.Equal(t, int64(3), resp.Total)
			assert.Len(t, resp.Items, 1)
		})

		return nil
	})
	require.NoError(t, err)
}
