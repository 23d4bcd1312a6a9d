package businessflow_test

import (
	"testing"

	"github.com/rahulranj05/LocalLens---AWS-AI-for-Bharat-Hackathon-Team---PARA/app/dto"
	businessflow "github.com/rahulranj05/LocalLens---AWS-AI-for-Bharat-Hackathon-Team---PARA/business_flow"
	"github.com/rahulranj05/LocalLens---AWS-AI-for-Bharat-Hackathon-Team---PARA/models"
	"github.com/rahulranj05/LocalLens---AWS-AI-for-Bharat-Hackathon-Team---PARA/repository"
	testingutil "github.com/rahulranj05/LocalLens---AWS-AI-for-Bharat-Hackathon-Team---PARA/testing"
	"github.com/rahulranj05/LocalLens---AWS-AI-for-Bharat-Hackathon-Team---PARA/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMatchmakingFlow(testDB *testingutil.TestDB) businessflow.MatchmakingFlow {
	return businessflow.NewMatchmakingFlow(
		repository.NewCustomerRepository(testDB.DB),
		repository.NewClusterSummaryRepository(testDB.DB),
		repository.NewGeoReferenceRepository(testDB.DB),
		repository.NewAuditLogRepository(testDB.DB),
		nil,
		nil,
	)
}

func TestFindCreators(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)
		flow := newMatchmakingFlow(testDB)
		ctx := testingutil.CreateTestContext()
		metadata := businessflow.NewClientMetadata("127.0.0.1", "test-agent")

		_, err := fixtures.CreateTestGeoReferences()
		require.NoError(t, err)

		business, err := fixtures.CreateTestCustomer(models.AccountTypeBusiness)
		require.NoError(t, err)
		delhiCreator, err := fixtures.CreateTestCustomer(models.AccountTypeCreator)
		require.NoError(t, err)
		mumbaiCreator, err := fixtures.CreateTestCustomer(models.AccountTypeCreator)
		require.NoError(t, err)

		_, err = fixtures.CreateTestClusterSummary(delhiCreator.ID, "110001", 28.6315, 77.2167, 5000)
		require.NoError(t, err)
		_, err = fixtures.CreateTestClusterSummary(mumbaiCreator.ID, "400001", 18.9388, 72.8354, 5000)
		require.NoError(t, err)

		t.Run("RadiusConfinesResults", func(t *testing.T) {
			resp, err := flow.FindCreators(ctx, &dto.SearchCreatorsRequest{
				CustomerID:    business.ID,
				TargetPincode: "110001",
			}, metadata)
			require.NoError(t, err)
			assert.Equal(t, "110001", resp.TargetPincode)
			assert.Equal(t, utils.DefaultSearchRadiusKm, resp.RadiusKm)
			require.Len(t, resp.Matches, 1)
			assert.Equal(t, delhiCreator.UUID.String(), resp.Matches[0].CreatorUUID)
			assert.Equal(t, int64(5000), resp.Matches[0].ViewersInTarget)
			assert.Greater(t, resp.Matches[0].Score, 0.0)
			assert.LessOrEqual(t, resp.Matches[0].Score, 1.0)
		})

		t.Run("WideRadiusIncludesBoth", func(t *testing.T) {
			resp, err := flow.FindCreators(ctx, &dto.SearchCreatorsRequest{
				CustomerID:    business.ID,
				TargetPincode: "110001",
				RadiusKm:      2000,
			}, metadata)
			require.NoError(t, err)
			assert.Len(t, resp.Matches, 2)
		})

		t.Run("MinViewersFloor", func(t *testing.T) {
			resp, err := flow.FindCreators(ctx, &dto.SearchCreatorsRequest{
				CustomerID:    business.ID,
				TargetPincode: "110001",
				MinViewers:    utils.ToPtr(int64(6000)),
			}, metadata)
			require.NoError(t, err)
			assert.Empty(t, resp.Matches)
		})

		t.Run("CategoryAndLanguageBoost", func(t *testing.T) {
			// Fixture creators declare tech/education and hindi/english
			resp, err := flow.FindCreators(ctx, &dto.SearchCreatorsRequest{
				CustomerID:        business.ID,
				TargetPincode:     "110001",
				ContentCategories: []string{"tech"},
				Languages:         []string{"hindi"},
			}, metadata)
			require.NoError(t, err)
			require.Len(t, resp.Matches, 1)
			assert.Greater(t, resp.Matches[0].CategoryMatchPct, 0.0)
			assert.Greater(t, resp.Matches[0].LanguageMatchPct, 0.0)
		})

		t.Run("Limit", func(t *testing.T) {
			resp, err := flow.FindCreators(ctx, &dto.SearchCreatorsRequest{
				CustomerID:    business.ID,
				TargetPincode: "110001",
				RadiusKm:      2000,
				Limit:         1,
			}, metadata)
			require.NoError(t, err)
			assert.Len(t, resp.Matches, 1)
		})

		t.Run("CreatorDenied", func(t *testing.T) {
			_, err := flow.FindCreators(ctx, &dto.SearchCreatorsRequest{
				CustomerID:    delhiCreator.ID,
				TargetPincode: "110001",
			}, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsNotBusiness(err))
		})

		t.Run("UnknownPincode", func(t *testing.T) {
			_, err := flow.FindCreators(ctx, &dto.SearchCreatorsRequest{
				CustomerID:    business.ID,
				TargetPincode: "999999",
			}, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsPincodeNotResolved(err))
		})

		return nil
	})
	require.NoError(t, err)
}
