package businessflow_test

import (
	"testing"
	"time"

	"github.com/rahulranj05/LocalLens---AWS-AI-for-Bharat-Hackathon-Team---PARA/app/dto"
	businessflow "github.com/rahulranj05/LocalLens---AWS-AI-for-Bharat-Hackathon-Team---PARA/business_flow"
	"github.com/rahulranj05/LocalLens---AWS-AI-for-Bharat-Hackathon-Team---PARA/config"
	"github.com/rahulranj05/LocalLens---AWS-AI-for-Bharat-Hackathon-Team---PARA/models"
	"github.com/rahulranj05/LocalLens---AWS-AI-for-Bharat-Hackathon-Team---PARA/repository"
	testingutil "github.com/rahulranj05/LocalLens---AWS-AI-for-Bharat-Hackathon-Team---PARA/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAudienceFlow(testDB *testingutil.TestDB) businessflow.AudienceFlow {
	return businessflow.NewAudienceFlow(
		repository.NewAudienceUploadRepository(testDB.DB),
		repository.NewClusterSummaryRepository(testDB.DB),
		repository.NewGeoReferenceRepository(testDB.DB),
		repository.NewCustomerRepository(testDB.DB),
		repository.NewAuditLogRepository(testDB.DB),
		testDB.DB,
		nil,
		config.ClusteringConfig{
			ClusterCount: 3,
			Seed:         1,
			Budget:       10 * time.Second,
		},
		nil,
	)
}

func TestSubmitUpload(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)
		flow := newAudienceFlow(testDB)
		ctx := testingutil.CreateTestContext()
		metadata := businessflow.NewClientMetadata("127.0.0.1", "test-agent")

		creator, err := fixtures.CreateTestCustomer(models.AccountTypeCreator)
		require.NoError(t, err)
		business, err := fixtures.CreateTestCustomer(models.AccountTypeBusiness)
		require.NoError(t, err)

		t.Run("Success", func(t *testing.T) {
			resp, err := flow.SubmitUpload(ctx, &dto.SubmitUploadRequest{
				CustomerID: creator.ID,
				Format:     models.UploadFormatCSV,
				Data:       []byte("pincode,viewer_count\n110001,500\n"),
			}, metadata)
			require.NoError(t, err)
			assert.Equal(t, string(models.UploadStatusProcessing), resp.Status)
			assert.NotEmpty(t, resp.UUID)
		})

		t.Run("BusinessDenied", func(t *testing.T) {
			_, err := flow.SubmitUpload(ctx, &dto.SubmitUploadRequest{
				CustomerID: business.ID,
				Format:     models.UploadFormatCSV,
				Data:       []byte("pincode,viewer_count\n110001,500\n"),
			}, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsNotCreator(err))
		})

		t.Run("UnsupportedFormat", func(t *testing.T) {
			_, err := flow.SubmitUpload(ctx, &dto.SubmitUploadRequest{
				CustomerID: creator.ID,
				Format:     "parquet",
				Data:       []byte("whatever"),
			}, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsUnsupportedFormat(err))
		})

		return nil
	})
	require.NoError(t, err)
}

func TestProcessUploadPipeline(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)
		flow := newAudienceFlow(testDB)
		ctx := testingutil.CreateTestContext()
		metadata := businessflow.NewClientMetadata("127.0.0.1", "test-agent")

		_, err := fixtures.CreateTestGeoReferences()
		require.NoError(t, err)

		creator, err := fixtures.CreateTestCustomer(models.AccountTypeCreator)
		require.NoError(t, err)

		t.Run("EndToEnd", func(t *testing.T) {
			payload := []byte(`[
				{"pincode":"110001","viewer_count":500},
				{"pincode":"110002","viewer_count":300},
				{"pincode":"400001","viewer_count":700},
				{"pincode":"999999","viewer_count":100},
				{"pincode":"abc","viewer_count":50},
				{"pincode":"110003","viewer_count":-5}
			]`)
			upload, err := fixtures.CreateTestUpload(creator.ID, models.UploadStatusProcessing, payload)
			require.NoError(t, err)

			require.NoError(t, flow.ProcessUpload(ctx, upload.ID))

			status, err := flow.GetUpload(ctx, &dto.GetUploadRequest{
				UUID:       upload.UUID.String(),
				CustomerID: creator.ID,
			}, metadata)
			require.NoError(t, err)
			assert.Equal(t, string(models.UploadStatusCompleted), status.Status)
			// 999999 resolves nowhere but is still a valid record
			assert.Equal(t, 4, status.ValidCount)
			assert.Equal(t, 2, status.RejectCount)
			assert.Equal(t, 1, status.UnresolvedCount)
			assert.Len(t, status.Rejects, 2)

			summary, err := flow.GetSummary(ctx, creator.ID)
			require.NoError(t, err)
			assert.NotEmpty(t, summary.Clusters)
			assert.NotEmpty(t, summary.TopPincodes)

			var total int64
			for _, c := range summary.Clusters {
				total += c.TotalViewers
			}
			assert.Equal(t, int64(1500), total)

			heatmap, err := flow.GetHeatmap(ctx, creator.ID)
			require.NoError(t, err)
			assert.NotEmpty(t, heatmap.Points)
			for _, p := range heatmap.Points {
				assert.GreaterOrEqual(t, p.Intensity, 1)
				assert.LessOrEqual(t, p.Intensity, 5)
			}
		})

		t.Run("ReprocessIsNoop", func(t *testing.T) {
			payload := []byte(`[{"pincode":"110001","viewer_count":500}]`)
			upload, err := fixtures.CreateTestUpload(creator.ID, models.UploadStatusProcessing, payload)
			require.NoError(t, err)

			require.NoError(t, flow.ProcessUpload(ctx, upload.ID))
			// A completed upload is skipped on a second poll
			require.NoError(t, flow.ProcessUpload(ctx, upload.ID))
		})

		t.Run("ParseFailure", func(t *testing.T) {
			upload, err := fixtures.CreateTestUpload(creator.ID, models.UploadStatusProcessing, []byte("{not json"))
			require.NoError(t, err)

			require.Error(t, flow.ProcessUpload(ctx, upload.ID))

			status, err := flow.GetUpload(ctx, &dto.GetUploadRequest{
				UUID:       upload.UUID.String(),
				CustomerID: creator.ID,
			}, metadata)
			require.NoError(t, err)
			assert.Equal(t, string(models.UploadStatusFailed), status.Status)
			require.NotNil(t, status.FailureReason)
			assert.Equal(t, "parse_failed", *status.FailureReason)
		})

		t.Run("SummaryReplacedOnNewUpload", func(t *testing.T) {
			payload := []byte(`[{"pincode":"560001","viewer_count":900}]`)
			upload, err := fixtures.CreateTestUpload(creator.ID, models.UploadStatusProcessing, payload)
			require.NoError(t, err)

			require.NoError(t, flow.ProcessUpload(ctx, upload.ID))

			summary, err := flow.GetSummary(ctx, creator.ID)
			require.NoError(t, err)
			require.NotNil(t, summary.UploadID)
			assert.Equal(t, upload.ID, *summary.UploadID)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestGetUploadAccess(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)
		flow := newAudienceFlow(testDB)
		ctx := testingutil.CreateTestContext()
		metadata := businessflow.NewClientMetadata("127.0.0.1", "test-agent")

		owner, err := fixtures.CreateTestCustomer(models.AccountTypeCreator)
		require.NoError(t, err)
		other, err := fixtures.CreateTestCustomer(models.AccountTypeCreator)
		require.NoError(t, err)

		upload, err := fixtures.CreateTestUpload(owner.ID, models.UploadStatusProcessing, []byte("[]"))
		require.NoError(t, err)

		_, err = flow.GetUpload(ctx, &dto.GetUploadRequest{
			UUID:       upload.UUID.String(),
			CustomerID: other.ID,
		}, metadata)
		require.Error(t, err)
		assert.True(t, businessflow.IsUploadNotFound(err))

		return nil
	})
	require.NoError(t, err)
}

func TestGetSummaryNotFound(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)
		flow := newAudienceFlow(testDB)
		ctx := testingutil.CreateTestContext()

		creator, err := fixtures.CreateTestCustomer(models.AccountTypeCreator)
		require.NoError(t, err)

		_, err = flow.GetSummary(ctx, creator.ID)
		require.Error(t, err)
		assert.True(t, businessflow.IsSummaryNotFound(err))

		_, err = flow.GetHeatmap(ctx, creator.ID)
		require.Error(t, err)
		assert.True(t, businessflow.IsSummaryNotFound(err))

		return nil
	})
	require.NoError(t, err)
}
