package main

import (
	"testing"

	"github.com/rahulranj05/LocalLens---AWS-AI-for-Bharat-Hackathon-Team---PARA/models"
	testingutil "github.com/rahulranj05/LocalLens---AWS-AI-for-Bharat-Hackathon-Team---PARA/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureAccountTypes(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		require.NoError(t, testDB.DB.Exec("DELETE FROM account_types").Error)

		require.NoError(t, ensureAccountTypes(testDB.DB))

		var count int64
		require.NoError(t, testDB.DB.Model(&models.AccountType{}).Count(&count).Error)
		assert.Equal(t, int64(2), count)

		// Re-running must not duplicate the rows
		require.NoError(t, ensureAccountTypes(testDB.DB))
		require.NoError(t, testDB.DB.Model(&models.AccountType{}).Count(&count).Error)
		assert.Equal(t, int64(2), count)

		var creator models.AccountType
		require.NoError(t, testDB.DB.Where("type_name = ?", models.AccountTypeCreator).First(&creator).Error)
		assert.Equal(t, "Creator", creator.DisplayName)

		return nil
	})
	require.NoError(t, err)
}
