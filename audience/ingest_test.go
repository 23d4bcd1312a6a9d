package audience

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func rawRow(row int, pincode, viewers string) RawRow {
	r := RawRow{Row: row}
	if pincode != "" {
		r.Pincode = strPtr(pincode)
	}
	if viewers != "" {
		r.ViewerCount = strPtr(viewers)
	}
	return r
}

func TestValidateUpload(t *testing.T) {
	t.Run("DuplicateAndInvalidRows", func(t *testing.T) {
		rows := []RawRow{
			rawRow(1, "600001", "500"),
			rawRow(2, "600001", "300"),
			rawRow(3, "abc123", "10"),
		}

		records, rejects := ValidateUpload(rows)

		require.Len(t, records, 1)
		assert.Equal(t, ViewerRecord{Pincode: "600001", ViewerCount: 500}, records[0])

		require.Len(t, rejects, 2)
		assert.Equal(t, RejectDuplicatePincode, rejects[0].Reason)
		assert.Equal(t, 2, rejects[0].Row)
		assert.Equal(t, RejectInvalidPincode, rejects[1].Reason)
		assert.Equal(t, 3, rejects[1].Row)
	})

	t.Run("MissingFields", func(t *testing.T) {
		rows := []RawRow{
			rawRow(1, "", "500"),
			rawRow(2, "600002", ""),
		}

		records, rejects := ValidateUpload(rows)
		assert.Empty(t, records)
		require.Len(t, rejects, 2)
		assert.Equal(t, RejectMissingField, rejects[0].Reason)
		assert.Equal(t, RejectMissingField, rejects[1].Reason)
	})

	t.Run("RuleOrderMissingBeforeFormat", func(t *testing.T) {
		// A row missing its viewer count is rejected as missing_field
		// even though its pincode is also malformed territory.
		rows := []RawRow{rawRow(1, "", "")}
		_, rejects := ValidateUpload(rows)
		require.Len(t, rejects, 1)
		assert.Equal(t, RejectMissingField, rejects[0].Reason)
	})

	t.Run("InvalidViewerCounts", func(t *testing.T) {
		rows := []RawRow{
			rawRow(1, "600001", "-5"),
			rawRow(2, "600002", "12.5"),
			rawRow(3, "600003", "many"),
		}

		records, rejects := ValidateUpload(rows)
		assert.Empty(t, records)
		require.Len(t, rejects, 3)
		for _, rej := range rejects {
			assert.Equal(t, RejectInvalidViewerCount, rej.Reason)
		}
	})

	t.Run("PincodeFormat", func(t *testing.T) {
		rows := []RawRow{
			rawRow(1, "60001", "10"),   // five digits
			rawRow(2, "6000011", "10"), // seven digits
			rawRow(3, "60000x", "10"),
			rawRow(4, "110001", "10"),
		}

		records, rejects := ValidateUpload(rows)
		require.Len(t, records, 1)
		assert.Equal(t, "110001", records[0].Pincode)
		assert.Len(t, rejects, 3)
	})

	t.Run("IdempotentOnCleanInput", func(t *testing.T) {
		rows := []RawRow{
			rawRow(1, "110001", "100"),
			rawRow(2, "560001", "250"),
		}

		first, firstRejects := ValidateUpload(rows)
		require.Empty(t, firstRejects)

		// Re-validating already-valid data yields identical output
		second, secondRejects := ValidateUpload(rows)
		assert.Empty(t, secondRejects)
		assert.Equal(t, first, second)
	})

	t.Run("FirstSeenOrderPreserved", func(t *testing.T) {
		rows := []RawRow{
			rawRow(1, "700001", "1"),
			rawRow(2, "110001", "2"),
			rawRow(3, "560001", "3"),
		}
		records, _ := ValidateUpload(rows)
		require.Len(t, records, 3)
		assert.Equal(t, "700001", records[0].Pincode)
		assert.Equal(t, "110001", records[1].Pincode)
		assert.Equal(t, "560001", records[2].Pincode)
	})
}

func TestParseCSV(t *testing.T) {
	t.Run("HeaderAliasesAndExtraColumns", func(t *testing.T) {
		input := "city,postal_code,viewer_count\nChennai,600001,500\nDelhi,110001,300\n"
		rows, err := ParseCSV(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "600001", *rows[0].Pincode)
		assert.Equal(t, "500", *rows[0].ViewerCount)
	})

	t.Run("MissingColumns", func(t *testing.T) {
		_, err := ParseCSV(strings.NewReader("city,count\nChennai,5\n"))
		assert.ErrorIs(t, err, ErrMissingColumns)
	})

	t.Run("EmptyInput", func(t *testing.T) {
		_, err := ParseCSV(strings.NewReader(""))
		assert.ErrorIs(t, err, ErrMissingColumns)
	})

	t.Run("RaggedRowsSurviveParsing", func(t *testing.T) {
		input := "pincode,viewer_count\n600001\n110001,300\n"
		rows, err := ParseCSV(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Nil(t, rows[0].ViewerCount)
	})
}

func TestParseJSON(t *testing.T) {
	t.Run("StringAndNumberValues", func(t *testing.T) {
		data := []byte(`[{"pincode":"600001","viewer_count":500},{"postal_code":"110001","viewer_count":"300","extra":true}]`)
		rows, err := ParseJSON(data)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "500", *rows[0].ViewerCount)
		assert.Equal(t, "110001", *rows[1].Pincode)
		assert.Equal(t, "300", *rows[1].ViewerCount)
	})

	t.Run("MissingFieldsBecomeNil", func(t *testing.T) {
		rows, err := ParseJSON([]byte(`[{"viewer_count":10}]`))
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Nil(t, rows[0].Pincode)
	})

	t.Run("NotAnArray", func(t *testing.T) {
		_, err := ParseJSON([]byte(`{"pincode":"600001"}`))
		assert.Error(t, err)
	})
}
