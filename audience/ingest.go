package audience

import (
	"strconv"
	"strings"
)

// ValidateUpload applies the row-level validation rules in order:
// missing field, pincode format, viewer count format, duplicate
// pincode. Duplicates are surfaced, not merged; the first occurrence
// wins. Output preserves first-seen order and no row is ever fatal, so
// a malformed upload degrades to an empty validated set plus rejects.
func ValidateUpload(rows []RawRow) ([]ViewerRecord, []Reject) {
	records := make([]ViewerRecord, 0, len(rows))
	var rejects []Reject
	seen := make(map[string]struct{}, len(rows))

	for _, row := range rows {
		pincode := ""
		if row.Pincode != nil {
			pincode = strings.TrimSpace(*row.Pincode)
		}
		rawCount := ""
		if row.ViewerCount != nil {
			rawCount = strings.TrimSpace(*row.ViewerCount)
		}

		if pincode == "" || rawCount == "" {
			rejects = append(rejects, Reject{Row: row.Row, Reason: RejectMissingField, Pincode: pincode})
			continue
		}

		if !pincodePattern.MatchString(pincode) {
			rejects = append(rejects, Reject{Row: row.Row, Reason: RejectInvalidPincode, Pincode: pincode})
			continue
		}

		count, err := strconv.ParseInt(rawCount, 10, 64)
		if err != nil || count < 0 {
			rejects = append(rejects, Reject{Row: row.Row, Reason: RejectInvalidViewerCount, Pincode: pincode})
			continue
		}

		if _, dup := seen[pincode]; dup {
			rejects = append(rejects, Reject{Row: row.Row, Reason: RejectDuplicatePincode, Pincode: pincode})
			continue
		}
		seen[pincode] = struct{}{}

		records = append(records, ViewerRecord{Pincode: pincode, ViewerCount: count})
	}

	return records, rejects
}
