package structs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func intPtr(v int64) *int64   { return &v }

func baseRecord() Record {
	return Record{
		Username:    "jdoe",
		Name:        "John Doe",
		Department:  "Eng",
		Designation: "Engineer",
		Email:       "jdoe@example.com",
		Phone:       9876543210,
		StartDate:   "2024-03-01",
		Role:        "user",
	}
}

func TestRecordPatch_Apply(t *testing.T) {
	rec := baseRecord()
	patch := RecordPatch{
		Department: strPtr("Sales"),
		Phone:      intPtr(1234567890),
	}
	patch.Apply(&rec)

	assert.Equal(t, "Sales", rec.Department)
	assert.EqualValues(t, 1234567890, rec.Phone)
	// Absent fields are preserved.
	assert.Equal(t, "John Doe", rec.Name)
	assert.Equal(t, "2024-03-01", rec.StartDate)
}

func TestRecordPatch_Diff(t *testing.T) {
	current := baseRecord()

	changes := RecordPatch{
		Department: strPtr("Sales"),
		Role:       strPtr("user"), // unchanged, must not appear
	}.Diff(current)

	require.Len(t, changes, 1)
	assert.Equal(t, "department", changes[0].Field)
	assert.Equal(t, "Eng", changes[0].Old)
	assert.Equal(t, "Sales", changes[0].New)
}

func TestRecordPatch_DiffEmptyWhenIdentical(t *testing.T) {
	current := baseRecord()

	changes := RecordPatch{
		Name:       strPtr("John Doe"),
		Department: strPtr("Eng"),
		Phone:      intPtr(9876543210),
	}.Diff(current)

	assert.Empty(t, changes)
}

func TestRecord_NormalizeStartDate(t *testing.T) {
	rec := baseRecord()
	require.NoError(t, rec.NormalizeStartDate())
	assert.Equal(t, "2024-03-01", rec.StartDate)

	rec.StartDate = "01-03-2024"
	assert.Error(t, rec.NormalizeStartDate())

	rec.StartDate = "2024-03-01T00:00:00Z"
	assert.Error(t, rec.NormalizeStartDate())
}

func TestRecord_Sanitized(t *testing.T) {
	rec := baseRecord()
	rec.Password = "hash"
	clean := rec.Sanitized()
	assert.Empty(t, clean.Password)
	assert.Equal(t, "jdoe", clean.Username)
	// Original is untouched.
	assert.Equal(t, "hash", rec.Password)
}
