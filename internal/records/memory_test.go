package records

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peopleops-tools/staffdir/pkg/common/structs"
)

func strPtr(s string) *string { return &s }

func sample(username, department string) structs.Record {
	return structs.Record{
		Username:    username,
		Name:        "Test User",
		Department:  department,
		Designation: "Engineer",
		Email:       username + "@example.com",
		StartDate:   "2024-03-01",
		Role:        "user",
	}
}

func TestInMemoryRepository_CRUD(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, sample("jdoe", "Eng")))
	assert.ErrorIs(t, repo.Insert(ctx, sample("jdoe", "Eng")), ErrDuplicateUsername)

	rec, err := repo.FindByUsername(ctx, "jdoe")
	require.NoError(t, err)
	assert.Equal(t, "Eng", rec.Department)

	_, err = repo.FindByUsername(ctx, "ghost")
	assert.ErrorIs(t, err, ErrRecordNotFound)

	require.NoError(t, repo.UpdateFields(ctx, "jdoe", structs.RecordPatch{Department: strPtr("Sales")}))
	rec, err = repo.FindByUsername(ctx, "jdoe")
	require.NoError(t, err)
	assert.Equal(t, "Sales", rec.Department)
	// Untouched fields survive a partial update.
	assert.Equal(t, "Test User", rec.Name)

	assert.ErrorIs(t, repo.UpdateFields(ctx, "ghost", structs.RecordPatch{Department: strPtr("Sales")}), ErrRecordNotFound)

	require.NoError(t, repo.Delete(ctx, "jdoe"))
	assert.ErrorIs(t, repo.Delete(ctx, "jdoe"), ErrRecordNotFound)
}

func TestInMemoryRepository_ScanFilterDistinct(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, sample("adoe", "Eng")))
	require.NoError(t, repo.Insert(ctx, sample("bsmith", "Sales")))
	require.NoError(t, repo.Insert(ctx, sample("cjones", "Eng")))

	all, err := repo.ScanAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "adoe", all[0].Username)

	eng, err := repo.FilterBy(ctx, "department", "Eng")
	require.NoError(t, err)
	assert.Len(t, eng, 2)

	departments, err := repo.Distinct(ctx, "department")
	require.NoError(t, err)
	assert.Equal(t, []string{"Eng", "Sales"}, departments)

	_, err = repo.FilterBy(ctx, "password", "x")
	assert.ErrorIs(t, err, ErrUnknownColumn)

	_, err = repo.Distinct(ctx, "email")
	assert.ErrorIs(t, err, ErrUnknownColumn)
}
