//go:build integration

package technician_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pgtech "github.com/alanyang/hemotask/internal/adapter/postgres/technician"
	domaintech "github.com/alanyang/hemotask/internal/domain/technician"
	"github.com/alanyang/hemotask/internal/testutil"
)

func TestTechnicianRepo_CreateAndList(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	ctx := context.Background()
	repo := pgtech.New(pool)

	for _, id := range []string{"T1", "T2", "T3"} {
		_, err := repo.Create(ctx, domaintech.New(id, "C-"+id, []string{"CBC", "LFT"}, domaintech.ShiftDay))
		require.NoError(t, err)
	}

	_, err := repo.Create(ctx, domaintech.New("T1", "dup", nil, domaintech.ShiftDay))
	assert.ErrorIs(t, err, domaintech.ErrAlreadyExists)

	all, err := repo.List(ctx, domaintech.ListFilters{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"T1", "T2", "T3"}, []string{all[0].ID, all[1].ID, all[2].ID})

	skill := "LFT"
	withSkill, err := repo.List(ctx, domaintech.ListFilters{Skill: &skill})
	require.NoError(t, err)
	assert.Len(t, withSkill, 3)

	missing := "XRAY"
	none, err := repo.List(ctx, domaintech.ListFilters{Skill: &missing})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestTechnicianRepo_UpdateShift(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	ctx := context.Background()
	repo := pgtech.New(pool)
	_, err := repo.Create(ctx, domaintech.New("T1", "Falcon", []string{"CBC"}, domaintech.ShiftDay))
	require.NoError(t, err)

	updated, err := repo.UpdateShift(ctx, "T1", domaintech.ShiftOff)
	require.NoError(t, err)
	assert.Equal(t, domaintech.ShiftOff, updated.Shift)

	off := domaintech.ShiftOff
	list, err := repo.List(ctx, domaintech.ListFilters{Shift: &off})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = repo.UpdateShift(ctx, "T404", domaintech.ShiftDay)
	assert.ErrorIs(t, err, domaintech.ErrNotFound)
}

func TestTechnicianRepo_AdjustActiveTasks(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	ctx := context.Background()
	repo := pgtech.New(pool)
	_, err := repo.Create(ctx, domaintech.New("T1", "Falcon", []string{"CBC"}, domaintech.ShiftDay))
	require.NoError(t, err)

	require.NoError(t, repo.AdjustActiveTasks(ctx, "T1", 1))
	require.NoError(t, repo.AdjustActiveTasks(ctx, "T1", 1))
	got, err := repo.GetByID(ctx, "T1")
	require.NoError(t, err)
	assert.Equal(t, 2, got.ActiveTasks)

	require.NoError(t, repo.AdjustActiveTasks(ctx, "T1", -5))
	got, _ = repo.GetByID(ctx, "T1")
	assert.Equal(t, 0, got.ActiveTasks, "active tasks clamp at zero")

	assert.ErrorIs(t, repo.AdjustActiveTasks(ctx, "T404", 1), domaintech.ErrNotFound)
}
