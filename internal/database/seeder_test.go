package database

import (
	"context"
	"testing"
	"time"

	"employee-portal/internal/model"
	"employee-portal/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSeedAll(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)
	set := memory.NewSet()

	require.NoError(t, SeedAll(ctx, set, SeedOptions{Now: now, Seed: 42}))

	admin, err := set.Users.GetByEmail(ctx, "admin@company.com")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, admin.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(DefaultPassword)))

	history, err := set.Attendance.ListByUser(ctx, "user_1")
	require.NoError(t, err)
	assert.Len(t, history, 20)

	today, err := set.Attendance.GetOpen(ctx, "user_1", "2025-03-03")
	require.NoError(t, err)
	assert.Equal(t, model.AttendanceCheckedIn, today.Status)

	pending, err := set.Leaves.List(ctx, model.StatusPending)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	notes, err := set.Notifications.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, notes, 20)
	for _, n := range notes {
		assert.False(t, n.Timestamp.After(now))
		assert.Contains(t, []string{"employee1@company.com", "employee2@company.com", "admin@company.com"}, n.ReceiverEmail)
	}

	holidays, err := set.Holidays.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, holidays, 8)

	posts, err := set.Blog.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, posts, 3)
}

func TestSeedAllDeterministic(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)

	a, b := memory.NewSet(), memory.NewSet()
	require.NoError(t, SeedAll(ctx, a, SeedOptions{Now: now, Seed: 3}))
	require.NoError(t, SeedAll(ctx, b, SeedOptions{Now: now, Seed: 3}))

	na, err := a.Notifications.List(ctx, "")
	require.NoError(t, err)
	nb, err := b.Notifications.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, na, nb)
}
