package repository_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"employee-portal/internal/database"
	"employee-portal/internal/model"
	"employee-portal/internal/repository"
	"employee-portal/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormPg "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var seedNow = time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)

func seeded(t *testing.T, set *repository.Set) *repository.Set {
	t.Helper()
	require.NoError(t, database.SeedAll(context.Background(), set, database.SeedOptions{Now: seedNow, Seed: 7}))
	return set
}

func TestMemoryRepositories(t *testing.T) {
	runRepositoryTests(t, func(t *testing.T) *repository.Set {
		return seeded(t, memory.NewSet())
	})
}

func TestGormRepositories(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres container test in short mode")
	}
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:17-alpine",
		postgres.WithDatabase("portal_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { pgContainer.Terminate(ctx) })

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(gormPg.Open(connStr), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	runRepositoryTests(t, func(t *testing.T) *repository.Set {
		require.NoError(t, db.Migrator().DropTable(
			&model.User{}, &model.AttendanceRecord{}, &model.LeaveRequest{}, &model.InventoryItem{},
			&model.ItemRequest{}, &model.Notification{}, &model.Holiday{}, &model.BlogPost{},
		))
		require.NoError(t, model.AutoMigrate(db))
		return seeded(t, repository.NewGormSet(db))
	})
}

// runRepositoryTests checks behaviour every storage backend must share.
// fresh returns a newly seeded set for each subtest.
func runRepositoryTests(t *testing.T, fresh func(t *testing.T) *repository.Set) {
	ctx := context.Background()

	t.Run("seeding twice is harmless", func(t *testing.T) {
		set := fresh(t)
		require.NoError(t, database.SeedAll(ctx, set, database.SeedOptions{Now: seedNow, Seed: 7}))

		users, err := set.Users.List(ctx)
		require.NoError(t, err)
		assert.Len(t, users, 4)
		assert.Equal(t, "admin@company.com", users[0].Email)

		items, err := set.Inventory.ListItems(ctx)
		require.NoError(t, err)
		assert.Len(t, items, 5)
	})

	t.Run("users", func(t *testing.T) {
		set := fresh(t)

		err := set.Users.Create(ctx, &model.User{ID: "dup", Email: "admin@company.com", Password: "x", Role: model.RoleAdmin})
		assert.ErrorIs(t, err, repository.ErrDuplicate)

		_, err = set.Users.GetByEmail(ctx, "ghost@company.com")
		assert.ErrorIs(t, err, repository.ErrNotFound)

		u, err := set.Users.GetByID(ctx, "user_1")
		require.NoError(t, err)
		assert.Equal(t, "employee1@company.com", u.Email)
	})

	t.Run("attendance", func(t *testing.T) {
		set := fresh(t)
		today := seedNow.Format(model.DateLayout)

		open, err := set.Attendance.GetOpen(ctx, "user_1", today)
		require.NoError(t, err)
		assert.Nil(t, open.CheckOut)

		_, err = set.Attendance.GetOpen(ctx, "user_1", seedNow.AddDate(0, 0, -1).Format(model.DateLayout))
		assert.ErrorIs(t, err, repository.ErrNotFound)

		byDate, err := set.Attendance.ListByDate(ctx, today)
		require.NoError(t, err)
		assert.Len(t, byDate, 4)

		between, err := set.Attendance.ListBetween(ctx, seedNow.AddDate(0, 0, -2).Format(model.DateLayout), today)
		require.NoError(t, err)
		assert.Len(t, between, 12)
	})

	t.Run("leave decisions", func(t *testing.T) {
		set := fresh(t)

		leave, err := set.Leaves.Decide(ctx, "leave_1", model.StatusApproved, "admin@company.com", seedNow)
		require.NoError(t, err)
		assert.Equal(t, model.StatusApproved, leave.Status)
		assert.Equal(t, "admin@company.com", leave.DecidedBy)

		_, err = set.Leaves.Decide(ctx, "leave_1", model.StatusRejected, "admin@company.com", seedNow)
		assert.ErrorIs(t, err, repository.ErrConflict)

		_, err = set.Leaves.Decide(ctx, "missing", model.StatusApproved, "admin@company.com", seedNow)
		assert.ErrorIs(t, err, repository.ErrNotFound)

		pending, err := set.Leaves.List(ctx, model.StatusPending)
		require.NoError(t, err)
		assert.Empty(t, pending)
	})

	t.Run("approval takes stock", func(t *testing.T) {
		set := fresh(t)

		req, item, err := set.Inventory.ApproveRequest(ctx, "1", "admin@company.com")
		require.NoError(t, err)
		assert.Equal(t, model.StatusApproved, req.Status)
		assert.Equal(t, 14, item.Quantity)

		_, _, err = set.Inventory.ApproveRequest(ctx, "1", "admin@company.com")
		assert.ErrorIs(t, err, repository.ErrConflict)

		_, _, err = set.Inventory.ApproveRequest(ctx, "missing", "admin@company.com")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("approval never oversells", func(t *testing.T) {
		set := fresh(t)

		require.NoError(t, set.Inventory.CreateRequest(ctx, &model.ItemRequest{
			ID: "big", ItemID: "5", ItemName: "Desk Lamp LED", EmployeeID: "user_1",
			Quantity: 5, RequestDate: "2025-03-03", Status: model.StatusPending, CreatedAt: seedNow,
		}))

		_, _, err := set.Inventory.ApproveRequest(ctx, "big", "admin@company.com")
		assert.ErrorIs(t, err, repository.ErrInsufficientStock)

		req, err := set.Inventory.GetRequest(ctx, "big")
		require.NoError(t, err)
		assert.Equal(t, model.StatusPending, req.Status)
		item, err := set.Inventory.GetItem(ctx, "5")
		require.NoError(t, err)
		assert.Equal(t, 3, item.Quantity)
	})

	t.Run("concurrent approvals apply once", func(t *testing.T) {
		set := fresh(t)

		var wg sync.WaitGroup
		var approved atomic.Int32
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, _, err := set.Inventory.ApproveRequest(ctx, "1", "admin@company.com"); err == nil {
					approved.Add(1)
				}
			}()
		}
		wg.Wait()

		assert.EqualValues(t, 1, approved.Load())
		item, err := set.Inventory.GetItem(ctx, "1")
		require.NoError(t, err)
		assert.Equal(t, 14, item.Quantity)
	})

	t.Run("notifications", func(t *testing.T) {
		set := fresh(t)

		all, err := set.Notifications.List(ctx, "")
		require.NoError(t, err)
		require.Len(t, all, 20)
		for i := 1; i < len(all); i++ {
			assert.False(t, all[i].Timestamp.After(all[i-1].Timestamp), "newest first")
		}

		var unread int64
		for _, n := range all {
			if !n.IsRead {
				unread++
			}
		}
		count, err := set.Notifications.CountUnread(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, unread, count)

		n, err := set.Notifications.SetRead(ctx, all[0].ID, !all[0].IsRead)
		require.NoError(t, err)
		assert.Equal(t, !all[0].IsRead, n.IsRead)

		_, err = set.Notifications.SetRead(ctx, "missing", true)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("holidays", func(t *testing.T) {
		set := fresh(t)

		ok, err := set.Holidays.IsHoliday(ctx, "2025-12-25")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = set.Holidays.IsHoliday(ctx, "2025-12-24")
		require.NoError(t, err)
		assert.False(t, ok)

		assert.ErrorIs(t, set.Holidays.Delete(ctx, "missing"), repository.ErrNotFound)
	})

	t.Run("update never inserts", func(t *testing.T) {
		set := fresh(t)

		require.NoError(t, set.Holidays.Delete(ctx, "8"))
		err := set.Holidays.Update(ctx, &model.Holiday{ID: "8", Name: "Christmas", Date: "2025-12-25"})
		assert.ErrorIs(t, err, repository.ErrNotFound)
		_, err = set.Holidays.GetByID(ctx, "8")
		assert.ErrorIs(t, err, repository.ErrNotFound)

		require.NoError(t, set.Blog.Delete(ctx, "1"))
		err = set.Blog.Update(ctx, &model.BlogPost{ID: "1", Title: "Welcome", CreatedAt: seedNow})
		assert.ErrorIs(t, err, repository.ErrNotFound)
		_, err = set.Blog.GetByID(ctx, "1")
		assert.ErrorIs(t, err, repository.ErrNotFound)

		err = set.Attendance.Update(ctx, &model.AttendanceRecord{ID: "ghost", UserID: "user_1", Date: "2025-03-03", CheckIn: seedNow})
		assert.ErrorIs(t, err, repository.ErrNotFound)
		records, err := set.Attendance.ListByUser(ctx, "user_1")
		require.NoError(t, err)
		assert.Len(t, records, 20)

		require.NoError(t, set.Inventory.DeleteItem(ctx, "5"))
		_, err = set.Inventory.UpdateItem(ctx, "5", func(item *model.InventoryItem) error {
			item.Name = "Desk Lamp"
			return nil
		})
		assert.ErrorIs(t, err, repository.ErrNotFound)
		_, err = set.Inventory.GetItem(ctx, "5")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("update keeps unchanged rows", func(t *testing.T) {
		set := fresh(t)

		h, err := set.Holidays.GetByID(ctx, "1")
		require.NoError(t, err)
		require.NoError(t, set.Holidays.Update(ctx, h))

		h.Description = "Bank Holiday"
		require.NoError(t, set.Holidays.Update(ctx, h))
		got, err := set.Holidays.GetByID(ctx, "1")
		require.NoError(t, err)
		assert.Equal(t, "Bank Holiday", got.Description)
	})

	t.Run("seeding on a later day", func(t *testing.T) {
		set := fresh(t)
		next := seedNow.AddDate(0, 0, 1)
		require.NoError(t, database.SeedAll(ctx, set, database.SeedOptions{Now: next, Seed: 7}))

		open, err := set.Attendance.GetOpen(ctx, "user_1", next.Format(model.DateLayout))
		require.NoError(t, err)
		assert.Equal(t, next.Format(model.DateLayout), open.Date)

		records, err := set.Attendance.ListByUser(ctx, "user_1")
		require.NoError(t, err)
		assert.Len(t, records, 21)
		seen := map[string]bool{}
		for _, r := range records {
			assert.False(t, seen[r.Date], "one seeded record per day: %s", r.Date)
			seen[r.Date] = true
		}
	})
}
