package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"employee-portal/internal/geo"
	"employee-portal/internal/model"
	"employee-portal/internal/repository"
	"employee-portal/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var office = geo.Fence{Center: geo.Location{Latitude: -6.1754, Longitude: 106.8272}, RadiusMeters: 100}

func newAttendanceUsecase(clk *clock) (*AttendanceUsecase, *repository.Set) {
	set := memory.NewSet()
	u := NewAttendanceUsecase(set.Attendance, set.Users, AttendanceConfig{GeoTimeout: 50 * time.Millisecond, Fence: office}, Options{Now: clk.Now})
	return u, set
}

func TestAttendance_CheckInThenCheckOut(t *testing.T) {
	ctx := context.Background()
	clk := newClock()
	u, _ := newAttendanceUsecase(clk)

	in, err := u.CheckIn(ctx, employee, geo.Fixed{Latitude: -6.1754, Longitude: 106.8272})
	require.NoError(t, err)
	assert.Equal(t, model.AttendanceCheckedIn, in.Status)
	assert.Equal(t, "2025-03-03", in.Date)
	assert.Equal(t, model.LocationValid, in.CheckInLocationStatus)

	clk.Advance(8 * time.Hour)
	out, err := u.CheckOut(ctx, employee, geo.Fixed{Latitude: -6.1950, Longitude: 106.8230})
	require.NoError(t, err)
	assert.Equal(t, in.ID, out.ID)
	assert.Equal(t, model.AttendancePresent, out.Status)
	require.NotNil(t, out.CheckOut)
	assert.Equal(t, model.LocationInvalid, out.CheckOutLocationStatus)

	records, err := u.GetUserAttendance(ctx, employee.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, model.AttendancePresent, records[0].Status)
	assert.NotNil(t, records[0].CheckOut)
}

func TestAttendance_CheckInTwice(t *testing.T) {
	ctx := context.Background()
	u, _ := newAttendanceUsecase(newClock())

	_, err := u.CheckIn(ctx, employee, geo.Unavailable{})
	require.NoError(t, err)

	_, err = u.CheckIn(ctx, employee, geo.Unavailable{})
	assert.ErrorIs(t, err, ErrAlreadyCheckedIn)
}

func TestAttendance_SeveralPairsPerDay(t *testing.T) {
	ctx := context.Background()
	clk := newClock()
	u, _ := newAttendanceUsecase(clk)

	for i := 0; i < 2; i++ {
		_, err := u.CheckIn(ctx, employee, geo.Unavailable{})
		require.NoError(t, err)
		clk.Advance(3 * time.Hour)
		_, err = u.CheckOut(ctx, employee, geo.Unavailable{})
		require.NoError(t, err)
		clk.Advance(30 * time.Minute)
	}

	s, err := u.Summary(ctx, employee.ID)
	require.NoError(t, err)
	assert.Equal(t, 6.0, s.HoursToday)
	assert.Equal(t, 2.0, s.HoursRemaining)
	assert.False(t, s.CheckedIn)
}

func TestAttendance_CheckOutWithoutCheckIn(t *testing.T) {
	u, _ := newAttendanceUsecase(newClock())

	_, err := u.CheckOut(context.Background(), employee, geo.Unavailable{})
	assert.ErrorIs(t, err, ErrNotCheckedIn)
}

func TestAttendance_GeolocationFailureDegrades(t *testing.T) {
	ctx := context.Background()
	u, _ := newAttendanceUsecase(newClock())

	slow := geo.LocatorFunc(func(ctx context.Context) (geo.Location, error) {
		<-ctx.Done()
		return geo.Location{}, ctx.Err()
	})
	rec, err := u.CheckIn(ctx, employee, slow)
	require.NoError(t, err)
	assert.Nil(t, rec.CheckInLatitude)
	assert.Equal(t, model.LocationUnknown, rec.CheckInLocationStatus)

	rec, err = u.CheckOut(ctx, employee, geo.LocatorFunc(func(context.Context) (geo.Location, error) {
		return geo.Location{}, errors.New("denied")
	}))
	require.NoError(t, err)
	assert.Equal(t, model.AttendancePresent, rec.Status)
	assert.Nil(t, rec.CheckOutLatitude)
}

func TestAttendance_ConcurrentCheckInsCreateOneRecord(t *testing.T) {
	ctx := context.Background()
	clk := newClock()
	set := memory.NewSet()
	u := NewAttendanceUsecase(set.Attendance, set.Users, AttendanceConfig{}, Options{Now: clk.Now, Latency: 20 * time.Millisecond})

	var wg sync.WaitGroup
	ids := make(chan string, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec, err := u.CheckIn(ctx, employee, geo.Unavailable{})
			if err == nil {
				ids <- rec.ID
				return
			}
			assert.ErrorIs(t, err, ErrAlreadyCheckedIn)
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[string]bool{}
	for id := range ids {
		seen[id] = true
	}
	assert.Len(t, seen, 1)

	records, err := set.Attendance.ListByUser(ctx, employee.ID)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestAttendance_GetTodayAttendance(t *testing.T) {
	ctx := context.Background()
	u, _ := newAttendanceUsecase(newClock())

	rec, err := u.GetTodayAttendance(ctx, employee.ID)
	require.NoError(t, err)
	assert.Nil(t, rec)

	_, err = u.CheckIn(ctx, employee, geo.Unavailable{})
	require.NoError(t, err)

	rec, err = u.GetTodayAttendance(ctx, employee.ID)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.True(t, rec.Open())
}

func TestAttendance_SummaryAndOverview(t *testing.T) {
	ctx := context.Background()
	clk := newClock()
	u, set := newAttendanceUsecase(clk)

	for _, usr := range []model.User{
		{ID: admin.ID, Email: admin.Email, Role: model.RoleAdmin},
		{ID: employee.ID, Email: employee.Email, Role: model.RoleEmployee},
		{ID: other.ID, Email: other.Email, Role: model.RoleEmployee},
	} {
		usr := usr
		require.NoError(t, set.Users.Create(ctx, &usr))
	}

	// Yesterday present, the day before absent.
	day := func(offset int) time.Time { return clk.Now().AddDate(0, 0, offset) }
	out := day(-1).Add(8 * time.Hour)
	require.NoError(t, set.Attendance.Create(ctx, &model.AttendanceRecord{
		ID: "a1", UserID: employee.ID, Date: day(-1).Format(model.DateLayout), CheckIn: day(-1), CheckOut: &out, Status: model.AttendancePresent,
	}))
	require.NoError(t, set.Attendance.Create(ctx, &model.AttendanceRecord{
		ID: "a2", UserID: employee.ID, Date: day(-2).Format(model.DateLayout), CheckIn: day(-2), Status: model.AttendanceAbsent,
	}))

	_, err := u.CheckIn(ctx, employee, geo.Unavailable{})
	require.NoError(t, err)

	s, err := u.Summary(ctx, employee.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, s.TotalDays)
	assert.Equal(t, 1, s.PresentDays)
	assert.Equal(t, 33.3, s.AttendanceRate)
	assert.True(t, s.CheckedIn)
	assert.Equal(t, 8.0, s.RequiredHours)
	assert.Equal(t, 8.0, s.HoursRemaining)

	o, err := u.DailyOverview(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-03", o.Date)
	assert.Equal(t, 2, o.TotalEmployees)
	assert.Equal(t, 1, o.PresentCount)
	assert.Equal(t, 50.0, o.AttendanceRate)
	assert.Len(t, o.Records, 1)
}

func TestAttendance_ListByDateValidation(t *testing.T) {
	u, _ := newAttendanceUsecase(newClock())

	_, err := u.ListByDate(context.Background(), "03/03/2025")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = u.ListBetween(context.Background(), "2025-03-05", "2025-03-01")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAttendance_CancelledCheckInDoesNotFailOthers(t *testing.T) {
	clk := newClock()
	set := memory.NewSet()
	u := NewAttendanceUsecase(set.Attendance, set.Users, AttendanceConfig{Fence: office}, Options{Now: clk.Now, Latency: 200 * time.Millisecond})

	ctxA, cancel := context.WithCancel(context.Background())
	time.AfterFunc(40*time.Millisecond, cancel)

	var wg sync.WaitGroup
	var errA error
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, errA = u.CheckIn(ctxA, employee, geo.Unavailable{})
	}()

	time.Sleep(10 * time.Millisecond)
	rec, err := u.CheckIn(context.Background(), employee, geo.Fixed(office.Center))
	wg.Wait()

	assert.ErrorIs(t, errA, context.Canceled)
	require.NoError(t, err)
	require.NotNil(t, rec.CheckInLatitude)
	assert.Equal(t, office.Center.Latitude, *rec.CheckInLatitude)
	assert.Equal(t, office.Center.Longitude, *rec.CheckInLongitude)

	records, err := set.Attendance.ListByUser(context.Background(), employee.ID)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestAttendance_OverviewCountsEmployeesOnly(t *testing.T) {
	ctx := context.Background()
	u, set := newAttendanceUsecase(newClock())

	for _, usr := range []model.User{
		{ID: admin.ID, Email: admin.Email, Role: model.RoleAdmin},
		{ID: employee.ID, Email: employee.Email, Role: model.RoleEmployee},
	} {
		usr := usr
		require.NoError(t, set.Users.Create(ctx, &usr))
	}

	_, err := u.CheckIn(ctx, admin, geo.Unavailable{})
	require.NoError(t, err)
	_, err = u.CheckIn(ctx, employee, geo.Unavailable{})
	require.NoError(t, err)

	o, err := u.DailyOverview(ctx, "2025-03-03")
	require.NoError(t, err)
	assert.Equal(t, 1, o.TotalEmployees)
	assert.Equal(t, 1, o.PresentCount)
	assert.Equal(t, 100.0, o.AttendanceRate)
	assert.Len(t, o.Records, 2)
}

// gatedUsers holds List until gate is closed.
type gatedUsers struct {
	repository.UserRepository
	gate chan struct{}
}

func (r *gatedUsers) List(ctx context.Context) ([]model.User, error) {
	<-r.gate
	return r.UserRepository.List(ctx)
}

func TestAttendance_OverviewHonoursCallerContext(t *testing.T) {
	set := memory.NewSet()
	users := &gatedUsers{UserRepository: set.Users, gate: make(chan struct{})}
	u := NewAttendanceUsecase(set.Attendance, users, AttendanceConfig{}, Options{Now: newClock().Now})
	_, err := u.CheckIn(context.Background(), employee, geo.Unavailable{})
	require.NoError(t, err)

	ctxA, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, errA := u.DailyOverview(ctxA, "")
	assert.ErrorIs(t, errA, context.DeadlineExceeded)

	// The abandoned read keeps going and serves the next caller.
	done := make(chan struct{})
	var o *DailyOverview
	go func() {
		defer close(done)
		o, err = u.DailyOverview(context.Background(), "")
	}()
	close(users.gate)
	<-done

	require.NoError(t, err)
	assert.Len(t, o.Records, 1)
}
