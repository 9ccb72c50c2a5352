package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"slices"
	"time"

	"employee-portal/internal/geo"
	"employee-portal/internal/model"
	"employee-portal/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

const DefaultRequiredHours = 8

type AttendanceConfig struct {
	// GeoTimeout bounds the wait for a position. Zero means no bound.
	GeoTimeout    time.Duration
	Fence         geo.Fence
	RequiredHours float64
}

type AttendanceSummary struct {
	TotalDays      int     `json:"total_days"`
	PresentDays    int     `json:"present_days"`
	AttendanceRate float64 `json:"attendance_rate"`
	HoursToday     float64 `json:"hours_today"`
	RequiredHours  float64 `json:"required_hours"`
	HoursRemaining float64 `json:"hours_remaining"`
	CheckedIn      bool    `json:"checked_in"`
}

type DailyOverview struct {
	Date           string                   `json:"date"`
	TotalEmployees int                      `json:"total_employees"`
	PresentCount   int                      `json:"present_count"`
	AttendanceRate float64                  `json:"attendance_rate"`
	Records        []model.AttendanceRecord `json:"records"`
}

type AttendanceUsecase struct {
	store
	repo     repository.AttendanceRepository
	users    repository.UserRepository
	cfg       AttendanceConfig
	checkins  keyedMutex
	overviews singleflight.Group
}

func NewAttendanceUsecase(repo repository.AttendanceRepository, users repository.UserRepository, cfg AttendanceConfig, opts Options) *AttendanceUsecase {
	if cfg.RequiredHours <= 0 {
		cfg.RequiredHours = DefaultRequiredHours
	}
	return &AttendanceUsecase{
		store: store{opts: opts.withDefaults()},
		repo:  repo,
		users: users,
		cfg:   cfg,
	}
}

// CheckIn opens today's attendance record for who. A missing position
// does not fail the call; the record is stored without coordinates.
// Check-ins of one user run one at a time, so a second concurrent call
// sees the first one's record and fails with ErrAlreadyCheckedIn.
func (u *AttendanceUsecase) CheckIn(ctx context.Context, who model.Identity, locator geo.Locator) (*model.AttendanceRecord, error) {
	done := u.begin()
	defer done()

	loc := u.locate(ctx, locator, "check-in", who)

	unlock := u.checkins.Lock(who.ID)
	defer unlock()
	return u.checkIn(ctx, who, loc)
}

func (u *AttendanceUsecase) checkIn(ctx context.Context, who model.Identity, loc *geo.Location) (*model.AttendanceRecord, error) {
	if err := u.settle(ctx); err != nil {
		return nil, err
	}

	today := u.today()
	if _, err := u.repo.GetOpen(ctx, who.ID, today); err == nil {
		return nil, ErrAlreadyCheckedIn
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	now := u.now()
	rec := &model.AttendanceRecord{
		ID:                    uuid.NewString(),
		UserID:                who.ID,
		UserEmail:             who.Email,
		CheckIn:               now,
		Date:                  today,
		Status:                model.AttendanceCheckedIn,
		CheckInLocationStatus: u.cfg.Fence.Status(loc),
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if loc != nil {
		rec.CheckInLatitude = &loc.Latitude
		rec.CheckInLongitude = &loc.Longitude
	}
	if err := u.repo.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("create attendance: %w", err)
	}
	return rec, nil
}

// CheckOut closes today's open record of who.
func (u *AttendanceUsecase) CheckOut(ctx context.Context, who model.Identity, locator geo.Locator) (*model.AttendanceRecord, error) {
	done := u.begin()
	defer done()

	loc := u.locate(ctx, locator, "check-out", who)
	unlock := u.checkins.Lock(who.ID)
	defer unlock()
	if err := u.settle(ctx); err != nil {
		return nil, err
	}

	rec, err := u.repo.GetOpen(ctx, who.ID, u.today())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotCheckedIn
		}
		return nil, err
	}

	now := u.now()
	rec.CheckOut = &now
	rec.Status = model.AttendancePresent
	rec.CheckOutLocationStatus = u.cfg.Fence.Status(loc)
	if loc != nil {
		rec.CheckOutLatitude = &loc.Latitude
		rec.CheckOutLongitude = &loc.Longitude
	}
	rec.UpdatedAt = now
	if err := u.repo.Update(ctx, rec); err != nil {
		return nil, fmt.Errorf("update attendance: %w", err)
	}
	return rec, nil
}

func (u *AttendanceUsecase) locate(ctx context.Context, locator geo.Locator, action string, who model.Identity) *geo.Location {
	loc, err := geo.Resolve(ctx, locator, u.cfg.GeoTimeout)
	if err != nil {
		log.Printf("attendance: %s for %s without location: %v", action, who.Email, err)
		return nil
	}
	return loc
}

// GetTodayAttendance returns the latest record of userID for today, or nil
// when there is none.
func (u *AttendanceUsecase) GetTodayAttendance(ctx context.Context, userID string) (*model.AttendanceRecord, error) {
	rec, err := u.repo.GetLatest(ctx, userID, u.today())
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return rec, err
}

func (u *AttendanceUsecase) GetUserAttendance(ctx context.Context, userID string) ([]model.AttendanceRecord, error) {
	return u.repo.ListByUser(ctx, userID)
}

func (u *AttendanceUsecase) ListByDate(ctx context.Context, date string) ([]model.AttendanceRecord, error) {
	if date == "" {
		date = u.today()
	}
	if !validDate(date) {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}
	return u.repo.ListByDate(ctx, date)
}

func (u *AttendanceUsecase) ListBetween(ctx context.Context, from, to string) ([]model.AttendanceRecord, error) {
	if !validDate(from) || !validDate(to) || from > to {
		return nil, fmt.Errorf("%w: invalid date range", ErrInvalidInput)
	}
	return u.repo.ListBetween(ctx, from, to)
}

// Summary aggregates the history of userID. Rates are percentages; hours
// today count completed check-in/check-out pairs only.
func (u *AttendanceUsecase) Summary(ctx context.Context, userID string) (*AttendanceSummary, error) {
	records, err := u.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := u.today()
	days := make(map[string]bool)
	var worked time.Duration
	checkedIn := false
	for _, r := range records {
		present := r.Status == model.AttendancePresent
		days[r.Date] = days[r.Date] || present
		if r.Date != today {
			continue
		}
		if r.Open() {
			checkedIn = true
			continue
		}
		worked += r.Worked(u.now())
	}

	s := &AttendanceSummary{
		TotalDays:     len(days),
		RequiredHours: u.cfg.RequiredHours,
		CheckedIn:     checkedIn,
	}
	for _, present := range days {
		if present {
			s.PresentDays++
		}
	}
	s.AttendanceRate = percent(s.PresentDays, s.TotalDays, 1)
	s.HoursToday = round(worked.Hours(), 2)
	s.HoursRemaining = round(math.Max(0, s.RequiredHours-worked.Hours()), 2)
	return s, nil
}

// DailyOverview reports which employees attended on date against the
// number of registered employees. Records of other roles are listed but
// not counted. Concurrent requests for one date share a single read,
// which is not tied to any one caller's context.
func (u *AttendanceUsecase) DailyOverview(ctx context.Context, date string) (*DailyOverview, error) {
	if date == "" {
		date = u.today()
	}
	ch := u.overviews.DoChan(date, func() (interface{}, error) {
		return u.dailyOverview(context.WithoutCancel(ctx), date)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		o := *res.Val.(*DailyOverview)
		o.Records = slices.Clone(o.Records)
		return &o, nil
	}
}

func (u *AttendanceUsecase) dailyOverview(ctx context.Context, date string) (*DailyOverview, error) {
	records, err := u.ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	users, err := u.users.List(ctx)
	if err != nil {
		return nil, err
	}

	o := &DailyOverview{Date: date, Records: records}
	employees := make(map[string]struct{})
	for _, usr := range users {
		if usr.Role == model.RoleEmployee {
			employees[usr.ID] = struct{}{}
		}
	}
	o.TotalEmployees = len(employees)
	present := make(map[string]struct{})
	for _, r := range records {
		if r.Status == model.AttendanceAbsent {
			continue
		}
		if _, ok := employees[r.UserID]; ok {
			present[r.UserID] = struct{}{}
		}
	}
	o.PresentCount = len(present)
	o.AttendanceRate = percent(o.PresentCount, o.TotalEmployees, 0)
	return o, nil
}

func validDate(s string) bool {
	_, err := time.Parse(model.DateLayout, s)
	return err == nil
}

func percent(n, total int, places int32) float64 {
	if total == 0 {
		return 0
	}
	return round(float64(n)/float64(total)*100, places)
}

func round(f float64, places int32) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(f*p) / p
}
