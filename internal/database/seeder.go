package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"employee-portal/internal/model"
	"employee-portal/internal/repository"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// DefaultPassword is the password of every fixture account.
const DefaultPassword = "password123"

type SeedOptions struct {
	Password string
	Now      time.Time
	// Seed drives the randomized fixtures. Equal seeds give equal data.
	Seed int64
}

var fixtureUsers = []struct {
	id    string
	email string
	role  model.Role
}{
	{"user_0", "admin@company.com", model.RoleAdmin},
	{"user_1", "employee1@company.com", model.RoleEmployee},
	{"user_2", "employee2@company.com", model.RoleEmployee},
	{"user_3", "employee3@company.com", model.RoleEmployee},
}

// SeedAll fills every collection with fixture data. Records that already
// exist are left untouched, so running it twice is harmless.
func SeedAll(ctx context.Context, set *repository.Set, opts SeedOptions) error {
	if opts.Password == "" {
		opts.Password = DefaultPassword
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	rnd := rand.New(rand.NewSource(opts.Seed))

	steps := []struct {
		name string
		fn   func() error
	}{
		{"users", func() error { return seedUsers(ctx, set.Users, opts) }},
		{"attendance", func() error { return seedAttendance(ctx, set.Attendance, opts.Now, rnd) }},
		{"leave requests", func() error { return seedLeaves(ctx, set.Leaves, opts.Now) }},
		{"inventory", func() error { return seedInventory(ctx, set.Inventory, opts.Now) }},
		{"notifications", func() error { return seedNotifications(ctx, set.Notifications, opts.Now, rnd) }},
		{"holidays", func() error { return seedHolidays(ctx, set.Holidays) }},
		{"blog", func() error { return seedBlog(ctx, set.Blog, opts.Now) }},
	}
	for _, s := range steps {
		if err := s.fn(); err != nil {
			return fmt.Errorf("seed %s: %w", s.name, err)
		}
		log.Printf("seeded %s", s.name)
	}
	return nil
}

// ignoreExisting treats a duplicate as already seeded.
func ignoreExisting(err error) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return nil
	}
	return err
}

func seedUsers(ctx context.Context, repo repository.UserRepository, opts SeedOptions) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(opts.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	for _, u := range fixtureUsers {
		if _, err := repo.GetByEmail(ctx, u.email); err == nil {
			continue
		}
		user := &model.User{ID: u.id, Email: u.email, Password: string(hashed), Role: u.role, CreatedAt: opts.Now}
		if err := ignoreExisting(repo.Create(ctx, user)); err != nil {
			return err
		}
	}
	return nil
}

// seedAttendance writes 20 days of history for every fixture user. Today
// is left checked in.
func seedAttendance(ctx context.Context, repo repository.AttendanceRepository, now time.Time, rnd *rand.Rand) error {
	for i := 0; i < 20; i++ {
		day := now.AddDate(0, 0, -i)
		y, m, d := day.Date()
		for idx, u := range fixtureUsers {
			in := time.Date(y, m, d, 9, rnd.Intn(60), 0, 0, now.Location())
			rec := &model.AttendanceRecord{
				ID:                    fmt.Sprintf("att_%s_%d", day.Format(model.DateLayout), idx),
				UserID:                u.id,
				UserEmail:             u.email,
				CheckIn:               in,
				Date:                  day.Format(model.DateLayout),
				Status:                model.AttendanceCheckedIn,
				CheckInLocationStatus: model.LocationUnknown,
				CreatedAt:             in,
				UpdatedAt:             in,
			}
			if i > 0 {
				out := time.Date(y, m, d, 18, rnd.Intn(60), 0, 0, now.Location())
				rec.CheckOut = &out
				rec.Status = model.AttendancePresent
				rec.CheckOutLocationStatus = model.LocationUnknown
				rec.UpdatedAt = out
			}
			if err := ignoreExisting(repo.Create(ctx, rec)); err != nil {
				return err
			}
		}
	}
	return nil
}

func seedLeaves(ctx context.Context, repo repository.LeaveRepository, now time.Time) error {
	leaves := []model.LeaveRequest{
		{ID: "leave_1", UserID: "user_1", UserEmail: "employee1@company.com", FromDate: "2025-10-20", ToDate: "2025-10-22",
			Reason: "Family vacation", Status: model.StatusPending, SubmittedAt: now},
		{ID: "leave_2", UserID: "user_2", UserEmail: "employee2@company.com", FromDate: "2025-10-15", ToDate: "2025-10-16",
			Reason: "Medical appointment", Status: model.StatusApproved, SubmittedAt: now.AddDate(0, 0, -2), DecidedBy: "admin@company.com"},
		{ID: "leave_3", UserID: "user_3", UserEmail: "employee3@company.com", FromDate: "2025-10-18", ToDate: "2025-10-19",
			Reason: "Personal reasons", Status: model.StatusRejected, SubmittedAt: now.AddDate(0, 0, -3), DecidedBy: "admin@company.com"},
	}
	for i := range leaves {
		if err := ignoreExisting(repo.Create(ctx, &leaves[i])); err != nil {
			return err
		}
	}
	return nil
}

func seedInventory(ctx context.Context, repo repository.InventoryRepository, now time.Time) error {
	item := func(id, name, sku, category string, qty int, cost, price int64, supplier, added string) model.InventoryItem {
		return model.InventoryItem{
			ID: id, Name: name, SKU: sku, Category: category, Quantity: qty,
			CostPrice: decimal.NewFromInt(cost), SellingPrice: decimal.NewFromInt(price),
			Supplier: supplier, DateAdded: added, UpdatedAt: now,
		}
	}
	items := []model.InventoryItem{
		item("1", "Laptop Dell XPS 15", "LAP-DEL-001", "Electronics", 15, 1200, 1500, "Dell Corporation", "2024-01-15"),
		item("2", "Office Chair Ergonomic", "FUR-CHA-002", "Furniture", 8, 150, 250, "Office Supplies Inc", "2024-02-10"),
		item("3", "Wireless Mouse Logitech", "ACC-MOU-003", "Accessories", 45, 20, 35, "Logitech", "2024-01-20"),
		item("4", `Monitor 27" LG`, "MON-LG-004", "Electronics", 5, 250, 350, "LG Electronics", "2024-02-01"),
		item("5", "Desk Lamp LED", "FUR-LAM-005", "Furniture", 3, 30, 50, "Lighting World", "2024-02-15"),
	}
	for i := range items {
		if err := ignoreExisting(repo.CreateItem(ctx, &items[i])); err != nil {
			return err
		}
	}

	requests := []model.ItemRequest{
		{ID: "1", ItemID: "1", ItemName: "Laptop Dell XPS 15", EmployeeID: "user_1", EmployeeEmail: "employee1@company.com",
			EmployeeName: "John Doe", Quantity: 1, RequestDate: "2024-03-01", Status: model.StatusPending, CreatedAt: now.AddDate(0, 0, -1)},
		{ID: "2", ItemID: "3", ItemName: "Wireless Mouse Logitech", EmployeeID: "user_2", EmployeeEmail: "employee2@company.com",
			EmployeeName: "Jane Smith", Quantity: 2, RequestDate: "2024-03-02", Status: model.StatusApproved, DecidedBy: "admin@company.com", CreatedAt: now},
	}
	for i := range requests {
		if err := ignoreExisting(repo.CreateRequest(ctx, &requests[i])); err != nil {
			return err
		}
	}
	return nil
}

var fixtureMessages = map[model.NotificationType][]string{
	model.NotificationSystem:    {"System maintenance scheduled for tonight", "New security update available", "Password policy updated"},
	model.NotificationTask:      {"New task assigned: Complete Q4 Report", "Task deadline approaching: Client Presentation", "Task completed: Monthly Review"},
	model.NotificationLeave:     {"Your leave request has been approved", "Leave request rejected: Insufficient balance", "New leave request from John Doe"},
	model.NotificationExpense:   {"Expense report submitted successfully", "Expense claim approved: $250", "Low budget alert for Marketing"},
	model.NotificationInventory: {"Low stock alert: Office Supplies", "New inventory item added", "Item request approved"},
	model.NotificationEmail:     {"New email notification", "Email campaign sent successfully", "Email bounced: Update contact"},
	model.NotificationWhatsApp:  {"New WhatsApp message received", "WhatsApp group notification", "WhatsApp reminder sent"},
}

// seedNotifications writes 20 random notifications spread over the last week.
func seedNotifications(ctx context.Context, repo repository.NotificationRepository, now time.Time, rnd *rand.Rand) error {
	receivers := []string{"employee1@company.com", "employee2@company.com", "admin@company.com"}
	senders := []string{"System", "Admin", "Manager", "HR Department", "Finance Team"}

	for i := 0; i < 20; i++ {
		typ := model.NotificationTypes[rnd.Intn(len(model.NotificationTypes))]
		messages := fixtureMessages[typ]
		ts := now.AddDate(0, 0, -rnd.Intn(7)).Add(-time.Duration(rnd.Intn(24)) * time.Hour)

		n := &model.Notification{
			ID:            fmt.Sprintf("notif-%d", i+1),
			Type:          typ,
			Message:       messages[rnd.Intn(len(messages))],
			Sender:        senders[rnd.Intn(len(senders))],
			ReceiverEmail: receivers[rnd.Intn(len(receivers))],
			Timestamp:     ts,
			IsRead:        rnd.Float64() > 0.5,
		}
		if err := ignoreExisting(repo.Create(ctx, n)); err != nil {
			return err
		}
	}
	return nil
}

func seedHolidays(ctx context.Context, repo repository.HolidayRepository) error {
	holidays := []model.Holiday{
		{ID: "1", Name: "New Year's Day", Date: "2025-01-01", Description: "Public Holiday"},
		{ID: "2", Name: "Republic Day", Date: "2025-01-26", Description: "National Holiday"},
		{ID: "3", Name: "Holi", Date: "2025-03-14", Description: "Festival of Colors"},
		{ID: "4", Name: "Good Friday", Date: "2025-04-18", Description: "Christian Holiday"},
		{ID: "5", Name: "Independence Day", Date: "2025-08-15", Description: "National Holiday"},
		{ID: "6", Name: "Gandhi Jayanti", Date: "2025-10-02", Description: "National Holiday"},
		{ID: "7", Name: "Diwali", Date: "2025-10-20", Description: "Festival of Lights"},
		{ID: "8", Name: "Christmas", Date: "2025-12-25", Description: "Christian Holiday"},
	}
	for i := range holidays {
		if err := ignoreExisting(repo.Create(ctx, &holidays[i])); err != nil {
			return err
		}
	}
	return nil
}

func seedBlog(ctx context.Context, repo repository.BlogRepository, now time.Time) error {
	posts := []model.BlogPost{
		{ID: "1", Title: "Welcome to Our Company Blog", Author: "Admin", AuthorEmail: "admin@company.com", CreatedAt: now.AddDate(0, 0, -7),
			Content: "We are excited to launch our internal blog where everyone can share their thoughts, experiences, and updates."},
		{ID: "2", Title: "Team Building Event Success", Author: "Employee", AuthorEmail: "employee1@company.com", CreatedAt: now.AddDate(0, 0, -3),
			Content: "Last week's team building event was a huge success! Thanks to everyone who participated and made it memorable."},
		{ID: "3", Title: "New Office Guidelines", Author: "Admin", AuthorEmail: "admin@company.com", CreatedAt: now.AddDate(0, 0, -1),
			Content: "Please review the updated office guidelines in the employee handbook. Let us know if you have any questions."},
	}
	for i := range posts {
		if err := ignoreExisting(repo.Create(ctx, &posts[i])); err != nil {
			return err
		}
	}
	return nil
}
