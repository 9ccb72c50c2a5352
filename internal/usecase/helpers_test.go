package usecase

import (
	"context"
	"sync"
	"time"

	"employee-portal/internal/mailer"
	"employee-portal/internal/model"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock() *clock {
	return &clock{now: time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)}
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

var (
	admin    = model.Identity{ID: "user_0", Email: "admin@company.com", Role: model.RoleAdmin}
	employee = model.Identity{ID: "user_1", Email: "employee1@company.com", Role: model.RoleEmployee}
	other    = model.Identity{ID: "user_2", Email: "employee2@company.com", Role: model.RoleEmployee}
)

type recordingMailer struct {
	mu   sync.Mutex
	sent []mailer.Message
}

func (m *recordingMailer) Send(_ context.Context, msg mailer.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return nil
}
