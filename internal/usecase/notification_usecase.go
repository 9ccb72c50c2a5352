package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"employee-portal/internal/mailer"
	"employee-portal/internal/model"
	"employee-portal/internal/repository"

	"github.com/google/uuid"
)

// FilterAll disables type filtering.
const FilterAll = "All"

// Notifier is what other stores use to tell a user about a decision.
type Notifier interface {
	AddNotification(ctx context.Context, typ model.NotificationType, message, sender, receiverEmail string) (*model.Notification, error)
}

type NotificationUsecase struct {
	store
	repo   repository.NotificationRepository
	mailer mailer.Mailer
}

func NewNotificationUsecase(repo repository.NotificationRepository, m mailer.Mailer, opts Options) *NotificationUsecase {
	if m == nil {
		m = mailer.Nop{}
	}
	return &NotificationUsecase{
		store:  store{opts: opts.withDefaults()},
		repo:   repo,
		mailer: m,
	}
}

// AddNotification stores a new unread notification stamped with the
// current time. Email notifications are also sent through the mailer; a
// delivery failure is logged and does not undo the notification.
func (u *NotificationUsecase) AddNotification(ctx context.Context, typ model.NotificationType, message, sender, receiverEmail string) (*model.Notification, error) {
	done := u.begin()
	defer done()

	if _, err := model.ParseNotificationType(string(typ)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	receiverEmail = normalizeEmail(receiverEmail)
	if strings.TrimSpace(message) == "" || receiverEmail == "" {
		return nil, fmt.Errorf("%w: message and receiver are required", ErrInvalidInput)
	}
	if err := u.settle(ctx); err != nil {
		return nil, err
	}

	n := &model.Notification{
		ID:            uuid.NewString(),
		Type:          typ,
		Message:       message,
		Sender:        sender,
		ReceiverEmail: receiverEmail,
		Timestamp:     u.now(),
	}
	if err := u.repo.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("create notification: %w", err)
	}

	if typ == model.NotificationEmail {
		msg := mailer.Message{To: receiverEmail, Subject: "Message from " + sender, Body: message}
		if err := u.mailer.Send(ctx, msg); err != nil {
			log.Printf("notification %s: %v", n.ID, err)
		}
	}
	return n, nil
}

func (u *NotificationUsecase) MarkAsRead(ctx context.Context, id string) (*model.Notification, error) {
	return u.setRead(ctx, id, true)
}

func (u *NotificationUsecase) MarkAsUnread(ctx context.Context, id string) (*model.Notification, error) {
	return u.setRead(ctx, id, false)
}

func (u *NotificationUsecase) setRead(ctx context.Context, id string, read bool) (*model.Notification, error) {
	n, err := u.repo.SetRead(ctx, id, read)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotificationNotFound
	}
	return n, err
}

// Get returns one notification.
func (u *NotificationUsecase) Get(ctx context.Context, id string) (*model.Notification, error) {
	n, err := u.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotificationNotFound
	}
	return n, err
}

func (u *NotificationUsecase) GetNotificationsByUser(ctx context.Context, email string) ([]model.Notification, error) {
	return u.repo.ListByReceiver(ctx, normalizeEmail(email))
}

// GetLatestNotifications returns the newest limit notifications of email.
func (u *NotificationUsecase) GetLatestNotifications(ctx context.Context, email string, limit int) ([]model.Notification, error) {
	list, err := u.GetNotificationsByUser(ctx, email)
	if err != nil {
		return nil, err
	}
	if limit >= 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

// FilterNotifications narrows the notifications of email to one type.
// An empty type or FilterAll returns everything.
func (u *NotificationUsecase) FilterNotifications(ctx context.Context, email, typ string) ([]model.Notification, error) {
	list, err := u.GetNotificationsByUser(ctx, email)
	if err != nil || typ == "" || typ == FilterAll {
		return list, err
	}
	t, err := model.ParseNotificationType(typ)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	filtered := list[:0:0]
	for _, n := range list {
		if n.Type == t {
			filtered = append(filtered, n)
		}
	}
	return filtered, nil
}

// List returns every notification, for admins.
func (u *NotificationUsecase) List(ctx context.Context, typ string) ([]model.Notification, error) {
	if typ == "" || typ == FilterAll {
		return u.repo.List(ctx, "")
	}
	t, err := model.ParseNotificationType(typ)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return u.repo.List(ctx, t)
}

// UnreadCount counts unread notifications of all receivers.
func (u *NotificationUsecase) UnreadCount(ctx context.Context) (int64, error) {
	return u.repo.CountUnread(ctx, "")
}

func (u *NotificationUsecase) UnreadCountFor(ctx context.Context, email string) (int64, error) {
	return u.repo.CountUnread(ctx, normalizeEmail(email))
}

// notify sends a best-effort notification; errors are only logged.
func notify(ctx context.Context, n Notifier, typ model.NotificationType, message, sender, receiver string) {
	if n == nil || receiver == "" {
		return
	}
	if _, err := n.AddNotification(ctx, typ, message, sender, receiver); err != nil {
		log.Printf("notify %s: %v", receiver, err)
	}
}
