package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"employee-portal/internal/model"
	"employee-portal/internal/repository"
	"employee-portal/internal/repository/memory"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInventoryUsecase() (*InventoryUsecase, *NotificationUsecase, *repository.Set) {
	set := memory.NewSet()
	opts := Options{Now: newClock().Now}
	notifications := NewNotificationUsecase(set.Notifications, nil, opts)
	return NewInventoryUsecase(set.Inventory, notifications, opts), notifications, set
}

func addItem(t *testing.T, u *InventoryUsecase, name string, qty int) *model.InventoryItem {
	t.Helper()
	item, err := u.AddItem(context.Background(), ItemInput{
		Name:         name,
		SKU:          "SKU-" + name,
		Category:     "Electronics",
		Quantity:     qty,
		CostPrice:    decimal.NewFromInt(100),
		SellingPrice: decimal.NewFromInt(150),
		Supplier:     "Acme",
	})
	require.NoError(t, err)
	return item
}

func TestInventory_RequestAndApprove(t *testing.T) {
	ctx := context.Background()
	u, _, _ := newInventoryUsecase()
	item := addItem(t, u, "Monitor", 5)

	req, err := u.RequestItem(ctx, employee, item.ID, 3, "John Doe")
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, req.Status)
	assert.Equal(t, "Monitor", req.ItemName)

	approved, after, err := u.ApproveRequest(ctx, req.ID, admin)
	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, approved.Status)
	assert.Equal(t, 2, after.Quantity)

	stored, err := u.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Quantity)
}

func TestInventory_ZeroStockRequestStaysPending(t *testing.T) {
	ctx := context.Background()
	u, _, _ := newInventoryUsecase()
	item := addItem(t, u, "Desk Lamp", 0)

	req, err := u.RequestItem(ctx, employee, item.ID, 1, "")
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, req.Status)
	assert.Equal(t, employee.Email, req.EmployeeName)

	_, _, err = u.ApproveRequest(ctx, req.ID, admin)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	stored, err := u.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.Quantity)

	pending, err := u.ListRequests(ctx, "pending")
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestInventory_RequestValidation(t *testing.T) {
	ctx := context.Background()
	u, _, _ := newInventoryUsecase()
	item := addItem(t, u, "Mouse", 10)

	_, err := u.RequestItem(ctx, employee, "missing", 1, "John")
	assert.ErrorIs(t, err, ErrItemNotFound)

	_, err = u.RequestItem(ctx, employee, item.ID, 0, "John")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestInventory_DecisionsAreFinal(t *testing.T) {
	ctx := context.Background()
	u, _, _ := newInventoryUsecase()
	item := addItem(t, u, "Laptop", 15)

	req, err := u.RequestItem(ctx, employee, item.ID, 1, "John")
	require.NoError(t, err)
	_, _, err = u.ApproveRequest(ctx, req.ID, admin)
	require.NoError(t, err)

	_, _, err = u.ApproveRequest(ctx, req.ID, admin)
	assert.ErrorIs(t, err, ErrAlreadyDecided)
	_, err = u.RejectRequest(ctx, req.ID, admin)
	assert.ErrorIs(t, err, ErrAlreadyDecided)

	stored, err := u.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 14, stored.Quantity)

	_, _, err = u.ApproveRequest(ctx, "missing", admin)
	assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestInventory_RejectKeepsStock(t *testing.T) {
	ctx := context.Background()
	u, notifications, _ := newInventoryUsecase()
	item := addItem(t, u, "Chair", 8)

	req, err := u.RequestItem(ctx, employee, item.ID, 2, "John")
	require.NoError(t, err)

	rejected, err := u.RejectRequest(ctx, req.ID, admin)
	require.NoError(t, err)
	assert.Equal(t, model.StatusRejected, rejected.Status)

	stored, err := u.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, stored.Quantity)

	inbox, err := notifications.GetNotificationsByUser(ctx, employee.Email)
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	assert.Contains(t, inbox[0].Message, "rejected")
}

func TestInventory_ConcurrentApprovalsDecrementOnce(t *testing.T) {
	ctx := context.Background()
	u, _, _ := newInventoryUsecase()
	item := addItem(t, u, "Monitor", 5)

	req, err := u.RequestItem(ctx, employee, item.ID, 3, "John")
	require.NoError(t, err)

	var ok atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, _, err := u.ApproveRequest(ctx, req.ID, admin); err == nil {
				ok.Add(1)
			} else {
				assert.ErrorIs(t, err, ErrAlreadyDecided)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), ok.Load())
	stored, err := u.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Quantity)
}

func TestInventory_CompetingRequestsNeverOversell(t *testing.T) {
	ctx := context.Background()
	u, _, _ := newInventoryUsecase()
	item := addItem(t, u, "Monitor", 5)

	var ids []string
	for i := 0; i < 4; i++ {
		req, err := u.RequestItem(ctx, employee, item.ID, 2, "John")
		require.NoError(t, err)
		ids = append(ids, req.ID)
	}

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, _, _ = u.ApproveRequest(ctx, id, admin)
		}(id)
	}
	wg.Wait()

	stored, err := u.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Quantity)

	approved, err := u.ListRequests(ctx, "approved")
	require.NoError(t, err)
	assert.Len(t, approved, 2)
}

func TestInventory_LowStockNotifiesApprover(t *testing.T) {
	ctx := context.Background()
	u, notifications, _ := newInventoryUsecase()
	item := addItem(t, u, "Keyboard", 12)

	req, err := u.RequestItem(ctx, employee, item.ID, 4, "John")
	require.NoError(t, err)
	_, _, err = u.ApproveRequest(ctx, req.ID, admin)
	require.NoError(t, err)

	inbox, err := notifications.GetNotificationsByUser(ctx, admin.Email)
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	assert.Equal(t, model.NotificationInventory, inbox[0].Type)
	assert.Contains(t, inbox[0].Message, "8 left")

	low, err := u.LowStock(ctx)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, item.ID, low[0].ID)
}

func TestInventory_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	u, _, _ := newInventoryUsecase()
	item := addItem(t, u, "Mouse", 45)

	name := "Wireless Mouse"
	qty := 40
	price := decimal.RequireFromString("39.90")
	updated, err := u.UpdateItem(ctx, item.ID, ItemPatch{Name: &name, Quantity: &qty, SellingPrice: &price})
	require.NoError(t, err)
	assert.Equal(t, "Wireless Mouse", updated.Name)
	assert.Equal(t, 40, updated.Quantity)
	assert.True(t, updated.SellingPrice.Equal(price))
	assert.Equal(t, item.SKU, updated.SKU)

	neg := -1
	_, err = u.UpdateItem(ctx, item.ID, ItemPatch{Quantity: &neg})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = u.UpdateItem(ctx, "missing", ItemPatch{Name: &name})
	assert.ErrorIs(t, err, ErrItemNotFound)

	require.NoError(t, u.DeleteItem(ctx, item.ID))
	assert.ErrorIs(t, u.DeleteItem(ctx, item.ID), ErrItemNotFound)
}

func TestInventory_Summary(t *testing.T) {
	ctx := context.Background()
	u, _, _ := newInventoryUsecase()
	item := addItem(t, u, "Laptop", 15)
	addItem(t, u, "Lamp", 3)

	_, err := u.RequestItem(ctx, employee, item.ID, 1, "John")
	require.NoError(t, err)

	s, err := u.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Items)
	assert.Equal(t, 18, s.Units)
	assert.True(t, s.CostValue.Equal(decimal.NewFromInt(1800)))
	assert.True(t, s.RetailValue.Equal(decimal.NewFromInt(2700)))
	assert.Equal(t, 1, s.LowStock)
	assert.Equal(t, 1, s.PendingRequests)
}

func TestInventory_ImportRejectsWholeBatchOnInvalidItem(t *testing.T) {
	ctx := context.Background()
	u, _, _ := newInventoryUsecase()

	created, err := u.ImportItems(ctx, []model.InventoryItem{
		{Name: "Cable", Quantity: 10},
		{Name: "", Quantity: 1},
		{Name: "Adapter", Quantity: 2},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorContains(t, err, "item 2")
	assert.Empty(t, created)

	items, err := u.ListItems(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	created, err = u.ImportItems(ctx, []model.InventoryItem{
		{Name: "Cable", Quantity: 10},
		{Name: "Adapter", Quantity: 2},
	})
	require.NoError(t, err)
	assert.Len(t, created, 2)
	items, err = u.ListItems(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

// approveDuringUpdate approves a request just before each item update is
// stored, the way an approval from another request would interleave.
type approveDuringUpdate struct {
	repository.InventoryRepository
	requestID string
}

func (r *approveDuringUpdate) UpdateItem(ctx context.Context, id string, apply func(*model.InventoryItem) error) (*model.InventoryItem, error) {
	if r.requestID != "" {
		if _, _, err := r.InventoryRepository.ApproveRequest(ctx, r.requestID, admin.Email); err != nil {
			return nil, err
		}
		r.requestID = ""
	}
	return r.InventoryRepository.UpdateItem(ctx, id, apply)
}

func TestInventory_UpdateKeepsConcurrentStockChange(t *testing.T) {
	ctx := context.Background()
	set := memory.NewSet()
	repo := &approveDuringUpdate{InventoryRepository: set.Inventory}
	u := NewInventoryUsecase(repo, nil, Options{Now: newClock().Now})

	item := addItem(t, u, "Monitor", 5)
	req, err := u.RequestItem(ctx, employee, item.ID, 3, "John Doe")
	require.NoError(t, err)
	repo.requestID = req.ID

	name := "Monitor 27in"
	updated, err := u.UpdateItem(ctx, item.ID, ItemPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Monitor 27in", updated.Name)
	assert.Equal(t, 2, updated.Quantity)

	stored, err := u.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Quantity)
	decided, err := set.Inventory.GetRequest(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, decided.Status)
}

func TestInventory_UpdateAndApproveConcurrently(t *testing.T) {
	ctx := context.Background()
	u, _, _ := newInventoryUsecase()
	item := addItem(t, u, "Keyboard", 50)

	var reqIDs []string
	for i := 0; i < 10; i++ {
		req, err := u.RequestItem(ctx, employee, item.ID, 1, "John Doe")
		require.NoError(t, err)
		reqIDs = append(reqIDs, req.ID)
	}

	var wg sync.WaitGroup
	for i, id := range reqIDs {
		wg.Add(2)
		go func(id string) {
			defer wg.Done()
			_, _, err := u.ApproveRequest(ctx, id, admin)
			assert.NoError(t, err)
		}(id)
		go func(i int) {
			defer wg.Done()
			supplier := fmt.Sprintf("Supplier %d", i)
			_, err := u.UpdateItem(ctx, item.ID, ItemPatch{Supplier: &supplier})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	stored, err := u.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 40, stored.Quantity)
}
