package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"employee-portal/internal/model"
	"employee-portal/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LowStockThreshold is the quantity below which an item counts as low on stock.
const LowStockThreshold = 10

type ItemInput struct {
	Name         string
	SKU          string
	Category     string
	Quantity     int
	CostPrice    decimal.Decimal
	SellingPrice decimal.Decimal
	Supplier     string
	DateAdded    string
}

// ItemPatch updates only the fields that are set.
type ItemPatch struct {
	Name         *string
	SKU          *string
	Category     *string
	Quantity     *int
	CostPrice    *decimal.Decimal
	SellingPrice *decimal.Decimal
	Supplier     *string
}

type InventorySummary struct {
	Items           int             `json:"items"`
	Units           int             `json:"units"`
	CostValue       decimal.Decimal `json:"cost_value"`
	RetailValue     decimal.Decimal `json:"retail_value"`
	LowStock        int             `json:"low_stock"`
	PendingRequests int             `json:"pending_requests"`
}

type InventoryUsecase struct {
	store
	repo     repository.InventoryRepository
	notifier Notifier
	locks    keyedMutex
}

func NewInventoryUsecase(repo repository.InventoryRepository, notifier Notifier, opts Options) *InventoryUsecase {
	return &InventoryUsecase{
		store:    store{opts: opts.withDefaults()},
		repo:     repo,
		notifier: notifier,
	}
}

func (u *InventoryUsecase) ListItems(ctx context.Context) ([]model.InventoryItem, error) {
	return u.repo.ListItems(ctx)
}

func (u *InventoryUsecase) GetItem(ctx context.Context, id string) (*model.InventoryItem, error) {
	item, err := u.repo.GetItem(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrItemNotFound
	}
	return item, err
}

func (u *InventoryUsecase) AddItem(ctx context.Context, in ItemInput) (*model.InventoryItem, error) {
	done := u.begin()
	defer done()

	item, err := u.newItem(in)
	if err != nil {
		return nil, err
	}
	if err := u.settle(ctx); err != nil {
		return nil, err
	}
	if err := u.repo.CreateItem(ctx, &item); err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}
	return &item, nil
}

func (u *InventoryUsecase) newItem(in ItemInput) (model.InventoryItem, error) {
	item := model.InventoryItem{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(in.Name),
		SKU:          strings.TrimSpace(in.SKU),
		Category:     strings.TrimSpace(in.Category),
		Quantity:     in.Quantity,
		CostPrice:    in.CostPrice,
		SellingPrice: in.SellingPrice,
		Supplier:     strings.TrimSpace(in.Supplier),
		DateAdded:    in.DateAdded,
		UpdatedAt:    u.now(),
	}
	if item.DateAdded == "" {
		item.DateAdded = u.today()
	}
	return item, validateItem(item)
}

// ImportItems validates every item first and stores nothing when one of
// them is invalid.
func (u *InventoryUsecase) ImportItems(ctx context.Context, items []model.InventoryItem) ([]model.InventoryItem, error) {
	done := u.begin()
	defer done()

	pending := make([]model.InventoryItem, 0, len(items))
	for i, it := range items {
		item, err := u.newItem(ItemInput{
			Name:         it.Name,
			SKU:          it.SKU,
			Category:     it.Category,
			Quantity:     it.Quantity,
			CostPrice:    it.CostPrice,
			SellingPrice: it.SellingPrice,
			Supplier:     it.Supplier,
			DateAdded:    it.DateAdded,
		})
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i+1, err)
		}
		pending = append(pending, item)
	}
	if err := u.settle(ctx); err != nil {
		return nil, err
	}

	created := make([]model.InventoryItem, 0, len(pending))
	for i := range pending {
		if err := u.repo.CreateItem(ctx, &pending[i]); err != nil {
			log.Printf("import stopped after %d of %d items: %v", len(created), len(pending), err)
			return created, fmt.Errorf("create item %d: %w", i+1, err)
		}
		created = append(created, pending[i])
	}
	return created, nil
}

// UpdateItem changes only the fields set in patch. The merge happens on the
// stored item, so a concurrent approval's stock change is kept.
func (u *InventoryUsecase) UpdateItem(ctx context.Context, id string, patch ItemPatch) (*model.InventoryItem, error) {
	done := u.begin()
	defer done()

	unlock := u.locks.Lock("item:" + id)
	defer unlock()

	if err := u.settle(ctx); err != nil {
		return nil, err
	}

	item, err := u.repo.UpdateItem(ctx, id, func(item *model.InventoryItem) error {
		patch.apply(item)
		if err := validateItem(*item); err != nil {
			return err
		}
		item.UpdatedAt = u.now()
		return nil
	})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (p ItemPatch) apply(item *model.InventoryItem) {
	if p.Name != nil {
		item.Name = strings.TrimSpace(*p.Name)
	}
	if p.SKU != nil {
		item.SKU = strings.TrimSpace(*p.SKU)
	}
	if p.Category != nil {
		item.Category = strings.TrimSpace(*p.Category)
	}
	if p.Quantity != nil {
		item.Quantity = *p.Quantity
	}
	if p.CostPrice != nil {
		item.CostPrice = *p.CostPrice
	}
	if p.SellingPrice != nil {
		item.SellingPrice = *p.SellingPrice
	}
	if p.Supplier != nil {
		item.Supplier = strings.TrimSpace(*p.Supplier)
	}
}

func (u *InventoryUsecase) DeleteItem(ctx context.Context, id string) error {
	done := u.begin()
	defer done()

	if err := u.settle(ctx); err != nil {
		return err
	}
	err := u.repo.DeleteItem(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrItemNotFound
	}
	return err
}

func validateItem(item model.InventoryItem) error {
	switch {
	case item.Name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	case item.Quantity < 0:
		return fmt.Errorf("%w: quantity cannot be negative", ErrInvalidInput)
	case item.CostPrice.IsNegative() || item.SellingPrice.IsNegative():
		return fmt.Errorf("%w: prices cannot be negative", ErrInvalidInput)
	case !validDate(item.DateAdded):
		return fmt.Errorf("%w: date added must be YYYY-MM-DD", ErrInvalidInput)
	}
	return nil
}

// RequestItem files a pending request for quantity units of itemID. The
// current stock is not checked; an out-of-stock item can still be requested.
func (u *InventoryUsecase) RequestItem(ctx context.Context, who model.Identity, itemID string, quantity int, employeeName string) (*model.ItemRequest, error) {
	done := u.begin()
	defer done()

	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}
	if err := u.settle(ctx); err != nil {
		return nil, err
	}
	item, err := u.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	employeeName = strings.TrimSpace(employeeName)
	if employeeName == "" {
		employeeName = who.Email
	}
	req := &model.ItemRequest{
		ID:            uuid.NewString(),
		ItemID:        item.ID,
		ItemName:      item.Name,
		EmployeeID:    who.ID,
		EmployeeEmail: who.Email,
		EmployeeName:  employeeName,
		Quantity:      quantity,
		RequestDate:   u.today(),
		Status:        model.StatusPending,
		CreatedAt:     u.now(),
	}
	if err := u.repo.CreateRequest(ctx, req); err != nil {
		return nil, fmt.Errorf("create item request: %w", err)
	}
	return req, nil
}

// ApproveRequest approves a pending request and takes its quantity out of
// stock. A request is approved at most once, and never beyond the stock on hand.
func (u *InventoryUsecase) ApproveRequest(ctx context.Context, id string, approver model.Identity) (*model.ItemRequest, *model.InventoryItem, error) {
	done := u.begin()
	defer done()

	unlock := u.locks.Lock("request:" + id)
	defer unlock()

	if err := u.settle(ctx); err != nil {
		return nil, nil, err
	}

	req, item, err := u.repo.ApproveRequest(ctx, id, approver.Email)
	if err != nil {
		return nil, nil, u.decisionError(ctx, id, err)
	}

	notify(ctx, u.notifier, model.NotificationInventory,
		fmt.Sprintf("Your request for %d x %s has been approved.", req.Quantity, req.ItemName),
		approver.Email, req.EmployeeEmail)
	if item.Quantity < LowStockThreshold {
		notify(ctx, u.notifier, model.NotificationInventory,
			fmt.Sprintf("%s is low on stock: %d left.", item.Name, item.Quantity),
			"System", approver.Email)
	}
	return req, item, nil
}

func (u *InventoryUsecase) RejectRequest(ctx context.Context, id string, approver model.Identity) (*model.ItemRequest, error) {
	done := u.begin()
	defer done()

	unlock := u.locks.Lock("request:" + id)
	defer unlock()

	if err := u.settle(ctx); err != nil {
		return nil, err
	}

	req, err := u.repo.RejectRequest(ctx, id, approver.Email)
	if err != nil {
		return nil, u.decisionError(ctx, id, err)
	}
	notify(ctx, u.notifier, model.NotificationInventory,
		fmt.Sprintf("Your request for %d x %s has been rejected.", req.Quantity, req.ItemName),
		approver.Email, req.EmployeeEmail)
	return req, nil
}

func (u *InventoryUsecase) decisionError(ctx context.Context, id string, err error) error {
	switch {
	case errors.Is(err, repository.ErrConflict):
		return ErrAlreadyDecided
	case errors.Is(err, repository.ErrInsufficientStock):
		return ErrInsufficientStock
	case errors.Is(err, repository.ErrNotFound):
		if _, gerr := u.repo.GetRequest(ctx, id); gerr != nil {
			return ErrRequestNotFound
		}
		return ErrItemNotFound
	}
	return err
}

// ListRequests returns all requests, optionally only those in status.
func (u *InventoryUsecase) ListRequests(ctx context.Context, status string) ([]model.ItemRequest, error) {
	s := model.ApprovalStatus(status)
	if s != "" && !s.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}
	return u.repo.ListRequests(ctx, s)
}

func (u *InventoryUsecase) ListRequestsByEmployee(ctx context.Context, employeeID string) ([]model.ItemRequest, error) {
	return u.repo.ListRequestsByEmployee(ctx, employeeID)
}

func (u *InventoryUsecase) LowStock(ctx context.Context) ([]model.InventoryItem, error) {
	return u.repo.ListLowStock(ctx, LowStockThreshold)
}

func (u *InventoryUsecase) Summary(ctx context.Context) (*InventorySummary, error) {
	items, err := u.repo.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := u.repo.ListRequests(ctx, model.StatusPending)
	if err != nil {
		return nil, err
	}

	s := &InventorySummary{
		Items:           len(items),
		CostValue:       decimal.Zero,
		RetailValue:     decimal.Zero,
		PendingRequests: len(pending),
	}
	for _, it := range items {
		qty := decimal.NewFromInt(int64(it.Quantity))
		s.Units += it.Quantity
		s.CostValue = s.CostValue.Add(it.CostPrice.Mul(qty))
		s.RetailValue = s.RetailValue.Add(it.SellingPrice.Mul(qty))
		if it.Quantity < LowStockThreshold {
			s.LowStock++
		}
	}
	return s, nil
}
