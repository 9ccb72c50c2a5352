package repository

import (
	"context"
	"errors"

	"employee-portal/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InventoryRepository interface {
	ListItems(ctx context.Context) ([]model.InventoryItem, error)
	GetItem(ctx context.Context, id string) (*model.InventoryItem, error)
	CreateItem(ctx context.Context, item *model.InventoryItem) error
	// UpdateItem applies apply to the stored item and saves the result while
	// the row is held, so stock taken by a concurrent approval is not lost.
	// An error from apply aborts the update.
	UpdateItem(ctx context.Context, id string, apply func(*model.InventoryItem) error) (*model.InventoryItem, error)
	DeleteItem(ctx context.Context, id string) error
	ListLowStock(ctx context.Context, threshold int) ([]model.InventoryItem, error)

	CreateRequest(ctx context.Context, req *model.ItemRequest) error
	GetRequest(ctx context.Context, id string) (*model.ItemRequest, error)
	// ListRequests returns every request, or only those in status when it is not empty.
	ListRequests(ctx context.Context, status model.ApprovalStatus) ([]model.ItemRequest, error)
	ListRequestsByEmployee(ctx context.Context, employeeID string) ([]model.ItemRequest, error)
	// ApproveRequest marks a pending request approved and takes its quantity
	// out of stock in one transaction.
	ApproveRequest(ctx context.Context, id, decidedBy string) (*model.ItemRequest, *model.InventoryItem, error)
	RejectRequest(ctx context.Context, id, decidedBy string) (*model.ItemRequest, error)
}

type inventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) InventoryRepository {
	return &inventoryRepository{db}
}

func (r *inventoryRepository) ListItems(ctx context.Context) ([]model.InventoryItem, error) {
	var items []model.InventoryItem
	err := r.db.WithContext(ctx).Order("date_added asc, name asc").Find(&items).Error
	return items, translate(err)
}

func (r *inventoryRepository) GetItem(ctx context.Context, id string) (*model.InventoryItem, error) {
	var item model.InventoryItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

func (r *inventoryRepository) CreateItem(ctx context.Context, item *model.InventoryItem) error {
	return translate(r.db.WithContext(ctx).Create(item).Error)
}

var itemColumns = []string{"name", "sku", "category", "quantity", "cost_price", "selling_price", "supplier", "updated_at"}

func (r *inventoryRepository) UpdateItem(ctx context.Context, id string, apply func(*model.InventoryItem) error) (*model.InventoryItem, error) {
	var item model.InventoryItem
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&item, "id = ?", id).Error; err != nil {
			return err
		}
		if err := apply(&item); err != nil {
			return err
		}
		return tx.Model(&model.InventoryItem{}).Where("id = ?", id).Select(itemColumns).Updates(&item).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

func (r *inventoryRepository) DeleteItem(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&model.InventoryItem{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *inventoryRepository) ListLowStock(ctx context.Context, threshold int) ([]model.InventoryItem, error) {
	var items []model.InventoryItem
	err := r.db.WithContext(ctx).Where("quantity < ?", threshold).Order("quantity asc").Find(&items).Error
	return items, translate(err)
}

func (r *inventoryRepository) CreateRequest(ctx context.Context, req *model.ItemRequest) error {
	return translate(r.db.WithContext(ctx).Create(req).Error)
}

func (r *inventoryRepository) GetRequest(ctx context.Context, id string) (*model.ItemRequest, error) {
	var req model.ItemRequest
	if err := r.db.WithContext(ctx).First(&req, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &req, nil
}

func (r *inventoryRepository) ListRequests(ctx context.Context, status model.ApprovalStatus) ([]model.ItemRequest, error) {
	var list []model.ItemRequest
	q := r.db.WithContext(ctx).Order("created_at asc")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Find(&list).Error
	return list, translate(err)
}

func (r *inventoryRepository) ListRequestsByEmployee(ctx context.Context, employeeID string) ([]model.ItemRequest, error) {
	var list []model.ItemRequest
	err := r.db.WithContext(ctx).Where("employee_id = ?", employeeID).Order("created_at desc").Find(&list).Error
	return list, translate(err)
}

func (r *inventoryRepository) ApproveRequest(ctx context.Context, id, decidedBy string) (*model.ItemRequest, *model.InventoryItem, error) {
	var req model.ItemRequest
	var item model.InventoryItem

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&req, "id = ?", id).Error; err != nil {
			return err
		}
		if req.Status != model.StatusPending {
			return ErrConflict
		}
		if err := tx.First(&item, "id = ?", req.ItemID).Error; err != nil {
			return err
		}

		res := tx.Model(&model.ItemRequest{}).
			Where("id = ? AND status = ?", id, model.StatusPending).
			Updates(map[string]interface{}{"status": model.StatusApproved, "decided_by": decidedBy})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrConflict
		}

		// The quantity guard keeps concurrent approvals from driving stock below zero.
		res = tx.Model(&model.InventoryItem{}).
			Where("id = ? AND quantity >= ?", item.ID, req.Quantity).
			Update("quantity", gorm.Expr("quantity - ?", req.Quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInsufficientStock
		}

		req.Status = model.StatusApproved
		req.DecidedBy = decidedBy
		return tx.First(&item, "id = ?", item.ID).Error
	})
	if err != nil {
		if errors.Is(err, ErrConflict) || errors.Is(err, ErrInsufficientStock) {
			return nil, nil, err
		}
		return nil, nil, translate(err)
	}
	return &req, &item, nil
}

func (r *inventoryRepository) RejectRequest(ctx context.Context, id, decidedBy string) (*model.ItemRequest, error) {
	res := r.db.WithContext(ctx).Model(&model.ItemRequest{}).
		Where("id = ? AND status = ?", id, model.StatusPending).
		Updates(map[string]interface{}{"status": model.StatusRejected, "decided_by": decidedBy})
	if res.Error != nil {
		return nil, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		if _, err := r.GetRequest(ctx, id); err != nil {
			return nil, err
		}
		return nil, ErrConflict
	}
	return r.GetRequest(ctx, id)
}
