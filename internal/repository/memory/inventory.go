package memory

import (
	"context"
	"sort"

	"employee-portal/internal/model"
	"employee-portal/internal/repository"
)

type inventoryRepository struct {
	*store
	items    []model.InventoryItem
	requests []model.ItemRequest
}

func (r *inventoryRepository) ListItems(_ context.Context) ([]model.InventoryItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := append([]model.InventoryItem(nil), r.items...)
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].DateAdded != list[j].DateAdded {
			return list[i].DateAdded < list[j].DateAdded
		}
		return list[i].Name < list[j].Name
	})
	return list, nil
}

func (r *inventoryRepository) GetItem(_ context.Context, id string) (*model.InventoryItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := r.itemIndex(id); i >= 0 {
		item := r.items[i]
		return &item, nil
	}
	return nil, repository.ErrNotFound
}

func (r *inventoryRepository) CreateItem(_ context.Context, item *model.InventoryItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.itemIndex(item.ID) >= 0 {
		return repository.ErrDuplicate
	}
	r.items = append(r.items, *item)
	return nil
}

func (r *inventoryRepository) UpdateItem(_ context.Context, id string, apply func(*model.InventoryItem) error) (*model.InventoryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.itemIndex(id)
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	item := r.items[i]
	if err := apply(&item); err != nil {
		return nil, err
	}
	item.ID = id
	r.items[i] = item
	return &item, nil
}

func (r *inventoryRepository) DeleteItem(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.itemIndex(id)
	if i < 0 {
		return repository.ErrNotFound
	}
	r.items = append(r.items[:i], r.items[i+1:]...)
	return nil
}

func (r *inventoryRepository) ListLowStock(_ context.Context, threshold int) ([]model.InventoryItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []model.InventoryItem
	for _, item := range r.items {
		if item.Quantity < threshold {
			list = append(list, item)
		}
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].Quantity < list[j].Quantity })
	return list, nil
}

func (r *inventoryRepository) CreateRequest(_ context.Context, req *model.ItemRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.requestIndex(req.ID) >= 0 {
		return repository.ErrDuplicate
	}
	r.requests = append(r.requests, *req)
	return nil
}

func (r *inventoryRepository) GetRequest(_ context.Context, id string) (*model.ItemRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := r.requestIndex(id); i >= 0 {
		req := r.requests[i]
		return &req, nil
	}
	return nil, repository.ErrNotFound
}

func (r *inventoryRepository) ListRequests(_ context.Context, status model.ApprovalStatus) ([]model.ItemRequest, error) {
	return r.listRequests(func(req model.ItemRequest) bool {
		return status == "" || req.Status == status
	}, false), nil
}

func (r *inventoryRepository) ListRequestsByEmployee(_ context.Context, employeeID string) ([]model.ItemRequest, error) {
	return r.listRequests(func(req model.ItemRequest) bool {
		return req.EmployeeID == employeeID
	}, true), nil
}

func (r *inventoryRepository) ApproveRequest(_ context.Context, id, decidedBy string) (*model.ItemRequest, *model.InventoryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ri := r.requestIndex(id)
	if ri < 0 {
		return nil, nil, repository.ErrNotFound
	}
	if r.requests[ri].Status != model.StatusPending {
		return nil, nil, repository.ErrConflict
	}
	ii := r.itemIndex(r.requests[ri].ItemID)
	if ii < 0 {
		return nil, nil, repository.ErrNotFound
	}
	if r.items[ii].Quantity < r.requests[ri].Quantity {
		return nil, nil, repository.ErrInsufficientStock
	}

	r.items[ii].Quantity -= r.requests[ri].Quantity
	r.requests[ri].Status = model.StatusApproved
	r.requests[ri].DecidedBy = decidedBy

	req, item := r.requests[ri], r.items[ii]
	return &req, &item, nil
}

func (r *inventoryRepository) RejectRequest(_ context.Context, id, decidedBy string) (*model.ItemRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.requestIndex(id)
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	if r.requests[i].Status != model.StatusPending {
		return nil, repository.ErrConflict
	}
	r.requests[i].Status = model.StatusRejected
	r.requests[i].DecidedBy = decidedBy
	req := r.requests[i]
	return &req, nil
}

func (r *inventoryRepository) itemIndex(id string) int {
	for i := range r.items {
		if r.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *inventoryRepository) requestIndex(id string) int {
	for i := range r.requests {
		if r.requests[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *inventoryRepository) listRequests(match func(model.ItemRequest) bool, newestFirst bool) []model.ItemRequest {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []model.ItemRequest
	for _, req := range r.requests {
		if match(req) {
			list = append(list, req)
		}
	}
	sort.SliceStable(list, func(i, j int) bool {
		if newestFirst {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	return list
}
