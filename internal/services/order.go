package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pendulab/pendulum-backend/internal/apierr"
	"github.com/pendulab/pendulum-backend/internal/logger"
	"github.com/pendulab/pendulum-backend/internal/repos"
	"github.com/pendulab/pendulum-backend/internal/types"
)

type CreateOrderInput struct {
	UserID    int64    `json:"userId"`
	Total     *float64 `json:"total"`
	ResultIDs []string `json:"results"`
}

type UpdateOrderInput struct {
	UserID    *int64   `json:"userId"`
	Total     *float64 `json:"total"`
	ResultIDs []string `json:"results"`
}

// OrderService owns the order/result aggregation rules: it resolves result
// identifiers against the store, links them all-or-nothing, and applies
// connect-only patches. It never creates or mutates result content.
type OrderService interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*types.Order, error)
	GetOrders(ctx context.Context, params repos.ListParams) ([]*types.Order, error)
	GetOrder(ctx context.Context, orderID int64) (*types.Order, error)
	UpdateOrder(ctx context.Context, orderID int64, patch UpdateOrderInput) (*types.Order, error)
	DeleteOrder(ctx context.Context, orderID int64) (*types.Order, error)
}

type orderService struct {
	db         *gorm.DB
	log        *logger.Logger
	orderRepo  repos.OrderRepo
	resultRepo repos.ResultRepo
}

func NewOrderService(db *gorm.DB, log *logger.Logger, orderRepo repos.OrderRepo, resultRepo repos.ResultRepo) OrderService {
	serviceLog := log.With("service", "OrderService")
	return &orderService{
		db:         db,
		log:        serviceLog,
		orderRepo:  orderRepo,
		resultRepo: resultRepo,
	}
}

func (os *orderService) inTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if os.db == nil {
		return fn(nil)
	}
	return os.db.WithContext(ctx).Transaction(fn)
}

// resolveResults parses and dedupes the identifier list, then resolves every
// identifier against the result store. Any unresolved identifier fails the
// whole call with a Conflict; no partial set is ever returned.
func (os *orderService) resolveResults(ctx context.Context, tx *gorm.DB, resultIDs []string) ([]*types.Result, error) {
	seen := make(map[uuid.UUID]struct{}, len(resultIDs))
	ids := make([]uuid.UUID, 0, len(resultIDs))
	for _, raw := range resultIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, apierr.Conflict("result_not_found", fmt.Errorf("no result with id %q", raw))
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	found, err := os.resultRepo.GetByIDs(ctx, tx, ids)
	if err != nil {
		return nil, apierr.BadGateway("result_lookup_failed", err)
	}
	byID := make(map[uuid.UUID]*types.Result, len(found))
	for _, r := range found {
		byID[r.ID] = r
	}

	resolved := make([]*types.Result, 0, len(ids))
	for _, id := range ids {
		r, ok := byID[id]
		if !ok {
			return nil, apierr.Conflict("result_not_found", fmt.Errorf("no result with id %q", id))
		}
		resolved = append(resolved, r)
	}
	return resolved, nil
}

func (os *orderService) CreateOrder(ctx context.Context, input CreateOrderInput) (*types.Order, error) {
	var created *types.Order

	err := os.inTransaction(ctx, func(tx *gorm.DB) error {
		resolved, err := os.resolveResults(ctx, tx, input.ResultIDs)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		order := &types.Order{
			UserID:    input.UserID,
			Total:     input.Total,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if _, err := os.orderRepo.Create(ctx, tx, order); err != nil {
			return apierr.Internal("order_create_failed", err)
		}
		if err := os.orderRepo.AppendResults(ctx, tx, order, resolved); err != nil {
			// A store-level FK rejection on linking is a referential
			// conflict, and the transaction rollback keeps it all-or-nothing.
			return apierr.Conflict("order_link_failed", err)
		}

		order.Results = resolved
		created = order
		return nil
	})
	if err != nil {
		os.log.Error("CreateOrder failed", "user_id", input.UserID, "error", err)
		return nil, err
	}

	os.log.Info("Order created", "order_id", created.ID, "user_id", created.UserID, "result_count", len(created.Results))
	return created, nil
}

func (os *orderService) GetOrders(ctx context.Context, params repos.ListParams) ([]*types.Order, error) {
	orders, err := os.orderRepo.List(ctx, nil, params)
	if err != nil {
		os.log.Error("GetOrders failed", "error", err)
		return nil, apierr.BadGateway("order_list_failed", err)
	}
	return orders, nil
}

func (os *orderService) GetOrder(ctx context.Context, orderID int64) (*types.Order, error) {
	order, err := os.orderRepo.GetByID(ctx, nil, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("order_not_found", fmt.Errorf("order %d not found", orderID))
		}
		os.log.Error("GetOrder failed", "order_id", orderID, "error", err)
		return nil, apierr.BadGateway("order_lookup_failed", err)
	}
	return order, nil
}

// UpdateOrder applies a partial patch. A present userId or total replaces
// the stored value; a present result list is connect-only, adding links
// without removing any. An empty result list means "nothing to add", never
// "clear the set". The modification timestamp is always refreshed.
func (os *orderService) UpdateOrder(ctx context.Context, orderID int64, patch UpdateOrderInput) (*types.Order, error) {
	var updated *types.Order

	err := os.inTransaction(ctx, func(tx *gorm.DB) error {
		order, err := os.orderRepo.GetByID(ctx, tx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierr.NotFound("order_not_found", fmt.Errorf("order %d not found", orderID))
			}
			return apierr.BadGateway("order_lookup_failed", err)
		}

		fields := map[string]interface{}{
			"updated_at": time.Now().UTC(),
		}
		if patch.UserID != nil {
			fields["user_id"] = *patch.UserID
		}
		if patch.Total != nil {
			fields["total"] = *patch.Total
		}
		if err := os.orderRepo.UpdateFields(ctx, tx, orderID, fields); err != nil {
			return apierr.Conflict("order_update_failed", err)
		}

		if len(patch.ResultIDs) > 0 {
			resolved, err := os.resolveResults(ctx, tx, patch.ResultIDs)
			if err != nil {
				return err
			}
			if err := os.orderRepo.AppendResults(ctx, tx, order, resolved); err != nil {
				return apierr.Conflict("order_link_failed", err)
			}
		}

		reloaded, err := os.orderRepo.GetByID(ctx, tx, orderID)
		if err != nil {
			return apierr.BadGateway("order_lookup_failed", err)
		}
		updated = reloaded
		return nil
	})
	if err != nil {
		os.log.Error("UpdateOrder failed", "order_id", orderID, "error", err)
		return nil, err
	}

	os.log.Info("Order updated", "order_id", orderID, "result_count", len(updated.Results))
	return updated, nil
}

// DeleteOrder removes the order and its link rows, returning the order as it
// was at deletion time. The linked results are left untouched.
func (os *orderService) DeleteOrder(ctx context.Context, orderID int64) (*types.Order, error) {
	var removed *types.Order

	err := os.inTransaction(ctx, func(tx *gorm.DB) error {
		order, err := os.orderRepo.GetByID(ctx, tx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierr.NotFound("order_not_found", fmt.Errorf("order %d not found", orderID))
			}
			return apierr.BadGateway("order_lookup_failed", err)
		}
		if err := os.orderRepo.Delete(ctx, tx, order); err != nil {
			return apierr.Internal("order_delete_failed", err)
		}
		removed = order
		return nil
	})
	if err != nil {
		os.log.Error("DeleteOrder failed", "order_id", orderID, "error", err)
		return nil, err
	}

	os.log.Info("Order deleted", "order_id", orderID, "result_count", len(removed.Results))
	return removed, nil
}
