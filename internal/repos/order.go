package repos

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pendulab/pendulum-backend/internal/logger"
	"github.com/pendulab/pendulum-backend/internal/types"
)

type OrderRepo interface {
	// Create inserts the order row only; linking happens through
	// AppendResults so the caller controls the transaction boundary.
	Create(ctx context.Context, tx *gorm.DB, order *types.Order) (*types.Order, error)
	// AppendResults adds link rows for the given results without touching
	// links that already exist. Appending an already-linked result is a
	// no-op, so the operation is idempotent per identifier.
	AppendResults(ctx context.Context, tx *gorm.DB, order *types.Order, results []*types.Result) error
	GetByID(ctx context.Context, tx *gorm.DB, orderID int64) (*types.Order, error)
	List(ctx context.Context, tx *gorm.DB, params ListParams) ([]*types.Order, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, orderID int64, fields map[string]interface{}) error
	// Delete removes the order row and its link rows. Result rows stay.
	Delete(ctx context.Context, tx *gorm.DB, order *types.Order) error
}

type orderRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

var orderSortable = map[string]string{
	"id":        "id",
	"userId":    "user_id",
	"total":     "total",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

func NewOrderRepo(db *gorm.DB, baseLog *logger.Logger) OrderRepo {
	repoLog := baseLog.With("repo", "OrderRepo")
	return &orderRepo{db: db, log: repoLog}
}

func (or *orderRepo) Create(ctx context.Context, tx *gorm.DB, order *types.Order) (*types.Order, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}

	if err := transaction.WithContext(ctx).
		Omit("Results").
		Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func (or *orderRepo) AppendResults(ctx context.Context, tx *gorm.DB, order *types.Order, results []*types.Result) error {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}

	if len(results) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Model(order).
		Omit("Results.*").
		Association("Results").
		Append(results)
}

func (or *orderRepo) GetByID(ctx context.Context, tx *gorm.DB, orderID int64) (*types.Order, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}

	var result types.Order
	if err := transaction.WithContext(ctx).
		Preload("Results").
		First(&result, "id = ?", orderID).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (or *orderRepo) List(ctx context.Context, tx *gorm.DB, params ListParams) ([]*types.Order, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}

	var results []*types.Order
	query := applyListParams(transaction.WithContext(ctx).Preload("Results"), params, orderSortable)
	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (or *orderRepo) UpdateFields(ctx context.Context, tx *gorm.DB, orderID int64, fields map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}

	res := transaction.WithContext(ctx).
		Model(&types.Order{}).
		Where("id = ?", orderID).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (or *orderRepo) Delete(ctx context.Context, tx *gorm.DB, order *types.Order) error {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}

	return transaction.WithContext(ctx).
		Select(clause.Associations).
		Delete(order).Error
}
