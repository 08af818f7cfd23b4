package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pendulab/pendulum-backend/internal/logger"
	"github.com/pendulab/pendulum-backend/internal/types"
)

type ResultRepo interface {
	Create(ctx context.Context, tx *gorm.DB, result *types.Result) (*types.Result, error)
	GetByID(ctx context.Context, tx *gorm.DB, resultID uuid.UUID) (*types.Result, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, resultIDs []uuid.UUID) ([]*types.Result, error)
	List(ctx context.Context, tx *gorm.DB, params ListParams) ([]*types.Result, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, resultID uuid.UUID, fields map[string]interface{}) error
	Delete(ctx context.Context, tx *gorm.DB, resultID uuid.UUID) error
}

type resultRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

var resultSortable = map[string]string{
	"id":        "id",
	"name":      "name",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

func NewResultRepo(db *gorm.DB, baseLog *logger.Logger) ResultRepo {
	repoLog := baseLog.With("repo", "ResultRepo")
	return &resultRepo{db: db, log: repoLog}
}

func (rr *resultRepo) Create(ctx context.Context, tx *gorm.DB, result *types.Result) (*types.Result, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	if result.ID == uuid.Nil {
		result.ID = uuid.New()
	}
	if err := transaction.WithContext(ctx).Create(result).Error; err != nil {
		return nil, err
	}
	return result, nil
}

func (rr *resultRepo) GetByID(ctx context.Context, tx *gorm.DB, resultID uuid.UUID) (*types.Result, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var result types.Result
	if err := transaction.WithContext(ctx).
		First(&result, "id = ?", resultID).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (rr *resultRepo) GetByIDs(ctx context.Context, tx *gorm.DB, resultIDs []uuid.UUID) ([]*types.Result, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var results []*types.Result
	if len(resultIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", resultIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *resultRepo) List(ctx context.Context, tx *gorm.DB, params ListParams) ([]*types.Result, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var results []*types.Result
	query := applyListParams(transaction.WithContext(ctx), params, resultSortable)
	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *resultRepo) UpdateFields(ctx context.Context, tx *gorm.DB, resultID uuid.UUID, fields map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	res := transaction.WithContext(ctx).
		Model(&types.Result{}).
		Where("id = ?", resultID).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (rr *resultRepo) Delete(ctx context.Context, tx *gorm.DB, resultID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	res := transaction.WithContext(ctx).Delete(&types.Result{}, "id = ?", resultID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
