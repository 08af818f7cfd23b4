package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/pendulab/pendulum-backend/internal/apierr"
	"github.com/pendulab/pendulum-backend/internal/logger"
	"github.com/pendulab/pendulum-backend/internal/repos"
	"github.com/pendulab/pendulum-backend/internal/types"
)

const defaultResultName = "Untitled"

type CreateResultInput struct {
	Name         *string   `json:"name"`
	Theta1Init   *float64  `json:"theta1_init"`
	Theta2Init   *float64  `json:"theta2_init"`
	Theta3Init   *float64  `json:"theta3_init"`
	Theta1Series []float64 `json:"theta1_series"`
	Theta2Series []float64 `json:"theta2_series"`
	Theta3Series []float64 `json:"theta3_series"`
	Time         []float64 `json:"time"`
	X1           []float64 `json:"x1"`
	Y1           []float64 `json:"y1"`
	X2           []float64 `json:"x2"`
	Y2           []float64 `json:"y2"`
	X3           []float64 `json:"x3"`
	Y3           []float64 `json:"y3"`
}

type UpdateResultInput struct {
	Name         *string    `json:"name"`
	Theta1Init   *float64   `json:"theta1_init"`
	Theta2Init   *float64   `json:"theta2_init"`
	Theta3Init   *float64   `json:"theta3_init"`
	Theta1Series *[]float64 `json:"theta1_series"`
	Theta2Series *[]float64 `json:"theta2_series"`
	Theta3Series *[]float64 `json:"theta3_series"`
	Time         *[]float64 `json:"time"`
	X1           *[]float64 `json:"x1"`
	Y1           *[]float64 `json:"y1"`
	X2           *[]float64 `json:"x2"`
	Y2           *[]float64 `json:"y2"`
	X3           *[]float64 `json:"x3"`
	Y3           *[]float64 `json:"y3"`
}

// ResultService is a thin CRUD layer over the result store: existence
// checks, field-by-field merge on update, and the series-length invariant.
// No cross-entity rules live here.
type ResultService interface {
	CreateResult(ctx context.Context, input CreateResultInput) (*types.Result, error)
	GetResults(ctx context.Context, params repos.ListParams) ([]*types.Result, error)
	GetResult(ctx context.Context, resultID uuid.UUID) (*types.Result, error)
	UpdateResult(ctx context.Context, resultID uuid.UUID, patch UpdateResultInput) (*types.Result, error)
	DeleteResult(ctx context.Context, resultID uuid.UUID) (*types.Result, error)
}

type resultService struct {
	db         *gorm.DB
	log        *logger.Logger
	resultRepo repos.ResultRepo
	cache      ResultCache
}

func NewResultService(db *gorm.DB, log *logger.Logger, resultRepo repos.ResultRepo, cache ResultCache) ResultService {
	serviceLog := log.With("service", "ResultService")
	return &resultService{
		db:         db,
		log:        serviceLog,
		resultRepo: resultRepo,
		cache:      cache,
	}
}

func (rs *resultService) CreateResult(ctx context.Context, input CreateResultInput) (*types.Result, error) {
	if input.Theta1Init == nil || input.Theta2Init == nil || input.Theta3Init == nil {
		return nil, apierr.BadRequest("missing_init_angles", errors.New("theta1_init, theta2_init and theta3_init are required"))
	}

	name := defaultResultName
	if input.Name != nil && *input.Name != "" {
		name = *input.Name
	}

	now := time.Now().UTC()
	result := &types.Result{
		Name:         name,
		Theta1Init:   *input.Theta1Init,
		Theta2Init:   *input.Theta2Init,
		Theta3Init:   *input.Theta3Init,
		Theta1Series: datatypes.NewJSONSlice(input.Theta1Series),
		Theta2Series: datatypes.NewJSONSlice(input.Theta2Series),
		Theta3Series: datatypes.NewJSONSlice(input.Theta3Series),
		Time:         datatypes.NewJSONSlice(input.Time),
		X1:           datatypes.NewJSONSlice(input.X1),
		Y1:           datatypes.NewJSONSlice(input.Y1),
		X2:           datatypes.NewJSONSlice(input.X2),
		Y2:           datatypes.NewJSONSlice(input.Y2),
		X3:           datatypes.NewJSONSlice(input.X3),
		Y3:           datatypes.NewJSONSlice(input.Y3),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := result.ValidateSeriesLengths(); err != nil {
		return nil, apierr.Conflict("series_length_mismatch", err)
	}

	created, err := rs.resultRepo.Create(ctx, nil, result)
	if err != nil {
		rs.log.Error("CreateResult failed", "error", err)
		return nil, apierr.Conflict("result_create_failed", err)
	}

	rs.log.Info("Result created", "result_id", created.ID, "name", created.Name)
	return created, nil
}

func (rs *resultService) GetResults(ctx context.Context, params repos.ListParams) ([]*types.Result, error) {
	results, err := rs.resultRepo.List(ctx, nil, params)
	if err != nil {
		rs.log.Error("GetResults failed", "error", err)
		return nil, apierr.BadGateway("result_list_failed", err)
	}
	return results, nil
}

func (rs *resultService) GetResult(ctx context.Context, resultID uuid.UUID) (*types.Result, error) {
	if rs.cache != nil {
		if cached, ok := rs.cache.Get(ctx, resultID); ok {
			return cached, nil
		}
	}

	result, err := rs.resultRepo.GetByID(ctx, nil, resultID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("result_not_found", fmt.Errorf("result %q not found", resultID))
		}
		rs.log.Error("GetResult failed", "result_id", resultID, "error", err)
		return nil, apierr.BadGateway("result_lookup_failed", err)
	}

	if rs.cache != nil {
		rs.cache.Set(ctx, result)
	}
	return result, nil
}

// UpdateResult merges the patch field by field: absent fields are preserved,
// present fields overwrite. The merged record must still satisfy the
// series-length invariant before anything is written.
func (rs *resultService) UpdateResult(ctx context.Context, resultID uuid.UUID, patch UpdateResultInput) (*types.Result, error) {
	existing, err := rs.resultRepo.GetByID(ctx, nil, resultID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("result_not_found", fmt.Errorf("result %q not found", resultID))
		}
		return nil, apierr.BadGateway("result_lookup_failed", err)
	}

	merged := *existing
	fields := map[string]interface{}{
		"updated_at": time.Now().UTC(),
	}
	if patch.Name != nil {
		merged.Name = *patch.Name
		fields["name"] = *patch.Name
	}
	if patch.Theta1Init != nil {
		merged.Theta1Init = *patch.Theta1Init
		fields["theta1_init"] = *patch.Theta1Init
	}
	if patch.Theta2Init != nil {
		merged.Theta2Init = *patch.Theta2Init
		fields["theta2_init"] = *patch.Theta2Init
	}
	if patch.Theta3Init != nil {
		merged.Theta3Init = *patch.Theta3Init
		fields["theta3_init"] = *patch.Theta3Init
	}
	seriesPatches := []struct {
		column string
		value  *[]float64
		target *datatypes.JSONSlice[float64]
	}{
		{"theta1_series", patch.Theta1Series, &merged.Theta1Series},
		{"theta2_series", patch.Theta2Series, &merged.Theta2Series},
		{"theta3_series", patch.Theta3Series, &merged.Theta3Series},
		{"time", patch.Time, &merged.Time},
		{"x1", patch.X1, &merged.X1},
		{"y1", patch.Y1, &merged.Y1},
		{"x2", patch.X2, &merged.X2},
		{"y2", patch.Y2, &merged.Y2},
		{"x3", patch.X3, &merged.X3},
		{"y3", patch.Y3, &merged.Y3},
	}
	for _, sp := range seriesPatches {
		if sp.value == nil {
			continue
		}
		*sp.target = datatypes.NewJSONSlice(*sp.value)
		fields[sp.column] = datatypes.NewJSONSlice(*sp.value)
	}

	if err := merged.ValidateSeriesLengths(); err != nil {
		return nil, apierr.Conflict("series_length_mismatch", err)
	}

	if err := rs.resultRepo.UpdateFields(ctx, nil, resultID, fields); err != nil {
		rs.log.Error("UpdateResult failed", "result_id", resultID, "error", err)
		return nil, apierr.BadGateway("result_update_failed", err)
	}

	if rs.cache != nil {
		rs.cache.Invalidate(ctx, resultID)
	}

	reloaded, err := rs.resultRepo.GetByID(ctx, nil, resultID)
	if err != nil {
		return nil, apierr.BadGateway("result_lookup_failed", err)
	}
	rs.log.Info("Result updated", "result_id", resultID)
	return reloaded, nil
}

func (rs *resultService) DeleteResult(ctx context.Context, resultID uuid.UUID) (*types.Result, error) {
	existing, err := rs.resultRepo.GetByID(ctx, nil, resultID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("result_not_found", fmt.Errorf("result %q not found", resultID))
		}
		return nil, apierr.BadGateway("result_lookup_failed", err)
	}

	if err := rs.resultRepo.Delete(ctx, nil, resultID); err != nil {
		rs.log.Error("DeleteResult failed", "result_id", resultID, "error", err)
		return nil, apierr.BadGateway("result_delete_failed", err)
	}

	if rs.cache != nil {
		rs.cache.Invalidate(ctx, resultID)
	}

	rs.log.Info("Result deleted", "result_id", resultID)
	return existing, nil
}
