package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pendulab/pendulum-backend/internal/repos"
	"github.com/pendulab/pendulum-backend/internal/types"
)

type fakeResultRepo struct {
	results          map[uuid.UUID]*types.Result
	createCalls      int
	lastUpdateFields map[string]interface{}
}

func newFakeResultRepo(results ...*types.Result) *fakeResultRepo {
	repo := &fakeResultRepo{results: make(map[uuid.UUID]*types.Result)}
	for _, r := range results {
		repo.results[r.ID] = r
	}
	return repo
}

func (f *fakeResultRepo) Create(ctx context.Context, tx *gorm.DB, result *types.Result) (*types.Result, error) {
	if result.ID == uuid.Nil {
		result.ID = uuid.New()
	}
	f.results[result.ID] = result
	f.createCalls++
	return result, nil
}

func (f *fakeResultRepo) GetByID(ctx context.Context, tx *gorm.DB, resultID uuid.UUID) (*types.Result, error) {
	r, ok := f.results[resultID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r, nil
}

func (f *fakeResultRepo) GetByIDs(ctx context.Context, tx *gorm.DB, resultIDs []uuid.UUID) ([]*types.Result, error) {
	var found []*types.Result
	for _, id := range resultIDs {
		if r, ok := f.results[id]; ok {
			found = append(found, r)
		}
	}
	return found, nil
}

func (f *fakeResultRepo) List(ctx context.Context, tx *gorm.DB, params repos.ListParams) ([]*types.Result, error) {
	var all []*types.Result
	for _, r := range f.results {
		all = append(all, r)
	}
	return all, nil
}

func (f *fakeResultRepo) UpdateFields(ctx context.Context, tx *gorm.DB, resultID uuid.UUID, fields map[string]interface{}) error {
	if _, ok := f.results[resultID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.lastUpdateFields = fields
	return nil
}

func (f *fakeResultRepo) Delete(ctx context.Context, tx *gorm.DB, resultID uuid.UUID) error {
	if _, ok := f.results[resultID]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.results, resultID)
	return nil
}

type fakeOrderRepo struct {
	orders           map[int64]*types.Order
	nextID           int64
	createCalls      int
	appendCalls      int
	lastUpdateFields map[string]interface{}
}

func newFakeOrderRepo(orders ...*types.Order) *fakeOrderRepo {
	repo := &fakeOrderRepo{orders: make(map[int64]*types.Order)}
	for _, o := range orders {
		repo.orders[o.ID] = o
		if o.ID > repo.nextID {
			repo.nextID = o.ID
		}
	}
	return repo
}

func (f *fakeOrderRepo) Create(ctx context.Context, tx *gorm.DB, order *types.Order) (*types.Order, error) {
	f.nextID++
	order.ID = f.nextID
	stored := *order
	stored.Results = nil
	f.orders[order.ID] = &stored
	f.createCalls++
	return order, nil
}

func (f *fakeOrderRepo) AppendResults(ctx context.Context, tx *gorm.DB, order *types.Order, results []*types.Result) error {
	stored, ok := f.orders[order.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	linked := make(map[uuid.UUID]struct{}, len(stored.Results))
	for _, r := range stored.Results {
		linked[r.ID] = struct{}{}
	}
	for _, r := range results {
		if _, ok := linked[r.ID]; ok {
			continue
		}
		stored.Results = append(stored.Results, r)
		linked[r.ID] = struct{}{}
	}
	f.appendCalls++
	return nil
}

func (f *fakeOrderRepo) GetByID(ctx context.Context, tx *gorm.DB, orderID int64) (*types.Order, error) {
	stored, ok := f.orders[orderID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *stored
	copied.Results = append([]*types.Result(nil), stored.Results...)
	return &copied, nil
}

func (f *fakeOrderRepo) List(ctx context.Context, tx *gorm.DB, params repos.ListParams) ([]*types.Order, error) {
	var all []*types.Order
	for _, o := range f.orders {
		all = append(all, o)
	}
	return all, nil
}

func (f *fakeOrderRepo) UpdateFields(ctx context.Context, tx *gorm.DB, orderID int64, fields map[string]interface{}) error {
	stored, ok := f.orders[orderID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v, ok := fields["user_id"].(int64); ok {
		stored.UserID = v
	}
	if v, ok := fields["total"].(float64); ok {
		stored.Total = &v
	}
	f.lastUpdateFields = fields
	return nil
}

func (f *fakeOrderRepo) Delete(ctx context.Context, tx *gorm.DB, order *types.Order) error {
	if _, ok := f.orders[order.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.orders, order.ID)
	return nil
}
