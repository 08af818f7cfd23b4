package repos

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/pendulab/pendulum-backend/internal/logger"
	"github.com/pendulab/pendulum-backend/internal/types"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&types.User{}, &types.Result{}, &types.Order{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return log
}

func seedResult(t *testing.T, repo ResultRepo, name string) *types.Result {
	t.Helper()
	created, err := repo.Create(context.Background(), nil, &types.Result{
		Name:      name,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed result %q: %v", name, err)
	}
	return created
}

func seedOrder(t *testing.T, repo OrderRepo, userID int64) *types.Order {
	t.Helper()
	now := time.Now().UTC()
	created, err := repo.Create(context.Background(), nil, &types.Order{
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("seed order: %v", err)
	}
	return created
}

func seedUser(t *testing.T, db *gorm.DB) *types.User {
	t.Helper()
	user := &types.User{Email: fmt.Sprintf("%s@example.com", strings.ReplaceAll(t.Name(), "/", "_")), Name: "Test User"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func linkedIDs(t *testing.T, repo OrderRepo, orderID int64) map[uuid.UUID]bool {
	t.Helper()
	order, err := repo.GetByID(context.Background(), nil, orderID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	ids := make(map[uuid.UUID]bool, len(order.Results))
	for _, r := range order.Results {
		ids[r.ID] = true
	}
	return ids
}

func TestOrderRepoAppendResultsIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	log := testLogger(t)
	orderRepo := NewOrderRepo(db, log)
	resultRepo := NewResultRepo(db, log)

	user := seedUser(t, db)
	r1 := seedResult(t, resultRepo, "run-1")
	order := seedOrder(t, orderRepo, user.ID)

	ctx := context.Background()
	if err := orderRepo.AppendResults(ctx, nil, order, []*types.Result{r1}); err != nil {
		t.Fatalf("first append: %v", err)
	}
	if err := orderRepo.AppendResults(ctx, nil, order, []*types.Result{r1}); err != nil {
		t.Fatalf("second append: %v", err)
	}

	var linkCount int64
	if err := db.Table("order_result").Where("order_id = ?", order.ID).Count(&linkCount).Error; err != nil {
		t.Fatalf("count links: %v", err)
	}
	if linkCount != 1 {
		t.Fatalf("link rows: want=1 got=%d", linkCount)
	}
}

func TestOrderRepoAppendResultsKeepsExistingLinks(t *testing.T) {
	db := openTestDB(t)
	log := testLogger(t)
	orderRepo := NewOrderRepo(db, log)
	resultRepo := NewResultRepo(db, log)

	user := seedUser(t, db)
	r1 := seedResult(t, resultRepo, "run-1")
	r2 := seedResult(t, resultRepo, "run-2")
	order := seedOrder(t, orderRepo, user.ID)

	ctx := context.Background()
	if err := orderRepo.AppendResults(ctx, nil, order, []*types.Result{r1}); err != nil {
		t.Fatalf("append r1: %v", err)
	}

	// A later append of a different result must not drop the first link.
	reloaded, err := orderRepo.GetByID(ctx, nil, order.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if err := orderRepo.AppendResults(ctx, nil, reloaded, []*types.Result{r2}); err != nil {
		t.Fatalf("append r2: %v", err)
	}

	ids := linkedIDs(t, orderRepo, order.ID)
	if len(ids) != 2 || !ids[r1.ID] || !ids[r2.ID] {
		t.Fatalf("link set: want={%s,%s} got=%v", r1.ID, r2.ID, ids)
	}
}

func TestOrderRepoDeleteRemovesLinksButNotResults(t *testing.T) {
	db := openTestDB(t)
	log := testLogger(t)
	orderRepo := NewOrderRepo(db, log)
	resultRepo := NewResultRepo(db, log)

	user := seedUser(t, db)
	r1 := seedResult(t, resultRepo, "run-1")
	order := seedOrder(t, orderRepo, user.ID)

	ctx := context.Background()
	if err := orderRepo.AppendResults(ctx, nil, order, []*types.Result{r1}); err != nil {
		t.Fatalf("append: %v", err)
	}

	hydrated, err := orderRepo.GetByID(ctx, nil, order.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if err := orderRepo.Delete(ctx, nil, hydrated); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := orderRepo.GetByID(ctx, nil, order.ID); err != gorm.ErrRecordNotFound {
		t.Fatalf("order lookup after delete: want=ErrRecordNotFound got=%v", err)
	}

	var linkCount int64
	if err := db.Table("order_result").Where("order_id = ?", order.ID).Count(&linkCount).Error; err != nil {
		t.Fatalf("count links: %v", err)
	}
	if linkCount != 0 {
		t.Fatalf("link rows after delete: want=0 got=%d", linkCount)
	}

	survivor, err := resultRepo.GetByID(ctx, nil, r1.ID)
	if err != nil {
		t.Fatalf("result should survive order delete: %v", err)
	}
	if survivor.ID != r1.ID {
		t.Fatalf("survivor id: want=%s got=%s", r1.ID, survivor.ID)
	}
}

func TestOrderRepoListAppliesParams(t *testing.T) {
	db := openTestDB(t)
	log := testLogger(t)
	orderRepo := NewOrderRepo(db, log)

	user := seedUser(t, db)
	for i := 0; i < 5; i++ {
		seedOrder(t, orderRepo, user.ID)
	}

	orders, err := orderRepo.List(context.Background(), nil, ListParams{Skip: 1, Limit: 2, Sort: "-id"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("page size: want=2 got=%d", len(orders))
	}
	if orders[0].ID < orders[1].ID {
		t.Fatalf("sort: want descending ids, got %d then %d", orders[0].ID, orders[1].ID)
	}
}

func TestOrderRepoUpdateFieldsUnknownID(t *testing.T) {
	db := openTestDB(t)
	orderRepo := NewOrderRepo(db, testLogger(t))

	err := orderRepo.UpdateFields(context.Background(), nil, 42, map[string]interface{}{"user_id": int64(1)})
	if err != gorm.ErrRecordNotFound {
		t.Fatalf("want=ErrRecordNotFound got=%v", err)
	}
}
