package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/pendulab/pendulum-backend/internal/apierr"
	"github.com/pendulab/pendulum-backend/internal/logger"
	"github.com/pendulab/pendulum-backend/internal/types"
)

func newTestResultService(t *testing.T, repo *fakeResultRepo) ResultService {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return NewResultService(nil, log, repo, nil)
}

func f64(v float64) *float64 { return &v }

func TestCreateResultDefaultsName(t *testing.T) {
	repo := newFakeResultRepo()
	svc := newTestResultService(t, repo)

	created, err := svc.CreateResult(context.Background(), CreateResultInput{
		Theta1Init: f64(0.1), Theta2Init: f64(0.2), Theta3Init: f64(0.3),
	})
	if err != nil {
		t.Fatalf("CreateResult: %v", err)
	}
	if created.Name != "Untitled" {
		t.Fatalf("name: want=%q got=%q", "Untitled", created.Name)
	}
	if created.ID == uuid.Nil {
		t.Fatalf("id not assigned")
	}
}

func TestCreateResultRequiresInitAngles(t *testing.T) {
	svc := newTestResultService(t, newFakeResultRepo())

	_, err := svc.CreateResult(context.Background(), CreateResultInput{Theta1Init: f64(0.1)})
	if status := apierr.StatusOf(err); status != http.StatusBadRequest {
		t.Fatalf("status: want=%d got=%d", http.StatusBadRequest, status)
	}
}

func TestCreateResultSeriesLengthMismatch(t *testing.T) {
	svc := newTestResultService(t, newFakeResultRepo())

	_, err := svc.CreateResult(context.Background(), CreateResultInput{
		Theta1Init: f64(0.1), Theta2Init: f64(0.2), Theta3Init: f64(0.3),
		Time:         []float64{0, 0.1, 0.2},
		Theta1Series: []float64{0.1, 0.2},
	})
	if status := apierr.StatusOf(err); status != http.StatusConflict {
		t.Fatalf("status: want=%d got=%d", http.StatusConflict, status)
	}
}

func TestUpdateResultPreservesAbsentFields(t *testing.T) {
	existing := &types.Result{ID: uuid.New(), Name: "run-1", Theta1Init: 0.5}
	repo := newFakeResultRepo(existing)
	svc := newTestResultService(t, repo)

	name := "renamed"
	_, err := svc.UpdateResult(context.Background(), existing.ID, UpdateResultInput{Name: &name})
	if err != nil {
		t.Fatalf("UpdateResult: %v", err)
	}
	if got := repo.lastUpdateFields["name"]; got != "renamed" {
		t.Fatalf("name field: want=%q got=%v", "renamed", got)
	}
	if _, ok := repo.lastUpdateFields["theta1_init"]; ok {
		t.Fatalf("absent field written: theta1_init")
	}
	if _, ok := repo.lastUpdateFields["updated_at"]; !ok {
		t.Fatalf("updated_at not refreshed")
	}
}

func TestUpdateResultMergedSeriesMustAgree(t *testing.T) {
	existing := &types.Result{
		ID:   uuid.New(),
		Time: datatypes.JSONSlice[float64]{0, 0.1, 0.2},
	}
	svc := newTestResultService(t, newFakeResultRepo(existing))

	patch := []float64{1, 2}
	_, err := svc.UpdateResult(context.Background(), existing.ID, UpdateResultInput{X1: &patch})
	if status := apierr.StatusOf(err); status != http.StatusConflict {
		t.Fatalf("status: want=%d got=%d", http.StatusConflict, status)
	}
}

func TestGetResultNotFound(t *testing.T) {
	svc := newTestResultService(t, newFakeResultRepo())

	_, err := svc.GetResult(context.Background(), uuid.New())
	if status := apierr.StatusOf(err); status != http.StatusNotFound {
		t.Fatalf("status: want=%d got=%d", http.StatusNotFound, status)
	}
}

func TestDeleteResultReturnsRemoved(t *testing.T) {
	existing := &types.Result{ID: uuid.New(), Name: "run-1"}
	repo := newFakeResultRepo(existing)
	svc := newTestResultService(t, repo)

	removed, err := svc.DeleteResult(context.Background(), existing.ID)
	if err != nil {
		t.Fatalf("DeleteResult: %v", err)
	}
	if removed.ID != existing.ID {
		t.Fatalf("removed id: want=%s got=%s", existing.ID, removed.ID)
	}
	if len(repo.results) != 0 {
		t.Fatalf("result not deleted from store")
	}
}
