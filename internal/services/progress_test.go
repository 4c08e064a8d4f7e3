package services

import (
	"context"
	"math"
	"testing"

	"github.com/google/uuid"

	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/types"
)

func newProgressTestService(t *testing.T, paths *fakePathRepo, masteries *fakeMasteryRepo, responses *fakeResponseRepo, interactions *fakeInteractionRepo) ProgressService {
	t.Helper()
	return NewProgressService(nil, DefaultConfig(), paths, masteries, responses, interactions, testLogger(t))
}

func TestApplyOutcomeOffPath(t *testing.T) {
	svc := newProgressTestService(t, &fakePathRepo{}, &fakeMasteryRepo{}, &fakeResponseRepo{}, &fakeInteractionRepo{})
	adv, err := svc.ApplyOutcome(context.Background(), uuid.New(), uuid.New(), true)
	if err != nil {
		t.Fatalf("ApplyOutcome: %v", err)
	}
	if adv.OnPath || adv.Advanced || adv.Completed {
		t.Fatalf("off-path content must be a no-op, got %+v", adv)
	}
}

func TestApplyOutcomeWithoutMastery(t *testing.T) {
	paths := &fakePathRepo{
		forContent: &types.PathPosition{ID: uuid.New(), CurrentPosition: 2},
		count:      4,
	}
	svc := newProgressTestService(t, paths, &fakeMasteryRepo{}, &fakeResponseRepo{}, &fakeInteractionRepo{})
	adv, err := svc.ApplyOutcome(context.Background(), uuid.New(), uuid.New(), false)
	if err != nil {
		t.Fatalf("ApplyOutcome: %v", err)
	}
	if !adv.OnPath || adv.Advanced {
		t.Fatalf("failed assessment must hold the position, got %+v", adv)
	}
	if len(paths.advanced) != 0 {
		t.Fatalf("position should not have been advanced")
	}
}

func TestApplyOutcomeOnCompletedPath(t *testing.T) {
	paths := &fakePathRepo{
		forContent: &types.PathPosition{ID: uuid.New(), CurrentPosition: 3, Completed: true},
	}
	svc := newProgressTestService(t, paths, &fakeMasteryRepo{}, &fakeResponseRepo{}, &fakeInteractionRepo{})
	adv, err := svc.ApplyOutcome(context.Background(), uuid.New(), uuid.New(), true)
	if err != nil {
		t.Fatalf("ApplyOutcome: %v", err)
	}
	if !adv.OnPath || adv.Advanced {
		t.Fatalf("completed path must never advance again, got %+v", adv)
	}
}

func TestReport(t *testing.T) {
	compA, compB := uuid.New(), uuid.New()
	pathID := uuid.New()

	masteries := &fakeMasteryRepo{states: map[uuid.UUID]float64{compA: 0.9, compB: 0.3}}
	paths := &fakePathRepo{
		active: &types.PathPosition{PathID: pathID, CurrentPosition: 2},
		count:  4,
	}
	responses := &fakeResponseRepo{total: 10, correct: 7}
	interactions := &fakeInteractionRepo{activity: []*types.InteractionLog{{Type: types.InteractionComplete}}}

	svc := newProgressTestService(t, paths, masteries, responses, interactions)
	report, err := svc.Report(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Report: %v", err)
	}

	if math.Abs(report.AverageMastery-0.6) > 1e-9 {
		t.Fatalf("average mastery = %v, want 0.6", report.AverageMastery)
	}
	if report.ComponentsMastered != 1 || report.ComponentsTotal != 2 {
		t.Fatalf("mastered %d/%d, want 1/2", report.ComponentsMastered, report.ComponentsTotal)
	}
	if math.Abs(report.PathCompletion-0.5) > 1e-9 {
		t.Fatalf("path completion = %v, want 0.5", report.PathCompletion)
	}
	if math.Abs(report.AssessmentAccuracy-0.7) > 1e-9 {
		t.Fatalf("accuracy = %v, want 0.7", report.AssessmentAccuracy)
	}
	if len(report.RecentActivity) != 1 {
		t.Fatalf("recent activity missing")
	}
}
