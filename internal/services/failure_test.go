package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/types"
)

func TestRecordFailureStreak(t *testing.T) {
	learnerID := uuid.New()
	contentID := uuid.New()
	failureRepo := &fakeFailureRepo{}
	svc := NewFailureService(failureRepo, &fakeAdaptedRepo{}, testLogger(t))
	ctx := context.Background()

	if err := svc.RecordFailure(ctx, nil, learnerID, contentID, 0.4); err != nil {
		t.Fatalf("RecordFailure: %v", err)
	}
	row := failureRepo.rows[contentID]
	if row == nil || row.FailureCount != 1 {
		t.Fatalf("first failure should create a streak of 1, got %+v", row)
	}
	if row.LastScore != 0.4 {
		t.Fatalf("last score = %v, want 0.4", row.LastScore)
	}

	// Pretend an adaptation was already served, then fail again.
	row.AdaptationProvided = true
	if err := svc.RecordFailure(ctx, nil, learnerID, contentID, 0.2); err != nil {
		t.Fatalf("RecordFailure: %v", err)
	}
	if row.FailureCount != 2 {
		t.Fatalf("repeat failure should extend the streak, got %d", row.FailureCount)
	}
	if row.AdaptationProvided {
		t.Fatalf("repeat failure must reset adaptation_provided")
	}
	if row.LastScore != 0.2 {
		t.Fatalf("repeat failure should refresh last score, got %v", row.LastScore)
	}
}

func TestNeedsAdaptation(t *testing.T) {
	learnerID := uuid.New()
	contentID := uuid.New()
	ctx := context.Background()

	cases := []struct {
		name    string
		failure *types.AssessmentFailure
		adapted bool
		want    bool
	}{
		{name: "no history", failure: nil, adapted: false, want: false},
		{name: "unserviced failure", failure: &types.AssessmentFailure{FailureCount: 1}, want: true},
		{name: "failure already serviced", failure: &types.AssessmentFailure{FailureCount: 2, AdaptationProvided: true}, want: false},
		{name: "adaptation on record wins regardless", failure: nil, adapted: true, want: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			failureRepo := &fakeFailureRepo{}
			if tc.failure != nil {
				tc.failure.LearnerID = learnerID
				tc.failure.ContentID = contentID
				failureRepo.rows = map[uuid.UUID]*types.AssessmentFailure{contentID: tc.failure}
			}
			svc := NewFailureService(failureRepo, &fakeAdaptedRepo{exists: tc.adapted}, testLogger(t))
			got, err := svc.NeedsAdaptation(ctx, learnerID, contentID)
			if err != nil {
				t.Fatalf("NeedsAdaptation: %v", err)
			}
			if got != tc.want {
				t.Fatalf("NeedsAdaptation = %v, want %v", got, tc.want)
			}
		})
	}
}
