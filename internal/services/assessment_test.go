package services

import (
	"context"
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/types"
)

func TestTargetDifficulty(t *testing.T) {
	cases := []struct {
		mastery float64
		want    float64
	}{
		{0, 1.0},
		{0.29, 1.0},
		{0.3, 1.5},
		{0.5, 1.5},
		{0.69, 1.5},
		{0.7, 2.0},
		{1, 2.0},
	}
	for _, tc := range cases {
		if got := targetDifficulty(tc.mastery); got != tc.want {
			t.Fatalf("targetDifficulty(%v) = %v, want %v", tc.mastery, got, tc.want)
		}
	}
}

func TestGradeResponses(t *testing.T) {
	learnerID := uuid.New()
	comp := uuid.New()
	q1 := &types.AssessmentItem{ID: uuid.New(), ComponentID: comp, CorrectAnswer: "7", Explanation: "count up"}
	q2 := &types.AssessmentItem{ID: uuid.New(), ComponentID: comp, CorrectAnswer: "12"}
	q3 := &types.AssessmentItem{ID: uuid.New(), ComponentID: comp, CorrectAnswer: "9"}
	items := map[uuid.UUID]*types.AssessmentItem{q1.ID: q1, q2.ID: q2, q3.ID: q3}

	responses := []ResponseInput{
		{QuestionID: q1.ID, Answer: "7", ResponseTimeSeconds: 3.5},
		{QuestionID: q2.ID, Answer: "13"},
		{QuestionID: q3.ID, Answer: " 9 "},           // padded answer is not a match
		{QuestionID: uuid.New(), Answer: "whatever"}, // unknown question skipped
	}

	graded, records := gradeResponses(learnerID, items, responses)
	if len(graded) != 3 || len(records) != 3 {
		t.Fatalf("got %d results and %d records, want 3 and 3", len(graded), len(records))
	}
	if !graded[0].IsCorrect || *graded[0].Score != 1.0 {
		t.Fatalf("first response should grade correct with score 1")
	}
	if graded[0].Explanation != "count up" {
		t.Fatalf("explanation not carried through")
	}
	if graded[1].IsCorrect || *graded[1].Score != 0.0 {
		t.Fatalf("second response should grade incorrect with score 0")
	}
	if graded[1].CorrectAnswer != "12" {
		t.Fatalf("correct answer should be revealed after grading")
	}
	if graded[2].IsCorrect {
		t.Fatalf("answers are compared verbatim, %q should not match %q", " 9 ", "9")
	}
	if records[0].LearnerID != learnerID || records[0].ResponseTimeSeconds != 3.5 {
		t.Fatalf("record fields not populated")
	}
}

func TestTotalScoreThreshold(t *testing.T) {
	one := 1.0
	zero := 0.0
	mk := func(scores ...*float64) []QuestionResult {
		out := make([]QuestionResult, len(scores))
		for i, s := range scores {
			out[i] = QuestionResult{Score: s}
		}
		return out
	}

	cases := []struct {
		name     string
		results  []QuestionResult
		want     float64
		achieved bool
	}{
		{name: "four of five misses threshold", results: mk(&one, &one, &one, &one, &zero), want: 0.8, achieved: true},
		{name: "three of five fails", results: mk(&one, &one, &one, &zero, &zero), want: 0.6, achieved: false},
		{name: "empty submission scores zero", results: nil, want: 0, achieved: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			total := totalScore(tc.results)
			if math.Abs(total-tc.want) > 1e-9 {
				t.Fatalf("totalScore = %v, want %v", total, tc.want)
			}
			achieved := len(tc.results) > 0 && total >= DefaultConfig().MasteryThreshold
			if achieved != tc.achieved {
				t.Fatalf("achieved = %v, want %v", achieved, tc.achieved)
			}
		})
	}
}

func TestBuildFeedback(t *testing.T) {
	if fb := buildFeedback(0.8, true); !strings.Contains(fb, "80%") || !strings.Contains(fb, "mastery") {
		t.Fatalf("mastery feedback missing detail: %q", fb)
	}
	if fb := buildFeedback(0.6, false); !strings.Contains(fb, "60%") {
		t.Fatalf("near-miss feedback missing score: %q", fb)
	}
	if fb := buildFeedback(0.2, false); !strings.Contains(fb, "simplified") {
		t.Fatalf("low-score feedback should point at simplified material: %q", fb)
	}
}

func TestSampleItems(t *testing.T) {
	mkPool := func(n int) []*types.AssessmentItem {
		pool := make([]*types.AssessmentItem, n)
		for i := range pool {
			pool[i] = &types.AssessmentItem{ID: uuid.New()}
		}
		return pool
	}

	t.Run("small pool passes through", func(t *testing.T) {
		svc := &assessmentService{rng: rand.New(rand.NewSource(1))}
		pool := mkPool(3)
		got := svc.sampleItems(pool, 5)
		if len(got) != 3 {
			t.Fatalf("len = %d, want 3", len(got))
		}
	})

	t.Run("large pool downsampled to limit, unique, from pool", func(t *testing.T) {
		svc := &assessmentService{rng: rand.New(rand.NewSource(1))}
		pool := mkPool(12)
		inPool := map[uuid.UUID]bool{}
		for _, it := range pool {
			inPool[it.ID] = true
		}
		got := svc.sampleItems(pool, 5)
		if len(got) != 5 {
			t.Fatalf("len = %d, want 5", len(got))
		}
		seen := map[uuid.UUID]bool{}
		for _, it := range got {
			if !inPool[it.ID] {
				t.Fatalf("sampled item not from pool")
			}
			if seen[it.ID] {
				t.Fatalf("duplicate item in sample")
			}
			seen[it.ID] = true
		}
	})

	t.Run("same seed, same sample", func(t *testing.T) {
		pool := mkPool(10)
		a := (&assessmentService{rng: rand.New(rand.NewSource(42))}).sampleItems(pool, 5)
		b := (&assessmentService{rng: rand.New(rand.NewSource(42))}).sampleItems(pool, 5)
		for i := range a {
			if a[i].ID != b[i].ID {
				t.Fatalf("seeded sampling not deterministic at index %d", i)
			}
		}
	})
}

func TestGenerate(t *testing.T) {
	learnerID := uuid.New()
	contentID := uuid.New()
	compWeak := uuid.New()
	compStrong := uuid.New()

	mkItems := func(comp uuid.UUID, n int) []*types.AssessmentItem {
		out := make([]*types.AssessmentItem, n)
		for i := range out {
			out[i] = &types.AssessmentItem{ID: uuid.New(), ComponentID: comp, Prompt: "q", CorrectAnswer: "a"}
		}
		return out
	}

	contentRepo := &fakeContentRepo{
		maps: map[uuid.UUID][]*types.ContentComponentMap{
			contentID: {
				{ContentID: contentID, ComponentID: compWeak, RelevanceWeight: 1},
				{ContentID: contentID, ComponentID: compStrong, RelevanceWeight: 1},
			},
		},
	}
	itemRepo := &fakeItemRepo{
		nearest: map[uuid.UUID][]*types.AssessmentItem{
			compWeak:   mkItems(compWeak, 3),
			compStrong: mkItems(compStrong, 3),
		},
	}
	masteryRepo := &fakeMasteryRepo{states: map[uuid.UUID]float64{compWeak: 0.1, compStrong: 0.9}}

	svc := NewAssessmentService(nil, DefaultConfig(), itemRepo, contentRepo, masteryRepo, &fakeResponseRepo{}, nil, rand.New(rand.NewSource(7)), testLogger(t))

	assessment, err := svc.Generate(context.Background(), learnerID, contentID)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if assessment.ContentID != contentID {
		t.Fatalf("wrong content id")
	}
	if len(assessment.Questions) != DefaultConfig().MaxQuestions {
		t.Fatalf("got %d questions, want %d", len(assessment.Questions), DefaultConfig().MaxQuestions)
	}

	t.Run("unmapped content yields empty set", func(t *testing.T) {
		other := uuid.New()
		assessment, err := svc.Generate(context.Background(), learnerID, other)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if assessment.Questions == nil || len(assessment.Questions) != 0 {
			t.Fatalf("want empty, non-nil question list, got %#v", assessment.Questions)
		}
	})
}
