package services

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/logger"
	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/repos"
	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/types"
)

// Question is an assessment item as served to the learner. The correct
// answer never leaves the server.
type Question struct {
	ID          uuid.UUID      `json:"id"`
	Prompt      string         `json:"prompt"`
	Type        string         `json:"type"`
	Options     datatypes.JSON `json:"options,omitempty"`
	Difficulty  float64        `json:"difficulty"`
	ComponentID uuid.UUID      `json:"component_id"`
}

// Assessment is a generated question set for one content item.
type Assessment struct {
	ContentID uuid.UUID  `json:"content_id"`
	Questions []Question `json:"questions"`
}

// ResponseInput is one submitted answer.
type ResponseInput struct {
	QuestionID          uuid.UUID `json:"question_id"`
	Answer              string    `json:"answer"`
	ResponseTimeSeconds float64   `json:"response_time_seconds"`
}

// QuestionResult is the graded outcome of one response. Score is 1 or 0
// under strict-equality grading; a nil Score marks a result whose grade was
// produced elsewhere without one, and downstream consumers substitute a
// neutral default.
type QuestionResult struct {
	QuestionID    uuid.UUID `json:"question_id"`
	ComponentID   uuid.UUID `json:"component_id"`
	IsCorrect     bool      `json:"is_correct"`
	Score         *float64  `json:"score,omitempty"`
	CorrectAnswer string    `json:"correct_answer"`
	Explanation   string    `json:"explanation,omitempty"`
}

// EvaluationResult is the graded outcome of one submission.
type EvaluationResult struct {
	ContentID        uuid.UUID        `json:"content_id"`
	Results          []QuestionResult `json:"results"`
	TotalScore       float64          `json:"total_score"`
	MasteryAchieved  bool             `json:"mastery_achieved"`
	NeedsAdaptation  bool             `json:"needs_adaptation"`
	Feedback         string           `json:"feedback"`
	AnsweredQuestion int              `json:"answered_questions"`
}

// AssessmentService generates question sets matched to the learner's current
// mastery and grades submissions. Evaluation persists response records, the
// failure ledger, and nothing else; mastery updates are the caller's next
// step so a storage failure here never leaves a half-graded submission.
type AssessmentService interface {
	Generate(ctx context.Context, learnerID, contentID uuid.UUID) (*Assessment, error)
	Evaluate(ctx context.Context, learnerID, contentID uuid.UUID, responses []ResponseInput) (*EvaluationResult, error)
}

type assessmentService struct {
	db        *gorm.DB
	cfg       Config
	items     repos.AssessmentItemRepo
	content   repos.ContentRepo
	masteries repos.MasteryStateRepo
	responses repos.ResponseRepo
	failures  FailureService
	rng       *rand.Rand
	log       *logger.Logger
}

// NewAssessmentService wires the generator and evaluator. rng drives the
// downsampling of oversized question pools; pass a seeded source to make
// selection reproducible.
func NewAssessmentService(
	db *gorm.DB,
	cfg Config,
	items repos.AssessmentItemRepo,
	content repos.ContentRepo,
	masteries repos.MasteryStateRepo,
	responses repos.ResponseRepo,
	failures FailureService,
	rng *rand.Rand,
	baseLog *logger.Logger,
) AssessmentService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &assessmentService{
		db:        db,
		cfg:       cfg,
		items:     items,
		content:   content,
		masteries: masteries,
		responses: responses,
		failures:  failures,
		rng:       rng,
		log:       baseLog.With("service", "AssessmentService"),
	}
}

// Generate builds a question set for the content: per mapped component, the
// items nearest the difficulty its mastery calls for, pooled and downsampled
// to the question cap. Content mapped to no components yields an empty set,
// not an error.
func (s *assessmentService) Generate(ctx context.Context, learnerID, contentID uuid.UUID) (*Assessment, error) {
	maps, err := s.content.ComponentMaps(ctx, nil, contentID)
	if err != nil {
		return nil, err
	}
	out := &Assessment{ContentID: contentID, Questions: []Question{}}
	if len(maps) == 0 {
		return out, nil
	}

	pool := make([]*types.AssessmentItem, 0, len(maps)*s.cfg.ItemsPerComponent)
	seen := make(map[uuid.UUID]bool)
	for _, m := range maps {
		var mastery float64
		state, err := s.masteries.Get(ctx, nil, learnerID, m.ComponentID)
		if err != nil {
			return nil, err
		}
		if state != nil {
			mastery = state.Mastery
		}
		target := targetDifficulty(mastery)
		picked, err := s.items.NearestByDifficulty(ctx, nil, m.ComponentID, target, s.cfg.ItemsPerComponent)
		if err != nil {
			return nil, err
		}
		for _, it := range picked {
			if seen[it.ID] {
				continue
			}
			seen[it.ID] = true
			pool = append(pool, it)
		}
	}

	pool = s.sampleItems(pool, s.cfg.MaxQuestions)
	for _, it := range pool {
		out.Questions = append(out.Questions, Question{
			ID:          it.ID,
			Prompt:      it.Prompt,
			Type:        it.Type,
			Options:     it.Options,
			Difficulty:  it.Difficulty,
			ComponentID: it.ComponentID,
		})
	}
	return out, nil
}

// Evaluate grades a submission with strict answer equality and persists the
// response records atomically with any failure-ledger update. Responses
// referencing unknown questions are skipped.
func (s *assessmentService) Evaluate(ctx context.Context, learnerID, contentID uuid.UUID, responses []ResponseInput) (*EvaluationResult, error) {
	var result *EvaluationResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ids := make([]uuid.UUID, 0, len(responses))
		for _, r := range responses {
			ids = append(ids, r.QuestionID)
		}
		items, err := s.items.GetByIDs(ctx, tx, ids)
		if err != nil {
			return err
		}
		byID := make(map[uuid.UUID]*types.AssessmentItem, len(items))
		for _, it := range items {
			byID[it.ID] = it
		}

		graded, records := gradeResponses(learnerID, byID, responses)
		if len(records) > 0 {
			if err := s.responses.CreateBatch(ctx, tx, records); err != nil {
				return err
			}
		}

		total := totalScore(graded)
		achieved := len(graded) > 0 && total >= s.cfg.MasteryThreshold
		result = &EvaluationResult{
			ContentID:        contentID,
			Results:          graded,
			TotalScore:       total,
			MasteryAchieved:  achieved,
			NeedsAdaptation:  !achieved,
			Feedback:         buildFeedback(total, achieved),
			AnsweredQuestion: len(graded),
		}
		if achieved {
			return nil
		}
		return s.failures.RecordFailure(ctx, tx, learnerID, contentID, total)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("assessment evaluated",
		"learner_id", learnerID,
		"content_id", contentID,
		"total_score", result.TotalScore,
		"mastery_achieved", result.MasteryAchieved,
	)
	return result, nil
}

// targetDifficulty maps a mastery estimate to the item difficulty an
// assessment should probe at.
func targetDifficulty(mastery float64) float64 {
	switch {
	case mastery < 0.3:
		return 1.0
	case mastery < 0.7:
		return 1.5
	default:
		return 2.0
	}
}

// sampleItems uniformly downsamples the pool to limit, preserving no
// particular order. Pools at or under the limit pass through untouched.
func (s *assessmentService) sampleItems(pool []*types.AssessmentItem, limit int) []*types.AssessmentItem {
	if len(pool) <= limit {
		return pool
	}
	idx := s.rng.Perm(len(pool))[:limit]
	sort.Ints(idx)
	out := make([]*types.AssessmentItem, 0, limit)
	for _, i := range idx {
		out = append(out, pool[i])
	}
	return out
}

// gradeResponses applies strict string equality against each item's stored
// answer, no normalization of any kind. Unknown question ids produce neither
// a result nor a record.
func gradeResponses(learnerID uuid.UUID, items map[uuid.UUID]*types.AssessmentItem, responses []ResponseInput) ([]QuestionResult, []*types.ResponseRecord) {
	graded := make([]QuestionResult, 0, len(responses))
	records := make([]*types.ResponseRecord, 0, len(responses))
	for _, r := range responses {
		item, ok := items[r.QuestionID]
		if !ok {
			continue
		}
		correct := r.Answer == item.CorrectAnswer
		score := 0.0
		if correct {
			score = 1.0
		}
		sc := score
		graded = append(graded, QuestionResult{
			QuestionID:    item.ID,
			ComponentID:   item.ComponentID,
			IsCorrect:     correct,
			Score:         &sc,
			CorrectAnswer: item.CorrectAnswer,
			Explanation:   item.Explanation,
		})
		records = append(records, &types.ResponseRecord{
			ID:                  uuid.New(),
			LearnerID:           learnerID,
			AssessmentItemID:    item.ID,
			SubmittedAnswer:     r.Answer,
			IsCorrect:           correct,
			ResponseTimeSeconds: r.ResponseTimeSeconds,
		})
	}
	return graded, records
}

func totalScore(results []QuestionResult) float64 {
	if len(results) == 0 {
		return 0
	}
	var sum float64
	for _, r := range results {
		if r.Score != nil {
			sum += *r.Score
		}
	}
	return sum / float64(len(results))
}

func buildFeedback(total float64, achieved bool) string {
	pct := total * 100
	if achieved {
		return fmt.Sprintf("Great work! You scored %.0f%% and demonstrated mastery of this material.", pct)
	}
	if total >= 0.5 {
		return fmt.Sprintf("You scored %.0f%%. You're getting there; review the explanations below and try again.", pct)
	}
	return fmt.Sprintf("You scored %.0f%%. This material needs more work; a simplified version will be prepared for you.", pct)
}
