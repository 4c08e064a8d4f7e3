package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/logger"
	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/repos"
	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/types"
)

// ComponentMastery is one entry of a learner's knowledge state, joined with
// the component it describes.
type ComponentMastery struct {
	ComponentID uuid.UUID `json:"component_id"`
	Name        string    `json:"name"`
	Domain      string    `json:"domain"`
	Mastery     float64   `json:"mastery"`
	LastUpdated time.Time `json:"last_updated"`
}

// MasteryService owns the per-component proficiency estimates. Updates move
// each estimate a damped step toward the evidence from one assessment,
// weighted by how strongly the assessed content exercises the component.
type MasteryService interface {
	InitializeLearner(ctx context.Context, learnerID uuid.UUID) error
	UpdateKnowledgeState(ctx context.Context, learnerID, contentID uuid.UUID, results []QuestionResult) error
	GetKnowledgeState(ctx context.Context, learnerID uuid.UUID) ([]ComponentMastery, error)
	AverageMastery(ctx context.Context, learnerID uuid.UUID) (float64, error)
}

type masteryService struct {
	db         *gorm.DB
	cfg        Config
	learners   repos.LearnerRepo
	masteries  repos.MasteryStateRepo
	components repos.KnowledgeComponentRepo
	content    repos.ContentRepo
	paths      repos.LearningPathRepo
	log        *logger.Logger
}

func NewMasteryService(
	db *gorm.DB,
	cfg Config,
	learners repos.LearnerRepo,
	masteries repos.MasteryStateRepo,
	components repos.KnowledgeComponentRepo,
	content repos.ContentRepo,
	paths repos.LearningPathRepo,
	baseLog *logger.Logger,
) MasteryService {
	return &masteryService{
		db:         db,
		cfg:        cfg,
		learners:   learners,
		masteries:  masteries,
		components: components,
		content:    content,
		paths:      paths,
		log:        baseLog.With("service", "MasteryService"),
	}
}

// InitializeLearner makes sure the learner row exists, seeds a zero mastery
// row for every known component, and places the learner at the start of the
// default path. Safe to call twice: existing rows and positions are left
// alone.
func (s *masteryService) InitializeLearner(ctx context.Context, learnerID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.learners.EnsureExists(ctx, tx, &types.Learner{
			ID:       learnerID,
			Username: learnerID.String(),
		}); err != nil {
			return err
		}
		all, err := s.components.ListAll(ctx, tx)
		if err != nil {
			return err
		}
		ids := make([]uuid.UUID, 0, len(all))
		for _, kc := range all {
			ids = append(ids, kc.ID)
		}
		if err := s.masteries.InitForLearner(ctx, tx, learnerID, ids); err != nil {
			return err
		}
		path, err := s.paths.DefaultPath(ctx, tx)
		if err != nil {
			return err
		}
		if path == nil {
			s.log.Warn("no default learning path to place learner on", "learner_id", learnerID)
			return nil
		}
		pos, err := s.paths.ActivePosition(ctx, tx, learnerID)
		if err != nil {
			return err
		}
		if pos != nil {
			return nil
		}
		return s.paths.CreatePosition(ctx, tx, &types.PathPosition{
			ID:        uuid.New(),
			LearnerID: learnerID,
			PathID:    path.ID,
			StartedAt: time.Now().UTC(),
		})
	})
}

// UpdateKnowledgeState folds one assessment's results into the learner's
// estimates. For each component the content maps to, the per-component mean
// score pulls the estimate by learning_rate * relevance_weight; components
// with no answered questions are untouched.
func (s *masteryService) UpdateKnowledgeState(ctx context.Context, learnerID, contentID uuid.UUID, results []QuestionResult) error {
	maps, err := s.content.ComponentMaps(ctx, nil, contentID)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	for _, m := range maps {
		mean, ok := meanScoreForComponent(results, m.ComponentID, s.cfg.DefaultEvidenceScore)
		if !ok {
			continue
		}
		var current float64
		state, err := s.masteries.Get(ctx, nil, learnerID, m.ComponentID)
		if err != nil {
			return err
		}
		if state != nil {
			current = state.Mastery
		}
		next := nextMastery(current, mean, m.RelevanceWeight, s.cfg.LearningRate)
		if err := s.masteries.Upsert(ctx, nil, learnerID, m.ComponentID, next, now); err != nil {
			return err
		}
		s.log.Debug("mastery updated",
			"learner_id", learnerID,
			"component_id", m.ComponentID,
			"old", current,
			"new", next,
		)
	}
	return nil
}

func (s *masteryService) GetKnowledgeState(ctx context.Context, learnerID uuid.UUID) ([]ComponentMastery, error) {
	states, err := s.masteries.ListByLearner(ctx, nil, learnerID)
	if err != nil {
		return nil, err
	}
	out := make([]ComponentMastery, 0, len(states))
	for _, st := range states {
		entry := ComponentMastery{
			ComponentID: st.ComponentID,
			Mastery:     st.Mastery,
			LastUpdated: st.LastUpdated,
		}
		if st.Component != nil {
			entry.Name = st.Component.Name
			entry.Domain = st.Component.Domain
		}
		out = append(out, entry)
	}
	return out, nil
}

func (s *masteryService) AverageMastery(ctx context.Context, learnerID uuid.UUID) (float64, error) {
	return s.masteries.AverageForLearner(ctx, nil, learnerID)
}

// nextMastery moves the current estimate toward the observed mean score by a
// step damped with the learning rate and the component's relevance weight,
// then clamps into [0, 1].
func nextMastery(current, meanScore, relevanceWeight, learningRate float64) float64 {
	next := current + learningRate*relevanceWeight*(meanScore-current)
	if next < 0 {
		return 0
	}
	if next > 1 {
		return 1
	}
	return next
}

// meanScoreForComponent averages the scores of the results tagged with the
// component. The second return is false when no result touches it.
func meanScoreForComponent(results []QuestionResult, componentID uuid.UUID, defaultScore float64) (float64, bool) {
	var sum float64
	var n int
	for _, r := range results {
		if r.ComponentID != componentID {
			continue
		}
		if r.Score != nil {
			sum += *r.Score
		} else {
			sum += defaultScore
		}
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}
