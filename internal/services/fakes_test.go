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

func testLogger(t interface{ Fatalf(string, ...any) }) *logger.Logger {
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return log
}

type fakeLearnerRepo struct {
	ensured []*types.Learner
}

func (f *fakeLearnerRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Learner, error) {
	for _, l := range f.ensured {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, nil
}

func (f *fakeLearnerRepo) EnsureExists(ctx context.Context, tx *gorm.DB, row *types.Learner) error {
	f.ensured = append(f.ensured, row)
	return nil
}

type upsertCall struct {
	componentID uuid.UUID
	mastery     float64
}

type fakeMasteryRepo struct {
	states  map[uuid.UUID]float64 // componentID -> mastery for the test learner
	average float64
	peers   []repos.LearnerAverage
	upserts []upsertCall
	inits   [][]uuid.UUID
}

func (f *fakeMasteryRepo) Get(ctx context.Context, tx *gorm.DB, learnerID, componentID uuid.UUID) (*types.MasteryState, error) {
	m, ok := f.states[componentID]
	if !ok {
		return nil, nil
	}
	return &types.MasteryState{ID: uuid.New(), LearnerID: learnerID, ComponentID: componentID, Mastery: m}, nil
}

func (f *fakeMasteryRepo) ListByLearner(ctx context.Context, tx *gorm.DB, learnerID uuid.UUID) ([]*types.MasteryState, error) {
	out := make([]*types.MasteryState, 0, len(f.states))
	for id, m := range f.states {
		out = append(out, &types.MasteryState{LearnerID: learnerID, ComponentID: id, Mastery: m})
	}
	return out, nil
}

func (f *fakeMasteryRepo) Upsert(ctx context.Context, tx *gorm.DB, learnerID, componentID uuid.UUID, mastery float64, updatedAt time.Time) error {
	f.upserts = append(f.upserts, upsertCall{componentID: componentID, mastery: mastery})
	if f.states == nil {
		f.states = map[uuid.UUID]float64{}
	}
	f.states[componentID] = mastery
	return nil
}

func (f *fakeMasteryRepo) InitForLearner(ctx context.Context, tx *gorm.DB, learnerID uuid.UUID, componentIDs []uuid.UUID) error {
	f.inits = append(f.inits, componentIDs)
	return nil
}

func (f *fakeMasteryRepo) AverageForLearner(ctx context.Context, tx *gorm.DB, learnerID uuid.UUID) (float64, error) {
	return f.average, nil
}

func (f *fakeMasteryRepo) ClosestAverages(ctx context.Context, tx *gorm.DB, excludeLearnerID uuid.UUID, target float64, limit int) ([]repos.LearnerAverage, error) {
	return f.peers, nil
}

type fakeComponentRepo struct {
	components []*types.KnowledgeComponent
}

func (f *fakeComponentRepo) byID(id uuid.UUID) *types.KnowledgeComponent {
	for _, kc := range f.components {
		if kc.ID == id {
			return kc
		}
	}
	return nil
}

func (f *fakeComponentRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.KnowledgeComponent, error) {
	return f.byID(id), nil
}

func (f *fakeComponentRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.KnowledgeComponent, error) {
	var out []*types.KnowledgeComponent
	for _, id := range ids {
		if kc := f.byID(id); kc != nil {
			out = append(out, kc)
		}
	}
	return out, nil
}

func (f *fakeComponentRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*types.KnowledgeComponent, error) {
	return f.components, nil
}

type fakeContentRepo struct {
	items       map[uuid.UUID]*types.ContentItem
	maps        map[uuid.UUID][]*types.ContentComponentMap // contentID -> mappings
	easiest     map[uuid.UUID][]*types.ContentItem         // componentID -> items
	similar     map[uuid.UUID][]*types.ContentItem         // seed contentID -> items
	alternative *types.ContentItem
	prereqs     []*types.ContentItem
}

func (f *fakeContentRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.ContentItem, error) {
	return f.items[id], nil
}

func (f *fakeContentRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.ContentItem, error) {
	var out []*types.ContentItem
	for _, id := range ids {
		if item := f.items[id]; item != nil {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeContentRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*types.ContentItem, error) {
	out := make([]*types.ContentItem, 0, len(f.items))
	for _, item := range f.items {
		out = append(out, item)
	}
	return out, nil
}

func (f *fakeContentRepo) ComponentMaps(ctx context.Context, tx *gorm.DB, contentID uuid.UUID) ([]*types.ContentComponentMap, error) {
	return f.maps[contentID], nil
}

func (f *fakeContentRepo) EasiestByComponent(ctx context.Context, tx *gorm.DB, componentID uuid.UUID, maxDifficulty, limit int) ([]*types.ContentItem, error) {
	items := f.easiest[componentID]
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (f *fakeContentRepo) SimilarByTags(ctx context.Context, tx *gorm.DB, tags []string, excludeID uuid.UUID, limit int) ([]*types.ContentItem, error) {
	items := f.similar[excludeID]
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (f *fakeContentRepo) AlternativeForComponents(ctx context.Context, tx *gorm.DB, excludeContentID uuid.UUID, componentIDs []uuid.UUID) (*types.ContentItem, error) {
	return f.alternative, nil
}

func (f *fakeContentRepo) Prerequisites(ctx context.Context, tx *gorm.DB, contentID uuid.UUID) ([]*types.ContentItem, error) {
	return f.prereqs, nil
}

type fakeItemRepo struct {
	items   map[uuid.UUID]*types.AssessmentItem
	nearest map[uuid.UUID][]*types.AssessmentItem // componentID -> items
}

func (f *fakeItemRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.AssessmentItem, error) {
	return f.items[id], nil
}

func (f *fakeItemRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.AssessmentItem, error) {
	var out []*types.AssessmentItem
	for _, id := range ids {
		if item := f.items[id]; item != nil {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeItemRepo) NearestByDifficulty(ctx context.Context, tx *gorm.DB, componentID uuid.UUID, target float64, limit int) ([]*types.AssessmentItem, error) {
	items := f.nearest[componentID]
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

type fakeResponseRepo struct {
	created  []*types.ResponseRecord
	accuracy []repos.ComponentAccuracy
	outcomes []bool
	total    int
	correct  int
}

func (f *fakeResponseRepo) CreateBatch(ctx context.Context, tx *gorm.DB, rows []*types.ResponseRecord) error {
	f.created = append(f.created, rows...)
	return nil
}

func (f *fakeResponseRepo) AccuracyByComponent(ctx context.Context, tx *gorm.DB, learnerID uuid.UUID) ([]repos.ComponentAccuracy, error) {
	return f.accuracy, nil
}

func (f *fakeResponseRepo) RecentOutcomes(ctx context.Context, tx *gorm.DB, learnerID uuid.UUID, since time.Time) ([]bool, error) {
	return f.outcomes, nil
}

func (f *fakeResponseRepo) OverallCounts(ctx context.Context, tx *gorm.DB, learnerID uuid.UUID) (int, int, error) {
	return f.total, f.correct, nil
}

type fakePathRepo struct {
	defaultPath *types.LearningPath
	active      *types.PathPosition
	forContent  *types.PathPosition
	itemAt      map[int]*types.LearningPathItem
	nextAfter   *types.LearningPathItem
	count       int
	advanced    []uuid.UUID
	completed   []uuid.UUID
	positions   []*types.PathPosition
}

func (f *fakePathRepo) DefaultPath(ctx context.Context, tx *gorm.DB) (*types.LearningPath, error) {
	return f.defaultPath, nil
}

func (f *fakePathRepo) ActivePosition(ctx context.Context, tx *gorm.DB, learnerID uuid.UUID) (*types.PathPosition, error) {
	return f.active, nil
}

func (f *fakePathRepo) PositionForContent(ctx context.Context, tx *gorm.DB, learnerID, contentID uuid.UUID) (*types.PathPosition, error) {
	return f.forContent, nil
}

func (f *fakePathRepo) ItemAt(ctx context.Context, tx *gorm.DB, pathID uuid.UUID, sequenceOrder int) (*types.LearningPathItem, error) {
	return f.itemAt[sequenceOrder], nil
}

func (f *fakePathRepo) NextItemAfter(ctx context.Context, tx *gorm.DB, pathID uuid.UUID, sequenceOrder int) (*types.LearningPathItem, error) {
	return f.nextAfter, nil
}

func (f *fakePathRepo) CountItems(ctx context.Context, tx *gorm.DB, pathID uuid.UUID) (int, error) {
	return f.count, nil
}

func (f *fakePathRepo) CreatePosition(ctx context.Context, tx *gorm.DB, row *types.PathPosition) error {
	f.positions = append(f.positions, row)
	return nil
}

func (f *fakePathRepo) Advance(ctx context.Context, tx *gorm.DB, positionID uuid.UUID) error {
	f.advanced = append(f.advanced, positionID)
	return nil
}

func (f *fakePathRepo) Complete(ctx context.Context, tx *gorm.DB, positionID uuid.UUID, at time.Time) error {
	f.completed = append(f.completed, positionID)
	return nil
}

type fakeInteractionRepo struct {
	created        []*types.InteractionLog
	recentContent  []uuid.UUID
	positiveUnseen map[uuid.UUID][]uuid.UUID // source learner -> content ids
	since          []*types.InteractionLog
	activity       []*types.InteractionLog
}

func (f *fakeInteractionRepo) Create(ctx context.Context, tx *gorm.DB, row *types.InteractionLog) error {
	f.created = append(f.created, row)
	return nil
}

func (f *fakeInteractionRepo) RecentContentIDs(ctx context.Context, tx *gorm.DB, learnerID uuid.UUID, limit int) ([]uuid.UUID, error) {
	return f.recentContent, nil
}

func (f *fakeInteractionRepo) PositiveUnseenContentIDs(ctx context.Context, tx *gorm.DB, sourceLearnerID, targetLearnerID uuid.UUID, limit int) ([]uuid.UUID, error) {
	return f.positiveUnseen[sourceLearnerID], nil
}

func (f *fakeInteractionRepo) ListSince(ctx context.Context, tx *gorm.DB, learnerID uuid.UUID, since time.Time) ([]*types.InteractionLog, error) {
	return f.since, nil
}

func (f *fakeInteractionRepo) RecentActivity(ctx context.Context, tx *gorm.DB, learnerID uuid.UUID, limit int) ([]*types.InteractionLog, error) {
	return f.activity, nil
}

type fakeFailureRepo struct {
	rows    map[uuid.UUID]*types.AssessmentFailure // contentID -> row for the test learner
	repeats []uuid.UUID
	marked  []uuid.UUID
}

func (f *fakeFailureRepo) Get(ctx context.Context, tx *gorm.DB, learnerID, contentID uuid.UUID) (*types.AssessmentFailure, error) {
	return f.rows[contentID], nil
}

func (f *fakeFailureRepo) Create(ctx context.Context, tx *gorm.DB, row *types.AssessmentFailure) error {
	if f.rows == nil {
		f.rows = map[uuid.UUID]*types.AssessmentFailure{}
	}
	f.rows[row.ContentID] = row
	return nil
}

func (f *fakeFailureRepo) RecordRepeat(ctx context.Context, tx *gorm.DB, id uuid.UUID, score float64, at time.Time) error {
	f.repeats = append(f.repeats, id)
	for _, row := range f.rows {
		if row.ID == id {
			row.FailureCount++
			row.LastScore = score
			row.LastAttemptAt = at
			row.AdaptationProvided = false
		}
	}
	return nil
}

func (f *fakeFailureRepo) MarkAdaptationProvided(ctx context.Context, tx *gorm.DB, learnerID, contentID uuid.UUID) error {
	f.marked = append(f.marked, contentID)
	if row := f.rows[contentID]; row != nil {
		row.AdaptationProvided = true
	}
	return nil
}

type fakeAdaptedRepo struct {
	created []*types.AdaptedContent
	latest  *types.AdaptedContent
	exists  bool
}

func (f *fakeAdaptedRepo) Create(ctx context.Context, tx *gorm.DB, row *types.AdaptedContent) error {
	f.created = append(f.created, row)
	return nil
}

func (f *fakeAdaptedRepo) Latest(ctx context.Context, tx *gorm.DB, learnerID, originalContentID uuid.UUID) (*types.AdaptedContent, error) {
	return f.latest, nil
}

func (f *fakeAdaptedRepo) ExistsFor(ctx context.Context, tx *gorm.DB, learnerID, originalContentID uuid.UUID) (bool, error) {
	return f.exists, nil
}

type fakeProgressService struct {
	advance *PathAdvance
	report  *ProgressReport
	applied []uuid.UUID
}

func (f *fakeProgressService) ApplyOutcome(ctx context.Context, learnerID, contentID uuid.UUID, masteryAchieved bool) (*PathAdvance, error) {
	f.applied = append(f.applied, contentID)
	if f.advance == nil {
		return &PathAdvance{}, nil
	}
	return f.advance, nil
}

func (f *fakeProgressService) Report(ctx context.Context, learnerID uuid.UUID) (*ProgressReport, error) {
	return f.report, nil
}

type fakeAdvisor struct {
	recs []Recommendation
	err  error
}

func (f *fakeAdvisor) Recommend(ctx context.Context, learnerID uuid.UUID, limit int) ([]Recommendation, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.recs) > limit {
		return f.recs[:limit], nil
	}
	return f.recs, nil
}

func (f *fakeAdvisor) RecommendForGaps(ctx context.Context, learnerID uuid.UUID, limit int) ([]Recommendation, error) {
	return f.Recommend(ctx, learnerID, limit)
}

type fakeCache struct {
	stored map[uuid.UUID][]Recommendation
	hits   int
}

func (f *fakeCache) Get(ctx context.Context, learnerID uuid.UUID) ([]Recommendation, bool) {
	recs, ok := f.stored[learnerID]
	if ok {
		f.hits++
	}
	return recs, ok
}

func (f *fakeCache) Set(ctx context.Context, learnerID uuid.UUID, recs []Recommendation) {
	if f.stored == nil {
		f.stored = map[uuid.UUID][]Recommendation{}
	}
	f.stored[learnerID] = recs
}
