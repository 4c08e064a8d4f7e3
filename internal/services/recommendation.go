package services

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/logger"
	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/repos"
	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/types"
)

// Recommendation source types, in merge priority order.
const (
	RecNextInPath    = "next_in_path"
	RecRemedial      = "remedial"
	RecSimilar       = "similar_content"
	RecCollaborative = "collaborative"
	RecKnowledgeGap  = "knowledge_gap"
)

// Recommendation is one suggested content item with the source that
// produced it and its relevance score.
type Recommendation struct {
	ContentID      uuid.UUID `json:"content_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Difficulty     int       `json:"difficulty"`
	Tags           []string  `json:"tags"`
	Type           string    `json:"type"`
	RelevanceScore float64   `json:"relevance_score"`
}

// RecommendationAdvisor is an optional higher-quality recommender. An error
// or a thin result set means unavailable; callers fall back to the
// deterministic sources.
type RecommendationAdvisor interface {
	Recommend(ctx context.Context, learnerID uuid.UUID, limit int) ([]Recommendation, error)
}

// GapAdvisor is an optional recommender targeting detected knowledge gaps,
// consulted when a learner just failed an assessment.
type GapAdvisor interface {
	RecommendForGaps(ctx context.Context, learnerID uuid.UUID, limit int) ([]Recommendation, error)
}

// RecommendationCache is an optional read-through cache for merged
// recommendation lists. A nil cache disables caching.
type RecommendationCache interface {
	Get(ctx context.Context, learnerID uuid.UUID) ([]Recommendation, bool)
	Set(ctx context.Context, learnerID uuid.UUID, recs []Recommendation)
}

// RecommendationService merges candidates from the learner's path position,
// weak components, interaction history, and peers with similar mastery, and
// decides the single next content item after an assessment.
type RecommendationService interface {
	Recommend(ctx context.Context, learnerID uuid.UUID) ([]Recommendation, error)
	NextContent(ctx context.Context, learnerID, currentContentID uuid.UUID, result *EvaluationResult) (*Recommendation, error)
}

type recommendationService struct {
	cfg          Config
	content      repos.ContentRepo
	masteries    repos.MasteryStateRepo
	paths        repos.LearningPathRepo
	interactions repos.InteractionRepo
	progress     ProgressService
	advisor      RecommendationAdvisor
	gaps         GapAdvisor
	cache        RecommendationCache
	log          *logger.Logger
}

// NewRecommendationService wires the merger. advisor, gaps, and cache are
// optional; pass nil to run on the deterministic sources alone.
func NewRecommendationService(
	cfg Config,
	content repos.ContentRepo,
	masteries repos.MasteryStateRepo,
	paths repos.LearningPathRepo,
	interactions repos.InteractionRepo,
	progress ProgressService,
	advisor RecommendationAdvisor,
	gaps GapAdvisor,
	cache RecommendationCache,
	baseLog *logger.Logger,
) RecommendationService {
	return &recommendationService{
		cfg:          cfg,
		content:      content,
		masteries:    masteries,
		paths:        paths,
		interactions: interactions,
		progress:     progress,
		advisor:      advisor,
		gaps:         gaps,
		cache:        cache,
		log:          baseLog.With("service", "RecommendationService"),
	}
}

func (s *recommendationService) Recommend(ctx context.Context, learnerID uuid.UUID) ([]Recommendation, error) {
	if s.cache != nil {
		if recs, ok := s.cache.Get(ctx, learnerID); ok {
			return recs, nil
		}
	}
	if s.advisor != nil {
		recs, err := s.advisor.Recommend(ctx, learnerID, s.cfg.MaxRecommendations)
		if err != nil {
			s.log.Warn("advisor unavailable, using deterministic sources", "error", err)
		} else if len(recs) >= 3 {
			recs = mergeRecommendations(s.cfg.MaxRecommendations, recs)
			s.storeCache(ctx, learnerID, recs)
			return recs, nil
		}
	}

	var buckets [][]Recommendation
	next, err := s.nextInPath(ctx, learnerID)
	if err != nil {
		return nil, err
	}
	if next != nil {
		buckets = append(buckets, []Recommendation{*next})
	}
	remedial, err := s.remedialCandidates(ctx, learnerID)
	if err != nil {
		return nil, err
	}
	buckets = append(buckets, remedial)
	similar, err := s.similarCandidates(ctx, learnerID)
	if err != nil {
		return nil, err
	}
	buckets = append(buckets, similar)

	merged := mergeRecommendations(s.cfg.MaxRecommendations, buckets...)
	if len(merged) < s.cfg.MaxRecommendations {
		collab, err := s.collaborativeCandidates(ctx, learnerID)
		if err != nil {
			return nil, err
		}
		merged = mergeRecommendations(s.cfg.MaxRecommendations, append(buckets, collab)...)
	}
	s.storeCache(ctx, learnerID, merged)
	return merged, nil
}

// NextContent picks what the learner sees after an assessment: on failure an
// advisor-suggested gap filler or an easier alternative covering the same
// components; on success the next path item, or the top recommendation when
// the path is exhausted or the content was off-path.
func (s *recommendationService) NextContent(ctx context.Context, learnerID, currentContentID uuid.UUID, result *EvaluationResult) (*Recommendation, error) {
	mastered := result == nil || result.MasteryAchieved

	if !mastered {
		if s.gaps != nil {
			recs, err := s.gaps.RecommendForGaps(ctx, learnerID, 1)
			if err != nil {
				s.log.Warn("gap advisor unavailable", "error", err)
			} else if len(recs) > 0 {
				return &recs[0], nil
			}
		}
		alt, err := s.easierAlternative(ctx, currentContentID)
		if err != nil {
			return nil, err
		}
		if alt != nil {
			return alt, nil
		}
		return s.topRecommendation(ctx, learnerID)
	}

	advance, err := s.progress.ApplyOutcome(ctx, learnerID, currentContentID, true)
	if err != nil {
		return nil, err
	}
	if advance.NextContentID != nil {
		item, err := s.content.GetByID(ctx, nil, *advance.NextContentID)
		if err != nil {
			return nil, err
		}
		if item != nil {
			rec := toRecommendation(item, RecNextInPath, 1.0)
			return &rec, nil
		}
	}
	return s.topRecommendation(ctx, learnerID)
}

func (s *recommendationService) storeCache(ctx context.Context, learnerID uuid.UUID, recs []Recommendation) {
	if s.cache != nil {
		s.cache.Set(ctx, learnerID, recs)
	}
}

func (s *recommendationService) topRecommendation(ctx context.Context, learnerID uuid.UUID) (*Recommendation, error) {
	recs, err := s.Recommend(ctx, learnerID)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, nil
	}
	return &recs[0], nil
}

// nextInPath yields the item after the learner's current position on their
// active path, at relevance 1.0.
func (s *recommendationService) nextInPath(ctx context.Context, learnerID uuid.UUID) (*Recommendation, error) {
	pos, err := s.paths.ActivePosition(ctx, nil, learnerID)
	if err != nil {
		return nil, err
	}
	if pos == nil || pos.Completed {
		return nil, nil
	}
	item, err := s.paths.ItemAt(ctx, nil, pos.PathID, pos.CurrentPosition)
	if err != nil {
		return nil, err
	}
	if item == nil || item.Content == nil {
		return nil, nil
	}
	rec := toRecommendation(item.Content, RecNextInPath, 1.0)
	return &rec, nil
}

// remedialCandidates surfaces the easiest content for the learner's three
// weakest components under the cutoff, scored 0.9 - mastery so weaker
// components rank higher.
func (s *recommendationService) remedialCandidates(ctx context.Context, learnerID uuid.UUID) ([]Recommendation, error) {
	states, err := s.masteries.ListByLearner(ctx, nil, learnerID)
	if err != nil {
		return nil, err
	}
	weak := make([]*types.MasteryState, 0, len(states))
	for _, st := range states {
		if st.Mastery < s.cfg.WeakMasteryCutoff {
			weak = append(weak, st)
		}
	}
	sort.SliceStable(weak, func(i, j int) bool { return weak[i].Mastery < weak[j].Mastery })
	if len(weak) > 3 {
		weak = weak[:3]
	}

	out := make([]Recommendation, 0, len(weak))
	for _, st := range weak {
		items, err := s.content.EasiestByComponent(ctx, nil, st.ComponentID, 0, 1)
		if err != nil {
			return nil, err
		}
		if len(items) == 0 {
			continue
		}
		out = append(out, toRecommendation(items[0], RecRemedial, 0.9-st.Mastery))
	}
	return out, nil
}

// similarCandidates finds content sharing tags with the learner's recently
// touched items, at relevance 0.7.
func (s *recommendationService) similarCandidates(ctx context.Context, learnerID uuid.UUID) ([]Recommendation, error) {
	recent, err := s.interactions.RecentContentIDs(ctx, nil, learnerID, 5)
	if err != nil {
		return nil, err
	}
	var out []Recommendation
	for _, id := range recent {
		seed, err := s.content.GetByID(ctx, nil, id)
		if err != nil {
			return nil, err
		}
		if seed == nil || seed.Tags == "" {
			continue
		}
		matches, err := s.content.SimilarByTags(ctx, nil, splitTags(seed.Tags), seed.ID, 2)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			out = append(out, toRecommendation(m, RecSimilar, 0.7))
		}
	}
	return out, nil
}

// collaborativeCandidates borrows positively-rated content from the peers
// whose average mastery sits closest to the learner's, at relevance 0.6.
func (s *recommendationService) collaborativeCandidates(ctx context.Context, learnerID uuid.UUID) ([]Recommendation, error) {
	avg, err := s.masteries.AverageForLearner(ctx, nil, learnerID)
	if err != nil {
		return nil, err
	}
	peers, err := s.masteries.ClosestAverages(ctx, nil, learnerID, avg, 5)
	if err != nil {
		return nil, err
	}
	var out []Recommendation
	for _, peer := range peers {
		ids, err := s.interactions.PositiveUnseenContentIDs(ctx, nil, peer.LearnerID, learnerID, 2)
		if err != nil {
			return nil, err
		}
		items, err := s.content.GetByIDs(ctx, nil, ids)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			out = append(out, toRecommendation(item, RecCollaborative, 0.6))
		}
	}
	return out, nil
}

// easierAlternative looks for different content covering the same components
// as the failed item.
func (s *recommendationService) easierAlternative(ctx context.Context, contentID uuid.UUID) (*Recommendation, error) {
	maps, err := s.content.ComponentMaps(ctx, nil, contentID)
	if err != nil {
		return nil, err
	}
	if len(maps) == 0 {
		return nil, nil
	}
	componentIDs := make([]uuid.UUID, 0, len(maps))
	for _, m := range maps {
		componentIDs = append(componentIDs, m.ComponentID)
	}
	alt, err := s.content.AlternativeForComponents(ctx, nil, contentID, componentIDs)
	if err != nil {
		return nil, err
	}
	if alt == nil {
		return nil, nil
	}
	rec := toRecommendation(alt, RecRemedial, 0.85)
	return &rec, nil
}

// mergeRecommendations dedupes by content id with first occurrence winning,
// orders by relevance descending (stable, so source priority breaks ties),
// and truncates to limit.
func mergeRecommendations(limit int, buckets ...[]Recommendation) []Recommendation {
	seen := make(map[uuid.UUID]bool)
	merged := make([]Recommendation, 0, limit)
	for _, bucket := range buckets {
		for _, rec := range bucket {
			if seen[rec.ContentID] {
				continue
			}
			seen[rec.ContentID] = true
			merged = append(merged, rec)
		}
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].RelevanceScore > merged[j].RelevanceScore
	})
	if len(merged) > limit {
		merged = merged[:limit]
	}
	return merged
}

func toRecommendation(item *types.ContentItem, recType string, score float64) Recommendation {
	return Recommendation{
		ContentID:      item.ID,
		Title:          item.Title,
		Description:    item.Description,
		Difficulty:     item.Difficulty,
		Tags:           splitTags(item.Tags),
		Type:           recType,
		RelevanceScore: score,
	}
}

func splitTags(joined string) []string {
	if joined == "" {
		return nil
	}
	parts := strings.Split(joined, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
