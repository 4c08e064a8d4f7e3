package advisors

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/logger"
	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/repos"
	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/services"
)

// Thresholds for flagging a component as a knowledge gap: accuracy below
// gapAccuracyCutoff over at least gapMinAnswers graded responses.
const (
	gapAccuracyCutoff = 0.6
	gapMinAnswers     = 3
)

// Gap is a knowledge component the learner's response history shows
// persistent trouble with.
type Gap struct {
	ComponentID   uuid.UUID `json:"component_id"`
	ComponentName string    `json:"component_name"`
	Accuracy      float64   `json:"accuracy"`
	Answered      int       `json:"answered"`
}

// GapRecommender mines the response history for weak components and
// recommends easy content that targets them. Implements both the diverse
// and the post-failure advisor contracts of the recommendation service.
type GapRecommender struct {
	responses repos.ResponseRepo
	content   repos.ContentRepo
	log       *logger.Logger
}

func NewGapRecommender(responses repos.ResponseRepo, content repos.ContentRepo, baseLog *logger.Logger) *GapRecommender {
	return &GapRecommender{
		responses: responses,
		content:   content,
		log:       baseLog.With("advisor", "GapRecommender"),
	}
}

// KnowledgeGaps lists the learner's gap components, weakest first.
func (g *GapRecommender) KnowledgeGaps(ctx context.Context, learnerID uuid.UUID) ([]Gap, error) {
	rows, err := g.responses.AccuracyByComponent(ctx, nil, learnerID)
	if err != nil {
		return nil, err
	}
	gaps := make([]Gap, 0, len(rows))
	for _, row := range rows {
		if row.Total < gapMinAnswers {
			continue
		}
		accuracy := float64(row.Correct) / float64(row.Total)
		if accuracy >= gapAccuracyCutoff {
			continue
		}
		gaps = append(gaps, Gap{
			ComponentID:   row.ComponentID,
			ComponentName: row.ComponentName,
			Accuracy:      accuracy,
			Answered:      row.Total,
		})
	}
	sort.SliceStable(gaps, func(i, j int) bool { return gaps[i].Accuracy < gaps[j].Accuracy })
	return gaps, nil
}

// Recommend surfaces easy content for the learner's gaps, weakest gaps
// scoring highest.
func (g *GapRecommender) Recommend(ctx context.Context, learnerID uuid.UUID, limit int) ([]services.Recommendation, error) {
	gaps, err := g.KnowledgeGaps(ctx, learnerID)
	if err != nil {
		return nil, err
	}
	var out []services.Recommendation
	for _, gap := range gaps {
		if len(out) >= limit {
			break
		}
		items, err := g.content.EasiestByComponent(ctx, nil, gap.ComponentID, 0, 2)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			if len(out) >= limit {
				break
			}
			out = append(out, services.Recommendation{
				ContentID:      item.ID,
				Title:          item.Title,
				Description:    item.Description,
				Difficulty:     item.Difficulty,
				Type:           services.RecKnowledgeGap,
				RelevanceScore: 0.9 - gap.Accuracy*0.3,
			})
		}
	}
	return out, nil
}

// RecommendForGaps is the post-failure entry point; same candidates, capped
// tighter by the caller.
func (g *GapRecommender) RecommendForGaps(ctx context.Context, learnerID uuid.UUID, limit int) ([]services.Recommendation, error) {
	return g.Recommend(ctx, learnerID, limit)
}
