package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/apperr"
	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/logger"
	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/repos"
	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/types"
)

// LearningView is what a learner opening a content item actually sees:
// the original, plus the adapted variant when one is owed or on record.
type LearningView struct {
	Content        *types.ContentItem    `json:"content"`
	AdaptedContent *types.AdaptedContent `json:"adapted_content,omitempty"`
	IsAdapted      bool                  `json:"is_adapted"`
}

// ContentService serves content reads and decides, per learner, whether the
// original or an adapted variant should be shown.
type ContentService interface {
	Get(ctx context.Context, contentID uuid.UUID) (*types.ContentItem, error)
	List(ctx context.Context) ([]*types.ContentItem, error)
	Prerequisites(ctx context.Context, contentID uuid.UUID) ([]*types.ContentItem, error)
	LearningView(ctx context.Context, learnerID, contentID uuid.UUID) (*LearningView, error)
}

type contentService struct {
	content      repos.ContentRepo
	failures     FailureService
	adaptation   AdaptationService
	interactions InteractionService
	log          *logger.Logger
}

func NewContentService(
	content repos.ContentRepo,
	failures FailureService,
	adaptation AdaptationService,
	interactions InteractionService,
	baseLog *logger.Logger,
) ContentService {
	return &contentService{
		content:      content,
		failures:     failures,
		adaptation:   adaptation,
		interactions: interactions,
		log:          baseLog.With("service", "ContentService"),
	}
}

func (s *contentService) Get(ctx context.Context, contentID uuid.UUID) (*types.ContentItem, error) {
	item, err := s.content.GetByID(ctx, nil, contentID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: content %s", apperr.ErrNotFound, contentID)
	}
	return item, nil
}

func (s *contentService) List(ctx context.Context) ([]*types.ContentItem, error) {
	return s.content.ListAll(ctx, nil)
}

func (s *contentService) Prerequisites(ctx context.Context, contentID uuid.UUID) ([]*types.ContentItem, error) {
	return s.content.Prerequisites(ctx, nil, contentID)
}

// LearningView resolves what to show. When the failure ledger says an
// adaptation is owed, the stored one is served, or a fresh one is
// synthesized from the content's component mappings when none exists yet.
// Adaptation failures degrade to the original content, never to an error.
func (s *contentService) LearningView(ctx context.Context, learnerID, contentID uuid.UUID) (*LearningView, error) {
	item, err := s.Get(ctx, contentID)
	if err != nil {
		return nil, err
	}
	view := &LearningView{Content: item}

	needs, err := s.failures.NeedsAdaptation(ctx, learnerID, contentID)
	if err != nil {
		return nil, err
	}
	if needs {
		adapted, err := s.adaptation.GetCurrent(ctx, learnerID, contentID)
		if err != nil {
			return nil, err
		}
		if adapted == nil {
			adapted, err = s.adaptation.Provide(ctx, learnerID, contentID, nil)
			if err != nil {
				s.log.Warn("adaptation synthesis failed, serving original",
					"learner_id", learnerID, "content_id", contentID, "error", err)
				adapted = nil
			}
		}
		if adapted != nil {
			view.AdaptedContent = adapted
			view.IsAdapted = true
		}
	}

	if err := s.interactions.Log(ctx, learnerID, &contentID, types.InteractionStart, time.Now().UTC(), nil); err != nil {
		s.log.Warn("failed to log content start", "error", err)
	}
	return view, nil
}
