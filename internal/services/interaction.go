package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/apperr"
	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/logger"
	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/repos"
	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/types"
)

var allowedInteractions = map[string]bool{
	types.InteractionComplete: true,
	types.InteractionLike:     true,
	types.InteractionBookmark: true,
	types.InteractionStart:    true,
	types.InteractionExit:     true,
}

// InteractionService appends learner activity to the interaction log that
// feeds the similarity and collaborative recommenders.
type InteractionService interface {
	Log(ctx context.Context, learnerID uuid.UUID, contentID *uuid.UUID, interactionType string, at time.Time, details map[string]any) error
}

type interactionService struct {
	interactions repos.InteractionRepo
	log          *logger.Logger
}

func NewInteractionService(interactions repos.InteractionRepo, baseLog *logger.Logger) InteractionService {
	return &interactionService{
		interactions: interactions,
		log:          baseLog.With("service", "InteractionService"),
	}
}

func (s *interactionService) Log(ctx context.Context, learnerID uuid.UUID, contentID *uuid.UUID, interactionType string, at time.Time, details map[string]any) error {
	if !allowedInteractions[interactionType] {
		return fmt.Errorf("%w: unknown interaction type %q", apperr.ErrInvalidArgument, interactionType)
	}
	if at.IsZero() {
		at = time.Now().UTC()
	}
	row := &types.InteractionLog{
		ID:        uuid.New(),
		LearnerID: learnerID,
		ContentID: contentID,
		Type:      interactionType,
		Timestamp: at,
	}
	if len(details) > 0 {
		raw, err := json.Marshal(details)
		if err != nil {
			return fmt.Errorf("%w: details not serializable", apperr.ErrInvalidArgument)
		}
		row.Details = datatypes.JSON(raw)
	}
	return s.interactions.Create(ctx, nil, row)
}
