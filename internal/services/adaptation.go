package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"

	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/logger"
	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/repos"
	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/types"
)

// paragraph length above which simplification splits the text back into
// sentence-grouped chunks.
const maxParagraphLen = 100

// AdaptedDraft is a synthesized content variant before persistence.
type AdaptedDraft struct {
	OriginalContentID  uuid.UUID         `json:"original_content_id"`
	Title              string            `json:"title"`
	Body               types.ContentBody `json:"body"`
	AdaptationReason   string            `json:"adaptation_reason"`
	TargetedComponents []uuid.UUID       `json:"targeted_components"`
}

// struggledComponent pairs a knowledge component with the mastery estimate
// that flagged it.
type struggledComponent struct {
	component *types.KnowledgeComponent
	mastery   float64
}

// AdaptationService synthesizes simplified, enriched variants of content a
// learner keeps failing. Adapt is pure with respect to the learner's state;
// Provide runs the full adapt-store-mark cycle.
type AdaptationService interface {
	Adapt(ctx context.Context, learnerID, contentID uuid.UUID, result *EvaluationResult) (*AdaptedDraft, error)
	Store(ctx context.Context, learnerID uuid.UUID, draft *AdaptedDraft) (*types.AdaptedContent, error)
	GetCurrent(ctx context.Context, learnerID, contentID uuid.UUID) (*types.AdaptedContent, error)
	Provide(ctx context.Context, learnerID, contentID uuid.UUID, result *EvaluationResult) (*types.AdaptedContent, error)
}

type adaptationService struct {
	cfg        Config
	content    repos.ContentRepo
	components repos.KnowledgeComponentRepo
	masteries  repos.MasteryStateRepo
	adapted    repos.AdaptedContentRepo
	failures   FailureService
	log        *logger.Logger
}

func NewAdaptationService(
	cfg Config,
	content repos.ContentRepo,
	components repos.KnowledgeComponentRepo,
	masteries repos.MasteryStateRepo,
	adapted repos.AdaptedContentRepo,
	failures FailureService,
	baseLog *logger.Logger,
) AdaptationService {
	return &adaptationService{
		cfg:        cfg,
		content:    content,
		components: components,
		masteries:  masteries,
		adapted:    adapted,
		failures:   failures,
		log:        baseLog.With("service", "AdaptationService"),
	}
}

// Adapt runs the pipeline: find the components the learner struggled with,
// gather easier related content, simplify the original sections, enrich
// with targeted help, and extend with practice. Returns nil when the
// original content is missing or its body does not parse; adaptation is
// best-effort and the caller falls back to the original.
func (s *adaptationService) Adapt(ctx context.Context, learnerID, contentID uuid.UUID, result *EvaluationResult) (*AdaptedDraft, error) {
	original, err := s.content.GetByID(ctx, nil, contentID)
	if err != nil {
		return nil, err
	}
	if original == nil || len(original.Body) == 0 {
		return nil, nil
	}
	var body types.ContentBody
	if err := json.Unmarshal(original.Body, &body); err != nil {
		s.log.Warn("content body is not a section document, cannot adapt",
			"content_id", contentID, "error", err)
		return nil, nil
	}

	struggled, err := s.struggledComponents(ctx, learnerID, contentID, result)
	if err != nil {
		return nil, err
	}
	if len(struggled) == 0 {
		return nil, nil
	}

	related, err := s.relatedContent(ctx, struggled)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(struggled))
	targeted := make([]uuid.UUID, 0, len(struggled))
	for _, sc := range struggled {
		names = append(names, sc.component.Name)
		targeted = append(targeted, sc.component.ID)
	}

	sections := simplifySections(body.Sections, names)
	sections = append(sections, enrichmentSections(struggled, related)...)
	sections = append(sections, practiceSection(names))

	return &AdaptedDraft{
		OriginalContentID:  contentID,
		Title:              original.Title + " - Adapted Version",
		Body:               types.ContentBody{Sections: sections},
		AdaptationReason:   fmt.Sprintf("Simplified after difficulty with: %s", strings.Join(names, ", ")),
		TargetedComponents: targeted,
	}, nil
}

func (s *adaptationService) Store(ctx context.Context, learnerID uuid.UUID, draft *AdaptedDraft) (*types.AdaptedContent, error) {
	bodyJSON, err := json.Marshal(draft.Body)
	if err != nil {
		return nil, err
	}
	targetedJSON, err := json.Marshal(draft.TargetedComponents)
	if err != nil {
		return nil, err
	}
	row := &types.AdaptedContent{
		ID:                 uuid.New(),
		LearnerID:          learnerID,
		OriginalContentID:  draft.OriginalContentID,
		Title:              draft.Title,
		Body:               datatypes.JSON(bodyJSON),
		AdaptationReason:   draft.AdaptationReason,
		TargetedComponents: datatypes.JSON(targetedJSON),
	}
	if err := s.adapted.Create(ctx, nil, row); err != nil {
		return nil, err
	}
	return row, nil
}

func (s *adaptationService) GetCurrent(ctx context.Context, learnerID, contentID uuid.UUID) (*types.AdaptedContent, error) {
	return s.adapted.Latest(ctx, nil, learnerID, contentID)
}

// Provide synthesizes and persists an adaptation, then clears the owed flag
// on the failure ledger. A nil return with nil error means the content could
// not be adapted.
func (s *adaptationService) Provide(ctx context.Context, learnerID, contentID uuid.UUID, result *EvaluationResult) (*types.AdaptedContent, error) {
	draft, err := s.Adapt(ctx, learnerID, contentID, result)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		return nil, nil
	}
	row, err := s.Store(ctx, learnerID, draft)
	if err != nil {
		return nil, err
	}
	if err := s.failures.MarkAdaptationProvided(ctx, learnerID, contentID); err != nil {
		return nil, err
	}
	s.log.Info("adaptation provided",
		"learner_id", learnerID,
		"content_id", contentID,
		"targeted_components", len(draft.TargetedComponents),
	)
	return row, nil
}

// struggledComponents picks the components behind the incorrect answers of
// the evaluation, with current mastery attached. Without usable evidence it
// falls back to the content's first mapped component at an assumed weak
// mastery, so a failed learner always gets something targeted.
func (s *adaptationService) struggledComponents(ctx context.Context, learnerID, contentID uuid.UUID, result *EvaluationResult) ([]struggledComponent, error) {
	var ids []uuid.UUID
	if result != nil {
		seen := make(map[uuid.UUID]bool)
		for _, r := range result.Results {
			if r.IsCorrect || r.ComponentID == uuid.Nil || seen[r.ComponentID] {
				continue
			}
			seen[r.ComponentID] = true
			ids = append(ids, r.ComponentID)
		}
	}
	if len(ids) == 0 {
		maps, err := s.content.ComponentMaps(ctx, nil, contentID)
		if err != nil {
			return nil, err
		}
		if len(maps) == 0 {
			return nil, nil
		}
		kc, err := s.components.GetByID(ctx, nil, maps[0].ComponentID)
		if err != nil {
			return nil, err
		}
		if kc == nil {
			return nil, nil
		}
		return []struggledComponent{{component: kc, mastery: 0.3}}, nil
	}

	kcs, err := s.components.GetByIDs(ctx, nil, ids)
	if err != nil {
		return nil, err
	}
	out := make([]struggledComponent, 0, len(kcs))
	for _, kc := range kcs {
		var mastery float64
		state, err := s.masteries.Get(ctx, nil, learnerID, kc.ID)
		if err != nil {
			return nil, err
		}
		if state != nil {
			mastery = state.Mastery
		}
		out = append(out, struggledComponent{component: kc, mastery: mastery})
	}
	return out, nil
}

// relatedContent fetches easier content per struggled component
// concurrently, keyed by component id.
func (s *adaptationService) relatedContent(ctx context.Context, struggled []struggledComponent) (map[uuid.UUID][]*types.ContentItem, error) {
	out := make(map[uuid.UUID][]*types.ContentItem, len(struggled))
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for _, sc := range struggled {
		componentID := sc.component.ID
		g.Go(func() error {
			items, err := s.content.EasiestByComponent(gctx, nil, componentID, 2, 3)
			if err != nil {
				return err
			}
			mu.Lock()
			out[componentID] = items
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// simplifySections rewrites the sections related to a struggled component:
// long paragraphs are split at sentence boundaries into chunks under the
// length cap, titles gain a "(Simplified)" marker, and a study tip naming
// the weak areas is appended. Unrelated sections pass through untouched.
func simplifySections(sections []types.ContentSection, struggledNames []string) []types.ContentSection {
	tip := fmt.Sprintf("Take your time with this section. Focus on: %s.", strings.Join(struggledNames, ", "))
	out := make([]types.ContentSection, 0, len(sections))
	for _, sec := range sections {
		if !sectionMentionsAny(sec, struggledNames) {
			out = append(out, sec)
			continue
		}
		paragraphs := strings.Split(sec.Content, "\n\n")
		rebuilt := make([]string, 0, len(paragraphs))
		for _, p := range paragraphs {
			rebuilt = append(rebuilt, splitLongParagraph(p, maxParagraphLen)...)
		}
		out = append(out, types.ContentSection{
			Title:        sec.Title + " (Simplified)",
			Content:      strings.Join(rebuilt, "\n\n"),
			MediaURL:     sec.MediaURL,
			LearningTips: append(append([]string{}, sec.LearningTips...), tip),
		})
	}
	return out
}

// sectionMentionsAny reports whether the section's title or body names one
// of the components, case-insensitively.
func sectionMentionsAny(sec types.ContentSection, names []string) bool {
	title := strings.ToLower(sec.Title)
	content := strings.ToLower(sec.Content)
	for _, name := range names {
		needle := strings.ToLower(name)
		if needle == "" {
			continue
		}
		if strings.Contains(title, needle) || strings.Contains(content, needle) {
			return true
		}
	}
	return false
}

// splitLongParagraph regroups a paragraph's sentences into chunks no longer
// than limit. Single sentences over the limit stay whole rather than being
// truncated mid-thought.
func splitLongParagraph(paragraph string, limit int) []string {
	paragraph = strings.TrimSpace(paragraph)
	if paragraph == "" {
		return nil
	}
	if len(paragraph) <= limit {
		return []string{paragraph}
	}
	sentences := splitSentences(paragraph)
	var chunks []string
	var current string
	for _, sentence := range sentences {
		switch {
		case current == "":
			current = sentence
		case len(current)+1+len(sentence) <= limit:
			current = current + " " + sentence
		default:
			chunks = append(chunks, current)
			current = sentence
		}
	}
	if current != "" {
		chunks = append(chunks, current)
	}
	return chunks
}

// splitSentences breaks text on terminal punctuation followed by a space.
func splitSentences(text string) []string {
	var out []string
	start := 0
	for i := 0; i < len(text)-1; i++ {
		c := text[i]
		if (c == '.' || c == '!' || c == '?') && text[i+1] == ' ' {
			if s := strings.TrimSpace(text[start : i+1]); s != "" {
				out = append(out, s)
			}
			start = i + 1
		}
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		out = append(out, s)
	}
	return out
}

// enrichmentSections builds one help section per struggled component: its
// description, a worked example lifted from related easier content when one
// exists, and canned examples for the basic arithmetic operations.
func enrichmentSections(struggled []struggledComponent, related map[uuid.UUID][]*types.ContentItem) []types.ContentSection {
	out := make([]types.ContentSection, 0, len(struggled))
	for _, sc := range struggled {
		var b strings.Builder
		if sc.component.Description != "" {
			b.WriteString(sc.component.Description)
		} else {
			fmt.Fprintf(&b, "Let's revisit %s step by step.", sc.component.Name)
		}
		if example := exampleFromRelated(related[sc.component.ID]); example != "" {
			b.WriteString("\n\nWorked example:\n")
			b.WriteString(example)
		}
		if extra, ok := extraExamples[sc.component.Name]; ok {
			b.WriteString("\n\nMore examples:\n")
			b.WriteString(extra)
		}
		out = append(out, types.ContentSection{
			Title:   "Additional Help: " + sc.component.Name,
			Content: b.String(),
			LearningTips: []string{
				"Work through each example before moving on.",
			},
		})
	}
	return out
}

// exampleFromRelated pulls the first section of related content whose title
// mentions an example.
func exampleFromRelated(items []*types.ContentItem) string {
	for _, item := range items {
		var body types.ContentBody
		if err := json.Unmarshal(item.Body, &body); err != nil {
			continue
		}
		for _, sec := range body.Sections {
			if strings.Contains(strings.ToLower(sec.Title), "example") {
				return sec.Content
			}
		}
	}
	return ""
}

// extraExamples holds canned walkthroughs for the arithmetic components the
// canonical curriculum ships with.
var extraExamples = map[string]string{
	"Addition": "3 + 4 = 7. Start at 3 and count up 4: 4, 5, 6, 7.\n" +
		"12 + 9 = 21. Add 10 to get 22, then take 1 away.",
	"Subtraction": "9 - 5 = 4. Start at 9 and count down 5: 8, 7, 6, 5, 4.\n" +
		"14 - 6 = 8. Take away 4 to reach 10, then take away 2 more.",
	"Multiplication": "3 x 4 = 12. That is 3 groups of 4: 4 + 4 + 4.\n" +
		"6 x 5 = 30. Count by fives six times: 5, 10, 15, 20, 25, 30.",
	"Division": "12 / 3 = 4. Split 12 into 3 equal groups of 4.\n" +
		"20 / 5 = 4. How many fives fit in 20? 5, 10, 15, 20 - four of them.",
}

// practiceSection closes every adaptation with self-check exercises.
func practiceSection(struggledNames []string) types.ContentSection {
	return types.ContentSection{
		Title: "Practice Exercises",
		Content: "Try these on your own:\n" +
			"1. 5 + 7 = ?\n" +
			"2. 15 - 8 = ?\n" +
			"3. 4 x 6 = ?\n" +
			"4. 18 / 3 = ?\n\n" +
			"Answer key: 1) 12  2) 7  3) 24  4) 6",
		LearningTips: []string{
			fmt.Sprintf("These exercises cover: %s.", strings.Join(struggledNames, ", ")),
			"Check each answer against the key before moving on.",
		},
	}
}
