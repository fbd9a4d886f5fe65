package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"kb-assessor/config"
	"kb-assessor/models"
	"kb-assessor/repository"
)

var (
	assessmentVerdictKey         = requiredKey{Name: "verdict_current", Hint: "boolean"}
	assessmentRecommendationsKey = requiredKey{Name: "recommendations", Hint: "array of short strings"}
)

type assessmentService struct {
	articles    repository.ArticleRepository
	assessments repository.AssessmentRepository
	knowledge   repository.KnowledgeAPIRepository
	llm         repository.LLMAPIRepository
	model       string
	prompts     *config.PromptsConfig
	logReplies  bool
	logger      *slog.Logger
}

// NewAssessmentService wires the assessment pipeline. model is recorded on
// every done assessment.
func NewAssessmentService(
	articles repository.ArticleRepository,
	assessments repository.AssessmentRepository,
	knowledge repository.KnowledgeAPIRepository,
	llm repository.LLMAPIRepository,
	model string,
	prompts *config.PromptsConfig,
	logReplies bool,
	logger *slog.Logger,
) AssessmentService {
	return &assessmentService{
		articles:    articles,
		assessments: assessments,
		knowledge:   knowledge,
		llm:         llm,
		model:       model,
		prompts:     prompts,
		logReplies:  logReplies,
		logger:      logger,
	}
}

// assessmentInput is the user message payload. Field order matters only for
// reproducible prompts.
type assessmentInput struct {
	KBNumber         string `json:"kb_number"`
	ShortDescription string `json:"short_description"`
	LastUpdated      string `json:"last_updated"`
	BodyHTML         string `json:"body_html"`
}

// Assess runs one assessment synchronously. The attempt row is created
// first so every outcome, including failures, is visible in the history.
func (s *assessmentService) Assess(ctx context.Context, articleID int64) (*models.AssessmentResult, error) {
	if articleID <= 0 {
		return nil, fmt.Errorf("%w: article id must be positive", models.ErrInvalidInput)
	}

	article, err := s.articles.FindByID(ctx, articleID)
	if err != nil {
		return nil, err
	}

	if article == nil {
		return nil, fmt.Errorf("%w: %d", models.ErrArticleNotFound, articleID)
	}

	assessmentID, err := s.assessments.Create(ctx, articleID)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "assessment queued",
		"assessment_id", assessmentID,
		"article_id", articleID,
		"kb_number", article.KBNumber)

	result, err := s.run(ctx, assessmentID, article)
	if err != nil {
		if markErr := s.assessments.MarkError(ctx, assessmentID, err.Error()); markErr != nil {
			s.logger.ErrorContext(ctx, "failed to record assessment failure",
				"error", markErr,
				"assessment_id", assessmentID)
		}

		return nil, err
	}

	return result, nil
}

func (s *assessmentService) run(ctx context.Context, assessmentID int64, article *models.Article) (*models.AssessmentResult, error) {
	if err := s.assessments.MarkRunning(ctx, assessmentID); err != nil {
		return nil, err
	}

	if err := s.ensureBody(ctx, article); err != nil {
		return nil, err
	}

	messages, err := s.buildMessages(article)
	if err != nil {
		return nil, err
	}

	decoded, err := requestStructured(ctx, s.llm, s.logger, s.logReplies,
		"assessment", article.KBNumber, messages,
		assessmentVerdictKey, assessmentRecommendationsKey)
	if err != nil {
		return nil, err
	}

	verdict := coerceBool(decoded[assessmentVerdictKey.Name])
	recommendations := coerceStringList(decoded[assessmentRecommendationsKey.Name])

	if err := s.assessments.MarkDone(ctx, assessmentID, s.model, verdict, recommendations); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "assessment completed",
		"assessment_id", assessmentID,
		"kb_number", article.KBNumber,
		"verdict_current", verdict,
		"recommendations", len(recommendations))

	return &models.AssessmentResult{
		AssessmentID:         assessmentID,
		Status:               string(models.AssessmentStatusDone),
		VerdictCurrent:       verdict,
		RecommendationsCount: len(recommendations),
	}, nil
}

// ensureBody lazily fetches and caches the full article body. The upstream
// record may also carry a fresher description and timestamp; those are
// persisted together with the body so the prompt and the row agree.
func (s *assessmentService) ensureBody(ctx context.Context, article *models.Article) error {
	if article.BodyHTML != nil && *article.BodyHTML != "" {
		return nil
	}

	fresh, err := s.knowledge.FetchArticleBody(ctx, article.KBNumber)
	if err != nil {
		return err
	}

	if fresh == nil || fresh.Body == "" {
		return fmt.Errorf("%w: unable to fetch article body for %s", models.ErrArticleNotFound, article.KBNumber)
	}

	shortDescription := fresh.ShortDescription
	if shortDescription == "" {
		shortDescription = article.ShortDescription
	}

	sysUpdatedOn := fresh.SysUpdatedOn
	if sysUpdatedOn == "" {
		sysUpdatedOn = article.SysUpdatedOn
	}

	if err := s.articles.UpdateBody(ctx, article.ID, fresh.Body, shortDescription, sysUpdatedOn); err != nil {
		return err
	}

	article.BodyHTML = &fresh.Body
	article.ShortDescription = shortDescription
	article.SysUpdatedOn = sysUpdatedOn

	return nil
}

func (s *assessmentService) buildMessages(article *models.Article) ([]models.ChatMessage, error) {
	input, err := json.Marshal(assessmentInput{
		KBNumber:         article.KBNumber,
		ShortDescription: article.ShortDescription,
		LastUpdated:      article.SysUpdatedOn,
		BodyHTML:         *article.BodyHTML,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal assessment input: %w", err)
	}

	system := buildSystemPrompt(
		s.prompts.OrganizationContext,
		s.prompts.AssessmentSystem,
		s.prompts.AssessmentFormat,
	)

	return []models.ChatMessage{
		{Role: models.RoleSystem, Content: system},
		{Role: models.RoleUser, Content: string(input)},
	}, nil
}
