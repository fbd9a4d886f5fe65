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
	rewriteContentKey = requiredKey{Name: "rewritten_content", Hint: "string"}
	rewriteChangesKey = requiredKey{Name: "changes_made", Hint: "array of strings"}
)

type rewriteService struct {
	articles    repository.ArticleRepository
	assessments repository.AssessmentRepository
	knowledge   repository.KnowledgeAPIRepository
	llm         repository.LLMAPIRepository
	prompts     *config.PromptsConfig
	logReplies  bool
	logger      *slog.Logger
}

// NewRewriteService wires the rewrite pipeline. llm may point at a different
// generation profile than the one used for assessments.
func NewRewriteService(
	articles repository.ArticleRepository,
	assessments repository.AssessmentRepository,
	knowledge repository.KnowledgeAPIRepository,
	llm repository.LLMAPIRepository,
	prompts *config.PromptsConfig,
	logReplies bool,
	logger *slog.Logger,
) RewriteService {
	return &rewriteService{
		articles:    articles,
		assessments: assessments,
		knowledge:   knowledge,
		llm:         llm,
		prompts:     prompts,
		logReplies:  logReplies,
		logger:      logger,
	}
}

type rewriteInput struct {
	KBNumber                   string `json:"kb_number"`
	ShortDescription           string `json:"short_description"`
	CurrentBodyHTML            string `json:"current_body_html"`
	RecommendationsToImplement string `json:"recommendations_to_implement"`
}

// Rewrite drafts a new body implementing the selected recommendations. The
// article must have at least one completed assessment; a body fetched here
// is used for the prompt only and is not written back.
func (s *rewriteService) Rewrite(ctx context.Context, articleID int64, recommendations []string) (*models.RewriteResult, error) {
	if articleID <= 0 {
		return nil, fmt.Errorf("%w: article id must be positive", models.ErrInvalidInput)
	}

	if len(recommendations) == 0 {
		return nil, fmt.Errorf("%w: no recommendations selected for rewrite", models.ErrInvalidInput)
	}

	article, err := s.articles.FindByID(ctx, articleID)
	if err != nil {
		return nil, err
	}

	if article == nil {
		return nil, fmt.Errorf("%w: %d", models.ErrArticleNotFound, articleID)
	}

	body, err := s.resolveBody(ctx, article)
	if err != nil {
		return nil, err
	}

	latest, err := s.assessments.LatestDone(ctx, articleID)
	if err != nil {
		return nil, err
	}

	if latest == nil {
		return nil, fmt.Errorf("%w: %d", models.ErrNoCompletedAssessment, articleID)
	}

	messages, err := s.buildMessages(article, body, recommendations)
	if err != nil {
		return nil, err
	}

	decoded, err := requestStructured(ctx, s.llm, s.logger, s.logReplies,
		"rewrite", article.KBNumber, messages,
		rewriteContentKey, rewriteChangesKey)
	if err != nil {
		return nil, err
	}

	result := &models.RewriteResult{
		Success:          true,
		RewrittenContent: coerceString(decoded[rewriteContentKey.Name]),
		ChangesMade:      coerceStringList(decoded[rewriteChangesKey.Name]),
	}

	s.logger.InfoContext(ctx, "rewrite completed",
		"kb_number", article.KBNumber,
		"selected_recommendations", len(recommendations),
		"changes_made", len(result.ChangesMade))

	return result, nil
}

func (s *rewriteService) resolveBody(ctx context.Context, article *models.Article) (string, error) {
	if article.BodyHTML != nil && *article.BodyHTML != "" {
		return *article.BodyHTML, nil
	}

	fresh, err := s.knowledge.FetchArticleBody(ctx, article.KBNumber)
	if err != nil {
		return "", err
	}

	if fresh == nil || fresh.Body == "" {
		return "", fmt.Errorf("%w: unable to fetch article body for %s", models.ErrArticleNotFound, article.KBNumber)
	}

	return fresh.Body, nil
}

func (s *rewriteService) buildMessages(article *models.Article, body string, recommendations []string) ([]models.ChatMessage, error) {
	input, err := json.Marshal(rewriteInput{
		KBNumber:                   article.KBNumber,
		ShortDescription:           article.ShortDescription,
		CurrentBodyHTML:            body,
		RecommendationsToImplement: numberRecommendations(recommendations),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal rewrite input: %w", err)
	}

	system := buildSystemPrompt(
		s.prompts.OrganizationContext,
		s.prompts.RewriteSystem,
		s.prompts.RewriteFormat,
	)

	return []models.ChatMessage{
		{Role: models.RoleSystem, Content: system},
		{Role: models.RoleUser, Content: string(input)},
	}, nil
}
