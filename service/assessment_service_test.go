package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"kb-assessor/config"
	"kb-assessor/models"
	"kb-assessor/test/mocks"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testPrompts() *config.PromptsConfig {
	return &config.PromptsConfig{
		AssessmentSystem: "You assess KB articles.",
		AssessmentFormat: "Reply with JSON.",
		RewriteSystem:    "You rewrite KB articles.",
		RewriteFormat:    "Reply with JSON.",
	}
}

func chatReply(content string) map[string]any {
	return map[string]any{
		"choices": []any{
			map[string]any{"message": map[string]any{"content": content}},
		},
	}
}

func cachedArticle() *models.Article {
	body := "<p>How to reset your password</p>"

	return &models.Article{
		ID:               42,
		KBNumber:         "KB0010001",
		ShortDescription: "Password reset",
		BodyHTML:         &body,
		SysUpdatedOn:     "2026-05-01 10:00:00",
	}
}

func TestAssessmentService_Assess(t *testing.T) {
	t.Parallel()

	t.Run("fenced reply with cached body completes without body fetch", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		articles := mocks.NewMockArticleRepository(ctrl)
		assessments := mocks.NewMockAssessmentRepository(ctrl)
		knowledge := mocks.NewMockKnowledgeAPIRepository(ctrl)
		llm := mocks.NewMockLLMAPIRepository(ctrl)

		articles.EXPECT().FindByID(gomock.Any(), int64(42)).Return(cachedArticle(), nil)
		assessments.EXPECT().Create(gomock.Any(), int64(42)).Return(int64(7), nil)
		assessments.EXPECT().MarkRunning(gomock.Any(), int64(7)).Return(nil)
		llm.EXPECT().Chat(gomock.Any(), gomock.Any()).
			Return(chatReply("```json\n{\"verdict_current\": true, \"recommendations\": []}\n```"), nil)
		assessments.EXPECT().MarkDone(gomock.Any(), int64(7), "gpt-test", true, []string{}).Return(nil)

		svc := NewAssessmentService(articles, assessments, knowledge, llm,
			"gpt-test", testPrompts(), false, testLogger())

		result, err := svc.Assess(context.Background(), 42)
		require.NoError(t, err)
		assert.Equal(t, int64(7), result.AssessmentID)
		assert.Equal(t, "done", result.Status)
		assert.True(t, result.VerdictCurrent)
		assert.Equal(t, 0, result.RecommendationsCount)
	})

	t.Run("missing body is fetched and persisted before the prompt", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		articles := mocks.NewMockArticleRepository(ctrl)
		assessments := mocks.NewMockAssessmentRepository(ctrl)
		knowledge := mocks.NewMockKnowledgeAPIRepository(ctrl)
		llm := mocks.NewMockLLMAPIRepository(ctrl)

		article := cachedArticle()
		article.BodyHTML = nil

		articles.EXPECT().FindByID(gomock.Any(), int64(42)).Return(article, nil)
		assessments.EXPECT().Create(gomock.Any(), int64(42)).Return(int64(8), nil)
		assessments.EXPECT().MarkRunning(gomock.Any(), int64(8)).Return(nil)
		knowledge.EXPECT().FetchArticleBody(gomock.Any(), "KB0010001").Return(&models.KBRecord{
			Number:           "KB0010001",
			ShortDescription: "Password reset (fresh)",
			SysUpdatedOn:     "2026-05-02 09:00:00",
			Body:             "<p>fresh body</p>",
		}, nil)
		articles.EXPECT().UpdateBody(gomock.Any(), int64(42),
			"<p>fresh body</p>", "Password reset (fresh)", "2026-05-02 09:00:00").Return(nil)
		llm.EXPECT().Chat(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, messages []models.ChatMessage) (map[string]any, error) {
				require.Len(t, messages, 2)
				assert.Contains(t, messages[1].Content, "fresh body")
				assert.Contains(t, messages[1].Content, "2026-05-02 09:00:00")

				return chatReply(`{"verdict_current": false, "recommendations": ["update the steps"]}`), nil
			})
		assessments.EXPECT().MarkDone(gomock.Any(), int64(8), "gpt-test", false, []string{"update the steps"}).Return(nil)

		svc := NewAssessmentService(articles, assessments, knowledge, llm,
			"gpt-test", testPrompts(), false, testLogger())

		result, err := svc.Assess(context.Background(), 42)
		require.NoError(t, err)
		assert.False(t, result.VerdictCurrent)
		assert.Equal(t, 1, result.RecommendationsCount)
	})

	t.Run("missing upstream body maps to not found", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		articles := mocks.NewMockArticleRepository(ctrl)
		assessments := mocks.NewMockAssessmentRepository(ctrl)
		knowledge := mocks.NewMockKnowledgeAPIRepository(ctrl)
		llm := mocks.NewMockLLMAPIRepository(ctrl)

		article := cachedArticle()
		article.BodyHTML = nil

		articles.EXPECT().FindByID(gomock.Any(), int64(42)).Return(article, nil)
		assessments.EXPECT().Create(gomock.Any(), int64(42)).Return(int64(12), nil)
		assessments.EXPECT().MarkRunning(gomock.Any(), int64(12)).Return(nil)
		knowledge.EXPECT().FetchArticleBody(gomock.Any(), "KB0010001").Return(nil, nil)
		assessments.EXPECT().MarkError(gomock.Any(), int64(12), gomock.Any()).Return(nil)

		svc := NewAssessmentService(articles, assessments, knowledge, llm,
			"gpt-test", testPrompts(), false, testLogger())

		_, err := svc.Assess(context.Background(), 42)
		assert.ErrorIs(t, err, models.ErrArticleNotFound)
	})

	t.Run("malformed first reply triggers one repair round-trip", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		articles := mocks.NewMockArticleRepository(ctrl)
		assessments := mocks.NewMockAssessmentRepository(ctrl)
		knowledge := mocks.NewMockKnowledgeAPIRepository(ctrl)
		llm := mocks.NewMockLLMAPIRepository(ctrl)

		articles.EXPECT().FindByID(gomock.Any(), int64(42)).Return(cachedArticle(), nil)
		assessments.EXPECT().Create(gomock.Any(), int64(42)).Return(int64(9), nil)
		assessments.EXPECT().MarkRunning(gomock.Any(), int64(9)).Return(nil)

		first := llm.EXPECT().Chat(gomock.Any(), gomock.Any()).
			Return(chatReply("Sure! The article looks outdated to me."), nil)
		llm.EXPECT().Chat(gomock.Any(), gomock.Any()).After(first).DoAndReturn(
			func(_ context.Context, messages []models.ChatMessage) (map[string]any, error) {
				// Original system+user plus the failed reply and the correction.
				require.Len(t, messages, 4)
				assert.Equal(t, models.RoleAssistant, messages[2].Role)
				assert.Equal(t, "Sure! The article looks outdated to me.", messages[2].Content)
				assert.Contains(t, messages[3].Content, "was not valid JSON")
				assert.Contains(t, messages[3].Content, "verdict_current (boolean)")

				return chatReply(`{"verdict_current": false, "recommendations": []}`), nil
			})
		assessments.EXPECT().MarkDone(gomock.Any(), int64(9), "gpt-test", false, []string{}).Return(nil)

		svc := NewAssessmentService(articles, assessments, knowledge, llm,
			"gpt-test", testPrompts(), false, testLogger())

		result, err := svc.Assess(context.Background(), 42)
		require.NoError(t, err)
		assert.False(t, result.VerdictCurrent)
	})

	t.Run("two malformed replies fail carrying the raw text", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		articles := mocks.NewMockArticleRepository(ctrl)
		assessments := mocks.NewMockAssessmentRepository(ctrl)
		knowledge := mocks.NewMockKnowledgeAPIRepository(ctrl)
		llm := mocks.NewMockLLMAPIRepository(ctrl)

		articles.EXPECT().FindByID(gomock.Any(), int64(42)).Return(cachedArticle(), nil)
		assessments.EXPECT().Create(gomock.Any(), int64(42)).Return(int64(10), nil)
		assessments.EXPECT().MarkRunning(gomock.Any(), int64(10)).Return(nil)
		llm.EXPECT().Chat(gomock.Any(), gomock.Any()).Return(chatReply("still not json"), nil).Times(2)
		assessments.EXPECT().MarkError(gomock.Any(), int64(10), gomock.Any()).Return(nil)

		svc := NewAssessmentService(articles, assessments, knowledge, llm,
			"gpt-test", testPrompts(), false, testLogger())

		_, err := svc.Assess(context.Background(), 42)
		require.Error(t, err)
		assert.ErrorIs(t, err, models.ErrModelOutput)
		assert.Contains(t, err.Error(), "Raw response: still not json")
	})

	t.Run("unknown article", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		articles := mocks.NewMockArticleRepository(ctrl)
		assessments := mocks.NewMockAssessmentRepository(ctrl)
		knowledge := mocks.NewMockKnowledgeAPIRepository(ctrl)
		llm := mocks.NewMockLLMAPIRepository(ctrl)

		articles.EXPECT().FindByID(gomock.Any(), int64(99)).Return(nil, nil)

		svc := NewAssessmentService(articles, assessments, knowledge, llm,
			"gpt-test", testPrompts(), false, testLogger())

		_, err := svc.Assess(context.Background(), 99)
		assert.ErrorIs(t, err, models.ErrArticleNotFound)
	})

	t.Run("non-positive article id", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		svc := NewAssessmentService(
			mocks.NewMockArticleRepository(ctrl),
			mocks.NewMockAssessmentRepository(ctrl),
			mocks.NewMockKnowledgeAPIRepository(ctrl),
			mocks.NewMockLLMAPIRepository(ctrl),
			"gpt-test", testPrompts(), false, testLogger())

		_, err := svc.Assess(context.Background(), 0)
		assert.ErrorIs(t, err, models.ErrInvalidInput)
	})

	t.Run("transport failure is written onto the assessment row", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		articles := mocks.NewMockArticleRepository(ctrl)
		assessments := mocks.NewMockAssessmentRepository(ctrl)
		knowledge := mocks.NewMockKnowledgeAPIRepository(ctrl)
		llm := mocks.NewMockLLMAPIRepository(ctrl)

		upstreamErr := errors.New("upstream request failed: llm status 503")

		articles.EXPECT().FindByID(gomock.Any(), int64(42)).Return(cachedArticle(), nil)
		assessments.EXPECT().Create(gomock.Any(), int64(42)).Return(int64(11), nil)
		assessments.EXPECT().MarkRunning(gomock.Any(), int64(11)).Return(nil)
		llm.EXPECT().Chat(gomock.Any(), gomock.Any()).Return(nil, upstreamErr)
		assessments.EXPECT().MarkError(gomock.Any(), int64(11), upstreamErr.Error()).Return(nil)

		svc := NewAssessmentService(articles, assessments, knowledge, llm,
			"gpt-test", testPrompts(), false, testLogger())

		_, err := svc.Assess(context.Background(), 42)
		assert.ErrorIs(t, err, upstreamErr)
	})
}
