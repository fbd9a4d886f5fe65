package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"kb-assessor/models"
	"kb-assessor/test/servicemocks"
)

func TestRewriteHandler_HandleRewrite(t *testing.T) {
	t.Parallel()

	t.Run("returns the rewritten draft", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		svc := servicemocks.NewMockRewriteService(ctrl)
		svc.EXPECT().Rewrite(gomock.Any(), int64(42), []string{"fix steps"}).Return(&models.RewriteResult{
			Success:          true,
			RewrittenContent: "<p>new body</p>",
			ChangesMade:      []string{"reworded intro"},
		}, nil)

		h := NewRewriteHandler(svc, testLogger())

		e := echo.New()
		c, rec := newJSONContext(e, http.MethodPost, "/api/v1/rewrite",
			`{"article_id": 42, "recommendations": ["fix steps"]}`)

		require.NoError(t, h.HandleRewrite(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		// echo escapes HTML inside JSON strings, so compare decoded fields.
		var result models.RewriteResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		assert.True(t, result.Success)
		assert.Equal(t, "<p>new body</p>", result.RewrittenContent)
		assert.Equal(t, []string{"reworded intro"}, result.ChangesMade)
	})

	t.Run("rejects a missing article id", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		h := NewRewriteHandler(servicemocks.NewMockRewriteService(ctrl), testLogger())

		e := echo.New()
		c, _ := newJSONContext(e, http.MethodPost, "/api/v1/rewrite", `{"recommendations": ["x"]}`)

		err := h.HandleRewrite(c)

		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	})

	t.Run("empty selection surfaces as invalid input", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		svc := servicemocks.NewMockRewriteService(ctrl)
		svc.EXPECT().Rewrite(gomock.Any(), int64(42), gomock.Nil()).Return(nil, models.ErrInvalidInput)

		h := NewRewriteHandler(svc, testLogger())

		e := echo.New()
		c, _ := newJSONContext(e, http.MethodPost, "/api/v1/rewrite", `{"article_id": 42}`)

		err := h.HandleRewrite(c)
		assert.ErrorIs(t, err, models.ErrInvalidInput)
	})
}
