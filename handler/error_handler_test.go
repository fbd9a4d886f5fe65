package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"kb-assessor/models"
)

func TestHTTPErrorHandler(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err        error
		wantStatus int
	}{
		"article not found": {
			err:        fmt.Errorf("%w: 42", models.ErrArticleNotFound),
			wantStatus: http.StatusNotFound,
		},
		"no completed assessment": {
			err:        fmt.Errorf("%w: 42", models.ErrNoCompletedAssessment),
			wantStatus: http.StatusNotFound,
		},
		"invalid input": {
			err:        fmt.Errorf("%w: article id must be positive", models.ErrInvalidInput),
			wantStatus: http.StatusBadRequest,
		},
		"upstream failure": {
			err:        fmt.Errorf("%w: servicenow status 503", models.ErrUpstreamRequest),
			wantStatus: http.StatusBadGateway,
		},
		"malformed model output": {
			err:        fmt.Errorf("%w: llm returned invalid JSON", models.ErrModelOutput),
			wantStatus: http.StatusUnprocessableEntity,
		},
		"echo http error passes through": {
			err:        echo.NewHTTPError(http.StatusBadRequest, "article_id is required"),
			wantStatus: http.StatusBadRequest,
		},
		"unknown error is a 500": {
			err:        errors.New("something odd"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			e := echo.New()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/assess", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			NewHTTPErrorHandler(false, testLogger())(tc.err, c)

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), `"status":"error"`)
			assert.Contains(t, rec.Body.String(), `"error":`)
		})
	}
}

func TestHTTPErrorHandler_CommittedResponse(t *testing.T) {
	t.Parallel()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := c.JSON(http.StatusOK, map[string]string{"already": "written"})
	assert.NoError(t, err)

	NewHTTPErrorHandler(false, testLogger())(errors.New("late failure"), c)

	// The handler must not clobber a response that already went out.
	assert.Equal(t, http.StatusOK, rec.Code)
}
