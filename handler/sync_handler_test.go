package handler

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"kb-assessor/models"
	"kb-assessor/service"
	"kb-assessor/test/servicemocks"
)

func TestSyncHandler_HandleSync(t *testing.T) {
	t.Parallel()

	t.Run("empty body runs the default incremental sync", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		svc := servicemocks.NewMockSyncService(ctrl)
		svc.EXPECT().Sync(gomock.Any(), service.SyncOptions{}).Return(&models.SyncResult{
			Fetched:  3,
			Inserted: 1,
			Updated:  2,
			Since:    "2026-05-08 00:00:00",
		}, nil)

		h := NewSyncHandler(svc, testLogger())

		e := echo.New()
		c, rec := newJSONContext(e, http.MethodPost, "/api/v1/sync", "")

		require.NoError(t, h.HandleSync(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"fetched":3`)
	})

	t.Run("forwards since and full overrides", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		svc := servicemocks.NewMockSyncService(ctrl)
		svc.EXPECT().Sync(gomock.Any(), service.SyncOptions{Since: "2026-01-01 00:00:00", Full: true}).
			Return(&models.SyncResult{Full: true}, nil)

		h := NewSyncHandler(svc, testLogger())

		e := echo.New()
		c, rec := newJSONContext(e, http.MethodPost, "/api/v1/sync",
			`{"since": "2026-01-01 00:00:00", "full": true}`)

		require.NoError(t, h.HandleSync(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"full":true`)
	})

	t.Run("propagates sync failures", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		svc := servicemocks.NewMockSyncService(ctrl)
		svc.EXPECT().Sync(gomock.Any(), gomock.Any()).Return(nil, models.ErrUpstreamRequest)

		h := NewSyncHandler(svc, testLogger())

		e := echo.New()
		c, _ := newJSONContext(e, http.MethodPost, "/api/v1/sync", "")

		err := h.HandleSync(c)
		assert.ErrorIs(t, err, models.ErrUpstreamRequest)
	})
}
