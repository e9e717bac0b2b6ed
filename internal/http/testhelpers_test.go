package http

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/bookhouse/internal/database"
	"github.com/mrlokans/bookhouse/internal/database/favourites"
	"github.com/mrlokans/bookhouse/internal/database/notes"
	"github.com/mrlokans/bookhouse/internal/database/progress"
	"github.com/mrlokans/bookhouse/internal/database/settings"
)

type testStores struct {
	db         *database.Database
	notes      *notes.Repository
	progress   *progress.Repository
	favourites *favourites.Repository
}

func setupTestStores(t *testing.T) *testStores {
	t.Helper()

	db, err := database.Open(filepath.Join(t.TempDir(), "bookhouse.db"), database.Options{LogLevel: logger.Silent})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	progressRepo := progress.NewRepository(db.DB)
	return &testStores{
		db:         db,
		notes:      notes.NewRepository(db.DB),
		progress:   progressRepo,
		favourites: favourites.NewRepository(settings.NewRepository(db.DB), progressRepo),
	}
}

func performRequest(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeJSON[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}


func uintToString(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}
