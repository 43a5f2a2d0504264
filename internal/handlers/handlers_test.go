package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"inkwell/internal/assets"
	"inkwell/internal/cache"
	"inkwell/internal/db"
	"inkwell/internal/router"
)

const testSecret = "test-secret"

type testServer struct {
	router *gin.Engine
	db     *gorm.DB
	store  *assets.DiskStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	// Foreign key enforcement is switched on so the test database is at
	// least as strict as production; the schema itself carries no FK
	// constraints (see db.Config), so deletes never block or cascade.
	database, err := gorm.Open(sqlite.Open(":memory:?_foreign_keys=on"), db.Config())
	require.NoError(t, err)
	require.NoError(t, db.Migrate(database))

	store, err := assets.NewDiskStore(t.TempDir())
	require.NoError(t, err)

	detailCache, err := cache.New(64)
	require.NoError(t, err)

	r := gin.New()
	router.RegisterRoutes(r, database, store, detailCache, testSecret)
	return &testServer{router: r, db: database, store: store}
}

func (s *testServer) do(t *testing.T, method, path string, body io.Reader, contentType, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) doJSON(t *testing.T, method, path string, payload any, token string) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	return s.do(t, method, path, bytes.NewReader(body), "application/json", token)
}

// doMultipart sends fields plus an optional file under the "image" key.
func (s *testServer) doMultipart(t *testing.T, method, path string, fields map[string]string, fileName string, token string) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileName != "" {
		fw, err := w.CreateFormFile("image", fileName)
		require.NoError(t, err)
		_, err = fw.Write([]byte("image bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return s.do(t, method, path, &body, w.FormDataContentType(), token)
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var out []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}

// register creates a user through the API and returns its bearer token.
func (s *testServer) register(t *testing.T, username string) string {
	t.Helper()
	w := s.doJSON(t, "POST", "/api/auth/register", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "hunter2",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())
	return decode(t, w)["token"].(string)
}

func (s *testServer) createCategory(t *testing.T, token, name string) uint {
	t.Helper()
	w := s.doJSON(t, "POST", "/api/categories", map[string]string{"name": name}, token)
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())
	return uint(decode(t, w)["id"].(float64))
}

func (s *testServer) createPost(t *testing.T, token, title string, categoryID uint, fileName string) map[string]any {
	t.Helper()
	fields := map[string]string{
		"title":    title,
		"content":  "Body of " + title,
		"category": fmt.Sprint(categoryID),
	}
	w := s.doMultipart(t, "POST", "/api/posts", fields, fileName, token)
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())
	return decode(t, w)
}

func message(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decode(t, w)["message"].(string)
}
