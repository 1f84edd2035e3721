package posts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"module/postforge/internal/models"
	"module/postforge/internal/repo"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type stubGenerator struct {
	text string
	err  error
}

func (g *stubGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	return g.text, g.err
}

type testEnv struct {
	router    *gin.Engine
	postRepo  *repo.PostRepo
	generator *stubGenerator
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Post{}))

	postRepo := repo.NewPostRepo(db)
	generator := &stubGenerator{text: "generated post text"}
	service := NewPostService(postRepo, generator, nil)

	// stands in for the auth middleware
	authStub := func(ctx *gin.Context) {
		ctx.Set("user_id", "u1")
		ctx.Next()
	}

	router := gin.New()
	router.GET("/api/posts", authStub, service.GetPosts)
	router.POST("/api/posts", authStub, service.CreatePost)
	router.PUT("/api/posts", authStub, service.UpdatePost)
	router.DELETE("/api/posts", authStub, service.DeletePost)
	router.POST("/api/generate-post", authStub, service.GeneratePost)

	return &testEnv{router: router, postRepo: postRepo, generator: generator}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var envelope struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope.Data
}

func TestCreatePost(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(t, http.MethodPost, "/api/posts", gin.H{
		"topic": "Remote work", "user_id": "u1",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	post := decodeData(t, rec)["post"].(map[string]interface{})
	assert.NotEmpty(t, post["id"])
	assert.NotEmpty(t, post["created_at"])
	assert.Equal(t, "Remote work", post["topic"])
	assert.Nil(t, post["tone"])
	assert.Nil(t, post["content"])
}

func TestCreatePostMissingRequiredFields(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(t, http.MethodPost, "/api/posts", gin.H{"user_id": "u1"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = e.do(t, http.MethodPost, "/api/posts", gin.H{"topic": "Remote work"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetPostsRequiresUserId(t *testing.T) {
	e := newTestEnv(t)
	rec := e.do(t, http.MethodGet, "/api/posts", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetPostsNewestFirst(t *testing.T) {
	e := newTestEnv(t)

	for _, topic := range []string{"one", "two"} {
		rec := e.do(t, http.MethodPost, "/api/posts", gin.H{"topic": topic, "user_id": "u1"})
		require.Equal(t, http.StatusCreated, rec.Code)
	}
	// creation timestamps may collide inside one test tick, so order the
	// rows explicitly
	require.NoError(t, e.postRepo.DB.Exec(
		"UPDATE posts SET created_at = datetime('now', '-1 hour') WHERE topic = 'one'").Error)

	rec := e.do(t, http.MethodGet, "/api/posts?user_id=u1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	posts := decodeData(t, rec)["posts"].([]interface{})
	require.Len(t, posts, 2)
	assert.Equal(t, "two", posts[0].(map[string]interface{})["topic"])
	assert.Equal(t, "one", posts[1].(map[string]interface{})["topic"])
}

func TestUpdatePostPartial(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(t, http.MethodPost, "/api/posts", gin.H{
		"topic": "Remote work", "user_id": "u1", "tone": "casual",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decodeData(t, rec)["post"].(map[string]interface{})["id"].(string)

	rec = e.do(t, http.MethodPut, "/api/posts", gin.H{
		"id": id, "content": "edited body",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	post := decodeData(t, rec)["post"].(map[string]interface{})
	assert.Equal(t, "edited body", post["content"])
	assert.Equal(t, "Remote work", post["topic"])
	assert.Equal(t, "casual", post["tone"])
}

func TestUpdatePostMissingId(t *testing.T) {
	e := newTestEnv(t)
	rec := e.do(t, http.MethodPut, "/api/posts", gin.H{"topic": "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdatePostNotFound(t *testing.T) {
	e := newTestEnv(t)
	rec := e.do(t, http.MethodPut, "/api/posts", gin.H{"id": uuid.NewString(), "topic": "x"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeletePost(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(t, http.MethodPost, "/api/posts", gin.H{"topic": "bye", "user_id": "u1"})
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decodeData(t, rec)["post"].(map[string]interface{})["id"].(string)

	rec = e.do(t, http.MethodDelete, fmt.Sprintf("/api/posts?id=%s", id), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(t, http.MethodGet, "/api/posts?user_id=u1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeData(t, rec)["posts"])
}

func TestDeletePostMissingId(t *testing.T) {
	e := newTestEnv(t)
	rec := e.do(t, http.MethodDelete, "/api/posts", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeletePostNotFound(t *testing.T) {
	e := newTestEnv(t)
	rec := e.do(t, http.MethodDelete, "/api/posts?id="+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGeneratePost(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(t, http.MethodPost, "/api/generate-post", gin.H{"prompt": "write about remote work"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "generated post text", decodeData(t, rec)["generatedText"])
}

func TestGeneratePostMissingPrompt(t *testing.T) {
	e := newTestEnv(t)
	rec := e.do(t, http.MethodPost, "/api/generate-post", gin.H{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGeneratePostUpstreamFailure(t *testing.T) {
	e := newTestEnv(t)
	e.generator.err = errors.New("upstream down")

	rec := e.do(t, http.MethodPost, "/api/generate-post", gin.H{"prompt": "anything"})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
