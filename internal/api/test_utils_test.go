package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/recipeshare/backend/internal/middleware"
	"github.com/recipeshare/backend/internal/models"
	"github.com/recipeshare/backend/internal/service"
)

// fakeStorage implements service.IStorageService in memory and records
// every upload so tests can assert on bucket, key and content type.
type fakeStorage struct {
	mu      sync.Mutex
	uploads []fakeUpload
	failing bool
}

type fakeUpload struct {
	Bucket      string
	Key         string
	ContentType string
	Size        int64
}

func (f *fakeStorage) Upload(ctx context.Context, bucket, key, contentType string, body io.Reader) error {
	if f.failing {
		return fmt.Errorf("upload to %s rejected", bucket)
	}
	n, err := io.Copy(io.Discard, body)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads = append(f.uploads, fakeUpload{Bucket: bucket, Key: key, ContentType: contentType, Size: n})
	return nil
}

func (f *fakeStorage) PublicURL(bucket, key string) string {
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", bucket, key)
}

func (f *fakeStorage) RecipeImageBucket() string { return "recipe-images" }
func (f *fakeStorage) AvatarBucket() string      { return "avatars" }

// memorySessionStore is an in-process SessionStore for tests.
type memorySessionStore struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{revoked: make(map[string]time.Time)}
}

func (s *memorySessionStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[tokenID] = time.Now().Add(ttl)
	return nil
}

func (s *memorySessionStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	expiry, ok := s.revoked[tokenID]
	return ok && time.Now().Before(expiry), nil
}

// testEnv bundles the router and its backing pieces.
type testEnv struct {
	Router  *gin.Engine
	DB      *gorm.DB
	Storage *fakeStorage
	Auth    *service.AuthService
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Recipe{},
		&models.Favorite{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	storage := &fakeStorage{}
	authService := service.NewAuthService(db, "test-secret", newMemorySessionStore())
	recipeService := service.NewRecipeService(db)
	favoriteService := service.NewFavoriteService(db)
	profileService := service.NewProfileService(db)

	router := gin.New()
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")
	NewAuthHandler(authService).RegisterRoutes(v1)
	NewRecipeHandler(recipeService, favoriteService, storage, authService).RegisterRoutes(v1)
	NewFavoriteHandler(favoriteService, authService).RegisterRoutes(v1)
	NewProfileHandler(profileService, authService, storage).RegisterRoutes(v1)

	return &testEnv{Router: router, DB: db, Storage: storage, Auth: authService}
}

// createTestUserAndToken signs up and logs in a fresh account.
func createTestUserAndToken(t *testing.T, env *testEnv) (uuid.UUID, string) {
	t.Helper()
	ctx := context.Background()
	email := fmt.Sprintf("user+%s@example.com", uuid.New().String())

	user, profileErr, err := env.Auth.Register(ctx, email, "testpassword123")
	if err != nil {
		t.Fatalf("failed to register test user: %v", err)
	}
	if profileErr != nil {
		t.Fatalf("failed to create test profile: %v", profileErr)
	}

	_, token, err := env.Auth.Login(ctx, email, "testpassword123")
	if err != nil {
		t.Fatalf("failed to log in test user: %v", err)
	}
	return user.ID, token
}

// performJSON makes a JSON request against the test router.
func performJSON(t *testing.T, env *testEnv, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewBuffer(jsonBody)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	env.Router.ServeHTTP(w, req)
	return w
}

// recipeForm builds the multipart body for the add-recipe endpoint.
type recipeForm struct {
	Title       string
	Description string
	Ingredients []string
	ImageName   string
}

func performMultipart(t *testing.T, env *testEnv, path, token string, form recipeForm) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if form.Title != "" {
		if err := writer.WriteField("title", form.Title); err != nil {
			t.Fatalf("failed to write title field: %v", err)
		}
	}
	if form.Description != "" {
		if err := writer.WriteField("description", form.Description); err != nil {
			t.Fatalf("failed to write description field: %v", err)
		}
	}
	for _, ingredient := range form.Ingredients {
		if err := writer.WriteField("ingredients", ingredient); err != nil {
			t.Fatalf("failed to write ingredient field: %v", err)
		}
	}
	if form.ImageName != "" {
		part, err := writer.CreateFormFile("image", form.ImageName)
		if err != nil {
			t.Fatalf("failed to create image part: %v", err)
		}
		if _, err := part.Write([]byte("fake image bytes")); err != nil {
			t.Fatalf("failed to write image bytes: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	env.Router.ServeHTTP(w, req)
	return w
}

func performAvatarUpload(t *testing.T, env *testEnv, token, filename string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if filename != "" {
		part, err := writer.CreateFormFile("avatar", filename)
		if err != nil {
			t.Fatalf("failed to create avatar part: %v", err)
		}
		if _, err := part.Write([]byte("fake avatar bytes")); err != nil {
			t.Fatalf("failed to write avatar bytes: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/profile/avatar", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	env.Router.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
}
