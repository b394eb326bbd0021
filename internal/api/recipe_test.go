package api

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recipeshare/backend/internal/models"
)

func createRecipeViaAPI(t *testing.T, env *testEnv, token, title string) models.Recipe {
	t.Helper()
	w := performMultipart(t, env, "/api/v1/recipes", token, recipeForm{
		Title:       title,
		Description: "a description of " + title,
		Ingredients: []string{"salt", "pepper"},
		ImageName:   "dish.jpg",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var recipe models.Recipe
	decodeJSON(t, w, &recipe)
	return recipe
}

func TestCreateRecipe(t *testing.T) {
	env := setupTestEnv(t)
	userID, token := createTestUserAndToken(t, env)

	recipe := createRecipeViaAPI(t, env, token, "Tomato Soup")
	assert.Equal(t, "Tomato Soup", recipe.Title)
	assert.Equal(t, userID, recipe.UserID)
	assert.Equal(t, []string{"salt", "pepper"}, []string(recipe.Ingredients))

	// The image was uploaded before the row was inserted and the stored
	// URL points at the uploaded object.
	require.Len(t, env.Storage.uploads, 1)
	upload := env.Storage.uploads[0]
	assert.Equal(t, "recipe-images", upload.Bucket)
	assert.Regexp(t, `^\d+-dish\.jpg$`, upload.Key)
	assert.Equal(t, env.Storage.PublicURL(upload.Bucket, upload.Key), recipe.ImageURL)
}

func TestCreateRecipeRequiresAuth(t *testing.T) {
	env := setupTestEnv(t)

	w := performMultipart(t, env, "/api/v1/recipes", "", recipeForm{
		Title:       "Tomato Soup",
		Description: "desc",
		Ingredients: []string{"salt"},
		ImageName:   "dish.jpg",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateRecipeWithoutImage(t *testing.T) {
	env := setupTestEnv(t)
	_, token := createTestUserAndToken(t, env)

	w := performMultipart(t, env, "/api/v1/recipes", token, recipeForm{
		Title:       "Tomato Soup",
		Description: "desc",
		Ingredients: []string{"salt"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, env.Storage.uploads)

	var count int64
	require.NoError(t, env.DB.Model(&models.Recipe{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateRecipeWithoutIngredients(t *testing.T) {
	env := setupTestEnv(t)
	_, token := createTestUserAndToken(t, env)

	w := performMultipart(t, env, "/api/v1/recipes", token, recipeForm{
		Title:       "Tomato Soup",
		Description: "desc",
		ImageName:   "dish.jpg",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	// Validation failed before any storage call.
	assert.Empty(t, env.Storage.uploads)
}

func TestCreateRecipeUploadFailure(t *testing.T) {
	env := setupTestEnv(t)
	_, token := createTestUserAndToken(t, env)
	env.Storage.failing = true

	w := performMultipart(t, env, "/api/v1/recipes", token, recipeForm{
		Title:       "Tomato Soup",
		Description: "desc",
		Ingredients: []string{"salt"},
		ImageName:   "dish.jpg",
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	// A failed upload must not leave a recipe row behind.
	var count int64
	require.NoError(t, env.DB.Model(&models.Recipe{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestListRecipesNewestFirst(t *testing.T) {
	env := setupTestEnv(t)
	_, token := createTestUserAndToken(t, env)

	first := createRecipeViaAPI(t, env, token, "First")
	second := createRecipeViaAPI(t, env, token, "Second")
	// sqlite timestamps can tie within a test; force a strict order.
	require.NoError(t, env.DB.Model(&models.Recipe{}).Where("id = ?", first.ID).
		Update("created_at", first.CreatedAt.Add(-time.Second)).Error)

	w := performJSON(t, env, http.MethodGet, "/api/v1/recipes", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Recipes []models.Recipe `json:"recipes"`
	}
	decodeJSON(t, w, &resp)
	require.Len(t, resp.Recipes, 2)
	assert.Equal(t, second.ID, resp.Recipes[0].ID)
	assert.Equal(t, first.ID, resp.Recipes[1].ID)
}

func TestGetRecipe(t *testing.T) {
	env := setupTestEnv(t)
	_, token := createTestUserAndToken(t, env)
	created := createRecipeViaAPI(t, env, token, "Tomato Soup")

	w := performJSON(t, env, http.MethodGet, "/api/v1/recipes/"+created.ID.String(), "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var recipe models.Recipe
	decodeJSON(t, w, &recipe)
	assert.Equal(t, created.ID, recipe.ID)

	w = performJSON(t, env, http.MethodGet, "/api/v1/recipes/"+uuid.New().String(), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateRecipeSplitsIngredients(t *testing.T) {
	env := setupTestEnv(t)
	_, token := createTestUserAndToken(t, env)
	created := createRecipeViaAPI(t, env, token, "Tomato Soup")

	w := performJSON(t, env, http.MethodPut, "/api/v1/recipes/"+created.ID.String(), token, UpdateRecipeRequest{
		Title:       "Tomato Soup v2",
		Description: "richer",
		Ingredients: "salt, pepper ,  onion",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var recipe models.Recipe
	decodeJSON(t, w, &recipe)
	assert.Equal(t, "Tomato Soup v2", recipe.Title)
	assert.Equal(t, []string{"salt", "pepper", "onion"}, []string(recipe.Ingredients))
	// The image is untouched by edits.
	assert.Equal(t, created.ImageURL, recipe.ImageURL)
}

func TestUpdateRecipeNotOwner(t *testing.T) {
	env := setupTestEnv(t)
	_, ownerToken := createTestUserAndToken(t, env)
	created := createRecipeViaAPI(t, env, ownerToken, "Tomato Soup")
	_, otherToken := createTestUserAndToken(t, env)

	w := performJSON(t, env, http.MethodPut, "/api/v1/recipes/"+created.ID.String(), otherToken, UpdateRecipeRequest{
		Title:       "Hijacked",
		Description: "nope",
		Ingredients: "salt",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	var stored models.Recipe
	require.NoError(t, env.DB.First(&stored, "id = ?", created.ID).Error)
	assert.Equal(t, "Tomato Soup", stored.Title)
}

func TestDeleteRecipe(t *testing.T) {
	env := setupTestEnv(t)
	_, token := createTestUserAndToken(t, env)
	created := createRecipeViaAPI(t, env, token, "Tomato Soup")

	w := performJSON(t, env, http.MethodDelete, "/api/v1/recipes/"+created.ID.String(), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, env.DB.Model(&models.Recipe{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDeleteRecipeNotOwner(t *testing.T) {
	env := setupTestEnv(t)
	_, ownerToken := createTestUserAndToken(t, env)
	created := createRecipeViaAPI(t, env, ownerToken, "Tomato Soup")
	_, otherToken := createTestUserAndToken(t, env)

	w := performJSON(t, env, http.MethodDelete, "/api/v1/recipes/"+created.ID.String(), otherToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	var count int64
	require.NoError(t, env.DB.Model(&models.Recipe{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestFavoriteRecipeMessages(t *testing.T) {
	env := setupTestEnv(t)
	_, token := createTestUserAndToken(t, env)
	created := createRecipeViaAPI(t, env, token, "Tomato Soup")

	w := performJSON(t, env, http.MethodPost, fmt.Sprintf("/api/v1/recipes/%s/favorite", created.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	decodeJSON(t, w, &resp)
	assert.Equal(t, "Tomato Soup added to favorites", resp["message"])

	w = performJSON(t, env, http.MethodDelete, fmt.Sprintf("/api/v1/recipes/%s/favorite", created.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeJSON(t, w, &resp)
	assert.Equal(t, "Tomato Soup removed from favorites", resp["message"])
}

func TestFavoriteRequiresLoginNotice(t *testing.T) {
	env := setupTestEnv(t)
	_, token := createTestUserAndToken(t, env)
	created := createRecipeViaAPI(t, env, token, "Tomato Soup")

	w := performJSON(t, env, http.MethodPost, fmt.Sprintf("/api/v1/recipes/%s/favorite", created.ID), "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	var resp map[string]string
	decodeJSON(t, w, &resp)
	assert.Equal(t, "please login first", resp["error"])
}

func TestFavoriteMissingRecipe(t *testing.T) {
	env := setupTestEnv(t)
	_, token := createTestUserAndToken(t, env)

	w := performJSON(t, env, http.MethodPost, fmt.Sprintf("/api/v1/recipes/%s/favorite", uuid.New()), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
