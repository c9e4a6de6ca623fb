package api_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type savedResponse struct {
	SavedRecipes []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"savedRecipes"`
}

func TestBookmarkFlow(t *testing.T) {
	app := newTestApp()
	token, _ := app.register(t, "Alice", "alice@example.com")
	recipeID := app.createRecipe(t, token, nil)

	w := app.do(t, http.MethodPut, "/save/recipe", token, map[string]string{"recipe": recipeID})
	require.Equal(t, http.StatusCreated, w.Code)

	// Saving again must not duplicate the bookmark.
	w = app.do(t, http.MethodPut, "/save/recipe", token, map[string]string{"recipe": recipeID})
	require.Equal(t, http.StatusCreated, w.Code)

	w = app.do(t, http.MethodGet, "/saved", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var saved savedResponse
	decode(t, w, &saved)
	require.Len(t, saved.SavedRecipes, 1)
	assert.Equal(t, recipeID, saved.SavedRecipes[0].ID)

	w = app.do(t, http.MethodPut, "/save/delete/recipe", token, map[string]string{"recipe": recipeID})
	require.Equal(t, http.StatusCreated, w.Code)

	// Removing an absent bookmark stays a success.
	w = app.do(t, http.MethodPut, "/save/delete/recipe", token, map[string]string{"recipe": recipeID})
	require.Equal(t, http.StatusCreated, w.Code)

	w = app.do(t, http.MethodGet, "/saved", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &saved)
	assert.Empty(t, saved.SavedRecipes)
}

func TestSavedPreservesBookmarkOrder(t *testing.T) {
	app := newTestApp()
	token, _ := app.register(t, "Alice", "alice@example.com")

	first := app.createRecipe(t, token, map[string]interface{}{
		"name": "First", "directions": "cook", "portion": 1, "time": 5,
	})
	second := app.createRecipe(t, token, map[string]interface{}{
		"name": "Second", "directions": "cook", "portion": 1, "time": 5,
	})

	for _, id := range []string{second, first} {
		w := app.do(t, http.MethodPut, "/save/recipe", token, map[string]string{"recipe": id})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := app.do(t, http.MethodGet, "/saved", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var saved savedResponse
	decode(t, w, &saved)
	require.Len(t, saved.SavedRecipes, 2)
	assert.Equal(t, "Second", saved.SavedRecipes[0].Name)
	assert.Equal(t, "First", saved.SavedRecipes[1].Name)
}

func TestBookmarkRequiresAuth(t *testing.T) {
	app := newTestApp()

	w := app.do(t, http.MethodPut, "/save/recipe", "", map[string]string{"recipe": "ffffffffffffffffffffffff"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = app.do(t, http.MethodGet, "/saved", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBookmarkMissingBody(t *testing.T) {
	app := newTestApp()
	token, _ := app.register(t, "Alice", "alice@example.com")

	w := app.do(t, http.MethodPut, "/save/recipe", token, map[string]string{})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
