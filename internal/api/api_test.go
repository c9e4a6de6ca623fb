package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/cookbookhq/backend/internal/api"
	"github.com/cookbookhq/backend/internal/mocks"
	"github.com/cookbookhq/backend/internal/pkg/logger"
	"github.com/cookbookhq/backend/internal/router"
	"github.com/cookbookhq/backend/internal/service"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// testApp wires the full router over in-memory stores.
type testApp struct {
	engine     *gin.Engine
	recipes    *mocks.RecipeStore
	users      *mocks.UserStore
	categories *mocks.CategoryStore
}

func newTestApp() *testApp {
	app := &testApp{
		recipes:    mocks.NewRecipeStore(),
		users:      mocks.NewUserStore(),
		categories: mocks.NewCategoryStore(),
	}

	log := logger.NewNop()
	authService := service.NewAuthService(app.users, "test-secret", time.Hour)
	recipeService := service.NewRecipeService(app.recipes, app.users, app.categories, nil, log)
	queryService := service.NewQueryService(app.recipes, app.users, app.categories, nil, log)

	app.engine = router.Setup(
		api.NewAuthHandler(authService),
		api.NewRecipeHandler(recipeService, queryService),
		api.NewBookmarkHandler(recipeService, queryService),
		api.NewCategoryHandler(recipeService, queryService),
		authService,
		nil,
		[]string{"http://localhost:5173"},
		log,
	)
	return app
}

func (app *testApp) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	app.engine.ServeHTTP(w, req)
	return w
}

func (app *testApp) register(t *testing.T, firstname, email string) (token, userID string) {
	t.Helper()

	w := app.do(t, http.MethodPost, "/user/register", "", map[string]string{
		"firstname": firstname,
		"lastname":  "Tester",
		"email":     email,
		"password":  "supersecret",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp api.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Token, resp.User.ID
}

func (app *testApp) createRecipe(t *testing.T, token string, body map[string]interface{}) string {
	t.Helper()

	if body == nil {
		body = map[string]interface{}{
			"name":       "Carbonara",
			"directions": "Cook it",
			"portion":    4,
			"time":       30,
		}
	}
	w := app.do(t, http.MethodPost, "/recipe", token, body)
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)
	return created.ID
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dest))
}
