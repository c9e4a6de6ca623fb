package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// Client is a typed HTTP client for the cookbook API.
type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

type Option func(*Client)

// WithHTTPClient replaces the underlying transport, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithToken starts the client with an existing session token.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken swaps the bearer token used for authenticated requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

func (c *Client) Register(ctx context.Context, firstname, lastname, email, password string) (*Session, error) {
	body := map[string]string{
		"firstname": firstname,
		"lastname":  lastname,
		"email":     email,
		"password":  password,
	}
	var session Session
	if err := c.do(ctx, http.MethodPost, "/user/register", nil, body, &session); err != nil {
		return nil, err
	}
	c.SetToken(session.Token)
	return &session, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	body := map[string]string{"email": email, "password": password}
	var session Session
	if err := c.do(ctx, http.MethodPost, "/user/login", nil, body, &session); err != nil {
		return nil, err
	}
	c.SetToken(session.Token)
	return &session, nil
}

func (c *Client) Recipes(ctx context.Context) ([]Recipe, error) {
	var recipes []Recipe
	err := c.do(ctx, http.MethodGet, "/recipes", nil, nil, &recipes)
	return recipes, err
}

func (c *Client) Recipe(ctx context.Context, id string) (*Recipe, error) {
	var recipe Recipe
	if err := c.do(ctx, http.MethodGet, "/recipe/"+id, nil, nil, &recipe); err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (c *Client) MyRecipes(ctx context.Context) ([]Recipe, error) {
	var recipes []Recipe
	err := c.do(ctx, http.MethodGet, "/user/recipe", nil, nil, &recipes)
	return recipes, err
}

func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var categories []Category
	err := c.do(ctx, http.MethodGet, "/categories", nil, nil, &categories)
	return categories, err
}

func (c *Client) Search(ctx context.Context, tags, categories []string) ([]Recipe, error) {
	query := url.Values{}
	if len(tags) > 0 {
		query.Set("tags", strings.Join(tags, ","))
	}
	if len(categories) > 0 {
		query.Set("category", strings.Join(categories, ","))
	}

	var recipes []Recipe
	err := c.do(ctx, http.MethodGet, "/search", query, nil, &recipes)
	return recipes, err
}

func (c *Client) Saved(ctx context.Context) ([]Recipe, error) {
	var resp struct {
		SavedRecipes []Recipe `json:"savedRecipes"`
	}
	if err := c.do(ctx, http.MethodGet, "/saved", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.SavedRecipes, nil
}

func (c *Client) CreateRecipe(ctx context.Context, recipe Recipe) (*Recipe, error) {
	var created Recipe
	if err := c.do(ctx, http.MethodPost, "/recipe", nil, recipe, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) CreateCategory(ctx context.Context, name string) (*Category, error) {
	var created Category
	if err := c.do(ctx, http.MethodPost, "/category", nil, map[string]string{"name": name}, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) SaveRecipe(ctx context.Context, recipeID string) error {
	return c.do(ctx, http.MethodPut, "/save/recipe", nil, map[string]string{"recipe": recipeID}, nil)
}

func (c *Client) UnsaveRecipe(ctx context.Context, recipeID string) error {
	return c.do(ctx, http.MethodPut, "/save/delete/recipe", nil, map[string]string{"recipe": recipeID}, nil)
}

// Rate stores the caller's rating and returns the recipe's updated rating
// set.
func (c *Client) Rate(ctx context.Context, recipeID string, value int) ([]RatingEntry, error) {
	body := map[string]interface{}{"recipe": recipeID, "rating": value}
	var resp struct {
		Rating []RatingEntry `json:"rating"`
	}
	if err := c.do(ctx, http.MethodPut, "/rate/recipe", nil, body, &resp); err != nil {
		return nil, err
	}
	return resp.Rating, nil
}

func (c *Client) Comment(ctx context.Context, recipeID, text string) error {
	body := map[string]string{"recipe": recipeID, "comment": text}
	return c.do(ctx, http.MethodPut, "/comment/recipe", nil, body, nil)
}

// RateAndComment composes the two atomic primitives instead of calling the
// server's composite endpoint, keeping validation in one place per
// operation. The rating goes first so a rejected comment leaves a valid
// rating behind rather than the other way around.
func (c *Client) RateAndComment(ctx context.Context, recipeID string, value int, text string) error {
	if _, err := c.Rate(ctx, recipeID, value); err != nil {
		return err
	}
	return c.Comment(ctx, recipeID, text)
}

func (c *Client) DeleteRecipe(ctx context.Context, recipeID string) error {
	return c.do(ctx, http.MethodDelete, "/delete/"+recipeID, nil, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return &APIError{Status: resp.StatusCode, Message: apiErr.Error}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
