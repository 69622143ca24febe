package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/spicelab/recipebox/internal/models"
)

// Client speaks the backend's HTTP contract.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// SetToken attaches a bearer token to subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

type recipesResponse struct {
	Success bool            `json:"success"`
	Data    []models.Recipe `json:"data"`
}

type favoritesResponse struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Favorites []models.Recipe `json:"favorites"`
}

type authResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Token   string            `json:"token"`
	User    models.PublicUser `json:"user"`
}

// Recipes fetches the canonical catalog. On any transport or decode failure
// it falls back to the built-in sample catalog; the caller never sees an
// error for this path.
func (c *Client) Recipes(ctx context.Context) []models.Recipe {
	var resp recipesResponse
	if err := c.do(ctx, http.MethodGet, "/api/recipes", nil, &resp); err != nil {
		return SampleRecipes()
	}
	return resp.Data
}

// Login authenticates and stores the session token on the client.
func (c *Client) Login(ctx context.Context, email, password string) (models.PublicUser, error) {
	body := map[string]string{"email": email, "password": password}
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &resp); err != nil {
		return models.PublicUser{}, err
	}
	if !resp.Success {
		return models.PublicUser{}, fmt.Errorf("login failed: %s", resp.Message)
	}
	c.token = resp.Token
	return resp.User, nil
}

// Signup registers an account and stores the session token on the client.
func (c *Client) Signup(ctx context.Context, name, email, password string) (models.PublicUser, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/signup", body, &resp); err != nil {
		return models.PublicUser{}, err
	}
	if !resp.Success {
		return models.PublicUser{}, fmt.Errorf("signup failed: %s", resp.Message)
	}
	c.token = resp.Token
	return resp.User, nil
}

// Favorites fetches the server-side favorites list.
func (c *Client) Favorites(ctx context.Context) ([]models.Recipe, error) {
	var resp favoritesResponse
	if err := c.do(ctx, http.MethodGet, "/api/me/favorites", nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("fetch favorites: %s", resp.Message)
	}
	return resp.Favorites, nil
}

// AddFavorite marks the recipe as a favorite and returns the updated list.
// The operation is idempotent server-side.
func (c *Client) AddFavorite(ctx context.Context, recipeID string) ([]models.Recipe, error) {
	var resp favoritesResponse
	if err := c.do(ctx, http.MethodPost, "/api/me/favorites/"+recipeID, nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("add favorite: %s", resp.Message)
	}
	return resp.Favorites, nil
}

// RemoveFavorite unmarks the recipe and returns the updated list.
func (c *Client) RemoveFavorite(ctx context.Context, recipeID string) ([]models.Recipe, error) {
	var resp favoritesResponse
	if err := c.do(ctx, http.MethodDelete, "/api/me/favorites/"+recipeID, nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("remove favorite: %s", resp.Message)
	}
	return resp.Favorites, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return fmt.Errorf("%s %s: server error %d", method, path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// MergeRecipes combines two catalogs, de-duplicating by recipe id with
// first-seen-wins, preserving the order of the combined sequence.
func MergeRecipes(primary, fallback []models.Recipe) []models.Recipe {
	seen := make(map[string]bool, len(primary)+len(fallback))
	merged := make([]models.Recipe, 0, len(primary)+len(fallback))
	for _, r := range append(append([]models.Recipe{}, primary...), fallback...) {
		id := r.ID.String()
		if seen[id] {
			continue
		}
		seen[id] = true
		merged = append(merged, r)
	}
	return merged
}
