// Package recipe is a pass-through client for the Spoonacular recipe API.
package recipe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pantrychef/pantrychef/internal/metrics"
	"github.com/pantrychef/pantrychef/internal/model"
)

const (
	// DefaultBaseURL is the public Spoonacular endpoint.
	DefaultBaseURL = "https://api.spoonacular.com"

	// DefaultLimit is the number of search results requested when none is given.
	DefaultLimit = 10

	// Operation names, used in errors and metrics.
	OpFindByIngredients = "find_by_ingredients"
	OpAnalyzedSteps     = "analyzed_instructions"
)

// Config holds the upstream location and credential.
type Config struct {
	BaseURL string
	APIKey  string
}

// Summary is the projection of a search result returned to callers.
type Summary struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Image string `json:"image"`
}

// Client performs stateless round trips to the recipe service.
// No retries, no caching.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	metrics    metrics.Recorder
}

// NewClient creates a Client. A nil httpClient uses NewHTTPClient.
func NewClient(cfg Config, httpClient *http.Client, recorder metrics.Recorder) *Client {
	if httpClient == nil {
		httpClient = NewHTTPClient()
	}
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		httpClient: httpClient,
		metrics:    recorder,
	}
}

type searchResult struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Image string `json:"image"`
}

// FindByIngredients searches recipes that use the given ingredients.
// Blank entries are ignored; limit <= 0 means DefaultLimit.
func (c *Client) FindByIngredients(ctx context.Context, ingredients []string, limit int) ([]Summary, error) {
	cleaned := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		if ing = strings.TrimSpace(ing); ing != "" {
			cleaned = append(cleaned, ing)
		}
	}
	if len(cleaned) == 0 {
		return nil, model.NewValidationError("ingredients", "at least one ingredient is required")
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	params := url.Values{}
	params.Set("ingredients", strings.Join(cleaned, ","))
	params.Set("number", strconv.Itoa(limit))

	var results []searchResult
	if err := c.get(ctx, OpFindByIngredients, "/recipes/findByIngredients", params, &results); err != nil {
		return nil, err
	}

	summaries := make([]Summary, 0, len(results))
	for _, r := range results {
		summaries = append(summaries, Summary{ID: r.ID, Title: r.Title, Image: r.Image})
	}
	return summaries, nil
}

type instructionSection struct {
	Name  string `json:"name"`
	Steps []struct {
		Number int    `json:"number"`
		Step   string `json:"step"`
	} `json:"steps"`
}

// GetAnalyzedSteps returns the recipe's step texts, flattened across sections
// in upstream order. An empty upstream payload yields an empty slice.
func (c *Client) GetAnalyzedSteps(ctx context.Context, recipeID string) ([]string, error) {
	recipeID = strings.TrimSpace(recipeID)
	if recipeID == "" {
		return nil, model.NewValidationError("recipe_id", "is required")
	}

	var sections []instructionSection
	path := "/recipes/" + url.PathEscape(recipeID) + "/analyzedInstructions"
	if err := c.get(ctx, OpAnalyzedSteps, path, url.Values{}, &sections); err != nil {
		return nil, err
	}

	steps := make([]string, 0)
	for _, section := range sections {
		for _, s := range section.Steps {
			steps = append(steps, s.Step)
		}
	}
	return steps, nil
}

// get issues one GET request and decodes a JSON body into dst.
// An empty body leaves dst untouched.
func (c *Client) get(ctx context.Context, op, path string, params url.Values, dst any) (err error) {
	start := time.Now()
	defer func() {
		status := "success"
		if err != nil {
			status = "error"
		}
		c.metrics.IncRecipeLookup(op, status)
		c.metrics.ObserveRecipeLookupDuration(op, time.Since(start))
	}()

	params.Set("apiKey", c.apiKey)
	endpoint := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &UpstreamError{Op: op, Err: redactKey(err, c.apiKey)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &UpstreamError{Op: op, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &UpstreamError{Op: op, Err: fmt.Errorf("read body: %w", err)}
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return &UpstreamError{Op: op, Err: fmt.Errorf("decode body: %w", err)}
	}

	return nil
}

// redactKey strips the API key from transport errors, which embed the request
// URL. The URL carries the query-escaped form of the key, so both are replaced.
func redactKey(err error, key string) error {
	if key == "" {
		return err
	}
	msg := err.Error()
	redacted := msg
	for _, form := range []string{key, url.QueryEscape(key)} {
		redacted = strings.ReplaceAll(redacted, form, "[redacted]")
	}
	if redacted == msg {
		return err
	}
	return errors.New(redacted)
}
