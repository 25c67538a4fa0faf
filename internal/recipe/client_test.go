package recipe

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"strings"
	"testing"

	"github.com/pantrychef/pantrychef/internal/metrics"
	"github.com/pantrychef/pantrychef/internal/model"
)

func newStubClient(t *testing.T, handler http.HandlerFunc) (*Client, *metrics.InMemoryRecorder) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	recorder := metrics.NewInMemory()
	return NewClient(Config{BaseURL: srv.URL + "/", APIKey: "test-key"}, srv.Client(), recorder), recorder
}

func requireUpstreamError(t *testing.T, err error) *UpstreamError {
	t.Helper()
	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected *UpstreamError, got %T: %v", err, err)
	}
	return upstream
}

func TestFindByIngredients(t *testing.T) {
	t.Run("maps results and drops extra fields", func(t *testing.T) {
		var gotPath, gotIngredients, gotNumber, gotKey string
		client, recorder := newStubClient(t, func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotIngredients = r.URL.Query().Get("ingredients")
			gotNumber = r.URL.Query().Get("number")
			gotKey = r.URL.Query().Get("apiKey")
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"id":1,"title":"Omelette","image":"x.jpg","usedIngredientCount":2,"likes":7}]`))
		})

		recipes, err := client.FindByIngredients(context.Background(), []string{"egg", "milk"}, 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := []Summary{{ID: 1, Title: "Omelette", Image: "x.jpg"}}
		if !reflect.DeepEqual(recipes, want) {
			t.Errorf("recipes = %+v, want %+v", recipes, want)
		}
		if gotPath != "/recipes/findByIngredients" {
			t.Errorf("path = %s", gotPath)
		}
		if gotIngredients != "egg,milk" || gotNumber != "10" || gotKey != "test-key" {
			t.Errorf("unexpected query: ingredients=%q number=%q apiKey=%q", gotIngredients, gotNumber, gotKey)
		}
		if got := recorder.Snapshot().RecipeLookups[OpFindByIngredients].Success; got != 1 {
			t.Errorf("success lookups = %d, want 1", got)
		}
	})

	t.Run("custom limit and blank entries", func(t *testing.T) {
		var gotIngredients, gotNumber string
		client, _ := newStubClient(t, func(w http.ResponseWriter, r *http.Request) {
			gotIngredients = r.URL.Query().Get("ingredients")
			gotNumber = r.URL.Query().Get("number")
			_, _ = w.Write([]byte(`[]`))
		})

		recipes, err := client.FindByIngredients(context.Background(), []string{" tomato ", "", "basil"}, 3)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if recipes == nil || len(recipes) != 0 {
			t.Errorf("expected empty non-nil result, got %#v", recipes)
		}
		if gotIngredients != "tomato,basil" || gotNumber != "3" {
			t.Errorf("unexpected query: ingredients=%q number=%q", gotIngredients, gotNumber)
		}
	})

	t.Run("empty ingredient list is a validation error", func(t *testing.T) {
		called := false
		client, _ := newStubClient(t, func(w http.ResponseWriter, r *http.Request) {
			called = true
		})

		_, err := client.FindByIngredients(context.Background(), []string{" ", ""}, 0)
		if !model.IsValidationError(err) {
			t.Fatalf("expected validation error, got %v", err)
		}
		if called {
			t.Error("upstream should not be called")
		}
	})

	t.Run("non-success status is an upstream error", func(t *testing.T) {
		client, recorder := newStubClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusPaymentRequired)
			_, _ = w.Write([]byte(`{"status":"failure","message":"quota exceeded"}`))
		})

		_, err := client.FindByIngredients(context.Background(), []string{"egg"}, 0)

		upstream := requireUpstreamError(t, err)
		if upstream.StatusCode != http.StatusPaymentRequired || upstream.Op != OpFindByIngredients {
			t.Errorf("unexpected upstream error: %+v", upstream)
		}
		if got := recorder.Snapshot().RecipeLookups[OpFindByIngredients].Error; got != 1 {
			t.Errorf("error lookups = %d, want 1", got)
		}
	})

	t.Run("malformed body is an upstream error", func(t *testing.T) {
		client, _ := newStubClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{not json`))
		})

		_, err := client.FindByIngredients(context.Background(), []string{"egg"}, 0)

		if upstream := requireUpstreamError(t, err); upstream.StatusCode != 0 {
			t.Errorf("StatusCode = %d, want 0", upstream.StatusCode)
		}
	})
}

func TestFindByIngredients_FollowsRedirect(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/recipes/findByIngredients", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/v2/recipes/findByIngredients?"+r.URL.RawQuery, http.StatusMovedPermanently)
	})
	mux.HandleFunc("/v2/recipes/findByIngredients", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("apiKey") != "test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`[{"id":1,"title":"Shakshuka","image":"s.jpg"}]`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	// nil selects the production client built by NewHTTPClient.
	client := NewClient(Config{BaseURL: srv.URL, APIKey: "test-key"}, nil, nil)

	recipes, err := client.FindByIngredients(context.Background(), []string{"egg"}, 0)
	if err != nil {
		t.Fatalf("expected redirect to be followed, got %v", err)
	}
	if len(recipes) != 1 || recipes[0].Title != "Shakshuka" {
		t.Errorf("unexpected recipes: %+v", recipes)
	}
}

func TestGetAnalyzedSteps(t *testing.T) {
	t.Run("flattens sections in order", func(t *testing.T) {
		var gotPath string
		client, _ := newStubClient(t, func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			_, _ = w.Write([]byte(`[
				{"name":"","steps":[{"number":1,"step":"Crack eggs"},{"number":2,"step":"Whisk"}]},
				{"name":"Cooking","steps":[{"number":1,"step":"Cook","ingredients":[]}]}
			]`))
		})

		steps, err := client.GetAnalyzedSteps(context.Background(), "716429")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := []string{"Crack eggs", "Whisk", "Cook"}
		if !reflect.DeepEqual(steps, want) {
			t.Errorf("steps = %v, want %v", steps, want)
		}
		if gotPath != "/recipes/716429/analyzedInstructions" {
			t.Errorf("path = %s", gotPath)
		}
	})

	emptyPayloads := []struct {
		name string
		body string
	}{
		{"empty array", `[]`},
		{"null", `null`},
		{"no body", ``},
		{"whitespace", "  \n"},
	}
	for _, tc := range emptyPayloads {
		tc := tc
		t.Run("empty payload "+tc.name, func(t *testing.T) {
			client, _ := newStubClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tc.body))
			})

			steps, err := client.GetAnalyzedSteps(context.Background(), "1")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if steps == nil || len(steps) != 0 {
				t.Errorf("expected empty non-nil steps, got %#v", steps)
			}
		})
	}

	t.Run("blank recipe id is a validation error", func(t *testing.T) {
		client, _ := newStubClient(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("upstream should not be called")
		})

		if _, err := client.GetAnalyzedSteps(context.Background(), "  "); !model.IsValidationError(err) {
			t.Errorf("expected validation error, got %v", err)
		}
	})

	t.Run("not found is an upstream error", func(t *testing.T) {
		client, _ := newStubClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		})

		_, err := client.GetAnalyzedSteps(context.Background(), "999999")

		upstream := requireUpstreamError(t, err)
		if upstream.StatusCode != http.StatusNotFound || upstream.Op != OpAnalyzedSteps {
			t.Errorf("unexpected upstream error: %+v", upstream)
		}
	})

	t.Run("recipe id is path escaped", func(t *testing.T) {
		var gotRawPath string
		client, _ := newStubClient(t, func(w http.ResponseWriter, r *http.Request) {
			gotRawPath = r.URL.EscapedPath()
			_, _ = w.Write([]byte(`[]`))
		})

		if _, err := client.GetAnalyzedSteps(context.Background(), "a/b"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotRawPath != "/recipes/a%2Fb/analyzedInstructions" {
			t.Errorf("escaped path = %s", gotRawPath)
		}
	})
}

func TestClient_TransportErrorRedactsKey(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	baseURL := srv.URL
	srv.Close()

	keys := []string{"super-secret", "abc+def/ghi=="}
	for _, key := range keys {
		t.Run(key, func(t *testing.T) {
			client := NewClient(Config{BaseURL: baseURL, APIKey: key}, nil, nil)

			_, err := client.FindByIngredients(context.Background(), []string{"egg"}, 0)

			if upstream := requireUpstreamError(t, err); upstream.StatusCode != 0 {
				t.Errorf("StatusCode = %d, want 0", upstream.StatusCode)
			}
			msg := err.Error()
			if strings.Contains(msg, key) || strings.Contains(msg, url.QueryEscape(key)) {
				t.Errorf("error leaks API key: %s", msg)
			}
			if !strings.Contains(msg, "[redacted]") {
				t.Errorf("expected redaction marker in %s", msg)
			}
		})
	}
}
