package openfoodfacts

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pricehound/pricehound/internal/domain"
)

const testUserAgent = "pricehound-test/1.0"

func TestSearch_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cgi/search.pl", r.URL.Path)
		assert.Equal(t, "bananas", r.URL.Query().Get("search_terms"))
		assert.Equal(t, "1", r.URL.Query().Get("search_simple"))
		assert.Equal(t, "process", r.URL.Query().Get("action"))
		assert.Equal(t, "8", r.URL.Query().Get("page_size"))
		assert.Equal(t, testUserAgent, r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"products":[
			{"product_name":"Banana","image_front_small_url":"https://img.example/banana-small.jpg","image_front_url":"https://img.example/banana.jpg"},
			{"product_name":"Banana Chips","image_url":"https://img.example/chips.jpg"},
			{"product_name":"No Image Product"}
		]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, testUserAgent, 4*time.Second)
	candidates, err := client.Search(context.Background(), "bananas")

	require.NoError(t, err)
	require.Len(t, candidates, 3)
	// The smallest available front image wins.
	assert.Equal(t, "Banana", candidates[0].Name)
	assert.Equal(t, "https://img.example/banana-small.jpg", candidates[0].ImageURL)
	assert.Equal(t, "https://img.example/chips.jpg", candidates[1].ImageURL)
	assert.Empty(t, candidates[2].ImageURL)
}

func TestSearch_EmptyResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"products":[]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, testUserAgent, 4*time.Second)
	candidates, err := client.Search(context.Background(), "nothing")

	assert.Nil(t, candidates)
	assert.ErrorIs(t, err, domain.ErrNoCandidates)
}

func TestSearch_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, testUserAgent, 4*time.Second)
	_, err := client.Search(context.Background(), "bananas")

	assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
}

func TestSearch_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := NewClient(server.URL, testUserAgent, 4*time.Second)
	_, err := client.Search(context.Background(), "bananas")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding response")
}

func TestSearch_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := NewClient(server.URL, testUserAgent, 20*time.Millisecond)
	_, err := client.Search(context.Background(), "bananas")

	assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
}

func TestName(t *testing.T) {
	client := NewClient("https://example.org", testUserAgent, time.Second)
	assert.Equal(t, "openfoodfacts", client.Name())
}
