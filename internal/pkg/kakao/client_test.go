package kakao

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seojin/tastemap/internal/pkg/apperrors"
)

func newTestClient(localURL, mobilityURL string) *Client {
	return NewClient(Config{
		RESTAPIKey:      "test-key",
		LocalBaseURL:    localURL,
		MobilityBaseURL: mobilityURL,
		Timeout:         time.Second,
	}, zerolog.Nop())
}

func TestSearchByCategory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/local/search/category.json", r.URL.Path)
		assert.Equal(t, "KakaoAK test-key", r.Header.Get("Authorization"))

		q := r.URL.Query()
		assert.Equal(t, "CE7", q.Get("category_group_code"))
		assert.Equal(t, "126.978", q.Get("x"))
		assert.Equal(t, "37.5665", q.Get("y"))
		assert.Equal(t, "1000", q.Get("radius"))
		assert.Equal(t, "distance", q.Get("sort"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"documents": [
				{"id": "101", "place_name": "Cafe Onion", "category_group_code": "CE7", "x": "126.9781", "y": "37.5667", "distance": "25"},
				{"id": "102", "place_name": "Fritz Coffee", "category_group_code": "CE7", "x": "126.9790", "y": "37.5670", "distance": "110"}
			],
			"meta": {"total_count": 2, "is_end": true, "pageable_count": 2}
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, "")

	places, err := client.SearchByCategory(context.Background(), "CE7", 126.978, 37.5665, 1000)
	require.NoError(t, err)
	require.Len(t, places, 2)
	assert.Equal(t, "Cafe Onion", places[0].PlaceName)
	assert.Equal(t, "126.9781", places[0].X)
}

func TestSearchByCategory_Non200StatusIsExternalServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"msg": "wrong appKey"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, "")

	_, err := client.SearchByCategory(context.Background(), "FD6", 126.978, 37.5665, 500)
	assert.ErrorIs(t, err, apperrors.ErrExternalService)
}

func TestRequestRoute(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/waypoints/directions", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"routes": [
				{"result_code": 0, "result_msg": "OK", "summary": {"distance": 8400, "duration": 1260}}
			]
		}`))
	}))
	defer server.Close()

	client := newTestClient("", server.URL)

	summary, err := client.RequestRoute(context.Background(),
		Coord{X: 126.978, Y: 37.5665},
		Coord{X: 127.0276, Y: 37.4979},
		nil,
	)
	require.NoError(t, err)
	assert.Equal(t, 8400, summary.Distance)
	assert.Equal(t, 1260, summary.Duration)
}

func TestRequestRoute_ResultCodeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"routes": [{"result_code": 104, "result_msg": "no route found", "summary": {"distance": 0, "duration": 0}}]}`))
	}))
	defer server.Close()

	client := newTestClient("", server.URL)

	_, err := client.RequestRoute(context.Background(), Coord{X: 126.978, Y: 37.5665}, Coord{X: 126.978, Y: 37.5665}, nil)
	assert.ErrorIs(t, err, apperrors.ErrExternalService)
}

func TestRequestRoute_EmptyRoutes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"routes": []}`))
	}))
	defer server.Close()

	client := newTestClient("", server.URL)

	_, err := client.RequestRoute(context.Background(), Coord{X: 126.978, Y: 37.5665}, Coord{X: 127.0276, Y: 37.4979}, nil)
	assert.ErrorIs(t, err, apperrors.ErrExternalService)
}
