package view

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/qepting91/hotfavs/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r http.Handler, method, target string, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRouter_PageAndSearchForm(t *testing.T) {
	v, gw, _ := newTestView(t)
	gw.On("SearchTop", mock.Anything, "golang", TopN).Return(hotPosts("golang", 2), nil)
	r := NewRouter(v, nil)

	w := serve(r, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No post found")
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))

	w = serve(r, http.MethodPost, "/search", url.Values{"feed": {"golang"}}.Encode())
	assert.Equal(t, http.StatusSeeOther, w.Code)

	w = serve(r, http.MethodGet, "/", "")
	assert.Contains(t, w.Body.String(), "Post 0 | Score: 100")
	assert.Contains(t, w.Body.String(), "/favorites/golang1/toggle")
}

func TestRouter_UnavailablePage(t *testing.T) {
	v, gw, _ := newTestView(t)
	gw.On("SearchTop", mock.Anything, "golang", TopN).Return(nil, &domain.TransportError{Op: "hot", Err: errors.New("x")})
	r := NewRouter(v, nil)

	serve(r, http.MethodPost, "/search", url.Values{"feed": {"golang"}}.Encode())
	w := serve(r, http.MethodGet, "/", "")
	assert.Contains(t, w.Body.String(), "Unable to load posts")
	assert.NotContains(t, w.Body.String(), "No post found")
}

func TestRouter_ToggleForm(t *testing.T) {
	v, gw, store := newTestView(t)
	gw.On("SearchTop", mock.Anything, "golang", TopN).Return(hotPosts("golang", 3), nil)
	v.Search(context.Background(), "golang")
	r := NewRouter(v, nil)

	w := serve(r, http.MethodPost, "/favorites/golang2/toggle", "")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.True(t, store.IsFavorite("golang2"))

	serve(r, http.MethodPost, "/favorites/golang2/toggle", "")
	assert.False(t, store.IsFavorite("golang2"))
}

func TestRouter_API(t *testing.T) {
	v, gw, _ := newTestView(t)
	gw.On("SearchTop", mock.Anything, "popular", TopN).Return(hotPosts("popular", 10), nil)
	gw.On("SearchTop", mock.Anything, "doesnotexist_xyz", TopN).Return(nil, domain.ErrNotFound)
	gw.On("SearchTop", mock.Anything, "flaky", TopN).Return(nil, &domain.TransportError{Op: "hot", Err: errors.New("x")})
	gw.On("FetchByID", mock.Anything, "missing").Return(domain.Post{}, domain.ErrNotFound)
	r := NewRouter(v, nil)

	w := serve(r, http.MethodGet, "/api/search?feed=popular", "")
	require.Equal(t, http.StatusOK, w.Code)
	var search struct {
		State   State `json:"state"`
		Results []Row `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &search))
	assert.Equal(t, StateOK, search.State)
	assert.Len(t, search.Results, 10)
	assert.Equal(t, "popular0", search.Results[0].ID)

	w = serve(r, http.MethodPut, "/api/favorites/popular4", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(r, http.MethodPut, "/api/favorites/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(r, http.MethodGet, "/api/favorites", "")
	var favs struct {
		Favorites []Row    `json:"favorites"`
		IDs       []string `json:"ids"`
		Ready     bool     `json:"ready"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &favs))
	assert.Equal(t, []string{"popular4"}, favs.IDs)
	require.Len(t, favs.Favorites, 1)
	assert.True(t, favs.Favorites[0].Favorite)
	assert.True(t, favs.Ready)

	w = serve(r, http.MethodDelete, "/api/favorites/popular4", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, v.store.IDs())

	w = serve(r, http.MethodGet, "/api/search?feed=doesnotexist_xyz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"state":"empty"`)

	w = serve(r, http.MethodGet, "/api/search?feed=flaky", "")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), `"state":"unavailable"`)
}

func TestRouter_CORSPreflight(t *testing.T) {
	v, _, _ := newTestView(t)
	r := NewRouter(v, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/favorites/abc", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_ChartMetricsHealth(t *testing.T) {
	v, gw, _ := newTestView(t)
	gw.On("SearchTop", mock.Anything, "golang", TopN).Return(hotPosts("golang", 3), nil)
	v.Search(context.Background(), "golang")
	r := NewRouter(v, nil)

	w := serve(r, http.MethodGet, "/chart", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "echarts")

	w = serve(r, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "hotfavs_searches_total")

	w = serve(r, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","ready":true}`, w.Body.String())
}
