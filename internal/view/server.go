package view

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/qepting91/hotfavs/internal/domain"
	"github.com/rs/cors"
)

const requestIDHeader = "X-Request-ID"

// NewRouter wires the HTML page, the JSON API, charts and metrics.
func NewRouter(v *View, logger *slog.Logger) *gin.Engine {
	if logger == nil {
		logger = slog.Default()
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger))
	r.SetHTMLTemplate(pageTemplate)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})

	h := &handlers{view: v}

	r.GET("/", h.page)
	r.POST("/search", h.searchForm)
	r.POST("/favorites/:id/toggle", h.toggleForm)
	r.GET("/chart", h.chart)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok", "ready": v.Snapshot().Ready})
	})

	api := r.Group("/api", corsMiddleware(c))
	api.GET("/search", h.apiSearch)
	api.GET("/favorites", h.apiFavorites)
	api.PUT("/favorites/:id", h.apiAddFavorite)
	api.DELETE("/favorites/:id", h.apiRemoveFavorite)
	api.OPTIONS("/*path", func(ctx *gin.Context) { ctx.Status(http.StatusNoContent) })

	return r
}

type handlers struct {
	view *View
}

func (h *handlers) page(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "page", h.view.Snapshot())
}

func (h *handlers) searchForm(ctx *gin.Context) {
	h.view.Search(ctx.Request.Context(), ctx.PostForm("feed"))
	ctx.Redirect(http.StatusSeeOther, "/")
}

func (h *handlers) toggleForm(ctx *gin.Context) {
	// A toggle on a post that vanished upstream just leaves the page as it was.
	_, _ = h.view.Toggle(ctx.Request.Context(), ctx.Param("id"))
	ctx.Redirect(http.StatusSeeOther, "/")
}

func (h *handlers) chart(ctx *gin.Context) {
	ctx.Header("Content-Type", "text/html; charset=utf-8")
	if err := renderCharts(ctx.Writer, h.view.Snapshot()); err != nil {
		_ = ctx.Error(err)
	}
}

func (h *handlers) apiSearch(ctx *gin.Context) {
	state := h.view.Search(ctx.Request.Context(), ctx.Query("feed"))
	page := h.view.Snapshot()

	status := http.StatusOK
	if state == StateUnavailable {
		status = http.StatusBadGateway
	}
	ctx.JSON(status, gin.H{"query": page.Query, "state": state, "results": page.Results})
}

func (h *handlers) apiFavorites(ctx *gin.Context) {
	page := h.view.Snapshot()
	ctx.JSON(http.StatusOK, gin.H{
		"favorites": page.Favorites,
		"ids":       h.view.store.IDs(),
		"ready":     page.Ready,
	})
}

func (h *handlers) apiAddFavorite(ctx *gin.Context) {
	p, err := h.view.AddFavorite(ctx.Request.Context(), ctx.Param("id"))
	switch {
	case err == nil:
		ctx.JSON(http.StatusOK, p)
	case errors.Is(err, domain.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
	default:
		ctx.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	}
}

func (h *handlers) apiRemoveFavorite(ctx *gin.Context) {
	h.view.RemoveFavorite(ctx.Param("id"))
	ctx.Status(http.StatusNoContent)
}

func corsMiddleware(c *cors.Cors) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		c.HandlerFunc(ctx.Writer, ctx.Request)
		ctx.Next()
	}
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		id := uuid.NewString()
		ctx.Header(requestIDHeader, id)

		ctx.Next()

		logger.Info("HTTP request",
			"request_id", id,
			"method", ctx.Request.Method,
			"path", ctx.Request.URL.Path,
			"status", ctx.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}

// Server runs the router until the context is cancelled.
type Server struct {
	handler http.Handler
}

func NewServer(h http.Handler) *Server {
	return &Server{handler: h}
}

func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
