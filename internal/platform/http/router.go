package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/weiwei-tsao/catalog-stats/internal/business/stats"
	"github.com/weiwei-tsao/catalog-stats/internal/platform/catalog"
	"github.com/weiwei-tsao/catalog-stats/pkg/model"
)

// StatsService is the part of stats.Service the router depends on.
type StatsService interface {
	Compute(ctx context.Context) (model.AggregateResult, error)
	Categories(ctx context.Context) ([]string, error)
	Products(ctx context.Context, category string) ([]model.Product, error)
	Run(ctx context.Context) (model.StatsSnapshot, error)
}

// SnapshotReader lists recorded snapshots.
type SnapshotReader interface {
	ListSnapshots(ctx context.Context, limit int) ([]model.StatsSnapshot, error)
}

// Router wires HTTP handlers.
type Router struct {
	stats     StatsService
	snapshots SnapshotReader
	origins   string
}

// NewRouter builds the gin engine. snapshots may be nil when persistence is disabled.
func NewRouter(statsSvc StatsService, snapshots SnapshotReader, allowedOrigins string) *gin.Engine {
	r := &Router{
		stats:     statsSvc,
		snapshots: snapshots,
		origins:   allowedOrigins,
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), r.corsMiddleware())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.GET("/stats", r.getStats)
		api.POST("/stats/refresh", r.refreshStats)
		api.GET("/stats/history", r.listSnapshots)
		api.GET("/categories", r.listCategories)
		api.GET("/products", r.listProducts)
	}

	return router
}

func (r *Router) corsMiddleware() gin.HandlerFunc {
	origins := strings.Split(r.origins, ",")
	trimmed := make([]string, 0, len(origins))
	for _, o := range origins {
		if t := strings.TrimSpace(o); t != "" {
			trimmed = append(trimmed, t)
		}
	}
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		allowed := "*"
		for _, o := range trimmed {
			if o == "*" || o == origin {
				allowed = origin
				break
			}
		}
		c.Header("Access-Control-Allow-Origin", allowed)
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			c.Abort()
			return
		}
		c.Next()
	}
}

func (r *Router) getStats(c *gin.Context) {
	result, err := r.stats.Compute(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (r *Router) refreshStats(c *gin.Context) {
	snapshot, err := r.stats.Run(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

func (r *Router) listSnapshots(c *gin.Context) {
	if r.snapshots == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "snapshot history is not configured"})
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
		return
	}
	items, err := r.snapshots.ListSnapshots(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if items == nil {
		items = []model.StatsSnapshot{}
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (r *Router) listCategories(c *gin.Context) {
	categories, err := r.stats.Categories(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": categories})
}

func (r *Router) listProducts(c *gin.Context) {
	items, err := r.stats.Products(c.Request.Context(), c.Query("category"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"total": len(items),
	})
}

// writeError maps fetch failures to 502 and empty catalogs to 422.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	var fetchErr *catalog.FetchError
	switch {
	case errors.As(err, &fetchErr):
		status = http.StatusBadGateway
	case errors.Is(err, stats.ErrEmptyInput):
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
