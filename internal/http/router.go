// Package httpapi wires the HTTP transport (Gin) to the repository layer,
// middleware, and route handlers. It owns the route table and the order of
// cross-cutting concerns: tracing, correlation IDs, logging, panic
// recovery, compression, metrics, rate limiting, CORS, security headers,
// and finally the error classifier.
package httpapi

import (
	"context"
	"net/http"
	"path"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/tbourn/go-news-api/internal/config"
	"github.com/tbourn/go-news-api/internal/docs"
	"github.com/tbourn/go-news-api/internal/domain"
	"github.com/tbourn/go-news-api/internal/http/handlers"
	"github.com/tbourn/go-news-api/internal/http/middleware"
	"github.com/tbourn/go-news-api/internal/repo"
)

// repoShim adapts the repository free functions to handlers.Repository by
// binding them to one *gorm.DB.
type repoShim struct{ db *gorm.DB }

func (s repoShim) ListTopics(ctx context.Context) ([]domain.Topic, error) {
	return repo.ListTopics(ctx, s.db)
}

func (s repoShim) ListArticles(ctx context.Context) ([]domain.ArticleSummary, error) {
	return repo.ListArticles(ctx, s.db)
}

func (s repoShim) GetArticleByID(ctx context.Context, id string) (*domain.Article, error) {
	return repo.GetArticleByID(ctx, s.db, id)
}

func (s repoShim) IncrementArticleVotes(ctx context.Context, id string, incVotes any) (*domain.Article, error) {
	return repo.IncrementArticleVotes(ctx, s.db, id, incVotes)
}

func (s repoShim) ListCommentsForArticle(ctx context.Context, articleID string) ([]domain.Comment, error) {
	return repo.ListCommentsForArticle(ctx, s.db, articleID)
}

func (s repoShim) InsertComment(ctx context.Context, articleID string, author, body *string) (*domain.Comment, error) {
	return repo.InsertComment(ctx, s.db, articleID, author, body)
}

func (s repoShim) DeleteComment(ctx context.Context, commentID string) error {
	return repo.DeleteComment(ctx, s.db, commentID)
}

func (s repoShim) ListUsers(ctx context.Context) ([]domain.User, error) {
	return repo.ListUsers(ctx, s.db)
}

// Route binds a method and a path relative to the API base to a handler.
type Route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
}

// Routes returns the API route table. It is built once at startup and not
// modified afterwards.
func Routes(h *handlers.Handlers) []Route {
	return []Route{
		{http.MethodGet, "/", h.Root},
		{http.MethodGet, "/topics", h.ListTopics},
		{http.MethodGet, "/articles", h.ListArticles},
		{http.MethodGet, "/articles/:article_id", h.GetArticle},
		{http.MethodPatch, "/articles/:article_id", h.PatchArticle},
		{http.MethodGet, "/articles/:article_id/comments", h.ListComments},
		{http.MethodPost, "/articles/:article_id/comments", h.PostComment},
		{http.MethodDelete, "/comments/:comment_id", h.DeleteComment},
		{http.MethodGet, "/users", h.ListUsers},
	}
}

// RegisterRoutes attaches all middleware and endpoints to r.
//
// Middleware order:
//  1. OpenTelemetry
//  2. RequestID
//  3. Logger (with query/header redaction)
//  4. Recovery
//  5. Body size limiter
//  6. gzip (not for DELETE)
//  7. Metrics
//  8. Rate limiter (per client IP)
//  9. CORS and security headers
//  10. ErrorClassifier (runs after every handler, including NoRoute)
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	// Wrong-method requests are route misses, not 405s.
	r.HandleMethodNotAllowed = false

	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(middleware.LogOptions{MaskHeaders: []string{"X-API-Key"}}))
	r.Use(middleware.Recovery())
	r.Use(limitBody(1 << 20))
	r.Use(compress())
	r.Use(middleware.Metrics())

	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByIP())
	r.Use(rl.Handler())

	r.Use(corsMiddleware(cfg.CORS.AllowedOrigins)...)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		EnablePolicy: true,
	}))
	r.Use(middleware.ErrorClassifier())

	r.NoRoute(handlers.RouteMiss)

	// Operational endpoints
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if cfg.SwaggerEnabled {
		docs.SwaggerInfo.BasePath = cfg.APIBasePath
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	h := handlers.New(repoShim{db: db})
	base := cfg.APIBasePath
	if base == "" {
		base = "/"
	}
	for _, rt := range Routes(h) {
		r.Handle(rt.Method, path.Join(base, rt.Path), rt.Handler)
	}
}

// corsMiddleware returns the CORS stack. With no configured origins every
// origin is allowed without credentials; otherwise only the allowlist is.
func corsMiddleware(origins []string) []gin.HandlerFunc {
	base := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 {
		base.AllowAllOrigins = true
		return []gin.HandlerFunc{
			// ACAO even without an Origin header, so simple clients see it too.
			func(c *gin.Context) {
				c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
				c.Next()
			},
			cors.New(base),
		}
	}
	base.AllowOrigins = origins
	return []gin.HandlerFunc{cors.New(base)}
}

// compress gzips responses except for DELETE, whose success is a bodiless
// 204 that must not advertise a Content-Encoding.
func compress() gin.HandlerFunc {
	gz := gzip.Gzip(gzip.DefaultCompression)
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodDelete {
			c.Next()
			return
		}
		gz(c)
	}
}

// limitBody caps the request body at maxBytes; reads past the cap fail and
// surface as a malformed body.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
