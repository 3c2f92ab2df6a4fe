package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"phrase-bridge/internal/request_normalizer"
	"phrase-bridge/internal/services"
	"phrase-bridge/internal/translation_resolver"
	"phrase-bridge/pkg/types"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"

	errMissingFields   = "Missing required fields"
	errUnsupportedPair = "Unsupported language pair"
	errInternal        = "Internal server error"
)

type GinServer struct {
	router   *gin.Engine
	logger   *zap.Logger
	services *services.Services
}

func NewGinServer(logger *zap.Logger, services *services.Services, corsAllowOrigin string) *GinServer {
	router := gin.New()
	router.Use(RequestID())
	router.Use(GinLogger(logger))
	router.Use(Recovery(logger))
	router.Use(CORS(corsAllowOrigin))

	server := &GinServer{
		router:   router,
		logger:   logger,
		services: services,
	}
	server.SetupRoutes()
	return server
}

// GetRouter returns the Gin router
func (s *GinServer) GetRouter() *gin.Engine {
	return s.router
}

func (s *GinServer) SetupRoutes() {
	s.router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	s.router.GET("/health", s.HealthCheck)

	api := s.router.Group("/api")
	api.POST("/translate", s.Translate)
	api.OPTIONS("/translate", s.Preflight)
	api.GET("/pairs", s.SupportedPairs)
}

// RequestID tags every request with an id, reusing the caller's when present.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// GinLogger returns a gin middleware for logging using zap
func GinLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.String("client_ip", c.ClientIP()),
			zap.Duration("latency", time.Since(start)),
			zap.String(requestIDKey, c.GetString(requestIDKey)),
		)
	}
}

// Recovery turns a panic into the generic internal error response.
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		logger.Error("panic while handling request",
			zap.Any("panic", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String(requestIDKey, c.GetString(requestIDKey)),
			zap.Stack("stack"),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, types.ErrorResponse{
			Error:   errInternal,
			Details: fmt.Sprint(recovered),
		})
	})
}

// CORS allows browser clients from allowOrigin to call the API.
func CORS(allowOrigin string) gin.HandlerFunc {
	if allowOrigin == "" {
		allowOrigin = "*"
	}
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", allowOrigin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, "+requestIDHeader)
		c.Header("Access-Control-Expose-Headers", requestIDHeader)
		c.Next()
	}
}

// HealthCheck godoc
// @Summary Health check endpoint
// @Description Check if the API server is running
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (s *GinServer) HealthCheck(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":  "healthy",
		"service": "phrase-bridge-api",
	})
}

// Preflight answers CORS preflight requests for the translate endpoint.
func (s *GinServer) Preflight(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{})
}

// Translate godoc
// @Summary Translate a text between two languages
// @Description Looks the text up in the pair table, falling back to the translation model
// @Tags translation
// @Accept json
// @Produce json
// @Success 200 {object} types.TranslationResponse
// @Failure 400 {object} types.MissingFieldsResponse
// @Failure 404 {object} types.UnsupportedPairResponse
// @Failure 500 {object} types.ErrorResponse
// @Router /api/translate [post]
func (s *GinServer) Translate(c *gin.Context) {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		s.logger.Warn("unreadable translation request body",
			zap.String(requestIDKey, c.GetString(requestIDKey)),
			zap.Error(err),
		)
		payload = nil
	}

	s.logger.Info("translation request",
		zap.Any("payload", payload),
		zap.String(requestIDKey, c.GetString(requestIDKey)),
	)

	query, missing := request_normalizer.Normalize(payload)
	if missing != nil {
		c.JSON(http.StatusBadRequest, types.MissingFieldsResponse{
			Error:   errMissingFields,
			Details: missing.Details(),
		})
		return
	}

	result, err := s.services.TranslationResolverService.Resolve(c.Request.Context(), query)
	if err != nil {
		s.internalError(c, "translation error", err, zap.Any("payload", payload))
		return
	}

	switch result.Kind {
	case translation_resolver.ExactMatch, translation_resolver.ModelMatch:
		c.JSON(http.StatusOK, result.Response())
	case translation_resolver.UnsupportedPair:
		c.JSON(http.StatusNotFound, types.UnsupportedPairResponse{
			Error:          errUnsupportedPair,
			SupportedPairs: result.SupportedPairs,
		})
	default:
		c.JSON(http.StatusNotFound, result.Response())
	}
}

// SupportedPairs godoc
// @Summary List supported language pairs
// @Tags translation
// @Produce json
// @Success 200 {object} types.SupportedPairsResponse
// @Failure 500 {object} types.ErrorResponse
// @Router /api/pairs [get]
func (s *GinServer) SupportedPairs(c *gin.Context) {
	pairs, err := s.services.TranslationResolverService.SupportedPairs(c.Request.Context())
	if err != nil {
		s.internalError(c, "error getting supported pairs", err)
		return
	}
	c.JSON(http.StatusOK, types.SupportedPairsResponse{SupportedPairs: pairs})
}

// internalError logs err and answers 500. The error text is returned to the
// caller as details.
func (s *GinServer) internalError(c *gin.Context, msg string, err error, fields ...zap.Field) {
	fields = append(fields,
		zap.String(requestIDKey, c.GetString(requestIDKey)),
		zap.Bool("storage", errors.Is(err, translation_resolver.ErrStorage)),
		zap.Error(err),
	)
	s.logger.Error(msg, fields...)
	c.JSON(http.StatusInternalServerError, types.ErrorResponse{
		Error:   errInternal,
		Details: err.Error(),
	})
}
