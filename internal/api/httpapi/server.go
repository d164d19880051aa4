package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	app "detect-bot/internal/application"
	"detect-bot/internal/domain/port"
)

// Server — HTTP-интерфейс сервиса детекции.
type Server struct {
	engine   *gin.Engine
	predicts *app.PredictService
	repo     port.PredictionRepository
	logger   zerolog.Logger
}

// NewServer собирает роутер сервиса детекции.
func NewServer(predicts *app.PredictService, repo port.PredictionRepository, logger zerolog.Logger) *Server {
	s := &Server{
		predicts: predicts,
		repo:     repo,
		logger:   logger.With().Str("component", "httpapi").Logger(),
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	engine.POST("/predict", s.handlePredict)
	engine.GET("/predictions/:id", s.handleGetPrediction)
	engine.GET("/health", s.handleHealth)

	s.engine = engine
	return s
}

// Run блокируется, обслуживая запросы на addr.
func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

// Engine отдаёт роутер (для httptest).
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// handlePredict обрабатывает POST /predict?imgName=<ключ в хранилище>.
func (s *Server) handlePredict(c *gin.Context) {
	imgName := c.Query("imgName")
	if imgName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "imgName query parameter is required"})
		return
	}

	pred, err := s.predicts.Run(c.Request.Context(), imgName)
	if err != nil {
		s.logger.Error().Err(err).Str("img_key", imgName).Msg("Prediction failed")
		if errors.Is(err, port.ErrStoreNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "source image not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "prediction failed"})
		return
	}

	c.JSON(http.StatusOK, pred)
}

// handleGetPrediction обрабатывает GET /predictions/:id.
func (s *Server) handleGetPrediction(c *gin.Context) {
	if s.repo == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "prediction store is not configured"})
		return
	}

	pred, err := s.repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, port.ErrPredictionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "prediction not found"})
			return
		}
		s.logger.Error().Err(err).Msg("Prediction lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}

	c.JSON(http.StatusOK, pred)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
