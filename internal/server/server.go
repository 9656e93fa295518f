package server

import (
	"net/http"
	"time"

	"picture-guess/internal/config"
	"picture-guess/internal/logging"
	"picture-guess/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Server is the HTTP boundary of the game. It keeps no per-room state: every
// request carries its room id and form values, and everything that outlives a
// request lives in the store.
type Server struct {
	rooms   *store.RoomStore
	ledger  *store.GuessLedger
	ratings *store.RatingBook
	cfg     config.Config
	logger  *zap.Logger
}

func New(conn *gorm.DB, cfg config.Config, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	registerValidators()
	return &Server{
		rooms:   store.NewRoomStore(conn, cfg.MaxRoomIDLength),
		ledger:  store.NewGuessLedger(conn),
		ratings: store.NewRatingBook(conn),
		cfg:     cfg,
		logger:  logger,
	}
}

func (s *Server) Handler() http.Handler {
	router := gin.New()
	router.Use(gin.Recovery(), logging.RequestLogger(s.logger), limitBody(maxBodyBytes))
	if len(s.cfg.CORSAllowOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:  s.cfg.CORSAllowOrigins,
			AllowMethods:  []string{http.MethodGet, http.MethodPost},
			AllowHeaders:  []string{"Origin", "Content-Type", "Accept", logging.RequestIDHeader},
			ExposeHeaders: []string{"Content-Length", logging.RequestIDHeader},
			MaxAge:        12 * time.Hour,
		}))
	}

	router.GET("/", s.handleHome)
	router.GET("/draw", s.handleDrawView)
	router.GET("/guess", s.handleGuessView)
	router.GET("/guess/:roomID", s.handleGuessView)
	router.GET("/legacy", s.handleLegacyView)

	api := router.Group("/api")
	api.GET("/rooms/suggest", s.handleSuggestRoomID)
	api.POST("/rooms", s.handleSaveDrawing)
	api.GET("/rooms/:roomID/drawing", s.handleGetDrawing)
	api.GET("/rooms/:roomID/drawing.png", s.handleDrawingPNG)
	api.POST("/rooms/:roomID/guesses", s.handleSubmitGuess)
	api.GET("/rooms/:roomID/guesses", s.handleGuessStats)
	api.POST("/rooms/:roomID/ratings", s.handleRate)
	api.GET("/rooms/:roomID/ratings", s.handleRatingSummary)
	api.POST("/legacy/check", s.handleLegacyCheck)
	api.POST("/legacy/ratings", s.handleLegacyRating)
	return router
}
