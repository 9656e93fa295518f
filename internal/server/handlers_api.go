package server

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image/png"
	"net/http"
	"strings"

	"picture-guess/internal/db"
	"picture-guess/internal/imagecodec"
	"picture-guess/internal/logging"
	"picture-guess/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	msgCorrect      = "Correct! You're a genius!"
	msgWrong        = "Wrong guess, try again!"
	msgNoDrawing    = "No drawing has been saved for this room yet."
	msgBadDrawing   = "The saved drawing could not be displayed."
	msgRatingThanks = "Thanks for your feedback!"
)

type saveDrawingRequest struct {
	RoomID      string    `json:"room_id" binding:"required"`
	Answer      string    `json:"answer" binding:"answer"`
	Width       int       `json:"width" binding:"required,min=1,max=1024"`
	Height      int       `json:"height" binding:"required,min=1,max=1024"`
	Channels    int       `json:"channels"`
	Pixels      string    `json:"pixels"`
	FloatPixels []float64 `json:"float_pixels"`
}

type guessRequest struct {
	Guesser string `json:"guesser" binding:"required,name"`
	Guess   string `json:"guess" binding:"required,guess"`
}

type ratingRequest struct {
	Rater       string `json:"rater" binding:"required,name"`
	Cuteness    int    `json:"cuteness" binding:"required,min=1,max=10"`
	Creativity  int    `json:"creativity" binding:"required,min=1,max=10"`
	Resemblance int    `json:"resemblance" binding:"required,min=1,max=10"`
}

type legacyCheckRequest struct {
	Answer string `json:"answer" binding:"answer"`
	Guess  string `json:"guess" binding:"required,guess"`
}

type legacyRatingRequest struct {
	Cuteness    int `json:"cuteness" binding:"required,min=1,max=10"`
	Creativity  int `json:"creativity" binding:"required,min=1,max=10"`
	Resemblance int `json:"resemblance" binding:"required,min=1,max=10"`
}

type drawingResponse struct {
	RoomID    string `json:"room_id"`
	Available bool   `json:"available"`
	ImageData string `json:"image_data,omitempty"`
	Width     int    `json:"width,omitempty"`
	Height    int    `json:"height,omitempty"`
	Message   string `json:"message,omitempty"`
}

// buffer builds the pixel buffer the request describes. Missing pixel data
// yields a nil buffer, which the codec rejects.
func (r saveDrawingRequest) buffer() (*imagecodec.Buffer, error) {
	channels := r.Channels
	if channels == 0 {
		channels = imagecodec.RGBA
	}
	switch {
	case r.Pixels != "":
		raw, err := base64.StdEncoding.DecodeString(r.Pixels)
		if err != nil {
			return nil, &imagecodec.EncodeError{Reason: "pixels must be base64", Err: err}
		}
		return &imagecodec.Buffer{
			Width: r.Width, Height: r.Height, Channels: channels,
			Kind: imagecodec.IntegerChannels, Ints: raw,
		}, nil
	case len(r.FloatPixels) > 0:
		return &imagecodec.Buffer{
			Width: r.Width, Height: r.Height, Channels: channels,
			Kind: imagecodec.FloatChannels, Floats: r.FloatPixels,
		}, nil
	default:
		return nil, nil
	}
}

// roomIDParam trims and validates a room id taken from the request.
func (s *Server) roomIDParam(c *gin.Context, raw string) (string, bool) {
	roomID := strings.TrimSpace(raw)
	if err := s.rooms.ValidateRoomID(roomID); err != nil {
		writeError(c, http.StatusBadRequest, strings.TrimPrefix(err.Error(), store.ErrInvalidRoomID.Error()+": "))
		return "", false
	}
	return roomID, true
}

func (s *Server) respondStoreError(c *gin.Context, err error, message string) {
	log := logging.FromContext(c, s.logger)
	var storageErr *store.StorageError
	switch {
	case errors.Is(err, store.ErrInvalidRoomID):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrInvalidScore):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrRoomNotFound):
		writeError(c, http.StatusNotFound, msgNoDrawing)
	case errors.As(err, &storageErr):
		log.Error(message, zap.String("op", storageErr.Op), zap.Error(storageErr.Err))
		writeError(c, http.StatusInternalServerError, message)
	default:
		log.Error(message, zap.Error(err))
		writeError(c, http.StatusInternalServerError, message)
	}
}

func (s *Server) handleSuggestRoomID(c *gin.Context) {
	id, err := newRoomID()
	if err != nil {
		logging.FromContext(c, s.logger).Error("room id generation failed", zap.Error(err))
		writeError(c, http.StatusInternalServerError, "failed to suggest a room id")
		return
	}
	c.JSON(http.StatusOK, gin.H{"room_id": id})
}

func (s *Server) handleSaveDrawing(c *gin.Context) {
	var req saveDrawingRequest
	if !bindJSON(c, &req, drawingMessages, "invalid drawing request") {
		return
	}
	roomID, ok := s.roomIDParam(c, req.RoomID)
	if !ok {
		return
	}
	log := logging.FromContext(c, s.logger).With(zap.String("room_id", roomID))

	buf, err := req.buffer()
	if err != nil {
		log.Warn("drawing rejected", zap.Error(err))
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}
	encoded, err := imagecodec.Encode(buf)
	if err != nil {
		log.Warn("drawing rejected", zap.Error(err))
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.rooms.Save(c.Request.Context(), roomID, req.Answer, encoded); err != nil {
		s.respondStoreError(c, err, "failed to save drawing")
		return
	}
	log.Info("room saved", zap.Int("encoded_length", len(encoded)))
	c.JSON(http.StatusOK, gin.H{
		"room_id":        roomID,
		"preview":        imagecodec.Preview(encoded, s.cfg.PreviewChars),
		"encoded_length": len(encoded),
	})
}

func (s *Server) handleGetDrawing(c *gin.Context) {
	roomID, ok := s.roomIDParam(c, c.Param("roomID"))
	if !ok {
		return
	}
	log := logging.FromContext(c, s.logger).With(zap.String("room_id", roomID))

	encoded, err := s.rooms.Get(c.Request.Context(), roomID)
	if errors.Is(err, store.ErrRoomNotFound) {
		log.Warn("no drawing for room")
		c.JSON(http.StatusOK, drawingResponse{RoomID: roomID, Message: msgNoDrawing})
		return
	}
	if err != nil {
		s.respondStoreError(c, err, "failed to load drawing")
		return
	}
	width, height, err := imagecodec.Dimensions(encoded)
	if err != nil {
		log.Error("stored drawing is unreadable", zap.Error(err))
		c.JSON(http.StatusOK, drawingResponse{RoomID: roomID, Message: msgBadDrawing})
		return
	}
	c.JSON(http.StatusOK, drawingResponse{
		RoomID:    roomID,
		Available: true,
		ImageData: drawingDataURL(encoded),
		Width:     width,
		Height:    height,
	})
}

func (s *Server) handleDrawingPNG(c *gin.Context) {
	roomID, ok := s.roomIDParam(c, c.Param("roomID"))
	if !ok {
		return
	}
	encoded, err := s.rooms.Get(c.Request.Context(), roomID)
	if err != nil {
		s.respondStoreError(c, err, "failed to load drawing")
		return
	}
	img, err := imagecodec.DecodeImage(encoded)
	if err != nil {
		logging.FromContext(c, s.logger).Error("stored drawing is unreadable",
			zap.String("room_id", roomID), zap.Error(err))
		writeError(c, http.StatusUnprocessableEntity, msgBadDrawing)
		return
	}
	var out bytes.Buffer
	if err := png.Encode(&out, img); err != nil {
		writeError(c, http.StatusInternalServerError, msgBadDrawing)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", out.Bytes())
}

func (s *Server) handleSubmitGuess(c *gin.Context) {
	roomID, ok := s.roomIDParam(c, c.Param("roomID"))
	if !ok {
		return
	}
	var req guessRequest
	if !bindJSON(c, &req, guessMessages, "invalid guess") {
		return
	}
	name := normalizeText(req.Guesser)
	correct, err := s.ledger.SubmitGuess(c.Request.Context(), roomID, name, req.Guess)
	if err != nil {
		s.respondStoreError(c, err, "guess could not be recorded")
		return
	}
	rememberName(c, name)
	logging.FromContext(c, s.logger).Info("guess submitted",
		zap.String("room_id", roomID),
		zap.String("guesser", name),
		zap.Bool("correct", correct),
	)
	message := msgWrong
	if correct {
		message = msgCorrect
	}
	c.JSON(http.StatusOK, gin.H{
		"room_id": roomID,
		"correct": correct,
		"message": message,
	})
}

func (s *Server) handleGuessStats(c *gin.Context) {
	roomID, ok := s.roomIDParam(c, c.Param("roomID"))
	if !ok {
		return
	}
	stats, err := s.ledger.Stats(c.Request.Context(), roomID)
	if err != nil {
		s.respondStoreError(c, err, "failed to load guesses")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"room_id":   roomID,
		"attempts":  stats.Attempts,
		"solved_by": stats.SolvedBy,
	})
}

func (s *Server) handleRate(c *gin.Context) {
	roomID, ok := s.roomIDParam(c, c.Param("roomID"))
	if !ok {
		return
	}
	var req ratingRequest
	if !bindJSON(c, &req, ratingMessages, "invalid rating") {
		return
	}
	scores := db.RatingScores{
		Cuteness:    req.Cuteness,
		Creativity:  req.Creativity,
		Resemblance: req.Resemblance,
	}
	if err := s.ratings.Rate(c.Request.Context(), roomID, normalizeText(req.Rater), scores); err != nil {
		s.respondStoreError(c, err, "rating could not be recorded")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"room_id": roomID, "message": msgRatingThanks})
}

func (s *Server) handleRatingSummary(c *gin.Context) {
	roomID, ok := s.roomIDParam(c, c.Param("roomID"))
	if !ok {
		return
	}
	summary, err := s.ratings.Summary(c.Request.Context(), roomID)
	if err != nil {
		s.respondStoreError(c, err, "failed to load ratings")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"room_id":     roomID,
		"count":       summary.Count,
		"cuteness":    summary.Cuteness,
		"creativity":  summary.Creativity,
		"resemblance": summary.Resemblance,
	})
}

// handleLegacyCheck compares in memory; nothing is stored.
func (s *Server) handleLegacyCheck(c *gin.Context) {
	var req legacyCheckRequest
	if !bindJSON(c, &req, legacyMessages, "invalid guess") {
		return
	}
	correct := store.AnswerMatches(req.Answer, req.Guess)
	message := msgWrong
	if correct {
		message = msgCorrect
	}
	c.JSON(http.StatusOK, gin.H{"correct": correct, "message": message})
}

func (s *Server) handleLegacyRating(c *gin.Context) {
	var req legacyRatingRequest
	if !bindJSON(c, &req, ratingMessages, "invalid rating") {
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msgRatingThanks})
}
