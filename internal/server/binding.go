package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// bindMessages maps a request field and a failed validator tag to the text
// shown to the player.
type bindMessages map[string]map[string]string

func bindJSON(c *gin.Context, req any, messages bindMessages, fallback string) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		writeError(c, http.StatusBadRequest, messages.explain(err, fallback))
		return false
	}
	return true
}

// explain lists the message for every failing field, in field order. Any
// failure without a message, or an error that is not a validation error,
// yields fallback.
func (m bindMessages) explain(err error, fallback string) string {
	if fallback == "" {
		fallback = "invalid request"
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fallback
	}
	seen := make(map[string]struct{}, len(verrs))
	parts := make([]string, 0, len(verrs))
	for _, verr := range verrs {
		msg, ok := m[verr.Field()][verr.Tag()]
		if !ok {
			return fallback
		}
		if _, dup := seen[msg]; dup {
			continue
		}
		seen[msg] = struct{}{}
		parts = append(parts, msg)
	}
	if len(parts) == 0 {
		return fallback
	}
	return strings.Join(parts, "; ")
}

var guessMessages = bindMessages{
	"Guesser": {
		"required": "name is required",
		"name":     "name must be 20 characters or fewer without control characters",
	},
	"Guess": {
		"required": "guess is required",
		"guess":    "guess must be 60 characters or fewer without control characters",
	},
}

var drawingMessages = bindMessages{
	"RoomID": {"required": "room id is required"},
	"Answer": {"answer": "answer must be 60 characters or fewer without control characters"},
	"Width": {
		"required": "canvas width is required",
		"min":      "canvas width must be positive",
		"max":      "canvas is too wide",
	},
	"Height": {
		"required": "canvas height is required",
		"min":      "canvas height must be positive",
		"max":      "canvas is too tall",
	},
}

var ratingMessages = bindMessages{
	"Rater": {
		"required": "name is required",
		"name":     "name must be 20 characters or fewer without control characters",
	},
	"Cuteness":    {"required": "cuteness score is required", "min": "scores range from 1 to 10", "max": "scores range from 1 to 10"},
	"Creativity":  {"required": "creativity score is required", "min": "scores range from 1 to 10", "max": "scores range from 1 to 10"},
	"Resemblance": {"required": "resemblance score is required", "min": "scores range from 1 to 10", "max": "scores range from 1 to 10"},
}

var legacyMessages = bindMessages{
	"Guess": {
		"required": "guess is required",
		"guess":    "guess must be 60 characters or fewer without control characters",
	},
	"Answer": {"answer": "answer must be 60 characters or fewer without control characters"},
}
