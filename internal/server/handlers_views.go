package server

import (
	"net/http"
	"strings"

	"picture-guess/internal/web"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func render(c *gin.Context, component templ.Component) {
	templ.Handler(component).ServeHTTP(c.Writer, c.Request)
}

func (s *Server) handleHome(c *gin.Context) {
	render(c, web.Home())
}

func (s *Server) handleDrawView(c *gin.Context) {
	render(c, web.DrawView(web.DrawPage{
		RoomID:          strings.TrimSpace(c.Query("room")),
		MaxRoomIDLength: s.rooms.MaxRoomIDLength(),
		PreviewChars:    s.cfg.PreviewChars,
	}))
}

func (s *Server) handleGuessView(c *gin.Context) {
	roomID := strings.TrimSpace(c.Param("roomID"))
	if roomID == "" {
		roomID = strings.TrimSpace(c.Query("room"))
	}
	if roomID != "" {
		if err := s.rooms.ValidateRoomID(roomID); err != nil {
			s.logger.Info("guess view with invalid room id", zap.String("room_id", roomID))
			c.Redirect(http.StatusFound, "/guess")
			return
		}
	}
	render(c, web.GuessView(web.GuessPage{
		RoomID:          roomID,
		GuesserName:     rememberedName(c),
		MaxRoomIDLength: s.rooms.MaxRoomIDLength(),
	}))
}

func (s *Server) handleLegacyView(c *gin.Context) {
	render(c, web.LegacyView())
}
