package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	nameCookie       = "guesser_name"
	nameCookieMaxAge = 30 * 24 * 60 * 60
)

// rememberName stores the guesser's name client-side so the next form can be
// prefilled. Nothing is kept on the server.
func rememberName(c *gin.Context, name string) {
	if name == "" {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(nameCookie, name, nameCookieMaxAge, "/", "", false, true)
}

func rememberedName(c *gin.Context) string {
	raw, err := c.Cookie(nameCookie)
	if err != nil {
		return ""
	}
	name, err := validateName(raw)
	if err != nil {
		return ""
	}
	return name
}
