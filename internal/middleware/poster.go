package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const PosterNameKey = "poster_name"

// LoadPoster retrieves the remembered poster name from session and sets to context
func LoadPoster() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if v := session.Get(PosterNameKey); v != nil {
			if name, ok := v.(string); ok && name != "" {
				c.Set(PosterNameKey, name)
			}
		}
		c.Next()
	}
}
