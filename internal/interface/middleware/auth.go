package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/mood-diary/internal/application"
	"github.com/oksasatya/mood-diary/pkg/helpers"
	"github.com/oksasatya/mood-diary/pkg/response"
)

const CtxUserIDKey = "userID"

// Auth resolves the access_token cookie to a user id and stores it under CtxUserIDKey.
// A missing, expired, forged or refresh-kind token all answer 401 with the same message.
func Auth(auth *application.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(helpers.AccessTokenCookie)
		if err != nil || token == "" {
			unauthorized(c)
			return
		}
		uid, err := auth.Authenticate(token)
		if err != nil {
			unauthorized(c)
			return
		}
		c.Set(CtxUserIDKey, uid)
		c.Next()
	}
}

func unauthorized(c *gin.Context) {
	e := application.ErrInvalidOrExpiredAccessToken
	response.Error(c, e.Status, e.Message)
}
