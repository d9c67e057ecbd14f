package middleware

import (
	"strings"

	"math_quiz_backend/internal/config"
	"math_quiz_backend/internal/model"
	"math_quiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware Bearer 헤더, token 쿼리, 자동 로그인 쿠키 순으로 JWT를
// 찾는다.
func AuthMiddleware(cfg *config.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if tokenString == "" {
			tokenString = c.Query("token")
		}

		if tokenString == "" {
			// 재방문 자동 로그인
			if cookie, err := c.Cookie(util.AuthCookieName); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(tokenString, cfg.Snapshot().JWT.Secret)
		if err != nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set("user", claims)
		c.Next()
	}
}

// AdminMiddleware 관리자 역할 토큰만 통과
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := util.GetUserFromContext(c)
		if claims == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}
		if claims.Role != model.RoleAdmin {
			util.Forbidden(c)
			c.Abort()
			return
		}
		c.Next()
	}
}
