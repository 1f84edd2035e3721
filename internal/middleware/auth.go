package middleware

import (
	"net/http"
	"time"

	"module/postforge/internal/repo"
	"module/postforge/internal/utilities"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type MiddlewareService struct {
	sessionRepo *repo.SessionRepo
	jwtSecret   []byte
}

func NewMiddlewareService(sessionRepo *repo.SessionRepo, jwtSecret string) *MiddlewareService {
	return &MiddlewareService{sessionRepo: sessionRepo, jwtSecret: []byte(jwtSecret)}
}

// AuthMiddleware validates the bearer token and checks that the session it
// names is still alive. Logout deletes the session row, so a signed but
// signed-out token is rejected here.
func (m *MiddlewareService) AuthMiddleware(ctx *gin.Context) {
	authToken := ctx.Request.Header.Get("X-Auth-Token")
	if authToken == "" {
		utilities.Response(ctx, http.StatusUnauthorized, false, nil, "Unauthorized")
		ctx.Abort()
		return
	}

	token, err := jwt.ParseWithClaims(authToken, jwt.MapClaims{}, func(t *jwt.Token) (any, error) {
		return m.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		utilities.Response(ctx, http.StatusUnauthorized, false, nil, "Unauthorized")
		ctx.Abort()
		return
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		utilities.Response(ctx, http.StatusUnauthorized, false, nil, "Unauthorized")
		ctx.Abort()
		return
	}

	userId, _ := claims["user_id"].(string)
	sessionId, _ := claims["session_id"].(string)
	if userId == "" || sessionId == "" {
		utilities.Response(ctx, http.StatusUnauthorized, false, nil, "Unauthorized")
		ctx.Abort()
		return
	}

	session, err := m.sessionRepo.GetSession(sessionId)
	if err != nil || session.UserId != userId || session.ExpiresAt.Before(time.Now()) {
		utilities.Response(ctx, http.StatusUnauthorized, false, nil, "Unauthorized")
		ctx.Abort()
		return
	}

	ctx.Set("user_id", userId)
	ctx.Set("session_id", sessionId)
	ctx.Next()
}
