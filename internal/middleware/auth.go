package middleware

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/focus/pkg/httpcontext"
	authUC "github.com/fastygo/focus/usecase/auth"
)

// SessionValidator is satisfied by *auth.UseCase.
type SessionValidator interface {
	ValidateSession(ctx context.Context, sessionID, userID string) error
}

// JWTAuth verifies the bearer token and, when sessions is set, that its
// sid has not been revoked. The caller is exposed through httpcontext.
func JWTAuth(secret string, sessions SessionValidator, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			tokenString := extractToken(ctx)
			if tokenString == "" {
				unauthorized(ctx, "Missing token")
				return
			}

			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				logger.Warn("invalid jwt token", zap.Error(err))
				unauthorized(ctx, "Invalid token")
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				unauthorized(ctx, "Invalid token")
				return
			}
			userID, _ := claims[authUC.ClaimUserID].(string)
			username, _ := claims[authUC.ClaimUsername].(string)
			sessionID, _ := claims[authUC.ClaimSessionID].(string)
			if userID == "" {
				unauthorized(ctx, "Invalid token")
				return
			}

			if sessions != nil {
				checkCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				err := sessions.ValidateSession(checkCtx, sessionID, userID)
				cancel()
				if err != nil {
					logger.Debug("session rejected", zap.String("user_id", userID), zap.Error(err))
					unauthorized(ctx, "Session expired")
					return
				}
			}

			httpcontext.SetIdentity(ctx, userID, username, sessionID)
			next(ctx)
		}
	}
}

func extractToken(ctx *fasthttp.RequestCtx) string {
	header := string(ctx.Request.Header.Peek("Authorization"))
	if header == "" {
		return ""
	}
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return header
}

func unauthorized(ctx *fasthttp.RequestCtx, message string) {
	writeError(ctx, fasthttp.StatusUnauthorized, message, "UNAUTHORIZED")
}

func writeError(ctx *fasthttp.RequestCtx, status int, message, code string) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBodyString(fmt.Sprintf(`{"message":%q,"code":%q}`, message, code))
}
