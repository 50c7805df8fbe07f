package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/karanbedi/storefront-platform/internal/config"
	"github.com/karanbedi/storefront-platform/internal/errors"
	"github.com/karanbedi/storefront-platform/internal/models"
	"github.com/karanbedi/storefront-platform/internal/utils/response"
)

type identityContextKey string

const identityKey = identityContextKey("identity")

// IdentityMiddleware resolves the shopper identity once per request. A valid
// Bearer token yields a user identity; otherwise the guest session cookie is
// read, minting a fresh token on first contact. An invalid Bearer token is
// rejected rather than silently downgraded to a guest.
type IdentityMiddleware struct {
	jwtKey []byte
	cfg    *config.GuestSession
}

func NewIdentityMiddleware(jwtKey []byte, cfg *config.GuestSession) *IdentityMiddleware {
	return &IdentityMiddleware{jwtKey: jwtKey, cfg: cfg}
}

func (m *IdentityMiddleware) Resolve(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := LoggerFromContext(r.Context())

		guestToken := m.guestToken(w, r)

		identity := models.GuestIdentity(guestToken)

		if authHeader := r.Header.Get("Authorization"); authHeader != "" {

			claims, err := m.parseToken(authHeader)
			if err != nil {
				logger.Warn("Rejected bearer token", slog.String("error", err.Error()))
				response.Error(w, errors.UnauthorizedError("Invalid or expired token"))
				return
			}

			identity = models.UserIdentity(claims.UserID)
			// keep the guest token around so a post-login merge can find the
			// anonymous cart
			identity.GuestToken = guestToken

			logger = logger.With(slog.String("userId", claims.UserID.String()))
		}

		ctx := WithIdentity(r.Context(), identity)
		ctx = context.WithValue(ctx, loggerKey, logger)

		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// guestToken returns the session token from the cookie, setting a new one
// when the shopper has none yet.
func (m *IdentityMiddleware) guestToken(w http.ResponseWriter, r *http.Request) string {

	if cookie, err := r.Cookie(m.cfg.CookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	token := uuid.NewString()

	http.SetCookie(w, &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(m.cfg.TTL),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})

	return token
}

func (m *IdentityMiddleware) parseToken(authHeader string) (*models.Claims, error) {

	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		return nil, errors.UnauthorizedError("Invalid authorization format")
	}

	claims := &models.Claims{}

	token, err := jwt.ParseWithClaims(tokenParts[1], claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.BadRequestError("unexpected signing method")
		}
		return m.jwtKey, nil
	})
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.UnauthorizedError("Invalid token")
	}

	return claims, nil
}

func WithIdentity(ctx context.Context, identity models.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

func IdentityFromContext(ctx context.Context) (models.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(models.Identity)
	return identity, ok
}
