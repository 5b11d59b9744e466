package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type callerKey struct{}

// WithCallerID кладёт идентификатор пользователя в контекст запроса.
func WithCallerID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, callerKey{}, id)
}

// CallerID возвращает пользователя, аутентифицированного middleware.
func CallerID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(callerKey{}).(uuid.UUID)
	return id, ok
}

// Authenticator проверяет bearer-токены HS256; в subject лежит uuid пользователя.
type Authenticator struct {
	secret []byte
}

func NewAuthenticator(secret string) *Authenticator {
	return &Authenticator{secret: []byte(secret)}
}

// Issue выпускает токен для пользователя.
func (a *Authenticator) Issue(userID uuid.UUID, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

func (a *Authenticator) parse(raw string) (uuid.UUID, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return uuid.Nil, err
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("token subject: %w", err)
	}
	return id, nil
}

// Middleware отклоняет запросы без действительного токена с 401.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		raw, found := strings.CutPrefix(header, "Bearer ")
		if !found || strings.TrimSpace(raw) == "" {
			writeDesc(w, http.StatusUnauthorized, "authorization required")
			return
		}
		id, err := a.parse(strings.TrimSpace(raw))
		if err != nil {
			desc := "invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				desc = "token expired"
			}
			writeDesc(w, http.StatusUnauthorized, desc)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithCallerID(r.Context(), id)))
	})
}

// caller достаёт пользователя из контекста; без него маршрут не должен был быть вызван.
func caller(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := CallerID(r.Context())
	if !ok {
		writeDesc(w, http.StatusUnauthorized, "authorization required")
	}
	return id, ok
}
