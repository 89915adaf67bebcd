package main

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/hlog"
)

const (
	sessionCookieName = "gpcalc_session"
	sessionMaxAge     = 60 * 60 * 24 * 365
)

type (
	sessionKey       struct{}
	sessionIssuedKey struct{}
)

// sessionService hands each browser a signed, anonymous session id. History
// is keyed by it.
type sessionService struct {
	sessionSecret []byte
	secure        bool
}

func newSessionService(sessionSecret string, secure bool) *sessionService {
	return &sessionService{sessionSecret: []byte(sessionSecret), secure: secure}
}

func (a *sessionService) createSessionValue(sessionID string) string {
	payload := base64.RawURLEncoding.EncodeToString([]byte(sessionID))
	return payload + "." + a.sign(payload)
}

func (a *sessionService) sign(payload string) string {
	mac := hmac.New(sha256.New, a.sessionSecret)
	_, _ = mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

func (a *sessionService) verifySessionValue(value string) (string, bool) {
	payload, signature, ok := strings.Cut(value, ".")
	if !ok || strings.Contains(signature, ".") {
		return "", false
	}

	provided, err := hex.DecodeString(signature)
	if err != nil {
		return "", false
	}
	expected, _ := hex.DecodeString(a.sign(payload))
	if !hmac.Equal(provided, expected) {
		return "", false
	}

	decoded, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil || len(decoded) == 0 {
		return "", false
	}

	return string(decoded), true
}

func (a *sessionService) setSessionCookie(w http.ResponseWriter, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    a.createSessionValue(sessionID),
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		Secure:   a.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// middleware attaches the caller's session id to the request context,
// issuing a new one when the cookie is missing or tampered with.
func (a *sessionService) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sessionID string
		if cookie, err := r.Cookie(sessionCookieName); err == nil {
			sessionID, _ = a.verifySessionValue(cookie.Value)
		}
		ctx := r.Context()
		if sessionID == "" {
			sessionID = uuid.NewString()
			a.setSessionCookie(w, sessionID)
			ctx = context.WithValue(ctx, sessionIssuedKey{}, true)
			hlog.FromRequest(r).Debug().Str("session", sessionID).Msg("issued session")
		}

		ctx = context.WithValue(ctx, sessionKey{}, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionFromContext(ctx context.Context) string {
	id, _ := ctx.Value(sessionKey{}).(string)
	return id
}

// sessionIssued reports whether the session was minted for this request
// rather than presented by the client.
func sessionIssued(ctx context.Context) bool {
	issued, _ := ctx.Value(sessionIssuedKey{}).(bool)
	return issued
}
