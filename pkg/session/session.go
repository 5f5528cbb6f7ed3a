package session

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	CookieName = "stacky_sides_session"
	cookieTTL  = 30 * 24 * time.Hour
)

// FromRequest returns the session key carried by the request, or "" when there is none.
func FromRequest(req *http.Request) string {
	cookie, err := req.Cookie(CookieName)
	if err != nil {
		return ""
	}

	if _, err = uuid.Parse(cookie.Value); err != nil {
		return ""
	}

	return cookie.Value
}

// GetOrSet returns the request's session key, issuing a new one when the request has none.
func GetOrSet(writer http.ResponseWriter, req *http.Request) string {
	if key := FromRequest(req); key != "" {
		return key
	}

	key := uuid.NewString()

	http.SetCookie(writer, &http.Cookie{
		Name:     CookieName,
		Value:    key,
		Path:     "/",
		Expires:  time.Now().Add(cookieTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return key
}
