package server

import (
	"net/http"
	"time"
)

// The login gate rides on a single HTTP-only cookie carrying the session ID.
const (
	CookieName   = "erp_session"
	cookieMaxAge = 12 * time.Hour
)

func SetSessionCookie(w http.ResponseWriter, sessionID string) {
	http.SetCookie(w, sessionCookie(sessionID, int(cookieMaxAge.Seconds())))
}

// ClearSessionCookie expires the cookie immediately; logout uses it.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, sessionCookie("", -1))
}

func sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		// Plain HTTP in local deployments; set Secure behind TLS.
		Secure: false,
	}
}

// GetSessionCookie reads the session ID from the request cookie.
func GetSessionCookie(r *http.Request) (string, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return "", err
	}
	return cookie.Value, nil
}
