package scrape

import (
	"net/http"

	"github.com/TasmeerJamali/Bahria-University-Assignment-Tracker/internal/models"
)

// Session is an already-authenticated LMS context: the cookie set
// captured after the external login flow. The core never authenticates;
// it only replays these cookies on its GET requests. Cookies are copied
// once at construction so concurrent course fetches share the snapshot
// read-only.
type Session struct {
	cookies   []http.Cookie
	userAgent string
	referer   string
}

func NewSession(cookies []models.SessionCookie, userAgent, referer string) *Session {
	s := &Session{
		cookies:   make([]http.Cookie, 0, len(cookies)),
		userAgent: userAgent,
		referer:   referer,
	}
	for _, c := range cookies {
		s.cookies = append(s.cookies, http.Cookie{Name: c.Name, Value: c.Value})
	}
	return s
}

func (s *Session) apply(req *http.Request) {
	for i := range s.cookies {
		req.AddCookie(&s.cookies[i])
	}
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}
	if s.referer != "" {
		req.Header.Set("Referer", s.referer)
	}
}
