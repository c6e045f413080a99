// Package session provides HTTP session management backed by pkg/cache
// (Redis in production, memory otherwise).
//
// Usage (middleware):
//
//	r.Use(session.Middleware(session.DefaultOptions()))
//
// Usage (handler):
//
//	sess := session.FromCtx(r)
//	sess.Set("customer_id", 42)
//	var id uint
//	ok := sess.Get("customer_id", &id)
//
// Values are stored as JSON per key, so Get decodes straight into the
// caller's type. The middleware persists a changed session and writes the
// cookie right before the response header goes out.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/xcursi322/prakt/config"
	"github.com/xcursi322/prakt/pkg/cache"
	"github.com/xcursi322/prakt/pkg/logger"
)

// Options configures session behaviour.
type Options struct {
	CookieName string
	TTL        time.Duration
	HTTPOnly   bool
	Secure     bool
	SameSite   http.SameSite
	Path       string
}

// DefaultOptions reads cookie name, TTL and the Secure flag from config.
func DefaultOptions() Options {
	return Options{
		CookieName: config.SessionCookie(),
		TTL:        config.SessionTTL(),
		HTTPOnly:   true,
		Secure:     config.SessionSecure(),
		SameSite:   http.SameSiteLaxMode,
		Path:       "/",
	}
}

type ctxKey struct{}

// Session is an in-request session handle.
type Session struct {
	mu      sync.Mutex
	id      string
	prevID  string
	data    map[string]json.RawMessage
	opts    Options
	changed bool
}

// newID generates a cryptographically random 32-byte hex session ID.
func newID() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("session: read random: %v", err))
	}
	return hex.EncodeToString(b)
}

func storeKey(id string) string { return "shop:session:" + id }

func load(id string) (map[string]json.RawMessage, bool) {
	var data map[string]json.RawMessage
	if cache.Get(storeKey(id), &data) && data != nil {
		return data, true
	}
	return map[string]json.RawMessage{}, false
}

// New returns an empty session with a fresh ID.
func New(opts Options) *Session {
	return &Session{id: newID(), data: map[string]json.RawMessage{}, opts: opts}
}

// Set stores value under key. Values must be JSON-encodable.
func (s *Session) Set(key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("session: encode %q: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = raw
	s.changed = true
	return nil
}

// Get decodes the value under key into dest. It returns false when the key
// is absent or the stored value does not fit dest.
func (s *Session) Get(key string, dest interface{}) bool {
	s.mu.Lock()
	raw, ok := s.data[key]
	s.mu.Unlock()
	if !ok {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

// Has reports whether key is present.
func (s *Session) Has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.data[key]
	return ok
}

// Delete removes a key from the session.
func (s *Session) Delete(keys ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		if _, ok := s.data[key]; ok {
			delete(s.data, key)
			s.changed = true
		}
	}
}

// Flash stores a value that is removed by the first GetFlash.
func (s *Session) Flash(key string, value interface{}) error {
	return s.Set("_flash_"+key, value)
}

// GetFlash retrieves and removes a flash value.
func (s *Session) GetFlash(key string, dest interface{}) bool {
	ok := s.Get("_flash_"+key, dest)
	if ok {
		s.Delete("_flash_" + key)
	}
	return ok
}

// Regenerate keeps the data but moves it to a new ID. Call it on login so a
// session ID observed before authentication is useless afterwards.
func (s *Session) Regenerate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.prevID == "" {
		s.prevID = s.id
	}
	s.id = newID()
	s.changed = true
}

// Invalidate destroys the session (full logout).
func (s *Session) Invalidate() {
	s.mu.Lock()
	s.data = map[string]json.RawMessage{}
	s.mu.Unlock()
	s.Regenerate()
}

// ID returns the session ID.
func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// Changed reports whether the session has unsaved changes.
func (s *Session) Changed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.changed
}

// Save persists the session and writes the cookie to the response.
// It is a no-op for unchanged sessions.
func (s *Session) Save(w http.ResponseWriter) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.changed {
		return nil
	}

	if err := cache.Set(storeKey(s.id), s.data, s.opts.TTL); err != nil {
		return fmt.Errorf("session: store save: %w", err)
	}
	if s.prevID != "" {
		_ = cache.Del(storeKey(s.prevID))
		s.prevID = ""
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.opts.CookieName,
		Value:    s.id,
		Path:     s.opts.Path,
		MaxAge:   int(s.opts.TTL.Seconds()),
		HttpOnly: s.opts.HTTPOnly,
		Secure:   s.opts.Secure,
		SameSite: s.opts.SameSite,
	})

	s.changed = false
	return nil
}

// savingWriter flushes the session just before the status line is written,
// which is the last moment a Set-Cookie header can still be added.
type savingWriter struct {
	http.ResponseWriter
	sess  *Session
	r     *http.Request
	saved bool
}

func (sw *savingWriter) save() {
	if sw.saved {
		return
	}
	sw.saved = true
	if err := sw.sess.Save(sw.ResponseWriter); err != nil {
		logger.WithCtx(sw.r.Context()).Error("session save failed", "error", err)
	}
}

func (sw *savingWriter) WriteHeader(code int) {
	sw.save()
	sw.ResponseWriter.WriteHeader(code)
}

func (sw *savingWriter) Write(b []byte) (int, error) {
	sw.save()
	return sw.ResponseWriter.Write(b)
}

// Middleware loads (or creates) the session for every request and injects it
// into the request context. Handlers call session.FromCtx(r) to access it.
func Middleware(opts Options) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := &Session{opts: opts}

			if cookie, err := r.Cookie(opts.CookieName); err == nil && cookie.Value != "" {
				data, found := load(cookie.Value)
				if found {
					sess.id, sess.data = cookie.Value, data
				} else {
					// Unknown or expired ID: never adopt a client-chosen ID.
					sess.id, sess.data = newID(), data
				}
			} else {
				sess.id, sess.data = newID(), map[string]json.RawMessage{}
			}

			sw := &savingWriter{ResponseWriter: w, sess: sess, r: r}
			ctx := context.WithValue(r.Context(), ctxKey{}, sess)
			next.ServeHTTP(sw, r.WithContext(ctx))
			sw.save()
		})
	}
}

// WithSession stores sess in ctx. Tests use it to drive handlers without
// the middleware.
func WithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, sess)
}

// FromCtx retrieves the session from the request context.
// Returns an empty (unsaved) session if none is present.
func FromCtx(r *http.Request) *Session {
	if s, ok := r.Context().Value(ctxKey{}).(*Session); ok {
		return s
	}
	return New(DefaultOptions())
}
