package middleware

import (
	"bytes"
	"net/http"
	"time"

	"github.com/patrickmn/go-cache"

	h "secretsanta/internal/delivery/http/helpers"
)

// Idempotency headers.
const (
	IdempotencyKeyHeader = "Idempotency-Key"
	ReplayedHeader       = "Idempotent-Replayed"
)

// DefaultIdempotencyTTL is how long a completed response is replayed for its key.
const DefaultIdempotencyTTL = 24 * time.Hour

type inFlight struct{}

type storedResponse struct {
	status int
	header http.Header
	body   []byte
}

// NewIdempotencyCache returns a cache suitable for Idempotency.
func NewIdempotencyCache(ttl time.Duration) *cache.Cache {
	if ttl <= 0 {
		ttl = DefaultIdempotencyTTL
	}
	return cache.New(ttl, ttl/2)
}

// captureWriter tees the response so it can be stored after the handler returns.
type captureWriter struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (w *captureWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays the stored response for a repeated Idempotency-Key so that a
// resubmitted draw never mails participants twice. A key whose first request is still
// running gets 409. Requests without the header pass straight through.
func Idempotency(c *cache.Cache, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get(IdempotencyKeyHeader)
		if key == "" || c == nil {
			next(w, r)
			return
		}
		if organizer, ok := OrganizerFromContext(r.Context()); ok {
			key = organizer + ":" + key
		}

		if err := c.Add(key, inFlight{}, cache.DefaultExpiration); err != nil {
			v, found := c.Get(key)
			if !found {
				h.WriteJSONError(w, http.StatusConflict, h.ErrCodeConflict, "request with this idempotency key is in progress")
				return
			}
			stored, done := v.(*storedResponse)
			if !done {
				h.WriteJSONError(w, http.StatusConflict, h.ErrCodeConflict, "request with this idempotency key is in progress")
				return
			}
			for k, vals := range stored.header {
				w.Header()[k] = vals
			}
			w.Header().Set(ReplayedHeader, "true")
			w.WriteHeader(stored.status)
			_, _ = w.Write(stored.body)
			return
		}

		// A handler that panics leaves no response to replay; free the key for a retry.
		stored := false
		defer func() {
			if !stored {
				c.Delete(key)
			}
		}()

		cw := &captureWriter{ResponseWriter: w, status: http.StatusOK}
		next(cw, r)
		header := w.Header().Clone()
		header.Del(RequestIDHeader)
		c.Set(key, &storedResponse{
			status: cw.status,
			header: header,
			body:   cw.body.Bytes(),
		}, cache.DefaultExpiration)
		stored = true
	}
}
