package httptestutil

import (
	"bytes"
	"io"
	"net/http"

	"github.com/felixge/httpsnoop"
)

// Exchange is a snapshot of one exchange handled by the server.
type Exchange struct {
	Request     *http.Request
	RequestBody *bytes.Buffer

	StatusCode   int
	Header       http.Header
	ResponseBody *bytes.Buffer
}

// Inspector is server-side middleware which captures exchanges in a buffered
// channel.  Once the buffer is full, further exchanges are dropped.
//
// Exchanges can be received from the channel directly, or with NextExchange(),
// LastExchange() and Drain().
type Inspector struct {
	Exchanges chan Exchange
}

// NewInspector creates an Inspector with the given channel buffer size.  A
// size of 0 means 50.
func NewInspector(size int) *Inspector {
	if size == 0 {
		size = 50
	}
	return &Inspector{
		Exchanges: make(chan Exchange, size),
	}
}

// NextExchange receives the oldest captured exchange, or returns nil if there
// is none.  It doesn't block.
func (b *Inspector) NextExchange() *Exchange {
	select {
	case e := <-b.Exchanges:
		return &e
	default:
		return nil
	}
}

// LastExchange returns the most recent captured exchange, and discards the
// older ones.  Returns nil if there is none.  It doesn't block.
func (b *Inspector) LastExchange() *Exchange {
	var last *Exchange
	for _, e := range b.Drain() {
		last = e
	}
	return last
}

// Drain receives every captured exchange, oldest first.
func (b *Inspector) Drain() []*Exchange {
	var all []*Exchange
	for {
		select {
		case e := <-b.Exchanges:
			all = append(all, &e)
		default:
			return all
		}
	}
}

// Len returns the number of captured exchanges waiting in the channel.
func (b *Inspector) Len() int {
	return len(b.Exchanges)
}

// Clear discards the captured exchanges.
func (b *Inspector) Clear() {
	if b == nil {
		return
	}
	b.Drain()
}

// Wrap installs the inspector in front of a handler.  A nil handler
// means http.DefaultServeMux, as in http.Server.
func (b *Inspector) Wrap(next http.Handler) http.Handler {
	return capture(next, func(ex *Exchange) {
		select {
		case b.Exchanges <- *ex:
		default:
		}
	})
}

// capture wraps next, records the exchange, and passes it to done once the
// handler returns.
func capture(next http.Handler, done func(*Exchange)) http.Handler {
	if next == nil {
		next = http.DefaultServeMux
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ex := Exchange{Request: r, ResponseBody: &bytes.Buffer{}}
		if r.Body != nil && r.Body != http.NoBody {
			ex.RequestBody = &bytes.Buffer{}
			if _, err := ex.RequestBody.ReadFrom(r.Body); err != nil {
				panic(err)
			}
			if err := r.Body.Close(); err != nil {
				panic(err)
			}
			r.Body = io.NopCloser(bytes.NewReader(ex.RequestBody.Bytes()))
		}

		next.ServeHTTP(httpsnoop.Wrap(w, hooks(&ex, w)), r)

		if ex.StatusCode == 0 {
			ex.StatusCode = http.StatusOK
			ex.Header = w.Header().Clone()
		}
		done(&ex)
	})
}

func hooks(ex *Exchange, w http.ResponseWriter) httpsnoop.Hooks {
	return httpsnoop.Hooks{
		Write: func(next httpsnoop.WriteFunc) httpsnoop.WriteFunc {
			return func(b []byte) (int, error) {
				if ex.StatusCode == 0 {
					ex.StatusCode = http.StatusOK
					ex.Header = w.Header().Clone()
				}
				ex.ResponseBody.Write(b)
				return next(b)
			}
		},
		WriteHeader: func(next httpsnoop.WriteHeaderFunc) httpsnoop.WriteHeaderFunc {
			return func(code int) {
				if ex.StatusCode == 0 {
					ex.StatusCode = code
					ex.Header = w.Header().Clone()
				}
				next(code)
			}
		},
		ReadFrom: func(next httpsnoop.ReadFromFunc) httpsnoop.ReadFromFunc {
			return func(src io.Reader) (int64, error) {
				start := ex.ResponseBody.Len()
				if _, err := ex.ResponseBody.ReadFrom(src); err != nil {
					return 0, err
				}
				return next(bytes.NewReader(ex.ResponseBody.Bytes()[start:]))
			}
		},
	}
}
