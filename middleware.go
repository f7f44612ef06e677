package pariah

import (
	"io"
	"net/http"
	"net/http/httputil"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/ThalesGroup/pariah"

// Middleware can be used to wrap Doers with additional functionality:
//
//	loggingMiddleware := func(next Doer) Doer {
//	    return DoerFunc(func(req *http.Request) (*http.Response, error) {
//	        logRequest(req)
//	        return next.Do(req)
//	    })
//	}
//
// Middleware can be installed with the Use() option:
//
//	api, err := pariah.New(base, pariah.Use(loggingMiddleware))
//
// Middleware itself is an Option, so it can also be passed directly:
//
//	data, err := api.Get.Request("/status", nil, Middleware(loggingMiddleware))
type Middleware func(Doer) Doer

// Apply implements Option
func (m Middleware) Apply(o *Options) error {
	o.Middleware = append(o.Middleware, m)
	return nil
}

// Wrap applies a set of middleware to a Doer.  The returned Doer will invoke
// the middleware in the order of the arguments.
func Wrap(d Doer, m ...Middleware) Doer {
	for i := len(m) - 1; i > -1; i-- {
		d = m[i](d)
	}
	return d
}

// Dump dumps requests and responses to a writer.  Just intended for debugging.
func Dump(w io.Writer) Middleware {
	return func(next Doer) Doer {
		return DoerFunc(func(req *http.Request) (*http.Response, error) {
			dump, dumperr := httputil.DumpRequestOut(req, true)
			// Write the entire request and response out as a single Write() call
			// So if this is being redirected to a logger, it's all sent in a single
			// package
			if dumperr != nil {
				_, _ = io.WriteString(w, "Error dumping request: "+dumperr.Error()+"\n")
			} else {
				_, _ = io.WriteString(w, string(dump)+"\n")
			}
			resp, err := next.Do(req)
			if resp != nil {
				dump, dumperr = httputil.DumpResponse(resp, true)
				if dumperr != nil {
					_, _ = io.WriteString(w, "Error dumping response: "+dumperr.Error()+"\n")
				} else {
					_, _ = io.WriteString(w, string(dump)+"\n")
				}
			}
			return resp, err
		})
	}
}

// DumpToStderr dumps requests and responses to os.Stderr.
func DumpToStderr() Middleware {
	return Dump(os.Stderr)
}

type logFunc func(a ...interface{})

func (f logFunc) Write(p []byte) (n int, err error) {
	f(string(p))
	return len(p), nil
}

// DumpToLog dumps the request and response to a logging function.
// logf is compatible with fmt.Print(), testing.T.Log, or log.XXX()
// functions.
//
// Request and response will be logged separately.  Though logf
// takes a variadic arg, it will only be called with one string
// arg at a time.
func DumpToLog(logf func(a ...interface{})) Middleware {
	return Dump(logFunc(logf))
}

// LogTo logs one event per exchange to logger: the method and URL, the
// status or error, and the elapsed time.  Successful exchanges are logged at
// debug level, failed ones at warn.
func LogTo(logger zerolog.Logger) Middleware {
	return func(next Doer) Doer {
		return DoerFunc(func(req *http.Request) (*http.Response, error) {
			start := time.Now()
			resp, err := next.Do(req)

			var e *zerolog.Event
			if err != nil {
				e = logger.Warn().Err(err)
			} else {
				e = logger.Debug().Int("status", resp.StatusCode)
			}
			e.Str("method", req.Method).
				Str("url", req.URL.String()).
				Dur("elapsed", time.Since(start)).
				Msg("http exchange")

			return resp, err
		})
	}
}

// RequestID sets the X-Request-Id header to a random UUID, on requests which
// don't already carry one.
func RequestID() Middleware {
	return func(next Doer) Doer {
		return DoerFunc(func(req *http.Request) (*http.Response, error) {
			if req.Header.Get(HeaderRequestID) == "" {
				req = req.Clone(req.Context())
				req.Header.Set(HeaderRequestID, uuid.NewString())
			}
			return next.Do(req)
		})
	}
}

// Trace wraps each exchange in an OpenTelemetry client span, and injects the
// span context into the request headers.  Nil arguments mean the global
// TracerProvider and TextMapPropagator.
//
// Transport errors and 5XX statuses mark the span as failed.
func Trace(tp trace.TracerProvider, prop propagation.TextMapPropagator) Middleware {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	if prop == nil {
		prop = otel.GetTextMapPropagator()
	}
	tracer := tp.Tracer(tracerName)

	return func(next Doer) Doer {
		return DoerFunc(func(req *http.Request) (*http.Response, error) {
			ctx, span := tracer.Start(req.Context(), "HTTP "+req.Method,
				trace.WithSpanKind(trace.SpanKindClient),
				trace.WithAttributes(
					attribute.String("http.request.method", req.Method),
					attribute.String("url.full", req.URL.String()),
					attribute.String("server.address", req.URL.Hostname()),
				),
			)
			defer span.End()

			req = req.Clone(ctx)
			prop.Inject(ctx, propagation.HeaderCarrier(req.Header))

			resp, err := next.Do(req)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				return resp, err
			}
			span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
			if resp.StatusCode >= 500 {
				span.SetStatus(codes.Error, http.StatusText(resp.StatusCode))
			}
			return resp, nil
		})
	}
}
