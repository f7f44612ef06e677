package httptestutil

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"

	"github.com/rs/zerolog"
)

// DumpTo wraps a handler, and writes each request and its response to w in
// wire format, using httputil.DumpRequest and httputil.DumpResponse.
func DumpTo(handler http.Handler, w io.Writer) http.Handler {
	return capture(handler, func(ex *Exchange) {
		writeDump(w, ex)
	})
}

// LogTo wraps a handler, and logs one debug event per exchange to logger.
func LogTo(handler http.Handler, logger zerolog.Logger) http.Handler {
	return capture(handler, func(ex *Exchange) {
		e := logger.Debug().
			Str("method", ex.Request.Method).
			Str("url", ex.Request.URL.String()).
			Int("status", ex.StatusCode)
		if ex.RequestBody != nil {
			e = e.Str("requestBody", ex.RequestBody.String())
		}
		e.Str("responseBody", ex.ResponseBody.String()).Msg("server exchange")
	})
}

func writeDump(w io.Writer, ex *Exchange) {
	req := ex.Request.Clone(ex.Request.Context())
	req.Body = http.NoBody
	if ex.RequestBody != nil {
		req.Body = io.NopCloser(bytes.NewReader(ex.RequestBody.Bytes()))
	}
	if d, err := httputil.DumpRequest(req, true); err != nil {
		fmt.Fprintf(w, "error dumping request: %#v", err)
	} else {
		_, _ = w.Write(append(d, "\r\n"...))
	}

	resp := http.Response{
		Proto:         req.Proto,
		ProtoMajor:    req.ProtoMajor,
		ProtoMinor:    req.ProtoMinor,
		StatusCode:    ex.StatusCode,
		Header:        ex.Header,
		Body:          io.NopCloser(bytes.NewReader(ex.ResponseBody.Bytes())),
		ContentLength: int64(ex.ResponseBody.Len()),
	}
	if d, err := httputil.DumpResponse(&resp, true); err != nil {
		fmt.Fprintf(w, "error dumping response: %#v", err)
	} else {
		_, _ = w.Write(append(d, "\r\n"...))
	}
}
