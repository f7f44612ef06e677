package pariah

import (
	"bytes"
	"io"
	"net/http"
	"strconv"
	"sync/atomic"
)

// These are tools for writing tests.

// MockDoer creates a Doer which returns a mocked response, for writing tests.
//
// Options can be passed in, which are used to build the response: the
// Header and Body options (and the marshaling options, like AsJSON()) shape
// the mocked response just as they would shape a request.
func MockDoer(statusCode int, options ...Option) DoerFunc {
	return func(req *http.Request) (*http.Response, error) {
		resp := MockResponse(statusCode, options...)
		resp.Request = req
		return resp, nil
	}
}

// CountingDoer wraps a Doer and counts the requests sent through it.  Returns
// the Doer and a function which reports the count.
func CountingDoer(next Doer) (DoerFunc, func() int) {
	var n int64
	doer := func(req *http.Request) (*http.Response, error) {
		atomic.AddInt64(&n, 1)
		return next.Do(req)
	}
	count := func() int {
		return int(atomic.LoadInt64(&n))
	}
	return doer, count
}

// ChannelDoer returns a DoerFunc and a channel.  The DoerFunc will return the responses
// send on the channel.
func ChannelDoer() (chan<- *http.Response, DoerFunc) {
	input := make(chan *http.Response, 1)

	return input, func(req *http.Request) (*http.Response, error) {
		select {
		case resp := <-input:
			resp.Request = req
			return resp, nil
		case <-req.Context().Done():
			return nil, req.Context().Err()
		}
	}
}

// MockResponse creates an *http.Response from the Options.  The Header
// becomes the response header, and the Body (marshaled if necessary) the
// response body.  Panics if the body can't be marshaled.
func MockResponse(statusCode int, options ...Option) *http.Response {
	o := Options{}
	if err := o.Apply(options...); err != nil {
		panic(err)
	}

	body, ct, err := o.requestBody()
	if err != nil {
		panic(err)
	}

	var b []byte
	if body != nil {
		b, err = io.ReadAll(body)
		if err != nil {
			panic(err)
		}
	}

	h := cloneHeader(o.Header)
	if h == nil {
		h = http.Header{}
	}
	if ct != "" && h.Get(HeaderContentType) == "" {
		h.Set(HeaderContentType, ct)
	}
	h.Set("Content-Length", strconv.Itoa(len(b)))

	return &http.Response{
		Status:        strconv.Itoa(statusCode) + " " + http.StatusText(statusCode),
		StatusCode:    statusCode,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        h,
		Body:          io.NopCloser(bytes.NewReader(b)),
		ContentLength: int64(len(b)),
	}
}

// MockHandler returns an http.Handler which returns responses built from the args.
// The Option arguments are used as in MockResponse.
func MockHandler(statusCode int, options ...Option) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writeResponse(writer, MockResponse(statusCode, options...))
	})
}

// ChannelHandler returns an http.Handler and an input channel.  The Handler returns the http.Responses sent to
// the channel.
func ChannelHandler() (chan<- *http.Response, http.Handler) {
	input := make(chan *http.Response, 1)

	return input, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writeResponse(writer, <-input)
	})
}

func writeResponse(w http.ResponseWriter, resp *http.Response) {
	h := w.Header()
	for key, value := range resp.Header {
		h[key] = value
	}

	w.WriteHeader(resp.StatusCode)

	if resp.Body != nil {
		_, _ = io.Copy(w, resp.Body)
	}
}
