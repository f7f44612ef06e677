package pariah

import (
	"bytes"
	"io"
	"net/http"
	"sync"
)

// Inspector is an Option which captures the requests and responses sent by
// a Requester, and counts them.  It's useful for inspecting exchanges in
// tests, e.g. to check that a call failed without sending anything.
//
// It is not an efficient way to capture bodies, and keeps requests
// and responses around longer than their intended lifespan, so it
// should not be used in production code or benchmarks.
type Inspector struct {
	mu sync.Mutex

	// The last request sent by the client.
	Request *http.Request

	// The last response received by the client.
	Response *http.Response

	// The last client request body
	RequestBody *bytes.Buffer

	// The last client response body
	ResponseBody *bytes.Buffer

	count int
}

// Count returns the number of requests which reached the Inspector.
func (i *Inspector) Count() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.count
}

// Clear clears the inspector's fields and resets the count.
func (i *Inspector) Clear() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.RequestBody = nil
	i.ResponseBody = nil
	i.Request = nil
	i.Response = nil
	i.count = 0
}

// Apply implements Option
func (i *Inspector) Apply(o *Options) error {
	return o.Apply(Middleware(i.MiddlewareFunc))
}

// MiddlewareFunc implements Middleware
func (i *Inspector) MiddlewareFunc(next Doer) Doer {
	return DoerFunc(func(req *http.Request) (*http.Response, error) {
		var reqBody *bytes.Buffer
		// capture the body
		if req.Body != nil {
			b, _ := io.ReadAll(req.Body)
			_ = req.Body.Close()
			req.Body = io.NopCloser(bytes.NewReader(b))
			reqBody = bytes.NewBuffer(b)
		}

		i.mu.Lock()
		i.count++
		i.Request = req
		i.RequestBody = reqBody
		i.mu.Unlock()

		resp, err := next.Do(req)

		var respBody *bytes.Buffer
		if resp != nil && resp.Body != nil {
			b, _ := io.ReadAll(resp.Body)
			_ = resp.Body.Close()
			resp.Body = io.NopCloser(bytes.NewReader(b))
			respBody = bytes.NewBuffer(b)
		}

		i.mu.Lock()
		i.Response = resp
		i.ResponseBody = respBody
		i.mu.Unlock()
		return resp, err
	})
}
