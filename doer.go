package pariah

import "net/http"

// Doer is the transport: it executes one HTTP exchange.  It is implemented by
// *http.Client.  Tests substitute mocks (see MockDoer), and Middleware wraps
// Doers in layers.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// DoerFunc adapts a function to implement Doer
type DoerFunc func(req *http.Request) (*http.Response, error)

// Do implements the Doer interface
func (f DoerFunc) Do(req *http.Request) (*http.Response, error) {
	return f(req)
}

// Apply implements Option.  A DoerFunc installs itself as the Doer.
func (f DoerFunc) Apply(o *Options) error {
	o.Doer = f
	return nil
}
