// Package clientserver is a utility for writing HTTP tests.
//
// A ClientServer embeds an httptest.Server, and builds Pariah
// clients which are preconfigured to talk to the server.
package clientserver

import (
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/ThalesGroup/pariah"
	"github.com/ThalesGroup/pariah/httptestutil"
)

// NewServer creates and starts a new ClientServer.  If s is nil, a new
// httptest.Server is started.  The options become defaults of every Pariah
// the ClientServer builds.
func NewServer(s *httptest.Server, options ...pariah.Option) *ClientServer {
	if s == nil {
		s = httptest.NewServer(nil)
	}
	t := &ClientServer{
		Server:  s,
		options: options,
	}

	// insert ourselves in the handler chain before the real handler.
	t.Handler = s.Config.Handler
	s.Config.Handler = http.HandlerFunc(t.ServeHTTP)

	return t
}

// NewTLSServer creates and starts a ClientServer around an httptest TLS
// server.  Its clients trust the server's certificate.
func NewTLSServer(options ...pariah.Option) *ClientServer {
	return NewServer(httptest.NewTLSServer(nil), options...)
}

// A ClientServer is an http server and a client factory.  Clients returned
// by Pariah() send their requests to the embedded server.
//
// Should be closed at the end of the test.
type ClientServer struct {
	*httptest.Server
	Handler http.Handler

	options []pariah.Option

	mu             sync.Mutex
	clientInsp     *pariah.Inspector
	serverInsp     *httptestutil.Inspector
	lastSrvReq     *http.Request
	lastClientReq  *http.Request
	lastClientResp *http.Response
}

// Pariah returns a client configured to talk to the server.  The options
// are layered over the ClientServer's own.
func (t *ClientServer) Pariah(options ...pariah.Option) *pariah.Pariah {
	t.mu.Lock()
	opts := append([]pariah.Option{pariah.WithDoer(t.Client())}, t.options...)
	t.mu.Unlock()
	opts = append(opts, options...)
	opts = append(opts, pariah.Use(t.captureClientReqResp))
	return pariah.MustNew(t.URL, opts...)
}

// InspectClient installs and returns a pariah.Inspector in the clients built
// by Pariah() from now on.  Calling it again returns the same Inspector.
func (t *ClientServer) InspectClient() *pariah.Inspector {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.clientInsp == nil {
		t.clientInsp = &pariah.Inspector{}
		t.options = append(t.options, t.clientInsp)
	}
	return t.clientInsp
}

// InspectServer installs and returns an httptestutil.Inspector, which
// captures the exchanges handled by the server from now on, whatever the
// Handler.  Calling it again returns the same Inspector.
func (t *ClientServer) InspectServer() *httptestutil.Inspector {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.serverInsp == nil {
		t.serverInsp = httptestutil.NewInspector(0)
	}
	return t.serverInsp
}

// Clear clears the attributes captured by the last request, and the
// client and server inspectors.
func (t *ClientServer) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lastClientReq = nil
	t.lastClientResp = nil
	t.lastSrvReq = nil
	if t.clientInsp != nil {
		t.clientInsp.Clear()
	}
	t.serverInsp.Clear()
}

// LastServerRequest returns the last request handled by the server.
func (t *ClientServer) LastServerRequest() *http.Request {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastSrvReq
}

// LastClientRequest returns the last request sent by a client.
func (t *ClientServer) LastClientRequest() *http.Request {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastClientReq
}

// LastClientResponse returns the last response received by a client.
func (t *ClientServer) LastClientResponse() *http.Response {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastClientResp
}

// ServeHTTP implements http.Handler.  ClientServer installs itself as the
// server's Handler so it can capture the request.  It then delegates to
// the Handler attribute.  A nil Handler responds 200 with no body.
func (t *ClientServer) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	t.mu.Lock()
	t.lastSrvReq = req
	h, insp := t.Handler, t.serverInsp
	t.mu.Unlock()
	if h == nil {
		h = http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})
	}
	if insp != nil {
		h = insp.Wrap(h)
	}
	h.ServeHTTP(w, req)
}

func (t *ClientServer) captureClientReqResp(next pariah.Doer) pariah.Doer {
	return pariah.DoerFunc(func(req *http.Request) (*http.Response, error) {
		t.mu.Lock()
		t.lastClientReq = req
		t.mu.Unlock()
		resp, err := next.Do(req)
		t.mu.Lock()
		t.lastClientResp = resp
		t.mu.Unlock()
		return resp, err
	})
}

// Mux returns a ServeMux.  If the current Handler is a ServeMux, that
// is returned.  Otherwise, a new ServeMux is created and installed as
// the handler.
func (t *ClientServer) Mux() *http.ServeMux {
	t.mu.Lock()
	defer t.mu.Unlock()
	if m, ok := t.Handler.(*http.ServeMux); ok {
		return m
	}
	m := http.NewServeMux()
	t.Handler = m
	return m
}

// HandlerFunc is a convenience method for installing a HandlerFunc as the
// handler.
func (t *ClientServer) HandlerFunc(hf http.HandlerFunc) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Handler = hf
}
