// Package httptestutil contains utilities for HTTP tests built on
// httptest.Server.
//
// Inspect() captures the traffic to and from the server, Dump() and Log()
// print it, and Pariah() returns a client preconfigured to talk to it.
package httptestutil

import (
	"io"
	"net/http/httptest"
	"os"

	"github.com/ThalesGroup/pariah"
	"github.com/rs/zerolog"
)

// Pariah creates a Pariah client which is pre-configured to send requests to
// the test server.  The client is configured with the server's base URL, and
// the server's TLS certs (if using a TLS server).  Additional options are
// layered on top.
func Pariah(ts *httptest.Server, opts ...pariah.Option) *pariah.Pariah {
	return pariah.MustNew(ts.URL, append([]pariah.Option{pariah.WithDoer(ts.Client())}, opts...)...)
}

// Inspect installs and returns an Inspector.  The Inspector captures exchanges with the
// test server.  It's useful in tests to inspect the incoming requests and request bodies
// and the outgoing responses and response bodies.
//
// Inspect wraps and replaces the server's Handler.  It should be called after the real
// Handler has been installed.
func Inspect(ts *httptest.Server) *Inspector {
	i := NewInspector(0)
	ts.Config.Handler = i.Wrap(ts.Config.Handler)
	return i
}

// Dump writes requests and responses handled by the test server to w.
//
// Dump wraps and replaces the server's Handler.  It should be called after the real
// Handler has been installed.
func Dump(ts *httptest.Server, w io.Writer) {
	ts.Config.Handler = DumpTo(ts.Config.Handler, w)
}

// DumpToStdout writes requests and responses handled by the test server to os.Stdout.
func DumpToStdout(ts *httptest.Server) {
	Dump(ts, os.Stdout)
}

type logFunc func(a ...interface{})

func (f logFunc) Write(p []byte) (n int, err error) {
	f(string(p))
	return len(p), nil
}

// DumpToLog writes requests and responses handled by the test server to a logging
// function, like testing.T.Log.
func DumpToLog(ts *httptest.Server, logf func(a ...interface{})) {
	Dump(ts, logFunc(logf))
}

// Log logs each exchange handled by the test server to logger, at debug level.
//
// Like Dump, it should be called after the real Handler has been installed.
func Log(ts *httptest.Server, logger zerolog.Logger) {
	ts.Config.Handler = LogTo(ts.Config.Handler, logger)
}
