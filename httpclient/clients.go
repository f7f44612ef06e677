// Package httpclient builds the *http.Client a Pariah sends its requests
// with.
//
// New() starts from a client equivalent to http.DefaultClient, and applies
// Options to it:
//
//	c, err := httpclient.New(httpclient.SkipVerify(true), httpclient.Timeout(10*time.Second))
//
// Options which touch the transport or its TLS config create a private
// *http.Transport on first use, so the process-wide defaults are never
// modified.  The pariah.Client() option wraps New().
package httpclient

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"

	"github.com/ansel1/merry"
)

// New returns a new *http.Client, configured by opts.
func New(opts ...Option) (*http.Client, error) {
	c := &http.Client{}
	if err := Apply(c, opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// Apply configures an existing client.  It stops at the first failing
// Option.
func Apply(c *http.Client, opts ...Option) error {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.Apply(c); err != nil {
			return merry.Prepend(err, "configuring http client")
		}
	}
	return nil
}

// Option configures an *http.Client.  Apply is never passed nil.
type Option interface {
	Apply(*http.Client) error
}

// OptionFunc adapts a function to the Option interface.
type OptionFunc func(*http.Client) error

// Apply implements Option.
func (f OptionFunc) Apply(c *http.Client) error {
	return f(c)
}

// TransportOption is an Option which configures the client's
// *http.Transport.  A nil Transport is replaced by a new one with the same
// settings as http.DefaultTransport.  Any other kind of RoundTripper is an
// error.
type TransportOption func(*http.Transport) error

// Apply implements Option.
func (f TransportOption) Apply(c *http.Client) error {
	if c.Transport == nil {
		c.Transport = defaultTransport()
	}
	t, ok := c.Transport.(*http.Transport)
	if !ok {
		return merry.Errorf("transport is a %T, not an *http.Transport", c.Transport)
	}
	return f(t)
}

// TLSOption is an Option which configures the transport's TLS config,
// creating an empty one if needed.
type TLSOption func(*tls.Config) error

// Apply implements Option.
func (f TLSOption) Apply(c *http.Client) error {
	return TransportOption(func(t *http.Transport) error {
		if t.TLSClientConfig == nil {
			t.TLSClientConfig = &tls.Config{} // nolint:gosec
		}
		return f(t.TLSClientConfig)
	}).Apply(c)
}

// defaultTransport mirrors the settings of http.DefaultTransport, which
// can't be copied since it holds locks.
func defaultTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: time.Second,
	}
}
