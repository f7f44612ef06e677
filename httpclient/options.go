package httpclient

import (
	"crypto/tls"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/ansel1/merry"
)

// Timeout sets the client's overall Timeout.
func Timeout(d time.Duration) Option {
	return OptionFunc(func(c *http.Client) error {
		c.Timeout = d
		return nil
	})
}

// NoRedirects makes the client return redirect responses instead of
// following them.
func NoRedirects() Option {
	return OptionFunc(func(c *http.Client) error {
		c.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
		return nil
	})
}

// MaxRedirects makes the client fail once a chain of redirects reaches max
// requests.
func MaxRedirects(max int) Option {
	return OptionFunc(func(c *http.Client) error {
		c.CheckRedirect = func(_ *http.Request, via []*http.Request) error {
			if len(via) >= max {
				return merry.Errorf("stopped after max %d requests", len(via))
			}
			return nil
		}
		return nil
	})
}

// CookieJar gives the client a new cookie jar.  opts may be nil.
func CookieJar(opts *cookiejar.Options) Option {
	return OptionFunc(func(c *http.Client) error {
		jar, err := cookiejar.New(opts)
		if err != nil {
			return merry.Wrap(err)
		}
		c.Jar = jar
		return nil
	})
}

// RoundTripper replaces the client's transport.  Transport and TLS options
// applied afterwards fail unless rt is an *http.Transport.
func RoundTripper(rt http.RoundTripper) Option {
	return OptionFunc(func(c *http.Client) error {
		c.Transport = rt
		return nil
	})
}

// ProxyURL sends every request through the proxy at rawURL.
func ProxyURL(rawURL string) Option {
	return TransportOption(func(t *http.Transport) error {
		u, err := url.Parse(rawURL)
		if err != nil {
			return merry.Prepend(err, "invalid proxy url")
		}
		t.Proxy = http.ProxyURL(u)
		return nil
	})
}

// ProxyFunc sets the transport's proxy selection function.
func ProxyFunc(f func(*http.Request) (*url.URL, error)) Option {
	return TransportOption(func(t *http.Transport) error {
		t.Proxy = f
		return nil
	})
}

// DisableCompression stops the transport from asking for gzip and
// decompressing responses itself.
func DisableCompression(disable bool) Option {
	return TransportOption(func(t *http.Transport) error {
		t.DisableCompression = disable
		return nil
	})
}

// IdleConns sets how many idle connections are kept per host, and for how
// long.
func IdleConns(perHost int, timeout time.Duration) Option {
	return TransportOption(func(t *http.Transport) error {
		t.MaxIdleConnsPerHost = perHost
		t.IdleConnTimeout = timeout
		return nil
	})
}

// SkipVerify turns off verification of the server's certificate chain and
// host name.
func SkipVerify(skip bool) Option {
	return TLSOption(func(c *tls.Config) error {
		c.InsecureSkipVerify = skip
		return nil
	})
}
