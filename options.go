package pariah

import (
	"encoding/base64"
	"net/http"
	"time"

	"github.com/ThalesGroup/pariah/httpclient"
	"github.com/ansel1/merry"
)

// HTTP constants.
const (
	HeaderAccept         = "Accept"
	HeaderContentType    = "Content-Type"
	HeaderAuthorization  = "Authorization"
	HeaderUserAgent      = "User-Agent"
	HeaderAcceptEncoding = "Accept-Encoding"
	HeaderRequestID      = "X-Request-Id"

	MediaTypeJSON = "application/json"
	MediaTypeXML  = "application/xml"
	MediaTypeForm = "application/x-www-form-urlencoded"

	// DefaultUserAgent is sent unless overridden.
	DefaultUserAgent = "Pariah"
)

// RedirectPolicy controls how redirect responses are handled.
type RedirectPolicy int

const (
	// RedirectFollow follows redirects, up to Options.MaxRedirects.
	RedirectFollow RedirectPolicy = iota
	// RedirectError fails the call with a TransportError wrapping ErrRedirect.
	RedirectError
	// RedirectManual returns the redirect response itself as the result.
	RedirectManual
)

func (p RedirectPolicy) String() string {
	switch p {
	case RedirectFollow:
		return "follow"
	case RedirectError:
		return "error"
	case RedirectManual:
		return "manual"
	}
	return "unknown"
}

// ParseRedirectPolicy parses "follow", "error" or "manual".
func ParseRedirectPolicy(s string) (RedirectPolicy, error) {
	switch s {
	case "follow", "":
		return RedirectFollow, nil
	case "error":
		return RedirectError, nil
	case "manual":
		return RedirectManual, nil
	}
	return 0, merry.Errorf("unknown redirect policy: %q", s)
}

// Options holds the settings for a request.  Requesters hold a set of default
// Options, and each call layers its own Options over a copy of them:
//
//	library defaults < instance defaults < call overrides
//
// Options are built by applying Option values, never by mutating a
// Requester's defaults.
type Options struct {
	// Method overrides the Requester's bound verb.  Required on calls to
	// an unbound Requester.
	Method Verb

	// Header supplies the request headers.  Explicit headers win over the
	// Content-Type supplied by the Marshaler.  The library default
	// Content-Type doesn't: a Marshaler's content type replaces it.
	Header http.Header

	// Body can be a string, []byte, io.Reader, or any other value.  Strings,
	// byte slices and readers are sent as is.  Other values are marshaled
	// with the Marshaler.
	Body interface{}

	// Marshaler encodes non-raw Body values.  Defaults to DefaultMarshaler (JSON).
	Marshaler Marshaler

	// Unmarshaler decodes response bodies into Data payloads.  Defaults
	// to DefaultUnmarshaler (JSON).
	Unmarshaler Unmarshaler

	Redirect RedirectPolicy

	// MaxRedirects caps the number of redirects followed.  0 leaves the
	// limit to the Doer (the http package stops after 10).  To follow no
	// redirects at all, use RedirectError or RedirectManual.
	MaxRedirects int

	// Compress asks the server for compressed responses.  When false,
	// Accept-Encoding is set to "identity".
	Compress bool

	// MaxResponseSize caps the response body, in bytes.  0 means no cap.
	MaxResponseSize int64

	// Timeout bounds the whole exchange, including reading the body.
	Timeout time.Duration

	// Doer executes the request.  Defaults to http.DefaultClient.
	Doer Doer

	// Middleware wraps the Doer, in the order of this slice.
	Middleware []Middleware

	// set once a header Option names Content-Type
	contentTypeSet bool
}

// DefaultOptions returns a fresh copy of the library defaults.
func DefaultOptions() Options {
	return Options{
		Header: http.Header{
			HeaderContentType: []string{MediaTypeJSON},
			HeaderUserAgent:   []string{DefaultUserAgent},
		},
		Compress: true,
		Redirect: RedirectFollow,
	}
}

// Clone returns a copy of o which can be modified without affecting o.
func (o *Options) Clone() *Options {
	o2 := *o
	o2.Header = cloneHeader(o.Header)
	if o.Middleware != nil {
		o2.Middleware = append([]Middleware(nil), o.Middleware...)
	}
	return &o2
}

func cloneHeader(h http.Header) http.Header {
	if h == nil {
		return nil
	}
	h2 := make(http.Header, len(h))
	for key, value := range h {
		h2[key] = append([]string(nil), value...)
	}
	return h2
}

// Apply applies the options to the receiver.
func (o *Options) Apply(opts ...Option) error {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		err := opt.Apply(o)
		if err != nil {
			return merry.Prepend(err, "applying options")
		}
	}
	return nil
}

// Headers returns the Header, initializing it if necessary.  Never returns nil.
func (o *Options) Headers() http.Header {
	if o.Header == nil {
		o.Header = http.Header{}
	}
	return o.Header
}

func (o *Options) touchHeader(key string) {
	if http.CanonicalHeaderKey(key) == HeaderContentType {
		o.contentTypeSet = true
	}
}

// explicitContentType reports whether the Content-Type header came from
// the caller rather than from DefaultOptions.
func (o *Options) explicitContentType() bool {
	if o.contentTypeSet {
		return true
	}
	ct := o.Header.Get(HeaderContentType)
	return ct != "" && ct != MediaTypeJSON
}

// Option applies some setting to an Options value.  Options are passed to
// constructors, to With(), and to each request call.
type Option interface {

	// Apply modifies the Options argument, which will never be nil.
	// Returning an error stops applying the remaining Options, and the
	// error floats up to the original caller.
	Apply(*Options) error
}

// OptionFunc adapts a function to the Option interface.
type OptionFunc func(*Options) error

// Apply implements Option.
func (f OptionFunc) Apply(o *Options) error {
	return f(o)
}

// Method sets the HTTP method for the call, overriding a bound verb.
func Method(m Verb) Option {
	return OptionFunc(func(o *Options) error {
		if !m.Valid() {
			return merry.Appendf(ErrUnknownVerb, "%q", m)
		}
		o.Method = m
		return nil
	})
}

// AddHeader adds a header value, using Header.Add()
func AddHeader(key, value string) Option {
	return OptionFunc(func(o *Options) error {
		o.Headers().Add(key, value)
		o.touchHeader(key)
		return nil
	})
}

// Header sets a header value, using Header.Set().  The last write wins.
func Header(key, value string) Option {
	return OptionFunc(func(o *Options) error {
		o.Headers().Set(key, value)
		o.touchHeader(key)
		return nil
	})
}

// Headers sets several header values.  Each key replaces any existing value;
// keys not mentioned are left alone.
func Headers(h map[string]string) Option {
	return OptionFunc(func(o *Options) error {
		for key, value := range h {
			o.Headers().Set(key, value)
			o.touchHeader(key)
		}
		return nil
	})
}

// DeleteHeader deletes a header key, using Header.Del()
func DeleteHeader(key string) Option {
	return OptionFunc(func(o *Options) error {
		o.Header.Del(key)
		return nil
	})
}

// BasicAuth sets the Authorization header to "Basic <encoded username and password>".
// If username and password are empty, it deletes the Authorization header.
func BasicAuth(username, password string) Option {
	if username == "" && password == "" {
		return DeleteHeader(HeaderAuthorization)
	}
	return Header(HeaderAuthorization, "Basic "+basicAuth(username, password))
}

// basicAuth returns the base64 encoded username:password for basic auth copied
// from net/http.
func basicAuth(username, password string) string {
	auth := username + ":" + password
	return base64.StdEncoding.EncodeToString([]byte(auth))
}

// BearerAuth sets the Authorization header to "Bearer <token>".
// If the token is empty, it deletes the Authorization header.
func BearerAuth(token string) Option {
	if token == "" {
		return DeleteHeader(HeaderAuthorization)
	}
	return Header(HeaderAuthorization, "Bearer "+token)
}

// Accept sets the Accept header.
func Accept(accept string) Option {
	return Header(HeaderAccept, accept)
}

// ContentType sets the Content-Type header.
func ContentType(contentType string) Option {
	return Header(HeaderContentType, contentType)
}

// UserAgent sets the User-Agent header.
func UserAgent(ua string) Option {
	return Header(HeaderUserAgent, ua)
}

// Body sets Options.Body
func Body(body interface{}) Option {
	return OptionFunc(func(o *Options) error {
		o.Body = body
		return nil
	})
}

// WithMarshaler sets Options.Marshaler
func WithMarshaler(m Marshaler) Option {
	return OptionFunc(func(o *Options) error {
		o.Marshaler = m
		return nil
	})
}

// WithUnmarshaler sets Options.Unmarshaler
func WithUnmarshaler(m Unmarshaler) Option {
	return OptionFunc(func(o *Options) error {
		o.Unmarshaler = m
		return nil
	})
}

func joinOpts(opts ...Option) Option {
	return OptionFunc(func(o *Options) error {
		for _, opt := range opts {
			err := opt.Apply(o)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// AsJSON sets the Marshaler and Unmarshaler to the JSONMarshaler, and sets the
// Content-Type and Accept headers to "application/json".
// If the arg is true, the generated JSON will be indented.
func AsJSON(indent bool) Option {
	m := &JSONMarshaler{Indent: indent}
	return joinOpts(
		m,
		WithUnmarshaler(m),
		ContentType(MediaTypeJSON),
		Accept(MediaTypeJSON),
	)
}

// AsXML sets the Marshaler and Unmarshaler to the XMLMarshaler, and sets the
// Content-Type and Accept headers to "application/xml".
// If the arg is true, the generated XML will be indented.
func AsXML(indent bool) Option {
	m := &XMLMarshaler{Indent: indent}
	return joinOpts(
		m,
		WithUnmarshaler(m),
		ContentType(MediaTypeXML),
		Accept(MediaTypeXML),
	)
}

// AsForm sets the Marshaler to the FormMarshaler, which marshals the body into
// form-urlencoded, and sets the Content-Type header to match.
func AsForm() Option {
	return joinOpts(
		&FormMarshaler{},
		ContentType(MediaTypeForm),
	)
}

// Redirect sets the redirect policy.
func Redirect(p RedirectPolicy) Option {
	return OptionFunc(func(o *Options) error {
		o.Redirect = p
		return nil
	})
}

// MaxRedirects sets the maximum number of redirects to follow.
func MaxRedirects(n int) Option {
	return OptionFunc(func(o *Options) error {
		if n < 0 {
			return merry.Errorf("max redirects must be >= 0, got %d", n)
		}
		o.MaxRedirects = n
		return nil
	})
}

// Compress sets Options.Compress.
func Compress(b bool) Option {
	return OptionFunc(func(o *Options) error {
		o.Compress = b
		return nil
	})
}

// MaxResponseSize caps the size of response bodies, in bytes.
func MaxResponseSize(n int64) Option {
	return OptionFunc(func(o *Options) error {
		if n < 0 {
			return merry.Errorf("max response size must be >= 0, got %d", n)
		}
		o.MaxResponseSize = n
		return nil
	})
}

// Timeout bounds each exchange.  A timeout surfaces as a cancelled TransportError.
func Timeout(d time.Duration) Option {
	return OptionFunc(func(o *Options) error {
		o.Timeout = d
		return nil
	})
}

// Client replaces Options.Doer with an *http.Client.  The client
// will be created and configured using the httpclient package.
func Client(opts ...httpclient.Option) Option {
	return OptionFunc(func(o *Options) error {
		c, err := httpclient.New(opts...)
		if err != nil {
			return err
		}
		o.Doer = c
		return nil
	})
}

// Use appends middleware to Options.Middleware.  Middleware
// is invoked in the order added.
func Use(m ...Middleware) Option {
	return OptionFunc(func(o *Options) error {
		o.Middleware = append(o.Middleware, m...)
		return nil
	})
}

// WithDoer replaces Options.Doer.  If nil, the http.DefaultClient is used.
func WithDoer(d Doer) Option {
	return OptionFunc(func(o *Options) error {
		o.Doer = d
		return nil
	})
}

// doer returns the Doer for a call, with the redirect settings and the
// middleware applied.
func (o *Options) doer() Doer {
	var d Doer = http.DefaultClient
	if o.Doer != nil {
		d = o.Doer
	}
	if c, ok := d.(*http.Client); ok && (o.Redirect != RedirectFollow || o.MaxRedirects > 0) {
		c2 := *c
		c2.CheckRedirect = o.checkRedirect
		d = &c2
	}
	return Wrap(d, o.Middleware...)
}

func (o *Options) checkRedirect(req *http.Request, via []*http.Request) error {
	switch o.Redirect {
	case RedirectError:
		return ErrRedirect
	case RedirectManual:
		return http.ErrUseLastResponse
	}
	if o.MaxRedirects > 0 && len(via) >= o.MaxRedirects {
		return merry.Errorf("stopped after %d redirects", len(via))
	}
	return nil
}
