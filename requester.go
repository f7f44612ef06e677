package pariah

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ansel1/merry"
	"github.com/rs/zerolog"
)

// Requester sends requests to paths under a base URL.
//
// A Requester is either bound to a Verb, or unbound, in which case each
// call must pass the Method() option.  It carries a set of default Options,
// which each call copies and layers its own Options over:
//
//	users, err := pariah.NewRequester("https://api.com/v1/", pariah.MethodGet,
//	                  pariah.BearerAuth(token))
//
//	data, err := users.Request("/users/:id", pariah.Params{
//	                 ":id":  pariah.String("42"),
//	                 "page": pariah.Int(2),
//	             })
//
// Path templates contain ":name" placeholders, which are filled from the
// params with the same key (including the colon).  The other params are
// sent as query parameters, except for Absent ones.
//
// Request() returns the body decoded as generic JSON.  JSON() decodes it
// into a type:
//
//	data, err := pariah.JSON[User](users, "/users/:id", params)
//
// Both have *Context() variants, which attach a context to the request.
// Cancelling the context aborts the exchange.
//
// A Requester is never modified after it's constructed, and can be shared
// by concurrent callers.  With() derives a new Requester with additional
// defaults.
type Requester struct {
	baseURL  *url.URL
	verb     Verb
	defaults Options
}

// NewRequester returns a Requester for the base URL.  verb may be empty,
// for an unbound Requester.  The options are layered over DefaultOptions()
// to form the Requester's defaults.
//
// If the options set a Method and verb is empty, the Requester is bound to
// that Method.
func NewRequester(baseURL string, verb Verb, opts ...Option) (*Requester, error) {
	u, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	if verb != "" && !verb.Valid() {
		return nil, merry.Appendf(ErrUnknownVerb, "%q", verb)
	}
	defaults := DefaultOptions()
	if err := defaults.Apply(opts...); err != nil {
		return nil, err
	}
	return newRequester(u, verb, defaults), nil
}

// MustNewRequester is like NewRequester, but panics on errors.
func MustNewRequester(baseURL string, verb Verb, opts ...Option) *Requester {
	r, err := NewRequester(baseURL, verb, opts...)
	if err != nil {
		panic(err)
	}
	return r
}

func newRequester(u *url.URL, verb Verb, defaults Options) *Requester {
	if verb == "" {
		verb = defaults.Method
	}
	defaults.Method = ""
	return &Requester{
		baseURL:  u,
		verb:     verb,
		defaults: defaults,
	}
}

func parseBaseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, merry.Appendf(ErrInvalidBaseURL, "%q: %v", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, merry.Appendf(ErrInvalidBaseURL, "%q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return nil, merry.Appendf(ErrInvalidBaseURL, "%q: missing host", raw)
	}
	return u, nil
}

// BaseURL returns a copy of the base URL.
func (r *Requester) BaseURL() *url.URL {
	u := *r.baseURL
	return &u
}

// Verb returns the bound verb, or "" if the Requester is unbound.
func (r *Requester) Verb() Verb {
	return r.verb
}

// Bound reports whether the Requester has a verb.
func (r *Requester) Bound() bool {
	return r.verb != ""
}

// Defaults returns a copy of the Requester's default Options.
func (r *Requester) Defaults() Options {
	return *r.defaults.Clone()
}

// With returns a new Requester with the options layered over r's defaults.
// r is not modified.
func (r *Requester) With(opts ...Option) (*Requester, error) {
	defaults := r.defaults.Clone()
	if err := defaults.Apply(opts...); err != nil {
		return nil, err
	}
	return newRequester(r.baseURL, r.verb, *defaults), nil
}

// Request sends a request to the path and returns the response, with the
// body decoded as generic JSON (map[string]interface{}, []interface{}, etc).
//
// The options are applied to this call only.
func (r *Requester) Request(path string, params Params, opts ...Option) (*Data[interface{}], error) {
	return r.RequestContext(context.Background(), path, params, opts...)
}

// RequestContext does the same as Request, but attaches a context to
// the request.
func (r *Requester) RequestContext(ctx context.Context, path string, params Params, opts ...Option) (*Data[interface{}], error) {
	return JSONContext[interface{}](ctx, r, path, params, opts...)
}

// JSON sends a request with r, and decodes the response body into a T.
//
// A body which can't be decoded is not an error: the result has a nil
// Payload, and the body text in Raw.
func JSON[T any](r *Requester, path string, params Params, opts ...Option) (*Data[T], error) {
	return JSONContext[T](context.Background(), r, path, params, opts...)
}

// JSONContext does the same as JSON, but attaches a context to the request.
func JSONContext[T any](ctx context.Context, r *Requester, path string, params Params, opts ...Option) (*Data[T], error) {
	o, err := r.options(opts...)
	if err != nil {
		return nil, err
	}

	if o.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.Timeout)
		defer cancel()
	}

	req, err := r.newRequest(ctx, o, path, params)
	if err != nil {
		return nil, err
	}

	resp, body, err := r.exchange(ctx, o, req)
	if err != nil {
		return nil, err
	}

	return decodeData[T](resp, body, o.unmarshaler()), nil
}

// options returns a copy of the defaults with opts applied.
func (r *Requester) options(opts ...Option) (*Options, error) {
	o := r.defaults.Clone()
	if err := o.Apply(opts...); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *Requester) method(o *Options) (Verb, error) {
	switch {
	case o.Method != "":
		return o.Method, nil
	case r.verb != "":
		return r.verb, nil
	}
	return "", merry.Appendf(ErrMissingMethod, "requester for %s is unbound, pass the Method option", r.baseURL)
}

// resolve expands the path template and joins it to the base URL.
func (r *Requester) resolve(path string, params Params) (*url.URL, error) {
	expanded, query, err := expandTemplate(path, params)
	if err != nil {
		return nil, err
	}

	// parsed by hand: a leading value with a colon in it would read as a scheme
	expanded, _, _ = strings.Cut(expanded, "#")
	escaped, rawQuery, _ := strings.Cut(expanded, "?")
	unescaped, err := url.PathUnescape(escaped)
	if err != nil {
		return nil, merry.Prepend(err, "invalid path")
	}
	ref := &url.URL{Path: unescaped, RawPath: escaped, RawQuery: rawQuery}

	u := r.BaseURL()
	if ref.Path != "" {
		u.Path = joinPath(u.Path, ref.Path)
		u.RawPath = joinPath(r.baseURL.EscapedPath(), ref.EscapedPath())
	}

	values := u.Query()
	for key, vals := range ref.Query() {
		values[key] = vals
	}
	for key, vals := range query {
		values[key] = vals
	}
	u.RawQuery = ""
	if len(values) > 0 {
		u.RawQuery = values.Encode()
	}
	return u, nil
}

func joinPath(base, elem string) string {
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(elem, "/")
}

// newRequest builds the *http.Request for a call.  All validation happens
// here, before anything is sent.
func (r *Requester) newRequest(ctx context.Context, o *Options, path string, params Params) (*http.Request, error) {
	method, err := r.method(o)
	if err != nil {
		return nil, err
	}

	u, err := r.resolve(path, params)
	if err != nil {
		return nil, err
	}

	body, ct, err := o.requestBody()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, string(method), u.String(), body)
	if err != nil {
		return nil, merry.Wrap(err)
	}

	// if we marshaled the body, use our content type
	if ct != "" {
		req.Header.Set(HeaderContentType, ct)
	}

	// explicit headers win, the default Content-Type doesn't
	explicitCT := o.explicitContentType()
	for k, v := range o.Header {
		if ct != "" && !explicitCT && http.CanonicalHeaderKey(k) == HeaderContentType {
			continue
		}
		req.Header[k] = v
	}

	if !o.Compress && req.Header.Get(HeaderAcceptEncoding) == "" {
		req.Header.Set(HeaderAcceptEncoding, "identity")
	}

	return req, nil
}

// exchange sends the request and reads the whole response body.
func (r *Requester) exchange(ctx context.Context, o *Options, req *http.Request) (*http.Response, []byte, error) {
	log := zerolog.Ctx(ctx)
	start := time.Now()

	resp, err := o.doer().Do(req)

	// Middleware may return a response along with an error.  Close it either way.
	if err != nil {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
		log.Debug().Err(err).Str("method", req.Method).Str("url", req.URL.String()).Msg("request failed")
		return nil, nil, newTransportError(ctx, err)
	}

	body, err := readBody(resp, o.MaxResponseSize)
	if err != nil {
		log.Debug().Err(err).Str("method", req.Method).Str("url", req.URL.String()).Msg("reading response failed")
		return nil, nil, newTransportError(ctx, err)
	}

	log.Debug().
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Int("status", resp.StatusCode).
		Int("bytes", len(body)).
		Dur("elapsed", time.Since(start)).
		Msg("request complete")

	return resp, body, nil
}

func readBody(resp *http.Response, limit int64) ([]byte, error) {

	if resp.Body == nil {
		return nil, nil
	}

	defer resp.Body.Close()

	var src io.Reader = resp.Body
	if limit > 0 {
		// read one byte past the limit, to tell a body of exactly
		// limit bytes from a longer one
		src = io.LimitReader(resp.Body, limit+1)
	}

	// check if we have a content length hint.  Pre-sizing
	// the buffer saves time
	cls := resp.Header.Get("Content-Length")
	var cl int64

	if cls != "" {
		cl, _ = strconv.ParseInt(cls, 10, 0)
	}

	if limit > 0 && cl > limit {
		return nil, merry.Appendf(ErrResponseTooLarge, "content length %d exceeds %d bytes", cl, limit)
	}

	buf := bytes.Buffer{}
	if cl > 0 {
		buf.Grow(int(cl))
	}
	if _, err := buf.ReadFrom(src); err != nil {
		return nil, merry.Prepend(err, "reading response body")
	}

	if limit > 0 && int64(buf.Len()) > limit {
		return nil, merry.Appendf(ErrResponseTooLarge, "limit is %d bytes", limit)
	}
	return buf.Bytes(), nil
}
