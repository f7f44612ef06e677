package pariah

import (
	"net/url"
)

// Pariah is a client for a JSON REST API.  It holds one Requester per
// supported verb, all sharing the same base URL and default Options.  The
// standard verbs are exposed as fields, so call sites read like:
//
//	api, err := pariah.New("https://api.base-api.io/v1/", pariah.BearerAuth(token))
//
//	data, err := api.Get.Request("/users/:id", pariah.Params{":id": pariah.String(id)})
//	user, err := pariah.JSON[User](api.Post, "/users", params)
//
// Pariah also embeds an unbound Requester, which needs the Method option:
//
//	data, err := api.Request("/files/:id", params, pariah.Method(pariah.MethodDelete))
//
// A Pariah is never modified after construction, and is safe for concurrent use.
type Pariah struct {
	*Requester

	Get     *Requester
	Post    *Requester
	Put     *Requester
	Delete  *Requester
	Patch   *Requester
	Head    *Requester
	Options *Requester
	Connect *Requester
	Trace   *Requester

	verbs map[Verb]*Requester
}

// New creates a Pariah for the base URL.  The options become the defaults of
// every verb's Requester.  Fails with ErrInvalidBaseURL unless the base URL
// is an absolute http or https URL.
func New(baseURL string, opts ...Option) (*Pariah, error) {
	u, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	defaults := DefaultOptions()
	if err := defaults.Apply(opts...); err != nil {
		return nil, err
	}
	return build(u, defaults), nil
}

// MustNew is like New, but panics on errors.
func MustNew(baseURL string, opts ...Option) *Pariah {
	p, err := New(baseURL, opts...)
	if err != nil {
		panic(err)
	}
	return p
}

func build(u *url.URL, defaults Options) *Pariah {
	// a Method in the shared options must not rebind every verb
	defaults.Method = ""

	p := &Pariah{
		Requester: newRequester(u, "", *defaults.Clone()),
		verbs:     make(map[Verb]*Requester, len(standardVerbs)+len(extensionVerbs)),
	}
	for _, v := range Verbs() {
		p.verbs[v] = newRequester(u, v, *defaults.Clone())
	}

	p.Get = p.verbs[MethodGet]
	p.Post = p.verbs[MethodPost]
	p.Put = p.verbs[MethodPut]
	p.Delete = p.verbs[MethodDelete]
	p.Patch = p.verbs[MethodPatch]
	p.Head = p.verbs[MethodHead]
	p.Options = p.verbs[MethodOptions]
	p.Connect = p.verbs[MethodConnect]
	p.Trace = p.verbs[MethodTrace]
	return p
}

// For returns the Requester bound to v, including the extension
// verbs which have no field.  Returns nil if v is not supported.
func (p *Pariah) For(v Verb) *Requester {
	return p.verbs[v]
}

// With returns a new Pariah with the options layered over the shared defaults.
func (p *Pariah) With(opts ...Option) (*Pariah, error) {
	defaults := p.Requester.defaults.Clone()
	if err := defaults.Apply(opts...); err != nil {
		return nil, err
	}
	return build(p.baseURL, *defaults), nil
}
