/*
Package pariah is a foundation for JSON REST API clients.  It wraps the
`http` package with a base URL, path templates, typed params, and a result
envelope which never treats an HTTP status as an error.

A Pariah holds one Requester per HTTP verb, all sharing a base URL and
default Options:

	api, err := pariah.New("https://api.base-api.io/v1/", pariah.BearerAuth(token))

	data, err := api.Get.Request("/users/:id", pariah.Params{
		":id":  pariah.String("42"),
		"page": pariah.Int(2),
	})

	user, err := pariah.JSON[User](api.Get, "/users/:id", pariah.Params{":id": pariah.String("42")})

# Path templates

Path templates contain ":name" placeholders at the start of a segment.  Each
is filled from the param with the same key, colon included, and
path-escaped.  A placeholder without a present value fails the call with
ErrMissingPathParameter, before anything is sent.

The params which don't fill a placeholder are sent as query parameters.
Absent params are left out, so optional values can be passed without
branching:

	params := pariah.Params{
		"page":     pariah.IntPtr(page),    // absent if page is nil
		"per_page": pariah.Absent(),
	}

Structs with `url` tags can be converted into Params with QueryStruct, which
also checks their `validate` tags.

# Results

Every response, whatever its status, produces a Data value: the status,
the headers, the raw body text, and the body decoded into the requested
type.  A body which can't be decoded is not an error either.  Payload is nil
and DecodeErr says why.  Callers check Status or OK() before trusting the
Payload.

Errors are reserved for calls which never produced a response:

  - invalid arguments: ErrInvalidBaseURL, ErrMissingMethod,
    ErrMissingPathParameter, ErrUnknownVerb, ErrInvalidParams
  - transport failures: *TransportError, with Cancelled set when the
    context was cancelled or timed out

Errors are github.com/ansel1/merry errors, so they can be tested with
merry.Is or errors.Is, and carry a stack trace.

# Options

Options configure Requesters.  They can be passed to New, to With(), or to
a single call:

	data, err := api.Post.Request("/users", nil,
		pariah.Body(newUser),
		pariah.Header("X-Request-Id", id),
		pariah.Timeout(5*time.Second),
	)

Per-call options are layered over a copy of the Requester's defaults, and
never change them.  Headers set by a call replace the default values of the
same header.  The default Content-Type survives.

Marshalers are Options too.  The body is marshaled with JSON by default,
or with AsXML() or AsForm().

# Middleware

A Doer sends requests.  *http.Client is a Doer, and so is any function
wrapped in DoerFunc.  Middleware wraps a Doer to add behavior around every
exchange:

	api, err := pariah.New(base,
		pariah.Use(pariah.LogTo(logger)),
		pariah.Client(httpclient.SkipVerify(true)),
	)

RequestID tags requests with a random X-Request-Id, and Trace wraps each
exchange in an OpenTelemetry client span.

# Logging

Requesters log one debug event per exchange to the zerolog logger attached
to the request's context (zerolog.Ctx).  Without one, nothing is logged.
The LogTo middleware logs to an explicit logger instead.

# Testing

MockDoer, ChannelDoer, MockHandler and ChannelHandler build canned
responses.  The Inspector option captures the exchanges of a Requester.
The httptestutil and clientserver packages help with httptest servers.
*/
package pariah
