// Package passwordinator is a client for the Passwordinator random password
// generator (https://github.com/fawazsullia/password-generator).
package passwordinator

import (
	"context"

	"github.com/ThalesGroup/pariah"
)

// DefaultURL is the public Passwordinator instance.
const DefaultURL = "https://passwordinator.herokuapp.com/"

// Options shapes the generated password.  Zero fields use the service's
// defaults.  A negative Length fails with pariah.ErrInvalidParams.
type Options struct {
	Numbers  bool `url:"num,omitempty"`
	Specials bool `url:"char,omitempty"`
	Capitals bool `url:"caps,omitempty"`
	Length   int  `url:"len,omitempty" validate:"gte=0"`
}

// Password is a generated password.
type Password struct {
	Data string `json:"data"`
}

// Client calls Passwordinator.
type Client struct {
	api *pariah.Pariah
}

// New returns a Client for DefaultURL.
func New(opts ...pariah.Option) (*Client, error) {
	return NewWithURL(DefaultURL, opts...)
}

// NewWithURL returns a Client for another base URL.
func NewWithURL(baseURL string, opts ...pariah.Option) (*Client, error) {
	api, err := pariah.New(baseURL, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{api: api}, nil
}

// Generate generates a password.
func (c *Client) Generate(ctx context.Context, opts Options) (*pariah.Data[Password], error) {
	params, err := pariah.QueryStruct(opts)
	if err != nil {
		return nil, err
	}
	return pariah.JSONContext[Password](ctx, c.api.Get, "/generate", params)
}
