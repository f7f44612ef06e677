// Package baseio is a client for the BaseIO API (https://www.base-api.io):
// users, emails, files, images, forms and mailing lists.
//
// Every method returns the pariah.Data envelope, so callers check Status
// before trusting the Payload:
//
//	c, err := baseio.New(token)
//	user, err := c.GetUser(ctx, "u_123")
//	if err == nil && user.OK() {
//	    fmt.Println(user.Payload.Email)
//	}
package baseio

import (
	"encoding/json"

	"github.com/ThalesGroup/pariah"
)

// DefaultURL is the BaseIO API root.
const DefaultURL = "https://api.base-api.io/v1/"

// Client calls the BaseIO API.
type Client struct {
	api *pariah.Pariah
}

// New returns a Client authenticating with token.  Options are passed on to
// pariah.New, e.g. to swap the transport in tests.
func New(token string, opts ...pariah.Option) (*Client, error) {
	return NewWithURL(DefaultURL, token, opts...)
}

// NewWithURL is like New, but talks to another base URL.
func NewWithURL(baseURL, token string, opts ...pariah.Option) (*Client, error) {
	api, err := pariah.New(baseURL, append([]pariah.Option{pariah.BearerAuth(token)}, opts...)...)
	if err != nil {
		return nil, err
	}
	return &Client{api: api}, nil
}

// User is a BaseIO user.  CustomData holds whatever JSON was stored with the user.
type User struct {
	ID         string          `json:"id"`
	Email      string          `json:"email"`
	CustomData json.RawMessage `json:"custom_data,omitempty"`
}

// List is a page of items.
type List[T any] struct {
	Items    []T          `json:"items"`
	Metadata ListMetadata `json:"metadata"`
}

// ListMetadata describes a List.
type ListMetadata struct {
	Count int `json:"count"`
}

// RequestedPassword is returned when a password reset is requested.
type RequestedPassword struct {
	ForgotPasswordToken string `json:"forgot_password_token"`
}

// Email is a sent email.
type Email struct {
	ID          int    `json:"id"`
	CreatedAt   string `json:"created_at"`
	FromAddress string `json:"from_address"`
	ToAddress   string `json:"to_address"`
	Subject     string `json:"subject"`
	HTML        string `json:"html"`
	Text        string `json:"text"`
}

// File is an uploaded file.
type File struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at"`
	Name      string `json:"name"`
	Size      int64  `json:"size"`
	Extension string `json:"extension"`
}

// Image is an uploaded image.
type Image struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at"`
	Name      string `json:"name"`
	Height    int    `json:"height"`
	Width     int    `json:"width"`
	Size      int64  `json:"size"`
}

// ImageFormat is the output format of a processed image.
type ImageFormat string

// Image formats.
const (
	PNG ImageFormat = "png"
	JPG ImageFormat = "jpg"
)

// Form is a form definition.
type Form struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at"`
	Name      string `json:"name"`
}

// FormSubmission is one submission of a Form.
type FormSubmission struct {
	ID        string            `json:"id"`
	CreatedAt string            `json:"created_at"`
	Fields    map[string]string `json:"fields"`
	Files     []string          `json:"files"`
}

// MailingList is a list of subscribed addresses.
type MailingList struct {
	ID                     string   `json:"id"`
	CreatedAt              string   `json:"created_at"`
	Name                   string   `json:"name"`
	UnsubscribeRedirectURL string   `json:"unsubscribe_redirect_url"`
	Emails                 []string `json:"emails"`
}

// OutgoingMailingListEntry reports which addresses an email went to.
type OutgoingMailingListEntry struct {
	Failed []string `json:"failed"`
	Sent   []string `json:"sent"`
}

// optString leaves empty strings out of the request.
func optString(s string) pariah.Param {
	if s == "" {
		return pariah.Absent()
	}
	return pariah.String(s)
}

// optInt leaves zeros out of the request.
func optInt(n int) pariah.Param {
	if n == 0 {
		return pariah.Absent()
	}
	return pariah.Int(int64(n))
}

func paging(page, perPage int) pariah.Params {
	return pariah.Params{
		"page":     optInt(page),
		"per_page": optInt(perPage),
	}
}

func byID(id string) pariah.Params {
	return pariah.Params{":id": pariah.String(id)}
}

// fields converts free-form form fields into query params.
func fields(m map[string]string) pariah.Params {
	p := make(pariah.Params, len(m))
	for k, v := range m {
		p[k] = pariah.String(v)
	}
	return p
}
