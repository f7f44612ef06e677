package pariah

import (
	"bytes"
	"net/http"
)

// Data is the result of a call: the response status, plus the body decoded
// into a T.
//
// Any response is a result, whatever its status.  It's up to the caller to
// check Status (or OK()) before trusting the payload.
type Data[T any] struct {
	Status int
	Header http.Header

	// Payload is the decoded body.  It is nil if the body was empty or
	// could not be decoded.
	Payload *T

	// Raw is the body text, exactly as received.  It is set whether or not
	// the body decoded, so an empty Raw doesn't mean success: check
	// DecodeErr for that.
	Raw string

	// DecodeErr holds the decode failure, if the body was not empty and
	// could not be decoded into a T.
	DecodeErr error
}

// OK reports whether Status is 2XX.
func (d *Data[T]) OK() bool {
	return d.Status >= 200 && d.Status <= 299
}

// Decoded reports whether Payload was populated.
func (d *Data[T]) Decoded() bool {
	return d.Payload != nil
}

func decodeData[T any](resp *http.Response, body []byte, u Unmarshaler) *Data[T] {
	d := &Data[T]{
		Status: resp.StatusCode,
		Header: resp.Header,
		Raw:    string(body),
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return d
	}
	var v T
	if err := u.Unmarshal(body, resp.Header.Get(HeaderContentType), &v); err != nil {
		d.DecodeErr = err
		return d
	}
	d.Payload = &v
	return d
}
