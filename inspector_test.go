package pariah

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspector(t *testing.T) {

	var dumpedReqBody []byte

	var doer DoerFunc = func(req *http.Request) (*http.Response, error) {
		dumpedReqBody = nil
		if req.Body != nil {
			dumpedReqBody, _ = io.ReadAll(req.Body)
		}
		resp := &http.Response{
			StatusCode: 201,
			Body:       io.NopCloser(strings.NewReader("pong")),
		}
		return resp, nil
	}

	i := Inspector{}

	r := MustNewRequester("http://api.com", MethodPost, &i, doer)
	data, err := r.Request("/ping", nil, Body("ping"))
	require.NoError(t, err)

	assert.Equal(t, 201, data.Status)
	assert.Equal(t, "pong", data.Raw)
	assert.Equal(t, 1, i.Count())

	require.NotNil(t, i.Request)
	assert.Equal(t, "ping", i.RequestBody.String())
	assert.Equal(t, "ping", string(dumpedReqBody))

	require.NotNil(t, i.Response)
	assert.Equal(t, 201, i.Response.StatusCode)

	assert.Equal(t, "pong", i.ResponseBody.String())

	_, err = r.Request("/ping", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, i.Count())
	assert.Nil(t, i.RequestBody)
	assert.Empty(t, dumpedReqBody)
}

func TestInspector_Clear(t *testing.T) {

	i := Inspector{
		Request:      &http.Request{},
		Response:     &http.Response{},
		RequestBody:  bytes.NewBuffer(nil),
		ResponseBody: bytes.NewBuffer(nil),
		count:        3,
	}

	i.Clear()

	assert.Nil(t, i.Request)
	assert.Nil(t, i.Response)
	assert.Nil(t, i.RequestBody)
	assert.Nil(t, i.ResponseBody)
	assert.Zero(t, i.Count())
}
