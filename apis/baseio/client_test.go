package baseio

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/ThalesGroup/pariah"
	"github.com/ThalesGroup/pariah/httptestutil"
	"github.com/ansel1/merry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.Handler) (*Client, *httptestutil.Inspector) {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	i := httptestutil.Inspect(ts)
	c, err := NewWithURL(ts.URL+"/v1/", "secret", pariah.WithDoer(ts.Client()))
	require.NoError(t, err)
	return c, i
}

func TestNew(t *testing.T) {
	c, err := New("secret")
	require.NoError(t, err)
	assert.Equal(t, DefaultURL, c.api.BaseURL().String())

	_, err = NewWithURL("ftp://api.base-api.io", "secret")
	assert.True(t, merry.Is(err, pariah.ErrInvalidBaseURL))
}

func TestClient_GetUser(t *testing.T) {
	c, i := newTestClient(t, pariah.MockHandler(200, pariah.Body(User{ID: "u1", Email: "a@b.com"})))

	data, err := c.GetUser(context.Background(), "u1")
	require.NoError(t, err)
	require.True(t, data.OK())
	require.NotNil(t, data.Payload)
	assert.Equal(t, "a@b.com", data.Payload.Email)

	ex := i.LastExchange()
	require.NotNil(t, ex)
	assert.Equal(t, http.MethodGet, ex.Request.Method)
	assert.Equal(t, "/v1/users/u1", ex.Request.URL.Path)
	assert.Equal(t, "Bearer secret", ex.Request.Header.Get("Authorization"))
}

func TestClient_NotFound(t *testing.T) {
	c, _ := newTestClient(t, pariah.MockHandler(404, pariah.Body(map[string]string{"error": "not found"})))

	data, err := c.GetUser(context.Background(), "nope")
	require.NoError(t, err, "error statuses are results, not errors")
	assert.Equal(t, 404, data.Status)
	assert.False(t, data.OK())
	assert.JSONEq(t, `{"error":"not found"}`, data.Raw)
}

func TestClient_CreateUser(t *testing.T) {
	c, i := newTestClient(t, pariah.MockHandler(201, pariah.Body(User{ID: "u1"})))

	_, err := c.CreateUser(context.Background(), "a@b.com", "pw", "pw", map[string]string{"plan": "pro"})
	require.NoError(t, err)

	ex := i.LastExchange()
	require.NotNil(t, ex)
	assert.Equal(t, http.MethodPost, ex.Request.Method)
	assert.Equal(t, "/v1/users", ex.Request.URL.Path)
	assert.Equal(t, url.Values{
		"email":        {"a@b.com"},
		"password":     {"pw"},
		"confirmation": {"pw"},
	}, ex.Request.URL.Query())
	require.NotNil(t, ex.RequestBody)
	assert.JSONEq(t, `{"custom_data":{"plan":"pro"}}`, ex.RequestBody.String())

	t.Run("no custom data", func(t *testing.T) {
		_, err := c.CreateUser(context.Background(), "a@b.com", "pw", "pw", nil)
		require.NoError(t, err)
		ex := i.LastExchange()
		require.NotNil(t, ex)
		assert.Nil(t, ex.RequestBody)
	})
}

func TestClient_Paths(t *testing.T) {
	ctx := context.Background()
	c, i := newTestClient(t, pariah.MockHandler(200, pariah.Body(map[string]interface{}{})))

	tests := []struct {
		name   string
		call   func() error
		method string
		path   string
		query  url.Values
	}{
		{
			name:   "list users paged",
			call:   func() error { _, err := c.ListUsers(ctx, 2, 10); return err },
			method: "GET", path: "/v1/users",
			query: url.Values{"page": {"2"}, "per_page": {"10"}},
		},
		{
			name:   "list users default paging",
			call:   func() error { _, err := c.ListUsers(ctx, 0, 0); return err },
			method: "GET", path: "/v1/users",
			query: url.Values{},
		},
		{
			name:   "update user",
			call:   func() error { _, err := c.UpdateUser(ctx, "u1", "", nil); return err },
			method: "POST", path: "/v1/users/u1",
			query: url.Values{},
		},
		{
			name:   "delete user",
			call:   func() error { _, err := c.DeleteUser(ctx, "u1"); return err },
			method: "DELETE", path: "/v1/users/u1",
			query: url.Values{},
		},
		{
			name:   "request password",
			call:   func() error { _, err := c.RequestPassword(ctx, "a@b.com"); return err },
			method: "POST", path: "/v1/password",
			query: url.Values{"email": {"a@b.com"}},
		},
		{
			name:   "reset password",
			call:   func() error { _, err := c.ResetPassword(ctx, "tok", "pw", "pw"); return err },
			method: "PUT", path: "/v1/password",
			query: url.Values{"token": {"tok"}, "password": {"pw"}, "confirmation": {"pw"}},
		},
		{
			name:   "session",
			call:   func() error { _, err := c.Session(ctx, "a@b.com", "pw"); return err },
			method: "POST", path: "/v1/sessions",
			query: url.Values{"email": {"a@b.com"}, "password": {"pw"}},
		},
		{
			name: "send email",
			call: func() error {
				_, err := c.SendEmail(ctx, OutgoingEmail{From: "a@b.com", To: "c@d.com", Subject: "hi", Text: "hello"})
				return err
			},
			method: "POST", path: "/v1/emails",
			query: url.Values{"from": {"a@b.com"}, "to": {"c@d.com"}, "subject": {"hi"}, "text": {"hello"}},
		},
		{
			name:   "list sent emails",
			call:   func() error { _, err := c.ListSentEmails(ctx, 1, 0); return err },
			method: "GET", path: "/v1/emails",
			query: url.Values{"page": {"1"}},
		},
		{
			name:   "upload file",
			call:   func() error { _, err := c.UploadFile(ctx, "data"); return err },
			method: "POST", path: "/v1/files",
			query: url.Values{"file": {"data"}},
		},
		{
			name:   "download file",
			call:   func() error { _, err := c.DownloadFile(ctx, "f1"); return err },
			method: "GET", path: "/v1/files/f1/download",
			query: url.Values{},
		},
		{
			name:   "file details",
			call:   func() error { _, err := c.FileDetails(ctx, "f1"); return err },
			method: "GET", path: "/v1/files/f1",
			query: url.Values{},
		},
		{
			name:   "delete file",
			call:   func() error { _, err := c.DeleteFile(ctx, "f1"); return err },
			method: "DELETE", path: "/v1/files/f1",
			query: url.Values{},
		},
		{
			name:   "list files",
			call:   func() error { _, err := c.ListFiles(ctx, 0, 5); return err },
			method: "GET", path: "/v1/files",
			query: url.Values{"per_page": {"5"}},
		},
		{
			name:   "upload image",
			call:   func() error { _, err := c.UploadImage(ctx, "img"); return err },
			method: "POST", path: "/v1/images",
			query: url.Values{"image": {"img"}},
		},
		{
			name: "get image",
			call: func() error {
				_, err := c.GetImage(ctx, "i1", ImageProcessing{Resize: "100x100", Quality: 80, Format: PNG})
				return err
			},
			method: "GET", path: "/v1/images/i1/image",
			query: url.Values{"resize": {"100x100"}, "quality": {"80"}, "format": {"png"}},
		},
		{
			name:   "image details",
			call:   func() error { _, err := c.ImageDetails(ctx, "i1"); return err },
			method: "GET", path: "/v1/images/i1",
			query: url.Values{},
		},
		{
			name:   "delete image",
			call:   func() error { _, err := c.DeleteImage(ctx, "i1"); return err },
			method: "DELETE", path: "/v1/images/i1",
			query: url.Values{},
		},
		{
			name:   "list images",
			call:   func() error { _, err := c.ListImages(ctx, 0, 0); return err },
			method: "GET", path: "/v1/images",
			query: url.Values{},
		},
		{
			name:   "create form",
			call:   func() error { _, err := c.CreateForm(ctx, "contact"); return err },
			method: "POST", path: "/v1/forms",
			query: url.Values{"name": {"contact"}},
		},
		{
			name:   "form details",
			call:   func() error { _, err := c.FormDetails(ctx, "fm1"); return err },
			method: "GET", path: "/v1/forms/fm1",
			query: url.Values{},
		},
		{
			name:   "delete form",
			call:   func() error { _, err := c.DeleteForm(ctx, "fm1"); return err },
			method: "DELETE", path: "/v1/forms/fm1",
			query: url.Values{},
		},
		{
			name:   "list forms",
			call:   func() error { _, err := c.ListForms(ctx, 3, 0); return err },
			method: "GET", path: "/v1/forms",
			query: url.Values{"page": {"3"}},
		},
		{
			name: "create form submission",
			call: func() error {
				_, err := c.CreateFormSubmission(ctx, "fm1", "", map[string]string{"name": "Joe"})
				return err
			},
			method: "POST", path: "/v1/forms/fm1/submit",
			query: url.Values{"name": {"Joe"}},
		},
		{
			name:   "form submission details",
			call:   func() error { _, err := c.FormSubmissionDetails(ctx, "fm1", "s1"); return err },
			method: "GET", path: "/v1/forms/fm1/submissions/s1",
			query: url.Values{},
		},
		{
			name: "update form submission",
			call: func() error {
				_, err := c.UpdateFormSubmission(ctx, "fm1", "s1", "doc", map[string]string{"name": "Jim"})
				return err
			},
			method: "PUT", path: "/v1/forms/fm1/submissions/s1",
			query: url.Values{"name": {"Jim"}, "file": {"doc"}},
		},
		{
			name:   "delete form submission",
			call:   func() error { _, err := c.DeleteFormSubmission(ctx, "fm1", "s1"); return err },
			method: "DELETE", path: "/v1/forms/fm1/submissions/s1",
			query: url.Values{},
		},
		{
			name:   "list form submissions",
			call:   func() error { _, err := c.ListFormSubmissions(ctx, "fm1", 1, 20); return err },
			method: "GET", path: "/v1/forms/fm1/submissions",
			query: url.Values{"page": {"1"}, "per_page": {"20"}},
		},
		{
			name:   "mailing list details",
			call:   func() error { _, err := c.MailingListDetails(ctx, "ml1"); return err },
			method: "GET", path: "/v1/mailing_lists/ml1",
			query: url.Values{},
		},
		{
			name:   "list mailing lists",
			call:   func() error { _, err := c.ListMailingLists(ctx, 0, 0); return err },
			method: "GET", path: "/v1/mailing_lists",
			query: url.Values{},
		},
		{
			name:   "subscribe",
			call:   func() error { _, err := c.SubscribeToMailingList(ctx, "ml1", "a@b.com"); return err },
			method: "POST", path: "/v1/mailing_lists/ml1/subscribe",
			query: url.Values{"email": {"a@b.com"}},
		},
		{
			name:   "unsubscribe",
			call:   func() error { _, err := c.UnsubscribeFromMailingList(ctx, "ml1", "a@b.com"); return err },
			method: "POST", path: "/v1/mailing_lists/ml1/unsubscribe",
			query: url.Values{"email": {"a@b.com"}},
		},
		{
			name: "send to mailing list",
			call: func() error {
				_, err := c.SendEmailToMailingList(ctx, "ml1", "a@b.com", "news", "<p>hi</p>", "")
				return err
			},
			method: "POST", path: "/v1/mailing_lists/ml1",
			query: url.Values{"from": {"a@b.com"}, "subject": {"news"}, "html": {"<p>hi</p>"}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			i.Clear()
			require.NoError(t, tc.call())
			ex := i.LastExchange()
			require.NotNil(t, ex)
			assert.Equal(t, tc.method, ex.Request.Method)
			assert.Equal(t, tc.path, ex.Request.URL.Path)
			assert.Equal(t, tc.query, ex.Request.URL.Query())
		})
	}
}

func TestClient_EscapesIDs(t *testing.T) {
	c, i := newTestClient(t, pariah.MockHandler(200))

	_, err := c.GetUser(context.Background(), "a/b c")
	require.NoError(t, err)

	ex := i.LastExchange()
	require.NotNil(t, ex)
	assert.Equal(t, "/v1/users/a%2Fb%20c", ex.Request.URL.EscapedPath())
}

func TestClient_ListUsers_Decodes(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"items":[{"id":"u1","email":"a@b.com","custom_data":{"x":1}}],"metadata":{"count":1}}`)
	}))

	data, err := c.ListUsers(context.Background(), 0, 0)
	require.NoError(t, err)
	require.True(t, data.Decoded())
	assert.Equal(t, 1, data.Payload.Metadata.Count)
	require.Len(t, data.Payload.Items, 1)
	assert.Equal(t, json.RawMessage(`{"x":1}`), data.Payload.Items[0].CustomData)
}
