package imagga

import (
	"context"
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

const auth = "Basic YWNjOnNlY3JldA=="

func newTestClient(t *testing.T, h http.Handler) (*Client, *httptestutil.Inspector) {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	i := httptestutil.Inspect(ts)
	c, err := NewWithURL(ts.URL+"/v2/", auth, pariah.WithDoer(ts.Client()))
	require.NoError(t, err)
	return c, i
}

func TestClient_Tags(t *testing.T) {
	body := `{"result":{"tags":[{"confidence":61.4,"tag":{"en":"mountain"}}]},"status":{"text":"","type":"success"}}`
	c, i := newTestClient(t, pariah.MockHandler(200, pariah.Body(body), pariah.ContentType("application/json")))

	data, err := c.Tags(context.Background(), TagsOptions{
		ImageOptions: ImageOptions{ImageURL: "https://example.com/a.jpg"},
		Limit:        3,
	}, "")
	require.NoError(t, err)
	require.True(t, data.Decoded())
	assert.True(t, data.Payload.Status.Success())
	require.Len(t, data.Payload.Result.Tags, 1)
	assert.Equal(t, "mountain", data.Payload.Result.Tags[0].Tag.EN)

	ex := i.LastExchange()
	require.NotNil(t, ex)
	assert.Equal(t, "/v2/tags", ex.Request.URL.Path)
	assert.Equal(t, url.Values{
		"image_url": {"https://example.com/a.jpg"},
		"limit":     {"3"},
	}, ex.Request.URL.Query())
	assert.Equal(t, auth, ex.Request.Header.Get("Authorization"))

	t.Run("tagger", func(t *testing.T) {
		_, err := c.Tags(context.Background(), TagsOptions{}, "my tagger")
		require.NoError(t, err)
		ex := i.LastExchange()
		require.NotNil(t, ex)
		assert.Equal(t, "/v2/tags/my%20tagger", ex.Request.URL.EscapedPath())
	})
}

func TestClient_Paths(t *testing.T) {
	ctx := context.Background()
	img := ImageOptions{ImageUploadID: "up1"}
	c, i := newTestClient(t, pariah.MockHandler(200, pariah.Body(`{}`)))

	tests := []struct {
		name  string
		call  func() error
		path  string
		query url.Values
	}{
		{
			name: "categorizers",
			call: func() error { _, err := c.Categorizers(ctx); return err },
			path: "/v2/categorizers", query: url.Values{},
		},
		{
			name: "categories",
			call: func() error {
				_, err := c.Categories(ctx, CategoriesOptions{ImageOptions: img, SaveIndex: "idx"}, "general_v3")
				return err
			},
			path:  "/v2/categories/general_v3",
			query: url.Values{"image_upload_id": {"up1"}, "save_index": {"idx"}},
		},
		{
			name: "croppings",
			call: func() error {
				_, err := c.Croppings(ctx, CroppingsOptions{ImageOptions: img, Resolution: "100x100", NoScaling: On})
				return err
			},
			path:  "/v2/croppings",
			query: url.Values{"image_upload_id": {"up1"}, "resolution": {"100x100"}, "no_scaling": {"1"}},
		},
		{
			name: "colors",
			call: func() error {
				_, err := c.Colors(ctx, ColorsOptions{ImageOptions: img, OverallCount: 4, FeaturesType: FeatureObject})
				return err
			},
			path:  "/v2/colors",
			query: url.Values{"image_upload_id": {"up1"}, "overall_count": {"4"}, "features_type": {"object"}},
		},
		{
			name: "faces detections",
			call: func() error {
				_, err := c.FacesDetections(ctx, FacesDetectionsOptions{ImageOptions: img, ReturnFaceID: On})
				return err
			},
			path:  "/v2/faces/detections",
			query: url.Values{"image_upload_id": {"up1"}, "return_face_id": {"1"}},
		},
		{
			name: "faces similarity",
			call: func() error {
				_, err := c.FacesSimilarity(ctx, FacesSimilarityOptions{FaceID: "a", SecondFaceID: "b"})
				return err
			},
			path:  "/v2/faces/similarity",
			query: url.Values{"face_id": {"a"}, "second_face_id": {"b"}},
		},
		{
			name:  "text",
			call:  func() error { _, err := c.Text(ctx, img); return err },
			path:  "/v2/text",
			query: url.Values{"image_upload_id": {"up1"}},
		},
		{
			name:  "usage",
			call:  func() error { _, err := c.Usage(ctx, UsageOptions{History: On}); return err },
			path:  "/v2/usage",
			query: url.Values{"history": {"1"}},
		},
		{
			name:  "barcodes",
			call:  func() error { _, err := c.Barcodes(ctx, img); return err },
			path:  "/v2/barcodes",
			query: url.Values{"image_upload_id": {"up1"}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			i.Clear()
			require.NoError(t, tc.call())
			ex := i.LastExchange()
			require.NotNil(t, ex)
			assert.Equal(t, http.MethodGet, ex.Request.Method)
			assert.Equal(t, tc.path, ex.Request.URL.Path)
			assert.Equal(t, tc.query, ex.Request.URL.Query())
		})
	}
}

func TestClient_FacesGroupings(t *testing.T) {
	body := `{"result":{"ticket_id":"t1"},"status":{"text":"","type":"success"}}`
	c, i := newTestClient(t, pariah.MockHandler(200, pariah.Body(body)))

	faces := []string{"f1", "f2", "f3", "f4", "f5"}
	data, err := c.FacesGroupings(context.Background(), FacesGroupingsOptions{Faces: faces})
	require.NoError(t, err)
	require.True(t, data.Decoded())
	assert.Equal(t, "t1", data.Payload.Result.TicketID)

	ex := i.LastExchange()
	require.NotNil(t, ex)
	assert.Equal(t, http.MethodPost, ex.Request.Method)
	assert.Equal(t, "/v2/faces/groupings", ex.Request.URL.Path)
	require.NotNil(t, ex.RequestBody)
	assert.JSONEq(t, `{"faces":["f1","f2","f3","f4","f5"]}`, ex.RequestBody.String())

	t.Run("too few", func(t *testing.T) {
		i.Clear()
		_, err := c.FacesGroupings(context.Background(), FacesGroupingsOptions{Faces: faces[:4]})
		require.Error(t, err)
		assert.True(t, merry.Is(err, ErrTooFewFaces))
		assert.Zero(t, i.Len())
	})
}

func TestClient_ErrorStatus(t *testing.T) {
	body := `{"status":{"text":"You have reached your monthly limits","type":"error"}}`
	c, _ := newTestClient(t, pariah.MockHandler(403, pariah.Body(body)))

	data, err := c.Usage(context.Background(), UsageOptions{})
	require.NoError(t, err)
	assert.Equal(t, 403, data.Status)
	require.True(t, data.Decoded())
	assert.False(t, data.Payload.Status.Success())
	assert.Equal(t, "You have reached your monthly limits", data.Payload.Status.Text)
}

func TestClient_InvalidOptions(t *testing.T) {
	c, i := newTestClient(t, pariah.MockHandler(200))

	_, err := c.FacesSimilarity(context.Background(), FacesSimilarityOptions{FaceID: "a"})
	require.Error(t, err)
	assert.True(t, merry.Is(err, pariah.ErrInvalidParams))
	assert.Contains(t, err.Error(), "second_face_id failed required")

	_, err = c.Tags(context.Background(), TagsOptions{ImageOptions: ImageOptions{ImageURL: "not a url"}}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "image_url failed url")

	_, err = c.Tags(context.Background(), TagsOptions{Threshold: 101}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "threshold failed lte=100")

	assert.Zero(t, i.Len())
}
