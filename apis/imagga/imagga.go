// Package imagga is a client for the Imagga image recognition API, v2
// (https://docs.imagga.com).
//
// Analysis options are structs with url tags, sent as query parameters.
// Zero fields are left out.
package imagga

import (
	"context"

	"github.com/ThalesGroup/pariah"
	"github.com/ansel1/merry"
)

// DefaultURL is the Imagga v2 API root.
const DefaultURL = "https://api.imagga.com/v2/"

// ErrTooFewFaces is returned by FacesGroupings when given fewer than
// MinGroupingFaces faces.
var ErrTooFewFaces = merry.New("too few faces to group")

// Client calls the Imagga API.
type Client struct {
	api *pariah.Pariah
}

// New returns a Client.  authorization is sent verbatim as the Authorization
// header, e.g. "Basic YWNjX3h4eDp5eXk=".
func New(authorization string, opts ...pariah.Option) (*Client, error) {
	return NewWithURL(DefaultURL, authorization, opts...)
}

// NewWithURL is like New, but talks to another base URL.
func NewWithURL(baseURL, authorization string, opts ...pariah.Option) (*Client, error) {
	api, err := pariah.New(baseURL, append([]pariah.Option{pariah.Header(pariah.HeaderAuthorization, authorization)}, opts...)...)
	if err != nil {
		return nil, err
	}
	return &Client{api: api}, nil
}

func get[T any](ctx context.Context, c *Client, path string, params pariah.Params, opts interface{}) (*pariah.Data[Response[T]], error) {
	if opts != nil {
		q, err := pariah.QueryStruct(opts)
		if err != nil {
			return nil, err
		}
		params = q.Merge(params)
	}
	return pariah.JSONContext[Response[T]](ctx, c.api.Get, path, params)
}

// withID picks the path with the id placeholder when id is set.
func withID(base, key, id string) (string, pariah.Params) {
	if id == "" {
		return base, nil
	}
	return base + "/:" + key, pariah.Params{":" + key: pariah.String(id)}
}

// Tags tags the image.  taggerID selects a custom tagger, and may be empty.
func (c *Client) Tags(ctx context.Context, opts TagsOptions, taggerID string) (*pariah.Data[Response[TagsResponse]], error) {
	path, params := withID("/tags", "tagger_id", taggerID)
	return get[TagsResponse](ctx, c, path, params, opts)
}

// Categorizers lists the available categorizers.
func (c *Client) Categorizers(ctx context.Context) (*pariah.Data[Response[CategorizersResponse]], error) {
	return get[CategorizersResponse](ctx, c, "/categorizers", nil, nil)
}

// Categories categorizes the image.  categorizerID may be empty.
func (c *Client) Categories(ctx context.Context, opts CategoriesOptions, categorizerID string) (*pariah.Data[Response[CategoriesResponse]], error) {
	path, params := withID("/categories", "categorizer_id", categorizerID)
	return get[CategoriesResponse](ctx, c, path, params, opts)
}

// Croppings suggests crops of the image.
func (c *Client) Croppings(ctx context.Context, opts CroppingsOptions) (*pariah.Data[Response[CroppingsResponse]], error) {
	return get[CroppingsResponse](ctx, c, "/croppings", nil, opts)
}

// Colors extracts the image's colors.
func (c *Client) Colors(ctx context.Context, opts ColorsOptions) (*pariah.Data[Response[ColorsResponse]], error) {
	return get[ColorsResponse](ctx, c, "/colors", nil, opts)
}

// FacesDetections finds faces in the image.
func (c *Client) FacesDetections(ctx context.Context, opts FacesDetectionsOptions) (*pariah.Data[Response[FacesDetectionsResponse]], error) {
	return get[FacesDetectionsResponse](ctx, c, "/faces/detections", nil, opts)
}

// FacesSimilarity compares two detected faces.
func (c *Client) FacesSimilarity(ctx context.Context, opts FacesSimilarityOptions) (*pariah.Data[Response[FacesSimilarityResponse]], error) {
	return get[FacesSimilarityResponse](ctx, c, "/faces/similarity", nil, opts)
}

// FacesGroupings starts grouping faces by similarity.  The result is a ticket
// to poll.  Fails without sending anything if there are fewer than
// MinGroupingFaces faces.
func (c *Client) FacesGroupings(ctx context.Context, opts FacesGroupingsOptions) (*pariah.Data[Response[TicketsResponse]], error) {
	if len(opts.Faces) < MinGroupingFaces {
		return nil, merry.Appendf(ErrTooFewFaces, "got %d, need %d", len(opts.Faces), MinGroupingFaces)
	}
	return pariah.JSONContext[Response[TicketsResponse]](ctx, c.api.Post, "/faces/groupings", nil, pariah.Body(opts))
}

// Text reads text in the image.
func (c *Client) Text(ctx context.Context, opts ImageOptions) (*pariah.Data[Response[TextResponse]], error) {
	return get[TextResponse](ctx, c, "/text", nil, opts)
}

// Usage reports the account's usage.
func (c *Client) Usage(ctx context.Context, opts UsageOptions) (*pariah.Data[Response[UsageResponse]], error) {
	return get[UsageResponse](ctx, c, "/usage", nil, opts)
}

// Barcodes reads barcodes in the image.
func (c *Client) Barcodes(ctx context.Context, opts ImageOptions) (*pariah.Data[Response[BarcodesResponse]], error) {
	return get[BarcodesResponse](ctx, c, "/barcodes", nil, opts)
}
