package baseio

import (
	"context"

	"github.com/ThalesGroup/pariah"
)

// OutgoingEmail is an email to send.  Empty HTML, Text and File are left out.
type OutgoingEmail struct {
	From    string
	To      string
	Subject string
	HTML    string
	Text    string
	File    string
}

// SendEmail sends an email.
func (c *Client) SendEmail(ctx context.Context, e OutgoingEmail) (*pariah.Data[Email], error) {
	return pariah.JSONContext[Email](ctx, c.api.Post, "/emails", pariah.Params{
		"from":    pariah.String(e.From),
		"to":      pariah.String(e.To),
		"subject": pariah.String(e.Subject),
		"html":    optString(e.HTML),
		"text":    optString(e.Text),
		"file":    optString(e.File),
	})
}

// ListSentEmails lists sent emails.
func (c *Client) ListSentEmails(ctx context.Context, page, perPage int) (*pariah.Data[List[Email]], error) {
	return pariah.JSONContext[List[Email]](ctx, c.api.Get, "/emails", paging(page, perPage))
}

// UploadFile uploads a file.
func (c *Client) UploadFile(ctx context.Context, file string) (*pariah.Data[File], error) {
	return pariah.JSONContext[File](ctx, c.api.Post, "/files", pariah.Params{
		"file": pariah.String(file),
	})
}

// DownloadFile fetches a file's download details.
func (c *Client) DownloadFile(ctx context.Context, id string) (*pariah.Data[File], error) {
	return pariah.JSONContext[File](ctx, c.api.Get, "/files/:id/download", byID(id))
}

// FileDetails fetches a file's metadata.
func (c *Client) FileDetails(ctx context.Context, id string) (*pariah.Data[File], error) {
	return pariah.JSONContext[File](ctx, c.api.Get, "/files/:id", byID(id))
}

// DeleteFile deletes a file.
func (c *Client) DeleteFile(ctx context.Context, id string) (*pariah.Data[File], error) {
	return pariah.JSONContext[File](ctx, c.api.Delete, "/files/:id", byID(id))
}

// ListFiles lists files.
func (c *Client) ListFiles(ctx context.Context, page, perPage int) (*pariah.Data[List[File]], error) {
	return pariah.JSONContext[List[File]](ctx, c.api.Get, "/files", paging(page, perPage))
}

// UploadImage uploads an image.
func (c *Client) UploadImage(ctx context.Context, image string) (*pariah.Data[Image], error) {
	return pariah.JSONContext[Image](ctx, c.api.Post, "/images", pariah.Params{
		"image": pariah.String(image),
	})
}

// ImageProcessing describes transformations applied by GetImage.  Zero
// fields are left out.
type ImageProcessing struct {
	Crop    string
	Resize  string
	Quality int
	Format  ImageFormat
}

// GetImage fetches a processed image.
func (c *Client) GetImage(ctx context.Context, id string, p ImageProcessing) (*pariah.Data[Image], error) {
	return pariah.JSONContext[Image](ctx, c.api.Get, "/images/:id/image", pariah.Params{
		":id":     pariah.String(id),
		"crop":    optString(p.Crop),
		"resize":  optString(p.Resize),
		"quality": optInt(p.Quality),
		"format":  optString(string(p.Format)),
	})
}

// ImageDetails fetches an image's metadata.
func (c *Client) ImageDetails(ctx context.Context, id string) (*pariah.Data[Image], error) {
	return pariah.JSONContext[Image](ctx, c.api.Get, "/images/:id", byID(id))
}

// DeleteImage deletes an image.
func (c *Client) DeleteImage(ctx context.Context, id string) (*pariah.Data[Image], error) {
	return pariah.JSONContext[Image](ctx, c.api.Delete, "/images/:id", byID(id))
}

// ListImages lists images.
func (c *Client) ListImages(ctx context.Context, page, perPage int) (*pariah.Data[List[Image]], error) {
	return pariah.JSONContext[List[Image]](ctx, c.api.Get, "/images", paging(page, perPage))
}
