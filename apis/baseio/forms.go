package baseio

import (
	"context"

	"github.com/ThalesGroup/pariah"
)

// CreateForm creates a form.
func (c *Client) CreateForm(ctx context.Context, name string) (*pariah.Data[Form], error) {
	return pariah.JSONContext[Form](ctx, c.api.Post, "/forms", pariah.Params{
		"name": pariah.String(name),
	})
}

// FormDetails fetches a form.
func (c *Client) FormDetails(ctx context.Context, id string) (*pariah.Data[Form], error) {
	return pariah.JSONContext[Form](ctx, c.api.Get, "/forms/:id", byID(id))
}

// DeleteForm deletes a form.
func (c *Client) DeleteForm(ctx context.Context, id string) (*pariah.Data[Form], error) {
	return pariah.JSONContext[Form](ctx, c.api.Delete, "/forms/:id", byID(id))
}

// ListForms lists forms.
func (c *Client) ListForms(ctx context.Context, page, perPage int) (*pariah.Data[List[Form]], error) {
	return pariah.JSONContext[List[Form]](ctx, c.api.Get, "/forms", paging(page, perPage))
}

// CreateFormSubmission submits a form.  The submitted fields are sent
// alongside the file.
func (c *Client) CreateFormSubmission(ctx context.Context, formID, file string, values map[string]string) (*pariah.Data[FormSubmission], error) {
	params := fields(values).Merge(pariah.Params{
		":id":  pariah.String(formID),
		"file": optString(file),
	})
	return pariah.JSONContext[FormSubmission](ctx, c.api.Post, "/forms/:id/submit", params)
}

// FormSubmissionDetails fetches one submission of a form.
func (c *Client) FormSubmissionDetails(ctx context.Context, formID, submissionID string) (*pariah.Data[FormSubmission], error) {
	return pariah.JSONContext[FormSubmission](ctx, c.api.Get, "/forms/:id/submissions/:submissionId", submission(formID, submissionID))
}

// UpdateFormSubmission replaces the fields of a submission.
func (c *Client) UpdateFormSubmission(ctx context.Context, formID, submissionID, file string, values map[string]string) (*pariah.Data[FormSubmission], error) {
	params := fields(values).Merge(submission(formID, submissionID))
	params["file"] = optString(file)
	return pariah.JSONContext[FormSubmission](ctx, c.api.Put, "/forms/:id/submissions/:submissionId", params)
}

// DeleteFormSubmission deletes a submission.
func (c *Client) DeleteFormSubmission(ctx context.Context, formID, submissionID string) (*pariah.Data[FormSubmission], error) {
	return pariah.JSONContext[FormSubmission](ctx, c.api.Delete, "/forms/:id/submissions/:submissionId", submission(formID, submissionID))
}

// ListFormSubmissions lists the submissions of a form.
func (c *Client) ListFormSubmissions(ctx context.Context, formID string, page, perPage int) (*pariah.Data[List[FormSubmission]], error) {
	params := paging(page, perPage)
	params[":id"] = pariah.String(formID)
	return pariah.JSONContext[List[FormSubmission]](ctx, c.api.Get, "/forms/:id/submissions", params)
}

func submission(formID, submissionID string) pariah.Params {
	return pariah.Params{
		":id":           pariah.String(formID),
		":submissionId": pariah.String(submissionID),
	}
}
