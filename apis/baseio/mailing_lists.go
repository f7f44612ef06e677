package baseio

import (
	"context"

	"github.com/ThalesGroup/pariah"
)

// MailingListDetails fetches a mailing list.
func (c *Client) MailingListDetails(ctx context.Context, id string) (*pariah.Data[MailingList], error) {
	return pariah.JSONContext[MailingList](ctx, c.api.Get, "/mailing_lists/:id", byID(id))
}

// ListMailingLists lists mailing lists.
func (c *Client) ListMailingLists(ctx context.Context, page, perPage int) (*pariah.Data[List[MailingList]], error) {
	return pariah.JSONContext[List[MailingList]](ctx, c.api.Get, "/mailing_lists", paging(page, perPage))
}

// SubscribeToMailingList adds email to a list.
func (c *Client) SubscribeToMailingList(ctx context.Context, id, email string) (*pariah.Data[MailingList], error) {
	return pariah.JSONContext[MailingList](ctx, c.api.Post, "/mailing_lists/:id/subscribe", pariah.Params{
		":id":   pariah.String(id),
		"email": pariah.String(email),
	})
}

// UnsubscribeFromMailingList removes email from a list.
func (c *Client) UnsubscribeFromMailingList(ctx context.Context, id, email string) (*pariah.Data[MailingList], error) {
	return pariah.JSONContext[MailingList](ctx, c.api.Post, "/mailing_lists/:id/unsubscribe", pariah.Params{
		":id":   pariah.String(id),
		"email": pariah.String(email),
	})
}

// SendEmailToMailingList sends an email to every subscriber of a list.
func (c *Client) SendEmailToMailingList(ctx context.Context, id, from, subject, html, text string) (*pariah.Data[OutgoingMailingListEntry], error) {
	return pariah.JSONContext[OutgoingMailingListEntry](ctx, c.api.Post, "/mailing_lists/:id", pariah.Params{
		":id":     pariah.String(id),
		"from":    pariah.String(from),
		"subject": pariah.String(subject),
		"html":    optString(html),
		"text":    optString(text),
	})
}
