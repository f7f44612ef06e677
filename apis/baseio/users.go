package baseio

import (
	"context"

	"github.com/ThalesGroup/pariah"
)

// CreateUser creates a user.  customData, if not nil, is stored with the user
// and sent as the JSON body.
func (c *Client) CreateUser(ctx context.Context, email, password, confirmation string, customData interface{}) (*pariah.Data[User], error) {
	return pariah.JSONContext[User](ctx, c.api.Post, "/users", pariah.Params{
		"email":        pariah.String(email),
		"password":     pariah.String(password),
		"confirmation": pariah.String(confirmation),
	}, customDataBody(customData))
}

// UpdateUser updates a user's email and custom data.  Empty email and nil
// customData are left unchanged.
func (c *Client) UpdateUser(ctx context.Context, id, email string, customData interface{}) (*pariah.Data[User], error) {
	return pariah.JSONContext[User](ctx, c.api.Post, "/users/:id", pariah.Params{
		":id":   pariah.String(id),
		"email": optString(email),
	}, customDataBody(customData))
}

func customDataBody(customData interface{}) pariah.Option {
	if customData == nil {
		return nil
	}
	return pariah.Body(map[string]interface{}{"custom_data": customData})
}

// GetUser fetches a user.
func (c *Client) GetUser(ctx context.Context, id string) (*pariah.Data[User], error) {
	return pariah.JSONContext[User](ctx, c.api.Get, "/users/:id", byID(id))
}

// DeleteUser deletes a user.
func (c *Client) DeleteUser(ctx context.Context, id string) (*pariah.Data[User], error) {
	return pariah.JSONContext[User](ctx, c.api.Delete, "/users/:id", byID(id))
}

// ListUsers lists users.  Zero page or perPage use the API's defaults.
func (c *Client) ListUsers(ctx context.Context, page, perPage int) (*pariah.Data[List[User]], error) {
	return pariah.JSONContext[List[User]](ctx, c.api.Get, "/users", paging(page, perPage))
}

// RequestPassword starts a password reset for email.
func (c *Client) RequestPassword(ctx context.Context, email string) (*pariah.Data[RequestedPassword], error) {
	return pariah.JSONContext[RequestedPassword](ctx, c.api.Post, "/password", pariah.Params{
		"email": pariah.String(email),
	})
}

// ResetPassword completes a password reset.
func (c *Client) ResetPassword(ctx context.Context, token, password, confirmation string) (*pariah.Data[User], error) {
	return pariah.JSONContext[User](ctx, c.api.Put, "/password", pariah.Params{
		"token":        pariah.String(token),
		"password":     pariah.String(password),
		"confirmation": pariah.String(confirmation),
	})
}

// Session authenticates a user.
func (c *Client) Session(ctx context.Context, email, password string) (*pariah.Data[User], error) {
	return pariah.JSONContext[User](ctx, c.api.Post, "/sessions", pariah.Params{
		"email":    pariah.String(email),
		"password": pariah.String(password),
	})
}
