package polly

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/kouma-root/polly-go/internal/rest"
)

// Register creates a new user account.
//
// It issues exactly one POST to /register with a JSON body carrying the
// username and password, and decodes the created account on success. No
// retries are attempted.
//
// A duplicate username is rejected by the server with a 400; the returned
// error matches [ErrUsernameTaken]:
//
//	user, err := client.Register(ctx, "alice", "s3cret")
//	if errors.Is(err, polly.ErrUsernameTaken) {
//	    // pick another name
//	}
func (c *Client) Register(ctx context.Context, username, password string) (User, error) {
	body, contentType, err := rest.JSONBody(Credentials{Username: username, Password: password})
	if err != nil {
		return User{}, fmt.Errorf("polly: register: %w", err)
	}

	var user User
	err = c.call(ctx, "register", callRequest{
		method:      http.MethodPost,
		path:        "/register",
		body:        body,
		contentType: contentType,
	}, &user)
	if err != nil {
		return User{}, err
	}
	return user, nil
}

// Login exchanges credentials for a bearer [Token].
//
// The endpoint expects a URL-encoded form, not JSON. Invalid credentials
// yield an error matching [ErrUnauthorized]. Pass the returned token's
// AccessToken to [Client.Vote].
func (c *Client) Login(ctx context.Context, username, password string) (Token, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)
	body, contentType := rest.FormBody(form)

	var token Token
	err := c.call(ctx, "login", callRequest{
		method:      http.MethodPost,
		path:        "/login",
		body:        body,
		contentType: contentType,
	}, &token)
	if err != nil {
		return Token{}, err
	}
	return token, nil
}
