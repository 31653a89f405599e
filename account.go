package telegraph

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
)

// CreateAccountRequest holds the createAccount parameters.
type CreateAccountRequest struct {
	ShortName  string
	AuthorName string
	AuthorURL  string
	// ReplaceToken installs the returned access token on the client so
	// subsequent account-scoped calls use it.
	ReplaceToken bool
}

// CreateAccount creates a new Telegraph account. The returned access
// token is only ever sent once; retain it.
func (c *Client) CreateAccount(ctx context.Context, req CreateAccountRequest) (*Account, error) {
	if err := validateShortName(req.ShortName); err != nil {
		return nil, err
	}
	if err := validateAuthor(req.AuthorName, req.AuthorURL); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("short_name", req.ShortName)
	if req.AuthorName != "" {
		params.Set("author_name", req.AuthorName)
	}
	if req.AuthorURL != "" {
		params.Set("author_url", req.AuthorURL)
	}

	raw, err := c.request(ctx, http.MethodPost, "createAccount", params)
	if err != nil {
		return nil, err
	}
	account, err := decodeAccount(raw)
	if err != nil {
		return nil, err
	}

	if req.ReplaceToken && account.AccessToken != "" {
		c.setToken(account.AccessToken)
	}
	return account, nil
}

// EditAccountInfoRequest holds the editAccountInfo parameters. Empty
// fields are left unchanged; at least one must be set.
type EditAccountInfoRequest struct {
	ShortName  string
	AuthorName string
	AuthorURL  string
}

// EditAccountInfo updates the account bound to the client's access
// token and returns the updated account.
func (c *Client) EditAccountInfo(ctx context.Context, req EditAccountInfoRequest) (*Account, error) {
	if err := c.requireToken(); err != nil {
		return nil, err
	}
	if req == (EditAccountInfoRequest{}) {
		return nil, &ValidationError{Field: "fields", Reason: "at least one field must be set"}
	}
	if req.ShortName != "" {
		if err := validateShortName(req.ShortName); err != nil {
			return nil, err
		}
	}
	if err := validateAuthor(req.AuthorName, req.AuthorURL); err != nil {
		return nil, err
	}

	params := url.Values{}
	if req.ShortName != "" {
		params.Set("short_name", req.ShortName)
	}
	if req.AuthorName != "" {
		params.Set("author_name", req.AuthorName)
	}
	if req.AuthorURL != "" {
		params.Set("author_url", req.AuthorURL)
	}

	raw, err := c.request(ctx, http.MethodPost, "editAccountInfo", params)
	if err != nil {
		return nil, err
	}
	return decodeAccount(raw)
}

// defaultAccountFields are the fields GetAccountInfo requests when the
// caller names none.
var defaultAccountFields = []string{"short_name", "author_name", "author_url", "page_count"}

// GetAccountInfo fetches information about the account bound to the
// client's access token.
func (c *Client) GetAccountInfo(ctx context.Context, fields ...string) (*Account, error) {
	if err := c.requireToken(); err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		fields = defaultAccountFields
	}
	encoded, err := json.Marshal(fields)
	if err != nil {
		return nil, &ValidationError{Field: "fields", Reason: err.Error()}
	}

	params := url.Values{}
	params.Set("fields", string(encoded))

	raw, err := c.request(ctx, http.MethodPost, "getAccountInfo", params)
	if err != nil {
		return nil, err
	}
	return decodeAccount(raw)
}

// RevokeAccessToken revokes the current access token and installs the
// replacement the service returns on the client. All previously issued
// tokens for the account stop working.
func (c *Client) RevokeAccessToken(ctx context.Context) (*Account, error) {
	if err := c.requireToken(); err != nil {
		return nil, err
	}

	raw, err := c.request(ctx, http.MethodPost, "revokeAccessToken", nil)
	if err != nil {
		return nil, err
	}
	account, err := decodeAccount(raw)
	if err != nil {
		return nil, err
	}
	if account.AccessToken != "" {
		c.setToken(account.AccessToken)
	}
	return account, nil
}
