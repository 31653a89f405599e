package telegraph

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
)

// PageOptions carries the optional createPage/editPage parameters.
type PageOptions struct {
	AuthorName string
	AuthorURL  string
	// ReturnContent asks the service to echo the page content back in
	// the response.
	ReturnContent bool
}

// CreatePage publishes a new page from an explicit content node
// sequence. The content is validated against the allowed tag set and
// size limit before the request is sent.
func (c *Client) CreatePage(ctx context.Context, title string, content []Node, opts *PageOptions) (*Page, error) {
	params, err := pageParams(title, content, opts)
	if err != nil {
		return nil, err
	}

	raw, err := c.request(ctx, http.MethodPost, "createPage", params)
	if err != nil {
		return nil, err
	}
	return decodePage(raw)
}

// CreatePageMarkdown publishes a new page from Markdown source. The
// conversion follows the degradation table documented on the package.
func (c *Client) CreatePageMarkdown(ctx context.Context, title, markdown string, opts *PageOptions) (*Page, error) {
	return c.CreatePage(ctx, title, ContentFromMarkdown(markdown), opts)
}

// CreatePageHTML publishes a new page from an HTML fragment, sanitized
// to the allowed tag set.
func (c *Client) CreatePageHTML(ctx context.Context, title, fragment string, opts *PageOptions) (*Page, error) {
	return c.CreatePage(ctx, title, ContentFromHTML(fragment), opts)
}

// EditPage replaces the title and content of an existing page. The API
// has no partial update; content is always replaced wholesale.
func (c *Client) EditPage(ctx context.Context, path, title string, content []Node, opts *PageOptions) (*Page, error) {
	if err := c.requireToken(); err != nil {
		return nil, err
	}
	if err := validatePath(path); err != nil {
		return nil, err
	}
	params, err := pageParams(title, content, opts)
	if err != nil {
		return nil, err
	}
	params.Set("path", path)

	raw, err := c.request(ctx, http.MethodPost, "editPage", params)
	if err != nil {
		return nil, err
	}
	return decodePage(raw)
}

// GetPage fetches a page by its path. Content is only populated when
// returnContent is true.
func (c *Client) GetPage(ctx context.Context, path string, returnContent bool) (*Page, error) {
	if err := validatePath(path); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("path", path)
	params.Set("return_content", strconv.FormatBool(returnContent))

	raw, err := c.request(ctx, http.MethodGet, "getPage", params)
	if err != nil {
		return nil, err
	}
	return decodePage(raw)
}

// GetPageList lists the pages of the account bound to the client's
// access token, most recent first. limit is capped at 200 by the
// service.
func (c *Client) GetPageList(ctx context.Context, offset, limit int) (*PageList, error) {
	if err := c.requireToken(); err != nil {
		return nil, err
	}
	if err := validatePageList(offset, limit); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("offset", strconv.Itoa(offset))
	params.Set("limit", strconv.Itoa(limit))

	raw, err := c.request(ctx, http.MethodPost, "getPageList", params)
	if err != nil {
		return nil, err
	}
	return decodePageList(raw)
}

// pageParams validates and encodes the parameters shared by createPage
// and editPage.
func pageParams(title string, content []Node, opts *PageOptions) (url.Values, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if err := validateContent(content); err != nil {
		return nil, err
	}
	if opts != nil {
		if err := validateAuthor(opts.AuthorName, opts.AuthorURL); err != nil {
			return nil, err
		}
	}

	encoded, err := json.Marshal(content)
	if err != nil {
		return nil, &ValidationError{Field: "content", Reason: err.Error()}
	}

	params := url.Values{}
	params.Set("title", title)
	params.Set("content", string(encoded))
	if opts != nil {
		if opts.AuthorName != "" {
			params.Set("author_name", opts.AuthorName)
		}
		if opts.AuthorURL != "" {
			params.Set("author_url", opts.AuthorURL)
		}
		params.Set("return_content", strconv.FormatBool(opts.ReturnContent))
	}
	return params, nil
}
