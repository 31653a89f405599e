package telegraph

import "encoding/json"

// Account is a Telegraph account. AccessToken is only present on the
// createAccount and revokeAccessToken responses.
type Account struct {
	ShortName   string `json:"short_name"`
	AuthorName  string `json:"author_name,omitempty"`
	AuthorURL   string `json:"author_url,omitempty"`
	AccessToken string `json:"access_token,omitempty"`
	AuthURL     string `json:"auth_url,omitempty"`
	PageCount   int    `json:"page_count,omitempty"`
}

// Page is a Telegraph page. Content is only populated when the call
// requested it (getPage with return_content, createPage/editPage with
// PageOptions.ReturnContent).
type Page struct {
	Path        string `json:"path"`
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	AuthorName  string `json:"author_name,omitempty"`
	AuthorURL   string `json:"author_url,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	Content     []Node `json:"content,omitempty"`
	Views       int64  `json:"views,omitempty"`
	CanEdit     bool   `json:"can_edit,omitempty"`
}

// PageList is one page of the account's page listing.
type PageList struct {
	TotalCount int    `json:"total_count"`
	Pages      []Page `json:"pages"`
}

// PageViews is the view count for a page over the requested window.
type PageViews struct {
	Views int64 `json:"views"`
}

// envelope is the wrapper every API response uses.
type envelope struct {
	OK     bool            `json:"ok"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// decodeAccount maps a result payload onto an Account, checking the
// fields the API guarantees.
func decodeAccount(raw json.RawMessage) (*Account, error) {
	var a Account
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, &DecodeError{Detail: "account: " + err.Error()}
	}
	if a.ShortName == "" {
		return nil, &DecodeError{Field: "short_name"}
	}
	return &a, nil
}

// decodePage maps a result payload onto a Page, checking the fields
// the API guarantees.
func decodePage(raw json.RawMessage) (*Page, error) {
	var p Page
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, &DecodeError{Detail: "page: " + err.Error()}
	}
	if p.Path == "" {
		return nil, &DecodeError{Field: "path"}
	}
	if p.URL == "" {
		return nil, &DecodeError{Field: "url"}
	}
	if p.Title == "" {
		return nil, &DecodeError{Field: "title"}
	}
	return &p, nil
}

// decodePageList maps a result payload onto a PageList, validating
// each contained page.
func decodePageList(raw json.RawMessage) (*PageList, error) {
	var wire struct {
		TotalCount int               `json:"total_count"`
		Pages      []json.RawMessage `json:"pages"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, &DecodeError{Detail: "page list: " + err.Error()}
	}
	if wire.Pages == nil {
		return nil, &DecodeError{Field: "pages"}
	}
	list := PageList{TotalCount: wire.TotalCount, Pages: make([]Page, 0, len(wire.Pages))}
	for _, rawPage := range wire.Pages {
		p, err := decodePage(rawPage)
		if err != nil {
			return nil, err
		}
		list.Pages = append(list.Pages, *p)
	}
	return &list, nil
}

// decodePageViews maps a result payload onto a PageViews.
func decodePageViews(raw json.RawMessage) (*PageViews, error) {
	var wire struct {
		Views *int64 `json:"views"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, &DecodeError{Detail: "views: " + err.Error()}
	}
	if wire.Views == nil {
		return nil, &DecodeError{Field: "views"}
	}
	return &PageViews{Views: *wire.Views}, nil
}
