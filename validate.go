package telegraph

import (
	"encoding/json"
	"net/url"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Limits the Telegraph service enforces; checked locally so violations
// fail with *ValidationError before any network call.
const (
	maxShortNameLen  = 32
	maxAuthorNameLen = 128
	maxAuthorURLLen  = 512
	maxTitleLen      = 256
	maxContentBytes  = 64 << 10
	maxPageListLimit = 200
)

// fieldErr wraps an ozzo-validation result into a *ValidationError.
func fieldErr(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Reason: err.Error()}
}

func validateShortName(shortName string) error {
	return fieldErr("short_name", validation.Validate(shortName,
		validation.Required,
		validation.Length(1, maxShortNameLen),
	))
}

func validateAuthor(authorName, authorURL string) error {
	if err := fieldErr("author_name", validation.Validate(authorName,
		validation.Length(0, maxAuthorNameLen),
	)); err != nil {
		return err
	}
	if authorURL == "" {
		return nil
	}
	if err := fieldErr("author_url", validation.Validate(authorURL,
		validation.Length(0, maxAuthorURLLen),
	)); err != nil {
		return err
	}
	u, err := url.Parse(authorURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return &ValidationError{Field: "author_url", Reason: "must be a valid http/https URL"}
	}
	return nil
}

func validateTitle(title string) error {
	return fieldErr("title", validation.Validate(title,
		validation.Required,
		validation.Length(1, maxTitleLen),
	))
}

func validatePath(path string) error {
	return fieldErr("path", validation.Validate(path, validation.Required))
}

// validateContent checks the node tree against the allowed tag set and
// the service's serialized size limit.
func validateContent(content []Node) error {
	if len(content) == 0 {
		return &ValidationError{Field: "content", Reason: "must not be empty"}
	}
	for _, node := range content {
		if err := node.Validate(); err != nil {
			return err
		}
	}
	serialized, err := json.Marshal(content)
	if err != nil {
		return &ValidationError{Field: "content", Reason: err.Error()}
	}
	if len(serialized) > maxContentBytes {
		return &ValidationError{Field: "content", Reason: "exceeds 64 KiB serialized"}
	}
	return nil
}

func validatePageList(offset, limit int) error {
	if err := fieldErr("offset", validation.Validate(offset, validation.Min(0))); err != nil {
		return err
	}
	return fieldErr("limit", validation.Validate(limit,
		validation.Required,
		validation.Min(1),
		validation.Max(maxPageListLimit),
	))
}

// validateViewsQuery enforces the API's granularity chaining: hour
// requires day, day requires month, month requires year, plus the
// documented ranges.
func validateViewsQuery(q ViewsQuery) error {
	if q.Hour != nil && q.Day == 0 {
		return &ValidationError{Field: "hour", Reason: "requires day"}
	}
	if q.Day != 0 && q.Month == 0 {
		return &ValidationError{Field: "day", Reason: "requires month"}
	}
	if q.Month != 0 && q.Year == 0 {
		return &ValidationError{Field: "month", Reason: "requires year"}
	}
	if q.Year != 0 {
		if err := fieldErr("year", validation.Validate(q.Year, validation.Min(2000), validation.Max(2100))); err != nil {
			return err
		}
	}
	if q.Month != 0 {
		if err := fieldErr("month", validation.Validate(q.Month, validation.Min(1), validation.Max(12))); err != nil {
			return err
		}
	}
	if q.Day != 0 {
		if err := fieldErr("day", validation.Validate(q.Day, validation.Min(1), validation.Max(31))); err != nil {
			return err
		}
	}
	if q.Hour != nil {
		if err := fieldErr("hour", validation.Validate(*q.Hour, validation.Min(0), validation.Max(24))); err != nil {
			return err
		}
	}
	return nil
}
