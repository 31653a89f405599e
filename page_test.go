package telegraph

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
)

func TestCreatePageFromHTML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/createPage" {
			t.Errorf("path = %s, want /createPage", r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if got := r.PostForm.Get("title"); got != "T" {
			t.Errorf("title = %q, want %q", got, "T")
		}
		if got := r.PostForm.Get("content"); got != `[{"tag":"p","children":["hi"]}]` {
			t.Errorf("content = %q, want %q", got, `[{"tag":"p","children":["hi"]}]`)
		}
		writeJSON(t, w, ok(t, map[string]any{
			"path":    "T-01-01",
			"url":     "https://telegra.ph/T-01-01",
			"title":   "T",
			"content": []any{map[string]any{"tag": "p", "children": []any{"hi"}}},
		}))
	}))
	defer srv.Close()

	client := newTestClient(t, srv, "TOKEN")
	page, err := client.CreatePageHTML(context.Background(), "T", "<p>hi</p>", nil)
	if err != nil {
		t.Fatalf("CreatePageHTML() error: %v", err)
	}
	if page.Path != "T-01-01" {
		t.Errorf("Path = %q, want %q", page.Path, "T-01-01")
	}
	want := []Node{Element("p", nil, TextNode("hi"))}
	if !reflect.DeepEqual(page.Content, want) {
		t.Errorf("Content = %#v, want %#v", page.Content, want)
	}
}

func TestCreatePageValidation(t *testing.T) {
	client, err := NewClient(Config{})
	if err != nil {
		t.Fatalf("NewClient() error: %v", err)
	}
	content := []Node{Element("p", nil, TextNode("hi"))}

	cases := []struct {
		name    string
		title   string
		content []Node
		field   string
	}{
		{"empty title", "", content, "title"},
		{"title too long", strings.Repeat("x", 257), content, "title"},
		{"empty content", "T", nil, "content"},
		{"disallowed tag", "T", []Node{Element("script", nil)}, "content"},
		{"disallowed nested tag", "T", []Node{Element("p", nil, Element("marquee", nil))}, "content"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := client.CreatePage(context.Background(), tc.title, tc.content, nil)
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected *ValidationError, got %T: %v", err, err)
			}
			if vErr.Field != tc.field {
				t.Errorf("Field = %q, want %q", vErr.Field, tc.field)
			}
		})
	}
}

func TestEditPageRequiresToken(t *testing.T) {
	client, err := NewClient(Config{})
	if err != nil {
		t.Fatalf("NewClient() error: %v", err)
	}
	_, err = client.EditPage(context.Background(), "T-01-01", "T", []Node{TextNode("hi")}, nil)
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected *ValidationError, got %T: %v", err, err)
	}
	if vErr.Field != "access_token" {
		t.Errorf("Field = %q, want %q", vErr.Field, "access_token")
	}
}

func TestEditPageReplacesContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/editPage" {
			t.Errorf("path = %s, want /editPage", r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if got := r.PostForm.Get("path"); got != "T-01-01" {
			t.Errorf("path param = %q, want %q", got, "T-01-01")
		}
		if got := r.PostForm.Get("access_token"); got != "TOKEN" {
			t.Errorf("access_token = %q, want %q", got, "TOKEN")
		}
		writeJSON(t, w, ok(t, map[string]any{
			"path":  "T-01-01",
			"url":   "https://telegra.ph/T-01-01",
			"title": "T2",
		}))
	}))
	defer srv.Close()

	client := newTestClient(t, srv, "TOKEN")
	page, err := client.EditPage(context.Background(), "T-01-01", "T2", []Node{Element("p", nil, TextNode("new"))}, nil)
	if err != nil {
		t.Fatalf("EditPage() error: %v", err)
	}
	if page.Title != "T2" {
		t.Errorf("Title = %q, want %q", page.Title, "T2")
	}
}

func TestGetPageList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if got := r.PostForm.Get("offset"); got != "10" {
			t.Errorf("offset = %q, want %q", got, "10")
		}
		if got := r.PostForm.Get("limit"); got != "2" {
			t.Errorf("limit = %q, want %q", got, "2")
		}
		writeJSON(t, w, ok(t, map[string]any{
			"total_count": 42,
			"pages": []any{
				map[string]any{"path": "A-01-01", "url": "https://telegra.ph/A-01-01", "title": "A", "views": 5},
				map[string]any{"path": "B-01-01", "url": "https://telegra.ph/B-01-01", "title": "B", "views": 9},
			},
		}))
	}))
	defer srv.Close()

	client := newTestClient(t, srv, "TOKEN")
	list, err := client.GetPageList(context.Background(), 10, 2)
	if err != nil {
		t.Fatalf("GetPageList() error: %v", err)
	}
	if list.TotalCount != 42 {
		t.Errorf("TotalCount = %d, want 42", list.TotalCount)
	}
	if len(list.Pages) != 2 {
		t.Fatalf("len(Pages) = %d, want 2", len(list.Pages))
	}
	if list.Pages[1].Views != 9 {
		t.Errorf("Pages[1].Views = %d, want 9", list.Pages[1].Views)
	}
}

func TestGetPageListLimitValidation(t *testing.T) {
	client, err := NewClient(Config{AccessToken: "TOKEN"})
	if err != nil {
		t.Fatalf("NewClient() error: %v", err)
	}
	_, err = client.GetPageList(context.Background(), 0, 500)
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected *ValidationError, got %T: %v", err, err)
	}
	if vErr.Field != "limit" {
		t.Errorf("Field = %q, want %q", vErr.Field, "limit")
	}
}

func TestDecodePageMissingPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, ok(t, map[string]any{"url": "https://telegra.ph/x", "title": "x"}))
	}))
	defer srv.Close()

	client := newTestClient(t, srv, "")
	_, err := client.GetPage(context.Background(), "x", false)
	var decErr *DecodeError
	if !errors.As(err, &decErr) {
		t.Fatalf("expected *DecodeError, got %T: %v", err, err)
	}
	if decErr.Field != "path" {
		t.Errorf("Field = %q, want %q", decErr.Field, "path")
	}
}
