package telegraph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"strings"
)

// maxUploadBytes is the service's per-file size limit.
const maxUploadBytes = 50 << 20 // 50 MiB

// uploadExtensions lists the file types the upload endpoint accepts.
var uploadExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".mp4": true,
}

// UploadFile is one file in a batch upload.
type UploadFile struct {
	Name string
	Data io.Reader
}

// UploadResult is the per-file outcome of a batch upload. Exactly one
// of URL and Err is set.
type UploadResult struct {
	Name string
	URL  string
	Size int64
	Err  error
}

// ProgressFunc is called after each file of a batch upload completes,
// successfully or not. done is the 1-based index of the finished file,
// total the batch size, and sent the cumulative bytes uploaded so far.
// Progress reporting is best-effort: a panicking callback does not
// abort the remaining uploads.
type ProgressFunc func(done, total int, sent int64, res UploadResult)

// Upload sends a single file to the telegra.ph upload endpoint and
// returns the absolute URL of the stored file. The endpoint accepts
// .jpg, .jpeg, .png, .gif and .mp4 up to 50 MiB.
func (c *Client) Upload(ctx context.Context, name string, data io.Reader) (string, error) {
	url, _, err := c.upload(ctx, name, data)
	return url, err
}

func (c *Client) upload(ctx context.Context, name string, data io.Reader) (string, int64, error) {
	ext := strings.ToLower(path.Ext(name))
	if !uploadExtensions[ext] {
		return "", 0, &ValidationError{Field: "filename", Reason: fmt.Sprintf("extension %q is not uploadable", ext)}
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", path.Base(name))
	if err != nil {
		return "", 0, fmt.Errorf("telegraph: build upload form: %w", err)
	}
	size, err := io.Copy(part, io.LimitReader(data, maxUploadBytes+1))
	if err != nil {
		return "", 0, fmt.Errorf("telegraph: read upload data: %w", err)
	}
	if size > maxUploadBytes {
		return "", 0, &ValidationError{Field: "file", Reason: "exceeds 50 MiB"}
	}
	if err := mw.Close(); err != nil {
		return "", 0, fmt.Errorf("telegraph: build upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.UploadURL, &body)
	if err != nil {
		return "", 0, fmt.Errorf("telegraph: create upload request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	c.cfg.Logger.Debug("telegraph upload", "name", name, "size", size)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("telegraph: upload request failed: %w", err)
	}
	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	_ = resp.Body.Close()
	if err != nil {
		return "", 0, fmt.Errorf("telegraph: read upload response: %w", err)
	}

	src, err := c.decodeUpload(resp.StatusCode, respBody)
	if err != nil {
		return "", 0, err
	}
	return src, size, nil
}

// decodeUpload parses the upload endpoint's response. Unlike the API
// methods it does not use the {ok, result} envelope: success is a bare
// array [{"src": "/file/..."}], failure is {"error": "..."}.
func (c *Client) decodeUpload(status int, body []byte) (string, error) {
	var files []struct {
		Src string `json:"src"`
	}
	if err := json.Unmarshal(body, &files); err == nil {
		if len(files) == 0 || files[0].Src == "" {
			return "", &DecodeError{Field: "src"}
		}
		return "https://" + c.cfg.Domain + files[0].Src, nil
	}

	var fail struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &fail); err == nil && fail.Error != "" {
		return "", &APIError{Message: fail.Error}
	}

	if status < 200 || status > 299 {
		return "", &HTTPError{Status: status}
	}
	return "", &DecodeError{Detail: "upload: unrecognized response shape"}
}

// UploadAll uploads files sequentially and returns one result per file,
// in order. A failed file does not stop the batch; its error lands in
// the corresponding result. progress may be nil.
func (c *Client) UploadAll(ctx context.Context, files []UploadFile, progress ProgressFunc) []UploadResult {
	results := make([]UploadResult, 0, len(files))
	var sent int64

	for i, f := range files {
		url, size, err := c.upload(ctx, f.Name, f.Data)
		sent += size
		res := UploadResult{Name: f.Name, URL: url, Size: size, Err: err}
		results = append(results, res)
		notifyProgress(progress, i+1, len(files), sent, res)
	}
	return results
}

// notifyProgress invokes the callback, swallowing panics so a broken
// callback cannot abort the upload loop.
func notifyProgress(fn ProgressFunc, done, total int, sent int64, res UploadResult) {
	if fn == nil {
		return
	}
	defer func() {
		_ = recover()
	}()
	fn(done, total, sent, res)
}
