package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"

	"github.com/hance08/payops/internal/model"
)

type UploadQuery struct {
	Page     int
	Limit    int
	Search   string
	Status   string
	UploadID string
}

func (q UploadQuery) values() url.Values {
	v := pageQuery(q.Page, q.Limit)
	setIf(v, "search", q.Search)
	setIf(v, "status", q.Status)
	setIf(v, "uploadId", q.UploadID)
	return v
}

func (q UploadQuery) Params() map[string]string {
	return flatten(q.values())
}

// Upload sends a batch file as multipart form data. Processing continues on
// the server; the returned session starts in "processing".
func (c *Client) Upload(ctx context.Context, fileName string, content io.Reader, gateway model.Gateway) (*model.UploadSession, error) {
	pr, pw := io.Pipe()
	form := multipart.NewWriter(pw)

	go func() {
		err := func() error {
			if gateway != "" {
				if err := form.WriteField("paymentGateway", string(gateway)); err != nil {
					return err
				}
			}
			part, err := form.CreateFormFile("file", filepath.Base(fileName))
			if err != nil {
				return err
			}
			if _, err := io.Copy(part, content); err != nil {
				return err
			}
			return form.Close()
		}()
		pw.CloseWithError(err)
	}()

	var session model.UploadSession
	_, err := c.call(ctx, request{
		method:      http.MethodPost,
		path:        "/upload",
		body:        pr,
		contentType: form.FormDataContentType(),
	}, &session)
	pr.Close()
	if err != nil {
		return nil, err
	}

	return &session, nil
}

func (c *Client) ListUploads(ctx context.Context, q UploadQuery) (*model.UploadPage, error) {
	var page model.UploadPage
	if _, err := c.getJSON(ctx, "/upload/sessions", q.values(), &page); err != nil {
		return nil, err
	}
	if page.Sessions == nil {
		page.Sessions = []model.UploadSession{}
	}
	return &page, nil
}

// ResumeUpload re-opens a failed session for processing.
func (c *Client) ResumeUpload(ctx context.Context, uploadID string) (*model.UploadSession, error) {
	var session model.UploadSession
	if _, err := c.postJSON(ctx, "/upload/resume/"+url.PathEscape(uploadID), nil, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *Client) DeleteUpload(ctx context.Context, uploadID string) (string, error) {
	return c.delete(ctx, "/upload/delete/"+url.PathEscape(uploadID), nil)
}

// DownloadFile streams the original upload into w and returns the file name
// the server suggested, if any.
func (c *Client) DownloadFile(ctx context.Context, uploadID string, w io.Writer) (string, error) {
	resp, err := c.do(ctx, request{method: http.MethodGet, path: "/files/" + url.PathEscape(uploadID) + "/download"})
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(resp.Body)
		var env envelope
		decodeErr := json.Unmarshal(raw, &env)
		return "", errorFromEnvelope(resp.StatusCode, env, decodeErr)
	}

	if _, err := io.Copy(w, resp.Body); err != nil {
		return "", fmt.Errorf("failed to write download: %w", err)
	}

	name := ""
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil {
		name = params["filename"]
	}
	return name, nil
}
