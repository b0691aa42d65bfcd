package api

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/url"
)

// Get fetches a single resource. ref may be a path relative to the
// endpoint root or an absolute URL, as the server returns absolute
// resource references in payloads.
func (c *Client) Get(ctx context.Context, ref string, query url.Values) (json.RawMessage, error) {
	resp, err := c.Do(ctx, resolve(ref, query))
	if err != nil {
		return nil, err
	}
	if resp.JSON == nil {
		return nil, &ContentTypeError{ContentType: resp.Header.Get("Content-Type")}
	}
	return resp.JSON, nil
}

// Create POSTs body to path. The server signals success with 201; any
// other 2xx is an unexpected-success condition, rejected unless the
// client was configured with AcceptCreateOK, in which case it is logged
// and accepted.
func (c *Client) Create(ctx context.Context, path string, body any) (json.RawMessage, error) {
	resp, err := c.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body})
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusCreated {
		if !c.acceptCreateOK {
			return nil, &UnexpectedStatusError{
				StatusCode: resp.StatusCode,
				Expected:   http.StatusCreated,
				Detail:     resp.JSON,
			}
		}
		c.logger.Warn("create returned unexpected success status",
			"path", path, "status", resp.StatusCode)
	}
	return resp.JSON, nil
}

// CreateEncodedFile encodes data as base64 text, places it in the named
// field of body and delegates to Create. This follows the server's
// convention of embedding binary attachments as base64 strings inside
// an otherwise-JSON request body, rather than multipart form data.
func (c *Client) CreateEncodedFile(ctx context.Context, path string, body map[string]any, field string, data []byte) (json.RawMessage, error) {
	payload := make(map[string]any, len(body)+1)
	for k, v := range body {
		payload[k] = v
	}
	payload[field] = base64.StdEncoding.EncodeToString(data)
	return c.Create(ctx, path, payload)
}

// Attachment is a binary payload returned by the server, such as a
// generated report. Filename is taken from the server's filename
// header when present.
type Attachment struct {
	Filename string
	Data     []byte
}

// Download fetches a binary resource. ref may be a relative path or an
// absolute URL. A JSON body in place of the expected binary payload is
// reported as a *ContentTypeError carrying the decoded error document.
func (c *Client) Download(ctx context.Context, ref string, query url.Values) (*Attachment, error) {
	resp, err := c.Do(ctx, resolve(ref, query))
	if err != nil {
		return nil, err
	}
	if resp.JSON != nil {
		return nil, &ContentTypeError{
			ContentType: resp.Header.Get("Content-Type"),
			Detail:      resp.JSON,
		}
	}
	return &Attachment{
		Filename: resp.Header.Get("filename"),
		Data:     resp.Raw,
	}, nil
}

// resolve builds a GET request for a relative path or absolute URL.
func resolve(ref string, query url.Values) Request {
	req := Request{Method: http.MethodGet, Query: query}
	if isAbsolute(ref) {
		req.URL = ref
	} else {
		req.Path = ref
	}
	return req
}

func isAbsolute(ref string) bool {
	u, err := url.Parse(ref)
	return err == nil && u.IsAbs()
}
