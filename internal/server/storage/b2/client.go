// Package b2 is a Backblaze B2 native API backend. Only the calls needed
// for large-file uploads, deletes and download authorization are covered.
package b2

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophvault/internal/server/storage"
)

const contentType = "application/octet-stream"

type Config struct {
	KeyID       string
	Key         string
	APIURL      string
	DownloadURL string
	BucketID    string
	BucketName  string
}

type Client struct {
	cfg  Config
	http *http.Client
}

var _ storage.Backend = (*Client)(nil)

// New returns a client; a nil httpClient uses http.DefaultClient.
func New(cfg Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	cfg.DownloadURL = strings.TrimRight(cfg.DownloadURL, "/")
	return &Client{cfg: cfg, http: httpClient}
}

type apiError struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type authorizeResponse struct {
	AuthorizationToken string `json:"authorizationToken"`
}

type fileResponse struct {
	FileID   string `json:"fileId"`
	FileName string `json:"fileName"`
}

type uploadURLResponse struct {
	UploadURL          string `json:"uploadUrl"`
	AuthorizationToken string `json:"authorizationToken"`
}

func (c *Client) AuthorizeAccount(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.APIURL+"/b2_authorize_account", nil)
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(c.cfg.KeyID, c.cfg.Key)

	var out authorizeResponse
	if err := c.do(req, "authorize_account", &out); err != nil {
		return "", err
	}
	return out.AuthorizationToken, nil
}

func (c *Client) StartLargeFile(ctx context.Context, token, name string) (storage.Object, error) {
	in := map[string]any{
		"bucketId":    c.cfg.BucketID,
		"fileName":    name,
		"contentType": contentType,
	}
	var out fileResponse
	if err := c.post(ctx, "start_large_file", token, in, &out); err != nil {
		return storage.Object{}, err
	}
	return storage.Object{ID: out.FileID, Name: out.FileName}, nil
}

func (c *Client) GetUploadTarget(ctx context.Context, token, _ string) (storage.UploadTarget, error) {
	var out uploadURLResponse
	if err := c.post(ctx, "get_upload_url", token, map[string]any{"bucketId": c.cfg.BucketID}, &out); err != nil {
		return storage.UploadTarget{}, err
	}
	return storage.UploadTarget{URL: out.UploadURL, Token: out.AuthorizationToken}, nil
}

func (c *Client) GetUploadPartTarget(ctx context.Context, token string, obj storage.Object, partNumber int) (storage.UploadTarget, error) {
	var out uploadURLResponse
	if err := c.post(ctx, "get_upload_part_url", token, map[string]any{"fileId": obj.ID}, &out); err != nil {
		return storage.UploadTarget{}, err
	}
	return storage.UploadTarget{URL: out.UploadURL, Token: out.AuthorizationToken, PartNumber: partNumber}, nil
}

func (c *Client) FinishLargeFile(ctx context.Context, token string, obj storage.Object, checksums []string) error {
	in := map[string]any{
		"fileId":        obj.ID,
		"partSha1Array": checksums,
	}
	return c.post(ctx, "finish_large_file", token, in, nil)
}

func (c *Client) CancelLargeFile(ctx context.Context, token string, obj storage.Object) error {
	return c.post(ctx, "cancel_large_file", token, map[string]any{"fileId": obj.ID}, nil)
}

func (c *Client) DeleteFileVersion(ctx context.Context, token string, obj storage.Object) error {
	in := map[string]any{
		"fileId":   obj.ID,
		"fileName": obj.Name,
	}
	return c.post(ctx, "delete_file_version", token, in, nil)
}

func (c *Client) GetDownloadAuthorization(ctx context.Context, token, pathPrefix string, ttl time.Duration) (string, error) {
	in := map[string]any{
		"bucketId":               c.cfg.BucketID,
		"fileNamePrefix":         pathPrefix,
		"validDurationInSeconds": int64(ttl / time.Second),
	}
	var out authorizeResponse
	if err := c.post(ctx, "get_download_authorization", token, in, &out); err != nil {
		return "", err
	}
	return out.AuthorizationToken, nil
}

// DownloadURL returns {downloadUrl}/file/{bucket}/{path}?Authorization={grant}.
func (c *Client) DownloadURL(path, grant string) string {
	segments := strings.Split(path, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return fmt.Sprintf("%s/file/%s/%s?Authorization=%s",
		c.cfg.DownloadURL, url.PathEscape(c.cfg.BucketName), strings.Join(segments, "/"), url.QueryEscape(grant))
}

func (c *Client) post(ctx context.Context, op, token string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("%s: encode request: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.APIURL+"/b2_"+op, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", token)
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, op, out)
}

func (c *Client) do(req *http.Request, op string, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decodeError(op, resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

func decodeError(op string, resp *http.Response) error {
	var e apiError
	if err := json.NewDecoder(resp.Body).Decode(&e); err != nil || e.Code == "" {
		e.Code = http.StatusText(resp.StatusCode)
	}
	if e.Message == "" {
		e.Message = e.Code
	}
	return &storage.BackendError{
		Op:          op,
		Status:      resp.StatusCode,
		Code:        e.Code,
		Message:     e.Message,
		AuthExpired: resp.StatusCode == http.StatusUnauthorized,
	}
}
