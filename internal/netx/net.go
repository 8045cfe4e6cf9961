// Package netx moves object bytes directly between the client and the
// storage backend, using upload targets and download URLs handed out by
// the server.
package netx

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Target is where one object or part is uploaded. Token is set for the
// native B2 API and empty for presigned URLs.
type Target struct {
	URL        string
	Token      string
	Name       string
	PartNumber int
}

// SHA1Hex is the checksum format the backend verifies parts with.
func SHA1Hex(b []byte) string {
	sum := sha1.Sum(b)
	return hex.EncodeToString(sum[:])
}

// Receipt is what the backend reports for one upload. Checksum is the value
// the server needs to finish a multipart upload: the SHA-1 for B2 parts and
// the ETag for presigned parts. ObjectID is set for whole-object uploads.
type Receipt struct {
	ObjectID string
	Checksum string
}

// Upload sends body to t. For presigned URLs the object id is the object
// key. B2 whole-file uploads report the id in the response body.
func Upload(ctx context.Context, client *http.Client, t Target, body []byte) (Receipt, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, t.URL, bytes.NewReader(body))
	if err != nil {
		return Receipt{}, err
	}
	req.ContentLength = int64(len(body))
	sum := SHA1Hex(body)

	if t.Token != "" {
		req.Method = http.MethodPost
		req.Header.Set("Authorization", t.Token)
		req.Header.Set("X-Bz-Content-Sha1", sum)
		if t.PartNumber > 0 {
			req.Header.Set("X-Bz-Part-Number", strconv.Itoa(t.PartNumber))
		} else {
			req.Header.Set("X-Bz-File-Name", escapeName(t.Name))
			req.Header.Set("Content-Type", "application/octet-stream")
		}
	} else {
		req.Header.Set("Content-Type", "application/octet-stream")
	}

	resp, err := client.Do(req)
	if err != nil {
		return Receipt{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return Receipt{}, fmt.Errorf("upload failed: %s; body: %s", resp.Status, string(b))
	}

	switch {
	case t.Token == "" && t.PartNumber > 0:
		return Receipt{Checksum: resp.Header.Get("ETag")}, nil
	case t.Token == "":
		return Receipt{ObjectID: t.Name, Checksum: sum}, nil
	case t.PartNumber > 0:
		return Receipt{Checksum: sum}, nil
	}

	var out struct {
		FileID string `json:"fileId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Receipt{}, fmt.Errorf("decode upload response: %w", err)
	}
	return Receipt{ObjectID: out.FileID, Checksum: sum}, nil
}

// Download fetches the object at rawURL.
func Download(ctx context.Context, client *http.Client, rawURL string) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("download failed: %s; body: %s", resp.Status, string(b))
	}
	return io.ReadAll(resp.Body)
}

// escapeName percent-encodes each segment of a slash-separated object name
// and keeps the slashes.
func escapeName(name string) string {
	segments := strings.Split(name, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}
