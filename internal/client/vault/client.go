// Package vault is the client side of the upload and download flows: it
// encrypts locally, asks the server for upload targets and download URLs,
// and moves the bytes directly to and from object storage.
package vault

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/gophvault/internal/client/config"
	"github.com/dmitrijs2005/gophvault/internal/common"
	"github.com/dmitrijs2005/gophvault/internal/cryptox"
	"github.com/dmitrijs2005/gophvault/internal/netx"
	pb "github.com/dmitrijs2005/gophvault/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
)

var ErrAlreadyUploaded = errors.New("file is already uploaded")

type Client struct {
	conn     *grpc.ClientConn
	api      pb.VaultClient
	http     *http.Client
	token    string
	deviceID string
	partSize int64
}

// New connects to the server named in cfg. Extra dial options are appended
// after the defaults.
func New(cfg *config.Config, opts ...grpc.DialOption) (*Client, error) {
	c := &Client{
		http:     &http.Client{},
		token:    cfg.AccessToken,
		deviceID: cfg.DeviceID,
		partSize: cfg.PartSize,
	}

	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.metadataInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(cfg.ServerEndpointAddr, dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", cfg.ServerEndpointAddr, err)
	}

	c.conn = conn
	c.api = pb.NewVaultClient(conn)
	return c, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}

func withCredentials(ctx context.Context, token, deviceID string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AccessTokenHeaderName, token)
	if deviceID != "" {
		md.Set(common.DeviceIDHeaderName, deviceID)
	}
	return metadata.NewOutgoingContext(ctx, md)
}

func (c *Client) metadataInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	return invoker(withCredentials(ctx, c.token, c.deviceID), method, req, reply, cc, opts...)
}

// Upload encrypts plaintext under a fresh file key and stores it as name.
// An upload interrupted after initiation resumes on the next call, since
// the server returns the existing record.
func (c *Client) Upload(ctx context.Context, name string, plaintext, masterKey []byte) error {
	ef, err := cryptox.EncryptFile(masterKey, plaintext)
	if err != nil {
		return fmt.Errorf("encrypt: %w", err)
	}

	parts := split(ef.Bytes, c.partSize)

	started, err := c.api.InitiateUpload(ctx, &pb.InitiateUploadRequest{
		Name:      name,
		SizeBytes: int64(len(ef.Bytes)),
		Parts:     int32(len(parts)),
		KeyCipher: ef.Envelope.KeyCipher,
		KeyNonce:  ef.Envelope.KeyNonce,
	})
	if err != nil {
		return fmt.Errorf("initiate upload: %w", err)
	}
	if started.GetState() == "uploaded" {
		return ErrAlreadyUploaded
	}
	if int(started.GetParts()) != len(parts) {
		return fmt.Errorf("server expects %d parts, have %d", started.Parts, len(parts))
	}

	checksums := make([]string, 0, len(parts))
	var objectID string
	for i, p := range parts {
		var partNumber int32
		if len(parts) > 1 {
			partNumber = int32(i + 1)
		}

		t, err := c.api.GetUploadPartTarget(ctx, &pb.UploadTargetRequest{Name: name, PartNumber: partNumber})
		if err != nil {
			return fmt.Errorf("get upload target for part %d: %w", i+1, err)
		}

		rc, err := netx.Upload(ctx, c.http, netx.Target{URL: t.GetUrl(), Token: t.GetToken(), Name: t.GetName(), PartNumber: int(t.GetPartNumber())}, p)
		if err != nil {
			return fmt.Errorf("upload part %d: %w", i+1, err)
		}
		checksums = append(checksums, rc.Checksum)
		objectID = rc.ObjectID
	}

	_, err = c.api.FinalizeUpload(ctx, &pb.FinalizeUploadRequest{Name: name, Checksums: checksums, ObjectId: objectID})
	if err != nil {
		return fmt.Errorf("finalize upload: %w", err)
	}
	return nil
}

// Download fetches name and decrypts it with the envelope stored beside it.
func (c *Client) Download(ctx context.Context, name string, masterKey []byte) ([]byte, error) {
	link, err := c.api.GetDownloadURL(ctx, &pb.DownloadURLRequest{Name: name})
	if err != nil {
		return nil, fmt.Errorf("get download url: %w", err)
	}

	data, err := netx.Download(ctx, c.http, link.GetUrl())
	if err != nil {
		return nil, err
	}

	return cryptox.DecryptFile(masterKey, cryptox.Envelope{KeyCipher: link.GetKeyCipher(), KeyNonce: link.GetKeyNonce()}, data)
}

func (c *Client) Delete(ctx context.Context, name string) error {
	if _, err := c.api.DeleteFile(ctx, &pb.DeleteFileRequest{Name: name}); err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	return nil
}

// split cuts data into parts of at most size bytes. Empty data is one
// empty part.
func split(data []byte, size int64) [][]byte {
	if size <= 0 || int64(len(data)) <= size {
		return [][]byte{data}
	}
	var parts [][]byte
	for len(data) > 0 {
		n := min(int64(len(data)), size)
		parts = append(parts, data[:n])
		data = data[n:]
	}
	return parts
}
