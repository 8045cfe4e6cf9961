package grpc

import (
	"context"

	pb "github.com/dmitrijs2005/gophvault/internal/proto"
	"github.com/dmitrijs2005/gophvault/internal/server/models"
	"github.com/dmitrijs2005/gophvault/internal/server/services"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// Validation shapes for incoming requests. Names are further checked by the
// services for their canonical form.
type (
	nameInput struct {
		Name string `validate:"required,max=1024"`
	}

	initiateInput struct {
		Name      string `validate:"required,max=1024"`
		SizeBytes int64  `validate:"gte=0"`
		Parts     int32  `validate:"gte=1,lte=10000"`
		KeyCipher string `validate:"required"`
		KeyNonce  string `validate:"required"`
	}

	targetInput struct {
		Name       string `validate:"required,max=1024"`
		PartNumber int32  `validate:"gte=0"`
	}

	finalizeInput struct {
		Name      string   `validate:"required,max=1024"`
		Checksums []string `validate:"dive,required"`
	}
)

func (s *GRPCServer) InitiateUpload(ctx context.Context, req *pb.InitiateUploadRequest) (*pb.InitiateUploadResponse, error) {
	in := initiateInput{
		Name:      req.GetName(),
		SizeBytes: req.GetSizeBytes(),
		Parts:     req.GetParts(),
		KeyCipher: req.GetKeyCipher(),
		KeyNonce:  req.GetKeyNonce(),
	}
	if err := s.validate.Struct(in); err != nil {
		return nil, toStatus(ctx, err)
	}

	f, err := s.uploads.Initiate(ctx, services.InitiateRequest{
		OwnerID:   ownerIDFromContext(ctx),
		DeviceID:  deviceIDFromContext(ctx),
		Name:      in.Name,
		SizeBytes: in.SizeBytes,
		Parts:     int(in.Parts),
		Envelope:  models.Envelope{KeyCipher: in.KeyCipher, KeyNonce: in.KeyNonce},
	})
	if err != nil {
		return nil, toStatus(ctx, err)
	}

	return &pb.InitiateUploadResponse{
		FileId:   f.ID,
		ObjectId: f.StorageObjectID,
		State:    string(f.State()),
		Parts:    int32(f.TotalParts),
	}, nil
}

func (s *GRPCServer) GetUploadPartTarget(ctx context.Context, req *pb.UploadTargetRequest) (*pb.UploadTargetResponse, error) {
	in := targetInput{Name: req.GetName(), PartNumber: req.GetPartNumber()}
	if err := s.validate.Struct(in); err != nil {
		return nil, toStatus(ctx, err)
	}

	target, err := s.uploads.PartUploadTarget(ctx, ownerIDFromContext(ctx), in.Name, int(in.PartNumber))
	if err != nil {
		return nil, toStatus(ctx, err)
	}

	return &pb.UploadTargetResponse{
		Url:        target.URL,
		Token:      target.Token,
		Name:       target.Name,
		PartNumber: int32(target.PartNumber),
	}, nil
}

func (s *GRPCServer) FinalizeUpload(ctx context.Context, req *pb.FinalizeUploadRequest) (*pb.FinalizeUploadResponse, error) {
	in := finalizeInput{Name: req.GetName(), Checksums: req.GetChecksums()}
	if err := s.validate.Struct(in); err != nil {
		return nil, toStatus(ctx, err)
	}

	f, err := s.uploads.Finalize(ctx, ownerIDFromContext(ctx), in.Name, in.Checksums, req.GetObjectId())
	if err != nil {
		return nil, toStatus(ctx, err)
	}

	resp := &pb.FinalizeUploadResponse{FileId: f.ID, PartsUploaded: int32(f.PartsUploaded)}
	if f.UploadedAt != nil {
		resp.UploadedAt = timestamppb.New(*f.UploadedAt)
	}
	return resp, nil
}

func (s *GRPCServer) GetDownloadURL(ctx context.Context, req *pb.DownloadURLRequest) (*pb.DownloadURLResponse, error) {
	if err := s.validate.Struct(nameInput{Name: req.GetName()}); err != nil {
		return nil, toStatus(ctx, err)
	}

	link, err := s.downloads.GetDownloadURL(ctx, ownerIDFromContext(ctx), req.GetName())
	if err != nil {
		return nil, toStatus(ctx, err)
	}

	resp := &pb.DownloadURLResponse{
		Url:       link.URL,
		KeyCipher: link.Envelope.KeyCipher,
		KeyNonce:  link.Envelope.KeyNonce,
	}
	if !link.ExpiresAt.IsZero() {
		resp.ExpiresAt = timestamppb.New(link.ExpiresAt)
	}
	return resp, nil
}

func (s *GRPCServer) DeleteFile(ctx context.Context, req *pb.DeleteFileRequest) (*pb.DeleteFileResponse, error) {
	if err := s.validate.Struct(nameInput{Name: req.GetName()}); err != nil {
		return nil, toStatus(ctx, err)
	}

	if err := s.uploads.Delete(ctx, ownerIDFromContext(ctx), req.GetName()); err != nil {
		return nil, toStatus(ctx, err)
	}

	s.logger.Info(ctx, "file deleted", "request_id", requestIDFromContext(ctx), "name", req.GetName())
	return &pb.DeleteFileResponse{}, nil
}
