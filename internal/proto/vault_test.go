package proto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protobuf "google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/timestamppb"
)

func TestVaultDescriptor(t *testing.T) {
	svc := File_vault_proto.Services().ByName("Vault")
	require.NotNil(t, svc)

	var names []string
	for i := 0; i < svc.Methods().Len(); i++ {
		names = append(names, string(svc.Methods().Get(i).Name()))
	}
	assert.Equal(t, []string{"InitiateUpload", "GetUploadPartTarget", "FinalizeUpload", "GetDownloadURL", "DeleteFile"}, names)
	assert.Equal(t, "gophvault.v1.Vault", Vault_ServiceDesc.ServiceName)
}

func TestFinalizeUploadWireFormat(t *testing.T) {
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	in := &FinalizeUploadResponse{FileId: "u1|a.bin", PartsUploaded: 3, UploadedAt: timestamppb.New(at)}

	b, err := protobuf.Marshal(in)
	require.NoError(t, err)

	var out FinalizeUploadResponse
	require.NoError(t, protobuf.Unmarshal(b, &out))
	assert.True(t, protobuf.Equal(in, &out))
	assert.True(t, out.GetUploadedAt().AsTime().Equal(at))
}
