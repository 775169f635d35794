package domain

import (
	"bytes"
	"context"
	"encoding/base64"
	"strings"

	"github.com/codexero/backend/internal/client"
	"github.com/codexero/backend/internal/model"
	"github.com/codexero/backend/pkg/api/pinata"
	"github.com/codexero/backend/pkg/errorx"
	"github.com/codexero/backend/pkg/xcontext"
)

const maxMetadataSize = 2 << 20 // 2MB

type FileDomain interface {
	UploadMetadata(ctx context.Context, req *model.UploadMetadataRequest) (*model.UploadMetadataResponse, error)
}

type fileDomain struct {
	pinataEndpoint pinata.IEndpoint
	mintContract   client.MintContractCaller
}

func NewFileDomain(pinataEndpoint pinata.IEndpoint, mintContract client.MintContractCaller) *fileDomain {
	return &fileDomain{pinataEndpoint: pinataEndpoint, mintContract: mintContract}
}

// UploadMetadata pins token metadata to IPFS. Owner only.
func (d *fileDomain) UploadMetadata(
	ctx context.Context, req *model.UploadMetadataRequest,
) (*model.UploadMetadataResponse, error) {
	if req.Name == "" {
		return nil, errorx.New(errorx.BadRequest, "Missing file name")
	}

	caller := xcontext.RequestWallet(ctx)
	owner, err := d.mintContract.Owner(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get contract owner: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Chain unavailable, please retry")
	}

	if !strings.EqualFold(owner.Hex(), caller) {
		return nil, errorx.New(errorx.PermissionDenied, "Only the owner can upload metadata")
	}

	content, err := base64.StdEncoding.DecodeString(req.ContentBase64)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Content is not valid base64")
	}

	if len(content) == 0 || len(content) > maxMetadataSize {
		return nil, errorx.New(errorx.BadRequest, "Content is empty or too large")
	}

	hash, err := d.pinataEndpoint.PinFile(ctx, req.Name, bytes.NewReader(content))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot pin file: %v", err)
		return nil, errorx.New(errorx.Unavailable, "IPFS pinning failed, please retry")
	}

	return &model.UploadMetadataResponse{IpfsHash: hash}, nil
}
