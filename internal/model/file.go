package model

type UploadMetadataRequest struct {
	Name          string `json:"name"`
	ContentBase64 string `json:"content_base64"`
}

type UploadMetadataResponse struct {
	IpfsHash string `json:"ipfs_hash"`
}
