package util

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

// 上传相关常量
const (
	MimeImage       = "image/"
	MimeOctetStream = "application/octet-stream"

	MaxEnvironmentImageBytes = 10 << 20
	MaxAttachmentBytes       = 50 << 20
)

// context keys shared by middleware and controllers
const (
	ContextUserKey    = "user"
	ContextSessionKey = "session_id"
)
