package controller

import (
	"io"

	"proctor_backend/internal/service"
	"proctor_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// formUpload opens a multipart file field, enforcing maxBytes and the allowed
// MIME prefixes (none: anything). The caller closes the returned closer.
func formUpload(ctx *gin.Context, field string, maxBytes int64, allowed ...string) (service.Upload, io.Closer, error) {
	header, err := ctx.FormFile(field)
	if err != nil {
		return service.Upload{}, nil, util.ErrFileMissing
	}
	if header.Size > maxBytes {
		return service.Upload{}, nil, util.ErrFileTooLarge
	}

	file, err := header.Open()
	if err != nil {
		return service.Upload{}, nil, err
	}
	contentType, reader, err := util.SniffMimeType(file, allowed...)
	if err != nil {
		file.Close()
		return service.Upload{}, nil, err
	}
	return service.Upload{Reader: reader, Size: header.Size, ContentType: contentType}, file, nil
}
