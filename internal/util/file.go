package util

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var (
	ErrInvalidFileType = errors.New("invalid file type")
	ErrFileTooLarge    = errors.New("file is too large")
	ErrFileMissing     = errors.New("file is required")
)

// sniffLen matches mimetype's default read limit.
const sniffLen = 3072

// SniffMimeType detects the content type from the head of r and returns
// a reader that still yields the whole stream. allowed holds MIME prefixes or
// full types; an empty list accepts anything.
func SniffMimeType(r io.Reader, allowed ...string) (string, io.Reader, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", nil, err
	}
	head = head[:n]
	mimeType := mimetype.Detect(head).String()
	full := io.MultiReader(bytes.NewReader(head), r)

	if len(allowed) == 0 {
		return mimeType, full, nil
	}
	for _, a := range allowed {
		if strings.HasPrefix(mimeType, a) {
			return mimeType, full, nil
		}
	}
	return mimeType, nil, ErrInvalidFileType
}
