package util

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"username taken", ErrUsernameTaken, http.StatusUnprocessableEntity, "Username is already taken up."},
		{"email registered", fmt.Errorf("create user: %w", ErrEmailRegistered), http.StatusUnprocessableEntity, "E-mail address is already registered."},
		{"bad credential", ErrInvalidCredential, http.StatusUnauthorized, "Invalid credential"},
		{"stale session hidden", ErrStaleSession, http.StatusUnauthorized, "Unauthorised"},
		{"forbidden", ErrForbidden, http.StatusForbidden, "Forbidden"},
		{"already setter", ErrAlreadyTestSetter, http.StatusBadRequest, "User is already a test setter."},
		{"attempt exists", ErrAttemptExists, http.StatusConflict, ErrAttemptExists.Error()},
		{"not found", ErrTestNotFound, http.StatusNotFound, ErrTestNotFound.Error()},
		{"raw db error", errors.New(`pq: relation "users" does not exist`), http.StatusInternalServerError, "Internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := StatusOf(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestSniffMimeType(t *testing.T) {
	png := append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 600)...)

	mime, r, err := SniffMimeType(bytes.NewReader(png), MimeImage)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mime)
	all, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, png, all)

	_, _, err = SniffMimeType(bytes.NewReader([]byte("plain text")), MimeImage)
	assert.ErrorIs(t, err, ErrInvalidFileType)

	mime, _, err = SniffMimeType(bytes.NewReader([]byte("notes")))
	require.NoError(t, err)
	assert.Equal(t, "text/plain; charset=utf-8", mime)
}
