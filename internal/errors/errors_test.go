package errors

import (
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_IsMatchesByCode(t *testing.T) {
	err := DirectoryRead("/music", io.ErrUnexpectedEOF)

	assert.True(t, Is(err, ErrDirectoryRead))
	assert.False(t, Is(err, ErrWrite))
	assert.True(t, Is(err, io.ErrUnexpectedEOF), "cause stays reachable")

	wrapped := fmt.Errorf("preview: %w", err)
	assert.True(t, Is(wrapped, ErrDirectoryRead))

	var domainErr *Error
	require.True(t, As(wrapped, &domainErr))
	assert.Equal(t, CodeDirectoryRead, domainErr.Code)
	assert.Equal(t, map[string]string{"directory": "/music"}, domainErr.Details)
}

func TestError_Message(t *testing.T) {
	assert.Equal(t, `cannot write "/out/library.json": boom`,
		Write("/out/library.json", fmt.Errorf("boom")).Error())
	assert.Equal(t, "bad input", Validation("bad input").Error())
}

func TestError_WithDetailsAndCause(t *testing.T) {
	base := Validation("bad")
	withDetails := base.WithDetails(map[string]string{"count": "too big"})

	assert.Nil(t, base.Details, "original is not modified")
	assert.Equal(t, map[string]string{"count": "too big"}, withDetails.Details)

	withCause := base.WithCause(io.EOF)
	assert.ErrorIs(t, withCause, io.EOF)
	assert.Nil(t, base.Unwrap())
}

func TestCode_HTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeValidation, http.StatusBadRequest},
		{CodeNotFound, http.StatusNotFound},
		{CodeDirectoryRead, http.StatusUnprocessableEntity},
		{CodeRateLimited, http.StatusTooManyRequests},
		{CodeWrite, http.StatusInternalServerError},
		{CodeTagParse, http.StatusInternalServerError},
		{CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.code.HTTPStatus())
		})
	}
}

func TestWrapf(t *testing.T) {
	err := Wrapf(io.EOF, CodeInternal, "encode %d records", 3)
	assert.Equal(t, "encode 3 records: EOF", err.Error())
	assert.True(t, Is(err, ErrInternal))
}
