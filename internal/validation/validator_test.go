package validation_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/tagexport/internal/errors"
	"github.com/listenupapp/tagexport/internal/validation"
)

type exportBody struct {
	Directory string `json:"directory" validate:"abspath,nonul"`
	OutputDir string `json:"outputDir,omitempty" validate:"abspath"`
	Count     int    `json:"count" validate:"omitempty,gte=1,lte=100"`
}

func TestValidator_ValidateSuccess(t *testing.T) {
	v := validation.New()

	assert.NoError(t, v.Validate(exportBody{}))
	assert.NoError(t, v.Validate(exportBody{Directory: "/music", OutputDir: "/out", Count: 100}))
}

func TestValidator_ValidateErrors(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name      string
		req       exportBody
		wantField string
		wantMsg   string
	}{
		{"relative directory", exportBody{Directory: "music"}, "directory", "must be an absolute path"},
		{"relative output dir", exportBody{OutputDir: "out"}, "outputDir", "must be an absolute path"},
		{"NUL in directory", exportBody{Directory: "/mu\x00sic"}, "directory", "must not contain NUL bytes"},
		{"count too large", exportBody{Count: 101}, "count", "must be less than or equal to 100"},
		{"count negative", exportBody{Count: -1}, "count", "must be greater than or equal to 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.req)
			require.Error(t, err)

			var appErr *errors.Error
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, errors.CodeValidation, appErr.Code)
			assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus())

			details, ok := appErr.Details.(map[string]string)
			require.True(t, ok)
			assert.Equal(t, tt.wantMsg, details[tt.wantField])
		})
	}
}
