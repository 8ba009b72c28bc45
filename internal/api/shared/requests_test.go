package shared

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Source string `json:"source_text" validate:"required,max=5"`
	Count  int    `json:"count"       validate:"omitempty,min=1"`
}

type selfValidating struct{ ok bool }

func (s selfValidating) Validate() error {
	if !s.ok {
		return errors.New("custom validation failed")
	}
	return nil
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		wantErr error
		errText string
	}{
		{name: "valid", body: `{"source_text": "дом", "count": 3}`},
		{name: "empty body", body: "", wantErr: ErrEmptyBody},
		{name: "malformed", body: `{"source_text": "дом",}`, errText: "invalid character"},
		{name: "unknown field", body: `{"source": "дом"}`, errText: "unknown field"},
		{name: "trailing object", body: `{"source_text": "a"}{"source_text": "b"}`, errText: "single JSON object"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodPost, "/words", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			var dst sampleRequest
			err := DecodeJSON(w, req, &dst)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.errText != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errText)
			default:
				require.NoError(t, err)
				assert.Equal(t, "дом", dst.Source)
				assert.Equal(t, 3, dst.Count)
			}
		})
	}
}

func TestValidateRequest(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateRequest(&sampleRequest{Source: "дом"}))

	err := ValidateRequest(&sampleRequest{})
	var validationErrs validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
	assert.Equal(t, "source_text", validationErrs[0].Field())
	assert.Equal(t, "required", validationErrs[0].Tag())

	assert.Error(t, ValidateRequest(&sampleRequest{Source: "дом", Count: -1}))

	assert.NoError(t, ValidateRequest(selfValidating{ok: true}))
	assert.EqualError(t, ValidateRequest(selfValidating{}), "custom validation failed")
}
