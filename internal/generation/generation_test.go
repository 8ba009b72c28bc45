package generation

import (
	"context"
	"strings"
	"testing"

	"github.com/Husniddin989/rustili-lug-at/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestExampleValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		example *Example
		wantErr bool
	}{
		{name: "complete", example: &Example{Text: "Я читаю книгу.", Translation: "Men kitob o'qiyapman."}},
		{name: "nil", example: nil, wantErr: true},
		{name: "blank text", example: &Example{Text: "  ", Translation: "x"}, wantErr: true},
		{name: "missing translation", example: &Example{Text: "Привет!"}, wantErr: true},
		{
			name:    "overlong text",
			example: &Example{Text: strings.Repeat("я", domain.MaxExampleLength+1), Translation: "x"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.example.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidResponse)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNopGenerator(t *testing.T) {
	t.Parallel()

	var g Generator = NopGenerator{}
	example, err := g.GenerateExample(context.Background(), &domain.Word{})
	assert.Nil(t, example)
	assert.ErrorIs(t, err, ErrGenerationDisabled)
}
