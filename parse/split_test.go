package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected []string
	}{
		{"plain words", "deploy prod --force", []string{"deploy", "prod", "--force"}},
		{"double quotes", `deploy "my env" --force`, []string{"deploy", "my env", "--force"}},
		{"single quotes", "logs 'api gateway'", []string{"logs", "api gateway"}},
		{"escaped space", `config set a\ b c`, []string{"config", "set", "a b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			argv, err := Split(tt.line)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, argv)
		})
	}
}

func TestSplit_EmptyLine(t *testing.T) {
	argv, err := Split("")
	assert.NoError(t, err)
	assert.Empty(t, argv)
}

func TestSplit_UnterminatedQuote(t *testing.T) {
	_, err := Split(`deploy "unterminated`)
	assert.Error(t, err, "a complete command line must be fully quoted")
}
