package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"My Portfolio":        "my-portfolio",
		"  Hello,   World!  ": "hello-world",
		"Go.Tools_v2":         "go-tools-v2",
		"---":                 "",
		"already-a-slug":      "already-a-slug",
		"Ünïcode Name":        "n-code-name",
	}

	for input, want := range tests {
		assert.Equal(t, want, Slugify(input), "input %q", input)
	}
}

func TestNormalizeSlug(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"dotfiles.nvim", "dotfiles.nvim", true},
		{"  Go_Tools-v2 ", "go_tools-v2", true},
		{"has space", "has space", false},
		{"notes/v2", "notes/v2", false},
		{"..", "..", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := NormalizeSlug(tt.input)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
		assert.Equal(t, tt.ok, ok, "input %q", tt.input)
	}
}
