package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"short version flag", []string{"-v"}, []string{"version"}},
		{"long version flag", []string{"-version"}, []string{"version"}},
		{"double-dash version flag", []string{"--version"}, []string{"version"}},
		{"subcommand untouched", []string{"drives", "list"}, []string{"drives", "list"}},
		{"flag with other args untouched", []string{"-v", "extra"}, []string{"-v", "extra"}},
		{"empty", []string{}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeArgs(tt.args))
		})
	}
}
