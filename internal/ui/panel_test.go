package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressBar(t *testing.T) {
	tests := []struct {
		done, total, width int
		want               string
	}{
		{0, 0, 10, "░░░░░░░░░░   0%"},
		{5, 10, 10, "█████░░░░░  50%"},
		{3, 3, 4, "█████ 100%"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ProgressBar(tt.done, tt.total, tt.width))
	}
}

func TestMonoTheme(t *testing.T) {
	SetTheme("mono")
	t.Cleanup(func() { SetTheme("") })

	th := Current()
	assert.Equal(t, "mono", th.Name)
	assert.Equal(t, "[x]", th.BoxChecked)

	out := Panel([]string{"Shopping", "[ ] Milk"})
	assert.True(t, strings.HasPrefix(out, "┌"), out)
	assert.Contains(t, out, "Milk")
}

func TestOKFail(t *testing.T) {
	SetTheme("mono")
	t.Cleanup(func() { SetTheme("") })

	var out, errOut bytes.Buffer
	OK(&out, "added")
	Fail(&errOut, "boom")
	assert.Equal(t, "x added\n", out.String())
	assert.Equal(t, "✖ boom\n", errOut.String())
}
