package report

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "empty",
			in:   "",
			want: "",
		},
		{
			name: "plain ascii untouched",
			in:   "The warranty period is two years.",
			want: "The warranty period is two years.",
		},
		{
			name: "curly quotes and dashes",
			in:   "“quoted” — it’s done…",
			want: `"quoted" - it's done...`,
		},
		{
			name: "markdown emphasis stripped",
			in:   "**Bold** and * item",
			want: "Bold and - item",
		},
		{
			name: "non latin1 replaced",
			in:   "price: 10 € 快",
			want: "price: 10 ? ?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanText(tt.in))
		})
	}
}

func TestRenderSummary(t *testing.T) {
	g := NewGenerator(t.TempDir())

	path, err := g.RenderSummary("A short conversation summary.")
	assert.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, ".pdf"))

	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF"))
}

func TestRenderSummaryCreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "reports")
	g := NewGenerator(dir)

	path, err := g.RenderSummary("content")
	assert.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))
}

func TestTransientFileDeletesOnClose(t *testing.T) {
	g := NewGenerator(t.TempDir())
	path, err := g.RenderSummary("to be transmitted once")
	assert.NoError(t, err)

	f, size, err := OpenTransient(path)
	assert.NoError(t, err)
	assert.Greater(t, size, 0)

	buf := make([]byte, size)
	_, err = io.ReadFull(f, buf)
	assert.NoError(t, err)

	assert.NoError(t, f.Close())

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestOpenTransientMissingFile(t *testing.T) {
	_, _, err := OpenTransient(filepath.Join(t.TempDir(), "missing.pdf"))
	assert.Error(t, err)
}
