package export

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/bill-studio/internal/model"
)

func TestFileName(t *testing.T) {
	assert.Equal(t, "invoice-INV-2025-0042.png", FileName(model.ModeTelecom, "INV-2025-0042", FormatPNG))
	assert.Equal(t, "fuel-bill-234603424L318053.png", FileName(model.ModeFuel, "234603424L318053", FormatPNG))
	assert.Equal(t, "invoice-INV-1-2.pdf", FileName(model.ModeTelecom, "INV/1/2", FormatPDF))
	assert.Equal(t, "invoice-.png", FileName(model.ModeTelecom, "", FormatPNG))
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatPNG, f)

	f, err = ParseFormat(" PDF ")
	require.NoError(t, err)
	assert.Equal(t, FormatPDF, f)
	assert.Equal(t, "application/pdf", f.ContentType())

	_, err = ParseFormat("gif")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestDirSinkSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	sink := DirSink{Dir: dir}

	require.NoError(t, sink.Save(context.Background(), "../escape.png", []byte("png")))

	content, err := os.ReadFile(filepath.Join(dir, "escape.png"))
	require.NoError(t, err)
	assert.Equal(t, "png", string(content))
}

func TestDirSinkHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, DirSink{Dir: t.TempDir()}.Save(ctx, "a.png", nil), context.Canceled)
}
