package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nurpe/bill-studio/internal/model"
	"github.com/nurpe/bill-studio/internal/render"
)

type Format string

const (
	FormatPNG Format = "png"
	FormatPDF Format = "pdf"
)

var ErrUnknownFormat = errors.New("unknown export format")

func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "png", "image":
		return FormatPNG, nil
	case "pdf":
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, raw)
	}
}

func (f Format) ContentType() string {
	if f == FormatPDF {
		return "application/pdf"
	}
	return "image/png"
}

// SheetCapturer turns a sheet into file bytes.
type SheetCapturer interface {
	Capture(sheet *render.Sheet) ([]byte, error)
}

// SheetCapturerFunc adapts a plain function, e.g. pdf.Generator.Generate.
type SheetCapturerFunc func(sheet *render.Sheet) ([]byte, error)

func (f SheetCapturerFunc) Capture(sheet *render.Sheet) ([]byte, error) {
	return f(sheet)
}

// Sink stores an exported file under a name.
type Sink interface {
	Save(ctx context.Context, name string, content []byte) error
}

// DirSink writes files into one directory, creating it on first use.
type DirSink struct {
	Dir string
}

func (s DirSink) Save(ctx context.Context, name string, content []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(s.Dir, filepath.Base(name))
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// FileName names an export after the document number and type, e.g.
// invoice-INV-42.png or fuel-bill-234603424L318053.png.
func FileName(mode model.Mode, number string, format Format) string {
	prefix := "invoice"
	if mode == model.ModeFuel {
		prefix = "fuel-bill"
	}
	return fmt.Sprintf("%s-%s.%s", prefix, sanitizeFileName(number), format)
}

func sanitizeFileName(input string) string {
	result := make([]rune, 0, len(input))
	for _, r := range input {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			result = append(result, r)
		case r == '-', r == '_':
			result = append(result, r)
		default:
			result = append(result, '-')
		}
	}
	return strings.Trim(string(result), "-")
}
