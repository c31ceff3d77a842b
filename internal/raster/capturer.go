package raster

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"
	"unicode/utf8"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/nurpe/bill-studio/internal/render"
)

var ErrNothingToCapture = errors.New("sheet has nothing to capture")

const (
	lineGap     = 4
	columnSep   = " | "
	maxCellRune = 48
)

type Options struct {
	// Scale multiplies the output size; 2 gives crisp text on high-DPI screens.
	Scale      int
	Padding    int
	Background color.Color
}

func DefaultOptions() Options {
	return Options{Scale: 2, Padding: 12, Background: color.White}
}

// Capturer rasterizes sheets into PNG images with a fixed-width bitmap font.
type Capturer struct {
	opts    Options
	face    font.Face
	advance int
	lineH   int
	ascent  int
}

func NewCapturer(opts Options) (*Capturer, error) {
	if opts.Scale < 1 {
		return nil, fmt.Errorf("scale must be at least 1, got %d", opts.Scale)
	}
	if opts.Padding < 0 {
		return nil, fmt.Errorf("padding must not be negative, got %d", opts.Padding)
	}
	if opts.Background == nil {
		opts.Background = color.White
	}
	face := basicfont.Face7x13
	metrics := face.Metrics()
	return &Capturer{
		opts:    opts,
		face:    face,
		advance: font.MeasureString(face, "0").Ceil(),
		lineH:   metrics.Height.Ceil() + lineGap,
		ascent:  metrics.Ascent.Ceil(),
	}, nil
}

type line struct {
	text string
	bold bool
	rule bool
}

// Capture draws the sheet and returns it PNG-encoded.
func (c *Capturer) Capture(sheet *render.Sheet) ([]byte, error) {
	if sheet.Empty() {
		return nil, ErrNothingToCapture
	}

	lines := layout(sheet)
	cols := 0
	for _, l := range lines {
		if n := utf8.RuneCountInString(l.text); n > cols {
			cols = n
		}
	}

	margin := c.opts.Padding
	width := cols*c.advance + 2*margin
	height := len(lines)*c.lineH + 2*margin
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(c.opts.Background), image.Point{}, draw.Src)

	ink := image.NewUniform(color.Black)
	drawer := &font.Drawer{Dst: img, Src: ink, Face: c.face}
	for i, l := range lines {
		top := margin + i*c.lineH
		if l.rule {
			y := top + c.lineH/2
			draw.Draw(img, image.Rect(margin, y, width-margin, y+1), ink, image.Point{}, draw.Src)
			continue
		}
		baseline := top + c.ascent
		drawer.Dot = fixed.P(margin, baseline)
		drawer.DrawString(l.text)
		if l.bold {
			drawer.Dot = fixed.P(margin+1, baseline)
			drawer.DrawString(l.text)
		}
	}

	var out image.Image = img
	if s := c.opts.Scale; s > 1 {
		scaled := image.NewRGBA(image.Rect(0, 0, width*s, height*s))
		draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), img, img.Bounds(), draw.Src, nil)
		out = scaled
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func layout(sheet *render.Sheet) []line {
	var lines []line
	if sheet.Title != "" {
		lines = append(lines, line{text: sheet.Title, bold: true}, line{rule: true})
	}
	for _, section := range sheet.Sections {
		if section.Title != "" {
			lines = append(lines, line{text: section.Title, bold: true})
		}
		for _, f := range section.Fields {
			lines = append(lines, line{text: fieldText(f)})
		}
		lines = append(lines, line{})
	}
	if sheet.Table != nil && len(sheet.Table.Rows) > 0 {
		lines = append(lines, tableLines(sheet.Table)...)
		lines = append(lines, line{})
	}
	for _, f := range sheet.Footer {
		lines = append(lines, line{text: fieldText(f)})
	}
	return lines
}

func fieldText(f render.Field) string {
	if f.Label == "" {
		return f.Value
	}
	return f.Label + ": " + f.Value
}

func tableLines(t *render.Table) []line {
	widths := make([]int, len(t.Columns))
	for i, col := range t.Columns {
		widths[i] = utf8.RuneCountInString(col.Title)
	}
	for _, row := range t.Rows {
		if row.Summary {
			continue
		}
		for i, cell := range row.Cells {
			if i < len(widths) {
				widths[i] = max(widths[i], min(utf8.RuneCountInString(cell), maxCellRune))
			}
		}
	}

	header := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		header[i] = pad(col.Title, widths[i], col.Right)
	}
	lines := []line{{rule: true}, {text: strings.Join(header, columnSep), bold: true}, {rule: true}}

	total := spanWidth(widths, len(widths))
	itemsDone := false
	for _, row := range t.Rows {
		if !row.Summary {
			cells := make([]string, len(t.Columns))
			for i, col := range t.Columns {
				cell := ""
				if i < len(row.Cells) {
					cell = truncate(row.Cells[i], widths[i])
				}
				cells[i] = pad(cell, widths[i], col.Right)
			}
			lines = append(lines, line{text: strings.Join(cells, columnSep)})
			continue
		}
		if !itemsDone {
			lines = append(lines, line{rule: true})
			itemsDone = true
		}
		span := min(max(row.Span, 1), len(widths)-1)
		left := spanWidth(widths, span)
		right := total - left - len(columnSep)
		label, value := row.Cells[0], ""
		if len(row.Cells) > 1 {
			value = row.Cells[1]
		}
		lines = append(lines, line{text: pad(label, left, true) + columnSep + pad(value, right, true), bold: true})
	}
	return append(lines, line{rule: true})
}

func spanWidth(widths []int, n int) int {
	w := 0
	for i := 0; i < n && i < len(widths); i++ {
		w += widths[i]
	}
	if n > 1 {
		w += (n - 1) * len(columnSep)
	}
	return w
}

func pad(s string, width int, right bool) string {
	gap := width - utf8.RuneCountInString(s)
	if gap <= 0 {
		return s
	}
	if right {
		return strings.Repeat(" ", gap) + s
	}
	return s + strings.Repeat(" ", gap)
}

func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	r := []rune(s)
	if width <= 3 {
		return string(r[:width])
	}
	return string(r[:width-3]) + "..."
}
