package render

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strconv"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	DefaultCellSize = 120
	minCellSize     = 16

	gridLineWidth = 4
)

var (
	backgroundColor = color.RGBA{R: 0xfa, G: 0xf7, B: 0xf0, A: 0xff}
	gridColor       = color.RGBA{R: 0x44, G: 0x44, B: 0x44, A: 0xff}
	labelColor      = color.RGBA{R: 0xaa, G: 0xaa, B: 0xaa, A: 0xff}

	ErrCellTooSmall = errors.New("cell size is too small")
)

// BoardRenderer draws board snapshots as images.
type BoardRenderer struct {
	cellSize int
}

func NewBoardRenderer(cellSize int) (*BoardRenderer, error) {
	if cellSize == 0 {
		cellSize = DefaultCellSize
	}

	if cellSize < minCellSize {
		return nil, fmt.Errorf("%w: %d", ErrCellTooSmall, cellSize)
	}

	return &BoardRenderer{cellSize: cellSize}, nil
}

// Size - returns the width and height of the rendered image in pixels.
func (that *BoardRenderer) Size() int {
	return that.cellSize * entity.BoardSide
}

// Render - draws the grid, the marks, and the 1-9 numbers of the empty cells.
func (that *BoardRenderer) Render(board entity.Board) (*image.RGBA, error) {
	size := that.Size()
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(backgroundColor), image.Point{}, draw.Src)

	that.drawGrid(img)

	for index, mark := range board {
		cell := that.cellRect(index)

		if mark.IsEmpty() {
			that.drawLabel(img, cell, strconv.Itoa(index+1))
			continue
		}

		markImg, err := renderMarkImage(mark, that.cellSize)
		if err != nil {
			return nil, fmt.Errorf("render cell %d: %w", index, err)
		}
		draw.Draw(img, cell, markImg, image.Point{}, draw.Over)
	}

	return img, nil
}

// RenderPNG - renders the board and encodes it as PNG.
func (that *BoardRenderer) RenderPNG(board entity.Board) ([]byte, error) {
	img, err := that.Render(board)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err = png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}

	return buf.Bytes(), nil
}

func (that *BoardRenderer) cellRect(index int) image.Rectangle {
	x := entity.Column(index) * that.cellSize
	y := entity.Row(index) * that.cellSize

	return image.Rect(x, y, x+that.cellSize, y+that.cellSize)
}

func (that *BoardRenderer) drawGrid(img *image.RGBA) {
	size := that.Size()
	fill := image.NewUniform(gridColor)

	for i := 1; i < entity.BoardSide; i++ {
		offset := i*that.cellSize - gridLineWidth/2
		vertical := image.Rect(offset, 0, offset+gridLineWidth, size)
		horizontal := image.Rect(0, offset, size, offset+gridLineWidth)

		draw.Draw(img, vertical, fill, image.Point{}, draw.Src)
		draw.Draw(img, horizontal, fill, image.Point{}, draw.Src)
	}
}

func (that *BoardRenderer) drawLabel(img *image.RGBA, cell image.Rectangle, text string) {
	face := basicfont.Face7x13
	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(labelColor),
		Face: face,
	}

	width := drawer.MeasureString(text).Ceil()
	metrics := face.Metrics()
	height := (metrics.Ascent + metrics.Descent).Ceil()

	x := cell.Min.X + (cell.Dx()-width)/2
	y := cell.Min.Y + (cell.Dy()-height)/2 + metrics.Ascent.Ceil()
	drawer.Dot = fixed.P(x, y)
	drawer.DrawString(text)
}
