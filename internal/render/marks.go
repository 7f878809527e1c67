package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

const markViewBox = 100

var markSVG = map[entity.Mark]string{
	entity.PlayerX: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100">` +
		`<path d="M 22 22 L 78 78 M 78 22 L 22 78" fill="none" stroke="#d9534f" stroke-width="12" stroke-linecap="round"/>` +
		`</svg>`,
	entity.PlayerO: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100">` +
		`<circle cx="50" cy="50" r="30" fill="none" stroke="#337ab7" stroke-width="12"/>` +
		`</svg>`,
}

type markCacheKey struct {
	mark entity.Mark
	size int
}

var (
	markCache   = map[markCacheKey]image.Image{}
	markCacheMu sync.RWMutex
)

func renderMarkImage(mark entity.Mark, size int) (image.Image, error) {
	key := markCacheKey{mark: mark, size: size}

	markCacheMu.RLock()
	if img, ok := markCache[key]; ok {
		markCacheMu.RUnlock()
		return img, nil
	}
	markCacheMu.RUnlock()

	data, ok := markSVG[mark]
	if !ok {
		return nil, fmt.Errorf("no svg for mark %q", mark)
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader([]byte(data)))
	if err != nil {
		return nil, fmt.Errorf("parse mark svg: %w", err)
	}

	if icon.ViewBox.W <= 0 || icon.ViewBox.H <= 0 {
		icon.ViewBox.W = markViewBox
		icon.ViewBox.H = markViewBox
	}
	icon.SetTarget(0, 0, float64(size), float64(size))

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Transparent), image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	icon.Draw(raster, 1.0)

	markCacheMu.Lock()
	markCache[key] = img
	markCacheMu.Unlock()

	return img, nil
}
