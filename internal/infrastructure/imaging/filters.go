package imaging

import (
	"fmt"
	"image"
	"image/color"
	"math/rand"

	xdraw "golang.org/x/image/draw"

	"detect-bot/internal/domain/entity"
	"detect-bot/internal/domain/port"
)

// Filter — набор преобразований изображений на чистом Go.
type Filter struct {
	noiseRatio float64 // доля пикселей под шум "соль и перец"
}

// NewFilter создаёт набор преобразований с настройками по умолчанию.
func NewFilter() *Filter {
	return &Filter{noiseRatio: 0.05}
}

// Transform применяет именованное преобразование и возвращает новое
// изображение. Исходное не изменяется.
func (f *Filter) Transform(kind entity.FilterKind, img image.Image) (image.Image, error) {
	switch kind {
	case entity.FilterBlur:
		return blur(toRGBA(img), 2), nil
	case entity.FilterContour:
		return contour(toRGBA(img)), nil
	case entity.FilterRotate:
		return rotate(toRGBA(img)), nil
	case entity.FilterRotate2:
		// "rotate 2" определён как rotate, применённый дважды.
		return rotate(rotate(toRGBA(img))), nil
	case entity.FilterSegment:
		return segment(toRGBA(img)), nil
	case entity.FilterSaltPepper:
		return f.saltPepper(toRGBA(img)), nil
	case entity.FilterConcat:
		return concat(toRGBA(img)), nil
	}
	return nil, fmt.Errorf("unsupported filter kind %q", kind)
}

func toRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(dst, dst.Bounds(), img, b.Min, xdraw.Src)
	return dst
}

// rotate поворачивает изображение на 90° по часовой стрелке.
func rotate(src *image.RGBA) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewRGBA(image.Rect(0, 0, h, w))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dst.SetRGBA(h-1-y, x, src.RGBAAt(x, y))
		}
	}
	return dst
}

// blur — прямоугольное размытие с окном (2r+1)×(2r+1).
func blur(src *image.RGBA, radius int) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sumR, sumG, sumB, n int
			for dy := -radius; dy <= radius; dy++ {
				for dx := -radius; dx <= radius; dx++ {
					px, py := x+dx, y+dy
					if px < 0 || py < 0 || px >= w || py >= h {
						continue
					}
					c := src.RGBAAt(px, py)
					sumR += int(c.R)
					sumG += int(c.G)
					sumB += int(c.B)
					n++
				}
			}
			dst.SetRGBA(x, y, color.RGBA{
				R: uint8(sumR / n),
				G: uint8(sumG / n),
				B: uint8(sumB / n),
				A: 255,
			})
		}
	}
	return dst
}

// contour выделяет контуры оператором Собеля по яркости.
func contour(src *image.RGBA) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	gray := make([][]int, h)
	for y := 0; y < h; y++ {
		gray[y] = make([]int, w)
		for x := 0; x < w; x++ {
			gray[y][x] = luminance(src.RGBAAt(x, y))
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x == 0 || y == 0 || x == w-1 || y == h-1 {
				dst.SetRGBA(x, y, color.RGBA{A: 255})
				continue
			}
			gx := gray[y-1][x+1] + 2*gray[y][x+1] + gray[y+1][x+1] -
				gray[y-1][x-1] - 2*gray[y][x-1] - gray[y+1][x-1]
			gy := gray[y+1][x-1] + 2*gray[y+1][x] + gray[y+1][x+1] -
				gray[y-1][x-1] - 2*gray[y-1][x] - gray[y-1][x+1]
			m := abs(gx) + abs(gy)
			if m > 255 {
				m = 255
			}
			v := uint8(m)
			dst.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return dst
}

// segment бинаризует изображение порогом по средней яркости.
func segment(src *image.RGBA) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	var sum, total int
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sum += luminance(src.RGBAAt(x, y))
			total++
		}
	}
	threshold := 128
	if total > 0 {
		threshold = sum / total
	}

	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	black := color.RGBA{A: 255}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if luminance(src.RGBAAt(x, y)) > threshold {
				dst.SetRGBA(x, y, white)
			} else {
				dst.SetRGBA(x, y, black)
			}
		}
	}
	return dst
}

// saltPepper рассыпает по картинке случайные белые и чёрные пиксели.
func (f *Filter) saltPepper(src *image.RGBA) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.Draw(dst, dst.Bounds(), src, b.Min, xdraw.Src)

	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	black := color.RGBA{A: 255}
	noisy := int(float64(w*h) * f.noiseRatio)
	for i := 0; i < noisy; i++ {
		x, y := rand.Intn(w), rand.Intn(h)
		if rand.Intn(2) == 0 {
			dst.SetRGBA(x, y, white)
		} else {
			dst.SetRGBA(x, y, black)
		}
	}
	return dst
}

// concat приставляет изображение к самому себе по горизонтали.
func concat(src *image.RGBA) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewRGBA(image.Rect(0, 0, w*2, h))
	xdraw.Draw(dst, image.Rect(0, 0, w, h), src, b.Min, xdraw.Src)
	xdraw.Draw(dst, image.Rect(w, 0, w*2, h), src, b.Min, xdraw.Src)
	return dst
}

func luminance(c color.RGBA) int {
	// Целочисленное приближение ITU-R BT.601.
	return (299*int(c.R) + 587*int(c.G) + 114*int(c.B)) / 1000
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Проверка реализации интерфейса
var _ port.ImageFilter = (*Filter)(nil)
