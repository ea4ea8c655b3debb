package gif

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"
	"math"

	"github.com/golang/freetype/truetype"
	"github.com/gorgonia/ising"
	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/math/fixed"
)

var regular *truetype.Font

const (
	dpi             = 72.0
	fontsize        = 12.0
	lineheight      = 1.2
	captionLines    = 3
	dummyLongString = `Step 100000  M -0.000  E -0000.00`
)

func init() {
	var err error
	if regular, err = truetype.Parse(gomono.TTF); err != nil {
		panic(err)
	}
}

// globPalette is 256 levels of grey. Index i is Gray{i}, so a probability p is drawn as index 255·p.
var globPalette = func() color.Palette {
	retVal := make(color.Palette, 256)
	for i := range retVal {
		retVal[i] = color.Gray{uint8(i)}
	}
	return retVal
}()

// Encoder is a structure that encodes chain frames according to the ising.OutputEncoder interface.
//
// Every visible spin is a square cell, white when it is surely up and black when it is surely down.
// The visible probabilities are drawn on the left. When a frame carries sampled spins, they are drawn
// on the right, one cell apart.
type Encoder struct {
	H, W int
	font.Drawer
	Cell  int // side of a spin's cell, in pixels
	Delay int // delay between frames, in 100ths of a second

	out *gif.GIF
	io.Writer
	face font.Face

	maxH, maxW  int // maxHeight and maxWidth
	padH, padW  int // padding so everything don't start at the topleft
	initialized bool
}

// NewGifEncoder with height and width
func NewGifEncoder(h, w int) *Encoder {
	return &Encoder{
		H:     -1,
		W:     -1,
		Cell:  12,
		Delay: 10,
		maxH:  h,
		maxW:  w,
		padH:  10,
		padW:  10,

		Drawer: font.Drawer{
			Src: image.Black,
		},
		out: &gif.GIF{LoopCount: 0},
	}
}

// Encode a frame
func (enc *Encoder) Encode(f ising.Frame) error {
	if f.Width <= 0 {
		return errors.Errorf("frame %d has a lattice width of %d", f.Step, f.Width)
	}
	dy := int(math.Ceil(fontsize * lineheight * dpi / 72))
	latticeW := f.Width * enc.Cell
	latticeH := f.Height() * enc.Cell
	spinsX := enc.padW + latticeW + enc.Cell

	if !enc.initialized {
		// lazy init of specifications
		enc.face = truetype.NewFace(regular, &truetype.Options{
			Size:    fontsize,
			DPI:     dpi,
			Hinting: font.HintingFull,
		})
		enc.Drawer.Src = image.Black
		enc.Drawer.Face = enc.face

		textW := font.MeasureString(enc.Face, dummyLongString).Ceil()
		w := maxInt(2*latticeW+enc.Cell, textW) + 2*enc.padW
		h := latticeH + (captionLines+1)*dy + 2*enc.padH

		w = minInt(w, enc.maxW)
		h = minInt(h, enc.maxH)

		if w == enc.maxW {
			enc.padW = 0
		}
		if h == enc.maxH {
			enc.padH = 0
		}

		enc.H = h
		enc.W = w
		enc.initialized = true
	}

	im := image.NewPaletted(image.Rect(0, 0, enc.W, enc.H), globPalette)
	draw.Draw(im, im.Bounds(), image.White, image.Point{}, draw.Src)

	if err := enc.drawLattice(im, f.Visible, f.Width, enc.padW); err != nil {
		return errors.Wrapf(err, "frame %d", f.Step)
	}
	if len(f.Spins) > 0 {
		occupations := ising.DecodeSpins(f.Spins, nil)
		if err := enc.drawLattice(im, occupations, f.Width, spinsX); err != nil {
			return errors.Wrapf(err, "spins of frame %d", f.Step)
		}
	}

	enc.Dst = im
	y := enc.padH + latticeH + dy
	for _, s := range []string{
		f.Name,
		fmt.Sprintf("Step %d", f.Step),
		fmt.Sprintf("M %.3f  E %.2f", f.Magnetization, f.Energy),
	} {
		enc.Dot = fixed.P(enc.padW, y)
		enc.DrawString(s)
		y += dy
	}

	enc.out.Image = append(enc.out.Image, im)
	enc.out.Delay = append(enc.out.Delay, enc.Delay)
	return nil
}

func (enc *Encoder) drawLattice(im draw.Image, a []float32, width, x0 int) error {
	lattice, err := ising.Lattice(a, width)
	if err != nil {
		return err
	}
	for i, row := range lattice {
		for j, p := range row {
			cell := image.Rect(0, 0, enc.Cell, enc.Cell).Add(image.Pt(x0+j*enc.Cell, enc.padH+i*enc.Cell))
			draw.Draw(im, cell, image.NewUniform(grey(p)), image.Point{}, draw.Src)
		}
	}
	return nil
}

// Flush writes the gif into the writer
func (enc *Encoder) Flush() error {
	if enc.Writer == nil {
		return errors.New("gif encoder has no writer")
	}
	return gif.EncodeAll(enc.Writer, enc.out)
}

// Frames is the number of frames encoded so far.
func (enc *Encoder) Frames() int { return len(enc.out.Image) }

func grey(p float32) color.Gray {
	switch {
	case p <= 0:
		return color.Gray{0}
	case p >= 1:
		return color.Gray{255}
	}
	return color.Gray{uint8(math.Round(float64(p) * 255))}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
