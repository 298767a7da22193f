// Package viewer hosts a tilt card in an ebiten window. Every ebiten update is
// one display refresh: the cursor is sampled, then pending animation frames run.
package viewer

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/sirupsen/logrus"

	"cardfx/internal/anim"
	"cardfx/internal/logging"
	"cardfx/internal/tilt"
)

// Options configures the window and card.
type Options struct {
	CardWidth  int
	CardHeight int
	Timing     anim.Timing
	Debug      bool // overlay the live tilt parameters
	Log        logrus.FieldLogger
}

// surface is the card's presentation target.
type surface struct {
	bounds   tilt.Bounds
	state    tilt.State
	attached bool
}

func (s *surface) Bounds() (tilt.Bounds, bool) { return s.bounds, s.attached }
func (s *surface) Apply(st tilt.State)         { s.state = st }

// Game implements ebiten.Game.
type Game struct {
	opts    Options
	loop    *anim.Loop
	card    *anim.Card
	hover   *anim.Hover
	surface *surface

	cardImg *ebiten.Image
	glare   *ebiten.Image
	avatar  *ebiten.Image

	screenW int
	screenH int
	mounted bool
}

// New builds a card around avatar (may be nil).
func New(avatar image.Image, opts Options) *Game {
	if opts.CardWidth <= 0 {
		opts.CardWidth = 320
	}
	if opts.CardHeight <= 0 {
		opts.CardHeight = 440
	}
	if opts.Timing == (anim.Timing{}) {
		opts.Timing = anim.DefaultTiming()
	}
	if opts.Log == nil {
		opts.Log = logging.Discard()
	}

	s := &surface{
		bounds:   tilt.Bounds{Width: float64(opts.CardWidth), Height: float64(opts.CardHeight)},
		attached: true,
	}
	loop := anim.NewLoop(nil)
	card := anim.NewCard(s, loop, anim.WithTiming(opts.Timing), anim.WithLogger(opts.Log))

	g := &Game{
		opts:    opts,
		loop:    loop,
		card:    card,
		hover:   anim.NewHover(card),
		surface: s,
		cardImg: ebiten.NewImage(opts.CardWidth, opts.CardHeight),
		glare:   ebiten.NewImage(opts.CardWidth, opts.CardHeight),
		screenW: opts.CardWidth * 2,
		screenH: opts.CardHeight + opts.CardHeight/2,
	}
	g.cardImg.Fill(color.NRGBA{R: 0x3b, G: 0x23, B: 0x6e, A: 0xff})
	g.glare.Fill(color.White)
	if avatar != nil {
		g.avatar = ebiten.NewImageFromImage(avatar)
	}
	return g
}

// Run opens the window and blocks until it is closed.
func (g *Game) Run(title string) error {
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(g.screenW, g.screenH)
	ebiten.SetTPS(60)

	err := ebiten.RunGame(g)
	g.surface.attached = false
	g.card.Unmount()
	return err
}

func (g *Game) origin() (float64, float64) {
	return float64(g.screenW-g.opts.CardWidth) / 2, float64(g.screenH-g.opts.CardHeight) / 2
}

func (g *Game) Update() error {
	if !g.mounted {
		if _, err := g.card.Mount(g.surface.bounds); err != nil {
			return err
		}
		g.mounted = true
	}

	cx, cy := ebiten.CursorPosition()
	ox, oy := g.origin()
	off := tilt.Offset{X: float64(cx) - ox, Y: float64(cy) - oy}
	if err := g.hover.Sample(off, g.surface.bounds); err != nil {
		return err
	}

	g.loop.Tick(time.Now())
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.NRGBA{R: 0x12, G: 0x10, B: 0x1c, A: 0xff})

	st := g.surface.state
	w, h := g.surface.bounds.Width, g.surface.bounds.Height
	ox, oy := g.origin()

	cardGeo := cardGeoM(st, w, h)
	cardGeo.Translate(ox+w/2, oy+h/2)

	op := &ebiten.DrawImageOptions{GeoM: cardGeo}
	screen.DrawImage(g.cardImg, op)

	if g.avatar != nil {
		ab := g.avatar.Bounds()
		fit := math.Min(w/float64(ab.Dx()), h/float64(ab.Dy())) * 0.8
		// Parallax: the avatar drifts against the tilt inside the card.
		px := (st.BackgroundX - 50) / 100 * w * 0.3
		py := (st.BackgroundY - 50) / 100 * h * 0.3

		aop := &ebiten.DrawImageOptions{}
		aop.GeoM.Scale(fit, fit)
		aop.GeoM.Translate((w-float64(ab.Dx())*fit)/2-px, (h-float64(ab.Dy())*fit)/2-py)
		aop.GeoM.Concat(cardGeo)
		aop.Filter = ebiten.FilterLinear
		screen.DrawImage(g.avatar, aop)
	}

	gop := &ebiten.DrawImageOptions{GeoM: cardGeo}
	gop.ColorScale.ScaleAlpha(float32(0.05 + 0.2*st.PointerFromCenter))
	screen.DrawImage(g.glare, gop)

	if g.opts.Debug {
		ebitenutil.DebugPrint(screen, fmt.Sprintf(
			"rotate-x %.3f  rotate-y %.3f\npointer %.3f%% %.3f%%\nfrom-center %.3f\nframes pending %d",
			st.RotateX, st.RotateY, st.PercentX, st.PercentY, st.PointerFromCenter, g.loop.Pending()))
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenW, g.screenH
}

// cardGeoM maps card-local pixels to a plane centered on the origin and
// approximates the 3D tilt with foreshortening and a slight skew.
func cardGeoM(st tilt.State, w, h float64) ebiten.GeoM {
	ry := st.RotateX * math.Pi / 180 // --rotate-x turns the card around its vertical axis
	rx := st.RotateY * math.Pi / 180

	var geo ebiten.GeoM
	geo.Translate(-w/2, -h/2)
	geo.Scale(math.Cos(ry), math.Cos(rx))
	geo.Skew(-math.Sin(rx)*0.25, math.Sin(ry)*0.25)
	return geo
}
