// Package render draws a session with ebiten and feeds it mouse, touch and
// keyboard input.
package render

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"

	"github.com/Zachkp/aurora-portfolio/internal/engagement"
	"github.com/Zachkp/aurora-portfolio/internal/hud"
	"github.com/Zachkp/aurora-portfolio/internal/particle"
	"github.com/Zachkp/aurora-portfolio/internal/session"
	"github.com/Zachkp/aurora-portfolio/internal/theme"
)

var (
	pageTarget    = engagement.Target{Tags: []string{"section", "main", "body"}}
	controlTarget = engagement.Target{Tags: []string{"button"}}
	panelTarget   = engagement.Target{Classes: []string{"fireworks-notification"}}
)

// Game adapts a session to ebiten.Game.
type Game struct {
	session *session.Session
	log     *zap.Logger
	theme   theme.Theme
	bg      color.Color
	fg      color.Color

	width, height int
	touches       []ebiten.TouchID
	debug         bool
}

// NewGame returns a game drawing s in theme t.
func NewGame(s *session.Session, t theme.Theme, log *zap.Logger) *Game {
	if log == nil {
		log = zap.NewNop()
	}
	w, h := s.Size()
	g := &Game{session: s, log: log, width: int(w), height: int(h)}
	g.setTheme(t)
	return g
}

// Run opens a resizable window and blocks until it closes.
func Run(g *Game, title string) error {
	ebiten.SetWindowSize(g.width, g.height)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}

func (g *Game) setTheme(t theme.Theme) {
	g.theme = t
	palette := t.Palette()
	g.bg = toColor(particle.Hex(palette["--cosmic-dark"]), 1)
	g.fg = toColor(particle.Hex(palette["--text-primary"]), 1)
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	s := g.session

	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)
	s.MouseMove(x, y)

	layout := hud.Build(s)
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.press(layout, x, y)
	}
	g.touches = inpututil.AppendJustPressedTouchIDs(g.touches[:0])
	for _, id := range g.touches {
		tx, ty := ebiten.TouchPosition(id)
		g.press(layout, float64(tx), float64(ty))
	}
	s.Cursor().Press(ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
	s.Cursor().Hover(layout.Hit(x, y) != hud.None || layout.OnPanel(x, y))

	g.keys()
	s.Tick(time.Second / time.Duration(ebiten.TPS()))
	return nil
}

func (g *Game) press(l hud.Layout, x, y float64) {
	if c := l.Hit(x, y); c != hud.None {
		g.log.Debug("hud control", zap.Stringer("control", c))
		hud.Apply(g.session, c)
		g.session.Pointer(x, y, controlTarget)
		return
	}
	if l.OnPanel(x, y) {
		g.session.Pointer(x, y, panelTarget)
		return
	}
	g.session.Pointer(x, y, pageTarget)
}

func (g *Game) keys() {
	s := g.session
	for key, k := range map[ebiten.Key]session.Key{
		ebiten.KeyEscape:    session.KeyEscape,
		ebiten.KeySpace:     session.KeySpace,
		ebiten.KeyArrowUp:   session.KeyUp,
		ebiten.KeyArrowDown: session.KeyDown,
	} {
		if inpututil.IsKeyJustPressed(key) {
			s.Key(k)
		}
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		hud.Apply(s, hud.SoundToggle)
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual), inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd):
		hud.Apply(s, hud.VolumeUp)
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus), inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract):
		hud.Apply(s, hud.VolumeDown)
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		hud.Apply(s, hud.StartNow)
	case inpututil.IsKeyJustPressed(ebiten.KeyT):
		g.setTheme(g.theme.Toggle())
	case inpututil.IsKeyJustPressed(ebiten.KeyF3):
		g.debug = !g.debug
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.bg)
	s := g.session
	now := s.Clock().Now()

	s.Ambient().Arena().Each(func(e *particle.Entity) { drawEntity(screen, e, now) })
	s.Engine().Arena().Each(func(e *particle.Entity) { drawEntity(screen, e, now) })
	g.drawCursor(screen)
	g.drawHUD(screen, hud.Build(s))

	ebitenutil.DebugPrintAt(screen, "> "+s.Headline()+"_", 20, 20)
	ebitenutil.DebugPrintAt(screen, "#"+s.Sections().Current(), 20, 40)
	if g.debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TPS %0.1f  profile %s  show %d  ambient %d  launched %d",
			ebiten.ActualTPS(), s.Profile().Name, s.Engine().Arena().Len(), s.Ambient().Arena().Len(),
			s.Engine().Launched()), 20, g.height-30)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.session.Resize(float64(outsideWidth), float64(outsideHeight))
	}
	return outsideWidth, outsideHeight
}

func drawEntity(screen *ebiten.Image, e *particle.Entity, now time.Time) {
	if !e.Started(now) {
		return
	}
	a := e.Alpha(now)
	if a <= 0 {
		return
	}
	pos := e.Position(now)
	c := toColor(e.Color, a)
	x, y := float32(pos.X), float32(pos.Y)

	switch e.Kind {
	case particle.Rocket:
		tail := pos.Sub(e.Target.Sub(e.Origin).Scale(0.05))
		vector.StrokeLine(screen, x, y, float32(tail.X), float32(tail.Y), 2, c, true)
		vector.DrawFilledCircle(screen, x, y, float32(e.Size/2), c, true)
	case particle.Flash:
		r := e.Size * (1 + 3*e.Progress(now))
		vector.DrawFilledCircle(screen, x, y, float32(r), c, true)
	case particle.ShootingStar, particle.Meteor:
		tail := pos.Sub(particle.Polar(e.Angle*math.Pi/180, e.Length))
		vector.StrokeLine(screen, x, y, float32(tail.X), float32(tail.Y), float32(max(1, e.Size/2)), c, true)
		vector.DrawFilledCircle(screen, x, y, float32(e.Size/2), c, true)
	case particle.Banner:
		ebitenutil.DebugPrintAt(screen, e.Label, int(pos.X)-len(e.Label)*3, int(pos.Y))
	default:
		vector.DrawFilledCircle(screen, x, y, float32(max(0.5, e.Size/2)), c, true)
	}
}

func (g *Game) drawCursor(screen *ebiten.Image) {
	f := g.session.Cursor()
	if !f.Enabled() {
		return
	}
	trail, circle, p := f.Trail(), f.Circle(), f.Pointer()
	vector.StrokeCircle(screen, float32(trail.X), float32(trail.Y), float32(f.TrailSize()/2), 1,
		color.NRGBA{R: 0x63, G: 0x66, B: 0xf1, A: 0x66}, true)
	vector.StrokeCircle(screen, float32(circle.X), float32(circle.Y), float32(f.CircleSize()/2), 2,
		color.NRGBA{R: 0x22, G: 0xd3, B: 0xee, A: 0xcc}, true)

	// Triangle pointing along the rotation.
	size := 8 * f.TriangleScale()
	rad := (f.Rotation() - 90) * math.Pi / 180
	tip := p.Add(particle.Polar(rad, size))
	left := p.Add(particle.Polar(rad+2.5, size*0.7))
	right := p.Add(particle.Polar(rad-2.5, size*0.7))
	vs := []ebiten.Vertex{vertex(tip), vertex(left), vertex(right)}
	screen.DrawTriangles(vs, []uint16{0, 1, 2}, whitePixel, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

func vertex(v particle.Vec) ebiten.Vertex {
	return ebiten.Vertex{
		DstX: float32(v.X), DstY: float32(v.Y),
		SrcX: 1, SrcY: 1,
		ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1,
	}
}

var whitePixel = func() *ebiten.Image {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}()

func (g *Game) drawHUD(screen *ebiten.Image, l hud.Layout) {
	if p := l.Panel; p != nil {
		r := p.Rect
		vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H),
			color.NRGBA{R: 0x0a, G: 0x0a, B: 0x1a, A: 0xdd}, true)
		vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), 1,
			color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x33}, true)
		for i, line := range p.Lines {
			ebitenutil.DebugPrintAt(screen, line, int(r.X)+20, int(r.Y)+16+i*20)
		}
		if p.Progress > 0 {
			vector.DrawFilledRect(screen, float32(r.X+20), float32(r.Y+62), float32((r.W-40)*p.Progress), 6,
				color.NRGBA{R: 0xff, G: 0xd7, B: 0x00, A: 0xff}, true)
		}
	}
	for _, b := range l.Buttons {
		r := b.Rect
		vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), 1, g.fg, true)
		ebitenutil.DebugPrintAt(screen, b.Label, int(r.X)+6, int(r.Y+r.H/2)-8)
	}
}

func toColor(c particle.Color, alpha float64) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(math.Round(max(0, min(1, alpha)) * 255))}
}
