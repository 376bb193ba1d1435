// Package hud lays out the overlay panels and controls drawn over the show
// and maps pointer hits back to session actions.
package hud

import (
	"fmt"

	"github.com/Zachkp/aurora-portfolio/internal/audio"
	"github.com/Zachkp/aurora-portfolio/internal/fireworks"
	"github.com/Zachkp/aurora-portfolio/internal/panel"
	"github.com/Zachkp/aurora-portfolio/internal/session"
)

// Control is a clickable HUD element.
type Control int

const (
	None Control = iota
	SoundToggle
	VolumeUp
	VolumeDown
	StartNow
	CloseTutorial
	CloseCounter
	StopShow
	Restart
	CloseEnded
)

func (c Control) String() string {
	return [...]string{"none", "sound", "volume-up", "volume-down", "start-now",
		"close-tutorial", "close-counter", "stop", "restart", "close-ended"}[c]
}

// Rect is an axis-aligned box in viewport pixels.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Button is a labelled control.
type Button struct {
	Control Control
	Label   string
	Rect    Rect
}

// Panel is the visible notification with its text and buttons.
type Panel struct {
	Kind    panel.Kind
	Rect    Rect
	Lines   []string
	Buttons []Button
	// Progress is the counter fill in [0, 1].
	Progress float64
}

const (
	panelWidth  = 320.0
	panelHeight = 120.0
	panelTop    = 80.0
	soundSize   = 50.0
	volumeSize  = 32.0
)

var soundLabels = map[audio.Icon]string{
	audio.IconMuted: "OFF",
	audio.IconLow:   "LOW",
	audio.IconHigh:  "HIGH",
}

// Layout is everything the HUD shows for one frame.
type Layout struct {
	Panel   *Panel
	Sound   Button
	Volume  []Button
	Buttons []Button
}

// Build computes the HUD for the session's current state.
func Build(s *session.Session) Layout {
	w, h := s.Size()
	bottom := s.Panels().SoundToggleBottom()
	sound := Rect{X: w - 20 - soundSize, Y: h - bottom - soundSize, W: soundSize, H: soundSize}

	l := Layout{
		Sound: Button{Control: SoundToggle, Label: soundLabels[s.Audio().Icon()], Rect: sound},
		Volume: []Button{
			{Control: VolumeUp, Label: "+", Rect: Rect{X: sound.X - 40, Y: sound.Y + 9, W: volumeSize, H: volumeSize}},
			{Control: VolumeDown, Label: "-", Rect: Rect{X: sound.X - 80, Y: sound.Y + 9, W: volumeSize, H: volumeSize}},
		},
	}
	l.Buttons = append(l.Buttons, l.Sound)
	l.Buttons = append(l.Buttons, l.Volume...)

	k, ok := s.Panels().Current()
	if !ok {
		return l
	}
	box := Rect{X: (w - panelWidth) / 2, Y: panelTop, W: panelWidth, H: panelHeight}
	if k == panel.Active {
		box.Y = h - session.PanelMargin - session.ActivePanelHeight
		box.H = session.ActivePanelHeight
	}
	p := &Panel{Kind: k, Rect: box}
	counter := s.Counter()
	switch k {
	case panel.Tutorial:
		p.Lines = []string{
			"Secret Fireworks",
			fmt.Sprintf("Click anywhere %d times quickly to launch a show!", counter.Threshold()),
		}
		p.Buttons = twoButtons(box, StartNow, "Start now", CloseTutorial, "Got it")
	case panel.Counter:
		p.Lines = []string{
			"Fireworks Progress",
			fmt.Sprintf("%d / %d", counter.Count(), counter.Threshold()),
		}
		p.Progress = counter.Progress()
		p.Buttons = twoButtons(box, StartNow, "Start now", CloseCounter, "Close")
	case panel.Active:
		p.Lines = []string{
			"Fireworks Show Active",
			fmt.Sprintf("%ds remaining", s.Engine().Remaining()),
		}
		p.Buttons = []Button{{Control: StopShow, Label: "Stop", Rect: Rect{X: box.X + 20, Y: box.Y + 80, W: 130, H: 28}}}
	case panel.Ended:
		p.Lines = []string{
			"Show Complete!",
			"Thanks for watching.",
		}
		p.Buttons = twoButtons(box, Restart, "Again", CloseEnded, "Close")
	}
	l.Panel = p
	l.Buttons = append(l.Buttons, p.Buttons...)
	return l
}

func twoButtons(box Rect, a Control, al string, b Control, bl string) []Button {
	return []Button{
		{Control: a, Label: al, Rect: Rect{X: box.X + 20, Y: box.Y + 80, W: 130, H: 28}},
		{Control: b, Label: bl, Rect: Rect{X: box.X + 170, Y: box.Y + 80, W: 130, H: 28}},
	}
}

// Hit returns the control under (x, y).
func (l Layout) Hit(x, y float64) Control {
	for _, b := range l.Buttons {
		if b.Rect.Contains(x, y) {
			return b.Control
		}
	}
	return None
}

// OnPanel reports whether (x, y) lands on the visible panel.
func (l Layout) OnPanel(x, y float64) bool {
	return l.Panel != nil && l.Panel.Rect.Contains(x, y)
}

// Apply performs the action bound to c.
func Apply(s *session.Session, c Control) {
	switch c {
	case SoundToggle:
		s.Audio().ToggleMute()
	case VolumeUp:
		s.Audio().Up()
	case VolumeDown:
		s.Audio().Down()
	case StartNow:
		s.Counter().StartNow()
	case CloseTutorial:
		s.Counter().CloseTutorial()
	case CloseCounter:
		s.Counter().CloseCounter()
	case StopShow:
		s.Engine().Stop(fireworks.ReasonManual)
	case Restart:
		s.Counter().Restart()
	case CloseEnded:
		s.Panels().Hide(panel.Ended)
	}
}
