// Package typewriter cycles headline phrases one character at a time.
package typewriter

import (
	"time"

	"github.com/Zachkp/aurora-portfolio/internal/clock"
)

// Timing of the effect.
const (
	TypeDelay   = 100 * time.Millisecond
	DeleteDelay = 50 * time.Millisecond
	Hold        = 2 * time.Second
	Gap         = 500 * time.Millisecond
	FirstDelay  = time.Second
)

// Writer types and deletes phrases in a loop.
type Writer struct {
	clock    clock.Clock
	phrases  [][]rune
	index    int
	chars    int
	deleting bool
	timer    clock.Timer
	onChange func(text string)
}

// New returns a stopped writer over phrases.
func New(c clock.Clock, phrases []string) *Writer {
	w := &Writer{clock: c}
	for _, p := range phrases {
		w.phrases = append(w.phrases, []rune(p))
	}
	return w
}

// OnChange registers fn to receive the visible text after every step.
func (w *Writer) OnChange(fn func(text string)) { w.onChange = fn }

// Start begins typing after FirstDelay.
func (w *Writer) Start() {
	if len(w.phrases) == 0 || w.timer != nil {
		return
	}
	w.schedule(FirstDelay)
}

// Stop halts the effect, leaving the current text.
func (w *Writer) Stop() {
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

// Text returns the visible text.
func (w *Writer) Text() string {
	if len(w.phrases) == 0 {
		return ""
	}
	return string(w.phrases[w.index][:w.chars])
}

func (w *Writer) schedule(d time.Duration) {
	w.timer = w.clock.AfterFunc(d, w.step)
}

func (w *Writer) step() {
	current := w.phrases[w.index]
	if w.deleting {
		w.chars--
	} else {
		w.chars++
	}
	if w.onChange != nil {
		w.onChange(w.Text())
	}

	switch {
	case !w.deleting && w.chars == len(current):
		w.deleting = true
		w.schedule(Hold + Gap)
	case w.deleting && w.chars == 0:
		w.deleting = false
		w.index = (w.index + 1) % len(w.phrases)
		w.schedule(Gap)
	case w.deleting:
		w.schedule(DeleteDelay)
	default:
		w.schedule(TypeDelay)
	}
}
