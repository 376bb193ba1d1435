package render

import (
	"bytes"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
)

const sampleRate = 44100

// Track is a looping mp3 backing the show's soundtrack.
type Track struct {
	player *audio.Player
}

// LoadTrack decodes the mp3 at path.
func LoadTrack(path string) (*Track, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read track: %w", err)
	}
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(sampleRate)
	}
	stream, err := mp3.DecodeWithSampleRate(ctx.SampleRate(), bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode track: %w", err)
	}
	player, err := ctx.NewPlayer(audio.NewInfiniteLoop(stream, stream.Length()))
	if err != nil {
		return nil, fmt.Errorf("create player: %w", err)
	}
	return &Track{player: player}, nil
}

func (t *Track) Rewind() error { return t.player.Rewind() }

func (t *Track) Play() error {
	t.player.Play()
	return nil
}

func (t *Track) Pause() error {
	t.player.Pause()
	return nil
}

func (t *Track) SetVolume(v float64) { t.player.SetVolume(v) }
