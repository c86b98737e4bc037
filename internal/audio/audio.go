// Package audio plays QOA music in the background.
package audio

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/braheezy/qoa"
	"github.com/ebitengine/oto/v3"
)

type Player struct {
	ctx *oto.Context
}

// NewPlayer prepares an Oto context on the default audio device.
func NewPlayer() (*Player, error) {
	ctx, ready, err := oto.NewContext(
		&oto.NewContextOptions{
			// Typically 44100 or 48000, we could get it from a QOA file but we'd have to decode one.
			SampleRate: 44100,
			// only 1 or 2 are supported by oto
			ChannelCount: 2,
			// QOA is always 16 bit
			Format: oto.FormatSignedInt16LE,
		})
	if err != nil {
		return nil, fmt.Errorf("failed to open audio device: %w", err)
	}
	// Wait for the audio context to be ready
	<-ready
	return &Player{ctx: ctx}, nil
}

// Decode reads a QOA file into a seekable PCM stream.
func Decode(path string) (io.ReadSeeker, error) {
	qoaBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read QOA file: %w", err)
	}
	metadata, samples, err := qoa.Decode(qoaBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to decode QOA file %s: %w", path, err)
	}
	return qoa.NewReader(samples, int(metadata.Channels)), nil
}

// Loop plays the QOA file at path from the start whenever it finishes, until ctx is done.
func (p *Player) Loop(ctx context.Context, path string) error {
	reader, err := Decode(path)
	if err != nil {
		return err
	}
	player := p.ctx.NewPlayer(reader)

	go func() {
		defer player.Close()
		// Poll briefly to avoid busy-waiting
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		player.Play()
		for {
			select {
			case <-ctx.Done():
				player.Pause()
				return
			case <-ticker.C:
				if !player.IsPlaying() {
					// Rewind the song to the beginning
					if _, err := reader.Seek(0, io.SeekStart); err != nil {
						return
					}
					player.Play()
				}
			}
		}
	}()
	return nil
}
