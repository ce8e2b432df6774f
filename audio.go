package willowxr

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
)

// AudioSink is a fire-and-forget sound trigger attached to a leaf. Play must
// not block. A sink that is not yet playable treats Play as a no-op.
type AudioSink interface {
	Play()
}

// SinkFunc adapts an ordinary function to AudioSink.
type SinkFunc func()

// Play calls f.
func (f SinkFunc) Play() { f() }

// voice is one playback channel. *audio.Player satisfies it.
type voice interface {
	Play()
	IsPlaying() bool
	Rewind() error
}

// defaultPolyphony is the voice count used when a Sound is created with a
// non-positive polyphony.
const defaultPolyphony = 1

// Sound is a polyphonic AudioSink over Ebitengine audio players. Its PCM
// buffer arrives asynchronously through SetBuffer; until then Play does
// nothing. When all voices are busy, the oldest one is restarted.
//
// Sound is the one type in the package that is safe for concurrent use: a
// loader goroutine may call SetBuffer while the frame loop calls Play.
type Sound struct {
	mu        sync.Mutex
	newVoice  func(pcm []byte) voice
	pcm       []byte
	voices    []voice
	oldest    int
	polyphony int
	err       error
}

// NewSound creates an empty Sound that will play through ctx. polyphony is
// the number of overlapping plays allowed.
func NewSound(ctx *audio.Context, polyphony int) *Sound {
	return newSound(func(pcm []byte) voice {
		return ctx.NewPlayerFromBytes(pcm)
	}, polyphony)
}

func newSound(newVoice func([]byte) voice, polyphony int) *Sound {
	if polyphony <= 0 {
		polyphony = defaultPolyphony
	}
	return &Sound{newVoice: newVoice, polyphony: polyphony}
}

// SetBuffer installs decoded 16-bit little-endian stereo PCM at the audio
// context's sample rate. Voices created for an earlier buffer are dropped.
func (s *Sound) SetBuffer(pcm []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pcm = pcm
	s.voices = s.voices[:0]
	s.oldest = 0
}

// Ready reports whether a buffer has been installed.
func (s *Sound) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pcm != nil
}

// Err returns the error that stopped an asynchronous load, if any.
func (s *Sound) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Play starts the sound on an idle voice, creating one while under the
// polyphony limit, or restarts the oldest voice. Play before the buffer is
// ready is a no-op.
func (s *Sound) Play() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pcm == nil {
		return
	}
	for _, v := range s.voices {
		if !v.IsPlaying() {
			restart(v)
			return
		}
	}
	if len(s.voices) < s.polyphony {
		v := s.newVoice(s.pcm)
		s.voices = append(s.voices, v)
		v.Play()
		return
	}
	v := s.voices[s.oldest]
	s.oldest = (s.oldest + 1) % len(s.voices)
	restart(v)
}

func restart(v voice) {
	if err := v.Rewind(); err != nil {
		logf("sound: rewind: %v", err)
		return
	}
	v.Play()
}

func (s *Sound) fail(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
	logf("sound: %v", err)
}

// LoadSound returns a Sound immediately and decodes the Ogg Vorbis stream r
// in the background, installing the buffer when decoding finishes. The sink
// stays silent if decoding fails or ctx is cancelled first; the failure is
// logged and available from Err.
func LoadSound(ctx context.Context, actx *audio.Context, r io.Reader, polyphony int) *Sound {
	s := NewSound(actx, polyphony)
	go s.load(ctx, actx.SampleRate(), r)
	return s
}

// load decodes r and installs the result unless ctx ended first.
func (s *Sound) load(ctx context.Context, sampleRate int, r io.Reader) {
	pcm, err := decodeVorbis(sampleRate, r)
	if err != nil {
		s.fail(err)
		return
	}
	select {
	case <-ctx.Done():
		s.fail(fmt.Errorf("load sound: %w", ctx.Err()))
	default:
		s.SetBuffer(pcm)
	}
}

// decodeVorbis decodes an Ogg Vorbis stream to 16-bit stereo PCM resampled
// to sampleRate.
func decodeVorbis(sampleRate int, r io.Reader) ([]byte, error) {
	stream, err := vorbis.DecodeWithSampleRate(sampleRate, r)
	if err != nil {
		return nil, fmt.Errorf("decode vorbis: %w", err)
	}
	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("read vorbis: %w", err)
	}
	return pcm, nil
}
