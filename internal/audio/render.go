package audio

import (
	"bytes"
	"fmt"
	"math"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
)

const (
	resampleQuality = 4
	streamChunk     = 512
	bytesPerSample  = 4 // float32 LE
)

// Params shape one playback: Speed scales rate and pitch together, Gain is a
// linear amplitude factor.
type Params struct {
	Speed float64
	Gain  float64
}

// Render decodes a and produces interleaved float32 LE frames at outRate with
// the given channel count, sped up and amplified according to p.
func Render(a Asset, p Params, outRate, channels int) ([]byte, error) {
	if p.Speed <= 0 || math.IsNaN(p.Speed) || math.IsInf(p.Speed, 0) {
		return nil, fmt.Errorf("%w: invalid speed %g", ErrPlayback, p.Speed)
	}
	if outRate <= 0 || channels < 1 || channels > 2 {
		return nil, fmt.Errorf("%w: invalid output format %d Hz x %d", ErrPlayback, outRate, channels)
	}

	src, srcRate, err := decode(a)
	if err != nil {
		return nil, err
	}

	ratio := p.Speed * float64(srcRate) / float64(outRate)
	var s beep.Streamer = beep.ResampleRatio(resampleQuality, ratio, src)
	s = &effects.Gain{Streamer: s, Gain: p.Gain - 1}

	frameSize := channels * bytesPerSample
	estimate := int(float64(src.Len())/ratio) + streamChunk
	out := make([]byte, 0, estimate*frameSize)

	chunk := make([][2]float64, streamChunk)
	frame := make([]byte, frameSize)
	for {
		n, ok := s.Stream(chunk)
		for i := 0; i < n; i++ {
			putFrameF32(frame, chunk[i][0], chunk[i][1], channels)
			out = append(out, frame...)
		}
		if !ok || n == 0 {
			break
		}
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecode, a.Name, err)
	}
	return out, nil
}

func decode(a Asset) (*pcmStreamer, int, error) {
	dec := wav.NewDecoder(bytes.NewReader(a.data))
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("%w: %s: not a wav file", ErrDecode, a.Name)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %s: %v", ErrDecode, a.Name, err)
	}
	if buf.Format == nil || buf.Format.NumChannels <= 0 || buf.Format.SampleRate <= 0 {
		return nil, 0, fmt.Errorf("%w: %s: missing format", ErrDecode, a.Name)
	}
	depth := buf.SourceBitDepth
	if depth == 0 {
		depth = int(dec.BitDepth)
	}
	if depth <= 0 || depth > 32 {
		return nil, 0, fmt.Errorf("%w: %s: unsupported bit depth %d", ErrDecode, a.Name, depth)
	}
	if len(buf.Data) < buf.Format.NumChannels {
		return nil, 0, fmt.Errorf("%w: %s: no samples", ErrDecode, a.Name)
	}
	return newPCMStreamer(buf, depth), buf.Format.SampleRate, nil
}

// pcmStreamer feeds a decoded integer buffer into a beep pipeline. Mono
// sources are copied to both channels; extra channels beyond two are ignored.
type pcmStreamer struct {
	data     []int
	channels int
	scale    float64
	pos      int
}

func newPCMStreamer(buf *goaudio.IntBuffer, depth int) *pcmStreamer {
	return &pcmStreamer{
		data:     buf.Data,
		channels: buf.Format.NumChannels,
		scale:    float64(int64(1) << (depth - 1)),
	}
}

// Len is the number of frames in the source.
func (p *pcmStreamer) Len() int { return len(p.data) / p.channels }

func (p *pcmStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	for n < len(samples) && p.pos+p.channels <= len(p.data) {
		l := float64(p.data[p.pos]) / p.scale
		r := l
		if p.channels > 1 {
			r = float64(p.data[p.pos+1]) / p.scale
		}
		samples[n][0], samples[n][1] = l, r
		p.pos += p.channels
		n++
	}
	return n, n > 0
}

func (p *pcmStreamer) Err() error { return nil }

// putFrameF32 writes one frame of [-1,1] samples as float32 LE. Mono output
// averages both channels.
func putFrameF32(buf []byte, left, right float64, channels int) {
	if channels == 1 {
		putF32(buf, clampF((left+right)/2, -1, 1))
		return
	}
	putF32(buf, clampF(left, -1, 1))
	putF32(buf[bytesPerSample:], clampF(right, -1, 1))
}

func putF32(buf []byte, sample float64) {
	v := math.Float32bits(float32(sample))
	buf[0] = byte(v)
	buf[1] = byte(v >> 8)
	buf[2] = byte(v >> 16)
	buf[3] = byte(v >> 24)
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
