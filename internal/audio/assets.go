package audio

import (
	"bytes"
	"embed"
	"fmt"

	"github.com/go-audio/wav"
)

//go:embed sounds/*.wav
var soundFiles embed.FS

// Asset is an encoded sound clip. It is decoded again on every play and is
// safe to share between goroutines.
type Asset struct {
	Name string
	data []byte
}

// NewAsset wraps encoded WAV bytes.
func NewAsset(name string, data []byte) Asset {
	return Asset{Name: name, data: data}
}

// Len is the encoded size in bytes.
func (a Asset) Len() int { return len(a.data) }

// Assets are the three bundled clips.
type Assets struct {
	Press   Asset
	Release Asset
	Toggle  Asset
}

// LoadAssets reads the embedded clips and checks that each one is a WAV file
// the decoder understands.
func LoadAssets() (Assets, error) {
	var out Assets
	for _, item := range []struct {
		name string
		dst  *Asset
	}{
		{"press", &out.Press},
		{"release", &out.Release},
		{"toggle", &out.Toggle},
	} {
		data, err := soundFiles.ReadFile("sounds/" + item.name + ".wav")
		if err != nil {
			return Assets{}, fmt.Errorf("read %s sound: %w", item.name, err)
		}
		if !wav.NewDecoder(bytes.NewReader(data)).IsValidFile() {
			return Assets{}, fmt.Errorf("%w: %s sound is not a valid wav file", ErrDecode, item.name)
		}
		*item.dst = NewAsset(item.name, data)
	}
	return out, nil
}
