package audio

import "errors"

var (
	// ErrDeviceInit means no usable output device could be opened.
	ErrDeviceInit = errors.New("audio device init failed")
	// ErrDecode means an asset could not be decoded into samples.
	ErrDecode = errors.New("audio decode failed")
	// ErrPlayback means the backend refused or failed to start a sound.
	ErrPlayback = errors.New("audio playback failed")
	// ErrBusy means the concurrent sound limit was reached and the sound was dropped.
	ErrBusy = errors.New("too many sounds playing")
)
