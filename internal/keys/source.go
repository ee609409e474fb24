package keys

import "errors"

// ErrSourceNotStarted is returned when a source is queried before it is running.
var ErrSourceNotStarted = errors.New("key state source not started")

// Source reports the keys held at the moment of the call.
type Source interface {
	HeldKeys() (Set, error)
}

// SourceFunc adapts a function literal to the Source interface.
type SourceFunc func() (Set, error)

// HeldKeys calls the underlying function.
func (f SourceFunc) HeldKeys() (Set, error) {
	return f()
}

// StaticSource replays a fixed list of samples, one per call. Once the list
// is exhausted the last sample repeats. An empty list yields empty sets.
type StaticSource struct {
	samples []Set
	next    int
}

// NewStaticSource returns a source that replays samples in order.
func NewStaticSource(samples ...Set) *StaticSource {
	return &StaticSource{samples: samples}
}

func (s *StaticSource) HeldKeys() (Set, error) {
	if len(s.samples) == 0 {
		return Set{}, nil
	}
	idx := s.next
	if idx >= len(s.samples) {
		idx = len(s.samples) - 1
	} else {
		s.next++
	}
	return s.samples[idx].Clone(), nil
}
