package random

import "fmt"

// Scripted replays a fixed sequence of draws. It panics when the script runs
// out or a value falls outside the requested range, which surfaces test
// mistakes at the draw that caused them.
type Scripted struct {
	values []int
	next   int
}

// NewScripted returns a Source that yields values in order.
func NewScripted(values ...int) *Scripted {
	return &Scripted{values: append([]int(nil), values...)}
}

// Between implements Source.
func (s *Scripted) Between(lo, hi int) int {
	if s.next >= len(s.values) {
		panic(fmt.Sprintf("random: script exhausted after %d draws (want [%d,%d])", len(s.values), lo, hi))
	}
	v := s.values[s.next]
	if v < lo || v > hi {
		panic(fmt.Sprintf("random: scripted draw %d is %d, outside [%d,%d]", s.next, v, lo, hi))
	}
	s.next++
	return v
}

// Remaining reports how many scripted draws are left.
func (s *Scripted) Remaining() int {
	return len(s.values) - s.next
}
