// Package dicetest provides scripted dice sources for deterministic tests.
package dicetest

import "fmt"

// Sequence is a dice.Source that returns scripted face values in order.
// Faces are 1-based: a scripted 6 makes Intn(n) return 5.
type Sequence struct {
	faces []int
	pos   int
	// Calls records the n passed to every Intn call.
	Calls []int
}

// NewSequence creates a source that yields the given faces in order.
func NewSequence(faces ...int) *Sequence {
	return &Sequence{faces: faces}
}

// Intn returns the next scripted face minus one. It panics when the script
// is exhausted or a face does not fit a die of n sides, so a test that draws
// more than it planned fails loudly.
func (s *Sequence) Intn(n int) int {
	if s.pos >= len(s.faces) {
		panic(fmt.Sprintf("dicetest: sequence exhausted after %d draws", s.pos))
	}
	face := s.faces[s.pos]
	if face < 1 || face > n {
		panic(fmt.Sprintf("dicetest: face %d at draw %d out of range for d%d", face, s.pos, n))
	}
	s.pos++
	s.Calls = append(s.Calls, n)
	return face - 1
}

// Remaining reports how many scripted faces have not been drawn.
func (s *Sequence) Remaining() int {
	return len(s.faces) - s.pos
}

// Max is a dice.Source that always returns the maximum face.
type Max struct {
	// Draws counts Intn calls.
	Draws int
}

// Intn returns n-1.
func (m *Max) Intn(n int) int {
	m.Draws++
	return n - 1
}
