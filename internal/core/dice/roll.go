// Package dice implements exploding dice with an optional wild die.
package dice

import (
	"math/rand"
	"strconv"
)

// WildFaces is the face count of the wild die, regardless of the primary die.
const WildFaces = 6

// DefaultExplosionLimit caps how many extra draws a single exploding chain may
// add. A fair die reaches it with negligible probability; a d1 or a source
// that always returns the maximum face reaches it every time.
const DefaultExplosionLimit = 1000

// Source is the randomness provider for dice rolls.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// NewSource returns a seeded source. Given the same seed, the same sequence
// of rolls is produced.
func NewSource(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// Outcome captures a single exploding roll with its optional wild die.
//
// Postcondition: Total == max(Base, Wild).
type Outcome struct {
	Total int
	// Base is the primary die result after explosions.
	Base int
	// Wild is the wild die result after explosions, or 0 when none was rolled.
	Wild int
	// Explosions counts the extra draws added across both dice.
	Explosions int
	// Capped reports that the explosion limit cut a chain short.
	Capped bool
}

// Option configures a Roller.
type Option func(*Roller)

// WithExplosionLimit sets the maximum number of extra draws per exploding
// chain. Zero or a negative value removes the limit.
func WithExplosionLimit(limit int) Option {
	return func(r *Roller) {
		if limit < 0 {
			limit = 0
		}
		r.limit = limit
	}
}

// Roller rolls exploding dice from a single Source. It is not safe for
// concurrent use.
type Roller struct {
	src   Source
	limit int
}

// NewRoller creates a roller that draws from src.
func NewRoller(src Source, opts ...Option) *Roller {
	r := &Roller{src: src, limit: DefaultExplosionLimit}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ExplosionLimit reports the configured limit, where 0 means unbounded.
func (r *Roller) ExplosionLimit() int {
	return r.limit
}

// Roll rolls an exploding die with the given faces and, when wild is set, a
// d6 wild die with the same explosion rule. The base chain is drawn before
// the wild chain.
//
// A die with fewer than one face is absent: it rolls 0 and draws nothing,
// and no wild die is rolled for it.
func (r *Roller) Roll(faces int, wild bool) Outcome {
	if faces < 1 {
		return Outcome{}
	}

	base := r.RollDie(faces)
	out := Outcome{
		Total:      base.Total,
		Base:       base.Total,
		Explosions: base.Explosions,
		Capped:     base.Capped,
	}
	if !wild {
		return out
	}

	w := r.RollDie(WildFaces)
	out.Wild = w.Total
	out.Explosions += w.Explosions
	out.Capped = out.Capped || w.Capped
	out.Total = max(out.Base, out.Wild)
	return out
}

// RollDie rolls a single exploding die without a wild die. Every time the
// most recent draw shows the maximum face another draw is added, until a
// lower face comes up or the explosion limit is reached.
func (r *Roller) RollDie(faces int) Outcome {
	if faces < 1 {
		return Outcome{}
	}

	draw := rollDie(r.src, faces)
	total := draw
	explosions := 0
	capped := false
	for draw == faces {
		if r.limit > 0 && explosions >= r.limit {
			capped = true
			break
		}
		draw = rollDie(r.src, faces)
		total += draw
		explosions++
	}

	return Outcome{
		Total:      total,
		Base:       total,
		Explosions: explosions,
		Capped:     capped,
	}
}

// Label names a die by its face count, such as "d8". A die with fewer than
// one face is absent and labelled "none".
func Label(faces int) string {
	if faces < 1 {
		return "none"
	}
	return "d" + strconv.Itoa(faces)
}

// rollDie rolls a single die with the provided number of sides.
func rollDie(src Source, sides int) int {
	return src.Intn(sides) + 1
}
