// Package sanity implements a homebrew Sanity check for Savage Worlds and
// Realms of Cthulhu, replacing the Sanity statistic with an opposed roll.
//
// # Core Mechanics
//
// A Sanity check rolls an exploding Guts die, with a d6 wild die, against an
// exploding Mythos die without one, and subtracts a situation modifier:
//   - Net = Guts - Mythos - Modifier
//
// # Outcomes
//
// The net roll falls into exactly one of five bands:
//   - Raise (net >= 8): adrenaline surge; all Traits +1 for the encounter.
//   - Success (4..7): no effect.
//   - Positive failure (0..3): roll on the failure tables.
//   - Negative failure (-3..-1): roll on the failure tables at -1.
//   - Critical failure (net <= -4): roll on the failure tables at -2.
//
// # Simulation
//
// Simulate repeats a check a fixed number of times and tallies the outcomes,
// for balancing die sizes and modifiers. Given a roller seeded with the same
// seed, Check and Simulate produce identical results.
package sanity
