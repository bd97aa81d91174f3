// Package interp provides the fractional interpolation primitives used by
// the delay lines.
//
// Available methods, from cheapest to highest quality:
//
//   - [Linear2]:  2-point linear interpolation
//   - [Hermite4]: 4-point cubic Hermite (default)
//
// The [Mode] enum selects the algorithm at delay-line construction time.
package interp
