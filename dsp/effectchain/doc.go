// Package effectchain hosts stereo effect runtimes behind a small control
// surface: an explicit audio Context, a Params bag keyed by parameter name,
// a Registry of effect factories, a linear Chain, and Slider controls.
//
// Nothing in this package is global. Hosts create a Context and a Registry
// and pass them to New.
package effectchain
