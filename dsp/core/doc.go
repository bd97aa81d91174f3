// Package core holds numeric helpers and the processor configuration shared
// by the fatten DSP packages.
package core
