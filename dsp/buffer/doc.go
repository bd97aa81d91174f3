// Package buffer provides a reusable stereo block type and pool for
// allocation-friendly processing. Processors accept raw []float64 slices;
// Stereo keeps a left/right pair together and converts to and from
// interleaved and mono layouts.
package buffer
