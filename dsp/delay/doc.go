// Package delay provides circular delay lines.
//
// [Line] is a single-channel buffer addressed in samples. [Variable] groups
// one Line per channel, addresses reads in seconds and is allocated once for
// a maximum delay, so reads and writes never allocate.
package delay
