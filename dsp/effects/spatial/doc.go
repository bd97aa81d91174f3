// Package spatial provides reusable non-I/O stereo image effects.
//
// Included processors:
//   - Fatten: cross-channel delayed mixing that widens a mono or narrow
//     stereo source. Parameters are published as lock-free snapshots so
//     control goroutines can move them while audio is running.
package spatial
