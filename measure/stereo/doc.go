// Package stereo measures the stereo image of a left/right signal pair.
//
// Correlation reports the zero-lag Pearson coefficient between channels,
// SideMidRatio compares side (L-R) energy to mid (L+R) energy, and
// CrossCorrelationLag finds the inter-channel delay with an FFT
// cross-correlation. Analyze combines them into a Report.
//
// A widened signal typically shows lower correlation and a higher
// side/mid ratio than its source, and a cross-fed delay shows up as a
// non-zero lag.
package stereo
