package effectchain

// Runtime is the per-node processing and configuration contract.
//
// Configure may be called from a control goroutine while ProcessStereo runs
// on the audio goroutine; implementations publish parameter changes
// atomically. Reset is only called while processing is stopped.
type Runtime interface {
	Configure(ctx Context, params Params) error
	ProcessStereo(left, right []float64) error
	Reset()
}
