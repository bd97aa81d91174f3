package main

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/cwbudde/algo-fatten/dsp/buffer"
	"github.com/cwbudde/algo-fatten/dsp/core"
	"github.com/cwbudde/algo-fatten/dsp/effectchain"
	"github.com/cwbudde/algo-fatten/dsp/effects/spatial"
	"github.com/cwbudde/algo-fatten/internal/session"
	"github.com/cwbudde/algo-fatten/measure/stereo"
)

const fattenNodeID = "fatten"

// render plays input through a fatten session and returns the output,
// including the flushed tail.
func render(input *wavInput, opts options) (*buffer.Stereo, error) {
	cfg := core.ApplyProcessorOptions(
		core.WithSampleRate(float64(input.sampleRate)),
		core.WithBlockSize(opts.blockSize),
	)

	sess, err := session.New(cfg, nil)
	if err != nil {
		return nil, err
	}

	err = sess.AddFatten(fattenNodeID, opts.time, opts.mix, effectchain.Params{
		Num: map[string]float64{"feedback": opts.feedback},
		Str: map[string]string{"interp": opts.mode.String()},
	})
	if err != nil {
		return nil, err
	}

	tailFrames := int(math.Ceil(opts.tail * cfg.SampleRate))
	player := session.NewPlayer(input.data, tailFrames)

	out := &buffer.Stereo{
		Left:  make([]float64, 0, player.Frames()),
		Right: make([]float64, 0, player.Frames()),
	}
	pool := buffer.NewPool()
	block := pool.Get(cfg.BlockSize)
	defer pool.Put(block)

	sess.Start()
	defer sess.Stop()

	for player.Remaining() > 0 {
		n, err := sess.Play(player, *block)
		if err != nil {
			return nil, fmt.Errorf("failed to render block: %w", err)
		}

		out.Left = append(out.Left, block.Left[:n]...)
		out.Right = append(out.Right, block.Right[:n]...)
	}

	return out, nil
}

// maxReportLag bounds the cross-correlation search of the report.
const maxReportLag = 2 * spatial.FattenMaxTime

func printReport(w io.Writer, input, output *buffer.Stereo, sampleRate float64) error {
	in, err := stereo.Analyze(input.Left, input.Right, sampleRate, maxReportLag)
	if err != nil {
		return fmt.Errorf("analyze input: %w", err)
	}

	out, err := stereo.Analyze(output.Left, output.Right, sampleRate, maxReportLag)
	if err != nil {
		return fmt.Errorf("analyze output: %w", err)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "\tinput\toutput")
	fmt.Fprintf(tw, "correlation\t%.3f\t%.3f\n", in.Correlation, out.Correlation)
	fmt.Fprintf(tw, "side/mid\t%.3f\t%.3f\n", in.SideMidRatio, out.SideMidRatio)
	fmt.Fprintf(tw, "lag\t%.4f s\t%.4f s\n", in.LagSeconds, out.LagSeconds)
	fmt.Fprintf(tw, "peak L/R\t%.3f/%.3f\t%.3f/%.3f\n", in.PeakLeft, in.PeakRight, out.PeakLeft, out.PeakRight)

	return tw.Flush()
}
