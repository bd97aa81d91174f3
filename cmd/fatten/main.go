// Command fatten widens the stereo image of a WAV file by cross-feeding a
// delayed copy of each channel into the opposite one.
//
// Usage:
//
//	fatten [flags] input.wav output.wav
//
// Mono input is duplicated to both channels before processing. The output
// is a stereo WAV at the input sample rate and bit depth.
//
// Examples:
//
//	fatten in.wav out.wav
//	fatten -time 0.05 -mix 0.3 in.wav out.wav
//	fatten -interp linear -tail 0.2 -analyze in.wav out.wav
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/cwbudde/algo-fatten/dsp/core"
	"github.com/cwbudde/algo-fatten/dsp/effects/spatial"
	"github.com/cwbudde/algo-fatten/dsp/interp"
)

const (
	minRequiredArgs = 2

	defaultTime = 0.1
	defaultMix  = 0.5
	defaultTail = 0.1
)

var errUsage = errors.New("insufficient arguments")

type options struct {
	inputPath  string
	outputPath string

	time      float64
	mix       float64
	feedback  float64
	mode      interp.Mode
	blockSize int
	tail      float64
	analyze   bool
	verbose   bool
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}

		if errors.Is(err, errUsage) {
			os.Exit(2)
		}

		log.Fatal(err)
	}
}

func run(args []string, stdout io.Writer) error {
	opts, err := parseOptions(args, os.Stderr)
	if err != nil {
		return err
	}

	if opts.verbose {
		log.Printf("Input: %s", opts.inputPath)
		log.Printf("Output: %s", opts.outputPath)
		log.Printf("Time: %.3f s, Mix: %.2f, Feedback: %.2f", opts.time, opts.mix, opts.feedback)
		log.Printf("Interpolation: %s, Block: %d frames, Tail: %.3f s", opts.mode, opts.blockSize, opts.tail)
	}

	start := time.Now()

	input, err := readWAV(opts.inputPath)
	if err != nil {
		return err
	}

	if opts.verbose {
		log.Printf("Input format: %d Hz, %d channels, %d-bit, %d frames",
			input.sampleRate, input.channels, input.bitDepth, input.data.Frames())
	}

	output, err := render(input, opts)
	if err != nil {
		return err
	}

	err = writeWAV(opts.outputPath, output, input.sampleRate, input.bitDepth)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	fmt.Fprintf(stdout, "Fattened %s -> %s\n", filepath.Base(opts.inputPath), filepath.Base(opts.outputPath))
	fmt.Fprintf(stdout, "  %d Hz, %d-bit, %d channel(s) -> 2 channels\n",
		input.sampleRate, input.bitDepth, input.channels)
	fmt.Fprintf(stdout, "  %d frames -> %d frames in %.2fs\n",
		input.data.Frames(), output.Frames(), elapsed.Seconds())

	if opts.analyze {
		return printReport(stdout, input.data, output, float64(input.sampleRate))
	}

	return nil
}

func parseOptions(args []string, stderr io.Writer) (options, error) {
	fs := flag.NewFlagSet("fatten", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var opts options

	modeName := ""

	fs.Float64Var(&opts.time, "time", defaultTime, "Cross-feed delay in seconds (0.03 to 0.1)")
	fs.Float64Var(&opts.mix, "mix", defaultMix, "Wet weight (0 to 1)")
	fs.Float64Var(&opts.feedback, "feedback", 0, "Delay line self-feedback (0 to 0.99)")
	fs.StringVar(&modeName, "interp", interp.Hermite.String(), "Fractional delay interpolation: linear, hermite")
	fs.IntVar(&opts.blockSize, "block", core.DefaultBlockSize, "Processing block size in frames")
	fs.Float64Var(&opts.tail, "tail", defaultTail, "Seconds of silence appended to flush the delay")
	fs.BoolVar(&opts.analyze, "analyze", false, "Print a stereo image report for input and output")
	fs.BoolVar(&opts.verbose, "v", false, "Verbose output")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: fatten [options] input.wav output.wav\n\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	if fs.NArg() < minRequiredArgs {
		fs.Usage()

		return options{}, errUsage
	}

	opts.inputPath = fs.Arg(0)
	opts.outputPath = fs.Arg(1)

	mode, err := interp.ParseMode(modeName)
	if err != nil {
		return options{}, err
	}

	opts.mode = mode

	if err := opts.validate(); err != nil {
		return options{}, err
	}

	return opts, nil
}

func (o options) validate() error {
	switch {
	case o.time < spatial.FattenMinTime || o.time > spatial.FattenMaxTime || !core.IsFinite(o.time):
		return fmt.Errorf("-time must be in [%g, %g]: %g", spatial.FattenMinTime, spatial.FattenMaxTime, o.time)
	case o.mix < 0 || o.mix > 1 || !core.IsFinite(o.mix):
		return fmt.Errorf("-mix must be in [0, 1]: %g", o.mix)
	case o.blockSize < 1:
		return fmt.Errorf("-block must be > 0: %d", o.blockSize)
	case o.tail < 0 || !core.IsFinite(o.tail):
		return fmt.Errorf("-tail must be >= 0: %g", o.tail)
	}

	return nil
}
