package main

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-fatten/dsp/buffer"
	"github.com/cwbudde/algo-fatten/dsp/core"
)

const (
	monoChannels   = 1
	stereoChannels = 2

	bitsPerSample16 = 16
	bitsPerSample24 = 24
	bitsPerSample32 = 32

	maxInt16 = 32767.0
	maxInt24 = 8388607.0
	maxInt32 = 2147483647.0

	wavFormatPCM = 1
)

// wavInput is a decoded WAV file as a stereo block.
type wavInput struct {
	data       *buffer.Stereo
	sampleRate int
	channels   int
	bitDepth   int
}

// getMaxValue returns the full-scale sample value for the bit depth.
func getMaxValue(bitDepth int) (float64, error) {
	switch bitDepth {
	case bitsPerSample16:
		return maxInt16, nil
	case bitsPerSample24:
		return maxInt24, nil
	case bitsPerSample32:
		return maxInt32, nil
	default:
		return 0, fmt.Errorf("unsupported bit depth: %d", bitDepth)
	}
}

// readWAV decodes a mono or stereo PCM WAV file. Mono is duplicated to
// both channels.
func readWAV(path string) (*wavInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = f.Close() }()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	if decoder.WavAudioFormat != wavFormatPCM {
		return nil, fmt.Errorf("only integer PCM WAV input is supported: audio format %d", decoder.WavAudioFormat)
	}

	pcm, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to read audio data: %w", err)
	}

	format := decoder.Format()
	channels := format.NumChannels
	bitDepth := int(decoder.BitDepth)

	if channels != monoChannels && channels != stereoChannels {
		return nil, fmt.Errorf("only mono and stereo input is supported: %d channels", channels)
	}

	maxVal, err := getMaxValue(bitDepth)
	if err != nil {
		return nil, err
	}

	frames := len(pcm.Data) / channels
	data := buffer.NewStereo(frames)
	invMaxVal := 1 / maxVal

	for i := range frames {
		if channels == monoChannels {
			v := float64(pcm.Data[i]) * invMaxVal
			data.Left[i], data.Right[i] = v, v

			continue
		}

		idx := i * stereoChannels
		data.Left[i] = float64(pcm.Data[idx]) * invMaxVal
		data.Right[i] = float64(pcm.Data[idx+1]) * invMaxVal
	}

	return &wavInput{
		data:       data,
		sampleRate: format.SampleRate,
		channels:   channels,
		bitDepth:   bitDepth,
	}, nil
}

// writeWAV encodes data as a stereo PCM WAV file. Samples are clipped to
// [-1, 1].
func writeWAV(path string, data *buffer.Stereo, sampleRate, bitDepth int) (err error) {
	maxVal, err := getMaxValue(bitDepth)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	defer func() {
		if closeErr := f.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("failed to close output file: %w", closeErr)
		}
	}()

	interleaved := data.AppendInterleaved(make([]float64, 0, 2*data.Frames()))
	ints := make([]int, len(interleaved))

	for i, v := range interleaved {
		ints[i] = int(core.Clamp(v, -1, 1) * maxVal)
	}

	encoder := wav.NewEncoder(f, sampleRate, bitDepth, stereoChannels, wavFormatPCM)

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: stereoChannels, SampleRate: sampleRate},
		Data:           ints,
		SourceBitDepth: bitDepth,
	}

	if err := encoder.Write(buf); err != nil {
		return fmt.Errorf("failed to write audio data: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to finalize WAV file: %w", err)
	}

	return nil
}
