// Package simulate runs error-injection campaigns against the
// protection codec: frames are encoded, pushed through a synthetic
// channel and decoded, and the per-frame outcomes are collected for
// analysis. Campaigns are deterministic for a fixed seed.
package simulate

import (
	"bytes"
	"errors"
	"fmt"
	"math/rand"

	"github.com/dbehnke/lc3ep/internal/fec"
)

// ErrorModel names the synthetic channel applied to each frame.
type ErrorModel string

const (
	ModelClean ErrorModel = "clean" // no channel errors
	ModelBER   ErrorModel = "ber"   // independent bit flips
	ModelBurst ErrorModel = "burst" // one contiguous bit burst per frame
)

var ErrModel = errors.New("simulate: unknown error model")

// Campaign describes one simulation run.
type Campaign struct {
	SlotBytes    int
	Mode         fec.Mode
	EPMR         uint8
	Frames       int
	Model        ErrorModel
	BitErrorRate float64 // ber model: per-bit flip probability
	BurstLen     int     // burst model: burst length in bits
	Seed         int64
}

// FrameOutcome records what one frame went through.
type FrameOutcome struct {
	Frame        int
	DetectedMode fec.Mode
	BFI          fec.BFI
	Injected     int // bits flipped by the channel
	Corrected    int // bits the decoder reported fixing
	EPMRMatch    bool
	DataIntact   bool
}

// Summary aggregates a campaign's outcomes.
type Summary struct {
	Frames  int
	Clean   int
	Fatal   int
	Partial int
	Intact  int
}

// Run executes the campaign and returns one outcome per frame.
func (c Campaign) Run() ([]FrameOutcome, error) {
	size, err := fec.DataSize(c.Mode, false, c.SlotBytes)
	if err != nil {
		return nil, err
	}
	switch c.Model {
	case ModelClean, ModelBER, ModelBurst:
	default:
		return nil, fmt.Errorf("%w: %q", ErrModel, c.Model)
	}
	rng := rand.New(rand.NewSource(c.Seed))
	npccw := fec.NumPCCodewords(c.SlotBytes, c.Mode, false)
	outcomes := make([]FrameOutcome, 0, c.Frames)

	for frame := 0; frame < c.Frames; frame++ {
		data := make([]byte, size)
		rng.Read(data)
		buf := make([]byte, c.SlotBytes)
		copy(buf, data)
		if err := fec.Encode(c.Mode, c.EPMR, buf, size, c.SlotBytes, npccw); err != nil {
			return nil, err
		}
		injected := c.damage(rng, buf)
		var res fec.Result
		if c.Mode == fec.Mode0 {
			// Unprotected slots bypass the decoder: the channel output
			// is the payload, errors and all.
			res = fec.Result{DataBytes: size, Mode: fec.Mode0, BFI: fec.BFIClean, EPMR: fec.EPMR(c.EPMR)}
		} else {
			res, err = fec.Decode(buf, c.SlotBytes, false)
			if err != nil {
				return nil, err
			}
		}
		intact := res.DataBytes == size && bytes.Equal(buf[:size], data)
		outcomes = append(outcomes, FrameOutcome{
			Frame:        frame,
			DetectedMode: res.Mode,
			BFI:          res.BFI,
			Injected:     injected,
			Corrected:    res.ErrorReport,
			EPMRMatch:    res.EPMR.Value() == c.EPMR,
			DataIntact:   intact,
		})
	}
	return outcomes, nil
}

// damage applies the channel model to the slot and returns the number
// of bits flipped.
func (c Campaign) damage(rng *rand.Rand, buf []byte) int {
	switch c.Model {
	case ModelBER:
		flipped := 0
		for bit := 0; bit < 8*len(buf); bit++ {
			if rng.Float64() < c.BitErrorRate {
				buf[bit>>3] ^= 1 << (bit & 7)
				flipped++
			}
		}
		return flipped
	case ModelBurst:
		if c.BurstLen <= 0 {
			return 0
		}
		total := 8 * len(buf)
		start := rng.Intn(total)
		flipped := 0
		for k := 0; k < c.BurstLen && start+k < total; k++ {
			bit := start + k
			buf[bit>>3] ^= 1 << (bit & 7)
			flipped++
		}
		return flipped
	default:
		return 0
	}
}

// Summarize folds the outcomes into aggregate counters.
func Summarize(outcomes []FrameOutcome) Summary {
	s := Summary{Frames: len(outcomes)}
	for _, o := range outcomes {
		switch o.BFI {
		case fec.BFIClean:
			s.Clean++
		case fec.BFIFatal:
			s.Fatal++
		case fec.BFIPartial:
			s.Partial++
		}
		if o.DataIntact {
			s.Intact++
		}
	}
	return s
}
