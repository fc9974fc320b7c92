// Package dump drives a full parse of an SMF dump buffer: frame by frame,
// header, dispatch, accumulate. A run never fails; every malformed frame
// is counted and skipped, and the caller gets a complete Accumulator back
// regardless of how damaged the input is.
package dump

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/bcallard/smfdump/pkg/frame"
	"github.com/bcallard/smfdump/pkg/record"
	"github.com/bcallard/smfdump/pkg/revision"
	"github.com/bcallard/smfdump/pkg/smf110"
	"github.com/bcallard/smfdump/pkg/smf30"
)

// Parser decodes SMF dump buffers. It is stateless between runs and safe
// to reuse; each Parse call produces a fresh Accumulator.
type Parser struct {
	registries map[uint8]*record.Registry
	log        zerolog.Logger
	maxFrames  int
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger attaches a logger for per-frame diagnostics. The default is
// a no-op logger.
func WithLogger(log zerolog.Logger) Option {
	return func(p *Parser) { p.log = log }
}

// WithMaxFrames bounds a run to at most n frames, counting failures.
// Zero or negative means unbounded.
func WithMaxFrames(n int) Option {
	return func(p *Parser) { p.maxFrames = n }
}

// NewParser builds a parser dispatching both record families with the
// given format revision's offset tables.
func NewParser(rev revision.Revision, opts ...Option) *Parser {
	p := &Parser{
		registries: map[uint8]*record.Registry{
			smf30.Family:  smf30.NewRegistry(rev.SMF30),
			smf110.Family: smf110.NewRegistry(rev.SMF110),
		},
		log: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse walks the buffer from offset zero to the end. The cursor advances
// on every iteration: past the frame on success, by frame.RecoveryStride
// after a framing failure. Two consecutive iterations without progress
// terminate the run.
func (p *Parser) Parse(buf []byte) *Accumulator {
	acc := NewAccumulator()

	off := 0
	stalled := 0
	for off < len(buf) {
		if p.maxFrames > 0 && acc.FramesSeen >= p.maxFrames {
			p.log.Warn().Int("max_frames", p.maxFrames).Msg("frame limit reached, stopping run")
			break
		}

		fr, next, err := frame.Next(buf, off)
		acc.FramesSeen++
		if err != nil {
			switch {
			case errors.Is(err, frame.ErrZeroLength):
				acc.ZeroLength++
			case errors.Is(err, frame.ErrTruncated):
				acc.Truncated++
			}
			p.log.Debug().Err(err).Int("offset", off).Msg("framing failure, skipping ahead")
			next = off + frame.RecoveryStride
		} else {
			p.decodeFrame(fr, acc)
		}

		if next <= off {
			stalled++
			if stalled >= 2 {
				p.log.Warn().Int("offset", off).Msg("cursor stalled, terminating run")
				break
			}
		} else {
			stalled = 0
		}
		off = next
	}

	p.log.Info().
		Str("run_id", acc.RunID).
		Int("frames", acc.FramesSeen).
		Int("records", acc.TotalRecords()).
		Msg("parse complete")
	return acc
}

func (p *Parser) decodeFrame(fr []byte, acc *Accumulator) {
	family, ok := record.PeekFamily(fr)
	if !ok {
		acc.ShortHeaders++
		return
	}

	reg, ok := p.registries[family]
	if !ok {
		acc.FormatMismatches++
		p.log.Debug().Uint8("family", family).Msg("unrecognized record family, frame skipped")
		return
	}

	hdr, err := record.DecodeHeader(fr, reg.Family())
	if err != nil {
		var mismatch *record.FormatMismatchError
		switch {
		case errors.As(err, &mismatch):
			acc.FormatMismatches++
		case errors.Is(err, record.ErrShortHeader):
			acc.ShortHeaders++
		}
		p.log.Debug().Err(err).Msg("header rejected, frame skipped")
		return
	}

	rec, err := reg.Dispatch(fr, hdr)
	if err != nil {
		var unknown *record.UnknownSubtypeError
		if errors.As(err, &unknown) {
			acc.countUnknown(unknown.Subtype)
			p.log.Debug().
				Uint8("family", family).
				Uint8("subtype", unknown.Subtype).
				Msg("unknown subtype, frame skipped")
		}
		return
	}

	acc.add(family, rec)
}
