// Package think suppresses model reasoning markup delimited by
// <think>...</think> tags.
//
// Two modes exist. The live Filter is an io.Writer placed between a
// streaming decoder and the terminal: it drops everything between the
// tags from the echo while the full unfiltered text still reaches the
// response accumulator upstream. RemoveBlocks handles the post-hoc case
// where a complete response is filtered after the fact.
package think

import (
	"bytes"
	"io"
)

const (
	openTag  = "<think>"
	closeTag = "</think>"
)

// State is the filter's position relative to a thinking block.
type State int

const (
	// Normal passes content through to the output.
	Normal State = iota
	// InThinking suppresses content until the closing tag.
	InThinking
)

// Indicator receives progress callbacks while content is suppressed,
// so a UI can show that the model is reasoning rather than stalled.
// Implementations render to a side channel (stderr), never to the
// filter's output.
type Indicator interface {
	// Tick is called for each suppressed fragment.
	Tick()
	// Clear is called when suppression ends and the indicator line
	// should be erased.
	Clear()
}

type noopIndicator struct{}

func (noopIndicator) Tick()  {}
func (noopIndicator) Clear() {}

// Filter is an io.Writer that removes <think> blocks from a live
// fragment stream. Because fragments split at arbitrary byte
// boundaries, a tag can straddle two writes; the filter holds back at
// most len(tag)-1 trailing bytes that form a tag prefix until the next
// write disambiguates them. Call Flush at end of stream to release any
// held-back bytes.
type Filter struct {
	out   io.Writer
	ind   Indicator
	state State
	tail  []byte
}

// NewFilter wraps out. A nil indicator is replaced with a no-op.
func NewFilter(out io.Writer, ind Indicator) *Filter {
	if ind == nil {
		ind = noopIndicator{}
	}
	return &Filter{out: out, ind: ind}
}

// State reports which side of a thinking block the filter is on.
func (f *Filter) State() State {
	return f.state
}

// Write consumes one fragment. It always reports len(p) consumed;
// suppressed bytes are consumed, not written.
func (f *Filter) Write(p []byte) (int, error) {
	data := p
	if len(f.tail) > 0 {
		data = append(f.tail, p...)
		f.tail = nil
	}

	for len(data) > 0 {
		switch f.state {
		case Normal:
			if i := bytes.Index(data, []byte(openTag)); i >= 0 {
				if _, err := f.out.Write(data[:i]); err != nil {
					return len(p), err
				}
				data = data[i+len(openTag):]
				f.state = InThinking
				f.ind.Tick()
				continue
			}
			hold := partialTagSuffix(data, openTag)
			if _, err := f.out.Write(data[:len(data)-hold]); err != nil {
				return len(p), err
			}
			f.tail = append([]byte(nil), data[len(data)-hold:]...)
			return len(p), nil

		case InThinking:
			if i := bytes.Index(data, []byte(closeTag)); i >= 0 {
				data = data[i+len(closeTag):]
				f.state = Normal
				f.ind.Clear()
				continue
			}
			hold := partialTagSuffix(data, closeTag)
			f.tail = append([]byte(nil), data[len(data)-hold:]...)
			f.ind.Tick()
			return len(p), nil
		}
	}
	return len(p), nil
}

// Flush releases held-back bytes at end of stream. In Normal state a
// dangling tag prefix turns out to be ordinary text and is emitted; an
// unterminated thinking block stays suppressed, matching the contract
// that the remainder of the stream after an unmatched <think> is
// hidden from the echo.
func (f *Filter) Flush() error {
	f.ind.Clear()
	if f.state == Normal && len(f.tail) > 0 {
		if _, err := f.out.Write(f.tail); err != nil {
			return err
		}
	}
	f.tail = nil
	return nil
}

// partialTagSuffix returns the length of the longest proper prefix of
// tag that ends data. Those bytes cannot be classified until more of
// the stream arrives.
func partialTagSuffix(data []byte, tag string) int {
	max := len(tag) - 1
	if max > len(data) {
		max = len(data)
	}
	for n := max; n > 0; n-- {
		if bytes.Equal(data[len(data)-n:], []byte(tag[:n])) {
			return n
		}
	}
	return 0
}
