package dcs

import (
	"context"
	"fmt"
	"iter"
)

// Encoder is a pixel color that knows its bus encoding.
type Encoder interface {
	AppendEncoded(b []byte) []byte
}

// WritePixels streams colors to the controller memory, starting a memory
// write at the current address window.
//
// WriteMemoryStart is sent right before the first chunk of data, so an empty
// sequence sends nothing. Each chunk holds whole pixels only: when a write
// fails the controller has received complete pixels and nothing else.
// bytesPerPixel must be positive.
func WritePixels[C Encoder](ctx context.Context, w *Writer, bytesPerPixel int, colors iter.Seq[C]) error {
	if bytesPerPixel <= 0 {
		return fmt.Errorf("dcs: invalid pixel size %d", bytesPerPixel)
	}
	chunk := (w.maxTxSize / bytesPerPixel) * bytesPerPixel
	if chunk == 0 {
		chunk = bytesPerPixel
	}
	if cap(w.buf) < chunk {
		w.buf = make([]byte, 0, chunk)
	}
	buf := w.buf[:0]
	started := false

	flush := func() error {
		if !started {
			if err := w.WriteCommand(ctx, WriteMemoryStart); err != nil {
				return err
			}
			started = true
		}
		err := w.WriteData(ctx, buf)
		buf = buf[:0]
		return err
	}

	for c := range colors {
		buf = c.AppendEncoded(buf)
		if len(buf) >= chunk {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	if len(buf) > 0 {
		return flush()
	}
	return nil
}
