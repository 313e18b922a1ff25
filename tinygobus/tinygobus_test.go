package tinygobus

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// trace collects pin changes and transfers in order.
type trace struct {
	events []string
	fail   bool
}

type fakeSPI struct {
	log *trace
}

func (s fakeSPI) Tx(w, r []byte) error {
	if s.log.fail {
		return errors.New("tx failed")
	}
	s.log.events = append(s.log.events, "tx"+strings.Repeat(".", len(w)))
	return nil
}

func (s fakeSPI) Transfer(b byte) (byte, error) {
	return 0, s.Tx([]byte{b}, nil)
}

type fakePin struct {
	name string
	log  *trace
}

func (p fakePin) High() { p.log.events = append(p.log.events, p.name+"=1") }
func (p fakePin) Low()  { p.log.events = append(p.log.events, p.name+"=0") }

func newBus(cs bool) (*Bus, *trace) {
	l := &trace{}
	var csPin Pin
	if cs {
		csPin = fakePin{"cs", l}
	}
	b := New(fakeSPI{l}, fakePin{"dc", l}, csPin)
	l.events = nil
	return b, l
}

func TestWriteCommand(t *testing.T) {
	tests := []struct {
		name   string
		cs     bool
		params []byte
		want   string
	}{
		{"no params", true, nil, "cs=0 dc=0 tx. dc=1 cs=1"},
		{"params", true, []byte{1, 2, 3, 4}, "cs=0 dc=0 tx. dc=1 tx.... cs=1"},
		{"hardware chip select", false, []byte{1}, "dc=0 tx. dc=1 tx."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, l := newBus(tt.cs)
			if err := b.WriteCommand(context.Background(), 0x2A, tt.params); err != nil {
				t.Fatalf("WriteCommand() error = %v", err)
			}
			if got := strings.Join(l.events, " "); got != tt.want {
				t.Errorf("events = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriteData(t *testing.T) {
	b, l := newBus(true)
	if err := b.WriteData(context.Background(), []byte{1, 2}); err != nil {
		t.Fatalf("WriteData() error = %v", err)
	}
	if got, want := strings.Join(l.events, " "), "cs=0 dc=1 tx.. cs=1"; got != want {
		t.Errorf("events = %q, want %q", got, want)
	}
}

func TestNewIdleLevels(t *testing.T) {
	l := &trace{}
	New(fakeSPI{l}, fakePin{"dc", l}, fakePin{"cs", l})
	if got, want := strings.Join(l.events, " "), "dc=1 cs=1"; got != want {
		t.Errorf("events = %q, want %q", got, want)
	}
}

func TestErrors(t *testing.T) {
	b, l := newBus(true)
	l.fail = true
	if err := b.WriteCommand(context.Background(), 0x01, nil); err == nil {
		t.Error("WriteCommand should fail")
	}
	// Chip select is released even on failure
	if last := l.events[len(l.events)-1]; last != "cs=1" {
		t.Errorf("last event = %q, want cs=1", last)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	l.fail = false
	if err := b.WriteData(ctx, []byte{1}); !errors.Is(err, context.Canceled) {
		t.Errorf("WriteData() error = %v, want context.Canceled", err)
	}
}
