package gpio

import "testing"

func TestSimulatedReaderReadDefaultsHigh(t *testing.T) {
	r := NewSimulatedReader()
	lvl, err := r.Read(5)
	if err != nil || lvl != High {
		t.Fatalf("Read(unset) = (%v, %v), want (High, nil)", lvl, err)
	}
}

func TestSimulatedReaderSetLevelRoundTrips(t *testing.T) {
	r := NewSimulatedReader()

	r.SetLevel(3, Low)
	if lvl, _ := r.Read(3); lvl != Low {
		t.Fatalf("Read after SetLevel(Low) = %v, want Low", lvl)
	}

	r.SetLevel(3, High)
	if lvl, _ := r.Read(3); lvl != High {
		t.Fatalf("Read after SetLevel(High) = %v, want High", lvl)
	}
}

func TestSimulatedReaderPulseReturnsLineToIdle(t *testing.T) {
	r := NewSimulatedReader()
	r.Pulse(7)
	lvl, _ := r.Read(7)
	if lvl != High {
		t.Fatalf("Read after Pulse = %v, want High", lvl)
	}
}

func TestSimulatedReaderCloseFreezesLevels(t *testing.T) {
	r := NewSimulatedReader()
	r.SetLevel(2, Low)

	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	r.SetLevel(2, High)

	if lvl, _ := r.Read(2); lvl != Low {
		t.Fatalf("SetLevel after Close should be ignored, got %v", lvl)
	}
}
