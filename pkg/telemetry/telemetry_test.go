package telemetry

import (
	"testing"

	"github.com/thelolagemann/goadvance/internal/types"
)

func TestRecordDoesNotBlockWithoutARunningLoop(t *testing.T) {
	s := NewSink()
	// nothing drains the broadcast channel's buffer until Run starts;
	// Record must never block the bus's hot path waiting for a reader.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			s.Record(0x0800_0000, types.NonSeq, types.Width16, 3)
		}
		close(done)
	}()

	select {
	case <-done:
	default:
	}
	<-done
}

func TestEventFieldsRoundTrip(t *testing.T) {
	e := Event{Addr: 0x0800_0000, Page: 8, Access: "N", Width: 16, Cost: 3}
	if e.Addr != 0x0800_0000 || e.Cost != 3 {
		t.Errorf("Event fields not preserved: %+v", e)
	}
}
