// Package qlog records header protection events in the qlog format.
package qlog

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/francoispqt/gojay"

	"github.com/nettrix/quichp/logging"
)

var eventFields = [4]string{"relative_time", "category", "event", "data"}

type topLevel struct {
	referenceTime time.Time
}

var _ gojay.MarshalerJSONObject = topLevel{}

func (l topLevel) IsNil() bool { return false }
func (l topLevel) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKey("qlog_version", "draft-02")
	enc.StringKey("title", "quichp header protection")
	enc.ArrayKey("traces", traces{referenceTime: l.referenceTime})
}

type traces struct {
	referenceTime time.Time
}

var _ gojay.MarshalerJSONArray = traces{}

func (t traces) IsNil() bool { return false }
func (t traces) MarshalJSONArray(enc *gojay.Encoder) {
	enc.Object(trace{referenceTime: t.referenceTime})
}

type trace struct {
	referenceTime time.Time
}

var _ gojay.MarshalerJSONObject = trace{}

func (t trace) IsNil() bool { return false }
func (t trace) MarshalJSONObject(enc *gojay.Encoder) {
	enc.ObjectKey("common_fields", commonFields{ReferenceTime: t.referenceTime})
	enc.AddSliceStringKey("event_fields", eventFields[:])
	enc.ArrayKey("events", events{})
}

type commonFields struct {
	ReferenceTime time.Time
}

func (f commonFields) IsNil() bool { return false }
func (f commonFields) MarshalJSONObject(enc *gojay.Encoder) {
	enc.Float64Key("reference_time", float64(f.ReferenceTime.UnixNano())/1e6)
	enc.StringKey("time_format", "relative")
}

type events []event

var _ gojay.MarshalerJSONArray = events{}

func (e events) IsNil() bool { return e == nil }
func (e events) MarshalJSONArray(enc *gojay.Encoder) {
	for _, ev := range e {
		enc.Array(ev)
	}
}

type tracer struct {
	mutex sync.Mutex

	w             io.WriteCloser
	referenceTime time.Time
	suffix        []byte
	hasEvents     bool
	encodeErr     error
}

// NewTracer creates a logging.Tracer that records all header protection
// events to w as a qlog. The returned tracer's Close has to be called to
// finish the qlog; it also closes w.
func NewTracer(w io.WriteCloser) *logging.Tracer {
	t := &tracer{
		w:             w,
		referenceTime: time.Now(),
	}
	t.writePreamble()
	return &logging.Tracer{
		ProtectedHeader: func(phase logging.KeyPhase, pnLen logging.PacketNumberLen) {
			t.recordEvent(eventHeaderProtected{KeyPhase: phase, PacketNumberLen: pnLen})
		},
		UnprotectedHeader: func(phase logging.KeyPhase, typ logging.PacketType, pnLen logging.PacketNumberLen) {
			t.recordEvent(eventHeaderUnprotected{KeyPhase: phase, PacketType: typ, PacketNumberLen: pnLen})
		},
		PassedThrough: func(typ logging.PacketType) {
			t.recordEvent(eventPacketPassedThrough{PacketType: typ})
		},
		DroppedPacket: func(reason logging.PacketDropReason) {
			t.recordEvent(eventPacketDropped{Reason: reason})
		},
		Close: t.close,
	}
}

// writePreamble writes the qlog header, up to (and including) the opening
// bracket of the events array. The bytes needed to turn the output into
// valid JSON again are kept as the suffix, written on Close.
func (t *tracer) writePreamble() {
	buf := &bytes.Buffer{}
	enc := gojay.NewEncoder(buf)
	if err := enc.Encode(topLevel{referenceTime: t.referenceTime}); err != nil {
		panic(fmt.Sprintf("qlog encoding into a bytes.Buffer failed: %s", err))
	}
	data := buf.Bytes()
	t.suffix = data[buf.Len()-4:]
	if _, err := t.w.Write(data[:buf.Len()-4]); err != nil {
		t.encodeErr = err
	}
}

func (t *tracer) recordEvent(details eventDetails) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if t.encodeErr != nil { // if encoding failed, drop the event
		return
	}
	if t.hasEvents {
		if _, err := t.w.Write([]byte(",")); err != nil {
			t.encodeErr = err
			return
		}
	}
	enc := gojay.NewEncoder(t.w)
	if err := enc.Encode(event{
		RelativeTime: time.Since(t.referenceTime),
		eventDetails: details,
	}); err != nil {
		t.encodeErr = err
	}
	t.hasEvents = true
}

func (t *tracer) close() {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if t.encodeErr == nil {
		if _, err := t.w.Write(t.suffix); err != nil {
			t.encodeErr = err
		}
	}
	if t.encodeErr != nil {
		log.Printf("exporting qlog failed: %s\n", t.encodeErr)
	}
	t.w.Close()
}
