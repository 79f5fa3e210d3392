package qlog

import (
	"time"

	"github.com/francoispqt/gojay"

	"github.com/nettrix/quichp/logging"
)

type category uint8

const (
	categorySecurity category = iota
	categoryTransport
)

func (c category) String() string {
	switch c {
	case categorySecurity:
		return "security"
	case categoryTransport:
		return "transport"
	default:
		panic("unknown category")
	}
}

type eventDetails interface {
	Category() category
	Name() string
	gojay.MarshalerJSONObject
}

type event struct {
	RelativeTime time.Duration
	eventDetails
}

var _ gojay.MarshalerJSONArray = event{}

func (e event) IsNil() bool { return false }
func (e event) MarshalJSONArray(enc *gojay.Encoder) {
	enc.Float64(milliseconds(e.RelativeTime))
	enc.String(e.Category().String())
	enc.String(e.Name())
	enc.Object(e.eventDetails)
}

func milliseconds(dur time.Duration) float64 { return float64(dur.Nanoseconds()) / 1e6 }

type eventHeaderProtected struct {
	KeyPhase        logging.KeyPhase
	PacketNumberLen logging.PacketNumberLen
}

func (e eventHeaderProtected) Category() category { return categorySecurity }
func (e eventHeaderProtected) Name() string       { return "header_protected" }
func (e eventHeaderProtected) IsNil() bool        { return false }

func (e eventHeaderProtected) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKey("key_phase", e.KeyPhase.String())
	enc.IntKey("packet_number_length", int(e.PacketNumberLen))
}

type eventHeaderUnprotected struct {
	KeyPhase        logging.KeyPhase
	PacketType      logging.PacketType
	PacketNumberLen logging.PacketNumberLen
}

func (e eventHeaderUnprotected) Category() category { return categorySecurity }
func (e eventHeaderUnprotected) Name() string       { return "header_unprotected" }
func (e eventHeaderUnprotected) IsNil() bool        { return false }

func (e eventHeaderUnprotected) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKey("key_phase", e.KeyPhase.String())
	enc.StringKey("packet_type", e.PacketType.String())
	enc.IntKey("packet_number_length", int(e.PacketNumberLen))
}

type eventPacketPassedThrough struct {
	PacketType logging.PacketType
}

func (e eventPacketPassedThrough) Category() category { return categoryTransport }
func (e eventPacketPassedThrough) Name() string       { return "packet_passed_through" }
func (e eventPacketPassedThrough) IsNil() bool        { return false }

func (e eventPacketPassedThrough) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKey("packet_type", e.PacketType.String())
}

type eventPacketDropped struct {
	Reason logging.PacketDropReason
}

func (e eventPacketDropped) Category() category { return categoryTransport }
func (e eventPacketDropped) Name() string       { return "packet_dropped" }
func (e eventPacketDropped) IsNil() bool        { return false }

func (e eventPacketDropped) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKey("trigger", e.Reason.String())
}
