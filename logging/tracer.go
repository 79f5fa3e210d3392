package logging

// A Tracer records events about header protection.
// Fields that are not set are ignored.
type Tracer struct {
	// ProtectedHeader is called when header protection was applied to an outgoing packet.
	ProtectedHeader func(phase KeyPhase, pnLen PacketNumberLen)
	// UnprotectedHeader is called when header protection was removed from a received packet.
	UnprotectedHeader func(phase KeyPhase, t PacketType, pnLen PacketNumberLen)
	// PassedThrough is called for received packets that are exempt from header protection,
	// i.e. Version Negotiation and Retry packets.
	PassedThrough func(t PacketType)
	// DroppedPacket is called when a packet has to be dropped because it could not be
	// protected or unprotected.
	DroppedPacket func(reason PacketDropReason)
	// Close is called when the tracer is no longer needed, e.g. to flush a qlog.
	Close func()
}

// NewMultiplexedTracer creates a new tracer that multiplexes events to multiple tracers.
func NewMultiplexedTracer(tracers ...*Tracer) *Tracer {
	if len(tracers) == 0 {
		return nil
	}
	if len(tracers) == 1 {
		return tracers[0]
	}
	return &Tracer{
		ProtectedHeader: func(phase KeyPhase, pnLen PacketNumberLen) {
			for _, t := range tracers {
				if t.ProtectedHeader != nil {
					t.ProtectedHeader(phase, pnLen)
				}
			}
		},
		UnprotectedHeader: func(phase KeyPhase, typ PacketType, pnLen PacketNumberLen) {
			for _, t := range tracers {
				if t.UnprotectedHeader != nil {
					t.UnprotectedHeader(phase, typ, pnLen)
				}
			}
		},
		PassedThrough: func(typ PacketType) {
			for _, t := range tracers {
				if t.PassedThrough != nil {
					t.PassedThrough(typ)
				}
			}
		},
		DroppedPacket: func(reason PacketDropReason) {
			for _, t := range tracers {
				if t.DroppedPacket != nil {
					t.DroppedPacket(reason)
				}
			}
		},
		Close: func() {
			for _, t := range tracers {
				if t.Close != nil {
					t.Close()
				}
			}
		},
	}
}
