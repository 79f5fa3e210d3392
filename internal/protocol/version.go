package protocol

import "fmt"

// Version of the QUIC wire protocol
type Version uint32

const (
	// Version1 is RFC 9000
	Version1 Version = 0x1
	// Version2 is RFC 9369
	Version2 Version = 0x6b3343cf
)

func (v Version) String() string {
	switch v {
	case 0:
		return "reserved (version negotiation)"
	case Version1:
		return "v1"
	case Version2:
		return "v2"
	default:
		return fmt.Sprintf("%#x", uint32(v))
	}
}
