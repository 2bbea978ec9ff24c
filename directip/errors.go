package directip

import (
	"errors"
	"fmt"
	"math"
)

// Errors reported when a sequence of information elements cannot be combined
// into a well-formed message.
var (
	ErrNoHeader     = errors.New("no header in message")
	ErrNoPayload    = errors.New("no payload in message")
	ErrTwoHeaders   = errors.New("two headers in message")
	ErrTwoPayloads  = errors.New("two payloads in message")
	ErrTwoLocations = errors.New("two locations in message")
)

// InvalidProtocolRevisionError is returned when a message starts with a
// protocol revision number other than ProtocolRevisionNumber.
type InvalidProtocolRevisionError byte

func (e InvalidProtocolRevisionError) Error() string {
	return fmt.Sprintf("invalid protocol revision number %d", byte(e))
}

// InvalidIEIError is returned when an information element carries an
// unrecognized identifier. It holds the offending identifier byte.
type InvalidIEIError byte

func (e InvalidIEIError) Error() string {
	return fmt.Sprintf("unrecognized information element 0x%02x", byte(e))
}

// NegativeTimestampError is returned when a mobile-originated header with a
// pre-1970 session time is encoded. The wire format carries the session time
// as an unsigned number of seconds since the Unix epoch.
type NegativeTimestampError int64

func (e NegativeTimestampError) Error() string {
	return fmt.Sprintf("negative timestamp %d cannot be encoded", int64(e))
}

// OverallLengthError is returned when the information elements of a message
// do not fit into the 16 bit overall length field.
type OverallLengthError int

func (e OverallLengthError) Error() string {
	return fmt.Sprintf("overall message length %d exceeds %d", int(e), math.MaxUint16)
}

// PayloadTooLongError is returned when a payload does not fit into the 16 bit
// length field of its information element.
type PayloadTooLongError int

func (e PayloadTooLongError) Error() string {
	return fmt.Sprintf("payload too long: %d bytes", int(e))
}

// UnknownSessionStatusError is returned when a mobile-originated header
// carries a session status outside the defined set.
type UnknownSessionStatusError byte

func (e UnknownSessionStatusError) Error() string {
	return fmt.Sprintf("unknown session status %d", byte(e))
}
