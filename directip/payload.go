package directip

import (
	"io"
	"math"
)

// Payload is the opaque byte content of an SBD message, either a MOPayload or
// a MTPayload. The distinction only affects the identifier byte on the wire.
type Payload interface {
	InformationElement

	// Bytes returns the raw payload bytes.
	Bytes() []byte

	payload()
}

// MOPayload is the payload of a mobile-originated SBD message.
type MOPayload []byte

// Encode this payload, including its identifier and length prefix. Encoding
// fails with PayloadTooLongError if the payload does not fit into the 16 bit
// length field.
func (p MOPayload) Encode(w io.Writer) error {
	return encodePayload(w, moPayloadIEI, p)
}

// Length returns the number of bytes the encoded payload occupies, including
// its identifier and length prefix.
func (p MOPayload) Length() int {
	return len(p) + 3
}

// Bytes returns the raw payload bytes.
func (p MOPayload) Bytes() []byte {
	return p
}

func (p MOPayload) informationElement() {}
func (p MOPayload) payload()            {}

// MTPayload is the payload of a mobile-terminated SBD message.
type MTPayload []byte

// Encode this payload, including its identifier and length prefix. Encoding
// fails with PayloadTooLongError if the payload does not fit into the 16 bit
// length field.
func (p MTPayload) Encode(w io.Writer) error {
	return encodePayload(w, mtPayloadIEI, p)
}

// Length returns the number of bytes the encoded payload occupies, including
// its identifier and length prefix.
func (p MTPayload) Length() int {
	return len(p) + 3
}

// Bytes returns the raw payload bytes.
func (p MTPayload) Bytes() []byte {
	return p
}

func (p MTPayload) informationElement() {}
func (p MTPayload) payload()            {}

func encodePayload(w io.Writer, iei byte, payload []byte) error {
	if len(payload) > math.MaxUint16 {
		return PayloadTooLongError(len(payload))
	}
	if err := writeFields(w, iei, uint16(len(payload))); err != nil {
		return err
	}
	_, err := w.Write(payload)
	return err
}
