package directip

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
)

// Message is a complete SBD message: exactly one header, exactly one payload,
// at most one location, and any further information elements in their
// original order. A Message is immutable once constructed; changing it means
// assembling a new one.
type Message struct {
	header   Header
	payload  Payload
	location *LocationInformation
	elements []InformationElement
}

// NewMessage assembles a message from a sequence of information elements,
// processed in order. It fails if the sequence contains more than one header,
// payload, or location, or if the header or the payload is missing. Elements
// of any other kind are preserved verbatim.
func NewMessage(elements []InformationElement) (*Message, error) {
	var result Message
	for _, element := range elements {
		switch e := element.(type) {
		case Header:
			if result.header != nil {
				return nil, ErrTwoHeaders
			}
			result.header = e
		case Payload:
			if result.payload != nil {
				return nil, ErrTwoPayloads
			}
			result.payload = e
		case LocationInformation:
			if result.location != nil {
				return nil, ErrTwoLocations
			}
			location := e
			result.location = &location
		default:
			result.elements = append(result.elements, element)
		}
	}
	if result.header == nil {
		return nil, ErrNoHeader
	}
	if result.payload == nil {
		return nil, ErrNoPayload
	}
	return &result, nil
}

// ReadMessage reads one complete DirectIP frame from the given reader and
// assembles it into a message.
func ReadMessage(r io.Reader) (*Message, error) {
	elements, err := ReadFrame(r)
	if err != nil {
		return nil, err
	}
	return NewMessage(elements)
}

// ReadFile reads a message from the file at the given path.
func ReadFile(path string) (*Message, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadMessage(file)
}

// Header returns the message's header, either a MOHeader or a MTHeader.
func (m *Message) Header() Header {
	return m.header
}

// Payload returns the raw payload bytes.
func (m *Message) Payload() []byte {
	return m.payload.Bytes()
}

// IMEI returns the device identifier of the message's header as a string.
func (m *Message) IMEI() string {
	switch header := m.header.(type) {
	case MOHeader:
		return header.IMEI.String()
	case MTHeader:
		return header.IMEI.String()
	default:
		panic(fmt.Sprintf("unexpected header type %T", m.header))
	}
}

// Location returns the message's location information. The second return
// value is false if the message carries none.
func (m *Message) Location() (LocationInformation, bool) {
	if m.location == nil {
		return LocationInformation{}, false
	}
	return *m.location, true
}

// InformationElements returns the elements that are neither the header, the
// payload, nor the location, in their original order.
func (m *Message) InformationElements() []InformationElement {
	return m.elements
}

// Encode writes the message to the given writer as a complete DirectIP
// frame. It fails with OverallLengthError before anything is written if the
// information elements do not fit into the 16 bit overall length field.
func (m *Message) Encode(w io.Writer) error {
	overallLength := m.header.Length() + m.payload.Length()
	if m.location != nil {
		overallLength += m.location.Length()
	}
	for _, element := range m.elements {
		overallLength += element.Length()
	}
	if overallLength > math.MaxUint16 {
		return OverallLengthError(overallLength)
	}

	if err := binary.Write(w, binary.BigEndian, ProtocolRevisionNumber); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, uint16(overallLength)); err != nil {
		return err
	}
	if err := m.header.Encode(w); err != nil {
		return err
	}
	if err := m.payload.Encode(w); err != nil {
		return err
	}
	if m.location != nil {
		if err := m.location.Encode(w); err != nil {
			return err
		}
	}
	for _, element := range m.elements {
		if err := element.Encode(w); err != nil {
			return err
		}
	}
	return nil
}

func (m *Message) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v, payload: %d bytes", m.header, len(m.payload.Bytes()))
	if m.location != nil {
		fmt.Fprintf(&b, ", %v", m.location)
	}
	for _, element := range m.elements {
		fmt.Fprintf(&b, ", %v", element)
	}
	return b.String()
}
