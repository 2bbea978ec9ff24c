package directip

import (
	"bytes"
	"encoding/binary"
	"io"
)

// ProtocolRevisionNumber is the only DirectIP protocol revision this package
// understands.
const ProtocolRevisionNumber byte = 1

// All defined information element identifiers.
const (
	moHeaderIEI       byte = 0x01
	moPayloadIEI      byte = 0x02
	locationIEI       byte = 0x03
	moConfirmationIEI byte = 0x05
	mtHeaderIEI       byte = 0x41
	mtPayloadIEI      byte = 0x42
	mtConfirmationIEI byte = 0x44
)

// InformationElement is one tagged building block of an SBD message: a header,
// a payload, a confirmation status, or location information. The set of
// implementations is fixed by the DirectIP specification and closed.
type InformationElement interface {
	// Length returns the number of bytes the encoded element occupies,
	// including its own identifier and length prefix.
	Length() int
	// Encode writes the element to the given writer, including its
	// identifier and length prefix.
	Encode(w io.Writer) error

	informationElement()
}

// ReadInformationElement reads a single information element from the given
// reader: one identifier byte, a 16 bit length, and the element's body. An
// unrecognized identifier is reported as InvalidIEIError. A stream that ends
// before the declared body is complete is reported as an I/O error.
func ReadInformationElement(r io.Reader) (InformationElement, error) {
	var iei byte
	if err := binary.Read(r, binary.BigEndian, &iei); err != nil {
		return nil, err
	}
	return readTaggedElement(iei, r)
}

func readTaggedElement(iei byte, r io.Reader) (InformationElement, error) {
	var length uint16
	if err := binary.Read(r, binary.BigEndian, &length); err != nil {
		return nil, err
	}

	switch iei {
	case moHeaderIEI:
		return readMOHeader(r)
	case mtHeaderIEI:
		return readMTHeader(r)
	case moPayloadIEI, mtPayloadIEI:
		payload := make([]byte, length)
		if _, err := io.ReadFull(r, payload); err != nil {
			return nil, err
		}
		if iei == moPayloadIEI {
			return MOPayload(payload), nil
		}
		return MTPayload(payload), nil
	case locationIEI:
		body := make([]byte, length)
		if _, err := io.ReadFull(r, body); err != nil {
			return nil, err
		}
		return parseLocationInformation(body)
	case moConfirmationIEI:
		return readMOConfirmation(r)
	case mtConfirmationIEI:
		return readMTConfirmation(r)
	default:
		return nil, InvalidIEIError(iei)
	}
}

// ReadFrame reads a complete DirectIP frame from the given reader: the
// protocol revision number, the 16 bit overall length, and exactly that many
// bytes of information elements. A revision other than ProtocolRevisionNumber
// is rejected. A final element that is declared longer than the remaining
// frame fails with an I/O error.
func ReadFrame(r io.Reader) ([]InformationElement, error) {
	var revision byte
	if err := binary.Read(r, binary.BigEndian, &revision); err != nil {
		return nil, err
	}
	if revision != ProtocolRevisionNumber {
		return nil, InvalidProtocolRevisionError(revision)
	}
	var overallLength uint16
	if err := binary.Read(r, binary.BigEndian, &overallLength); err != nil {
		return nil, err
	}
	frame := make([]byte, overallLength)
	if _, err := io.ReadFull(r, frame); err != nil {
		return nil, err
	}

	buffer := bytes.NewReader(frame)
	var elements []InformationElement
	for buffer.Len() > 0 {
		element, err := ReadInformationElement(buffer)
		if err != nil {
			return nil, err
		}
		elements = append(elements, element)
	}
	return elements, nil
}

// ReadInformationElements reads a bare sequence of information elements,
// without the protocol revision and overall length wrapper, until the reader
// is exhausted. This form is used for standalone exchanges such as the
// confirmation the gateway returns for a mobile-terminated message. The
// stream may only end at an element boundary; running dry inside an element
// is an I/O error.
func ReadInformationElements(r io.Reader) ([]InformationElement, error) {
	var elements []InformationElement
	for {
		var iei [1]byte
		if _, err := io.ReadFull(r, iei[:]); err == io.EOF {
			return elements, nil
		} else if err != nil {
			return nil, err
		}
		element, err := readTaggedElement(iei[0], r)
		if err != nil {
			return nil, err
		}
		elements = append(elements, element)
	}
}

func writeFields(w io.Writer, fields ...any) error {
	for _, field := range fields {
		if err := binary.Write(w, binary.BigEndian, field); err != nil {
			return err
		}
	}
	return nil
}
