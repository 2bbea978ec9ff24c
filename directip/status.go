package directip

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/a1ien/sbd-lib/imei"
)

// ConfirmationStatus is a delivery confirmation, either a MOConfirmation or a
// MTConfirmation. It is distinct from the message header and travels in its
// own information element.
type ConfirmationStatus interface {
	InformationElement

	// Success reports whether the confirmed session or delivery succeeded.
	Success() bool

	confirmationStatus()
}

// MOConfirmation is the delivery confirmation of a mobile-originated session.
type MOConfirmation struct {
	// Status is true if the SBD session completed successfully.
	Status bool
}

func readMOConfirmation(r io.Reader) (MOConfirmation, error) {
	var status byte
	if err := binary.Read(r, binary.BigEndian, &status); err != nil {
		return MOConfirmation{}, err
	}
	return MOConfirmation{Status: status == 1}, nil
}

// Encode this confirmation, including its identifier and length prefix.
func (c MOConfirmation) Encode(w io.Writer) error {
	var status byte
	if c.Status {
		status = 1
	}
	return writeFields(w, moConfirmationIEI, uint16(1), status)
}

// Length returns the number of bytes the encoded confirmation occupies,
// including its identifier and length prefix.
func (c MOConfirmation) Length() int {
	return 4
}

// Success reports whether the SBD session completed successfully.
func (c MOConfirmation) Success() bool {
	return c.Status
}

func (c MOConfirmation) String() string {
	return fmt.Sprintf("MO confirmation, success: %t", c.Status)
}

func (c MOConfirmation) informationElement() {}
func (c MOConfirmation) confirmationStatus() {}

// MTConfirmation is the confirmation the gateway returns for a
// mobile-terminated message.
type MTConfirmation struct {
	// MessageID is the client-assigned identifier from the MT header.
	MessageID uint32
	// IMEI is the device identifier.
	IMEI imei.IMEI
	// AutoID is the gateway-assigned identifier of the queued message.
	AutoID uint32
	// Status is the message status; values greater than zero indicate
	// success, zero and negative values carry gateway error codes.
	Status int16
}

const mtConfirmationBodyLength = 25

func readMTConfirmation(r io.Reader) (MTConfirmation, error) {
	var result MTConfirmation
	if err := binary.Read(r, binary.BigEndian, &result.MessageID); err != nil {
		return MTConfirmation{}, err
	}
	if _, err := io.ReadFull(r, result.IMEI[:]); err != nil {
		return MTConfirmation{}, err
	}
	if err := binary.Read(r, binary.BigEndian, &result.AutoID); err != nil {
		return MTConfirmation{}, err
	}
	if err := binary.Read(r, binary.BigEndian, &result.Status); err != nil {
		return MTConfirmation{}, err
	}
	return result, nil
}

// Encode this confirmation, including its identifier and length prefix.
func (c MTConfirmation) Encode(w io.Writer) error {
	return writeFields(w,
		mtConfirmationIEI,
		uint16(mtConfirmationBodyLength),
		c.MessageID,
		c.IMEI,
		c.AutoID,
		c.Status,
	)
}

// Length returns the number of bytes the encoded confirmation occupies,
// including its identifier and length prefix.
func (c MTConfirmation) Length() int {
	return mtConfirmationBodyLength + 3
}

// Success reports whether the message was accepted for delivery.
func (c MTConfirmation) Success() bool {
	return c.Status > 0
}

func (c MTConfirmation) String() string {
	return fmt.Sprintf("MT confirmation message_id: %d, imei: %s, auto_id: %d, status: %d",
		c.MessageID, c.IMEI, c.AutoID, c.Status)
}

func (c MTConfirmation) informationElement() {}
func (c MTConfirmation) confirmationStatus() {}
