package directip

import (
	"encoding/binary"
	"fmt"
	"io"
	"time"

	"github.com/a1ien/sbd-lib/imei"
)

// Header is the device and session header of an SBD message, either a
// MOHeader or a MTHeader. The set of variants is fixed by the DirectIP
// specification; use a type switch to access the variant's fields.
type Header interface {
	InformationElement

	header()
}

// SessionStatus describes the outcome of a mobile-originated SBD session,
// according to the DirectIP specification.
type SessionStatus byte

// All defined session status values.
const (
	SessionOK                      SessionStatus = 0
	SessionOKMTMessageTooLarge     SessionStatus = 1
	SessionOKLocationUnacceptable  SessionStatus = 2
	SessionTimeout                 SessionStatus = 10
	SessionMOMessageTooLarge       SessionStatus = 12
	SessionRFLinkLoss              SessionStatus = 13
	SessionIMEIProtocolAnomaly     SessionStatus = 14
	SessionProhibitedGatewayAccess SessionStatus = 15
)

// ParseSessionStatus validates the given byte against the closed set of
// defined session status values.
func ParseSessionStatus(b byte) (SessionStatus, error) {
	switch status := SessionStatus(b); status {
	case SessionOK,
		SessionOKMTMessageTooLarge,
		SessionOKLocationUnacceptable,
		SessionTimeout,
		SessionMOMessageTooLarge,
		SessionRFLinkLoss,
		SessionIMEIProtocolAnomaly,
		SessionProhibitedGatewayAccess:
		return status, nil
	default:
		return 0, UnknownSessionStatusError(b)
	}
}

func (s SessionStatus) String() string {
	switch s {
	case SessionOK:
		return "OK"
	case SessionOKMTMessageTooLarge:
		return "OK, MT message too large"
	case SessionOKLocationUnacceptable:
		return "OK, location of unacceptable quality"
	case SessionTimeout:
		return "session timeout"
	case SessionMOMessageTooLarge:
		return "MO message too large"
	case SessionRFLinkLoss:
		return "RF link loss"
	case SessionIMEIProtocolAnomaly:
		return "IMEI protocol anomaly"
	case SessionProhibitedGatewayAccess:
		return "prohibited gateway access"
	default:
		return fmt.Sprintf("unknown (%d)", byte(s))
	}
}

// Success reports whether the session delivered the message, possibly with
// reservations about the MT queue or the location quality.
func (s SessionStatus) Success() bool {
	return s == SessionOK || s == SessionOKMTMessageTooLarge || s == SessionOKLocationUnacceptable
}

// MOHeader is the header of a mobile-originated SBD message.
type MOHeader struct {
	// AutoID is the gateway-assigned identifier of the SBD session.
	AutoID uint32
	// IMEI is the device identifier.
	IMEI imei.IMEI
	// SessionStatus is the outcome of the SBD session.
	SessionStatus SessionStatus
	// MOMSN is the mobile-originated message sequence number.
	MOMSN uint16
	// MTMSN is the mobile-terminated message sequence number.
	MTMSN uint16
	// TimeOfSession is the session timestamp. It must not predate the Unix
	// epoch, the wire format cannot express that.
	TimeOfSession time.Time
}

const moHeaderBodyLength = 28

func readMOHeader(r io.Reader) (MOHeader, error) {
	var result MOHeader
	if err := binary.Read(r, binary.BigEndian, &result.AutoID); err != nil {
		return MOHeader{}, err
	}
	if _, err := io.ReadFull(r, result.IMEI[:]); err != nil {
		return MOHeader{}, err
	}
	var status byte
	if err := binary.Read(r, binary.BigEndian, &status); err != nil {
		return MOHeader{}, err
	}
	sessionStatus, err := ParseSessionStatus(status)
	if err != nil {
		return MOHeader{}, err
	}
	result.SessionStatus = sessionStatus
	if err := binary.Read(r, binary.BigEndian, &result.MOMSN); err != nil {
		return MOHeader{}, err
	}
	if err := binary.Read(r, binary.BigEndian, &result.MTMSN); err != nil {
		return MOHeader{}, err
	}
	var timestamp uint32
	if err := binary.Read(r, binary.BigEndian, &timestamp); err != nil {
		return MOHeader{}, err
	}
	result.TimeOfSession = time.Unix(int64(timestamp), 0).UTC()
	return result, nil
}

// Encode this header, including its identifier and length prefix. Encoding
// fails with NegativeTimestampError if the session time predates the Unix
// epoch.
func (h MOHeader) Encode(w io.Writer) error {
	timestamp := h.TimeOfSession.Unix()
	if timestamp < 0 {
		return NegativeTimestampError(timestamp)
	}
	return writeFields(w,
		moHeaderIEI,
		uint16(moHeaderBodyLength),
		h.AutoID,
		h.IMEI,
		byte(h.SessionStatus),
		h.MOMSN,
		h.MTMSN,
		uint32(timestamp),
	)
}

// Length returns the number of bytes the encoded header occupies, including
// its identifier and length prefix.
func (h MOHeader) Length() int {
	return moHeaderBodyLength + 3
}

func (h MOHeader) String() string {
	return fmt.Sprintf("MO auto_id: %d, session_status: %v, imei: %s, momsn: %d, mtmsn: %d, time: %s",
		h.AutoID, h.SessionStatus, h.IMEI, h.MOMSN, h.MTMSN, h.TimeOfSession.Format(time.RFC3339))
}

func (h MOHeader) informationElement() {}
func (h MOHeader) header()             {}

// MTHeader is the header of a mobile-terminated SBD message.
type MTHeader struct {
	// MessageID is the client-assigned identifier of the message.
	MessageID uint32
	// IMEI is the device identifier.
	IMEI imei.IMEI
	// Flags are the mobile-terminated disposition flags.
	Flags uint16
}

// Disposition flags for mobile-terminated messages.
const (
	FlagFlushMTQueue  uint16 = 0x0001
	FlagSendRingAlert uint16 = 0x0002
)

const mtHeaderBodyLength = 21

func readMTHeader(r io.Reader) (MTHeader, error) {
	var result MTHeader
	if err := binary.Read(r, binary.BigEndian, &result.MessageID); err != nil {
		return MTHeader{}, err
	}
	if _, err := io.ReadFull(r, result.IMEI[:]); err != nil {
		return MTHeader{}, err
	}
	if err := binary.Read(r, binary.BigEndian, &result.Flags); err != nil {
		return MTHeader{}, err
	}
	return result, nil
}

// Encode this header, including its identifier and length prefix.
func (h MTHeader) Encode(w io.Writer) error {
	return writeFields(w,
		mtHeaderIEI,
		uint16(mtHeaderBodyLength),
		h.MessageID,
		h.IMEI,
		h.Flags,
	)
}

// Length returns the number of bytes the encoded header occupies, including
// its identifier and length prefix.
func (h MTHeader) Length() int {
	return mtHeaderBodyLength + 3
}

func (h MTHeader) String() string {
	return fmt.Sprintf("MT message_id: %d, imei: %s, flags: 0x%04x", h.MessageID, h.IMEI, h.Flags)
}

func (h MTHeader) informationElement() {}
func (h MTHeader) header()             {}
