// Package sbdjson converts decoded SBD messages to and from a JSON
// representation. It is a pure adapter layer on top of the directip package;
// the codec itself never depends on it.
package sbdjson

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/a1ien/sbd-lib/directip"
	"github.com/a1ien/sbd-lib/imei"
)

// Message is the JSON shape of a directip.Message. Exactly one of MOHeader
// and MTHeader is set.
type Message struct {
	MOHeader      *MOHeader      `json:"mo_header,omitempty"`
	MTHeader      *MTHeader      `json:"mt_header,omitempty"`
	Payload       Payload        `json:"payload"`
	Location      *Location      `json:"location,omitempty"`
	Confirmations []Confirmation `json:"confirmations,omitempty"`
}

// MOHeader is the JSON shape of a mobile-originated header.
type MOHeader struct {
	AutoID        uint32    `json:"auto_id"`
	IMEI          imei.IMEI `json:"imei"`
	SessionStatus byte      `json:"session_status"`
	MOMSN         uint16    `json:"momsn"`
	MTMSN         uint16    `json:"mtmsn"`
	TimeOfSession time.Time `json:"time_of_session"`
}

// MTHeader is the JSON shape of a mobile-terminated header.
type MTHeader struct {
	MessageID uint32    `json:"message_id"`
	IMEI      imei.IMEI `json:"imei"`
	Flags     uint16    `json:"flags"`
}

// Payload carries the payload bytes and their MO/MT direction.
type Payload struct {
	Direction string `json:"direction"`
	Data      []byte `json:"data"`
}

// Location is the JSON shape of the location information.
type Location struct {
	Direction                  string  `json:"direction"`
	LatitudeDegrees            uint8   `json:"latitude_degrees"`
	LatitudeThousandthMinutes  uint16  `json:"latitude_thousandth_minutes"`
	LongitudeDegrees           uint8   `json:"longitude_degrees"`
	LongitudeThousandthMinutes uint16  `json:"longitude_thousandth_minutes"`
	RadiusKilometers           *uint32 `json:"radius_km,omitempty"`
}

// Confirmation is the JSON shape of a delivery confirmation. Success is used
// for the MO variant, the remaining fields for the MT variant.
type Confirmation struct {
	Direction string `json:"direction"`
	Success   bool   `json:"success,omitempty"`
	MessageID uint32 `json:"message_id,omitempty"`
	IMEI      string `json:"imei,omitempty"`
	AutoID    uint32 `json:"auto_id,omitempty"`
	Status    int16  `json:"status,omitempty"`
}

const (
	directionMO = "MO"
	directionMT = "MT"
)

var directionByName = map[string]directip.LocationDirection{
	"NE": directip.DirectionNE,
	"SE": directip.DirectionSE,
	"NW": directip.DirectionNW,
	"SW": directip.DirectionSW,
}

// FromMessage converts a decoded message into its JSON shape.
func FromMessage(message *directip.Message) (Message, error) {
	var result Message

	switch header := message.Header().(type) {
	case directip.MOHeader:
		result.MOHeader = &MOHeader{
			AutoID:        header.AutoID,
			IMEI:          header.IMEI,
			SessionStatus: byte(header.SessionStatus),
			MOMSN:         header.MOMSN,
			MTMSN:         header.MTMSN,
			TimeOfSession: header.TimeOfSession,
		}
		result.Payload.Direction = directionMO
	case directip.MTHeader:
		result.MTHeader = &MTHeader{
			MessageID: header.MessageID,
			IMEI:      header.IMEI,
			Flags:     header.Flags,
		}
		result.Payload.Direction = directionMT
	default:
		return Message{}, fmt.Errorf("unexpected header type %T", message.Header())
	}

	result.Payload.Data = message.Payload()

	if location, ok := message.Location(); ok {
		result.Location = &Location{
			Direction:                  location.Direction.String(),
			LatitudeDegrees:            location.Latitude.Degrees,
			LatitudeThousandthMinutes:  location.Latitude.ThousandthMinutes,
			LongitudeDegrees:           location.Longitude.Degrees,
			LongitudeThousandthMinutes: location.Longitude.ThousandthMinutes,
		}
		if location.Radius.Valid {
			radius := location.Radius.Kilometers
			result.Location.RadiusKilometers = &radius
		}
	}

	for _, element := range message.InformationElements() {
		switch confirmation := element.(type) {
		case directip.MOConfirmation:
			result.Confirmations = append(result.Confirmations, Confirmation{
				Direction: directionMO,
				Success:   confirmation.Status,
			})
		case directip.MTConfirmation:
			result.Confirmations = append(result.Confirmations, Confirmation{
				Direction: directionMT,
				MessageID: confirmation.MessageID,
				IMEI:      confirmation.IMEI.String(),
				AutoID:    confirmation.AutoID,
				Status:    confirmation.Status,
			})
		default:
			return Message{}, fmt.Errorf("unexpected information element type %T", element)
		}
	}

	return result, nil
}

// ToMessage reassembles the JSON shape into a directip.Message, re-validating
// the same invariants as parsing from the wire.
func (m Message) ToMessage() (*directip.Message, error) {
	var elements []directip.InformationElement

	if m.MOHeader != nil {
		sessionStatus, err := directip.ParseSessionStatus(m.MOHeader.SessionStatus)
		if err != nil {
			return nil, err
		}
		elements = append(elements, directip.MOHeader{
			AutoID:        m.MOHeader.AutoID,
			IMEI:          m.MOHeader.IMEI,
			SessionStatus: sessionStatus,
			MOMSN:         m.MOHeader.MOMSN,
			MTMSN:         m.MOHeader.MTMSN,
			TimeOfSession: m.MOHeader.TimeOfSession,
		})
	}
	if m.MTHeader != nil {
		elements = append(elements, directip.MTHeader{
			MessageID: m.MTHeader.MessageID,
			IMEI:      m.MTHeader.IMEI,
			Flags:     m.MTHeader.Flags,
		})
	}

	switch m.Payload.Direction {
	case directionMO:
		elements = append(elements, directip.MOPayload(m.Payload.Data))
	case directionMT:
		elements = append(elements, directip.MTPayload(m.Payload.Data))
	default:
		return nil, fmt.Errorf("unknown payload direction %q", m.Payload.Direction)
	}

	if m.Location != nil {
		direction, ok := directionByName[m.Location.Direction]
		if !ok {
			return nil, fmt.Errorf("unknown location direction %q", m.Location.Direction)
		}
		location := directip.LocationInformation{
			Direction: direction,
			Latitude: directip.Coordinate{
				Degrees:           m.Location.LatitudeDegrees,
				ThousandthMinutes: m.Location.LatitudeThousandthMinutes,
			},
			Longitude: directip.Coordinate{
				Degrees:           m.Location.LongitudeDegrees,
				ThousandthMinutes: m.Location.LongitudeThousandthMinutes,
			},
		}
		if m.Location.RadiusKilometers != nil {
			location.Radius = directip.Radius{Valid: true, Kilometers: *m.Location.RadiusKilometers}
		}
		elements = append(elements, location)
	}

	for _, confirmation := range m.Confirmations {
		switch confirmation.Direction {
		case directionMO:
			elements = append(elements, directip.MOConfirmation{Status: confirmation.Success})
		case directionMT:
			id, err := imei.Parse(confirmation.IMEI)
			if err != nil {
				return nil, err
			}
			elements = append(elements, directip.MTConfirmation{
				MessageID: confirmation.MessageID,
				IMEI:      id,
				AutoID:    confirmation.AutoID,
				Status:    confirmation.Status,
			})
		default:
			return nil, fmt.Errorf("unknown confirmation direction %q", confirmation.Direction)
		}
	}

	return directip.NewMessage(elements)
}

// Encode writes the JSON representation of the given message to the writer.
func Encode(w io.Writer, message *directip.Message) error {
	converted, err := FromMessage(message)
	if err != nil {
		return err
	}
	return json.NewEncoder(w).Encode(converted)
}

// Decode reads a JSON representation from the reader and reassembles it into
// a message.
func Decode(r io.Reader) (*directip.Message, error) {
	var message Message
	if err := json.NewDecoder(r).Decode(&message); err != nil {
		return nil, err
	}
	return message.ToMessage()
}
