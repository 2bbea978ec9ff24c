package directip

import (
	"encoding/binary"
	"fmt"
	"io"
)

// LocationDirection is the compass quadrant of a location, packed into the
// top two bits of the location flags byte.
type LocationDirection byte

// All defined direction quadrants.
const (
	DirectionNE LocationDirection = 0x00
	DirectionSE LocationDirection = 0x40
	DirectionNW LocationDirection = 0x80
	DirectionSW LocationDirection = 0xC0
)

func (d LocationDirection) String() string {
	switch d {
	case DirectionNE:
		return "NE"
	case DirectionSE:
		return "SE"
	case DirectionNW:
		return "NW"
	case DirectionSW:
		return "SW"
	default:
		return fmt.Sprintf("0x%02x", byte(d))
	}
}

// Coordinate is the unsigned magnitude of a latitude or longitude: whole
// degrees plus thousandths of minutes. The sign is carried separately in the
// location's direction quadrant.
type Coordinate struct {
	Degrees           uint8
	ThousandthMinutes uint16
}

// Value returns the magnitude as a fractional number of degrees. It is
// always non-negative; combining it with the direction quadrant into a
// signed coordinate is left to the caller.
func (c Coordinate) Value() float64 {
	return float64(c.Degrees) + float64(c.ThousandthMinutes)/60000.0
}

// Radius is the optional circular error probability radius of a location.
// Valid is false if the location was transmitted without a radius.
type Radius struct {
	Valid      bool
	Kilometers uint32
}

// LocationInformation is the position estimate the gateway attaches to a
// mobile-originated message. A message carries at most one.
type LocationInformation struct {
	// Direction is the compass quadrant of the position.
	Direction LocationDirection
	// Latitude is the unsigned latitude magnitude.
	Latitude Coordinate
	// Longitude is the unsigned longitude magnitude.
	Longitude Coordinate
	// Radius is the optional error radius.
	Radius Radius
}

const (
	locationBodyLength           = 7
	locationWithRadiusBodyLength = 11
)

// parseLocationInformation decodes a location from the body of its
// information element. The radius is present exactly when the declared body
// length is 11 bytes; there is no presence flag. Any flag bits besides the
// direction quadrant are dropped.
func parseLocationInformation(body []byte) (LocationInformation, error) {
	if len(body) < locationBodyLength {
		return LocationInformation{}, io.ErrUnexpectedEOF
	}
	result := LocationInformation{
		Direction: LocationDirection(body[0] & 0xC0),
		Latitude: Coordinate{
			Degrees:           body[1],
			ThousandthMinutes: binary.BigEndian.Uint16(body[2:4]),
		},
		Longitude: Coordinate{
			Degrees:           body[4],
			ThousandthMinutes: binary.BigEndian.Uint16(body[5:7]),
		},
	}
	if len(body) == locationWithRadiusBodyLength {
		result.Radius = Radius{Valid: true, Kilometers: binary.BigEndian.Uint32(body[7:11])}
	}
	return result, nil
}

// Encode this location, including its identifier and length prefix. The
// flags byte carries only the direction quadrant, all other bits are zero.
func (l LocationInformation) Encode(w io.Writer) error {
	err := writeFields(w,
		locationIEI,
		uint16(l.Length()-3),
		byte(l.Direction),
		l.Latitude.Degrees,
		l.Latitude.ThousandthMinutes,
		l.Longitude.Degrees,
		l.Longitude.ThousandthMinutes,
	)
	if err != nil {
		return err
	}
	if l.Radius.Valid {
		return writeFields(w, l.Radius.Kilometers)
	}
	return nil
}

// Length returns the number of bytes the encoded location occupies, including
// its identifier and length prefix: 10 without a radius, 14 with one.
func (l LocationInformation) Length() int {
	if l.Radius.Valid {
		return locationWithRadiusBodyLength + 3
	}
	return locationBodyLength + 3
}

func (l LocationInformation) String() string {
	if l.Radius.Valid {
		return fmt.Sprintf("direction: %v, latitude: %.7f, longitude: %.7f, radius: %d km",
			l.Direction, l.Latitude.Value(), l.Longitude.Value(), l.Radius.Kilometers)
	}
	return fmt.Sprintf("direction: %v, latitude: %.7f, longitude: %.7f",
		l.Direction, l.Latitude.Value(), l.Longitude.Value())
}

func (l LocationInformation) informationElement() {}
