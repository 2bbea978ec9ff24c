// Package imei provides the fixed-width device identifier used by the
// Iridium SBD service: 15 ASCII digits, the International Mobile Equipment
// Identity of the transceiver.
package imei

import (
	"fmt"
)

// Length of an IMEI in bytes.
const Length = 15

// IMEI is the 15 digit identifier of an Iridium transceiver. The zero value
// is not a valid IMEI; use Parse or FromBytes to construct validated values.
type IMEI [Length]byte

// Parse validates the given string as an IMEI: exactly 15 ASCII digits.
func Parse(s string) (IMEI, error) {
	return FromBytes([]byte(s))
}

// FromBytes validates the given bytes as an IMEI: exactly 15 ASCII digits.
func FromBytes(b []byte) (IMEI, error) {
	if len(b) != Length {
		return IMEI{}, fmt.Errorf("an IMEI must be %d digits long, got %d bytes", Length, len(b))
	}
	var result IMEI
	for i, digit := range b {
		if digit < '0' || digit > '9' {
			return IMEI{}, fmt.Errorf("an IMEI must consist of ASCII digits, got 0x%02x at index %d", digit, i)
		}
		result[i] = digit
	}
	return result, nil
}

// String returns the IMEI as a string of digits.
func (i IMEI) String() string {
	return string(i[:])
}

// Bytes returns the IMEI as a byte slice view.
func (i IMEI) Bytes() []byte {
	return i[:]
}

// MarshalText implements encoding.TextMarshaler.
func (i IMEI) MarshalText() ([]byte, error) {
	return i[:], nil
}

// UnmarshalText implements encoding.TextUnmarshaler, validating the text the
// same way Parse does.
func (i *IMEI) UnmarshalText(text []byte) error {
	parsed, err := FromBytes(text)
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}
