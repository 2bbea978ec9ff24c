package sbdjson

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a1ien/sbd-lib/directip"
	"github.com/a1ien/sbd-lib/imei"
)

func testMessage(t *testing.T) *directip.Message {
	t.Helper()
	id, err := imei.Parse("300234063904190")
	require.NoError(t, err)

	message, err := directip.NewMessage([]directip.InformationElement{
		directip.MOHeader{
			AutoID:        1894516585,
			IMEI:          id,
			SessionStatus: directip.SessionOK,
			MOMSN:         75,
			MTMSN:         0,
			TimeOfSession: time.Unix(1436465708, 0).UTC(),
		},
		directip.MOPayload("test message from pete"),
		directip.LocationInformation{
			Direction: directip.DirectionSE,
			Latitude:  directip.Coordinate{Degrees: 43, ThousandthMinutes: 30854},
			Longitude: directip.Coordinate{Degrees: 41, ThousandthMinutes: 48860},
			Radius:    directip.Radius{Valid: true, Kilometers: 3},
		},
		directip.MOConfirmation{Status: true},
	})
	require.NoError(t, err)
	return message
}

func TestJSONRoundtrip(t *testing.T) {
	original := testMessage(t)

	var jsonBuffer bytes.Buffer
	require.NoError(t, Encode(&jsonBuffer, original))

	restored, err := Decode(&jsonBuffer)
	require.NoError(t, err)

	// the wire encoding is injective, so identical frames mean identical messages
	var originalFrame, restoredFrame bytes.Buffer
	require.NoError(t, original.Encode(&originalFrame))
	require.NoError(t, restored.Encode(&restoredFrame))
	assert.Equal(t, originalFrame.Bytes(), restoredFrame.Bytes())
}

func TestFromMessage(t *testing.T) {
	converted, err := FromMessage(testMessage(t))
	require.NoError(t, err)

	require.NotNil(t, converted.MOHeader)
	assert.Nil(t, converted.MTHeader)
	assert.Equal(t, uint32(1894516585), converted.MOHeader.AutoID)
	assert.Equal(t, "300234063904190", converted.MOHeader.IMEI.String())
	assert.Equal(t, "MO", converted.Payload.Direction)
	assert.Equal(t, []byte("test message from pete"), converted.Payload.Data)
	require.NotNil(t, converted.Location)
	assert.Equal(t, "SE", converted.Location.Direction)
	require.NotNil(t, converted.Location.RadiusKilometers)
	assert.Equal(t, uint32(3), *converted.Location.RadiusKilometers)
	require.Len(t, converted.Confirmations, 1)
	assert.True(t, converted.Confirmations[0].Success)
}

func TestToMessageValidates(t *testing.T) {
	converted, err := FromMessage(testMessage(t))
	require.NoError(t, err)

	unknownStatus := converted
	unknownStatus.MOHeader = &MOHeader{IMEI: converted.MOHeader.IMEI, SessionStatus: 99}
	_, err = unknownStatus.ToMessage()
	assert.Equal(t, directip.UnknownSessionStatusError(99), err)

	badDirection := converted
	badDirection.Payload.Direction = "sideways"
	_, err = badDirection.ToMessage()
	assert.Error(t, err)

	var missingHeader Message
	missingHeader.Payload = Payload{Direction: "MO", Data: []byte("x")}
	_, err = missingHeader.ToMessage()
	assert.Equal(t, directip.ErrNoHeader, err)
}

func TestDecodeInvalidJSON(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("{")))
	assert.Error(t, err)
}

func TestMTMessage(t *testing.T) {
	id, err := imei.Parse("123456789012345")
	require.NoError(t, err)

	message, err := directip.NewMessage([]directip.InformationElement{
		directip.MTHeader{MessageID: 4711, IMEI: id, Flags: directip.FlagSendRingAlert},
		directip.MTPayload{0xDE, 0xAD},
	})
	require.NoError(t, err)

	converted, err := FromMessage(message)
	require.NoError(t, err)
	require.NotNil(t, converted.MTHeader)
	assert.Equal(t, "MT", converted.Payload.Direction)

	restored, err := converted.ToMessage()
	require.NoError(t, err)
	assert.Equal(t, message, restored)
}
