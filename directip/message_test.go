package directip

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMOHeader(t *testing.T) MOHeader {
	t.Helper()
	return MOHeader{
		AutoID:        1,
		IMEI:          testIMEI(t),
		SessionStatus: SessionOK,
		MOMSN:         1,
		MTMSN:         0,
		TimeOfSession: time.Unix(1507000000, 0).UTC(),
	}
}

func TestNewMessage(t *testing.T) {
	header := testMOHeader(t)
	payload := MOPayload("hello")
	location := LocationInformation{
		Direction: DirectionNE,
		Latitude:  Coordinate{Degrees: 43, ThousandthMinutes: 30854},
		Longitude: Coordinate{Degrees: 41, ThousandthMinutes: 48860},
	}
	confirmation := MOConfirmation{Status: true}

	tt := []struct {
		desc     string
		elements []InformationElement
		expected error
	}{
		{
			desc:     "header and payload",
			elements: []InformationElement{header, payload},
		},
		{
			desc:     "with location and confirmation",
			elements: []InformationElement{header, payload, location, confirmation},
		},
		{
			desc:     "no header",
			elements: []InformationElement{payload},
			expected: ErrNoHeader,
		},
		{
			desc:     "no payload",
			elements: []InformationElement{header},
			expected: ErrNoPayload,
		},
		{
			desc:     "two headers",
			elements: []InformationElement{header, MTHeader{IMEI: testIMEI(t)}, payload},
			expected: ErrTwoHeaders,
		},
		{
			desc:     "two payloads",
			elements: []InformationElement{header, payload, MTPayload("again")},
			expected: ErrTwoPayloads,
		},
		{
			desc:     "two locations",
			elements: []InformationElement{header, payload, location, location},
			expected: ErrTwoLocations,
		},
	}
	for _, tc := range tt {
		t.Run(tc.desc, func(t *testing.T) {
			message, err := NewMessage(tc.elements)
			if tc.expected != nil {
				assert.Equal(t, tc.expected, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, header, message.Header())
				assert.Equal(t, []byte("hello"), message.Payload())
				assert.Equal(t, "300234063904190", message.IMEI())
			}
		})
	}
}

func TestMessageRoundtrip(t *testing.T) {
	location := LocationInformation{
		Direction: DirectionSW,
		Latitude:  Coordinate{Degrees: 43, ThousandthMinutes: 30854},
		Longitude: Coordinate{Degrees: 41, ThousandthMinutes: 48860},
		Radius:    Radius{Valid: true, Kilometers: 3},
	}
	message, err := NewMessage([]InformationElement{
		testMOHeader(t),
		MOPayload("test message from pete"),
		location,
		MOConfirmation{Status: true},
	})
	require.NoError(t, err)

	var buffer bytes.Buffer
	require.NoError(t, message.Encode(&buffer))

	actual, err := ReadMessage(&buffer)
	require.NoError(t, err)
	assert.Equal(t, message, actual)

	actualLocation, ok := actual.Location()
	require.True(t, ok)
	assert.Equal(t, location, actualLocation)
	require.Len(t, actual.InformationElements(), 1)
	assert.Equal(t, MOConfirmation{Status: true}, actual.InformationElements()[0])
}

func TestMessageMTRoundtrip(t *testing.T) {
	message, err := NewMessage([]InformationElement{
		MTHeader{MessageID: 4711, IMEI: testIMEI(t), Flags: FlagSendRingAlert},
		MTPayload("ground to device"),
	})
	require.NoError(t, err)

	var buffer bytes.Buffer
	require.NoError(t, message.Encode(&buffer))

	actual, err := ReadMessage(&buffer)
	require.NoError(t, err)
	assert.Equal(t, message, actual)
}

func TestReadMessageValues(t *testing.T) {
	message, err := ReadMessage(bytes.NewReader(mustHex(t, moMessageHex)))
	require.NoError(t, err)

	header, ok := message.Header().(MOHeader)
	require.True(t, ok)
	assert.Equal(t, uint32(1894516585), header.AutoID)
	assert.Equal(t, "300234063904190", header.IMEI.String())
	assert.Equal(t, SessionOK, header.SessionStatus)
	assert.Equal(t, uint16(75), header.MOMSN)
	assert.Equal(t, uint16(0), header.MTMSN)
	assert.Equal(t, time.Date(2015, time.July, 9, 18, 15, 8, 0, time.UTC).Unix(), header.TimeOfSession.Unix())
	assert.Equal(t, "test message from pete", string(message.Payload()))
	_, ok = message.Location()
	assert.False(t, ok)
}

func TestMessageEncodeReproducesBytes(t *testing.T) {
	raw := mustHex(t, moMessageHex)
	message, err := ReadMessage(bytes.NewReader(raw))
	require.NoError(t, err)

	var buffer bytes.Buffer
	require.NoError(t, message.Encode(&buffer))
	assert.Equal(t, raw, buffer.Bytes())
}

func TestMessageOverallLengthTooLong(t *testing.T) {
	message, err := NewMessage([]InformationElement{
		testMOHeader(t),
		MOPayload(make([]byte, math.MaxUint16)),
	})
	require.NoError(t, err)

	var buffer bytes.Buffer
	encodeErr := message.Encode(&buffer)
	assert.Equal(t, OverallLengthError(31+3+math.MaxUint16), encodeErr)
	assert.Zero(t, buffer.Len())
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "0-mo.sbd")
	require.NoError(t, os.WriteFile(path, mustHex(t, moMessageHex), 0o644))

	message, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "300234063904190", message.IMEI())

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.sbd"))
	assert.Error(t, err)
}

func TestMessageString(t *testing.T) {
	message, err := ReadMessage(bytes.NewReader(mustHex(t, moMessageHex)))
	require.NoError(t, err)
	assert.Contains(t, message.String(), "imei: 300234063904190")
	assert.Contains(t, message.String(), "payload: 22 bytes")
}
