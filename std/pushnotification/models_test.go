package pushnotification

import (
	"testing"

	"github.com/findy-network/findy-mediator/agent/aries"
	"github.com/findy-network/findy-mediator/std/decorator"
	"github.com/lainio/err2/assert"
	"github.com/stretchr/testify/require"
)

func TestSetDeviceInfo_Decode(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		token    *string
		platform *string
	}{
		{"both", `{"@type":"https://didcomm.org/push-notifications-fcm/1.0/set-device-info","@id":"1","device_token":"abc","device_platform":"ios"}`,
			ptr("abc"), ptr("ios")},
		{"token only", `{"@type":"https://didcomm.org/push-notifications-fcm/1.0/set-device-info","@id":"1","device_token":"abc"}`,
			ptr("abc"), nil},
		{"null values", `{"@type":"https://didcomm.org/push-notifications-fcm/1.0/set-device-info","@id":"1","device_token":null,"device_platform":null}`,
			nil, nil},
		{"minor 3", `{"@type":"https://didcomm.org/push-notifications-fcm/1.3/set-device-info","@id":"1"}`,
			nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.PushTester(t)
			defer assert.PopTester()

			pl, err := aries.PayloadCreator.NewFromData([]byte(tt.data))
			assert.NoError(err)
			msg, ok := pl.Message.(*SetDeviceInfo)
			assert.That(ok)
			assert.DeepEqual(tt.token, msg.DeviceToken)
			assert.DeepEqual(tt.platform, msg.DevicePlatform)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	thread := decorator.ReplyTo("a2c0e9a4-3c2e-4b8a-8e0f-2b0b5cd3e0c7")
	tests := []struct {
		name string
		msg  Message
	}{
		{"device-info", NewDeviceInfo("token", "android", thread)},
		{"get-device-info", NewGetDeviceInfo()},
		{"set-device-info", NewSetDeviceInfo(ptr("token"), ptr("ios"))},
		{"set-device-info", NewSetDeviceInfo(nil, nil)},
		{"report-problem", NewProblemReport(RequestNotAccepted, "Device info not found.", thread)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.PushTester(t)
			defer assert.PopTester()

			assert.Equal(tt.name, tt.msg.MsgType().Kind)

			data := aries.MsgCreator.Encode(tt.msg)
			pl, err := aries.PayloadCreator.NewFromData(data)
			assert.NoError(err)
			assert.DeepEqual(tt.msg, pl.Message)
		})
	}
}

func TestProblemReport_WireForm(t *testing.T) {
	m := NewProblemReport(ResponseProcessingError, "Failed to set device info.",
		decorator.ReplyTo("req"))
	m.SetID("resp")

	require.JSONEq(t, `{
		"@type": "https://didcomm.org/push-notifications-fcm/1.0/report-problem",
		"@id": "resp",
		"~thread": {"thid": "req"},
		"problem_code": "response_processing_error",
		"explain": "Failed to set device info."
	}`, string(aries.MsgCreator.Encode(m)))
}

func TestProblemReport_UnknownCode(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	_, err := aries.PayloadCreator.NewFromData([]byte(`{"@type":"https://didcomm.org/push-notifications-fcm/1.0/report-problem","@id":"1","problem_code":"oops","explain":""}`))
	assert.Error(err)
}

func ptr(s string) *string {
	return &s
}
