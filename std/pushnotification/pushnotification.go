// Package pushnotification includes the messages of the push-notifications-fcm
// protocol which the mediator's clients use to register the device to notify.
package pushnotification

import (
	"github.com/findy-network/findy-common-go/dto"
	"github.com/findy-network/findy-mediator/agent/aries"
	"github.com/findy-network/findy-mediator/agent/didcomm"
	"github.com/findy-network/findy-mediator/agent/pltype"
	"github.com/findy-network/findy-mediator/std/decorator"
	"github.com/lainio/err2/assert"
)

var ProtocolV1_0 = didcomm.ProtocolID{
	Name:  pltype.ProtocolPushNotificationsFCM,
	Major: 1,
	Minor: 0,
}

// Message is a push-notifications-fcm protocol message. The set of the
// implementations is closed to this package.
type Message interface {
	didcomm.Message
	pushNotification()
}

func msgType(kind string) didcomm.MsgType {
	return didcomm.NewMsgType(ProtocolV1_0.Name, ProtocolV1_0.Major,
		ProtocolV1_0.Minor, kind)
}

func Variants() []didcomm.MsgType {
	return []didcomm.MsgType{
		msgType(pltype.HandlerDeviceInfo),
		msgType(pltype.HandlerGetDeviceInfo),
		msgType(pltype.HandlerSetDeviceInfo),
		msgType(pltype.HandlerReportProblem),
	}
}

func init() {
	c := aries.Creator
	c.Add(ProtocolV1_0, pltype.HandlerDeviceInfo, didcomm.NewFactor[DeviceInfo]())
	c.Add(ProtocolV1_0, pltype.HandlerGetDeviceInfo, didcomm.NewFactor[GetDeviceInfo]())
	c.Add(ProtocolV1_0, pltype.HandlerSetDeviceInfo, didcomm.NewFactor[SetDeviceInfo]())
	c.Add(ProtocolV1_0, pltype.HandlerReportProblem, didcomm.NewFactor[ProblemReport]())

	assert.NoError(c.CheckTotal(Variants()...))
}

func newHeader(kind string, thread *decorator.Thread) didcomm.Header {
	return didcomm.NewHeader(msgType(kind), aries.MsgCreator.NewID(), thread)
}

func NewDeviceInfo(token, platform string, thread *decorator.Thread) *DeviceInfo {
	return &DeviceInfo{
		Header:         newHeader(pltype.HandlerDeviceInfo, thread),
		DeviceToken:    token,
		DevicePlatform: platform,
	}
}

func NewGetDeviceInfo() *GetDeviceInfo {
	return &GetDeviceInfo{Header: newHeader(pltype.HandlerGetDeviceInfo, nil)}
}

// NewSetDeviceInfo returns a registration message. Nil token and platform
// build a clear request.
func NewSetDeviceInfo(token, platform *string) *SetDeviceInfo {
	return &SetDeviceInfo{
		Header:         newHeader(pltype.HandlerSetDeviceInfo, nil),
		DeviceToken:    token,
		DevicePlatform: platform,
	}
}

func NewProblemReport(code ProblemCode, explain string, thread *decorator.Thread) *ProblemReport {
	return &ProblemReport{
		Header:      newHeader(pltype.HandlerReportProblem, thread),
		ProblemCode: code,
		Explain:     explain,
	}
}

func (m *DeviceInfo) MsgType() didcomm.MsgType { return msgType(pltype.HandlerDeviceInfo) }
func (m *DeviceInfo) JSON() []byte             { return dto.ToJSONBytes(m) }
func (m *DeviceInfo) pushNotification()        {}

func (m *GetDeviceInfo) MsgType() didcomm.MsgType { return msgType(pltype.HandlerGetDeviceInfo) }
func (m *GetDeviceInfo) JSON() []byte             { return dto.ToJSONBytes(m) }
func (m *GetDeviceInfo) pushNotification()        {}

func (m *SetDeviceInfo) MsgType() didcomm.MsgType { return msgType(pltype.HandlerSetDeviceInfo) }
func (m *SetDeviceInfo) JSON() []byte             { return dto.ToJSONBytes(m) }
func (m *SetDeviceInfo) pushNotification()        {}

func (m *ProblemReport) MsgType() didcomm.MsgType { return msgType(pltype.HandlerReportProblem) }
func (m *ProblemReport) JSON() []byte             { return dto.ToJSONBytes(m) }
func (m *ProblemReport) pushNotification()        {}
