package pushnotification

import (
	"encoding/json"
	"fmt"

	"github.com/findy-network/findy-mediator/agent/didcomm"
)

// DeviceInfo tells the registered device of the recipient. It's only sent as
// a response.
type DeviceInfo struct {
	didcomm.Header
	DeviceToken    string `json:"device_token"`
	DevicePlatform string `json:"device_platform"`
}

type GetDeviceInfo struct {
	didcomm.Header
}

// SetDeviceInfo registers the device. Token and platform are given or
// omitted together, omitting both clears the registration.
type SetDeviceInfo struct {
	didcomm.Header
	DeviceToken    *string `json:"device_token,omitempty"`
	DevicePlatform *string `json:"device_platform,omitempty"`
}

// ProblemCode is a code of the ProblemReport.
type ProblemCode string

const (
	RequestNotAccepted      ProblemCode = "request_not_accepted"
	RequestProcessingError  ProblemCode = "request_processing_error"
	ResponseNotAccepted     ProblemCode = "response_not_accepted"
	ResponseProcessingError ProblemCode = "response_processing_error"
)

func (c *ProblemCode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch ProblemCode(s) {
	case RequestNotAccepted, RequestProcessingError,
		ResponseNotAccepted, ResponseProcessingError:
		*c = ProblemCode(s)
		return nil
	}
	return fmt.Errorf("unknown problem code %q", s)
}

type ProblemReport struct {
	didcomm.Header
	ProblemCode ProblemCode `json:"problem_code"`
	Explain     string      `json:"explain"`
}
