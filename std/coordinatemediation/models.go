package coordinatemediation

import (
	"encoding/json"
	"fmt"

	"github.com/findy-network/findy-mediator/agent/didcomm"
)

// Action is a keylist update action.
type Action string

const (
	ActionAdd    Action = "add"
	ActionRemove Action = "remove"
)

func (a *Action) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch Action(s) {
	case ActionAdd, ActionRemove:
		*a = Action(s)
		return nil
	}
	return fmt.Errorf("unknown keylist update action %q", s)
}

// Result is a result of one keylist update item.
type Result string

const (
	ResultSuccess     Result = "success"
	ResultServerError Result = "server_error"
	ResultClientError Result = "client_error"
	ResultNoChange    Result = "no_change"
)

func (r *Result) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch Result(s) {
	case ResultSuccess, ResultServerError, ResultClientError, ResultNoChange:
		*r = Result(s)
		return nil
	}
	return fmt.Errorf("unknown keylist update result %q", s)
}

type MediateRequest struct {
	didcomm.Header
}

// GrantContent is the content of the mediate grant.
type GrantContent struct {
	Endpoint    string   `json:"endpoint"`
	RoutingKeys []string `json:"routing_keys"`
}

type MediateGrant struct {
	didcomm.Header
	GrantContent
}

type MediateDeny struct {
	didcomm.Header
}

type KeylistUpdateItem struct {
	RecipientKey string `json:"recipient_key"`
	Action       Action `json:"action"`
}

type KeylistUpdate struct {
	didcomm.Header
	Updates []KeylistUpdateItem `json:"updates"`
}

type KeylistUpdateResponseItem struct {
	RecipientKey string `json:"recipient_key"`
	Action       Action `json:"action"`
	Result       Result `json:"result"`
}

type KeylistUpdateResponse struct {
	didcomm.Header
	Updated []KeylistUpdateResponseItem `json:"updated"`
}

// Paginate is an optional paging request of the keylist query.
type Paginate struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

type KeylistQuery struct {
	didcomm.Header
	Paginate *Paginate `json:"paginate,omitempty"`
}

type KeylistItem struct {
	RecipientKey string `json:"recipient_key"`
}

// Pagination tells which part of the keylist the message includes.
type Pagination struct {
	Count     int `json:"count"`
	Offset    int `json:"offset"`
	Remaining int `json:"remaining"`
}

type Keylist struct {
	didcomm.Header
	Keys       []KeylistItem `json:"keys"`
	Pagination *Pagination   `json:"pagination,omitempty"`
}
