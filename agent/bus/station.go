// Package bus delivers the mediator events to the listeners of the outer
// layers, e.g. a router which keeps its forward table in sync with the
// keylists.
package bus

import (
	"sync"

	"github.com/golang/glog"
	"github.com/lainio/err2/assert"
)

// AllAccounts is the listen key for the events of every account.
const AllAccounts = "*"

type EventType int

const (
	AccountCreated EventType = iota + 1
	KeylistUpdated
	DeviceInfoSet
)

func (t EventType) String() string {
	switch t {
	case AccountCreated:
		return "AccountCreated"
	case KeylistUpdated:
		return "KeylistUpdated"
	case DeviceInfoSet:
		return "DeviceInfoSet"
	}
	return "Unknown"
}

type Event struct {
	Type     EventType
	AuthKey  string
	ThreadID string
}

type ListenKey struct {
	AuthKey  string
	ClientID string
}

func (k ListenKey) String() string {
	return "ListenKey:" + k.AuthKey + "|" + k.ClientID
}

type EventChan chan Event

const chanSize = 8

// Events is the station the mediator broadcasts to.
var Events = New()

type stationMap map[ListenKey]EventChan

type Station struct {
	stationMap
	sync.Mutex
}

func New() *Station {
	return &Station{stationMap: make(stationMap)}
}

// AddListener returns a channel for the events of the account. The key must
// be unique.
func (s *Station) AddListener(key ListenKey) EventChan {
	c := make(EventChan, chanSize)

	s.Lock()
	defer s.Unlock()

	_, alreadyExists := s.stationMap[key]
	assert.That(!alreadyExists, "key: %s, already exists", key)
	s.stationMap[key] = c

	glog.V(4).Infoln(key.AuthKey, "listen ADD for:", key.ClientID)
	return c
}

// RmListener removes the listener and closes its channel.
func (s *Station) RmListener(key ListenKey) {
	s.Lock()
	defer s.Unlock()

	if ch, ok := s.stationMap[key]; ok {
		close(ch)
		delete(s.stationMap, key)
		glog.V(4).Infoln(key.AuthKey, "listen RM for:", key.ClientID)
	}
}

// Broadcast sends the event to the listeners of the account. A listener
// which doesn't keep up loses the event. Broadcast never blocks.
func (s *Station) Broadcast(ev Event) (sent bool) {
	s.Lock()
	defer s.Unlock()

	for key, ch := range s.stationMap {
		if key.AuthKey != ev.AuthKey && key.AuthKey != AllAccounts {
			continue
		}
		select {
		case ch <- ev:
			sent = true
			glog.V(3).Infoln(ev.AuthKey, ev.Type, "sent to:", key.ClientID)
		default:
			glog.Warningln(ev.AuthKey, ev.Type, "dropped, listener full:", key.ClientID)
		}
	}
	return sent
}
