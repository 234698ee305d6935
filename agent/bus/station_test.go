package bus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStation_Broadcast(t *testing.T) {
	s := New()
	own := ListenKey{AuthKey: "auth1", ClientID: "c1"}
	all := ListenKey{AuthKey: AllAccounts, ClientID: "c2"}
	ownCh := s.AddListener(own)
	allCh := s.AddListener(all)

	assert.True(t, s.Broadcast(Event{Type: KeylistUpdated, AuthKey: "auth1", ThreadID: "1"}))
	ev := <-ownCh
	assert.Equal(t, KeylistUpdated, ev.Type)
	assert.Equal(t, "1", ev.ThreadID)
	ev = <-allCh
	assert.Equal(t, "auth1", ev.AuthKey)

	assert.True(t, s.Broadcast(Event{Type: AccountCreated, AuthKey: "auth2"}))
	assert.Len(t, ownCh, 0)
	ev = <-allCh
	assert.Equal(t, "AccountCreated", ev.Type.String())

	s.RmListener(own)
	_, ok := <-ownCh
	assert.False(t, ok)
	s.RmListener(all)
	assert.False(t, s.Broadcast(Event{Type: DeviceInfoSet, AuthKey: "auth1"}))
}

func TestStation_FullListener(t *testing.T) {
	s := New()
	key := ListenKey{AuthKey: "auth1", ClientID: "slow"}
	ch := s.AddListener(key)
	defer s.RmListener(key)

	for i := 0; i < chanSize+2; i++ {
		s.Broadcast(Event{Type: KeylistUpdated, AuthKey: "auth1"})
	}
	assert.Len(t, ch, chanSize)
}
