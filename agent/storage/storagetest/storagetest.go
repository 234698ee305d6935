// Package storagetest offers the common test suite of the api.Mediator
// implementations.
package storagetest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/findy-network/findy-mediator/agent/storage/api"
	"github.com/lainio/err2/assert"
)

const (
	AuthKey  = "6ri8Tc8M9bX8A4jCvt4eWGJ8ZHj2BBWWp6v1HJ6VGGeM"
	AuthKey2 = "HTpm8DBqdM5KSQZZSkNMpTfEH3Na8CofbWnQWqvVYiRi"
	Key1     = "B12NYF8RrR3h41TDCTJojY59usg3mbtbjnFs7Eud1Y6u"
	Key2     = "2ZpHKNRHDH7wLnDuF3xnByBmJ7YoLzGv1EPPo3S1qxZw"
)

// Run runs the suite for the storage. The storage must be empty.
func Run(t *testing.T, s api.Mediator) {
	t.Run("account", func(t *testing.T) { testAccount(t, s) })
	t.Run("recipients", func(t *testing.T) { testRecipients(t, s) })
	t.Run("device info", func(t *testing.T) { testDeviceInfo(t, s) })
	t.Run("concurrent", func(t *testing.T) { testConcurrent(t, s) })
}

func testAccount(t *testing.T, s api.Mediator) {
	assert.PushTester(t)
	defer assert.PopTester()
	ctx := context.Background()

	_, err := s.GetAccount(ctx, AuthKey)
	assert.That(errors.Is(err, api.ErrNoAccount), "got:", err)

	assert.NoError(s.CreateAccount(ctx, AuthKey, Key2, []byte(`{"id":"did:peer:1"}`)))
	err = s.CreateAccount(ctx, AuthKey, Key2, nil)
	assert.That(errors.Is(err, api.ErrAccountExists), "got:", err)

	a, err := s.GetAccount(ctx, AuthKey)
	assert.NoError(err)
	assert.Equal(AuthKey, a.AuthKey)
	assert.Equal(Key2, a.SigningKey)
	assert.Equal(`{"id":"did:peer:1"}`, string(a.DIDDoc))
}

func testRecipients(t *testing.T, s api.Mediator) {
	assert.PushTester(t)
	defer assert.PopTester()
	ctx := context.Background()

	_, err := s.ListRecipientKeys(ctx, AuthKey2)
	assert.That(errors.Is(err, api.ErrNoAccount), "got:", err)
	err = s.AddRecipient(ctx, AuthKey2, Key1)
	assert.That(errors.Is(err, api.ErrNoAccount), "got:", err)

	assert.NoError(s.CreateAccount(ctx, AuthKey2, Key2, nil))
	keys, err := s.ListRecipientKeys(ctx, AuthKey2)
	assert.NoError(err)
	assert.SLen(keys, 0)

	assert.NoError(s.AddRecipient(ctx, AuthKey2, Key2))
	assert.NoError(s.AddRecipient(ctx, AuthKey2, Key1))
	assert.NoError(s.AddRecipient(ctx, AuthKey2, Key1)) // duplicate is success

	keys, err = s.ListRecipientKeys(ctx, AuthKey2)
	assert.NoError(err)
	assert.DeepEqual([]string{Key2, Key1}, keys)

	assert.NoError(s.RemoveRecipient(ctx, AuthKey2, Key2))
	assert.NoError(s.RemoveRecipient(ctx, AuthKey2, Key2)) // absent is success

	keys, err = s.ListRecipientKeys(ctx, AuthKey2)
	assert.NoError(err)
	assert.DeepEqual([]string{Key1}, keys)

	// other account's keys are not visible
	other, err := s.ListRecipientKeys(ctx, AuthKey)
	assert.NoError(err)
	for _, k := range other {
		assert.NotEqual(Key1, k)
	}
}

func testDeviceInfo(t *testing.T, s api.Mediator) {
	assert.PushTester(t)
	defer assert.PopTester()
	ctx := context.Background()

	_, err := s.RetrieveDeviceInfo(ctx, AuthKey)
	assert.That(errors.Is(err, api.ErrNotFound), "got:", err)

	token, platform := "token", "ios"
	assert.NoError(s.SetDeviceInfo(ctx, AuthKey, &token, &platform))

	di, err := s.RetrieveDeviceInfo(ctx, AuthKey)
	assert.NoError(err)
	assert.Equal(token, *di.Token)
	assert.Equal(platform, *di.Platform)

	assert.NoError(s.SetDeviceInfo(ctx, AuthKey, nil, nil))
	_, err = s.RetrieveDeviceInfo(ctx, AuthKey)
	assert.That(errors.Is(err, api.ErrNotFound), "got:", err)

	err = s.SetDeviceInfo(ctx, "unknown", &token, &platform)
	assert.That(errors.Is(err, api.ErrNoAccount), "got:", err)
}

func testConcurrent(t *testing.T, s api.Mediator) {
	assert.PushTester(t)
	defer assert.PopTester()
	ctx := context.Background()

	const authKey, count = "concurrent", 20
	assert.NoError(s.CreateAccount(ctx, authKey, Key2, nil))

	wg := sync.WaitGroup{}
	errs := make(chan error, count)
	for i := 0; i < count; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- s.AddRecipient(ctx, authKey, fmt.Sprintf("key%02d", i))
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(err)
	}

	keys, err := s.ListRecipientKeys(ctx, authKey)
	assert.NoError(err)
	assert.SLen(keys, count)
}
