package wrapper

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"

	"github.com/findy-network/findy-mediator/agent/storage/api"
	"github.com/golang/glog"
	"github.com/hyperledger/aries-framework-go/spi/storage"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

const (
	NameAccount   = "account"
	NameRecipient = "recipient"
	NameDevice    = "device"
)

// BucketIDs are the stores Storage needs from its provider.
var BucketIDs = []string{NameAccount, NameRecipient, NameDevice}

// Storage implements the mediator storage with the stores of the provider.
// Recipient keys of an account are one JSON record, and the read-modify-write
// of the record is serialized with the lock.
type Storage struct {
	l sync.Mutex

	provider storage.Provider
	init     func() error

	accounts   storage.Store
	recipients storage.Store
	devices    storage.Store
}

// NewStorage returns a Storage using the provider. The provider must have
// stores named by BucketIDs.
func NewStorage(provider storage.Provider) *Storage {
	return &Storage{provider: provider}
}

// NewBoltStorage returns a Storage with the encrypted bolt StorageProvider.
func NewBoltStorage(conf api.Config) *Storage {
	p := New(Config{
		Key:       conf.Key,
		FileName:  conf.FileName,
		FilePath:  conf.FilePath,
		BucketIDs: BucketIDs,
	})
	s := NewStorage(p)
	s.init = p.Init
	return s
}

func (s *Storage) Open() (err error) {
	defer err2.Handle(&err, "wrapper storage open")

	s.l.Lock()
	defer s.l.Unlock()

	if s.init != nil {
		try.To(s.init())
	}
	s.accounts = try.To1(s.provider.OpenStore(NameAccount))
	s.recipients = try.To1(s.provider.OpenStore(NameRecipient))
	s.devices = try.To1(s.provider.OpenStore(NameDevice))
	return nil
}

func (s *Storage) Close() error {
	s.l.Lock()
	defer s.l.Unlock()

	return s.provider.Close()
}

func isNotFound(err error) bool {
	return errors.Is(err, storage.ErrDataNotFound)
}

func (s *Storage) hasAccount(authKey string) (bool, error) {
	_, err := s.accounts.Get(authKey)
	if isNotFound(err) {
		return false, nil
	}
	return err == nil, err
}

func (s *Storage) CreateAccount(_ context.Context, authKey, signingKey string, didDoc []byte) (err error) {
	defer err2.Handle(&err, "create account")

	s.l.Lock()
	defer s.l.Unlock()

	if try.To1(s.hasAccount(authKey)) {
		return api.ErrAccountExists
	}
	data := try.To1(json.Marshal(api.Account{
		AuthKey:    authKey,
		SigningKey: signingKey,
		DIDDoc:     didDoc,
	}))
	try.To(s.recipients.Put(authKey, try.To1(json.Marshal([]string{}))))
	try.To(s.accounts.Put(authKey, data))
	glog.V(5).Infoln("account created:", authKey)
	return nil
}

func (s *Storage) GetAccount(_ context.Context, authKey string) (a *api.Account, err error) {
	defer err2.Handle(&err, "get account")

	data, err := s.accounts.Get(authKey)
	if isNotFound(err) {
		return nil, api.ErrNoAccount
	}
	try.To(err)

	a = new(api.Account)
	try.To(json.Unmarshal(data, a))
	return a, nil
}

func (s *Storage) keys(authKey string) (keys []string, err error) {
	defer err2.Handle(&err)

	if !try.To1(s.hasAccount(authKey)) {
		return nil, api.ErrNoAccount
	}
	data, err := s.recipients.Get(authKey)
	if isNotFound(err) {
		return []string{}, nil
	}
	try.To(err)
	try.To(json.Unmarshal(data, &keys))
	return keys, nil
}

func (s *Storage) ListRecipientKeys(_ context.Context, authKey string) (keys []string, err error) {
	defer err2.Handle(&err, "list recipient keys")

	s.l.Lock()
	defer s.l.Unlock()

	keys = try.To1(s.keys(authKey))
	sort.Strings(keys)
	return keys, nil
}

// AddRecipient adds the key to the account. Adding an existing key succeeds.
func (s *Storage) AddRecipient(_ context.Context, authKey, keyB58 string) (err error) {
	defer err2.Handle(&err, "add recipient")

	s.l.Lock()
	defer s.l.Unlock()

	keys := try.To1(s.keys(authKey))
	for _, k := range keys {
		if k == keyB58 {
			glog.V(5).Infoln("recipient already added:", keyB58)
			return nil
		}
	}
	keys = append(keys, keyB58)
	try.To(s.recipients.Put(authKey, try.To1(json.Marshal(keys))))
	glog.V(5).Infoln("recipient added:", keyB58)
	return nil
}

// RemoveRecipient removes the key from the account. Removing a key which
// doesn't exist succeeds.
func (s *Storage) RemoveRecipient(_ context.Context, authKey, keyB58 string) (err error) {
	defer err2.Handle(&err, "remove recipient")

	s.l.Lock()
	defer s.l.Unlock()

	keys := try.To1(s.keys(authKey))
	left := keys[:0]
	for _, k := range keys {
		if k != keyB58 {
			left = append(left, k)
		}
	}
	try.To(s.recipients.Put(authKey, try.To1(json.Marshal(left))))
	glog.V(5).Infoln("recipient removed:", keyB58)
	return nil
}

func (s *Storage) RetrieveDeviceInfo(_ context.Context, authKey string) (di api.DeviceInfo, err error) {
	defer err2.Handle(&err, "retrieve device info")

	if !try.To1(s.hasAccount(authKey)) {
		return di, api.ErrNoAccount
	}
	data, err := s.devices.Get(authKey)
	if isNotFound(err) {
		return di, api.ErrNotFound
	}
	try.To(err)
	try.To(json.Unmarshal(data, &di))
	return di, nil
}

// SetDeviceInfo stores the device info of the account. Nil token and
// platform remove the record.
func (s *Storage) SetDeviceInfo(_ context.Context, authKey string, token, platform *string) (err error) {
	defer err2.Handle(&err, "set device info")

	s.l.Lock()
	defer s.l.Unlock()

	if !try.To1(s.hasAccount(authKey)) {
		return api.ErrNoAccount
	}
	if token == nil && platform == nil {
		err := s.devices.Delete(authKey)
		if isNotFound(err) {
			return nil
		}
		return err
	}
	data := try.To1(json.Marshal(api.DeviceInfo{Token: token, Platform: platform}))
	return s.devices.Put(authKey, data)
}
