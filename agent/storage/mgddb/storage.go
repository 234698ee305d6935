/*
Package mgddb is the bolt DB implementation of the mediator storage. Every
value is encrypted and every index hashed when the storage has a key. Recipient
keys of an account are in their own nested bucket under the recipients bucket.
*/
package mgddb

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/findy-network/findy-common-go/crypto"
	"github.com/findy-network/findy-mediator/agent/storage/api"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	bolt "go.etcd.io/bbolt"
)

var (
	bucketAccounts   = []byte("accounts")
	bucketRecipients = []byte("recipients")
	bucketDevices    = []byte("devices")

	buckets = [][]byte{bucketAccounts, bucketRecipients, bucketDevices}
)

// DateTimeInName tells if backup file names are prefixed with a timestamp.
var DateTimeInName = true

type Storage struct {
	l sync.RWMutex

	conf   api.Config
	db     *bolt.DB
	cipher *crypto.Cipher
}

func New(config api.Config) (s *Storage, err error) {
	defer err2.Handle(&err, "mgddb new")

	s = &Storage{conf: config}
	if config.Key != "" {
		k := try.To1(hex.DecodeString(config.Key))
		s.cipher = crypto.NewCipher(k)
	}
	return s, nil
}

func (s *Storage) filename() string {
	path := "."
	if s.conf.FilePath != "" {
		path = s.conf.FilePath
	}
	name := s.conf.FileName
	if name == "" {
		name = "mediator"
	}
	return filepath.Join(path, name+".bolt")
}

// Open opens the bolt file and creates the buckets. Calling Open for already
// open storage does nothing.
func (s *Storage) Open() (err error) {
	defer err2.Handle(&err, "mgddb open")

	s.l.Lock()
	defer s.l.Unlock()

	if s.db != nil {
		glog.Warningf("skipping storage open for %s, already open", s.filename())
		return nil
	}

	db := try.To1(bolt.Open(s.filename(), 0600, &bolt.Options{Timeout: time.Second}))
	try.To(db.Update(func(tx *bolt.Tx) (err error) {
		defer err2.Handle(&err, "create buckets")

		for _, b := range buckets {
			try.To1(tx.CreateBucketIfNotExists(b))
		}
		return nil
	}))
	s.db = db
	glog.V(1).Infoln("storage opened:", s.filename())
	return nil
}

func (s *Storage) Close() (err error) {
	defer err2.Handle(&err, "mgddb close")

	s.l.Lock()
	defer s.l.Unlock()

	if s.db == nil {
		glog.Warningf("skipping storage close for %s, already closed", s.filename())
		return nil
	}
	try.To(s.db.Close())
	s.db = nil
	return nil
}

// Backup writes a consistent copy of the DB to the dir and returns the file
// name of the copy.
func (s *Storage) Backup(dir string) (name string, err error) {
	defer err2.Handle(&err, "mgddb backup")

	s.l.RLock()
	defer s.l.RUnlock()

	if s.db == nil {
		return "", fmt.Errorf("storage %s not open", s.filename())
	}
	name = filepath.Join(dir, backupName(filepath.Base(s.filename())))
	try.To(s.db.View(func(tx *bolt.Tx) error {
		return tx.CopyFile(name, 0600)
	}))
	glog.V(1).Infoln("storage backup:", name)
	return name, nil
}

func backupName(baseName string) string {
	if !DateTimeInName {
		return baseName + "_backup"
	}
	tsStr := time.Now().Format(time.RFC3339)
	name := tsStr + "_" + baseName
	glog.V(3).Infoln("backup name:", name)
	return name
}

func (s *Storage) update(fn func(tx *bolt.Tx) error) error {
	s.l.RLock()
	defer s.l.RUnlock()

	if s.db == nil {
		return fmt.Errorf("storage %s not open", s.filename())
	}
	return s.db.Update(fn)
}

func (s *Storage) view(fn func(tx *bolt.Tx) error) error {
	s.l.RLock()
	defer s.l.RUnlock()

	if s.db == nil {
		return fmt.Errorf("storage %s not open", s.filename())
	}
	return s.db.View(fn)
}

func (s *Storage) CreateAccount(
	_ context.Context,
	authKey, signingKey string,
	didDoc []byte,
) (err error) {
	defer err2.Handle(&err, "create account")

	data := try.To1(json.Marshal(api.Account{
		AuthKey:    authKey,
		SigningKey: signingKey,
		DIDDoc:     didDoc,
	}))
	return s.update(func(tx *bolt.Tx) (err error) {
		defer err2.Handle(&err)

		b := tx.Bucket(bucketAccounts)
		index := s.hash([]byte(authKey))
		if b.Get(index) != nil {
			return api.ErrAccountExists
		}
		try.To(b.Put(index, s.encrypt(data)))
		try.To1(tx.Bucket(bucketRecipients).CreateBucketIfNotExists(index))
		glog.V(5).Infoln("account created:", authKey)
		return nil
	})
}

func (s *Storage) GetAccount(_ context.Context, authKey string) (a *api.Account, err error) {
	defer err2.Handle(&err, "get account")

	try.To(s.view(func(tx *bolt.Tx) error {
		d := tx.Bucket(bucketAccounts).Get(s.hash([]byte(authKey)))
		if d == nil {
			return api.ErrNoAccount
		}
		a = new(api.Account)
		return json.Unmarshal(s.decrypt(d), a)
	}))
	return a, nil
}

func (s *Storage) recipients(tx *bolt.Tx, authKey string) (*bolt.Bucket, error) {
	index := s.hash([]byte(authKey))
	if tx.Bucket(bucketAccounts).Get(index) == nil {
		return nil, api.ErrNoAccount
	}
	b := tx.Bucket(bucketRecipients).Bucket(index)
	if b == nil {
		return nil, fmt.Errorf("recipient bucket missing: %w", api.ErrNoAccount)
	}
	return b, nil
}

// ListRecipientKeys returns the keys of the account in sorted order.
func (s *Storage) ListRecipientKeys(_ context.Context, authKey string) (keys []string, err error) {
	defer err2.Handle(&err, "list recipient keys")

	keys = make([]string, 0)
	try.To(s.view(func(tx *bolt.Tx) (err error) {
		defer err2.Handle(&err)

		b := try.To1(s.recipients(tx, authKey))
		return b.ForEach(func(_, v []byte) error {
			keys = append(keys, string(s.decrypt(v)))
			return nil
		})
	}))
	sort.Strings(keys)
	return keys, nil
}

// AddRecipient adds the key to the account. Adding an existing key succeeds.
func (s *Storage) AddRecipient(_ context.Context, authKey, keyB58 string) (err error) {
	defer err2.Handle(&err, "add recipient")

	return s.update(func(tx *bolt.Tx) (err error) {
		defer err2.Handle(&err)

		b := try.To1(s.recipients(tx, authKey))
		try.To(b.Put(s.hash([]byte(keyB58)), s.encrypt([]byte(keyB58))))
		glog.V(5).Infoln("recipient added:", keyB58)
		return nil
	})
}

// RemoveRecipient removes the key from the account. Removing a key which
// doesn't exist succeeds.
func (s *Storage) RemoveRecipient(_ context.Context, authKey, keyB58 string) (err error) {
	defer err2.Handle(&err, "remove recipient")

	return s.update(func(tx *bolt.Tx) (err error) {
		defer err2.Handle(&err)

		b := try.To1(s.recipients(tx, authKey))
		try.To(b.Delete(s.hash([]byte(keyB58))))
		glog.V(5).Infoln("recipient removed:", keyB58)
		return nil
	})
}

func (s *Storage) RetrieveDeviceInfo(_ context.Context, authKey string) (di api.DeviceInfo, err error) {
	defer err2.Handle(&err, "retrieve device info")

	try.To(s.view(func(tx *bolt.Tx) error {
		index := s.hash([]byte(authKey))
		if tx.Bucket(bucketAccounts).Get(index) == nil {
			return api.ErrNoAccount
		}
		d := tx.Bucket(bucketDevices).Get(index)
		if d == nil {
			return api.ErrNotFound
		}
		return json.Unmarshal(s.decrypt(d), &di)
	}))
	return di, nil
}

// SetDeviceInfo stores the device info of the account. Nil token and
// platform remove the record.
func (s *Storage) SetDeviceInfo(_ context.Context, authKey string, token, platform *string) (err error) {
	defer err2.Handle(&err, "set device info")

	data := try.To1(json.Marshal(api.DeviceInfo{Token: token, Platform: platform}))
	return s.update(func(tx *bolt.Tx) (err error) {
		defer err2.Handle(&err)

		index := s.hash([]byte(authKey))
		if tx.Bucket(bucketAccounts).Get(index) == nil {
			return api.ErrNoAccount
		}
		b := tx.Bucket(bucketDevices)
		if token == nil && platform == nil {
			return b.Delete(index)
		}
		return b.Put(index, s.encrypt(data))
	})
}

// hash makes the hash of the index value when the storage is encrypted. This
// prevents us to store the index (auth key, recipient key) as plain text.
func (s *Storage) hash(key []byte) (k []byte) {
	if s.cipher != nil {
		h := md5.Sum(key)
		return h[:]
	}
	return append(key[:0:0], key...)
}

func (s *Storage) encrypt(value []byte) (k []byte) {
	if s.cipher != nil {
		return s.cipher.TryEncrypt(value)
	}
	return append(value[:0:0], value...)
}

func (s *Storage) decrypt(value []byte) (k []byte) {
	if s.cipher != nil {
		return s.cipher.TryDecrypt(value)
	}
	return append(value[:0:0], value...)
}
