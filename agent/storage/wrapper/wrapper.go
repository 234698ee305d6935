/*
Package wrapper implements the mediator storage on top of the Aries storage
provider interface. The provider can be the in-memory provider of the Aries
framework or StorageProvider of this package, which stores the buckets to an
encrypted bolt file with the findy managed DB.
*/
package wrapper

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/findy-network/findy-common-go/crypto"
	"github.com/findy-network/findy-common-go/crypto/db"
	"github.com/golang/glog"
	"github.com/hyperledger/aries-framework-go/spi/storage"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

const level7 = 7

type Config struct {
	Key       string
	FileName  string
	FilePath  string
	BucketIDs []string
}

// StorageProvider is a storage.Provider with a fixed set of stores, one per
// bucket ID.
type StorageProvider struct {
	l sync.RWMutex

	conf    Config
	db      db.Handle
	buckets map[string]*bucket
	cipher  *crypto.Cipher
}

func New(config Config) *StorageProvider {
	s := &StorageProvider{
		conf:    config,
		buckets: make(map[string]*bucket),
	}

	var bucketKey byte
	for _, name := range s.conf.BucketIDs {
		s.buckets[name] = newBucket(s, bucketKey)
		bucketKey++
	}

	return s
}

// Init initializes the managed DB. The file handle is opened lazily by the
// first access.
func (s *StorageProvider) Init() (err error) {
	defer err2.Handle(&err, "storage provider init")

	s.l.Lock()
	defer s.l.Unlock()

	if s.db != nil {
		glog.V(3).Infof("skipping storage provider initialization for %s, already open", s.conf.FileName)
		return nil
	}
	if len(s.conf.BucketIDs) == 0 {
		return fmt.Errorf("no buckets specified")
	}

	if s.conf.Key != "" {
		k := try.To1(hex.DecodeString(s.conf.Key))
		s.cipher = crypto.NewCipher(k)
	}

	path := "."
	if s.conf.FilePath != "" {
		path = s.conf.FilePath
	}
	filename := filepath.Join(path, s.conf.FileName+".bolt")

	mgdBuckets := make([][]byte, 0, len(s.conf.BucketIDs))
	for _, b := range s.buckets {
		mgdBuckets = append(mgdBuckets, []byte{b.bucketID})
	}

	s.db = db.New(db.Cfg{
		Filename:   filename,
		Buckets:    mgdBuckets,
		BackupName: filename + "_backup",
	})
	return nil
}

func (s *StorageProvider) ID() string {
	return s.conf.FileName
}

func (s *StorageProvider) OpenStore(name string) (storage.Store, error) {
	glog.V(level7).Infoln("StorageProvider::OpenStore", s.ID(), name)

	if b, ok := s.buckets[name]; ok {
		return b, nil
	}
	return nil, fmt.Errorf("store %s: %w", name, storage.ErrStoreNotFound)
}

func (s *StorageProvider) Close() (err error) {
	defer err2.Handle(&err, "storage provider close")

	s.l.Lock()
	defer s.l.Unlock()

	if s.db == nil {
		glog.V(3).Infof("skipping storage provider close for %s, already closed", s.conf.FileName)
		return nil
	}

	try.To(s.db.Close())
	s.db = nil
	return nil
}

// SetStoreConfig accepts only configurations without tags.
func (s *StorageProvider) SetStoreConfig(name string, config storage.StoreConfiguration) error {
	glog.V(level7).Infoln("StorageProvider::SetStoreConfig", name)

	if _, ok := s.buckets[name]; !ok {
		return fmt.Errorf("store %s: %w", name, storage.ErrStoreNotFound)
	}
	if len(config.TagNames) > 0 {
		return fmt.Errorf("store %s: tags not supported", name)
	}
	return nil
}

func (s *StorageProvider) GetStoreConfig(name string) (storage.StoreConfiguration, error) {
	glog.V(level7).Infoln("StorageProvider::GetStoreConfig", name)

	if _, ok := s.buckets[name]; !ok {
		return storage.StoreConfiguration{},
			fmt.Errorf("store %s: %w", name, storage.ErrStoreNotFound)
	}
	return storage.StoreConfiguration{}, nil
}

func (s *StorageProvider) GetOpenStores() []storage.Store {
	stores := make([]storage.Store, 0, len(s.buckets))
	for _, b := range s.buckets {
		stores = append(stores, b)
	}
	return stores
}

func (s *StorageProvider) assertOpen() error {
	if s.db == nil {
		return fmt.Errorf("storage provider %s not initialized", s.conf.FileName)
	}
	return nil
}

func (s *StorageProvider) addData(bucketID byte, key, value []byte) (err error) {
	s.l.RLock()
	defer s.l.RUnlock()

	if err := s.assertOpen(); err != nil {
		return err
	}
	return s.db.AddKeyValueToBucket([]byte{bucketID},
		&db.Data{
			Data: value,
			Read: s.encrypt,
		},
		&db.Data{
			Data: key,
			Read: s.hash,
		},
	)
}

func (s *StorageProvider) getData(bucketID byte, key []byte) (value []byte, found bool, err error) {
	s.l.RLock()
	defer s.l.RUnlock()

	if err := s.assertOpen(); err != nil {
		return nil, false, err
	}
	data := &db.Data{
		Write: s.decrypt,
		Use: func(d []byte) interface{} {
			value = append(d[:0:0], d...)
			return nil
		},
	}
	found, err = s.db.GetKeyValueFromBucket([]byte{bucketID},
		&db.Data{
			Data: key,
			Read: s.hash,
		},
		data)
	return value, found, err
}

func (s *StorageProvider) deleteData(bucketID byte, key []byte) (err error) {
	s.l.RLock()
	defer s.l.RUnlock()

	if err := s.assertOpen(); err != nil {
		return err
	}
	return s.db.RmKeyValueFromBucket([]byte{bucketID}, &db.Data{
		Data: key,
		Read: s.hash,
	})
}

// hash makes the hash of the index value when the provider is encrypted.
// Please use salt when implementing this.
func (s *StorageProvider) hash(key []byte) (k []byte) {
	if s.cipher != nil {
		h := md5.Sum(key)
		return h[:]
	}
	return append(key[:0:0], key...)
}

func (s *StorageProvider) encrypt(value []byte) (k []byte) {
	if s.cipher != nil {
		return s.cipher.TryEncrypt(value)
	}
	return append(value[:0:0], value...)
}

func (s *StorageProvider) decrypt(value []byte) (k []byte) {
	if s.cipher != nil {
		return s.cipher.TryDecrypt(value)
	}
	return append(value[:0:0], value...)
}
