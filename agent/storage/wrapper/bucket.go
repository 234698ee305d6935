package wrapper

import (
	"errors"
	"fmt"

	"github.com/golang/glog"
	"github.com/hyperledger/aries-framework-go/spi/storage"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

var errNoTags = errors.New("tags not supported")

type bucket struct {
	bucketID byte
	owner    *StorageProvider
}

func newBucket(owner *StorageProvider, bucketID byte) *bucket {
	return &bucket{
		owner:    owner,
		bucketID: bucketID,
	}
}

// Put stores the key + value pair. Tags aren't supported.
func (b *bucket) Put(key string, value []byte, tags ...storage.Tag) error {
	glog.V(level7).Infoln("bucket::Put", key)

	if key == "" || value == nil {
		return errors.New("key and value are mandatory")
	}
	if len(tags) > 0 {
		return errNoTags
	}
	return b.owner.addData(b.bucketID, []byte(key), value)
}

// Get fetches the value associated with the given key. If key cannot be
// found, then an error wrapping ErrDataNotFound will be returned.
func (b *bucket) Get(key string) (data []byte, err error) {
	defer err2.Handle(&err, "bucket get")

	glog.V(level7).Infoln("bucket::Get", key)

	data, found := try.To2(b.owner.getData(b.bucketID, []byte(key)))
	if !found || len(data) == 0 {
		return nil, fmt.Errorf("%s: %w", key, storage.ErrDataNotFound)
	}
	return data, nil
}

func (b *bucket) Delete(key string) error {
	glog.V(level7).Infoln("bucket::Delete", key)

	return b.owner.deleteData(b.bucketID, []byte(key))
}

func (b *bucket) GetBulk(keys ...string) (values [][]byte, err error) {
	defer err2.Handle(&err, "bucket get bulk")

	values = make([][]byte, len(keys))
	for i, k := range keys {
		v, err := b.Get(k)
		if errors.Is(err, storage.ErrDataNotFound) {
			continue
		}
		try.To(err)
		values[i] = v
	}
	return values, nil
}

// Batch executes the operations in order. A nil value deletes the key.
func (b *bucket) Batch(operations []storage.Operation) (err error) {
	defer err2.Handle(&err, "bucket batch")

	for _, op := range operations {
		if op.Value == nil {
			try.To(b.Delete(op.Key))
			continue
		}
		try.To(b.Put(op.Key, op.Value, op.Tags...))
	}
	return nil
}

// Close does nothing, the StorageProvider closes the DB.
func (b *bucket) Close() error {
	glog.V(level7).Infoln("bucket::Close")
	return nil
}

func (b *bucket) Flush() error {
	return nil
}

func (b *bucket) GetTags(key string) ([]storage.Tag, error) {
	glog.V(level7).Infoln("bucket::GetTags", key)
	return nil, errNoTags
}

func (b *bucket) Query(expression string, _ ...storage.QueryOption) (storage.Iterator, error) {
	glog.V(level7).Infoln("bucket::Query", expression)
	return nil, errNoTags
}
