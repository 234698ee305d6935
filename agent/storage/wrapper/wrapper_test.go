package wrapper

import (
	"errors"
	"flag"
	"os"
	"sync"
	"testing"

	"github.com/findy-network/findy-mediator/agent/storage/api"
	"github.com/findy-network/findy-mediator/agent/storage/storagetest"
	"github.com/hyperledger/aries-framework-go/component/storageutil/mem"
	"github.com/hyperledger/aries-framework-go/spi/storage"
	"github.com/lainio/err2/assert"
	"github.com/lainio/err2/try"
)

var (
	testKey   = "key1"
	testValue = []byte("value1")
	cryptKey  = "15308490f1e4026284594dd08d31291bc8ef2aeac730d0daf6ff87bb92d4336c"
)

func TestMain(m *testing.M) {
	setUp()
	code := m.Run()
	os.Exit(code)
}

func setUp() {
	try.To(flag.Set("logtostderr", "true"))
	try.To(flag.Set("stderrthreshold", "WARNING"))
	try.To(flag.Set("v", "10"))
	flag.Parse()
}

func testConfig(t *testing.T) Config {
	return Config{
		Key:       cryptKey,
		FileName:  "wrapper_test",
		FilePath:  t.TempDir(),
		BucketIDs: []string{"id1", "id2"},
	}
}

func TestOpen(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()
	s := New(testConfig(t))
	err := s.Init()
	assert.NoError(err)
	assert.INotNil(s)

	err = s.Close()
	assert.NoError(err)
}

func TestInit_NoBuckets(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()
	cfg := testConfig(t)
	cfg.BucketIDs = nil
	assert.Error(New(cfg).Init())
}

func TestOpenStore(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()
	cfg := testConfig(t)
	s := New(cfg)
	err := s.Init()
	assert.NoError(err)
	assert.INotNil(s)

	store1, err := s.OpenStore(cfg.BucketIDs[0])
	assert.NoError(err)
	assert.INotNil(store1)

	store2, err := s.OpenStore(cfg.BucketIDs[1])
	assert.NoError(err)
	assert.INotNil(store2)

	store3, err := s.OpenStore("notExist")
	assert.Error(err)
	assert.That(errors.Is(err, storage.ErrStoreNotFound))
	assert.INil(store3)

	assert.SLen(s.GetOpenStores(), 2)
	assert.NoError(s.SetStoreConfig(cfg.BucketIDs[0], storage.StoreConfiguration{}))
	assert.Error(s.SetStoreConfig(cfg.BucketIDs[0],
		storage.StoreConfiguration{TagNames: []string{"tag"}}))

	err = s.Close()
	assert.NoError(err)
}

func TestReadData(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()
	cfg := testConfig(t)
	s := New(cfg)
	err := s.Init()
	assert.NoError(err)

	store1, err := s.OpenStore(cfg.BucketIDs[0])
	assert.NoError(err)

	err = store1.Put(testKey, testValue)
	assert.NoError(err)

	got, err := store1.Get(testKey)
	assert.NoError(err)
	assert.DeepEqual(testValue, got)

	bulk, err := store1.GetBulk(testKey, "missing")
	assert.NoError(err)
	assert.DeepEqual(testValue, bulk[0])
	assert.SNil(bulk[1])

	err = s.Close()
	assert.NoError(err)
}

func TestDeleteData(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()
	cfg := testConfig(t)
	s := New(cfg)
	err := s.Init()
	assert.NoError(err)

	store1, err := s.OpenStore(cfg.BucketIDs[0])
	assert.NoError(err)

	err = store1.Put(testKey, testValue)
	assert.NoError(err)

	got, err := store1.Get(testKey)
	assert.NoError(err)
	assert.DeepEqual(testValue, got)

	err = store1.Delete(testKey)
	assert.NoError(err)

	got, err = store1.Get(testKey)
	assert.Error(err)
	assert.That(errors.Is(err, storage.ErrDataNotFound))
	assert.SNil(got)

	err = s.Close()
	assert.NoError(err)
}

func TestTagsNotSupported(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()
	cfg := testConfig(t)
	s := New(cfg)
	assert.NoError(s.Init())
	defer s.Close()

	store1, err := s.OpenStore(cfg.BucketIDs[0])
	assert.NoError(err)
	assert.Error(store1.Put(testKey, testValue, storage.Tag{Name: "tag"}))
	_, err = store1.Query("tag")
	assert.Error(err)
}

func TestConcurrentDataAccess(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()
	cfg := testConfig(t)
	s := New(cfg)
	wg := &sync.WaitGroup{}
	errs := make(chan error, 10)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.Init(); err != nil {
				errs <- err
				return
			}
			store1, err := s.OpenStore(cfg.BucketIDs[0])
			if err != nil {
				errs <- err
				return
			}
			errs <- store1.Put(testKey, testValue)
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(err)
	}
	err := s.Close()
	assert.NoError(err)
}

func TestStorage_Mem(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	s := NewStorage(mem.NewProvider())
	assert.NoError(s.Open())
	defer s.Close()

	storagetest.Run(t, s)
}

func TestStorage_Bolt(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	s := NewBoltStorage(api.Config{
		FilePath: t.TempDir(),
		FileName: "mediator_test",
		Key:      cryptKey,
	})
	assert.NoError(s.Open())
	defer s.Close()

	storagetest.Run(t, s)
}
