// Package cfg selects and opens the mediator storage by the configuration.
// Opened storages are shared by their unique ID.
package cfg

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/findy-network/findy-mediator/agent/storage/api"
	"github.com/findy-network/findy-mediator/agent/storage/mgddb"
	"github.com/findy-network/findy-mediator/agent/storage/wrapper"
	"github.com/golang/glog"
	"github.com/hyperledger/aries-framework-go/component/storageutil/mem"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

// Backupper is implemented by storages which can take a hot backup.
type Backupper interface {
	Backup(dir string) (name string, err error)
}

type StorageInfo struct {
	storage api.Storage
	isOpen  bool
}

type InfoMap map[string]StorageInfo

var storages = struct {
	InfoMap
	sync.Mutex
}{
	InfoMap: make(InfoMap),
}

// ParseType returns the storage type by its name: bolt, mgd or mem.
func ParseType(s string) (t api.Type, err error) {
	switch strings.ToLower(s) {
	case "", api.TypeBolt.String():
		return api.TypeBolt, nil
	case api.TypeMgd.String():
		return api.TypeMgd, nil
	case api.TypeMem.String():
		return api.TypeMem, nil
	}
	return t, fmt.Errorf("unknown storage type: %s", s)
}

type AgentStorage struct {
	api.Config
}

func (c *AgentStorage) UniqueID() string {
	return c.Type.String() + ":" + filepath.Join(c.FilePath, c.FileName)
}

func (c *AgentStorage) new() (s api.Storage, err error) {
	switch c.Type {
	case api.TypeBolt:
		return mgddb.New(c.Config)
	case api.TypeMgd:
		return wrapper.NewBoltStorage(c.Config), nil
	case api.TypeMem:
		return wrapper.NewStorage(mem.NewProvider()), nil
	}
	return nil, fmt.Errorf("unknown storage type: %d", c.Type)
}

// Open returns the open storage of the configuration. The same storage is
// returned for the same configuration until it's closed.
func (c *AgentStorage) Open() (s api.Storage, err error) {
	defer err2.Handle(&err, "open storage from cfg")

	storages.Lock()
	defer storages.Unlock()

	info, exist := storages.InfoMap[c.UniqueID()]
	if exist && info.isOpen {
		glog.V(5).Infoln("using open storage:", c.UniqueID())
		return info.storage, nil
	}
	if !exist {
		info.storage = try.To1(c.new())
	}
	try.To(info.storage.Open())
	glog.V(1).Infoln("storage opened:", c.UniqueID())

	info.isOpen = true
	storages.InfoMap[c.UniqueID()] = info
	return info.storage, nil
}

// Close closes the storage of the configuration if it's open.
func (c *AgentStorage) Close() (err error) {
	defer err2.Handle(&err, "close storage from cfg")

	storages.Lock()
	defer storages.Unlock()

	info, exist := storages.InfoMap[c.UniqueID()]
	if !exist || !info.isOpen {
		glog.Warningf("Close called but storage (%s) not open!", c.UniqueID())
		return nil
	}
	try.To(info.storage.Close())
	info.isOpen = false
	if c.Type == api.TypeMem {
		delete(storages.InfoMap, c.UniqueID())
	} else {
		storages.InfoMap[c.UniqueID()] = info
	}
	return nil
}

// Backup takes a backup of the open storage of the configuration.
func (c *AgentStorage) Backup(dir string) (name string, err error) {
	defer err2.Handle(&err, "backup storage from cfg")

	s := try.To1(c.Open())
	b, ok := s.(Backupper)
	if !ok {
		return "", fmt.Errorf("storage type %s doesn't support backups", c.Type)
	}
	return b.Backup(dir)
}
