package cmds

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/findy-network/findy-mediator/agent/storage/api"
	"github.com/findy-network/findy-mediator/agent/storage/cfg"
	"github.com/findy-network/findy-mediator/agent/utils"
	"github.com/lainio/err2/try"
)

var ErrInvalid = errors.New("invalid command, check arguments")

// Cmd is the storage selection every mediator command shares.
type Cmd struct {
	StorageType string
	StoragePath string
	StorageName string
	StorageKey  string
}

func (c Cmd) Validate() error {
	if _, err := cfg.ParseType(c.StorageType); err != nil {
		return err
	}
	if c.StorageName == "" {
		return errors.New("storage name cannot be empty")
	}
	if c.StorageKey != "" {
		return ValidateKey(c.StorageKey)
	}
	return nil
}

// AgentStorage returns the storage configuration of the command.
func (c Cmd) AgentStorage() *cfg.AgentStorage {
	t, _ := cfg.ParseType(c.StorageType)
	return &cfg.AgentStorage{Config: api.Config{
		Type:     t,
		FilePath: c.StoragePath,
		FileName: c.StorageName,
		Key:      c.StorageKey,
	}}
}

// SetSettings copies the storage selection to utils.Settings.
func (c Cmd) SetSettings() {
	utils.Settings.SetStorageType(c.StorageType)
	utils.Settings.SetStoragePath(c.StoragePath)
	utils.Settings.SetStorageName(c.StorageName)
	utils.Settings.SetStorageKey(c.StorageKey)
}

const storageKeyLength = 64

// ValidateKey checks the hex encoded AES-256 key of the storage.
func ValidateKey(k string) error {
	if len(k) != storageKeyLength {
		return errors.New("storage key must be 64 hex characters")
	}
	for _, c := range k {
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F') {
			return errors.New("storage key is not hex")
		}
	}
	return nil
}

// ValidateTime checks the time of day in HH:MM or HH:MM:SS form.
func ValidateTime(t string) error {
	if _, err := time.Parse("15:04", t); err == nil {
		return nil
	}
	if _, err := time.Parse("15:04:05", t); err != nil {
		return fmt.Errorf("invalid time %q: %w", t, err)
	}
	return nil
}

type Result interface {
	JSON() ([]byte, error)
}

type Command interface {
	Validate() error
	Exec(w io.Writer) (r Result, err error)
}

// Fprintln is fmt.Fprintln but it allows writer to be nil. Note! it throws an
// error.
func Fprintln(w io.Writer, a ...interface{}) {
	if w != nil {
		try.To1(fmt.Fprintln(w, a...))
	}
}

// Fprintf is fmt.Fprintf but it allows writer to be nil. Note! it throws an
// error.
func Fprintf(w io.Writer, format string, a ...interface{}) {
	if w != nil {
		try.To1(fmt.Fprintf(w, format, a...))
	}
}

// Fprint is fmt.Fprint but it allows writer to be nil. Note! it throws an
// error.
func Fprint(w io.Writer, a ...interface{}) {
	if w != nil {
		try.To1(fmt.Fprint(w, a...))
	}
}
