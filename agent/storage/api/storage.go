/*
Package api defines the persistence contract of the mediator. An account is
created once per authentication key by a successful mediation grant, and it
owns the recipient keys routed to it and at most one device info record.

Implementations must give a consistent per-account view across concurrent
calls. Keys are stored in the base58 form, normalization is the caller's job.
*/
package api

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when the queried record doesn't exist.
	ErrNotFound = errors.New("not found")

	// ErrAccountExists is returned by CreateAccount for a known auth key.
	ErrAccountExists = errors.New("account exists")

	// ErrNoAccount is returned when the caller has no account.
	ErrNoAccount = errors.New("no account")
)

type Type int

const (
	TypeBolt Type = 0 + iota
	TypeMgd
	TypeMem
)

func (t Type) String() string {
	switch t {
	case TypeBolt:
		return "bolt"
	case TypeMgd:
		return "mgd"
	case TypeMem:
		return "mem"
	}
	return "unknown"
}

// Account is the persisted registration of a mediation client.
type Account struct {
	AuthKey    string `json:"auth_key"`
	SigningKey string `json:"signing_key"`
	DIDDoc     []byte `json:"did_doc,omitempty"`
}

// DeviceInfo is the registered push notification device of an account.
// Token and Platform are both nil or both set.
type DeviceInfo struct {
	Token    *string `json:"token,omitempty"`
	Platform *string `json:"platform,omitempty"`
}

//go:generate mockgen -destination=../mock/mediator_mock.go -package=mock . Mediator

// Mediator is the persistence contract of the mediation and device info
// handlers.
type Mediator interface {
	CreateAccount(ctx context.Context, authKey, signingKey string, didDoc []byte) error
	GetAccount(ctx context.Context, authKey string) (*Account, error)

	ListRecipientKeys(ctx context.Context, authKey string) ([]string, error)
	AddRecipient(ctx context.Context, authKey, keyB58 string) error
	RemoveRecipient(ctx context.Context, authKey, keyB58 string) error

	RetrieveDeviceInfo(ctx context.Context, authKey string) (DeviceInfo, error)
	SetDeviceInfo(ctx context.Context, authKey string, token, platform *string) error
}

// Storage is a Mediator which owns its resources.
type Storage interface {
	Mediator

	Open() error
	Close() error
}

// Config of the storage.
type Config struct {
	Type     Type
	FilePath string
	FileName string

	// Key is a hex encoded 32 byte key to encrypt the data at rest. Empty
	// means no encryption.
	Key string
}
