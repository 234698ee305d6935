package didcomm

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/golang/glog"
)

// Factor creates a typed message from its wire form.
type Factor interface {
	NewMessage(data []byte) (Message, error)
}

// FactorFunc is an adapter to use ordinary functions as Factors.
type FactorFunc func(data []byte) (Message, error)

func (f FactorFunc) NewMessage(data []byte) (Message, error) {
	return f(data)
}

// NewFactor returns a Factor which decodes JSON to a new T. Pointer to T must
// implement the Message interface.
func NewFactor[T any, PT interface {
	*T
	Message
}]() Factor {
	return FactorFunc(func(data []byte) (Message, error) {
		m := PT(new(T))
		if err := json.Unmarshal(data, m); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedContent, err)
		}
		return m, nil
	})
}

type familyKey struct {
	name  string
	major int
}

// schema is the set of message kinds of one protocol minor version.
type schema struct {
	ProtocolID
	factors map[string]Factor
}

// Registry maps protocol families and message kinds to factors. The set of
// the protocols is fixed at compile time, std packages register their
// messages in init functions.
type Registry struct {
	l        sync.RWMutex
	families map[familyKey][]*schema // sorted by minor version
	names    map[string]bool
}

func NewRegistry() *Registry {
	return &Registry{
		families: make(map[familyKey][]*schema),
		names:    make(map[string]bool),
	}
}

// Add registers a factor for the message kind of the protocol schema.
func (r *Registry) Add(id ProtocolID, kind string, f Factor) {
	r.l.Lock()
	defer r.l.Unlock()

	key := familyKey{name: id.Name, major: id.Major}
	r.names[id.Name] = true

	schemas := r.families[key]
	for _, s := range schemas {
		if s.Minor == id.Minor {
			s.factors[kind] = f
			return
		}
	}
	s := &schema{ProtocolID: id, factors: map[string]Factor{kind: f}}
	schemas = append(schemas, s)
	sort.Slice(schemas, func(i, j int) bool {
		return schemas[i].Minor < schemas[j].Minor
	})
	r.families[key] = schemas
}

// Resolve returns the registered protocol schema for the id. Name and major
// must match exactly. The closest known minor at or below the requested is
// selected, and if there is none, the lowest known minor, i.e. all minor
// versions of a known major are accepted.
func (r *Registry) Resolve(id ProtocolID) (resolved ProtocolID, err error) {
	s, err := r.resolve(id)
	if err != nil {
		return resolved, err
	}
	return s.ProtocolID, nil
}

func (r *Registry) resolve(id ProtocolID) (s *schema, err error) {
	r.l.RLock()
	defer r.l.RUnlock()

	if !r.names[id.Name] {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProtocol, id.Name)
	}
	schemas, ok := r.families[familyKey{name: id.Name, major: id.Major}]
	if !ok || len(schemas) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedVersion, id)
	}
	s = schemas[0]
	for _, candidate := range schemas {
		if candidate.Minor > id.Minor {
			break
		}
		s = candidate
	}
	if s.Minor != id.Minor {
		glog.V(3).Infof("protocol %s resolved to %s", id, s.ProtocolID)
	}
	return s, nil
}

// ResolveKind returns the factor for the kind in the resolved schema of the
// protocol id. Snake case kind names are accepted as aliases of the kebab
// case names.
func (r *Registry) ResolveKind(id ProtocolID, kind string) (resolved ProtocolID, f Factor, err error) {
	s, err := r.resolve(id)
	if err != nil {
		return resolved, nil, err
	}

	r.l.RLock()
	defer r.l.RUnlock()

	f, ok := s.factors[kind]
	if !ok {
		f, ok = s.factors[strings.ReplaceAll(kind, "_", "-")]
	}
	if !ok {
		return resolved, nil, fmt.Errorf("%w: %s in %s", ErrUnknownKind, kind, s.ProtocolID)
	}
	return s.ProtocolID, f, nil
}

// Has tells if the exact message type is registered.
func (r *Registry) Has(t MsgType) bool {
	r.l.RLock()
	defer r.l.RUnlock()

	for _, s := range r.families[familyKey{name: t.Name, major: t.Major}] {
		if s.Minor == t.Minor {
			_, ok := s.factors[t.Kind]
			return ok
		}
	}
	return false
}

// CheckTotal verifies that every message type in types has a registered
// factor. Protocol packages call it at startup.
func (r *Registry) CheckTotal(types ...MsgType) error {
	var missing []string
	for _, t := range types {
		if !r.Has(t) {
			missing = append(missing, t.String())
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("message types without factor: %s",
			strings.Join(missing, ", "))
	}
	return nil
}
