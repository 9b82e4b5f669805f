package domain

import (
	"context"

	"github.com/aretw0/espalier/pkg/value"
)

// DefaultMaxEffectDepth bounds re-entrant effect dispatch within one cycle.
const DefaultMaxEffectDepth = 32

// EffectDispatcher reacts to value-level changes of named state fields.
// Menus implement it; handlers run synchronously inside State.Set.
type EffectDispatcher interface {
	DispatchEffect(s *State, name string, old, new value.Value)
}

// State is the resumable document of one render of one menu instance plus a
// cache that never leaves the cycle. A State belongs to exactly one
// decode-handle-render-encode cycle and is not safe for concurrent use.
type State struct {
	data        *value.Object
	cache       *Cache
	effects     EffectDispatcher
	interaction *Interaction
	ctx         context.Context

	maxDepth    int
	depth       int
	err         error
	initialized bool
}

// StateOption configures a State.
type StateOption func(*State)

// WithEffects attaches the dispatcher invoked on field changes.
func WithEffects(d EffectDispatcher) StateOption {
	return func(s *State) {
		s.effects = d
	}
}

// WithMaxEffectDepth overrides DefaultMaxEffectDepth. Values below 1 are ignored.
func WithMaxEffectDepth(n int) StateOption {
	return func(s *State) {
		if n > 0 {
			s.maxDepth = n
		}
	}
}

// WithInteraction records the event that produced this State.
func WithInteraction(in *Interaction) StateOption {
	return func(s *State) {
		s.interaction = in
	}
}

// WithContext sets the context handed to hooks fired during dispatch.
func WithContext(ctx context.Context) StateOption {
	return func(s *State) {
		if ctx != nil {
			s.ctx = ctx
		}
	}
}

// NewState wraps data. A nil document starts empty. The document is owned by
// the State from here on.
func NewState(data *value.Object, opts ...StateOption) *State {
	if data == nil {
		data = value.NewObject()
	}
	s := &State{
		data:     data,
		cache:    newCache(),
		ctx:      context.Background(),
		maxDepth: DefaultMaxEffectDepth,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the field value, if present. Lists and objects are copies.
func (s *State) Get(name string) (value.Value, bool) {
	v, ok := s.data.Get(name)
	if !ok {
		return value.Null(), false
	}
	return v.Clone(), true
}

// Has reports whether the field is present.
func (s *State) Has(name string) bool {
	return s.data.Has(name)
}

// Require returns the field value or a *MissingFieldError.
func (s *State) Require(name string) (value.Value, error) {
	v, ok := s.Get(name)
	if !ok {
		return value.Null(), &MissingFieldError{Field: name}
	}
	return v, nil
}

// Int returns an integer field. Absent or non-integer fields report false.
func (s *State) Int(name string) (int, bool) {
	v, ok := s.data.Get(name)
	if !ok {
		return 0, false
	}
	return v.AsInt()
}

// IntOr returns the integer field or def.
func (s *State) IntOr(name string, def int) int {
	if n, ok := s.Int(name); ok {
		return n
	}
	return def
}

func (s *State) RequireInt(name string) (int, error) {
	v, err := s.Require(name)
	if err != nil {
		return 0, err
	}
	n, ok := v.AsInt()
	if !ok {
		return 0, &FieldTypeError{Field: name, Want: value.KindNumber, Got: v.Kind()}
	}
	return n, nil
}

func (s *State) String(name string) (string, bool) {
	v, ok := s.data.Get(name)
	if !ok {
		return "", false
	}
	return v.AsString()
}

func (s *State) RequireString(name string) (string, error) {
	v, err := s.Require(name)
	if err != nil {
		return "", err
	}
	str, ok := v.AsString()
	if !ok {
		return "", &FieldTypeError{Field: name, Want: value.KindString, Got: v.Kind()}
	}
	return str, nil
}

func (s *State) Bool(name string) (bool, bool) {
	v, ok := s.data.Get(name)
	if !ok {
		return false, false
	}
	return v.AsBool()
}

// Set stores v under name, removing the field when v is null. If the new
// value differs structurally from the previous one, the registered effect
// runs before Set returns.
func (s *State) Set(name string, v value.Value) {
	old, _ := s.data.Get(name)
	if v.IsNull() {
		s.data.Delete(name)
	} else {
		s.data.Set(name, v.Clone())
	}

	if value.Equal(old, v) || s.effects == nil {
		return
	}
	if s.depth >= s.maxDepth {
		if s.err == nil {
			s.err = &EffectDepthError{Field: name, Depth: s.depth}
		}
		return
	}

	s.depth++
	defer func() { s.depth-- }()
	s.effects.DispatchEffect(s, name, old, v)
}

func (s *State) SetInt(name string, n int) { s.Set(name, value.Int(n)) }

func (s *State) SetString(name string, str string) { s.Set(name, value.String(str)) }

func (s *State) SetBool(name string, b bool) { s.Set(name, value.Bool(b)) }

// Delete removes the field, dispatching an effect if it was present.
func (s *State) Delete(name string) { s.Set(name, value.Null()) }

// Update sets name to fn(current). Absent fields are passed as null.
func (s *State) Update(name string, fn func(old value.Value) value.Value) {
	old, _ := s.Get(name)
	s.Set(name, fn(old))
}

// UpdateInt is Update for integer fields; absent or non-integer fields read as def.
func (s *State) UpdateInt(name string, def int, fn func(int) int) {
	s.SetInt(name, fn(s.IntOr(name, def)))
}

// Data returns a copy of the document.
func (s *State) Data() *value.Object { return s.data.Clone() }

// Serialize returns the canonical text of the document. An empty document
// serializes to the empty string so it occupies no identifier space.
func (s *State) Serialize() string {
	if s.data.Len() == 0 {
		return ""
	}
	return value.Marshal(value.FromObject(s.data))
}

// Cache returns the render-local cache.
func (s *State) Cache() *Cache { return s.cache }

// Interaction returns the triggering event, or nil on first display.
func (s *State) Interaction() *Interaction { return s.interaction }

// Context returns the context of the current cycle.
func (s *State) Context() context.Context { return s.ctx }

// Depth is the current effect nesting level.
func (s *State) Depth() int { return s.depth }

// Err reports a failure recorded during effect dispatch.
func (s *State) Err() error { return s.err }

// InitOnce runs fn the first time it is called on this State.
// Later calls return nil without running fn.
func (s *State) InitOnce(fn func() error) error {
	if s.initialized {
		return nil
	}
	s.initialized = true
	if fn == nil {
		return nil
	}
	return fn()
}
