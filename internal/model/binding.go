package model

import (
	"encoding/json"
	"fmt"
)

// BindingState distinguishes a never seen binding from an explicitly cleared one.
type BindingState uint8

const (
	// BindingUnset means no record exists for the subject.
	BindingUnset BindingState = iota
	// BindingCleared means the binding was removed on-chain.
	BindingCleared
	// BindingPresent means the binding carries a value.
	BindingPresent
)

func (s BindingState) String() string {
	switch s {
	case BindingUnset:
		return "unset"
	case BindingCleared:
		return "cleared"
	case BindingPresent:
		return "present"
	default:
		return fmt.Sprintf("BindingState(%d)", uint8(s))
	}
}

// Binding is the value side of a forward or reverse record.
type Binding struct {
	State BindingState
	Value string
}

// Present returns a binding holding v.
func Present(v string) Binding {
	return Binding{State: BindingPresent, Value: v}
}

// Cleared returns an explicitly cleared binding.
func Cleared() Binding {
	return Binding{State: BindingCleared}
}

// Unset returns a binding for a subject with no record.
func Unset() Binding {
	return Binding{}
}

// IsPresent reports whether the binding holds a value.
func (b Binding) IsPresent() bool {
	return b.State == BindingPresent
}

// MarshalJSON renders present bindings as strings and everything else as null.
func (b Binding) MarshalJSON() ([]byte, error) {
	if b.State != BindingPresent {
		return []byte("null"), nil
	}
	return json.Marshal(b.Value)
}

// UnmarshalJSON decodes null and the empty string as a cleared binding.
func (b *Binding) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*b = Cleared()
		return nil
	}
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("decode binding: %w", err)
	}
	if v == "" {
		*b = Cleared()
		return nil
	}
	*b = Present(v)
	return nil
}
