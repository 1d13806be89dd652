package model

import (
	"encoding/json"
	"errors"
)

var (
	ErrInvalidAddress = errors.New("invalid address")
	ErrInvalidName    = errors.New("invalid name")
)

// AddressResolution is the outcome of reverse resolution.
// Confirmed is only meaningful when Name is present.
type AddressResolution struct {
	Name      Binding
	Confirmed bool
}

// MarshalJSON renders {"name":null} when no reverse binding exists and
// {"name":...,"confirmed":...} otherwise.
func (r AddressResolution) MarshalJSON() ([]byte, error) {
	if !r.Name.IsPresent() {
		return []byte(`{"name":null}`), nil
	}
	return json.Marshal(struct {
		Name      string `json:"name"`
		Confirmed bool   `json:"confirmed"`
	}{Name: r.Name.Value, Confirmed: r.Confirmed})
}

// Status reports ingestion progress.
type Status struct {
	LastProcessedBlock uint64 `json:"lastProcessedBlock"`
	CurrentBlockNumber uint64 `json:"currentBlockNumber"`
}
