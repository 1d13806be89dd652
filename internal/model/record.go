package model

// ForwardRecord is the cached name to address binding.
type ForwardRecord struct {
	OrderKey *EventOrderKey `json:"eventId,omitempty"`
	Address  Binding        `json:"address"`
}

// ReverseRecord is the cached address to name binding.
type ReverseRecord struct {
	OrderKey *EventOrderKey `json:"eventId,omitempty"`
	Name     Binding        `json:"name"`
}

// Entry pairs a subject key with the record stored under it.
type Entry[T any] struct {
	Key    string
	Record T
}
