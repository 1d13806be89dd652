package model

// EventKind names one of the two tracked ledger events.
type EventKind string

var (
	// AddrChanged is emitted by the public resolver when a name's address changes.
	AddrChanged EventKind = "AddrChanged"
	// NameChanged is emitted by the reverse resolver when an address's name changes.
	NameChanged EventKind = "NameChanged"
)

// Event is a decoded resolver log.
// Node is the 0x-prefixed lowercase namehash of the subject. Value holds the
// checksummed address for AddrChanged and the name for NameChanged; an empty
// Value means the binding was cleared. Decoded is false when the log could
// not be decoded into those arguments.
type Event struct {
	Kind    EventKind
	Order   EventOrderKey
	Node    string
	Value   string
	Decoded bool
}

// Binding converts the event value into a record binding.
func (e Event) Binding() Binding {
	if e.Value == "" {
		return Cleared()
	}
	return Present(e.Value)
}
