package metrics

// Inspector provides read-only enumeration of instruments, for reporting layers.
// Methods must be safe for concurrent use. Snapshot semantics: best-effort at call time.
type Inspector interface {
	List() []InstrumentEntry
}

type InstrumentEntry struct {
	Type   InstrumentType
	Name   string
	Config InstrumentConfig
	// Value is set for gauges.
	Value int64
	// Snapshot is set for counters.
	Snapshot Snapshot
}
