package store

// Record is the durable form of one memory object. Visual and selection
// state are ephemeral and never serialized.
type Record struct {
	Position [3]float32 `json:"position"`
	Rotation [3]float32 `json:"rotation"`
	Text     string     `json:"text"`
	Color    uint32     `json:"color"`
	Shape    string     `json:"shape"`
}

// DocumentVersion tags the persisted layout so the format can evolve.
// Loaders reject anything else rather than guessing.
const DocumentVersion = 1

// document is the single JSON value stored under the layout key.
type document struct {
	Version int      `json:"version"`
	Objects []Record `json:"objects"`
}

// Store persists the whole object list wholesale under one key.
// Save always overwrites; Load of absent data returns an empty list.
type Store interface {
	Save(records []Record) error
	Load() ([]Record, error)
	Close() error
}
