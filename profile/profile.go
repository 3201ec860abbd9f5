package profile

// Field stores aggregation information and statistics for a field.
type Field struct {
	// Name of this field.
	Name string `json:"name"`

	// Index of the field in tabular sources.
	Index int `json:"index"`

	// Storage type of the field.
	Type ValueType `json:"type"`

	// True if the field contains null values.
	Nullable bool `json:"nullable"`

	// Number of null values.
	NullCount int64 `json:"null_count"`

	// True if all non-null values are unique.
	Unique bool `json:"unique"`

	// Number of distinct non-null values.
	UniqueCount int64 `json:"unique_count"`

	// Number of category levels. Only set for category fields.
	Levels int `json:"levels,omitempty"`
}

type Profile struct {
	// Total number os records processed.
	RecordCount int64 `json:"record_count"`

	// Flat set of fields that were profiled.
	Fields map[string]*Field `json:"fields"`
}

// Names returns the field names ordered by index.
func (p *Profile) Names() []string {
	names := make([]string, len(p.Fields))

	for n, f := range p.Fields {
		if f.Index >= 0 && f.Index < len(names) {
			names[f.Index] = n
		}
	}

	return names
}

func NewProfile() *Profile {
	return &Profile{
		Fields: make(map[string]*Field),
	}
}
