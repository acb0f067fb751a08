package staging

// BufferSpec describes one named slot in an aggregate buffer layout:
// the source name paired with its tuple type. Layout planners collect
// specs from all pending sources before any of them is resolved.
type BufferSpec struct {
	// Name is the source name the slot is keyed by.
	Name string

	// TupleType is the binary layout of one entry in the slot.
	TupleType TupleType
}

// String returns a diagnostic representation such as "points: float[3]".
func (bs BufferSpec) String() string {
	return bs.Name + ": " + bs.TupleType.String()
}

// AddBufferSpecs appends the specs of all given sources, in order, to the
// given collection.
func AddBufferSpecs(specs *[]BufferSpec, sources []BufferSource) {
	for _, src := range sources {
		src.AddBufferSpecs(specs)
	}
}

// FindBufferSpec returns the first spec with the given name. The boolean
// reports whether one was found.
func FindBufferSpec(specs []BufferSpec, name string) (BufferSpec, bool) {
	for _, bs := range specs {
		if bs.Name == name {
			return bs, true
		}
	}
	return BufferSpec{}, false
}
