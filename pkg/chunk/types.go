// Package chunk defines the in-memory model of a distributed file's chunk
// map and the pure range-resolution algorithm that maps a byte range onto
// the storage nodes holding it.
//
// A chunk map is the ordered list of Location records the metadata service
// returns for one file. Nothing in this package performs I/O; fetching the
// map is the locator's job (pkg/locator).
package chunk

import "sort"

// StorageNode describes one physical storage node holding a chunk replica.
//
// Values are immutable after construction and owned by the Location that
// references them; they have no lifecycle of their own.
type StorageNode struct {
	// Name is the stable host identifier, as reported by the metadata
	// service. This is the value handed to schedulers as a locality hint.
	Name string

	// Address is the node's primary network address in canonical numeric
	// form.
	Address string

	// Enabled reports whether the node is administratively permitted to
	// serve data.
	Enabled bool

	// Up reports whether the node is currently reachable.
	Up bool
}

// Serviceable reports whether the node can be offered as a locality hint:
// it must be both up and administratively enabled.
func (n StorageNode) Serviceable() bool {
	return n.Up && n.Enabled
}

// Replica pairs a storage node with the logical replica slot it fills.
//
// The metadata service correlates replica ids and nodes strictly by position;
// keeping them in one struct removes the index-mismatch hazard of carrying
// two parallel arrays.
type Replica struct {
	// ID identifies the logical replica slot (the "vid" wire attribute).
	ID int

	// Node is the physical node serving this replica.
	Node StorageNode
}

// Chunk describes one contiguous byte-range segment of a file.
type Chunk struct {
	// Offset is the start byte of the segment within the file.
	Offset uint64

	// Length is the segment size in bytes. Always positive in a
	// well-formed chunk map.
	Length uint64
}

// Equal reports whether two chunks describe the same segment of the file.
// Replica assignment is deliberately excluded: two chunks are equal iff
// offset and length match.
func (c Chunk) Equal(other Chunk) bool {
	return c.Offset == other.Offset && c.Length == other.Length
}

// End returns the first byte past the segment, offset+length.
func (c Chunk) End() uint64 {
	return c.Offset + c.Length
}

// Location pairs one chunk with the ordered replicas serving it.
//
// FileLength is the whole file's size, denormalized onto every record so a
// chunk map is self-describing. A well-formed map is sorted ascending by
// chunk offset, non-overlapping and covers [0, FileLength) without gaps;
// ResolveRange does not trust the server on this and degrades as documented
// there when the map is ill-formed.
type Location struct {
	Chunk    Chunk
	Replicas []Replica

	// FileLength is the total length of the file this chunk belongs to.
	FileLength uint64
}

// Hosts returns the names of the serviceable replicas' nodes, preserving
// the order the metadata service reported them in. The result may be empty
// if no replica is currently up and enabled.
func (l Location) Hosts() []string {
	hosts := make([]string, 0, len(l.Replicas))
	for _, r := range l.Replicas {
		if r.Node.Serviceable() {
			hosts = append(hosts, r.Node.Name)
		}
	}
	return hosts
}

// SortByOffset sorts a chunk map ascending by chunk offset, the order
// ResolveRange expects. The sort is stable so records for identical offsets
// (only possible in ill-formed maps) keep their server order.
func SortByOffset(locations []Location) {
	sort.SliceStable(locations, func(i, j int) bool {
		return locations[i].Chunk.Offset < locations[j].Chunk.Offset
	})
}
