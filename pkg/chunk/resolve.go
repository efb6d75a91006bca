package chunk

import "fmt"

// BlockLocation is one element of a resolved range: a sub-range of the file
// and the nodes a scheduler can read it from.
type BlockLocation struct {
	// Offset is the start byte of this block within the file.
	Offset uint64

	// Length is the number of bytes of the query covered by this block.
	Length uint64

	// Hosts lists the names of the serviceable nodes holding this block,
	// in the order the metadata service reported them. May be empty when
	// no replica is currently up and enabled.
	Hosts []string
}

// RangeError reports a query range that extends past the end of the file.
// Resolution is rejected before any record is examined.
type RangeError struct {
	Start      uint64
	Length     uint64
	FileLength uint64
}

// Error implements the error interface.
func (e *RangeError) Error() string {
	return fmt.Sprintf("range [%d, %d) exceeds file length %d",
		e.Start, e.Start+e.Length, e.FileLength)
}

// ResolveRange maps the byte range [start, start+length) onto the minimal
// ordered sequence of blocks covering it, one block per overlapping chunk.
//
// The chunk map must be sorted ascending by offset (SortByOffset). The
// resolver walks it exactly once, trimming the first block at the head and
// the last at the tail so emitted lengths sum to exactly the requested
// length when the map is well formed.
//
// Two defensive cases for ill-formed maps:
//   - a record starting past the cursor is skipped without consuming any of
//     the query. If the map has a gap under the query, the result
//     under-covers rather than failing; coverage is best-effort there.
//   - a record ending at or before the cursor (overlapping map) is skipped
//     instead of emitting a non-positive-length block.
//
// Returns a *RangeError when start+length exceeds the file length recorded
// on the map. An empty map resolves to an empty result.
func ResolveRange(locations []Location, start, length uint64) ([]BlockLocation, error) {
	if len(locations) == 0 {
		return nil, nil
	}

	fileLength := locations[0].FileLength
	if start+length > fileLength {
		return nil, &RangeError{Start: start, Length: length, FileLength: fileLength}
	}

	blocks := make([]BlockLocation, 0, len(locations))
	begin := start
	remaining := length

	for _, loc := range locations {
		if remaining == 0 {
			break
		}
		if begin < loc.Chunk.Offset {
			// Not reached yet; a well-formed map never gets here.
			continue
		}
		if begin >= loc.Chunk.End() {
			// Cursor already past this record, only possible when
			// records overlap.
			continue
		}

		available := loc.Chunk.End() - begin
		emitted := available
		if remaining < emitted {
			emitted = remaining
		}

		blocks = append(blocks, BlockLocation{
			Offset: begin,
			Length: emitted,
			Hosts:  loc.Hosts(),
		})
		begin += emitted
		remaining -= emitted
	}

	return blocks, nil
}
