package testing

import "github.com/marmos91/chunkmap/pkg/chunk"

// Node builds an up-and-enabled StorageNode.
func Node(name, address string) chunk.StorageNode {
	return chunk.StorageNode{
		Name:    name,
		Address: address,
		Enabled: true,
		Up:      true,
	}
}

// Location builds a Location served by the given nodes, with replica ids
// assigned sequentially from 1.
func Location(offset, length, fileLength uint64, nodes ...chunk.StorageNode) chunk.Location {
	replicas := make([]chunk.Replica, 0, len(nodes))
	for i, node := range nodes {
		replicas = append(replicas, chunk.Replica{ID: i + 1, Node: node})
	}
	return chunk.Location{
		Chunk:      chunk.Chunk{Offset: offset, Length: length},
		Replicas:   replicas,
		FileLength: fileLength,
	}
}

// UniformChunkMap builds a well-formed map of count chunks of chunkSize
// bytes each, every chunk served by the given nodes. The file length is
// count*chunkSize.
func UniformChunkMap(count int, chunkSize uint64, nodes ...chunk.StorageNode) []chunk.Location {
	fileLength := uint64(count) * chunkSize
	locations := make([]chunk.Location, 0, count)
	for i := 0; i < count; i++ {
		locations = append(locations, Location(uint64(i)*chunkSize, chunkSize, fileLength, nodes...))
	}
	return locations
}
