package locator

import (
	"context"
	"encoding/xml"
	"errors"
	"io"
	"net"
	"strconv"

	"github.com/marmos91/chunkmap/pkg/chunk"
)

// Wire tag and attribute names of the chunk-map document:
//
//	<chunk_list>
//	  <chunk offset="0" chunk_size="67108864">
//	    <map>
//	      <copy ip_addr="10.10.2.200" name="sn1" vid="1" />
//	      <copy ip_addr="10.10.2.201" name="sn2" vid="3" />
//	    </map>
//	  </chunk>
//	</chunk_list>
const (
	tagChunk = "chunk"
	tagCopy  = "copy"

	attrOffset    = "offset"
	attrChunkSize = "chunk_size"
	attrIPAddr    = "ip_addr"
	attrName      = "name"
	attrVolumeID  = "vid"
)

// parseChunkMap decodes the streamed chunk-map document into Location
// records, in document order.
//
// The document has no end-of-entry marker: a chunk's replica group is only
// known to be complete when the next <chunk> tag starts, or the stream ends.
// The parser therefore walks start elements only, accumulating one pending
// group at a time and flushing it on each group boundary, with an explicit
// final flush after EOF for the last group.
func parseChunkMap(ctx context.Context, r io.Reader, fileLength uint64) ([]chunk.Location, error) {
	decoder := xml.NewDecoder(r)

	var (
		locations []chunk.Location
		current   chunk.Chunk
		replicas  []chunk.Replica
	)

	flush := func() {
		if len(replicas) == 0 {
			return
		}
		locations = append(locations, chunk.Location{
			Chunk:      current,
			Replicas:   replicas,
			FileLength: fileLength,
		})
		replicas = nil
	}

	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, protocolError("chunk map document is not well-formed", "", err)
		}

		start, ok := token.(xml.StartElement)
		if !ok {
			continue
		}

		switch start.Name.Local {
		case tagChunk:
			flush()

			offset, err := uintAttr(start, attrOffset)
			if err != nil {
				return nil, err
			}
			size, err := uintAttr(start, attrChunkSize)
			if err != nil {
				return nil, err
			}
			current = chunk.Chunk{Offset: offset, Length: size}

		case tagCopy:
			replica, err := parseReplica(ctx, start)
			if err != nil {
				return nil, err
			}
			replicas = append(replicas, replica)
		}
	}

	// The last group is never followed by another <chunk> tag.
	flush()

	return locations, nil
}

// parseReplica reads one <copy> element into a Replica. The protocol does
// not transmit health state, so liveness and enablement default to true.
func parseReplica(ctx context.Context, start xml.StartElement) (chunk.Replica, error) {
	addr, err := findAttr(start, attrIPAddr)
	if err != nil {
		return chunk.Replica{}, err
	}
	name, err := findAttr(start, attrName)
	if err != nil {
		return chunk.Replica{}, err
	}
	vid, err := findAttr(start, attrVolumeID)
	if err != nil {
		return chunk.Replica{}, err
	}

	id, err := strconv.Atoi(vid)
	if err != nil {
		return chunk.Replica{}, protocolError("invalid attribute value", attrVolumeID+"="+vid, err)
	}

	canonical, err := canonicalAddress(ctx, addr)
	if err != nil {
		return chunk.Replica{}, err
	}

	return chunk.Replica{
		ID: id,
		Node: chunk.StorageNode{
			Name:    name,
			Address: canonical,
			Enabled: true,
			Up:      true,
		},
	}, nil
}

// canonicalAddress normalizes a replica address to numeric form. Literal IP
// addresses pass through; hostnames are resolved and the first address wins.
func canonicalAddress(ctx context.Context, addr string) (string, error) {
	if ip := net.ParseIP(addr); ip != nil {
		return ip.String(), nil
	}

	addrs, err := net.DefaultResolver.LookupIPAddr(ctx, addr)
	if err != nil {
		return "", protocolError("cannot resolve replica address", addr, err)
	}
	if len(addrs) == 0 {
		return "", protocolError("cannot resolve replica address", addr, nil)
	}
	return addrs[0].IP.String(), nil
}

func findAttr(start xml.StartElement, name string) (string, error) {
	for _, attr := range start.Attr {
		if attr.Name.Local == name {
			return attr.Value, nil
		}
	}
	return "", protocolError("missing attribute", "<"+start.Name.Local+"> "+name, nil)
}

func uintAttr(start xml.StartElement, name string) (uint64, error) {
	value, err := findAttr(start, name)
	if err != nil {
		return 0, err
	}
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, protocolError("invalid attribute value", name+"="+value, err)
	}
	return parsed, nil
}
