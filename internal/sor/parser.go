// Package sor decodes Bellcore SR-4731 / Telcordia GR-196 "Standard OTDR
// Record" files: the binary format an OTDR instrument emits after a fiber
// test, consisting of length-prefixed named blocks describing the test
// equipment, the fiber under test, acquisition settings, discovered key
// events, and the raw backscatter trace.
package sor

import (
	"fmt"
	"log"
	"os"
)

// knownBlocks lists the block names this package has a decoder for, and the
// fixed order the orchestrator processes them in. The order is not a
// requirement of the file format — blocks may physically appear in any
// order per the Map — but it is the documented processing order: equipment
// and identification blocks first for user-visible summaries, KeyEvents
// after FxdParams since it depends on FxdParams' group index.
var knownBlocks = []string{"SupParams", "GenParams", "FxdParams", "KeyEvents", "DataPts"}

// ParseOptions controls optional behavior of Parse/ParseBytes.
type ParseOptions struct {
	// IncludeSamples opts into extracting the raw DataPts sample array.
	// Off by default: the canonical summary only reports sample counts.
	IncludeSamples bool
}

// Parse reads path and decodes it as a SOR file using default options.
func Parse(path string) (*Record, error) {
	return ParseWithOptions(path, ParseOptions{})
}

// ParseWithOptions reads path and decodes it as a SOR file.
func ParseWithOptions(path string, opts ParseOptions) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Kind: FileIO, Err: fmt.Errorf("reading %s: %w", path, err)}
	}
	rec, err := parseBytes(data, opts)
	if err != nil {
		return nil, err
	}
	rec.Filename = path
	return rec, nil
}

// ParseBytes decodes buf as a SOR file using default options. filename is
// recorded on the resulting Record for callers that already have the bytes
// in hand (e.g. an upload handler) and never touched the filesystem.
func ParseBytes(filename string, buf []byte) (*Record, error) {
	return ParseBytesWithOptions(filename, buf, ParseOptions{})
}

// ParseBytesWithOptions decodes buf as a SOR file.
func ParseBytesWithOptions(filename string, buf []byte, opts ParseOptions) (*Record, error) {
	rec, err := parseBytes(buf, opts)
	if err != nil {
		return nil, err
	}
	rec.Filename = filename
	return rec, nil
}

func parseBytes(buf []byte, opts ParseOptions) (*Record, error) {
	descriptors, err := decodeMap(buf)
	if err != nil {
		return nil, err
	}

	rec := &Record{FileSizeBytes: int64(len(buf))}

	byName := make(map[string]blockDescriptor, len(descriptors))
	for _, d := range descriptors {
		if _, seen := byName[d.Name]; seen {
			continue // preserve first occurrence on duplicate names
		}
		byName[d.Name] = d
		rec.BlocksFound = append(rec.BlocksFound, d.Name)
	}

	groupIndex := defaultGroupIndex

	for _, name := range knownBlocks {
		d, ok := byName[name]
		if !ok {
			continue
		}

		blockEnd := int(d.Offset) + int(d.Size)
		if blockEnd > len(buf) {
			rec.setError(name, fmt.Errorf("block extends past end of file: offset=%d size=%d file_size=%d", d.Offset, d.Size, len(buf)))
			continue
		}
		c := newCursor(buf[:blockEnd], int(d.Offset))

		switch name {
		case "SupParams":
			equip, err := decodeSupParams(c, d.Version, blockEnd)
			if err != nil {
				rec.setError(name, asDecodeError(name, err))
				continue
			}
			rec.Equipment = equip

		case "GenParams":
			gen, err := decodeGenParams(c, d.Version, blockEnd)
			if err != nil {
				rec.setError(name, asDecodeError(name, err))
				continue
			}
			rec.General = gen

		case "FxdParams":
			acq, err := decodeFxdParams(c, d.Version, blockEnd)
			if err != nil {
				rec.setError(name, asDecodeError(name, err))
				continue
			}
			rec.Acquisition = acq
			if acq.GroupIndex > 0 {
				groupIndex = acq.GroupIndex
			} else {
				log.Printf("sor: FxdParams group index %.5f is non-positive, using default %.5f", acq.GroupIndex, defaultGroupIndex)
			}

		case "KeyEvents":
			ke, err := decodeKeyEvents(c, d.Version, blockEnd, groupIndex)
			if err != nil {
				rec.setError(name, asDecodeError(name, err))
				continue
			}
			rec.KeyEvents = ke

		case "DataPts":
			dp, err := decodeDataPts(c, d.Version, blockEnd, opts.IncludeSamples)
			if err != nil {
				rec.setError(name, asDecodeError(name, err))
				continue
			}
			rec.DataPoints = dp
		}
	}

	return rec, nil
}
