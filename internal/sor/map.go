package sor

// blockDescriptor is one entry in the Map block's directory: a named,
// versioned, sized slice of the file. offset is the absolute byte offset
// of the block's own data, computed by decodeMap as the prefix sum of
// preceding block sizes (the Map block's own entry sits at offset 0).
type blockDescriptor struct {
	Name    string
	Version uint16
	Size    uint32
	Offset  uint32
}

// decodeMap reads the leading Map block starting at offset 0 of buf and
// returns the ordered list of block descriptors, including the Map block's
// own entry. When the directory lists "Map" as its first entry, that entry
// is the map's own and is not listed a second time. Termination is always by byte count (pos < start+nbytes); a
// v1 file's advisory num_blocks count is read but never used for loop
// control, per the spec's explicit preference for byte-count termination
// regardless of version.
func decodeMap(buf []byte) ([]blockDescriptor, error) {
	c := newCursor(buf, 0)

	version, err := c.readU16LE()
	if err != nil {
		return nil, &Error{Kind: MalformedMap, Err: err}
	}
	nbytes, err := c.readU32LE()
	if err != nil {
		return nil, &Error{Kind: MalformedMap, Err: err}
	}

	if int(nbytes) > len(buf) {
		return nil, newErr(MalformedMap, "", "map declares nbytes=%d but buffer is only %d bytes", nbytes, len(buf))
	}

	if version < 200 {
		if _, err := c.readU16LE(); err != nil {
			return nil, &Error{Kind: MalformedMap, Err: err}
		}
	}

	end := int(nbytes)

	var descriptors []blockDescriptor
	descriptors = append(descriptors, blockDescriptor{Name: "Map", Version: version, Size: nbytes, Offset: 0})

	var runningOffset uint32 = nbytes

	for c.pos < end {
		name, err := c.readCStringLatin1()
		if err != nil {
			return nil, &Error{Kind: MalformedMap, Err: err}
		}
		ver, err := c.readU16LE()
		if err != nil {
			return nil, newErr(MalformedMap, "", "truncated entry for block %q: %v", name, err)
		}
		size, err := c.readU32LE()
		if err != nil {
			return nil, newErr(MalformedMap, "", "truncated entry for block %q: %v", name, err)
		}

		if name == "Map" && len(descriptors) == 1 {
			continue // the map's own entry, already recorded at offset 0
		}

		descriptors = append(descriptors, blockDescriptor{
			Name:    name,
			Version: ver,
			Size:    size,
			Offset:  runningOffset,
		})
		runningOffset += size
	}

	if c.pos > end {
		return nil, newErr(MalformedMap, "", "map entries overran declared nbytes=%d", nbytes)
	}

	return descriptors, nil
}
