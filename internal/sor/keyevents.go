package sor

// decodeKeyEvents reads the KeyEvents block: num_events followed by that
// many event records, then a best-effort trailing summary. groupIndex is
// threaded in from FxdParams (or defaultGroupIndex if FxdParams was absent
// or non-positive) so each event's one-way distance can be derived.
//
// The trailing summary is read with a guarded-read pattern: each field is
// attempted only if enough bytes remain, and any read error encountered
// while decoding it is swallowed — the summary returned is whatever was
// successfully read, never an error for the whole block.
func decodeKeyEvents(c *cursor, version uint16, blockEnd int, groupIndex float64) (*KeyEvents, error) {
	numEvents, err := c.readU16LE()
	if err != nil {
		return nil, err
	}

	events := make([]Event, 0, numEvents)
	for i := uint16(0); i < numEvents; i++ {
		evt, err := decodeEvent(c, version, groupIndex)
		if err != nil {
			return nil, err
		}
		events = append(events, evt)
	}

	ke := &KeyEvents{NumEvents: numEvents, Events: events}
	ke.Summary = decodeKeyEventsSummary(c, version, blockEnd, groupIndex)
	return ke, nil
}

func decodeEvent(c *cursor, version uint16, groupIndex float64) (Event, error) {
	eventNumber, err := c.readU16LE()
	if err != nil {
		return Event{}, err
	}
	timeOfTravel, err := c.readU32LE()
	if err != nil {
		return Event{}, err
	}
	slope, err := c.readI16LE()
	if err != nil {
		return Event{}, err
	}
	spliceLoss, err := c.readI16LE()
	if err != nil {
		return Event{}, err
	}
	reflectance, err := c.readI32LE()
	if err != nil {
		return Event{}, err
	}
	typeRaw, err := c.readBytes(8)
	if err != nil {
		return Event{}, err
	}

	evt := Event{
		EventNumber:          eventNumber,
		TimeOfTravel100ps:    timeOfTravel,
		DistanceM:            timeToDistance(timeOfTravel, groupIndex),
		SlopeDBkm:            float64(slope) / 1000,
		SpliceLossDB:         float64(spliceLoss) / 1000,
		ReflectanceDB:        float64(reflectance) / 1000,
		EventTypeRaw:         string(typeRaw),
		EventTypeDescription: describeEventType(string(typeRaw)),
	}

	if version >= 200 {
		fields := make([]*uint32, 5)
		for i := range fields {
			v, err := c.readU32LE()
			if err != nil {
				return Event{}, err
			}
			fields[i] = &v
		}
		evt.EndOfPreviousEvent100ps = fields[0]
		evt.StartOfCurrentEvent100ps = fields[1]
		evt.EndOfCurrentEvent100ps = fields[2]
		evt.StartOfNextEvent100ps = fields[3]
		evt.PeakOfCurrentEvent100ps = fields[4]
	}

	comment, err := c.readCStringLatin1()
	if err != nil {
		return Event{}, err
	}
	evt.Comment = comment

	return evt, nil
}

func decodeKeyEventsSummary(c *cursor, version uint16, blockEnd int, groupIndex float64) *KeyEventsSummary {
	summary := &KeyEventsSummary{}

	if c.remainingUntil(blockEnd) < 4 {
		return summary
	}
	totalLoss, err := c.readU32LE()
	if err != nil {
		return summary
	}
	v := float64(totalLoss) / 1000
	summary.TotalLossDB = &v

	if c.remainingUntil(blockEnd) < 4 {
		return summary
	}
	fiberStart, err := c.readI32LE()
	if err != nil {
		return summary
	}
	summary.FiberStartPosition = &fiberStart

	if c.remainingUntil(blockEnd) < 4 {
		return summary
	}
	fiberLength, err := c.readU32LE()
	if err != nil {
		return summary
	}
	summary.FiberLength100ps = &fiberLength
	lenM := timeToDistance(fiberLength, groupIndex)
	summary.FiberLengthM = &lenM

	if version >= 200 {
		if c.remainingUntil(blockEnd) < 4 {
			return summary
		}
		fiberLen01m, err := c.readI32LE()
		if err != nil {
			return summary
		}
		summary.FiberLength01m = &fiberLen01m
	}

	if c.remainingUntil(blockEnd) < 2 {
		return summary
	}
	orl, err := c.readU16LE()
	if err != nil {
		return summary
	}
	orlDB := float64(orl) / 1000
	summary.OpticalReturnLossDB = &orlDB

	return summary
}
