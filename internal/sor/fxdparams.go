package sor

import "time"

// decodeFxdParams reads the FxdParams block: acquisition settings for the
// trace. Array lengths come from num_pulse_widths; the three parallel
// arrays are read back-to-back in that order. trace_type is read only when
// version >= 200 and at least 2 bytes remain in the block.
func decodeFxdParams(c *cursor, version uint16, blockEnd int) (*Acquisition, error) {
	epochSeconds, err := c.readU32LE()
	if err != nil {
		return nil, err
	}

	a := &Acquisition{EpochSeconds: epochSeconds, TimestampUTC: epochToISO(epochSeconds)}

	distanceUnit, err := c.readBytes(2)
	if err != nil {
		return nil, err
	}
	a.DistanceUnit = string(distanceUnit)

	actualWavelengthNM, err := c.readU16LE()
	if err != nil {
		return nil, err
	}
	a.ActualWavelengthNM = actualWavelengthNM

	acqOffset, err := c.readI32LE()
	if err != nil {
		return nil, err
	}
	a.AcquisitionOffset100ps = acqOffset

	if version >= 200 && c.pos+4 <= blockEnd {
		dist, err := c.readI32LE()
		if err != nil {
			return nil, err
		}
		a.AcquisitionOffsetDist01m = &dist
	}

	numPulseWidths, err := c.readU16LE()
	if err != nil {
		return nil, err
	}
	a.NumPulseWidths = numPulseWidths

	pulseWidths := make([]uint16, numPulseWidths)
	for i := range pulseWidths {
		v, err := c.readU16LE()
		if err != nil {
			return nil, err
		}
		pulseWidths[i] = v
	}
	a.PulseWidthsNS = pulseWidths

	dataSpacing := make([]uint32, numPulseWidths)
	for i := range dataSpacing {
		v, err := c.readU32LE()
		if err != nil {
			return nil, err
		}
		dataSpacing[i] = v
	}
	a.DataSpacing100ps = dataSpacing

	numDataPoints := make([]uint32, numPulseWidths)
	for i := range numDataPoints {
		v, err := c.readU32LE()
		if err != nil {
			return nil, err
		}
		numDataPoints[i] = v
	}
	a.NumDataPointsPerPW = numDataPoints

	rawGroupIndex, err := c.readU32LE()
	if err != nil {
		return nil, err
	}
	a.GroupIndex = float64(rawGroupIndex) / 100000

	rawBackscatter, err := c.readU16LE()
	if err != nil {
		return nil, err
	}
	a.BackscatterCoefficientDB = -float64(rawBackscatter) / 10

	numAverages, err := c.readU32LE()
	if err != nil {
		return nil, err
	}
	a.NumAverages = numAverages

	averagingTimeS, err := c.readU16LE()
	if err != nil {
		return nil, err
	}
	a.AveragingTimeS = averagingTimeS

	rangeTime, err := c.readU32LE()
	if err != nil {
		return nil, err
	}
	a.RangeTimeOfTravel100ps = rangeTime
	a.RangeKm = float64(rangeTime) * 1e-6

	if version >= 200 && c.pos+4 <= blockEnd {
		dist, err := c.readI32LE()
		if err != nil {
			return nil, err
		}
		a.AcquisitionRangeDist01m = &dist
	}

	frontPanelOffset, err := c.readI32LE()
	if err != nil {
		return nil, err
	}
	a.FrontPanelOffset100ps = frontPanelOffset

	noiseFloorLevel, err := c.readU16LE()
	if err != nil {
		return nil, err
	}
	a.NoiseFloorLevel = noiseFloorLevel

	noiseFloorScale, err := c.readU16LE()
	if err != nil {
		return nil, err
	}
	a.NoiseFloorScaleFactor = noiseFloorScale

	powerOffsetFirstPoint, err := c.readU16LE()
	if err != nil {
		return nil, err
	}
	a.PowerOffsetFirstPoint = powerOffsetFirstPoint

	lossThreshold, err := c.readU16LE()
	if err != nil {
		return nil, err
	}
	a.LossThresholdDB = float64(lossThreshold) / 1000

	reflThreshold, err := c.readU16LE()
	if err != nil {
		return nil, err
	}
	a.ReflectanceThresholdDB = -float64(reflThreshold) / 1000

	eofThreshold, err := c.readU16LE()
	if err != nil {
		return nil, err
	}
	a.EndOfFiberThresholdDB = float64(eofThreshold) / 1000

	if version >= 200 && c.pos+2 <= blockEnd {
		raw, err := c.readBytes(2)
		if err != nil {
			return nil, err
		}
		a.TraceTypeRaw = string(raw)
		a.TraceTypeName = traceTypeName(string(raw))
	}

	return a, nil
}

// epochToISO converts a SOR epoch-seconds field into a UTC ISO-8601
// timestamp string. An epoch of 0 (no timestamp recorded) or one the host
// calendar library rejects yields a nil pointer; the raw epoch is always
// preserved on Acquisition.EpochSeconds regardless.
func epochToISO(epochSeconds uint32) *string {
	if epochSeconds == 0 {
		return nil
	}
	t := time.Unix(int64(epochSeconds), 0).UTC()
	s := t.Format(time.RFC3339)
	return &s
}
