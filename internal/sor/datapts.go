package sor

// decodeDataPts reads the DataPts block summary: num_data_points and
// num_traces. Raw samples are skipped by default per the spec's Non-goal on
// bulk trace extraction; when includeSamples is true and at least one trace
// is present, num_data_points signed 16-bit samples are read as well,
// bounds-checked against blockEnd like every other field.
func decodeDataPts(c *cursor, version uint16, blockEnd int, includeSamples bool) (*DataPoints, error) {
	numDataPoints, err := c.readU32LE()
	if err != nil {
		return nil, err
	}
	numTraces, err := c.readU16LE()
	if err != nil {
		return nil, err
	}

	dp := &DataPoints{
		NumDataPoints: numDataPoints,
		NumTraces:     numTraces,
		Note:          "trace sample data skipped; pass IncludeSamples to ParseOptions to extract it",
	}

	if includeSamples && numTraces >= 1 {
		samples := make([]int16, 0, numDataPoints)
		for i := uint32(0); i < numDataPoints; i++ {
			if c.remainingUntil(blockEnd) < 2 {
				break
			}
			v, err := c.readI16LE()
			if err != nil {
				return nil, err
			}
			samples = append(samples, v)
		}
		dp.Samples = samples
		dp.Note = "trace sample data included (IncludeSamples was set)"
	}

	return dp, nil
}
