package sor

// decodeGenParams reads the GenParams block: fiber/cable identity and test
// location. user_offset_distance_01m only exists when version >= 200.
func decodeGenParams(c *cursor, version uint16, blockEnd int) (*General, error) {
	languageCode, err := c.readCStringLatin1()
	if err != nil {
		return nil, err
	}
	cableID, err := c.readCStringLatin1()
	if err != nil {
		return nil, err
	}
	fiberID, err := c.readCStringLatin1()
	if err != nil {
		return nil, err
	}
	fiberType, err := c.readU16LE()
	if err != nil {
		return nil, err
	}
	wavelengthNM, err := c.readU16LE()
	if err != nil {
		return nil, err
	}
	locationA, err := c.readCStringLatin1()
	if err != nil {
		return nil, err
	}
	locationB, err := c.readCStringLatin1()
	if err != nil {
		return nil, err
	}
	cableCode, err := c.readCStringLatin1()
	if err != nil {
		return nil, err
	}
	buildCondition, err := c.readBytes(2)
	if err != nil {
		return nil, err
	}
	userOffset, err := c.readI32LE()
	if err != nil {
		return nil, err
	}

	g := &General{
		LanguageCode:       languageCode,
		CableID:            cableID,
		FiberID:            fiberID,
		FiberType:          fiberType,
		FiberTypeName:      fiberTypeName(fiberType),
		WavelengthNM:       wavelengthNM,
		LocationA:          locationA,
		LocationB:          locationB,
		CableCode:          cableCode,
		BuildCondition:     string(buildCondition),
		BuildConditionName: buildConditionName(string(buildCondition)),
		UserOffset100ps:    userOffset,
	}

	if version >= 200 && c.pos+4 <= blockEnd {
		dist, err := c.readI32LE()
		if err != nil {
			return nil, err
		}
		g.UserOffsetDistance01m = &dist
	}

	operator, err := c.readCStringLatin1()
	if err != nil {
		return nil, err
	}
	comment, err := c.readCStringLatin1()
	if err != nil {
		return nil, err
	}
	g.Operator = operator
	g.Comment = comment

	return g, nil
}
