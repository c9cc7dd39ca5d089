package sor

// decodeSupParams reads the SupParams block: seven consecutive NUL-terminated
// latin-1 strings identifying the test equipment. version is accepted for
// symmetry with the other block decoders but SupParams has no version-gated
// fields.
func decodeSupParams(c *cursor, version uint16, blockEnd int) (*Equipment, error) {
	fields := make([]string, 7)
	for i := range fields {
		s, err := c.readCStringLatin1()
		if err != nil {
			return nil, err
		}
		fields[i] = s
	}
	return &Equipment{
		Supplier:         fields[0],
		OTDRMainframeID:  fields[1],
		OTDRMainframeSN:  fields[2],
		OpticalModuleID:  fields[3],
		OpticalModuleSN:  fields[4],
		SoftwareRevision: fields[5],
		Other:            fields[6],
	}, nil
}
