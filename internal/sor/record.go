package sor

// Record is the top-level parsed output of Parse/ParseBytes. Each sub-block
// field is a pointer that is nil when the block was absent from the file;
// when the block was present but failed to decode, the field stays nil and
// the failure reason is recorded in Errors instead, keyed by block name —
// this is the "Ok(fields) | Err(message)" sum type the spec calls for,
// expressed as presence-in-one-map-or-the-other rather than a tagged union,
// since Go JSON marshaling needs concrete struct shapes per block.
type Record struct {
	Filename      string   `json:"filename"`
	FileSizeBytes int64    `json:"file_size_bytes"`
	BlocksFound   []string `json:"blocks_found"`

	Equipment   *Equipment   `json:"equipment,omitempty"`
	General     *General     `json:"general,omitempty"`
	Acquisition *Acquisition `json:"acquisition,omitempty"`
	KeyEvents   *KeyEvents   `json:"key_events,omitempty"`
	DataPoints  *DataPoints  `json:"data_points,omitempty"`

	// Errors holds {block: message} for blocks present in BlocksFound whose
	// decoder failed. A decoded block's name (SupParams, GenParams,
	// FxdParams, KeyEvents, DataPts) found in the file appears in exactly one
	// of the typed fields above or here, never both and never neither; Map
	// and unknown block names appear in BlocksFound only.
	Errors map[string]string `json:"errors,omitempty"`
}

func (r *Record) setError(block string, err error) {
	if r.Errors == nil {
		r.Errors = make(map[string]string)
	}
	r.Errors[block] = err.Error()
}

// Equipment is the SupParams block: test-equipment identity.
type Equipment struct {
	Supplier          string `json:"supplier"`
	OTDRMainframeID   string `json:"otdr_mainframe_id"`
	OTDRMainframeSN   string `json:"otdr_mainframe_sn"`
	OpticalModuleID   string `json:"optical_module_id"`
	OpticalModuleSN   string `json:"optical_module_sn"`
	SoftwareRevision  string `json:"software_revision"`
	Other             string `json:"other"`
}

// General is the GenParams block: fiber/cable identity.
type General struct {
	LanguageCode           string  `json:"language_code"`
	CableID                string  `json:"cable_id"`
	FiberID                string  `json:"fiber_id"`
	FiberType              uint16  `json:"fiber_type"`
	FiberTypeName          string  `json:"fiber_type_name"`
	WavelengthNM           uint16  `json:"wavelength_nm"`
	LocationA              string  `json:"location_a"`
	LocationB              string  `json:"location_b"`
	CableCode              string  `json:"cable_code"`
	BuildCondition         string  `json:"build_condition"`
	BuildConditionName     string  `json:"build_condition_name"`
	UserOffset100ps        int32   `json:"user_offset_100ps"`
	UserOffsetDistance01m  *int32  `json:"user_offset_distance_01m,omitempty"`
	Operator               string  `json:"operator"`
	Comment                string  `json:"comment"`
}

// Acquisition is the FxdParams block: acquisition settings for the trace.
type Acquisition struct {
	EpochSeconds              uint32   `json:"epoch_seconds"`
	TimestampUTC              *string  `json:"timestamp_utc"`
	DistanceUnit              string   `json:"distance_unit"`
	ActualWavelengthNM        uint16   `json:"actual_wavelength_nm"`
	AcquisitionOffset100ps    int32    `json:"acquisition_offset_100ps"`
	AcquisitionOffsetDist01m  *int32   `json:"acquisition_offset_distance_01m,omitempty"`
	NumPulseWidths            uint16   `json:"num_pulse_widths"`
	PulseWidthsNS             []uint16 `json:"pulse_widths_ns"`
	DataSpacing100ps          []uint32 `json:"data_spacing_100ps"`
	NumDataPointsPerPW        []uint32 `json:"num_data_points"`
	GroupIndex                float64  `json:"group_index"`
	BackscatterCoefficientDB  float64  `json:"backscatter_coefficient_db"`
	NumAverages               uint32   `json:"num_averages"`
	AveragingTimeS            uint16   `json:"averaging_time_s"`
	RangeTimeOfTravel100ps    uint32   `json:"range_100ps"`
	RangeKm                   float64  `json:"range_km"`
	AcquisitionRangeDist01m   *int32   `json:"acquisition_range_distance_01m,omitempty"`
	FrontPanelOffset100ps     int32    `json:"front_panel_offset_100ps"`
	NoiseFloorLevel           uint16   `json:"noise_floor_level"`
	NoiseFloorScaleFactor     uint16   `json:"noise_floor_scale_factor"`
	PowerOffsetFirstPoint     uint16   `json:"power_offset_first_point"`
	LossThresholdDB           float64  `json:"loss_threshold_db"`
	ReflectanceThresholdDB    float64  `json:"reflectance_threshold_db"`
	EndOfFiberThresholdDB     float64  `json:"end_of_fiber_threshold_db"`
	TraceTypeRaw              string   `json:"trace_type_raw,omitempty"`
	TraceTypeName             string   `json:"trace_type_name,omitempty"`
}

// Event is one entry in the KeyEvents block.
type Event struct {
	EventNumber          uint16  `json:"event_number"`
	TimeOfTravel100ps    uint32  `json:"time_of_travel_100ps"`
	DistanceM            float64 `json:"distance_m"`
	SlopeDBkm            float64 `json:"slope_dbkm"`
	SpliceLossDB         float64 `json:"splice_loss_db"`
	ReflectanceDB        float64 `json:"reflectance_db"`
	EventTypeRaw         string  `json:"event_type_raw"`
	EventTypeDescription string  `json:"event_type_description"`

	EndOfPreviousEvent100ps *uint32 `json:"end_of_previous_event_100ps,omitempty"`
	StartOfCurrentEvent100ps *uint32 `json:"start_of_current_event_100ps,omitempty"`
	EndOfCurrentEvent100ps   *uint32 `json:"end_of_current_event_100ps,omitempty"`
	StartOfNextEvent100ps    *uint32 `json:"start_of_next_event_100ps,omitempty"`
	PeakOfCurrentEvent100ps  *uint32 `json:"peak_of_current_event_100ps,omitempty"`

	Comment string `json:"comment"`
}

// KeyEventsSummary is the optional trailing summary of the KeyEvents block.
// Each field is independently gated on the bytes remaining in the block, so
// a short tail yields a correspondingly short summary rather than an error.
type KeyEventsSummary struct {
	TotalLossDB           *float64 `json:"total_loss_db,omitempty"`
	FiberStartPosition    *int32   `json:"fiber_start_position,omitempty"`
	FiberLength100ps      *uint32  `json:"fiber_length_100ps,omitempty"`
	FiberLengthM          *float64 `json:"fiber_length_m,omitempty"`
	FiberLength01m        *int32   `json:"fiber_length_01m,omitempty"`
	OpticalReturnLossDB   *float64 `json:"optical_return_loss_db,omitempty"`
}

// KeyEvents is the decoded KeyEvents block.
type KeyEvents struct {
	NumEvents uint16            `json:"num_events"`
	Events    []Event           `json:"events"`
	Summary   *KeyEventsSummary `json:"summary,omitempty"`
}

// DataPoints is the decoded DataPts block. Raw samples are intentionally
// skipped unless the caller opted into ParseOptions.IncludeSamples.
type DataPoints struct {
	NumDataPoints uint32  `json:"num_data_points"`
	NumTraces     uint16  `json:"num_traces"`
	Note          string  `json:"note"`
	Samples       []int16 `json:"samples,omitempty"`
}
