// Package sorreport formats a decoded SOR record as the human-readable
// summary printed by "sor parse" when neither --json nor --pretty is given.
package sorreport

import (
	"fmt"
	"io"
	"strings"

	"github.com/banshee-data/sorparser/internal/sor"
)

// Write prints rec as a multi-section plain-text summary to w.
func Write(w io.Writer, rec *sor.Record) error {
	fmt.Fprintf(w, "=== SOR File: %s (%d bytes) ===\n", rec.Filename, rec.FileSizeBytes)
	if len(rec.BlocksFound) > 0 {
		fmt.Fprintf(w, "Blocks: %s\n", strings.Join(rec.BlocksFound, ", "))
	}
	fmt.Fprintln(w)

	if eq := rec.Equipment; eq != nil {
		fmt.Fprintln(w, "--- Equipment ---")
		pf(w, "Supplier", eq.Supplier)
		pf(w, "OTDR Model", eq.OTDRMainframeID)
		pf(w, "OTDR S/N", eq.OTDRMainframeSN)
		pf(w, "Module", eq.OpticalModuleID)
		pf(w, "Module S/N", eq.OpticalModuleSN)
		pf(w, "Software", eq.SoftwareRevision)
		fmt.Fprintln(w)
	}

	if gen := rec.General; gen != nil {
		fmt.Fprintln(w, "--- General Parameters ---")
		pf(w, "Cable ID", gen.CableID)
		pf(w, "Fiber ID", gen.FiberID)
		pf(w, "Fiber Type", gen.FiberTypeName)
		pfUnit(w, "Wavelength", gen.WavelengthNM, "nm")
		pf(w, "Location A", gen.LocationA)
		pf(w, "Location B", gen.LocationB)
		pf(w, "Operator", gen.Operator)
		pf(w, "Build Cond.", gen.BuildConditionName)
		pf(w, "Comment", gen.Comment)
		fmt.Fprintln(w)
	}

	if acq := rec.Acquisition; acq != nil {
		fmt.Fprintln(w, "--- Acquisition Parameters ---")
		if acq.TimestampUTC != nil {
			pf(w, "Date/Time", *acq.TimestampUTC)
		}
		pf(w, "Units", acq.DistanceUnit)
		pfUnit(w, "Wavelength", acq.ActualWavelengthNM, "nm")
		if len(acq.PulseWidthsNS) > 0 {
			pfUnit(w, "Pulse Width", acq.PulseWidthsNS[0], "ns")
		}
		fmt.Fprintf(w, "  %-15s %.5f\n", "Group Index", acq.GroupIndex)
		pfUnit(w, "Backscatter", acq.BackscatterCoefficientDB, "dB")
		pf(w, "Averages", acq.NumAverages)
		pfUnit(w, "Range", acq.RangeKm, "km")
		if len(acq.NumDataPointsPerPW) > 0 {
			pf(w, "Data Points", acq.NumDataPointsPerPW[0])
		}
		pfUnit(w, "Loss Thresh", acq.LossThresholdDB, "dB")
		pfUnit(w, "Refl Thresh", acq.ReflectanceThresholdDB, "dB")
		pfUnit(w, "EOF Thresh", acq.EndOfFiberThresholdDB, "dB")
		fmt.Fprintln(w)
	}

	if ke := rec.KeyEvents; ke != nil {
		fmt.Fprintf(w, "--- Key Events (%d) ---\n", ke.NumEvents)
		for _, evt := range ke.Events {
			fmt.Fprintf(w, "  #%3d  dist=%.3f m  loss=%.3f dB  refl=%.3f dB  [%s]\n",
				evt.EventNumber, evt.DistanceM, evt.SpliceLossDB, evt.ReflectanceDB, evt.EventTypeDescription)
			if evt.Comment != "" {
				fmt.Fprintf(w, "        comment: %s\n", evt.Comment)
			}
		}
		if ke.Summary != nil {
			if ke.Summary.TotalLossDB != nil {
				fmt.Fprintf(w, "\n  Total Loss:  %.3f dB\n", *ke.Summary.TotalLossDB)
			}
			if ke.Summary.OpticalReturnLossDB != nil {
				fmt.Fprintf(w, "  ORL:         %.3f dB\n", *ke.Summary.OpticalReturnLossDB)
			}
		}
		fmt.Fprintln(w)
	}

	if dp := rec.DataPoints; dp != nil {
		fmt.Fprintln(w, "--- Trace Data ---")
		pf(w, "Data Points", dp.NumDataPoints)
		if dp.Note != "" {
			pf(w, "Note", dp.Note)
		}
		fmt.Fprintln(w)
	}

	if len(rec.Errors) > 0 {
		fmt.Fprintln(w, "--- Errors ---")
		for _, name := range rec.BlocksFound {
			if msg, ok := rec.Errors[name]; ok {
				fmt.Fprintf(w, "  %-15s %s\n", name, msg)
			}
		}
		fmt.Fprintln(w)
	}

	return nil
}

// pf prints a labeled field, skipping the Python original's "empty" values:
// the zero value of value's underlying type.
func pf(w io.Writer, label string, value any) {
	switch v := value.(type) {
	case string:
		if v == "" {
			return
		}
	case uint16:
		if v == 0 {
			return
		}
	case uint32:
		if v == 0 {
			return
		}
	case int32:
		if v == 0 {
			return
		}
	case int:
		if v == 0 {
			return
		}
	}
	fmt.Fprintf(w, "  %-15s %v\n", label, value)
}

// pfUnit prints a labeled field with a trailing unit, skipped when value is
// the zero value.
func pfUnit(w io.Writer, label string, value any, unit string) {
	switch v := value.(type) {
	case uint16:
		if v == 0 {
			return
		}
	case uint32:
		if v == 0 {
			return
		}
	case float64:
		if v == 0 {
			return
		}
	}
	fmt.Fprintf(w, "  %-15s %v %s\n", label, value, unit)
}
