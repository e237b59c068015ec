package scope

import (
	"fmt"

	"github.com/scopesync/scopesync-go/pkg/scpi"
)

// Coupling selects how a channel input is coupled to the acquisition path.
type Coupling string

const (
	CouplingAC  Coupling = "AC"
	CouplingDC  Coupling = "DC"
	CouplingGND Coupling = "GND"
)

// TriggerType selects the trigger subsystem in use.
type TriggerType string

const (
	TriggerTypeEdge  TriggerType = "EDGE"
	TriggerTypeVideo TriggerType = "VID"
	TriggerTypePulse TriggerType = "PUL"
)

// TriggerMode selects how the scope behaves when no trigger occurs.
type TriggerMode string

const (
	TriggerModeAuto   TriggerMode = "AUTO"
	TriggerModeNormal TriggerMode = "NORMAL"
)

// TriggerState is the acquisition state reported by the trigger subsystem.
// It is read-only status, never written.
type TriggerState string

const (
	TriggerStateArmed   TriggerState = "ARMED"
	TriggerStateReady   TriggerState = "READY"
	TriggerStateTrigger TriggerState = "TRIGGER"
	TriggerStateAuto    TriggerState = "AUTO"
	TriggerStateSave    TriggerState = "SAVE"
	TriggerStateScan    TriggerState = "SCAN"
)

// EdgeCoupling selects the coupling of the edge trigger source.
type EdgeCoupling string

const (
	EdgeCouplingAC EdgeCoupling = "AC"
	EdgeCouplingDC EdgeCoupling = "DC"

	// EdgeCouplingHFReject attenuates signals above 80 kHz.
	EdgeCouplingHFReject EdgeCoupling = "HFREJ"

	// EdgeCouplingLFReject attenuates signals below 300 kHz.
	EdgeCouplingLFReject EdgeCoupling = "LFREJ"

	// EdgeCouplingNoiseReject adds hysteresis to the trigger comparator.
	EdgeCouplingNoiseReject EdgeCoupling = "NOISEREJ"
)

// EdgeSlope selects which signal edge arms the trigger.
type EdgeSlope string

const (
	EdgeSlopeFall EdgeSlope = "FALL"
	EdgeSlopeRise EdgeSlope = "RISE"
)

// EdgeSource selects the signal the edge trigger watches.
type EdgeSource string

const (
	EdgeSourceCH1 EdgeSource = "CH1"
	EdgeSourceCH2 EdgeSource = "CH2"
	EdgeSourceCH3 EdgeSource = "CH3"
	EdgeSourceCH4 EdgeSource = "CH4"

	// EdgeSourceExt is the external trigger input.
	EdgeSourceExt EdgeSource = "EXT"

	// EdgeSourceExt5 is the external trigger input attenuated by 5.
	EdgeSourceExt5 EdgeSource = "EXT5"

	// EdgeSourceExt10 is the external trigger input attenuated by 10.
	EdgeSourceExt10 EdgeSource = "EXT10"

	// EdgeSourceLine triggers on the AC power line frequency.
	EdgeSourceLine EdgeSource = "LINE"
)

// MeasurementSource selects the waveform a measurement operates on.
type MeasurementSource string

const (
	MeasurementSourceCH1  MeasurementSource = "CH1"
	MeasurementSourceCH2  MeasurementSource = "CH2"
	MeasurementSourceCH3  MeasurementSource = "CH3"
	MeasurementSourceCH4  MeasurementSource = "CH4"
	MeasurementSourceMath MeasurementSource = "MATH"
)

// MeasurementType selects the automatic measurement a slot computes.
type MeasurementType string

const (
	MeasurementTypeNone MeasurementType = "NONE"

	// MeasurementTypeCycleRMS is the RMS over the first full cycle.
	MeasurementTypeCycleRMS MeasurementType = "CRMS"

	// MeasurementTypeFall is the 90% to 10% time of the first falling edge.
	MeasurementTypeFall MeasurementType = "FALL"

	// MeasurementTypeRise is the 10% to 90% time of the first rising edge.
	MeasurementTypeRise MeasurementType = "RISE"

	MeasurementTypeMax MeasurementType = "MAXI"
	MeasurementTypeMin MeasurementType = "MINI"

	// MeasurementTypeMaximum and MeasurementTypeMinimum are the long
	// forms reported by some firmware revisions.
	MeasurementTypeMaximum MeasurementType = "MAXIMUM"
	MeasurementTypeMinimum MeasurementType = "MINIMUM"

	MeasurementTypePeriod    MeasurementType = "PERIOD"
	MeasurementTypeFrequency MeasurementType = "FREQUENCY"
	MeasurementTypeMean      MeasurementType = "MEAN"

	// MeasurementTypeNegativeWidth is the width of the first negative pulse.
	MeasurementTypeNegativeWidth MeasurementType = "NWIDTH"

	// MeasurementTypePositiveWidth is the width of the first positive pulse.
	MeasurementTypePositiveWidth MeasurementType = "PWIDTH"

	MeasurementTypePeakToPeak MeasurementType = "PK2PK"
)

// MeasurementUnit is the unit the instrument reports for a measurement
// value. Read-only status, never written.
type MeasurementUnit string

const (
	MeasurementUnitVolts   MeasurementUnit = "V"
	MeasurementUnitSeconds MeasurementUnit = "s"
	MeasurementUnitHertz   MeasurementUnit = "Hz"
)

// Wire codecs for the closed sets above. Shared by the field tables and
// the side queries.
var (
	couplingCodec = scpi.Enum(CouplingAC, CouplingDC, CouplingGND)

	triggerTypeCodec  = scpi.Enum(TriggerTypeEdge, TriggerTypeVideo, TriggerTypePulse)
	triggerModeCodec  = scpi.Enum(TriggerModeAuto, TriggerModeNormal)
	triggerStateCodec = scpi.Enum(
		TriggerStateArmed, TriggerStateReady, TriggerStateTrigger,
		TriggerStateAuto, TriggerStateSave, TriggerStateScan,
	)

	edgeCouplingCodec = scpi.Enum(
		EdgeCouplingAC, EdgeCouplingDC, EdgeCouplingHFReject,
		EdgeCouplingLFReject, EdgeCouplingNoiseReject,
	)
	edgeSlopeCodec  = scpi.Enum(EdgeSlopeFall, EdgeSlopeRise)
	edgeSourceCodec = scpi.Enum(
		EdgeSourceCH1, EdgeSourceCH2, EdgeSourceCH3, EdgeSourceCH4,
		EdgeSourceExt, EdgeSourceExt5, EdgeSourceExt10, EdgeSourceLine,
	)

	measurementSourceCodec = scpi.Enum(
		MeasurementSourceCH1, MeasurementSourceCH2, MeasurementSourceCH3,
		MeasurementSourceCH4, MeasurementSourceMath,
	)
	measurementTypeCodec = scpi.Enum(
		MeasurementTypeNone, MeasurementTypeCycleRMS,
		MeasurementTypeFall, MeasurementTypeRise,
		MeasurementTypeMax, MeasurementTypeMin,
		MeasurementTypeMaximum, MeasurementTypeMinimum,
		MeasurementTypePeriod, MeasurementTypeFrequency, MeasurementTypeMean,
		MeasurementTypeNegativeWidth, MeasurementTypePositiveWidth,
		MeasurementTypePeakToPeak,
	)
	measurementUnitCodec = scpi.Enum(
		MeasurementUnitVolts, MeasurementUnitSeconds, MeasurementUnitHertz,
	)
)

// MeasurementSourceForChannel maps a channel index (0 to 3) to the
// measurement source that observes it.
func MeasurementSourceForChannel(i int) (MeasurementSource, error) {
	switch i {
	case 0:
		return MeasurementSourceCH1, nil
	case 1:
		return MeasurementSourceCH2, nil
	case 2:
		return MeasurementSourceCH3, nil
	case 3:
		return MeasurementSourceCH4, nil
	default:
		return "", fmt.Errorf("no measurement source for channel index %d", i)
	}
}
