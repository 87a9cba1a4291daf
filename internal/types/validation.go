package types

import "fmt"

// Target volume bounds in dB, exclusive on both ends.
const (
	MinTargetVolume = -30.0
	MaxTargetVolume = 30.0
)

// ValidateTargetVolume rejects target volumes outside the open interval
// (-30, 30) dB before any network round trip.
func ValidateTargetVolume(v float64) error {
	if v <= MinTargetVolume || v >= MaxTargetVolume {
		return fmt.Errorf("target volume %v dB out of range (%v, %v)", v, MinTargetVolume, MaxTargetVolume)
	}
	return nil
}

// ValidateRecordingMix checks the trim window against the recording length
// and requires at least one selected user.
func ValidateRecordingMix(mix RecordingMix, length float64) error {
	if mix.Start < 0 || mix.End > length || mix.Start >= mix.End {
		return fmt.Errorf("invalid trim window [%v, %v] for recording of length %v", mix.Start, mix.End, length)
	}
	if len(mix.UserIDs) == 0 {
		return fmt.Errorf("recording mix needs at least one user")
	}
	return nil
}
