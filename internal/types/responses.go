package types

// ------------------------------
// Response payloads
// ------------------------------

// SoundVolume reports measured loudness of the played file.
type SoundVolume struct {
	MaxVolume  float64 `json:"maxVolume"`
	MeanVolume float64 `json:"meanVolume"`
}

// PlayResult is returned by a successful play request.
type PlayResult struct {
	SoundVolume      *SoundVolume `json:"soundVolume,omitempty"`
	VolumeAdjustment float64      `json:"volumeAdjustment"`
}

// MixingResult points at the file produced by a recording mix.
type MixingResult struct {
	DownloadURL string `json:"downloadUrl"`
}
