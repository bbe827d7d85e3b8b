package assembly

import "context"

// MuxSpec describes one concatenation job: ordered input files (dialogue and
// silence interleaved by the pipeline), the output location and encode
// parameters.
type MuxSpec struct {
	Inputs     []string
	OutputPath string
	Normalize  bool
	Bitrate    string
}

// MuxResult reports the measured properties of the produced file.
type MuxResult struct {
	DurationSeconds float64
	Bitrate         string
}

// Muxer is the audio concatenation backend. The pipeline decides what to
// concatenate in what order with what gaps; the muxer only encodes.
type Muxer interface {
	CreateSilence(ctx context.Context, seconds float64, path string) error
	Mux(ctx context.Context, spec MuxSpec) (*MuxResult, error)
}
