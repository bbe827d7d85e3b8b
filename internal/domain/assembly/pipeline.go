package assembly

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"

	"podcastforge-server-go/internal/domain/synth"
	"podcastforge-server-go/internal/platform/config"
	"podcastforge-server-go/internal/platform/errors"
	"podcastforge-server-go/internal/platform/logging"
)

// ErrAssemblyFailed covers missing or corrupt segments and muxing failures.
// A partial podcast is never produced.
var ErrAssemblyFailed = errors.New(errors.KindAssembly, "assembly.Assemble", "assembly failed, no artifact produced")

// Pipeline turns a complete ordered segment set into one normalized audio
// file with silence gaps between speaker turns, plus a JSON metadata sidecar.
// The output directory is passed in explicitly; the pipeline owns it during
// assembly.
type Pipeline struct {
	muxer  Muxer
	cfg    config.AssemblyConfig
	logger *logging.Logger
}

func NewPipeline(muxer Muxer, cfg config.AssemblyConfig, logger *logging.Logger) *Pipeline {
	return &Pipeline{muxer: muxer, cfg: cfg, logger: logger}
}

// Assemble writes segment audio to a working directory, interleaves silence,
// concatenates and normalizes, then emits the artifact and sidecar.
//
// expectedCount is the utterance count from parsing; a segment set smaller
// than that, or with gaps in utterance refs, aborts before any file is
// written.
func (p *Pipeline) Assemble(ctx context.Context, runID string, segments []synth.Segment, expectedCount int) (*Artifact, error) {
	if err := verifyComplete(segments, expectedCount); err != nil {
		return nil, err
	}

	runDir := filepath.Join(p.cfg.OutputDir, runID)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return nil, errors.Wrap(errors.KindAssembly, "assembly.Assemble", "create output directory", err)
	}
	workDir, err := os.MkdirTemp("", "assembly-"+runID+"-*")
	if err != nil {
		return nil, errors.Wrap(errors.KindAssembly, "assembly.Assemble", "create work directory", err)
	}
	defer os.RemoveAll(workDir)

	inputs, err := p.layoutInputs(ctx, workDir, segments)
	if err != nil {
		return nil, err
	}

	audioPath := filepath.Join(runDir, "podcast.mp3")
	result, err := p.muxer.Mux(ctx, MuxSpec{
		Inputs:     inputs,
		OutputPath: audioPath,
		Normalize:  p.cfg.Normalize,
		Bitrate:    p.cfg.Bitrate,
	})
	if err != nil {
		p.logger.ErrorTag(logging.TagMux, "muxing failed for run %s: %v", runID, err)
		return nil, ErrAssemblyFailed
	}

	artifact := &Artifact{
		ID:              runID,
		AudioPath:       audioPath,
		DurationSeconds: result.DurationSeconds,
		Bitrate:         result.Bitrate,
		Entries:         buildEntries(segments, p.cfg.SilenceGapSeconds),
	}
	metadataPath, err := p.writeMetadata(runDir, artifact)
	if err != nil {
		return nil, err
	}
	artifact.MetadataPath = metadataPath

	p.logger.InfoTag(logging.TagMux, "assembled %d segments into %s (%.1fs)",
		len(segments), audioPath, artifact.DurationSeconds)
	return artifact, nil
}

// verifyComplete refuses partial or out-of-order segment sets.
func verifyComplete(segments []synth.Segment, expectedCount int) error {
	if len(segments) != expectedCount {
		return ErrAssemblyFailed
	}
	for i, seg := range segments {
		if seg.UtteranceRef != i {
			return ErrAssemblyFailed
		}
		if len(seg.Audio) == 0 {
			return ErrAssemblyFailed
		}
	}
	return nil
}

// layoutInputs writes each segment's audio to disk and interleaves a shared
// silence file between adjacent segments.
func (p *Pipeline) layoutInputs(ctx context.Context, workDir string, segments []synth.Segment) ([]string, error) {
	silencePath := ""
	if p.cfg.SilenceGapSeconds > 0 {
		silencePath = filepath.Join(workDir, "silence.mp3")
		if err := p.muxer.CreateSilence(ctx, p.cfg.SilenceGapSeconds, silencePath); err != nil {
			return nil, ErrAssemblyFailed
		}
	}

	inputs := make([]string, 0, len(segments)*2)
	for i, seg := range segments {
		segPath := filepath.Join(workDir, fmt.Sprintf("segment_%03d.mp3", seg.UtteranceRef))
		if err := os.WriteFile(segPath, seg.Audio, 0o644); err != nil {
			return nil, errors.Wrap(errors.KindAssembly, "assembly.layoutInputs", "write segment file", err)
		}
		if i > 0 && silencePath != "" {
			inputs = append(inputs, silencePath)
		}
		inputs = append(inputs, segPath)
	}
	return inputs, nil
}

// buildEntries computes start offsets from per-segment durations plus the
// inserted gaps.
func buildEntries(segments []synth.Segment, gapSeconds float64) []MetadataEntry {
	entries := make([]MetadataEntry, 0, len(segments))
	offset := 0.0
	for i, seg := range segments {
		if i > 0 {
			offset += gapSeconds
		}
		entries = append(entries, MetadataEntry{
			Speaker:          seg.Speaker,
			VoiceID:          seg.VoiceID,
			Emotion:          seg.Emotion,
			StartTimeSeconds: offset,
			DurationSeconds:  seg.DurationSeconds,
		})
		offset += seg.DurationSeconds
	}
	return entries
}

func (p *Pipeline) writeMetadata(runDir string, artifact *Artifact) (string, error) {
	data, err := sonic.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return "", errors.Wrap(errors.KindAssembly, "assembly.writeMetadata", "marshal metadata", err)
	}
	path := filepath.Join(runDir, "metadata.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", errors.Wrap(errors.KindAssembly, "assembly.writeMetadata", "write metadata file", err)
	}
	return path, nil
}
