package assembly

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bytedance/sonic"

	"podcastforge-server-go/internal/domain/script"
	"podcastforge-server-go/internal/domain/synth"
	"podcastforge-server-go/internal/platform/config"
)

// fakeMuxer records the mux inputs it was given and writes a stub output file.
type fakeMuxer struct {
	lastSpec     *MuxSpec
	silenceCalls int
	failMux      bool
}

func (f *fakeMuxer) CreateSilence(_ context.Context, _ float64, path string) error {
	f.silenceCalls++
	return os.WriteFile(path, []byte("silence"), 0o644)
}

func (f *fakeMuxer) Mux(_ context.Context, spec MuxSpec) (*MuxResult, error) {
	if f.failMux {
		return nil, errors.New("encoder exploded")
	}
	f.lastSpec = &spec
	if err := os.WriteFile(spec.OutputPath, []byte("final"), 0o644); err != nil {
		return nil, err
	}
	return &MuxResult{DurationSeconds: 12.5, Bitrate: spec.Bitrate}, nil
}

func testSegments(n int) []synth.Segment {
	out := make([]synth.Segment, n)
	speakers := []string{"Host", "Guest"}
	for i := range out {
		out[i] = synth.Segment{
			UtteranceRef:    i,
			Speaker:         speakers[i%2],
			VoiceID:         "nova",
			Emotion:         script.EmotionNone,
			Audio:           []byte("mp3"),
			DurationSeconds: 2.0,
		}
	}
	return out
}

func testAssemblyConfig(t *testing.T) config.AssemblyConfig {
	return config.AssemblyConfig{
		OutputDir:         t.TempDir(),
		SilenceGapSeconds: 0.5,
		Normalize:         true,
		Bitrate:           "128k",
	}
}

func TestAssemble_InterleavesSilence(t *testing.T) {
	muxer := &fakeMuxer{}
	p := NewPipeline(muxer, testAssemblyConfig(t), nil)

	artifact, err := p.Assemble(context.Background(), "run-1", testSegments(3), 3)
	if err != nil {
		t.Fatalf("assemble error: %v", err)
	}

	// 3 segments + 2 gaps
	if len(muxer.lastSpec.Inputs) != 5 {
		t.Errorf("expected 5 mux inputs, got %d: %v", len(muxer.lastSpec.Inputs), muxer.lastSpec.Inputs)
	}
	if muxer.silenceCalls != 1 {
		t.Errorf("silence file should be generated once, got %d calls", muxer.silenceCalls)
	}
	if !muxer.lastSpec.Normalize {
		t.Error("normalization flag not forwarded")
	}
	if artifact.DurationSeconds != 12.5 {
		t.Errorf("duration = %f", artifact.DurationSeconds)
	}
}

func TestAssemble_MetadataSidecar(t *testing.T) {
	p := NewPipeline(&fakeMuxer{}, testAssemblyConfig(t), nil)

	artifact, err := p.Assemble(context.Background(), "run-2", testSegments(3), 3)
	if err != nil {
		t.Fatalf("assemble error: %v", err)
	}

	data, err := os.ReadFile(artifact.MetadataPath)
	if err != nil {
		t.Fatalf("read metadata: %v", err)
	}
	var decoded Artifact
	if err := sonic.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal metadata: %v", err)
	}
	if len(decoded.Entries) != 3 {
		t.Fatalf("expected 3 metadata entries, got %d", len(decoded.Entries))
	}

	// starts: 0.0, then 2.0+0.5, then 2.5+2.0+0.5
	wantStarts := []float64{0.0, 2.5, 5.0}
	for i, entry := range decoded.Entries {
		if entry.StartTimeSeconds != wantStarts[i] {
			t.Errorf("entry %d start = %f, want %f", i, entry.StartTimeSeconds, wantStarts[i])
		}
	}
	if decoded.Entries[1].Speaker != "Guest" {
		t.Errorf("entry 1 speaker = %s", decoded.Entries[1].Speaker)
	}
}

func TestAssemble_RejectsPartialSet(t *testing.T) {
	p := NewPipeline(&fakeMuxer{}, testAssemblyConfig(t), nil)

	cases := map[string][]synth.Segment{
		"missing segment": testSegments(2),
		"gap in refs": {
			{UtteranceRef: 0, Audio: []byte("a")},
			{UtteranceRef: 2, Audio: []byte("b")},
			{UtteranceRef: 3, Audio: []byte("c")},
		},
		"empty audio": {
			{UtteranceRef: 0, Audio: []byte("a")},
			{UtteranceRef: 1, Audio: nil},
			{UtteranceRef: 2, Audio: []byte("c")},
		},
	}
	for name, segments := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := p.Assemble(context.Background(), "run-x", segments, 3)
			if !errors.Is(err, ErrAssemblyFailed) {
				t.Errorf("expected ErrAssemblyFailed, got %v", err)
			}
		})
	}
}

func TestAssemble_MuxFailureProducesNoArtifact(t *testing.T) {
	cfg := testAssemblyConfig(t)
	p := NewPipeline(&fakeMuxer{failMux: true}, cfg, nil)

	_, err := p.Assemble(context.Background(), "run-3", testSegments(2), 2)
	if !errors.Is(err, ErrAssemblyFailed) {
		t.Fatalf("expected ErrAssemblyFailed, got %v", err)
	}
	if _, statErr := os.Stat(filepath.Join(cfg.OutputDir, "run-3", "metadata.json")); statErr == nil {
		t.Error("metadata sidecar must not exist after a failed mux")
	}
}

func TestAssemble_NoGapWhenConfiguredZero(t *testing.T) {
	cfg := testAssemblyConfig(t)
	cfg.SilenceGapSeconds = 0
	muxer := &fakeMuxer{}
	p := NewPipeline(muxer, cfg, nil)

	if _, err := p.Assemble(context.Background(), "run-4", testSegments(3), 3); err != nil {
		t.Fatalf("assemble error: %v", err)
	}
	if len(muxer.lastSpec.Inputs) != 3 {
		t.Errorf("expected 3 inputs without gaps, got %d", len(muxer.lastSpec.Inputs))
	}
	if muxer.silenceCalls != 0 {
		t.Errorf("no silence file should be generated, got %d calls", muxer.silenceCalls)
	}
}
