package assembly

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/hajimehoshi/go-mp3"

	"podcastforge-server-go/internal/platform/errors"
	"podcastforge-server-go/internal/platform/logging"
)

// FFmpegMuxer shells out to ffmpeg for silence generation, concatenation and
// loudness normalization.
type FFmpegMuxer struct {
	binary string
	logger *logging.Logger
}

func NewFFmpegMuxer(binary string, logger *logging.Logger) *FFmpegMuxer {
	if binary == "" {
		binary = "ffmpeg"
	}
	return &FFmpegMuxer{binary: binary, logger: logger}
}

// CreateSilence renders a silent MP3 of the given length using the anullsrc
// source filter.
func (m *FFmpegMuxer) CreateSilence(ctx context.Context, seconds float64, path string) error {
	args := []string{
		"-y",
		"-f", "lavfi",
		"-i", "anullsrc=r=44100:cl=mono",
		"-t", fmt.Sprintf("%.3f", seconds),
		"-q:a", "9",
		path,
	}
	if err := m.run(ctx, args); err != nil {
		return errors.Wrap(errors.KindAssembly, "ffmpeg.CreateSilence", "generate silence", err)
	}
	return nil
}

// Mux concatenates the inputs via ffmpeg's concat demuxer, optionally applying
// single-pass loudnorm, and measures the result.
func (m *FFmpegMuxer) Mux(ctx context.Context, spec MuxSpec) (*MuxResult, error) {
	if len(spec.Inputs) == 0 {
		return nil, errors.New(errors.KindAssembly, "ffmpeg.Mux", "no input files")
	}

	listFile, err := writeConcatList(spec.Inputs)
	if err != nil {
		return nil, errors.Wrap(errors.KindAssembly, "ffmpeg.Mux", "write concat list", err)
	}
	defer os.Remove(listFile)

	args := []string{
		"-y",
		"-f", "concat",
		"-safe", "0",
		"-i", listFile,
	}
	if spec.Normalize {
		args = append(args, "-af", "loudnorm=I=-16:TP=-1.5:LRA=11")
	}
	bitrate := spec.Bitrate
	if bitrate == "" {
		bitrate = "128k"
	}
	args = append(args, "-b:a", bitrate, spec.OutputPath)

	if err := m.run(ctx, args); err != nil {
		return nil, errors.Wrap(errors.KindAssembly, "ffmpeg.Mux", "concatenate segments", err)
	}

	duration, err := measureFileDuration(spec.OutputPath)
	if err != nil {
		m.logger.WarnTag(logging.TagMux, "could not measure output duration: %v", err)
	}
	return &MuxResult{DurationSeconds: duration, Bitrate: bitrate}, nil
}

func (m *FFmpegMuxer) run(ctx context.Context, args []string) error {
	cmd := exec.CommandContext(ctx, m.binary, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	m.logger.DebugTag(logging.TagMux, "running %s %s", m.binary, strings.Join(args, " "))
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: %s", err, tail(stderr.String(), 300))
	}
	return nil
}

// writeConcatList produces the concat-demuxer input file. Paths are quoted so
// spaces in output directories survive.
func writeConcatList(inputs []string) (string, error) {
	f, err := os.CreateTemp("", "concat-*.txt")
	if err != nil {
		return "", err
	}
	defer f.Close()

	for _, input := range inputs {
		escaped := strings.ReplaceAll(input, "'", `'\''`)
		if _, err := fmt.Fprintf(f, "file '%s'\n", escaped); err != nil {
			os.Remove(f.Name())
			return "", err
		}
	}
	return f.Name(), nil
}

func measureFileDuration(path string) (float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	decoder, err := mp3.NewDecoder(f)
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(io.Discard, decoder)
	if err != nil {
		return 0, err
	}
	bytesPerSecond := float64(decoder.SampleRate() * 4)
	if bytesPerSecond == 0 {
		return 0, nil
	}
	return float64(n) / bytesPerSecond, nil
}

func tail(s string, max int) string {
	s = strings.TrimSpace(s)
	if len(s) <= max {
		return s
	}
	return "..." + s[len(s)-max:]
}
