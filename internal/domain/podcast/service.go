// Package podcast exposes the end-to-end generation surface consumed by the
// HTTP and MCP transports: parse a script, cast voices, render audio and
// assemble the final artifact.
package podcast

import (
	"context"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"podcastforge-server-go/internal/domain/assembly"
	"podcastforge-server-go/internal/domain/eventbus"
	"podcastforge-server-go/internal/domain/script"
	"podcastforge-server-go/internal/domain/scriptgen"
	"podcastforge-server-go/internal/domain/synth"
	"podcastforge-server-go/internal/domain/voice"
	"podcastforge-server-go/internal/platform/errors"
	"podcastforge-server-go/internal/platform/logging"
	"podcastforge-server-go/internal/platform/storage"
)

// errNoGenerator reports topic-based generation without a configured backend.
var errNoGenerator = errors.New(errors.KindScriptGen, "podcast.GenerateFromTopic", "no script generator configured")

// Result is the outcome of one run. Artifact is nil when the run failed;
// Failures then names the failed utterances by sequence index.
type Result struct {
	RunID      string             `json:"run_id"`
	Utterances []script.Utterance `json:"utterances"`
	Voices     voice.Map          `json:"voices"`
	Artifact   *assembly.Artifact `json:"artifact,omitempty"`
	Failures   []synth.Failure    `json:"failures,omitempty"`
}

// Service wires the pipeline stages. Parsing and assignment errors surface
// before any synthesis call; synthesis failures are aggregated per utterance;
// assembly never runs on a partial segment set.
type Service struct {
	parser       *script.Parser
	assigner     *voice.Assigner
	orchestrator *synth.Orchestrator
	pipeline     *assembly.Pipeline
	generator    scriptgen.Generator
	runs         *storage.RunRepository
	logger       *logging.Logger
}

// Options carries the service's collaborators. Generator and Runs are
// optional; without them topic-based generation and run persistence are
// disabled.
type Options struct {
	Parser       *script.Parser
	Assigner     *voice.Assigner
	Orchestrator *synth.Orchestrator
	Pipeline     *assembly.Pipeline
	Generator    scriptgen.Generator
	Runs         *storage.RunRepository
	Logger       *logging.Logger
}

func NewService(opts Options) *Service {
	return &Service{
		parser:       opts.Parser,
		assigner:     opts.Assigner,
		orchestrator: opts.Orchestrator,
		pipeline:     opts.Pipeline,
		generator:    opts.Generator,
		runs:         opts.Runs,
		logger:       opts.Logger,
	}
}

// ParseScript converts raw dialogue text into ordered utterances with
// self-introductions normalized.
func (s *Service) ParseScript(text string) ([]script.Utterance, error) {
	utterances, err := s.parser.Parse(text)
	if err != nil {
		return nil, err
	}
	return script.NormalizeIntroductions(utterances, s.logger), nil
}

// AssignVoices computes the immutable speaker to voice map.
func (s *Service) AssignVoices(speakers []string, explicit map[string]string) (voice.Map, error) {
	return s.assigner.Assign(speakers, explicit)
}

// SynthesizeAndAssemble renders all utterances and stitches the artifact.
// When any utterance fails after retries, the partial result carries the
// failure list and no artifact is produced.
func (s *Service) SynthesizeAndAssemble(ctx context.Context, runID string, utterances []script.Utterance, voices voice.Map) (*assembly.Artifact, []synth.Failure, error) {
	report, err := s.orchestrator.Orchestrate(ctx, utterances, voices)
	if err != nil {
		if report != nil {
			return nil, report.Failures, err
		}
		return nil, nil, err
	}
	eventbus.Publish(eventbus.TopicSynthesisDone, runID, len(report.Segments))

	artifact, err := s.pipeline.Assemble(ctx, runID, report.Segments, len(utterances))
	if err != nil {
		return nil, nil, err
	}
	return artifact, nil, nil
}

// CreateFromScript runs the full pipeline on already-written dialogue text.
func (s *Service) CreateFromScript(ctx context.Context, text string, explicit map[string]string) (*Result, error) {
	runID := uuid.NewString()
	eventbus.Publish(eventbus.TopicRunStarted, runID)
	s.logger.InfoTag(logging.TagBoot, "starting podcast run %s", runID)

	run := &storage.PodcastRun{ID: runID, Status: storage.RunStatusRunning}
	s.persistCreate(ctx, run)

	result, err := s.execute(ctx, runID, run, text, explicit)
	if err != nil {
		run.Status = storage.RunStatusFailed
		run.FailureDetail = err.Error()
		if result != nil {
			run.FailedIndexes = failedIndexes(result.Failures)
		}
		s.persistUpdate(ctx, run)
		eventbus.Publish(eventbus.TopicRunFailed, runID, err.Error())
		return result, err
	}

	run.Status = storage.RunStatusCompleted
	run.AudioPath = result.Artifact.AudioPath
	run.MetadataPath = result.Artifact.MetadataPath
	run.DurationSeconds = result.Artifact.DurationSeconds
	s.persistUpdate(ctx, run)
	eventbus.Publish(eventbus.TopicRunCompleted, runID, result.Artifact.AudioPath)
	return result, nil
}

// GenerateFromTopic writes the script first, then runs the pipeline on it.
func (s *Service) GenerateFromTopic(ctx context.Context, req scriptgen.Request, explicit map[string]string) (*Result, error) {
	if s.generator == nil {
		return nil, errNoGenerator
	}
	text, err := s.generator.Generate(ctx, req)
	if err != nil {
		return nil, err
	}
	eventbus.Publish(eventbus.TopicScriptGenerated, req.Topic, len(text))

	result, runErr := s.CreateFromScript(ctx, text, explicit)
	if result != nil && s.runs != nil {
		if run, err := s.runs.FindByID(ctx, result.RunID); err == nil && run != nil {
			run.Topic = req.Topic
			run.Format = req.Format
			s.persistUpdate(ctx, run)
		}
	}
	return result, runErr
}

func (s *Service) execute(ctx context.Context, runID string, run *storage.PodcastRun, text string, explicit map[string]string) (*Result, error) {
	utterances, err := s.ParseScript(text)
	if err != nil {
		return nil, err
	}
	speakers := script.Speakers(utterances)
	run.UtteranceCount = len(utterances)
	run.SpeakerCount = len(speakers)
	eventbus.Publish(eventbus.TopicScriptParsed, runID, len(utterances))

	voices, err := s.AssignVoices(speakers, explicit)
	if err != nil {
		return nil, err
	}
	eventbus.Publish(eventbus.TopicVoicesAssigned, runID, len(voices))

	result := &Result{RunID: runID, Utterances: utterances, Voices: voices}
	artifact, failures, err := s.SynthesizeAndAssemble(ctx, runID, utterances, voices)
	if err != nil {
		result.Failures = failures
		return result, err
	}
	result.Artifact = artifact
	return result, nil
}

// failedIndexes renders the failed sequence indexes as a comma-separated
// list for the run record.
func failedIndexes(failures []synth.Failure) string {
	if len(failures) == 0 {
		return ""
	}
	parts := make([]string, len(failures))
	for i, f := range failures {
		parts[i] = strconv.Itoa(f.SequenceIndex)
	}
	return strings.Join(parts, ",")
}

func (s *Service) persistCreate(ctx context.Context, run *storage.PodcastRun) {
	if s.runs == nil {
		return
	}
	if err := s.runs.Create(ctx, run); err != nil {
		s.logger.WarnTag(logging.TagStore, "persist run %s: %v", run.ID, err)
	}
}

func (s *Service) persistUpdate(ctx context.Context, run *storage.PodcastRun) {
	if s.runs == nil {
		return
	}
	if err := s.runs.Update(ctx, run); err != nil {
		s.logger.WarnTag(logging.TagStore, "update run %s: %v", run.ID, err)
	}
}
