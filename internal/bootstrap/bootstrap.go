// Package bootstrap wires configuration, logging, storage and the pipeline
// stages into running transports, and owns graceful shutdown.
package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"podcastforge-server-go/internal/domain/assembly"
	"podcastforge-server-go/internal/domain/podcast"
	"podcastforge-server-go/internal/domain/script"
	"podcastforge-server-go/internal/domain/scriptgen"
	"podcastforge-server-go/internal/domain/synth"
	synthcache "podcastforge-server-go/internal/domain/synth/cache"
	"podcastforge-server-go/internal/domain/voice"
	platformconfig "podcastforge-server-go/internal/platform/config"
	platformerrors "podcastforge-server-go/internal/platform/errors"
	platformlogging "podcastforge-server-go/internal/platform/logging"
	platformstorage "podcastforge-server-go/internal/platform/storage"
	httptransport "podcastforge-server-go/internal/transport/http"
	"podcastforge-server-go/internal/transport/mcpsrv"
)

type stepFn func(context.Context, *appState) error

type initStep struct {
	ID        string
	DependsOn []string
	Execute   stepFn
}

type appState struct {
	configPath string

	config  *platformconfig.Config
	logger  *platformlogging.Logger
	runs    *platformstorage.RunRepository
	cache   synthcache.Cache
	service *podcast.Service
}

// Run loads configuration, builds the pipeline, starts the transports and
// blocks until a shutdown signal arrives.
func Run(ctx context.Context, configPath string) error {
	state := &appState{configPath: configPath}

	steps := initGraph()
	if err := executeInitSteps(ctx, steps, state); err != nil {
		return err
	}
	logger := state.logger
	defer logger.Close()

	if state.cache != nil {
		defer state.cache.Close(context.Background())
	}

	rootCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	signalCtx, stop := signal.NotifyContext(rootCtx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(rootCtx)
	if err := startServices(state, group, groupCtx); err != nil {
		cancel()
		return err
	}

	<-signalCtx.Done()
	logger.InfoTag(platformlogging.TagBoot, "shutdown signal received")
	cancel()

	if err := group.Wait(); err != nil && err != context.Canceled && err != http.ErrServerClosed {
		return platformerrors.Wrap(platformerrors.KindBootstrap, "bootstrap.Run", "service group", err)
	}
	logger.InfoTag(platformlogging.TagBoot, "shutdown complete")
	return nil
}

func initGraph() []initStep {
	return []initStep{
		{ID: "config:load", Execute: stepLoadConfig},
		{ID: "logging:init", DependsOn: []string{"config:load"}, Execute: stepInitLogging},
		{ID: "storage:init", DependsOn: []string{"logging:init"}, Execute: stepInitStorage},
		{ID: "cache:init", DependsOn: []string{"logging:init"}, Execute: stepInitCache},
		{ID: "pipeline:init", DependsOn: []string{"storage:init", "cache:init"}, Execute: stepInitPipeline},
	}
}

func executeInitSteps(ctx context.Context, steps []initStep, state *appState) error {
	completed := make(map[string]struct{}, len(steps))
	for _, step := range steps {
		for _, dep := range step.DependsOn {
			if _, ok := completed[dep]; !ok {
				return platformerrors.New(platformerrors.KindBootstrap, step.ID,
					fmt.Sprintf("dependency %s not satisfied", dep))
			}
		}
		if err := step.Execute(ctx, state); err != nil {
			return platformerrors.Wrap(platformerrors.KindBootstrap, step.ID, "init step failed", err)
		}
		completed[step.ID] = struct{}{}
	}
	return nil
}

func stepLoadConfig(_ context.Context, state *appState) error {
	result, err := platformconfig.NewLoader().WithPath(state.configPath).Load()
	if err != nil {
		return err
	}
	state.config = result.Config
	return nil
}

func stepInitLogging(_ context.Context, state *appState) error {
	logger, err := platformlogging.New(platformlogging.Config{
		Level:    state.config.Log.Level,
		Dir:      state.config.Log.Dir,
		Filename: state.config.Log.File,
	})
	if err != nil {
		return err
	}
	state.logger = logger
	logger.InfoTag(platformlogging.TagBoot, "configuration loaded, log level %s", state.config.Log.Level)
	return nil
}

func stepInitStorage(_ context.Context, state *appState) error {
	if !state.config.Storage.Enabled {
		state.logger.InfoTag(platformlogging.TagStore, "run storage disabled")
		return nil
	}
	db, err := platformstorage.Open(state.config.Storage.DSN)
	if err != nil {
		return err
	}
	state.runs = platformstorage.NewRunRepository(db)
	state.logger.InfoTag(platformlogging.TagStore, "run storage ready at %s", state.config.Storage.DSN)
	return nil
}

func stepInitCache(_ context.Context, state *appState) error {
	segCache, err := synthcache.New(state.config.Cache)
	if err != nil {
		return err
	}
	state.cache = segCache
	return nil
}

func stepInitPipeline(_ context.Context, state *appState) error {
	cfg := state.config
	logger := state.logger

	ttsConfig := cfg.TTS[cfg.Selected.TTS]
	provider, err := synth.NewProvider(ttsConfig, logger)
	if err != nil {
		return err
	}
	logger.InfoTag(platformlogging.TagBoot, "synthesis provider %s selected", provider.ProviderType())

	var generator scriptgen.Generator
	if cfg.ScriptGen.APIKey != "" {
		gen, err := scriptgen.NewOpenAIGenerator(cfg.ScriptGen, logger)
		if err != nil {
			return err
		}
		generator = gen
	} else {
		logger.WarnTag(platformlogging.TagLLM, "no script generation key configured, topic-based generation disabled")
	}

	state.service = podcast.NewService(podcast.Options{
		Parser:       script.NewParser(logger),
		Assigner:     voice.NewAssigner(cfg.Voices, cfg.Synthesis.Seed, logger),
		Orchestrator: synth.NewOrchestrator(provider, state.cache, cfg.Synthesis, logger),
		Pipeline:     assembly.NewPipeline(assembly.NewFFmpegMuxer(cfg.Assembly.FFmpegPath, logger), cfg.Assembly, logger),
		Generator:    generator,
		Runs:         state.runs,
		Logger:       logger,
	})
	return nil
}

func startServices(state *appState, group *errgroup.Group, ctx context.Context) error {
	cfg := state.config
	logger := state.logger

	if cfg.Web.Enabled {
		router := httptransport.Build(httptransport.Options{
			Config:  cfg,
			Logger:  logger,
			Handler: httptransport.NewHandler(state.service, state.runs, cfg),
		})
		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Web.Port),
			Handler: router.Engine,
		}
		group.Go(func() error {
			logger.InfoTag(platformlogging.TagHTTP, "http server listening on :%d", cfg.Web.Port)
			return srv.ListenAndServe()
		})
		group.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	if cfg.MCP.Enabled {
		mcpServer := mcpsrv.New(state.service, logger)
		group.Go(func() error {
			return mcpServer.Serve()
		})
	}

	if !cfg.Web.Enabled && !cfg.MCP.Enabled {
		return platformerrors.New(platformerrors.KindBootstrap, "bootstrap.startServices",
			"no transport enabled, set web.enabled or mcp.enabled")
	}
	return nil
}
