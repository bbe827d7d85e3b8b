package httptransport

import (
	stderrors "errors"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"podcastforge-server-go/internal/domain/podcast"
	"podcastforge-server-go/internal/domain/script"
	"podcastforge-server-go/internal/domain/scriptgen"
	"podcastforge-server-go/internal/domain/synth"
	"podcastforge-server-go/internal/domain/voice"
	"podcastforge-server-go/internal/platform/config"
	"podcastforge-server-go/internal/platform/storage"
)

// Handler serves the podcast API.
type Handler struct {
	service   *podcast.Service
	runs      *storage.RunRepository
	cfg       *config.Config
	startedAt time.Time
}

func NewHandler(service *podcast.Service, runs *storage.RunRepository, cfg *config.Config) *Handler {
	return &Handler{
		service:   service,
		runs:      runs,
		cfg:       cfg,
		startedAt: time.Now(),
	}
}

// Register mounts all routes. Health and status live at the root; everything
// else under /api.
func (h *Handler) Register(engine *gin.Engine, api *gin.RouterGroup) {
	engine.GET("/health", h.health)
	engine.GET("/status", h.systemStatus)

	api.GET("/formats", h.listFormats)
	api.GET("/voices", h.listVoices)
	api.GET("/emotions", h.listEmotions)
	api.GET("/runs", h.listRuns)
	api.GET("/runs/:id", h.getRun)
	api.POST("/podcast", h.createFromScript)
	api.POST("/podcast/generate", h.generateFromTopic)
	api.POST("/script/parse", h.parseScript)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": time.Since(h.startedAt).String(),
	})
}

// systemStatus reports process and host resource usage, useful when sizing
// synthesis concurrency.
func (h *Handler) systemStatus(c *gin.Context) {
	status := gin.H{
		"goroutines": runtime.NumGoroutine(),
		"uptime":     time.Since(h.startedAt).String(),
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		status["memory_used_percent"] = vm.UsedPercent
	}
	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		status["cpu_percent"] = percents[0]
	}
	c.JSON(http.StatusOK, status)
}

func (h *Handler) listFormats(c *gin.Context) {
	RespondSuccess(c, http.StatusOK, scriptgen.Formats(), "")
}

func (h *Handler) listVoices(c *gin.Context) {
	RespondSuccess(c, http.StatusOK, h.cfg.Voices, "")
}

func (h *Handler) listEmotions(c *gin.Context) {
	RespondSuccess(c, http.StatusOK, script.EmotionTags(), "")
}

func (h *Handler) listRuns(c *gin.Context) {
	if h.runs == nil {
		RespondError(c, http.StatusServiceUnavailable, "run storage disabled", nil)
		return
	}
	runs, err := h.runs.ListRecent(c.Request.Context(), 20)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	RespondSuccess(c, http.StatusOK, runs, "")
}

func (h *Handler) getRun(c *gin.Context) {
	if h.runs == nil {
		RespondError(c, http.StatusServiceUnavailable, "run storage disabled", nil)
		return
	}
	run, err := h.runs.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	if run == nil {
		RespondError(c, http.StatusNotFound, "run not found", nil)
		return
	}
	RespondSuccess(c, http.StatusOK, run, "")
}

type parseRequest struct {
	Script string `json:"script" binding:"required"`
}

func (h *Handler) parseScript(c *gin.Context) {
	var req parseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "script is required", nil)
		return
	}
	utterances, err := h.service.ParseScript(req.Script)
	if err != nil {
		RespondError(c, http.StatusUnprocessableEntity, err.Error(), nil)
		return
	}
	RespondSuccess(c, http.StatusOK, gin.H{
		"utterances": utterances,
		"speakers":   script.Speakers(utterances),
	}, "")
}

type createRequest struct {
	Script string            `json:"script" binding:"required"`
	Voices map[string]string `json:"voices,omitempty"`
}

func (h *Handler) createFromScript(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "script is required", nil)
		return
	}
	result, err := h.service.CreateFromScript(c.Request.Context(), req.Script, req.Voices)
	h.respondRun(c, result, err)
}

type generateRequest struct {
	Topic           string            `json:"topic" binding:"required"`
	Format          string            `json:"format,omitempty"`
	DurationMinutes int               `json:"duration_minutes,omitempty"`
	NumSpeakers     int               `json:"num_speakers,omitempty"`
	Context         string            `json:"context,omitempty"`
	Voices          map[string]string `json:"voices,omitempty"`
}

func (h *Handler) generateFromTopic(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "topic is required", nil)
		return
	}
	result, err := h.service.GenerateFromTopic(c.Request.Context(), scriptgen.Request{
		Topic:           req.Topic,
		Format:          req.Format,
		DurationMinutes: req.DurationMinutes,
		NumSpeakers:     req.NumSpeakers,
		Context:         req.Context,
	}, req.Voices)
	h.respondRun(c, result, err)
}

// respondRun maps pipeline failures to status codes. Synthesis failures carry
// the per-utterance failure list so clients can retry just those.
func (h *Handler) respondRun(c *gin.Context, result *podcast.Result, err error) {
	if err == nil {
		RespondSuccess(c, http.StatusOK, result, "")
		return
	}
	switch {
	case stderrors.Is(err, script.ErrEmptyScript):
		RespondError(c, http.StatusUnprocessableEntity, err.Error(), nil)
	case stderrors.Is(err, voice.ErrNoCandidateVoices):
		RespondError(c, http.StatusUnprocessableEntity, err.Error(), nil)
	case stderrors.Is(err, synth.ErrSynthesisFailed):
		var failures interface{}
		if result != nil {
			failures = result.Failures
		}
		RespondError(c, http.StatusBadGateway, err.Error(), failures)
	default:
		RespondError(c, http.StatusInternalServerError, err.Error(), nil)
	}
}
