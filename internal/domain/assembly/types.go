package assembly

import "podcastforge-server-go/internal/domain/script"

// MetadataEntry locates one utterance inside the final artifact.
type MetadataEntry struct {
	Speaker          string            `json:"speaker"`
	VoiceID          string            `json:"voice_id"`
	Emotion          script.EmotionTag `json:"emotion"`
	StartTimeSeconds float64           `json:"start_time_seconds"`
	DurationSeconds  float64           `json:"duration_seconds"`
}

// Artifact is the final podcast: one normalized audio file plus its metadata
// sidecar. Immutable once produced.
type Artifact struct {
	ID              string          `json:"id"`
	AudioPath       string          `json:"audio_path"`
	MetadataPath    string          `json:"metadata_path"`
	DurationSeconds float64         `json:"duration_seconds"`
	Bitrate         string          `json:"bitrate"`
	Entries         []MetadataEntry `json:"entries"`
}
