package domain

import (
	"time"

	"github.com/samber/mo"
)

type Metric string

const (
	Messages   Metric = "messages"
	Words      Metric = "words"
	Characters Metric = "characters"
)

type Window string

const (
	Day   Window = "day"
	Week  Window = "week"
	Month Window = "month"
	Year  Window = "year"
)

type ExportFormat string

const HTML ExportFormat = "html"

type WordCloudRequest struct {
	GuildID string
	UserID  string
}

// RankRequest is shared by channel and user rankings. Window is only honoured
// for user rankings; absent means all-time.
type RankRequest struct {
	GuildID string
	Metric  Metric
	Window  mo.Option[Window]
	Count   int
}

type ExportRequest struct {
	ChannelID string
	Format    ExportFormat
	Limit     mo.Option[int]
}

type ProfileRequest struct {
	GuildID string
	UserID  string
}

type TopDatesRequest struct {
	GuildID string
	UserID  mo.Option[string]
}

type ArtifactKind string

const (
	Image    ArtifactKind = "image"
	Document ArtifactKind = "document"
)

// Artifact is a handle to a generated blob held by an artifact store.
type Artifact struct {
	ID          string
	Key         string
	Filename    string
	ContentType string
	Kind        ArtifactKind
	Size        int64
}

type Profile struct {
	Messages         int      `json:"messages"`
	Words            int      `json:"words"`
	Characters       int      `json:"characters"`
	AverageLength    float64  `json:"average_message_length"`
	TopWords         []string `json:"top_words"`
	TotalAttachments int      `json:"total_attachments"`
	TotalEmbeds      int      `json:"total_embeds"`
}

type DateCount struct {
	Date  time.Time `json:"date"`
	Count int       `json:"count"`
}

// Result is the success payload of a gateway call. At most one artifact.
type Result struct {
	Artifact *Artifact
	Profile  *Profile
	Dates    []DateCount
	Duration time.Duration
}

func (r *Result) HasArtifact() bool {
	return r != nil && r.Artifact != nil
}
