package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"srgbot/internal/core/domain"
	"srgbot/internal/core/port"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// HTTP is a client for the analytics service. It is shared by all
// invocations and never mutated after construction.
type HTTP struct {
	baseURL string
	apiKey  string
	client  *http.Client
	store   port.ArtifactStore
}

func NewHTTP(baseURL, apiKey string, timeout time.Duration, store port.ArtifactStore) *HTTP {
	return &HTTP{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
		store:   store,
	}
}

var errEmptyArtifact = errors.New("empty artifact")

const (
	imageFilename    = "image.png"
	documentFilename = "export.html"
)

type wordCloudRequest struct {
	GuildID string `json:"guild_id"`
	UserID  string `json:"user_id"`
}

type rankRequest struct {
	GuildID string `json:"guild_id"`
	Metric  string `json:"metric"`
	Window  string `json:"window,omitempty"`
	Count   int    `json:"count"`
}

type exportRequest struct {
	ChannelID string `json:"channel_id"`
	Format    string `json:"format"`
	Limit     *int   `json:"limit,omitempty"`
}

type profileRequest struct {
	GuildID string `json:"guild_id"`
	UserID  string `json:"user_id"`
}

type topDatesRequest struct {
	GuildID string `json:"guild_id"`
	UserID  string `json:"user_id,omitempty"`
}

type topDatesResponse struct {
	Dates []domain.DateCount `json:"dates"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Connect checks that the analytics service is reachable.
func (h *HTTP) Connect(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("error creating health request: %w", err)
	}

	_, err = h.do(req)
	if err != nil {
		return fmt.Errorf("analytics health check failed: %w", err)
	}

	log.Info().Str("url", h.baseURL).Msg("connected to analytics backend")

	return nil
}

func (h *HTTP) WordCloud(ctx context.Context, req domain.WordCloudRequest) (*domain.Result, error) {
	return h.artifact(ctx, "/wordcloud", wordCloudRequest{GuildID: req.GuildID, UserID: req.UserID},
		imageFilename, "image/png", domain.Image)
}

func (h *HTTP) RankChannels(ctx context.Context, req domain.RankRequest) (*domain.Result, error) {
	return h.artifact(ctx, "/top/channels", rankRequest{
		GuildID: req.GuildID,
		Metric:  string(req.Metric),
		Count:   req.Count,
	}, imageFilename, "image/png", domain.Image)
}

func (h *HTTP) RankUsers(ctx context.Context, req domain.RankRequest) (*domain.Result, error) {
	return h.artifact(ctx, "/top/users", rankRequest{
		GuildID: req.GuildID,
		Metric:  string(req.Metric),
		Window:  string(req.Window.OrEmpty()),
		Count:   req.Count,
	}, imageFilename, "image/png", domain.Image)
}

func (h *HTTP) ExportChannel(ctx context.Context, req domain.ExportRequest) (*domain.Result, error) {
	body := exportRequest{ChannelID: req.ChannelID, Format: string(req.Format)}
	if limit, ok := req.Limit.Get(); ok {
		body.Limit = &limit
	}

	return h.artifact(ctx, "/export", body, documentFilename, "text/html", domain.Document)
}

func (h *HTTP) Profile(ctx context.Context, req domain.ProfileRequest) (*domain.Result, error) {
	start := time.Now()

	var profile domain.Profile
	err := h.postJSON(ctx, "/profile", profileRequest{GuildID: req.GuildID, UserID: req.UserID}, &profile)
	if err != nil {
		return nil, err
	}

	return &domain.Result{Profile: &profile, Duration: time.Since(start)}, nil
}

func (h *HTTP) TopDates(ctx context.Context, req domain.TopDatesRequest) (*domain.Result, error) {
	start := time.Now()

	var res topDatesResponse
	err := h.postJSON(ctx, "/topdates", topDatesRequest{GuildID: req.GuildID, UserID: req.UserID.OrEmpty()}, &res)
	if err != nil {
		return nil, err
	}

	return &domain.Result{Dates: res.Dates, Duration: time.Since(start)}, nil
}

// artifact posts payload and stores the returned bytes as a transient artifact.
func (h *HTTP) artifact(ctx context.Context, path string, payload any, filename, contentType string,
	kind domain.ArtifactKind) (*domain.Result, error) {
	start := time.Now()

	body, err := h.post(ctx, path, payload)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("%w: %w", domain.ErrBackendUnavailable, errEmptyArtifact)
	}

	artifact, err := h.store.Put(ctx, filename, contentType, kind, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("error storing artifact: %w", err)
	}

	return &domain.Result{Artifact: artifact, Duration: time.Since(start)}, nil
}

func (h *HTTP) postJSON(ctx context.Context, path string, payload, out any) error {
	body, err := h.post(ctx, path, payload)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("error unmarshalling analytics response: %w", err)
	}

	return nil
}

func (h *HTTP) post(ctx context.Context, path string, payload any) ([]byte, error) {
	payloadBuf := new(bytes.Buffer)
	err := json.NewEncoder(payloadBuf).Encode(payload)
	if err != nil {
		return nil, fmt.Errorf("error encoding analytics request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+path, payloadBuf)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("error creating POST request for analytics")
		return nil, err
	}

	req.Header.Add("Content-Type", "application/json")

	return h.do(req)
}

func (h *HTTP) do(req *http.Request) ([]byte, error) {
	if h.apiKey != "" {
		req.Header.Add("Authorization", "Bearer "+h.apiKey)
	}

	res, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrBackendUnavailable, err)
	}

	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: error reading response: %w", domain.ErrBackendUnavailable, err)
	}

	if res.StatusCode != http.StatusOK {
		err = statusError(res.StatusCode, body)
		log.Debug().Err(err).Str("path", req.URL.Path).Int("status", res.StatusCode).Msg("analytics request failed")
		return nil, err
	}

	return body, nil
}

// statusError maps a non-OK analytics response to a typed failure.
func statusError(status int, body []byte) error {
	var res errorResponse
	_ = json.Unmarshal(body, &res)

	switch {
	case res.Error == "no_activity" || status == http.StatusNotFound:
		return domain.ErrNoActivity
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", domain.ErrInvalidScope, res.Error)
	default:
		return fmt.Errorf("%w: unexpected status code %d", domain.ErrBackendUnavailable, status)
	}
}

var _ port.Analytics = (*HTTP)(nil)
