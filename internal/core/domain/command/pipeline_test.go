package command

import (
	"context"
	"errors"
	"srgbot/internal/core/domain"
	"testing"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPipeline_ArtifactSentThenReleased(t *testing.T) {
	h := newHarness(t)
	h.analytics.On("WordCloud", domain.WordCloudRequest{GuildID: "g1", UserID: "u2"}).Return(imageResult(), nil)

	inv := invocation("wordcloud", map[string]any{"member": domain.Actor{ID: "u2", Mention: "<@u2>"}})
	err := NewWordCloud(h.pipeline, h.analytics, "wordcloud").Respond(t.Context(), inv)
	require.NoError(t, err)

	assert.Equal(t, events{"ack", "gateway", "send", "release"}, *h.events)
	require.Len(t, h.responder.sent, 1)
	assert.Equal(t, "image.png", h.responder.sent[0].attachment.Filename)
	assert.Equal(t, "attachment://image.png", h.responder.sent[0].envelope.Image)
	assert.Equal(t, "Here is the wordcloud for <@u2>", h.responder.sent[0].envelope.Description)
	assert.Equal(t, 0x123456, h.responder.sent[0].envelope.Color)
	assert.Equal(t, "srgbot", h.responder.sent[0].envelope.Footer)
	assert.Equal(t, []string{"a1"}, h.store.released)
	assert.Equal(t, domain.Replied, inv.State())
}

func TestPipeline_ArtifactReleasedWhenSendFails(t *testing.T) {
	h := newHarness(t)
	h.responder.sendErr = errors.New("discord down")
	h.analytics.On("RankChannels", mock.Anything).Return(imageResult(), nil)

	inv := invocation("top", map[string]any{"type": "channel", "category": "messages"})
	err := NewTop(h.pipeline, h.analytics, "top").Respond(t.Context(), inv)

	require.ErrorIs(t, err, domain.ErrSendingReplyFailed)
	assert.Equal(t, events{"ack", "gateway", "send", "release"}, *h.events)
	assert.Len(t, h.responder.sent, 1)
	assert.Equal(t, []string{"a1"}, h.store.released)
	assert.Equal(t, domain.Failed, inv.State())
}

func TestPipeline_ArtifactOpenFails(t *testing.T) {
	h := newHarness(t)
	h.store.openErr = errors.New("gone")
	h.analytics.On("WordCloud", mock.Anything).Return(imageResult(), nil)

	inv := invocation("wordcloud", map[string]any{"member": domain.Actor{ID: "u2", Mention: "<@u2>"}})
	err := NewWordCloud(h.pipeline, h.analytics, "wordcloud").Respond(t.Context(), inv)

	require.Error(t, err)
	assert.Empty(t, h.responder.sent)
	assert.Equal(t, []string{"a1"}, h.store.released)
	assert.Equal(t, domain.Failed, inv.State())
}

func TestPipeline_BuildPanics(t *testing.T) {
	h := newHarness(t)

	inv := invocation("wordcloud", nil)
	assert.Panics(t, func() {
		_ = h.pipeline.run(t.Context(), inv, variant{
			command: "wordcloud",
			title:   "Word Cloud",
			call: func(_ context.Context, _ *domain.Invocation, _ domain.Values) (*domain.Result, error) {
				return imageResult(), nil
			},
			build: func(_ *domain.Invocation, _ domain.Values, _ *domain.Result) domain.Envelope {
				panic("boom")
			},
		})
	})

	assert.Empty(t, h.responder.sent)
	assert.Equal(t, []string{"a1"}, h.store.released)
	assert.Equal(t, domain.Failed, inv.State())
}

func TestPipeline_NoActivityIsTextOnly(t *testing.T) {
	h := newHarness(t)
	h.analytics.On("WordCloud", mock.Anything).Return(nil, domain.ErrNoActivity)

	inv := invocation("wordcloud", map[string]any{"member": domain.Actor{ID: "u2", Mention: "<@u2>"}})
	err := NewWordCloud(h.pipeline, h.analytics, "wordcloud").Respond(t.Context(), inv)
	require.NoError(t, err)

	require.Len(t, h.responder.sent, 1)
	reply := h.responder.sent[0]
	assert.Nil(t, reply.attachment)
	assert.Empty(t, reply.envelope.Image)
	assert.Empty(t, reply.envelope.Fields)
	assert.Equal(t, "<@u2> has no recorded messages in this server.", reply.envelope.Description)
	assert.Empty(t, h.store.released)
	assert.Equal(t, domain.Replied, inv.State())
}

func TestPipeline_InvalidScopeIsTextOnly(t *testing.T) {
	h := newHarness(t)
	h.analytics.On("TopDates", mock.Anything).Return(nil, domain.ErrInvalidScope)

	inv := invocation("topdate", nil)
	err := NewTopDate(h.pipeline, h.analytics, "topdate").Respond(t.Context(), inv)
	require.NoError(t, err)

	require.Len(t, h.responder.sent, 1)
	assert.Equal(t, invalidScope, h.responder.sent[0].envelope.Description)
}

func TestPipeline_BackendFaultHasNoReply(t *testing.T) {
	h := newHarness(t)
	h.analytics.On("Profile", mock.Anything).Return(nil, domain.ErrBackendUnavailable)

	inv := invocation("profile", nil)
	err := NewProfile(h.pipeline, h.analytics, "profile").Respond(t.Context(), inv)

	require.ErrorIs(t, err, domain.ErrBackendUnavailable)
	assert.Empty(t, h.responder.sent)
	assert.Equal(t, events{"ack", "gateway"}, *h.events)
	assert.Equal(t, domain.Failed, inv.State())
}

func TestPipeline_AcknowledgeFails(t *testing.T) {
	h := newHarness(t)
	h.responder.ackErr = errors.New("expired")

	inv := invocation("profile", nil)
	err := NewProfile(h.pipeline, h.analytics, "profile").Respond(t.Context(), inv)

	require.Error(t, err)
	assert.Equal(t, events{"ack"}, *h.events)
	assert.Equal(t, domain.Failed, inv.State())
}

func TestPipeline_InvalidOption(t *testing.T) {
	h := newHarness(t)

	inv := invocation("top", map[string]any{"type": "role", "category": "messages"})
	err := NewTop(h.pipeline, h.analytics, "top").Respond(t.Context(), inv)

	require.ErrorIs(t, err, domain.ErrInvalidOption)
	assert.Equal(t, events{"ack", "send"}, *h.events)
	require.Len(t, h.responder.sent, 1)
	assert.Contains(t, h.responder.sent[0].envelope.Description, "Invalid option")
	assert.Equal(t, domain.Replied, inv.State())
}

func TestExport_DeniedForNonAdministrator(t *testing.T) {
	h := newHarness(t)

	inv := invocation("export", map[string]any{
		"channel":       domain.Channel{ID: "c9", Mention: "<#c9>"},
		"export_format": "html",
	})
	err := NewExport(h.pipeline, h.analytics, "export").Respond(t.Context(), inv)

	require.ErrorIs(t, err, domain.ErrNotAuthorized)
	assert.Equal(t, events{"deny"}, *h.events)
	assert.Len(t, h.responder.denied, 1)
	assert.Empty(t, h.responder.sent)
	h.analytics.AssertNotCalled(t, "ExportChannel", mock.Anything)
	assert.Equal(t, domain.Failed, inv.State())
}

func TestExport_Administrator(t *testing.T) {
	tests := []struct {
		name        string
		options     map[string]any
		wantLimit   mo.Option[int]
		description string
	}{
		{
			name:        "with limit",
			options:     map[string]any{"message_limit": int64(100)},
			wantLimit:   mo.Some(100),
			description: "Here are the last 100 messages of <#c9>",
		},
		{
			name:        "without limit",
			options:     map[string]any{},
			wantLimit:   mo.None[int](),
			description: "Here is the export of <#c9>",
		},
		{
			name:        "non-positive limit is ignored",
			options:     map[string]any{"message_limit": int64(0)},
			wantLimit:   mo.None[int](),
			description: "Here is the export of <#c9>",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t)
			document := &domain.Result{Artifact: &domain.Artifact{ID: "d1", Filename: "export.html",
				Kind: domain.Document}}
			h.analytics.On("ExportChannel", domain.ExportRequest{ChannelID: "c9", Format: domain.HTML,
				Limit: tc.wantLimit}).Return(document, nil)

			tc.options["channel"] = domain.Channel{ID: "c9", Mention: "<#c9>"}
			tc.options["export_format"] = "html"
			inv := invocation("export", tc.options)
			inv.Actor.Administrator = true

			err := NewExport(h.pipeline, h.analytics, "export").Respond(t.Context(), inv)
			require.NoError(t, err)

			require.Len(t, h.responder.sent, 1)
			assert.Equal(t, "export.html", h.responder.sent[0].attachment.Filename)
			assert.Empty(t, h.responder.sent[0].envelope.Image)
			assert.Equal(t, tc.description, h.responder.sent[0].envelope.Description)
			assert.Equal(t, []string{"d1"}, h.store.released)
		})
	}
}
