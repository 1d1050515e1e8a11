package command

import (
	"context"
	"fmt"
	"srgbot/internal/core/domain"
	"srgbot/internal/core/port"
)

type WordCloud struct {
	pipeline  *Pipeline
	analytics port.Analytics
	command   string
}

func NewWordCloud(pipeline *Pipeline, analytics port.Analytics, command string) *WordCloud {
	return &WordCloud{pipeline: pipeline, analytics: analytics, command: command}
}

func (w *WordCloud) GetCommand() string {
	return w.command
}

func (w *WordCloud) Description() string {
	return "Generate a word cloud of a member's messages"
}

func (w *WordCloud) Options() []domain.OptionSpec {
	return []domain.OptionSpec{
		{Name: "member", Description: "Member to build the word cloud for", Kind: domain.KindUser, Required: true},
	}
}

func (w *WordCloud) Respond(ctx context.Context, invocation *domain.Invocation) error {
	return w.pipeline.run(ctx, invocation, variant{
		command: w.command,
		title:   "Word Cloud",
		options: w.Options(),
		call: func(ctx context.Context, invocation *domain.Invocation, values domain.Values) (*domain.Result, error) {
			return w.analytics.WordCloud(ctx, domain.WordCloudRequest{
				GuildID: invocation.GuildID,
				UserID:  values.Actor("member").MustGet().ID,
			})
		},
		build: func(_ *domain.Invocation, values domain.Values, _ *domain.Result) domain.Envelope {
			member := values.Actor("member").MustGet()
			return domain.NewEnvelope("Word Cloud", fmt.Sprintf("Here is the wordcloud for %s", member.Mention))
		},
		empty: func(_ *domain.Invocation, values domain.Values) string {
			return fmt.Sprintf("%s has no recorded messages in this server.", values.Actor("member").MustGet().Mention)
		},
	})
}
