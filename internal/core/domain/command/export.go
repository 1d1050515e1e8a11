package command

import (
	"context"
	"fmt"
	"srgbot/internal/core/domain"
	"srgbot/internal/core/port"
)

type Export struct {
	pipeline  *Pipeline
	analytics port.Analytics
	command   string
}

func NewExport(pipeline *Pipeline, analytics port.Analytics, command string) *Export {
	return &Export{pipeline: pipeline, analytics: analytics, command: command}
}

func (e *Export) GetCommand() string {
	return e.command
}

func (e *Export) Description() string {
	return "Export a channel's message history (administrators only)"
}

func (e *Export) Options() []domain.OptionSpec {
	minLimit := 1
	return []domain.OptionSpec{
		{Name: "channel", Description: "Channel to export", Kind: domain.KindChannel, Required: true},
		{
			Name:        "export_format",
			Description: "Output format",
			Kind:        domain.KindChoice,
			Required:    true,
			Choices:     []domain.Choice{{Label: "HTML", Value: string(domain.HTML)}},
		},
		{
			Name:        "message_limit",
			Description: "Only export the most recent messages",
			Kind:        domain.KindInteger,
			Min:         &minLimit,
		},
	}
}

func (e *Export) Respond(ctx context.Context, invocation *domain.Invocation) error {
	return e.pipeline.run(ctx, invocation, variant{
		command:    e.command,
		title:      "Export",
		privileged: true,
		options:    e.Options(),
		call: func(ctx context.Context, _ *domain.Invocation, values domain.Values) (*domain.Result, error) {
			return e.analytics.ExportChannel(ctx, domain.ExportRequest{
				ChannelID: values.Channel("channel").MustGet().ID,
				Format:    domain.ExportFormat(values.String("export_format").MustGet()),
				Limit:     values.Int("message_limit"),
			})
		},
		build: func(_ *domain.Invocation, values domain.Values, _ *domain.Result) domain.Envelope {
			channel := values.Channel("channel").MustGet()
			description := fmt.Sprintf("Here is the export of %s", channel.Mention)
			if limit, ok := values.Int("message_limit").Get(); ok {
				description = fmt.Sprintf("Here are the last %d messages of %s", limit, channel.Mention)
			}
			return domain.NewEnvelope("Export", description)
		},
	})
}
