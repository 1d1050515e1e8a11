package command

import (
	"context"
	"fmt"
	"srgbot/internal/core/domain"
	"srgbot/internal/core/port"

	"github.com/samber/mo"
)

const dateLayout = "2006-01-02"

type TopDate struct {
	pipeline  *Pipeline
	analytics port.Analytics
	command   string
}

func NewTopDate(pipeline *Pipeline, analytics port.Analytics, command string) *TopDate {
	return &TopDate{pipeline: pipeline, analytics: analytics, command: command}
}

func (t *TopDate) GetCommand() string {
	return t.command
}

func (t *TopDate) Description() string {
	return "List the most active dates of a member or the server"
}

func (t *TopDate) Options() []domain.OptionSpec {
	return []domain.OptionSpec{
		{Name: "member", Description: "Member to inspect, defaults to the whole server", Kind: domain.KindUser},
	}
}

func (t *TopDate) Respond(ctx context.Context, invocation *domain.Invocation) error {
	return t.pipeline.run(ctx, invocation, variant{
		command: t.command,
		title:   "Top Dates",
		options: t.Options(),
		call: func(ctx context.Context, invocation *domain.Invocation, values domain.Values) (*domain.Result, error) {
			userID := mo.None[string]()
			if member, ok := values.Actor("member").Get(); ok {
				userID = mo.Some(member.ID)
			}
			return t.analytics.TopDates(ctx, domain.TopDatesRequest{GuildID: invocation.GuildID, UserID: userID})
		},
		build: func(_ *domain.Invocation, values domain.Values, result *domain.Result) domain.Envelope {
			description := "Most active dates in this server"
			if member, ok := values.Actor("member").Get(); ok {
				description = fmt.Sprintf("Most active dates for %s", member.Mention)
			}

			envelope := domain.NewEnvelope("Top Dates", description)
			for _, d := range result.Dates {
				envelope = envelope.AddField(d.Date.Format(dateLayout), fmt.Sprintf("%d messages", d.Count), false)
			}

			return envelope
		},
	})
}
