package command

import (
	"context"
	"fmt"
	"srgbot/internal/core/domain"
	"srgbot/internal/core/port"
	"strconv"
	"strings"
)

type Profile struct {
	pipeline  *Pipeline
	analytics port.Analytics
	command   string
}

func NewProfile(pipeline *Pipeline, analytics port.Analytics, command string) *Profile {
	return &Profile{pipeline: pipeline, analytics: analytics, command: command}
}

func (p *Profile) GetCommand() string {
	return p.command
}

func (p *Profile) Description() string {
	return "Show message statistics for a member"
}

func (p *Profile) Options() []domain.OptionSpec {
	return []domain.OptionSpec{
		{Name: "member", Description: "Member to profile, defaults to you", Kind: domain.KindUser},
	}
}

// subject is the member option, or the invoking actor when absent.
func subject(invocation *domain.Invocation, values domain.Values) domain.Actor {
	return values.Actor("member").OrElse(invocation.Actor)
}

func (p *Profile) Respond(ctx context.Context, invocation *domain.Invocation) error {
	return p.pipeline.run(ctx, invocation, variant{
		command: p.command,
		title:   "Profile",
		options: p.Options(),
		call: func(ctx context.Context, invocation *domain.Invocation, values domain.Values) (*domain.Result, error) {
			return p.analytics.Profile(ctx, domain.ProfileRequest{
				GuildID: invocation.GuildID,
				UserID:  subject(invocation, values).ID,
			})
		},
		build: func(invocation *domain.Invocation, values domain.Values, result *domain.Result) domain.Envelope {
			return profileEnvelope(subject(invocation, values), result)
		},
		empty: func(invocation *domain.Invocation, values domain.Values) string {
			return fmt.Sprintf("%s has no recorded messages in this server.", subject(invocation, values).Mention)
		},
	})
}

func profileEnvelope(member domain.Actor, result *domain.Result) domain.Envelope {
	stats := result.Profile
	if stats == nil {
		stats = &domain.Profile{}
	}

	topWords := "None"
	if len(stats.TopWords) > 0 {
		topWords = strings.Join(stats.TopWords, ", ")
	}

	envelope := domain.NewEnvelope(fmt.Sprintf("Profile for %s", member.Name),
		fmt.Sprintf("Message statistics for %s", member.Mention)).
		AddField("Messages", strconv.Itoa(stats.Messages), true).
		AddField("Words", strconv.Itoa(stats.Words), true).
		AddField("Characters", strconv.Itoa(stats.Characters), true).
		AddField("Average Message Length", fmt.Sprintf("%.2f", stats.AverageLength), true).
		AddField("Top Words", topWords, false).
		AddField("Total Attachments", strconv.Itoa(stats.TotalAttachments), true)

	if member.Bot {
		envelope = envelope.AddField("Total Embeds", strconv.Itoa(stats.TotalEmbeds), true)
	}

	envelope.Footer = fmt.Sprintf("Time taken: %.2fs", result.Duration.Seconds())

	return envelope
}
