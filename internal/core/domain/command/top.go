package command

import (
	"context"
	"fmt"
	"srgbot/internal/core/domain"
	"srgbot/internal/core/port"

	"github.com/samber/mo"
)

const (
	defaultAmount = 10
	minAmount     = 1
	maxAmount     = 20
)

var (
	typeOption = domain.OptionSpec{
		Name:        "type",
		Description: "Rank users or channels",
		Kind:        domain.KindChoice,
		Required:    true,
		Choices: []domain.Choice{
			{Label: "Channel", Value: "channel"},
			{Label: "User", Value: "user"},
		},
	}
	categoryOption = domain.OptionSpec{
		Name:        "category",
		Description: "What to count",
		Kind:        domain.KindChoice,
		Required:    true,
		Choices: []domain.Choice{
			{Label: "Messages", Value: string(domain.Messages)},
			{Label: "Words", Value: string(domain.Words)},
			{Label: "Characters", Value: string(domain.Characters)},
		},
	}
	timePeriodOption = domain.OptionSpec{
		Name:        "timeperiod",
		Description: "Only count activity within this period (users only)",
		Kind:        domain.KindChoice,
		Choices: []domain.Choice{
			{Label: "Day", Value: string(domain.Day)},
			{Label: "Week", Value: string(domain.Week)},
			{Label: "Month", Value: string(domain.Month)},
			{Label: "Year", Value: string(domain.Year)},
		},
	}
)

func amountOption() domain.OptionSpec {
	lo, hi := domain.Range(minAmount, maxAmount)
	return domain.OptionSpec{
		Name:        "amount",
		Description: fmt.Sprintf("Number of entries, %d-%d", minAmount, maxAmount),
		Kind:        domain.KindInteger,
		Min:         lo,
		Max:         hi,
		Default:     defaultAmount,
	}
}

type Top struct {
	pipeline  *Pipeline
	analytics port.Analytics
	command   string
}

func NewTop(pipeline *Pipeline, analytics port.Analytics, command string) *Top {
	return &Top{pipeline: pipeline, analytics: analytics, command: command}
}

func (t *Top) GetCommand() string {
	return t.command
}

func (t *Top) Description() string {
	return "Rank the most active users or channels"
}

func (t *Top) Options() []domain.OptionSpec {
	return []domain.OptionSpec{typeOption, categoryOption, timePeriodOption, amountOption()}
}

// Request shapes validated values into the ranking request. The time period
// only applies to user rankings.
func (t *Top) Request(guildID string, values domain.Values) domain.RankRequest {
	req := domain.RankRequest{
		GuildID: guildID,
		Metric:  domain.Metric(values.String("category").MustGet()),
		Window:  mo.None[domain.Window](),
		Count:   values.Int("amount").OrElse(defaultAmount),
	}

	if values.String("type").MustGet() == "user" {
		if period, ok := values.String("timeperiod").Get(); ok {
			req.Window = mo.Some(domain.Window(period))
		}
	}

	return req
}

func (t *Top) Respond(ctx context.Context, invocation *domain.Invocation) error {
	return t.pipeline.run(ctx, invocation, variant{
		command: t.command,
		title:   "Top",
		options: t.Options(),
		call: func(ctx context.Context, invocation *domain.Invocation, values domain.Values) (*domain.Result, error) {
			req := t.Request(invocation.GuildID, values)
			if values.String("type").MustGet() == "channel" {
				return t.analytics.RankChannels(ctx, req)
			}
			return t.analytics.RankUsers(ctx, req)
		},
		build: func(_ *domain.Invocation, values domain.Values, _ *domain.Result) domain.Envelope {
			return domain.NewEnvelope(topTitle(values), topDescription(values))
		},
	})
}

func topTitle(values domain.Values) string {
	amount := values.Int("amount").OrElse(defaultAmount)
	return fmt.Sprintf("Top %d %ss", amount, typeOption.Label(values.String("type").MustGet()))
}

func topDescription(values domain.Values) string {
	amount := values.Int("amount").OrElse(defaultAmount)
	kind := values.String("type").MustGet()
	category := values.String("category").MustGet()

	if period, ok := values.String("timeperiod").Get(); ok && kind == "user" {
		return fmt.Sprintf("Top %d %ss in this guild by %s, past %s", amount, kind, category, period)
	}

	return fmt.Sprintf("Top %d %ss in this guild by %s", amount, kind, category)
}
