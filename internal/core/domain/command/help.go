package command

import (
	"context"
	"srgbot/internal/core/domain"
	"srgbot/internal/core/port"
)

type commandLister interface {
	Commands() []port.Command
}

type Help struct {
	pipeline *Pipeline
	commands commandLister
	command  string
}

func NewHelp(pipeline *Pipeline, commands commandLister, command string) *Help {
	return &Help{pipeline: pipeline, commands: commands, command: command}
}

func (h *Help) GetCommand() string {
	return h.command
}

func (h *Help) Description() string {
	return "List available commands"
}

func (h *Help) Options() []domain.OptionSpec {
	return nil
}

func (h *Help) Respond(ctx context.Context, invocation *domain.Invocation) error {
	return h.pipeline.run(ctx, invocation, variant{
		command: h.command,
		title:   "Help",
		build: func(_ *domain.Invocation, _ domain.Values, _ *domain.Result) domain.Envelope {
			envelope := domain.NewEnvelope("Help", "Here are the available commands")
			for _, cmd := range h.commands.Commands() {
				envelope = envelope.AddField("/"+cmd.GetCommand(), cmd.Description(), false)
			}
			return envelope
		},
	})
}
