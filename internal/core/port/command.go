package port

import (
	"context"
	"srgbot/internal/core/domain"
)

type Command interface {
	// Respond drives one invocation to a terminal state, acknowledging it before any long-running work.
	Respond(ctx context.Context, invocation *domain.Invocation) error
	// GetCommand retrieves the command identifier associated with a specific command handler.
	GetCommand() string
	// Description is the one-line summary shown in help and in the platform command picker.
	Description() string
	// Options returns the declared parameters of the command.
	Options() []domain.OptionSpec
}

type CommandRegistry interface {
	// Register adds a new command handler to the command registry.
	Register(handler Command)
	// Get retrieves a registered Command based on its string identifier or returns an error if not found.
	Get(command string) (Command, error)
	// ListCommands returns a list of all command identifiers currently registered in the command registry.
	ListCommands() []string
}
