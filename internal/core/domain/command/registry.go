package command

import (
	"errors"
	"fmt"
	"slices"
	"srgbot/internal/core/domain"
	"srgbot/internal/core/port"
	"strings"

	"github.com/rs/zerolog/log"
)

type Registry struct {
	commands map[string]port.Command
}

func (r *Registry) Register(handler port.Command) {
	if r.commands == nil {
		r.commands = make(map[string]port.Command)
	}

	log.Info().Str("handler", handler.GetCommand()).Msg("adding command handler to registry")
	r.commands[strings.ToLower(handler.GetCommand())] = handler
}

func (r *Registry) Get(command string) (port.Command, error) {
	log.Debug().Str("command", command).Msg("fetching command handler from registry")

	if r.commands == nil {
		return nil, errors.New("can't fetch command, registry not initialized")
	}

	handler, ok := r.commands[strings.ToLower(command)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrCommandNotFound, command)
	}

	return handler, nil
}

// ListCommands returns the registered command names in alphabetical order.
func (r *Registry) ListCommands() []string {
	keys := make([]string, 0, len(r.commands))
	for k := range r.commands {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	return keys
}

func (r *Registry) Commands() []port.Command {
	names := r.ListCommands()
	commands := make([]port.Command, len(names))
	for i, name := range names {
		commands[i] = r.commands[name]
	}

	return commands
}
