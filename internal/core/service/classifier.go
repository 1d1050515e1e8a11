package service

import (
	"errors"
	"srgbot/internal/core/domain"

	"github.com/rs/zerolog/log"
)

type Class int

const (
	// Ignored faults are neither logged nor surfaced.
	Ignored Class = iota
	// UserError covers conditions caused by the invoking actor, already answered.
	UserError
	// Fault is a system error and is logged with full detail.
	Fault
)

func Classify(err error) Class {
	switch {
	case err == nil, errors.Is(err, domain.ErrCommandNotFound):
		return Ignored
	case errors.Is(err, domain.ErrNotAuthorized), errors.Is(err, domain.ErrInvalidOption):
		return UserError
	default:
		return Fault
	}
}

// Handle logs err according to its class and reports the class.
func Handle(invocation *domain.Invocation, err error) Class {
	class := Classify(err)

	switch class {
	case Ignored:
	case UserError:
		log.Debug().Err(err).
			Str("command", invocation.Command).
			Str("actorId", invocation.Actor.ID).
			Msg("invocation rejected")
	case Fault:
		log.Error().Err(err).
			Str("invocationId", invocation.ID).
			Str("command", invocation.Command).
			Str("guildId", invocation.GuildID).
			Str("channelId", invocation.ChannelID).
			Str("actorId", invocation.Actor.ID).
			Interface("options", invocation.Options).
			Str("state", string(invocation.State())).
			Msg("failed to respond to command")
	}

	return class
}
