package service

import (
	"context"
	"slices"
	"srgbot/internal/core/domain"
	"srgbot/internal/core/port"

	"github.com/rs/zerolog/log"
)

type Authorizer interface {
	// IsAuthorized reports whether the invoking actor may run a privileged command.
	// On denial the actor is told so privately.
	IsAuthorized(ctx context.Context, invocation *domain.Invocation) bool
}

type AdminAuthorizer struct {
	allowlist []string
	responder port.Responder
}

// NewAuthorizer grants privileged commands to server administrators and to the
// actor IDs in allowlist.
func NewAuthorizer(responder port.Responder, allowlist []string) *AdminAuthorizer {
	return &AdminAuthorizer{
		allowlist: allowlist,
		responder: responder,
	}
}

const forbidden = "You need administrator permissions to use this command."

func (a *AdminAuthorizer) IsAuthorized(ctx context.Context, invocation *domain.Invocation) bool {
	if invocation.Actor.Administrator || slices.Contains(a.allowlist, invocation.Actor.ID) {
		return true
	}

	err := a.responder.Deny(ctx, invocation, forbidden)
	if err != nil {
		log.Err(err).Str("actorId", invocation.Actor.ID).Msg("failed to send unauthorized warning")
	}

	return false
}
