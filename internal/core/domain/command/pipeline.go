package command

import (
	"context"
	"errors"
	"fmt"
	"srgbot/internal/core/domain"
	"srgbot/internal/core/port"
	"srgbot/internal/core/service"

	"github.com/rs/zerolog/log"
)

// Style is the embed template applied to every reply.
type Style struct {
	Color  int
	Footer string
}

// Pipeline drives a single invocation through acknowledge, validate, gateway
// call, reply and artifact release. It holds no per-invocation state and is
// shared by all commands.
type Pipeline struct {
	responder port.Responder
	artifacts *service.ArtifactManager
	auth      service.Authorizer
	style     Style
}

func NewPipeline(responder port.Responder, artifacts *service.ArtifactManager, auth service.Authorizer,
	style Style) *Pipeline {
	return &Pipeline{responder: responder, artifacts: artifacts, auth: auth, style: style}
}

type callFunc func(ctx context.Context, invocation *domain.Invocation, values domain.Values) (*domain.Result, error)

type buildFunc func(invocation *domain.Invocation, values domain.Values, result *domain.Result) domain.Envelope

// variant describes how one command runs through the pipeline. A nil call skips the
// gateway; empty renders the text reply for domain.ErrNoActivity.
type variant struct {
	command    string
	title      string
	privileged bool
	options    []domain.OptionSpec
	call       callFunc
	build      buildFunc
	empty      func(invocation *domain.Invocation, values domain.Values) string
}

const (
	noActivity    = "There is no recorded activity yet."
	invalidScope  = "This command can't be used here."
	invalidOption = "Invalid option: %s"
)

func (p *Pipeline) run(ctx context.Context, invocation *domain.Invocation, s variant) error {
	l := log.With().
		Str("invocationId", invocation.ID).
		Str("guildId", invocation.GuildID).
		Str("actorId", invocation.Actor.ID).
		Str("command", s.command).
		Logger()

	l.Info().Msg("handling request")

	if s.privileged && !p.auth.IsAuthorized(ctx, invocation) {
		l.Debug().Msg("not authorized")
		// the denial itself answered the interaction
		_ = invocation.Transition(domain.Acknowledged)
		_ = invocation.Transition(domain.Failed)
		return fmt.Errorf("%s: %w", s.command, domain.ErrNotAuthorized)
	}

	if err := p.responder.Acknowledge(ctx, invocation); err != nil {
		_ = invocation.Transition(domain.Failed)
		return fmt.Errorf("failed to acknowledge: %w", err)
	}
	if err := p.advance(invocation, domain.Acknowledged, domain.Processing); err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			_ = invocation.Transition(domain.Failed)
			panic(r)
		}
	}()

	values, err := domain.Validate(s.options, invocation.Options)
	if err != nil {
		l.Debug().Err(err).Msg("rejected options")
		if sendErr := p.reply(ctx, invocation, domain.ErrorEnvelope(s.title, fmt.Sprintf(invalidOption, err)), nil); sendErr != nil {
			return sendErr
		}
		return err
	}

	result := &domain.Result{}
	if s.call != nil {
		result, err = s.call(ctx, invocation, values)
		switch {
		case errors.Is(err, domain.ErrNoActivity):
			l.Debug().Msg("no recorded activity")
			message := noActivity
			if s.empty != nil {
				message = s.empty(invocation, values)
			}
			return p.reply(ctx, invocation, domain.ErrorEnvelope(s.title, message), nil)
		case errors.Is(err, domain.ErrInvalidScope):
			l.Debug().Err(err).Msg("invalid scope")
			return p.reply(ctx, invocation, domain.ErrorEnvelope(s.title, invalidScope), nil)
		case err != nil:
			_ = invocation.Transition(domain.Failed)
			return fmt.Errorf("%s: analytics call failed: %w", s.command, err)
		}
	}

	if result == nil {
		result = &domain.Result{}
	}

	err = p.artifacts.WithArtifact(ctx, result, func(ctx context.Context, attachment *domain.Attachment) error {
		envelope := s.build(invocation, values, result).WithArtifact(result.Artifact)
		return p.reply(ctx, invocation, envelope, attachment)
	})
	if err != nil && !invocation.Done() {
		_ = invocation.Transition(domain.Failed)
	}

	return err
}

// reply sends the terminal reply and records its outcome on the invocation.
func (p *Pipeline) reply(ctx context.Context, invocation *domain.Invocation, envelope domain.Envelope,
	attachment *domain.Attachment) error {
	if envelope.Color == 0 {
		envelope.Color = p.style.Color
	}
	if envelope.Footer == "" {
		envelope.Footer = p.style.Footer
	}

	err := p.responder.Send(ctx, invocation, envelope, attachment)
	if err != nil {
		_ = invocation.Transition(domain.Failed)
		return fmt.Errorf("%w: %w", domain.ErrSendingReplyFailed, err)
	}

	return invocation.Transition(domain.Replied)
}

func (p *Pipeline) advance(invocation *domain.Invocation, states ...domain.State) error {
	for _, s := range states {
		if err := invocation.Transition(s); err != nil {
			return err
		}
	}
	return nil
}
