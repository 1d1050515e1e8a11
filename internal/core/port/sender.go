package port

import (
	"context"
	"srgbot/internal/core/domain"
)

type Responder interface {
	// Acknowledge defers the platform's response timer for the invocation.
	Acknowledge(ctx context.Context, invocation *domain.Invocation) error
	// Send delivers the terminal reply, uploading the attachment if one is given.
	Send(ctx context.Context, invocation *domain.Invocation, envelope domain.Envelope,
		attachment *domain.Attachment) error
	// Deny answers an unacknowledged invocation with a private message.
	Deny(ctx context.Context, invocation *domain.Invocation, message string) error
}
