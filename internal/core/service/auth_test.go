package service

import (
	"context"
	"errors"
	"srgbot/internal/core/domain"
	"testing"

	"github.com/stretchr/testify/assert"
)

type mockResponder struct {
	denyCalled  bool
	denyReplies []string
	denyError   error
}

func (m *mockResponder) Acknowledge(_ context.Context, _ *domain.Invocation) error {
	panic("implement me")
}

func (m *mockResponder) Send(_ context.Context, _ *domain.Invocation, _ domain.Envelope, _ *domain.Attachment) error {
	panic("implement me")
}

func (m *mockResponder) Deny(_ context.Context, _ *domain.Invocation, message string) error {
	m.denyCalled = true
	m.denyReplies = append(m.denyReplies, message)
	return m.denyError
}

func TestNewAuthorizer(t *testing.T) {
	auth := NewAuthorizer(&mockResponder{}, []string{"1", "2"})

	assert.NotNil(t, auth)
	assert.Equal(t, []string{"1", "2"}, auth.allowlist)
}

func TestAdminAuthorizer_IsAuthorized(t *testing.T) {
	tests := []struct {
		name       string
		allowlist  []string
		actor      domain.Actor
		denyErr    error
		want       bool
		expectDeny bool
	}{
		{
			name:  "administrator is allowed",
			actor: domain.Actor{ID: "1", Administrator: true},
			want:  true,
		},
		{
			name:      "allowlisted actor is allowed",
			allowlist: []string{"7"},
			actor:     domain.Actor{ID: "7"},
			want:      true,
		},
		{
			name:       "regular member is denied privately",
			allowlist:  []string{"7"},
			actor:      domain.Actor{ID: "8"},
			want:       false,
			expectDeny: true,
		},
		{
			name:       "deny fails for regular member",
			actor:      domain.Actor{ID: "8"},
			denyErr:    errors.New("send failed"),
			want:       false,
			expectDeny: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mr := &mockResponder{denyError: tt.denyErr}
			a := NewAuthorizer(mr, tt.allowlist)

			got := a.IsAuthorized(t.Context(), &domain.Invocation{Actor: tt.actor})

			assert.Equal(t, tt.want, got)
			if tt.expectDeny {
				assert.True(t, mr.denyCalled, "Deny should have been called")
				assert.Equal(t, []string{forbidden}, mr.denyReplies)
			} else {
				assert.False(t, mr.denyCalled, "Deny should not have been called")
			}
		})
	}
}
