package port

import (
	"context"
	"srgbot/internal/core/domain"
)

// Analytics is the boundary to the external analytics backend. Typed failures
// are reported as domain.ErrNoActivity, domain.ErrBackendUnavailable and
// domain.ErrInvalidScope.
type Analytics interface {
	Connect(ctx context.Context) error
	WordCloud(ctx context.Context, req domain.WordCloudRequest) (*domain.Result, error)
	RankChannels(ctx context.Context, req domain.RankRequest) (*domain.Result, error)
	RankUsers(ctx context.Context, req domain.RankRequest) (*domain.Result, error)
	ExportChannel(ctx context.Context, req domain.ExportRequest) (*domain.Result, error)
	Profile(ctx context.Context, req domain.ProfileRequest) (*domain.Result, error)
	TopDates(ctx context.Context, req domain.TopDatesRequest) (*domain.Result, error)
}
