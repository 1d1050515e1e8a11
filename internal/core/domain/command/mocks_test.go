package command

import (
	"context"
	"io"
	"srgbot/internal/core/domain"
	"srgbot/internal/core/service"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
)

type events []string

func (e *events) add(event string) {
	*e = append(*e, event)
}

type sent struct {
	envelope   domain.Envelope
	attachment *domain.Attachment
}

type MockResponder struct {
	events  *events
	ackErr  error
	sendErr error
	sent    []sent
	denied  []string
}

func (m *MockResponder) Acknowledge(_ context.Context, _ *domain.Invocation) error {
	m.events.add("ack")
	return m.ackErr
}

func (m *MockResponder) Send(_ context.Context, _ *domain.Invocation, envelope domain.Envelope,
	attachment *domain.Attachment) error {
	m.events.add("send")
	m.sent = append(m.sent, sent{envelope: envelope, attachment: attachment})
	return m.sendErr
}

func (m *MockResponder) Deny(_ context.Context, _ *domain.Invocation, message string) error {
	m.events.add("deny")
	m.denied = append(m.denied, message)
	return nil
}

type MockStore struct {
	events   *events
	openErr  error
	released []string
}

func (m *MockStore) Put(_ context.Context, _, _ string, _ domain.ArtifactKind, _ io.Reader) (*domain.Artifact, error) {
	panic("implement me")
}

func (m *MockStore) Open(_ context.Context, _ *domain.Artifact) (io.ReadCloser, error) {
	if m.openErr != nil {
		return nil, m.openErr
	}
	return io.NopCloser(strings.NewReader("data")), nil
}

func (m *MockStore) Release(_ context.Context, artifact *domain.Artifact) error {
	m.events.add("release")
	m.released = append(m.released, artifact.ID)
	return nil
}

type MockAnalytics struct {
	mock.Mock
	events *events
}

func (m *MockAnalytics) result(args mock.Arguments) (*domain.Result, error) {
	m.events.add("gateway")
	res, _ := args.Get(0).(*domain.Result)
	return res, args.Error(1)
}

func (m *MockAnalytics) Connect(_ context.Context) error {
	return m.Called().Error(0)
}

func (m *MockAnalytics) WordCloud(_ context.Context, req domain.WordCloudRequest) (*domain.Result, error) {
	return m.result(m.Called(req))
}

func (m *MockAnalytics) RankChannels(_ context.Context, req domain.RankRequest) (*domain.Result, error) {
	return m.result(m.Called(req))
}

func (m *MockAnalytics) RankUsers(_ context.Context, req domain.RankRequest) (*domain.Result, error) {
	return m.result(m.Called(req))
}

func (m *MockAnalytics) ExportChannel(_ context.Context, req domain.ExportRequest) (*domain.Result, error) {
	return m.result(m.Called(req))
}

func (m *MockAnalytics) Profile(_ context.Context, req domain.ProfileRequest) (*domain.Result, error) {
	return m.result(m.Called(req))
}

func (m *MockAnalytics) TopDates(_ context.Context, req domain.TopDatesRequest) (*domain.Result, error) {
	return m.result(m.Called(req))
}

type harness struct {
	events    *events
	responder *MockResponder
	store     *MockStore
	analytics *MockAnalytics
	pipeline  *Pipeline
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	ev := &events{}
	responder := &MockResponder{events: ev}
	store := &MockStore{events: ev}
	analytics := &MockAnalytics{events: ev}

	t.Cleanup(func() { analytics.AssertExpectations(t) })

	return &harness{
		events:    ev,
		responder: responder,
		store:     store,
		analytics: analytics,
		pipeline: NewPipeline(responder, service.NewArtifactManager(store),
			service.NewAuthorizer(responder, nil), Style{Color: 0x123456, Footer: "srgbot"}),
	}
}

func invocation(command string, options map[string]any) *domain.Invocation {
	if options == nil {
		options = map[string]any{}
	}

	return &domain.Invocation{
		ID:        "i1",
		Command:   command,
		GuildID:   "g1",
		ChannelID: "c1",
		Actor:     domain.Actor{ID: "u1", Name: "alice", Mention: "<@u1>"},
		Options:   options,
	}
}

func imageResult() *domain.Result {
	return &domain.Result{Artifact: &domain.Artifact{ID: "a1", Filename: "image.png", ContentType: "image/png",
		Kind: domain.Image}}
}
