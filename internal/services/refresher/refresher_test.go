package refresher_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Nazarious-ucu/weather-display/internal/models"
	"github.com/Nazarious-ucu/weather-display/internal/services/refresher"
	"github.com/Nazarious-ucu/weather-display/internal/services/session"
)

type mockSession struct {
	mock.Mock
}

func (m *mockSession) Refresh(ctx context.Context) (session.Outcome, bool) {
	args := m.Called(ctx)
	return args.Get(0).(session.Outcome), args.Bool(1)
}

type countingRecorder struct {
	mu     sync.Mutex
	counts map[string]int
}

func (c *countingRecorder) IncRefresh(result string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.counts == nil {
		c.counts = map[string]int{}
	}
	c.counts[result]++
}

func (c *countingRecorder) get(result string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[result]
}

func TestRunOnce_Skipped(t *testing.T) {
	s := new(mockSession)
	s.On("Refresh", mock.Anything).Return(session.Outcome{}, false).Once()
	rec := &countingRecorder{}

	refresher.New(s, rec, zerolog.Nop(), "").RunOnce(context.Background())

	s.AssertExpectations(t)
	assert.Equal(t, 1, rec.get("skipped"))
}

func TestRunOnce_Refreshed(t *testing.T) {
	s := new(mockSession)
	out := session.Outcome{State: models.Failed(3, nil, "upstream", "city not found"), Acquired: true}
	s.On("Refresh", mock.Anything).Return(out, true).Once()
	rec := &countingRecorder{}

	refresher.New(s, rec, zerolog.Nop(), "").RunOnce(context.Background())

	s.AssertExpectations(t)
	assert.Equal(t, 1, rec.get("error"))
}

func TestStart_InvalidSpec(t *testing.T) {
	r := refresher.New(new(mockSession), &countingRecorder{}, zerolog.Nop(), "not a cron spec")
	require.Error(t, r.Start(context.Background()))
	r.Stop()
}

func TestStart_EmptySpecDisabled(t *testing.T) {
	s := new(mockSession)
	r := refresher.New(s, &countingRecorder{}, zerolog.Nop(), "")
	require.NoError(t, r.Start(context.Background()))
	r.Stop()
	s.AssertNotCalled(t, "Refresh", mock.Anything)
}

func TestStart_RunsOnSchedule(t *testing.T) {
	s := new(mockSession)
	s.On("Refresh", mock.Anything).Return(session.Outcome{}, false)
	rec := &countingRecorder{}

	r := refresher.New(s, rec, zerolog.Nop(), "* * * * * *")
	require.NoError(t, r.Start(context.Background()))
	t.Cleanup(r.Stop)

	assert.Eventually(t, func() bool { return rec.get("skipped") >= 1 }, 3*time.Second, 50*time.Millisecond)
}
