package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/require"

	"parcel-service/internal/service/notifications"
	"parcel-service/internal/testutil/testlog"
)

type fakeSession struct {
	ctx context.Context

	mu     sync.Mutex
	marked int
}

func (s *fakeSession) Context() context.Context { return s.ctx }

func (s *fakeSession) MarkMessage(*sarama.ConsumerMessage, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.marked++
}

func (s *fakeSession) MarkOffset(string, int32, int64, string)  {}
func (s *fakeSession) Commit()                                  {}
func (s *fakeSession) ResetOffset(string, int32, int64, string) {}
func (s *fakeSession) Claims() map[string][]int32               { return nil }
func (s *fakeSession) MemberID() string                         { return "" }
func (s *fakeSession) GenerationID() int32                      { return 0 }

func (s *fakeSession) MarkedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.marked
}

type fakeClaim struct {
	ch chan *sarama.ConsumerMessage
}

func (c fakeClaim) Topic() string                            { return "t" }
func (c fakeClaim) Partition() int32                         { return 0 }
func (c fakeClaim) InitialOffset() int64                     { return 0 }
func (c fakeClaim) HighWaterMarkOffset() int64               { return 0 }
func (c fakeClaim) Messages() <-chan *sarama.ConsumerMessage { return c.ch }

func claimOf(values ...[]byte) fakeClaim {
	ch := make(chan *sarama.ConsumerMessage, len(values))
	for i, v := range values {
		ch <- &sarama.ConsumerMessage{Value: v, Offset: int64(i)}
	}
	close(ch)
	return fakeClaim{ch: ch}
}

func encode(t *testing.T, dto EventDTO) []byte {
	t.Helper()
	b, err := json.Marshal(dto)
	require.NoError(t, err)
	return b
}

func TestConsumeClaim_BadJSON_Skips(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	c := &Consumer{
		logger: rec.Logger(),
		handler: func(context.Context, notifications.Event) error {
			t.Fatal("handler must not be called")
			return nil
		},
	}
	sess := &fakeSession{ctx: context.Background()}

	err := (&groupHandler{c: c}).ConsumeClaim(sess, claimOf([]byte("not-json")))
	require.NoError(t, err)
	require.Equal(t, 1, sess.MarkedCount())
	require.True(t, rec.Has("warn", "kafka bad json"))
}

func TestConsumeClaim_EmptySessionID_Skips(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	calls := 0
	c := &Consumer{
		logger: rec.Logger(),
		handler: func(context.Context, notifications.Event) error {
			calls++
			return nil
		},
	}
	sess := &fakeSession{ctx: context.Background()}

	err := (&groupHandler{c: c}).ConsumeClaim(sess, claimOf(encode(t, EventDTO{SessionID: "  ", Type: notifications.TypeSessionCompleted})))
	require.NoError(t, err)
	require.Equal(t, 1, sess.MarkedCount())
	require.Zero(t, calls)
	require.True(t, rec.Has("warn", "kafka empty session_id"))
}

func TestConsumeClaim_PermanentError_SkipsAndMarks(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	c := &Consumer{
		logger: rec.Logger(),
		handler: func(context.Context, notifications.Event) error {
			return Permanent(errors.New("unknown parcel"))
		},
	}
	sess := &fakeSession{ctx: context.Background()}

	err := (&groupHandler{c: c}).ConsumeClaim(sess, claimOf(
		encode(t, EventDTO{SessionID: "cs_1", Type: notifications.TypeSessionCompleted}),
		encode(t, EventDTO{SessionID: "cs_2", Type: notifications.TypeSessionCompleted}),
	))
	require.NoError(t, err)
	require.Equal(t, 2, sess.MarkedCount())
	require.True(t, rec.Has("warn", "kafka handle failed, skipping message"))
}

func TestConsumeClaim_RetryableError_StopsWithoutMarking(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	sentinel := errors.New("gateway timeout")
	calls := 0
	c := &Consumer{
		logger: rec.Logger(),
		handler: func(context.Context, notifications.Event) error {
			calls++
			return sentinel
		},
	}
	sess := &fakeSession{ctx: context.Background()}

	err := (&groupHandler{c: c}).ConsumeClaim(sess, claimOf(
		encode(t, EventDTO{SessionID: "cs_1", Type: notifications.TypeSessionCompleted}),
		encode(t, EventDTO{SessionID: "cs_2", Type: notifications.TypeSessionCompleted}),
	))
	require.ErrorIs(t, err, sentinel)
	require.Equal(t, 1, calls)
	require.Zero(t, sess.MarkedCount())

	e, ok := rec.Find("error", "kafka handle failed, will retry")
	require.True(t, ok)
	require.Equal(t, "cs_1", e.Value("session_id"))
}

func TestConsumeClaim_Success_Marks(t *testing.T) {
	t.Parallel()

	var got notifications.Event
	c := &Consumer{
		logger: testlog.New().Logger(),
		handler: func(_ context.Context, ev notifications.Event) error {
			got = ev
			return nil
		},
	}
	sess := &fakeSession{ctx: context.Background()}

	err := (&groupHandler{c: c}).ConsumeClaim(sess, claimOf(encode(t, EventDTO{SessionID: "cs_9", Type: notifications.TypeAsyncPaymentSucceeded})))
	require.NoError(t, err)
	require.Equal(t, 1, sess.MarkedCount())
	require.Equal(t, "cs_9", got.SessionID)
	require.Equal(t, notifications.TypeAsyncPaymentSucceeded, got.Type)
}
