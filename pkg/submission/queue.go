package submission

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DefaultQueueKey is the Redis list submissions are pushed onto.
const DefaultQueueKey = "contactform:submissions"

// Envelope is the queued representation of one submission.
type Envelope struct {
	ID          string    `json:"id"`
	FormID      string    `json:"form_id,omitempty"`
	Values      Values    `json:"values"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// Pusher is the part of a Redis client QueueTransport needs. *redis.Client
// satisfies it.
type Pusher interface {
	LPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
}

// QueueTransport hands submissions to a backend worker through a Redis list.
// Workers pop from the other end (BRPOP).
type QueueTransport struct {
	client Pusher
	key    string
	formID string
	now    func() time.Time
}

// NewQueueTransport pushes onto key; an empty key means DefaultQueueKey.
func NewQueueTransport(client Pusher, key string) *QueueTransport {
	if key == "" {
		key = DefaultQueueKey
	}
	return &QueueTransport{client: client, key: key, now: time.Now}
}

// ForForm returns a copy that stamps envelopes with formID.
func (t *QueueTransport) ForForm(formID string) Transport {
	c := *t
	c.formID = formID
	return &c
}

func (t *QueueTransport) Name() string { return "queue" }

func (t *QueueTransport) Submit(ctx context.Context, values Values) (Result, error) {
	env := Envelope{
		ID:          uuid.NewString(),
		FormID:      t.formID,
		Values:      values,
		SubmittedAt: t.now().UTC(),
	}
	data, err := json.Marshal(env)
	if err != nil {
		return Result{}, fmt.Errorf("marshal submission: %w", err)
	}
	if err := t.client.LPush(ctx, t.key, data).Err(); err != nil {
		return Result{}, fmt.Errorf("enqueue submission: %w", err)
	}
	return Result{Success: true, Message: DefaultStubMessage}, nil
}
