package instance

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/locallibrary/internal/platform/apperr"
	"github.com/taibuivan/locallibrary/pkg/date"
)

// Stream entry fields.
const (
	fieldInstanceID = "instance_id"
	fieldBookID     = "book_id"
	fieldFrom       = "from"
	fieldTo         = "to"
	fieldDueBack    = "due_back"
	fieldAt         = "at"
)

// RedisFeed appends transitions to a capped Redis stream.
type RedisFeed struct {
	client *redis.Client
	stream string
	maxLen int64
}

func NewRedisFeed(client *redis.Client, stream string, maxLen int64) *RedisFeed {
	return &RedisFeed{client: client, stream: stream, maxLen: maxLen}
}

// Publish runs XADD with an approximate MAXLEN trim.
func (feed *RedisFeed) Publish(context context.Context, transition Transition) error {
	values := map[string]interface{}{
		fieldInstanceID: transition.InstanceID,
		fieldFrom:       string(transition.From),
		fieldTo:         string(transition.To),
		fieldAt:         transition.At.UTC().Format(time.RFC3339Nano),
		fieldBookID:     "",
		fieldDueBack:    "",
	}
	if transition.BookID != nil {
		values[fieldBookID] = strconv.FormatInt(*transition.BookID, 10)
	}
	if transition.DueBack != nil {
		values[fieldDueBack] = transition.DueBack.String()
	}

	err := feed.client.XAdd(context, &redis.XAddArgs{
		Stream: feed.stream,
		MaxLen: feed.maxLen,
		Approx: true,
		Values: values,
	}).Err()
	if err != nil {
		return fmt.Errorf("instance feed: xadd %s: %w", feed.stream, err)
	}
	return nil
}

// Recent reads the stream tail with XREVRANGE.
func (feed *RedisFeed) Recent(context context.Context, limit int) ([]Transition, error) {
	messages, err := feed.client.XRevRangeN(context, feed.stream, "+", "-", int64(limit)).Result()
	if err != nil {
		return nil, apperr.ServiceUnavailable("Lending feed is unavailable").WithCause(err)
	}

	transitions := make([]Transition, 0, len(messages))
	for _, message := range messages {
		transition, err := decodeTransition(message.Values)
		if err != nil {
			return nil, apperr.Internal(fmt.Errorf("instance feed: entry %s: %w", message.ID, err))
		}
		transitions = append(transitions, transition)
	}
	return transitions, nil
}

func decodeTransition(values map[string]interface{}) (Transition, error) {
	text := func(key string) string {
		value, _ := values[key].(string)
		return value
	}

	at, err := time.Parse(time.RFC3339Nano, text(fieldAt))
	if err != nil {
		return Transition{}, err
	}

	transition := Transition{
		InstanceID: text(fieldInstanceID),
		From:       Status(text(fieldFrom)),
		To:         Status(text(fieldTo)),
		At:         at,
	}

	if raw := text(fieldBookID); raw != "" {
		bookID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Transition{}, err
		}
		transition.BookID = &bookID
	}

	if raw := text(fieldDueBack); raw != "" {
		dueBack, err := date.Parse(raw)
		if err != nil {
			return Transition{}, err
		}
		transition.DueBack = &dueBack
	}
	return transition, nil
}
