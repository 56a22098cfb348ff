// Package notify carries "something changed, reload" messages between the
// services over redis pub/sub. Delivery is at-least-once from the reader's
// point of view; a Change never describes a delta.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Alturino/nebula/internal/constants"
	"github.com/Alturino/nebula/internal/otel"
)

const (
	ENTITY_ORDERS       = "orders"
	ENTITY_RESERVATIONS = "reservations"
	ENTITY_MENU_ITEMS   = "menu-items"
	ENTITY_EVENTS       = "events"

	KEY_CHANNEL = "nebula:%s-changes"
)

type Op string

const (
	OpInsert Op = "INSERT"
	OpUpdate Op = "UPDATE"
	OpDelete Op = "DELETE"
)

type Change struct {
	At     time.Time `json:"at"`
	Entity string    `json:"entity"`
	Op     Op        `json:"op"`
	ID     string    `json:"id"`
}

func Channel(entity string) string {
	return fmt.Sprintf(KEY_CHANNEL, entity)
}

type Publisher struct {
	client *redis.Client
	now    func() time.Time
}

func NewPublisher(client *redis.Client) *Publisher {
	return &Publisher{client: client, now: time.Now}
}

func (p *Publisher) Publish(c context.Context, entity string, op Op, id string) error {
	c, span := otel.Tracer.Start(c, "Publisher Publish")
	defer span.End()

	channel := Channel(entity)
	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "Publisher Publish").
		Str(constants.KEY_CHANNEL, channel).
		Str(constants.KEY_PROCESS, "publishing change").
		Logger()

	logger.Trace().Msg("publishing change")
	payload, err := json.Marshal(Change{Entity: entity, Op: op, ID: id, At: p.now()})
	if err != nil {
		err = fmt.Errorf("failed marshaling change with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	if err = p.client.Publish(c, channel, payload).Err(); err != nil {
		err = fmt.Errorf("failed publishing change with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Trace().Msg("published change")

	return nil
}

type Subscriber struct {
	client *redis.Client
}

func NewSubscriber(client *redis.Client) *Subscriber {
	return &Subscriber{client: client}
}

// Subscribe returns the changes of entity until c is done, then closes the
// channel. Undecodable payloads still arrive as a bare Change of entity.
func (s *Subscriber) Subscribe(c context.Context, entity string) (<-chan Change, error) {
	channel := Channel(entity)
	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "Subscriber Subscribe").
		Str(constants.KEY_CHANNEL, channel).
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "subscribing").Logger()
	logger.Info().Msg("subscribing")
	pubsub := s.client.Subscribe(c, channel)
	if _, err := pubsub.Receive(c); err != nil {
		_ = pubsub.Close()
		err = fmt.Errorf("failed subscribing channel=%s with error=%w", channel, err)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msg("subscribed")

	changes := make(chan Change)
	go func() {
		defer close(changes)
		defer pubsub.Close()

		messages := pubsub.Channel()
		for {
			select {
			case <-c.Done():
				logger.Info().Msg("unsubscribing")
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}
				change := Change{Entity: entity}
				if err := json.Unmarshal([]byte(msg.Payload), &change); err != nil {
					logger.Warn().Err(err).Msg("failed decoding change, reloading anyway")
					change = Change{Entity: entity}
				}
				select {
				case changes <- change:
				case <-c.Done():
					return
				}
			}
		}
	}()

	return changes, nil
}
