/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package natsutil

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/carverauto/brokview/pkg/logger"
	"github.com/carverauto/brokview/pkg/models"
)

const (
	defaultAckWait   = 30 * time.Second
	defaultFetchWait = 5 * time.Second
)

// BrokConsumer is a durable JetStream pull consumer that decodes brok
// records off the stream. It satisfies the regenerator's brok source.
type BrokConsumer struct {
	consumer jetstream.Consumer
	log      logger.Logger
}

func NewBrokConsumer(ctx context.Context, js jetstream.JetStream, streamName, consumerName, subject string, log logger.Logger) (*BrokConsumer, error) {
	consumer, err := js.Consumer(ctx, streamName, consumerName)
	if err != nil {
		if !errors.Is(err, jetstream.ErrConsumerNotFound) {
			return nil, fmt.Errorf("failed to look up consumer %s: %w", consumerName, err)
		}

		cfg := jetstream.ConsumerConfig{
			Durable:   consumerName,
			AckPolicy: jetstream.AckExplicitPolicy,
			AckWait:   defaultAckWait,
		}
		if subject != "" {
			cfg.FilterSubject = subject
		}

		consumer, err = js.CreateConsumer(ctx, streamName, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create consumer %s: %w", consumerName, err)
		}
	}

	return &BrokConsumer{consumer: consumer, log: log}, nil
}

// Fetch pulls up to batch broks, waiting briefly when the stream is idle.
// A message that does not decode as a brok is acknowledged and dropped;
// redelivering it would never help.
func (c *BrokConsumer) Fetch(ctx context.Context, batch int) ([]*models.Brok, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	msgs, err := c.consumer.Fetch(batch, jetstream.FetchMaxWait(defaultFetchWait))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch broks: %w", err)
	}

	var broks []*models.Brok

	for msg := range msgs.Messages() {
		var b models.Brok

		if err := json.Unmarshal(msg.Data(), &b); err != nil {
			c.log.Warn().Err(err).
				Str("subject", msg.Subject()).
				Msg("Dropping undecodable brok message")

			_ = msg.Ack()

			continue
		}

		broks = append(broks, &b)
		_ = msg.Ack()
	}

	// An expired wait is the normal idle case; anything else is worth a
	// debug line, the next Fetch retries anyway.
	if err := msgs.Error(); err != nil && !errors.Is(err, jetstream.ErrNoMessages) {
		c.log.Debug().Err(err).Msg("Fetch ended with error")
	}

	return broks, nil
}
