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
	"fmt"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/carverauto/brokview/pkg/models"
)

// ResyncPublisher sends NeedData requests back to the broker tier when the
// regenerator sees updates for an instance it holds no dump for.
type ResyncPublisher struct {
	js      jetstream.JetStream
	subject string
}

func NewResyncPublisher(js jetstream.JetStream, subject string) *ResyncPublisher {
	return &ResyncPublisher{js: js, subject: subject}
}

// RequestFullData publishes a NeedData message naming the instance whose
// full dump we want replayed.
func (p *ResyncPublisher) RequestFullData(ctx context.Context, instanceID string) error {
	msg := models.NewNeedDataMessage(instanceID)

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal NeedData message: %w", err)
	}

	if _, err := p.js.Publish(ctx, p.subject, payload); err != nil {
		return fmt.Errorf("failed to publish NeedData message: %w", err)
	}

	return nil
}
