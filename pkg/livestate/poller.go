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

// Package livestate polls the monitoring framework's arbiter for its
// overall state and recent event log. It is independent of the object
// graph: the snapshot lives behind its own lock.
package livestate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/carverauto/brokview/pkg/logger"
	"github.com/carverauto/brokview/pkg/models"
)

// Event is one line of the framework event log.
type Event struct {
	Timestamp float64 `json:"timestamp"`
	Date      string  `json:"date"`
	Message   string  `json:"message"`
	Level     string  `json:"level"`
}

// Poller periodically fetches /status and /events_log from the framework
// endpoint. Events are kept newest first in a bounded list; when full, the
// oldest entry is dropped. The timestamp high-watermark is sent back to the
// endpoint so each poll only returns events we have not seen.
type Poller struct {
	endpoint    string
	interval    time.Duration
	eventsCount int
	client      *http.Client
	log         logger.Logger

	mu        sync.RWMutex
	livestate map[string]interface{}
	events    []Event
	highWater float64

	// Consecutive poll failures are logged at debug; every tenth one is
	// promoted to info so a dead endpoint stays visible without flooding.
	errorCount int
}

func NewPoller(cfg *models.LiveStateConfig, log logger.Logger) *Poller {
	return &Poller{
		endpoint:    cfg.Endpoint,
		interval:    time.Duration(cfg.PollInterval),
		eventsCount: cfg.EventsCount,
		client:      &http.Client{Timeout: 10 * time.Second},
		log:         log,
	}
}

// Run polls until the context is cancelled.
func (p *Poller) Run(ctx context.Context) {
	p.log.Debug().Str("endpoint", p.endpoint).Msg("Framework status thread starting")

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		p.poll(ctx)

		select {
		case <-ctx.Done():
			p.log.Info().Msg("Exiting the framework status thread")
			return
		case <-ticker.C:
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	if err := p.pollStatus(ctx); err != nil {
		p.noteError("get status", err)
	}

	if err := p.pollEvents(ctx); err != nil {
		p.noteError("get events", err)
	}
}

func (p *Poller) noteError(op string, err error) {
	p.errorCount++
	p.log.Debug().Err(err).Str("op", op).Msg("Framework poll failed")

	if p.errorCount > 10 {
		p.errorCount = 0
		p.log.Info().Err(err).Str("op", op).Msg("Framework poll keeps failing")
	}
}

func (p *Poller) pollStatus(ctx context.Context) error {
	var status struct {
		Livestate map[string]interface{} `json:"livestate"`
	}

	if err := p.getJSON(ctx, p.endpoint+"/status", &status); err != nil {
		return err
	}

	p.mu.Lock()
	p.livestate = status.Livestate
	p.mu.Unlock()

	return nil
}

func (p *Poller) pollEvents(ctx context.Context) error {
	p.mu.RLock()
	highWater := p.highWater
	p.mu.RUnlock()

	url := fmt.Sprintf("%s/events_log?details=1&count=%d&timestamp=%d",
		p.endpoint, p.eventsCount, int64(highWater))

	var events []Event
	if err := p.getJSON(ctx, url, &events); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	for _, ev := range events {
		if ev.Timestamp > p.highWater {
			p.highWater = ev.Timestamp
		}

		// The endpoint replays events around the watermark; keep each
		// one once.
		if slices.Contains(p.events, ev) {
			continue
		}

		p.events = append([]Event{ev}, p.events...)
		if len(p.events) > p.eventsCount {
			p.events = p.events[:p.eventsCount]
		}
	}

	return nil
}

func (p *Poller) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// Livestate returns the most recent framework state snapshot, or nil when
// no poll has succeeded yet.
func (p *Poller) Livestate() map[string]interface{} {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.livestate
}

// Events returns a copy of the recent framework events, newest first.
func (p *Poller) Events() []Event {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return slices.Clone(p.events)
}
