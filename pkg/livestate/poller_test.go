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

package livestate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/carverauto/brokview/pkg/logger"
	"github.com/carverauto/brokview/pkg/models"
)

func newTestPoller(t *testing.T, handler http.Handler, eventsCount int) *Poller {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewPoller(&models.LiveStateConfig{
		Endpoint:     srv.URL,
		PollInterval: models.Duration(10 * time.Second),
		EventsCount:  eventsCount,
	}, logger.NewTestLogger())
}

func TestPollerStatusAndEvents(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/status", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"livestate": map[string]interface{}{"state": "up", "output": "all daemons up"},
		})
	})
	mux.HandleFunc("/events_log", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode([]Event{
			{Timestamp: 100, Date: "2018-11-24 16:28:03", Message: "RETENTION LOAD: scheduler-master", Level: "info"},
			{Timestamp: 200, Date: "2018-11-24 16:29:10", Message: "TIMEPERIOD TRANSITION", Level: "info"},
		})
	})

	p := newTestPoller(t, mux, 10)
	p.poll(context.Background())

	state := p.Livestate()
	require.Equal(t, "up", state["state"])

	events := p.Events()
	require.Len(t, events, 2)
	// Newest first.
	require.Equal(t, float64(200), events[0].Timestamp)
	require.Equal(t, float64(100), events[1].Timestamp)

	// Replayed events are kept once; the watermark moved to 200.
	p.poll(context.Background())
	require.Len(t, p.Events(), 2)
	require.Equal(t, float64(200), p.highWater)
}

func TestPollerEventsBounded(t *testing.T) {
	t.Parallel()

	next := float64(0)
	mux := http.NewServeMux()
	mux.HandleFunc("/status", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"livestate": map[string]interface{}{}})
	})
	mux.HandleFunc("/events_log", func(w http.ResponseWriter, _ *http.Request) {
		batch := make([]Event, 0, 3)
		for range 3 {
			next++
			batch = append(batch, Event{Timestamp: next, Message: "event", Level: "info"})
		}
		_ = json.NewEncoder(w).Encode(batch)
	})

	p := newTestPoller(t, mux, 4)

	p.poll(context.Background())
	p.poll(context.Background())

	events := p.Events()
	require.Len(t, events, 4)
	// Oldest entries were dropped.
	require.Equal(t, float64(6), events[0].Timestamp)
	require.Equal(t, float64(3), events[3].Timestamp)
}

func TestPollerErrorDamping(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	p := newTestPoller(t, mux, 10)

	// Eleven consecutive failures reset the counter.
	for range 6 {
		p.poll(context.Background())
	}

	require.Equal(t, 1, p.errorCount)
	require.Nil(t, p.Livestate())
	require.Empty(t, p.Events())
}
