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

package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/carverauto/brokview/pkg/logger"
)

var (
	errInvalidDuration = fmt.Errorf("invalid duration")
	errNATSURLRequired = fmt.Errorf("nats.url is required")
)

// Duration is a time.Duration that unmarshals from either a duration
// string ("30s") or a nanosecond count.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		// parse numeric as nanoseconds
		*d = Duration(time.Duration(value))
		return nil
	case string:
		dur, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration: %w", err)
		}

		*d = Duration(dur)

		return nil
	default:
		return errInvalidDuration
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// NATSConfig holds the connection settings for the brok stream.
type NATSConfig struct {
	URL           string `json:"url"`
	Stream        string `json:"stream"`
	Subject       string `json:"subject"`
	ConsumerName  string `json:"consumer_name"`
	ResyncSubject string `json:"resync_subject"`
}

// LiveStateConfig holds the framework status poller settings.
type LiveStateConfig struct {
	Endpoint     string   `json:"endpoint"`
	PollInterval Duration `json:"poll_interval"`
	EventsCount  int      `json:"events_count"`
}

// BrokviewConfig is the top-level service configuration.
type BrokviewConfig struct {
	NATS      NATSConfig      `json:"nats"`
	LiveState LiveStateConfig `json:"livestate"`
	Logging   *logger.Config  `json:"logging,omitempty"`

	// Duplicate program_status broks inside this window are treated as
	// retransmissions of the same dump, not a real restart.
	DuplicateDumpWindow Duration `json:"duplicate_dump_window"`

	// Minimum delay between two NeedData requests for the same unknown
	// instance.
	ResyncRequestWindow Duration `json:"resync_request_window"`

	// How long a writer may wait on active readers before the stuck-writer
	// diagnostic is logged.
	StuckWriterWarning Duration `json:"stuck_writer_warning"`
}

// Validate checks the settings that have no usable default.
func (c *BrokviewConfig) Validate() error {
	if c.NATS.URL == "" {
		return errNATSURLRequired
	}

	return nil
}

// Defaults fills in zero-valued settings. The 60s windows guard against
// resync storms after scheduler restarts.
func (c *BrokviewConfig) Defaults() {
	if c.DuplicateDumpWindow == 0 {
		c.DuplicateDumpWindow = Duration(60 * time.Second)
	}

	if c.ResyncRequestWindow == 0 {
		c.ResyncRequestWindow = Duration(60 * time.Second)
	}

	if c.StuckWriterWarning == 0 {
		c.StuckWriterWarning = Duration(30 * time.Second)
	}

	if c.LiveState.PollInterval == 0 {
		c.LiveState.PollInterval = Duration(10 * time.Second)
	}

	if c.LiveState.EventsCount == 0 {
		c.LiveState.EventsCount = 100
	}

	if c.NATS.Stream == "" {
		c.NATS.Stream = "broks"
	}

	if c.NATS.Subject == "" {
		c.NATS.Subject = "broks.>"
	}

	if c.NATS.ConsumerName == "" {
		c.NATS.ConsumerName = "brokview"
	}

	if c.NATS.ResyncSubject == "" {
		c.NATS.ResyncSubject = "broks.needdata"
	}
}
