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
	"testing"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/brokview/pkg/logger"
	"github.com/carverauto/brokview/pkg/models"
)

func runJetStreamServer(t *testing.T) *server.Server {
	t.Helper()

	srv, err := server.NewServer(&server.Options{
		Host:      "127.0.0.1",
		Port:      -1,
		JetStream: true,
		StoreDir:  t.TempDir(),
	})
	require.NoError(t, err)

	go srv.Start()

	if !srv.ReadyForConnections(10 * time.Second) {
		srv.Shutdown()
		t.Fatalf("embedded NATS server not ready for connections")
	}

	require.Eventually(t, func() bool {
		return srv.JetStreamEnabled()
	}, 5*time.Second, 50*time.Millisecond, "embedded NATS server not ready for JetStream")

	t.Cleanup(srv.Shutdown)

	return srv
}

func TestBrokConsumerFetch(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping embedded NATS test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	srv := runJetStreamServer(t)

	client, err := NewClient(srv.ClientURL())
	require.NoError(t, err)
	t.Cleanup(client.Close)

	_, err = client.EnsureStream(ctx, "broks", []string{"broks.>"})
	require.NoError(t, err)

	payload, err := json.Marshal(models.Brok{
		Type: models.BrokProgramStatus,
		Data: map[string]interface{}{"instance_id": "sched-1", "instance_name": "sched-1"},
	})
	require.NoError(t, err)

	_, err = client.JetStream().Publish(ctx, "broks.sched-1", payload)
	require.NoError(t, err)

	// A message that is not a brok must be dropped, not redelivered.
	_, err = client.JetStream().Publish(ctx, "broks.sched-1", []byte("not json"))
	require.NoError(t, err)

	consumer, err := NewBrokConsumer(ctx, client.JetStream(), "broks", "brokview", "broks.>", logger.NewTestLogger())
	require.NoError(t, err)

	broks, err := consumer.Fetch(ctx, 16)
	require.NoError(t, err)
	require.Len(t, broks, 1)
	require.Equal(t, models.BrokProgramStatus, broks[0].Type)
	require.Equal(t, "sched-1", broks[0].Data["instance_id"])

	// Both messages were acked; a second fetch comes back empty.
	broks, err = consumer.Fetch(ctx, 16)
	require.NoError(t, err)
	require.Empty(t, broks)
}

func TestResyncPublisherRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping embedded NATS test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	srv := runJetStreamServer(t)

	client, err := NewClient(srv.ClientURL())
	require.NoError(t, err)
	t.Cleanup(client.Close)

	stream, err := client.EnsureStream(ctx, "resync", []string{"broks.needdata"})
	require.NoError(t, err)

	pub := NewResyncPublisher(client.JetStream(), "broks.needdata")
	require.NoError(t, pub.RequestFullData(ctx, "sched-7"))

	raw, err := stream.GetMsg(ctx, 1)
	require.NoError(t, err)

	var msg models.NeedDataMessage
	require.NoError(t, json.Unmarshal(raw.Data, &msg))
	require.Equal(t, "NeedData", msg.Type)
	require.Equal(t, "sched-7", msg.Data.FullInstanceID)
	require.Equal(t, "WebUI", msg.Source)
}
