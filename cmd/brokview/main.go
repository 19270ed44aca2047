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

package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/carverauto/brokview/pkg/config"
	"github.com/carverauto/brokview/pkg/livestate"
	"github.com/carverauto/brokview/pkg/logger"
	"github.com/carverauto/brokview/pkg/models"
	"github.com/carverauto/brokview/pkg/natsutil"
	"github.com/carverauto/brokview/pkg/regen"
)

func main() {
	configPath := flag.String("config", "/etc/brokview/brokview.json", "Path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run(configPath string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg models.BrokviewConfig

	loader := config.NewConfig(nil)
	if err := loader.LoadAndValidate(ctx, configPath, &cfg); err != nil {
		return err
	}

	cfg.Defaults()

	loggerConfig := cfg.Logging
	if loggerConfig == nil {
		loggerConfig = logger.DefaultConfig()
	}

	if err := logger.Init(loggerConfig); err != nil {
		return err
	}

	lg := logger.Root()

	client, err := natsutil.NewClient(cfg.NATS.URL)
	if err != nil {
		return err
	}
	defer client.Close()

	if _, err := client.EnsureStream(ctx, cfg.NATS.Stream, []string{cfg.NATS.Subject}); err != nil {
		return err
	}

	consumer, err := natsutil.NewBrokConsumer(
		ctx, client.JetStream(), cfg.NATS.Stream, cfg.NATS.ConsumerName, cfg.NATS.Subject, lg)
	if err != nil {
		return err
	}

	r := regen.New(&cfg, lg)
	r.LoadExternalQueue(natsutil.NewResyncPublisher(client.JetStream(), cfg.NATS.ResyncSubject))

	if cfg.LiveState.Endpoint != "" {
		poller := livestate.NewPoller(&cfg.LiveState, lg)
		go poller.Run(ctx)
	}

	lg.Info().
		Str("stream", cfg.NATS.Stream).
		Str("subject", cfg.NATS.Subject).
		Msg("Starting brok ingestion")

	return r.Drain(ctx, consumer)
}
