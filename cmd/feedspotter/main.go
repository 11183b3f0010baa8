// Copyright (C) 2025 Opsmate, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a
// copy of this software and associated documentation files (the "Software"),
// to deal in the Software without restriction, including without limitation
// the rights to use, copy, modify, merge, publish, distribute, sublicense,
// and/or sell copies of the Software, and to permit persons to whom the
// Software is furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included
// in all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL
// THE AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR
// OTHER LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE,
// ARISING FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR
// OTHER DEALINGS IN THE SOFTWARE.
//
// Except as contained in this notice, the name(s) of the above copyright
// holders shall not be used in advertising or otherwise to promote the
// sale, use or other dealings in this Software without prior written
// authorization.

// feedspotter is a daemon that publishes database-backed channels as Atom feeds
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/lib/pq"
	"golang.org/x/sync/errgroup"
	"software.sslmate.com/src/feedspotter"
	"software.sslmate.com/src/feedspotter/internal/archive"
	"software.sslmate.com/src/feedspotter/internal/feeds"
	"src.agwa.name/go-listener"
	_ "src.agwa.name/go-listener/tls"
)

const (
	archiveInterval = 1 * time.Hour
	dbChannelName   = `feed_events`
)

var (
	dbListener     *pq.Listener
	channelSignals = make(map[string]signal)
)

type signal chan struct{}

func makeSignal() signal {
	return make(chan struct{}, 1)
}

func (s signal) raise() {
	select {
	case s <- struct{}{}:
	default:
	}
}

func snapshotChannel(ctx context.Context, slug string, wakeup <-chan struct{}) error {
	for {
		data, err := feeds.Render(ctx, slug)
		if err != nil {
			return err
		}
		if err := archive.Put(ctx, slug, data); err != nil {
			return err
		}
		if err := sleep(ctx, archiveInterval, wakeup); err != nil {
			return err
		}
	}
}

func handleNotifications(ctx context.Context) error {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			// ping server to force a reconnection if connection is broken
			dbListener.Ping()
		case n := <-dbListener.Notify:
			handleNotification(n)
		}
	}
}

func handleNotification(n *pq.Notification) {
	if n == nil {
		// Database connection was re-established, so we may have missed notifications
		// Don't do anything; just wait for stuff to happen on its normal schedule
		return
	}

	var payload struct {
		Channel string
		Event   string
	}
	if err := json.Unmarshal([]byte(n.Extra), &payload); err != nil {
		log.Printf("Ignoring malformed database notification: %s", err)
		return
	}

	signal, ok := channelSignals[payload.Channel]
	if !ok {
		log.Printf("Ignoring database notification for unknown channel %q", payload.Channel)
		return
	}

	switch payload.Event {
	case "new_item":
		signal.raise()
	default:
		log.Printf("Ignoring database notification with unknown event %q", payload.Event)
	}
}

func main() {
	var flags struct {
		config string
		listen []string
	}
	flag.StringVar(&flags.config, "config", "", "Path to configuration file")
	flag.Func("listen", "Socket for HTTP server, in go-listener syntax (repeatable)", func(arg string) error {
		flags.listen = append(flags.listen, arg)
		return nil
	})
	flag.Parse()

	if flags.config == "" {
		log.Fatal("-config flag not provided")
	}
	configData, err := os.ReadFile(flags.config)
	if err != nil {
		log.Fatal(err)
	}
	var cfg struct {
		Domain   string
		Database string
		Archive  struct {
			Bucket string
		}
	}
	if err := json.Unmarshal(configData, &cfg); err != nil {
		log.Fatal(err)
	}

	feedspotter.Domain = cfg.Domain
	feedspotter.DBAddress = cfg.Database

	if db, err := sql.Open("postgres", cfg.Database); err == nil {
		feedspotter.DB = db
	} else {
		log.Fatal(err)
	}
	defer feedspotter.DB.Close()

	dbListener = pq.NewListener(cfg.Database, 5*time.Second, 2*time.Minute, nil)
	if err := dbListener.Listen(dbChannelName); err != nil {
		log.Fatal(err)
	}

	if cfg.Archive.Bucket != "" {
		awsCfg, err := config.LoadDefaultConfig(context.Background())
		if err != nil {
			log.Fatal(err)
		}
		archive.AWSConfig = awsCfg
		archive.Bucket = cfg.Archive.Bucket
	}

	channels, err := feeds.Channels(context.Background())
	if err != nil {
		log.Fatal(err)
	}

	httpListeners, err := listener.OpenAll(flags.listen)
	if err != nil {
		log.Fatal(err)
	}
	defer listener.CloseAll(httpListeners)

	httpServer := newHTTPServer()

	group, ctx := errgroup.WithContext(context.Background())
	for _, slug := range channels {
		signal := makeSignal()
		channelSignals[slug] = signal
		if archive.Enabled() {
			group.Go(func() error {
				return snapshotChannel(ctx, slug, signal)
			})
		}
	}
	group.Go(func() error {
		return handleNotifications(ctx)
	})
	for _, listener := range httpListeners {
		go func() {
			log.Fatal(httpServer.Serve(listener))
		}()
	}
	log.Fatal(group.Wait())
}

func sleep(ctx context.Context, duration time.Duration, wakeup <-chan struct{}) error {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	case <-wakeup:
		return nil
	}
}
