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

// feedspotter-addentry is a command for adding an item to a channel
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/lib/pq"
	"software.sslmate.com/src/feedspotter"
	"software.sslmate.com/src/feedspotter/internal/feeds"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage: feedspotter-addentry -config FILE -channel SLUG -title TITLE [OPTION...]")
	flag.PrintDefaults()
	os.Exit(2)
}

func main() {
	log.SetPrefix("feedspotter-addentry: ")
	log.SetFlags(0)

	item := new(feeds.NewItem)

	var flags struct {
		config    string
		published string
	}
	flag.StringVar(&flags.config, "config", "", "Path to configuration file")
	flag.StringVar(&item.Channel, "channel", "", "Slug of the channel to add the item to")
	flag.StringVar(&item.Title, "title", "", "Item title")
	flag.StringVar(&item.URL, "url", "", "URL of the page the item syndicates")
	flag.StringVar(&item.GUID, "guid", "", "Permanent identifier for the item (defaults to a feed-relative identifier)")
	flag.StringVar(&item.AuthorName, "author", "", "Author name")
	flag.StringVar(&item.AuthorEmail, "email", "", "Author email address")
	flag.StringVar(&item.AuthorURI, "author-uri", "", "Author home page")
	flag.Func("category", "Category term (repeatable)", func(arg string) error {
		item.Categories = append(item.Categories, arg)
		return nil
	})
	flag.StringVar(&item.Summary, "summary", "", "Item summary (HTML)")
	flag.StringVar(&item.Content, "content", "", "Item content (HTML)")
	flag.StringVar(&flags.published, "published", "", "Publication time in RFC 3339 format (defaults to now)")
	flag.Usage = usage
	flag.Parse()

	if flags.config == "" || item.Channel == "" || item.Title == "" {
		usage()
	}
	if flags.published != "" {
		published, err := time.Parse(time.RFC3339, flags.published)
		if err != nil {
			log.Fatalf("invalid -published value: %s", err)
		}
		item.PublishedAt = published
	}

	configData, err := os.ReadFile(flags.config)
	if err != nil {
		log.Fatal(err)
	}
	var cfg struct {
		Database string
	}
	if err := json.Unmarshal(configData, &cfg); err != nil {
		log.Fatal(err)
	}

	if db, err := sql.Open("postgres", cfg.Database); err == nil {
		feedspotter.DB = db
	} else {
		log.Fatal(err)
	}
	defer feedspotter.DB.Close()

	if err := feeds.Insert(context.Background(), item); err != nil {
		log.Fatal(err)
	}
}
