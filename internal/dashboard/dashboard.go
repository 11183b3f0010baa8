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

// Package dashboard implements Feed Spotter's HTML dashboard
package dashboard

import (
	"context"
	"log"
	"net/http"
	"time"

	"software.sslmate.com/src/feedspotter"
	"src.agwa.name/go-dbutil"
)

type channelRow struct {
	Slug          string    `sql:"slug"`
	Title         string    `sql:"title"`
	Items         int64     `sql:"items"`
	LastPublished time.Time `sql:"last_published"`
}

func (c *channelRow) FeedURL() string {
	return "https://feeds." + feedspotter.Domain + "/" + c.Slug + ".atom"
}

func (c *channelRow) LastPublishedString() string {
	if c.LastPublished.Unix() <= 0 {
		return "never"
	}
	return c.LastPublished.UTC().Format("2006-01-02 15:04:05")
}

type home struct {
	Channels []channelRow
}

func loadHome(ctx context.Context) (*home, error) {
	h := new(home)
	if err := dbutil.QueryAll(ctx, feedspotter.DB, &h.Channels, `
		SELECT
			channel.slug AS slug,
			channel.title AS title,
			count(item.item_id) AS items,
			coalesce(max(item.published_at), 'epoch') AS last_published
		FROM channel
		LEFT JOIN item USING (channel_id)
		WHERE channel.enabled
		GROUP BY channel.channel_id
		ORDER BY channel.slug
	`); err != nil {
		return nil, err
	}
	return h, nil
}

// ServeHome serves the dashboard's home page, which lists the enabled
// channels.
func ServeHome(w http.ResponseWriter, req *http.Request) {
	h, err := loadHome(req.Context())
	if err != nil {
		log.Printf("error loading dashboard: %s", err)
		http.Error(w, "Internal Database Error", 500)
		return
	}
	ServePage(w, req, "Channels", homeTemplate, h)
}
