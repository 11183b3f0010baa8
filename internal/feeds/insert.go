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

package feeds

import (
	"context"
	"fmt"
	"time"

	"github.com/lib/pq"
	"software.sslmate.com/src/feedspotter"
)

// NewItem describes an item to be added to a channel.  Title is
// required; empty optional fields are stored as NULL and omitted from
// the rendered feed.  A zero PublishedAt means "now".
type NewItem struct {
	Channel     string
	Title       string
	URL         string
	GUID        string
	AuthorName  string
	AuthorEmail string
	AuthorURI   string
	Categories  []string
	Summary     string
	Content     string
	PublishedAt time.Time
}

// Insert adds the item to its channel.  The database notifies the
// daemon, which re-archives the channel.
func Insert(ctx context.Context, item *NewItem) error {
	channel, err := getChannel(ctx, item.Channel)
	if err != nil {
		return err
	}
	if _, err := feedspotter.DB.ExecContext(ctx, `INSERT INTO item (channel_id, title, url, guid, author_name, author_email, author_uri, categories, summary, content, published_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, coalesce($11, now()), coalesce($11, now()))`,
		channel.ChannelID,
		item.Title,
		nullString(item.URL),
		nullString(item.GUID),
		nullString(item.AuthorName),
		nullString(item.AuthorEmail),
		nullString(item.AuthorURI),
		pq.Array(item.Categories),
		nullString(item.Summary),
		nullString(item.Content),
		nullTime(item.PublishedAt),
	); err != nil {
		return fmt.Errorf("error inserting item into channel %q: %w", item.Channel, err)
	}
	return nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}
