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

// Package feeds renders the channels in Feed Spotter's database as Atom
// documents.
package feeds

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/lib/pq"
	"software.sslmate.com/src/feedspotter"
	"software.sslmate.com/src/feedspotter/internal/atom"
	"src.agwa.name/go-dbutil"
)

const maxFeedItems = 10_000

// ErrNoChannel is returned when no enabled channel has the requested slug.
var ErrNoChannel = errors.New("no such channel")

type channelRow struct {
	ChannelID int32  `sql:"channel_id"`
	Slug      string `sql:"slug"`
	Title     string `sql:"title"`
	Subtitle  string `sql:"subtitle"`
	SiteURL   string `sql:"site_url"`
	Rights    string `sql:"rights"`
}

type itemRow struct {
	ItemID      int64          `sql:"item_id"`
	Title       string         `sql:"title"`
	URL         string         `sql:"url"`
	GUID        string         `sql:"guid"`
	AuthorName  string         `sql:"author_name"`
	AuthorEmail string         `sql:"author_email"`
	AuthorURI   string         `sql:"author_uri"`
	Categories  pq.StringArray `sql:"categories"`
	Summary     string         `sql:"summary"`
	Content     string         `sql:"content"`
	PublishedAt time.Time      `sql:"published_at"`
	UpdatedAt   time.Time      `sql:"updated_at"`
}

// FeedURL returns the URL at which the channel's Atom document is served.
func FeedURL(slug string) string {
	return "https://feeds." + feedspotter.Domain + "/" + slug + ".atom"
}

func getChannel(ctx context.Context, slug string) (channelRow, error) {
	var rows []channelRow
	if err := dbutil.QueryAll(ctx, feedspotter.DB, &rows, `SELECT channel_id, slug, title, coalesce(subtitle,'') AS subtitle, coalesce(site_url,'') AS site_url, coalesce(rights,'') AS rights FROM channel WHERE slug = $1 AND enabled`, slug); err != nil {
		return channelRow{}, fmt.Errorf("error querying channel %q: %w", slug, err)
	}
	if len(rows) == 0 {
		return channelRow{}, ErrNoChannel
	}
	return rows[0], nil
}

func getItems(ctx context.Context, channelID int32) ([]itemRow, error) {
	var rows []itemRow
	if err := dbutil.QueryAll(ctx, feedspotter.DB, &rows, `SELECT item_id, title, coalesce(url,'') AS url, coalesce(guid,'') AS guid, coalesce(author_name,'') AS author_name, coalesce(author_email,'') AS author_email, coalesce(author_uri,'') AS author_uri, categories, coalesce(summary,'') AS summary, coalesce(content,'') AS content, published_at, updated_at FROM item WHERE channel_id = $1 ORDER BY published_at DESC, item_id DESC LIMIT `+strconv.FormatInt(maxFeedItems, 10), channelID); err != nil {
		return nil, fmt.Errorf("error querying items for channel %d: %w", channelID, err)
	}
	return rows, nil
}

func generator() *atom.Generator {
	gen := atom.NewGenerator("Feed Spotter").URI("https://" + feedspotter.Domain + "/")
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		gen.Version(info.Main.Version)
	}
	return gen
}

func buildEntry(feedURL string, item itemRow) *atom.Entry {
	entry := atom.NewEntry(item.Title).
		Published(item.PublishedAt).
		Updated(item.UpdatedAt)
	if item.URL != "" {
		entry.URI(item.URL)
	}
	if item.GUID != "" {
		entry.ID(item.GUID)
	} else {
		entry.ID(fmt.Sprintf("%s#%d", feedURL, item.ItemID))
	}
	if item.AuthorName != "" {
		author := atom.NewPerson(item.AuthorName)
		if item.AuthorURI != "" {
			author.URI(item.AuthorURI)
		}
		if item.AuthorEmail != "" {
			author.Email(item.AuthorEmail)
		}
		entry.Authors([]*atom.Person{author})
	}
	if len(item.Categories) > 0 {
		entry.Categories(item.Categories)
	}
	if item.Summary != "" {
		entry.Summary(item.Summary)
	}
	if item.Content != "" {
		entry.Content(item.Content)
	}
	return entry
}

func buildFeed(channel channelRow, items []itemRow) *atom.Feed {
	feedURL := FeedURL(channel.Slug)
	builder := atom.NewFeed(channel.Title).
		Generator(generator()).
		SelfURI(feedURL).
		ID(feedURL)
	if channel.SiteURL != "" {
		builder.URI(channel.SiteURL)
	}
	if channel.Subtitle != "" {
		builder.Subtitle(channel.Subtitle)
	}
	if channel.Rights != "" {
		builder.Rights(channel.Rights)
	}

	entries := make([]*atom.Entry, 0, len(items))
	var latest time.Time
	for _, item := range items {
		if item.UpdatedAt.After(latest) {
			latest = item.UpdatedAt
		}
		entries = append(entries, buildEntry(feedURL, item))
	}
	if latest.IsZero() {
		latest = time.Now().UTC()
	}
	builder.Updated(latest)
	builder.Entries(entries)

	return builder.Build()
}

// Render returns the channel's Atom document.  It returns ErrNoChannel
// if no enabled channel has the given slug.
func Render(ctx context.Context, slug string) ([]byte, error) {
	channel, err := getChannel(ctx, slug)
	if err != nil {
		return nil, err
	}
	items, err := getItems(ctx, channel.ChannelID)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := buildFeed(channel, items).WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("error writing feed document for channel %q: %w", slug, err)
	}
	return buf.Bytes(), nil
}

// Channels returns the slugs of all enabled channels.
func Channels(ctx context.Context) ([]string, error) {
	var slugs []string
	if err := dbutil.QueryAll(ctx, feedspotter.DB, &slugs, `SELECT slug FROM channel WHERE enabled ORDER BY slug`); err != nil {
		return nil, fmt.Errorf("error querying channels: %w", err)
	}
	return slugs, nil
}
