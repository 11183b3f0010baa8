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
	"bytes"
	"strings"
	"testing"
	"time"

	"software.sslmate.com/src/feedspotter"
)

func init() {
	feedspotter.Domain = "feedspotter.example"
}

func renderFeed(t *testing.T, channel channelRow, items []itemRow) string {
	t.Helper()
	var buf bytes.Buffer
	if _, err := buildFeed(channel, items).WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: error: %s", err)
	}
	return buf.String()
}

func TestFeedURL(t *testing.T) {
	result := FeedURL("news")
	expected := "https://feeds.feedspotter.example/news.atom"
	if result != expected {
		t.Errorf("FeedURL(\"news\") = %q; want %q", result, expected)
	}
}

func TestBuildFeedLinks(t *testing.T) {
	channel := channelRow{
		ChannelID: 1,
		Slug:      "news",
		Title:     "Example News",
		SiteURL:   "https://example.com/news",
	}
	result := renderFeed(t, channel, nil)

	selfLink := `<link href="https://feeds.feedspotter.example/news.atom" rel="self" type="application/atom+xml"></link>`
	alternateLink := `<link href="https://example.com/news" rel="alternate" type="text/html"></link>`
	if !strings.Contains(result, selfLink) {
		t.Errorf("output %q missing self link %q", result, selfLink)
	}
	if !strings.Contains(result, alternateLink) {
		t.Errorf("output %q missing alternate link %q", result, alternateLink)
	}
	if !strings.Contains(result, "<id>https://feeds.feedspotter.example/news.atom</id>") {
		t.Errorf("output %q missing feed id", result)
	}
	if strings.Index(result, `rel="self"`) > strings.Index(result, `rel="alternate"`) {
		t.Errorf("self link after alternate link: %q", result)
	}
}

func TestBuildFeedOmitsEmptyFields(t *testing.T) {
	channel := channelRow{ChannelID: 1, Slug: "bare", Title: "Bare"}
	result := renderFeed(t, channel, nil)

	if strings.Contains(result, `rel="alternate"`) {
		t.Errorf("channel without site_url got an alternate link: %q", result)
	}
	if strings.Contains(result, "<subtitle>") {
		t.Errorf("channel without subtitle got a subtitle: %q", result)
	}
}

func TestBuildEntry(t *testing.T) {
	published := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	item := itemRow{
		ItemID:      7,
		Title:       "Hello",
		URL:         "https://example.com/news/hello",
		AuthorName:  "Alice",
		AuthorEmail: "alice@example.com",
		Categories:  []string{"go", "releases"},
		Summary:     "A greeting",
		PublishedAt: published,
		UpdatedAt:   published,
	}
	channel := channelRow{ChannelID: 1, Slug: "news", Title: "News"}
	result := renderFeed(t, channel, []itemRow{item})

	for _, expected := range []string{
		`<title>Hello</title>`,
		`<link href="https://example.com/news/hello" rel="alternate" type="text/html" title="Hello"></link>`,
		`<published>2025-03-01T09:00:00Z</published>`,
		`<id>https://feeds.feedspotter.example/news.atom#7</id>`,
		`<author><name>Alice</name><email>alice@example.com</email></author>`,
		`<category term="go"></category><category term="releases"></category>`,
		`<summary type="html">A greeting</summary>`,
	} {
		if !strings.Contains(result, expected) {
			t.Errorf("output %q missing %q", result, expected)
		}
	}
}

func TestBuildEntryGUID(t *testing.T) {
	item := itemRow{
		ItemID:      7,
		Title:       "Hello",
		GUID:        "urn:example:hello",
		PublishedAt: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
	}
	channel := channelRow{ChannelID: 1, Slug: "news", Title: "News"}
	result := renderFeed(t, channel, []itemRow{item})

	if !strings.Contains(result, "<id>urn:example:hello</id>") {
		t.Errorf("output %q missing explicit guid", result)
	}
	if strings.Contains(result, "news.atom#7") {
		t.Errorf("output %q contains fallback id despite explicit guid", result)
	}
}

func TestBuildFeedUpdated(t *testing.T) {
	channel := channelRow{ChannelID: 1, Slug: "news", Title: "News"}
	items := []itemRow{
		{ItemID: 1, Title: "older", PublishedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), UpdatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ItemID: 2, Title: "newer", PublishedAt: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), UpdatedAt: time.Date(2025, 2, 2, 12, 0, 0, 0, time.UTC)},
	}
	result := renderFeed(t, channel, items)

	if !strings.Contains(result, "<updated>2025-02-02T12:00:00Z</updated>") {
		t.Errorf("output %q missing latest update time", result)
	}
}

func TestBuildFeedOrder(t *testing.T) {
	channel := channelRow{ChannelID: 1, Slug: "news", Title: "News"}
	now := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	items := []itemRow{
		{ItemID: 3, Title: "third", PublishedAt: now, UpdatedAt: now},
		{ItemID: 2, Title: "second", PublishedAt: now, UpdatedAt: now},
		{ItemID: 1, Title: "first", PublishedAt: now, UpdatedAt: now},
	}
	result := renderFeed(t, channel, items)

	prev := -1
	for _, title := range []string{"third", "second", "first"} {
		i := strings.Index(result, "<title>"+title+"</title>")
		if i < 0 {
			t.Fatalf("output %q missing item %q", result, title)
		}
		if i < prev {
			t.Errorf("item %q out of order in output %q", title, result)
		}
		prev = i
	}
}
