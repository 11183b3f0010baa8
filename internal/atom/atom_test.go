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

package atom

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

func render(t *testing.T, feed *Feed) string {
	t.Helper()
	var buf bytes.Buffer
	n, err := feed.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo: error: %s", err)
	}
	if n != int64(buf.Len()) {
		t.Fatalf("WriteTo: returned %d bytes but wrote %d", n, buf.Len())
	}
	return buf.String()
}

func TestMinimalFeed(t *testing.T) {
	feed := NewFeed("Release Notes").Build()
	result := render(t, feed)
	expected := `<?xml version="1.0" encoding="utf-8"?><feed xmlns="http://www.w3.org/2005/Atom"><title>Release Notes</title></feed>`
	if result != expected {
		t.Errorf("minimal feed = %q; want %q", result, expected)
	}
}

func TestFeedWithOneEntry(t *testing.T) {
	entry := NewEntry("Hello").Authors([]*Person{NewPerson("Alice")})
	feed := NewFeed("Test Feed").
		ID("urn:test:1").
		Entries([]*Entry{entry}).
		Build()
	result := render(t, feed)
	expected := `<?xml version="1.0" encoding="utf-8"?><feed xmlns="http://www.w3.org/2005/Atom"><id>urn:test:1</id><title>Test Feed</title><entry><title>Hello</title><author><name>Alice</name></author></entry></feed>`
	if result != expected {
		t.Errorf("feed = %q; want %q", result, expected)
	}
}

func TestFullFeed(t *testing.T) {
	published := time.Date(2023, 1, 15, 10, 30, 0, 0, time.UTC)
	updated := time.Date(2023, 1, 16, 11, 0, 0, 0, time.UTC)

	alice := NewPerson("Alice").URI("https://alice.example/").Email("alice@example.com")
	entry := NewEntry("First Post").
		URI("https://example.com/news/first").
		Published(published).
		Updated(updated).
		ID("urn:entry:1").
		Authors([]*Person{alice}).
		Contributors([]*Person{NewPerson("Bob")}).
		Categories([]string{"go", "releases"}).
		Summary("An <b>intro</b>").
		Content("Hello, <em>world</em>")

	feed := NewFeed("Example News").
		Generator(NewGenerator("Feed Spotter").URI("https://feedspotter.example/").Version("0.3.1")).
		SelfURI("https://feeds.example.com/news.atom").
		URI("https://example.com/news").
		Published(published).
		Updated(updated).
		ID("urn:feed:news").
		Subtitle("All the news").
		Rights("Copyright 2023 Example").
		Entries([]*Entry{entry}).
		Build()

	result := render(t, feed)
	expected := `<?xml version="1.0" encoding="utf-8"?>` +
		`<feed xmlns="http://www.w3.org/2005/Atom">` +
		`<generator uri="https://feedspotter.example/" version="0.3.1">Feed Spotter</generator>` +
		`<link href="https://feeds.example.com/news.atom" rel="self" type="application/atom+xml"></link>` +
		`<link href="https://example.com/news" rel="alternate" type="text/html"></link>` +
		`<published>2023-01-15T10:30:00Z</published>` +
		`<updated>2023-01-16T11:00:00Z</updated>` +
		`<id>urn:feed:news</id>` +
		`<title>Example News</title>` +
		`<subtitle>All the news</subtitle>` +
		`<entry>` +
		`<title>First Post</title>` +
		`<link href="https://example.com/news/first" rel="alternate" type="text/html" title="First Post"></link>` +
		`<published>2023-01-15T10:30:00Z</published>` +
		`<updated>2023-01-16T11:00:00Z</updated>` +
		`<id>urn:entry:1</id>` +
		`<author><name>Alice</name><uri>https://alice.example/</uri><email>alice@example.com</email></author>` +
		`<contributor><name>Bob</name></contributor>` +
		`<category term="go"></category>` +
		`<category term="releases"></category>` +
		`<summary type="html">An &lt;b&gt;intro&lt;/b&gt;</summary>` +
		`<content type="html">Hello, &lt;em&gt;world&lt;/em&gt;</content>` +
		`</entry>` +
		`</feed>`
	if result != expected {
		t.Errorf("full feed = %q; want %q", result, expected)
	}
}

func TestRightsNotWritten(t *testing.T) {
	feed := NewFeed("Quiet Feed").Rights("All rights reserved").Build()
	result := render(t, feed)
	if strings.Contains(result, "rights") || strings.Contains(result, "reserved") {
		t.Errorf("rights statement leaked into output: %q", result)
	}
}

func TestEntryOrder(t *testing.T) {
	entries := []*Entry{NewEntry("first"), NewEntry("second"), NewEntry("third")}
	feed := NewFeed("Ordered").Entries(entries).Build()
	result := render(t, feed)

	if n := strings.Count(result, "<entry>"); n != 3 {
		t.Errorf("got %d entries; want 3", n)
	}
	prev := -1
	for _, title := range []string{"first", "second", "third"} {
		i := strings.Index(result, "<title>"+title+"</title>")
		if i < 0 {
			t.Errorf("entry %q missing from output %q", title, result)
			return
		}
		if i < prev {
			t.Errorf("entry %q out of order in output %q", title, result)
		}
		prev = i
	}
}

func TestEscaping(t *testing.T) {
	feed := NewFeed(`Tom & Jerry <"spies">`).Build()
	result := render(t, feed)
	expected := `<?xml version="1.0" encoding="utf-8"?><feed xmlns="http://www.w3.org/2005/Atom"><title>Tom &amp; Jerry &lt;&#34;spies&#34;&gt;</title></feed>`
	if result != expected {
		t.Errorf("escaped feed = %q; want %q", result, expected)
	}
}

func TestAttributeEscaping(t *testing.T) {
	entry := NewEntry("Q&A").URI(`https://example.com/?q=a&b="c"`)
	feed := NewFeed("Attrs").Entries([]*Entry{entry}).Build()
	result := render(t, feed)
	expected := `<link href="https://example.com/?q=a&amp;b=&#34;c&#34;" rel="alternate" type="text/html" title="Q&amp;A"></link>`
	if !strings.Contains(result, expected) {
		t.Errorf("output %q missing escaped link %q", result, expected)
	}
}

func TestIdempotent(t *testing.T) {
	entry := NewEntry("Entry").
		URI("https://example.com/e").
		Updated(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	feed := NewFeed("Stable").
		ID("urn:stable").
		Entries([]*Entry{entry}).
		Build()

	var first, second bytes.Buffer
	if _, err := feed.WriteTo(&first); err != nil {
		t.Fatalf("first WriteTo: error: %s", err)
	}
	if _, err := feed.WriteTo(&second); err != nil {
		t.Fatalf("second WriteTo: error: %s", err)
	}
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Errorf("outputs differ: %q vs %q", first.String(), second.String())
	}
}

func TestTimestampOffsetPreserved(t *testing.T) {
	kolkata := time.FixedZone("IST", 5*3600+1800)
	feed := NewFeed("Offset").
		Published(time.Date(2023, 1, 15, 10, 30, 0, 0, kolkata)).
		Build()
	result := render(t, feed)
	expected := "<published>2023-01-15T10:30:00+05:30</published>"
	if !strings.Contains(result, expected) {
		t.Errorf("output %q missing %q", result, expected)
	}
	if strings.Contains(result, "Z</published>") {
		t.Errorf("offset was normalized to UTC: %q", result)
	}
}

func TestLinkOrder(t *testing.T) {
	feed := NewFeed("Links").
		SelfURI("https://feeds.example.com/links.atom").
		URI("https://example.com/links").
		Build()
	result := render(t, feed)

	self := strings.Index(result, `rel="self"`)
	alternate := strings.Index(result, `rel="alternate"`)
	if self < 0 || alternate < 0 {
		t.Fatalf("output %q missing a link", result)
	}
	if self > alternate {
		t.Errorf("self link after alternate link: %q", result)
	}
}

var errSink = errors.New("sink failed")

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errSink
}

func TestWriteError(t *testing.T) {
	feed := NewFeed("Doomed").Build()
	n, err := feed.WriteTo(failingWriter{})
	if !errors.Is(err, errSink) {
		t.Errorf("WriteTo: error = %v; want %v", err, errSink)
	}
	if n != 0 {
		t.Errorf("WriteTo: reported %d bytes written to failing writer", n)
	}
}
