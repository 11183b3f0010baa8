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

// Package atom builds Atom 1.0 feed documents and writes them as XML.
//
// A Feed is assembled with NewFeed and the FeedBuilder's setters, which
// can be chained, and finalized with Build.  Entry, Person, and Generator
// are assembled the same way but need no finalizing step.  Once built, a
// Feed is not modified; it can be written any number of times and from
// multiple goroutines.
package atom

import "time"

// Feed is an Atom feed document.  Feeds are created by a FeedBuilder and
// are immutable afterwards.
type Feed struct {
	generator *Generator
	published *time.Time
	updated   *time.Time
	uri       *string
	selfURI   *string
	id        *string
	title     string
	subtitle  *string
	rights    *string
	entries   []*Entry
}

// FeedBuilder assembles a Feed.  The setters return the builder so calls
// can be chained.  Setters cannot fail; the only required field, the
// title, is taken by NewFeed.
type FeedBuilder struct {
	feed Feed
}

// NewFeed returns a FeedBuilder for a feed with the given title.
func NewFeed(title string) *FeedBuilder {
	return &FeedBuilder{feed: Feed{title: title}}
}

// Generator sets the software that generated the feed.
func (b *FeedBuilder) Generator(generator *Generator) *FeedBuilder {
	b.feed.generator = generator
	return b
}

// URI sets the URI of the page which the feed syndicates, written as the
// feed's alternate link.
func (b *FeedBuilder) URI(uri string) *FeedBuilder {
	b.feed.uri = &uri
	return b
}

// SelfURI sets the URI at which the feed document itself is served,
// written as the feed's self link.
func (b *FeedBuilder) SelfURI(uri string) *FeedBuilder {
	b.feed.selfURI = &uri
	return b
}

// ID sets the feed's permanent, universally unique identifier.
func (b *FeedBuilder) ID(id string) *FeedBuilder {
	b.feed.id = &id
	return b
}

// Subtitle sets the feed's subtitle.
func (b *FeedBuilder) Subtitle(subtitle string) *FeedBuilder {
	b.feed.subtitle = &subtitle
	return b
}

// Rights sets the feed's rights statement.  The field is carried on the
// Feed but is not currently written to the output document.
func (b *FeedBuilder) Rights(rights string) *FeedBuilder {
	b.feed.rights = &rights
	return b
}

// Published sets the feed's publication time.  The time's offset is
// preserved verbatim in the output.
func (b *FeedBuilder) Published(published time.Time) *FeedBuilder {
	b.feed.published = &published
	return b
}

// Updated sets the time the feed was last modified.  The time's offset
// is preserved verbatim in the output.
func (b *FeedBuilder) Updated(updated time.Time) *FeedBuilder {
	b.feed.updated = &updated
	return b
}

// Entries sets the feed's entries.  Entries are written in the order
// given; callers wanting a reverse-chronological feed must sort first.
// The builder keeps the slice, so the caller must not modify it afterwards.
func (b *FeedBuilder) Entries(entries []*Entry) *FeedBuilder {
	b.feed.entries = entries
	return b
}

// Build finalizes and returns the Feed.
func (b *FeedBuilder) Build() *Feed {
	feed := b.feed
	return &feed
}

// Entry is an item within a Feed.  An Entry's setters return the Entry
// so calls can be chained.
type Entry struct {
	title        string
	uri          *string
	published    *time.Time
	updated      *time.Time
	id           *string
	categories   []string
	authors      []*Person
	contributors []*Person
	content      *string
	summary      *string
}

// NewEntry returns an Entry with the given title.
func NewEntry(title string) *Entry {
	return &Entry{title: title}
}

// URI sets the URI of the page the entry syndicates, written as the
// entry's alternate link.
func (e *Entry) URI(uri string) *Entry {
	e.uri = &uri
	return e
}

// ID sets the entry's permanent, universally unique identifier.
func (e *Entry) ID(id string) *Entry {
	e.id = &id
	return e
}

// Published sets the entry's publication time.
func (e *Entry) Published(published time.Time) *Entry {
	e.published = &published
	return e
}

// Updated sets the time the entry was last modified.
func (e *Entry) Updated(updated time.Time) *Entry {
	e.updated = &updated
	return e
}

// Categories sets the entry's category terms, written in the order given.
func (e *Entry) Categories(categories []string) *Entry {
	e.categories = categories
	return e
}

// Authors sets the entry's authors, written in the order given.
func (e *Entry) Authors(authors []*Person) *Entry {
	e.authors = authors
	return e
}

// Contributors sets the entry's contributors, written in the order given.
func (e *Entry) Contributors(contributors []*Person) *Entry {
	e.contributors = contributors
	return e
}

// Content sets the entry's content, which is treated as HTML.
func (e *Entry) Content(content string) *Entry {
	e.content = &content
	return e
}

// Summary sets the entry's summary, which is treated as HTML.
func (e *Entry) Summary(summary string) *Entry {
	e.summary = &summary
	return e
}

// Person is an Atom person construct, used for an Entry's authors and
// contributors.
type Person struct {
	name  string
	uri   *string
	email *string
}

// NewPerson returns a Person with the given name.
func NewPerson(name string) *Person {
	return &Person{name: name}
}

// URI sets the person's home page.
func (p *Person) URI(uri string) *Person {
	p.uri = &uri
	return p
}

// Email sets the person's email address.
func (p *Person) Email(email string) *Person {
	p.email = &email
	return p
}

// Generator identifies the software that generated a Feed.
type Generator struct {
	uri     *string
	version *string
	name    string
}

// NewGenerator returns a Generator with the given name.
func NewGenerator(name string) *Generator {
	return &Generator{name: name}
}

// URI sets the URI of the generating software.
func (g *Generator) URI(uri string) *Generator {
	g.uri = &uri
	return g
}

// Version sets the version of the generating software.
func (g *Generator) Version(version string) *Generator {
	g.version = &version
	return g
}
