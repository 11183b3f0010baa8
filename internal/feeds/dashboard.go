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
	"embed"
	"errors"
	"log"
	"net/http"
	"strings"

	"software.sslmate.com/src/feedspotter/internal/archive"
	"software.sslmate.com/src/feedspotter/internal/dashboard"
)

//go:embed templates/*
var content embed.FS

var channelTemplate = dashboard.ParseTemplate(content, "templates/channel.html")

func (i *itemRow) PublishedAtString() string {
	return i.PublishedAt.UTC().Format("2006-01-02 15:04:05")
}

func (i *itemRow) CategoriesString() string {
	return strings.Join(i.Categories, ", ")
}

type channelPage struct {
	Channel    channelRow
	Items      []itemRow
	FeedURL    string
	ArchiveURL string
}

// ServeChannel serves the dashboard page for a single channel, listing
// its items.
func ServeChannel(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	slug := req.PathValue("channel")

	channel, err := getChannel(ctx, slug)
	if errors.Is(err, ErrNoChannel) {
		http.NotFound(w, req)
		return
	} else if err != nil {
		log.Printf("error loading channel %q: %s", slug, err)
		http.Error(w, "Internal Database Error", 500)
		return
	}

	items, err := getItems(ctx, channel.ChannelID)
	if err != nil {
		log.Printf("error loading items for channel %q: %s", slug, err)
		http.Error(w, "Internal Database Error", 500)
		return
	}

	page := &channelPage{
		Channel: channel,
		Items:   items,
		FeedURL: FeedURL(slug),
	}
	if archive.Enabled() {
		if url, err := archive.Presign(ctx, slug); err == nil {
			page.ArchiveURL = url
		} else {
			log.Printf("error presigning archive for channel %q: %s", slug, err)
		}
	}

	dashboard.ServePage(w, req, channel.Title, channelTemplate, page)
}
