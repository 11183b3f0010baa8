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
	"encoding/xml"
	"io"
	"time"
)

// Namespace is the XML namespace of Atom 1.0 documents.
const Namespace = "http://www.w3.org/2005/Atom"

// WriteTo writes the feed to w as a complete Atom document and returns
// the number of bytes written.  Element order is fixed, so writing the
// same feed twice produces identical output.  The first write error
// aborts the operation and is returned; w is then left holding a
// partially written document which the caller should discard.
func (f *Feed) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	enc := xml.NewEncoder(cw)
	err := f.write(enc)
	if err == nil {
		err = enc.Flush()
	}
	return cw.n, err
}

func (f *Feed) write(enc *xml.Encoder) error {
	if err := enc.EncodeToken(xml.ProcInst{Target: "xml", Inst: []byte(`version="1.0" encoding="utf-8"`)}); err != nil {
		return err
	}

	feed := xml.StartElement{
		Name: xml.Name{Local: "feed"},
		Attr: []xml.Attr{attr("xmlns", Namespace)},
	}
	if err := enc.EncodeToken(feed); err != nil {
		return err
	}

	if f.generator != nil {
		if err := f.generator.write(enc); err != nil {
			return err
		}
	}

	if f.selfURI != nil {
		link := xml.StartElement{
			Name: xml.Name{Local: "link"},
			Attr: []xml.Attr{
				attr("href", *f.selfURI),
				attr("rel", "self"),
				attr("type", "application/atom+xml"),
			},
		}
		if err := writeEmpty(enc, link); err != nil {
			return err
		}
	}

	if f.uri != nil {
		link := xml.StartElement{
			Name: xml.Name{Local: "link"},
			Attr: []xml.Attr{
				attr("href", *f.uri),
				attr("rel", "alternate"),
				attr("type", "text/html"),
			},
		}
		if err := writeEmpty(enc, link); err != nil {
			return err
		}
	}

	if f.published != nil {
		if err := writeText(enc, "published", f.published.Format(time.RFC3339)); err != nil {
			return err
		}
	}

	if f.updated != nil {
		if err := writeText(enc, "updated", f.updated.Format(time.RFC3339)); err != nil {
			return err
		}
	}

	if f.id != nil {
		if err := writeText(enc, "id", *f.id); err != nil {
			return err
		}
	}

	if err := writeText(enc, "title", f.title); err != nil {
		return err
	}

	if f.subtitle != nil {
		if err := writeText(enc, "subtitle", *f.subtitle); err != nil {
			return err
		}
	}

	for _, entry := range f.entries {
		if err := entry.write(enc); err != nil {
			return err
		}
	}

	return enc.EncodeToken(feed.End())
}

func (e *Entry) write(enc *xml.Encoder) error {
	entry := xml.StartElement{Name: xml.Name{Local: "entry"}}
	if err := enc.EncodeToken(entry); err != nil {
		return err
	}

	if err := writeText(enc, "title", e.title); err != nil {
		return err
	}

	if e.uri != nil {
		link := xml.StartElement{
			Name: xml.Name{Local: "link"},
			Attr: []xml.Attr{
				attr("href", *e.uri),
				attr("rel", "alternate"),
				attr("type", "text/html"),
				attr("title", e.title),
			},
		}
		if err := writeEmpty(enc, link); err != nil {
			return err
		}
	}

	if e.published != nil {
		if err := writeText(enc, "published", e.published.Format(time.RFC3339)); err != nil {
			return err
		}
	}

	if e.updated != nil {
		if err := writeText(enc, "updated", e.updated.Format(time.RFC3339)); err != nil {
			return err
		}
	}

	if e.id != nil {
		if err := writeText(enc, "id", *e.id); err != nil {
			return err
		}
	}

	for _, author := range e.authors {
		if err := author.write(enc, "author"); err != nil {
			return err
		}
	}

	for _, contributor := range e.contributors {
		if err := contributor.write(enc, "contributor"); err != nil {
			return err
		}
	}

	for _, category := range e.categories {
		el := xml.StartElement{
			Name: xml.Name{Local: "category"},
			Attr: []xml.Attr{attr("term", category)},
		}
		if err := writeEmpty(enc, el); err != nil {
			return err
		}
	}

	if e.summary != nil {
		if err := writeText(enc, "summary", *e.summary, attr("type", "html")); err != nil {
			return err
		}
	}

	if e.content != nil {
		if err := writeText(enc, "content", *e.content, attr("type", "html")); err != nil {
			return err
		}
	}

	return enc.EncodeToken(entry.End())
}

// write writes the person's elements inside a wrapping element (author
// or contributor) named by wrapper.
func (p *Person) write(enc *xml.Encoder, wrapper string) error {
	el := xml.StartElement{Name: xml.Name{Local: wrapper}}
	if err := enc.EncodeToken(el); err != nil {
		return err
	}

	if err := writeText(enc, "name", p.name); err != nil {
		return err
	}

	if p.uri != nil {
		if err := writeText(enc, "uri", *p.uri); err != nil {
			return err
		}
	}

	if p.email != nil {
		if err := writeText(enc, "email", *p.email); err != nil {
			return err
		}
	}

	return enc.EncodeToken(el.End())
}

func (g *Generator) write(enc *xml.Encoder) error {
	el := xml.StartElement{Name: xml.Name{Local: "generator"}}
	if g.uri != nil {
		el.Attr = append(el.Attr, attr("uri", *g.uri))
	}
	if g.version != nil {
		el.Attr = append(el.Attr, attr("version", *g.version))
	}

	if err := enc.EncodeToken(el); err != nil {
		return err
	}
	if err := enc.EncodeToken(xml.CharData(g.name)); err != nil {
		return err
	}
	return enc.EncodeToken(el.End())
}

func attr(name, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: value}
}

func writeEmpty(enc *xml.Encoder, el xml.StartElement) error {
	if err := enc.EncodeToken(el); err != nil {
		return err
	}
	return enc.EncodeToken(el.End())
}

func writeText(enc *xml.Encoder, name, text string, attrs ...xml.Attr) error {
	el := xml.StartElement{Name: xml.Name{Local: name}, Attr: attrs}
	if err := enc.EncodeToken(el); err != nil {
		return err
	}
	if err := enc.EncodeToken(xml.CharData(text)); err != nil {
		return err
	}
	return enc.EncodeToken(el.End())
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
