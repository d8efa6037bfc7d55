// Package docmodel centralizes the split/parse workflow for post documents so
// that callers don't re-implement boundary handling and fallback rules.
package docmodel

import (
	"os"

	pberrors "git.home.luguber.info/inful/postbuilder/internal/errors"
	"git.home.luguber.info/inful/postbuilder/internal/frontmatter"
	"git.home.luguber.info/inful/postbuilder/internal/metadata"
)

// Document represents one content file split into frontmatter metadata and a
// Markdown body. It is never mutated after parsing; accessors return copies.
type Document struct {
	original []byte
	fields   frontmatter.Fields
	meta     *metadata.Model
	body     []byte
	hadFM    bool
	style    frontmatter.Style
}

// Parse parses raw file content into a Document.
//
// Malformed frontmatter (missing closing delimiter, unparseable metadata
// block) is recovered: the document simply has no metadata and the full
// original text as body.
func Parse(content []byte) *Document {
	fields, body, had, style := frontmatter.Parse(content)

	orig := append([]byte(nil), content...)
	bodyCopy := append([]byte(nil), body...)

	return &Document{
		original: orig,
		fields:   fields,
		meta:     metadata.New(fields),
		body:     bodyCopy,
		hadFM:    had,
		style:    style,
	}
}

// ParseFile reads a file from disk and parses it into a Document.
func ParseFile(path string) (*Document, error) {
	// #nosec G304 -- path is provided by internal callers (discovery walk, CLI).
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, pberrors.ReadFailed(err, path)
	}
	return Parse(content), nil
}

// Original returns a copy of the original bytes.
func (d *Document) Original() []byte {
	return append([]byte(nil), d.original...)
}

// HadFrontmatter reports whether the original document contained a well-formed
// frontmatter block.
func (d *Document) HadFrontmatter() bool {
	return d.hadFM
}

// Fields returns the ordered frontmatter fields. Nil when the document had no
// well-formed frontmatter.
func (d *Document) Fields() frontmatter.Fields {
	return d.fields
}

// Metadata returns the typed metadata model. Never nil; an absent frontmatter
// block yields a model of defaults.
func (d *Document) Metadata() *metadata.Model {
	return d.meta
}

// Body returns the Markdown body bytes (frontmatter removed; the full original
// text when frontmatter was absent or malformed).
func (d *Document) Body() []byte {
	return append([]byte(nil), d.body...)
}

// Style returns the detected formatting style from frontmatter splitting.
func (d *Document) Style() frontmatter.Style {
	return d.style
}

// Bytes re-serializes metadata and body into full document bytes.
func (d *Document) Bytes() ([]byte, error) {
	if !d.hadFM {
		return d.Body(), nil
	}
	fm, err := frontmatter.Serialize(d.fields, d.style)
	if err != nil {
		return nil, pberrors.WrapError(err, pberrors.CategoryFrontMatter, "failed to serialize frontmatter")
	}
	return frontmatter.Join(fm, d.body, true, d.style), nil
}
