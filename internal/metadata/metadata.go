// Package metadata exposes typed accessors over parsed frontmatter fields.
//
// The frontmatter parser returns untyped ordered strings; interpretation of
// recognized keys (dates, lists, defaults) lives here. Unrecognized keys are
// not errors; they are retained and reachable through Lookup for template use.
package metadata

import (
	"time"

	"git.home.luguber.info/inful/postbuilder/internal/frontmatter"
)

// Recognized frontmatter keys.
const (
	KeyLayout     = "layout"
	KeyTitle      = "title"
	KeyDate       = "date"
	KeyImageURL   = "imageUrl"
	KeySummary    = "summary"
	KeyCategories = "categories"
	KeyTags       = "tags"
	KeyTopic      = "topic"
	KeyAuthor     = "author"
)

// DefaultLayout is used when a document does not name a layout.
const DefaultLayout = "post"

// dateFormats are accepted date formats, most specific first.
var dateFormats = []string{
	time.RFC3339,
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Model is an immutable typed view over frontmatter fields.
type Model struct {
	fields frontmatter.Fields
}

// New constructs a Model from parsed frontmatter fields.
func New(fields frontmatter.Fields) *Model {
	return &Model{fields: fields}
}

// Layout returns the layout name, defaulting to "post" when absent or empty.
func (m *Model) Layout() string {
	if v, ok := m.fields.Get(KeyLayout); ok && v != "" {
		return v
	}
	return DefaultLayout
}

// Title returns the title, empty string when absent.
func (m *Model) Title() string {
	v, _ := m.fields.Get(KeyTitle)
	return v
}

// Date returns the parsed publication date. The zero time is returned when
// the key is absent or does not match any accepted format.
func (m *Model) Date() time.Time {
	v, ok := m.fields.Get(KeyDate)
	if !ok || v == "" {
		return time.Time{}
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

// ImageURL returns the header image URL, empty string when absent.
func (m *Model) ImageURL() string {
	v, _ := m.fields.Get(KeyImageURL)
	return v
}

// Summary returns the post summary, empty string when absent.
func (m *Model) Summary() string {
	v, _ := m.fields.Get(KeySummary)
	return v
}

// Topic returns the topic, empty string when absent.
func (m *Model) Topic() string {
	v, _ := m.fields.Get(KeyTopic)
	return v
}

// Author returns the author, empty string when absent.
func (m *Model) Author() string {
	v, _ := m.fields.Get(KeyAuthor)
	return v
}

// Categories returns the category list, empty when absent.
func (m *Model) Categories() []string {
	v, ok := m.fields.GetList(KeyCategories)
	if !ok {
		return []string{}
	}
	return append([]string(nil), v...)
}

// Tags returns the tag list, empty when absent.
func (m *Model) Tags() []string {
	v, ok := m.fields.GetList(KeyTags)
	if !ok {
		return []string{}
	}
	return append([]string(nil), v...)
}

// Lookup returns the raw value for any key, recognized or not. List values
// are returned as []string, scalars as string.
func (m *Model) Lookup(key string) (any, bool) {
	for _, f := range m.fields.Keys() {
		if f != key {
			continue
		}
		if list, ok := m.fields.GetList(key); ok {
			if _, scalar := m.fields.Get(key); scalar {
				v, _ := m.fields.Get(key)
				return v, true
			}
			return append([]string(nil), list...), true
		}
	}
	return nil, false
}

// Params returns all fields as a map for template consumption. Scalars map to
// string, lists to []string. Later duplicate keys win, matching YAML semantics.
func (m *Model) Params() map[string]any {
	params := make(map[string]any, len(m.fields.Keys()))
	for _, key := range m.fields.Keys() {
		if v, ok := m.fields.Get(key); ok {
			params[key] = v
			continue
		}
		if list, ok := m.fields.GetList(key); ok {
			params[key] = append([]string(nil), list...)
		}
	}
	return params
}

// Fields exposes the underlying ordered fields (for serialization round-trips).
func (m *Model) Fields() frontmatter.Fields {
	return m.fields
}
