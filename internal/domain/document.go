package domain

import "strings"

// Document is a reference-corpus entry supplied by the caller on every
// request. The engine treats it as read-only input: derived fields are
// attached to copies, never written back.
type Document struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Author      string   `json:"author"`
	Year        int      `json:"year"`
	Description string   `json:"description"`
	Tags        []string `json:"tags,omitempty"`
	DocumentURL string   `json:"document_url,omitempty"`
}

// substantialDescriptionChars is the length above which a description is
// repeated in the metadata text to increase its weight.
const substantialDescriptionChars = 100

// MetadataText assembles a comparison text from document metadata for the
// fallback path when full content is unavailable. Title and tags are
// repeated so they carry more weight in the vector space than the author line.
func (d *Document) MetadataText() string {
	var parts []string

	if d.Title != "" {
		parts = append(parts, d.Title, d.Title, d.Title)
	}
	if d.Description != "" {
		parts = append(parts, d.Description)
		if len(d.Description) > substantialDescriptionChars {
			parts = append(parts, d.Description)
		}
	}
	if len(d.Tags) > 0 {
		tags := strings.Join(d.Tags, " ")
		parts = append(parts, tags, tags)
	}
	if d.Author != "" {
		parts = append(parts, "Author: "+d.Author)
	}

	return strings.Join(parts, ". ")
}

// TitleAndDescription joins title and description into the comparison text
// used by the metadata-only pipeline.
func (d *Document) TitleAndDescription() string {
	return JoinTitleDescription(d.Title, d.Description)
}

// JoinTitleDescription builds a "title. description" comparison text.
func JoinTitleDescription(title, description string) string {
	return title + ". " + description
}
