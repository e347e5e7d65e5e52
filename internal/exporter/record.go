package exporter

import (
	"bytes"
	"encoding/json"

	"github.com/goliatone/go-proposals/pkg/interfaces"
)

// Record is one exported document: the frontmatter fragment followed by
// the markdown source and its rendered HTML. Missing fragment fields are
// emitted as null.
type Record struct {
	SEP         any    `json:"sep"`
	SCCP        any    `json:"sccp"`
	Title       any    `json:"title"`
	Author      any    `json:"author"`
	Network     any    `json:"network"`
	Type        any    `json:"type"`
	Proposal    any    `json:"proposal"`
	Implementor any    `json:"implementor"`
	Release     any    `json:"release"`
	Created     any    `json:"created"`
	Updated     any    `json:"updated"`
	Status      any    `json:"status"`
	Markdown    string `json:"md"`
	HTML        string `json:"html"`
}

// NewRecord merges the fragment fields of doc with its body.
func NewRecord(doc *interfaces.Document) Record {
	fm := doc.Frontmatter
	return Record{
		SEP:         fm["sep"],
		SCCP:        fm["sccp"],
		Title:       fm["title"],
		Author:      fm["author"],
		Network:     fm["network"],
		Type:        fm["type"],
		Proposal:    fm["proposal"],
		Implementor: fm["implementor"],
		Release:     fm["release"],
		Created:     fm["created"],
		Updated:     fm["updated"],
		Status:      fm["status"],
		Markdown:    string(doc.Body),
		HTML:        string(doc.BodyHTML),
	}
}

// encodeRecords renders records as a compact JSON array without HTML
// escaping and without a trailing newline.
func encodeRecords(records []Record) ([]byte, error) {
	if records == nil {
		records = []Record{}
	}
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(records); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
