package request

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

// Document is the wire shape of a request. Field order is the element order
// the service expects.
type Document struct {
	XMLName           xml.Name `xml:"request"`
	Query             string   `xml:"query"`
	Page              int      `xml:"page"`
	GroupBy           GroupBy  `xml:"groupings>groupby"`
	SortBy            Sort     `xml:"sortby"`
	MaxPassages       int      `xml:"maxpassages"`
	MaxTitleLength    int      `xml:"max-title-length"`
	MaxHeadlineLength int      `xml:"max-headline-length"`
	MaxPassageLength  int      `xml:"max-passage-length"`
	MaxTextLength     int      `xml:"max-text-length"`
}

// GroupBy is the single grouping rule of a request.
type GroupBy struct {
	Attr         Group     `xml:"attr,attr"`
	Mode         GroupMode `xml:"mode,attr"`
	GroupsOnPage int       `xml:"groups-on-page,attr"`
	DocsInGroup  int       `xml:"docs-in-group,attr"`
}

// Build snapshots r into a request document.
func Build(r SearchRequest) Document {
	mode := r.GroupMode
	if r.Group == GroupNone || mode == "" {
		mode = GroupModeFlat
	}
	sortBy := r.Sort
	if sortBy == "" {
		sortBy = SortRelevance
	}

	return Document{
		Query: AssembleQuery(r),
		Page:  r.Page,
		GroupBy: GroupBy{
			Attr:         r.Group,
			Mode:         mode,
			GroupsOnPage: r.Limit,
			DocsInGroup:  1,
		},
		SortBy:            sortBy,
		MaxPassages:       r.Options.MaxPassages,
		MaxTitleLength:    r.Options.MaxTitleLength,
		MaxHeadlineLength: r.Options.MaxHeadlineLength,
		MaxPassageLength:  r.Options.MaxPassageLength,
		MaxTextLength:     r.Options.MaxTextLength,
	}
}

// Marshal serializes the document with a UTF-8 XML declaration.
func (d Document) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="utf-8"?>` + "\n")

	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("failed to encode request document: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode request document: %w", err)
	}
	return buf.Bytes(), nil
}

// ParseDocument decodes a serialized request document.
func ParseDocument(data []byte) (Document, error) {
	var d Document
	if err := xml.Unmarshal(data, &d); err != nil {
		return Document{}, fmt.Errorf("failed to decode request document: %w", err)
	}
	return d, nil
}
