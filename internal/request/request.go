// Package request builds the XML request document sent to the search service.
// It merges the free-text query with structured filters into the service's
// query syntax and lays out paging, grouping, sorting and snippet options.
package request

import (
	"fmt"
	"strings"
)

// Sort selects the result ordering.
type Sort string

const (
	// SortRelevance orders results by relevance (service default).
	SortRelevance Sort = "rlv"
	// SortTime orders results by modification time.
	SortTime Sort = "tm"
)

// Group selects how documents are collapsed into result groups.
type Group string

const (
	// GroupNone disables grouping.
	GroupNone Group = ""
	// GroupSite collapses documents from the same site into one group.
	GroupSite Group = "d"
)

// GroupMode is the grouping mode sent alongside the group attribute.
type GroupMode string

const (
	GroupModeFlat GroupMode = "flat"
	GroupModeDeep GroupMode = "deep"
	GroupModeWide GroupMode = "wide"
)

// DefaultLimit is the number of groups per page when none is set.
const DefaultLimit = 10

// SearchRequest holds everything needed to build one request document.
// It is owned by the caller until it is passed to Build.
type SearchRequest struct {
	Query string
	// Page is the 0-based page index.
	Page  int
	Limit int
	Sort  Sort

	Group     Group
	GroupMode GroupMode

	Host   string
	Site   string
	Domain string

	// Category, Theme and Geo are catalogue codes; zero means unset.
	Category int
	Theme    int
	Geo      int

	// LR is the language-region code sent as a query-string parameter; zero means unset.
	LR int

	Options Options
}

// New returns a SearchRequest for query with the service defaults applied.
func New(query string) SearchRequest {
	return SearchRequest{
		Query:     query,
		Limit:     DefaultLimit,
		Sort:      SortRelevance,
		Group:     GroupNone,
		GroupMode: GroupModeFlat,
		Options:   DefaultOptions(),
	}
}

// HasAnchor reports whether the request has a query text or a host filter.
// The service rejects requests that have neither.
func (r SearchRequest) HasAnchor() bool {
	return r.Query != "" || r.Host != ""
}

// ParseSort converts a command-line or config value to a Sort.
func ParseSort(s string) (Sort, error) {
	switch Sort(strings.ToLower(strings.TrimSpace(s))) {
	case SortRelevance, "":
		return SortRelevance, nil
	case SortTime:
		return SortTime, nil
	}
	return "", fmt.Errorf("invalid sort: %s. Must be 'rlv' or 'tm'", s)
}

// ParseGroup converts "none"/"" or "site"/"d" to a Group.
func ParseGroup(s string) (Group, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return GroupNone, nil
	case "d", "site":
		return GroupSite, nil
	}
	return "", fmt.Errorf("invalid group: %s. Must be 'none' or 'site'", s)
}

// ParseGroupMode converts a value to a GroupMode. Empty means flat.
func ParseGroupMode(s string) (GroupMode, error) {
	switch GroupMode(strings.ToLower(strings.TrimSpace(s))) {
	case GroupModeFlat, "":
		return GroupModeFlat, nil
	case GroupModeDeep:
		return GroupModeDeep, nil
	case GroupModeWide:
		return GroupModeWide, nil
	}
	return "", fmt.Errorf("invalid group mode: %s. Must be 'flat', 'deep', or 'wide'", s)
}
