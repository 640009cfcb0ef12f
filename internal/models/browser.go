// Package models contains data structures used across handlers
package models

import "time"

// ObjectEntry represents a leaf object in a listing page
type ObjectEntry struct {
	Key          string    `json:"key"`
	Name         string    `json:"name"`
	Size         int64     `json:"size"`
	SizeDisplay  string    `json:"sizeDisplay"`
	LastModified time.Time `json:"lastModified"`
}

// FolderEntry represents a folder (common prefix)
type FolderEntry struct {
	Prefix string `json:"prefix"`
	Name   string `json:"name"`
}

// Breadcrumb for navigation
type Breadcrumb struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// ListingPage is one delimiter-scoped page of immediate children of a prefix.
// NextToken is present iff the store reported more results beyond this page.
type ListingPage struct {
	Prefix      string        `json:"prefix"`
	Folders     []FolderEntry `json:"folders"`
	Objects     []ObjectEntry `json:"objects"`
	Breadcrumbs []Breadcrumb  `json:"breadcrumbs"`
	NextToken   string        `json:"nextToken,omitempty"`
}

// KeyError reports a per-key delete failure
type KeyError struct {
	Key    string `json:"key"`
	Reason string `json:"reason"`
}

// DeleteResult aggregates the outcome of a bulk delete. Partial failures
// are reported per key instead of being collapsed into a single flag.
type DeleteResult struct {
	Deleted []string   `json:"deleted"`
	Failed  []KeyError `json:"errors"`
}
