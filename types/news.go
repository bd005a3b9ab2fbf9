package types

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// Status is the curation state of a stored news document.
// The lattice is one-way: unread -> selected -> archived.
type Status string

const (
	StatusUnread   Status = "unread"
	StatusSelected Status = "selected"
	StatusArchived Status = "archived"
)

// FilterAll bypasses a status or category predicate.
const FilterAll = "all"

var statusRank = map[Status]int{
	StatusUnread:   0,
	StatusSelected: 1,
	StatusArchived: 2,
}

// ParseStatus converts a raw value into a Status, rejecting anything outside the enum.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := statusRank[st]; !ok {
		return "", fmt.Errorf("unknown status %q", s)
	}
	return st, nil
}

// Valid reports whether s is one of the enumerated statuses.
func (s Status) Valid() bool {
	_, ok := statusRank[s]
	return ok
}

// CanTransitionTo reports whether moving from s to target respects the lattice.
// Staying in place and moving backward are both rejected.
func (s Status) CanTransitionTo(target Status) bool {
	from, ok := statusRank[s]
	if !ok {
		return false
	}
	to, ok := statusRank[target]
	if !ok {
		return false
	}
	return to > from
}

func (s Status) String() string { return string(s) }

// Category is one of the fixed feed categories.
type Category string

const (
	CategoryMain          Category = "main"
	CategoryDomestic      Category = "domestic"
	CategoryInternational Category = "international"
	CategoryEconomy       Category = "economy"
	CategoryEntertainment Category = "entertainment"
	CategorySports        Category = "sports"
	CategoryIT            Category = "it"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryMain,
	CategoryDomestic,
	CategoryInternational,
	CategoryEconomy,
	CategoryEntertainment,
	CategorySports,
	CategoryIT,
}

var categoryLabels = map[Category]string{
	CategoryMain:          "主要",
	CategoryDomestic:      "国内",
	CategoryInternational: "国際",
	CategoryEconomy:       "経済",
	CategoryEntertainment: "エンタメ",
	CategorySports:        "スポーツ",
	CategoryIT:            "IT",
}

// ParseCategory accepts either the code (case-insensitive) or the Japanese label.
func ParseCategory(s string) (Category, error) {
	raw := strings.TrimSpace(s)
	c := Category(strings.ToLower(raw))
	if _, ok := categoryLabels[c]; ok {
		return c, nil
	}
	for code, label := range categoryLabels {
		if label == raw {
			return code, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// Valid reports whether c is one of the enumerated categories.
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Label returns the Japanese display label used by the source feeds.
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

func (c Category) String() string { return string(c) }

// NewsDocument is a single stored headline. Link is unique across documents.
type NewsDocument struct {
	ID              string     `json:"id"`
	Category        Category   `json:"category"`
	Title           string     `json:"title"`
	Link            string     `json:"link"`
	Summary         string     `json:"summary"`
	PubDate         string     `json:"pub_date"`
	CreatedAt       time.Time  `json:"created_at"`
	Status          Status     `json:"status"`
	StatusUpdatedAt *time.Time `json:"status_updated_at,omitempty"`
}

// ScriptItem is one of the three news slots fed to the script generator.
type ScriptItem struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	Summary  string `json:"summary"`
	Link     string `json:"link,omitempty"`
}

// ScriptItemFromDocument projects a stored document into a generator input.
func ScriptItemFromDocument(d NewsDocument) ScriptItem {
	return ScriptItem{
		Title:    d.Title,
		Category: d.Category.Label(),
		Summary:  d.Summary,
		Link:     d.Link,
	}
}

// ParseStatusFilter returns nil for "all" (or empty), otherwise the parsed status.
func ParseStatusFilter(s string) (*Status, error) {
	if s == "" || strings.EqualFold(s, FilterAll) {
		return nil, nil
	}
	st, err := ParseStatus(s)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// ParseCategoryFilter returns nil for "all" (or empty), otherwise the parsed category.
func ParseCategoryFilter(s string) (*Category, error) {
	if s == "" || strings.EqualFold(s, FilterAll) {
		return nil, nil
	}
	c, err := ParseCategory(s)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// DocumentID derives the stable document id from a source link (md5 hex).
func DocumentID(link string) string {
	sum := md5.Sum([]byte(link))
	return hex.EncodeToString(sum[:])
}
