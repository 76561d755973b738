package domain

import "time"

// MediaHints carries image references found next to a candidate in a syndication feed.
type MediaHints struct {
	MediaURL        string
	EnclosureURL    string
	DescriptionHTML string
}

// Empty reports whether no feed data was attached.
func (m MediaHints) Empty() bool {
	return m.MediaURL == "" && m.EnclosureURL == "" && m.DescriptionHTML == ""
}

// Candidate is a discovered article reference not yet checked for novelty or extracted.
type Candidate struct {
	URL         string
	PublishedAt time.Time
	HasDate     bool
	Source      string
	Media       MediaHints
}

// Merge fills fields missing in c from other. Both must describe the same URL.
func (c Candidate) Merge(other Candidate) Candidate {
	if !c.HasDate && other.HasDate {
		c.PublishedAt = other.PublishedAt
		c.HasDate = true
	}
	if c.Source == "" {
		c.Source = other.Source
	}
	if c.Media.MediaURL == "" {
		c.Media.MediaURL = other.Media.MediaURL
	}
	if c.Media.EnclosureURL == "" {
		c.Media.EnclosureURL = other.Media.EnclosureURL
	}
	if c.Media.DescriptionHTML == "" {
		c.Media.DescriptionHTML = other.Media.DescriptionHTML
	}
	return c
}

// ParsedArticle is the structural extraction result of an article page.
type ParsedArticle struct {
	URL   string
	Title string
	Body  string
}

// Digest is the bounded bullet summary of an article plus its optional series tag.
type Digest struct {
	Bullets []string
	Series  string
}

// OutboundMessage is the final escaped and truncated post, ready for the publish capability.
type OutboundMessage struct {
	Text      string
	ImageURL  string
	ParseMode string
}

// IsPhoto reports whether the message goes out as a photo with caption.
func (m OutboundMessage) IsPhoto() bool {
	return m.ImageURL != ""
}
