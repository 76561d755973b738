package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedSite is returned when no site adapter matches the URL host.
	ErrUnsupportedSite = errors.New("site is not supported")
	// ErrNoImage is returned when every image lookup step came back empty.
	ErrNoImage = errors.New("no image found for article")
	// ErrEmptyArticle is returned when extraction produced an empty title or body.
	ErrEmptyArticle = errors.New("article title or body is empty")
)

// FetchError describes a network, timeout or HTTP status failure.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// StructureError means an expected markup element was absent.
type StructureError struct {
	Site    string
	Element string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("%s: element %s not found", e.Site, e.Element)
}

// TransportError means the publish call failed.
type TransportError struct {
	Method      string
	Description string
	Err         error
}

func (e *TransportError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("telegram %s: %v", e.Method, e.Err)
	case e.Description != "":
		return fmt.Sprintf("telegram %s: %s", e.Method, e.Description)
	default:
		return fmt.Sprintf("telegram %s failed", e.Method)
	}
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ConfigError marks a missing required credential or identifier.
type ConfigError struct {
	Field string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s is required", e.Field)
}
