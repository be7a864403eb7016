package llmprovider

import "errors"

var (
	// ErrNoProvidersConfigured indicates no enabled provider was found in config
	ErrNoProvidersConfigured = errors.New("no LLM providers configured")

	// ErrAllProvidersFailed indicates every provider in the fallback chain failed
	ErrAllProvidersFailed = errors.New("all LLM providers failed")
)
