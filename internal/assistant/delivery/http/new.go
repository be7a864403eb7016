package http

import (
	"docpilot/internal/assistant"
	"docpilot/internal/memory"
	"docpilot/pkg/log"
)

type handler struct {
	l     log.Logger
	uc    assistant.UseCase
	store memory.Store
}

// New creates a new HTTP handler for the assistant domain.
func New(l log.Logger, uc assistant.UseCase, store memory.Store) *handler {
	return &handler{
		l:     l,
		uc:    uc,
		store: store,
	}
}
