package mcp

import (
	"github.com/clamsproject/app-datimex-extraction/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Extraction runs the date pipeline.
	Extraction driving.ExtractionService

	// Annotations reads stored views. Optional.
	Annotations driving.AnnotationService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Extraction == nil {
		return ErrMissingExtractionService
	}
	return nil
}
