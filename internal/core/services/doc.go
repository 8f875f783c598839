// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The extraction service is the date pipeline: it builds the annotator
// chain for a run, selects the text documents of a container, and
// assembles the resulting view.
package services
