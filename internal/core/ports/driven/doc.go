// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - Annotator: Produces or filters annotations for one document
//   - AnnotatorPipeline: Chains annotators over a document
//   - AnnotatorFactory: Builds a pipeline from runtime parameters
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - Normaliser / NormaliserRegistry: Turns raw files into text documents.
//     Without them only ready-made containers can be annotated.
//   - AnnotationStore: View persistence. Without it views are only returned.
//   - ConfigStore: Application configuration.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, annotator, or normaliser package
package driven
