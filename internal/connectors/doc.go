// Package connectors provides sources of raw documents for datimex.
//
// A connector reads files from somewhere and hands them to the extraction
// service as domain.RawDocument values, which the normaliser registry then
// turns into text documents.
//
// # Available Connectors
//
//   - filesystem: local files and directories, with change watching
package connectors
