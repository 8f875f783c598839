// Package html provides a Normaliser implementation for HTML documents.
// It reduces markup to the readable text a person would see, one block
// element per line, with entities decoded.
package html
