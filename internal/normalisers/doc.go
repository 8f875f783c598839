// Package normalisers provides implementations of the Normaliser interface
// for various document formats. Each normaliser knows how to extract text
// from a specific MIME type; the text is what dates are extracted from, so
// annotation offsets refer to it rather than to the raw bytes.
//
// Normalisers are registered with the NormaliserRegistry at startup.
package normalisers
