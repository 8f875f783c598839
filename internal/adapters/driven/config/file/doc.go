// Package file provides the file-based configuration store.
//
// Settings live in ~/.datimex/config.toml. Values from a .env file and
// DATIMEX_* environment variables override the file for the life of the
// process without being written back.
package file
