// Package source provides interfaces and implementations for loading the
// redirect configuration.
//
// The package supports multiple kinds of source:
// 1. SourceDB - for reading redirect rules from a PostgreSQL database.
// 2. SourceHTTP - for downloading redirects.toml from a remote URL.
// 3. SourceFile - for reading redirects.toml from the local disk.
package source
