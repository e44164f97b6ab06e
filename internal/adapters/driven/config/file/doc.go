// Package file provides a file-based implementation of the ConfigStore interface.
//
// Configuration is stored as TOML in ~/.gramasurvey/config.toml. Nested tables
// are flattened to dot-notation keys, so [api] url = "..." is read as "api.url".
// An optional watcher reloads the file in place when it changes on disk.
package file
