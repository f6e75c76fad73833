// Package storage persists sampled snapshots in a SQLite index under the
// data directory. Each row keeps the parameter set and a zstd-compressed
// CSV of the sample, so a snapshot reloads exactly as it was written.
package storage
