// Package snapshot reads and writes public API snapshot files: the JSON
// interchange format produced by upstream API extractors, plus a msgpack
// disk cache keyed by the snapshot file's content digest so repeated diffs
// of the same release skip the JSON decode.
package snapshot
