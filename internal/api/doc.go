// Package api defines the public API item model consumed by the diff engine.
// Items are immutable after construction, compare by path first and token
// sequence second, and are equal iff both parts are equal. The ordering is
// plain byte order so that sorted output is reproducible across platforms.
package api
