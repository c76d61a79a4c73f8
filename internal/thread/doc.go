// Package thread holds the canonical email thread model. It normalizes
// decoded JSON into a Thread, orders messages by timestamp and derives the
// coarse thread identifier used as a dedup key.
package thread
