// Package writers turns a flagged store into serialized reports.
//
// Design:
//   • Writers own all presentation knowledge (tables, trees, JSON/JSONL).
//   • store and match stay domain-only; the app only picks a format.
//   • JSON/JSONL go through pkg/api (v1) for a stable wire format.
package writers
