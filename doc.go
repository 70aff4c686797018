// Package tracker provides the core logic for a single-user, local-first
// personal expense tracker. It is designed to keep all data on the user's
// machine, in a small key-value store, with no server involved.
//
// The core functionalities include:
//   - Record Store: an explicit store object owning the transaction
//     collection, persisting a full snapshot after every mutation and
//     notifying subscribers synchronously.
//   - Validation Engine: a fixed catalog of field validators for
//     descriptions, amounts, dates and categories, plus whole-record and
//     bulk-import validation.
//   - Search & Highlight Engine: safe compilation of user-supplied
//     patterns, record filtering, and escape-then-mark highlighting.
//   - Statistics: derived totals, top category, trailing-week spend and
//     per-category breakdown, recomputed on every call.
//   - Import/Export: human-diffable JSON snapshots of the collection.
//
// This package serves as the foundational logic for the `pft` command-line
// tool, ensuring that all operations are consistent and based on a single
// source of truth.
package tracker
