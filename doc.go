// Package captable models a company's capitalization table and computes
// how exit proceeds are distributed among its shareholders under a stack
// of liquidation preferences, carve-outs, and pro-rata participation
// rules. This is the waterfall calculation used in M&A and
// venture-finance cap-table modeling.
//
// The core functionalities include:
//   - Cap Table: the aggregate of financing rounds, shareholders, and
//     option pools, owned by the caller and only read by the engine.
//   - Capitalization Summary: per-shareholder fully-diluted positions
//     (shares by class, options by pool, cash invested).
//   - Waterfall Engine: a pure, deterministic four-phase allocation
//     (carve-out, preference stack, pro-rata catch-up, aggregation)
//     producing an ordered audit trace and per-shareholder payouts.
//   - Sensitivity Analysis: repeated engine runs over a range of exit
//     valuations, aggregated by shareholder role.
//   - Data Persistence: encoding and decoding the cap table to and from
//     a human-readable, version-controllable JSONL format.
//
// All monetary arithmetic is decimal-based so the conservation and
// non-negativity invariants of the distribution hold exactly. This
// package serves as the foundational logic for the `cap` command-line
// tool.
package captable
