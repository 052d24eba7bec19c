// Package tradelab provides the functions and types for keeping a trade
// journal and reading a portfolio's performance out of it. It is designed to
// be local-first and auditable: the journal is a plain-text file that can be
// hand-edited and version-controlled, and every figure is recomputed from it.
//
// The core functionalities include:
//   - Trade Journal: Recording the opening and closing of lots as an ordered
//     event log, materialized into lots on demand. A SQLite-backed store
//     offers the same operations behind the TradeStore interface.
//   - Position Aggregation: Folding the open lots into per-ticker positions
//     with cost-weighted average entry prices, marked against current prices.
//   - Performance Analytics: A stateless analyzer that derives basic, risk,
//     factor, rolling, behavioral and benchmark metrics from the closed lots.
//   - Insights: Fixed threshold rules that turn a metrics report into short,
//     human-readable readings.
//   - Market Data: Pluggable price providers with batched lookups and an
//     in-process TTL cache.
//
// This package serves as the foundational logic for the `tla` command-line
// tool, ensuring that all operations are consistent and based on a single
// source of truth.
package tradelab
