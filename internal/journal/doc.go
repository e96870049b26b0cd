// Package journal provides a SQLite-backed record of generation runs.
//
// The journal is append-only. Each run stores the scenario, template and
// output paths, content hashes of the template and generated text, the
// marker table summary and the verification outcome.
//
// # Ordering
//
//   - Runs are ordered by seq INTEGER (assigned on append), never timestamps
//   - All queries use: ORDER BY seq ASC
//
// # Hashing
//
// Text is NFC-normalised and hashed with SHA-256 under a domain prefix,
// so the same template yields the same hash on every platform.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
package journal
