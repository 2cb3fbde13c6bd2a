// Package models defines the core domain models for VCOM outreach tracking.
//
// # Models
//
//   - User: A campaign participant, identified by a case-insensitively unique name
//   - SoulRecord: One outreach contact recorded by a participant
//   - Status: Follow-up state of a record (new, following, established)
//   - Date: A calendar day with no time-of-day component
//   - LeaderboardEntry: Derived weekly count for one participant (never persisted)
//   - Stats: Derived per-participant counters (never persisted)
//
// # Design Principles
//
// 1. **Plain data**: Models carry no behavior beyond validation and JSON encoding
// 2. **Ownership by ID**: Records reference their owner by User ID, never by pointer
// 3. **Derived values are not stored**: Leaderboards and stats are recomputed on demand
// 4. **JSON shape is the persistence format**: Field tags match the stored snapshots
package models
