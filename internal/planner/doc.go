// Package planner turns scanner candidates into an ordered merge plan and
// resolves per-file conflicts during execution.
//
// Planning is read-only and deterministic: the same filesystem state and
// configuration always produce the same plan. Conflict resolution is lazy;
// a ConflictRecord exists only for files that actually collide.
package planner
