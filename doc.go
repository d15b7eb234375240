// Package patrol is the planning core of an autonomous inspection robot: it
// decides WHERE the robot should go next and HOW to get there.
//
// What is inside:
//
//	grid/      — immutable occupancy grid, map parsing, free-region labeling
//	astar/     — 4-connected A* with a lazy-deletion heap and a step budget
//	zone/      — zone topology and the thread-safe zone registry (EWMA risk)
//	selector/  — priority scoring and deterministic target selection
//	planner/   — one advise-and-route cycle over the registry and current map
//
// Around the core:
//
//	internal/advisor    — HTTP API (chi)
//	internal/mcpserver  — MCP tools over stdio
//	internal/mapwatch   — map hot reload (fsnotify)
//	internal/metrics    — Prometheus collectors
//	internal/render     — terminal rendering of maps and routes
//	internal/config     — YAML configuration with env expansion
//	cmd/patrol          — CLI: serve, mcp, path, demo
//
// Quick ASCII example (S start, G goal, X route, # obstacle):
//
//	. . . . G
//	. # # # X
//	. . . . X
//	. # . # X
//	S X X X X
//
//	go run ./cmd/patrol path --from 4,0 --to 0,4
package patrol
