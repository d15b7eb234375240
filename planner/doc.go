// Package planner runs one advise-and-route cycle for an inspection robot.
//
// A Planner owns the zone registry and the current map. Next picks the most
// urgent zone with the selector and plans a route to it with A*; Complete
// folds an inspection result back into the registry. Driving the robot and
// waiting for arrival stay with the caller.
//
// The map can be replaced at any time with SetGrid; requests in flight keep
// the map they started with.
package planner
