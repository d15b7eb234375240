// Package astar_test provides runnable examples for FindPath.
package astar_test

import (
	"fmt"

	"github.com/katalvlaran/patrol/astar"
	"github.com/katalvlaran/patrol/grid"
)

// ExampleFindPath routes the robot across the 5×5 inspection map from the
// bottom-left corner to the top-right corner.
// Complexity: O((V+E) log V).
func ExampleFindPath() {
	g := grid.MustNew([][]int{
		{0, 0, 0, 0, 0},
		{0, 1, 1, 1, 0},
		{0, 0, 0, 0, 0},
		{0, 1, 0, 1, 0},
		{0, 0, 0, 0, 0},
	})

	res, err := astar.FindPath(g, grid.Cell{Row: 4, Col: 0}, grid.Cell{Row: 0, Col: 4})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("found:", res.Found, "steps:", res.Cost())
	// Output: found: true steps: 8
}

// ExampleFindPath_noPath shows the negative result: a wall separates the
// endpoints, FindPath succeeds and reports Found == false.
func ExampleFindPath_noPath() {
	g := grid.MustNew([][]int{
		{0, 1, 0},
		{0, 1, 0},
	})

	res, err := astar.FindPath(g, grid.Cell{Row: 0, Col: 0}, grid.Cell{Row: 1, Col: 2})
	fmt.Println("err:", err, "found:", res.Found, "cost:", res.Cost())
	// Output: err: <nil> found: false cost: -1
}

// ExampleWithStepBudget bounds the search on a large open grid.
func ExampleWithStepBudget() {
	g, _ := grid.Open(100, 100)

	res, _ := astar.FindPath(g, grid.Cell{}, grid.Cell{Row: 99, Col: 99}, astar.WithStepBudget(10))
	fmt.Println("found:", res.Found, "exhausted:", res.Exhausted, "expanded:", res.Expanded)
	// Output: found: false exhausted: true expanded: 10
}
