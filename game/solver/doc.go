// Package solver implements breadth-first search over Rush Hour board
// states.
//
// The solver package provides:
//   - Legal move enumeration for a single vehicle and for a whole board
//   - A layer-by-layer BFS engine with value-keyed deduplication
//   - Path reconstruction from recorded parent links
//   - Optional per-layer progress hooks and a node cap for hostile inputs
//
// Search Semantics:
//
// One move is a single slide of one vehicle by any positive number of
// cells; the returned solution minimizes the number of moves, not the total
// distance slid. Exhausting the reachable state space without finding the
// goal is a normal outcome, reported as a Solution with Solvable set to
// false — it is not an error. Validation failures and the node cap are
// errors.
//
// Usage:
//
//	s := solver.New(b, "R", 3, solver.WithNodeLimit(500000))
//	sol, err := s.Solve(ctx)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if !sol.Solvable {
//		fmt.Println("No solution exists.")
//	}
//	for _, m := range sol.Moves {
//		fmt.Println(m.Description())
//	}
//
// Every Solve call owns its own search state; a Solver is safe to reuse for
// repeated solves and solves of distinct Solvers may run concurrently.
//
// Determinism: vehicles are enumerated in lexicographic name order and
// directions as left before right, up before down, so repeated runs on the
// same board return the same shortest solution.
package solver
