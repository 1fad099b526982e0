package solver_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/lvlp/model"
	"github.com/katalvlaran/lvlp/solver"
	"github.com/katalvlaran/lvlp/trace"
)

func ExampleSolve() {
	m := model.New(model.Maximize, []float64{5, 4})
	_ = m.AddLe([]float64{6, 4}, 24)
	_ = m.AddLe([]float64{1, 2}, 6)

	for _, method := range []solver.Method{solver.MethodSimplex, solver.MethodBranchBound} {
		rep, err := solver.Solve(context.Background(), m, method)
		if err != nil {
			fmt.Println(err)
			return
		}
		fmt.Println(rep.Method, rep.Status, trace.Num(rep.Objective), trace.Vec(rep.X))
	}
	// Output:
	// simplex optimal 21 (3, 1.5)
	// branch-and-bound optimal 20 (4, 0)
}
