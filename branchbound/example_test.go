package branchbound_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/lvlp/branchbound"
	"github.com/katalvlaran/lvlp/model"
	"github.com/katalvlaran/lvlp/trace"
)

func ExampleSolve() {
	m := model.New(model.Maximize, []float64{5, 4})
	_ = m.AddLe([]float64{6, 4}, 24)
	_ = m.AddLe([]float64{1, 2}, 6)

	res, err := branchbound.Solve(context.Background(), m)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(res.Status, trace.Num(res.Objective), trace.Vec(res.X))
	for _, ev := range res.Trace.Filter(trace.KindBranch) {
		fmt.Println(trace.Line(ev))
	}
	// Output:
	// optimal 20 (4, 0)
	// T-1: branch on x2 = 1.5 -> T-2 (x2 <= 1), T-3 (x2 >= 2)
	// T-2: branch on x1 = 3.333 -> T-4 (x1 <= 3), T-5 (x1 >= 4)
}
