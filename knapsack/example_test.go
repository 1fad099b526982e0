package knapsack_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/lvlp/knapsack"
)

func ExampleProblem_Solve() {
	p, err := knapsack.NewProblem(
		[]float64{60, 100, 120},
		[]float64{10, 20, 30},
		50,
		nil,
	)
	if err != nil {
		fmt.Println(err)
		return
	}
	res := p.Solve(context.Background(), knapsack.WithIterative())
	fmt.Println(res.Status, res.Value, res.Weight, res.Items)
	// Output: optimal 220 50 [1 2]
}
