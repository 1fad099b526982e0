package simplex_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/lvlp/model"
	"github.com/katalvlaran/lvlp/simplex"
	"github.com/katalvlaran/lvlp/trace"
)

func ExampleEngine_Optimize() {
	m := model.New(model.Maximize, []float64{3, 2})
	_ = m.AddLe([]float64{1, 1}, 4)
	_ = m.AddLe([]float64{1, 3}, 6)

	e, err := simplex.New(m)
	if err != nil {
		fmt.Println(err)
		return
	}
	res := e.Optimize(context.Background())
	fmt.Println(res.Status, trace.Num(res.Objective), trace.Vec(res.Structural(2)))
	// Output: optimal 12 (4, 0)
}

func ExampleEngine_AddRowAndWarmStart() {
	m := model.New(model.Maximize, []float64{3, 2})
	_ = m.AddLe([]float64{1, 1}, 4)
	_ = m.AddLe([]float64{1, 3}, 6)

	e, _ := simplex.New(m)
	e.Optimize(context.Background())

	// x1 ≤ 3 cuts off (4, 0); the next solve starts with a dual pivot.
	_ = e.AddRowAndWarmStart([]float64{1, 0}, 3)
	res := e.Optimize(context.Background())
	fmt.Println(res.Status, trace.Num(res.Objective), trace.Vec(res.Structural(2)))
	// Output: optimal 11 (3, 1)
}
