// Command incrbench builds a balanced binary tree of string-concatenation
// nodes over a set of variables, then repeatedly stabilizes the graph while
// randomly perturbing one leaf at a time, then prints the final value, the
// total elapsed time and the engine's stats. It is
// the incrgraph analogue of the teacher's examples/benchmark/main.go,
// rebuilt as a cobra.Command rather than a bare func main per this
// repository's CLI conventions.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	incr "github.com/wcharczuk/incrgraph"
)

func concat(a, b string) string { return a + b }

func run(size, rounds int, debug bool) error {
	e := incr.NewEngine()

	ctx := context.Background()
	if debug {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		defer logger.Sync()
		ctx = incr.WithTracing(ctx, logger)
	}

	vars := make([]incr.Variable[string], size)
	leaves := make([]incr.Anchor[string], size)
	for x := 0; x < size; x++ {
		vars[x] = incr.Var(e, fmt.Sprintf("var_%d", x))
		leaves[x] = vars[x].Watch()
	}

	level := leaves
	for len(level) > 1 {
		next := make([]incr.Anchor[string], 0, (len(level)+1)/2)
		for i := 0; i+1 < len(level); i += 2 {
			next = append(next, incr.Map2(e, level[i], level[i+1], concat))
		}
		if len(level)%2 == 1 {
			next = append(next, level[len(level)-1])
		}
		level = next
	}
	root := level[0]

	obs := incr.Observe(e, root)
	defer obs.Unobserve()

	start := time.Now()
	for n := 0; n < rounds; n++ {
		e.StabilizeTraced(ctx)
		idx := rand.Intn(size)
		vars[idx].Set(fmt.Sprintf("var_%d_updated_%d", idx, n))
		e.StabilizeTraced(ctx)
	}
	elapsed := time.Since(start)

	fmt.Printf("result: %s\n", obs.Value())
	fmt.Printf("rounds=%d size=%d elapsed=%s stats=%+v\n", rounds, size, elapsed, e.Stats())
	return nil
}

func main() {
	var size, rounds int
	var debug bool

	cmd := &cobra.Command{
		Use:   "incrbench",
		Short: "Benchmark a balanced incrgraph concatenation tree",
		RunE: func(_ *cobra.Command, _ []string) error {
			return run(size, rounds, debug)
		},
	}
	cmd.Flags().IntVar(&size, "size", 128, "number of leaf variables")
	cmd.Flags().IntVar(&rounds, "rounds", 32, "number of stabilize rounds")
	cmd.Flags().BoolVar(&debug, "debug", false, "enable zap tracing of each stabilization")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
