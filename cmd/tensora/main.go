// Package main provides the Tensora CLI.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/tensora-ml/tensora/backend/cpu"
	"github.com/tensora-ml/tensora/op"
	"github.com/tensora-ml/tensora/tensor"
)

const version = "v0.1.0-dev"

var (
	benchRows  int
	benchCols  int
	benchIters int
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Caller().Logger()

	rootCmd := &cobra.Command{
		Use:          "tensora",
		Short:        "Tensora - tensor layout operators for Go",
		SilenceUsage: true,
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("Tensora %s\n", version)
		},
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark the layout operators on the CPU backend",
		RunE:  runBench,
	}
	benchCmd.Flags().IntVar(&benchRows, "rows", 1024, "Rows of the benchmark matrix")
	benchCmd.Flags().IntVar(&benchCols, "cols", 1024, "Columns of the benchmark matrix")
	benchCmd.Flags().IntVar(&benchIters, "iters", 10, "Iterations per operator")

	rootCmd.AddCommand(versionCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runBench(cmd *cobra.Command, args []string) error {
	ctx := op.NewContext(cpu.New())
	shape := tensor.Shape{benchRows, benchCols}

	data := make([]float32, shape.NumElements())
	for i := range data {
		data[i] = float32(i)
	}
	x, err := tensor.FromSlice(data, shape)
	if err != nil {
		return err
	}
	out, err := tensor.NewRaw(shape, tensor.Float32, tensor.CPU)
	if err != nil {
		return err
	}
	transposed, err := tensor.NewRaw(tensor.Shape{benchCols, benchRows}, tensor.Float32, tensor.CPU)
	if err != nil {
		return err
	}
	stacked, err := tensor.NewRaw(tensor.Shape{2 * benchRows, benchCols}, tensor.Float32, tensor.CPU)
	if err != nil {
		return err
	}

	inputs := []*tensor.RawTensor{x}
	writeTo := []op.WriteReq{op.WriteTo}

	log.Info().Int("rows", benchRows).Int("cols", benchCols).Int("iters", benchIters).Msg("Starting benchmark")

	start := time.Now()
	for i := 0; i < benchIters; i++ {
		op.Roll(ctx, op.RollParam{Shift: []int{3}}, inputs, writeTo, []*tensor.RawTensor{out})
	}
	report("roll_flat", start)

	start = time.Now()
	for i := 0; i < benchIters; i++ {
		op.Roll(ctx, op.RollParam{Shift: []int{3, 5}, Axis: []int{0, 1}}, inputs, writeTo, []*tensor.RawTensor{out})
	}
	report("roll_axes", start)

	start = time.Now()
	for i := 0; i < benchIters; i++ {
		op.Transpose(ctx, op.TransposeParam{}, inputs, writeTo, []*tensor.RawTensor{transposed})
	}
	report("transpose", start)

	start = time.Now()
	for i := 0; i < benchIters; i++ {
		op.VstackForward(ctx, op.VstackParam{NumArgs: 2},
			[]*tensor.RawTensor{x, x}, writeTo, []*tensor.RawTensor{stacked})
	}
	report("vstack", start)

	return nil
}

func report(name string, start time.Time) {
	elapsed := time.Since(start)
	log.Info().
		Str("op", name).
		Dur("total", elapsed).
		Dur("per_iter", elapsed/time.Duration(benchIters)).
		Msg("Benchmark result")
}
