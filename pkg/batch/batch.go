// Package batch partitions independent coefficient expressions across a
// worker pool, never splitting a single expression across goroutines. It
// is additive scaffolding around pkg/number: the core itself is
// synchronous and knows nothing about concurrency.
package batch

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/oisee/numcore/pkg/number"
)

// Op names the operation an Expr applies to its two operands.
type Op string

const (
	OpAdd Op = "add"
	OpMul Op = "mul"
	OpPow Op = "pow"
)

// Expr is one independent unit of work: apply Op to A and B under State.
type Expr struct {
	Text string // the original "op a b" line, kept for the ledger
	Op   Op
	A, B number.Number
}

// Outcome is the result of evaluating one Expr. Err is set, and Value is
// the Natural 0/1, when the operation panicked with a recoverable
// *number.LogicError or *number.UnimplementedError or when Op is unknown.
// Err is also set for a Pow whose residual root exponent is not 1; Value
// then holds the normalized factor.
type Outcome struct {
	Expr  Expr
	Value number.Number
	Err   error
}

// Stats reports live progress counters, safe to read concurrently with a
// running Run.
type Stats struct {
	Checked   atomic.Int64
	Completed atomic.Int64
}

// Run evaluates exprs across numWorkers goroutines, returning one Outcome
// per input expression in the same order regardless of completion order —
// so the result multiset (and, here, the exact ordering) is independent
// of worker count. ctx is checked between expressions, never mid-evaluation:
// an expression already dispatched to a worker always finishes.
func Run(ctx context.Context, exprs []Expr, state number.State, numWorkers int, stats *Stats) ([]Outcome, error) {
	if numWorkers <= 0 {
		numWorkers = 1
	}
	if stats == nil {
		stats = &Stats{}
	}

	results := make([]Outcome, len(exprs))
	jobs := make(chan int, len(exprs))
	for i := range exprs {
		jobs <- i
	}
	close(jobs)

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < numWorkers; w++ {
		g.Go(func() error {
			for i := range jobs {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
				results[i] = evalOne(exprs[i], state)
				stats.Checked.Add(1)
				stats.Completed.Add(1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func evalOne(e Expr, state number.State) (out Outcome) {
	out.Expr = e
	out.Value = number.NewNatural(0, 1) // placeholder until a branch below overwrites it
	defer func() {
		if r := recover(); r != nil {
			switch err := r.(type) {
			case *number.LogicError, *number.UnimplementedError:
				out.Err = fmt.Errorf("%s: %v", e.Text, err)
			default:
				panic(r)
			}
		}
	}()

	switch e.Op {
	case OpAdd:
		out.Value = e.A.Add(e.B, state).Normalize()
	case OpMul:
		out.Value = e.A.Mul(e.B, state).Normalize()
	case OpPow:
		factor, residual := e.A.Pow(e.B, state)
		out.Value = factor.Normalize()
		if !residual.Equal(number.NewNatural(1, 1)) {
			out.Err = fmt.Errorf("%s: residual exponent %s not representable", e.Text, residual.Normalize().String())
		}
	default:
		out.Err = fmt.Errorf("%s: unknown operator %q", e.Text, e.Op)
	}
	return out
}
