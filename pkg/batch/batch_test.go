package batch

import (
	"context"
	"testing"

	"github.com/oisee/numcore/pkg/field"
	"github.com/oisee/numcore/pkg/number"
)

func exprs() []Expr {
	return []Expr{
		{Text: "add 1/2 1/3", Op: OpAdd, A: number.NewNatural(1, 2), B: number.NewNatural(1, 3)},
		{Text: "mul 2/3 3/4", Op: OpMul, A: number.NewNatural(2, 3), B: number.NewNatural(3, 4)},
		{Text: "pow 2 10", Op: OpPow, A: number.NewNatural(2, 1), B: number.NewNatural(10, 1)},
		{Text: "add 1 1", Op: OpAdd, A: number.NewNatural(1, 1), B: number.NewNatural(1, 1)},
	}
}

func TestRunPreservesOrderAcrossWorkerCounts(t *testing.T) {
	st := field.NewTable(7)
	for _, workers := range []int{1, 4} {
		out, err := Run(context.Background(), exprs(), st, workers, nil)
		if err != nil {
			t.Fatalf("workers=%d: Run returned %v", workers, err)
		}
		if len(out) != 4 {
			t.Fatalf("workers=%d: got %d outcomes, want 4", workers, len(out))
		}
		n, d := out[0].Value.Natural()
		if n != 5 || d != 6 {
			t.Errorf("workers=%d: add outcome = %d/%d, want 5/6", workers, n, d)
		}
		n, d = out[2].Value.Natural()
		if n != 1024 || d != 1 {
			t.Errorf("workers=%d: pow outcome = %d/%d, want 1024/1", workers, n, d)
		}
	}
}

func TestRunReportsUnknownOperator(t *testing.T) {
	st := field.NewTable(7)
	bad := []Expr{{Text: "huh 1 2", Op: Op("huh"), A: number.NewNatural(1, 1), B: number.NewNatural(2, 1)}}
	out, err := Run(context.Background(), bad, st, 1, nil)
	if err != nil {
		t.Fatalf("Run returned %v", err)
	}
	if out[0].Err == nil {
		t.Error("expected an Err for an unknown operator, got nil")
	}
}

func TestRunRecoversLogicErrorIntoOutcome(t *testing.T) {
	st := field.NewTable(7)
	bad := []Expr{{
		Text: "add ff0 ff1",
		Op:   OpAdd,
		A:    number.NewFiniteField(1, 0),
		B:    number.NewFiniteField(1, 1),
	}}
	out, err := Run(context.Background(), bad, st, 1, nil)
	if err != nil {
		t.Fatalf("Run returned %v", err)
	}
	if out[0].Err == nil {
		t.Error("expected an Err for mismatched finite fields, got nil")
	}
}

func TestRunTracksStats(t *testing.T) {
	st := field.NewTable(7)
	var stats Stats
	if _, err := Run(context.Background(), exprs(), st, 2, &stats); err != nil {
		t.Fatalf("Run returned %v", err)
	}
	if stats.Completed.Load() != 4 {
		t.Errorf("Completed = %d, want 4", stats.Completed.Load())
	}
}

func TestRunHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	st := field.NewTable(7)
	_, err := Run(ctx, exprs(), st, 1, nil)
	if err == nil {
		t.Error("expected an error from a pre-cancelled context")
	}
}
