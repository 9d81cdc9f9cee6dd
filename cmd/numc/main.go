package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oisee/numcore/pkg/batch"
	"github.com/oisee/numcore/pkg/field"
	"github.com/oisee/numcore/pkg/ledger"
	"github.com/oisee/numcore/pkg/number"
	"github.com/oisee/numcore/pkg/packed"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "numc",
		Short: "Coefficient algebra toolkit — packed rational/finite-field encoding and batch evaluation",
	}

	rootCmd.AddCommand(
		newEncodeCmd(),
		newDecodeCmd(),
		newArithCmd("add", batch.OpAdd),
		newArithCmd("mul", batch.OpMul),
		newArithCmd("pow", batch.OpPow),
		newBatchCmd(),
		newTapeCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newEncodeCmd() *cobra.Command {
	var fieldIndex uint32
	var prime uint64

	cmd := &cobra.Command{
		Use:   "encode <num>[/<den>]",
		Short: "Build a Number (Natural, or FiniteField with --prime) and print its packed hex bytes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var n number.Number
			if prime > 0 {
				elem, err := parseFieldElement(args[0], prime)
				if err != nil {
					return err
				}
				n = number.NewFiniteField(elem, number.FieldIndex(fieldIndex))
			} else {
				rat, err := parseRational(args[0])
				if err != nil {
					return err
				}
				n = rat
			}
			buf := packed.WritePacked(n, nil)
			fmt.Printf("%s -> % x (%d bytes)\n", n.String(), buf, len(buf))
			return nil
		},
	}
	cmd.Flags().Uint32Var(&fieldIndex, "field", 0, "Field index to tag the encoded FiniteField element with")
	cmd.Flags().Uint64Var(&prime, "prime", 0, "Prime modulus; when set, <num> is reduced into a FiniteField element")
	return cmd
}

func newDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <hex>",
		Short: "Unpack a hex-encoded coefficient run and print its value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			buf, err := parseHex(args[0])
			if err != nil {
				return err
			}
			view, rest := packed.GetNumberView(buf)
			fmt.Printf("%s (%d bytes consumed, %d bytes left)\n", view.ToOwned().String(), len(buf)-len(rest), len(rest))
			return nil
		},
	}
}

func newArithCmd(name string, op batch.Op) *cobra.Command {
	return &cobra.Command{
		Use:   name + " <a> <b>",
		Short: fmt.Sprintf("Evaluate a %s b for two num/den rationals (e.g. 1/2)", name),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := parseRational(args[0])
			if err != nil {
				return err
			}
			b, err := parseRational(args[1])
			if err != nil {
				return err
			}
			st := field.NewTable()
			out, err := batch.Run(context.Background(), []batch.Expr{
				{Text: fmt.Sprintf("%s %s %s", name, args[0], args[1]), Op: op, A: a, B: b},
			}, st, 1, nil)
			if err != nil {
				return err
			}
			if out[0].Err != nil {
				return out[0].Err
			}
			fmt.Printf("%s (%s)\n", out[0].Value.String(), out[0].Value.Kind())
			return nil
		},
	}
}

func newBatchCmd() *cobra.Command {
	var workers int
	var output string
	var checkpointPath string

	cmd := &cobra.Command{
		Use:   "batch <file>",
		Short: "Evaluate newline-delimited 'op a b' expressions concurrently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			exprs, err := parseExprFile(f)
			if err != nil {
				return err
			}

			if workers <= 0 {
				workers = runtime.NumCPU()
			}
			fmt.Printf("Evaluating %d expressions across %d workers\n", len(exprs), workers)

			st := field.NewTable()
			var stats batch.Stats
			outcomes, err := batch.Run(context.Background(), exprs, st, workers, &stats)
			if err != nil {
				return fmt.Errorf("batch run failed: %w", err)
			}

			table := ledger.NewTable()
			entries := make([]ledger.Entry, len(outcomes))
			for i, o := range outcomes {
				e := ledger.Entry{Expr: o.Expr.Text, Value: o.Value}
				if o.Err != nil {
					e.Err = o.Err.Error()
				}
				entries[i] = e
				table.Add(e)
			}

			fmt.Printf("Completed %d/%d\n", stats.Completed.Load(), len(exprs))
			for _, e := range table.Entries() {
				if e.Err != "" {
					fmt.Printf("  %s => ERROR: %s\n", e.Expr, e.Err)
				} else {
					fmt.Printf("  %s => %s\n", e.Expr, e.Value.String())
				}
			}

			if output != "" {
				out, err := os.Create(output)
				if err != nil {
					return err
				}
				defer out.Close()
				if err := ledger.WriteJSON(out, entries); err != nil {
					return err
				}
				fmt.Printf("Written to %s\n", output)
			}

			if checkpointPath != "" {
				ckpt := &ledger.Checkpoint{Entries: entries, Completed: len(entries), Total: len(exprs)}
				if err := ledger.SaveCheckpoint(checkpointPath, ckpt); err != nil {
					return err
				}
				fmt.Printf("Checkpoint saved to %s\n", checkpointPath)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&workers, "workers", 0, "Number of workers (0 = NumCPU)")
	cmd.Flags().StringVar(&output, "output", "", "Write results as JSON to this path")
	cmd.Flags().StringVar(&checkpointPath, "checkpoint", "", "Persist a resumable checkpoint to this path")
	return cmd
}

func newTapeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tape <num>...",
		Short: "Pack a sequence of integers back-to-back and skip across the runs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var tape []byte
			offsets := make([]int, 0, len(args))
			for _, a := range args {
				offsets = append(offsets, len(tape))
				v, err := strconv.ParseInt(a, 10, 64)
				if err != nil {
					return fmt.Errorf("invalid integer %q: %w", a, err)
				}
				tape = packed.WritePacked(number.NewNatural(v, 1), tape)
			}
			fmt.Printf("tape: %d bytes total\n", len(tape))

			rest := tape
			for i, off := range offsets {
				view, next := packed.GetNumberView(rest)
				runLen := len(rest) - len(next)
				fmt.Printf("  [%d] offset=%d len=%d value=%s\n", i, off, runLen, view.ToOwned().String())
				rest = packed.SkipRational(rest)
				if len(rest) != len(next) {
					return fmt.Errorf("SkipRational disagreed with GetNumberView at run %d", i)
				}
			}
			return nil
		},
	}
}

// parseFieldElement parses a (possibly negative) integer literal and reduces
// it into [0, prime) for use as a FiniteField element payload.
func parseFieldElement(s string, prime uint64) (uint64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid field element %q: %w", s, err)
	}
	r := v % int64(prime)
	if r < 0 {
		r += int64(prime)
	}
	return uint64(r), nil
}

// parseRational accepts either "n" or "n/d".
func parseRational(s string) (number.Number, error) {
	parts := strings.SplitN(s, "/", 2)
	n, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return number.Number{}, fmt.Errorf("invalid rational %q: %w", s, err)
	}
	if len(parts) == 1 {
		return number.NewNatural(n, 1), nil
	}
	d, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return number.Number{}, fmt.Errorf("invalid rational %q: %w", s, err)
	}
	return number.NewNatural(n, d), nil
}

func parseHex(s string) ([]byte, error) {
	s = strings.ReplaceAll(s, " ", "")
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("odd-length hex string %q", s)
	}
	buf := make([]byte, len(s)/2)
	for i := range buf {
		var v int
		if _, err := fmt.Sscanf(s[i*2:i*2+2], "%02x", &v); err != nil {
			return nil, fmt.Errorf("invalid hex byte in %q: %w", s, err)
		}
		buf[i] = byte(v)
	}
	return buf, nil
}

// parseExprFile reads "op a b" lines, one expression per line, blank lines
// and lines starting with '#' are skipped.
func parseExprFile(f *os.File) ([]batch.Expr, error) {
	var exprs []batch.Expr
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 3 {
			return nil, fmt.Errorf("line %d: expected 'op a b', got %q", lineNo, line)
		}
		a, err := parseRational(fields[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		b, err := parseRational(fields[2])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		exprs = append(exprs, batch.Expr{Text: line, Op: batch.Op(fields[0]), A: a, B: b})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return exprs, nil
}
