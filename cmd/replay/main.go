package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/barrios-a2i/lanesight/internal/replay"
)

// #region main

func main() {
	fixturePath := flag.String("fixture", "", "path to fixture JSON")
	verbose := flag.Bool("v", false, "print adjustment signals per capture")
	flag.Parse()

	if *fixturePath == "" {
		fmt.Fprintln(os.Stderr, "usage: replay --fixture path/to/fixture.json [-v]")
		os.Exit(2)
	}

	os.Exit(runFixtureMode(*fixturePath, *verbose))
}

// #endregion main

// #region output

func runFixtureMode(path string, verbose bool) int {
	f, err := replay.LoadFixture(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load fixture: %v\n", err)
		return 2
	}
	if f.Description != "" {
		fmt.Printf("%s\n\n", f.Description)
	}

	results, sess := replay.Replay(f.ToCaptures())

	expected := make([]string, len(f.ExpectedResults))
	for i, e := range f.ExpectedResults {
		expected[i] = e.Action
	}

	code := printComparison(results, expected, verbose)

	s := replay.Summarize(results, sess)
	fmt.Printf("\nSession: game=%s captures=%d starts=%d merges=%d deaths=%d ignored=%d\n",
		s.FinalContext.GameID, s.TotalCaptures, s.SessionStarts, s.Merges, s.Deaths, s.Ignored)
	for reason, n := range s.SignalCounts {
		fmt.Printf("  signal %-22s active on %d captures\n", reason, n)
	}
	return code
}

// printComparison outputs a comparison table and returns exit code.
// expected holds the reference actions from the fixture.
func printComparison(results []replay.Result, expected []string, verbose bool) int {
	fmt.Printf("%-12s| %-15s| %-15s| %s\n", "Capture", "Expected", "Replayed", "Match")
	fmt.Printf("%-12s+%-15s+%-15s+%s\n",
		"------------", "----------------", "----------------", "------")

	matches := 0
	total := len(results)
	if len(expected) < total {
		total = len(expected)
	}

	for i := 0; i < total; i++ {
		exp := expected[i]
		got := results[i].Action
		match := "DIFF"
		if exp == got {
			match = "OK"
			matches++
		}
		fmt.Printf("%-12s| %-15s| %-15s| %s\n", results[i].CaptureID, exp, got, match)
		if verbose && len(results[i].AdjustmentReasons) > 0 {
			fmt.Printf("%-12s|   signals: %v\n", "", results[i].AdjustmentReasons)
		}
	}

	diverge := total - matches
	fmt.Printf("\nSummary: %d total, %d match, %d diverge\n", total, matches, diverge)

	if diverge > 0 {
		return 1
	}
	return 0
}

// #endregion output
