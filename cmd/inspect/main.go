package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/barrios-a2i/lanesight/internal/agents"
	"github.com/barrios-a2i/lanesight/internal/store"
	_ "modernc.org/sqlite"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to lanesight.db")
	last := flag.Int("last", 20, "show N most recent runs")
	game := flag.String("game", "", "filter to one game, or show its latest package")
	pkg := flag.Bool("package", false, "print the latest coach package for --game")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: inspect --db path/to/lanesight.db [--last N] [--game id] [--package] [--json]")
		os.Exit(2)
	}

	st, err := store.Open(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	switch {
	case *pkg:
		if *game == "" {
			fmt.Fprintln(os.Stderr, "--package requires --game")
			os.Exit(2)
		}
		err = runPackageMode(st, *game, *jsonOut)
	default:
		err = runListMode(st, *game, *last, *jsonOut)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region list-mode

type runOut struct {
	GameID     string  `json:"game_id,omitempty"`
	Status     string  `json:"status"`
	State      string  `json:"state"`
	Confidence float64 `json:"confidence"`
	CostUSD    float64 `json:"cost_usd"`
	LatencyMS  float64 `json:"latency_ms"`
	Headline   string  `json:"headline,omitempty"`
	CreatedAt  string  `json:"created_at"`
}

func runListMode(st *store.Store, game string, last int, jsonOut bool) error {
	runs, err := st.ListRuns(game, last)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(os.Stderr, "no runs found")
		return nil
	}

	// Store returns DESC, reverse for chronological.
	rows := make([]runOut, len(runs))
	for i, r := range runs {
		out := runOut{
			GameID:     r.GameID,
			Status:     r.Status,
			State:      r.State,
			Confidence: r.Confidence,
			CostUSD:    r.CostUSD,
			LatencyMS:  r.LatencyMS,
			CreatedAt:  r.CreatedAt.Format("2006-01-02T15:04:05Z"),
		}
		if r.AdviceJSON != "" {
			var adv agents.LiveAdvice
			if err := json.Unmarshal([]byte(r.AdviceJSON), &adv); err == nil {
				out.Headline = adv.Headline
			}
		}
		rows[len(runs)-1-i] = out
	}

	if jsonOut {
		return printJSON(rows)
	}

	fmt.Printf("%-14s  %-20s  %5s  %8s  %8s  %s\n",
		"Game", "State", "Conf", "Cost", "Latency", "Time")
	for _, r := range rows {
		fmt.Printf("%-14s  %-20s  %5.2f  $%7.4f  %6.0fms  %s\n",
			shortID(r.GameID), r.State, r.Confidence, r.CostUSD, r.LatencyMS, r.CreatedAt)
		if r.Headline != "" {
			fmt.Printf("  %s\n", r.Headline)
		}
	}

	if game == "" {
		games, err := st.ListGames(10)
		if err != nil {
			return err
		}
		fmt.Printf("\nGames:\n")
		for _, g := range games {
			fmt.Printf("  %-14s  runs=%-4d  cost=$%.4f  last=%s\n",
				g.GameID, g.Runs, g.TotalCostUSD, g.LastSeen.Format("2006-01-02T15:04:05Z"))
		}
	}
	return nil
}

// #endregion list-mode

// #region package-mode

func runPackageMode(st *store.Store, game string, jsonOut bool) error {
	pkg, err := st.LatestPackage(game)
	if err != nil {
		return err
	}
	if jsonOut {
		return printJSON(pkg)
	}
	fmt.Println(pkg.Summary())
	return nil
}

// #endregion package-mode

// #region output

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func shortID(id string) string {
	if len(id) > 13 {
		return id[:13]
	}
	return id
}

// #endregion output
