package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"log"
	"os"
	"strings"
	"time"

	"github.com/barrios-a2i/lanesight/internal/analysis"
	"github.com/barrios-a2i/lanesight/internal/pipeline"
	"github.com/barrios-a2i/lanesight/internal/store"
	"github.com/barrios-a2i/lanesight/internal/vision"
)

// #region main
func main() {
	dbPath := envOr("LANESIGHT_DB", "lanesight.db")
	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	model := envOr("LANESIGHT_MODEL", "claude-sonnet-4-20250514")

	cfg := pipeline.DefaultConfig()
	cfg.UserChampion = envOr("LANESIGHT_CHAMPION", cfg.UserChampion)
	cfg.UserRole = envOr("LANESIGHT_ROLE", cfg.UserRole)
	cfg.PatchVersion = envOr("LANESIGHT_PATCH", cfg.PatchVersion)

	var client analysis.Client = analysis.NullClient{}
	if apiKey != "" {
		client = analysis.NewHTTPClient(apiKey, model)
	} else {
		log.Println("ANTHROPIC_API_KEY not set, running on local fallbacks only")
	}

	st, err := store.Open(dbPath)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer st.Close()

	p := pipeline.New(cfg, client, st)

	fmt.Println("LaneSight coach ready.")
	fmt.Printf("  DB: %s | Champion: %s (%s) | Patch: %s\n",
		dbPath, cfg.UserChampion, cfg.UserRole, cfg.PatchVersion)
	fmt.Println("Enter a screenshot path (or 'quit' to exit):")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		path := strings.TrimSpace(scanner.Text())
		if path == "" {
			continue
		}
		if path == "quit" || path == "exit" {
			break
		}

		frame, imageB64, err := loadScreenshot(path)
		if err != nil {
			log.Printf("load screenshot: %v", err)
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		res := p.Run(ctx, frame, imageB64)
		cancel()

		printResult(res)
	}

	fmt.Printf("Session cost: $%.4f\n", p.TotalCostUSD())
}
// #endregion main

// #region screenshot
// loadScreenshot decodes the image for local detection and re-encodes it
// as base64 PNG for the analysis request.
func loadScreenshot(path string) (vision.Frame, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return vision.Frame{}, "", fmt.Errorf("read %s: %w", path, err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return vision.Frame{}, "", fmt.Errorf("decode %s: %w", path, err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return vision.Frame{}, "", fmt.Errorf("encode png: %w", err)
	}
	return vision.NewFrame(img), base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
// #endregion screenshot

// #region output
func printResult(res pipeline.RunResult) {
	switch res.Status {
	case pipeline.StatusCooldown:
		fmt.Println("(cooldown, skipped)")
		return
	case pipeline.StatusNoGame:
		fmt.Printf("No game detected (state=%s, conf=%.2f)\n", res.State, res.Confidence)
		return
	}

	fmt.Printf("[%s] conf=%.2f cost=$%.4f latency=%.0fms\n",
		res.State, res.Confidence, res.CostUSD, res.LatencyMS)

	if res.Package != nil {
		fmt.Println(res.Package.Summary())
	}
	if res.Advice != nil {
		fmt.Printf("\n%s  [%s]\n", res.Advice.Headline, res.Advice.Mode)
		for _, step := range res.Advice.Next30Seconds {
			fmt.Printf("  - %s\n", step)
		}
		if res.Advice.AdjustmentReason != "" {
			fmt.Printf("  Build change (%s): %s\n",
				res.Advice.AdjustmentReason, strings.Join(res.Advice.FullBuildPath, " > "))
		}
	}
}
// #endregion output

// #region helpers
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
// #endregion helpers
