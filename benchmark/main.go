// Package main provides a performance benchmarking tool for the simbook CLI.
// It measures how long capacity discovery takes on emulated cards with different name limits,
// running each test multiple times, treating the first successful cached run as cold and averaging the rest as warm,
// generating CSV output for performance analysis and documentation.
//
// Prerequisites:
// - simbook binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory where card and cache files are created
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (no-cache average, cold run and average of warm runs).
type BenchmarkResult struct {
	Card        string
	Limit       int
	NoCacheTime string
	ColdTime    string
	WarmTime    string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir     string
	Timeout     time.Duration
	NoCacheRuns int
	CacheRuns   int
	NameLimits  []int
}

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		WorkDir:     os.Args[1],
		Timeout:     time.Minute,
		NoCacheRuns: 3,
		CacheRuns:   4,
		NameLimits:  []int{52, 30, 14, 1},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the simbook binary exists and the work dir is usable
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("simbook"); err != nil {
		return fmt.Errorf("simbook binary not found in PATH")
	}
	return os.MkdirAll(config.WorkDir, 0o755)
}

// runBenchmarks provisions one card per name limit and benchmarks each
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d cards, %v timeout, no-cache: %d runs, cache: %d runs\n",
		len(config.NameLimits), config.Timeout, config.NoCacheRuns, config.CacheRuns)

	for _, limit := range config.NameLimits {
		name := fmt.Sprintf("card-%02d", limit)
		cardPath := filepath.Join(config.WorkDir, name+".db")
		_ = os.Remove(cardPath)

		initCmd := exec.Command("simbook", "card", "init", "--card", cardPath,
			"--serial", "bench-"+name, "--max-name-length", strconv.Itoa(limit))
		if output, err := initCmd.CombinedOutput(); err != nil {
			fmt.Printf("Warning: failed to provision %s: %v\nOutput: %s\n", name, err, string(output))
			continue
		}

		results = append(results, runBenchmarkSuite(config, name, cardPath, limit))
	}

	return results
}

// runBenchmarkSuite runs both no-cache and cache benchmarks for one card
func runBenchmarkSuite(config BenchmarkConfig, name, cardPath string, limit int) BenchmarkResult {
	fmt.Printf("Benchmarking %s (limit %d)\n", name, limit)
	cachePath := filepath.Join(config.WorkDir, name+"_cache.db")
	_ = os.Remove(cachePath)

	runPhase := func(cacheBackend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, cardPath, cacheBackend, cachePath, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avgTime = fmt.Sprintf("%.3fs", sum/float64(len(times)))
		}
		return cold, avgTime
	}

	// Phase 1: every run probes the card
	_, noCacheAvg := runPhase("none", config.NoCacheRuns, "No-cache")

	// Phase 2: first run probes, later runs read the cache
	coldTime, warmAvg := runPhase("sqlite", config.CacheRuns, "Cache")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-cache average: %s, Cold time: %s, Warm average: %s\n", noCacheAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Card:        name,
		Limit:       limit,
		NoCacheTime: noCacheAvg,
		ColdTime:    coldTimeStr,
		WarmTime:    warmAvg,
	}
}

// runBenchmark executes capacity show multiple times and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, cardPath, cacheBackend, cachePath string, numRuns int) (coldTime float64, warmTimes []float64) {
	args := []string{"capacity", "show", "--output", "json", "--card", cardPath,
		"--cache-backend", cacheBackend, "--cache-db-connect", cachePath}

	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()
		cmd := exec.Command("simbook", args...)

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// isSuccess checks if command output carries a capacity report
func isSuccess(output []byte) bool {
	outputStr := string(output)
	return strings.Contains(outputStr, `"max_name_length"`) && strings.Contains(outputStr, `"source"`)
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/simbook_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"card", "limit", "no_cache_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, result := range results {
		record := []string{result.Card, strconv.Itoa(result.Limit), result.NoCacheTime, result.ColdTime, result.WarmTime}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, result := range results {
		fmt.Printf("  %-8s (limit %2d): No-cache: %s, Cold: %s, Warm: %s\n",
			result.Card, result.Limit, result.NoCacheTime, result.ColdTime, result.WarmTime)
	}
}
