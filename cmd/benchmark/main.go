package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/samber/lo"

	"github.com/nav-in27/timetable-generator/pkg/engine"
	"github.com/nav-in27/timetable-generator/pkg/model"
)

const fixtureDirectory = "../../test/fixtures/"

type runResult struct {
	Fixture             string
	Classes             int
	Teachers            int
	Rooms               int
	Baskets             int
	Optimized           bool
	DurationMs          int64
	Success             bool
	CoverageGaps        int
	InvariantViolations int
}

func main() {
	fixtures, err := os.ReadDir(fixtureDirectory)
	if err != nil {
		log.Fatalf("cannot read fixture directory: %v", err)
	}

	results := make([]runResult, 0, len(fixtures)*2)
	for _, file := range fixtures {
		if file.IsDir() {
			continue
		}
		path := fixtureDirectory + file.Name()
		snapshot, err := model.SnapshotFromJSON(path)
		if err != nil {
			log.Fatalf("cannot parse fixture %v: %v", path, err)
		}

		for _, optimize := range []bool{false, true} {
			fmt.Printf("Benchmarking fixture %q with optimizer=%v\n", file.Name(), optimize)
			results = append(results, measure(file.Name(), snapshot, optimize))
		}
	}

	toCsv(results)
}

func measure(name string, snapshot model.Snapshot, optimize bool) runResult {
	start := time.Now()
	result, err := engine.Generate(context.Background(), snapshot, 1, engine.Options{RunOptimizer: optimize})
	if err != nil {
		log.Fatalf("generation failed for %v: %v", name, err)
	}
	duration := time.Since(start)

	return runResult{
		Fixture:             name,
		Classes:             len(snapshot.Classes),
		Teachers:            len(snapshot.Teachers),
		Rooms:               len(snapshot.Rooms),
		Baskets:             len(snapshot.Baskets),
		Optimized:           optimize,
		DurationMs:          duration.Milliseconds(),
		Success:             result.Report.Success,
		CoverageGaps:        len(result.Report.CoverageGaps),
		InvariantViolations: len(result.Report.InvariantViolations),
	}
}

func toCsv(results []runResult) {
	file, err := os.Create("benchmark_results.csv")
	if err != nil {
		log.Panicf("cannot create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"Fixture", "Classes", "Teachers", "Rooms", "Baskets", "Optimized", "Duration(ms)", "Success", "CoverageGaps", "InvariantViolations"}
	if err := writer.Write(header); err != nil {
		log.Panicf("cannot write CSV header: %v", err)
	}

	records := lo.Map(results, func(r runResult, _ int) []string {
		return []string{
			r.Fixture,
			fmt.Sprintf("%d", r.Classes),
			fmt.Sprintf("%d", r.Teachers),
			fmt.Sprintf("%d", r.Rooms),
			fmt.Sprintf("%d", r.Baskets),
			fmt.Sprintf("%v", r.Optimized),
			fmt.Sprintf("%d", r.DurationMs),
			fmt.Sprintf("%v", r.Success),
			fmt.Sprintf("%d", r.CoverageGaps),
			fmt.Sprintf("%d", r.InvariantViolations),
		}
	})
	for _, record := range records {
		if err := writer.Write(record); err != nil {
			log.Panicf("cannot write CSV record: %v", err)
		}
	}
}
