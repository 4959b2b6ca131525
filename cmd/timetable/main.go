package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/samber/lo"

	"github.com/nav-in27/timetable-generator/pkg/engine"
	"github.com/nav-in27/timetable-generator/pkg/model"
)

func main() {
	filePathPtr := flag.String("file", "", "Path to the input snapshot file")
	outFilePathPtr := flag.String("out", "", "Path to the file where the output will be written; if empty, it'll be written into the Standard Output")
	seedPtr := flag.Int64("seed", 1, "Deterministic seed for the run")
	optimizePtr := flag.Bool("optimize", false, "Run the optional genetic optimizer between Phase 6 and Phase 7")
	restrictPtr := flag.String("restrict-to-classes", "", "Comma-separated class ids to restrict regular placement to; empty means every class")
	flag.Parse()

	filePath := *filePathPtr
	if filePath == "" {
		log.Fatal("an input file must be specified")
	}

	snapshot, err := model.SnapshotFromJSON(filePath)
	if err != nil {
		log.Fatalf("cannot parse input file: %v", err)
	}

	opts := engine.Options{RunOptimizer: *optimizePtr}
	if restrict := strings.TrimSpace(*restrictPtr); restrict != "" {
		opts.RestrictToClasses = parseClassList(restrict)
	}

	result, err := engine.Generate(context.Background(), snapshot, *seedPtr, opts)
	if err != nil {
		log.Fatalf("generation failed: %v", err)
	}

	output, err := json.Marshal(map[string]any{
		"allocations": result.Allocations,
		"report":      result.Report,
	})
	if err != nil {
		log.Fatalf("an error occurred while building output json: %v", err)
	}

	outFile := *outFilePathPtr
	if outFile == "" {
		fmt.Println(string(output))
	} else if err := os.WriteFile(outFile, output, 0666); err != nil {
		log.Fatalf("an error occurred while writing to the output file: %v", err)
	}

	if !result.Report.Success {
		os.Exit(20)
	}
	os.Exit(0)
}

func parseClassList(raw string) map[uint64]bool {
	ids := strings.Split(raw, ",")
	return lo.SliceToMap(ids, func(id string) (uint64, bool) {
		return lo.Must(parseUint64(strings.TrimSpace(id))), true
	})
}

func parseUint64(s string) (uint64, error) {
	var value uint64
	_, err := fmt.Sscanf(s, "%d", &value)
	return value, err
}
