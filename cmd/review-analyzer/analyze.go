package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/spacesedan/review-analyzer/config"
	"github.com/spacesedan/review-analyzer/internal/models"
	"github.com/spacesedan/review-analyzer/internal/utils"
)

// analyzeCommand prints only the result document to stdout. Logs go wherever
// the default logger points.
func analyzeCommand(cfg config.Config, stdin io.Reader, stdout io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "analyze",
		Usage: "Summarize reviews from a file or stdin and print the result",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "read reviews from `PATH` instead of stdin",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: `input is a {"reviews": [...]} document`,
			},
			&cli.BoolFlag{
				Name:  "offline",
				Usage: "skip the external summarizer",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			in := stdin
			if path := cmd.String("file"); path != "" {
				f, err := os.Open(path)
				if err != nil {
					return fmt.Errorf("open reviews file: %w", err)
				}
				defer f.Close()
				in = f
			}

			reviews, err := readReviews(in, cmd.Bool("json"))
			if err != nil {
				return err
			}

			analyzer, _ := newAnalyzer(cfg, cmd.Bool("offline"))
			result, err := analyzer.Analyze(ctx, models.NewReviewBatch(reviews))
			if err != nil {
				return err
			}
			return writeResult(stdout, result)
		},
	}
}

// readReviews takes one review per non-blank line, or a {"reviews": [...]}
// document when asJSON is set.
func readReviews(r io.Reader, asJSON bool) ([]string, error) {
	if asJSON {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("read reviews: %w", err)
		}
		var req models.AnalyzeRequest
		if err := utils.DeserializeFromJSON(data, &req); err != nil {
			return nil, fmt.Errorf("decode reviews: %w", err)
		}
		return req.Reviews, nil
	}

	var reviews []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		reviews = append(reviews, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read reviews: %w", err)
	}
	return reviews, nil
}

func writeResult(w io.Writer, result models.AnalysisResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
