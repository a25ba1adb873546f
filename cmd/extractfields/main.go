package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/parsewell/invoice-tracker/internal/fields"
	"github.com/parsewell/invoice-tracker/internal/ocr"
)

// extractfields is a diagnostic tool: feed it invoice text (a file argument
// or stdin) and it prints the extracted record as JSON.
func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	var (
		text []byte
		err  error
	)
	switch len(os.Args) {
	case 1:
		text, err = io.ReadAll(os.Stdin)
	case 2:
		text, err = os.ReadFile(os.Args[1])
	default:
		logger.Error("usage", "cmd", "extractfields [text-file]")
		os.Exit(2)
	}
	if err != nil {
		logger.Error("read input", "error", err)
		os.Exit(1)
	}

	rec := fields.Extract(ocr.Normalize(string(text)))
	if rec.IsEmpty() {
		logger.Warn("no data extracted")
	}

	out, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		logger.Error("encode record", "error", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
