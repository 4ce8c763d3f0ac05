// Package main is the entry point for the scenestorm world document tool.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dshills/scenestorm/internal/config"
	"github.com/dshills/scenestorm/internal/editor"
	"github.com/dshills/scenestorm/internal/editor/mode"
	"github.com/dshills/scenestorm/internal/scene"
	"github.com/dshills/scenestorm/internal/scene/wire"
	"github.com/dshills/scenestorm/internal/script"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configPath   string
		validatePath string
		convertPath  string
		outPath      string
		scriptPath   string
		worldPath    string
		showVersion  bool
	)
	flag.StringVar(&configPath, "config", "", "Path to configuration file")
	flag.StringVar(&validatePath, "validate", "", "Validate a world document file and exit")
	flag.StringVar(&convertPath, "convert", "", "Re-encode a world document at the current schema version")
	flag.StringVar(&outPath, "o", "", "Output path for -convert (default stdout)")
	flag.StringVar(&scriptPath, "script", "", "Run a Lua script against an editing session")
	flag.StringVar(&worldPath, "world", "", "World document to load into the session")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("scenestorm %s (%s)\n", version, commit)
		return 0
	}

	settings, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	switch {
	case validatePath != "":
		return validateFile(validatePath)
	case convertPath != "":
		return convertFile(convertPath, outPath)
	case scriptPath != "":
		return runScript(settings, scriptPath, worldPath)
	default:
		flag.Usage()
		return 2
	}
}

// validateFile checks a world document and prints every violation.
func validateFile(path string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if _, err := wire.Unmarshal(data); err != nil {
		var verr *wire.ValidationError
		if errors.As(err, &verr) {
			for _, msg := range verr.Errors.Messages() {
				fmt.Fprintf(os.Stderr, "%s: %s\n", path, msg)
			}
			return 1
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	fmt.Printf("%s: valid\n", path)
	return 0
}

// convertFile re-encodes a document, stamping the current schema version.
func convertFile(path, outPath string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	doc, err := wire.Unmarshal(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	out, err := wire.Marshal(doc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if outPath == "" {
		fmt.Println(string(out))
		return 0
	}
	if err := os.WriteFile(outPath, append(out, '\n'), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// runScript executes a Lua script against a session configured from
// settings, optionally loading a world document first. With -world, the
// autosave policy writes unsaved changes back to that file before a gated
// mode switch.
func runScript(settings config.Settings, scriptPath, worldPath string) int {
	log := editor.NewLogger(editor.LoggerConfig{
		Level:  editor.ParseLogLevel(settings.LogLevel),
		Output: os.Stderr,
		Prefix: "scenestorm",
	})

	var doc *scene.Document
	if worldPath != "" {
		data, err := os.ReadFile(worldPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		doc, err = wire.Unmarshal(data)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	opts := editor.Options{
		Document:     doc,
		InitialMode:  mode.Mode(settings.InitialMode),
		HistoryLimit: settings.HistoryLimit,
		Logger:       log,
	}
	switch {
	case settings.Autosave && worldPath != "":
		opts.Autosave = func(_ context.Context, res *editor.ExportResult) error {
			return os.WriteFile(worldPath, res.Data, 0o644)
		}
	case settings.ConfirmSwitch:
		// Headless runs cannot prompt; note the discard and allow it.
		opts.Confirm = func(_ context.Context, from, to mode.Mode) (bool, error) {
			fmt.Fprintf(os.Stderr, "discarding unsaved changes (%s -> %s)\n", from, to)
			return true, nil
		}
	}
	session := editor.New(opts)
	defer session.Close()

	if !filepath.IsAbs(scriptPath) && settings.ScriptDir != "" {
		if _, err := os.Stat(scriptPath); err != nil {
			scriptPath = filepath.Join(settings.ScriptDir, scriptPath)
		}
	}

	eng := script.New(session)
	defer eng.Close()
	if err := eng.Run(scriptPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
