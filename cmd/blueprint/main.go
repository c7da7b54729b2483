// Command blueprint emits, verifies, and inspects build description
// documents.
package main

import (
	"fmt"
	"time"

	"github.com/alecthomas/kong"

	"github.com/FocuswithJustin/blueprint/core/model"
	"github.com/FocuswithJustin/blueprint/core/plan"
	"github.com/FocuswithJustin/blueprint/internal/docio"
	"github.com/FocuswithJustin/blueprint/internal/logging"
	"github.com/FocuswithJustin/blueprint/internal/manifest"
	"github.com/FocuswithJustin/blueprint/internal/sigcache"
)

const version = "0.1.0"

// CLI defines the command-line interface for blueprint.
var CLI struct {
	// Global flags
	LogLevel  string `name:"log-level" default:"info" enum:"debug,info,warn,error" help:"Log level"`
	LogFormat string `name:"log-format" default:"text" enum:"text,json" help:"Log output format"`

	Emit    EmitCmd    `cmd:"" help:"Build a document from a workspace manifest"`
	Verify  VerifyCmd  `cmd:"" help:"Verify document references and signatures"`
	Inspect InspectCmd `cmd:"" help:"Print a summary of a document's bodies"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// EmitCmd builds and writes a document from a manifest.
type EmitCmd struct {
	Manifest string `arg:"" help:"Path to workspace manifest" type:"existingfile"`
	Out      string `name:"out" short:"o" required:"" help:"Output document path" type:"path"`
	Compress string `name:"compress" default:"none" enum:"none,xz,gzip" help:"Compression for the output document"`
	Indent   bool   `name:"indent" help:"Pretty-print the JSON output (uncompressed only)"`
	Cache    string `name:"cache" help:"Signature cache database; reports which bodies changed" type:"path"`
}

func (c *EmitCmd) Run() error {
	start := time.Now()

	m, err := manifest.Load(c.Manifest)
	if err != nil {
		return fmt.Errorf("failed to load manifest: %w", err)
	}
	ws, err := m.Build()
	if err != nil {
		return fmt.Errorf("failed to build workspace: %w", err)
	}
	doc, err := plan.Assemble(ws)
	if err != nil {
		return fmt.Errorf("failed to assemble document: %w", err)
	}

	opts := docio.WriteOptions{
		Compression: docio.CompressionType(c.Compress),
		Indent:      c.Indent,
	}
	if err := docio.WriteFile(c.Out, doc, opts); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	logging.DocumentEmitted(c.Out, len(doc), time.Since(start))

	if c.Cache != "" {
		cache, err := sigcache.Open(c.Cache)
		if err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
		defer cache.Close()

		stats, err := cache.Record(doc)
		if err != nil {
			return fmt.Errorf("failed to record document in cache: %w", err)
		}
		logging.CacheResult(c.Cache, stats.Unchanged, stats.Updated, stats.New)
		for _, guid := range stats.Changed {
			fmt.Printf("changed\t%s\n", guid)
		}
	}
	return nil
}

// VerifyCmd checks a document's internal consistency.
type VerifyCmd struct {
	Path string `arg:"" help:"Path to document file" type:"existingfile"`
}

func (c *VerifyCmd) Run() error {
	doc, err := docio.ReadFile(c.Path)
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}
	if err := doc.Verify(); err != nil {
		logging.VerifyFailure(c.Path, err)
		return fmt.Errorf("reference check failed: %w", err)
	}
	if err := doc.VerifySignatures(); err != nil {
		logging.VerifyFailure(c.Path, err)
		return fmt.Errorf("signature check failed: %w", err)
	}
	fmt.Printf("ok\t%d bodies\n", len(doc))
	return nil
}

// InspectCmd prints a per-body summary of a document.
type InspectCmd struct {
	Path string `arg:"" help:"Path to document file" type:"existingfile"`
	GUID string `name:"guid" help:"Print the full contents of one body"`
}

func (c *InspectCmd) Run() error {
	doc, err := docio.ReadFile(c.Path)
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}

	if c.GUID != "" {
		for _, b := range doc {
			if b.GUID == c.GUID {
				data, err := docio.Encode(plan.Document{b}, docio.WriteOptions{Indent: true})
				if err != nil {
					return fmt.Errorf("failed to encode body: %w", err)
				}
				fmt.Println(string(data))
				return nil
			}
		}
		return fmt.Errorf("no body with guid %q", c.GUID)
	}

	fmt.Printf("schema version %d, %d bodies\n", model.SchemaVersion, len(doc))
	for _, b := range doc {
		fmt.Printf("%s\t%s\t%s\n", b.Type, b.GUID, b.Signature)
	}
	return nil
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("blueprint version %s\n", version)
	return nil
}

func logLevel(s string) logging.Level {
	switch s {
	case "debug":
		return logging.LevelDebug
	case "warn":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("blueprint"),
		kong.Description("Build description document toolkit"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	format := logging.FormatText
	if CLI.LogFormat == "json" {
		format = logging.FormatJSON
	}
	logging.InitLogger(logLevel(CLI.LogLevel), format)

	err := ctx.Run(ctx)
	ctx.FatalIfErrorf(err)
}
