// Package main is the entry point for the nbshadow inspection tool.
//
// It loads a notebook, synthesizes the bridge state an editor would hold
// for it, and runs a protocol result payload (stdin) through the identity
// rewriter, printing the rewritten payload. Useful for checking what a
// picker or jump target will actually receive for a given operation.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dshills/nbshadow/internal/bridge"
	"github.com/dshills/nbshadow/internal/bridge/config"
	"github.com/dshills/nbshadow/internal/notebook"
	"github.com/dshills/nbshadow/internal/preview"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

type cliOptions struct {
	notebookPath string
	shadowPath   string
	method       string
	configPath   string
	raw          bool
	showVersion  bool
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	if opts.showVersion {
		fmt.Printf("nbshadow %s (%s)\n", version, commit)
		return 0
	}

	if opts.notebookPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -notebook is required")
		flag.Usage()
		return 2
	}

	cfg := config.Default()
	if opts.configPath != "" {
		var err error
		cfg, err = config.Load(opts.configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	b, err := bridge.New(&inlineHost{}, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize bridge: %v\n", err)
		return 1
	}
	defer b.Close()

	st, err := notebook.LoadFile(opts.notebookPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	st.ShadowPath = opts.shadowPath
	if st.ShadowPath == "" {
		st.ShadowPath = deriveShadowPath(st.FacadePath, st.ShadowLanguage)
	}
	b.Notebooks().Add(st)

	payload, err := io.ReadAll(os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: read payload: %v\n", err)
		return 1
	}

	out, err := rewritePayload(b, st, opts, payload)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	fmt.Println(string(out))
	return 0
}

func rewritePayload(b *bridge.Bridge, st *notebook.State, opts cliOptions, payload []byte) ([]byte, error) {
	if opts.raw {
		return b.RewriteRawResult(payload, st, opts.method)
	}

	var result any
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("parse payload: %w", err)
	}

	rewritten := b.RewriteResult(result, st, opts.method)
	return json.MarshalIndent(rewritten, "", "  ")
}

func parseFlags() cliOptions {
	var opts cliOptions

	flag.StringVar(&opts.notebookPath, "notebook", "", "path to the .ipynb facade document")
	flag.StringVar(&opts.shadowPath, "shadow", "", "path of the shadow document (derived from the notebook if empty)")
	flag.StringVar(&opts.method, "op", "textDocument/references", "protocol method the payload answers")
	flag.StringVar(&opts.configPath, "config", "", "path to a TOML config file")
	flag.BoolVar(&opts.raw, "raw", false, "rewrite the payload without decoding it")
	flag.BoolVar(&opts.showVersion, "version", false, "print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: nbshadow -notebook FILE [-op METHOD] [flags] < result.json\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}

	flag.Parse()
	return opts
}

// deriveShadowPath mirrors the editor's shadow placement convention: a
// .shadow directory next to the notebook, extension from the language.
func deriveShadowPath(facadePath, language string) string {
	dir := filepath.Dir(facadePath)
	base := strings.TrimSuffix(filepath.Base(facadePath), filepath.Ext(facadePath))
	return filepath.Join(dir, ".shadow", base+shadowExt(language))
}

func shadowExt(language string) string {
	switch language {
	case "python":
		return ".py"
	case "julia":
		return ".jl"
	case "r", "R":
		return ".r"
	default:
		return ".txt"
	}
}

// inlineHost is a headless editor host: no views exist and deferred work
// runs immediately.
type inlineHost struct{}

func (*inlineHost) Views() []preview.View { return nil }

func (*inlineHost) ViewByID(notebook.ViewID) (preview.View, bool) { return nil, false }

func (*inlineHost) Defer(fn func()) { fn() }
