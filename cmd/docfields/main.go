// Command docfields extracts structured fields from resumes, invoices and
// LaTeX files and prints them.
//
//	docfields [-kind resume|invoice|latex] [-format table|json|markdown|html|xlsx] [-o out] FILE...
//
// When a file's kind cannot be told from its name and -kind is not given,
// the kind is asked for on stdin.
package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgallion1/docfields/internal/config"
	"github.com/dgallion1/docfields/internal/export"
	"github.com/dgallion1/docfields/internal/parser"
	"github.com/dgallion1/docfields/internal/pipeline"
	"github.com/dgallion1/docfields/internal/render"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type options struct {
	kind   parser.Kind
	format string
	out    string
	render render.Options
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg := config.Load()

	fs := flag.NewFlagSet("docfields", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		kindFlag = fs.String("kind", "", "document kind: resume, invoice or latex (default: from file name)")
		format   = fs.String("format", "table", "output format: table, json, markdown, html or xlsx")
		out      = fs.String("o", "", "output file (default stdout; xlsx defaults to <name>.xlsx)")
		long     = fs.Int("long", cfg.LongFieldChars, "text longer than this many characters is shown as a block")
		verbose  = fs.Bool("v", false, "log extraction details to stderr")
		pdftext  = fs.Bool("pdftotext", cfg.PDFFallbackPdftotext, "retry unreadable PDFs with the pdftotext binary")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(stderr, "usage: docfields [flags] FILE...")
		fs.PrintDefaults()
		return 2
	}

	opts := options{format: strings.ToLower(*format), out: *out, kind: parser.KindUnknown}
	switch opts.format {
	case "table", "json", "markdown", "html", "xlsx":
	default:
		fmt.Fprintf(stderr, "Error: unsupported format %q\n", *format)
		return 2
	}
	if *kindFlag != "" {
		k, err := parser.ParseKind(*kindFlag)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 2
		}
		opts.kind = k
	}
	if opts.out != "" && fs.NArg() > 1 {
		fmt.Fprintln(stderr, "Error: -o needs a single input file")
		return 2
	}
	opts.render = render.DefaultOptions()
	opts.render.LongText = *long

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	text := &parser.TextExtractor{FallbackPdftotext: *pdftext}
	svc := pipeline.NewService(text, pipeline.NewStats(cfg.StatsWindow), log)

	in := bufio.NewScanner(stdin)
	status := 0
	for _, path := range fs.Args() {
		if err := extractOne(svc, in, stdout, stderr, path, opts); err != nil {
			fmt.Fprintf(stderr, "Error: %s: %v\n", path, err)
			status = 1
		}
	}
	return status
}

func extractOne(svc *pipeline.Service, in *bufio.Scanner, stdout, stderr io.Writer, path string, opts options) error {
	kind := opts.kind
	res, err := svc.Extract(path, kind)
	if errors.Is(err, pipeline.ErrNeedKind) {
		kind, err = promptKind(in, stderr, filepath.Base(path))
		if err != nil {
			return err
		}
		res, err = svc.Extract(path, kind)
	}
	if err != nil {
		return err
	}
	return write(res, path, stdout, opts)
}

// promptKind asks for a document kind until it gets a valid answer.
func promptKind(in *bufio.Scanner, out io.Writer, name string) (parser.Kind, error) {
	for {
		fmt.Fprintf(out, "Cannot tell what %s is. Document kind [resume/invoice/latex]: ", name)
		if !in.Scan() {
			if err := in.Err(); err != nil {
				return parser.KindUnknown, fmt.Errorf("read kind: %w", err)
			}
			return parser.KindUnknown, pipeline.ErrNeedKind
		}
		k, err := parser.ParseKind(in.Text())
		if err == nil {
			return k, nil
		}
		fmt.Fprintf(out, "%v\n", err)
	}
}

func write(res *pipeline.Result, path string, stdout io.Writer, opts options) error {
	if opts.format == "xlsx" {
		name := opts.out
		if name == "" {
			name = strings.TrimSuffix(path, filepath.Ext(path)) + ".xlsx"
		}
		f, err := os.Create(name)
		if err != nil {
			return fmt.Errorf("create %s: %w", name, err)
		}
		if err := export.WriteXLSX(f, res.Record); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "wrote %s\n", name)
		return nil
	}

	w := stdout
	if opts.out != "" {
		f, err := os.Create(opts.out)
		if err != nil {
			return fmt.Errorf("create %s: %w", opts.out, err)
		}
		defer f.Close()
		w = f
	}

	switch opts.format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(res.Record)
	case "markdown":
		_, err := io.WriteString(w, render.Markdown(render.Build(res.Record, opts.render)))
		return err
	case "html":
		out, err := render.HTML(render.Build(res.Record, opts.render))
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, out)
		return err
	}

	fmt.Fprintf(w, "%s (%s)\n", res.File, res.Kind)
	return render.WriteTable(w, render.Build(res.Record, opts.render))
}
