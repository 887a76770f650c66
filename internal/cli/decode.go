package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ForrSiis/vsv"
	"github.com/ForrSiis/vsv/ast"
	"github.com/ForrSiis/vsv/internal/formatter"
)

type decodeOptions struct {
	text     string
	format   string
	charset  string
	stripCR  bool
	unescape bool
	loose    bool
	report   bool
	watch    bool
}

func newDecodeCmd(a *app) *cobra.Command {
	o := &decodeOptions{}

	cmd := &cobra.Command{
		Use:   "decode [path]",
		Short: "Decode a VSV document and print its rows",
		Long: `Decode a VSV file, standard input ("-") or literal text (--text) and
print the decoded rows.

If the source cannot be read the command prints an empty document and
exits with an error.`,
		Example: `  vsv decode menu.vsv
  vsv decode --format json --strip-cr export.vsv
  cat names.vsv | vsv decode -
  vsv decode --text ',a,b,c'`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDecode(cmd, args, o)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&o.text, "text", "t", "", "decode this text instead of a file")
	flags.StringVarP(&o.format, "format", "f", "", "output format: text, lists, json, pretty")
	flags.StringVar(&o.charset, "charset", "", "source character encoding, e.g. latin1 or utf-16le")
	flags.BoolVar(&o.stripCR, "strip-cr", false, "strip a trailing carriage return from every line")
	flags.BoolVar(&o.unescape, "unescape", false, "decode HTML entities before parsing")
	flags.BoolVar(&o.loose, "loose", false, "pair any doubled opening bracket with any doubled closing bracket")
	flags.BoolVar(&o.report, "report", false, "print skipped lines to stderr")
	flags.BoolVarP(&o.watch, "watch", "w", false, "decode the file again whenever it changes")
	return cmd
}

func (a *app) runDecode(cmd *cobra.Command, args []string, o *decodeOptions) error {
	cfg := a.cfg
	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Format = o.format
	}
	if flags.Changed("charset") {
		cfg.Charset = o.charset
	}
	if flags.Changed("strip-cr") {
		cfg.StripCR = o.stripCR
	}
	if flags.Changed("unescape") {
		cfg.UnescapeEntities = o.unescape
	}
	if flags.Changed("loose") {
		cfg.LooseBrackets = o.loose
	}

	style, err := formatter.ParseStyle(cfg.Format)
	if err != nil {
		return err
	}

	hasText := flags.Changed("text")
	switch {
	case hasText && len(args) > 0:
		return errors.New("use either a path or --text, not both")
	case !hasText && len(args) == 0:
		return errors.New("nothing to decode: give a path, - for stdin, or --text")
	case o.watch && (hasText || args[0] == "-"):
		return errors.New("--watch needs a file path")
	}

	opts := append(cfg.Options(), vsv.WithLogger(a.logger))
	if o.report {
		stderr := cmd.ErrOrStderr()
		opts = append(opts, vsv.OnSkip(func(s vsv.SkippedLine) {
			fmt.Fprintf(stderr, "line %d: skipped %s line %q\n", s.Line, s.Reason, s.Text)
		}))
	}

	decode := func() error {
		var doc *ast.Document
		var err error
		switch {
		case hasText:
			doc, err = vsv.Decode(o.text, opts...)
		case args[0] == "-":
			doc, err = vsv.NewDecoder(cmd.InOrStdin(), opts...).Decode()
		default:
			doc, err = vsv.DecodeFile(args[0], opts...)
		}

		if ferr := formatter.New(cmd.OutOrStdout(), style, nil).Format(doc); ferr != nil {
			return ferr
		}
		return err
	}

	if !o.watch {
		return decode()
	}

	// In watch mode a failed decode is logged by the decoder and the
	// command keeps waiting for the next change.
	_ = decode()
	w, err := newFileWatcher(args[0], a.logger)
	if err != nil {
		return err
	}
	defer w.Close()
	return w.Run(cmd.Context(), decode)
}
