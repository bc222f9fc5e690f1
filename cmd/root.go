// Package cmd provides the potx command line.
package cmd

import (
	"errors"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mevdschee/potx/config"
	"github.com/mevdschee/potx/translate"
)

// Version of potx.
const Version = "1.0.0"

// errInterrupted is returned when the run was stopped by a signal after a
// partial catalog was written.
var errInterrupted = errors.New("interrupted by user")

// errorWithUsage marks an error that should display command usage.
type errorWithUsage struct{ msg string }

func (e errorWithUsage) Error() string { return e.msg }

func newUserError(a ...interface{}) error {
	return errorWithUsage{msg: fmt.Sprint(a...)}
}

func newUserErrorF(format string, a ...interface{}) error {
	return errorWithUsage{msg: fmt.Sprintf(format, a...)}
}

// Response wraps the error of the executed command.
type Response struct {
	// Err contains the error returned from the command executed.
	Err error

	// Cmd contains the command object.
	Cmd *cobra.Command
}

// IsUserError reports whether usage should be shown for Err.
func (r Response) IsUserError() bool {
	var e errorWithUsage
	return errors.As(r.Err, &e)
}

// IsInterrupted reports whether the run was stopped by a signal.
func (r Response) IsInterrupted() bool {
	return errors.Is(r.Err, errInterrupted)
}

type rootCommand struct {
	cmd *cobra.Command
	job job
}

// Command builds the root command on first use.
func (v *rootCommand) Command() *cobra.Command {
	if v.cmd != nil {
		return v.cmd
	}

	v.cmd = &cobra.Command{
		Use:   "potx [file.po] [language]",
		Short: "Translate the strings of a gettext catalog",
		Long: `Translate every msgid of a gettext catalog and write the result to
<name>_<language>.po next to the input file.

Missing arguments are asked for interactively. Strings that fail to
translate keep their source text and are listed in the final report.

Only the first line of a multiline msgid is translated, and escape
sequences are passed to the translation service as written.`,
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return v.Execute(cmd, args)
		},
	}
	v.cmd.Version = Version
	v.cmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}
`)
	config.BindFlags(v.cmd.PersistentFlags())

	v.cmd.AddCommand(newShowConfigCmd(), newVersionCmd())
	return v.cmd
}

// Execute translates one catalog.
func (v *rootCommand) Execute(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return newUserError(err)
	}
	initLog(cfg, cmd.ErrOrStderr())

	input, lang, err := promptMissing(cmd.InOrStdin(), cmd.OutOrStdout(), args)
	if err != nil {
		return err
	}
	if input == "" {
		return newUserError("no .po file given")
	}
	if _, err := translate.ParseLanguage(lang); err != nil {
		return newUserErrorF("target language: %v", err)
	}

	v.job.cfg = cfg
	v.job.input = input
	v.job.lang = lang
	v.job.stdout = cmd.OutOrStdout()
	v.job.stderr = cmd.ErrOrStderr()
	return v.job.run(cmd.Context())
}

func initLog(cfg *config.Config, w io.Writer) {
	f := new(log.TextFormatter)
	f.DisableTimestamp = true
	f.DisableLevelTruncation = true
	log.SetFormatter(f)
	log.SetOutput(w)
	log.SetLevel(log.InfoLevel)
	switch {
	case cfg.Verbose == 1:
		log.SetLevel(log.DebugLevel)
	case cfg.Verbose > 1:
		log.SetLevel(log.TraceLevel)
	case cfg.Quiet == 1:
		log.SetLevel(log.WarnLevel)
	case cfg.Quiet > 1:
		log.SetLevel(log.ErrorLevel)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "potx version %s\n", Version)
		},
	}
}

func newShowConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show-config",
		Short: "Show the effective configuration in YAML format",
		Long: `Display the settings potx would use, merged from flags, POTX_*
environment variables (including a .env file in the working directory)
and potx.yaml (working directory or ~/.config/potx/).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				return newUserError("show-config command needs no arguments")
			}
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return newUserError(err)
			}
			out, err := cfg.YAML()
			if err != nil {
				return err
			}
			if cfg.File != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "# loaded from %s\n", cfg.File)
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

// Execute runs the root command and reports which command failed, if any.
// This is called by main.main().
func Execute() Response {
	var root rootCommand
	return execute(&root, nil)
}

func execute(root *rootCommand, args []string) Response {
	c := root.Command()
	if args != nil {
		c.SetArgs(args)
	}
	ctx, stop := signalContext()
	defer stop()

	executed, err := c.ExecuteContextC(ctx)
	return Response{Err: err, Cmd: executed}
}
