package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"rowedit/buffer"
	"rowedit/clipboardx"
	"rowedit/config"
	"rowedit/editor"
	"rowedit/highlight"
	"rowedit/logging"

	"github.com/spf13/cobra"
)

type options struct {
	configPath string
	theme      string
	logPath    string
	print      bool
	search     string
	saveConfig bool
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:           "rowedit [file]",
		Short:         "A small terminal text editor with syntax highlighting",
		Version:       editor.Version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "",
		"config file (default: ~/.config/rowedit/settings.json)")
	cmd.Flags().StringVar(&opts.theme, "theme", "", "colour theme, overrides the config file")
	cmd.Flags().StringVar(&opts.logPath, "log", "", "write a debug log to this file")
	cmd.Flags().BoolVarP(&opts.print, "print", "p", false, "print the highlighted file and exit")
	cmd.Flags().StringVarP(&opts.search, "search", "s", "", "with --print, mark matches of this term")
	cmd.Flags().BoolVar(&opts.saveConfig, "save-config", false,
		"write the effective settings to the config file and exit")
	return cmd
}

func loadConfig(opts options) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = config.LoadFile(opts.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if opts.theme != "" {
		cfg.Theme = opts.theme
	}
	if opts.logPath != "" {
		cfg.LogFile = opts.logPath
	}
	return cfg, nil
}

func run(cmd *cobra.Command, args []string, opts options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	if opts.saveConfig {
		path := opts.configPath
		if path == "" {
			err = cfg.Save()
			path = config.ConfigPath()
		} else {
			err = cfg.SaveFile(path)
		}
		if err != nil {
			return fmt.Errorf("save config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
		return nil
	}

	if opts.print {
		if len(args) == 0 {
			return errors.New("--print needs a file")
		}
		return printFile(cmd.OutOrStdout(), args[0], cfg, opts.search)
	}

	logger, closeLog, err := logging.Init(cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	e := editor.New(cfg, editor.WithLogger(logger), editor.WithClipboard(newClipboard(os.Stdout)))
	if len(args) == 1 {
		if err := e.Open(args[0]); err != nil {
			return err
		}
	}
	return e.Run()
}

// newClipboard mirrors copies to out as OSC 52 so they reach the local
// clipboard over ssh.
func newClipboard(out io.Writer) *clipboardx.Clipboard {
	return clipboardx.New(clipboardx.WithOSC52(out))
}

// printFile writes every line of path with colour markers for the
// configured colour profile.
func printFile(w io.Writer, path string, cfg *config.Config, term string) error {
	doc, err := buffer.Open(path)
	if err != nil {
		return err
	}
	if term != "" {
		doc.Highlight(term)
	}
	theme := highlight.NewTheme(cfg.GetTheme().Syntax)
	palette := highlight.NewANSIPalette(theme, highlight.ProfileByName(cfg.ColorProfile))

	for i := 0; i < doc.Len(); i++ {
		row, _ := doc.Row(i)
		if _, err := fmt.Fprintln(w, row.RenderWith(0, row.Len(), palette)); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
