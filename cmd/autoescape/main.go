// Command autoescape runs a sanitizer over files or standard input and
// writes the result to standard output.
//
//	echo 'javascript:alert(1)' | autoescape -d filterNormalizeUri
//	autoescape strip --whitelist lists.yaml page.html
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/njchilds90/autoescape"
)

// Version is set at build time.
var Version = ""

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	var (
		configFile string
		logger     = zap.NewNop()
		closeLog   = func() error { return nil }
	)

	root := &cobra.Command{
		Use:   "autoescape [FILE...]",
		Short: "Escape, normalize or filter text for a template output context",
		Long: `Runs one sanitizer over each FILE (or standard input, or "-") and writes
the result to standard output. Values a filter rejects are replaced by an
innocuous output and logged as warnings.`,
		SilenceUsage: true,
		Version:      versionString(),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadConfig(v, configFile); err != nil {
				return err
			}
			l, c, err := setupLog(v.GetString("log-level"), v.GetString("log-file"), cmd.ErrOrStderr())
			if err != nil {
				return fmt.Errorf("setting up log: %w", err)
			}
			logger, closeLog = l, c
			if used := v.ConfigFileUsed(); used != "" {
				logger.Debug("using configuration file", zap.String("path", used))
			}
			return nil
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return closeLog()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := autoescape.ParseDirective(v.GetString("directive"))
			if err != nil {
				return err
			}
			wrap, err := valueOf(v.GetString("kind"))
			if err != nil {
				return err
			}
			logger.Debug("applying directive", zap.Stringer("directive", d), zap.Int("inputs", len(args)))
			return eachInput(cmd, args, func(s string) string {
				return autoescape.Apply(d, wrap(s))
			})
		},
	}

	root.PersistentFlags().StringVar(&configFile, "config", "", "config file (default ./autoescape.yaml or the user config dir)")
	root.PersistentFlags().String("log-level", "info", "log level: debug, info, warn or error")
	root.PersistentFlags().String("log-file", "", "also write logs to this rolling file")
	root.Flags().StringP("directive", "d", "escapeHtml", "sanitizer to apply, see the directives command")
	root.Flags().StringP("kind", "k", "", "treat input as trusted content of this kind (html, js, jsStrChars, css, uri, attributes, text)")

	_ = v.BindPFlag("log-level", root.PersistentFlags().Lookup("log-level"))
	_ = v.BindPFlag("log-file", root.PersistentFlags().Lookup("log-file"))
	_ = v.BindPFlag("directive", root.Flags().Lookup("directive"))
	_ = v.BindPFlag("kind", root.Flags().Lookup("kind"))

	root.AddCommand(newStripCmd(v, func() *zap.Logger { return logger }), newDirectivesCmd())
	return root
}

func newStripCmd(v *viper.Viper, log func() *zap.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "strip [FILE...]",
		Short: "Remove HTML tags outside a whitelist and balance the rest",
		RunE: func(cmd *cobra.Command, args []string) error {
			safe := autoescape.FormattingTags
			if path := v.GetString("whitelist"); path != "" {
				f, err := os.Open(path)
				if err != nil {
					return err
				}
				safe, err = autoescape.LoadTagWhitelist(f)
				_ = f.Close()
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
			}
			log().Debug("stripping tags", zap.String("whitelist", safe.Name()), zap.Strings("tags", safe.Tags()))
			spaces := !v.GetBool("no-spaces")
			return eachInput(cmd, args, func(s string) string {
				return autoescape.StripHTMLTags(s, safe, spaces)
			})
		},
	}
	cmd.Flags().StringP("whitelist", "w", "", "YAML file listing the tags to keep (default: formatting tags)")
	cmd.Flags().Bool("no-spaces", false, "escape spaces too, for unquoted attribute values")
	_ = v.BindPFlag("whitelist", cmd.Flags().Lookup("whitelist"))
	_ = v.BindPFlag("no-spaces", cmd.Flags().Lookup("no-spaces"))
	return cmd
}

func newDirectivesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "directives",
		Short: "List the available directives",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, d := range autoescape.Directives() {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), strings.TrimPrefix(d.String(), "|")); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func loadConfig(v *viper.Viper, file string) error {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("autoescape")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "autoescape"))
		}
	}
	v.SetEnvPrefix("autoescape")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	}
	return nil
}

// valueOf returns how input text is presented to a sanitizer: as a plain
// string, or as trusted content of the named kind.
func valueOf(kind string) (func(string) autoescape.Value, error) {
	if kind == "" {
		return func(s string) autoescape.Value { return autoescape.String(s) }, nil
	}
	k, err := autoescape.ParseContentKind(kind)
	if err != nil {
		return nil, err
	}
	return func(s string) autoescape.Value {
		return autoescape.Ordain(s, k, autoescape.DirUnknown)
	}, nil
}

// eachInput feeds every named file, or standard input when there are none,
// through fn. A single trailing newline is kept out of the value and
// copied to the output.
func eachInput(cmd *cobra.Command, args []string, fn func(string) string) error {
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, arg := range args {
		b, err := readInput(cmd, arg)
		if err != nil {
			return err
		}
		s := string(b)
		nl := strings.HasSuffix(s, "\n")
		out := fn(strings.TrimSuffix(s, "\n"))
		if nl {
			out += "\n"
		}
		if _, err := io.WriteString(cmd.OutOrStdout(), out); err != nil {
			return err
		}
	}
	return nil
}

func readInput(cmd *cobra.Command, arg string) ([]byte, error) {
	if arg == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(arg)
}

func versionString() string {
	if Version == "" {
		return "unknown (built from source)"
	}
	return Version
}
