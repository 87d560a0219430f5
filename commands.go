package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wildfunctions/equivalent_resistance/pkg/catalog"
	"github.com/wildfunctions/equivalent_resistance/pkg/engine"
	"github.com/wildfunctions/equivalent_resistance/pkg/search"
	"github.com/wildfunctions/equivalent_resistance/pkg/server"
)

const envPrefix = "RESISTOR"

// cli carries state shared by every command of one invocation.
type cli struct {
	v        *viper.Viper
	out      io.Writer
	errOut   io.Writer
	logger   *zap.Logger
	shutdown func(context.Context) error
}

func newCLI(out, errOut io.Writer) *cli {
	c := &cli{
		v:      viper.New(),
		out:    out,
		errOut: errOut,
		logger: zap.NewNop(),
	}
	c.v.SetEnvPrefix(envPrefix)
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()
	return c
}

// execute runs the command named by args. Logs are synced and spans
// flushed whether or not the command succeeds.
func (c *cli) execute(ctx context.Context, args []string) error {
	root := c.rootCmd()
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	return errors.Join(err, c.teardown(ctx))
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "resistor",
		Short:        "Approximate a resistance with series/parallel networks of catalog resistors",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}
	root.SetOut(c.out)
	root.SetErr(c.errOut)

	pf := root.PersistentFlags()
	pf.String("config", "", "config file (yaml or json)")
	pf.Bool("verbose", false, "debug logging in human-readable form")
	pf.Bool("trace", false, "write OpenTelemetry spans to stderr")

	root.AddCommand(
		c.approximateCmd(),
		c.evaluateCmd(),
		c.exploreCmd(),
		c.catalogsCmd(),
		c.serveCmd(),
	)
	return root
}

func (c *cli) setup(cmd *cobra.Command) error {
	pf := cmd.Root().PersistentFlags()
	if err := c.bind(pf.Lookup("verbose"), pf.Lookup("trace")); err != nil {
		return err
	}
	if err := c.bind(flagsOf(cmd)...); err != nil {
		return err
	}

	if path, _ := pf.GetString("config"); path != "" {
		c.v.SetConfigFile(path)
		if err := c.v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	c.logger = newLogger(c.errOut, c.v.GetBool("verbose"))
	if c.v.GetBool("trace") {
		exp, err := stdouttrace.New(stdouttrace.WithWriter(c.errOut), stdouttrace.WithPrettyPrint())
		if err != nil {
			return fmt.Errorf("creating trace exporter: %w", err)
		}
		tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exp))
		otel.SetTracerProvider(tp)
		c.shutdown = tp.Shutdown
	}
	return nil
}

func (c *cli) teardown(ctx context.Context) error {
	_ = c.logger.Sync()
	if c.shutdown == nil {
		return nil
	}
	shutdown := c.shutdown
	c.shutdown = nil
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	return shutdown(ctx)
}

// bind registers flags with viper under their names with dashes replaced
// by underscores, matching config file keys and RESISTOR_* variables.
func (c *cli) bind(flags ...*pflag.Flag) error {
	for _, f := range flags {
		if f == nil {
			continue
		}
		if err := c.v.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f); err != nil {
			return err
		}
	}
	return nil
}

func flagsOf(cmd *cobra.Command) []*pflag.Flag {
	var out []*pflag.Flag
	cmd.LocalNonPersistentFlags().VisitAll(func(f *pflag.Flag) {
		out = append(out, f)
	})
	return out
}

// engineConfig merges defaults, config file, environment and flags.
func (c *cli) engineConfig() (engine.Config, error) {
	cfg := engine.DefaultConfig()
	if err := c.v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	if text := c.v.GetString("values_list"); text != "" {
		values, err := catalog.ParseList(text)
		if err != nil {
			return cfg, err
		}
		cfg.Values = values
	}
	return cfg, nil
}

func (c *cli) newEngine() (*engine.Engine, engine.Config, error) {
	cfg, err := c.engineConfig()
	if err != nil {
		return nil, cfg, err
	}
	e, err := engine.New(cfg, c.logger)
	return e, cfg, err
}

func addCatalogFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("catalog", engine.DefaultConfig().Catalog, "registered catalog ("+strings.Join(catalog.Names(), ", ")+")")
	f.String("catalog-file", "", "catalog file (yaml or json), overrides --catalog")
	f.String("values-list", "", "comma separated resistances such as 1k,4k7,2M2, overrides --catalog and --catalog-file")
}

func (c *cli) approximateCmd() *cobra.Command {
	def := engine.DefaultConfig()
	cmd := &cobra.Command{
		Use:   "approximate",
		Short: "Find the network closest to a target resistance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, cfg, err := c.newEngine()
			if err != nil {
				return err
			}
			report, err := e.Run(cmd.Context())
			if err != nil {
				return err
			}
			return engine.WriteReport(c.out, cfg.Format, report)
		},
	}
	addCatalogFlags(cmd)
	f := cmd.Flags()
	f.String("target", def.Target, "target resistance (e.g. 3.3k), max or min")
	f.Int("max-resistors", def.MaxResistors, "maximum number of resistors")
	f.String("strategy", def.Strategy, "search strategy ("+strings.Join(search.Names(), ", ")+")")
	f.Int("workers", def.Workers, "splits combined concurrently (0 = sequential)")
	f.Int("max-candidates", def.MaxCandidates, "combinations one layer may examine (0 = no limit)")
	f.String("format", def.Format, "output format (text, json, latex)")
	return cmd
}

func (c *cli) evaluateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evaluate SCF",
		Short: "Evaluate a network written as (a)+(b) / (a)//(b) over catalog indices",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, cfg, err := c.newEngine()
			if err != nil {
				return err
			}
			v, err := e.Verify(args[0], c.v.GetBool("exact"))
			if err != nil {
				return err
			}
			if cfg.Format == "json" {
				return engine.WriteJSON(c.out, v)
			}
			engine.WriteVerification(c.out, v)
			return nil
		},
	}
	addCatalogFlags(cmd)
	f := cmd.Flags()
	f.String("target", "", "optional target to report the error against")
	f.Bool("exact", false, "also reduce over exact rationals")
	f.String("format", "text", "output format (text, json)")
	return cmd
}

func (c *cli) exploreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Count distinct values reachable per number of resistors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, cfg, err := c.newEngine()
			if err != nil {
				return err
			}
			report, err := e.Explore(cmd.Context())
			if err != nil {
				return err
			}
			if cfg.Format == "json" {
				return engine.WriteJSON(c.out, report)
			}
			engine.WriteExploreTable(c.out, report)
			return nil
		},
	}
	addCatalogFlags(cmd)
	f := cmd.Flags()
	def := engine.DefaultConfig()
	f.Int("max-resistors", def.MaxResistors, "largest layer to build")
	f.Int("workers", def.Workers, "splits combined concurrently (0 = sequential)")
	f.Int("max-candidates", def.MaxCandidates, "combinations one layer may examine (0 = no limit)")
	f.String("format", "text", "output format (text, json)")
	return cmd
}

func (c *cli) catalogsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalogs",
		Short: "List registered catalogs and strategies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range catalog.Names() {
				values, err := catalog.Get(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(c.out, "%-6s %4d values  %g .. %g\n", name, len(values), values[0], values[len(values)-1])
			}
			fmt.Fprintf(c.out, "strategies: %s\n", strings.Join(search.Names(), ", "))
			return nil
		},
	}
}

func (c *cli) serveCmd() *cobra.Command {
	def := server.DefaultConfig()
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := server.DefaultConfig()
			if err := c.v.Unmarshal(&cfg); err != nil {
				return fmt.Errorf("decoding config: %w", err)
			}
			defaults, err := c.engineConfig()
			if err != nil {
				return err
			}
			s, err := server.New(cfg, defaults, c.logger)
			if err != nil {
				return err
			}
			return s.Run(cmd.Context())
		},
	}
	addCatalogFlags(cmd)
	f := cmd.Flags()
	f.String("addr", def.Addr, "listen address")
	f.Int("max-resistors-limit", def.MaxResistorsLimit, "largest max_resistors a request may ask for")
	f.Int("max-candidates", def.MaxCandidates, "combinations one layer of a request may examine")
	f.Duration("request-timeout", def.RequestTimeout, "per-request search timeout (0 = none)")
	f.String("strategy", search.DefaultStrategy, "default search strategy")
	f.Int("workers", engine.DefaultConfig().Workers, "splits combined concurrently per request")
	return cmd
}

func newLogger(w io.Writer, verbose bool) *zap.Logger {
	enc := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	level := zapcore.InfoLevel
	if verbose {
		enc = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
		level = zapcore.DebugLevel
	}
	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), level))
}
