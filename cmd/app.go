package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/livemoments/mailops/internal/config"
	"github.com/livemoments/mailops/internal/confirm"
	"github.com/livemoments/mailops/internal/google"
	"github.com/livemoments/mailops/internal/instrumentation"
	"github.com/livemoments/mailops/internal/logging"
	"github.com/livemoments/mailops/internal/result"
	"github.com/livemoments/mailops/internal/workflow"
)

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	envFile        string
	credentialsDir string
	logLevel       string
	metricsFile    string
	traceFile      string
	account        string
}

var flags globalFlags

func addGlobalFlags(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.envFile, "env-file", "", "Load settings from this dotenv file")
	pf.StringVar(&flags.credentialsDir, "credentials-dir", "", "Directory holding stored OAuth credentials")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	pf.StringVar(&flags.metricsFile, "metrics-file", "", "Write Prometheus metrics to this file on exit")
	pf.StringVar(&flags.traceFile, "trace-file", "", "Write trace spans to this file")
	pf.StringVar(&flags.account, "account", "", "Google account to act as")
}

// outputFlags are the flags of commands that produce a result.
type outputFlags struct {
	json bool
	yes  bool
}

func (o *outputFlags) register(cmd *cobra.Command, confirmable bool) {
	cmd.Flags().BoolVar(&o.json, "json", false, "Print the result as JSON")
	if confirmable {
		cmd.Flags().BoolVarP(&o.yes, "yes", "y", false, "Skip the confirmation prompt")
	}
}

// app holds what a command run needs after configuration is resolved.
type app struct {
	name     string
	cfg      config.Config
	logger   *slog.Logger
	provider *instrumentation.Provider
	loader   *google.Loader
	auditor  *instrumentation.Auditor
}

// newApp loads configuration and wires logging, telemetry and the
// credential loader for one command run.
func newApp(ctx context.Context, name string, stderr io.Writer) (*app, error) {
	cfg, err := config.Load(flags.envFile)
	if err != nil {
		return nil, err
	}
	if flags.credentialsDir != "" {
		cfg.CredentialsDir = flags.credentialsDir
	}
	if flags.account != "" {
		cfg.Account = flags.account
	}
	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}

	logger := logging.WithCommand(logging.New(stderr, cfg.LogLevel), name, uuid.NewString())

	instCfg := instrumentation.DefaultConfig()
	instCfg.ServiceVersion = version
	if flags.metricsFile != "" {
		instCfg.MetricsFile = flags.metricsFile
		if !metricsExporterSet(instCfg) {
			instCfg.MetricsExporter = instrumentation.ExporterPrometheus
		}
	}
	if flags.traceFile != "" {
		instCfg.TraceFile = flags.traceFile
		if instCfg.TracingExporter == instrumentation.ExporterNone || instCfg.TracingExporter == "" {
			instCfg.TracingExporter = instrumentation.ExporterStdout
		}
	}
	provider, err := instrumentation.NewProvider(ctx, instCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telemetry: %w", err)
	}

	if provider.Enabled() {
		logger.Debug("telemetry enabled",
			slog.String("metrics_exporter", instCfg.MetricsExporter),
			slog.String("tracing_exporter", instCfg.TracingExporter),
		)
	}

	oauthConf, err := google.OAuthConfig(cfg.OAuth)
	if err != nil && !errors.Is(err, google.ErrNoClient) {
		_ = provider.Shutdown(ctx)
		return nil, err
	}

	loader := google.NewLoader(
		google.NewStore(cfg.CredentialsDir),
		oauthConf,
		provider.Metrics(),
		logging.WithAccount(logger, cfg.Account),
	)

	return &app{
		name:     name,
		cfg:      cfg,
		logger:   logger,
		provider: provider,
		loader:   loader,
		auditor:  instrumentation.NewAuditor(logger, false),
	}, nil
}

func metricsExporterSet(c instrumentation.Config) bool {
	return c.MetricsExporter != "" && c.MetricsExporter != instrumentation.ExporterNone
}

// env returns the workflow environment for this run.
func (a *app) env(c confirm.Confirmer) workflow.Env {
	return workflow.Env{
		Config:    a.cfg,
		Confirmer: c,
		Logger:    a.logger,
		Auditor:   a.auditor,
	}
}

// confirmer picks the confirmation strategy for a command. Prompts go to
// stderr when stdout is reserved for JSON.
func confirmer(cmd *cobra.Command, out outputFlags) confirm.Confirmer {
	if out.yes {
		return confirm.Always{}
	}
	w := cmd.OutOrStdout()
	if out.json {
		w = cmd.ErrOrStderr()
	}
	return confirm.Prompt{In: cmd.InOrStdin(), Out: w}
}

// run executes fn inside a command span, records the run, renders the
// result and maps it onto the process exit code.
func run(cmd *cobra.Command, name string, out outputFlags, fn func(ctx context.Context, a *app) *result.Result) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := newApp(ctx, name, cmd.ErrOrStderr())
	if err != nil {
		return render(cmd, out, result.Failure(err))
	}

	start := time.Now()
	ctx, span := instrumentation.StartCommandSpan(ctx, name)
	r := fn(ctx, a)
	if r == nil {
		r = result.Failure(nil)
	}

	a.provider.Metrics().RecordCommand(ctx, name, r.Outcome(), time.Since(start))
	if r.Success {
		instrumentation.SetSpanSuccess(span)
	} else if !r.PreviewOnly {
		instrumentation.SetSpanError(span, errors.New(r.Error))
	}
	span.End()

	if err := a.provider.Shutdown(context.Background()); err != nil {
		a.logger.Warn("telemetry shutdown failed", logging.Err(err))
	}
	a.logger.Info("command finished", logging.Status(r.Outcome()), logging.Duration(time.Since(start)))

	return render(cmd, out, r)
}

// render prints r and converts an unsuccessful result into an exitError.
func render(cmd *cobra.Command, out outputFlags, r *result.Result) error {
	w := cmd.OutOrStdout()
	var err error
	if out.json {
		err = r.WriteJSON(w)
	} else {
		err = r.WriteText(w)
	}
	if err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	if code := r.ExitCode(); code != 0 {
		return &exitError{code: code}
	}
	return nil
}
