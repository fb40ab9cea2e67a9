package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yifangd/check-json/internal/adapters/outbound/config"
	"github.com/yifangd/check-json/internal/adapters/outbound/docparse"
	"github.com/yifangd/check-json/internal/adapters/outbound/httpfetch"
	"github.com/yifangd/check-json/internal/adapters/outbound/tui"
	"github.com/yifangd/check-json/internal/application"
	"github.com/yifangd/check-json/internal/domain"
)

var (
	version = "dev"
	commit  = "none"
)

func newRootCmd(exitCode *int) *cobra.Command {
	var (
		url         string
		attributes  string
		warning     string
		critical    string
		divisor     string
		perfvars    string
		outputvars  string
		timeout     int
		metadata    string
		contentType string
		ignoreSSL   bool
		checkFile   string
		pretty      bool
		verbose     bool
	)

	cmd := &cobra.Command{
		Use:   "check_json",
		Short: "Nagios-style probe for JSON health endpoints",
		Long: "check_json fetches a JSON document over HTTP(S), resolves values by path " +
			"expression (e.g. {shares}->{dead}), classifies them against warning/critical " +
			"threshold ranges, and prints a single status line with perfdata.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := domain.ProbeConfig{
				URL:         url,
				Attributes:  splitList(attributes),
				Warning:     splitList(warning),
				Critical:    splitList(critical),
				Divisor:     splitList(divisor),
				Perfvars:    splitList(perfvars),
				Outputvars:  splitList(outputvars),
				Timeout:     time.Duration(timeout) * time.Second,
				Metadata:    metadata,
				ContentType: contentType,
				IgnoreSSL:   ignoreSSL,
			}

			if checkFile != "" {
				def, err := config.New().Load(checkFile)
				if err != nil {
					rep := domain.CheckReport{Status: domain.StatusUnknown, Message: err.Error()}
					fmt.Fprintln(cmd.OutOrStdout(), rep.Line())
					*exitCode = rep.Status.ExitCode()
					return nil
				}
				cfg.ApplyDefinition(def)
			}

			log, sync := newLogger(verbose)
			defer sync()

			svc := application.NewProbeService(httpfetch.New(), docparse.New(), log)
			rep := svc.Run(cmd.Context(), cfg)

			fmt.Fprintln(cmd.OutOrStdout(), rep.Line())
			if pretty {
				fmt.Fprint(cmd.ErrOrStderr(), tui.RenderReport(cfg.URL, rep))
			}

			*exitCode = rep.Status.ExitCode()
			return nil
		},
	}

	cmd.Flags().StringVarP(&url, "url", "u", "", "URL of the document to check (required)")
	cmd.Flags().StringVarP(&attributes, "attributes", "a", "", "Comma-separated path expressions to evaluate (required)")
	cmd.Flags().StringVarP(&warning, "warning", "w", "", "Comma-separated warning ranges, paired with attributes")
	cmd.Flags().StringVarP(&critical, "critical", "c", "", "Comma-separated critical ranges, paired with attributes")
	cmd.Flags().StringVarP(&divisor, "divisor", "d", "", "Comma-separated divisors, paired with attributes")
	cmd.Flags().StringVarP(&perfvars, "perfvars", "p", "", "Comma-separated paths reported as perfdata, or * for all top-level fields")
	cmd.Flags().StringVarP(&outputvars, "outputvars", "o", "", "Comma-separated paths added to the message only, or *")
	cmd.Flags().IntVarP(&timeout, "timeout", "t", 0, "Fetch timeout in seconds (default 15)")
	cmd.Flags().StringVarP(&metadata, "metadata", "m", "", "Request body; sent as POST when set")
	cmd.Flags().StringVarP(&contentType, "contenttype", "T", "", "Expected response content type (default application/json)")
	cmd.Flags().BoolVar(&ignoreSSL, "ignoressl", false, "Skip TLS certificate verification")
	cmd.Flags().StringVar(&checkFile, "check-file", "", "YAML check definition; flags override its values")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Render a styled diagnostic report to stderr")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Enable debug logging to stderr")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newMCPCmd())

	return cmd
}

// NewRootCmdForTest returns the root command and the exit code it will
// report, for testing.
func NewRootCmdForTest() (*cobra.Command, *int) {
	exitCode := new(int)
	return newRootCmd(exitCode), exitCode
}

// Execute runs the CLI and returns the Nagios exit code. Flag and usage
// errors print an UNKNOWN line, so a misconfigured scheduler entry shows up
// as UNKNOWN rather than as silence.
func Execute() int {
	exitCode := 0
	cmd := newRootCmd(&exitCode)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stdout, "%s - %s\n", domain.StatusUnknown, err)
		return domain.StatusUnknown.ExitCode()
	}
	return exitCode
}

// splitList splits a comma-separated flag value, preserving interior empty
// entries so positional pairing with attributes stays intact.
func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

func newLogger(verbose bool) (*zap.SugaredLogger, func()) {
	if !verbose {
		return zap.NewNop().Sugar(), func() {}
	}
	logCfg := zap.NewDevelopmentConfig()
	logCfg.OutputPaths = []string{"stderr"}
	logger := zap.Must(logCfg.Build())
	return logger.Sugar(), func() { _ = logger.Sync() }
}
