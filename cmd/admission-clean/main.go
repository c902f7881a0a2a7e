package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"admissioncli/internal/config"
	"admissioncli/internal/files"
	"admissioncli/internal/infrastructure"
	"admissioncli/internal/services"
	"admissioncli/pkg/contracts"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// options are the parsed command line flags
type options struct {
	inFile     string
	outFile    string
	inDir      string
	configFile string
	version    bool
}

// run executes one cleaning pass and returns the process exit code. Status
// lines go to stdout, logs go to stderr.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("admission-clean", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var opts options
	fs.StringVar(&opts.inFile, "in", "", "admission workbook (.xlsx) to clean")
	fs.StringVar(&opts.outFile, "out", "", "path of the CSV to write (defaults to pipeline.output_file_name)")
	fs.StringVar(&opts.inDir, "in-dir", "", "clean the most recently modified workbook in this directory")
	fs.StringVar(&opts.configFile, "config", "", "optional YAML config file")
	fs.BoolVar(&opts.version, "version", false, "print version information and exit")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if opts.version {
		fmt.Fprintln(stdout, contracts.GetFullVersionString())
		return 0
	}

	if (opts.inFile == "") == (opts.inDir == "") {
		fmt.Fprintln(stderr, "exactly one of -in or -in-dir is required")
		fs.Usage()
		return 2
	}

	var (
		cfg *config.Config
		err error
	)
	if opts.configFile != "" {
		cfg, err = config.LoadFile(opts.configFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(stderr, "failed to load configuration: %v\n", err)
		return 1
	}

	logger, err := infrastructure.NewLogger(cfg.Logging, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "failed to initialize logger: %v\n", err)
		return 1
	}
	defer infrastructure.CloseLogFile()

	ctx := infrastructure.EnsureTraceID(context.Background())

	inFile := opts.inFile
	if opts.inDir != "" {
		inFile, err = latestWorkbook(opts.inDir, cfg.Upload.AllowedExtensions)
		if err != nil {
			fmt.Fprintln(stdout, services.StatusFor(err).Message)
			return 1
		}
		logger.InfoContext(ctx, "Selected latest workbook", slog.String("path", inFile))
	}

	svc := services.NewAdmissionService(cfg, nil, logger)
	status := cleanOne(ctx, svc, inFile, opts.outFile, logger)
	fmt.Fprintln(stdout, status.Message)
	if !status.Success {
		return 1
	}
	return 0
}

// latestWorkbook picks the most recently modified workbook in dir
func latestWorkbook(dir string, extensions []string) (string, error) {
	workbooks, err := files.NewDiscovery("", extensions...).FindWorkbooks(dir)
	if err != nil {
		return "", err
	}
	latest, ok := files.GetLatestFile(workbooks)
	if !ok {
		return "", fmt.Errorf("no workbooks found in %s", dir)
	}
	return latest.Path, nil
}

// cleanOne runs the pipeline on one workbook and writes its CSV to outFile
func cleanOne(ctx context.Context, svc *services.AdmissionService, inFile, outFile string, logger *slog.Logger) services.Status {
	result, err := svc.ProcessFile(ctx, inFile)
	if err != nil {
		return result.Status
	}

	written, err := svc.SaveCSV(result, outFile)
	if err != nil {
		return services.StatusFor(err)
	}

	logger.InfoContext(ctx, "CSV written",
		slog.String("path", written),
		slog.Int("records", len(result.Records)),
		slog.Int("anomalies", result.Anomalies))
	return result.Status
}
