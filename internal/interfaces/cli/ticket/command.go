// Package ticket holds the offline import and export commands. They run
// against the configured store without starting the HTTP server.
package ticket

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"

	"pinkslip/internal/application/ticket/usecases"
	"pinkslip/internal/infrastructure/cache"
	"pinkslip/internal/infrastructure/config"
	"pinkslip/internal/infrastructure/database"
	"pinkslip/internal/infrastructure/repository"
	"pinkslip/internal/infrastructure/spreadsheet"
	"pinkslip/internal/interfaces/dto"
	"pinkslip/internal/shared/constants"
	"pinkslip/internal/shared/db"
	"pinkslip/internal/shared/logger"
)

var (
	env            string
	configPath     string
	rejectionsPath string
	outputPath     string
)

// NewImportCommand returns `import <file>`.
func NewImportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a spreadsheet of ticket lines",
		Long:  `Reconcile a .csv or .xlsx file of ticket lines into the store as one all-or-nothing batch.`,
		Args:  cobra.ExactArgs(1),
		RunE:  runImport,
	}

	addEnvFlags(cmd)
	cmd.Flags().StringVarP(&rejectionsPath, "rejections", "r", "", "Write rejected rows as CSV to this path")

	return cmd
}

// NewExportCommand returns `export`.
func NewExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export every ticket line as CSV",
		RunE:  runExport,
	}

	addEnvFlags(cmd)
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file (default: stdout)")

	return cmd
}

func addEnvFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&env, "env", "e", constants.EnvDevelopment, "Environment (development, test, production)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
}

func initEnv() (*config.Config, logger.Interface, error) {
	cfg, err := config.Load(env, configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return cfg, logger.NewLogger(), nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, log, err := initEnv()
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer database.Close()

	ctx := commandContext(cmd)

	reader, err := spreadsheet.NewReader(cfg.Import.SourceEncoding)
	if err != nil {
		return err
	}

	lock, closeLock, err := cache.NewImportLock(ctx, &cfg.Redis, log.Named("importlock"))
	if err != nil {
		return fmt.Errorf("failed to set up import lock: %w", err)
	}
	defer closeLock()

	gdb := database.Get()
	uc := usecases.NewImportBatchUseCase(
		repository.NewTicketRepository(gdb),
		db.NewTransactionManager(gdb),
		lock,
		usecases.ImportSettings{DefaultAreaCode: cfg.Import.DefaultAreaCode},
		log.Named("import"),
	)

	return importFile(ctx, uc, reader, args[0], rejectionsPath, cmd.OutOrStdout())
}

// importFile reads path, commits it as one batch and prints the summary.
func importFile(
	ctx context.Context,
	uc usecases.ImportBatchExecutor,
	reader *spreadsheet.Reader,
	path string,
	rejectionsOut string,
	out io.Writer,
) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	filename := filepath.Base(path)
	records, err := reader.Read(f, filename)
	if err != nil {
		return err
	}

	rows := make([]usecases.RawRow, len(records))
	lines := make([]int, len(records))
	for i, rec := range records {
		rows[i] = usecases.RawRow(rec.Values)
		lines[i] = rec.Line
	}

	result, err := uc.Execute(ctx, usecases.ImportBatchCommand{Rows: rows, Lines: lines, Source: filename})
	if err != nil {
		return err
	}

	printSummary(out, result)

	if rejectionsOut != "" {
		var buf bytes.Buffer
		if err := spreadsheet.WriteCSV(&buf, dto.RejectionReportHeader, dto.RejectionReportRows(result.Rejections)); err != nil {
			return fmt.Errorf("failed to render rejection report: %w", err)
		}
		if err := atomic.WriteFile(rejectionsOut, &buf); err != nil {
			return fmt.Errorf("failed to write %s: %w", rejectionsOut, err)
		}
		fmt.Fprintf(out, "Rejections written to %s\n", rejectionsOut)
	}

	return nil
}

func printSummary(out io.Writer, result *usecases.ImportResult) {
	fmt.Fprintf(out, "Batch %s (%s)\n", result.BatchID, result.Source)
	fmt.Fprintf(out, "  Rows:               %d\n", result.RowsTotal)
	fmt.Fprintf(out, "  Tickets created:    %d\n", result.TicketsCreated)
	fmt.Fprintf(out, "  Items imported:     %d\n", result.ItemsImported)
	fmt.Fprintf(out, "  Duplicates skipped: %d\n", result.DuplicatesSkipped)
	fmt.Fprintf(out, "  Rows rejected:      %d\n", result.RowsRejected)
	for _, r := range result.Rejections {
		fmt.Fprintf(out, "    row %d [%s] %s\n", r.RowNumber, r.Kind, r.Reason)
	}
}

func runExport(cmd *cobra.Command, args []string) error {
	_, log, err := initEnv()
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer database.Close()

	uc := usecases.NewExportTicketsUseCase(repository.NewTicketRepository(database.Get()), log)
	return exportTickets(commandContext(cmd), uc, outputPath, cmd.OutOrStdout())
}

// exportTickets writes the export CSV to path, or to out when path is empty.
// Files are replaced atomically.
func exportTickets(ctx context.Context, uc usecases.ExportTicketsExecutor, path string, out io.Writer) error {
	start := time.Now()
	records, err := uc.Execute(ctx)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := spreadsheet.WriteCSV(&buf, dto.ExportHeader, dto.ExportRows(records)); err != nil {
		return fmt.Errorf("failed to render export: %w", err)
	}

	if path == "" {
		_, err := buf.WriteTo(out)
		return err
	}

	if err := atomic.WriteFile(path, &buf); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Fprintf(out, "Exported %d lines to %s in %s\n", len(records), path, time.Since(start).Round(time.Millisecond))
	return nil
}
