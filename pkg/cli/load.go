package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/shengyushen/spark-snowflake/internal/config"
	"github.com/shengyushen/spark-snowflake/internal/db"
	"github.com/shengyushen/spark-snowflake/internal/domain"
	"github.com/shengyushen/spark-snowflake/internal/export"
	"github.com/shengyushen/spark-snowflake/internal/service/save"
	"github.com/shengyushen/spark-snowflake/internal/store"
)

// passwordPlaceholder in the DSN is replaced by WAREHOUSE_PASSWORD or an
// interactive prompt.
const passwordPlaceholder = "{password}"

func newLoadCmd() *cobra.Command {
	var jobPath, envFile string

	cmd := &cobra.Command{
		Use:   "load",
		Short: "Run a save operation from a job file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLoad(cmd.Context(), jobPath, envFile)
		},
	}
	addLoadFlags(cmd.Flags(), &jobPath, &envFile)
	return cmd
}

func addLoadFlags(fs *pflag.FlagSet, jobPath, envFile *string) {
	fs.StringVarP(jobPath, "job", "j", "job.yaml", "path to the YAML job file")
	fs.StringVar(envFile, "env", ".env", "path to an optional .env file")
}

func runLoad(ctx context.Context, jobPath, envFile string) error {
	if err := config.LoadDotEnv(envFile); err != nil {
		return err
	}
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	dsn, err := resolveDSN(cfg.DSN)
	if err != nil {
		return err
	}

	job, err := LoadJob(jobPath)
	if err != nil {
		return err
	}
	sch, err := job.Schema()
	if err != nil {
		return err
	}
	mode, err := job.SaveMode()
	if err != nil {
		return err
	}

	files, err := filepath.Glob(job.Data)
	if err != nil {
		return fmt.Errorf("bad data glob %q: %w", job.Data, err)
	}
	if len(files) == 0 {
		return fmt.Errorf("data glob %q matched no files", job.Data)
	}
	sort.Strings(files) // stable partition indexes

	src := &export.CSVFileSource{Files: files, Schema: sch}

	connect := func(ctx context.Context) (save.Conn, func(), error) {
		conn, release, err := db.Connect(ctx, cfg.Driver, dsn)
		if err != nil {
			return nil, nil, err
		}
		return conn, release, nil
	}
	newStore := func(ctx context.Context, location string, c domain.Credentials) (domain.ObjectStore, error) {
		return store.ForLocation(ctx, location, c, store.Options{
			S3Region:              cfg.S3Region,
			S3Endpoint:            cfg.S3Endpoint,
			GCSKeyFile:            cfg.GCSKeyFile,
			AzureConnectionString: cfg.AzureConnectionString,
		})
	}

	var explicit *domain.Credentials
	if cfg.ExplicitCredentials() {
		explicit = &domain.Credentials{KeyID: *cfg.KeyID, Secret: *cfg.Secret}
		if cfg.Token != nil {
			explicit.Token = *cfg.Token
		}
	}

	svc := save.NewService(logger, connect, newStore, nil)
	return svc.Save(ctx, src, sch, save.Options{
		Table:           job.Table,
		Mode:            mode,
		TempRoot:        cfg.TempRoot,
		UseStagingTable: job.UseStagingTable,
		PostActions:     job.PostActions,
		Credentials:     explicit,
		Gzip:            cfg.Gzip,
		Workers:         cfg.Workers,
	})
}

// resolveDSN substitutes the DSN password placeholder from the environment,
// prompting on the terminal as a last resort.
func resolveDSN(dsn string) (string, error) {
	if !strings.Contains(dsn, passwordPlaceholder) {
		return dsn, nil
	}
	if pw := os.Getenv("WAREHOUSE_PASSWORD"); pw != "" {
		return strings.ReplaceAll(dsn, passwordPlaceholder, pw), nil
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", fmt.Errorf("DSN contains %s but WAREHOUSE_PASSWORD is not set and stdin is not a terminal", passwordPlaceholder)
	}
	fmt.Fprint(os.Stderr, "Warehouse password: ")
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.ReplaceAll(dsn, passwordPlaceholder, string(pw)), nil
}
