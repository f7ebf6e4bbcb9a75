package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/ZJUSCT/resolver/internal/database"
	"github.com/ZJUSCT/resolver/internal/loader"
	"github.com/ZJUSCT/resolver/internal/resolver"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var importOpts struct {
	dmojContest int64
	from        string
	output      string
	noStore     bool
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a contest into the local database",
	Long: `Reads a contest either from a DMOJ MySQL database (--dmoj-contest) or
from a JSON/YAML export (--from), validates it and stores it in the sqlite
database used by contest.source: database. --output additionally writes the
dataset as a JSON or YAML export.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, sync, err := setup()
		if err != nil {
			return err
		}
		defer sync()

		var ds resolver.Dataset
		switch {
		case importOpts.dmojContest != 0 && importOpts.from != "":
			return errors.New("--dmoj-contest and --from are mutually exclusive")
		case importOpts.dmojContest != 0:
			if cfg.DMOJ.DSN == "" {
				return errors.New("dmoj.dsn is required to import from DMOJ")
			}
			dmoj, err := database.OpenDMOJ(cfg.DMOJ.DSN)
			if err != nil {
				return err
			}
			if ds, err = database.ExportDMOJContest(cmd.Context(), dmoj, importOpts.dmojContest); err != nil {
				return err
			}
		case importOpts.from != "":
			if ds, err = loader.NewSource(cfg.Minio).LoadDataset(cmd.Context(), importOpts.from); err != nil {
				return err
			}
		default:
			return errors.New("one of --dmoj-contest or --from is required")
		}

		if _, err := resolver.NewIndex(ds); err != nil {
			return fmt.Errorf("dataset rejected: %w", err)
		}

		if importOpts.output != "" {
			f, err := os.Create(importOpts.output)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := loader.WriteDataset(f, ds, loader.FormatOf(importOpts.output)); err != nil {
				return fmt.Errorf("write %s: %w", importOpts.output, err)
			}
			zap.S().Infof("wrote dataset to %s", importOpts.output)
		}

		if importOpts.noStore {
			return nil
		}
		db, err := database.Init(cfg.Storage.Database)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		if err := database.SaveDataset(db, ds); err != nil {
			return err
		}
		zap.S().Infof("stored %d users, %d problems and %d submissions in %s",
			len(ds.Users), len(ds.Problems), len(ds.Submissions), cfg.Storage.Database)
		return nil
	},
}

func init() {
	importCmd.Flags().Int64Var(&importOpts.dmojContest, "dmoj-contest", 0, "id of the DMOJ contest to import")
	importCmd.Flags().StringVar(&importOpts.from, "from", "", "path, URL or s3://bucket/key of a contest export")
	importCmd.Flags().StringVarP(&importOpts.output, "output", "o", "", "also write the dataset to this file")
	importCmd.Flags().BoolVar(&importOpts.noStore, "no-store", false, "do not write to the database")
	rootCmd.AddCommand(importCmd)
}
