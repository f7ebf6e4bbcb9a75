package main

import (
	"fmt"
	"io"
	"os"

	"github.com/ZJUSCT/resolver/internal/config"
	"github.com/ZJUSCT/resolver/internal/database"
	"github.com/ZJUSCT/resolver/internal/exporter"
	"github.com/ZJUSCT/resolver/internal/loader"
	"github.com/ZJUSCT/resolver/internal/session"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var exportOpts struct {
	format string
	view   string
	output string
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the frozen or final standings to csv or xlsx",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, sync, err := setup()
		if err != nil {
			return err
		}
		defer sync()

		typ := exporter.Type(exportOpts.format)
		exp, err := exporter.New(typ)
		if err != nil {
			return err
		}

		var db *gorm.DB
		if cfg.Contest.Source == config.SourceDatabase {
			if db, err = database.Init(cfg.Storage.Database); err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
		}
		res, err := session.LoadResolver(cmd.Context(), cfg, db, loader.NewSource(cfg.Minio))
		if err != nil {
			return err
		}
		standings, err := session.StandingsOf(res, exportOpts.view)
		if err != nil {
			return err
		}

		var w io.Writer = os.Stdout
		if exportOpts.output != "" && exportOpts.output != "-" {
			f, err := os.Create(exportOpts.output)
			if err != nil {
				return err
			}
			defer f.Close()
			w = f
		} else if typ == exporter.XLSX {
			return fmt.Errorf("xlsx output needs a file, use --output")
		}

		if err := exp.Export(standings, w); err != nil {
			return err
		}
		zap.S().Infof("exported %d %s rows as %s", len(standings.Rows), exportOpts.view, typ)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOpts.format, "format", string(exporter.CSV), "output format: csv or xlsx")
	exportCmd.Flags().StringVar(&exportOpts.view, "view", session.ViewFinal, "standings to export: frozen or final")
	exportCmd.Flags().StringVarP(&exportOpts.output, "output", "o", "", "output file, stdout when empty")
	rootCmd.AddCommand(exportCmd)
}
