package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ZJUSCT/resolver/internal/loader"
	"github.com/spf13/cobra"
)

var imagesOutput string

var imagesCmd = &cobra.Command{
	Use:   "images <dir>",
	Short: "Build a rank->image map from a directory of <rank>.png files",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		images, err := loader.ImagesFromDir(args[0])
		if err != nil {
			return err
		}

		var w io.Writer = cmd.OutOrStdout()
		if imagesOutput != "" && imagesOutput != "-" {
			f, err := os.Create(imagesOutput)
			if err != nil {
				return err
			}
			defer f.Close()
			w = f
		}
		if err := json.NewEncoder(w).Encode(images); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "encoded %d images\n", len(images))
		return nil
	},
}

func init() {
	imagesCmd.Flags().StringVarP(&imagesOutput, "output", "o", "images.json", "output file, - for stdout")
	rootCmd.AddCommand(imagesCmd)
}
