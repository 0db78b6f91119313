package cmd

import (
	"errors"
	"fmt"

	"github.com/grinkers/edn/reader"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	checkCmd = &cobra.Command{
		Use:   "check [file]",
		Short: "Validate that a file is well-formed EDN, exiting non-zero on the first error",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				_ = cmd.Help()
				return errors.New("too many arguments")
			}

			input, err := readInput(args)
			if err != nil {
				return err
			}

			cfg, err := loadReaderConfig()
			if err != nil {
				return err
			}

			vals, err := reader.ReadManyConfig(input, cfg)
			if err != nil {
				logrus.WithError(err).Error("invalid EDN")
				return err
			}

			fmt.Printf("ok: %d form(s)\n", len(vals))
			return nil
		},
	}
)

func init() {
	rootCmd.AddCommand(checkCmd)
}
