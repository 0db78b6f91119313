package cmd

import (
	"errors"
	"fmt"

	"github.com/grinkers/edn/reader"
	"github.com/spf13/cobra"
)

var (
	fmtCmd = &cobra.Command{
		Use:   "fmt [file]",
		Short: "Parse every top-level form and re-print it in canonical EDN form",
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
				return err
			}

			for _, v := range vals {
				fmt.Println(reader.Print(v))
			}
			return nil
		},
	}
)

func init() {
	rootCmd.AddCommand(fmtCmd)
}
