package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/repr"
	"github.com/grinkers/edn/reader"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	readRepr bool

	readCmd = &cobra.Command{
		Use:   "read [file]",
		Short: "Read a single EDN form and print its parsed structure",
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

			v, err := reader.ReadConfig(input, cfg)
			if err != nil {
				logrus.WithError(err).Debug("read failed")
				return err
			}

			if readRepr {
				fmt.Println(repr.String(v, repr.Indent("  ")))
				return nil
			}
			fmt.Println(reader.Print(v))
			return nil
		},
	}
)

func readInput(args []string) (string, error) {
	if len(args) == 1 {
		b, err := os.ReadFile(args[0])
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	b, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func init() {
	readCmd.Flags().BoolVar(&readRepr, "repr", false, "dump the parsed Value's Go representation instead of re-printing it as EDN")
	rootCmd.AddCommand(readCmd)
}
