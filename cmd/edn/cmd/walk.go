package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/grinkers/edn/reader"
	"github.com/spf13/cobra"
)

var (
	walkExt string

	walkCmd = &cobra.Command{
		Use:   "walk [directory]",
		Short: "Scan a directory tree for .edn files and report the tagged-literal tags they use",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				_ = cmd.Help()
				return errors.New("too many arguments")
			}

			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}

			tags := map[string]int{}
			var fileCount, formCount int

			err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if d.IsDir() || !strings.HasSuffix(d.Name(), walkExt) {
					return nil
				}
				contentBytes, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				vals, err := reader.ReadMany(string(contentBytes))
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				fileCount++
				formCount += len(vals)
				for _, v := range vals {
					collectTags(v, tags)
				}
				return nil
			})
			if err != nil {
				return err
			}

			names := make([]string, 0, len(tags))
			for name := range tags {
				names = append(names, name)
			}
			sort.Strings(names)

			fmt.Printf("%d file(s), %d top-level form(s)\n", fileCount, formCount)
			for _, name := range names {
				fmt.Printf("  %s: %d\n", name, tags[name])
			}
			return nil
		},
	}
)

// collectTags walks v recursively, tallying every tagged-literal tag
// (including the built-in #inst/#uuid forms) it finds.
func collectTags(v reader.Value, tags map[string]int) {
	switch v.Kind {
	case reader.KindTagged:
		tags[v.Tag.String()]++
		collectTags(*v.Inner, tags)
	case reader.KindInst:
		tags["inst"]++
	case reader.KindUuid:
		tags["uuid"]++
	case reader.KindList, reader.KindVector, reader.KindSet:
		for _, it := range v.Items {
			collectTags(it, tags)
		}
	case reader.KindMap:
		for i := range v.Keys {
			collectTags(v.Keys[i], tags)
			collectTags(v.Vals[i], tags)
		}
	}
}

func init() {
	walkCmd.Flags().StringVar(&walkExt, "ext", ".edn", "file extension to scan for")
	rootCmd.AddCommand(walkCmd)
}
