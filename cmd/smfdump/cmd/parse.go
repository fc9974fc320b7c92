/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bcallard/smfdump/pkg/archive"
	"github.com/bcallard/smfdump/pkg/dump"
	"github.com/bcallard/smfdump/pkg/revision"
)

// parseCmd represents the parse command
var parseCmd = &cobra.Command{
	Use:   "parse <dump-file>",
	Short: "Decode an SMF dump file and print the run summary",
	Long: `Parse reads a binary SMF dump file, decodes every frame it can,
and prints the run summary as JSON. Malformed frames are counted and
skipped; the run always completes.

Examples:
  smfdump parse ./dumps/daily.smf
  smfdump parse --archive ./dumps/daily.smf
  smfdump parse --revision ./revisions/zos31.toml ./dumps/daily.smf`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger, err := newLogger(cfg)
		if err != nil {
			return err
		}

		revPath, _ := cmd.Flags().GetString("revision")
		if revPath == "" {
			revPath = cfg.Revision
		}
		rev := revision.Default()
		if revPath != "" {
			rev, err = revision.Load(revPath)
			if err != nil {
				return fmt.Errorf("failed to load revision: %w", err)
			}
		}

		buf, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read dump file: %w", err)
		}

		maxFrames, _ := cmd.Flags().GetInt("max-frames")
		if maxFrames == 0 {
			maxFrames = cfg.MaxFrames
		}

		parser := dump.NewParser(rev,
			dump.WithLogger(logger),
			dump.WithMaxFrames(maxFrames),
		)
		acc := parser.Parse(buf)

		out, err := json.MarshalIndent(acc.Summarize(), "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(out))

		if save, _ := cmd.Flags().GetBool("archive"); save {
			store, err := archive.Open(cfg.ArchiveDir)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.SaveRun(acc); err != nil {
				return err
			}
			cmd.Printf("Archived run %s to %s\n", acc.RunID, cfg.ArchiveDir)
		}
		return nil
	},
}

func init() {
	parseCmd.Flags().Bool("archive", false, "archive the run for the serve command")
	parseCmd.Flags().String("revision", "", "path to a TOML format-revision file")
	parseCmd.Flags().Int("max-frames", 0, "stop after this many frames (0 = unbounded)")
	rootCmd.AddCommand(parseCmd)
}
