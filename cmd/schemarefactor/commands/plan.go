package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bfv/schemarefactor/internal/rewrite"
	"github.com/bfv/schemarefactor/internal/schemafile"
)

// NewPlanCmd builds and returns the 'plan' cobra command.
func NewPlanCmd() *cobra.Command {
	var outputFile string

	cmd := &cobra.Command{
		Use:   "plan [schema.prisma]",
		Short: "Preview the migration without touching the schema",
		Long: `Plan runs the full migration catalog and prints the transformed schema
to stdout, leaving the original document untouched. The change report
goes to stderr so the transformed text stays pipeable.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := viper.BindPFlag("schema", cmd.Flags().Lookup("schema")); err != nil {
				return err
			}
			path := viper.GetString("schema")
			if len(args) == 1 {
				path = args[0]
			}
			return runPlan(path, outputFile)
		},
	}

	cmd.Flags().String("schema", "", "Schema location (overrides SCHEMAREFACTOR_SCHEMA)")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write the transformed schema to a file instead of stdout")
	return cmd
}

// runPlan is the entry point for the plan command.
func runPlan(path, outputPath string) error {
	log.Debug().Str("schema", path).Str("output", outputPath).Msg("plan started")

	doc, err := schemafile.Load(path)
	if err != nil {
		return fmt.Errorf("loading schema: %w", err)
	}
	for _, warn := range rewrite.Warnings(doc) {
		log.Warn().Str("schema", path).Msg(warn)
	}

	next, changes := rewrite.Run(doc, rewrite.Catalog())

	out := io.Writer(os.Stdout)
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("creating output file %q: %w", outputPath, err)
		}
		defer f.Close()
		out = f
		log.Debug().Str("path", outputPath).Msg("writing to file")
	}
	if _, err := io.WriteString(out, next); err != nil {
		return fmt.Errorf("writing transformed schema: %w", err)
	}

	writeText(os.Stderr, path, changes)
	log.Debug().Int("changes", len(changes)).Msg("plan complete")
	return nil
}
