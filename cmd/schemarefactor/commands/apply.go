package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/bfv/schemarefactor/internal/rewrite"
	"github.com/bfv/schemarefactor/internal/schemafile"
)

// NewApplyCmd builds and returns the 'apply' cobra command.
func NewApplyCmd() *cobra.Command {
	var outputFile string
	var format string

	cmd := &cobra.Command{
		Use:   "apply [schema.prisma...]",
		Short: "Rename ProcessSegment constructs in place and report the changes",
		Long: `Apply runs the full migration catalog against each schema document and
writes the result back to the same location. Rules that find no match are
skipped, so re-running against a migrated schema changes nothing.

Without arguments the schema location comes from --schema, the
SCHEMAREFACTOR_SCHEMA environment variable, or prisma/schema.prisma.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Bind the cobra flags into viper so they can be read uniformly.
			if err := viper.BindPFlag("schema", cmd.Flags().Lookup("schema")); err != nil {
				return err
			}
			if err := viper.BindPFlag("format", cmd.Flags().Lookup("format")); err != nil {
				return err
			}
			paths := args
			if len(paths) == 0 {
				paths = []string{viper.GetString("schema")}
			}
			return runApply(paths, viper.GetString("format"), outputFile)
		},
	}

	cmd.Flags().String("schema", "", "Schema location (overrides SCHEMAREFACTOR_SCHEMA)")
	cmd.Flags().StringVar(&format, "format", "text", "Change report format: text or yaml")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write the change report to a file instead of stdout")
	return cmd
}

// applyResult holds the outcome of one document migration.
type applyResult struct {
	path    string
	changes []rewrite.Change
	err     error
}

// runApply migrates every schema document in place. Each document is an
// independent pipeline owning its own buffer, so the pipelines run
// concurrently. Every pipeline runs to completion even when another one
// fails; reports are rendered in argument order once all have finished,
// and the first failure becomes the command error.
func runApply(paths []string, format, outputPath string) error {
	log.Debug().Strs("schemas", paths).Str("format", format).Msg("apply started")

	results := make([]applyResult, len(paths))
	var g errgroup.Group
	for i, path := range paths {
		g.Go(func() error {
			changes, err := migrate(path)
			results[i] = applyResult{path: path, changes: changes, err: err}
			return err
		})
	}
	runErr := g.Wait()

	out := io.Writer(os.Stdout)
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("creating output file %q: %w", outputPath, err)
		}
		defer f.Close()
		out = f
		log.Debug().Str("path", outputPath).Msg("writing report to file")
	}

	for _, res := range results {
		if res.err != nil {
			log.Error().Err(res.err).Str("schema", res.path).Msg("migration failed")
			continue
		}
		if err := writeReport(out, format, res.path, res.changes); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
	}

	log.Debug().Msg("apply complete")
	return runErr
}

// migrate runs the full phase catalog against the document at path and
// persists the result. The document is rewritten in memory; the single
// save happens only after every phase has completed, so a failure never
// leaves a half-migrated document behind.
func migrate(path string) ([]rewrite.Change, error) {
	doc, err := schemafile.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}
	for _, warn := range rewrite.Warnings(doc) {
		log.Warn().Str("schema", path).Msg(warn)
	}

	next, changes := rewrite.Run(doc, rewrite.Catalog())

	if err := schemafile.Save(path, next); err != nil {
		return nil, fmt.Errorf("saving schema: %w", err)
	}
	log.Debug().Str("schema", path).Int("changes", len(changes)).Msg("migration complete")
	return changes, nil
}
