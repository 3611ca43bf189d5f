// Package cli wires the analysis pipeline into subcommands.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/FadyCoding/EPEPEP/internal/clone"
	"github.com/FadyCoding/EPEPEP/internal/config"
	"github.com/FadyCoding/EPEPEP/internal/pipeline"
)

var (
	configPath   string
	skipClone    bool
	blameWorkers int
	quiet        bool
)

// New builds the root command with every subcommand attached.
func New() *cobra.Command {
	root := &cobra.Command{
		Use:           "epepep",
		Short:         "Git repository contribution analysis",
		Long:          "EPEPEP analyzes the commit history and final line ownership of git repositories and reports per-contributor statistics, folder shares, and fairness grades.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to the yaml config file")
	root.PersistentFlags().IntVar(&blameWorkers, "blame-workers", 4, "concurrent blame passes per repository")
	root.PersistentFlags().BoolVar(&quiet, "quiet", false, "disable progress output")
	_ = root.MarkPersistentFlagRequired("config")

	root.AddCommand(newRunCmd(), newCloneCmd(), newAnalyzeCmd(), newLOCCmd(), newMarkdownCmd())
	return root
}

func options() pipeline.Options {
	return pipeline.Options{
		SkipClone:    skipClone,
		BlameWorkers: blameWorkers,
		Quiet:        quiet,
	}
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run all analysis steps",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			return pipeline.Run(cmd.Context(), cfg, options())
		},
	}
	cmd.Flags().BoolVar(&skipClone, "skip-clone", false, "keep already cloned repositories")
	return cmd
}

func newCloneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clone",
		Short: "Clone the configured repositories",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			return clone.All(cmd.Context(), clone.Tasks(cfg), cfg.CloneWorkers)
		},
	}
}

func newAnalyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze",
		Short: "Analyze commit activity and write the commit reports",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			docs, err := pipeline.AnalyzeAll(cmd.Context(), cfg, options())
			if err != nil {
				return err
			}
			return pipeline.WriteCommitReports(docs, cfg)
		},
	}
}

func newLOCCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "loc",
		Short: "Analyze line ownership and write the LOC reports",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			docs, err := pipeline.AnalyzeAll(cmd.Context(), cfg, options())
			if err != nil {
				return err
			}
			return pipeline.WriteLOCReports(docs, cfg)
		},
	}
}

func newMarkdownCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "markdown",
		Short: "Render the markdown reports and activity charts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			docs, err := pipeline.AnalyzeAll(cmd.Context(), cfg, options())
			if err != nil {
				return err
			}
			return pipeline.WriteMarkdownReports(docs, cfg)
		},
	}
}
