// threadsum fetches a Reddit discussion thread, renders it to the
// terminal, and produces a markdown analysis through a local Ollama model.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"threadsum/pkg/config"
	"threadsum/pkg/logging"
	"threadsum/pkg/models"
	"threadsum/pkg/reddit"
	"threadsum/pkg/render"
	"threadsum/pkg/summarize"
)

const version = "1.0.0"

// Exit codes, the tool's only machine-readable interface:
//
//	0  success
//	2  network failure fetching the thread
//	3  unexpected thread shape
//	4  no valid model selected
//	5  ollama missing or failed
//	1  anything else (usage, config)
const (
	exitOK        = 0
	exitGeneric   = 1
	exitNetwork   = 2
	exitParse     = 3
	exitSelection = 4
	exitExternal  = 5
)

var (
	configFile string
	verbose    bool

	modelFlag string
	listFile  string
	outputDir string
	printOnly bool
	noDisplay bool
	widthFlag int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "threadsum",
		Short: "Summarize Reddit threads with a local Ollama model",
		Long: `threadsum fetches a Reddit discussion thread from the public JSON
endpoint, displays the post and its nested comments in the terminal, and
hands the thread text to a locally running Ollama model for an in-depth
markdown analysis.

Examples:
  # Full pipeline with interactive model selection
  threadsum summarize https://www.reddit.com/r/golang/comments/abc123/title/

  # Pick the model up front, write the report into ./reports
  threadsum summarize -m llama3.1:8b -o reports <thread-url>

  # Just read the thread
  threadsum view <thread-url>`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to config file (default: .threadsum.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(summarizeCmd())
	rootCmd.AddCommand(viewCmd())
	rootCmd.AddCommand(modelsCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps the error taxonomy onto the documented codes.
func exitCode(err error) int {
	switch {
	case errors.Is(err, reddit.ErrNetwork):
		return exitNetwork
	case errors.Is(err, reddit.ErrParse):
		return exitParse
	case errors.Is(err, models.ErrSelection):
		return exitSelection
	case errors.Is(err, summarize.ErrExternal):
		return exitExternal
	default:
		return exitGeneric
	}
}

func loadConfig() (*config.Config, error) {
	logging.Init(verbose)
	if configFile != "" {
		return config.Load(configFile)
	}
	return config.LoadDefault()
}

func summarizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summarize <thread-url>",
		Short: "Fetch, display and summarize a thread",
		Args:  cobra.ExactArgs(1),
		RunE:  runSummarize,
	}

	cmd.Flags().StringVarP(&modelFlag, "model", "m", "", "Model name (skips the interactive picker)")
	cmd.Flags().StringVar(&listFile, "models", "", "Path to the model list file")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory for the markdown report")
	cmd.Flags().BoolVar(&printOnly, "print-only", false, "Print the summary without writing a file")
	cmd.Flags().BoolVar(&noDisplay, "no-display", false, "Skip rendering the thread to the terminal")
	cmd.Flags().IntVar(&widthFlag, "width", 0, "Display width (default 80)")

	return cmd
}

func runSummarize(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyFlags(cfg)

	thread, err := fetchThread(cfg, args[0])
	if err != nil {
		return err
	}

	if !noDisplay {
		r := newRenderer(cfg)
		if err := r.WriteThread(os.Stdout, thread); err != nil {
			return err
		}
		fmt.Println()
	}

	model, err := chooseModel(cfg)
	if err != nil {
		return err
	}

	prompt, err := summarize.BuildPrompt(thread, cfg.Reddit.MaxContentLength)
	if err != nil {
		return err
	}

	engine, err := summarize.NewEngine(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("\nGenerating analysis with %s...\n\n", model)

	ctx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Model.TimeoutSeconds)*time.Second)
	defer cancel()

	summary, err := engine.Summarize(ctx, model, prompt)
	if err != nil {
		return err
	}

	report := summarize.NewReport(thread, model, summary)

	if *cfg.Output.Print {
		fmt.Println(report.Markdown())
	}
	if *cfg.Output.WriteFile {
		path, err := report.WriteFile(cfg.Output.Dir)
		if err != nil {
			return err
		}
		fmt.Printf("Report written to %s\n", path)
	}

	return nil
}

func viewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view <thread-url>",
		Short: "Fetch and display a thread without summarizing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			applyFlags(cfg)

			thread, err := fetchThread(cfg, args[0])
			if err != nil {
				return err
			}
			return newRenderer(cfg).WriteThread(os.Stdout, thread)
		},
	}
	cmd.Flags().IntVar(&widthFlag, "width", 0, "Display width (default 80)")
	return cmd
}

func modelsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "models",
		Short: "List the models available for selection",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			applyFlags(cfg)

			list, err := models.Load(cfg.Model.ListFile)
			if err != nil {
				return err
			}
			for _, m := range list {
				fmt.Println(m)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&listFile, "models", "", "Path to the model list file")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("threadsum version %s\n", version)
		},
	}
}

// applyFlags overlays command-line flags on the loaded config.
func applyFlags(cfg *config.Config) {
	if modelFlag != "" {
		cfg.Model.Name = modelFlag
	}
	if listFile != "" {
		cfg.Model.ListFile = listFile
	}
	if outputDir != "" {
		cfg.Output.Dir = outputDir
	}
	if printOnly {
		f := false
		t := true
		cfg.Output.WriteFile = &f
		cfg.Output.Print = &t
	}
	if widthFlag > 0 {
		cfg.Render.Width = widthFlag
	}
}

func fetchThread(cfg *config.Config, url string) (*reddit.Thread, error) {
	client := reddit.NewClient(reddit.ClientConfig{
		UserAgent: cfg.Reddit.UserAgent,
		Timeout:   time.Duration(cfg.Reddit.TimeoutSeconds) * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Reddit.TimeoutSeconds)*time.Second)
	defer cancel()

	return client.FetchThread(ctx, url)
}

func newRenderer(cfg *config.Config) *render.Renderer {
	color := false
	switch cfg.Render.Color {
	case "on":
		color = true
	case "auto":
		color = readline.DefaultIsTerminal()
	}
	return render.NewRenderer(cfg.Render.Width, cfg.Render.Indent, color)
}

// chooseModel uses the configured model when set and falls back to the
// interactive picker over the model list file.
func chooseModel(cfg *config.Config) (string, error) {
	list, err := models.Load(cfg.Model.ListFile)
	if err != nil {
		// A preconfigured model works even without a list file.
		if cfg.Model.Name != "" {
			return cfg.Model.Name, nil
		}
		return "", err
	}

	if cfg.Model.Name != "" {
		for _, m := range list {
			if m == cfg.Model.Name {
				return m, nil
			}
		}
		fmt.Fprintf(os.Stderr, "Warning: %q is not in %s, using it anyway\n",
			cfg.Model.Name, cfg.Model.ListFile)
		return cfg.Model.Name, nil
	}

	return models.NewPicker().Pick(list)
}
