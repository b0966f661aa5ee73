package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hintsh/hintsh/internal/core"
	"github.com/hintsh/hintsh/internal/history"
	"github.com/hintsh/hintsh/internal/llm"
	"github.com/hintsh/hintsh/internal/repl/config"
	"github.com/hintsh/hintsh/internal/shellctx"
	"github.com/hintsh/hintsh/internal/suggest"
	"github.com/hintsh/hintsh/internal/suggest/analyze"
	"go.uber.org/zap"
)

var BUILD_VERSION = "dev"

var command = flag.String("c", "", "analyze a single input and print suggestions")
var explainTarget = flag.String("explain", "", "explain a command and exit")
var offlineFlag = flag.Bool("offline", false, "disable remote inference")

var helpFlag = flag.Bool("h", false, "display help information")
var versionFlag = flag.Bool("ver", false, "display build version")

const helpText = `hintsh - command suggestions for your shell

USAGE:
  hintsh [options]

MODES:
  hintsh                  Start an interactive suggestion session
  hintsh -c "git st"      Print suggestions for one input
  hintsh -explain "tar"   Explain a command

Inside a session, type a partial command to see suggestions.
Session commands:
  :explain <command>      Explain a command
  :patterns               Show what analysis learned from your history
  :ctx                    Show the gathered shell context
  :stats                  Show suggestion cache statistics
  :clear                  Clear the suggestion cache
  exit                    Leave the session

OPTIONS:
`

func main() {
	flag.Parse()

	if *versionFlag {
		fmt.Println(BUILD_VERSION)
		return
	}

	if *helpFlag {
		fmt.Print(helpText)
		flag.PrintDefaults()
		return
	}

	cfg, err := config.NewLoader(nil).LoadFromFile(core.ConfigFile())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := initializeLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer logger.Sync() // Flush any buffered log entries

	logger.Info("-------- new hintsh session --------", zap.Any("args", os.Args))

	historyManager, err := history.NewManager(core.HistoryFile())
	if err != nil {
		logger.Error("failed to initialize history manager", zap.Error(err))
		fmt.Fprintf(os.Stderr, "failed to initialize history: %v\n", err)
		os.Exit(1)
	}

	engine := initializeEngine(cfg, logger)
	builder := shellctx.NewBuilder(shellctx.BuilderConfig{
		History:      historyManager,
		HistoryLimit: cfg.HistoryLimit,
		Logger:       logger,
	})
	provider := shellctx.NewProvider(logger,
		shellctx.NewWorkingDirectoryRetriever(),
		shellctx.NewGitBranchRetriever(logger),
		shellctx.NewRecentCommandsRetriever(historyManager, cfg.HistoryLimit),
	)

	if err := run(engine, builder, provider, historyManager, cfg, logger); err != nil {
		logger.Error("unhandled error", zap.Error(err))
		os.Exit(1)
	}
}

func run(
	engine *suggest.Engine,
	builder *shellctx.Builder,
	provider *shellctx.Provider,
	historyManager *history.Manager,
	cfg *config.Config,
	logger *zap.Logger,
) error {
	ctx := context.Background()

	// hintsh -explain "tar -xzf"
	if *explainTarget != "" {
		fmt.Println(engine.Explain(ctx, *explainTarget))
		return nil
	}

	// hintsh -c "git st"
	if *command != "" {
		result := engine.Analyze(ctx, *command, builder.Build())
		printResult(result)
		return nil
	}

	return runSession(engine, builder, provider, historyManager, cfg, logger)
}

// runSession reads inputs line by line, routing each through the
// debounced scheduler the way a shell integration would per keystroke.
func runSession(
	engine *suggest.Engine,
	builder *shellctx.Builder,
	provider *shellctx.Provider,
	historyManager *history.Manager,
	cfg *config.Config,
	logger *zap.Logger,
) error {
	scheduler := suggest.NewScheduler(suggest.SchedulerConfig{
		DebounceDelay: time.Duration(cfg.DebounceMS) * time.Millisecond,
		Engine:        engine,
		Logger:        logger,
	})

	fmt.Println("hintsh session. Type a partial command, :h for help, exit to leave.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("hintsh> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}
		if strings.HasPrefix(line, ":") {
			runSessionCommand(engine, builder, provider, line)
			continue
		}

		sctx := builder.Build()
		if ch := scheduler.OnInputChanged(line, sctx); ch != nil {
			if scheduled, ok := <-ch; ok {
				printResult(scheduled.Result)
			}
		}

		if entry, err := historyManager.Record(line, sctx.CurrentDirectory); err != nil {
			logger.Warn("failed to record history entry", zap.Error(err))
		} else if _, err := historyManager.Finish(entry, 0, ""); err != nil {
			logger.Warn("failed to finish history entry", zap.Error(err))
		}
	}

	scheduler.Clear()
	return scanner.Err()
}

func runSessionCommand(engine *suggest.Engine, builder *shellctx.Builder, provider *shellctx.Provider, line string) {
	ctx := context.Background()
	name, rest, _ := strings.Cut(line, " ")

	switch name {
	case ":explain":
		if rest == "" {
			fmt.Println("usage: :explain <command>")
			return
		}
		fmt.Println(engine.Explain(ctx, rest))

	case ":patterns":
		sctx := builder.Build()
		printAnalysis(engine.AnalyzePatterns(sctx.RecentCommands, sctx))

	case ":stats":
		stats := engine.CacheStats()
		fmt.Printf("cache: %d/%d entries\n", stats.Size, stats.MaxSize)
		for category, count := range stats.CategoryCounts {
			fmt.Printf("  %-12s %d\n", category, count)
		}

	case ":ctx":
		for name, text := range provider.GetContext() {
			fmt.Printf("%s:\n%s\n", name, text)
		}

	case ":clear":
		engine.ClearCache()
		fmt.Println("cache cleared")

	case ":h", ":help":
		fmt.Print(helpText)

	default:
		fmt.Printf("unknown command %q, :h for help\n", name)
	}
}

func printResult(result suggest.Result) {
	if len(result.Suggestions) == 0 {
		fmt.Println("no suggestions")
		return
	}
	for i, s := range result.Suggestions {
		marker := " "
		if s.IsWarning {
			marker = "!"
		}
		fmt.Printf("%s%2d. %-40s %s\n", marker, i+1, s.Command, s.Description)
	}
}

func printAnalysis(analysis *analyze.Result) {
	if analysis == nil {
		fmt.Println("no history yet")
		return
	}
	if len(analysis.Frequencies) > 0 {
		fmt.Println("frequent commands:")
		for _, freq := range analysis.Frequencies {
			fmt.Printf("  %4dx %s %s\n", freq.Count, freq.Command, strings.Join(freq.PopularArgs, " "))
		}
	}
	if len(analysis.Sequences) > 0 {
		fmt.Println("recurring sequences:")
		for _, seq := range analysis.Sequences {
			fmt.Printf("  %4dx %s\n", seq.Count, strings.Join(seq.Commands, " -> "))
		}
	}
	if len(analysis.Optimizations) > 0 {
		fmt.Println("possible improvements:")
		for _, opt := range analysis.Optimizations {
			fmt.Printf("  %s\n    -> %s (%s)\n", opt.Original, opt.Optimized, opt.Explanation)
		}
	}
}

func initializeEngine(cfg *config.Config, logger *zap.Logger) *suggest.Engine {
	offline := cfg.Offline || *offlineFlag || cfg.APIKey == ""

	var ai suggest.AIClient
	if !offline {
		ai = llm.NewClient(llm.Config{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
			Logger:  logger,
		})
	}

	return suggest.NewEngine(suggest.EngineConfig{
		AI:             ai,
		Offline:        offline,
		MaxSuggestions: cfg.MaxSuggestions,
		MinInputLength: cfg.MinInputLength,
		CacheSize:      cfg.CacheSize,
		Logger:         logger,
	})
}

func initializeLogger(cfg *config.Config) (*zap.Logger, error) {
	logLevel := zap.NewAtomicLevelAt(zap.InfoLevel)
	if level, err := zap.ParseAtomicLevel(cfg.LogLevel); err == nil {
		logLevel = level
	}
	if BUILD_VERSION == "dev" {
		logLevel = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	// Logs only go to file to avoid interfering with the session UI.
	// Use `tail -f ~/.hintsh/hintsh.log` to monitor logs in real-time.
	loggerConfig := zap.NewProductionConfig()
	loggerConfig.Level = logLevel
	loggerConfig.OutputPaths = []string{
		core.LogFile(),
	}

	return loggerConfig.Build()
}
