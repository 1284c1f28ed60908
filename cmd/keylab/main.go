// Package main provides the CLI entrypoint for keylab.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/keylab/internal/config"
	"github.com/verte-zerg/keylab/internal/corpus"
	"github.com/verte-zerg/keylab/internal/lang"
	"github.com/verte-zerg/keylab/internal/layout"
	"github.com/verte-zerg/keylab/internal/model"
	"github.com/verte-zerg/keylab/internal/rank"
	"github.com/verte-zerg/keylab/internal/report"
	"github.com/verte-zerg/keylab/internal/search"
	"github.com/verte-zerg/keylab/internal/stat"
	"github.com/verte-zerg/keylab/internal/store"
	"github.com/verte-zerg/keylab/internal/ui"
)

const (
	defaultSwaps       = 1
	defaultRounds      = 10000
	defaultTemperature = 1.0
	defaultCooling     = 0.999
	defaultCurveWindow = 5
	layoutExt          = ".kl"
)

var (
	analyzeCorpus string

	rankCorpus string

	compareCorpus string

	optimizeCorpus   string
	optimizeWorkers  int
	optimizeSwaps    int
	optimizeRounds   int
	optimizeTemp     float64
	optimizeCooling  float64
	optimizePatience int
	optimizeSeed     int64
	optimizeShuffle  bool
	optimizeSave     string
	optimizeNoUI     bool

	historyCorpus string
	historySince  string
	historyLast   int
	historyRun    int64
	historyCurve  bool
	historyWindow int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "keylab",
		Short:         "Keyboard layout analyzer and optimizer",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.AddCommand(newAnalyzeCmd())
	rootCmd.AddCommand(newRankCmd())
	rootCmd.AddCommand(newCompareCmd())
	rootCmd.AddCommand(newOptimizeCmd())
	rootCmd.AddCommand(newCorpusCmd())
	rootCmd.AddCommand(newLayoutsCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// env bundles the pieces every scoring command needs.
type env struct {
	cfg      config.FileConfig
	alphabet *lang.Alphabet
	set      *stat.Set
}

func loadEnv() (*env, error) {
	cfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	alphabet := lang.Default()
	if cfg.Corpus.Alphabet != nil {
		alphabet, err = lang.Load(*cfg.Corpus.Alphabet)
		if err != nil {
			return nil, fmt.Errorf("failed to load alphabet: %w", err)
		}
	}

	weights := config.DefaultWeights()
	if cfg.Weights.Configured() {
		weights, err = cfg.Weights.StatWeights()
		if err != nil {
			return nil, fmt.Errorf("invalid weights: %w", err)
		}
	}
	registry := stat.Builtin()
	registry.ApplyWeights(weights)
	registry.Trim()
	registry.Clean()

	return &env{cfg: cfg, alphabet: alphabet, set: registry.Freeze()}, nil
}

// resolveCorpus picks the corpus path: flag first, then config file.
func resolveCorpus(flagValue string, cfg config.FileConfig) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if cfg.Corpus.Path != nil && *cfg.Corpus.Path != "" {
		return *cfg.Corpus.Path, nil
	}
	return "", fmt.Errorf("no corpus given; pass --corpus or set [corpus] path in the config")
}

func loadTables(path string, a *lang.Alphabet) (*corpus.Tables, error) {
	cache, err := corpus.OpenCache(config.DefaultCorpusCacheDir())
	if err != nil {
		logErrf("corpus cache unavailable: %v\n", err)
		cache = nil
	}
	counts, err := corpus.Load(path, a, cache)
	if err != nil {
		return nil, fmt.Errorf("failed to load corpus: %w", err)
	}
	return corpus.Normalize(counts), nil
}

// resolveLayoutPath accepts either a file path or a bare layout name
// living in the layouts directory.
func resolveLayoutPath(arg string) string {
	if strings.ContainsRune(arg, os.PathSeparator) || strings.HasSuffix(arg, layoutExt) {
		return arg
	}
	if _, err := os.Stat(arg); err == nil {
		return arg
	}
	return config.DefaultLayoutPath(arg)
}

func loadLayout(arg string, e *env) (*layout.Layout, error) {
	path := resolveLayoutPath(arg)
	lt, err := layout.Load(path, e.alphabet, e.set)
	if err != nil {
		return nil, fmt.Errorf("failed to load layout %q: %w", arg, err)
	}
	return lt, nil
}

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <layout>",
		Short: "Score one layout against a corpus",
		Args:  cobra.ExactArgs(1),
		RunE:  runAnalyzeCmd,
	}
	cmd.Flags().StringVar(&analyzeCorpus, "corpus", "", "corpus file to score against")
	return cmd
}

func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	corpusPath, err := resolveCorpus(analyzeCorpus, e.cfg)
	if err != nil {
		return err
	}
	tables, err := loadTables(corpusPath, e.alphabet)
	if err != nil {
		return err
	}
	lt, err := loadLayout(args[0], e)
	if err != nil {
		return err
	}
	lt.Rescore(e.set, tables)
	return report.RenderAnalysis(cmd.OutOrStdout(), lt, e.set, e.alphabet)
}

func newRankCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rank [layout...]",
		Short: "Rank layouts by score; defaults to every saved layout",
		RunE:  runRankCmd,
	}
	cmd.Flags().StringVar(&rankCorpus, "corpus", "", "corpus file to score against")
	return cmd
}

func runRankCmd(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	corpusPath, err := resolveCorpus(rankCorpus, e.cfg)
	if err != nil {
		return err
	}
	tables, err := loadTables(corpusPath, e.alphabet)
	if err != nil {
		return err
	}

	names := args
	if len(names) == 0 {
		names, err = savedLayoutNames()
		if err != nil {
			return err
		}
		if len(names) == 0 {
			return fmt.Errorf("no saved layouts in %s; pass layout names or files", config.DefaultLayoutDir())
		}
	}

	ranking := rank.New()
	for _, name := range names {
		lt, err := loadLayout(name, e)
		if err != nil {
			return err
		}
		lt.Rescore(e.set, tables)
		ranking.Insert(lt.Name, lt.Score)
	}
	return report.RenderRanking(cmd.OutOrStdout(), ranking.Snapshot())
}

func newCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <layout> <layout>",
		Short: "Diff two layouts key by key and score by score",
		Args:  cobra.ExactArgs(2),
		RunE:  runCompareCmd,
	}
	cmd.Flags().StringVar(&compareCorpus, "corpus", "", "corpus file to score against")
	return cmd
}

func runCompareCmd(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	corpusPath, err := resolveCorpus(compareCorpus, e.cfg)
	if err != nil {
		return err
	}
	tables, err := loadTables(corpusPath, e.alphabet)
	if err != nil {
		return err
	}
	a, err := loadLayout(args[0], e)
	if err != nil {
		return err
	}
	b, err := loadLayout(args[1], e)
	if err != nil {
		return err
	}
	a.Rescore(e.set, tables)
	b.Rescore(e.set, tables)
	return report.RenderDiff(cmd.OutOrStdout(), layout.Compare(a, b), e.set, e.alphabet)
}

func newOptimizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "optimize <layout>",
		Short: "Search for better layouts with simulated annealing",
		Args:  cobra.ExactArgs(1),
		RunE:  runOptimizeCmd,
	}
	cmd.Flags().StringVar(&optimizeCorpus, "corpus", "", "corpus file to score against")
	cmd.Flags().IntVar(&optimizeWorkers, "workers", 0, "parallel candidates (default: GOMAXPROCS)")
	cmd.Flags().IntVar(&optimizeSwaps, "swaps", defaultSwaps, "swaps per proposal")
	cmd.Flags().IntVar(&optimizeRounds, "rounds", defaultRounds, "round budget")
	cmd.Flags().Float64Var(&optimizeTemp, "temperature", defaultTemperature, "initial temperature")
	cmd.Flags().Float64Var(&optimizeCooling, "cooling", defaultCooling, "per-round cooling factor (0-1)")
	cmd.Flags().IntVar(&optimizePatience, "patience", 0, "stop after N rounds without acceptance (0: never)")
	cmd.Flags().Int64Var(&optimizeSeed, "seed", 0, "rng seed (0: time-based)")
	cmd.Flags().BoolVar(&optimizeShuffle, "shuffle", false, "start workers from shuffled grids")
	cmd.Flags().StringVar(&optimizeSave, "save", "", "save the best layout under this name")
	cmd.Flags().BoolVar(&optimizeNoUI, "no-ui", false, "run without the progress UI")
	return cmd
}

func runOptimizeCmd(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	applyIntConfig(cmd, "workers", &optimizeWorkers, e.cfg.Search.Workers)
	applyIntConfig(cmd, "swaps", &optimizeSwaps, e.cfg.Search.Swaps)
	applyIntConfig(cmd, "rounds", &optimizeRounds, e.cfg.Search.Rounds)
	applyFloatConfig(cmd, "temperature", &optimizeTemp, e.cfg.Search.Temperature)
	applyFloatConfig(cmd, "cooling", &optimizeCooling, e.cfg.Search.Cooling)
	applyIntConfig(cmd, "patience", &optimizePatience, e.cfg.Search.Patience)
	applyBoolConfig(cmd, "shuffle", &optimizeShuffle, e.cfg.Search.Shuffle)
	if err := validateSearchFlags(); err != nil {
		return err
	}

	corpusPath, err := resolveCorpus(optimizeCorpus, e.cfg)
	if err != nil {
		return err
	}
	tables, err := loadTables(corpusPath, e.alphabet)
	if err != nil {
		return err
	}
	base, err := loadLayout(args[0], e)
	if err != nil {
		return err
	}

	params := search.Params{
		Workers:      optimizeWorkers,
		Swaps:        optimizeSwaps,
		Rounds:       optimizeRounds,
		Temperature:  optimizeTemp,
		Cooling:      optimizeCooling,
		Patience:     optimizePatience,
		Seed:         optimizeSeed,
		ShuffleStart: optimizeShuffle,
	}

	ranking := rank.New()
	startedAt := time.Now()
	var res *search.Result
	if optimizeNoUI {
		res, err = runHeadless(base, e, tables, ranking, params)
	} else {
		res, err = runWithUI(base, e, tables, ranking, params)
	}
	if err != nil {
		return err
	}
	endedAt := time.Now()

	out := cmd.OutOrStdout()
	if err := report.RenderAnalysis(out, res.Best, e.set, e.alphabet); err != nil {
		return err
	}
	if err := report.RenderRanking(out, ranking.Top(10)); err != nil {
		return err
	}

	if optimizeSave != "" {
		if err := saveLayout(optimizeSave, res.Best, e.alphabet); err != nil {
			return err
		}
		logErrf("Saved layout %s\n", config.DefaultLayoutPath(optimizeSave))
	}

	if err := persistRun(base.Name, corpusPath, startedAt, endedAt, params, res, e.alphabet); err != nil {
		logErrf("failed to record run: %v\n", err)
	}
	return nil
}

func runHeadless(base *layout.Layout, e *env, tables *corpus.Tables,
	ranking *rank.List, params search.Params) (*search.Result, error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	progress := make(chan search.Progress, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for p := range progress {
			logErrf("round %d/%d temp=%.6f best=%.4f accepted=%d\n",
				p.Round, p.Rounds, p.Temperature, p.Best, p.Accepted)
		}
	}()

	res, err := search.Run(ctx, base, e.set, tables, ranking, params, progress)
	close(progress)
	<-done
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	return res, nil
}

func runWithUI(base *layout.Layout, e *env, tables *corpus.Tables,
	ranking *rank.List, params search.Params) (*search.Result, error) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	progress := make(chan search.Progress, 16)
	var res *search.Result
	var runErr error
	done := make(chan struct{})
	go func() {
		defer close(done)
		res, runErr = search.Run(ctx, base, e.set, tables, ranking, params, progress)
		close(progress)
	}()

	program := tea.NewProgram(ui.NewModel(progress, cancel))
	if _, err := program.Run(); err != nil {
		cancel()
		<-done
		return nil, fmt.Errorf("failed to run progress UI: %w", err)
	}
	<-done
	if runErr != nil {
		return nil, fmt.Errorf("search failed: %w", runErr)
	}
	return res, nil
}

func persistRun(baseName, corpusPath string, startedAt, endedAt time.Time,
	params search.Params, res *search.Result, a *lang.Alphabet) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	run := model.Run{
		StartedAt:   startedAt,
		EndedAt:     endedAt,
		CorpusPath:  corpusPath,
		BaseLayout:  baseName,
		Workers:     len(res.Bests),
		Swaps:       params.Swaps,
		Rounds:      res.Rounds,
		Temperature: params.Temperature,
		Cooling:     params.Cooling,
		Accepted:    res.Accepted,
		BestName:    res.Best.Name,
		BestScore:   res.Best.Score,
	}
	layouts := make([]model.RunLayout, 0, len(res.Bests))
	for i, lt := range res.Bests {
		layouts = append(layouts, model.RunLayout{
			Rank:  i + 1,
			Name:  lt.Name,
			Score: lt.Score,
			Grid:  lt.Render(a),
		})
	}
	_, err = st.InsertRun(context.Background(), run, layouts)
	return err
}

func saveLayout(name string, lt *layout.Layout, a *lang.Alphabet) error {
	path := config.DefaultLayoutPath(name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create layout directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(lt.Render(a)), 0o644); err != nil {
		return fmt.Errorf("failed to write layout: %w", err)
	}
	return nil
}

func newCorpusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "corpus [file]",
		Short: "Count a corpus and show its n-gram totals",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runCorpusCmd,
	}
}

func runCorpusCmd(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	flagValue := ""
	if len(args) == 1 {
		flagValue = args[0]
	}
	path, err := resolveCorpus(flagValue, e.cfg)
	if err != nil {
		return err
	}
	cache, err := corpus.OpenCache(config.DefaultCorpusCacheDir())
	if err != nil {
		logErrf("corpus cache unavailable: %v\n", err)
		cache = nil
	}
	counts, err := corpus.Load(path, e.alphabet, cache)
	if err != nil {
		return fmt.Errorf("failed to load corpus: %w", err)
	}

	out := cmd.OutOrStdout()
	if _, err := fmt.Fprintf(out, "Corpus %s (alphabet of %d)\n", path, e.alphabet.Len()); err != nil {
		return err
	}
	lines := []struct {
		name  string
		total int64
	}{
		{"monograms", corpus.Total(counts.Mono)},
		{"bigrams", corpus.Total(counts.Bi)},
		{"trigrams", corpus.Total(counts.Tri)},
		{"quadgrams", corpus.Total(counts.Quad)},
	}
	for _, l := range lines {
		if _, err := fmt.Fprintf(out, "%-10s %d\n", l.name, l.total); err != nil {
			return err
		}
	}
	for d := range counts.Skip {
		if _, err := fmt.Fprintf(out, "skip-%d     %d\n", d+1, corpus.Total(counts.Skip[d])); err != nil {
			return err
		}
	}
	return nil
}

func newLayoutsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "layouts",
		Short: "List saved layouts",
		Args:  cobra.NoArgs,
		RunE:  runLayoutsCmd,
	}
}

func runLayoutsCmd(cmd *cobra.Command, _ []string) error {
	names, err := savedLayoutNames()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		logErrf("No layouts found. Save one with: keylab optimize <layout> --save <name>\n")
		return fmt.Errorf("no layouts found")
	}
	for _, name := range names {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), name); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func savedLayoutNames() ([]string, error) {
	entries, err := os.ReadDir(config.DefaultLayoutDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read layout directory: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, layoutExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(name, layoutExt))
	}
	sort.Strings(names)
	return names, nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past optimization runs",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().StringVar(&historyCorpus, "corpus", "", "corpus filter")
	cmd.Flags().StringVar(&historySince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&historyLast, "last", 0, "limit to last N runs")
	cmd.Flags().Int64Var(&historyRun, "run", 0, "show the ranked layouts of one run")
	cmd.Flags().BoolVar(&historyCurve, "curve", false, "plot best scores across runs")
	cmd.Flags().IntVar(&historyWindow, "curve-window", defaultCurveWindow, "moving average window")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	var sinceTime *time.Time
	if historySince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", historySince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	if historyRun > 0 {
		return showRunLayouts(cmd, st, historyRun)
	}

	runs, err := st.ListRuns(context.Background(), model.HistoryFilter{
		Corpus: historyCorpus,
		Since:  sinceTime,
		Last:   historyLast,
	})
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	out := cmd.OutOrStdout()
	if err := report.RenderRuns(out, runs); err != nil {
		return err
	}
	if historyCurve {
		return report.RenderScoreCurve(out, runs, historyWindow, report.TerminalWidth(), 10, false)
	}
	return nil
}

func showRunLayouts(cmd *cobra.Command, st *store.Store, id int64) error {
	ctx := context.Background()
	run, err := st.GetRun(ctx, id)
	if err != nil {
		return err
	}
	layouts, err := st.ListRunLayouts(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to list run layouts: %w", err)
	}
	out := cmd.OutOrStdout()
	if _, err := fmt.Fprintf(out, "Run %d (%s, base %s)\n\n", run.ID, run.CorpusPath, run.BaseLayout); err != nil {
		return err
	}
	for _, rl := range layouts {
		if _, err := fmt.Fprintf(out, "#%d %s %.4f\n%s\n", rl.Rank, rl.Name, rl.Score, rl.Grid); err != nil {
			return err
		}
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# keylab configuration
# Uncomment a value to enable it. CLI flags override config values.

[search]
# workers = 0               # Parallel candidates (0: GOMAXPROCS)
# swaps = %d                 # Swaps per proposal
# rounds = %d            # Round budget
# temperature = %.1f         # Initial temperature
# cooling = %.3f           # Per-round cooling factor (0-1)
# patience = 0              # Stop after N stale rounds (0: never)
# shuffle = false           # Start workers from shuffled grids

[corpus]
# path = "corpus.txt"       # Default corpus file
# alphabet = "alphabet.txt" # Custom alphabet file

# Weights reward (positive) or penalize (negative) statistics.
# Unweighted statistics are dropped. Skip weights take one value
# per skip distance 1-9.

# [weights.bi]
# same-finger = -3.0
# roll-in = 0.9

# [weights.skip]
# same-finger = [-1.5, -1.0, -0.6, -0.4, -0.2, -0.1, -0.1, 0.0, 0.0]
`,
		defaultSwaps,
		defaultRounds,
		defaultTemperature,
		defaultCooling,
	)
}

func validateSearchFlags() error {
	if optimizeWorkers < 0 {
		return fmt.Errorf("--workers must be >= 0")
	}
	if optimizeSwaps <= 0 {
		return fmt.Errorf("--swaps must be > 0")
	}
	if optimizeRounds <= 0 {
		return fmt.Errorf("--rounds must be > 0")
	}
	if optimizeTemp <= 0 {
		return fmt.Errorf("--temperature must be > 0")
	}
	if optimizeCooling <= 0 || optimizeCooling > 1 {
		return fmt.Errorf("--cooling must be in (0, 1]")
	}
	if optimizePatience < 0 {
		return fmt.Errorf("--patience must be >= 0")
	}
	return nil
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
