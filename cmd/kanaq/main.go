// Package main provides the CLI entrypoint for kanaq.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/kana-tools/kanaq/internal/bank"
	"github.com/kana-tools/kanaq/internal/complete"
	"github.com/kana-tools/kanaq/internal/config"
	"github.com/kana-tools/kanaq/internal/kana"
	"github.com/kana-tools/kanaq/internal/model"
	"github.com/kana-tools/kanaq/internal/quiz"
	"github.com/kana-tools/kanaq/internal/stats"
	"github.com/kana-tools/kanaq/internal/store"
	"github.com/kana-tools/kanaq/internal/tui"
)

const (
	defaultMode        = string(model.ModeRomaji)
	defaultQuestions   = 20
	defaultMultiplier  = float64(stats.DefaultMultiplier)
	defaultBoardSize   = 4
	defaultCurveWindow = 20
)

var (
	quizMode       string
	quizQuestions  int
	quizMultiplier float64
	quizBoard      bool
	quizBoardSize  int

	historyBank        string
	historySince       string
	historyLast        int
	historyCurveWindow int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "kanaq <bank>",
		Short:         "TUI flashcard quiz with kana support",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runQuizCmd,
	}

	rootCmd.Flags().StringVar(&quizMode, "mode", defaultMode, "answer mode: romaji or kana")
	rootCmd.Flags().IntVar(&quizQuestions, "questions", defaultQuestions, "questions per session")
	rootCmd.Flags().Float64Var(&quizMultiplier, "multiplier", defaultMultiplier, "weight boost for past mistakes")
	rootCmd.Flags().BoolVar(&quizBoard, "board", false, "present several questions at once")
	rootCmd.Flags().IntVar(&quizBoardSize, "board-size", defaultBoardSize, "open questions on the board")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newBanksCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newKanaCmd())

	return rootCmd
}

func runQuizCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "mode", &quizMode, fileCfg.Quiz.Mode)
	applyIntConfig(cmd, "questions", &quizQuestions, fileCfg.Quiz.Questions)
	applyFloatConfig(cmd, "multiplier", &quizMultiplier, fileCfg.Quiz.Multiplier)
	applyIntConfig(cmd, "board-size", &quizBoardSize, fileCfg.Quiz.BoardSize)

	cfg := model.Config{
		BankPath:   resolveBankPath(args[0]),
		Mode:       model.Mode(quizMode),
		Questions:  quizQuestions,
		Multiplier: quizMultiplier,
		Board:      quizBoard,
		BoardSize:  quizBoardSize,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}
	if _, err := os.Stat(cfg.BankPath); err != nil {
		return fmt.Errorf("question bank not found: %s", cfg.BankPath)
	}

	questions, err := bank.Load(cfg.BankPath)
	if err != nil {
		return fmt.Errorf("failed to load question bank: %w", err)
	}

	statsPath := stats.FilePath(cfg.BankPath)
	persistent := stats.LoadFile(statsPath)

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		logErrf("failed to open history db: %v\n", err)
		st = nil
	} else {
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logErrf("failed to close history db: %v\n", cerr)
			}
		}()
	}

	candidates := complete.NewCandidateSet(bank.Answers(questions), cfg.Mode)
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	session, err := quiz.New(questions, persistent, cfg, rnd, candidates)
	if err != nil {
		return err
	}

	startedAt := time.Now()
	if cfg.Board {
		board := quiz.NewBoard(session)
		program := tea.NewProgram(tui.NewBoardModel(board, cfg.BoardSize), tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("failed to run TUI: %w", err)
		}
		board.Close()
	} else {
		program := tea.NewProgram(tui.NewModel(session, candidates, st, cfg.BankPath), tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("failed to run TUI: %w", err)
		}
	}
	endedAt := time.Now()

	sessionStats, review := session.Finish()
	if len(review) == 0 {
		return nil
	}

	out := cmd.OutOrStdout()
	if err := stats.RenderAccuracy(out, sessionStats, "Session Statistics"); err != nil {
		return err
	}

	merged := stats.Merge(persistent, sessionStats)
	if err := stats.SaveFile(merged, statsPath); err != nil {
		return fmt.Errorf("failed to save stats: %w", err)
	}
	if err := stats.RenderAccuracy(out, merged, "Overall Statistics (Persisted)"); err != nil {
		return err
	}
	if err := stats.RenderReview(out, review); err != nil {
		return err
	}

	if st != nil {
		correct, incorrect := session.Totals()
		rec := model.SessionRecord{
			StartedAt:  startedAt,
			EndedAt:    endedAt,
			BankPath:   cfg.BankPath,
			Mode:       cfg.Mode,
			Questions:  cfg.Questions,
			Correct:    correct,
			Incorrect:  incorrect,
			DurationMs: endedAt.Sub(startedAt).Milliseconds(),
		}
		if _, err := st.InsertSession(context.Background(), rec, session.QuestionResults()); err != nil {
			logErrf("failed to save session history: %v\n", err)
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

func newBanksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "banks",
		Short: "List question banks",
		Args:  cobra.NoArgs,
		RunE:  runBanksCmd,
	}
}

func runBanksCmd(cmd *cobra.Command, _ []string) error {
	bankDir := config.DefaultBankDir()
	entries, err := os.ReadDir(bankDir)
	if err != nil {
		if os.IsNotExist(err) {
			logErrf("No banks found. Put bank files in: %s\n", bankDir)
			return fmt.Errorf("bank directory does not exist")
		}
		return fmt.Errorf("failed to read bank directory: %w", err)
	}
	banks := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".txt") {
			continue
		}
		banks = append(banks, strings.TrimSuffix(name, ".txt"))
	}
	if len(banks) == 0 {
		logErrf("No banks found. Put bank files in: %s\n", bankDir)
		return fmt.Errorf("no banks found")
	}
	sort.Strings(banks)
	for _, name := range banks {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), name); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show session history",
		RunE:  runHistoryCmd,
	}
	cmd.Flags().StringVar(&historyBank, "bank", "", "bank path filter")
	cmd.Flags().StringVar(&historySince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&historyLast, "last", 0, "limit to last N sessions")
	cmd.Flags().IntVar(&historyCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
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

	cfg := model.HistoryConfig{
		Bank:        historyBank,
		Since:       sinceTime,
		Last:        historyLast,
		CurveWindow: historyCurveWindow,
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open history db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close history db: %v\n", cerr)
		}
	}()

	history, err := stats.BuildHistory(context.Background(), st, cfg)
	if err != nil {
		return fmt.Errorf("failed to build history: %w", err)
	}
	return stats.RenderHistory(cmd.OutOrStdout(), history, cfg.CurveWindow)
}

func newKanaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kana <romaji>...",
		Short: "Convert romaji to kana",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runKanaCmd,
	}
}

func runKanaCmd(cmd *cobra.Command, args []string) error {
	for _, arg := range args {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), kana.Convert(arg)); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func resolveBankPath(arg string) string {
	if _, err := os.Stat(arg); err == nil {
		return arg
	}
	if filepath.Ext(arg) != "" || strings.ContainsRune(arg, os.PathSeparator) {
		return arg
	}
	return config.DefaultBankPath(arg)
}

func validateConfig(cfg model.Config) error {
	if cfg.Mode != model.ModeRomaji && cfg.Mode != model.ModeKana {
		return fmt.Errorf("--mode must be romaji or kana")
	}
	if cfg.Questions <= 0 && !cfg.Board {
		return fmt.Errorf("--questions must be > 0")
	}
	if cfg.Questions < 0 {
		return fmt.Errorf("--questions must be >= 0")
	}
	if cfg.Multiplier <= 0 {
		return fmt.Errorf("--multiplier must be > 0")
	}
	if cfg.Board && cfg.BoardSize <= 0 {
		return fmt.Errorf("--board-size must be > 0")
	}
	return nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# kanaq configuration
# Uncomment a value to enable it. CLI flags override config values.

[quiz]
# mode = %q           # Answer mode: romaji or kana
# questions = %d      # Questions per session
# multiplier = %.1f   # Weight boost for past mistakes
# board-size = %d     # Open questions on the board
`,
		defaultMode,
		defaultQuestions,
		defaultMultiplier,
		defaultBoardSize,
	)
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
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

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
