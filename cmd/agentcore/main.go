// Command agentcore is a thin CLI shell around the agent core: it resolves
// configuration, builds the provider adapter and tool registry the
// configuration selects, and either runs one prompt to completion (--print)
// or drops into a small full-screen chat TUI.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/openclaude/openclaude/internal/agentloop"
	"github.com/openclaude/openclaude/internal/coreconfig"
	"github.com/openclaude/openclaude/internal/coreerr"
	"github.com/openclaude/openclaude/internal/provider"
	"github.com/openclaude/openclaude/internal/provider/anthropic"
	"github.com/openclaude/openclaude/internal/provider/ollama"
	"github.com/openclaude/openclaude/internal/provider/openaicompat"
	"github.com/openclaude/openclaude/internal/session"
	"github.com/openclaude/openclaude/internal/statussink"
	"github.com/openclaude/openclaude/internal/tools"
)

const (
	// defaultReadIdleTimeoutSeconds bounds the gap between successive reads
	// on a streaming response body, not the lifetime of the whole request:
	// a model can legitimately pause between deltas far longer than this
	// without the call failing, as long as it never goes dark this long.
	defaultReadIdleTimeoutSeconds = 300
	// defaultOllamaReadIdleTimeoutSeconds is wider since local models
	// commonly pause longer between deltas than a hosted API would.
	defaultOllamaReadIdleTimeoutSeconds = 600
)

type cliFlags struct {
	Provider     string
	Model        string
	APIKey       string
	BaseURL      string
	SystemPrompt string
	MaxTokens    int
	Temperature  float64
	HasTemp      bool
	SessionsDir  string
	ToolsProfile string
	ExecSecurity string
	SessionName  string
	Print        bool
}

func main() {
	flags := &cliFlags{}
	root := &cobra.Command{
		Use:   "agentcore [prompt]",
		Short: "Run a provider-agnostic streaming agent loop over shell/file tools.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags, args)
		},
	}
	root.Args = cobra.ArbitraryArgs
	applyFlags(root.Flags(), flags)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func applyFlags(flags *pflag.FlagSet, f *cliFlags) {
	flags.StringVar(&f.Provider, "provider", "", "Provider: anthropic, openai, or ollama")
	flags.StringVar(&f.Model, "model", "", "Model identifier")
	flags.StringVar(&f.APIKey, "api-key", "", "Bearer credential (unused for ollama)")
	flags.StringVar(&f.BaseURL, "base-url", "", "Override the provider's default endpoint")
	flags.StringVar(&f.SystemPrompt, "system-prompt", "", "System prompt prefixed to every request")
	flags.IntVar(&f.MaxTokens, "max-tokens", 0, "Upper bound for generated tokens")
	flags.Float64Var(&f.Temperature, "temperature", 0, "Sampling temperature, 0.0-2.0")
	flags.StringVar(&f.SessionsDir, "sessions-dir", "", "Base directory for session journals")
	flags.StringVar(&f.ToolsProfile, "tools-profile", "", "Tool policy: full, coding, minimal, or none")
	flags.StringVar(&f.ExecSecurity, "exec-security", "", "Shell gate: full, deny, or allowlist")
	flags.StringVar(&f.SessionName, "session", "default", "Session name to resume or create")
	flags.BoolVarP(&f.Print, "print", "p", false, "Run one prompt to completion and exit, instead of the interactive TUI")
}

func run(cmd *cobra.Command, f *cliFlags, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get cwd: %w", err)
	}

	cfg, err := coreconfig.Load(cwd)
	if err != nil {
		return err
	}
	f.HasTemp = cmd.Flags().Changed("temperature")
	applyFlagOverrides(&cfg, f)
	if err := cfg.Validate(); err != nil {
		return err
	}

	adapter, err := buildAdapter(cfg)
	if err != nil {
		return err
	}

	gate := tools.ShellGate{Security: cfg.ExecSecurity, Allowlist: cfg.ExecAllowlist}
	allTools := tools.DefaultTools(gate)
	runner := tools.NewRunner(tools.FilterByProfile(cfg.ToolsProfile, allTools))

	store, err := sessionStore(cfg)
	if err != nil {
		return err
	}
	sess, err := store.Load(f.SessionName)
	if err != nil {
		return err
	}

	loop := &agentloop.Loop{
		Provider:     adapter,
		Tools:        runner,
		ToolContext:  tools.ToolContext{CWD: cwd, SessionID: sess.ID(), BackupBaseDir: store.BaseDir},
		SystemPrompt: cfg.SystemPrompt,
		Model:        cfg.Model,
		MaxTokens:    cfg.MaxTokens,
		Temperature:  cfg.Temperature,
		Sink:         statussink.NewTerminalSink(),
	}

	if f.Print {
		return runPrint(cmd, loop, sess, args)
	}
	return runTUI(loop, sess)
}

func applyFlagOverrides(cfg *coreconfig.Config, f *cliFlags) {
	if f.Provider != "" {
		cfg.Provider = coreconfig.ResolveProvider(f.Provider)
	}
	if f.Model != "" {
		cfg.Model = f.Model
	}
	if f.APIKey != "" {
		cfg.APIKey = f.APIKey
	}
	if f.BaseURL != "" {
		cfg.BaseURL = f.BaseURL
	}
	if f.SystemPrompt != "" {
		cfg.SystemPrompt = f.SystemPrompt
	}
	if f.MaxTokens > 0 {
		cfg.MaxTokens = f.MaxTokens
	}
	if f.HasTemp {
		cfg.Temperature = &f.Temperature
	}
	if f.SessionsDir != "" {
		cfg.SessionsDir = f.SessionsDir
	}
	if f.ToolsProfile != "" {
		cfg.ToolsProfile = tools.Profile(f.ToolsProfile)
	}
	if f.ExecSecurity != "" {
		cfg.ExecSecurity = tools.ExecSecurity(f.ExecSecurity)
	}
}

func buildAdapter(cfg coreconfig.Config) (provider.Adapter, error) {
	switch cfg.Provider {
	case coreconfig.ProviderAnthropic:
		return anthropic.NewClient(cfg.BaseURL, cfg.APIKey, defaultReadIdleTimeoutSeconds*time.Second), nil
	case coreconfig.ProviderOllama:
		return ollama.NewClient(cfg.BaseURL, defaultOllamaReadIdleTimeoutSeconds*time.Second), nil
	default:
		return openaicompat.NewClient(cfg.BaseURL, cfg.APIKey, defaultReadIdleTimeoutSeconds*time.Second), nil
	}
}

// sessionStore resolves the on-disk Store for the configured sessions_dir.
// A configured SessionsDir is the sessions directory itself (spec: journals
// land at <sessions_dir>/<sanitized>.jsonl), not its parent, so it is wired
// in as a SessionsDirOverride rather than as BaseDir; BaseDir still
// resolves to the default root for the store's other bookkeeping (the
// per-project last-session pointer and tool backups).
func sessionStore(cfg coreconfig.Config) (*session.Store, error) {
	store, err := session.NewStore()
	if err != nil {
		return nil, err
	}
	if cfg.SessionsDir != "" {
		store.SessionsDirOverride = cfg.SessionsDir
	}
	return store, nil
}

func runPrint(cmd *cobra.Command, loop *agentloop.Loop, sess *session.Session, args []string) error {
	prompt, err := readPrompt(cmd, args)
	if err != nil {
		return err
	}
	sess.AddUserMessage(prompt)

	ctx := context.Background()
	result, err := loop.Run(ctx, sess)
	if err != nil {
		return formatRunError(err)
	}
	fmt.Println(result.FinalText)
	return nil
}

func formatRunError(err error) error {
	kind := coreerr.KindOf(err)
	if kind == coreerr.Unknown {
		return err
	}
	return fmt.Errorf("%s: %w", kind, err)
}

func readPrompt(cmd *cobra.Command, args []string) (string, error) {
	prompt := strings.TrimSpace(strings.Join(args, " "))
	if prompt != "" {
		return prompt, nil
	}
	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	prompt = strings.TrimSpace(string(input))
	if prompt == "" {
		return "", fmt.Errorf("a prompt is required")
	}
	return prompt, nil
}
