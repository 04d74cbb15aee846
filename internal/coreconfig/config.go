// Package coreconfig defines the resolved configuration surface the agent
// core consumes, and the external loader that populates it from layered
// settings files. The core packages only ever see an already-validated
// Config value; nothing under internal/ besides this package touches disk
// to produce one.
package coreconfig

import (
	"fmt"

	"github.com/openclaude/openclaude/internal/tools"
)

// Provider names an adapter family. Anything other than "anthropic" or
// "ollama" routes through the openai-compatible adapter.
type Provider string

const (
	ProviderAnthropic Provider = "anthropic"
	ProviderOpenAI    Provider = "openai"
	ProviderOllama    Provider = "ollama"
)

// Config is the fully resolved, validated configuration for one agent-core
// run: which provider/model to talk to, how to authenticate, where state
// lives, and which tool policy applies.
type Config struct {
	Provider Provider
	Model    string
	APIKey   string
	BaseURL  string

	SystemPrompt string
	MaxTokens    int
	Temperature  *float64

	SessionsDir string

	ToolsProfile  tools.Profile
	ExecSecurity  tools.ExecSecurity
	ExecAllowlist []string
}

const defaultMaxTokens = 4096

// Default returns a Config with every field set to its documented default:
// openai-compatible provider, coding tool profile, allowlist exec security
// with an empty allowlist, no sessions dir override.
func Default() Config {
	return Config{
		Provider:     ProviderOpenAI,
		MaxTokens:    defaultMaxTokens,
		ToolsProfile: tools.ProfileCoding,
		ExecSecurity: tools.ExecAllowlist,
	}
}

// Validate reports the first structural problem found: an unresolvable
// provider alias is never an error (it falls back to openai-compatible),
// but a missing model, an out-of-range temperature, or a non-positive
// max_tokens are.
func (c Config) Validate() error {
	if c.Model == "" {
		return fmt.Errorf("coreconfig: model is required")
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("coreconfig: max_tokens must be positive, got %d", c.MaxTokens)
	}
	if c.Temperature != nil && (*c.Temperature < 0 || *c.Temperature > 2) {
		return fmt.Errorf("coreconfig: temperature must be within 0.0-2.0, got %f", *c.Temperature)
	}
	switch c.ToolsProfile {
	case tools.ProfileFull, tools.ProfileCoding, tools.ProfileMinimal, tools.ProfileNone:
	default:
		return fmt.Errorf("coreconfig: unknown tools profile %q", c.ToolsProfile)
	}
	switch c.ExecSecurity {
	case tools.ExecFull, tools.ExecDeny, tools.ExecAllowlist:
	default:
		return fmt.Errorf("coreconfig: unknown exec security %q", c.ExecSecurity)
	}
	return nil
}

// ResolveProvider normalizes the configured provider string into the closed
// Provider set, routing anything unrecognized through the openai-compatible
// adapter rather than failing.
func ResolveProvider(raw string) Provider {
	switch Provider(raw) {
	case ProviderAnthropic:
		return ProviderAnthropic
	case ProviderOllama:
		return ProviderOllama
	default:
		return ProviderOpenAI
	}
}
