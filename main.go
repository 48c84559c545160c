package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"idea2grow/config"
	"idea2grow/model"
	"idea2grow/provider"
	"idea2grow/render"
	"idea2grow/ui"
)

const Version = "v0.1.0"

// askWidth is the wrap width for one-shot answers.
const askWidth = 80

type rootOptions struct {
	provider string
	model    string
	debug    bool
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "idea2grow",
		Short: "Idea2Grow strategic AI agent in your terminal",
		Long: `Chat with the Idea2Grow strategic AI agent. Answers are grounded in
live web search and list the sources they used.

Run without arguments to open the chat interface.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, closer, err := loadConfig(opts)
			if err != nil {
				return reportError(cmd, err)
			}
			defer closer.Close()

			return reportError(cmd, runTUI(cfg))
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.provider, "provider", "", "provider to use (gemini, openai, openrouter, anthropic, ollama)")
	rootCmd.PersistentFlags().StringVar(&opts.model, "model", "", "model override")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "write debug log to <data_directory>/debug.log")

	rootCmd.AddCommand(newAskCommand(opts), newSetKeyCommand(opts))
	return rootCmd
}

func newAskCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ask [question...]",
		Short: "Ask a single question and print the answer",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, closer, err := loadConfig(opts)
			if err != nil {
				return reportError(cmd, err)
			}
			defer closer.Close()

			gw, err := provider.InitializeGateway(cfg)
			if err != nil {
				return reportError(cmd, err)
			}
			return reportError(cmd, runAsk(cmd.Context(), cmd.OutOrStdout(), gw, strings.Join(args, " ")))
		},
	}
}

func newSetKeyCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set-key <provider>",
		Short: "Store an API key read from stdin",
		Long: `Reads an API key from stdin and stores it in the credential file
configured by security_method in config.toml.

  echo "$KEY" | idea2grow set-key gemini`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, closer, err := loadConfig(opts)
			if err != nil {
				return reportError(cmd, err)
			}
			defer closer.Close()

			if err := runSetKey(cfg.CredentialStore, cfg.DataDir(), args[0], cmd.InOrStdin()); err != nil {
				return reportError(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Stored API key for %s.\n", strings.ToLower(args[0]))
			return nil
		},
	}
}

// loadConfig reads the configuration, applies flag overrides and starts logging.
func loadConfig(opts *rootOptions) (*config.Config, io.Closer, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if opts.provider != "" {
		cfg.Provider = opts.provider
	}
	if opts.model != "" {
		cfg.Model = opts.model
	}
	cfg.Debug = cfg.Debug || opts.debug

	closer, err := config.InitLogging(cfg.DataDir(), cfg.Debug)
	if err != nil {
		return nil, nil, err
	}

	config.Log.Debug().
		Str("version", Version).
		Str("provider", cfg.Provider).
		Str("data_dir", cfg.DataDir()).
		Msg("config loaded")

	return cfg, closer, nil
}

func runTUI(cfg *config.Config) error {
	gw, err := provider.InitializeGateway(cfg)
	if err != nil {
		return err
	}

	conv := model.NewConversation(context.Background(), gw)

	p := tea.NewProgram(
		ui.NewAppView(ui.Options{
			Conversation: conv,
			Keybindings:  cfg.Keybindings,
			Suggestions:  cfg.Prompts.Suggestions,
			ProviderName: gw.ProviderID(),
			Model:        gw.Model(),
			Version:      Version,
		}),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running idea2grow: %w", err)
	}
	return nil
}

// runAsk sends question through a fresh conversation and writes the
// rendered answer followed by its numbered sources.
func runAsk(ctx context.Context, out io.Writer, completer model.Completer, question string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	conv := model.NewConversation(ctx, completer)
	if err := conv.Send(question); err != nil {
		if msg := conv.Err(); msg != "" {
			return errors.New(msg)
		}
		return err
	}

	turn, ok := conv.LastModelTurn()
	if !ok {
		return errors.New("no answer received")
	}

	fmt.Fprintln(out, render.Terminal(turn.Content, askWidth))
	if sources := render.Sources(turn.Sources, askWidth); sources != "" {
		fmt.Fprintln(out)
		fmt.Fprintln(out, sources)
	}
	return nil
}

// runSetKey validates the key read from in and saves it for providerID.
func runSetKey(store *config.CredentialStore, dataDir, providerID string, in io.Reader) error {
	if !provider.IsKnownProvider(providerID) {
		return fmt.Errorf("unknown provider %q", providerID)
	}
	id := string(provider.MapProviderIDToType(providerID))

	scanner := bufio.NewScanner(in)
	var apiKey string
	if scanner.Scan() {
		apiKey = strings.TrimSpace(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read key: %w", err)
	}
	if err := provider.ValidateAPIKey(apiKey); err != nil {
		return err
	}

	if err := store.Set(id, apiKey); err != nil {
		return err
	}
	if err := store.Save(dataDir); err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}

	config.Log.Info().Str("provider", id).Str("method", string(store.GetMethod())).Msg("api key stored")
	return nil
}

func reportError(cmd *cobra.Command, err error) error {
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	}
	return err
}
