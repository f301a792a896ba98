package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/lazypower/memoria/internal/client"
	"github.com/lazypower/memoria/internal/llm"
	"github.com/lazypower/memoria/internal/logging"
	"github.com/lazypower/memoria/internal/memory"
	"github.com/lazypower/memoria/internal/suggest"
)

var (
	suggestTheme  string
	suggestServer string
	suggestRemote bool
)

var suggestCmd = &cobra.Command{
	Use:   "suggest <title>",
	Short: "Write a message for a memory with the configured LLM",
	Long: "Generate a heartfelt message from the memory title. Uses the configured " +
		"provider directly, or a running server with --remote.",
	Args: cobra.MinimumNArgs(1),
	RunE: runSuggest,
}

func init() {
	suggestCmd.Flags().StringVar(&suggestTheme, "theme", string(memory.ThemeRomantic), "memory theme")
	suggestCmd.Flags().BoolVar(&suggestRemote, "remote", false, "ask a running memoria server")
	suggestCmd.Flags().StringVar(&suggestServer, "server", "", "server URL for --remote (default $MEMORIA_URL)")
}

func runSuggest(cmd *cobra.Command, args []string) error {
	title := strings.Join(args, " ")
	theme, err := memory.ParseTheme(suggestTheme)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), cfg.LLM.Timeout+10*time.Second)
	defer cancel()

	var msg string
	if suggestRemote {
		c := client.New(suggestServer)
		if !c.Healthy(ctx) {
			return fmt.Errorf("memoria server not reachable at %s", c.URL())
		}
		session := fmt.Sprintf("cli-%d", os.Getpid())
		msg, err = c.Suggest(ctx, session, title, string(theme))
		if err != nil {
			return err
		}
	} else {
		logger := logging.New(cfg.Logging)
		llmClient, err := llm.NewClient(cfg.LLM)
		if err != nil {
			logger.Warn().Err(err).Msg("LLM not configured")
		}
		a := suggest.NewAffordance(suggest.NewGenerator(llmClient, cfg.LLM.Timeout, logger))
		if msg, err = a.Trigger(ctx, title, theme); err != nil {
			return err
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), msg)
	return nil
}
