package cmd

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	generativeAI "github.com/FACorreiaa/go-tourism-chatbot/internal/api/generative_ai"
	"github.com/FACorreiaa/go-tourism-chatbot/internal/bridge"
	"github.com/FACorreiaa/go-tourism-chatbot/internal/tui"
	"github.com/FACorreiaa/go-tourism-chatbot/internal/types"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Open an interactive chat with the travel assistant",
	Args:  cobra.NoArgs,
	RunE:  runChat,
}

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a single question and print the answer",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

var (
	chatSession string
	askImage    string
)

func init() {
	chatCmd.Flags().StringVar(&chatSession, "session", "", "resume a session id (default: new session)")
	askCmd.Flags().StringVar(&chatSession, "session", "", "session id for conversation memory")
	askCmd.Flags().StringVar(&askImage, "image", "", "path to an image to analyse with the question")
	rootCmd.AddCommand(chatCmd, askCmd)
}

// asker runs ProcessQuery on the process-wide bridge with the chat timeout.
func asker(a *app) (tui.Asker, error) {
	b, err := bridge.Default()
	if err != nil {
		return nil, err
	}
	return bridge.Sync(b, a.container.Chat.ProcessQuery, a.cfg.Bridge.ChatTimeout), nil
}

func runChat(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := bootstrap(ctx, true)
	if err != nil {
		return err
	}
	defer a.Close()

	ask, err := asker(a)
	if err != nil {
		return err
	}
	session := chatSession
	if session == "" {
		session = uuid.NewString()
	}
	return tui.Run(ctx, ask, a.container.Chat.ClearSession, session)
}

func runAsk(cmd *cobra.Command, args []string) error {
	req := types.ChatRequest{SessionID: chatSession, Message: strings.Join(args, " ")}
	if askImage != "" {
		encoded, err := generativeAI.EncodeImageFile(askImage)
		if err != nil {
			return err
		}
		req.Image = encoded
	}

	ctx := cmd.Context()
	a, err := bootstrap(ctx, false)
	if err != nil {
		return err
	}
	defer a.Close()

	ask, err := asker(a)
	if err != nil {
		return err
	}
	resp, err := ask(ctx, req)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, resp.Answer)
	if len(resp.Sources) > 0 {
		fmt.Fprintln(out)
		for _, s := range resp.Sources {
			fmt.Fprintf(out, "  - %s (%s, %.2f)\n", s.Title, s.Category, s.Similarity)
		}
	}
	fmt.Fprintf(out, "\nsession %s\n", resp.SessionID)
	return nil
}
