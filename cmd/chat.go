package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/zhubert/threadchat/internal/api"
	pkgerrors "github.com/zhubert/threadchat/internal/errors"
	"github.com/zhubert/threadchat/internal/logger"
	"github.com/zhubert/threadchat/internal/process"
)

var (
	sendThread string
	speakOut   string
)

var sendCmd = &cobra.Command{
	Use:   "send <message...>",
	Short: "Send a message and print the reply",
	Long: `Sends a message to the active conversation, or to --thread when given.
With no active conversation a new thread id is started. The conversation used
becomes the active one.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSend,
}

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Start a new conversation and print its thread id",
	Args:  cobra.NoArgs,
	RunE:  runNew,
}

var speakCmd = &cobra.Command{
	Use:   "speak <text...>",
	Short: "Synthesize speech for text",
	Long: `Synthesizes speech through the chat service. The audio is written to
--out when given, otherwise it is played with the configured audio_player.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSpeak,
}

func init() {
	sendCmd.Flags().StringVarP(&sendThread, "thread", "t", "", "Thread id to send to")
	speakCmd.Flags().StringVarP(&speakOut, "out", "o", "", "Write audio to this file instead of playing it")
	rootCmd.AddCommand(sendCmd, newCmd, speakCmd)
}

func runSend(cmd *cobra.Command, args []string) error {
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		return fmt.Errorf("message must not be empty")
	}

	ctx := cmd.Context()
	env, err := openEnvironment(ctx)
	if err != nil {
		return err
	}
	defer env.Close()

	threadID := sendThread
	if threadID != "" {
		env.state.SetActive(ctx, threadID)
	} else {
		var minted bool
		threadID, minted = env.state.EnsureActive(ctx)
		if minted {
			logger.WithThread(threadID).Info("minted thread for first message")
		}
	}

	reply, err := env.client.Submit(ctx, text, threadID)
	if err != nil {
		return fmt.Errorf("error sending message: %w", err)
	}
	if assigned := reply.ThreadID; assigned != "" && assigned != threadID {
		env.state.SetActive(ctx, assigned)
	}

	fmt.Fprintln(cmd.OutOrStdout(), reply.Display())
	if !reply.OK() {
		message := reply.Error
		if message == "" {
			message = api.NoResponseText
		}
		return pkgerrors.RemoteError("cmd.send", message)
	}
	return nil
}

func runNew(cmd *cobra.Command, args []string) error {
	env, err := openEnvironment(cmd.Context())
	if err != nil {
		return err
	}
	defer env.Close()

	fmt.Fprintln(cmd.OutOrStdout(), env.state.NewThread(cmd.Context()))
	return nil
}

func runSpeak(cmd *cobra.Command, args []string) error {
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		return fmt.Errorf("text must not be empty")
	}

	ctx := cmd.Context()
	env, err := openEnvironment(ctx)
	if err != nil {
		return err
	}
	defer env.Close()

	audio, err := env.client.Speak(ctx, text)
	if err != nil {
		return fmt.Errorf("error synthesizing speech: %w", err)
	}

	if speakOut != "" {
		if err := os.WriteFile(speakOut, audio, 0o644); err != nil {
			return fmt.Errorf("error writing audio: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d bytes to %s.\n", len(audio), speakOut)
		return nil
	}

	player := process.NewPlayer(env.cfg.GetAudioPlayer())
	if err := player.Play(audio); err != nil {
		return fmt.Errorf("error playing audio: %w", err)
	}
	for player.Playing() {
		select {
		case <-ctx.Done():
			player.Stop()
			return ctx.Err()
		case <-time.After(100 * time.Millisecond):
		}
	}
	return nil
}
