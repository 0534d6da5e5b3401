package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zhubert/threadchat/internal/api"
	"github.com/zhubert/threadchat/internal/logger"
)

var skipConfirm bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List conversations, most recent first",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var showCmd = &cobra.Command{
	Use:   "show <thread-id>",
	Short: "Print a conversation's messages",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var renameCmd = &cobra.Command{
	Use:   "rename <thread-id> <title>",
	Short: "Rename a conversation",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runRename,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <thread-id>",
	Short: "Delete a conversation",
	Long: `Deletes a conversation on the service. If it is the active conversation,
the next message starts a new one.

Prompts for confirmation unless --yes is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip confirmation prompt")
	rootCmd.AddCommand(listCmd, showCmd, renameCmd, deleteCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	env, err := openEnvironment(cmd.Context())
	if err != nil {
		return err
	}
	defer env.Close()

	convs, err := env.client.ListConversations(cmd.Context())
	if err != nil {
		return fmt.Errorf("error listing conversations: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, c := range convs {
		fmt.Fprintf(out, "%s\t%s\n", c.ThreadID, c.DisplayTitle())
	}
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	env, err := openEnvironment(cmd.Context())
	if err != nil {
		return err
	}
	defer env.Close()

	msgs, err := env.client.GetMessages(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("error loading messages: %w", err)
	}
	if len(msgs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No messages.")
		return nil
	}
	for _, m := range msgs {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n\n", senderLabel(m.Sender), m.Content)
	}
	return nil
}

func runRename(cmd *cobra.Command, args []string) error {
	title := strings.TrimSpace(strings.Join(args[1:], " "))
	if title == "" {
		return fmt.Errorf("title must not be empty")
	}

	env, err := openEnvironment(cmd.Context())
	if err != nil {
		return err
	}
	defer env.Close()

	if err := env.client.RenameConversation(cmd.Context(), args[0], title); err != nil {
		return fmt.Errorf("error renaming conversation: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s to %q.\n", args[0], title)
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	threadID := args[0]
	if !skipConfirm && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Delete conversation %s?", threadID)) {
		fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
		return nil
	}

	env, err := openEnvironment(cmd.Context())
	if err != nil {
		return err
	}
	defer env.Close()

	if err := env.client.DeleteConversation(cmd.Context(), threadID); err != nil {
		return fmt.Errorf("error deleting conversation: %w", err)
	}
	if env.state.IsActive(threadID) {
		logger.WithThread(threadID).Info("deleted the active conversation")
		env.state.Clear(cmd.Context())
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s.\n", threadID)
	return nil
}

// confirm prompts the user for confirmation and returns true if they answer yes
func confirm(input io.Reader, output io.Writer, prompt string) bool {
	reader := bufio.NewReader(input)
	fmt.Fprintf(output, "%s [y/N]: ", prompt)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}

func senderLabel(s api.Sender) string {
	if s == api.SenderUser {
		return "You"
	}
	return "Assistant"
}
