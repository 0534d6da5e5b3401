package cmd

import (
	"context"
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/zhubert/threadchat/internal/api"
	"github.com/zhubert/threadchat/internal/logger"
)

// exportConcurrency bounds the history fetches in flight during an export.
const exportConcurrency = 4

var exportDir string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write every conversation to a markdown file",
	Long: `Fetches every conversation's messages and writes one markdown transcript
per thread into --dir (the current directory by default).`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportDir, "dir", "d", ".", "Directory to write transcripts into")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	env, err := openEnvironment(cmd.Context())
	if err != nil {
		return err
	}
	defer env.Close()

	convs, err := env.client.ListConversations(cmd.Context())
	if err != nil {
		return fmt.Errorf("error listing conversations: %w", err)
	}
	if err := os.MkdirAll(exportDir, 0o755); err != nil {
		return fmt.Errorf("error creating %s: %w", exportDir, err)
	}

	if err := exportConversations(cmd.Context(), env.client, convs, exportDir); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d conversation(s) to %s.\n", len(convs), exportDir)
	return nil
}

// exportConversations fetches and writes each conversation. The first
// failure cancels the remaining fetches.
func exportConversations(ctx context.Context, svc api.Service, convs []api.Conversation, dir string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(exportConcurrency)

	for _, conv := range convs {
		g.Go(func() error {
			msgs, err := svc.GetMessages(ctx, conv.ThreadID)
			if err != nil {
				return fmt.Errorf("error loading %s: %w", conv.ThreadID, err)
			}
			path := filepath.Join(dir, transcriptFileName(conv.ThreadID))
			if err := os.WriteFile(path, []byte(renderTranscript(conv, msgs)), 0o644); err != nil {
				return fmt.Errorf("error writing %s: %w", path, err)
			}
			logger.WithThread(conv.ThreadID).Debug("exported transcript", "path", path, "messages", len(msgs))
			return nil
		})
	}
	return g.Wait()
}

// transcriptFileName maps a thread id to a safe file name. Ids that needed
// rewriting get a hash of the original so distinct ids never share a file.
func transcriptFileName(threadID string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, threadID)
	if name != threadID {
		h := fnv.New32a()
		h.Write([]byte(threadID))
		name = fmt.Sprintf("%s-%08x", name, h.Sum32())
	}
	return name + ".md"
}

func renderTranscript(conv api.Conversation, msgs []api.Message) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", conv.DisplayTitle())
	fmt.Fprintf(&b, "_Thread %s_\n", conv.ThreadID)
	for _, m := range msgs {
		fmt.Fprintf(&b, "\n**%s:**\n\n%s\n", senderLabel(m.Sender), strings.TrimSpace(m.Content))
	}
	return b.String()
}
