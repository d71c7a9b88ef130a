package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/deskflow-ai/deskflow/internal/config"
	"github.com/deskflow-ai/deskflow/internal/database"
	"github.com/deskflow-ai/deskflow/internal/domain"
	"github.com/deskflow-ai/deskflow/internal/ingest"
	"github.com/deskflow-ai/deskflow/internal/pipeline"
	"github.com/deskflow-ai/deskflow/internal/storage"
	"github.com/spf13/cobra"
)

// ProcessCmd returns the process command
func ProcessCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process [sample]",
		Short: "Run conversations through the processing pipeline",
		Long: `Process a conversation through the full pipeline: sentiment, summary,
actions, knowledge lookup, routing, embeddings, recommendation, and time
prediction.

The conversation comes from one of three sources:
  - a built-in sample by name or id (password_reset, billing_issue,
    technical_issue, conv123, conv456, conv789)
  - a conversation text file (--file)
  - a directory of conversation text files (--dir)`,
		RunE: runProcess,
	}

	cmd.Flags().String("file", "", "Conversation text file to process")
	cmd.Flags().String("dir", "", "Directory of conversation text files to process")
	cmd.Flags().StringP("output", "o", "", "Write result JSON to this file instead of stdout")
	cmd.Flags().Bool("archive", false, "Archive results to S3 (requires S3 config)")

	return cmd
}

func runProcess(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	file, _ := cmd.Flags().GetString("file")
	dir, _ := cmd.Flags().GetString("dir")

	conversations, err := gatherConversations(args, file, dir)
	if err != nil {
		return err
	}

	pool, err := database.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	orchestrator, _ := newOrchestrator(cfg, pool)

	var archive *storage.ResultsArchive
	if doArchive, _ := cmd.Flags().GetBool("archive"); doArchive {
		if !cfg.HasS3() {
			return fmt.Errorf("--archive requires S3_ENDPOINT, S3_ACCESS_KEY_ID and S3_SECRET_ACCESS_KEY")
		}
		archive, err = storage.NewResultsArchive(ctx, storage.S3ClientConfig{
			Endpoint:        cfg.S3Endpoint,
			Region:          cfg.S3Region,
			AccessKeyID:     cfg.S3AccessKey,
			SecretAccessKey: cfg.S3SecretKey,
			Bucket:          cfg.S3Bucket,
			UsePathStyle:    true,
		})
		if err != nil {
			return fmt.Errorf("failed to create results archive: %w", err)
		}
		if err := archive.EnsureBucket(ctx); err != nil {
			return fmt.Errorf("failed to ensure S3 bucket: %w", err)
		}
	}

	// Batch processing is a plain sequential loop over the single-conversation
	// pipeline.
	results := make([]pipeline.AggregateResult, 0, len(conversations))
	for _, conversation := range conversations {
		log.Printf("processing conversation %s", conversation.ConversationID)
		result := orchestrator.Process(ctx, conversation)
		if result.Error != "" {
			log.Printf("conversation %s finished with error: %s", conversation.ConversationID, result.Error)
		}
		results = append(results, result)

		if archive != nil {
			key, err := archive.Save(ctx, result.ConversationID, result)
			if err != nil {
				log.Printf("failed to archive results for %s: %v", result.ConversationID, err)
			} else {
				log.Printf("archived results to %s", key)
			}
		}
	}

	var payload any = results
	if len(results) == 1 {
		payload = results[0]
	}
	encoded, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}

	if output, _ := cmd.Flags().GetString("output"); output != "" {
		if err := os.WriteFile(output, encoded, 0o644); err != nil {
			return fmt.Errorf("failed to write results: %w", err)
		}
		log.Printf("results saved to %s", output)
		return nil
	}

	fmt.Println(string(encoded))
	return nil
}

func gatherConversations(args []string, file, dir string) ([]domain.Conversation, error) {
	switch {
	case dir != "":
		paths, err := ingest.ListConversationFiles(dir)
		if err != nil {
			return nil, err
		}
		if len(paths) == 0 {
			return nil, fmt.Errorf("no conversation files found in %s", dir)
		}
		conversations := make([]domain.Conversation, 0, len(paths))
		for _, path := range paths {
			conversation, err := ingest.LoadConversationFile(path)
			if err != nil {
				log.Printf("skipping %s: %v", path, err)
				continue
			}
			conversations = append(conversations, conversation)
		}
		return conversations, nil

	case file != "":
		conversation, err := ingest.LoadConversationFile(file)
		if err != nil {
			return nil, err
		}
		return []domain.Conversation{conversation}, nil

	case len(args) == 1:
		conversation, ok := ingest.SampleConversation(args[0])
		if !ok {
			return nil, fmt.Errorf("unknown sample conversation %q", args[0])
		}
		return []domain.Conversation{conversation}, nil

	default:
		return nil, fmt.Errorf("provide a sample name, --file, or --dir")
	}
}
