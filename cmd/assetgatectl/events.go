package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/twmb/franz-go/pkg/kgo"

	"assetgate/internal/platform/kafka"
	"assetgate/internal/platform/kafka/consumer"
	audit "assetgate/pkg/platform/audit"
	auditconsumer "assetgate/pkg/platform/audit/consumer"
)

// CmdEvents groups the audit stream commands.
func CmdEvents() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Read relayed audit events",
	}
	cmd.AddCommand(CmdEventsTail())
	return cmd
}

// CmdEventsTail prints relayed events as JSON lines until interrupted.
func CmdEventsTail() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tail",
		Short: "Follow the audit topic and print events as JSON lines",
		RunE: func(cmd *cobra.Command, args []string) error {
			brokers, _ := cmd.Flags().GetStringSlice("brokers")
			topic, _ := cmd.Flags().GetString("topic")
			fromStart, _ := cmd.Flags().GetBool("from-start")
			categories, _ := cmd.Flags().GetStringSlice("category")

			offset := kgo.NewOffset().AtEnd()
			if fromStart {
				offset = kgo.NewOffset().AtStart()
			}
			client, err := kafka.NewClient(brokers,
				kgo.ConsumeTopics(topic),
				kgo.ConsumeResetOffset(offset),
			)
			if err != nil {
				return err
			}
			defer client.Close()

			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))
			enc := json.NewEncoder(cmd.OutOrStdout())
			printer := auditconsumer.NewEventHandler(func(_ context.Context, e audit.Event) error {
				return enc.Encode(e)
			}, logger)
			router := auditconsumer.NewRouter(logger, nil)
			if len(categories) == 0 {
				router.RegisterAll(printer)
			}
			for _, c := range categories {
				router.Register(audit.EventCategory(c), printer)
			}

			err = consumer.New(client, router, logger).Run(cmd.Context())
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringSlice("brokers", []string{"localhost:9092"}, "Kafka seed brokers")
	cmd.Flags().String("topic", "assetgate.audit", "audit topic")
	cmd.Flags().Bool("from-start", false, "replay the topic from the earliest offset")
	cmd.Flags().StringSlice("category", nil, "only print these categories (compliance, security, operations)")

	return cmd
}
