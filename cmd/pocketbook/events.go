package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"pocketbook/internal/amqp"
	"pocketbook/internal/cli"
	"pocketbook/internal/log"
)

var errAMQPDisabled = errors.New("AMQP is not configured: set AMQP_URL")

func eventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Work with published persistence events",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "watch",
		Short: "Print persistence events as they are published",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			if !cfg.AMQPEnabled() {
				return errAMQPDisabled
			}

			client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger.WithComponent(log.ComponentAMQP))
			if err != nil {
				return fmt.Errorf("connect to AMQP: %w", err)
			}
			defer client.Close()

			out := cmd.OutOrStdout()
			err = client.ConsumeEvents(cmd.Context(), func(msg *amqp.PersistEventMessage) error {
				line := fmt.Sprintf("%s %-15s %s (%d records)",
					msg.Timestamp.Format("15:04:05"), msg.Type, msg.Key, msg.Records)
				if msg.Failed() {
					fmt.Fprintln(out, cli.FormatError(line+": "+msg.Error))
				} else {
					fmt.Fprintln(out, line)
				}
				return nil
			})
			if errors.Is(err, cmd.Context().Err()) {
				return nil
			}
			return err
		},
	})
	return cmd
}
