package main

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/kafka"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/models"
)

func eventsCmd(e *env) *cobra.Command {
	var groupID string

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Print booking events from Kafka as JSON lines",
		Long: `Tail the booking events topic until interrupted. Each event is written
to stdout as one JSON object per line.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(e.cfg.Kafka.Brokers) == 0 {
				return errors.New("KAFKA_BROKERS is not set")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			consumer := kafka.NewConsumer(e.cfg.Kafka.Brokers, e.cfg.Kafka.Topics.BookingEvents, groupID, e.log)
			defer consumer.Close()

			e.log.LogKafka("TAIL", e.cfg.Kafka.Topics.BookingEvents, "Waiting for booking events")
			return tailEvents(ctx, consumer, json.NewEncoder(cmd.OutOrStdout()))
		},
	}

	cmd.Flags().StringVar(&groupID, "group", "journeysphere-admin", "consumer group id")

	return cmd
}

func tailEvents(ctx context.Context, consumer *kafka.Consumer, enc *json.Encoder) error {
	return consumer.Run(ctx, func(event models.BookingEvent) error {
		return enc.Encode(event)
	})
}
