package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"blog/app/events"
	"blog/app/repositories"
	"blog/configs"
)

func openStore(ctx context.Context, cfg *configs.Config) (repositories.Store, error) {
	return repositories.Open(ctx, cfg.StoreOptions())
}

// newPublisher returns the Kafka publisher when brokers are configured.
func newPublisher(cfg *configs.Config) events.Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		return events.Nop()
	}
	log.Printf("Publishing events to kafka topic %s on %s", cfg.KafkaTopic, strings.Join(cfg.KafkaBrokers, ","))
	return events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
}

// confirm asks a y/N question on stdin.
func confirm(question string) bool {
	fmt.Printf("%s [y/N] ", question)
	var response string
	fmt.Scanln(&response)
	return response == "y" || response == "Y"
}
