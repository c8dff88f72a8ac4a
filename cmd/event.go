package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/peopleops/hr-management/internal/core/events"
	"github.com/peopleops/hr-management/internal/email"
	"github.com/peopleops/hr-management/pkg/logger"
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Event management commands",
	Long:  `Manage events: publish test events through the notification pipeline`,
}

var publishEventCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish a test employee-created event",
	Long:  `Publish an employee-created event through the bus and dispatcher, enqueuing a real welcome-email job`,
	Run: func(cmd *cobra.Command, args []string) {
		publishTestEvent()
	},
}

var eventEmail string

// publishTestEvent drives the full enqueue path end to end so operators can
// verify bus wiring and queue connectivity without creating an employee.
func publishTestEvent() {
	config, err := loadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(config.Logging.Level, config.Logging.Format)
	log := logger.L()

	redisClient := email.NewRedisClient(config.Redis.Addr, config.Redis.Password, config.Redis.DB)
	queue := email.NewRedisQueue(redisClient, config.Redis.QueueKey)
	dispatcher := email.NewDispatcher(queue, log, &email.LogObserver{Logger: log})

	bus := events.NewEventBus(log)
	bus.Subscribe(events.EventTypeEmployeeCreated, dispatcher.HandleEmployeeCreated)

	event := events.NewEmployeeCreatedEvent("test-employee", "Test Employee", eventEmail)
	log.Info("publishing test event", "event_type", event.EventType(), "email", eventEmail)

	// Synchronous publish so enqueue failures surface before exit.
	if err := bus.PublishSync(context.Background(), event); err != nil {
		log.Error("failed to publish event", "error", err)
		os.Exit(1)
	}

	log.Info("test event published successfully")
}

func init() {
	publishEventCmd.Flags().StringVar(&eventEmail, "email", "test@example.com", "Recipient address for the test welcome email")

	eventCmd.AddCommand(publishEventCmd)

	rootCmd.AddCommand(eventCmd)
}
