package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/peopleops/hr-management/internal/email"
	"github.com/peopleops/hr-management/pkg/logger"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Start worker pools for various services",
	Long:  `Start and manage worker pools for background jobs like email delivery.`,
}

var emailWorkerCmd = &cobra.Command{
	Use:   "email",
	Short: "Start the welcome-email worker pool",
	Long:  `Drain the email job queue and deliver welcome emails over SMTP.`,
	Run: func(cmd *cobra.Command, args []string) {
		startEmailWorker()
	},
}

var emailConcurrency int

func startEmailWorker() {
	config, err := loadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(config.Logging.Level, config.Logging.Format)
	log := logger.L()

	redisClient := email.NewRedisClient(config.Redis.Addr, config.Redis.Password, config.Redis.DB)
	queue := email.NewRedisQueue(redisClient, config.Redis.QueueKey)

	mailer, err := email.NewSMTPMailer(
		config.SMTP.Host,
		config.SMTP.Port,
		config.SMTP.Username,
		config.SMTP.Password,
		config.SMTP.From,
	)
	if err != nil {
		log.Error("failed to set up mailer", "error", err)
		os.Exit(1)
	}

	renderer, err := email.NewRenderer()
	if err != nil {
		log.Error("failed to load email templates", "error", err)
		os.Exit(1)
	}

	worker := email.NewWorker(queue, mailer, renderer, log, emailConcurrency,
		&email.LogObserver{Logger: log})

	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	workerDone := make(chan struct{})
	go func() {
		worker.Run(ctx)
		close(workerDone)
	}()

	log.Info("email worker is running", "queue", config.Redis.QueueKey, "concurrency", emailConcurrency)

	sig := <-sigChan
	log.Info("received signal, shutting down email worker", "signal", sig)
	cancel()

	select {
	case <-workerDone:
		log.Info("email worker shutdown complete")
	case <-time.After(30 * time.Second):
		log.Warn("shutdown timeout reached, forcing exit")
	}
}

func init() {
	emailWorkerCmd.Flags().IntVar(&emailConcurrency, "concurrency", 4, "Number of concurrent consumers")

	workerCmd.AddCommand(emailWorkerCmd)

	rootCmd.AddCommand(workerCmd)
}
