package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"tripmate/config"
	"tripmate/gateway"
	"tripmate/mq/gcppubsub"
	"tripmate/mq/goch"
	"tripmate/mq/mq"
	"tripmate/mq/rabbit"
	"tripmate/remind"
	"tripmate/store/mem"
	"tripmate/store/pg"
	"tripmate/store/sqlite"
	st "tripmate/store/store"
	"tripmate/trip"
	"tripmate/web"
)

func serverCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		Long:  `This command starts the web server for the application.`,
		Run: func(cmd *cobra.Command, args []string) {
			isDev := cmd.Flags().Lookup("dev").Value.String() == "true"
			port := cmd.Flags().Lookup("port").Value.String()
			mqMode := cmd.Flags().Lookup("mq").Value.String()
			storeMode := cmd.Flags().Lookup("store").Value.String()

			store, err := buildStore(storeMode)
			if err != nil {
				slog.Error("failed to initialize store", "mode", storeMode, "err", err)
				os.Exit(1)
			}
			defer store.Close()

			queue, err := buildQueue(mq.Mode(mqMode))
			if err != nil {
				slog.Error("failed to initialize message queue", "mode", mqMode, "err", err)
				os.Exit(1)
			}
			defer queue.Close()

			ai := gateway.NewClient(config.GeminiAPIKey())

			scheduler := remind.NewScheduler(queue.GetNotificationMessageQueue(), store, trip.MotivationalQuotes)
			if err := scheduler.Start(context.Background()); err != nil {
				slog.Error("failed to start reminder scheduler", "err", err)
				os.Exit(1)
			}
			defer scheduler.Stop()

			server := web.NewServer(store, queue, ai)
			if err := server.Serve(web.ServiceConfig{IsDev: isDev, Port: port}); err != nil {
				slog.Error("server stopped", "err", err)
				os.Exit(1)
			}
		},
	}

	cmd.Flags().Bool("dev", true, "Run in development mode")
	cmd.Flags().String("port", "8080", "Port to run the web server on")
	cmd.Flags().String("mq", "go_chan", "Message queue mode (go_chan, rabbitmq, gcp_pub_sub)")
	cmd.Flags().String("store", "sqlite", "Store mode (mem, sqlite, pg)")

	return cmd
}

func buildStore(mode string) (st.TripStoreWrapper, error) {
	seed := trip.DefaultSeed()
	switch mode {
	case "mem":
		return mem.NewInMemoryTripStoreWrapper(seed), nil
	case "sqlite":
		return sqlite.New(config.SQLitePath(), seed)
	case "pg":
		db, err := pg.InitPostgresGORM(pg.CreateDSN())
		if err != nil {
			return nil, err
		}
		return pg.New(db, seed)
	default:
		return nil, fmt.Errorf("unknown store mode %q", mode)
	}
}

func buildQueue(mode mq.Mode) (mq.TripMessageQueueWrapper, error) {
	switch mode {
	case mq.ModeGoChan:
		return goch.NewGoChanTripMessageQueueWrapper(), nil
	case mq.ModeRabbitMQ:
		conn, err := rabbit.Dial(rabbit.BrokerURL())
		if err != nil {
			return nil, err
		}
		return rabbit.NewRabbitTripMessageQueueWrapper(conn)
	case mq.ModeGCPPubSub:
		projectID, err := gcppubsub.ProjectID()
		if err != nil {
			return nil, err
		}
		return gcppubsub.NewGCPTripMessageQueueWrapper(context.Background(), projectID)
	default:
		return nil, fmt.Errorf("unknown mq mode %q", mode)
	}
}
