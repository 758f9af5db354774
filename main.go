package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"matrimony-service/config"
	"matrimony-service/controller"
	"matrimony-service/database"
	"matrimony-service/event"
	"matrimony-service/event/listener"
	"matrimony-service/router"
	"matrimony-service/service"
	"matrimony-service/socketio"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	log.SetPrefix("matrimony-service: ")

	rest := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		StrictRouting:         true,
		AppName:               "matrimony-service",
	})

	rest.Use(cors.New())

	database.RedisConnect()
	database.PostgresConnect()

	controller.Init(database.Postgres)

	event.RabbitMQConnect([]string{
		// Connect to queues
		"matchmaking",
		"analytics",
	})

	// Run the matchmaking queue listener
	go listener.Matchmaking()

	// Subscribe listener channel to backoffice events
	event.RabbitMQSubscribe([]event.RabbitMQSubscribeListener{
		{
			Queue:   "matchmaking",
			Channel: listener.MatchmakingChannel,
		},
	})

	// Init event logs
	event.Init()

	socket := socketio.Init(rest)

	router.Rest(rest)
	router.Socket(socket, service.New(database.Postgres))

	go rest.Listen(fmt.Sprintf(":%s", config.Config("SERVER_PORT")))

	exit := make(chan struct{})
	SignalC := make(chan os.Signal, 1)

	signal.Notify(SignalC, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		for s := range SignalC {
			switch s {
			case syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT:
				close(exit)
				return
			}
		}
	}()

	<-exit
	socket.Close(nil)
	event.RabbitMQChannel.Close()
	event.RabbitMQConnection.Close()
	event.InLogFile.Close()
	event.OutLogFile.Close()
	os.Exit(0)
}
