package socketio

import (
	"context"
	"time"

	"matrimony-service/config"
	"matrimony-service/database"
	"matrimony-service/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/zishang520/engine.io/v2/log"
	"github.com/zishang520/socket.io-go-redis/adapter"
	r_type "github.com/zishang520/socket.io-go-redis/types"
	"github.com/zishang520/socket.io/v2/socket"
)

// RequestUpdate is the payload of the update_request event. Best-effort live
// hinting only, no acks and no replay. Clients re-query the profile card.
type RequestUpdate struct {
	Sender   string `json:"sender"`
	Receiver string `json:"receiver"`
}

var server *socket.Server

func Init(app *fiber.App) *socket.Server {
	log.DEBUG = config.Config("SOCKET_DEBUG") == "true"

	options := socket.DefaultServerOptions()
	options.SetServeClient(true)
	options.SetAllowEIO3(true)
	options.SetPingInterval(300 * time.Millisecond)
	options.SetPingTimeout(200 * time.Millisecond)
	options.SetMaxHttpBufferSize(100000000)
	options.SetConnectTimeout(1000 * time.Millisecond)
	options.SetAdapter(&adapter.RedisAdapterBuilder{
		Redis: r_type.NewRedisClient(context.Background(), database.Redis[1]),
		Opts:  &adapter.RedisAdapterOptions{},
	})

	server = socket.NewServer(nil, nil)

	// Authenticated handshakes join the client to its own username room, so
	// request updates can be scoped to the affected pair instead of hitting
	// every connected client.
	server.Use(func(client *socket.Socket, next func(*socket.ExtendedError)) {
		token, auth := client.Conn().Request().Query().Get("token")

		if auth {
			claims, err := utils.CheckAndExtractTokenMetadata(token, "JWT_ACCESS_KEY")

			if err == nil {
				if !claims.Otp {
					client.Join(socket.Room(claims.Username))
					client.SetData(claims)
				}
			}
		}

		next(nil)
	})

	app.Get("/socket.io/", adaptor.HTTPHandler(server.ServeHandler(options)))
	app.Post("/socket.io/", adaptor.HTTPHandler(server.ServeHandler(options)))

	return server
}

func Broadcast(event string, message any) {
	if server == nil {
		return
	}
	server.FetchSockets()(func(sockets []*socket.RemoteSocket, _ error) {
		for _, socket := range sockets {
			socket.Emit(event, message)
		}
	})
}

func Emit(username string, event string, message any) {
	if server == nil {
		return
	}
	server.To(socket.Room(username)).Emit(event, message)
}

// NotifyRequestUpdate fans a request state change out to both participants.
// Callers invoke it only after the mutation committed.
func NotifyRequestUpdate(sender, receiver string) {
	update := RequestUpdate{Sender: sender, Receiver: receiver}
	Emit(sender, "update_request", update)
	Emit(receiver, "update_request", update)
}
