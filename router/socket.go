package router

import (
	"log"

	"matrimony-service/service"
	"matrimony-service/utils"

	"github.com/zishang520/socket.io/v2/socket"
)

// ConnectionStatus is one approved connection with its live presence.
type ConnectionStatus struct {
	Username string `json:"username"`
	Online   bool   `json:"online"`
}

type InitConnection struct {
	Connections []ConnectionStatus `json:"connections"`
}

// Socket registers the real-time handlers. The server pushes update_request
// hints itself (see socketio.NotifyRequestUpdate); clients only pull their
// connection snapshot here.
func Socket(server *socket.Server, svc *service.Service) {
	connectionsFor := func(client *socket.Socket) []ConnectionStatus {
		connections := []ConnectionStatus{}
		if client.Data() == nil {
			return connections
		}
		claims := client.Data().(*utils.TokenMetadata)

		peers, err := svc.ApprovedPeers(claims.Username)
		if err != nil {
			log.Printf("socket init for %s: %v", claims.Username, err)
			return connections
		}

		rooms := server.Sockets().Adapter().Rooms().Keys()
		for _, peer := range peers {
			online := false
			for i := range rooms {
				if rooms[i] == socket.Room(peer) {
					online = true
					break
				}
			}
			connections = append(connections, ConnectionStatus{
				Username: peer,
				Online:   online,
			})
		}
		return connections
	}

	server.On("connection", func(clients ...interface{}) {
		client := clients[0].(*socket.Socket)

		client.On("init", func(args ...interface{}) {
			client.Emit(
				"init",
				InitConnection{
					Connections: connectionsFor(client),
				},
			)
		})

		client.On("user_status", func(args ...interface{}) {
			client.Emit(
				"user_status",
				connectionsFor(client),
			)
		})
	})
}
