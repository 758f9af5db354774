package listener

import (
	"encoding/json"
	"log"

	"matrimony-service/event"
	"matrimony-service/socketio"
)

var (
	MatchmakingChannel = make(chan event.EventChannelData)
)

// Matchmaking consumes backoffice events from the matchmaking queue. A
// request.sync from another instance re-hints the affected clients on this
// one; anything else is only logged.
func Matchmaking() {
	for ev := range MatchmakingChannel {
		switch ev.Action {
		case "request.sync":
			update := socketio.RequestUpdate{}
			if err := json.Unmarshal(ev.Data, &update); err != nil {
				log.Printf("matchmaking listener: bad request.sync payload: %v", err)
				continue
			}
			socketio.NotifyRequestUpdate(update.Sender, update.Receiver)
		default:
			log.Printf("matchmaking listener: %s %s", ev.Action, string(ev.Data))
		}
	}
}
