package room

// Broadcaster pushes room events to subscribed clients.
type Broadcaster interface {
	Broadcast(roomCode string, action string, data interface{})
}
