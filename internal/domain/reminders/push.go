package reminders

import "context"

// Message es una notificación lista para el gateway push.
type Message struct {
	To    string
	Title string
	Body  string
	Data  map[string]string
}

// Pusher entrega mensajes a los dispositivos. Best effort: sin reintentos.
type Pusher interface {
	Push(ctx context.Context, msgs []Message) error
}
