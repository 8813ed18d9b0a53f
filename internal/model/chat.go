package model

import (
	"errors"
	"fmt"
	"strings"
)

type Sender string

const (
	SenderMentor Sender = "mentor"
	SenderUser   Sender = "user"
	SenderSystem Sender = "system"
)

func (s Sender) IsValid() bool {
	switch s {
	case SenderMentor, SenderUser, SenderSystem:
		return true
	default:
		return false
	}
}

type ChatMessage struct {
	ID   string `json:"id"`
	From Sender `json:"from"`
	Text string `json:"text"`
}

func (m ChatMessage) Validate() error {
	if strings.TrimSpace(m.ID) == "" {
		return errors.New("model: chat message id is required")
	}
	if !m.From.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidSender, m.From)
	}
	return nil
}

const DefaultUserName = "Diego"

func Greeting(name string) string {
	if strings.TrimSpace(name) == "" {
		name = DefaultUserName
	}
	return fmt.Sprintf("Buen día, %s 👋 ¿Qué modalidad querés usar hoy?", name)
}

const TimerCompletedText = "Temporizador completado ✅. Tomá 10 minutos de descanso."
