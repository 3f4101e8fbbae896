package store

import (
	"fmt"
	"strings"

	"pasta_admin/internal/models"
)

// AppendChat adds one message to a client's thread. The thread is
// append-only; there are no edits or deletes.
func (s *Store) AppendChat(clientID uint, message string, fromClient bool) (models.Chat, error) {
	if strings.TrimSpace(message) == "" {
		return models.Chat{}, fmt.Errorf("%w: message is required", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.clients[clientID]; !ok {
		return models.Chat{}, fmt.Errorf("%w: client %d", ErrNotFound, clientID)
	}

	s.chatSeq++
	chat := models.Chat{
		ID:         s.chatSeq,
		ClientID:   clientID,
		Message:    message,
		FromClient: fromClient,
		CreatedAt:  s.now(),
	}
	s.chats[chat.ID] = chat
	s.persistLocked()

	return chat, nil
}

func (s *Store) ChatsByClient(clientID uint) []models.Chat {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := sortedValues(s.chats, func(c models.Chat) uint { return c.ID })
	thread := all[:0]
	for _, c := range all {
		if c.ClientID == clientID {
			thread = append(thread, c)
		}
	}
	return thread
}
