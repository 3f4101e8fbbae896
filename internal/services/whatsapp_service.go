package services

import (
	"fmt"
	"log"

	"pasta_admin/internal/models"
	"pasta_admin/internal/store"
	"pasta_admin/pkg/whatsapp"
)

// Bridge is the slice of the WhatsApp client this service needs;
// tests substitute a fake.
type Bridge interface {
	QR() (*whatsapp.QRResponse, error)
	Status() (*whatsapp.StatusResponse, error)
	SendMessage(phone, message string) (*whatsapp.SendMessageResponse, error)
}

// WhatsAppService connects the chat log to the bridge: outbound replies
// are relayed and logged, inbound webhook messages are attributed to a
// client by phone number and appended.
type WhatsAppService interface {
	QR() (*whatsapp.QRResponse, error)
	Status() (*whatsapp.StatusResponse, error)
	SendToClient(clientID uint, message string) (models.Chat, error)
	ReceiveInbound(phone, message string) (models.Chat, error)
}

type whatsAppService struct {
	bridge Bridge
	store  *store.Store
}

func NewWhatsAppService(bridge Bridge, st *store.Store) WhatsAppService {
	return &whatsAppService{bridge: bridge, store: st}
}

func (s *whatsAppService) QR() (*whatsapp.QRResponse, error) {
	return s.bridge.QR()
}

func (s *whatsAppService) Status() (*whatsapp.StatusResponse, error) {
	return s.bridge.Status()
}

// SendToClient relays a dashboard reply through the bridge and appends
// it to the client's thread. The message is logged even when the bridge
// is unreachable, so the conversation history stays complete; the send
// failure is reported to the caller.
func (s *whatsAppService) SendToClient(clientID uint, message string) (models.Chat, error) {
	client, ok := s.store.ClientByID(clientID)
	if !ok {
		return models.Chat{}, fmt.Errorf("%w: client %d", store.ErrNotFound, clientID)
	}

	chat, err := s.store.AppendChat(clientID, message, false)
	if err != nil {
		return models.Chat{}, err
	}

	if _, sendErr := s.bridge.SendMessage(client.Phone, message); sendErr != nil {
		log.Printf("whatsapp send to client %d failed: %v", clientID, sendErr)
		return chat, fmt.Errorf("message logged but not delivered: %w", sendErr)
	}
	return chat, nil
}

func (s *whatsAppService) ReceiveInbound(phone, message string) (models.Chat, error) {
	client, ok := s.store.ClientByPhone(phone)
	if !ok {
		return models.Chat{}, fmt.Errorf("%w: no client with phone %s", store.ErrNotFound, phone)
	}
	return s.store.AppendChat(client.ID, message, true)
}
