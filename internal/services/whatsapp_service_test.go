package services

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pasta_admin/internal/models"
	"pasta_admin/internal/store"
	"pasta_admin/pkg/whatsapp"
)

type fakeBridge struct {
	sent    []whatsapp.SendMessageRequest
	sendErr error
}

func (f *fakeBridge) QR() (*whatsapp.QRResponse, error) {
	return &whatsapp.QRResponse{QR: "fake-qr"}, nil
}

func (f *fakeBridge) Status() (*whatsapp.StatusResponse, error) {
	return &whatsapp.StatusResponse{Connected: true}, nil
}

func (f *fakeBridge) SendMessage(phone, message string) (*whatsapp.SendMessageResponse, error) {
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	f.sent = append(f.sent, whatsapp.SendMessageRequest{Phone: phone, Message: message})
	return &whatsapp.SendMessageResponse{Success: true}, nil
}

func newChatFixture(t *testing.T) (*fakeBridge, WhatsAppService, *store.Store, models.Client) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "snapshot.json"))
	require.NoError(t, err)

	vendor, err := st.CreateUser(store.NewUser{Username: "chat-vendor", Password: "secreto123", Role: models.RoleVendor, IsActive: true})
	require.NoError(t, err)
	client, err := st.CreateClient(store.NewClient{Name: "Bar La Esquina", Phone: "01155557777", VendorID: &vendor.ID})
	require.NoError(t, err)

	bridge := &fakeBridge{}
	return bridge, NewWhatsAppService(bridge, st), st, client
}

func TestSendToClientRelaysAndLogs(t *testing.T) {
	bridge, svc, st, client := newChatFixture(t)

	chat, err := svc.SendToClient(client.ID, "Llega mañana el pedido")
	require.NoError(t, err)
	assert.False(t, chat.FromClient)

	require.Len(t, bridge.sent, 1)
	assert.Equal(t, "Llega mañana el pedido", bridge.sent[0].Message)

	thread := st.ChatsByClient(client.ID)
	require.Len(t, thread, 1)
	assert.Equal(t, chat.ID, thread[0].ID)
}

func TestSendToClientKeepsLogOnBridgeFailure(t *testing.T) {
	bridge, svc, st, client := newChatFixture(t)
	bridge.sendErr = errors.New("bridge down")

	_, err := svc.SendToClient(client.ID, "mensaje perdido?")
	require.Error(t, err)

	// The thread still records the attempt.
	assert.Len(t, st.ChatsByClient(client.ID), 1)
}

func TestReceiveInboundMatchesClientByPhone(t *testing.T) {
	_, svc, st, client := newChatFixture(t)

	chat, err := svc.ReceiveInbound(client.Phone, "quiero 3 cajas de ravioles")
	require.NoError(t, err)
	assert.True(t, chat.FromClient)
	assert.Equal(t, client.ID, chat.ClientID)

	_, err = svc.ReceiveInbound("00000000", "hola?")
	assert.ErrorIs(t, err, store.ErrNotFound)

	assert.Len(t, st.ChatsByClient(client.ID), 1)
}
