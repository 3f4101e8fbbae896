package store

import (
	"fmt"
	"strings"

	"pasta_admin/internal/models"
)

// Public-form submissions. Both entities are append-only.

func (s *Store) CreateContactMessage(name, email, phone, message string) (models.ContactMessage, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(message) == "" {
		return models.ContactMessage{}, fmt.Errorf("%w: name and message are required", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.contactSeq++
	msg := models.ContactMessage{
		ID:        s.contactSeq,
		Name:      name,
		Email:     email,
		Phone:     phone,
		Message:   message,
		CreatedAt: s.now(),
	}
	s.contactMessages[msg.ID] = msg
	s.persistLocked()

	return msg, nil
}

func (s *Store) ContactMessages() []models.ContactMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	return sortedValues(s.contactMessages, func(m models.ContactMessage) uint { return m.ID })
}

func (s *Store) CreateNewsletterSubscription(email string) (models.NewsletterSubscription, error) {
	if strings.TrimSpace(email) == "" {
		return models.NewsletterSubscription{}, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.newsletterSeq++
	sub := models.NewsletterSubscription{
		ID:        s.newsletterSeq,
		Email:     email,
		CreatedAt: s.now(),
	}
	s.newsletterSubs[sub.ID] = sub
	s.persistLocked()

	return sub, nil
}

func (s *Store) NewsletterSubscriptions() []models.NewsletterSubscription {
	s.mu.Lock()
	defer s.mu.Unlock()

	return sortedValues(s.newsletterSubs, func(n models.NewsletterSubscription) uint { return n.ID })
}
