package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"pasta_admin/internal/models"
)

var (
	// ErrNotFound is returned when an id does not resolve to a record.
	ErrNotFound = errors.New("record not found")
	// ErrUsernameTaken is returned on a case-insensitive username conflict.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrInsufficientStock is returned when an order asks for more units
	// than a product has left.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrInvalidInput is wrapped by all validation failures.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidTransition is returned for a disallowed order status change.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Store is the single source of truth for all persisted entities. Reads
// and writes go through in-memory maps guarded by one mutex; every
// mutation rewrites the JSON snapshot file before returning.
//
// A Store is constructed with Open and injected wherever it is needed.
// There is no package-level instance.
type Store struct {
	mu   sync.Mutex
	path string
	now  func() time.Time

	users           map[uint]models.User
	products        map[uint]models.Product
	clients         map[uint]models.Client
	chats           map[uint]models.Chat
	orders          map[uint]models.Order
	orderItems      map[uint]models.OrderItem
	contactMessages map[uint]models.ContactMessage
	newsletterSubs  map[uint]models.NewsletterSubscription

	// Last issued id per entity type. Counters only ever grow, so ids
	// are never reused within a process lifetime even after deletes.
	userSeq       uint
	productSeq    uint
	clientSeq     uint
	chatSeq       uint
	orderSeq      uint
	orderItemSeq  uint
	contactSeq    uint
	newsletterSeq uint

	lastPersistErr error
}

// snapshot is the on-disk document. Field names match the historical
// snapshot format, so readers must tolerate missing fields rather than
// rely on a schema version.
type snapshot struct {
	Users                   []models.User                   `json:"users"`
	Products                []models.Product                `json:"products"`
	Clients                 []models.Client                 `json:"clients"`
	Chats                   []models.Chat                   `json:"chats"`
	Orders                  []models.Order                  `json:"orders"`
	OrderItems              []models.OrderItem              `json:"orderItems"`
	ContactMessages         []models.ContactMessage         `json:"contactMessages"`
	NewsletterSubscriptions []models.NewsletterSubscription `json:"newsletterSubscriptions"`
}

// Open loads the snapshot at path, or seeds a brand new store when no
// snapshot exists yet. A snapshot that exists but cannot be parsed is
// moved aside to <path>.corrupt-<unix> and Open fails: first run and
// corruption are different situations and only the first one may fall
// back to seed data.
func Open(path string) (*Store, error) {
	s := &Store{
		path: path,
		// UTC keeps timestamps identical across a snapshot round trip.
		now:             nowUTC,
		users:           make(map[uint]models.User),
		products:        make(map[uint]models.Product),
		clients:         make(map[uint]models.Client),
		chats:           make(map[uint]models.Chat),
		orders:          make(map[uint]models.Order),
		orderItems:      make(map[uint]models.OrderItem),
		contactMessages: make(map[uint]models.ContactMessage),
		newsletterSubs:  make(map[uint]models.NewsletterSubscription),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read snapshot: %w", err)
		}
		if err := s.seed(); err != nil {
			return nil, fmt.Errorf("seed store: %w", err)
		}
		s.persistLocked()
		if s.lastPersistErr != nil {
			return nil, fmt.Errorf("write initial snapshot: %w", s.lastPersistErr)
		}
		return s, nil
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		backup := fmt.Sprintf("%s.corrupt-%d", path, time.Now().Unix())
		if renameErr := os.Rename(path, backup); renameErr != nil {
			return nil, fmt.Errorf("snapshot unparseable (%v) and could not be moved aside: %w", err, renameErr)
		}
		return nil, fmt.Errorf("snapshot unparseable, moved to %s: %w", backup, err)
	}

	s.load(&snap)
	return s, nil
}

// Close writes a final snapshot and reports the outcome.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.persistLocked()
	return s.lastPersistErr
}

// LastPersistError reports whether the most recent snapshot write
// failed. In-memory state stays authoritative either way; callers use
// this to surface a degraded-durability warning.
func (s *Store) LastPersistError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastPersistErr
}

// load repopulates the maps from a parsed snapshot and resumes every
// counter at the highest id seen.
func (s *Store) load(snap *snapshot) {
	for _, u := range snap.Users {
		s.users[u.ID] = u
		if u.ID > s.userSeq {
			s.userSeq = u.ID
		}
	}
	for _, p := range snap.Products {
		s.products[p.ID] = p
		if p.ID > s.productSeq {
			s.productSeq = p.ID
		}
	}
	for _, c := range snap.Clients {
		s.clients[c.ID] = c
		if c.ID > s.clientSeq {
			s.clientSeq = c.ID
		}
	}
	for _, c := range snap.Chats {
		s.chats[c.ID] = c
		if c.ID > s.chatSeq {
			s.chatSeq = c.ID
		}
	}
	for _, o := range snap.Orders {
		s.orders[o.ID] = o
		if o.ID > s.orderSeq {
			s.orderSeq = o.ID
		}
	}
	for _, it := range snap.OrderItems {
		s.orderItems[it.ID] = it
		if it.ID > s.orderItemSeq {
			s.orderItemSeq = it.ID
		}
	}
	for _, m := range snap.ContactMessages {
		s.contactMessages[m.ID] = m
		if m.ID > s.contactSeq {
			s.contactSeq = m.ID
		}
	}
	for _, n := range snap.NewsletterSubscriptions {
		s.newsletterSubs[n.ID] = n
		if n.ID > s.newsletterSeq {
			s.newsletterSeq = n.ID
		}
	}
}

// persistLocked serializes the whole store and atomically replaces the
// snapshot file. Callers must hold s.mu. A failed write is logged and
// remembered but never rolls back the in-memory mutation.
func (s *Store) persistLocked() {
	snap := snapshot{
		Users:                   sortedValues(s.users, func(u models.User) uint { return u.ID }),
		Products:                sortedValues(s.products, func(p models.Product) uint { return p.ID }),
		Clients:                 sortedValues(s.clients, func(c models.Client) uint { return c.ID }),
		Chats:                   sortedValues(s.chats, func(c models.Chat) uint { return c.ID }),
		Orders:                  sortedValues(s.orders, func(o models.Order) uint { return o.ID }),
		OrderItems:              sortedValues(s.orderItems, func(i models.OrderItem) uint { return i.ID }),
		ContactMessages:         sortedValues(s.contactMessages, func(m models.ContactMessage) uint { return m.ID }),
		NewsletterSubscriptions: sortedValues(s.newsletterSubs, func(n models.NewsletterSubscription) uint { return n.ID }),
	}

	data, err := json.MarshalIndent(&snap, "", "  ")
	if err != nil {
		s.lastPersistErr = fmt.Errorf("marshal snapshot: %w", err)
		log.Printf("snapshot write failed: %v", s.lastPersistErr)
		return
	}

	// Write to a temp file in the same directory, then rename over the
	// snapshot so a crash mid-write cannot leave a truncated file.
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "snapshot-*.tmp")
	if err != nil {
		s.lastPersistErr = fmt.Errorf("create temp snapshot: %w", err)
		log.Printf("snapshot write failed: %v", s.lastPersistErr)
		return
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		s.lastPersistErr = fmt.Errorf("write temp snapshot: %w", err)
		log.Printf("snapshot write failed: %v", s.lastPersistErr)
		return
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		s.lastPersistErr = fmt.Errorf("close temp snapshot: %w", err)
		log.Printf("snapshot write failed: %v", s.lastPersistErr)
		return
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		s.lastPersistErr = fmt.Errorf("replace snapshot: %w", err)
		log.Printf("snapshot write failed: %v", s.lastPersistErr)
		return
	}

	s.lastPersistErr = nil
}

func nowUTC() time.Time {
	return time.Now().UTC()
}

// sortedValues collects map values ordered by id, which matches
// insertion order since ids only grow.
func sortedValues[T any](m map[uint]T, id func(T) uint) []T {
	out := make([]T, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return id(out[i]) < id(out[j]) })
	return out
}
