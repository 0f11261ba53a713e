package chathub

import (
	"log"
	"sync"
)

// ConnectionRegistry — процес-локальна мапа chatID -> множина живих
// з'єднань. Створюється явно і передається сесіям; стан не персистентний,
// після рестарту процесу всі з'єднання так чи інакше закриті.
type ConnectionRegistry struct {
	mu    sync.RWMutex
	chats map[uint]map[Client]struct{}
}

// NewConnectionRegistry створює порожній реєстр.
func NewConnectionRegistry() *ConnectionRegistry {
	return &ConnectionRegistry{
		chats: make(map[uint]map[Client]struct{}),
	}
}

// Register додає з'єднання до множини чату, створюючи її за потреби.
func (r *ConnectionRegistry) Register(chatID uint, c Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.chats[chatID]
	if !ok {
		set = make(map[Client]struct{})
		r.chats[chatID] = set
	}
	set[c] = struct{}{}
}

// Unregister видаляє з'єднання. Ідемпотентний: повторний виклик або виклик
// для незареєстрованого з'єднання — це no-op. Порожня множина чату
// прибирається, щоб мапа не росла порожніми записами.
func (r *ConnectionRegistry) Unregister(chatID uint, c Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.chats[chatID]
	if !ok {
		return
	}
	delete(set, c)
	if len(set) == 0 {
		delete(r.chats, chatID)
	}
}

// Count повертає кількість живих з'єднань для чату.
func (r *ConnectionRegistry) Count(chatID uint) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.chats[chatID])
}

// Broadcast доставляє payload кожному зареєстрованому з'єднанню чату.
// Ітерація йде по знімку множини: з'єднання, що приєдналося посеред
// розсилки, просто пропустить це повідомлення. Доставка best-effort:
// відмова одного клієнта не зупиняє інших, а сам клієнт знімається з
// реєстру як відключений.
func (r *ConnectionRegistry) Broadcast(chatID uint, payload []byte) {
	r.mu.RLock()
	set := r.chats[chatID]
	snapshot := make([]Client, 0, len(set))
	for c := range set {
		snapshot = append(snapshot, c)
	}
	r.mu.RUnlock()

	for _, c := range snapshot {
		if !c.Deliver(payload) {
			log.Printf("WARNING: evicting slow or closed connection (user %d, chat %d)", c.UserID(), chatID)
			r.Unregister(chatID, c)
			c.Close()
		}
	}
}
