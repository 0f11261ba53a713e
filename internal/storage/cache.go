package storage

import (
	"context"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
)

// recentCacheCap — межа списку нещодавніх повідомлень на чат.
// Все, що старше за 100 записів, витісняється.
const recentCacheCap = 100

// MessageCache — обмежений best-effort кеш нещодавніх повідомлень поверх
// Redis-списків (LPUSH/LTRIM/LRANGE, ключ chat:<id>, найновіші спочатку).
// Кеш не є джерелом істини: будь-яка недоступність Redis деградує до
// залогованого no-op, помилка ніколи не піднімається до викликача.
type MessageCache struct {
	rdb *redis.Client
	ctx context.Context
}

// NewMessageCache створює кеш. rdb може бути nil — тоді всі операції
// стають no-op і сервіс працює лише зі сховищем.
func NewMessageCache(rdb *redis.Client) *MessageCache {
	return &MessageCache{
		rdb: rdb,
		ctx: context.Background(),
	}
}

// Available повідомляє, чи сконфігуровано Redis.
func (c *MessageCache) Available() bool {
	return c != nil && c.rdb != nil
}

// PushRecent кладе серіалізоване повідомлення на початок списку чату
// та обрізає список до recentCacheCap елементів.
func (c *MessageCache) PushRecent(chatID uint, payload []byte) {
	if !c.Available() {
		return
	}

	key := chatKey(chatID)
	if err := c.rdb.LPush(c.ctx, key, payload).Err(); err != nil {
		log.Printf("ERROR: Redis LPUSH failed for %s: %v", key, err)
		return
	}
	if err := c.rdb.LTrim(c.ctx, key, 0, recentCacheCap-1).Err(); err != nil {
		log.Printf("ERROR: Redis LTRIM failed for %s: %v", key, err)
	}
}

// Recent повертає до limit найновіших закешованих повідомлень
// (найновіші спочатку). Будь-яка помилка — порожній результат.
func (c *MessageCache) Recent(chatID uint, limit int64) []string {
	if !c.Available() || limit <= 0 {
		return nil
	}

	key := chatKey(chatID)
	entries, err := c.rdb.LRange(c.ctx, key, 0, limit-1).Result()
	if err != nil {
		log.Printf("ERROR: Redis LRANGE failed for %s: %v", key, err)
		return nil
	}
	return entries
}

func chatKey(chatID uint) string {
	return fmt.Sprintf("chat:%d", chatID)
}
