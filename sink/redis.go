package sink

import (
	"context"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"

	"github.com/evdnx/pricewatch/types"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Publisher is the slice of *redis.Client the sink needs.
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// Redis publishes each reading as JSON on a pub/sub channel. Messages are
// fire-and-forget; nothing is retained once subscribers have read them.
type Redis struct {
	pub     Publisher
	channel string
}

func NewRedis(pub Publisher, channel string) *Redis {
	return &Redis{pub: pub, channel: channel}
}

// Dial connects to Redis and checks the connection with a PING.
func Dial(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}
	return rdb, nil
}

// message is the wire shape of a published reading.
type message struct {
	Price  float64  `json:"price"`
	Short  *float64 `json:"short_sma"`
	Long   *float64 `json:"long_sma"`
	Signal string   `json:"signal"`
	At     string   `json:"at"`
}

func encode(r types.Reading) ([]byte, error) {
	m := message{
		Price:  r.Price,
		Signal: r.Signal.String(),
		At:     r.At.UTC().Format(time.RFC3339Nano),
	}
	if r.HasShort {
		v := r.Short
		m.Short = &v
	}
	if r.HasLong {
		v := r.Long
		m.Long = &v
	}
	return json.Marshal(m)
}

func (s *Redis) Emit(ctx context.Context, r types.Reading) error {
	payload, err := encode(r)
	if err != nil {
		return fmt.Errorf("redis: encode reading: %w", err)
	}
	if err := s.pub.Publish(ctx, s.channel, payload).Err(); err != nil {
		return fmt.Errorf("redis: publish %s: %w", s.channel, err)
	}
	return nil
}
