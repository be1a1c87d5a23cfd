package document

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tidwall/gjson"
)

const (
	// Key prefixes for Redis
	docKeyPrefix        = "doc:"
	collectionKeyPrefix = "collection:"
	watchChannelPrefix  = "watch:"

	defaultMaxRetries = 10
)

// ErrInvalidDocument is returned when a mutation produces something that is not JSON
var ErrInvalidDocument = errors.New("document body is not valid JSON")

// Config holds configuration for the Redis document repository
type Config struct {
	// Redis client
	RedisClient *redis.Client

	// MaxRetries bounds optimistic transaction retries; zero uses the default
	MaxRetries int
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client     *redis.Client
	maxRetries int
}

// NewRedis creates a new Redis-backed document repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	retries := cfg.MaxRetries
	if retries <= 0 {
		retries = defaultMaxRetries
	}

	return &redisRepository{
		client:     cfg.RedisClient,
		maxRetries: retries,
	}, nil
}

func docKey(collection, id string) string {
	return docKeyPrefix + collection + ":" + id
}

func collectionKey(collection string) string {
	return collectionKeyPrefix + collection
}

func docChannel(collection, id string) string {
	return watchChannelPrefix + collection + ":" + id
}

func collectionChannel(collection string) string {
	return watchChannelPrefix + collection
}

func validate(collection, id string) error {
	if collection == "" {
		return ErrMissingCollection
	}
	if id == "" {
		return ErrMissingID
	}
	return nil
}

// Get retrieves a document from Redis
func (r *redisRepository) Get(ctx context.Context, input *GetInput) (*Document, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}
	if err := validate(input.Collection, input.ID); err != nil {
		return nil, err
	}

	data, err := r.client.Get(ctx, docKey(input.Collection, input.ID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	return &Document{
		Collection: input.Collection,
		ID:         input.ID,
		Data:       data,
	}, nil
}

// List returns the documents of a collection
func (r *redisRepository) List(ctx context.Context, input *ListInput) (*ListOutput, error) {
	if input == nil || input.Collection == "" {
		return nil, ErrMissingCollection
	}

	ids, err := r.client.SMembers(ctx, collectionKey(input.Collection)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list collection %s: %w", input.Collection, err)
	}
	if len(ids) == 0 {
		return &ListOutput{Documents: []*Document{}}, nil
	}
	sort.Strings(ids)

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = docKey(input.Collection, id)
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get documents: %w", err)
	}

	filters := make([]Filter, 0, len(input.Filters))
	for _, f := range input.Filters {
		v, err := normalize(f.Value)
		if err != nil {
			return nil, fmt.Errorf("invalid filter on %s: %w", f.Path, err)
		}
		filters = append(filters, Filter{Path: f.Path, Value: v})
	}

	docs := make([]*Document, 0, len(values))
	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			// Document deleted between reading the index and fetching it
			continue
		}
		if !matches([]byte(s), filters) {
			continue
		}
		docs = append(docs, &Document{
			Collection: input.Collection,
			ID:         ids[i],
			Data:       json.RawMessage(s),
		})
	}

	if input.OrderBy != "" {
		sort.SliceStable(docs, func(i, j int) bool {
			a := gjson.GetBytes(docs[i].Data, input.OrderBy)
			b := gjson.GetBytes(docs[j].Data, input.OrderBy)
			if input.Descending {
				return less(b, a)
			}
			return less(a, b)
		})
	}

	if input.Limit > 0 && len(docs) > input.Limit {
		docs = docs[:input.Limit]
	}

	return &ListOutput{Documents: docs}, nil
}

func matches(body []byte, filters []Filter) bool {
	for _, f := range filters {
		if !reflect.DeepEqual(gjson.GetBytes(body, f.Path).Value(), f.Value) {
			return false
		}
	}
	return true
}

// less orders numbers numerically, timestamps chronologically and everything else as text
func less(a, b gjson.Result) bool {
	if a.Type == gjson.Number && b.Type == gjson.Number {
		return a.Num < b.Num
	}
	if a.Type == gjson.String && b.Type == gjson.String {
		ta, errA := time.Parse(time.RFC3339Nano, a.Str)
		tb, errB := time.Parse(time.RFC3339Nano, b.Str)
		if errA == nil && errB == nil {
			return ta.Before(tb)
		}
	}
	return a.String() < b.String()
}

// Set creates or overwrites a document
func (r *redisRepository) Set(ctx context.Context, input *SetInput) error {
	if input == nil {
		return errors.New("input cannot be nil")
	}
	if err := validate(input.Collection, input.ID); err != nil {
		return err
	}

	var data []byte
	switch v := input.Data.(type) {
	case json.RawMessage:
		data = v
	case []byte:
		data = v
	default:
		var err error
		data, err = json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to marshal document: %w", err)
		}
	}
	if !json.Valid(data) {
		return ErrInvalidDocument
	}

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		return queueWrite(ctx, pipe, input.Collection, input.ID, data)
	})
	if err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}
	return nil
}

// Update applies field-path operations to an existing document
func (r *redisRepository) Update(ctx context.Context, input *UpdateInput) (*Document, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}
	return r.Transact(ctx, &TransactInput{
		Collection: input.Collection,
		ID:         input.ID,
		Mutate: func(current []byte) ([]byte, error) {
			return Apply(current, input.Ops)
		},
	})
}

// Transact runs a WATCH/MULTI read-modify-write, retrying when another writer wins the race
func (r *redisRepository) Transact(ctx context.Context, input *TransactInput) (*Document, error) {
	if input == nil || input.Mutate == nil {
		return nil, errors.New("input and mutate func cannot be nil")
	}
	if err := validate(input.Collection, input.ID); err != nil {
		return nil, err
	}

	key := docKey(input.Collection, input.ID)
	var result []byte

	txf := func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if !errors.Is(err, redis.Nil) {
				return fmt.Errorf("failed to read document: %w", err)
			}
			if !input.AllowCreate {
				return ErrNotFound
			}
			current = nil
		}

		next, err := input.Mutate(current)
		if err != nil {
			return err
		}
		if !json.Valid(next) {
			return ErrInvalidDocument
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			return queueWrite(ctx, pipe, input.Collection, input.ID, next)
		})
		if err != nil {
			return err
		}
		result = next
		return nil
	}

	for attempt := 0; attempt < r.maxRetries; attempt++ {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			return &Document{
				Collection: input.Collection,
				ID:         input.ID,
				Data:       result,
			}, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return nil, err
	}

	return nil, ErrConflict
}

// Delete removes a document
func (r *redisRepository) Delete(ctx context.Context, input *DeleteInput) error {
	if input == nil {
		return errors.New("input cannot be nil")
	}
	if err := validate(input.Collection, input.ID); err != nil {
		return err
	}

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		return queueDelete(ctx, pipe, input.Collection, input.ID)
	})
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}

// DeleteCollection removes every document of a collection
func (r *redisRepository) DeleteCollection(ctx context.Context, input *DeleteCollectionInput) error {
	if input == nil || input.Collection == "" {
		return ErrMissingCollection
	}

	ids, err := r.client.SMembers(ctx, collectionKey(input.Collection)).Result()
	if err != nil {
		return fmt.Errorf("failed to list collection %s: %w", input.Collection, err)
	}
	if len(ids) == 0 {
		return nil
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, id := range ids {
			if err := queueDelete(ctx, pipe, input.Collection, id); err != nil {
				return err
			}
		}
		pipe.Del(ctx, collectionKey(input.Collection))
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete collection %s: %w", input.Collection, err)
	}
	return nil
}

func queueWrite(ctx context.Context, pipe redis.Pipeliner, collection, id string, data []byte) error {
	change, err := json.Marshal(&Change{
		Collection: collection,
		ID:         id,
		Data:       data,
	})
	if err != nil {
		return err
	}
	pipe.Set(ctx, docKey(collection, id), data, 0)
	pipe.SAdd(ctx, collectionKey(collection), id)
	pipe.Publish(ctx, docChannel(collection, id), change)
	pipe.Publish(ctx, collectionChannel(collection), change)
	return nil
}

func queueDelete(ctx context.Context, pipe redis.Pipeliner, collection, id string) error {
	change, err := json.Marshal(&Change{
		Collection: collection,
		ID:         id,
		Deleted:    true,
	})
	if err != nil {
		return err
	}
	pipe.Del(ctx, docKey(collection, id))
	pipe.SRem(ctx, collectionKey(collection), id)
	pipe.Publish(ctx, docChannel(collection, id), change)
	pipe.Publish(ctx, collectionChannel(collection), change)
	return nil
}

// Subscription is a live watch on a document or collection
type Subscription struct {
	pubsub *redis.PubSub
	done   chan struct{}
	once   sync.Once
}

// Close stops delivery. It is safe to call more than once.
func (s *Subscription) Close() error {
	var err error
	s.once.Do(func() {
		err = s.pubsub.Close()
	})
	return err
}

// Done is closed once no more changes will be delivered
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

func (s *Subscription) run(handler func(*Change)) {
	defer close(s.done)
	for msg := range s.pubsub.Channel() {
		var change Change
		if err := json.Unmarshal([]byte(msg.Payload), &change); err != nil {
			continue
		}
		handler(&change)
	}
}

// Watch subscribes before reading the snapshot so no change between the two is lost
func (r *redisRepository) Watch(ctx context.Context, input *WatchInput) (*Subscription, error) {
	if input == nil || input.Handler == nil {
		return nil, errors.New("input and handler cannot be nil")
	}
	if input.Collection == "" {
		return nil, ErrMissingCollection
	}

	channel := collectionChannel(input.Collection)
	if input.ID != "" {
		channel = docChannel(input.Collection, input.ID)
	}

	pubsub := r.client.Subscribe(ctx, channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", channel, err)
	}

	switch {
	case input.SkipSnapshot:
	case input.ID != "":
		doc, err := r.Get(ctx, &GetInput{Collection: input.Collection, ID: input.ID})
		switch {
		case err == nil:
			input.Handler(&Change{Collection: doc.Collection, ID: doc.ID, Data: doc.Data})
		case !errors.Is(err, ErrNotFound):
			pubsub.Close()
			return nil, err
		}
	default:
		out, err := r.List(ctx, &ListInput{Collection: input.Collection})
		if err != nil {
			pubsub.Close()
			return nil, err
		}
		for _, doc := range out.Documents {
			input.Handler(&Change{Collection: doc.Collection, ID: doc.ID, Data: doc.Data})
		}
	}

	sub := &Subscription{
		pubsub: pubsub,
		done:   make(chan struct{}),
	}
	go sub.run(input.Handler)

	return sub, nil
}
