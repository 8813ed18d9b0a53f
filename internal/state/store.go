// Package state holds the FocusNova session: tasks, mode, points, daily
// stats, the mentor transcript and the current selection. Tasks, mode,
// points and stats are mirrored to a storage.KV after every change; the rest
// lives only in memory.
package state

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sandeepkv93/focusnova/internal/clock"
	"github.com/sandeepkv93/focusnova/internal/model"
	"github.com/sandeepkv93/focusnova/internal/storage"
)

type Store struct {
	kv       storage.KV
	clock    clock.Clock
	newID    func() string
	log      *zap.Logger
	userName string

	tasks      []model.Task
	mode       model.Mode
	points     int
	stats      model.DailyStats
	chat       []model.ChatMessage
	selectedID string

	lastPersistErr error
}

type Option func(*Store)

func WithClock(c clock.Clock) Option {
	return func(s *Store) {
		if c != nil {
			s.clock = c
		}
	}
}

func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

func WithUserName(name string) Option {
	return func(s *Store) { s.userName = name }
}

// Load builds a Store from kv. Missing or malformed values fall back to
// defaults; Load never fails because of stored data.
func Load(ctx context.Context, kv storage.KV, opts ...Option) *Store {
	s := &Store{
		kv:       kv,
		clock:    clock.System{},
		newID:    func() string { return uuid.New().String() },
		log:      zap.NewNop(),
		userName: model.DefaultUserName,
		mode:     model.DefaultMode,
		stats:    model.DailyStats{},
		tasks:    []model.Task{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.loadTasks(ctx)
	s.loadMode(ctx)
	s.loadPoints(ctx)
	s.loadStats(ctx)
	s.chat = []model.ChatMessage{s.greeting()}
	s.log.Debug("state loaded",
		zap.Int("tasks", len(s.tasks)),
		zap.String("mode", string(s.mode)),
		zap.Int("points", s.points),
		zap.Int("stat_days", len(s.stats)),
	)
	return s
}

func (s *Store) read(ctx context.Context, key string) (string, bool) {
	raw, err := s.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.log.Warn("read persisted value failed", zap.String("key", key), zap.Error(err))
		}
		return "", false
	}
	return raw, true
}

func (s *Store) loadTasks(ctx context.Context) {
	raw, ok := s.read(ctx, storage.KeyTasks)
	if !ok {
		return
	}
	var decoded []model.Task
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		s.log.Warn("malformed tasks, using empty list", zap.Error(err))
		return
	}
	tasks, dropped := model.SanitizeTasks(decoded)
	if dropped > 0 {
		s.log.Warn("dropped invalid task records", zap.Int("dropped", dropped))
	}
	s.tasks = tasks
}

func (s *Store) loadMode(ctx context.Context) {
	raw, ok := s.read(ctx, storage.KeyMode)
	if !ok {
		return
	}
	m, err := model.ParseMode(raw)
	if err != nil {
		s.log.Warn("invalid stored mode, using default", zap.String("raw", raw))
		return
	}
	s.mode = m
}

func (s *Store) loadPoints(ctx context.Context) {
	raw, ok := s.read(ctx, storage.KeyPoints)
	if !ok {
		return
	}
	v, err := model.ParsePoints(raw)
	if err != nil {
		s.log.Warn("invalid stored points, using zero", zap.String("raw", raw), zap.Error(err))
		return
	}
	s.points = v
}

func (s *Store) loadStats(ctx context.Context) {
	raw, ok := s.read(ctx, storage.KeyStats)
	if !ok {
		return
	}
	var decoded model.DailyStats
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		s.log.Warn("malformed stats, using empty map", zap.Error(err))
		return
	}
	stats, dropped := decoded.Sanitize()
	if dropped > 0 {
		s.log.Warn("dropped invalid stat entries", zap.Int("dropped", dropped))
	}
	s.stats = stats
}

func (s *Store) persist(ctx context.Context, key, value string) {
	if err := s.kv.Set(ctx, key, value); err != nil {
		s.lastPersistErr = err
		s.log.Error("persist failed", zap.String("key", key), zap.Error(err))
		return
	}
	s.lastPersistErr = nil
}

func (s *Store) persistJSON(ctx context.Context, key string, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		s.lastPersistErr = err
		s.log.Error("encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	s.persist(ctx, key, string(payload))
}

func (s *Store) saveTasks(ctx context.Context)  { s.persistJSON(ctx, storage.KeyTasks, s.tasks) }
func (s *Store) saveStats(ctx context.Context)  { s.persistJSON(ctx, storage.KeyStats, s.stats) }
func (s *Store) saveMode(ctx context.Context)   { s.persist(ctx, storage.KeyMode, string(s.mode)) }
func (s *Store) savePoints(ctx context.Context) { s.persist(ctx, storage.KeyPoints, strconv.Itoa(s.points)) }

// LastPersistError is the error of the most recent failed write, cleared by
// the next successful one.
func (s *Store) LastPersistError() error { return s.lastPersistErr }

func (s *Store) Tasks() []model.Task {
	return append([]model.Task(nil), s.tasks...)
}

func (s *Store) Task(id string) (model.Task, bool) {
	i := model.FindTask(s.tasks, id)
	if i < 0 {
		return model.Task{}, false
	}
	return s.tasks[i], true
}

func (s *Store) Mode() model.Mode { return s.mode }
func (s *Store) Points() int      { return s.points }

func (s *Store) Stats() model.DailyStats { return s.stats.Clone() }

func (s *Store) TodayCount() int {
	return s.stats[model.DayKey(s.clock.Now())]
}

func (s *Store) Chat() []model.ChatMessage {
	return append([]model.ChatMessage(nil), s.chat...)
}

type Summary struct {
	Total int
	Done  int
}

func (s *Store) Summary() Summary {
	return Summary{Total: len(s.tasks), Done: model.CountDone(s.tasks)}
}

func (s *Store) greeting() model.ChatMessage {
	return model.ChatMessage{ID: s.newID(), From: model.SenderMentor, Text: model.Greeting(s.userName)}
}

// AppendChat adds a message to the transcript and returns it.
func (s *Store) AppendChat(from model.Sender, text string) model.ChatMessage {
	msg := model.ChatMessage{ID: s.newID(), From: from, Text: text}
	s.chat = append(s.chat, msg)
	return msg
}

// SetMode switches the active mode. Entering clean mode without a valid
// selection selects the first pending task.
func (s *Store) SetMode(ctx context.Context, m model.Mode) error {
	if !m.IsValid() {
		return model.ErrInvalidMode
	}
	s.mode = m
	s.saveMode(ctx)
	if m == model.ModeClean {
		if _, ok := s.SelectedTask(); !ok {
			if first, found := model.FirstPending(s.tasks, ""); found {
				s.selectedID = first.ID
			}
		}
	}
	return nil
}

// Reset clears the KV store and restores in-memory defaults. The mode and
// the selection are left as they are.
func (s *Store) Reset(ctx context.Context) error {
	err := s.kv.Clear(ctx)
	if err != nil {
		s.lastPersistErr = err
		s.log.Error("clear store failed", zap.Error(err))
	} else {
		s.lastPersistErr = nil
	}
	s.tasks = []model.Task{}
	s.points = 0
	s.stats = model.DailyStats{}
	s.chat = []model.ChatMessage{s.greeting()}
	s.log.Info("prototype reset")
	return err
}
