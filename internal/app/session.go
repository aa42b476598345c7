package app

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dshills/spellscan/internal/config"
	"github.com/dshills/spellscan/internal/engine/buffer"
	"github.com/dshills/spellscan/internal/logging"
	"github.com/dshills/spellscan/internal/scheduler"
	"github.com/dshills/spellscan/internal/spell"
	"github.com/dshills/spellscan/internal/spell/dictionary"
)

// waitPollInterval is how often Wait looks for idle adapters.
const waitPollInterval = 10 * time.Millisecond

// Options configures a Session.
type Options struct {
	// Spell holds the adapter settings. The zero value is replaced by
	// config.Default().Spell.
	Spell config.SpellConfig

	// Checker is the initial checker. It may be nil.
	Checker spell.Checker

	// Logger defaults to a null logger.
	Logger *logging.Logger
}

// Session checks a set of documents. Every adapter and buffer edit runs on
// the session's loop goroutine; the exported methods may be called from any
// other goroutine.
type Session struct {
	mu     sync.Mutex
	docs   map[string]*Document
	order  []*Document
	closed bool

	loop    *scheduler.Loop
	cancel  context.CancelFunc
	done    chan struct{}
	watcher *dictionary.Watcher

	// Owned by the loop goroutine.
	checker spell.Checker

	spell config.SpellConfig
	log   *logging.Logger
}

// NewSession creates a session and starts its loop.
func NewSession(opts Options) *Session {
	if opts.Spell == (config.SpellConfig{}) {
		opts.Spell = config.Default().Spell
	}
	log := opts.Logger
	if log == nil {
		log = logging.Null()
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		docs:    make(map[string]*Document),
		loop:    scheduler.NewLoop(),
		cancel:  cancel,
		done:    make(chan struct{}),
		checker: opts.Checker,
		spell:   opts.Spell,
		log:     log.WithComponent("session"),
	}

	go func() {
		defer close(s.done)
		_ = s.loop.Run(ctx)
	}()
	return s
}

// Open reads the file at path into a new document and starts checking it.
func (s *Session) Open(path string) (*Document, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, NewOperationError("open", path, err)
	}
	f, err := os.Open(abs)
	if err != nil {
		return nil, NewOperationError("open", path, err)
	}
	defer f.Close()

	buf, err := buffer.NewBufferFromReader(f)
	if err != nil {
		return nil, NewOperationError("open", path, err)
	}
	return s.add(abs, buf)
}

// OpenString creates a document named name holding text.
func (s *Session) OpenString(name, text string) (*Document, error) {
	return s.add(name, buffer.NewBufferFromString(text))
}

func (s *Session) add(key string, buf *buffer.Buffer) (*Document, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrSessionClosed
	}
	if _, ok := s.docs[key]; ok {
		s.mu.Unlock()
		return nil, NewOperationError("open", key, ErrDocumentAlreadyOpen)
	}
	doc := newDocument(key, buf)
	s.docs[key] = doc
	s.order = append(s.order, doc)
	s.mu.Unlock()

	var err error
	callErr := s.loop.Call(context.Background(), func() {
		doc.adapter, err = spell.NewAdapter(buf, s.checker, s.loop, s.adapterOptions(doc)...)
	})
	if err == nil {
		err = callErr
	}
	if err != nil {
		s.forget(doc)
		return nil, NewOperationError("open", key, err)
	}
	s.log.Debug("opened %s (%d bytes)", key, buf.Len())
	return doc, nil
}

func (s *Session) adapterOptions(doc *Document) []spell.Option {
	opts := []spell.Option{
		spell.WithBudget(s.spell.Budget),
		spell.WithEnabled(s.spell.Enabled),
		spell.WithLogger(s.log.WithComponent("spell").WithField("doc", doc.Name)),
	}
	if s.spell.Delay > 0 {
		opts = append(opts, spell.WithDelay(s.spell.Delay))
	}
	if s.spell.ExclusionTag != "" {
		opts = append(opts, spell.WithExclusionTagName(s.spell.ExclusionTag))
	}
	return opts
}

// Close stops checking doc and releases its buffer.
func (s *Session) Close(doc *Document) error {
	if !s.forget(doc) {
		return ErrDocumentNotFound
	}
	return s.loop.Call(context.Background(), func() {
		if doc.adapter != nil {
			doc.adapter.Close()
		}
		doc.buf.Close()
	})
}

// forget removes doc from the session and reports whether it was there.
func (s *Session) forget(doc *Document) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.docs[doc.Path] != doc {
		return false
	}
	delete(s.docs, doc.Path)
	for i, d := range s.order {
		if d == doc {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Documents returns the open documents in the order they were opened.
func (s *Session) Documents() []*Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*Document(nil), s.order...)
}

// Edit runs fn with doc's buffer on the loop, so its changes reach the
// adapter in order.
func (s *Session) Edit(doc *Document, fn func(*buffer.Buffer) error) error {
	var err error
	if callErr := s.loop.Call(context.Background(), func() {
		err = fn(doc.buf)
	}); callErr != nil {
		return callErr
	}
	return err
}

// SetChecker replaces the checker of every document. A replaced checker
// that implements io.Closer is closed.
func (s *Session) SetChecker(checker spell.Checker) error {
	return s.loop.Call(context.Background(), func() {
		s.setChecker(checker)
	})
}

// setChecker runs on the loop.
func (s *Session) setChecker(checker spell.Checker) {
	old := s.checker
	s.checker = checker
	for _, doc := range s.Documents() {
		if doc.adapter != nil {
			doc.adapter.SetChecker(checker)
		}
	}
	closeReplaced(old, checker)
}

func closeReplaced(old, replacement spell.Checker) {
	oc, ok := old.(io.Closer)
	if !ok {
		return
	}
	if nc, ok := replacement.(io.Closer); ok && nc == oc {
		return
	}
	_ = oc.Close()
}

// SetEnabled turns checking on or off for every document.
func (s *Session) SetEnabled(enabled bool) error {
	return s.loop.Call(context.Background(), func() {
		for _, doc := range s.Documents() {
			if doc.adapter != nil {
				doc.adapter.SetEnabled(enabled)
			}
		}
	})
}

// Wait blocks until no document has checking pending or ctx is done.
func (s *Session) Wait(ctx context.Context) error {
	ticker := time.NewTicker(waitPollInterval)
	defer ticker.Stop()

	for {
		idle := true
		err := s.loop.Call(ctx, func() {
			for _, doc := range s.Documents() {
				if doc.adapter != nil && doc.adapter.State() != spell.StateIdle {
					idle = false
					return
				}
			}
		})
		if err != nil {
			return err
		}
		if idle {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Misspellings returns the words currently decorated in doc.
func (s *Session) Misspellings(doc *Document) ([]Misspelling, error) {
	var out []Misspelling
	err := s.loop.Call(context.Background(), func() {
		out = doc.misspellings()
	})
	return out, err
}

// Stats returns the work done across all open documents.
func (s *Session) Stats() spell.Stats {
	var total spell.Stats
	_ = s.loop.Call(context.Background(), func() {
		for _, doc := range s.Documents() {
			if doc.adapter == nil {
				continue
			}
			st := doc.adapter.Stats()
			total.Ticks += st.Ticks
			total.Words += st.Words
			total.Misspelled += st.Misspelled
		}
	})
	return total
}

// WatchDictionary rebuilds the checker whenever the configured dictionary
// files or Lua script change, and installs it in every document.
func (s *Session) WatchDictionary(opts ...dictionary.WatcherOption) error {
	cfg := s.spell
	if cfg.Dictionary == "" && cfg.PersonalDictionary == "" {
		return NewOperationError("watch", "", dictionary.ErrNoSources)
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	if s.watcher != nil {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	log := s.log.WithComponent("dictionary")
	opts = append([]dictionary.WatcherOption{
		dictionary.WithWatcherLogger(log),
	}, opts...)

	w, err := dictionary.NewWatcher(func() (*dictionary.Dictionary, error) {
		return dictionary.Open(cfg.Dictionary, cfg.PersonalDictionary)
	}, func(d *dictionary.Dictionary) {
		checker, err := withScript(d, cfg.LuaChecker, log)
		if err != nil {
			log.Warn("rebuilding checker: %v", err)
			return
		}
		s.postChecker(checker)
	}, opts...)
	if err != nil {
		return NewOperationError("watch", cfg.Dictionary, err)
	}

	for _, path := range []string{cfg.Dictionary, cfg.PersonalDictionary, cfg.LuaChecker} {
		if err := w.Watch(path); err != nil {
			_ = w.Close()
			return NewOperationError("watch", path, err)
		}
	}

	s.mu.Lock()
	s.watcher = w
	s.mu.Unlock()
	return nil
}

// postChecker installs checker from outside the loop. Once the loop has
// stopped the checker is closed instead.
func (s *Session) postChecker(checker spell.Checker) {
	if !s.loop.Post(func() { s.setChecker(checker) }) {
		closeReplaced(checker, nil)
	}
}

// Shutdown closes every document, stops the dictionary watcher and the
// loop. It is safe to call more than once.
func (s *Session) Shutdown() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	w := s.watcher
	docs := s.order
	s.docs = make(map[string]*Document)
	s.order = nil
	s.mu.Unlock()

	var errs []error
	if w != nil {
		errs = append(errs, w.Close())
	}
	errs = append(errs, s.loop.Call(context.Background(), func() {
		for _, doc := range docs {
			if doc.adapter != nil {
				doc.adapter.Close()
			}
			doc.buf.Close()
		}
		closeReplaced(s.checker, nil)
		s.checker = nil
	}))

	s.loop.Stop()
	s.cancel()
	<-s.done
	return errors.Join(errs...)
}
