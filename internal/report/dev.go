package report

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/leapstack-labs/plotline/internal/plots"
)

// debounceDelay coalesces bursts of file system events into one rebuild.
const debounceDelay = 100 * time.Millisecond

// DevServer serves the rendered report over HTTP, rebuilding it whenever
// a watched metric file or template changes and pushing a reload to
// connected browsers over SSE.
type DevServer struct {
	service *plots.Service
	root    string
	targets []string
	revs    []string
	props   map[string]any
	watch   []string
	port    int
	logger  *slog.Logger

	mu          sync.RWMutex
	currentHTML []byte

	clientsMu sync.Mutex
	clients   map[chan struct{}]struct{}
}

// DevOptions configures a DevServer.
type DevOptions struct {
	// Service renders the plots.
	Service *plots.Service
	// Root is the project root; relative targets resolve against it.
	Root string
	// Targets are the metric files to render, in page order.
	Targets []string
	// Revs are the revisions to aggregate, empty means workspace only.
	Revs []string
	// Props are explicit rendering options applied to every target.
	Props map[string]any
	// ExtraWatch lists additional directories to watch, e.g. the
	// project templates directory.
	ExtraWatch []string
	Port       int
	Logger     *slog.Logger
}

// NewDevServer creates a dev server. It does not touch the filesystem
// until Serve.
func NewDevServer(opts DevOptions) *DevServer {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &DevServer{
		service: opts.Service,
		root:    opts.Root,
		targets: opts.Targets,
		revs:    opts.Revs,
		props:   opts.Props,
		watch:   opts.ExtraWatch,
		port:    opts.Port,
		logger:  logger,
		clients: make(map[chan struct{}]struct{}),
	}
}

// Serve builds the report, starts watching and serves until ctx is done.
func (s *DevServer) Serve(ctx context.Context) error {
	if err := s.rebuild(ctx); err != nil {
		return fmt.Errorf("initial render failed: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	for _, dir := range s.watchDirs() {
		if err := watcher.Add(dir); err != nil {
			s.logger.Warn("cannot watch directory", "dir", dir, "error", err)
		}
	}

	go s.watchLoop(ctx, watcher)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/", s.handleIndex)
	r.Get("/__reload", s.handleSSE)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	s.logger.Info(fmt.Sprintf("serving plots at http://localhost:%d", s.port))
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// watchDirs collects the directories holding watched files: each
// target's parent plus any extra watch directories that exist.
func (s *DevServer) watchDirs() []string {
	seen := map[string]struct{}{}
	var dirs []string
	add := func(dir string) {
		if _, ok := seen[dir]; ok {
			return
		}
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			return
		}
		seen[dir] = struct{}{}
		dirs = append(dirs, dir)
	}

	for _, target := range s.targets {
		add(filepath.Dir(filepath.Join(s.root, target)))
	}
	for _, dir := range s.watch {
		add(dir)
	}
	return dirs
}

func (s *DevServer) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	var debounce *time.Timer

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if !s.relevant(event.Name) {
				continue
			}

			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(debounceDelay, func() {
				s.logger.Info("change detected", "file", filepath.Base(event.Name))
				if err := s.rebuild(ctx); err != nil {
					s.logger.Error("rebuild failed", "error", err)
					return
				}
				s.notifyClients()
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			s.logger.Warn("watcher error", "error", err)
		}
	}
}

// relevant reports whether a changed file affects the report: one of the
// rendered targets, or anything inside an extra watch directory.
func (s *DevServer) relevant(name string) bool {
	for _, target := range s.targets {
		if filepath.Clean(name) == filepath.Clean(filepath.Join(s.root, target)) {
			return true
		}
	}
	for _, dir := range s.watch {
		if rel, err := filepath.Rel(dir, name); err == nil && filepath.IsLocal(rel) {
			return true
		}
	}
	return false
}

// rebuild renders all targets and swaps in the new page.
func (s *DevServer) rebuild(ctx context.Context) error {
	specs, err := s.service.Show(ctx, s.targets, s.revs, s.props)
	if err != nil {
		return err
	}

	page := Page{Title: "plotline", LiveReload: true}
	for _, target := range s.targets {
		page.Plots = append(page.Plots, Plot{Name: target, Spec: specs[target]})
	}

	var buf bytes.Buffer
	if err := Render(&buf, page); err != nil {
		return err
	}

	s.mu.Lock()
	s.currentHTML = buf.Bytes()
	s.mu.Unlock()
	return nil
}

func (s *DevServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	html := s.currentHTML
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	_, _ = w.Write(html)
}

// handleSSE keeps a client connection open and pushes reload events.
func (s *DevServer) handleSSE(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "SSE not supported", http.StatusInternalServerError)
		return
	}

	ch := make(chan struct{}, 1)
	s.clientsMu.Lock()
	s.clients[ch] = struct{}{}
	s.clientsMu.Unlock()

	defer func() {
		s.clientsMu.Lock()
		delete(s.clients, ch)
		s.clientsMu.Unlock()
		close(ch)
	}()

	_, _ = fmt.Fprintf(w, "data: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ch:
			_, _ = fmt.Fprintf(w, "data: reload\n\n")
			flusher.Flush()
		}
	}
}

func (s *DevServer) notifyClients() {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()

	for ch := range s.clients {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
