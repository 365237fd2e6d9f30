// Package mockrepo serves a fake GitHub repository for tests.
//
// It answers the two endpoints remote.Client uses: the contents API
// (GET /repos/{owner}/{repo}/contents/{path}) and the raw content host
// (GET /raw/{owner}/{repo}/{branch}/{path}).
//
//	s := mockrepo.New(mockrepo.WithFile("docs/guide.md", "# Guide"))
//	defer s.Close()
//	client := remote.NewClient(remote.Options{
//		Owner: mockrepo.Owner, Name: mockrepo.Repo,
//		APIURL: s.URL, RawURL: s.RawURL(),
//	})
package mockrepo

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
)

const (
	Owner  = "octo"
	Repo   = "demo"
	Branch = "main"
)

// Server wraps an httptest.Server holding an in-memory repository.
type Server struct {
	*httptest.Server

	listCount  int32
	fetchCount int32

	mu       sync.Mutex
	files    map[string]string
	dirs     map[string]bool
	failures map[string]int
	delay    chan struct{}
	token    string
	hook     func(r *http.Request)
}

// Option configures a mock server.
type Option func(*Server)

// WithFile adds a file; parent directories are created implicitly.
func WithFile(filePath, content string) Option {
	return func(s *Server) {
		filePath = strings.Trim(filePath, "/")
		s.files[filePath] = content
		s.addParents(filePath)
	}
}

// WithDir adds an empty directory.
func WithDir(dirPath string) Option {
	return func(s *Server) {
		dirPath = strings.Trim(dirPath, "/")
		s.dirs[dirPath] = true
		s.addParents(dirPath)
	}
}

// WithFailure answers requests for path (a directory listing or a file
// fetch; "" is the root listing) with status code.
func WithFailure(failPath string, code int) Option {
	return func(s *Server) {
		s.failures[strings.Trim(failPath, "/")] = code
	}
}

// WithToken requires "Authorization: Bearer <token>" on every request.
func WithToken(token string) Option {
	return func(s *Server) {
		s.token = token
	}
}

// WithRequestHook calls hook on every request before routing.
func WithRequestHook(hook func(r *http.Request)) Option {
	return func(s *Server) {
		s.hook = hook
	}
}

// WithGate holds every raw fetch until gate is closed.
func WithGate(gate chan struct{}) Option {
	return func(s *Server) {
		s.delay = gate
	}
}

// New starts a mock repository server.
func New(opts ...Option) *Server {
	s := &Server{
		files:    make(map[string]string),
		dirs:     map[string]bool{"": true},
		failures: make(map[string]int),
	}
	for _, opt := range opts {
		opt(s)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/{owner}/{repo}/contents", s.handleList)
	mux.HandleFunc("GET /repos/{owner}/{repo}/contents/{path...}", s.handleList)
	mux.HandleFunc("GET /raw/{owner}/{repo}/{branch}/{path...}", s.handleRaw)

	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.hook != nil {
			s.hook(r)
		}
		if s.token != "" && r.Header.Get("Authorization") != "Bearer "+s.token {
			http.Error(w, `{"message":"Bad credentials"}`, http.StatusUnauthorized)
			return
		}
		mux.ServeHTTP(w, r)
	}))
	return s
}

// RawURL is the base URL for raw content.
func (s *Server) RawURL() string {
	return s.URL + "/raw"
}

// ListCount returns the number of listing requests served.
func (s *Server) ListCount() int {
	return int(atomic.LoadInt32(&s.listCount))
}

// FetchCount returns the number of raw content requests served.
func (s *Server) FetchCount() int {
	return int(atomic.LoadInt32(&s.fetchCount))
}

// SetFailure changes the failure status for a path at runtime; 0 clears it.
func (s *Server) SetFailure(failPath string, code int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if code == 0 {
		delete(s.failures, strings.Trim(failPath, "/"))
		return
	}
	s.failures[strings.Trim(failPath, "/")] = code
}

func (s *Server) addParents(p string) {
	for dir := path.Dir(p); dir != "." && dir != "/"; dir = path.Dir(dir) {
		s.dirs[dir] = true
	}
}

func (s *Server) failure(p string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failures[p]
}

type item struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Type string `json:"type"`
	URL  string `json:"url"`
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	atomic.AddInt32(&s.listCount, 1)

	dir := strings.Trim(r.PathValue("path"), "/")
	if code := s.failure(dir); code != 0 {
		http.Error(w, `{"message":"mock failure"}`, code)
		return
	}

	s.mu.Lock()
	_, isDir := s.dirs[dir]
	s.mu.Unlock()
	if !isDir {
		http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
		return
	}

	items := s.children(dir, r)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(items)
}

func (s *Server) children(dir string, r *http.Request) []item {
	s.mu.Lock()
	defer s.mu.Unlock()

	ref := r.URL.Query().Get("ref")
	base := s.URL + "/repos/" + r.PathValue("owner") + "/" + r.PathValue("repo") + "/contents/"

	items := []item{}
	add := func(p, kind string) {
		if p == "" || path.Dir(p) != orDot(dir) {
			return
		}
		items = append(items, item{
			Name: path.Base(p),
			Path: p,
			Type: kind,
			URL:  base + p + "?ref=" + ref,
		})
	}
	for p := range s.dirs {
		add(p, "dir")
	}
	for p := range s.files {
		add(p, "file")
	}

	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items
}

func orDot(dir string) string {
	if dir == "" {
		return "."
	}
	return dir
}

func (s *Server) handleRaw(w http.ResponseWriter, r *http.Request) {
	atomic.AddInt32(&s.fetchCount, 1)

	if s.delay != nil {
		select {
		case <-s.delay:
		case <-r.Context().Done():
			return
		}
	}

	p := strings.Trim(r.PathValue("path"), "/")
	if code := s.failure(p); code != 0 {
		http.Error(w, "mock failure", code)
		return
	}

	s.mu.Lock()
	content, ok := s.files[p]
	s.mu.Unlock()
	if !ok {
		http.Error(w, "404: Not Found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(content))
}
