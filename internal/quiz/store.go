package quiz

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// ErrNoSource means only the built-in questions are available.
var ErrNoSource = errors.New("no question source configured")

// DefaultFetchTimeout bounds a remote question fetch.
const DefaultFetchTimeout = 5 * time.Second

// maxSourceBytes caps how much of a question source is read.
const maxSourceBytes = 4 << 20

// Store loads the question set from one configured source.
type Store struct {
	// Source is an http(s) URL or a filesystem path. Empty means built-in only.
	Source       string
	Client       *http.Client
	FetchTimeout time.Duration
}

// LoadResult describes where the active question set came from.
type LoadResult struct {
	Questions []Question
	Source    string
	Fallback  bool
	Err       error
}

// Load fetches the configured source and falls back to the built-in set on
// any failure. It never returns an empty set.
func (s *Store) Load(ctx context.Context) LoadResult {
	questions, err := s.Fetch(ctx)
	if err == nil {
		log.Info().Str("source", s.Source).Int("questions", len(questions)).Msg("loaded questions")
		return LoadResult{Questions: questions, Source: s.Source}
	}
	log.Warn().Err(err).Str("source", s.Source).Msg("question source unusable, using built-in questions")
	return LoadResult{
		Questions: MustBuiltin(),
		Source:    "builtin",
		Fallback:  true,
		Err:       err,
	}
}

// Fetch reads and validates the configured source without falling back.
func (s *Store) Fetch(ctx context.Context) ([]Question, error) {
	if s.Source == "" {
		return nil, ErrNoSource
	}
	var (
		data []byte
		err  error
	)
	if isRemote(s.Source) {
		data, err = s.fetchRemote(ctx)
	} else {
		data, err = readLimited(s.Source)
	}
	if err != nil {
		return nil, err
	}
	return ParseQuestions(data)
}

func isRemote(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func (s *Store) fetchRemote(ctx context.Context) ([]byte, error) {
	timeout := s.FetchTimeout
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.Source, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", s.Source, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", s.Source, resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxSourceBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.Source, err)
	}
	return data, nil
}

func readLimited(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxSourceBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
