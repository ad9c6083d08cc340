// Package recommend turns a mood into a list of catalog tracks.
package recommend

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/zmb3/spotify/v2"
	"golang.org/x/oauth2"

	"github.com/justestif/go-spotify-mood-finder/internal/mood"
	spotifyclient "github.com/justestif/go-spotify-mood-finder/internal/spotify"
)

// SearchLimit is the number of tracks requested per search.
const SearchLimit = 12

// Source identifies which classifier produced a result.
type Source string

const (
	SourceText  Source = "text"
	SourceImage Source = "image"
)

// Catalog is the external music search service.
type Catalog interface {
	Authenticate(ctx context.Context) (*oauth2.Token, error)
	Search(ctx context.Context, token *oauth2.Token, query string, limit int) ([]spotify.FullTrack, error)
}

// Entry describes one completed request for the history recorder.
type Entry struct {
	Source     Source
	Input      string
	Label      string
	Query      string
	TrackCount int
	CreatedAt  time.Time
}

// Recorder stores request history.
type Recorder interface {
	Record(ctx context.Context, e Entry) error
}

// Result is the response to a successful request. Tracks is never nil;
// an empty slice means the catalog had no matches.
type Result struct {
	Moods  []mood.Profile `json:"moods"`
	Tracks []Track        `json:"tracks"`
}

// Service runs the classify, query, search, format cycle.
// It holds no per-request state and is safe for concurrent use.
type Service struct {
	catalog  Catalog
	images   *mood.ImageClassifier
	recorder Recorder
	logger   *slog.Logger
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithRecorder stores an Entry after each successful request.
func WithRecorder(r Recorder) Option {
	return func(s *Service) {
		s.recorder = r
	}
}

// WithImageClassifier replaces the default image classifier.
func WithImageClassifier(c *mood.ImageClassifier) Option {
	return func(s *Service) {
		if c != nil {
			s.images = c
		}
	}
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewService creates a service backed by the given catalog.
func NewService(catalog Catalog, opts ...Option) *Service {
	s := &Service{
		catalog: catalog,
		logger:  slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.images == nil {
		s.images = mood.NewImageClassifier(nil)
	}
	return s
}

// AnalyzeMood classifies a free-text mood and searches for matching tracks.
func (s *Service) AnalyzeMood(ctx context.Context, text string) (Result, error) {
	if strings.TrimSpace(text) == "" {
		return Result{}, validationError("Mood is required")
	}

	profile := mood.ClassifyText(text)
	return s.recommend(ctx, SourceText, text, profile, BuildQuery(profile, text))
}

// AnalyzeImage classifies image context and searches for matching tracks.
// The profile label stands in for user text in the query.
func (s *Service) AnalyzeImage(ctx context.Context, signals *mood.ImageSignals) (Result, error) {
	if err := validateSignals(signals); err != nil {
		return Result{}, err
	}

	profile := s.images.Classify(*signals)
	return s.recommend(ctx, SourceImage, signals.Filename, profile, BuildQuery(profile, profile.Label))
}

func validateSignals(s *mood.ImageSignals) error {
	switch {
	case s == nil:
		return validationError("Image is required")
	case strings.TrimSpace(s.Filename) == "":
		return validationError("Image filename is required")
	case s.SizeBytes < 0:
		return validationError("Image size must not be negative")
	case s.Hour < 0 || s.Hour > 23:
		return validationError("Hour must be between 0 and 23")
	case s.Weekday < time.Sunday || s.Weekday > time.Saturday:
		return validationError("Weekday must be between 0 and 6")
	}
	return nil
}

func (s *Service) recommend(ctx context.Context, source Source, input string, profile mood.Profile, query string) (Result, error) {
	token, err := s.catalog.Authenticate(ctx)
	if err != nil {
		return Result{}, s.catalogError("authenticate", err)
	}

	records, err := s.catalog.Search(ctx, token, query, SearchLimit)
	if err != nil {
		return Result{}, s.catalogError("search", err)
	}

	result := Result{
		Moods:  []mood.Profile{profile},
		Tracks: FormatTracks(records),
	}

	s.logger.Info("mood analyzed",
		"source", source,
		"label", profile.Label,
		"energy", profile.Energy.String(),
		"tracks", len(result.Tracks),
	)

	if s.recorder != nil {
		entry := Entry{
			Source:     source,
			Input:      input,
			Label:      profile.Label,
			Query:      query,
			TrackCount: len(result.Tracks),
			CreatedAt:  s.now(),
		}
		if err := s.recorder.Record(ctx, entry); err != nil {
			s.logger.Warn("recording history failed", "error", err)
		}
	}

	return result, nil
}

// catalogError maps a catalog failure onto the error taxonomy.
// Credential problems are configuration errors, everything else is upstream.
func (s *Service) catalogError(op string, err error) error {
	if errors.Is(err, spotifyclient.ErrMissingCredentials) || errors.Is(err, spotifyclient.ErrInvalidCredentials) {
		s.logger.Error("catalog credentials unusable", "op", op, "error", err)
		return &Error{Kind: KindConfiguration, Message: ConfigurationMessage, Err: err}
	}

	s.logger.Error("catalog request failed", "op", op, "error", err)
	return &Error{Kind: KindUpstream, Message: "catalog " + op + " failed", Err: err}
}
