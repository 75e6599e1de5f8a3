package catalog

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/litescript/ls-starfield/internal/logging"
	"github.com/litescript/ls-starfield/internal/star"
)

const (
	// DefaultTimeout for catalog HTTP requests.
	DefaultTimeout = 30 * time.Second

	// DefaultRetryBudget is how many times a failed fetch or parse is
	// retried before the loader turns terminal.
	DefaultRetryBudget = 2
)

// Step is the loader's closed step set: Init, Ok or Fail.
type Step interface {
	step()
}

// StepInit means no metadata has been loaded yet.
type StepInit struct{}

// StepOk means metadata is loaded and zero or more bands are merged.
type StepOk struct {
	Metadata Metadata
}

// StepFail is terminal: no further progress without a caller-driven reset.
// Metadata is the last known metadata, if any; Err the escalated failure.
type StepFail struct {
	Metadata *Metadata
	Err      error
}

func (StepInit) step() {}
func (StepOk) step()   {}
func (StepFail) step() {}

// State is the loader state, passed by value and returned: Advance never
// mutates its input, so callers own the serialization discipline and
// readers may keep using a stale snapshot while the next Advance runs.
type State struct {
	Step  Step
	Stars star.Catalog

	// LoadedVmag is the faintest magnitude threshold fully covered by
	// merged bands, or nil before any band has loaded.
	LoadedVmag *float64
}

// NewState returns the initial loader state.
func NewState() State {
	return State{Step: StepInit{}, Stars: star.Catalog{}}
}

// Failed reports whether the state is terminal.
func (s State) Failed() bool {
	_, failed := s.Step.(StepFail)
	return failed
}

// Notify receives an incremental state update: after the metadata loads and
// after every individual band merge, so renderers can deepen progressively
// before the full requested depth is reached.
type Notify func(State)

// Loader fetches catalog metadata and magnitude bands over HTTP.
type Loader struct {
	client      *http.Client
	timeout     time.Duration
	retryBudget int
	notify      Notify
	log         *logging.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(l *Loader) { l.client = client }
}

// WithTimeout sets the HTTP request timeout.
func WithTimeout(d time.Duration) Option {
	return func(l *Loader) { l.timeout = d }
}

// WithRetryBudget sets how many retries a failing fetch gets before the
// loader becomes terminal. A budget of n means n+1 attempts in total.
func WithRetryBudget(n int) Option {
	return func(l *Loader) { l.retryBudget = n }
}

// WithNotify sets the incremental-update callback.
func WithNotify(fn Notify) Option {
	return func(l *Loader) { l.notify = fn }
}

// WithLogger sets the loader's logger.
func WithLogger(log *logging.Logger) Option {
	return func(l *Loader) { l.log = log }
}

// NewLoader creates a catalog loader.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		timeout:     DefaultTimeout,
		retryBudget: DefaultRetryBudget,
		log:         logging.Discard(),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.client == nil {
		l.client = &http.Client{Timeout: l.timeout}
	}
	return l
}

// Advance drives the loader toward requiredVmag depth for the given source
// and returns the new state. It is asynchronous only in the sense that its
// fetches block; calls against the same state value must be serialized by
// the caller or band merges may be lost.
//
// Behavior, in order:
//   - a terminal Fail state is returned unchanged;
//   - a state already covering requiredVmag is returned unchanged, with no
//     network activity;
//   - metadata bound to a different source resets the state, discarding the
//     catalog, before re-fetching;
//   - from Init, metadata is fetched and parsed; from Ok, the not-yet-
//     covered bands relevant to requiredVmag are fetched ascending by upper
//     bound and merged one at a time, each merge emitting a notification;
//   - fetch and parse failures share one failure counter; when it exceeds
//     the retry budget the state turns Fail, a final notification is
//     emitted and the error is returned. Loaded stars are kept.
func (l *Loader) Advance(ctx context.Context, st State, source string, requiredVmag float64) (State, error) {
	if st.Failed() {
		return st, nil
	}

	if st.LoadedVmag != nil && *st.LoadedVmag > requiredVmag {
		return st, nil
	}

	if ok, isOk := st.Step.(StepOk); isOk && ok.Metadata.Source != source {
		l.log.Debug("catalog source changed %s -> %s, resetting", ok.Metadata.Source, source)
		st = NewState()
	}

	failures := 0

	if _, isInit := st.Step.(StepInit); isInit {
		for {
			meta, err := l.fetchMetadata(ctx, source)
			if err == nil {
				l.log.Debug("metadata loaded: %d bands, vmag %.1f..%.1f",
					len(meta.Bands), meta.VmagRange[0], meta.VmagRange[1])
				st.Step = StepOk{Metadata: meta}
				l.emit(st)
				break
			}
			failures++
			if failures > l.retryBudget {
				l.log.Error("metadata fetch failed permanently: %v", err)
				st.Step = StepFail{Err: err}
				l.emit(st)
				return st, err
			}
			l.log.Debug("metadata fetch failed (attempt %d): %v", failures, err)
		}
	}

	meta := st.Step.(StepOk).Metadata
	for _, band := range meta.RequiredBands(st.LoadedVmag, requiredVmag) {
		for {
			stars, err := l.fetchBand(ctx, meta, band)
			if err == nil {
				st.Stars = st.Stars.Merge(stars)
				upper := band.Upper
				st.LoadedVmag = &upper
				l.log.Debug("band %s merged: %d stars, depth now %.1f", band.File, len(stars), upper)
				l.emit(st)
				break
			}
			failures++
			if failures > l.retryBudget {
				l.log.Error("band %s fetch failed permanently: %v", band.File, err)
				failMeta := meta
				st.Step = StepFail{Metadata: &failMeta, Err: err}
				l.emit(st)
				return st, err
			}
			l.log.Debug("band %s fetch failed (attempt %d): %v", band.File, failures, err)
		}
	}

	return st, nil
}

func (l *Loader) emit(st State) {
	if l.notify != nil {
		l.notify(st)
	}
}

func (l *Loader) fetchMetadata(ctx context.Context, source string) (Metadata, error) {
	body, err := l.fetchRaw(ctx, source)
	if err != nil {
		return Metadata{}, err
	}
	return ParseMetadata(source, body)
}

func (l *Loader) fetchBand(ctx context.Context, meta Metadata, band Band) ([]star.Star, error) {
	u, err := meta.BandURL(band)
	if err != nil {
		return nil, &ParseError{URL: meta.Source, Err: err}
	}
	body, err := l.fetchRaw(ctx, u)
	if err != nil {
		return nil, err
	}
	return ParseBand(u, meta.PMEpoch, body)
}

func (l *Loader) fetchRaw(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}

	req.Header.Set("User-Agent", "ls-starfield/1.0 (Star Atlas)")
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &FetchError{URL: url, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	return body, nil
}
