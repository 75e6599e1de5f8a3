// Command ls-starfield is a terminal star atlas backed by a progressively
// loaded Hipparcos catalog.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/litescript/ls-starfield/internal/astro"
	"github.com/litescript/ls-starfield/internal/catalog"
	"github.com/litescript/ls-starfield/internal/logging"
	"github.com/litescript/ls-starfield/internal/pointing"
	"github.com/litescript/ls-starfield/internal/session"
	"github.com/litescript/ls-starfield/internal/star"
	"github.com/litescript/ls-starfield/internal/ui"
	"github.com/litescript/ls-starfield/internal/version"
)

// CLI flags for headless mode
var (
	summaryMode  bool
	snapshotPath string
	eventsMode   bool
)

const (
	defaultCatalog = "https://stars.litescript.net/hp/dat_hp_meta.json"
	defaultDepth   = 4.0
	minDepth       = 0.0
	maxDepth       = 15.0
)

func main() {
	source := flag.String("catalog", defaultCatalog, "Catalog metadata URL")
	lat := flag.Float64("lat", 34.0, "Observer latitude in degrees")
	lon := flag.Float64("lon", -118.2, "Observer longitude in degrees (east positive)")
	depth := flag.Float64("depth", defaultDepth, "Initial magnitude depth")
	target := flag.String("target", "", "Initial target: hip:<id>, radec:<ra>,<dec> or azalt:<az>,<alt>")
	refresh := flag.Duration("refresh", 500*time.Millisecond, "Snapshot refresh interval (e.g., 500ms, 2s)")
	timeOffset := flag.Duration("time-offset", 0, "Shift the observation clock (e.g., -12h)")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.BoolVar(&summaryMode, "summary", false, "Print a visible-star summary instead of TUI")
	flag.StringVar(&snapshotPath, "snapshot-path", "", "Export JSON snapshot to file (use - for stdout)")
	flag.BoolVar(&eventsMode, "events", false, "Show catalog event log")
	flag.Parse()

	if *showVersion {
		fmt.Printf("ls-starfield v%s\n", version.Version)
		return
	}

	if *depth < minDepth {
		*depth = minDepth
	} else if *depth > maxDepth {
		*depth = maxDepth
	}

	logger := logging.New(logging.ParseLevel(*logLevel))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	var clock pointing.Clock = pointing.SystemClock{}
	if *timeOffset != 0 {
		clock = pointing.OffsetClock{Offset: *timeOffset}
	}

	cfg := session.DefaultConfig()
	cfg.Source = *source
	cfg.Frame = pointing.Frame{
		Lat:   astro.Degree(*lat),
		Lon:   astro.Degree(*lon),
		Clock: clock,
	}
	cfg.InitialDepth = *depth
	cfg.Logger = logger
	mgr := session.NewManager(cfg, catalog.WithLogger(logger))

	headless := summaryMode || snapshotPath != "" || eventsMode
	if headless {
		runHeadless(ctx, mgr, *depth, *target, logger)
		return
	}

	model := ui.New(mgr, *depth, *refresh)

	// An initial target needs the catalog for HIP lookups, so resolve it
	// after a blocking first load.
	if *target != "" {
		t, err := parseTarget(*target)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := mgr.Deepen(ctx, *depth); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		snap := mgr.Snapshot()
		q, err := pointing.Orientation(t, snap.Frame, snap.Stars)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		ra, dec := cartesianToRaDec(q.Rotate(astro.Vec3{Z: -1}))
		model = model.WithTarget(astro.RadToDeg(ra), astro.RadToDeg(dec))
	}

	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

// parseTarget converts a -target flag value into a pointing target.
func parseTarget(s string) (pointing.Target, error) {
	kind, rest, found := strings.Cut(s, ":")
	if !found {
		return nil, fmt.Errorf("target %q: want hip:<id>, radec:<ra>,<dec> or azalt:<az>,<alt>", s)
	}

	switch kind {
	case "hip":
		hip, err := strconv.Atoi(rest)
		if err != nil {
			return nil, fmt.Errorf("target %q: bad HIP id: %w", s, err)
		}
		return pointing.StarRef{HIP: hip}, nil

	case "radec":
		a, b, err := parsePair(rest)
		if err != nil {
			return nil, fmt.Errorf("target %q: %w", s, err)
		}
		return pointing.RaDec{
			RA:  astro.DegToRad(astro.Degree(a)),
			Dec: astro.DegToRad(astro.Degree(b)),
		}, nil

	case "azalt":
		a, b, err := parsePair(rest)
		if err != nil {
			return nil, fmt.Errorf("target %q: %w", s, err)
		}
		return pointing.AzAlt{Az: astro.Degree(a), Alt: astro.Degree(b)}, nil

	default:
		return nil, fmt.Errorf("target %q: unknown kind %q", s, kind)
	}
}

func parsePair(s string) (float64, float64, error) {
	first, second, found := strings.Cut(s, ",")
	if !found {
		return 0, 0, fmt.Errorf("want two comma-separated numbers, got %q", s)
	}
	a, err := strconv.ParseFloat(strings.TrimSpace(first), 64)
	if err != nil {
		return 0, 0, err
	}
	b, err := strconv.ParseFloat(strings.TrimSpace(second), 64)
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

// runHeadless loads the catalog once and emits the requested text outputs.
func runHeadless(ctx context.Context, mgr *session.Manager, depth float64, target string, logger *logging.Logger) {
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))

	if err := mgr.Deepen(ctx, depth); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	snap := mgr.Snapshot()

	// Resolve the target, if any, so headless output can report where the
	// camera would be pointing.
	var camRA, camDec astro.Radian
	if target != "" {
		t, err := parseTarget(target)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		q, err := pointing.Orientation(t, snap.Frame, snap.Stars)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		v := q.Rotate(astro.Vec3{Z: -1})
		camRA, camDec = cartesianToRaDec(v)
		logger.Debug("target resolved to RA %.2f Dec %.2f",
			float64(astro.RadToDeg(camRA)), float64(astro.RadToDeg(camDec)))
	}

	if snapshotPath != "" {
		if err := writeSnapshot(snapshotPath, snap, depth, camRA, camDec); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	if summaryMode {
		writeSummary(os.Stdout, snap, depth, isTTY)
	}

	if eventsMode {
		writeEvents(os.Stdout, snap.Events)
	}
}

func cartesianToRaDec(v astro.Vec3) (astro.Radian, astro.Radian) {
	u := v.Normalized()
	ra := math.Atan2(u.Y, u.X)
	if ra < 0 {
		ra += 2 * math.Pi
	}
	return astro.Radian(ra), astro.Radian(math.Asin(u.Z))
}

// writeSummary prints the brightest visible stars as a table. Interactive
// terminals get a truncated table; piped output gets everything.
func writeSummary(w io.Writer, snap session.Snapshot, depth float64, isTTY bool) {
	stars := snap.Stars.Visible(depth)
	sort.Slice(stars, func(i, j int) bool { return stars[i].Vmag < stars[j].Vmag })

	loaded := "none"
	if snap.LoadedVmag != nil {
		loaded = fmt.Sprintf("%.1f", *snap.LoadedVmag)
	}
	fmt.Fprintf(w, "Catalog: %s\n", snap.Source)
	fmt.Fprintf(w, "Loaded depth: %s | requested %.1f | %d stars visible\n\n", loaded, depth, len(stars))

	fmt.Fprintf(w, "%-8s %-12s %9s %9s %6s\n", "HIP", "NAME", "RA", "DEC", "VMAG")
	now := snap.Frame.Now()
	limit := len(stars)
	if isTTY && limit > 25 {
		limit = 25
	}
	for i, s := range stars {
		if i >= limit {
			fmt.Fprintf(w, "... and %d more\n", len(stars)-limit)
			break
		}
		ra, dec := s.RaDecAt(now)
		name := star.NameOf(s.HIP)
		fmt.Fprintf(w, "%-8d %-12s %8.3f° %8.3f° %6.2f\n",
			s.HIP, name,
			float64(astro.RadToDeg(ra)),
			float64(astro.RadToDeg(dec)),
			s.Vmag,
		)
	}
}

func writeEvents(w io.Writer, events []session.Event) {
	if len(events) == 0 {
		fmt.Fprintln(w, "No events")
		return
	}
	for _, e := range events {
		line := fmt.Sprintf("%s  %-16s", e.Timestamp.Format(time.TimeOnly), e.Type)
		if e.Depth != 0 {
			line += fmt.Sprintf(" depth %.1f (%d stars)", e.Depth, e.Stars)
		}
		if e.Source != "" {
			line += " " + e.Source
		}
		if e.Err != "" {
			line += " " + e.Err
		}
		fmt.Fprintln(w, line)
	}
}

// snapshotExport is the JSON shape of -snapshot-path output.
type snapshotExport struct {
	GeneratedAt time.Time       `json:"generated_at"`
	Source      string          `json:"source"`
	LoadedVmag  *float64        `json:"loaded_vmag"`
	Depth       float64         `json:"depth"`
	CameraRA    float64         `json:"camera_ra_deg"`
	CameraDec   float64         `json:"camera_dec_deg"`
	Stars       []starExport    `json:"stars"`
	Events      []session.Event `json:"events,omitempty"`
}

type starExport struct {
	HIP  int     `json:"hip"`
	Name string  `json:"name,omitempty"`
	RA   float64 `json:"ra_deg"`
	Dec  float64 `json:"dec_deg"`
	Vmag float64 `json:"vmag"`
}

func writeSnapshot(path string, snap session.Snapshot, depth float64, camRA, camDec astro.Radian) error {
	now := snap.Frame.Now()
	export := snapshotExport{
		GeneratedAt: now,
		Source:      snap.Source,
		LoadedVmag:  snap.LoadedVmag,
		Depth:       depth,
		CameraRA:    float64(astro.RadToDeg(camRA)),
		CameraDec:   float64(astro.RadToDeg(camDec)),
		Events:      snap.Events,
	}

	stars := snap.Stars.Visible(depth)
	sort.Slice(stars, func(i, j int) bool { return stars[i].HIP < stars[j].HIP })
	for _, s := range stars {
		ra, dec := s.RaDecAt(now)
		export.Stars = append(export.Stars, starExport{
			HIP:  s.HIP,
			Name: star.NameOf(s.HIP),
			RA:   float64(astro.RadToDeg(ra)),
			Dec:  float64(astro.RadToDeg(dec)),
			Vmag: s.Vmag,
		})
	}

	var w io.Writer = os.Stdout
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create snapshot file: %w", err)
		}
		defer f.Close()
		w = f
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(export)
}
