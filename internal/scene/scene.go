// Package scene assembles the full orrery from the procedural generators and
// defines the kinematics the renderer applies to it.
package scene

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/litescript/ls-orrery/internal/catalog"
	"github.com/litescript/ls-orrery/internal/entropy"
	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/pointcloud"
	"github.com/litescript/ls-orrery/internal/procgen"
)

// Config controls scene generation.
type Config struct {
	Seed          uint64
	Workers       int // galaxy workers; <= 0 uses every CPU
	Galaxy        procgen.GalaxyParams
	Stars         procgen.StarFieldParams
	OrbitSegments int
	Logger        *logging.Logger
}

// DefaultConfig returns the standard scene with the given seed.
func DefaultConfig(seed uint64) Config {
	return Config{
		Seed:          seed,
		Galaxy:        procgen.DefaultGalaxyParams(),
		Stars:         procgen.DefaultStarField(),
		OrbitSegments: procgen.DefaultOrbitSegments,
	}
}

// Validate checks the generator parameters that do not depend on the catalog.
func (c Config) Validate() error {
	if err := c.Galaxy.Validate(); err != nil {
		return err
	}
	if c.OrbitSegments < 3 {
		return &procgen.ConfigError{Generator: "orbit", Field: "segments", Value: c.OrbitSegments, Reason: "must be at least 3"}
	}
	return nil
}

func (c Config) logger() *logging.Logger {
	if c.Logger == nil {
		return logging.Discard()
	}
	return c.Logger.With("scene")
}

// BodyScene is the generated geometry of one body.
type BodyScene struct {
	Body   catalog.Body
	Clouds procgen.BodyClouds
	Rings  *pointcloud.Cloud // nil without rings
}

// Layers returns the body's clouds in draw order.
func (b BodyScene) Layers() []*pointcloud.Cloud {
	layers := b.Clouds.Layers()
	if b.Rings != nil {
		layers = append(layers, b.Rings)
	}
	return layers
}

// PointCount is the total number of points in the body's layers.
func (b BodyScene) PointCount() int {
	n := 0
	for _, c := range b.Layers() {
		n += c.Len()
	}
	return n
}

// Scene is a fully generated orrery. Orbits is parallel to Bodies.
type Scene struct {
	Galaxy      *pointcloud.Cloud
	Sun         BodyScene
	Bodies      []BodyScene
	Stars       *pointcloud.Cloud
	Orbits      []*pointcloud.Cloud
	Seed        uint64
	GeneratedAt time.Time
	Elapsed     time.Duration
}

// Clouds lists every layer: galaxy, Sun, planets, orbits, then stars.
func (s *Scene) Clouds() []*pointcloud.Cloud {
	var out []*pointcloud.Cloud
	if s.Galaxy != nil {
		out = append(out, s.Galaxy)
	}
	out = append(out, s.Sun.Layers()...)
	for _, b := range s.Bodies {
		out = append(out, b.Layers()...)
	}
	out = append(out, s.Orbits...)
	if s.Stars != nil {
		out = append(out, s.Stars)
	}
	return out
}

// PointCount is the total number of points across all layers.
func (s *Scene) PointCount() int {
	n := 0
	for _, c := range s.Clouds() {
		n += c.Len()
	}
	return n
}

// Body finds a body (the Sun included) by name or code, ignoring case.
func (s *Scene) Body(name string) (BodyScene, bool) {
	for _, b := range append([]BodyScene{s.Sun}, s.Bodies...) {
		if matches(b.Body, name) {
			return b, true
		}
	}
	return BodyScene{}, false
}

// job is one independent generator invocation.
type job struct {
	name string
	run  func(src *entropy.Seeded) error
}

// Build generates every layer of the scene. Each job draws from its own
// entropy.Stream(cfg.Seed, index) and jobs run concurrently; the result is
// identical for a given seed, catalog, and config. The first failing job
// cancels the jobs that have not yet started.
func Build(ctx context.Context, cfg Config, cat catalog.Catalog) (*Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	log := cfg.logger()
	start := time.Now()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sc := &Scene{
		Seed:   cfg.Seed,
		Sun:    BodyScene{Body: cat.Sun},
		Bodies: make([]BodyScene, len(cat.Planets)),
		Orbits: make([]*pointcloud.Cloud, len(cat.Planets)),
	}

	jobs := []job{
		{name: "galaxy", run: func(src *entropy.Seeded) error {
			g, err := procgen.GenerateGalaxyParallel(cfg.Galaxy, src.Seed(), cfg.Workers)
			sc.Galaxy = g
			return err
		}},
		{name: cat.Sun.Name, run: func(src *entropy.Seeded) error {
			bc, err := procgen.GenerateCorona(cat.Sun.CoronaParams(), src)
			sc.Sun.Clouds = bc
			return err
		}},
		{name: "stars", run: func(src *entropy.Seeded) error {
			st, err := procgen.GenerateStarField(cfg.Stars, src)
			sc.Stars = st
			return err
		}},
	}
	for i, p := range cat.Planets {
		jobs = append(jobs, job{name: p.Name, run: func(src *entropy.Seeded) error {
			return buildPlanet(&sc.Bodies[i], &sc.Orbits[i], p, cfg.OrbitSegments, src)
		}})
	}

	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
	)
	wg.Add(len(jobs))
	for i, j := range jobs {
		go func(i int, j job) {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			t0 := time.Now()
			if err := j.run(entropy.Stream(cfg.Seed, i)); err != nil {
				once.Do(func() {
					firstErr = fmt.Errorf("generate %s: %w", j.name, err)
					cancel()
				})
				return
			}
			log.Debug("%s generated in %v", j.name, time.Since(t0))
		}(i, j)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sc.GeneratedAt = time.Now()
	sc.Elapsed = sc.GeneratedAt.Sub(start)
	log.Info("scene ready: %d points in %d layers (seed %d, %v)",
		sc.PointCount(), len(sc.Clouds()), sc.Seed, sc.Elapsed.Round(time.Millisecond))
	return sc, nil
}

// buildPlanet generates a planet's surface, clouds, rings, and orbit path.
// Rings draw from the same stream after the surface.
func buildPlanet(out *BodyScene, orbit **pointcloud.Cloud, p catalog.Body, segments int, src entropy.Source) error {
	bc, err := procgen.GenerateSurface(p.SurfaceParams(), src)
	if err != nil {
		return err
	}
	bs := BodyScene{Body: p, Clouds: bc}

	if rp, ok := p.RingParams(); ok {
		bs.Rings, err = procgen.GenerateRings(rp, src)
		if err != nil {
			return err
		}
	}

	path, err := procgen.OrbitCloud(p.Name, p.Distance, segments)
	if err != nil {
		return err
	}

	*out = bs
	*orbit = path
	return nil
}

func matches(b catalog.Body, name string) bool {
	name = strings.TrimSpace(name)
	return strings.EqualFold(b.Name, name) || strings.EqualFold(b.Code, name)
}
