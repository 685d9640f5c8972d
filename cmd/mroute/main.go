// Command mroute routes a bundle described by a JSON job file and prints the
// resulting paths as JSON. It is a thin wrapper for batch use and debugging;
// library users call routing.RouteSmart directly.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"mroute/core"
	"mroute/routing"
)

type jobPort struct {
	Name  string `json:"name"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Dir   string `json:"dir"`
	Width int    `json:"width"`
}

type jobBox struct {
	MinX int `json:"min_x"`
	MinY int `json:"min_y"`
	MaxX int `json:"max_x"`
	MaxY int `json:"max_y"`
}

type jobPoint struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// job is the JSON input: the port pairs plus the bundle-level options that
// have no YAML form in routing.Config.
type job struct {
	Starts    []jobPort  `json:"starts"`
	Ends      []jobPort  `json:"ends"`
	Waypoints []jobPoint `json:"waypoints,omitempty"`
	Obstacles []jobBox   `json:"obstacles,omitempty"`
}

type result struct {
	Paths      [][]jobPoint `json:"paths"`
	Collisions int          `json:"collisions"`
}

func main() {
	var (
		configPath = flag.String("config", "", "YAML routing config (default: built-in defaults)")
		outputFile = flag.String("o", "", "Output file (default: stdout)")
		check      = flag.Bool("check", false, "Fail if the routed bundle has path collisions")
		verbose    = flag.Bool("v", false, "Log routing diagnostics to stderr")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] [job.json]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Routes a Manhattan bundle described by a JSON job file.\n")
		fmt.Fprintf(os.Stderr, "Reads from stdin when no file is given.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := run(*configPath, flag.Arg(0), *outputFile, *check, *verbose); err != nil {
		fmt.Fprintf(os.Stderr, "mroute: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, jobPath, outputFile string, check, verbose bool) error {
	cfg := routing.BundleConfig{
		Config: routing.Config{
			Bend90Radius:  500,
			Separation:    500,
			StartStraight: 0,
			EndStraight:   0,
		},
	}
	if configPath != "" {
		f, err := os.Open(configPath)
		if err != nil {
			return err
		}
		loaded, err := routing.LoadConfig(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", configPath, err)
		}
		cfg.Config = loaded
	}
	if verbose {
		log, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		defer log.Sync()
		cfg.Config = cfg.Config.WithLogger(log)
	}

	var in io.Reader = os.Stdin
	if jobPath != "" {
		f, err := os.Open(jobPath)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	var j job
	dec := json.NewDecoder(in)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&j); err != nil {
		return fmt.Errorf("parsing job: %w", err)
	}

	starts, err := ports(j.Starts, "starts")
	if err != nil {
		return err
	}
	ends, err := ports(j.Ends, "ends")
	if err != nil {
		return err
	}
	for _, p := range j.Waypoints {
		cfg.Waypoints = append(cfg.Waypoints, core.Point{X: p.X, Y: p.Y})
	}
	for _, b := range j.Obstacles {
		cfg.Obstacles = append(cfg.Obstacles, core.Box{
			Min: core.Point{X: b.MinX, Y: b.MinY},
			Max: core.Point{X: b.MaxX, Y: b.MaxY},
		})
	}

	bundle, err := routing.RouteSmart(starts, ends, cfg)
	if err != nil {
		return err
	}
	collisions := routing.CheckCollisions(bundle.Paths)
	if check && len(collisions) > 0 {
		return fmt.Errorf("routed bundle has %d collision(s)", len(collisions))
	}

	res := result{Collisions: len(collisions)}
	for _, p := range bundle.Paths {
		pts := make([]jobPoint, len(p.Points))
		for i, pt := range p.Points {
			pts[i] = jobPoint{X: pt.X, Y: pt.Y}
		}
		res.Paths = append(res.Paths, pts)
	}

	var out io.Writer = os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

func ports(ps []jobPort, field string) ([]core.Port, error) {
	out := make([]core.Port, len(ps))
	for i, p := range ps {
		dir, err := parseDir(p.Dir)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", field, i, err)
		}
		name := p.Name
		if name == "" {
			name = fmt.Sprintf("%s[%d]", field, i)
		}
		out[i] = core.Port{
			Name:  name,
			Pos:   core.Point{X: p.X, Y: p.Y},
			Dir:   dir,
			Width: p.Width,
		}
	}
	return out, nil
}

func parseDir(s string) (core.Direction, error) {
	switch strings.ToLower(s) {
	case "east", "e":
		return core.East, nil
	case "north", "n":
		return core.North, nil
	case "west", "w":
		return core.West, nil
	case "south", "s":
		return core.South, nil
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}
