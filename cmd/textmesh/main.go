// textmesh builds the scene geometry without a window and exports it.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Faultbox/textscene/internal/config"
	"github.com/Faultbox/textscene/internal/logger"
	"github.com/Faultbox/textscene/internal/showcase"
	"github.com/Faultbox/textscene/pkg/geometry"
	"github.com/Faultbox/textscene/pkg/typeface"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "export", "x":
		cmdExport(args)
	case "info":
		cmdInfo(args)
	case "config":
		cmdConfig(args)
	case "fonts":
		cmdFonts()
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`textmesh - export the text scene as geometry

Usage:
  textmesh <command> [options]

Commands:
  export [options] <out.obj>   Write the text (and donuts) as Wavefront OBJ
  info [options]               Show vertex and triangle counts
  config [path]                Write the effective configuration (default: user config dir)
  fonts                        List the bundled font names

Options:
  -line1, -line2, -line3       Override a text line
  -font <name|path>            Bundled font name, typeface JSON, TTF or OTF (default Go Regular)
  -donuts                      Include the donut field
  -seed <n>                    Random seed for the donut field

The configuration is read from $TEXTSCENE_CONFIG, ./config.yaml or the
user config dir, in that order.

Examples:
  textmesh export scene.obj
  textmesh export -donuts -seed 7 scene.obj
  textmesh info -line1 "Hello" -line2 "" -line3 ""
  textmesh config ./config.yaml`)
}

// sceneFlags are shared by all commands.
type sceneFlags struct {
	lines  [showcase.LineCount]*string
	font   *string
	donuts *bool
	seed   *int64
}

func newFlagSet(name string, cfg *config.Config) (*flag.FlagSet, *sceneFlags) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	sf := &sceneFlags{}
	for i, line := range cfg.Text.Lines() {
		sf.lines[i] = fs.String(fmt.Sprintf("line%d", i+1), line, "Text of "+showcase.LineLabels[i])
	}
	sf.font = fs.String("font", cfg.Assets.Font, "Bundled font name or font path")
	sf.donuts = fs.Bool("donuts", false, "Include the donut field")
	sf.seed = fs.Int64("seed", cfg.Donuts.Seed, "Random seed")
	return fs, sf
}

func buildScene(cfg *config.Config, sf *sceneFlags) *showcase.Showcase {
	font, err := showcase.LoadFont(*sf.font)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	opts := showcase.OptionsFromConfig(cfg)
	opts.Params = showcase.TextParams{
		FirstLine:  *sf.lines[0],
		SecondLine: *sf.lines[1],
		ThirdLine:  *sf.lines[2],
	}
	opts.Seed = *sf.seed
	if !*sf.donuts {
		opts.Donuts.Count = 0
	}

	s, err := showcase.New(font, nil, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return s
}

func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.InitWithFileConfig(cfg.Logging.Level, logger.FileConfig{Path: cfg.Logging.LogFile}, false); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

func cmdExport(args []string) {
	cfg := loadConfig()
	fs, sf := newFlagSet("export", cfg)
	fs.Parse(args)
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: textmesh export [options] <out.obj>")
		os.Exit(1)
	}
	out := fs.Arg(0)

	s := buildScene(cfg, sf)
	defer s.Dispose()
	objects := s.Export(*sf.donuts)

	f, err := os.Create(out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := geometry.WriteOBJ(f, objects...); err != nil {
		f.Close()
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", out, err)
		os.Exit(1)
	}
	if err := f.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", out, err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %d objects to %s\n", len(objects), out)
}

func cmdInfo(args []string) {
	cfg := loadConfig()
	fs, sf := newFlagSet("info", cfg)
	fs.Parse(args)

	s := buildScene(cfg, sf)
	defer s.Dispose()

	fmt.Printf("%-6s %-24s %10s %10s\n", "Line", "Text", "Vertices", "Triangles")
	var verts, tris int
	for _, l := range s.Text.Meshes() {
		g := l.Object.Geometry
		fmt.Printf("%-6d %-24q %10d %10d\n", l.Index+1, l.Text, g.VertexCount(), g.TriangleCount())
		verts += g.VertexCount()
		tris += g.TriangleCount()
	}
	if donuts := s.Donuts.Children(); len(donuts) > 0 {
		g := donuts[0].Geometry
		fmt.Printf("Donuts: %d sharing %d vertices / %d triangles\n", len(donuts), g.VertexCount(), g.TriangleCount())
	}
	fmt.Printf("Text total: %d vertices, %d triangles\n", verts, tris)
}

func cmdConfig(args []string) {
	cfg := loadConfig()

	var err error
	path := filepath.Join(config.ConfigDir(), "config.yaml")
	if len(args) > 0 {
		path = args[0]
		err = cfg.SaveTo(path)
	} else {
		err = cfg.Save()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", path)
}

func cmdFonts() {
	for _, name := range typeface.BundledNames() {
		f, err := typeface.Bundled(name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%-16s %s\n", name, f.Family)
	}
}
