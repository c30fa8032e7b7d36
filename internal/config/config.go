// Package config reads HCL job files for the nativeblur command.
//
// A job file holds an optional defaults block and one or more job blocks:
//
//	defaults {
//	  kernel  = "gaussian"
//	  workers = 4
//	}
//
//	job "thumb" {
//	  input  = "in/photo.jpg"
//	  output = "out/photo_blur.png"
//	  radius = 8
//	  reset  = "out/photo_orig.png"
//	}
//
// Relative paths in a file loaded with Load are resolved against the
// directory of that file.
package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/nativeblur/blur"
	"github.com/nativeblur/blur/internal/imageio"
)

// DefaultRadius applies when neither the job nor the defaults block sets one.
const DefaultRadius = 10

// Validation errors.
var (
	ErrNoJobs       = errors.New("config: no job blocks")
	ErrDuplicateJob = errors.New("config: duplicate job name")
	ErrInvalidJob   = errors.New("config: invalid job")
)

// Job is a fully resolved blur job.
type Job struct {
	Name    string
	Input   string
	Output  string
	Reset   string // empty when no reset copy is wanted
	Radius  int
	Kernel  blur.Kernel
	Workers int
	Quality int
	Width   int // 0 keeps the decoded size
	Height  int
}

// File is a parsed and validated job file.
type File struct {
	Jobs []Job
}

// settings is the defaults block; job blocks carry the same attributes.
type settings struct {
	Radius  *int    `hcl:"radius,optional"`
	Kernel  *string `hcl:"kernel,optional"`
	Workers *int    `hcl:"workers,optional"`
	Quality *int    `hcl:"quality,optional"`
	Resize  *string `hcl:"resize,optional"`
}

// hclJob is one job block.
type hclJob struct {
	Name    string  `hcl:"name,label"`
	Input   string  `hcl:"input"`
	Output  string  `hcl:"output"`
	Reset   *string `hcl:"reset,optional"`
	Radius  *int    `hcl:"radius,optional"`
	Kernel  *string `hcl:"kernel,optional"`
	Workers *int    `hcl:"workers,optional"`
	Quality *int    `hcl:"quality,optional"`
	Resize  *string `hcl:"resize,optional"`
}

// hclFile is the top-level structure of a job file for decoding.
type hclFile struct {
	Defaults []*settings `hcl:"defaults,block"`
	Jobs     []*hclJob   `hcl:"job,block"`
}

// Load parses the job file at path and resolves relative paths against
// its directory.
func Load(path string) (*File, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("config: parse %s: %w", path, diags)
	}

	file, err := decode(f, path)
	if err != nil {
		return nil, err
	}

	base := filepath.Dir(path)
	for i := range file.Jobs {
		j := &file.Jobs[i]
		j.Input = resolve(base, j.Input)
		j.Output = resolve(base, j.Output)
		j.Reset = resolve(base, j.Reset)
	}
	return file, nil
}

// Parse parses job file source. filename is used in diagnostics only.
func Parse(src []byte, filename string) (*File, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("config: parse %s: %w", filename, diags)
	}
	return decode(f, filename)
}

// decode turns a parsed HCL file into validated jobs.
func decode(f *hcl.File, filename string) (*File, error) {
	var raw hclFile
	if diags := gohcl.DecodeBody(f.Body, nil, &raw); diags.HasErrors() {
		return nil, fmt.Errorf("config: decode %s: %w", filename, diags)
	}

	if len(raw.Defaults) > 1 {
		return nil, fmt.Errorf("%w: %s has %d defaults blocks", ErrInvalidJob, filename, len(raw.Defaults))
	}
	if len(raw.Jobs) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoJobs, filename)
	}

	var defaults settings
	if len(raw.Defaults) == 1 {
		defaults = *raw.Defaults[0]
	}

	file := &File{Jobs: make([]Job, 0, len(raw.Jobs))}
	seen := make(map[string]bool, len(raw.Jobs))

	for _, rj := range raw.Jobs {
		if seen[rj.Name] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateJob, rj.Name)
		}
		seen[rj.Name] = true

		job, err := resolveJob(rj, defaults)
		if err != nil {
			return nil, err
		}
		file.Jobs = append(file.Jobs, job)
	}

	return file, nil
}

// resolveJob applies defaults to one job block and validates the result.
func resolveJob(rj *hclJob, d settings) (Job, error) {
	s := settings{
		Radius:  pick(rj.Radius, d.Radius),
		Kernel:  pick(rj.Kernel, d.Kernel),
		Workers: pick(rj.Workers, d.Workers),
		Quality: pick(rj.Quality, d.Quality),
		Resize:  pick(rj.Resize, d.Resize),
	}

	job := Job{
		Name:    rj.Name,
		Input:   rj.Input,
		Output:  rj.Output,
		Radius:  DefaultRadius,
		Workers: 1,
	}
	if rj.Reset != nil {
		job.Reset = *rj.Reset
	}

	if job.Input == "" || job.Output == "" {
		return Job{}, fmt.Errorf("%w %q: input and output are required", ErrInvalidJob, rj.Name)
	}
	if s.Radius != nil {
		if *s.Radius < 0 {
			return Job{}, fmt.Errorf("%w %q: negative radius %d", ErrInvalidJob, rj.Name, *s.Radius)
		}
		job.Radius = *s.Radius
	}
	if s.Kernel != nil {
		k, err := blur.ParseKernel(*s.Kernel)
		if err != nil {
			return Job{}, fmt.Errorf("%w %q: %w", ErrInvalidJob, rj.Name, err)
		}
		job.Kernel = k
	}
	if s.Workers != nil {
		job.Workers = *s.Workers
	}
	if s.Quality != nil {
		job.Quality = *s.Quality
	}
	if s.Resize != nil && *s.Resize != "" {
		w, h, err := imageio.ParseSize(*s.Resize)
		if err != nil {
			return Job{}, fmt.Errorf("%w %q: %w", ErrInvalidJob, rj.Name, err)
		}
		job.Width, job.Height = w, h
	}
	if _, err := imageio.FormatFor(job.Output); err != nil {
		return Job{}, fmt.Errorf("%w %q: output: %w", ErrInvalidJob, rj.Name, err)
	}
	if job.Reset != "" {
		if _, err := imageio.FormatFor(job.Reset); err != nil {
			return Job{}, fmt.Errorf("%w %q: reset: %w", ErrInvalidJob, rj.Name, err)
		}
	}

	return job, nil
}

// pick returns v if set, otherwise fallback.
func pick[T any](v, fallback *T) *T {
	if v != nil {
		return v
	}
	return fallback
}

// resolve joins a relative path onto base. Empty paths stay empty.
func resolve(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
