// Command nativeblur blurs images with the blur engine.
//
// A single job is described with flags:
//
//	nativeblur -in photo.jpg -out photo_blur.png -radius 10 -reset photo_orig.png
//
// Several jobs can be run from an HCL job file with -config.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/nativeblur/blur"
	"github.com/nativeblur/blur/internal/config"
	"github.com/nativeblur/blur/internal/imageio"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// cliOptions holds the parsed command line.
type cliOptions struct {
	in      string
	out     string
	reset   string
	kernel  string
	resize  string
	config  string
	radius  int
	workers int
	quality int
	debug   bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	logger := initLogger(opts.debug, stdout)
	if opts.debug {
		blur.SetLogger(slog.New(slog.NewTextHandler(debugWriter{logger}, &slog.HandlerOptions{Level: slog.LevelDebug})))
		defer blur.SetLogger(nil)
	}

	jobs, err := jobsFrom(opts)
	if err != nil {
		logger.WithError(err).Error("Invalid job description")
		return exitUsage
	}

	p := message.NewPrinter(language.English)
	failed := 0
	for _, job := range jobs {
		stats, err := runJob(job)
		if err != nil {
			failed++
			logger.WithFields(logrus.Fields{
				"job":   job.Name,
				"input": job.Input,
			}).WithError(err).Error("Job failed")
			continue
		}
		logger.WithFields(logrus.Fields{
			"job":     job.Name,
			"output":  job.Output,
			"size":    fmt.Sprintf("%dx%d", stats.width, stats.height),
			"radius":  job.Radius,
			"kernel":  job.Kernel.String(),
			"workers": job.Workers,
			"bytes":   p.Sprintf("%d", stats.bytes),
			"blur":    stats.blurTime.String(),
		}).Info("Image blurred")
		if job.Reset != "" {
			logger.WithField("reset", job.Reset).Debug("Reset copy written")
		}
	}

	logger.Info(p.Sprintf("Processed %d of %d jobs", len(jobs)-failed, len(jobs)))
	if failed > 0 {
		return exitError
	}
	return exitOK
}

// parseFlags parses args into cliOptions.
func parseFlags(args []string, output io.Writer) (*cliOptions, error) {
	var opts cliOptions

	fs := flag.NewFlagSet("nativeblur", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&opts.in, "in", "", "input image")
	fs.StringVar(&opts.out, "out", "", "output image (format from extension)")
	fs.StringVar(&opts.reset, "reset", "", "also write the unblurred image here")
	fs.StringVar(&opts.kernel, "kernel", "box", "kernel: box or gaussian")
	fs.StringVar(&opts.resize, "resize", "", "scale the input to WxH before blurring")
	fs.StringVar(&opts.config, "config", "", "HCL job file; replaces -in/-out")
	fs.IntVar(&opts.radius, "radius", config.DefaultRadius, "blur radius in pixels")
	fs.IntVar(&opts.workers, "workers", 1, "worker goroutines (0 = GOMAXPROCS)")
	fs.IntVar(&opts.quality, "quality", imageio.DefaultJPEGQuality, "JPEG quality 1-100")
	fs.BoolVar(&opts.debug, "debug", false, "enable debug logging")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return &opts, nil
}

// jobsFrom builds the job list from a job file or from single-job flags.
func jobsFrom(opts *cliOptions) ([]config.Job, error) {
	if opts.config != "" {
		if opts.in != "" || opts.out != "" {
			return nil, errors.New("-config cannot be combined with -in or -out")
		}
		f, err := config.Load(opts.config)
		if err != nil {
			return nil, err
		}
		return f.Jobs, nil
	}

	if opts.in == "" || opts.out == "" {
		return nil, errors.New("-in and -out are required without -config")
	}
	if opts.radius < 0 {
		return nil, fmt.Errorf("negative radius %d", opts.radius)
	}
	kernel, err := blur.ParseKernel(opts.kernel)
	if err != nil {
		return nil, err
	}
	if _, err := imageio.FormatFor(opts.out); err != nil {
		return nil, err
	}
	if opts.reset != "" {
		if _, err := imageio.FormatFor(opts.reset); err != nil {
			return nil, err
		}
	}

	job := config.Job{
		Name:    "cli",
		Input:   opts.in,
		Output:  opts.out,
		Reset:   opts.reset,
		Radius:  opts.radius,
		Kernel:  kernel,
		Workers: opts.workers,
		Quality: opts.quality,
	}
	if opts.resize != "" {
		job.Width, job.Height, err = imageio.ParseSize(opts.resize)
		if err != nil {
			return nil, err
		}
	}
	return []config.Job{job}, nil
}

// debugWriter forwards each slog line from the engine as a logrus debug entry.
type debugWriter struct {
	logger *logrus.Logger
}

func (w debugWriter) Write(p []byte) (int, error) {
	w.logger.Debug(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

// initLogger returns a logrus logger writing to w. Debug mode uses
// colored text; otherwise entries are JSON.
func initLogger(debugMode bool, w io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)

	if debugMode {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
		logger.SetLevel(logrus.InfoLevel)
	}

	return logger
}
