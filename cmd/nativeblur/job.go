package main

import (
	"fmt"
	"runtime"
	"time"

	"github.com/nativeblur/blur"
	"github.com/nativeblur/blur/internal/config"
	"github.com/nativeblur/blur/internal/imageio"
)

// jobStats describes one finished job.
type jobStats struct {
	width, height int
	bytes         int
	blurTime      time.Duration
}

// runJob loads the input, blurs it and writes the output. The decoded
// pixels are kept untouched so the reset copy shows the original image.
func runJob(job config.Job) (jobStats, error) {
	img, err := imageio.Load(job.Input)
	if err != nil {
		return jobStats{}, err
	}
	if job.Width > 0 && job.Height > 0 {
		if img, err = imageio.Resize(img, job.Width, job.Height); err != nil {
			return jobStats{}, err
		}
	}

	original, err := blur.FromImage(img)
	if err != nil {
		return jobStats{}, fmt.Errorf("convert %s: %w", job.Input, err)
	}

	workers := job.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	engine := blur.NewEngine(blur.WithKernel(job.Kernel), blur.WithWorkers(workers))
	defer engine.Close()

	start := time.Now()
	blurred, err := engine.Blur(original, job.Radius)
	if err != nil {
		return jobStats{}, fmt.Errorf("blur %s: %w", job.Input, err)
	}
	elapsed := time.Since(start)

	if err := imageio.Save(blurred.ToImage(), job.Output, job.Quality); err != nil {
		return jobStats{}, err
	}
	if job.Reset != "" {
		if err := imageio.Save(original.ToImage(), job.Reset, job.Quality); err != nil {
			return jobStats{}, err
		}
	}

	return jobStats{
		width:    blurred.Width(),
		height:   blurred.Height(),
		bytes:    len(blurred.Data()),
		blurTime: elapsed,
	}, nil
}
