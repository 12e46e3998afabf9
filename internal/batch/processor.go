package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"k8s.io/klog/v2"

	"avatar-rig/internal/preview"
)

// Config holds all shared settings for a batch run.
type Config struct {
	OutputDir string
	Preview   preview.Options
	Workers   int
}

// Result holds the outcome of encoding one frame.
type Result struct {
	Index   int
	Time    float64
	Image   string // path relative to OutputDir
	Success bool
	Error   string
}

// FrameName is the file name of frame i inside the output directory.
func FrameName(i int) string {
	return fmt.Sprintf("frame_%05d.webp", i)
}

// Run renders and encodes all frames using a worker pool. Results are in
// frame order.
func Run(cfg Config, frames []Frame) []Result {
	total := len(frames)
	results := make([]Result, total)
	var processed atomic.Int64

	workers := max(cfg.Workers, 1)
	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					klog.Infof("[%d/%d] %.1f frames/sec", p, total, float64(p)/elapsed)
				}
			}
		}
	}()

	// Worker pool
	frameChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range frameChan {
				results[idx] = processFrame(cfg, frames[idx])
				processed.Add(1)
			}
		}()
	}

	for i := range frames {
		frameChan <- i
	}
	close(frameChan)

	wg.Wait()
	close(done)

	return results
}

func processFrame(cfg Config, f Frame) Result {
	res := Result{Index: f.Index, Time: f.Time, Image: FrameName(f.Index)}

	img := preview.Render(f.Figure, cfg.Preview)

	outPath := filepath.Join(cfg.OutputDir, res.Image)
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		res.Error = err.Error()
		return res
	}

	out, err := os.Create(outPath)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	if err := preview.EncodeAndClose(out, img); err != nil {
		res.Error = err.Error()
		return res
	}

	res.Success = true
	return res
}

// Failed returns the results that did not succeed.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if !r.Success {
			out = append(out, r)
		}
	}
	return out
}
