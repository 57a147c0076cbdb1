package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/nocairip/rip/internal/statusserver"
	"github.com/nocairip/rip/log"
	"github.com/nocairip/rip/pkg/rip/model"
	"github.com/nocairip/rip/pkg/rip/pipeline"
)

const version = "1.0.0"

func cmdVersion(args []string) int {
	fmt.Println("nocairip " + version)
	return 0
}

func cmdConfig(args []string) int {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	dir := fs.String("dir", defaultConfigBaseDir(), "base directory to write nocairip/config.yml under")
	force := fs.Bool("force", false, "overwrite an existing config file")
	fs.Parse(args)

	if err := model.EnsureDefaultConfigAt(*dir, *force); err != nil {
		fmt.Fprintln(os.Stderr, "nocairip: config:", err)
		return 1
	}
	return 0
}

func cmdRip(args []string) int {
	fs := flag.NewFlagSet("rip", flag.ExitOnError)
	img := fs.String("img", "", "source image path")
	inICC := fs.String("inicc", "", "input ICC profile path")
	outICC := fs.String("outicc", "", "output (device) ICC profile path")
	cMask := fs.String("cmask", "", "cyan threshold mask path")
	mMask := fs.String("mmask", "", "magenta threshold mask path")
	yMask := fs.String("ymask", "", "yellow threshold mask path")
	kMask := fs.String("kmask", "", "black threshold mask path")
	out := fs.String("out", "", "output .PRN path")
	xdpi := fs.Uint("xdpi", 600, "output x resolution")
	ydpi := fs.Uint("ydpi", 600, "output y resolution")
	seed := fs.Int64("seed", 0, "mask tile-rotation RNG seed (0 = process-random)")
	debugDir := fs.String("debugdir", "", "dump intermediate planes as TIFF here")
	statusAddr := fs.String("status-addr", "", "serve job status at http://<addr>/status")
	verbose := fs.Bool("v", false, "verbose logging")
	veryVerbose := fs.Bool("vv", false, "trace logging")
	fs.Parse(args)

	if *img == "" || *inICC == "" || *outICC == "" || *out == "" {
		fmt.Fprintln(os.Stderr, "nocairip: rip: -img, -inicc, -outicc and -out are required")
		return 2
	}

	wireLogging(*verbose, *veryVerbose)

	job := &model.Job{
		SourceImagePath: *img,
		OutputPRNPath:   *out,
		InputICCPath:    *inICC,
		OutputICCPath:   *outICC,
		MaskPaths:       [4]string{*cMask, *mMask, *yMask, *kMask},
		XDPI:            uint32(*xdpi),
		YDPI:            uint32(*ydpi),
		MaskSeed:        *seed,
	}

	conf := model.NewDefaultConfiguration()
	conf.DebugDumpDir = *debugDir

	var status *statusserver.Server
	if *statusAddr != "" {
		status = statusserver.New(*statusAddr)
		status.Start()
		defer status.Shutdown()
	}

	if err := runJob(job, conf, status); err != nil {
		fmt.Fprintln(os.Stderr, "nocairip: rip:", err)
		return 1
	}
	return 0
}

// runJob drives a Pipeline through all three operations, recovering from
// a panic in any stage so the pipeline's resources are still released
// and the output file is never left half-written.
func runJob(job *model.Job, conf *model.Configuration, status *statusserver.Server) (err error) {
	pl := pipeline.New(job, conf)
	if status != nil {
		pl.SetStatusReporter(status)
	}
	defer pl.Close()

	if status != nil {
		defer func() {
			if err != nil {
				status.Report(pl.Stage(), job.SourceImagePath, err)
			}
		}()
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pipeline panic: %v", r)
			os.Remove(job.OutputPRNPath)
		}
	}()

	ctx := context.Background()

	if err := pl.LoadInputImage(ctx); err != nil {
		return err
	}
	if err := pl.ApplyICCConversion(ctx); err != nil {
		return err
	}
	if err := pl.GenerateFinalPRN(ctx, job.OutputPRNPath, job.XDPI, job.YDPI); err != nil {
		return err
	}

	return nil
}

func wireLogging(verbose, veryVerbose bool) {
	if !verbose && !veryVerbose {
		return
	}

	var zapErr error
	if veryVerbose {
		zapErr = log.UseZapDevelopment()
	} else {
		zapErr = log.UseZapProduction()
		log.SetTraceLogger(nil) // -v alone doesn't enable trace
	}
	if zapErr == nil {
		return
	}

	// zap failed to build its logger (e.g. no writable sink); fall back
	// to the stdlib-backed loggers rather than running silent.
	log.SetDefaultLoggers()
	if veryVerbose {
		log.SetTraceLogger(log.Debug)
	}
}

func defaultConfigBaseDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir
	}
	return "."
}
