// Package pipeline glues the color, halftoning, and packing stages into
// a three-operation surface -- LoadInputImage, ApplyICCConversion, and
// GenerateFinalPRN -- enforced by the Empty -> Loaded -> Transformed ->
// Written state machine.
package pipeline

import (
	"context"
	"os"
	"sync"

	"github.com/nocairip/rip/log"
	"github.com/nocairip/rip/pkg/rip/channel"
	"github.com/nocairip/rip/pkg/rip/colortransform"
	"github.com/nocairip/rip/pkg/rip/debugdump"
	"github.com/nocairip/rip/pkg/rip/halftone"
	"github.com/nocairip/rip/pkg/rip/imaging"
	"github.com/nocairip/rip/pkg/rip/mask"
	"github.com/nocairip/rip/pkg/rip/model"
	"github.com/nocairip/rip/pkg/rip/pack"
	"github.com/nocairip/rip/pkg/rip/prn"
	"github.com/nocairip/rip/pkg/rip/profile"
	"github.com/nocairip/rip/pkg/rip/promote"
	"github.com/pkg/errors"
)

// StatusReporter receives stage transitions as the pipeline runs. The
// CLI wires internal/statusserver here; embedders may supply their own
// or leave it nil.
type StatusReporter interface {
	Report(stage model.Stage, jobPath string, err error)
}

// Pipeline carries one Job through its state machine. It is not safe for
// concurrent use by multiple goroutines -- its operations run
// synchronously and in order (only GenerateFinalPRN's per-channel passes
// fan out internally); independent jobs get independent Pipelines.
type Pipeline struct {
	job  *model.Job
	conf *model.Configuration
	stat StatusReporter

	stage      model.Stage
	stagingDir string

	source *imaging.Source

	inProfile  *profile.Handle
	outProfile *profile.Handle

	planes [4]*channel.Plane
}

// New creates a Pipeline for job, in the Empty stage.
func New(job *model.Job, conf *model.Configuration) *Pipeline {
	if conf == nil {
		conf = model.NewDefaultConfiguration()
	}
	return &Pipeline{job: job, conf: conf, stage: model.StageEmpty}
}

// SetStatusReporter wires an optional reporter for stage transitions.
func (p *Pipeline) SetStatusReporter(s StatusReporter) { p.stat = s }

func (p *Pipeline) report(err error) {
	if p.stat != nil {
		p.stat.Report(p.stage, p.job.SourceImagePath, err)
	}
}

func (p *Pipeline) requireStage(want model.Stage, op string) error {
	if p.stage != want {
		return errors.Wrapf(model.ErrState, "%s requires stage %s, pipeline is %s", op, want, p.stage)
	}
	return nil
}

// LoadInputImage decodes the job's source image and stages a copy of it
// under a scoped temporary directory so later stages never reread the
// caller-supplied path.
func (p *Pipeline) LoadInputImage(ctx context.Context) error {
	if err := p.requireStage(model.StageEmpty, "loadInputImage"); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	dir, err := os.MkdirTemp("", "nocairip-*")
	if err != nil {
		return errors.Wrap(model.ErrIO, err.Error())
	}
	p.stagingDir = dir

	raw, err := os.ReadFile(p.job.SourceImagePath)
	if err != nil {
		p.cleanupStaging()
		return errors.Wrapf(model.ErrImageLoad, "read %q: %v", p.job.SourceImagePath, err)
	}

	stagedPath, err := imaging.Stage(dir, "source", raw)
	if err != nil {
		p.cleanupStaging()
		return err
	}

	src, err := imaging.Load(stagedPath)
	if err != nil {
		p.cleanupStaging()
		return err
	}

	p.source = src
	p.stage = model.StageLoaded
	p.report(nil)
	log.Info.Printf("pipeline: loaded %dx%d source image %q", src.Width, src.Height, p.job.SourceImagePath)
	return nil
}

// ApplyICCConversion builds the RGB8->CMYK8 perceptual transform from the
// job's profile pair, applies it, and separates the result into four
// channel planes.
func (p *Pipeline) ApplyICCConversion(ctx context.Context) error {
	if err := p.requireStage(model.StageLoaded, "applyICCConversion"); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	in, out, err := profile.OpenPair(p.job.InputICCPath, p.job.OutputICCPath)
	if err != nil {
		p.cleanupStaging()
		return err
	}
	p.inProfile, p.outProfile = in, out

	tr, err := colortransform.New(in, out)
	if err != nil {
		p.releaseProfiles()
		p.cleanupStaging()
		return err
	}
	defer tr.Close()

	cmyk, err := tr.Apply(p.source.RGB, p.source.Width, p.source.Height)
	if err != nil {
		p.releaseProfiles()
		p.cleanupStaging()
		return err
	}

	planes, err := channel.Separate(cmyk)
	if err != nil {
		p.releaseProfiles()
		p.cleanupStaging()
		return err
	}
	p.planes = planes

	// The transform and both profiles are released once the CMYK buffer
	// has been produced.
	p.releaseProfiles()

	if p.conf.DebugDumpDir != "" {
		for _, pl := range p.planes {
			_ = debugdump.ChannelPlane(p.conf.DebugDumpDir, "channel", pl)
		}
	}

	p.stage = model.StageTransformed
	p.report(nil)
	log.Info.Printf("pipeline: applied ICC conversion for %q -> %q", p.job.InputICCPath, p.job.OutputICCPath)
	return nil
}

// GenerateFinalPRN loads the four threshold masks, runs Halftone ->
// Promote -> Pack per channel (in parallel, bounded by
// Configuration.ChannelParallelism), and writes the interleaved PRN
// stream.
func (p *Pipeline) GenerateFinalPRN(ctx context.Context, outputPath string, xdpi, ydpi uint32) error {
	if err := p.requireStage(model.StageTransformed, "generateFinalPRN"); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	defer p.cleanupStaging()

	masks, err := mask.Load(p.job.MaskPaths, p.source.Width, p.source.Height, p.job.MaskSeed)
	if err != nil {
		return err
	}

	if p.conf.DebugDumpDir != "" {
		for k, m := range masks {
			_ = debugdump.Mask(p.conf.DebugDumpDir, "mask", channel.Index(k), m)
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	packed, err := p.processChannels(masks)
	if err != nil {
		return err
	}

	digest, err := prn.Write(outputPath, xdpi, ydpi, packed)
	if err != nil {
		return err
	}

	p.stage = model.StageWritten
	p.report(nil)
	log.Info.Printf("pipeline: wrote %q (digest %x)", outputPath, digest)
	return nil
}

// processChannels runs Halftone->Promote->Pack for all four channels.
// The four passes are mutually independent until the writer, so they're
// fanned out across goroutines bounded by Configuration.ChannelParallelism.
func (p *Pipeline) processChannels(masks [4]*mask.Mask) ([4]*pack.Plane, error) {
	var packed [4]*pack.Plane

	limit := p.conf.ChannelParallelism
	if limit <= 0 || limit > 4 {
		limit = 4
	}
	sem := make(chan struct{}, limit)

	var wg sync.WaitGroup
	errs := make([]error, 4)

	for k := 0; k < 4; k++ {
		wg.Add(1)
		sem <- struct{}{}
		go func(k int) {
			defer wg.Done()
			defer func() { <-sem }()

			dm, err := halftone.Classify(p.planes[k], masks[k])
			if err != nil {
				errs[k] = err
				return
			}

			promote.Promote(dm)

			if p.conf.DebugDumpDir != "" {
				_ = debugdump.DotMap(p.conf.DebugDumpDir, "dotmap", dm)
			}

			packed[k] = pack.Pack(dm)
		}(k)
	}
	wg.Wait()

	for _, e := range errs {
		if e != nil {
			return packed, e
		}
	}

	bpl := packed[0].BytesPerLine
	for k := 1; k < 4; k++ {
		if packed[k].BytesPerLine != bpl {
			return packed, errors.Wrapf(model.ErrInternal, "channel %d bytesPerLine=%d, want %d", k, packed[k].BytesPerLine, bpl)
		}
	}

	return packed, nil
}

func (p *Pipeline) releaseProfiles() {
	p.inProfile.Close()
	p.outProfile.Close()
	p.inProfile, p.outProfile = nil, nil
}

func (p *Pipeline) cleanupStaging() {
	if p.stagingDir == "" {
		return
	}
	if err := os.RemoveAll(p.stagingDir); err != nil {
		log.Debug.Printf("pipeline: cleanup of %q failed: %v", p.stagingDir, err)
	}
	p.stagingDir = ""
}

// Stage returns the pipeline's current position in the state machine.
func (p *Pipeline) Stage() model.Stage { return p.stage }

// Close releases whatever the pipeline currently holds -- the staging
// directory, and the ICC profiles/transform if a failure or an early
// caller exit left them acquired. It is safe to call multiple times and
// from a deferred recover() after a panic, so every exit path (success,
// failure, panic) leaves no acquired resource behind.
func (p *Pipeline) Close() {
	p.releaseProfiles()
	p.cleanupStaging()
}
