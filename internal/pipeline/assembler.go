package pipeline

import (
	"context"
	"errors"
	"time"

	"image-picker/internal/cache"
	"image-picker/internal/logging"
	"image-picker/internal/media"
	"image-picker/internal/mediatypes"
	"image-picker/internal/metrics"
	"image-picker/internal/workers"
)

// Copier copies a file into the cache. It returns cache.ErrSkipped for
// files it does not handle.
type Copier interface {
	Copy(src string) (string, error)
}

// Compressor re-encodes an image into the cache.
type Compressor interface {
	Compress(path string, quality int) (string, error)
}

// Describer builds the metadata record for a cached file.
type Describer interface {
	Describe(ctx context.Context, path, originalURI string, includeBase64 bool) (media.SelectedMedia, error)
}

// Gate holds back decoding work, for example under memory pressure.
type Gate interface {
	Wait(ctx context.Context) error
}

// Options are the per-invocation settings the pipeline reads.
type Options struct {
	Compress      bool
	Quality       int
	IncludeBase64 bool
}

// Config wires an Assembler.
type Config struct {
	Copier     Copier
	Compressor Compressor
	Describer  Describer
	Session    *Session
	Policy     Policy
	// Gate, when set, is waited on before every decode.
	Gate Gate
	// Workers caps concurrent tasks per stage; 0 sizes compression with
	// workers.ForCPU and the other stages with workers.ForIO.
	Workers int
}

// Assembler runs picked files through the pipeline.
type Assembler struct {
	copier     Copier
	compressor Compressor
	describer  Describer
	session    *Session
	policy     Policy
	gate       Gate
	limit      int
	cpuLimit   int
}

// defaultWorkerLimit caps the computed worker count.
const defaultWorkerLimit = 16

// NewAssembler returns an Assembler. A nil Session gets a fresh one.
func NewAssembler(cfg Config) *Assembler {
	limit, cpuLimit := cfg.Workers, cfg.Workers
	if limit <= 0 {
		limit = workers.ForIO(defaultWorkerLimit)
		cpuLimit = workers.ForCPU(defaultWorkerLimit)
	}
	session := cfg.Session
	if session == nil {
		session = NewSession()
	}

	return &Assembler{
		copier:     cfg.Copier,
		compressor: cfg.Compressor,
		describer:  cfg.Describer,
		session:    session,
		policy:     cfg.Policy,
		gate:       cfg.Gate,
		limit:      limit,
		cpuLimit:   cpuLimit,
	}
}

// Session returns the session the assembler appends to.
func (a *Assembler) Session() *Session {
	return a.session
}

// Policy returns the failure policy in use.
func (a *Assembler) Policy() Policy {
	return a.policy
}

// Assemble turns raw host paths into media records. A nil or empty raw list
// returns the current session unchanged. On success the new records are
// appended to the session in raw order and the full session is returned.
func (a *Assembler) Assemble(ctx context.Context, opts Options, raw []string) Envelope {
	start := time.Now()
	defer func() {
		metrics.PipelineBatchDuration.Observe(time.Since(start).Seconds())
	}()

	if len(raw) == 0 {
		metrics.PipelineBatchesTotal.WithLabelValues("empty").Inc()
		return Envelope{Media: a.session.Snapshot()}
	}

	items := make([]Item, len(raw))
	for i, path := range raw {
		items[i] = Item{Original: path, Current: path}
	}

	var dropped []Dropped

	converted, err := a.collect(a.convert(ctx, opts, items), &dropped)
	if err != nil {
		return a.fail(err)
	}

	described := a.describe(ctx, opts, converted)

	newMedia := make([]media.SelectedMedia, 0, len(described))
	for _, o := range described {
		if o.Failed() {
			if a.policy.Describe == Fail {
				return a.fail(&StageError{Stage: o.Stage, Original: o.Item.Original, Err: o.Err})
			}
			dropped = append(dropped, a.drop(o))
			continue
		}
		newMedia = append(newMedia, o.Media)
	}

	a.session.Append(newMedia...)
	metrics.PipelineBatchesTotal.WithLabelValues("ok").Inc()
	logging.Debug("Assembled %d of %d picked items (%d dropped)", len(newMedia), len(raw), len(dropped))

	return Envelope{Media: a.session.Snapshot(), Dropped: dropped}
}

func (a *Assembler) fail(err error) Envelope {
	metrics.PipelineBatchesTotal.WithLabelValues("error").Inc()
	logging.Warn("Picker batch failed: %v", err)
	return failure(err)
}

func (a *Assembler) drop(o Outcome) Dropped {
	logging.Warn("Dropping %s after %s failure: %v", o.Item.Original, o.Stage, o.Err)
	return Dropped{Original: o.Item.Original, Stage: o.Stage, Reason: o.Err.Error()}
}

// collect filters convert outcomes down to the items that go on to be
// described, applying the convert policy.
func (a *Assembler) collect(outcomes []Outcome, dropped *[]Dropped) ([]Item, error) {
	survivors := make([]Item, 0, len(outcomes))
	for _, o := range outcomes {
		switch {
		case o.Skipped:
			logging.Debug("Skipping %s: not an image or video", o.Item.Original)
		case o.Failed():
			if a.policy.action(o.Stage) == Fail {
				return nil, &StageError{Stage: o.Stage, Original: o.Item.Original, Err: o.Err}
			}
			*dropped = append(*dropped, a.drop(o))
		default:
			survivors = append(survivors, o.Item)
		}
	}
	return survivors, nil
}

// convert moves every item into the cache.
func (a *Assembler) convert(ctx context.Context, opts Options, items []Item) []Outcome {
	stage, limit := StageCopy, a.limit
	if opts.Compress {
		stage, limit = StageCompress, a.cpuLimit
	}

	return a.run(stage, limit, items, func(it Item) Outcome {
		kind := mediatypes.Classify(it.Current)

		if opts.Compress && kind == mediatypes.KindImage {
			out := Outcome{Item: it, Stage: StageCompress}
			if err := a.wait(ctx); err != nil {
				out.Err = err
				return out
			}
			path, err := a.compressor.Compress(it.Current, opts.Quality)
			if err != nil {
				out.Err = err
				return out
			}
			out.Item.Current = path
			return out
		}

		out := Outcome{Item: it, Stage: StageCopy}
		if kind == mediatypes.KindUnknown {
			out.Skipped = true
			return out
		}
		path, err := a.copier.Copy(it.Current)
		if errors.Is(err, cache.ErrSkipped) {
			out.Skipped = true
			return out
		}
		if err != nil {
			out.Err = err
			return out
		}
		out.Item.Current = path
		return out
	})
}

// describe builds a record for every converted item.
func (a *Assembler) describe(ctx context.Context, opts Options, items []Item) []Outcome {
	return a.run(StageDescribe, a.limit, items, func(it Item) Outcome {
		if err := a.wait(ctx); err != nil {
			return Outcome{Item: it, Stage: StageDescribe, Err: err}
		}
		m, err := a.describer.Describe(ctx, it.Current, it.Original, opts.IncludeBase64)
		return Outcome{Item: it, Stage: StageDescribe, Media: m, Err: err}
	})
}

func (a *Assembler) wait(ctx context.Context) error {
	if a.gate == nil {
		return nil
	}
	return a.gate.Wait(ctx)
}

// run applies fn to every item with bounded concurrency and returns the
// outcomes in input order.
func (a *Assembler) run(stage Stage, limit int, items []Item, fn func(Item) Outcome) []Outcome {
	start := time.Now()
	outcomes := make([]Outcome, len(items))

	workers.Each(len(items), limit, func(i int) {
		outcomes[i] = fn(items[i])
	})

	metrics.PipelineStageDuration.WithLabelValues(string(stage)).Observe(time.Since(start).Seconds())
	for _, o := range outcomes {
		status := "ok"
		switch {
		case o.Skipped:
			status = "skipped"
		case o.Err != nil:
			status = "error"
		}
		metrics.PipelineItemsTotal.WithLabelValues(string(o.Stage), status).Inc()
	}

	return outcomes
}
