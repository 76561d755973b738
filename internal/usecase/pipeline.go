package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"GardenBot/internal/domain"
	"GardenBot/internal/logging"
	"GardenBot/internal/ports"
)

// Stage is a step of a single run.
type Stage string

const (
	StageInit     Stage = "init"
	StageDiscover Stage = "discover"
	StageFilter   Stage = "filter"
	StageSelect   Stage = "select"
	StageExtract  Stage = "extract"
	StageFormat   Stage = "format"
	StagePublish  Stage = "publish"
	StagePersist  Stage = "persist"
	StageDone     Stage = "done"
)

// Outcome summarises how a run ended.
type Outcome string

const (
	OutcomePublished     Outcome = "published"
	OutcomeTip           Outcome = "tip"
	OutcomeDryRun        Outcome = "dry_run"
	OutcomeNoCandidates  Outcome = "no_candidates"
	OutcomeNothingNew    Outcome = "nothing_new"
	OutcomeUnsupported   Outcome = "unsupported_site"
	OutcomeExtractFailed Outcome = "extract_failed"
	OutcomePublishFailed Outcome = "publish_failed"
	OutcomeFailed        Outcome = "failed"
)

// Result reports where a run stopped. Stage is the last stage entered.
type Result struct {
	RunID      string
	Stage      Stage
	Outcome    Outcome
	URL        string
	Message    domain.OutboundMessage
	Discovered int
	Eligible   int
	Err        error
}

// PipelineDeps wires all driven adapters into the orchestration pipeline.
type PipelineDeps struct {
	Source     ports.CandidateSource
	Extractor  ports.ArticleExtractor
	Images     ports.ImageResolver
	Summarizer ports.Summarizer
	Formatter  ports.MessageFormatter
	Publisher  ports.Publisher
	Store      ports.PostStore
	Rand       ports.Rand
	Clock      func() time.Time
	Logger     *slog.Logger
}

// PipelineOptions are the per-process run settings.
type PipelineOptions struct {
	Channel       string
	RecencyWindow time.Duration
	TipEvery      int
	PhotoPosts    bool
	DryRun        bool
}

// Pipeline runs discover, filter, select, extract, format, publish and
// persist once. It never retries and never tries a second candidate.
type Pipeline struct {
	deps PipelineDeps
	opts PipelineOptions
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps, opts PipelineOptions) *Pipeline {
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	if deps.Rand == nil {
		deps.Rand = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	if deps.Logger == nil {
		deps.Logger = logging.Discard()
	}
	return &Pipeline{deps: deps, opts: opts}
}

// Run performs one pass. The returned error is reserved for failures of the
// run itself (store unreadable, store not written after a publish); a
// per-candidate failure ends the run with Result.Err set and a nil error.
func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	log, runID := logging.ForRun(p.deps.Logger)
	res := Result{RunID: runID, Stage: StageInit}
	now := p.deps.Clock()

	log.Info("run started", "dry_run", p.opts.DryRun, "photo_posts", p.opts.PhotoPosts)

	postLog, err := p.deps.Store.Load(ctx)
	if err != nil {
		res = p.fail(log, res, OutcomeFailed, fmt.Errorf("load post log: %w", err))
		return res, res.Err
	}
	log.Info("post log loaded", "posts_count", postLog.PostsCount, "published", len(postLog.PublishedLinks))

	if postLog.TipDue(p.opts.TipEvery) {
		res = p.postTip(ctx, log, res, postLog)
		return res, fatal(res)
	}

	res.Stage = StageDiscover
	candidates, err := p.deps.Source.Discover(ctx, now)
	if err != nil {
		res = p.fail(log, res, OutcomeFailed, fmt.Errorf("discover: %w", err))
		return res, res.Err
	}
	res.Discovered = len(candidates)
	if len(candidates) == 0 {
		log.Info("no candidates discovered")
		return p.done(res, OutcomeNoCandidates), nil
	}

	res.Stage = StageFilter
	eligible := Filter(candidates, postLog, now, p.opts.RecencyWindow)
	res.Eligible = len(eligible)
	log.Info("candidates filtered", "discovered", res.Discovered, "eligible", res.Eligible, "recency_window", p.opts.RecencyWindow)
	if len(eligible) == 0 {
		return p.done(res, OutcomeNothingNew), nil
	}

	res.Stage = StageSelect
	chosen, _ := Select(eligible, p.deps.Rand)
	res.URL = chosen.URL
	log = log.With("url", chosen.URL)
	log.Info("candidate selected", "source", chosen.Source)

	res.Stage = StageExtract
	article, err := p.deps.Extractor.Extract(ctx, chosen.URL)
	if err != nil {
		outcome := OutcomeExtractFailed
		if errors.Is(err, domain.ErrUnsupportedSite) {
			outcome = OutcomeUnsupported
		}
		return p.fail(log, res, outcome, err), nil
	}

	var imageURL string
	if p.opts.PhotoPosts {
		imageURL, err = p.deps.Images.Resolve(ctx, chosen)
		if err != nil {
			return p.fail(log, res, OutcomeExtractFailed, err), nil
		}
	}

	res.Stage = StageFormat
	digest := p.deps.Summarizer.Summarize(ctx, article, now)
	res.Message = p.deps.Formatter.Article(article, digest, chosen, imageURL)
	log.Info("message formatted", "series", digest.Series, "bullets", len(digest.Bullets), "chars", len([]rune(res.Message.Text)), "photo", res.Message.IsPhoto())

	res.Stage = StagePublish
	if p.opts.DryRun {
		log.Info("dry run, message not published", "text", res.Message.Text, "image", res.Message.ImageURL)
		return p.done(res, OutcomeDryRun), nil
	}
	if err := p.publish(ctx, res.Message); err != nil {
		return p.fail(log, res, OutcomePublishFailed, err), nil
	}

	res.Stage = StagePersist
	postLog.RecordArticle(chosen.URL)
	if err := p.deps.Store.Save(ctx, postLog); err != nil {
		res = p.fail(log, res, OutcomeFailed, fmt.Errorf("save post log: %w", err))
		return res, res.Err
	}

	log.Info("article published", "posts_count", postLog.PostsCount)
	return p.done(res, OutcomePublished), nil
}

// Preview runs discovery and filtering only.
func (p *Pipeline) Preview(ctx context.Context) ([]domain.Candidate, error) {
	postLog, err := p.deps.Store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load post log: %w", err)
	}
	now := p.deps.Clock()
	candidates, err := p.deps.Source.Discover(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("discover: %w", err)
	}
	return Filter(candidates, postLog, now, p.opts.RecencyWindow), nil
}

// postTip publishes the static tip instead of an article.
func (p *Pipeline) postTip(ctx context.Context, log *slog.Logger, res Result, postLog domain.PostLog) Result {
	log.Info("tip due", "posts_count", postLog.PostsCount, "every", p.opts.TipEvery)

	res.Stage = StageFormat
	res.Message = p.deps.Formatter.Tip()

	res.Stage = StagePublish
	if p.opts.DryRun {
		log.Info("dry run, tip not published", "text", res.Message.Text)
		return p.done(res, OutcomeDryRun)
	}
	if err := p.publish(ctx, res.Message); err != nil {
		return p.fail(log, res, OutcomePublishFailed, err)
	}

	res.Stage = StagePersist
	postLog.RecordTip()
	if err := p.deps.Store.Save(ctx, postLog); err != nil {
		return p.fail(log, res, OutcomeFailed, fmt.Errorf("save post log: %w", err))
	}

	log.Info("tip published", "posts_count", postLog.PostsCount)
	return p.done(res, OutcomeTip)
}

func (p *Pipeline) publish(ctx context.Context, msg domain.OutboundMessage) error {
	if msg.IsPhoto() {
		return p.deps.Publisher.SendPhoto(ctx, p.opts.Channel, msg.ImageURL, msg.Text, msg.ParseMode)
	}
	return p.deps.Publisher.SendText(ctx, p.opts.Channel, msg.Text, msg.ParseMode)
}

func (p *Pipeline) fail(log *slog.Logger, res Result, outcome Outcome, err error) Result {
	log.Error("run stopped", "stage", res.Stage, "outcome", outcome, "error", err)
	res.Outcome = outcome
	res.Err = err
	return res
}

func (p *Pipeline) done(res Result, outcome Outcome) Result {
	res.Stage = StageDone
	res.Outcome = outcome
	return res
}

// fatal returns the error of runs that failed outside a single candidate.
func fatal(res Result) error {
	if res.Outcome == OutcomeFailed {
		return res.Err
	}
	return nil
}
