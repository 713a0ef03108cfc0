package driver

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"fortio.org/safecast"
	"golang.org/x/sync/errgroup"

	"theorycheck/internal/ast"
	"theorycheck/internal/diag"
	"theorycheck/internal/observ"
	"theorycheck/internal/parser"
	"theorycheck/internal/project"
	"theorycheck/internal/resolve"
	"theorycheck/internal/sema"
	"theorycheck/internal/source"
	"theorycheck/internal/trace"
)

// ErrNoSources is returned when the target contains no C# files.
var ErrNoSources = errors.New("no C# source files found")

// Request configures CheckPath.
type Request struct {
	Jobs             int
	MaxDiagnostics   int
	StrictTail       bool
	IgnoreWarnings   bool
	WarningsAsErrors bool
	TheoryAttrs      []string
	DataAttrs        []string
	Decls            []resolve.Decl

	// Manifest, when set, narrows a scan of its root directory to the
	// include list and drops excluded files.
	Manifest *project.Manifest
	// FileSet receives the loaded files; a fresh one is created when nil.
	FileSet *source.FileSet
	Cache   *DiskCache
	Sink    ProgressSink
}

// FileResult is the outcome for one source file.
type FileResult struct {
	Path   string
	FileID source.FileID
	Bag    *diag.Bag
	Sites  int
	Cached bool
}

// Result of a check run. Files are in path order.
type Result struct {
	FileSet   *source.FileSet
	Files     []FileResult
	CacheHits int
	Timings   observ.Report
}

// Diagnostics returns every diagnostic of the run in file order.
func (r *Result) Diagnostics() []*diag.Diagnostic {
	var out []*diag.Diagnostic
	for i := range r.Files {
		if r.Files[i].Bag != nil {
			out = append(out, r.Files[i].Bag.Pointers()...)
		}
	}
	return out
}

// Counts returns the number of error and warning diagnostics.
func (r *Result) Counts() (errs, warns int) {
	for _, d := range r.Diagnostics() {
		switch d.Severity {
		case diag.SevError:
			errs++
		case diag.SevWarning:
			warns++
		}
	}
	return errs, warns
}

// HasErrors reports whether any file has an error-severity diagnostic.
func (r *Result) HasErrors() bool {
	for i := range r.Files {
		if r.Files[i].Bag != nil && r.Files[i].Bag.HasErrors() {
			return true
		}
	}
	return false
}

// Sites returns the number of checked InlineData sites.
func (r *Result) Sites() int {
	n := 0
	for i := range r.Files {
		n += r.Files[i].Sites
	}
	return n
}

type fileState struct {
	res        *FileResult
	file       *source.File
	ast        *ast.File
	loadFailed bool
}

// CheckPath checks every *.cs file under path (or path itself when it is
// a file). Diagnostics are collected per file; the returned error is
// reserved for operational failures.
func CheckPath(ctx context.Context, path string, req Request) (*Result, error) {
	tracer := trace.FromContext(ctx)
	runSpan := trace.Begin(tracer, trace.ScopeDriver, "check_path", 0).WithExtra("path", path)
	started := time.Now()

	roots := []string{path}
	var excluded func(string) bool
	if m := req.Manifest; m != nil {
		excluded = m.Excluded
		if samePath(path, m.Root) {
			roots = m.Roots()
		}
	}
	paths, err := listCSFiles(roots, excluded)
	if err != nil {
		runSpan.End("error")
		return nil, fmt.Errorf("scan %s: %w", path, err)
	}
	if len(paths) == 0 {
		runSpan.End("no sources")
		return nil, fmt.Errorf("%s: %w", path, ErrNoSources)
	}

	fs := req.FileSet
	if fs == nil {
		fs = source.NewFileSetWithBase(baseDirOf(path))
	}
	result := &Result{FileSet: fs, Files: make([]FileResult, len(paths))}
	states := make([]fileState, len(paths))
	for i, p := range paths {
		emit(req.Sink, Event{File: p, Stage: StageLoad, Status: StatusQueued})
		result.Files[i] = FileResult{Path: p, Bag: diag.NewBag(req.MaxDiagnostics)}
		states[i].res = &result.Files[i]
	}

	timer := observ.NewTimer()
	phase := timer.Begin("load")
	loadFiles(ctx, fs, states, req, runSpan.ID())
	timer.End(phase, fmt.Sprintf("%d files", len(paths)))

	phase = timer.Begin("parse")
	parsePhase := phase
	if err := parseFiles(ctx, states, req, runSpan.ID(), func(d time.Duration) { timer.AddWork(parsePhase, d) }); err != nil {
		runSpan.End("canceled")
		return nil, err
	}
	timer.End(phase, "")

	phase = timer.Begin("resolve")
	env := buildEnv(ctx, states, req, runSpan.ID())
	envDigest, err := environmentDigest(env, req)
	if err != nil {
		runSpan.End("error")
		return nil, err
	}
	timer.End(phase, fmt.Sprintf("%d declarations", len(env.Entries())))

	phase = timer.Begin("check")
	checkPhase := phase
	if err := checkFiles(ctx, states, env, envDigest, req, runSpan.ID(), func(d time.Duration) { timer.AddWork(checkPhase, d) }); err != nil {
		runSpan.End("canceled")
		return nil, err
	}

	for i := range result.Files {
		fr := &result.Files[i]
		finishBag(fr.Bag, req)
		if fr.Cached {
			result.CacheHits++
		}
	}
	if result.CacheHits > 0 {
		timer.End(phase, fmt.Sprintf("%d cached", result.CacheHits))
	} else {
		timer.End(phase, "")
	}
	result.Timings = timer.Report()
	emit(req.Sink, Event{Stage: StageCheck, Status: StatusDone, Elapsed: time.Since(started)})
	runSpan.WithExtra("files", strconv.Itoa(len(paths))).End("")
	return result, nil
}

func samePath(a, b string) bool {
	aa, err1 := filepath.Abs(a)
	bb, err2 := filepath.Abs(b)
	return err1 == nil && err2 == nil && aa == bb
}

func baseDirOf(path string) string {
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		return filepath.Dir(path)
	}
	return path
}

// loadFiles reads files sequentially; FileSet is not safe for concurrent Add.
// A file that cannot be read is replaced by an empty virtual file carrying
// an IO4001 diagnostic.
func loadFiles(ctx context.Context, fs *source.FileSet, states []fileState, req Request, parent uint64) {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopePass, "load", parent)
	defer span.End("")

	for i := range states {
		st := &states[i]
		id, err := fs.Load(st.res.Path)
		if err != nil {
			id = fs.AddVirtual(st.res.Path, nil)
			diag.ReportError(diag.BagReporter{Bag: st.res.Bag}, diag.IOReadFailed, source.Span{File: id},
				fmt.Sprintf("failed to read %s: %v", st.res.Path, err)).Emit()
			emit(req.Sink, Event{File: st.res.Path, Stage: StageLoad, Status: StatusError})
			st.loadFailed = true
		}
		st.res.FileID = id
		st.file = fs.Get(id)
	}
}

func jobLimit(jobs, n int) int {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	return max(1, min(jobs, n))
}

// parseFiles parses every file in parallel. Results are stored by index,
// so no locking is needed.
func parseFiles(ctx context.Context, states []fileState, req Request, parent uint64, work func(time.Duration)) error {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopePass, "parse", parent)
	defer span.End("")

	maxErrors, err := safecast.Conv[uint](max(req.MaxDiagnostics, 0))
	if err != nil {
		return fmt.Errorf("max diagnostics: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobLimit(req.Jobs, len(states)))
	for i := range states {
		st := &states[i]
		if st.loadFailed {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fileSpan := trace.BeginFile(tracer, "parse_file", st.res.Path, span.ID())
			start := time.Now()
			emit(req.Sink, Event{File: st.res.Path, Stage: StageParse, Status: StatusWorking})

			st.ast = parser.ParseFile(st.file, parser.Options{
				MaxErrors: maxErrors,
				Reporter:  diag.NewDedupReporter(diag.BagReporter{Bag: st.res.Bag}),
			})

			fileSpan.End("")
			elapsed := time.Since(start)
			work(elapsed)
			emit(req.Sink, Event{File: st.res.Path, Stage: StageParse, Status: StatusDone, Elapsed: elapsed})
			return nil
		})
	}
	return g.Wait()
}

// fileRouter sends each diagnostic to the bag of the file its span is in.
type fileRouter struct {
	bags map[source.FileID]*diag.Bag
}

func (r fileRouter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	if bag, ok := r.bags[primary.File]; ok {
		diag.BagReporter{Bag: bag}.Report(code, sev, primary, msg, notes)
	}
}

func buildEnv(ctx context.Context, states []fileState, req Request, parent uint64) *resolve.Env {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopePass, "resolve", parent)
	emit(req.Sink, Event{Stage: StageResolve, Status: StatusWorking})

	files := make([]*ast.File, 0, len(states))
	router := fileRouter{bags: make(map[source.FileID]*diag.Bag, len(states))}
	for i := range states {
		if states[i].ast != nil {
			files = append(files, states[i].ast)
		}
		router.bags[states[i].res.FileID] = states[i].res.Bag
	}
	env := resolve.NewEnv(files, req.Decls, router)

	emit(req.Sink, Event{Stage: StageResolve, Status: StatusDone})
	span.WithExtra("files", strconv.Itoa(len(files))).End("")
	return env
}

// cacheKeyInput is everything besides file content that changes a file's
// check result.
type cacheKeyInput struct {
	Schema         uint16          `json:"schema"`
	Env            []resolve.Entry `json:"env"`
	StrictTail     bool            `json:"strict_tail"`
	TheoryAttrs    []string        `json:"theory"`
	DataAttrs      []string        `json:"data"`
	MaxDiagnostics int             `json:"max_diagnostics"`
}

func environmentDigest(env *resolve.Env, req Request) (project.Digest, error) {
	if req.Cache == nil {
		return project.Digest{}, nil
	}
	d, err := project.CanonicalDigest(cacheKeyInput{
		Schema:         diskCacheSchemaVersion,
		Env:            env.Entries(),
		StrictTail:     req.StrictTail,
		TheoryAttrs:    req.TheoryAttrs,
		DataAttrs:      req.DataAttrs,
		MaxDiagnostics: req.MaxDiagnostics,
	})
	if err != nil {
		return project.Digest{}, fmt.Errorf("cache key: %w", err)
	}
	return d, nil
}

func checkFiles(ctx context.Context, states []fileState, env *resolve.Env, envDigest project.Digest, req Request, parent uint64, work func(time.Duration)) error {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopePass, "check", parent)
	defer span.End("")

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobLimit(req.Jobs, len(states)))
	for i := range states {
		st := &states[i]
		if st.ast == nil {
			emit(req.Sink, Event{File: st.res.Path, Stage: StageCheck, Status: StatusError})
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			emit(req.Sink, Event{File: st.res.Path, Stage: StageCheck, Status: StatusWorking})
			if err := checkFile(gctx, st, env, envDigest, req, span.ID()); err != nil {
				return err
			}

			status := StatusDone
			switch {
			case st.res.Cached:
				status = StatusCached
			case st.res.Bag.HasErrors():
				status = StatusError
			}
			elapsed := time.Since(start)
			work(elapsed)
			emit(req.Sink, Event{File: st.res.Path, Stage: StageCheck, Status: status, Elapsed: elapsed})
			return nil
		})
	}
	return g.Wait()
}

// checkFile stores the file's verdict in st.res and the disk cache. A
// check cut short by ctx returns its error and leaves both untouched.
func checkFile(ctx context.Context, st *fileState, env *resolve.Env, envDigest project.Digest, req Request, parent uint64) error {
	tracer := trace.FromContext(ctx)
	fileSpan := trace.BeginFile(tracer, "check_file", st.res.Path, parent)
	r := diag.BagReporter{Bag: st.res.Bag}

	key := project.Combine(project.Digest(st.file.Hash), envDigest)
	if req.Cache != nil {
		var payload DiskPayload
		ok, err := req.Cache.Get(key, &payload)
		if err != nil {
			diag.ReportWarning(r, diag.IOCacheRejected, source.Span{File: st.file.ID},
				fmt.Sprintf("disk cache entry ignored: %v", err)).Emit()
		}
		if ok {
			if diags, fresh := payload.restore(st.file); fresh {
				for _, d := range diags {
					st.res.Bag.Add(d)
				}
				st.res.Sites = payload.Sites
				st.res.Cached = true
				fileSpan.End("cached")
				return nil
			}
		}
	}

	local := diag.NewBag(req.MaxDiagnostics)
	sites := env.Sites(st.ast, resolve.Config{
		TheoryAttrs: req.TheoryAttrs,
		DataAttrs:   req.DataAttrs,
		Reporter:    diag.BagReporter{Bag: local},
	})
	checked, err := sema.Check(trace.WithParent(ctx, fileSpan), sites, sema.Options{
		Bind:           sema.BindOptions{StrictTail: req.StrictTail},
		MaxDiagnostics: req.MaxDiagnostics,
	})
	if err != nil {
		fileSpan.End("canceled")
		return err
	}
	// резолвер и проверка пишут в разные Bag, лимит общий на файл
	local.Merge(checked)
	local.Limit(req.MaxDiagnostics)
	st.res.Sites = len(sites)

	if req.Cache != nil {
		if err := req.Cache.Put(key, payloadFor(st.file, len(sites), local.Items())); err != nil {
			diag.ReportWarning(r, diag.IOCacheRejected, source.Span{File: st.file.ID},
				fmt.Sprintf("failed to write disk cache: %v", err)).Emit()
		}
	}
	st.res.Bag.Merge(local)
	st.res.Bag.Limit(req.MaxDiagnostics)
	fileSpan.WithExtra("sites", strconv.Itoa(len(sites))).End("")
	return nil
}

// finishBag applies ordering and the warning policy.
func finishBag(bag *diag.Bag, req Request) {
	bag.Sort()
	bag.Dedup()
	if req.IgnoreWarnings {
		bag.Filter(func(d diag.Diagnostic) bool { return d.Severity >= diag.SevError })
	}
	if req.WarningsAsErrors {
		bag.PromoteWarnings()
	}
}
