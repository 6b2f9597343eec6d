package driver

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"hirexpand/internal/builtin"
	"hirexpand/internal/db"
	"hirexpand/internal/diag"
	"hirexpand/internal/hir"
	"hirexpand/internal/observ"
	"hirexpand/internal/source"
	"hirexpand/internal/syntax"
	"hirexpand/internal/trace"
	"hirexpand/internal/tt"
)

// Options configure a run.
type Options struct {
	MaxDiagnostics int
	// Jobs bounds parallelism for files and for calls within a file;
	// <= 0 means GOMAXPROCS.
	Jobs          int
	EnableTimings bool
	Cache         *DiskCache
	Progress      ProgressSink
	Crate         hir.CrateID
}

func (o Options) jobs() int {
	if o.Jobs <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return o.Jobs
}

// ExpandFile loads path and expands its macro calls.
func ExpandFile(ctx context.Context, path string, opts Options) (*Result, error) {
	store := db.New(nil, db.Options{MaxDiagnostics: opts.MaxDiagnostics})
	id, err := store.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return run(ctx, store, []string{path}, []source.FileID{id}, make([]error, 1), opts)
}

// ExpandSource expands text held in memory under name.
func ExpandSource(ctx context.Context, name string, text []byte, opts Options) (*Result, error) {
	store := db.New(nil, db.Options{MaxDiagnostics: opts.MaxDiagnostics})
	id := store.AddFile(name, text)
	return run(ctx, store, []string{name}, []source.FileID{id}, make([]error, 1), opts)
}

// ExpandDir expands every source file under dir. Files that fail to load
// get an IO diagnostic instead of aborting the run.
func ExpandDir(ctx context.Context, dir string, opts Options) (*Result, error) {
	files, err := listSourceFiles(dir)
	if err != nil {
		return nil, err
	}
	store := db.New(source.NewFileSetWithBase(dir), db.Options{MaxDiagnostics: opts.MaxDiagnostics})

	ids := make([]source.FileID, len(files))
	loadErrs := make([]error, len(files))
	for i, path := range files {
		ids[i], loadErrs[i] = store.LoadFile(path)
		if loadErrs[i] != nil {
			// пустая заглушка, чтобы диагностика указывала на нужный путь
			ids[i] = store.AddFile(path, nil)
		}
	}
	return run(ctx, store, files, ids, loadErrs, opts)
}

// ListFiles returns the files ExpandDir would process, in order.
func ListFiles(dir string) ([]string, error) {
	return listSourceFiles(dir)
}

func run(ctx context.Context, store *db.Store, paths []string, ids []source.FileID, loadErrs []error, opts Options) (*Result, error) {
	ctx, root := trace.Start(ctx, trace.ScopeRun, "expand")

	for _, path := range paths {
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusQueued})
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]FileResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(opts.jobs(), len(paths))))
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if loadErrs[i] != nil {
				results[i] = loadFailure(path, ids[i], loadErrs[i], opts)
				emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: loadErrs[i]})
				return nil
			}
			results[i] = expandOne(gctx, store, path, ids[i], opts)
			return gctx.Err()
		})
	}
	err := g.Wait()
	root.End("", trace.With("files", strconv.Itoa(len(paths))))
	if err != nil {
		return nil, err
	}
	return &Result{FileSet: store.FileSet(), Store: store, Files: results}, nil
}

func loadFailure(path string, id source.FileID, err error, opts Options) FileResult {
	bag := diag.NewBag(opts.MaxDiagnostics)
	bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{File: id}, "failed to load file: "+err.Error()))
	return FileResult{Path: path, FileID: id, Bag: bag}
}

func expandOne(ctx context.Context, store *db.Store, path string, id source.FileID, opts Options) FileResult {
	started := time.Now()
	ctx, span := trace.Start(ctx, trace.ScopeFile, "file", trace.File(path))

	var timer *observ.Timer
	if opts.EnableTimings {
		timer = observ.NewTimer()
	}
	file, _ := store.File(id)

	if res, ok := lookupCache(opts, file, path); ok {
		emit(opts.Progress, Event{File: path, Stage: StageExpand, Status: StatusCached, Calls: len(res.Expansions), Elapsed: time.Since(started)})
		span.End(string(StatusCached))
		return res
	}

	bag := diag.NewBag(opts.MaxDiagnostics)
	reporter := &diag.BagReporter{Bag: bag}
	res := FileResult{Path: path, FileID: id, Bag: bag}

	emit(opts.Progress, Event{File: path, Stage: StageParse, Status: StatusWorking})
	_, parse := beginPhase(ctx, timer, "parse")
	hf := hir.RealFile(id)
	parsed, ok := store.ParseFile(hf)
	if !ok {
		parse.end(0, "")
		span.End("missing")
		return loadFailure(path, id, fmt.Errorf("file %d is not in the store", id), opts)
	}
	for _, d := range store.ParseDiagnostics(hf) {
		bag.Add(d)
	}
	parse.end(len(parsed.Nodes()), "nodes")

	_, resolve := beginPhase(ctx, timer, "resolve")
	calls := parsed.Calls()
	res.Expansions = make([]Expansion, len(calls))
	for i, call := range calls {
		res.Expansions[i] = resolveCall(store, parsed, hf, call, opts.Crate, reporter)
	}
	resolve.end(len(calls), "calls")

	emit(opts.Progress, Event{File: path, Stage: StageExpand, Status: StatusWorking, Calls: len(calls)})
	ectx, expand := beginPhase(ctx, timer, "expand")
	g, gctx := errgroup.WithContext(ectx)
	g.SetLimit(max(1, min(opts.jobs(), len(calls))))
	expanded := 0
	for i, call := range calls {
		exp := &res.Expansions[i]
		if _, ok := exp.Kind.IsBuiltin(); !ok || !exp.Resolved {
			continue
		}
		expanded++
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			expandCall(gctx, store, exp, call, reporter)
			return nil
		})
	}
	waitErr := g.Wait()
	expand.end(expanded, "calls")

	bag.Dedup()
	bag.Sort()
	if opts.EnableTimings {
		report := timer.Report()
		res.Timing = &report
	}

	status := StatusDone
	if bag.HasErrors() {
		status = StatusError
	}
	if waitErr == nil {
		storeCache(opts, file, &res)
	}
	emit(opts.Progress, Event{File: path, Stage: StageExpand, Status: status, Calls: len(calls), Elapsed: time.Since(started)})
	span.End(string(status), trace.With("calls", strconv.Itoa(len(calls))))
	return res
}

// resolveCall ищет определение: сначала macro_rules! выше по файлу
// (текстовая область видимости), затем встроенные макросы.
func resolveCall(store *db.Store, parsed *syntax.File, hf hir.HirFileID, call *syntax.MacroCall, krate hir.CrateID, r diag.Reporter) Expansion {
	ast := hir.AstID{File: hf, Index: call.Index()}
	exp := Expansion{Index: call.Index(), Path: call.PathText(), Span: call.Span()}

	var def hir.MacroDefID
	index, shadowed := rulesBefore(parsed, call)
	switch {
	case shadowed:
		def = hir.MacroDefID{
			Crate: krate,
			AstID: hir.AstID{File: hf, Index: index},
			Kind:  hir.MacroDefKind{Tag: hir.DefUserDefined},
		}
	default:
		found, ok := builtin.Find(hir.NewName(call.Name()), krate, ast)
		if !ok {
			diag.ReportInfo(r, diag.ExpUnresolvedMacro, call.PathSpan, fmt.Sprintf("cannot find macro `%s!`", exp.Path)).Emit()
			return exp
		}
		def = found
	}

	exp.Resolved = true
	exp.Kind = def.Kind
	exp.Call = store.InternMacroCall(hir.MacroCallLoc{Def: def, AstID: ast})
	if shadowed {
		b := diag.ReportInfo(r, diag.ExpUserMacroUnsupported, call.PathSpan,
			fmt.Sprintf("macro `%s!` is defined with macro_rules! and is left unexpanded", exp.Path))
		if rules, ok := hir.ToRules(store, def.AstID); ok {
			b = b.WithNote(rules.NameSpan, "defined here")
		}
		b.Emit()
	}
	return exp
}

// rulesBefore returns the node index of the last macro_rules! above call
// whose name matches the call's. Both sides go through hir.NewName, so
// `macro_rules! r#line` shadows `line!`.
func rulesBefore(parsed *syntax.File, call *syntax.MacroCall) (uint32, bool) {
	want := hir.NewName(call.Name())
	var (
		index uint32
		found bool
	)
	for _, m := range parsed.Rules() {
		if m.Index() > call.Index() {
			break
		}
		if hir.NewName(m.Name) == want {
			index, found = m.Index(), true
		}
	}
	return index, found
}

func expandCall(ctx context.Context, store *db.Store, exp *Expansion, call *syntax.MacroCall, r diag.Reporter) {
	_, span := trace.Start(ctx, trace.ScopeCall, "call", trace.Call(uint32(exp.Call), exp.Path))

	var arg tt.Subtree
	if tree, ok := call.TokenTree(); ok {
		if sub, err := tree.Subtree(); err == nil {
			arg = sub
		}
	}
	out, err := builtin.Expand(exp.Kind.Builtin, store, exp.Call, arg)
	if err != nil {
		exp.Err = err
		if errors.Is(err, builtin.ErrUnexpectedToken) {
			diag.ReportError(r, diag.ExpUnexpectedToken, exp.Span,
				fmt.Sprintf("macro `%s!` expects an argument group: `%s!(...)`", exp.Path, exp.Path)).Emit()
		} else {
			diag.ReportError(r, diag.ExpFailed, exp.Span, fmt.Sprintf("expanding `%s!`: %v", exp.Path, err)).Emit()
		}
		span.End("error")
		return
	}
	exp.Output = out.String()
	store.RecordExpansion(exp.Call, []byte(exp.Output))
	span.End(exp.Output)
}

func lookupCache(opts Options, file source.File, path string) (FileResult, bool) {
	if opts.Cache == nil {
		return FileResult{}, false
	}
	var payload DiskPayload
	ok, err := opts.Cache.Get(cacheKey(file.Hash, opts.MaxDiagnostics), &payload)
	if err != nil || !ok {
		return FileResult{}, false
	}
	return payloadToResult(&payload, path, file.ID, opts.MaxDiagnostics), true
}

func storeCache(opts Options, file source.File, res *FileResult) {
	if opts.Cache == nil {
		return
	}
	// ошибка записи кеша не мешает результату
	_ = opts.Cache.Put(cacheKey(file.Hash, opts.MaxDiagnostics), resultToPayload(res))
}

// phase pairs a timer phase with a trace span of the same name.
type phase struct {
	timer *observ.Timer
	idx   int
	span  *trace.Span
}

func beginPhase(ctx context.Context, timer *observ.Timer, name string) (context.Context, phase) {
	ctx, span := trace.Start(ctx, trace.ScopePhase, name)
	return ctx, phase{timer: timer, idx: timer.Begin(name), span: span}
}

// end closes both halves; the span outcome reads like "3 calls".
func (p phase) end(items int, unit string) {
	p.timer.End(p.idx, items, unit)
	if unit == "" {
		p.span.End("")
		return
	}
	p.span.End(fmt.Sprintf("%d %s", items, unit))
}
