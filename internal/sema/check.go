package sema

import (
	"context"
	"fmt"
	"strconv"

	"theorycheck/internal/diag"
	"theorycheck/internal/source"
	"theorycheck/internal/trace"
	"theorycheck/internal/types"
)

// Site is one literal-data attribute applied to one Theory method.
type Site struct {
	Method string
	Attr   source.Span // the whole attribute, anchors the shortfall diagnostic
	Params []types.Param
	Args   []types.Value
}

// Options configure a check run.
type Options struct {
	Reporter diag.Reporter
	Bind     BindOptions
	// MaxDiagnostics bounds the bag built by Check; 0 means no explicit limit.
	MaxDiagnostics int
}

// CheckSite binds the site and reports count problems first, then one
// diagnostic per failing pair in parameter order. Only the reporter is written.
func CheckSite(site Site, opts Options) Binding {
	b := Bind(site.Args, site.Params, opts.Bind)
	r := opts.Reporter
	if r == nil {
		return b
	}

	if b.Shortfall {
		diag.ReportError(r, diag.RuleInlineDataShortfall, site.Attr, msgShortfall).Emit()
	}
	for _, v := range b.Excess {
		diag.ReportError(r, diag.RuleInlineDataExcess, v.Span, msgExcess(v)).Emit()
	}

	for _, p := range b.Matched {
		checkPair(r, p)
	}
	return b
}

func checkPair(r diag.Reporter, p Pair) {
	if p.Value.IsNull() {
		if !NullLegal(p.Param.Type) {
			diag.ReportWarning(r, diag.RuleInlineDataNullValueType, p.Value.Span, msgNullValueType(p.Param)).
				WithNote(p.Param.Span, noteParam(p.Param)).
				Emit()
		}
		return
	}
	if !Convertible(p.Param.Type, p.Value) {
		diag.ReportError(r, diag.RuleInlineDataNotConvertible, p.Value.Span, msgNotConvertible(p.Param)).
			WithNote(p.Param.Span, noteParam(p.Param)).
			Emit()
	}
}

// Check runs CheckSite over every site and returns the sorted diagnostics.
// opts.Reporter, if set, also receives every diagnostic. If ctx is done
// before the last site, Check stops and returns ctx.Err() with the partial
// bag; such a result must not be treated as the file's verdict.
func Check(ctx context.Context, sites []Site, opts Options) (*diag.Bag, error) {
	bag := diag.NewBag(opts.MaxDiagnostics)
	var r diag.Reporter = diag.BagReporter{Bag: bag}
	if opts.Reporter != nil {
		r = teeReporter{bag: bag, next: opts.Reporter}
	}
	siteOpts := opts
	siteOpts.Reporter = r

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopePass, "check_sites", trace.ParentFrom(ctx))
	for _, s := range sites {
		if err := ctx.Err(); err != nil {
			span.End("canceled")
			bag.Sort()
			return bag, err
		}
		b := CheckSite(s, siteOpts)
		if tracer.Level() >= trace.LevelDebug {
			trace.Point(tracer, trace.ScopeSite, "bind:"+s.Method, bindingDetail(b))
		}
	}
	span.WithExtra("sites", strconv.Itoa(len(sites))).End("")

	bag.Sort()
	return bag, nil
}

type teeReporter struct {
	bag  *diag.Bag
	next diag.Reporter
}

func (t teeReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	diag.BagReporter{Bag: t.bag}.Report(code, sev, primary, msg, notes)
	t.next.Report(code, sev, primary, msg, notes)
}

func bindingDetail(b Binding) string {
	return fmt.Sprintf("matched=%d tail=%d excess=%d shortfall=%t", len(b.Matched), len(b.Tail), len(b.Excess), b.Shortfall)
}
