package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"theorycheck/internal/diag"
	"theorycheck/internal/resolve"
	"theorycheck/internal/source"
	"theorycheck/internal/types"
)

// ErrInvalidManifest is returned by Load when theorycheck.toml has errors.
// The details are reported as PRJ diagnostics.
var ErrInvalidManifest = errors.New("invalid " + ManifestName)

// Manifest is a loaded theorycheck.toml.
type Manifest struct {
	Path   string
	Root   string
	File   source.FileID
	Config Config
}

// Config mirrors the manifest layout.
type Config struct {
	Project    ProjectConfig    `toml:"project"`
	Check      CheckConfig      `toml:"check"`
	Attributes AttributesConfig `toml:"attributes"`
	Types      TypesConfig      `toml:"types"`
}

type ProjectConfig struct {
	Name    string   `toml:"name" validate:"omitempty,max=128"`
	Include []string `toml:"include" validate:"dive,required,relpath"`
	Exclude []string `toml:"exclude" validate:"dive,required,relpath"`
}

type CheckConfig struct {
	StrictTail       bool `toml:"strict-tail"`
	WarningsAsErrors bool `toml:"warnings-as-errors"`
	MaxDiagnostics   int  `toml:"max-diagnostics" validate:"gte=0,lte=65535"`
}

// AttributesConfig adds attribute names to the built-in Theory and
// InlineData.
type AttributesConfig struct {
	Theory     []string `toml:"theory" validate:"dive,required,csname"`
	InlineData []string `toml:"inline-data" validate:"dive,required,csname"`
}

// TypesConfig declares types whose source is not part of the project.
type TypesConfig struct {
	Enums      []TypeEntry      `toml:"enum" validate:"unique=Name,dive"`
	Interfaces []InterfaceEntry `toml:"interface" validate:"unique=Name,dive"`
	Structs    []TypeEntry      `toml:"struct" validate:"unique=Name,dive"`
	Classes    []TypeEntry      `toml:"class" validate:"unique=Name,dive"`
}

type TypeEntry struct {
	Name string `toml:"name" validate:"required,csname"`
}

type InterfaceEntry struct {
	Name          string   `toml:"name" validate:"required,csname"`
	ImplementedBy []string `toml:"implemented-by" validate:"dive,implementor"`
}

// Load finds theorycheck.toml above start and loads it into fs. ok is false
// when there is no manifest. Decoding and validation problems are reported
// to r; Load then returns ErrInvalidManifest. Unknown keys are warnings.
func Load(fs *source.FileSet, start string, r diag.Reporter) (m *Manifest, ok bool, err error) {
	path, ok, err := FindManifest(start)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err = LoadFile(fs, path, r)
	return m, true, err
}

// LoadFile loads the manifest at path.
func LoadFile(fs *source.FileSet, path string, r diag.Reporter) (*Manifest, error) {
	id, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	file := fs.Get(id)
	m := &Manifest{Path: path, Root: filepath.Dir(path), File: id}

	meta, err := toml.Decode(string(file.Content), &m.Config)
	if err != nil {
		diag.ReportError(r, diag.PrjManifestDecode, decodeSpan(file, err), "failed to parse TOML: "+decodeMessage(err)).Emit()
		return nil, fmt.Errorf("%s: %w", path, ErrInvalidManifest)
	}
	for _, key := range meta.Undecoded() {
		diag.ReportWarning(r, diag.PrjUnknownKey, keySpan(file, key),
			fmt.Sprintf("unknown key %q is ignored", key.String())).Emit()
	}
	if n := validateConfig(&m.Config, file, r); n > 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrInvalidManifest)
	}
	return m, nil
}

func decodeMessage(err error) string {
	var perr toml.ParseError
	if errors.As(err, &perr) {
		return perr.Message
	}
	return err.Error()
}

func decodeSpan(f *source.File, err error) source.Span {
	var perr toml.ParseError
	if !errors.As(err, &perr) {
		return fileStart(f)
	}
	start, end := perr.Position.Start, perr.Position.Start+perr.Position.Len
	if start < 0 || start > len(f.Content) {
		return fileStart(f)
	}
	end = min(max(end, start), len(f.Content))
	return source.Span{File: f.ID, Start: uint32(start), End: uint32(end)} // #nosec G115 -- bounded by content length
}

func fileStart(f *source.File) source.Span {
	return source.Span{File: f.ID}
}

// keySpan points at the line that defines the last component of key.
func keySpan(f *source.File, key toml.Key) source.Span {
	if len(key) == 0 {
		return fileStart(f)
	}
	last := key[len(key)-1]
	re := regexp.MustCompile(`(?m)^[ \t]*(?:\[+[ \t]*)?(?:[\w.-]+\.)?(` + regexp.QuoteMeta(last) + `)[ \t]*[=\]]`)
	loc := re.FindSubmatchIndex(f.Content)
	if loc == nil {
		return fileStart(f)
	}
	return source.Span{File: f.ID, Start: uint32(loc[2]), End: uint32(loc[3])} // #nosec G115 -- bounded by content length
}

// valueSpan points at the first quoted occurrence of value.
func valueSpan(f *source.File, value string) source.Span {
	if value == "" {
		return fileStart(f)
	}
	needle := strconv.Quote(value)
	i := strings.Index(string(f.Content), needle)
	if i < 0 {
		return fileStart(f)
	}
	return source.Span{File: f.ID, Start: uint32(i), End: uint32(i + len(needle))} // #nosec G115 -- bounded by content length
}

// Decls converts the [types] tables into resolver declarations.
func (m *Manifest) Decls() []resolve.Decl {
	if m == nil {
		return nil
	}
	t := m.Config.Types
	out := make([]resolve.Decl, 0, len(t.Enums)+len(t.Interfaces)+len(t.Structs)+len(t.Classes))
	for _, e := range t.Enums {
		out = append(out, resolve.Decl{Kind: resolve.DeclEnum, Name: e.Name})
	}
	for _, e := range t.Interfaces {
		var impl types.NaturalSet
		for _, name := range e.ImplementedBy {
			if set, ok := types.ParseImplementor(name); ok {
				impl = impl.Union(set)
			}
		}
		out = append(out, resolve.Decl{Kind: resolve.DeclInterface, Name: e.Name, Implementors: impl})
	}
	for _, e := range t.Structs {
		out = append(out, resolve.Decl{Kind: resolve.DeclStruct, Name: e.Name})
	}
	for _, e := range t.Classes {
		out = append(out, resolve.Decl{Kind: resolve.DeclClass, Name: e.Name})
	}
	return out
}

// Roots returns the directories to scan: the include list relative to the
// manifest, or the manifest directory itself.
func (m *Manifest) Roots() []string {
	if len(m.Config.Project.Include) == 0 {
		return []string{m.Root}
	}
	out := make([]string, 0, len(m.Config.Project.Include))
	for _, inc := range m.Config.Project.Include {
		out = append(out, filepath.Join(m.Root, filepath.FromSlash(inc)))
	}
	return out
}

// Excluded reports whether path lies under one of the exclude entries.
func (m *Manifest) Excluded(path string) bool {
	if m == nil || len(m.Config.Project.Exclude) == 0 {
		return false
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	for _, ex := range m.Config.Project.Exclude {
		dir := filepath.Join(m.Root, filepath.FromSlash(ex))
		rel, err := filepath.Rel(dir, abs)
		if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// DefaultTemplate is written by `theorycheck init`.
const DefaultTemplate = `[project]
name = %q
# include = ["tests"]
# exclude = ["tests/generated"]

[check]
strict-tail = false
warnings-as-errors = false
max-diagnostics = 200

[attributes]
# theory = ["MyTheory"]
# inline-data = ["MyInlineData"]

# Types from referenced assemblies the checker cannot see.
# [[types.enum]]
# name = "Acme.Color"
#
# [[types.interface]]
# name = "Acme.IShape"
# implemented-by = ["int", "double", "enum"]
`

// WriteTemplate creates dir/theorycheck.toml. An existing file is kept
// unless force is set.
func WriteTemplate(dir, name string, force bool) (string, error) {
	if name == "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return "", fmt.Errorf("failed to resolve %q: %w", dir, err)
		}
		name = filepath.Base(abs)
	}
	path := filepath.Join(dir, ManifestName)
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !force {
		flags |= os.O_EXCL
	}
	// #nosec G304 -- path is built from the user-provided directory
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	if _, err := fmt.Fprintf(f, DefaultTemplate, name); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", path, err)
	}
	return path, nil
}
