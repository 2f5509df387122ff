package control

import (
	"fmt"
	"io/fs"
	"path"
	"reflect"
	"strings"

	"control-resolver/internal/markup"
)

// MarkupFile is the source of a markup-defined control.
type MarkupFile struct {
	Path    string
	Content []byte
}

// MarkupLoader loads markup sources named by markup rules.
type MarkupLoader interface {
	GetMarkup(path string) (*MarkupFile, error)
}

// ControlBuilder instantiates a compiled markup control.
type ControlBuilder interface {
	BuildControl() (any, error)
}

// BuilderFactory compiles a markup file into a ControlBuilder.
type BuilderFactory interface {
	GetControlBuilder(file *MarkupFile) (ControlBuilder, error)
}

// FSLoader loads markup files from a file system.
type FSLoader struct {
	FS fs.FS
}

// GetMarkup implements MarkupLoader.
func (l FSLoader) GetMarkup(p string) (*MarkupFile, error) {
	name := path.Clean(strings.TrimPrefix(p, "/"))

	content, err := fs.ReadFile(l.FS, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read markup file %s: %w", p, err)
	}

	return &MarkupFile{Path: p, Content: content}, nil
}

// MarkupControl is the instance type of markup controls without a
// @baseType directive.
type MarkupControl struct {
	Src        string
	Directives markup.Directives
	// Tags are the element tags of the markup body.
	Tags []markup.Tag
}

// DirectiveBuilderFactory builds markup controls from their directives:
// "@baseType Namespace.Name, Assembly" selects the registered control type
// to instantiate, otherwise a *MarkupControl is produced.
type DirectiveBuilderFactory struct {
	Types *Registry
}

// GetControlBuilder implements BuilderFactory.
func (f DirectiveBuilderFactory) GetControlBuilder(file *MarkupFile) (ControlBuilder, error) {
	dirs, body := markup.ParseDirectives(file.Content)

	tags, err := markup.Scan(strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse markup control %s: %w", file.Path, err)
	}

	b := &DirectiveBuilder{File: file, Directives: dirs, Tags: tags}

	if base, ok := dirs.Get("baseType"); ok {
		reg, found := f.Types.LookupKey(base)
		if !found {
			return nil, fmt.Errorf("markup control %s: base type %q is not registered", file.Path, base)
		}

		b.base = &reg
	}

	return b, nil
}

// DirectiveBuilder is the ControlBuilder of DirectiveBuilderFactory.
type DirectiveBuilder struct {
	File       *MarkupFile
	Directives markup.Directives
	Tags       []markup.Tag

	base *Registration
}

// BuildControl implements ControlBuilder.
func (b *DirectiveBuilder) BuildControl() (any, error) {
	if b.base == nil {
		return &MarkupControl{Src: b.File.Path, Directives: b.Directives, Tags: b.Tags}, nil
	}

	if b.base.New != nil {
		return b.base.New(), nil
	}

	return reflect.New(b.base.Type).Interface(), nil
}
