// Copyright 2026 the kolett authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package render evaluates template expressions against a map of named
// values. It backs both destination-path resolution and report rendering.
package render

import (
	"fmt"
	"regexp"
	"strings"
	"text/template"
)

// 🧩 TemplateError reports a template that could not be parsed or executed.
// Name carries the offending variable or filter when it can be determined.
type TemplateError struct {
	Template string // template source text
	Name     string // offending variable or filter, if known
	Cause    error
}

func (e *TemplateError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("template %q: %v (offending name: %s)", e.Template, e.Cause, e.Name)
	}
	return fmt.Sprintf("template %q: %v", e.Template, e.Cause)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// 🎨 Evaluator renders template expressions. It is stateless apart from its
// filter table and performs no filesystem or network access, so the same
// (template, context) pair always yields the same output.
type Evaluator struct {
	funcs template.FuncMap
}

// 🏭 New creates an evaluator with the builtin filter set.
func New() *Evaluator {
	return &Evaluator{funcs: builtinFilters()}
}

// 📝 RegisterFilter adds or replaces a named filter. Filters take the piped
// value as their last argument, per text/template pipeline convention.
func (e *Evaluator) RegisterFilter(name string, fn any) {
	e.funcs[name] = fn
}

// 🎯 Evaluate renders tmpl against ctx. Variables may be written Jinja-style
// ({{ shot_name }}) or Go-style ({{ .shot_name }}); bare identifiers are
// desugared to field references before parsing. A variable absent from ctx, a
// syntax error, or an unknown filter all fail with *TemplateError.
func (e *Evaluator) Evaluate(tmpl string, ctx map[string]any) (string, error) {
	desugared := e.desugar(tmpl)

	t, err := template.New("expr").Funcs(e.funcs).Option("missingkey=error").Parse(desugared)
	if err != nil {
		return "", &TemplateError{Template: tmpl, Name: offendingName(err), Cause: err}
	}

	var buf strings.Builder
	if err := t.Execute(&buf, ctx); err != nil {
		return "", &TemplateError{Template: tmpl, Name: offendingName(err), Cause: err}
	}
	return buf.String(), nil
}

var (
	missingKeyRe  = regexp.MustCompile(`no entry for key "([^"]+)"`)
	badFunctionRe = regexp.MustCompile(`function "([^"]+)" not defined`)
)

// offendingName pulls the variable or filter name out of a text/template
// error message, best effort.
func offendingName(err error) string {
	msg := err.Error()
	if m := missingKeyRe.FindStringSubmatch(msg); m != nil {
		return m[1]
	}
	if m := badFunctionRe.FindStringSubmatch(msg); m != nil {
		return m[1]
	}
	return ""
}

// reservedWords are action keywords and literals that must never be rewritten
// into field references.
var reservedWords = map[string]bool{
	"if": true, "else": true, "end": true, "range": true, "with": true,
	"template": true, "block": true, "define": true, "nil": true,
	"true": true, "false": true,
}

// builtinTemplateFuncs are text/template predeclared functions.
var builtinTemplateFuncs = map[string]bool{
	"and": true, "or": true, "not": true, "len": true, "index": true,
	"slice": true, "print": true, "printf": true, "println": true,
	"call": true, "html": true, "js": true, "urlquery": true,
	"eq": true, "ne": true, "lt": true, "le": true, "gt": true, "ge": true,
}

// desugar rewrites bare identifiers inside {{ }} actions into field
// references, so that {{ shot_name | upper }} parses as {{ .shot_name | upper }}.
// Keywords, declared variables ($x), filter names, and quoted strings pass
// through untouched.
func (e *Evaluator) desugar(tmpl string) string {
	var out strings.Builder
	rest := tmpl
	for {
		start := strings.Index(rest, "{{")
		if start < 0 {
			out.WriteString(rest)
			return out.String()
		}
		end := strings.Index(rest[start:], "}}")
		if end < 0 {
			out.WriteString(rest)
			return out.String()
		}
		end += start
		out.WriteString(rest[:start+2])
		out.WriteString(e.desugarAction(rest[start+2 : end]))
		out.WriteString("}}")
		rest = rest[end+2:]
	}
}

func (e *Evaluator) skipRewrite(ident string) bool {
	if reservedWords[ident] || builtinTemplateFuncs[ident] {
		return true
	}
	_, isFilter := e.funcs[ident]
	return isFilter
}

// desugarAction rewrites one action body.
func (e *Evaluator) desugarAction(action string) string {
	var out strings.Builder
	runes := []rune(action)
	i := 0
	for i < len(runes) {
		c := runes[i]
		switch {
		case c == '"' || c == '`':
			// quoted string, copy verbatim
			quote := c
			out.WriteRune(c)
			i++
			for i < len(runes) {
				out.WriteRune(runes[i])
				if runes[i] == '\\' && quote == '"' && i+1 < len(runes) {
					i++
					out.WriteRune(runes[i])
					i++
					continue
				}
				if runes[i] == quote {
					i++
					break
				}
				i++
			}
		case c == '.' || c == '$':
			// field reference or declared variable, copy through its identifier
			out.WriteRune(c)
			i++
			for i < len(runes) && isIdentRune(runes[i]) {
				out.WriteRune(runes[i])
				i++
			}
		case isIdentStart(c):
			j := i
			for j < len(runes) && isIdentRune(runes[j]) {
				j++
			}
			ident := string(runes[i:j])
			if !e.skipRewrite(ident) {
				out.WriteRune('.')
			}
			out.WriteString(ident)
			i = j
		default:
			out.WriteRune(c)
			i++
		}
	}
	return out.String()
}

func isIdentStart(c rune) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isIdentRune(c rune) bool {
	return isIdentStart(c) || ('0' <= c && c <= '9')
}
