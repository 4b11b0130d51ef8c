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

package render_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kolett/kolett/pkg/render"
)

// 🧪 TestEvaluate tests variable interpolation and filter chains
func TestEvaluate(t *testing.T) {
	tests := []struct {
		name     string
		template string
		context  map[string]any
		want     string
	}{
		{
			name:     "bare identifiers",
			template: "{{ shot_name }}_{{ version }}.{{ extension }}",
			context:  map[string]any{"shot_name": "s01", "version": "v004", "extension": "exr"},
			want:     "s01_v004.exr",
		},
		{
			name:     "go style field references",
			template: "{{ .shot_name }}_{{ .version }}",
			context:  map[string]any{"shot_name": "s01", "version": "v004"},
			want:     "s01_v004",
		},
		{
			name:     "upper filter",
			template: "{{ shot_name | upper }}",
			context:  map[string]any{"shot_name": "s01"},
			want:     "S01",
		},
		{
			name:     "lower filter",
			template: "{{ client | lower }}/final",
			context:  map[string]any{"client": "BTL"},
			want:     "btl/final",
		},
		{
			name:     "default keeps non-empty value",
			template: `{{ version | default "v001" }}`,
			context:  map[string]any{"version": "v004"},
			want:     "v004",
		},
		{
			name:     "default substitutes empty value",
			template: `{{ version | default "v001" }}`,
			context:  map[string]any{"version": ""},
			want:     "v001",
		},
		{
			name:     "path filters",
			template: "{{ source | basename }} in {{ source | dirname }}",
			context:  map[string]any{"source": "/mnt/shots/s01.exr"},
			want:     "s01.exr in /mnt/shots",
		},
		{
			name:     "stem and ext",
			template: "{{ source | stem }}_graded{{ source | ext }}",
			context:  map[string]any{"source": "/mnt/shots/s01.exr"},
			want:     "s01_graded.exr",
		},
		{
			name:     "title filter",
			template: "{{ client | title }}",
			context:  map[string]any{"client": "beyond the line"},
			want:     "Beyond The Line",
		},
		{
			name:     "pad filter",
			template: "frame_{{ frame | pad 4 }}",
			context:  map[string]any{"frame": 42},
			want:     "frame_0042",
		},
		{
			name:     "replace filter",
			template: `{{ name | replace " " "_" }}`,
			context:  map[string]any{"name": "final grade"},
			want:     "final_grade",
		},
		{
			name:     "numeric metadata",
			template: "frame_{{ frame }}",
			context:  map[string]any{"frame": float64(42)},
			want:     "frame_42",
		},
		{
			name:     "no actions",
			template: "static.txt",
			context:  map[string]any{},
			want:     "static.txt",
		},
	}

	ev := render.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ev.Evaluate(tt.template, tt.context)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// 🧪 TestEvaluate_Errors tests the TemplateError cases
func TestEvaluate_Errors(t *testing.T) {
	ev := render.New()

	t.Run("undefined variable", func(t *testing.T) {
		_, err := ev.Evaluate("{{ shot_name }}_{{ missing }}", map[string]any{"shot_name": "s01"})
		require.Error(t, err)

		var terr *render.TemplateError
		require.ErrorAs(t, err, &terr)
		assert.Equal(t, "missing", terr.Name)
		assert.Contains(t, terr.Template, "missing")
	})

	t.Run("undefined variable is never empty string", func(t *testing.T) {
		out, err := ev.Evaluate("{{ missing }}", map[string]any{})
		require.Error(t, err)
		assert.Empty(t, out)
	})

	t.Run("unknown filter", func(t *testing.T) {
		_, err := ev.Evaluate("{{ name | frobnicate }}", map[string]any{"name": "x"})
		require.Error(t, err)

		var terr *render.TemplateError
		require.ErrorAs(t, err, &terr)
		assert.Equal(t, "frobnicate", terr.Name)
	})

	t.Run("malformed syntax", func(t *testing.T) {
		_, err := ev.Evaluate("{{ if }}", map[string]any{})
		require.Error(t, err)

		var terr *render.TemplateError
		require.ErrorAs(t, err, &terr)
	})
}

// 🧪 TestEvaluate_Pure verifies identical inputs yield identical outputs
func TestEvaluate_Pure(t *testing.T) {
	ev := render.New()
	ctx := map[string]any{"shot_name": "s01", "version": "v004"}

	first, err := ev.Evaluate("{{ shot_name }}_{{ version | upper }}", ctx)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := ev.Evaluate("{{ shot_name }}_{{ version | upper }}", ctx)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

// 🧪 TestEvaluate_ControlFlow tests report-style templates with ranges
func TestEvaluate_ControlFlow(t *testing.T) {
	ev := render.New()

	tmpl := "{{ range results }}{{ source }}={{ status }};{{ end }}"
	out, err := ev.Evaluate(tmpl, map[string]any{
		"results": []map[string]any{
			{"source": "a.exr", "status": "succeeded"},
			{"source": "b.exr", "status": "failed"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "a.exr=succeeded;b.exr=failed;", out)
}

// 🧪 TestEvaluate_NestedKeys tests dotted access into nested maps
func TestEvaluate_NestedKeys(t *testing.T) {
	ev := render.New()

	out, err := ev.Evaluate("{{ counts.succeeded }}/{{ counts.total }}", map[string]any{
		"counts": map[string]any{"succeeded": 2, "total": 3},
	})
	require.NoError(t, err)
	assert.Equal(t, "2/3", out)
}

// 🧪 TestRegisterFilter tests extending the filter table
func TestRegisterFilter(t *testing.T) {
	ev := render.New()
	ev.RegisterFilter("reverse", func(v any) string {
		s := []rune(v.(string))
		for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
			s[i], s[j] = s[j], s[i]
		}
		return string(s)
	})

	out, err := ev.Evaluate("{{ name | reverse }}", map[string]any{"name": "abc"})
	require.NoError(t, err)
	assert.Equal(t, "cba", out)
}
