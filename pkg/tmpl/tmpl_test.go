package tmpl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Title  string
	Artist string
	Year   int
	Type   string
}

func TestRender(t *testing.T) {
	starry := record{Title: "Starry Night", Artist: "Vincent van Gogh", Year: 1889, Type: "Painting"}

	tests := []struct {
		name    string
		tmpl    string
		data    any
		want    string
		wantErr bool
	}{
		{
			name: "struct fields",
			tmpl: "{{ .Title }} by {{ .Artist }} ({{ .Year }})",
			data: starry,
			want: "Starry Night by Vincent van Gogh (1889)",
		},
		{
			name: "map data",
			tmpl: "{{ .Title }}",
			data: map[string]string{"Title": "Mona Lisa"},
			want: "Mona Lisa",
		},
		{
			name: "no variables",
			tmpl: "static string",
			data: nil,
			want: "static string",
		},
		{
			name:    "missing key errors",
			tmpl:    "{{ .Missing }}",
			data:    map[string]string{"Title": "test"},
			wantErr: true,
		},
		{
			name:    "unknown field errors",
			tmpl:    "{{ .Museum }}",
			data:    starry,
			wantErr: true,
		},
		{
			name:    "invalid template syntax",
			tmpl:    "{{ .Title }",
			data:    starry,
			wantErr: true,
		},
		{
			name: "shq with single quotes",
			tmpl: "open {{ .Title | shq }}",
			data: record{Title: "Whistler's Mother"},
			want: `open 'Whistler'\''s Mother'`,
		},
		{
			name: "shq with empty string",
			tmpl: "{{ .Title | shq }}",
			data: record{},
			want: "''",
		},
		{
			name: "csv leaves plain fields alone",
			tmpl: "{{ csv .Title }},{{ .Year }}",
			data: starry,
			want: "Starry Night,1889",
		},
		{
			name: "csv quotes commas and quotes",
			tmpl: "{{ csv .Title }}",
			data: record{Title: `Dogs Playing Poker, "No. 3"`},
			want: `"Dogs Playing Poker, ""No. 3"""`,
		},
		{
			name: "json encodes strings",
			tmpl: `{"t": {{ json .Title }}}`,
			data: record{Title: `say "hi"`},
			want: `{"t": "say \"hi\""}`,
		},
		{
			name: "case helpers",
			tmpl: "{{ upper .Type }} {{ lower .Artist }}",
			data: starry,
			want: "PAINTING vincent van gogh",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Render(tt.tmpl, tt.data)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_ReusedAcrossRecords(t *testing.T) {
	tpl, err := Parse("{{ .Title }}\t{{ .Year }}")
	require.NoError(t, err)

	first, err := tpl.Execute(record{Title: "A", Year: 1})
	require.NoError(t, err)
	second, err := tpl.Execute(record{Title: "B", Year: 2})
	require.NoError(t, err)

	assert.Equal(t, "A\t1", first)
	assert.Equal(t, "B\t2", second)
}
