package argv

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name           string
		tokens         []string
		wantPositional []string
		wantOpts       Options
	}{
		{
			name:           "positionals only",
			tokens:         []string{"copy", "src:", "dst:"},
			wantPositional: []string{"copy", "src:", "dst:"},
		},
		{
			name:           "trailing boolean",
			tokens:         []string{"copy", "src:", "dst:", "--dry-run"},
			wantPositional: []string{"copy", "src:", "dst:"},
			wantOpts:       Options{Bool("dry-run", true)},
		},
		{
			name:           "value flag",
			tokens:         []string{"copy", "src:", "dst:", "--transfers", "8", "--progress"},
			wantPositional: []string{"copy", "src:", "dst:"},
			wantOpts:       Options{String("transfers", "8"), Bool("progress", true)},
		},
		{
			name:           "negated flag",
			tokens:         []string{"sync", "--no-check-dest", "a:", "b:"},
			wantPositional: []string{"sync", "a:", "b:"},
			wantOpts:       Options{Bool("check-dest", false)},
		},
		{
			name:           "equals forms",
			tokens:         []string{"ls", "--dry-run=true", "r:", "--fast-list=false", "--include=*.txt"},
			wantPositional: []string{"ls", "r:"},
			wantOpts: Options{
				Bool("dry-run", true),
				Bool("fast-list", false),
				String("include", "*.txt"),
			},
		},
		{
			name:           "flag followed by flag is boolean",
			tokens:         []string{"lsd", "r:", "--verbose", "--max-depth", "2"},
			wantPositional: []string{"lsd", "r:"},
			wantOpts:       Options{Bool("verbose", true), String("max-depth", "2")},
		},
		{
			name:           "double dash terminator",
			tokens:         []string{"rcat", "--", "--weird-name", "x"},
			wantPositional: []string{"rcat", "--weird-name", "x"},
		},
		{
			name:           "single dash is positional",
			tokens:         []string{"rcat", "r:file", "-"},
			wantPositional: []string{"rcat", "r:file", "-"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			positional, opts := Parse(tt.tokens)
			if !reflect.DeepEqual(positional, tt.wantPositional) {
				t.Errorf("positional = %q, want %q", positional, tt.wantPositional)
			}
			if !reflect.DeepEqual(opts, tt.wantOpts) {
				t.Errorf("opts = %#v, want %#v", opts, tt.wantOpts)
			}
		})
	}
}

func TestParse_RoundTrip(t *testing.T) {
	tokens := []string{"copy", "src:", "dst:", "--transfers", "4", "--dry-run", "--no-progress"}

	positional, opts := Parse(tokens)
	got := Marshal("", positional, opts)
	if !reflect.DeepEqual(got, tokens) {
		t.Errorf("round trip = %q, want %q", got, tokens)
	}
}
