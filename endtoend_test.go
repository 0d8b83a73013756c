package main

import (
	"embed"
	"path"
	"strings"
	"testing"

	"github.com/cottand/effy/effy"
	"github.com/cottand/effy/frontend/ilerr"
	"github.com/cottand/effy/frontend/types"
	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// embeds the fixture programs
//
//go:embed testdata
var testSet embed.FS

type want struct {
	name   string
	typ    string
	purity string
	codes  []string
}

// every fixture starts with one comment per declaration, formatted as follows:
//
//	# effy:want name | type or - | pure or impure | comma separated error codes
func extractWants(t *testing.T, content string) []want {
	var wants []want
	for _, line := range strings.Split(content, "\n") {
		trimmed, ok := strings.CutPrefix(line, "# effy:want ")
		if !ok {
			continue
		}
		elems := strings.Split(trimmed, "|")
		// a row tail such as {| 'e} in the type also contains the separator
		if len(elems) < 4 {
			t.Fatalf("could not parse comment string: '%v'", line)
		}
		name := strings.TrimSpace(elems[0])
		codes := strings.TrimSpace(elems[len(elems)-1])
		purity := strings.TrimSpace(elems[len(elems)-2])
		typ := strings.TrimSpace(strings.Join(elems[1:len(elems)-2], "|"))
		w := want{name: name, typ: typ, purity: purity}
		if codes != "" {
			for _, code := range strings.Split(codes, ",") {
				w.codes = append(w.codes, strings.TrimSpace(code))
			}
		}
		wants = append(wants, w)
	}
	return wants
}

func TestFixturesEndToEnd(t *testing.T) {
	files, err := testSet.ReadDir("testdata")
	require.NoError(t, err)
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".yaml") {
			continue
		}
		t.Run(f.Name(), func(t *testing.T) {
			content, err := testSet.ReadFile(path.Join("testdata", f.Name()))
			require.NoError(t, err)

			program, err := effy.LoadProgram(f.Name(), content)
			require.NoError(t, err)
			result := program.Check()

			wants := extractWants(t, string(content))
			require.Len(t, result.Decls, len(wants))
			for _, w := range wants {
				t.Run(w.name, func(t *testing.T) {
					decl, ok := result.Lookup(w.name)
					require.True(t, ok)
					checkDecl(t, w, decl)
				})
			}
		})
	}
}

func checkDecl(t *testing.T, w want, decl effy.DeclResult) {
	var codes []string
	for _, e := range decl.Errors.Errors() {
		codes = append(codes, e.Code().String())
	}
	if fatal, ok := decl.FatalError(); ok {
		codes = append(codes, fatal.Code().String())
	} else {
		require.NoError(t, decl.Fatal)
	}
	assert.Equal(t, w.codes, codes)
	assert.Equal(t, w.purity, decl.Purity.String())

	if w.typ == "-" {
		assert.Nil(t, decl.Type)
		return
	}
	assert.Equal(t, w.typ, types.TypeString(decl.Type), spew.Sdump(decl.Core))
}

func TestFixtureDiagnosticsArePositioned(t *testing.T) {
	content, err := testSet.ReadFile("testdata/basics.yaml")
	require.NoError(t, err)
	program, err := effy.LoadProgram("basics.yaml", content)
	require.NoError(t, err)
	result := program.Check()

	decl, ok := result.Lookup("unbound")
	require.True(t, ok)
	fatal, ok := decl.FatalError()
	require.True(t, ok)
	assert.True(t, ilerr.IsFatal(fatal))
	assert.Equal(t, "basics.yaml:20:12: (E001) variable 'nope' is not defined", ilerr.FormatWithPosition(fatal, result.Fset))
}
