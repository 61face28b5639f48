package sazan

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

const conformanceBase = "testdata/conformance"

type conformanceFixture struct {
	Name     string            `yaml:"name"`
	Requires string            `yaml:"requires,omitempty"`
	Cases    []conformanceCase `yaml:"cases"`
}

type conformanceCase struct {
	Name   string `yaml:"name"`
	Op     string `yaml:"op"`
	Input  string `yaml:"input,omitempty"`
	Left   string `yaml:"left,omitempty"`
	Right  string `yaml:"right,omitempty"`
	Expect string `yaml:"expect"`
}

// parseConformanceLiteral decodes the fixtures' scalar notation:
// undefined/null/true/false keywords, single-quoted strings, everything
// else through the numeric-literal grammar.
func parseConformanceLiteral(s string) Value {
	switch s {
	case "undefined":
		return _undefined
	case "null":
		return _null
	case "true":
		return valueTrue
	case "false":
		return valueFalse
	}
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		return newStringValue(s[1 : len(s)-1])
	}
	return parseNumericString(s)
}

func runConformanceCase(t *testing.T, r *Runtime, c conformanceCase) {
	var got string
	switch c.Op {
	case "to-number":
		v, err := r.ToNumber(newStringValue(c.Input))
		if err != nil {
			got = fmt.Sprintf("error:%T", err)
		} else {
			got = v.String()
		}
	case "to-string":
		v, err := r.ToString(parseConformanceLiteral(c.Input))
		if err != nil {
			got = fmt.Sprintf("error:%T", err)
		} else {
			got = v.String()
		}
	case "to-boolean":
		got = fmt.Sprintf("%v", r.ToBoolean(parseConformanceLiteral(c.Input)))
	case "loose-equal":
		got = fmt.Sprintf("%v", parseConformanceLiteral(c.Left).Equals(parseConformanceLiteral(c.Right)))
	case "strict-equal":
		got = fmt.Sprintf("%v", parseConformanceLiteral(c.Left).StrictEquals(parseConformanceLiteral(c.Right)))
	case "same-value":
		got = fmt.Sprintf("%v", parseConformanceLiteral(c.Left).SameAs(parseConformanceLiteral(c.Right)))
	default:
		t.Fatalf("unknown op %q", c.Op)
	}
	if got != c.Expect {
		t.Fatalf("%s: expected %q, got %q", c.Name, c.Expect, got)
	}
}

func TestConformance(t *testing.T) {
	entries, err := os.ReadDir(conformanceBase)
	if err != nil {
		t.Fatal(err)
	}
	engineVersion := semver.MustParse(Version)

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(conformanceBase, entry.Name()))
		if err != nil {
			t.Fatal(err)
		}
		var fixture conformanceFixture
		if err := yaml.Unmarshal(data, &fixture); err != nil {
			t.Fatalf("%s: %v", entry.Name(), err)
		}

		t.Run(fixture.Name, func(t *testing.T) {
			if fixture.Requires != "" {
				constraint, err := semver.NewConstraint(fixture.Requires)
				if err != nil {
					t.Fatal(err)
				}
				if !constraint.Check(engineVersion) {
					t.Skipf("requires engine %s, running %s", fixture.Requires, Version)
				}
			}
			r := New()
			for _, c := range fixture.Cases {
				c := c
				t.Run(c.Name, func(t *testing.T) {
					runConformanceCase(t, r, c)
				})
			}
		})
	}
}
