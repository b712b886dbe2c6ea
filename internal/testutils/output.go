package testutils

import (
	"fmt"
	"strings"
	"testing"
	"text/tabwriter"
)

// TestCase represents a single comparison of an input against its rendered result.
type TestCase struct {
	Name     string
	Input    string
	Expected string
	Actual   string
	Pass     bool
}

// Compare builds a TestCase from an expected and actual value.
func Compare(name, input, expected, actual string) TestCase {
	return TestCase{
		Name:     name,
		Input:    input,
		Expected: expected,
		Actual:   actual,
		Pass:     expected == actual,
	}
}

// PrintTestTable logs an aligned table of comparison results and marks the
// failing rows with > <. It fails the test if any case has Pass=false.
func PrintTestTable(t *testing.T, cases []TestCase) {
	t.Helper()

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 3, ' ', 0)
	fmt.Fprintf(w, "  Case\tInput\tExpected Value\tReturned Value\t\n")

	var failed []string
	for _, tc := range cases {
		leftPtr, rightPtr := " ", " "
		if !tc.Pass {
			leftPtr, rightPtr = ">", "<"
			failed = append(failed, tc.Name)
		}
		fmt.Fprintf(w, "%s %s\t%q\t%q\t%q\t%s\n", leftPtr, tc.Name, tc.Input, tc.Expected, tc.Actual, rightPtr)
	}
	w.Flush()

	if len(failed) > 0 {
		t.Errorf("%d case(s) failed: %s\n%s", len(failed), strings.Join(failed, ", "), sb.String())
		return
	}
	t.Log("\n" + sb.String())
}
