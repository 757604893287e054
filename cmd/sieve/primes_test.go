package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func TestParseMaxArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		want    int
		wantErr string
	}{
		{name: "default", args: nil, want: 1000},
		{name: "explicit", args: []string{"100"}, want: 100},
		{name: "zero", args: []string{"0"}, want: 0},
		{name: "not a number", args: []string{"abc"}, wantErr: `invalid MAX "abc": invalid syntax`},
		{name: "negative", args: []string{"-4"}, wantErr: `invalid MAX "-4"`},
		{name: "too large", args: []string{"99999999999999999999"}, wantErr: "value out of range"},
		{name: "too many", args: []string{"1", "2"}, wantErr: "expected at most one argument, got 2"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := parseMaxArgs(tc.args)
			if tc.wantErr != "" {
				var ue usageError
				if !errors.As(err, &ue) {
					t.Fatalf("expected usageError, got %v", err)
				}
				if !strings.Contains(err.Error(), tc.wantErr) {
					t.Fatalf("expected %q in error, got %q", tc.wantErr, err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("parseMaxArgs returned error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %d want %d", got, tc.want)
			}
		})
	}
}

func TestWritePrimes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		max   int
		count int
		want  string
	}{
		{0, 0, "\nCount of primes 2-0: 0\n"},
		{2, 1, "2\nCount of primes 2-2: 1\n"},
		{20, 8, "2 3 5 7 11 13 17 19\nCount of primes 2-20: 8\n"},
	}

	for _, tc := range tests {
		for _, useIter := range []bool{false, true} {
			var buf bytes.Buffer
			count, err := writePrimes(&buf, tc.max, useIter)
			if err != nil {
				t.Fatalf("writePrimes(%d, iter=%v): %v", tc.max, useIter, err)
			}
			if buf.String() != tc.want {
				t.Fatalf("writePrimes(%d, iter=%v): got %q want %q", tc.max, useIter, buf.String(), tc.want)
			}
			if count != tc.count {
				t.Fatalf("writePrimes(%d, iter=%v): count %d want %d", tc.max, useIter, count, tc.count)
			}
		}
	}
}

func TestWritePrimesDefaultBound(t *testing.T) {
	t.Parallel()

	var batch, iter bytes.Buffer
	if _, err := writePrimes(&batch, 1000, false); err != nil {
		t.Fatal(err)
	}
	if _, err := writePrimes(&iter, 1000, true); err != nil {
		t.Fatal(err)
	}
	if batch.String() != iter.String() {
		t.Fatal("batch and producer output differ")
	}
	lines := strings.Split(strings.TrimSuffix(batch.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "2 3 5 ") || !strings.HasSuffix(lines[0], " 991 997") {
		t.Fatalf("unexpected primes line: %.40q...", lines[0])
	}
	if lines[1] != "Count of primes 2-1000: 168" {
		t.Fatalf("unexpected count line: %q", lines[1])
	}
}

func TestAppRun(t *testing.T) {
	var out, errOut bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &errOut

	if err := app.Run(context.Background(), []string{"sieve", "15"}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if want := "2 3 5 7 11 13\nCount of primes 2-15: 6\n"; out.String() != want {
		t.Fatalf("got %q want %q", out.String(), want)
	}
}

func TestAppRunUsageErrors(t *testing.T) {
	for _, args := range [][]string{
		{"sieve", "abc"},
		{"sieve", "10", "20"},
	} {
		var out, errOut bytes.Buffer
		app := newApp()
		app.Writer = &out
		app.ErrWriter = &errOut

		err := app.Run(context.Background(), args)
		if err == nil {
			t.Fatalf("%v: expected error", args)
		}

		var report bytes.Buffer
		reportError(&report, err)
		if !strings.HasPrefix(report.String(), "error: ") || !strings.HasSuffix(report.String(), usageLine+"\n") {
			t.Fatalf("%v: unexpected report %q", args, report.String())
		}
		if out.Len() != 0 {
			t.Fatalf("%v: nothing should reach stdout, got %q", args, out.String())
		}
	}
}

func TestAppRunSubcommandNamesAreNotMax(t *testing.T) {
	var out, errOut bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &errOut

	if err := app.Run(context.Background(), []string{"sieve", "version"}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.HasPrefix(out.String(), "version:") {
		t.Fatalf("expected version output, got %q", out.String())
	}
	if strings.Contains(out.String(), "Count of primes") {
		t.Fatalf("subcommand name was treated as MAX: %q", out.String())
	}
	if !strings.Contains(app.Description, "never read as MAX") {
		t.Fatalf("root description should document subcommand precedence: %q", app.Description)
	}
}

func TestReportErrorPlain(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	reportError(&buf, errors.New("boom"))
	if buf.String() != "boom\n" {
		t.Fatalf("unexpected report %q", buf.String())
	}
}
