package cmd

import (
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/google/subcommands"
)

const exampleJournal = `{"command":"buy","date":"2023-01-01","id":"a","instrument":"AAPL","quantity":10,"price":150,"currency":"USD"}
{"command":"buy","date":"2023-01-02","id":"b","instrument":"AAPL","quantity":10,"price":160,"currency":"USD"}
{"command":"buy","date":"2023-01-02","id":"c","instrument":"GOOGL","quantity":5,"price":2800,"currency":"USD"}
{"command":"sell","date":"2023-01-03","id":"d","instrument":"AAPL","quantity":5,"price":155,"currency":"USD"}
`

func writeJournal(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile(%q): %v", path, err)
	}
}

func TestOrdersCmd(t *testing.T) {
	journal, out := setup(t)
	writeJournal(t, journal, exampleJournal)

	testCases := []struct {
		name     string
		args     []string
		wantRows int
		want     subcommands.ExitStatus
	}{
		{name: "all", wantRows: 4},
		{name: "instrument", args: []string{"-i", "aapl"}, wantRows: 3},
		{name: "side", args: []string{"-side", "sell"}, wantRows: 1},
		{name: "tail", args: []string{"-tail", "2"}, wantRows: 2},
		{name: "bad side", args: []string{"-side", "short"}, want: subcommands.ExitUsageError},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out.Reset()
			if got := run(t, &ordersCmd{}, tc.args...); got != tc.want {
				t.Fatalf("orders %v = %v, want %v", tc.args, got, tc.want)
			}
			if tc.want != subcommands.ExitSuccess {
				return
			}
			// header and separator lines do not start with a date.
			rows := regexp.MustCompile(`(?m)^\| \d{4}-`).FindAllString(out.String(), -1)
			if len(rows) != tc.wantRows {
				t.Errorf("orders %v printed %d rows, want %d:\n%s", tc.args, len(rows), tc.wantRows, out.String())
			}
		})
	}
}

func TestPositionsCmd(t *testing.T) {
	journal, out := setup(t)
	writeJournal(t, journal, exampleJournal)

	if got := run(t, &positionsCmd{}); got != subcommands.ExitSuccess {
		t.Fatalf("positions = %v", got)
	}
	for _, want := range []string{
		"| AAPL | 15 | $155.00 | $2,325.00 |",
		"| GOOGL | 5 | $2,800.00 | $14,000.00 |",
		"**Total value:** $16,325.00",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("positions output is missing %q:\n%s", want, out.String())
		}
	}
}

func TestPositionsCmd_EmptyJournal(t *testing.T) {
	_, out := setup(t)
	if got := run(t, &positionsCmd{}); got != subcommands.ExitSuccess {
		t.Fatalf("positions = %v", got)
	}
	if got := out.String(); got != "No positions in portfolio.\n" {
		t.Errorf("positions printed %q", got)
	}
}

func TestQueryCmd(t *testing.T) {
	journal, out := setup(t)
	writeJournal(t, journal, exampleJournal)

	if got := run(t, &queryCmd{}, "-c", "$.positions[?(@.quantity > 10)].instrument"); got != subcommands.ExitSuccess {
		t.Fatalf("query = %v", got)
	}
	if got, want := out.String(), "[\"AAPL\"]\n"; got != want {
		t.Errorf("query printed %q, want %q", got, want)
	}

	out.Reset()
	if got := run(t, &queryCmd{}, "$.totalValue.amount"); got != subcommands.ExitSuccess {
		t.Fatalf("query = %v", got)
	}
	if got, want := out.String(), "16325\n"; got != want {
		t.Errorf("query printed %q, want %q", got, want)
	}

	if got := run(t, &queryCmd{}); got != subcommands.ExitUsageError {
		t.Errorf("query without a path = %v, want usage error", got)
	}
	if got := run(t, &queryCmd{}, "$.positions[?("); got != subcommands.ExitFailure {
		t.Errorf("query with an invalid path = %v, want failure", got)
	}
}

func TestCheckCmd(t *testing.T) {
	journal, out := setup(t)

	writeJournal(t, journal, exampleJournal)
	if got := run(t, &checkCmd{}); got != subcommands.ExitSuccess {
		t.Errorf("check of a valid journal = %v", got)
	}

	writeJournal(t, journal, exampleJournal+`{"command":"sell","date":"2023-01-04","instrument":"AAPL","quantity":100,"price":155}
`)
	if got := run(t, &checkCmd{}); got != subcommands.ExitFailure {
		t.Errorf("check of an overselling journal = %v, want failure", got)
	}

	out.Reset()
	writeJournal(t, journal, exampleJournal+
		`{"command":"sell","date":"2023-01-04","instrument":"MSFT","quantity":1,"price":300}
{"command":"sell","date":"2023-01-04","instrument":"NVDA","quantity":1,"price":400}
{"command":"sell","date":"2023-01-04","instrument":"AAPL","quantity":100,"price":155}
`)
	if got := run(t, &checkCmd{}); got != subcommands.ExitFailure {
		t.Errorf("check of a journal with 3 rejections = %v, want failure", got)
	}
	if !strings.Contains(out.String(), "3 of 7 entries rejected\n") {
		t.Errorf("check printed:\n%s\nwant 3 of 7 entries rejected", out.String())
	}
	if got := strings.Count(out.String(), "- entry "); got != 3 {
		t.Errorf("check listed %d rejections, want 3:\n%s", got, out.String())
	}

	writeJournal(t, journal, `{"command":"split"}`)
	if got := run(t, &checkCmd{}); got != subcommands.ExitFailure {
		t.Errorf("check of an undecodable journal = %v, want failure", got)
	}
}

func TestTopicCmd(t *testing.T) {
	_, out := setup(t)

	testCases := []struct {
		name string
		args []string
		want string
		code subcommands.ExitStatus
	}{
		{name: "readme by default", want: "# pos\n"},
		{name: "named topic", args: []string{"orders"}, want: "# Orders\n"},
		{name: "list", args: []string{"-l"}, want: "journal\norders\nquery\nreadme\n*\n"},
		{name: "unknown topic", args: []string{"margin"}, code: subcommands.ExitUsageError},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out.Reset()
			if got := run(t, &topicCmd{}, tc.args...); got != tc.code {
				t.Fatalf("topic %v = %v, want %v", tc.args, got, tc.code)
			}
			if !strings.HasPrefix(out.String(), tc.want) {
				t.Errorf("topic %v printed:\n%s\nwant prefix:\n%s", tc.args, out.String(), tc.want)
			}
		})
	}
}
