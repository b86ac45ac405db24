package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/positions/docs"
	"github.com/google/subcommands"
)

// topicCmd prints the embedded help topics.
type topicCmd struct {
	list bool
}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "read the pos help topics" }
func (*topicCmd) Usage() string {
	return fmt.Sprintf(`pos topic [-l] [<topic>...]

  Prints the help topics. Without a topic, prints the introduction
  (readme); '*' prints every topic.

  Topics: %s
`, strings.Join(topicNames(), ", "))
}

func (c *topicCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.list, "l", false, "List the topic names")
}

func (c *topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.list {
		for _, name := range topicNames() {
			fmt.Fprintln(stdout, name)
		}
		return subcommands.ExitSuccess
	}

	names := f.Args()
	if len(names) == 0 {
		names = []string{"readme"}
	}
	md, err := docs.GetTopics(names...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\nAvailable topics: %s\n", err, strings.Join(topicNames(), ", "))
		return subcommands.ExitUsageError
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}
