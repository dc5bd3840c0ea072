package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var verbose bool

func Execute() error {
	root := &cobra.Command{
		Use:   "sigil",
		Short: "BLAKE2b hashing and Ed25519 signing toolbox",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			} else {
				logrus.SetLevel(logrus.WarnLevel)
			}
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(hashCmd(), pubkeyCmd(), signCmd(), verifyCmd())
	return root.Execute()
}

// readInput returns the message bytes: the named file when args has one,
// stdin otherwise.
func readInput(args []string) ([]byte, error) {
	if len(args) > 0 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", args[0], err)
		}
		return data, nil
	}
	return io.ReadAll(os.Stdin)
}
