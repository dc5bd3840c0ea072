package commands

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opd-ai/sigil"
)

func verifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify <pub-hex> <sig-hex> [file]",
		Short: "Verify an Ed25519 signature over a file or stdin",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			pub, err := hex.DecodeString(args[0])
			if err != nil {
				return fmt.Errorf("decoding public key: %w", err)
			}

			sig, err := hex.DecodeString(args[1])
			if err != nil {
				return fmt.Errorf("decoding signature: %w", err)
			}

			message, err := readInput(args[2:])
			if err != nil {
				return err
			}

			if err := sigil.Verify(pub, sig, message); err != nil {
				return err
			}
			fmt.Println("signature valid")
			return nil
		},
	}
	return cmd
}
