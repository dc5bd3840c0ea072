package commands

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opd-ai/sigil"
)

func signCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sign <seed-hex> <pub-hex> [file]",
		Short: "Sign a file or stdin with an Ed25519 seed",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, err := hex.DecodeString(args[0])
			if err != nil {
				return fmt.Errorf("decoding seed: %w", err)
			}
			defer sigil.SecureWipe(seed)

			pub, err := hex.DecodeString(args[1])
			if err != nil {
				return fmt.Errorf("decoding public key: %w", err)
			}

			message, err := readInput(args[2:])
			if err != nil {
				return err
			}

			sig, err := sigil.Sign(seed, pub, message)
			if err != nil {
				return err
			}
			fmt.Println(hex.EncodeToString(sig))
			return nil
		},
	}
	return cmd
}
