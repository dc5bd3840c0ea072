package commands

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opd-ai/sigil"
)

func pubkeyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pubkey <seed-hex>",
		Short: "Derive an Ed25519 public key from a 32-byte seed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, err := hex.DecodeString(args[0])
			if err != nil {
				return fmt.Errorf("decoding seed: %w", err)
			}
			defer sigil.SecureWipe(seed)

			pub, err := sigil.DerivePublicKey(seed)
			if err != nil {
				return err
			}
			fmt.Println(hex.EncodeToString(pub))
			return nil
		},
	}
	return cmd
}
