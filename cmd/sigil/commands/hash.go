package commands

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opd-ai/sigil/blake2b"
)

func hashCmd() *cobra.Command {
	var size int
	var keyHex string

	cmd := &cobra.Command{
		Use:   "hash [file]",
		Short: "Compute a BLAKE2b digest of a file or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			message, err := readInput(args)
			if err != nil {
				return err
			}

			var key []byte
			if keyHex != "" {
				if key, err = hex.DecodeString(keyHex); err != nil {
					return fmt.Errorf("decoding key: %w", err)
				}
			}

			digest, err := blake2b.Compute(message, size, key)
			if err != nil {
				return err
			}
			fmt.Println(hex.EncodeToString(digest))
			return nil
		},
	}

	cmd.Flags().IntVarP(&size, "size", "s", blake2b.Size256, "digest length in bytes (1..64)")
	cmd.Flags().StringVarP(&keyHex, "key", "k", "", "optional MAC key as hex (up to 64 bytes)")
	return cmd
}
