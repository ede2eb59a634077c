package main

import (
	"encoding/json"
	"os"

	"cosmossdk.io/log"
	"github.com/spf13/cobra"

	"confidentialmpt/internal/vectors"
)

func main() {
	logger := log.NewLogger(os.Stderr)

	var out string
	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Write the deterministic test-vector file",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := vectors.Generate()
			if err != nil {
				return err
			}
			b, err := json.MarshalIndent(f, "", "  ")
			if err != nil {
				return err
			}
			b = append(b, '\n')
			if out == "-" {
				_, err = os.Stdout.Write(b)
				return err
			}
			if err := os.WriteFile(out, b, 0o644); err != nil {
				return err
			}
			logger.Info("wrote vectors", "path", out, "suite", f.Suite, "bytes", len(b))
			return nil
		},
	}
	generateCmd.Flags().StringVarP(&out, "out", "o", "mpt-crypto-v1.json", "output path, - for stdout")

	rootCmd := &cobra.Command{
		Use:   "mptvec",
		Short: "Confidential MPT crypto test-vector tool",
	}
	rootCmd.AddCommand(generateCmd)

	if err := rootCmd.Execute(); err != nil {
		logger.Error("command failed", "err", err)
		os.Exit(1)
	}
}
