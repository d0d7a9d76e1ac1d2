package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/mailio/go-mailio-alias-server/util"
	"github.com/spf13/cobra"
)

var outputFile string

func init() {
	keysCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file (default is stdout)")
	rootCmd.AddCommand(keysCmd)
}

// keysCmd generates the server ed25519 signing keys used for admin API tokens
var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Generate ed25519 server keys",
	Long:  "Generate ed25519 server signing keys for the alias server",
	Run: func(cmd *cobra.Command, args []string) {
		public, private, err := util.GenerateEd25519KeyPair()
		if err != nil {
			panic(err)
		}
		keysJson := map[string]interface{}{
			"type":       "alias_server_keys_ed25519",
			"publicKey":  *public,
			"privateKey": *private,
			"created":    time.Now().UnixMilli(),
		}
		fileBytes, err := json.MarshalIndent(keysJson, "", "  ")
		if outputFile != "" {
			// save keys to disk in a file
			// fail if file already exists
			if _, err := os.Stat(outputFile); !errors.Is(err, os.ErrNotExist) {
				fmt.Printf("File already exists: %s\n", outputFile)
				os.Exit(1)
			}
			check(err)
			err = os.WriteFile(outputFile, fileBytes, 0644)
			check(err)
			fmt.Printf("Output file: %s\n", outputFile)
		} else {
			fmt.Printf("\n%s\n", string(fileBytes))
		}
	},
}
