package main

import (
	"crypto/ed25519"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mailio/go-mailio-alias-server/api/interceptors"
	"github.com/spf13/cobra"
)

var tokenKeyFile string
var tokenSubject string

func init() {
	tokenCmd.Flags().StringVarP(&tokenKeyFile, "keyFile", "f", "", "json file with the server keys")
	tokenCmd.Flags().StringVarP(&tokenSubject, "subject", "s", "admin", "token subject")
	tokenCmd.MarkFlagRequired("keyFile")
	rootCmd.AddCommand(tokenCmd)
}

// tokenCmd mints an admin API token signed with the server key
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint an admin API token",
	Long:  "Mint a JWS token for the admin API, signed with the server ed25519 key",
	Run: func(cmd *cobra.Command, args []string) {
		content, err := os.ReadFile(tokenKeyFile)
		check(err)
		var keys map[string]interface{}
		err = json.Unmarshal(content, &keys)
		check(err)
		if keys["type"] != "alias_server_keys_ed25519" {
			fmt.Printf("Invalid key file: %s\n", tokenKeyFile)
			os.Exit(1)
		}
		val, ok := keys["privateKey"]
		if !ok {
			fmt.Printf("Invalid key file: %s\n", tokenKeyFile)
			os.Exit(1)
		}
		privateKeyBytes, pkErr := base64.StdEncoding.DecodeString(val.(string))
		check(pkErr)
		if len(privateKeyBytes) != 64 {
			fmt.Printf("Invalid length of private key (must be 64 but is %d): %s\n", len(privateKeyBytes), tokenKeyFile)
			os.Exit(1)
		}

		token, tErr := interceptors.GenerateJWSToken(ed25519.PrivateKey(privateKeyBytes), tokenSubject)
		check(tErr)
		fmt.Printf("%s\n", token)
	},
}
