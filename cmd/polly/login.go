package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// loginCmd exchanges credentials for a bearer token.
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Obtain a bearer token",
	Long: `Log in and print the bearer token for the account.

The token can be passed to 'polly vote --token' or to any other API
consumer. Credentials come from the --username/--password flags, falling
back to the credentials block of the config file.

Example:
  polly login -u alice -p s3cret
  TOKEN=$(polly login -c polly.yaml)`,
	RunE: runLogin,
}

func init() {
	rootCmd.AddCommand(loginCmd)

	loginCmd.Flags().StringP("username", "u", "", "account name")
	loginCmd.Flags().StringP("password", "p", "", "account password")
}

func runLogin(cmd *cobra.Command, args []string) error {
	client, cfg, err := buildClient(cmd)
	if err != nil {
		return err
	}
	defer client.Close()

	username, password := credentials(cmd, cfg)
	if username == "" || password == "" {
		return errors.New("username and password are required (flags or config credentials)")
	}

	ctx, cancel := opContext()
	defer cancel()

	if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
		if token := client.Quiet().Login(ctx, username, password); token != nil {
			fmt.Println(token.AccessToken)
		}
		return nil
	}

	token, err := client.Login(ctx, username, password)
	if err != nil {
		return err
	}

	// bare token on stdout so it can be captured by shell substitution
	fmt.Println(token.AccessToken)
	return nil
}
