package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kouma-root/polly-go"
)

// registerCmd creates a new user account.
var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a user account",
	Long: `Create a user account on the Polly server.

Credentials come from the --username/--password flags, falling back to
the credentials block of the config file.

Example:
  polly register -u alice -p s3cret
  polly register -c polly.yaml`,
	RunE: runRegister,
}

func init() {
	rootCmd.AddCommand(registerCmd)

	registerCmd.Flags().StringP("username", "u", "", "account name")
	registerCmd.Flags().StringP("password", "p", "", "account password")
}

func runRegister(cmd *cobra.Command, args []string) error {
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
		if user := client.Quiet().Register(ctx, username, password); user != nil {
			fmt.Printf("Registered user %q (ID %d)\n", user.Username, user.ID)
		}
		return nil
	}

	user, err := client.Register(ctx, username, password)
	if err != nil {
		if errors.Is(err, polly.ErrUsernameTaken) {
			return fmt.Errorf("username %q is already registered", username)
		}
		return err
	}

	fmt.Printf("Registered user %q (ID %d)\n", user.Username, user.ID)
	return nil
}
