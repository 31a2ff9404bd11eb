package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tutorlink/tutorlink-api/internal/core/domain"
	"github.com/tutorlink/tutorlink-api/internal/core/ports"
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an administrator account",
	Long: `Create an account with the Admin role. Self-service registration can
never grant Admin, so this is how the first administrator is bootstrapped.`,
	RunE: runCreateAdmin,
}

func init() {
	f := createAdminCmd.Flags()
	f.String("email", "", "account email (required)")
	f.String("username", "", "account username (required)")
	f.String("password", "", "initial password (required)")
	f.String("first-name", "Admin", "first name")
	f.String("last-name", "User", "last name")
	_ = createAdminCmd.MarkFlagRequired("email")
	_ = createAdminCmd.MarkFlagRequired("username")
	_ = createAdminCmd.MarkFlagRequired("password")

	rootCmd.AddCommand(createAdminCmd)
}

func runCreateAdmin(cmd *cobra.Command, _ []string) error {
	f := cmd.Flags()
	in := ports.RegisterInput{}
	in.Email, _ = f.GetString("email")
	in.Username, _ = f.GetString("username")
	in.Password, _ = f.GetString("password")
	in.FirstName, _ = f.GetString("first-name")
	in.LastName, _ = f.GetString("last-name")

	rt, err := openRuntime(cmd.Context())
	if err != nil {
		return err
	}
	defer rt.close()

	acc, err := rt.services.Accounts.AdminCreate(cmd.Context(), in, domain.RoleAdmin)
	if err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created admin %s (id %d)\n", acc.Username, acc.ID)
	return nil
}
