package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"backoffice/internal/adapters/snapshot"
	"backoffice/internal/modkit/module"
	perr "backoffice/internal/platform/errors"
	pstrings "backoffice/internal/platform/strings"
	"backoffice/internal/services/users/domain"
	usersmod "backoffice/internal/services/users/module"
)

var (
	usersKeyword string
	usersRole    string
	usersStatus  string

	userUsername string
	userNickname string
	userEmail    string
	userPhone    string
	userRole     string
	userStatus   string
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage console users",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users",
	Long: `List fetches users for the current query and displays them.

Example:
  backoffice users list
  backoffice users list --keyword ann --role editor
  backoffice users list --status active --json`,
	RunE: runUsersList,
}

var usersGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Fetch one user by id",
	Args:  cobra.ExactArgs(1),
	RunE:  runUsersGet,
}

var usersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user",
	RunE:  runUsersCreate,
}

var usersUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a user",
	Args:  cobra.ExactArgs(1),
	RunE:  runUsersUpdate,
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a user",
	Args:  cobra.ExactArgs(1),
	RunE:  runUsersDelete,
}

var usersImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Batch import users from a snapshot file",
	Args:  cobra.ExactArgs(1),
	RunE:  runUsersImport,
}

var usersExportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export the user collection to a snapshot file",
	Args:  cobra.ExactArgs(1),
	RunE:  runUsersExport,
}

func init() {
	usersListCmd.Flags().StringVar(&usersKeyword, "keyword", "", "case-insensitive keyword over username, nickname, email")
	usersListCmd.Flags().StringVar(&usersRole, "role", "", "filter by role (admin, editor, viewer)")
	usersListCmd.Flags().StringVar(&usersStatus, "status", "", "filter by status (active, disabled)")

	for _, c := range []*cobra.Command{usersCreateCmd, usersUpdateCmd} {
		c.Flags().StringVar(&userUsername, "username", "", "login name")
		c.Flags().StringVar(&userNickname, "nickname", "", "display name")
		c.Flags().StringVar(&userEmail, "email", "", "email address")
		c.Flags().StringVar(&userPhone, "phone", "", "phone number")
		c.Flags().StringVar(&userRole, "role", "viewer", "role (admin, editor, viewer)")
		c.Flags().StringVar(&userStatus, "status", "active", "status (active, disabled)")
	}

	usersCmd.AddCommand(usersListCmd, usersGetCmd, usersCreateCmd,
		usersUpdateCmd, usersDeleteCmd, usersImportCmd, usersExportCmd)
}

// usersStore fetches the users store port from the module registry
func usersStore() (domain.StorePort, error) {
	ports, ok := module.PortsAs[usersmod.Ports]("users")
	if !ok {
		return nil, fmt.Errorf("users module not registered")
	}
	return ports.Store, nil
}

func runUsersList(cmd *cobra.Command, args []string) error {
	store, err := usersStore()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if err := store.SetFilters(ctx, map[string]string{"role": usersRole, "status": usersStatus}); err != nil {
		return err
	}
	if err := store.SetSearchKeyword(ctx, pstrings.EmptyToNil(usersKeyword)); err != nil {
		return err
	}
	users := store.FilteredList()
	if flagJSON {
		return emitJSON(users)
	}
	printUserTable(users)
	return nil
}

func runUsersGet(cmd *cobra.Command, args []string) error {
	store, err := usersStore()
	if err != nil {
		return err
	}
	u, err := store.GetByID(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return emitJSON(u)
}

func runUsersCreate(cmd *cobra.Command, args []string) error {
	store, err := usersStore()
	if err != nil {
		return err
	}
	u := domain.User{
		Username: userUsername,
		Nickname: userNickname,
		Email:    userEmail,
		Phone:    userPhone,
		Role:     userRole,
		Status:   userStatus,
	}
	if err := store.Create(cmd.Context(), u); err != nil {
		return describeFailure(err)
	}
	return nil
}

func runUsersUpdate(cmd *cobra.Command, args []string) error {
	store, err := usersStore()
	if err != nil {
		return err
	}
	u := domain.User{
		Username: userUsername,
		Nickname: userNickname,
		Email:    userEmail,
		Phone:    userPhone,
		Role:     userRole,
		Status:   userStatus,
	}
	if err := store.Update(cmd.Context(), args[0], u); err != nil {
		return describeFailure(err)
	}
	return nil
}

func runUsersDelete(cmd *cobra.Command, args []string) error {
	store, err := usersStore()
	if err != nil {
		return err
	}
	if err := store.Delete(cmd.Context(), args[0]); err != nil {
		return describeFailure(err)
	}
	return nil
}

func runUsersImport(cmd *cobra.Command, args []string) error {
	store, err := usersStore()
	if err != nil {
		return err
	}
	rows, err := snapshot.Load[domain.User](args[0], "users")
	if err != nil {
		return err
	}
	report, err := store.BatchImport(cmd.Context(), rows)
	if err != nil && !perr.IsCanceled(err) {
		// a partial report still tells the operator which rows failed
		if report.Total > 0 {
			_ = emitJSON(report)
		}
		return describeFailure(err)
	}
	return emitJSON(report)
}

func runUsersExport(cmd *cobra.Command, args []string) error {
	store, err := usersStore()
	if err != nil {
		return err
	}
	if err := store.FetchList(cmd.Context()); err != nil {
		return describeFailure(err)
	}
	return snapshot.Save(args[0], "users", store.Items())
}

func printUserTable(users []domain.User) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tUSERNAME\tEMAIL\tROLE\tSTATUS")
	for _, u := range users {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", u.ID, u.Username, u.Email, u.Role, u.Status)
	}
	_ = w.Flush()
}

// describeFailure augments a typed error with its field details so the
// operator sees what to fix; canceled outcomes stay silent
func describeFailure(err error) error {
	if err == nil || perr.IsCanceled(err) {
		return nil
	}
	details := perr.DetailsOf(err)
	if len(details) == 0 {
		return err
	}
	for _, d := range details {
		fmt.Fprintf(os.Stderr, "  %s: %s\n", d.Field, d.Message)
	}
	return err
}
