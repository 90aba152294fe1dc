package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"syscall"

	"golang.org/x/term"

	"github.com/charmakemoussa99-ops/gestion-de-l-cole/core/school"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	svc *school.Service
	db  *sql.DB // set with the postgres backend only
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  addprincipal -name NAME -username USERNAME -email EMAIL - create a principal account")
	fmt.Println("  addsuperadmin -name NAME -username USERNAME -email EMAIL - create a super-admin account")
	fmt.Println("  claim -tenant TENANTID - stamp unowned records with a tenant")
	fmt.Println("  migrate COMMAND [ARGS] - run database migrations (postgres only)")
}

// accountFlagSet declares the flags shared by the account-creating
// subcommands.
func accountFlagSet(name string) (*flag.FlagSet, *string, *string, *string) {
	cmd := flag.NewFlagSet(name, flag.ExitOnError)
	fullName := cmd.String("name", "", "The account's full name.")
	uname := cmd.String("username", "", "The account's username.")
	email := cmd.String("email", "", "The account's email. The password will be prompted next.")
	return cmd, fullName, uname, email
}

func promptPassword() (string, error) {
	fmt.Print("Enter password:")
	pwd, err := readPasswordFunc(syscall.Stdin)
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(pwd), nil
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addPrincipalCmd, addPrincipalName, addPrincipalUname, addPrincipalEmail := accountFlagSet("addprincipal")
	addSuperAdminCmd, addSuperAdminName, addSuperAdminUname, addSuperAdminEmail := accountFlagSet("addsuperadmin")

	claimCmd := flag.NewFlagSet("claim", flag.ExitOnError)
	claimTenant := claimCmd.String("tenant", "", "The tenant ID to stamp unowned records with.")

	switch args[1] {
	case "addprincipal":
		if err := addPrincipalCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addPrincipalName == "" || *addPrincipalUname == "" || *addPrincipalEmail == "" {
			addPrincipalCmd.Usage()
			return errHelp
		}
		pwd, err := promptPassword()
		if err != nil {
			return err
		}
		if pwd == "" {
			addPrincipalCmd.Usage()
			return errHelp
		}
		return cli.addPrincipal(*addPrincipalName, *addPrincipalUname, *addPrincipalEmail, pwd)
	case "addsuperadmin":
		if err := addSuperAdminCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addSuperAdminName == "" || *addSuperAdminUname == "" || *addSuperAdminEmail == "" {
			addSuperAdminCmd.Usage()
			return errHelp
		}
		pwd, err := promptPassword()
		if err != nil {
			return err
		}
		if pwd == "" {
			addSuperAdminCmd.Usage()
			return errHelp
		}
		return cli.addSuperAdmin(*addSuperAdminName, *addSuperAdminUname, *addSuperAdminEmail, pwd)
	case "claim":
		if err := claimCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *claimTenant == "" {
			claimCmd.Usage()
			return errHelp
		}
		return cli.claim(*claimTenant)
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	default:
		cli.printUsage()
		return errHelp
	}
}
