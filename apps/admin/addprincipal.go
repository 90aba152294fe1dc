package main

import (
	"fmt"

	"github.com/charmakemoussa99-ops/gestion-de-l-cole/core/account"
)

// addPrincipal creates a principal account owning its own tenant.
func (cli *commandLine) addPrincipal(name, uname, email, pwd string) error {
	data := account.NewAccount{
		Name:            name,
		Username:        uname,
		Email:           email,
		Role:            account.RolePrincipal,
		Password:        pwd,
		PasswordConfirm: pwd,
	}
	if err := data.Validate(); err != nil {
		return err
	}

	acc, err := cli.svc.AddPrincipal(data)
	if err != nil {
		return err
	}
	fmt.Printf("principal %q created; tenant ID: %s\n", acc.Username, acc.ID)
	return nil
}

// addSuperAdmin creates a super-admin account for managing principals.
func (cli *commandLine) addSuperAdmin(name, uname, email, pwd string) error {
	data := account.NewAccount{
		Name:            name,
		Username:        uname,
		Email:           email,
		Role:            account.RoleSuperAdmin,
		Password:        pwd,
		PasswordConfirm: pwd,
	}
	if err := data.Validate(); err != nil {
		return err
	}

	acc, err := cli.svc.AddSuperAdmin(data)
	if err != nil {
		return err
	}
	fmt.Printf("super admin %q created\n", acc.Username)
	return nil
}
